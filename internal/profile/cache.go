package profile

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// existenceCache remembers which user IDs already have a profile row, so the
// lazy-create path skips a round trip on the hot wallet reads. Balances are
// never cached: they are mutated by unrelated features and must always be
// read fresh.
type existenceCache struct {
	lru *expirable.LRU[string, struct{}]
}

func newExistenceCache(size int, ttl time.Duration) *existenceCache {
	return &existenceCache{
		lru: expirable.NewLRU[string, struct{}](size, nil, ttl),
	}
}

func (c *existenceCache) Known(userID string) bool {
	_, found := c.lru.Get(userID)
	return found
}

func (c *existenceCache) Mark(userID string) {
	c.lru.Add(userID, struct{}{})
}
