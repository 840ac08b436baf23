package repository

import "context"

// Pair persists the two-user pairing that owns each garden.
// Pair creation and dissolution are driven by the external pairing flow;
// this subsystem only reads membership and registers pairs it first sees.
type Pair interface {
	// GetPairMembers returns both user IDs of a pair.
	// Returns domain.ErrGardenNotFound when the pair is unknown.
	GetPairMembers(ctx context.Context, pairID string) ([2]string, error)

	// UpsertPair records a pair's membership.
	UpsertPair(ctx context.Context, pairID, userA, userB string) error
}
