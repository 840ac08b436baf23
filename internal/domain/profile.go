package domain

import "time"

// Profile holds a user's wallet balances. Balances are also mutated by
// unrelated features (purchases, question rewards), so callers must read
// fresh immediately before each adjustment.
type Profile struct {
	UserID    string    `json:"user_id"`
	Gold      int       `json:"gold"`
	Water     int       `json:"water"`
	MaxWater  int       `json:"max_water"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Starter balances for a lazily-created profile.
const (
	StarterGold     = 0
	StarterWater    = 3
	StarterMaxWater = 3
)
