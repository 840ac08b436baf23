package repository

import (
	"context"

	"github.com/pairloom/garden-engine/internal/domain"
)

// Profile persists per-user wallet balances.
//
// Balances are also adjusted by unrelated features, so the adjustment
// operations are atomic in the store (single UPDATE with a balance guard)
// rather than read-modify-write in the service.
type Profile interface {
	// GetProfile retrieves a user's profile.
	// Returns domain.ErrProfileNotFound when none exists.
	GetProfile(ctx context.Context, userID string) (*domain.Profile, error)

	// CreateProfile inserts a profile with starter balances.
	CreateProfile(ctx context.Context, profile *domain.Profile) error

	// AdjustGold atomically adds delta (may be negative) to the user's gold.
	// Returns domain.ErrInsufficientGold when the balance would go negative.
	AdjustGold(ctx context.Context, userID string, delta int) (*domain.Profile, error)

	// AdjustWater atomically adds delta (may be negative) to the user's water.
	// Returns domain.ErrInsufficientWater when the balance would go negative.
	AdjustWater(ctx context.Context, userID string, delta int) (*domain.Profile, error)
}
