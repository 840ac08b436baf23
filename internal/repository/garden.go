package repository

import (
	"context"
	"time"

	"github.com/pairloom/garden-engine/internal/domain"
)

// Garden persists the shared garden document for each pair.
//
// Updates use optimistic concurrency: the write carries the revision the
// caller read, and the store rejects it with domain.ErrRevisionConflict when
// another session committed in between. Callers re-read and retry.
type Garden interface {
	// GetGardenState retrieves the garden for a pair.
	// Returns domain.ErrGardenNotFound when none exists yet.
	GetGardenState(ctx context.Context, pairID string) (*domain.GardenState, error)

	// CreateGardenState inserts a fresh garden document at revision 1.
	CreateGardenState(ctx context.Context, state *domain.GardenState) error

	// UpdateGardenState writes the full document if and only if the stored
	// revision still equals state.Revision, then bumps the revision.
	// Returns domain.ErrRevisionConflict on a stale write.
	UpdateGardenState(ctx context.Context, state *domain.GardenState) error

	// ListNeglectedPairs returns pair IDs whose last interaction is older
	// than the cutoff, for the scheduled punishment sweep.
	ListNeglectedPairs(ctx context.Context, cutoff time.Time, limit int) ([]string, error)
}
