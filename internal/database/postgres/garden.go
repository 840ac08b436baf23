package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pairloom/garden-engine/internal/domain"
)

// GardenRepository implements the garden repository for PostgreSQL.
// The garden document is stored whole as JSONB with a revision column used
// for optimistic concurrency; last_interaction is denormalized so the
// neglect sweep can use an index instead of scanning documents.
type GardenRepository struct {
	db *pgxpool.Pool
}

// NewGardenRepository creates a new GardenRepository
func NewGardenRepository(db *pgxpool.Pool) *GardenRepository {
	return &GardenRepository{db: db}
}

// GetGardenState retrieves the garden for a pair.
func (r *GardenRepository) GetGardenState(ctx context.Context, pairID string) (*domain.GardenState, error) {
	query := `
		SELECT doc, revision
		FROM gardens
		WHERE pair_id = $1
	`
	var raw []byte
	var revision int64
	err := r.db.QueryRow(ctx, query, pairID).Scan(&raw, &revision)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: pair %s", domain.ErrGardenNotFound, pairID)
		}
		return nil, fmt.Errorf("failed to get garden: %w", err)
	}

	var state domain.GardenState
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, fmt.Errorf("failed to decode garden document: %w", err)
	}
	state.Revision = revision
	return &state, nil
}

// CreateGardenState inserts a fresh garden document at revision 1.
func (r *GardenRepository) CreateGardenState(ctx context.Context, state *domain.GardenState) error {
	doc, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode garden document: %w", err)
	}

	query := `
		INSERT INTO gardens (pair_id, doc, revision, last_interaction, created_at, updated_at)
		VALUES ($1, $2, 1, $3, NOW(), NOW())
	`
	if _, err := r.db.Exec(ctx, query, state.PairID, doc, state.LastInteraction); err != nil {
		return fmt.Errorf("failed to insert garden: %w", err)
	}
	state.Revision = 1
	return nil
}

// UpdateGardenState writes the full document if and only if the stored
// revision still matches, then bumps the revision on the passed state.
func (r *GardenRepository) UpdateGardenState(ctx context.Context, state *domain.GardenState) error {
	doc, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode garden document: %w", err)
	}

	query := `
		UPDATE gardens
		SET doc = $2, revision = revision + 1, last_interaction = $3, updated_at = NOW()
		WHERE pair_id = $1 AND revision = $4
		RETURNING revision
	`
	var newRevision int64
	err = r.db.QueryRow(ctx, query, state.PairID, doc, state.LastInteraction, state.Revision).Scan(&newRevision)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Either the row vanished or another session committed first;
			// distinguish so callers retry only on a real conflict.
			var exists bool
			checkErr := r.db.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM gardens WHERE pair_id = $1)", state.PairID).Scan(&exists)
			if checkErr == nil && !exists {
				return fmt.Errorf("%w: pair %s", domain.ErrGardenNotFound, state.PairID)
			}
			return fmt.Errorf("%w: revision %d is stale", domain.ErrRevisionConflict, state.Revision)
		}
		return fmt.Errorf("failed to update garden: %w", err)
	}
	state.Revision = newRevision
	return nil
}

// ListNeglectedPairs returns pair IDs whose last interaction predates the
// cutoff, oldest first, for the scheduled punishment sweep.
func (r *GardenRepository) ListNeglectedPairs(ctx context.Context, cutoff time.Time, limit int) ([]string, error) {
	query := `
		SELECT pair_id
		FROM gardens
		WHERE last_interaction IS NOT NULL AND last_interaction < $1
		ORDER BY last_interaction ASC
		LIMIT $2
	`
	rows, err := r.db.Query(ctx, query, cutoff, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list neglected gardens: %w", err)
	}
	defer rows.Close()

	var pairs []string
	for rows.Next() {
		var pairID string
		if err := rows.Scan(&pairID); err != nil {
			return nil, fmt.Errorf("failed to scan pair id: %w", err)
		}
		pairs = append(pairs, pairID)
	}
	return pairs, rows.Err()
}
