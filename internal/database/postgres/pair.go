package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pairloom/garden-engine/internal/domain"
)

// PairRepository implements the pair repository for PostgreSQL.
type PairRepository struct {
	db *pgxpool.Pool
}

// NewPairRepository creates a new PairRepository
func NewPairRepository(db *pgxpool.Pool) *PairRepository {
	return &PairRepository{db: db}
}

// GetPairMembers returns both user IDs of a pair.
func (r *PairRepository) GetPairMembers(ctx context.Context, pairID string) ([2]string, error) {
	query := `
		SELECT user_a, user_b
		FROM pairs
		WHERE pair_id = $1
	`
	var members [2]string
	err := r.db.QueryRow(ctx, query, pairID).Scan(&members[0], &members[1])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return [2]string{}, fmt.Errorf("%w: pair %s", domain.ErrGardenNotFound, pairID)
		}
		return [2]string{}, fmt.Errorf("failed to get pair members: %w", err)
	}
	return members, nil
}

// UpsertPair records a pair's membership.
func (r *PairRepository) UpsertPair(ctx context.Context, pairID, userA, userB string) error {
	query := `
		INSERT INTO pairs (pair_id, user_a, user_b, created_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (pair_id) DO UPDATE
		SET user_a = EXCLUDED.user_a, user_b = EXCLUDED.user_b
	`
	if _, err := r.db.Exec(ctx, query, pairID, userA, userB); err != nil {
		return fmt.Errorf("failed to upsert pair: %w", err)
	}
	return nil
}
