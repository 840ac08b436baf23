package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pairloom/garden-engine/internal/domain"
)

// ProfileRepository implements the profile repository for PostgreSQL.
// Adjustments are single guarded UPDATEs so concurrent writers from
// unrelated features never clobber each other.
type ProfileRepository struct {
	db *pgxpool.Pool
}

// NewProfileRepository creates a new ProfileRepository
func NewProfileRepository(db *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func scanProfile(row pgx.Row) (*domain.Profile, error) {
	var p domain.Profile
	err := row.Scan(&p.UserID, &p.Gold, &p.Water, &p.MaxWater, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetProfile retrieves a user's wallet profile.
func (r *ProfileRepository) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	query := `
		SELECT user_id, gold, water, max_water, created_at, updated_at
		FROM profiles
		WHERE user_id = $1
	`
	profile, err := scanProfile(r.db.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: user %s", domain.ErrProfileNotFound, userID)
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return profile, nil
}

// CreateProfile inserts a profile with the given starter balances.
func (r *ProfileRepository) CreateProfile(ctx context.Context, profile *domain.Profile) error {
	query := `
		INSERT INTO profiles (user_id, gold, water, max_water, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, profile.UserID, profile.Gold, profile.Water, profile.MaxWater)
	if err != nil {
		return fmt.Errorf("failed to insert profile: %w", err)
	}
	return nil
}

// AdjustGold atomically adds delta to the user's gold. The WHERE guard keeps
// balances non-negative without a read-modify-write round trip.
func (r *ProfileRepository) AdjustGold(ctx context.Context, userID string, delta int) (*domain.Profile, error) {
	query := `
		UPDATE profiles
		SET gold = gold + $2, updated_at = NOW()
		WHERE user_id = $1 AND gold + $2 >= 0
		RETURNING user_id, gold, water, max_water, created_at, updated_at
	`
	profile, err := scanProfile(r.db.QueryRow(ctx, query, userID, delta))
	if err != nil {
		return nil, r.classifyAdjustError(ctx, err, userID, domain.ErrInsufficientGold)
	}
	return profile, nil
}

// AdjustWater atomically adds delta to the user's water.
func (r *ProfileRepository) AdjustWater(ctx context.Context, userID string, delta int) (*domain.Profile, error) {
	query := `
		UPDATE profiles
		SET water = water + $2, updated_at = NOW()
		WHERE user_id = $1 AND water + $2 >= 0
		RETURNING user_id, gold, water, max_water, created_at, updated_at
	`
	profile, err := scanProfile(r.db.QueryRow(ctx, query, userID, delta))
	if err != nil {
		return nil, r.classifyAdjustError(ctx, err, userID, domain.ErrInsufficientWater)
	}
	return profile, nil
}

// classifyAdjustError maps a failed guarded UPDATE to the right domain
// error: missing row, insufficient balance, or a genuine database failure.
func (r *ProfileRepository) classifyAdjustError(ctx context.Context, err error, userID string, insufficient error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		var exists bool
		checkErr := r.db.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM profiles WHERE user_id = $1)", userID).Scan(&exists)
		if checkErr == nil && !exists {
			return fmt.Errorf("%w: user %s", domain.ErrProfileNotFound, userID)
		}
		return fmt.Errorf("%w: user %s", insufficient, userID)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == PgErrorCodeCheckViolation {
		return fmt.Errorf("%w: user %s", insufficient, userID)
	}
	return fmt.Errorf("failed to adjust balance: %w", err)
}
