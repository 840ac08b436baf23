package profile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pairloom/garden-engine/internal/domain"
	"github.com/pairloom/garden-engine/internal/logger"
	"github.com/pairloom/garden-engine/internal/repository"
)

// Cache sizing for the profile-existence cache.
const (
	defaultCacheSize = 2048
	defaultCacheTTL  = 30 * time.Minute
)

// Service exposes per-user wallet balances to the rest of the engine.
// Profiles are created lazily with starter balances on first access.
type Service interface {
	// GetWallet returns the user's current balances, creating the profile
	// with starter balances when none exists.
	GetWallet(ctx context.Context, userID string) (*domain.Profile, error)

	// AdjustGold adds delta (may be negative) to the user's gold and returns
	// the updated profile. Fails with domain.ErrInsufficientGold when the
	// balance would go negative.
	AdjustGold(ctx context.Context, userID string, delta int) (*domain.Profile, error)

	// AdjustWater adds delta (may be negative) to the user's water and
	// returns the updated profile. Fails with domain.ErrInsufficientWater
	// when the balance would go negative.
	AdjustWater(ctx context.Context, userID string, delta int) (*domain.Profile, error)
}

type service struct {
	repo  repository.Profile
	cache *existenceCache
	clock func() time.Time
}

// NewService creates a new profile service
func NewService(repo repository.Profile) Service {
	return &service{
		repo:  repo,
		cache: newExistenceCache(defaultCacheSize, defaultCacheTTL),
		clock: time.Now,
	}
}

func (s *service) GetWallet(ctx context.Context, userID string) (*domain.Profile, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: empty user ID", domain.ErrInvalidInput)
	}

	profile, err := s.repo.GetProfile(ctx, userID)
	if err == nil {
		s.cache.Mark(userID)
		return profile, nil
	}
	if !errors.Is(err, domain.ErrProfileNotFound) {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	now := s.clock()
	profile = &domain.Profile{
		UserID:    userID,
		Gold:      domain.StarterGold,
		Water:     domain.StarterWater,
		MaxWater:  domain.StarterMaxWater,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.CreateProfile(ctx, profile); err != nil {
		// Concurrent first access: the row may have appeared between the
		// read and the insert. Re-read rather than fail.
		if fresh, readErr := s.repo.GetProfile(ctx, userID); readErr == nil {
			s.cache.Mark(userID)
			return fresh, nil
		}
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	logger.FromContext(ctx).Info("Profile created with starter balances", "userID", userID)
	s.cache.Mark(userID)
	return profile, nil
}

func (s *service) AdjustGold(ctx context.Context, userID string, delta int) (*domain.Profile, error) {
	if err := s.ensureExists(ctx, userID); err != nil {
		return nil, err
	}
	profile, err := s.repo.AdjustGold(ctx, userID, delta)
	if err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *service) AdjustWater(ctx context.Context, userID string, delta int) (*domain.Profile, error) {
	if err := s.ensureExists(ctx, userID); err != nil {
		return nil, err
	}
	profile, err := s.repo.AdjustWater(ctx, userID, delta)
	if err != nil {
		return nil, err
	}
	return profile, nil
}

// ensureExists guarantees the profile row is present before an atomic
// adjustment. The existence cache short-circuits the common case.
func (s *service) ensureExists(ctx context.Context, userID string) error {
	if s.cache.Known(userID) {
		return nil
	}
	_, err := s.GetWallet(ctx, userID)
	return err
}
