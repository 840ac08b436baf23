package profile

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pairloom/garden-engine/internal/domain"
)

// MockRepository implements repository.Profile for testing
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *MockRepository) CreateProfile(ctx context.Context, profile *domain.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockRepository) AdjustGold(ctx context.Context, userID string, delta int) (*domain.Profile, error) {
	args := m.Called(ctx, userID, delta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *MockRepository) AdjustWater(ctx context.Context, userID string, delta int) (*domain.Profile, error) {
	args := m.Called(ctx, userID, delta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func TestGetWallet_ExistingProfile(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)

	existing := &domain.Profile{UserID: "user-1", Gold: 7, Water: 2, MaxWater: 3}
	repo.On("GetProfile", mock.Anything, "user-1").Return(existing, nil)

	wallet, err := svc.GetWallet(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, 7, wallet.Gold)
	assert.Equal(t, 2, wallet.Water)
	repo.AssertNotCalled(t, "CreateProfile", mock.Anything, mock.Anything)
}

func TestGetWallet_CreatesWithStarterBalances(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)

	repo.On("GetProfile", mock.Anything, "user-new").Return(nil, domain.ErrProfileNotFound)
	repo.On("CreateProfile", mock.Anything, mock.MatchedBy(func(p *domain.Profile) bool {
		return p.UserID == "user-new" &&
			p.Gold == domain.StarterGold &&
			p.Water == domain.StarterWater &&
			p.MaxWater == domain.StarterMaxWater
	})).Return(nil)

	wallet, err := svc.GetWallet(context.Background(), "user-new")
	require.NoError(t, err)
	assert.Equal(t, domain.StarterWater, wallet.Water)
	repo.AssertExpectations(t)
}

func TestGetWallet_ConcurrentCreateFallsBackToRead(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)

	created := &domain.Profile{UserID: "user-1", Gold: 0, Water: 3, MaxWater: 3}
	repo.On("GetProfile", mock.Anything, "user-1").Return(nil, domain.ErrProfileNotFound).Once()
	repo.On("CreateProfile", mock.Anything, mock.Anything).Return(errors.New("duplicate key"))
	repo.On("GetProfile", mock.Anything, "user-1").Return(created, nil)

	wallet, err := svc.GetWallet(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", wallet.UserID)
}

func TestGetWallet_EmptyUserID(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)

	_, err := svc.GetWallet(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAdjustGold_EnsuresProfileExists(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)

	existing := &domain.Profile{UserID: "user-1", Gold: 5, Water: 3, MaxWater: 3}
	repo.On("GetProfile", mock.Anything, "user-1").Return(existing, nil).Once()
	repo.On("AdjustGold", mock.Anything, "user-1", 3).Return(&domain.Profile{UserID: "user-1", Gold: 8}, nil)

	updated, err := svc.AdjustGold(context.Background(), "user-1", 3)
	require.NoError(t, err)
	assert.Equal(t, 8, updated.Gold)

	// Existence is cached: a second adjustment skips the read.
	repo.On("AdjustGold", mock.Anything, "user-1", -2).Return(&domain.Profile{UserID: "user-1", Gold: 6}, nil)
	_, err = svc.AdjustGold(context.Background(), "user-1", -2)
	require.NoError(t, err)
	repo.AssertNumberOfCalls(t, "GetProfile", 1)
}

func TestAdjustWater_InsufficientBalance(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)

	existing := &domain.Profile{UserID: "user-1", Gold: 5, Water: 0, MaxWater: 3}
	repo.On("GetProfile", mock.Anything, "user-1").Return(existing, nil)
	repo.On("AdjustWater", mock.Anything, "user-1", -1).Return(nil, domain.ErrInsufficientWater)

	_, err := svc.AdjustWater(context.Background(), "user-1", -1)
	assert.ErrorIs(t, err, domain.ErrInsufficientWater)
}
