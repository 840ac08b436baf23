package garden

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pairloom/garden-engine/internal/domain"
	"github.com/pairloom/garden-engine/internal/event"
	"github.com/pairloom/garden-engine/internal/geometry"
	"github.com/pairloom/garden-engine/internal/growth"
	"github.com/pairloom/garden-engine/internal/logger"
	"github.com/pairloom/garden-engine/internal/metrics"
	"github.com/pairloom/garden-engine/internal/pairing"
	"github.com/pairloom/garden-engine/internal/profile"
	"github.com/pairloom/garden-engine/internal/repository"
)

// Service defines the garden engine business logic: the shared state record,
// the watering/reward loop, placement, punishment, revival, and bulk refunds.
type Service interface {
	// GetOrCreateGardenState returns the pair's garden, creating the default
	// record on first access.
	GetOrCreateGardenState(ctx context.Context, pairID string) (*domain.GardenView, error)

	// Water performs one user's daily watering (state machine in the
	// watering loop; rejects wilted gardens and active cooldowns).
	Water(ctx context.Context, pairID, userID string) (*domain.WaterResult, error)

	// Revive is the paid override for a wilted garden.
	Revive(ctx context.Context, pairID, userID string) (*domain.ReviveResult, error)

	// PlantAt places a growing plant at free coordinates.
	PlantAt(ctx context.Context, pairID, userID string, itemType domain.ItemType, x, y float64, flipped bool) (*domain.PlaceResult, error)

	// PlaceDecorAt places a non-growing decor item.
	PlaceDecorAt(ctx context.Context, pairID, userID string, itemType domain.ItemType, x, y float64, flipped bool) (*domain.PlaceResult, error)

	// PlaceLandmarkAt places a background landmark (no collision).
	PlaceLandmarkAt(ctx context.Context, pairID, userID string, itemType domain.ItemType, x, y float64, flipped bool) (*domain.PlaceLandmarkResult, error)

	// ApplyPunishment runs the neglect check for one garden.
	ApplyPunishment(ctx context.Context, pairID string) (*domain.PunishResult, error)

	// Bulk removals with partial refund to both users.
	RemoveAllPlantsWithRefund(ctx context.Context, pairID string) (*domain.RefundResult, error)
	RemoveAllDecorWithRefund(ctx context.Context, pairID string) (*domain.RefundResult, error)
	RemoveAllLandmarksWithRefund(ctx context.Context, pairID string) (*domain.RefundResult, error)
	RemoveAllGardenItemsWithRefund(ctx context.Context, pairID string) (*domain.RefundResult, error)

	// ClaimPendingHarmonyBonus drains the caller's deferred harmony
	// notification, returning whether one was pending.
	ClaimPendingHarmonyBonus(ctx context.Context, pairID, userID string) (bool, error)
}

// Clock is the wall-clock source for all elapsed-time computations.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock.
type SystemClock struct{}

// Now returns the current wall-clock time.
func (SystemClock) Now() time.Time { return time.Now() }

// Presence reports whether a user currently has an active session, used to
// decide whether a harmony bonus notification must be deferred.
type Presence interface {
	IsOnline(userID string) bool
}

// Config carries the engine tuning. Module-level flags from the original
// design (broadcast behavior, tree radius tuning) are explicit values here.
type Config struct {
	StreakThreshold  int
	StreakRewardGold int
	HarmonyBonusGold int
	RevivalCostGold  int
	RewaterCooldown  time.Duration
	RefundPercent    int
	MaxUpdateRetries int

	// TreeRadiusMultiplier overrides the default tree collision tuning when
	// non-zero.
	TreeRadiusMultiplier float64

	// BroadcastBothSessions publishes update events for both paired sessions
	// rather than only the acting one.
	BroadcastBothSessions bool
}

// DefaultConfig returns the shipped tuning values.
func DefaultConfig() Config {
	return Config{
		StreakThreshold:       DefaultStreakThreshold,
		StreakRewardGold:      DefaultStreakRewardGold,
		HarmonyBonusGold:      DefaultHarmonyBonusGold,
		RevivalCostGold:       DefaultRevivalCostGold,
		RewaterCooldown:       DefaultRewaterCooldown,
		RefundPercent:         DefaultRefundPercent,
		MaxUpdateRetries:      DefaultMaxUpdateRetries,
		BroadcastBothSessions: true,
	}
}

type service struct {
	cfg        Config
	gardenRepo repository.Garden
	profileSvc profile.Service
	pairingSvc pairing.Service
	presence   Presence
	publisher  event.Bus
	checker    *geometry.Checker
	clock      Clock
}

// NewService creates a new garden service
func NewService(
	cfg Config,
	gardenRepo repository.Garden,
	profileSvc profile.Service,
	pairingSvc pairing.Service,
	presence Presence,
	publisher event.Bus,
	clock Clock,
) Service {
	var overrides map[domain.ItemCategory]float64
	if cfg.TreeRadiusMultiplier > 0 {
		overrides = map[domain.ItemCategory]float64{
			domain.CategoryTree: cfg.TreeRadiusMultiplier,
		}
	}
	return &service{
		cfg:        cfg,
		gardenRepo: gardenRepo,
		profileSvc: profileSvc,
		pairingSvc: pairingSvc,
		presence:   presence,
		publisher:  publisher,
		checker:    geometry.NewChecker(overrides),
		clock:      clock,
	}
}

// GetOrCreateGardenState returns the read model for a pair's garden.
func (s *service) GetOrCreateGardenState(ctx context.Context, pairID string) (*domain.GardenView, error) {
	state, err := s.getOrCreate(ctx, pairID)
	if err != nil {
		return nil, err
	}
	return s.viewOf(state), nil
}

func (s *service) viewOf(state *domain.GardenState) *domain.GardenView {
	now := s.clock.Now()

	// Readers see day-boundary resets too, not just mutations. Normalize a
	// copy so the read path never writes through to the stored state.
	normalized := *state
	rolloverNormalize(&normalized, now)

	stages := make(map[string]domain.GrowthStage, len(normalized.Flowers)+len(normalized.Decor))
	for _, item := range normalized.Flowers {
		stages[item.ID] = growth.StageFor(item, now)
	}
	for _, item := range normalized.Decor {
		stages[item.ID] = growth.StageFor(item, now)
	}
	return &domain.GardenView{
		State:  normalized,
		Health: growth.HealthFor(normalized.LastInteraction, now),
		Growth: stages,
	}
}

// getOrCreate loads the pair's garden, lazily creating the default record
// and migrating legacy slot-indexed items on first load.
func (s *service) getOrCreate(ctx context.Context, pairID string) (*domain.GardenState, error) {
	state, err := s.gardenRepo.GetGardenState(ctx, pairID)
	if err == nil {
		if migrateLegacySlots(state) {
			// Best effort: a conflict here just means another session
			// migrated first.
			if updateErr := s.gardenRepo.UpdateGardenState(ctx, state); updateErr != nil && !errors.Is(updateErr, domain.ErrRevisionConflict) {
				return nil, fmt.Errorf("failed to persist slot migration: %w", updateErr)
			}
		}
		return state, nil
	}
	if !errors.Is(err, domain.ErrGardenNotFound) {
		return nil, fmt.Errorf("failed to get garden state: %w", err)
	}

	state = domain.NewGardenState(pairID, s.clock.Now())
	if err := s.gardenRepo.CreateGardenState(ctx, state); err != nil {
		return nil, fmt.Errorf("failed to create garden state: %w", err)
	}
	return state, nil
}

// errNoChange signals a mutation that decided the state must stay untouched
// (idempotence guards); mutateGarden skips the write and publish.
var errNoChange = errors.New("no change")

// mutateGarden runs the read-compute-write loop with optimistic concurrency.
// fn mutates state in place; on a revision conflict the whole computation is
// re-run against a fresh read. Wallet side effects belong after the write
// (collect them in fn's closure), so a retried computation never pays twice.
func (s *service) mutateGarden(ctx context.Context, pairID string, fn func(state *domain.GardenState, now time.Time) error) (*domain.GardenState, error) {
	var lastErr error
	for attempt := 0; attempt <= s.cfg.MaxUpdateRetries; attempt++ {
		state, err := s.getOrCreate(ctx, pairID)
		if err != nil {
			return nil, err
		}

		now := s.clock.Now()
		rolloverNormalize(state, now)

		if err := fn(state, now); err != nil {
			if errors.Is(err, errNoChange) {
				return state, nil
			}
			return nil, err
		}

		state.UpdatedAt = now
		err = s.gardenRepo.UpdateGardenState(ctx, state)
		if err == nil {
			s.publishUpdated(ctx, state)
			return state, nil
		}
		if !errors.Is(err, domain.ErrRevisionConflict) {
			return nil, fmt.Errorf("failed to update garden state: %w", err)
		}
		metrics.RevisionConflicts.Inc()
		lastErr = err
	}
	return nil, fmt.Errorf("%w: gave up after %d retries", lastErr, s.cfg.MaxUpdateRetries)
}

// rolloverNormalize applies the implicit day-boundary resets: wateredByToday
// clears on a new UTC day, and missing a full calendar day breaks the streak.
// Per-user cooldown anchors are never touched here.
func rolloverNormalize(state *domain.GardenState, now time.Time) {
	if state.LastInteraction == nil {
		return
	}
	if growth.SameUTCDay(*state.LastInteraction, now) {
		return
	}
	state.WateredByToday = []string{}
	if daysBetweenUTC(*state.LastInteraction, now) >= 2 {
		state.StreakDays = 0
	}
}

func daysBetweenUTC(a, b time.Time) int {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	start := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	end := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(end.Sub(start) / (24 * time.Hour))
}

func (s *service) publishUpdated(ctx context.Context, state *domain.GardenState) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event.NewGardenUpdatedEvent(state.PairID, state.Revision)); err != nil {
		logger.FromContext(ctx).Warn("Failed to publish garden update", "pairID", state.PairID, "error", err)
	}
}

// payBoth credits both pair members, logging rather than failing the
// already-committed garden write when a wallet call errors.
func (s *service) payBoth(ctx context.Context, pairID string, goldEach int) {
	log := logger.FromContext(ctx)
	members, err := s.pairingSvc.Members(ctx, pairID)
	if err != nil {
		log.Error(LogMsgRewardPayoutFailed, "pairID", pairID, "error", err)
		return
	}
	for _, userID := range members {
		if _, err := s.profileSvc.AdjustGold(ctx, userID, goldEach); err != nil {
			log.Error(LogMsgRewardPayoutFailed, "pairID", pairID, "userID", userID, "error", err)
		}
	}
}
