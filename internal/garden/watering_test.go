package garden

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pairloom/garden-engine/internal/domain"
	"github.com/pairloom/garden-engine/internal/event"
)

func TestWater_FirstWateringOfDay(t *testing.T) {
	h := newTestHarness()
	ctx := context.Background()

	result, err := h.svc.Water(ctx, testPairID, userAlice)
	require.NoError(t, err)

	assert.Equal(t, 1, result.StreakDays)
	assert.False(t, result.StreakRewardPaid)
	assert.False(t, result.HarmonyBonusPaid)
	assert.Equal(t, 0, result.GoldAwarded)
	assert.Equal(t, domain.HealthFresh, result.Health)

	stored := h.repo.stored(testPairID)
	assert.Equal(t, []string{userAlice}, stored.WateredByToday)
	require.NotNil(t, stored.LastInteraction)
	assert.True(t, stored.LastInteraction.Equal(h.clock.Now()))

	assert.Equal(t, 2, h.profiles.water(userAlice), "one water unit consumed")
	assert.Equal(t, 10, h.profiles.gold(userAlice), "no gold on a plain first watering")
}

func TestWater_HarmonyBonus_BothUsersSameDay(t *testing.T) {
	h := newTestHarness()
	ctx := context.Background()

	_, err := h.svc.Water(ctx, testPairID, userAlice)
	require.NoError(t, err)

	result, err := h.svc.Water(ctx, testPairID, userBob)
	require.NoError(t, err)

	assert.True(t, result.HarmonyBonusPaid)
	assert.Equal(t, DefaultHarmonyBonusGold, result.GoldAwarded)
	assert.Equal(t, 11, h.profiles.gold(userAlice))
	assert.Equal(t, 11, h.profiles.gold(userBob))
	assert.Contains(t, h.bus.typesSeen(), event.GardenHarmonyBonus)

	stored := h.repo.stored(testPairID)
	assert.Empty(t, stored.PendingHarmonyBonusFor, "both online, nothing deferred")
}

func TestWater_HarmonyBonus_OfflinePartnerGetsPendingNotification(t *testing.T) {
	h := newTestHarness()
	ctx := context.Background()

	_, err := h.svc.Water(ctx, testPairID, userAlice)
	require.NoError(t, err)

	// Alice goes offline before Bob's watering completes the pair.
	h.presence.online[userAlice] = false

	result, err := h.svc.Water(ctx, testPairID, userBob)
	require.NoError(t, err)

	assert.True(t, result.HarmonyBonusPaid)
	assert.True(t, result.PendingForPartner)
	assert.Equal(t, 11, h.profiles.gold(userAlice), "gold is paid immediately even while offline")

	stored := h.repo.stored(testPairID)
	assert.Equal(t, []string{userAlice}, stored.PendingHarmonyBonusFor)
}

func TestWater_StreakRewardAtThreshold(t *testing.T) {
	h := newTestHarness()
	ctx := context.Background()

	// Two consecutive days already watered.
	watered := h.clock.Now().Add(-20 * time.Hour)
	state := domain.NewGardenState(testPairID, watered)
	state.StreakDays = 2
	state.LastInteraction = &watered
	state.LastWateredByUser[userAlice] = watered
	h.repo.seed(state)

	result, err := h.svc.Water(ctx, testPairID, userAlice)
	require.NoError(t, err)

	assert.True(t, result.StreakRewardPaid)
	assert.Equal(t, 0, result.StreakDays, "streak resets at the threshold")
	assert.Equal(t, DefaultStreakRewardGold, result.GoldAwarded)
	assert.Equal(t, 13, h.profiles.gold(userAlice))
	assert.Equal(t, 13, h.profiles.gold(userBob), "reward goes to both users")
	assert.Contains(t, h.bus.typesSeen(), event.GardenStreakReward)
}

func TestWater_CooldownRejectsEarlyRewater(t *testing.T) {
	h := newTestHarness()
	ctx := context.Background()

	_, err := h.svc.Water(ctx, testPairID, userAlice)
	require.NoError(t, err)

	h.clock.Advance(3 * time.Hour)
	_, err = h.svc.Water(ctx, testPairID, userAlice)
	assert.ErrorIs(t, err, domain.ErrCooldownActive)

	// After the gate the re-watering goes through, refreshing timestamps
	// without replaying the day's streak transition.
	h.clock.Advance(4 * time.Hour)
	result, err := h.svc.Water(ctx, testPairID, userAlice)
	require.NoError(t, err)
	assert.Equal(t, 1, result.StreakDays, "streak unchanged by a re-watering")
	assert.False(t, result.HarmonyBonusPaid)

	stored := h.repo.stored(testPairID)
	assert.Equal(t, []string{userAlice}, stored.WateredByToday)
}

func TestWater_CooldownIsPerUser(t *testing.T) {
	h := newTestHarness()
	ctx := context.Background()

	_, err := h.svc.Water(ctx, testPairID, userAlice)
	require.NoError(t, err)
	aliceAnchor := h.repo.stored(testPairID).LastWateredByUser[userAlice]

	// Bob's watering is never gated by Alice's fresh timestamp, and must not
	// move her anchor.
	h.clock.Advance(5 * time.Minute)
	_, err = h.svc.Water(ctx, testPairID, userBob)
	require.NoError(t, err)

	stored := h.repo.stored(testPairID)
	assert.True(t, stored.LastWateredByUser[userAlice].Equal(aliceAnchor))
	assert.True(t, stored.LastWateredByUser[userBob].Equal(h.clock.Now()))
}

func TestWater_WiltedGardenRejected(t *testing.T) {
	h := newTestHarness()
	ctx := context.Background()

	stale := h.clock.Now().Add(-30 * time.Hour)
	state := domain.NewGardenState(testPairID, stale)
	state.LastInteraction = &stale
	h.repo.seed(state)

	_, err := h.svc.Water(ctx, testPairID, userAlice)
	assert.ErrorIs(t, err, domain.ErrGardenWilted)
	assert.Equal(t, 3, h.profiles.water(userAlice), "no water consumed on rejection")
}

func TestWater_InsufficientWaterRejected(t *testing.T) {
	h := newTestHarness()
	ctx := context.Background()
	h.profiles.setWallet(userAlice, 10, 0)

	_, err := h.svc.Water(ctx, testPairID, userAlice)
	assert.ErrorIs(t, err, domain.ErrInsufficientWater)
}

func TestWater_NonMemberRejected(t *testing.T) {
	h := newTestHarness()
	ctx := context.Background()

	_, err := h.svc.Water(ctx, testPairID, "user-stranger")
	assert.ErrorIs(t, err, domain.ErrNotPairMember)
}

func TestWater_DayRolloverClearsWateredBy(t *testing.T) {
	h := newTestHarness()
	ctx := context.Background()

	_, err := h.svc.Water(ctx, testPairID, userAlice)
	require.NoError(t, err)
	_, err = h.svc.Water(ctx, testPairID, userBob)
	require.NoError(t, err)
	assert.Equal(t, 1, h.repo.stored(testPairID).StreakDays)

	// Next UTC day: set clears, streak continues.
	h.clock.Advance(20 * time.Hour)
	result, err := h.svc.Water(ctx, testPairID, userAlice)
	require.NoError(t, err)
	assert.Equal(t, 2, result.StreakDays)
	assert.Equal(t, []string{userAlice}, h.repo.stored(testPairID).WateredByToday)
}

func TestWater_MissedDayBreaksStreak(t *testing.T) {
	h := newTestHarness()
	ctx := context.Background()

	// A full missed calendar day always means >24h elapsed, so the garden is
	// wilted and the break is observed through the revival path.
	stale := h.clock.Now().Add(-60 * time.Hour)
	state := domain.NewGardenState(testPairID, stale)
	state.StreakDays = 2
	state.LastInteraction = &stale
	h.repo.seed(state)

	_, err := h.svc.Water(ctx, testPairID, userAlice)
	require.ErrorIs(t, err, domain.ErrGardenWilted)

	_, err = h.svc.Revive(ctx, testPairID, userAlice)
	require.NoError(t, err)
	assert.Equal(t, 0, h.repo.stored(testPairID).StreakDays, "missed days broke the streak")

	result, err := h.svc.Water(ctx, testPairID, userAlice)
	require.NoError(t, err)
	assert.Equal(t, 1, result.StreakDays, "streak restarted after the break")
}

func TestRevive_RequiresWiltedGarden(t *testing.T) {
	h := newTestHarness()
	ctx := context.Background()

	_, err := h.svc.Water(ctx, testPairID, userAlice)
	require.NoError(t, err)

	_, err = h.svc.Revive(ctx, testPairID, userAlice)
	assert.ErrorIs(t, err, domain.ErrGardenNotWilted)
}

func TestRevive_WiltedGarden(t *testing.T) {
	h := newTestHarness()
	ctx := context.Background()

	stale := h.clock.Now().Add(-30 * time.Hour)
	state := domain.NewGardenState(testPairID, stale)
	state.StreakDays = 1
	state.LastInteraction = &stale
	h.repo.seed(state)

	result, err := h.svc.Revive(ctx, testPairID, userAlice)
	require.NoError(t, err)

	assert.Equal(t, DefaultRevivalCostGold, result.GoldSpent)
	assert.Equal(t, domain.HealthFresh, result.Health)
	assert.Equal(t, 10-DefaultRevivalCostGold, h.profiles.gold(userAlice))
	assert.Equal(t, 10, h.profiles.gold(userBob), "only the requester pays")

	// Revival resets only the decay anchor.
	stored := h.repo.stored(testPairID)
	require.NotNil(t, stored.LastInteraction)
	assert.True(t, stored.LastInteraction.Equal(h.clock.Now()))
}

func TestRevive_InsufficientGold(t *testing.T) {
	h := newTestHarness()
	ctx := context.Background()
	h.profiles.setWallet(userAlice, DefaultRevivalCostGold-1, 3)

	stale := h.clock.Now().Add(-30 * time.Hour)
	state := domain.NewGardenState(testPairID, stale)
	state.LastInteraction = &stale
	h.repo.seed(state)

	_, err := h.svc.Revive(ctx, testPairID, userAlice)
	assert.ErrorIs(t, err, domain.ErrInsufficientGold)
}

func TestClaimPendingHarmonyBonus(t *testing.T) {
	h := newTestHarness()
	ctx := context.Background()

	_, err := h.svc.Water(ctx, testPairID, userAlice)
	require.NoError(t, err)
	h.presence.online[userAlice] = false
	_, err = h.svc.Water(ctx, testPairID, userBob)
	require.NoError(t, err)

	claimed, err := h.svc.ClaimPendingHarmonyBonus(ctx, testPairID, userAlice)
	require.NoError(t, err)
	assert.True(t, claimed)
	assert.Empty(t, h.repo.stored(testPairID).PendingHarmonyBonusFor)

	// Second claim is a no-op.
	claimed, err = h.svc.ClaimPendingHarmonyBonus(ctx, testPairID, userAlice)
	require.NoError(t, err)
	assert.False(t, claimed)
}
