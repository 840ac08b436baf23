package garden

import (
	"context"
	"time"

	"github.com/pairloom/garden-engine/internal/domain"
	"github.com/pairloom/garden-engine/internal/event"
	"github.com/pairloom/garden-engine/internal/logger"
)

// ApplyPunishment runs the neglect check for one garden: after 24 hours
// without interaction the level drops (floor 1), the streak breaks, and the
// most recently planted flower is pruned. LastInteraction is deliberately
// left alone so the garden stays visibly wilted until a real watering.
//
// The guard makes repeated triggers harmless: when the level is already at
// its floor and the streak already broken, nothing changes.
func (s *service) ApplyPunishment(ctx context.Context, pairID string) (*domain.PunishResult, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgPunishCalled, "pairID", pairID)

	var result domain.PunishResult
	_, err := s.mutateGarden(ctx, pairID, func(state *domain.GardenState, now time.Time) error {
		result = domain.PunishResult{LevelBefore: state.Level, LevelAfter: state.Level}

		if state.LastInteraction == nil || now.Sub(*state.LastInteraction) <= NeglectThreshold {
			return errNoChange
		}
		if state.Level <= 1 && state.StreakDays == 0 {
			return errNoChange
		}

		if state.Level > 1 {
			state.Level--
		}
		state.StreakDays = 0
		result.Applied = true
		result.LevelAfter = state.Level

		if result.LevelAfter < result.LevelBefore && len(state.Flowers) > 0 {
			pruned := pruneNewestFlower(state)
			result.PrunedItemID = pruned.ID
			state.VariantCycleIndex = nil
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.Applied {
		s.publish(ctx, event.NewGardenPunishedEvent(pairID, result.LevelBefore, result.LevelAfter, result.PrunedItemID))
		log.Info("Punishment applied",
			"pairID", pairID,
			"levelBefore", result.LevelBefore,
			"levelAfter", result.LevelAfter,
			"prunedItemID", result.PrunedItemID)
	}
	return &result, nil
}

// pruneNewestFlower removes and returns the most recently planted flower.
// Callers must ensure at least one flower exists.
func pruneNewestFlower(state *domain.GardenState) domain.PlantedItem {
	newest := 0
	for i := range state.Flowers {
		if state.Flowers[i].PlantedAt.After(state.Flowers[newest].PlantedAt) {
			newest = i
		}
	}
	pruned := state.Flowers[newest]
	state.Flowers = append(state.Flowers[:newest], state.Flowers[newest+1:]...)
	return pruned
}
