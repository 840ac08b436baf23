package garden

import (
	"context"
	"time"

	"github.com/pairloom/garden-engine/internal/domain"
	"github.com/pairloom/garden-engine/internal/event"
	"github.com/pairloom/garden-engine/internal/logger"
)

// Removal scopes, also carried on the published event.
const (
	removeScopePlants    = "plants"
	removeScopeDecor     = "decor"
	removeScopeLandmarks = "landmarks"
	removeScopeAll       = "all"
)

// RemoveAllPlantsWithRefund clears every growing plant and refunds part of
// the summed purchase cost to both paired users in full.
func (s *service) RemoveAllPlantsWithRefund(ctx context.Context, pairID string) (*domain.RefundResult, error) {
	return s.removeWithRefund(ctx, pairID, removeScopePlants)
}

// RemoveAllDecorWithRefund clears every decor item with the same refund rule.
func (s *service) RemoveAllDecorWithRefund(ctx context.Context, pairID string) (*domain.RefundResult, error) {
	return s.removeWithRefund(ctx, pairID, removeScopeDecor)
}

// RemoveAllLandmarksWithRefund clears every landmark with the same refund rule.
func (s *service) RemoveAllLandmarksWithRefund(ctx context.Context, pairID string) (*domain.RefundResult, error) {
	return s.removeWithRefund(ctx, pairID, removeScopeLandmarks)
}

// RemoveAllGardenItemsWithRefund clears the whole garden and additionally
// resets the level back to 1.
func (s *service) RemoveAllGardenItemsWithRefund(ctx context.Context, pairID string) (*domain.RefundResult, error) {
	return s.removeWithRefund(ctx, pairID, removeScopeAll)
}

func (s *service) removeWithRefund(ctx context.Context, pairID, scope string) (*domain.RefundResult, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgRemoveCalled, "pairID", pairID, "scope", scope)

	var result domain.RefundResult
	_, err := s.mutateGarden(ctx, pairID, func(state *domain.GardenState, now time.Time) error {
		result = domain.RefundResult{}

		switch scope {
		case removeScopePlants:
			result.ItemsRemoved = len(state.Flowers)
			result.GoldRefundedEach = refundForItems(state.Flowers, s.cfg.RefundPercent)
			state.Flowers = []domain.PlantedItem{}
		case removeScopeDecor:
			result.ItemsRemoved = len(state.Decor)
			result.GoldRefundedEach = refundForItems(state.Decor, s.cfg.RefundPercent)
			state.Decor = []domain.PlantedItem{}
		case removeScopeLandmarks:
			result.ItemsRemoved = len(state.Landmarks)
			result.GoldRefundedEach = refundForLandmarks(state.Landmarks, s.cfg.RefundPercent)
			state.Landmarks = []domain.PlacedLandmark{}
		case removeScopeAll:
			result.ItemsRemoved = len(state.Flowers) + len(state.Decor) + len(state.Landmarks)
			result.GoldRefundedEach = refundForItems(state.Flowers, s.cfg.RefundPercent) +
				refundForItems(state.Decor, s.cfg.RefundPercent) +
				refundForLandmarks(state.Landmarks, s.cfg.RefundPercent)
			state.Flowers = []domain.PlantedItem{}
			state.Decor = []domain.PlantedItem{}
			state.Landmarks = []domain.PlacedLandmark{}
			state.Level = 1
		}

		if result.ItemsRemoved == 0 {
			return errNoChange
		}
		state.VariantCycleIndex = nil
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.ItemsRemoved > 0 {
		if result.GoldRefundedEach > 0 {
			s.payBoth(ctx, pairID, result.GoldRefundedEach)
		}
		s.publish(ctx, event.NewGardenItemsRemovedEvent(pairID, scope, result.ItemsRemoved, result.GoldRefundedEach))
		log.Info("Bulk removal successful",
			"pairID", pairID,
			"scope", scope,
			"itemsRemoved", result.ItemsRemoved,
			"goldRefundedEach", result.GoldRefundedEach)
	}
	return &result, nil
}

// refundForItems sums the per-item refund, flooring each item before summing.
func refundForItems(items []domain.PlantedItem, percent int) int {
	total := 0
	for _, item := range items {
		if spec, ok := domain.SpecFor(item.Type); ok {
			total += spec.Cost * percent / 100
		}
	}
	return total
}

func refundForLandmarks(landmarks []domain.PlacedLandmark, percent int) int {
	total := 0
	for _, landmark := range landmarks {
		if spec, ok := domain.SpecFor(landmark.Type); ok {
			total += spec.Cost * percent / 100
		}
	}
	return total
}
