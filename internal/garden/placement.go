package garden

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/pairloom/garden-engine/internal/domain"
	"github.com/pairloom/garden-engine/internal/event"
	"github.com/pairloom/garden-engine/internal/geometry"
	"github.com/pairloom/garden-engine/internal/logger"
	"github.com/pairloom/garden-engine/internal/metrics"
)

// PlantAt places a growing plant at free coordinates, after collision
// validation against every existing flower and decor item.
func (s *service) PlantAt(ctx context.Context, pairID, userID string, itemType domain.ItemType, x, y float64, flipped bool) (*domain.PlaceResult, error) {
	spec, ok := domain.SpecFor(itemType)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownItemType, itemType)
	}
	if !spec.Category.IsGrowing() {
		return nil, fmt.Errorf("%w: %s is not a growing plant", domain.ErrWrongCategory, itemType)
	}
	return s.placeCollidable(ctx, pairID, userID, spec, x, y, flipped)
}

// PlaceDecorAt places a non-growing decor item. Decor collides like plants
// but has no variant and no sapling phase.
func (s *service) PlaceDecorAt(ctx context.Context, pairID, userID string, itemType domain.ItemType, x, y float64, flipped bool) (*domain.PlaceResult, error) {
	spec, ok := domain.SpecFor(itemType)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownItemType, itemType)
	}
	if spec.Category != domain.CategoryDecor {
		return nil, fmt.Errorf("%w: %s is not decor", domain.ErrWrongCategory, itemType)
	}
	return s.placeCollidable(ctx, pairID, userID, spec, x, y, flipped)
}

func (s *service) placeCollidable(ctx context.Context, pairID, userID string, spec domain.ItemSpec, x, y float64, flipped bool) (*domain.PlaceResult, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgPlaceCalled, "pairID", pairID, "userID", userID, "itemType", spec.Type)

	if _, err := s.pairingSvc.PartnerOf(ctx, pairID, userID); err != nil {
		return nil, err
	}

	at := domain.Position{X: x, Y: y}
	var result domain.PlaceResult
	_, err := s.mutateGarden(ctx, pairID, func(state *domain.GardenState, now time.Time) error {
		result = domain.PlaceResult{}

		existing := make([]domain.PlantedItem, 0, len(state.Flowers)+len(state.Decor))
		existing = append(existing, state.Flowers...)
		existing = append(existing, state.Decor...)
		if ok, reason := s.checker.CanPlace(existing, spec.Type, at); !ok {
			metrics.CollisionsRejected.Inc()
			return fmt.Errorf("%w: %s", domain.ErrCollisionRejected, reason)
		}

		item := domain.PlantedItem{
			ID:        uuid.NewString(),
			Type:      spec.Type,
			PlantedAt: now,
			Position:  at,
			Flipped:   flipped,
		}

		if spec.Category.IsGrowing() {
			item.Variant = nextVariant(state)
			state.Flowers = append(state.Flowers, item)
			result.FirstOfCategory = markFirstPlant(state, spec.Category)
		} else {
			state.Decor = append(state.Decor, item)
		}

		result.Item = item
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, event.NewGardenItemPlacedEvent(pairID, userID, result.Item.ID, string(spec.Type)))
	log.Info(LogMsgPlaceSuccessful, "pairID", pairID, "itemID", result.Item.ID, "itemType", spec.Type)
	return &result, nil
}

// PlaceLandmarkAt places a background landmark. Landmarks are exempt from
// collision and may freely overlap anything.
func (s *service) PlaceLandmarkAt(ctx context.Context, pairID, userID string, itemType domain.ItemType, x, y float64, flipped bool) (*domain.PlaceLandmarkResult, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgPlaceCalled, "pairID", pairID, "userID", userID, "itemType", itemType)

	spec, ok := domain.SpecFor(itemType)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownItemType, itemType)
	}
	if spec.Category != domain.CategoryLandmark {
		return nil, fmt.Errorf("%w: %s is not a landmark", domain.ErrWrongCategory, itemType)
	}
	if _, err := s.pairingSvc.PartnerOf(ctx, pairID, userID); err != nil {
		return nil, err
	}

	var result domain.PlaceLandmarkResult
	_, err := s.mutateGarden(ctx, pairID, func(state *domain.GardenState, now time.Time) error {
		landmark := domain.PlacedLandmark{
			ID:       uuid.NewString(),
			Type:     itemType,
			PlacedAt: now,
			Position: domain.Position{X: x, Y: y},
			Flipped:  flipped,
		}
		state.Landmarks = append(state.Landmarks, landmark)
		result = domain.PlaceLandmarkResult{Landmark: landmark}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, event.NewGardenItemPlacedEvent(pairID, userID, result.Landmark.ID, string(itemType)))
	log.Info(LogMsgPlaceSuccessful, "pairID", pairID, "itemID", result.Landmark.ID, "itemType", itemType)
	return &result, nil
}

// nextVariant resolves the cosmetic variant for a new growing plant and
// advances the cycle. A nil cycle index means the pick is uniformly random;
// afterwards the cycle walks deterministically until a removal resets it.
func nextVariant(state *domain.GardenState) int {
	var index int
	if state.VariantCycleIndex == nil {
		index = rand.Intn(domain.VariantCount) //nolint:gosec // G404: cosmetic variant pick, not security sensitive
	} else {
		index = *state.VariantCycleIndex % domain.VariantCount
	}
	next := (index + 1) % domain.VariantCount
	state.VariantCycleIndex = &next
	return index + 1
}

// markFirstPlant sets the one-shot achievement flag for a category and
// reports whether this planting was the first of it.
func markFirstPlant(state *domain.GardenState, category domain.ItemCategory) bool {
	switch category {
	case domain.CategoryFlower:
		if !state.FirstPlantFlower {
			state.FirstPlantFlower = true
			return true
		}
	case domain.CategoryLargePlant:
		if !state.FirstPlantLargePlant {
			state.FirstPlantLargePlant = true
			return true
		}
	case domain.CategoryTree:
		if !state.FirstPlantTree {
			state.FirstPlantTree = true
			return true
		}
	}
	return false
}

// migrateLegacySlots converts slot-indexed items from old saves to free
// coordinates. Returns true when anything changed.
func migrateLegacySlots(state *domain.GardenState) bool {
	changed := migrateSlotItems(state.Flowers)
	if migrateSlotItems(state.Decor) {
		changed = true
	}
	return changed
}

func migrateSlotItems(items []domain.PlantedItem) bool {
	changed := false
	for i := range items {
		if items[i].SlotIndex == nil {
			continue
		}
		items[i].Position = geometry.SlotPosition(*items[i].SlotIndex)
		items[i].SlotIndex = nil
		changed = true
	}
	return changed
}
