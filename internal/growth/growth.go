// Package growth maps elapsed time to discrete growth and health stages.
// Everything here is a pure function of the clock; the garden service passes
// `now` in so tests can pin time.
package growth

import (
	"time"

	"github.com/pairloom/garden-engine/internal/domain"
)

// Garden health thresholds, measured from the last interaction.
const (
	WiltingAfter = 12 * time.Hour
	WiltedAfter  = 24 * time.Hour
)

// SaplingScale is the render scale for immature plants; mature plants render
// at full size. Exposed so clients and the view model agree on the number.
const SaplingScale = 0.7

// StageFor returns the growth stage of a placed item at the given time.
// Non-growing categories are always mature.
func StageFor(item domain.PlantedItem, now time.Time) domain.GrowthStage {
	spec, ok := domain.SpecFor(item.Type)
	if !ok || !spec.Category.IsGrowing() {
		return domain.GrowthMature
	}
	if now.Sub(item.PlantedAt) < spec.MatureAfter {
		return domain.GrowthSapling
	}
	return domain.GrowthMature
}

// HealthFor derives the garden-wide health stage from the last interaction
// timestamp. A garden that has never been interacted with counts as fresh
// (it was just created).
func HealthFor(lastInteraction *time.Time, now time.Time) domain.HealthStage {
	if lastInteraction == nil {
		return domain.HealthFresh
	}
	elapsed := now.Sub(*lastInteraction)
	switch {
	case elapsed < WiltingAfter:
		return domain.HealthFresh
	case elapsed < WiltedAfter:
		return domain.HealthWilting
	default:
		return domain.HealthWilted
	}
}

// SameUTCDay reports whether two timestamps fall on the same UTC calendar
// day, the boundary used for streak and watered-today bookkeeping.
func SameUTCDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}
