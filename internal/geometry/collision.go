package geometry

import (
	"fmt"
	"math"

	"github.com/pairloom/garden-engine/internal/domain"
)

const (
	// Growing-plant radii are scaled down to match the visually rendered
	// danger zone: trees first, then everything.
	treeBaseScale    = 2.0 / 3.0
	growingBaseScale = 0.5
)

// DefaultMultipliers returns the per-category tuning multipliers applied on
// top of the base scaling. Trees are tuned tighter so canopies may overlap.
func DefaultMultipliers() map[domain.ItemCategory]float64 {
	return map[domain.ItemCategory]float64{
		domain.CategoryFlower:     1.0,
		domain.CategoryLargePlant: 1.0,
		domain.CategoryTree:       0.6,
	}
}

// Checker validates placements against a garden's existing items. It holds
// tuning only; it has no mutable state and is safe for concurrent use.
type Checker struct {
	multipliers map[domain.ItemCategory]float64
}

// NewChecker builds a collision checker. Entries in overrides replace the
// default per-category multipliers; nil means all defaults.
func NewChecker(overrides map[domain.ItemCategory]float64) *Checker {
	multipliers := DefaultMultipliers()
	for category, m := range overrides {
		multipliers[category] = m
	}
	return &Checker{multipliers: multipliers}
}

// EffectiveRadius computes the collision radius for an item type.
// Growing plants scale the sprite radius down (trees x2/3, then x1/2) and
// apply the category multiplier; decor uses its configured radius as-is,
// falling back to the default when unset.
func (c *Checker) EffectiveRadius(spec domain.ItemSpec) float64 {
	if spec.Category == domain.CategoryDecor {
		if spec.BaseRadius <= 0 {
			return domain.DefaultDecorRadius
		}
		return spec.BaseRadius
	}

	radius := spec.BaseRadius
	if spec.Category == domain.CategoryTree {
		radius *= treeBaseScale
	}
	radius *= growingBaseScale

	if m, ok := c.multipliers[spec.Category]; ok {
		radius *= m
	}
	return radius
}

// CanPlace reports whether a candidate anchor is clear of every existing
// flower and decor item. Two items collide when the distance between anchors
// is less than the average of their effective radii; the formula is symmetric
// in the two items. Landmarks never participate.
func (c *Checker) CanPlace(existing []domain.PlantedItem, candidate domain.ItemType, at domain.Position) (bool, string) {
	candidateSpec, ok := domain.SpecFor(candidate)
	if !ok {
		return false, fmt.Sprintf("unknown item type %q", candidate)
	}
	candidateRadius := c.EffectiveRadius(candidateSpec)

	for _, item := range existing {
		itemSpec, ok := domain.SpecFor(item.Type)
		if !ok {
			// Items from old saves may predate the current catalog; treat
			// them as default-radius decor rather than blocking placement.
			itemSpec = domain.ItemSpec{Type: item.Type, Category: domain.CategoryDecor}
		}
		itemRadius := c.EffectiveRadius(itemSpec)

		minDistance := (candidateRadius + itemRadius) / 2
		if distance(at, item.Position) < minDistance {
			return false, fmt.Sprintf("too close to %s at (%.0f, %.0f)", item.Type, item.Position.X, item.Position.Y)
		}
	}
	return true, ""
}

func distance(a, b domain.Position) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}
