package geometry

import (
	"math/rand"

	"github.com/pairloom/garden-engine/internal/domain"
)

// Legacy slot placement. Old saves positioned items on a discrete slot grid
// instead of free coordinates; the allocator and the slot-to-coordinate
// mapping are kept for migrating those saves. New placements never use slots.
const (
	// SlotCount is the number of discrete positions in the legacy grid.
	SlotCount = 24

	// GardenWidth and GardenBaseY describe the legacy coordinate frame the
	// slots map into.
	GardenWidth = 1200.0
	GardenBaseY = 520.0

	// innerBandFraction restricts early placements away from the edges.
	innerBandFraction = 0.82

	// innerBandItemLimit is the placement count below which slot choice is
	// constrained to the inner band.
	innerBandItemLimit = 10
)

// AllocateSlot picks a slot index uniformly at random from unused slots.
// While the garden holds fewer than 10 items, only slots inside the inner
// ~82% band are eligible; afterwards the full range opens up. Returns -1
// when no eligible slot remains.
func AllocateSlot(used map[int]bool, placedCount int, rng *rand.Rand) int {
	lo, hi := 0, SlotCount
	if placedCount < innerBandItemLimit {
		lo, hi = innerBand()
	}

	free := make([]int, 0, hi-lo)
	for i := lo; i < hi; i++ {
		if !used[i] {
			free = append(free, i)
		}
	}
	if len(free) == 0 {
		return -1
	}
	return free[rng.Intn(len(free))]
}

// SlotPosition maps a legacy slot index to the free coordinate it renders at,
// used when migrating old saves to coordinate placement.
func SlotPosition(index int) domain.Position {
	step := GardenWidth / float64(SlotCount)
	return domain.Position{
		X: step/2 + step*float64(index),
		Y: GardenBaseY,
	}
}

// innerBand returns the half-open slot range covering the centered inner
// band of the garden width.
func innerBand() (int, int) {
	slots := float64(SlotCount)
	margin := int(slots * (1 - innerBandFraction) / 2)
	if margin < 1 {
		margin = 1
	}
	return margin, SlotCount - margin
}
