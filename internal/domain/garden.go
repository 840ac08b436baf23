package domain

import "time"

// GardenState is the shared record for one paired couple's garden.
// Exactly one exists per pair; it is created lazily on first access and
// lives for the lifetime of the pairing.
type GardenState struct {
	PairID          string     `json:"pair_id"`
	Level           int        `json:"level"`
	StreakDays      int        `json:"streak_days"`
	LastInteraction *time.Time `json:"last_interaction,omitempty"`

	// WateredByToday resets implicitly when LastInteraction rolls to a new
	// UTC calendar day.
	WateredByToday []string `json:"watered_by_today"`

	// LastWateredByUser is the per-user cooldown anchor. One user's entry is
	// never touched by the other user's actions, and never reset by day
	// rollover.
	LastWateredByUser map[string]time.Time `json:"last_watered_by_user"`

	// VariantCycleIndex drives deterministic variant rotation for newly
	// planted growing plants. nil means the next pick is uniformly random.
	VariantCycleIndex *int `json:"variant_cycle_index,omitempty"`

	Flowers   []PlantedItem    `json:"flowers"`
	Decor     []PlantedItem    `json:"decor"`
	Landmarks []PlacedLandmark `json:"landmarks"`

	// One-shot achievement flags, set the first time each category is planted.
	FirstPlantFlower     bool `json:"first_plant_flower"`
	FirstPlantLargePlant bool `json:"first_plant_large_plant"`
	FirstPlantTree       bool `json:"first_plant_tree"`

	// PendingHarmonyBonusFor queues user IDs whose harmony bonus fired while
	// they were offline, so the UI can surface it on their next session.
	PendingHarmonyBonusFor []string `json:"pending_harmony_bonus_for"`

	// Revision is the optimistic-concurrency counter. Every write must carry
	// the revision it read; the store rejects stale writes.
	Revision int64 `json:"revision"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Position is the anchor point of a placed item: the bottom-center of the
// rendered sprite. All collision math runs on anchors.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// PlantedItem is a flower or decor item placed in the garden.
type PlantedItem struct {
	ID        string    `json:"id"`
	Type      ItemType  `json:"type"`
	Variant   int       `json:"variant,omitempty"` // cosmetic, growing plants only
	PlantedAt time.Time `json:"planted_at"`
	Position  Position  `json:"position"`
	Flipped   bool      `json:"flipped"`

	// SlotIndex carries the legacy discrete placement slot for items from
	// old saves. Zero-valued (nil) for free-coordinate placements.
	SlotIndex *int `json:"slot_index,omitempty"`
}

// PlacedLandmark is a background item. Landmarks are exempt from collision
// and may freely overlap anything.
type PlacedLandmark struct {
	ID       string    `json:"id"`
	Type     ItemType  `json:"type"`
	PlacedAt time.Time `json:"placed_at"`
	Position Position  `json:"position"`
	Flipped  bool      `json:"flipped"`
}

// HealthStage is the per-garden decay state derived from LastInteraction.
type HealthStage string

const (
	HealthFresh   HealthStage = "fresh"   // < 12h since interaction
	HealthWilting HealthStage = "wilting" // 12-24h
	HealthWilted  HealthStage = "wilted"  // >= 24h; blocks normal watering
)

// GrowthStage is the per-item maturity state derived from PlantedAt.
type GrowthStage string

const (
	GrowthSapling GrowthStage = "sapling"
	GrowthMature  GrowthStage = "mature"
)

// NewGardenState returns the lazily-created default state for a pair.
func NewGardenState(pairID string, now time.Time) *GardenState {
	return &GardenState{
		PairID:            pairID,
		Level:             1,
		StreakDays:        0,
		WateredByToday:    []string{},
		LastWateredByUser: map[string]time.Time{},
		Flowers:           []PlantedItem{},
		Decor:             []PlantedItem{},
		Landmarks:         []PlacedLandmark{},
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

// WateredToday reports whether userID already appears in WateredByToday.
func (g *GardenState) WateredToday(userID string) bool {
	for _, id := range g.WateredByToday {
		if id == userID {
			return true
		}
	}
	return false
}

// RemoveWateredToday removes userID from WateredByToday if present.
func (g *GardenState) RemoveWateredToday(userID string) {
	filtered := g.WateredByToday[:0]
	for _, id := range g.WateredByToday {
		if id != userID {
			filtered = append(filtered, id)
		}
	}
	g.WateredByToday = filtered
}

// HasPendingHarmonyBonus reports whether userID has an unclaimed harmony
// bonus notification queued.
func (g *GardenState) HasPendingHarmonyBonus(userID string) bool {
	for _, id := range g.PendingHarmonyBonusFor {
		if id == userID {
			return true
		}
	}
	return false
}
