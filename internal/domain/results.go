package domain

import "time"

// WaterResult is returned by a successful watering.
type WaterResult struct {
	StreakDays        int         `json:"streak_days"`
	StreakRewardPaid  bool        `json:"streak_reward_paid"`
	HarmonyBonusPaid  bool        `json:"harmony_bonus_paid"`
	GoldAwarded       int         `json:"gold_awarded"` // to the caller
	PendingForPartner bool        `json:"pending_for_partner"`
	Health            HealthStage `json:"health"`
	WateredAt         time.Time   `json:"watered_at"`
}

// ReviveResult is returned by a successful paid revival.
type ReviveResult struct {
	GoldSpent int         `json:"gold_spent"`
	Health    HealthStage `json:"health"`
	RevivedAt time.Time   `json:"revived_at"`
}

// PlaceResult is returned by successful plant/decor/landmark placement.
type PlaceResult struct {
	Item            PlantedItem `json:"item"`
	FirstOfCategory bool        `json:"first_of_category"`
}

// PlaceLandmarkResult is returned by successful landmark placement.
type PlaceLandmarkResult struct {
	Landmark PlacedLandmark `json:"landmark"`
}

// PunishResult is returned by the neglect punishment loop. Applied=false
// means the idempotence guard fired and nothing changed.
type PunishResult struct {
	Applied      bool   `json:"applied"`
	LevelBefore  int    `json:"level_before"`
	LevelAfter   int    `json:"level_after"`
	PrunedItemID string `json:"pruned_item_id,omitempty"`
}

// RefundResult is returned by bulk removal operations. GoldRefundedEach is
// paid in full to both paired users, not split.
type RefundResult struct {
	ItemsRemoved     int `json:"items_removed"`
	GoldRefundedEach int `json:"gold_refunded_each"`
}

// GardenView is the read model returned to clients: the raw state plus the
// derived health stage and per-item growth stages the UI renders from.
type GardenView struct {
	State  GardenState            `json:"state"`
	Health HealthStage            `json:"health"`
	Growth map[string]GrowthStage `json:"growth"` // item ID -> stage
}
