package garden

import "time"

// Engine tuning defaults. Deployments override these through Config; the
// numbers here are the product's shipped values.
const (
	// DefaultStreakThreshold is the streak length that triggers the payout
	// and reset.
	DefaultStreakThreshold = 3

	// DefaultStreakRewardGold is paid to both users when the streak completes.
	DefaultStreakRewardGold = 3

	// DefaultHarmonyBonusGold is paid to both users when both water on the
	// same day.
	DefaultHarmonyBonusGold = 1

	// DefaultRevivalCostGold is charged for reviving a wilted garden.
	DefaultRevivalCostGold = 5

	// DefaultRewaterCooldown is the per-user gate for watering again on the
	// same day.
	DefaultRewaterCooldown = 6 * time.Hour

	// DefaultRefundPercent of summed purchase cost is returned on bulk removal.
	DefaultRefundPercent = 60

	// DefaultMaxUpdateRetries bounds optimistic-concurrency retries before
	// giving up with a conflict error.
	DefaultMaxUpdateRetries = 3

	// WaterCost is the water units consumed per watering.
	WaterCost = 1

	// NeglectThreshold is how stale a garden must be before punishment applies.
	NeglectThreshold = 24 * time.Hour
)

// Log message constants
const (
	LogMsgWaterCalled        = "Water called"
	LogMsgWaterSuccessful    = "Water successful"
	LogMsgReviveCalled       = "Revive called"
	LogMsgReviveSuccessful   = "Revive successful"
	LogMsgPlaceCalled        = "Placement called"
	LogMsgPlaceSuccessful    = "Placement successful"
	LogMsgPunishCalled       = "Punishment check called"
	LogMsgRemoveCalled       = "Bulk removal called"
	LogMsgRewardPayoutFailed = "Reward payout failed"
)
