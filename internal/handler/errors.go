package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details for security reasons.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	// HTTP status messages
	ErrMsgMethodNotAllowed      = "Method not allowed"
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	// Query parameter error messages
	ErrMsgMissingQueryParam = "Missing %s query parameter"

	// Path parameter error messages
	ErrMsgMissingPairID = "Missing pair ID"

	// Generic messages
	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgUnknownError       = "Unknown error"

	// Garden operation error messages
	ErrMsgWaterFailed      = "Failed to water the garden"
	ErrMsgReviveFailed     = "Failed to revive the garden"
	ErrMsgPlaceFailed      = "Failed to place the item"
	ErrMsgRemoveFailed     = "Failed to remove items"
	ErrMsgPunishFailed     = "Failed to run the neglect check"
	ErrMsgGetGardenFailed  = "Failed to load the garden"
	ErrMsgClaimBonusFailed = "Failed to claim the pending bonus"
	ErrMsgGetWalletFailed  = "Failed to load the wallet"
	ErrMsgCreatePairFailed = "Failed to establish the pair"

	// User-facing messages for mapped domain errors
	ErrMsgGardenNotFoundHTTP  = "Garden not found"
	ErrMsgProfileNotFoundHTTP = "Profile not found"
	ErrMsgNotEnoughGold       = "Not enough gold"
	ErrMsgNotEnoughWater      = "Not enough water"
	ErrMsgOnCooldown          = "Watering is on cooldown. Try again later"
	ErrMsgGardenWiltedHTTP    = "The garden has wilted and needs a revival"
	ErrMsgGardenNotWiltedHTTP = "The garden is not wilted"
	ErrMsgCollisionHTTP       = "That spot overlaps an existing item"
	ErrMsgUnknownItemHTTP     = "Unknown item type"
	ErrMsgWrongCategoryHTTP   = "That item cannot be placed this way"
	ErrMsgNotPairMemberHTTP   = "You are not a member of this pair"
	ErrMsgConflictHTTP        = "The garden changed while processing. Try again"
	ErrMsgInvalidInputHTTP    = "Invalid request. Please check your inputs."
)

// Success messages for API responses
// These are user-facing success messages returned in JSON responses
const (
	MsgGardenWateredSuccess = "Garden watered"
	MsgGardenRevivedSuccess = "Garden revived"
	MsgItemPlacedSuccess    = "Item placed"
	MsgItemsRemovedSuccess  = "Items removed"
	MsgPairCreatedSuccess   = "Pair established"
	MsgNoPendingBonus       = "No pending bonus"
	MsgBonusClaimed         = "Harmony bonus claimed"
)
