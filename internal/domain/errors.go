package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Resource errors
	ErrMsgInsufficientGold  = "not enough gold"
	ErrMsgInsufficientWater = "not enough water"

	// Watering errors
	ErrMsgCooldownActive  = "watering on cooldown"
	ErrMsgGardenWilted    = "garden is wilted"
	ErrMsgGardenNotWilted = "garden is not wilted"

	// Placement errors
	ErrMsgCollisionRejected = "placement overlaps an existing item"
	ErrMsgUnknownItemType   = "unknown item type"
	ErrMsgWrongCategory     = "item type not valid for this operation"

	// Lookup errors
	ErrMsgGardenNotFound  = "garden not found"
	ErrMsgProfileNotFound = "profile not found"

	// Concurrency errors
	ErrMsgRevisionConflict = "garden revision conflict"

	// Input errors
	ErrMsgInvalidInput  = "invalid input"
	ErrMsgNotPairMember = "user is not a member of this pair"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Resource errors
	ErrInsufficientGold  = errors.New(ErrMsgInsufficientGold)
	ErrInsufficientWater = errors.New(ErrMsgInsufficientWater)

	// Watering errors
	ErrCooldownActive  = errors.New(ErrMsgCooldownActive)
	ErrGardenWilted    = errors.New(ErrMsgGardenWilted)
	ErrGardenNotWilted = errors.New(ErrMsgGardenNotWilted)

	// Placement errors
	ErrCollisionRejected = errors.New(ErrMsgCollisionRejected)
	ErrUnknownItemType   = errors.New(ErrMsgUnknownItemType)
	ErrWrongCategory     = errors.New(ErrMsgWrongCategory)

	// Lookup errors
	ErrGardenNotFound  = errors.New(ErrMsgGardenNotFound)
	ErrProfileNotFound = errors.New(ErrMsgProfileNotFound)

	// Concurrency errors
	ErrRevisionConflict = errors.New(ErrMsgRevisionConflict)

	// Input errors
	ErrInvalidInput  = errors.New(ErrMsgInvalidInput)
	ErrNotPairMember = errors.New(ErrMsgNotPairMember)
)

// Machine-readable reason codes surfaced in error responses so clients can
// branch UI behavior (revival prompt vs cooldown timer) without parsing
// message text.
const (
	ReasonInsufficientGold  = "insufficient_gold"
	ReasonInsufficientWater = "insufficient_water"
	ReasonCooldownActive    = "cooldown_active"
	ReasonGardenWilted      = "garden_wilted"
	ReasonGardenNotWilted   = "garden_not_wilted"
	ReasonCollisionRejected = "collision_rejected"
	ReasonNotFound          = "not_found"
	ReasonRevisionConflict  = "revision_conflict"
	ReasonInvalidInput      = "invalid_input"
	ReasonNotPairMember     = "not_pair_member"
)
