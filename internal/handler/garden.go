package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/pairloom/garden-engine/internal/domain"
	"github.com/pairloom/garden-engine/internal/garden"
	"github.com/pairloom/garden-engine/internal/logger"
)

// WaterGardenRequest represents the request to water the shared garden
type WaterGardenRequest struct {
	UserID string `json:"user_id" validate:"required,max=100"`
}

// ReviveGardenRequest represents the request to revive a wilted garden
type ReviveGardenRequest struct {
	UserID string `json:"user_id" validate:"required,max=100"`
}

// PlaceItemRequest represents the request to place an item at free coordinates
type PlaceItemRequest struct {
	UserID   string  `json:"user_id" validate:"required,max=100"`
	ItemType string  `json:"item_type" validate:"required,itemtype"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Flipped  bool    `json:"flipped"`
}

// RemoveItemsRequest represents the request to bulk-remove items for a refund
type RemoveItemsRequest struct {
	Scope string `json:"scope" validate:"required,scope"`
}

// ClaimBonusRequest represents the request to claim a deferred harmony bonus
type ClaimBonusRequest struct {
	UserID string `json:"user_id" validate:"required,max=100"`
}

// WaterGardenResponse wraps a watering result
type WaterGardenResponse struct {
	Message string             `json:"message"`
	Result  domain.WaterResult `json:"result"`
}

// ReviveGardenResponse wraps a revival result
type ReviveGardenResponse struct {
	Message string              `json:"message"`
	Result  domain.ReviveResult `json:"result"`
}

// RemoveItemsResponse wraps a bulk-removal result
type RemoveItemsResponse struct {
	Message string              `json:"message"`
	Result  domain.RefundResult `json:"result"`
}

// ClaimBonusResponse reports whether a deferred harmony bonus was pending
type ClaimBonusResponse struct {
	Message string `json:"message"`
	Claimed bool   `json:"claimed"`
}

// GardenHandler handles garden-related HTTP requests
type GardenHandler struct {
	gardenSvc garden.Service
}

// NewGardenHandler creates a new garden handler
func NewGardenHandler(gardenSvc garden.Service) *GardenHandler {
	return &GardenHandler{
		gardenSvc: gardenSvc,
	}
}

func pairIDFromRequest(r *http.Request, w http.ResponseWriter) (string, bool) {
	pairID := chi.URLParam(r, "pairID")
	if pairID == "" {
		http.Error(w, ErrMsgMissingPairID, http.StatusBadRequest)
		return "", false
	}
	return pairID, true
}

// HandleGetGarden returns the pair's garden state
// @Summary Get garden state
// @Description Returns the shared garden for a pair, creating the default garden on first access. Includes the derived health stage and per-item growth stages.
// @Tags garden
// @Produce json
// @Param pairID path string true "Pair ID"
// @Success 200 {object} domain.GardenView
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /garden/{pairID} [get]
func (h *GardenHandler) HandleGetGarden(w http.ResponseWriter, r *http.Request) {
	pairID, ok := pairIDFromRequest(r, w)
	if !ok {
		return
	}

	view, err := h.gardenSvc.GetOrCreateGardenState(r.Context(), pairID)
	if err != nil {
		respondServiceError(w, r, ErrMsgGetGardenFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, view)
}

// HandleWater waters the shared garden
// @Summary Water the garden
// @Description Performs one user's watering: consumes one water, advances the streak on the day's first watering, and pays the harmony bonus when both users water the same day. Wilted gardens reject watering and need a revival.
// @Tags garden
// @Accept json
// @Produce json
// @Param pairID path string true "Pair ID"
// @Param request body WaterGardenRequest true "Water request"
// @Success 200 {object} WaterGardenResponse "Watering successful"
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 402 {object} ErrorResponse "Not enough water"
// @Failure 409 {object} ErrorResponse "Garden is wilted"
// @Failure 429 {object} ErrorResponse "Re-water cooldown active"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /garden/{pairID}/water [post]
func (h *GardenHandler) HandleWater(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	pairID, ok := pairIDFromRequest(r, w)
	if !ok {
		return
	}

	var req WaterGardenRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Water garden"); err != nil {
		return
	}

	result, err := h.gardenSvc.Water(r.Context(), pairID, req.UserID)
	if err != nil {
		respondServiceError(w, r, ErrMsgWaterFailed, err)
		return
	}

	log.Info("Garden watered",
		"pairID", pairID,
		"userID", req.UserID,
		"streak", result.StreakDays,
		"harmony", result.HarmonyBonusPaid)

	respondJSON(w, http.StatusOK, WaterGardenResponse{
		Message: MsgGardenWateredSuccess,
		Result:  *result,
	})
}

// HandleRevive revives a wilted garden for gold
// @Summary Revive a wilted garden
// @Description Pays gold to reset a wilted garden's decay clock. The garden must actually be wilted.
// @Tags garden
// @Accept json
// @Produce json
// @Param pairID path string true "Pair ID"
// @Param request body ReviveGardenRequest true "Revive request"
// @Success 200 {object} ReviveGardenResponse "Revival successful"
// @Failure 402 {object} ErrorResponse "Not enough gold"
// @Failure 409 {object} ErrorResponse "Garden is not wilted"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /garden/{pairID}/revive [post]
func (h *GardenHandler) HandleRevive(w http.ResponseWriter, r *http.Request) {
	pairID, ok := pairIDFromRequest(r, w)
	if !ok {
		return
	}

	var req ReviveGardenRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Revive garden"); err != nil {
		return
	}

	result, err := h.gardenSvc.Revive(r.Context(), pairID, req.UserID)
	if err != nil {
		respondServiceError(w, r, ErrMsgReviveFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, ReviveGardenResponse{
		Message: MsgGardenRevivedSuccess,
		Result:  *result,
	})
}

// HandlePlant places a growing plant at free coordinates
// @Summary Plant at coordinates
// @Description Places a flower, large plant, or tree at free coordinates. The spot must not overlap existing plants or decor.
// @Tags garden
// @Accept json
// @Produce json
// @Param pairID path string true "Pair ID"
// @Param request body PlaceItemRequest true "Placement request"
// @Success 201 {object} domain.PlaceResult "Plant placed"
// @Failure 400 {object} ErrorResponse "Invalid request or item type"
// @Failure 409 {object} ErrorResponse "Placement overlaps an existing item"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /garden/{pairID}/plant [post]
func (h *GardenHandler) HandlePlant(w http.ResponseWriter, r *http.Request) {
	h.handlePlacement(w, r, "Plant", h.gardenSvc.PlantAt)
}

// HandlePlaceDecor places a decor item at free coordinates
// @Summary Place decor at coordinates
// @Description Places a non-growing decor item at free coordinates. The spot must not overlap existing plants or decor.
// @Tags garden
// @Accept json
// @Produce json
// @Param pairID path string true "Pair ID"
// @Param request body PlaceItemRequest true "Placement request"
// @Success 201 {object} domain.PlaceResult "Decor placed"
// @Failure 400 {object} ErrorResponse "Invalid request or item type"
// @Failure 409 {object} ErrorResponse "Placement overlaps an existing item"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /garden/{pairID}/decor [post]
func (h *GardenHandler) HandlePlaceDecor(w http.ResponseWriter, r *http.Request) {
	h.handlePlacement(w, r, "Place decor", h.gardenSvc.PlaceDecorAt)
}

// placementFunc matches the service's plant and decor placement operations.
type placementFunc func(ctx context.Context, pairID, userID string, itemType domain.ItemType, x, y float64, flipped bool) (*domain.PlaceResult, error)

func (h *GardenHandler) handlePlacement(w http.ResponseWriter, r *http.Request, opName string, place placementFunc) {
	pairID, ok := pairIDFromRequest(r, w)
	if !ok {
		return
	}

	var req PlaceItemRequest
	if err := DecodeAndValidateRequest(r, w, &req, opName); err != nil {
		return
	}

	result, err := place(r.Context(), pairID, req.UserID, domain.ItemType(req.ItemType), req.X, req.Y, req.Flipped)
	if err != nil {
		respondServiceError(w, r, ErrMsgPlaceFailed, err)
		return
	}

	respondJSON(w, http.StatusCreated, result)
}

// HandlePlaceLandmark places a background landmark
// @Summary Place a landmark
// @Description Places a background landmark at free coordinates. Landmarks never collide with anything.
// @Tags garden
// @Accept json
// @Produce json
// @Param pairID path string true "Pair ID"
// @Param request body PlaceItemRequest true "Placement request"
// @Success 201 {object} domain.PlaceLandmarkResult "Landmark placed"
// @Failure 400 {object} ErrorResponse "Invalid request or item type"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /garden/{pairID}/landmark [post]
func (h *GardenHandler) HandlePlaceLandmark(w http.ResponseWriter, r *http.Request) {
	pairID, ok := pairIDFromRequest(r, w)
	if !ok {
		return
	}

	var req PlaceItemRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Place landmark"); err != nil {
		return
	}

	result, err := h.gardenSvc.PlaceLandmarkAt(r.Context(), pairID, req.UserID, domain.ItemType(req.ItemType), req.X, req.Y, req.Flipped)
	if err != nil {
		respondServiceError(w, r, ErrMsgPlaceFailed, err)
		return
	}

	respondJSON(w, http.StatusCreated, result)
}

// HandleRemoveItems bulk-removes items for a partial refund
// @Summary Bulk-remove items
// @Description Removes all items in the given scope (plants, decor, landmarks, or all) and refunds a percentage of their purchase price to both paired users.
// @Tags garden
// @Accept json
// @Produce json
// @Param pairID path string true "Pair ID"
// @Param request body RemoveItemsRequest true "Removal request"
// @Success 200 {object} RemoveItemsResponse "Items removed"
// @Failure 400 {object} ErrorResponse "Invalid scope"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /garden/{pairID}/items/remove [post]
func (h *GardenHandler) HandleRemoveItems(w http.ResponseWriter, r *http.Request) {
	pairID, ok := pairIDFromRequest(r, w)
	if !ok {
		return
	}

	var req RemoveItemsRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Remove items"); err != nil {
		return
	}

	var (
		result *domain.RefundResult
		err    error
	)
	switch strings.ToLower(req.Scope) {
	case "plants":
		result, err = h.gardenSvc.RemoveAllPlantsWithRefund(r.Context(), pairID)
	case "decor":
		result, err = h.gardenSvc.RemoveAllDecorWithRefund(r.Context(), pairID)
	case "landmarks":
		result, err = h.gardenSvc.RemoveAllLandmarksWithRefund(r.Context(), pairID)
	default:
		result, err = h.gardenSvc.RemoveAllGardenItemsWithRefund(r.Context(), pairID)
	}
	if err != nil {
		respondServiceError(w, r, ErrMsgRemoveFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, RemoveItemsResponse{
		Message: MsgItemsRemovedSuccess,
		Result:  *result,
	})
}

// HandleClaimBonus claims a deferred harmony bonus notification
// @Summary Claim pending harmony bonus
// @Description Drains the caller's deferred harmony bonus notification, queued while they were offline. The gold itself was already paid.
// @Tags garden
// @Accept json
// @Produce json
// @Param pairID path string true "Pair ID"
// @Param request body ClaimBonusRequest true "Claim request"
// @Success 200 {object} ClaimBonusResponse
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /garden/{pairID}/harmony/claim [post]
func (h *GardenHandler) HandleClaimBonus(w http.ResponseWriter, r *http.Request) {
	pairID, ok := pairIDFromRequest(r, w)
	if !ok {
		return
	}

	var req ClaimBonusRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Claim harmony bonus"); err != nil {
		return
	}

	claimed, err := h.gardenSvc.ClaimPendingHarmonyBonus(r.Context(), pairID, req.UserID)
	if err != nil {
		respondServiceError(w, r, ErrMsgClaimBonusFailed, err)
		return
	}

	message := MsgNoPendingBonus
	if claimed {
		message = MsgBonusClaimed
	}
	respondJSON(w, http.StatusOK, ClaimBonusResponse{
		Message: message,
		Claimed: claimed,
	})
}

// HandlePunish runs the neglect check for one garden (admin)
// @Summary Run the neglect check
// @Description Applies the neglect punishment to a garden whose last interaction predates the threshold. Repeating the call without new interaction is a no-op.
// @Tags admin
// @Produce json
// @Param pairID path string true "Pair ID"
// @Success 200 {object} domain.PunishResult
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /admin/garden/{pairID}/punish [post]
func (h *GardenHandler) HandlePunish(w http.ResponseWriter, r *http.Request) {
	pairID, ok := pairIDFromRequest(r, w)
	if !ok {
		return
	}

	result, err := h.gardenSvc.ApplyPunishment(r.Context(), pairID)
	if err != nil {
		respondServiceError(w, r, ErrMsgPunishFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}
