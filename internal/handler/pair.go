package handler

import (
	"net/http"

	"github.com/pairloom/garden-engine/internal/logger"
	"github.com/pairloom/garden-engine/internal/pairing"
)

// EstablishPairRequest represents the request to pair two users
type EstablishPairRequest struct {
	UserA string `json:"user_a" validate:"required,max=100"`
	UserB string `json:"user_b" validate:"required,max=100,nefield=UserA"`
}

// EstablishPairResponse returns the canonical pair ID
type EstablishPairResponse struct {
	Message string `json:"message"`
	PairID  string `json:"pair_id"`
}

// HandleEstablishPair pairs two users
// @Summary Establish a pair
// @Description Records the pair of two users and returns its canonical pair ID. The ID is order-independent and stable, so re-pairing the same users is a no-op.
// @Tags pair
// @Accept json
// @Produce json
// @Param request body EstablishPairRequest true "Pair request"
// @Success 201 {object} EstablishPairResponse
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /pair [post]
func HandleEstablishPair(pairingSvc pairing.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req EstablishPairRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Establish pair"); err != nil {
			return
		}

		pairID, err := pairingSvc.Establish(r.Context(), req.UserA, req.UserB)
		if err != nil {
			respondServiceError(w, r, ErrMsgCreatePairFailed, err)
			return
		}

		log.Info("Pair established", "pairID", pairID)

		respondJSON(w, http.StatusCreated, EstablishPairResponse{
			Message: MsgPairCreatedSuccess,
			PairID:  pairID,
		})
	}
}
