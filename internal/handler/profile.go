package handler

import (
	"net/http"

	"github.com/pairloom/garden-engine/internal/profile"
)

// HandleGetWallet returns a user's wallet balances
// @Summary Get wallet balances
// @Description Returns the user's gold and water balances, creating the profile with starter balances on first access
// @Tags profile
// @Produce json
// @Param user_id query string true "User ID"
// @Success 200 {object} domain.Profile
// @Failure 400 {object} ErrorResponse "Missing user ID"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /profile/wallet [get]
func HandleGetWallet(profileSvc profile.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetQueryParam(r, w, "user_id")
		if !ok {
			return
		}

		wallet, err := profileSvc.GetWallet(r.Context(), userID)
		if err != nil {
			respondServiceError(w, r, ErrMsgGetWalletFailed, err)
			return
		}

		respondJSON(w, http.StatusOK, wallet)
	}
}
