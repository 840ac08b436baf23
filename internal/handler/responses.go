package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/pairloom/garden-engine/internal/domain"
	"github.com/pairloom/garden-engine/internal/logger"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response. Reason carries a
// machine-readable code so clients can branch without parsing Error.
type ErrorResponse struct {
	Error  string `json:"error"`
	Reason string `json:"reason,omitempty"`
}

// DataResponse represents a response with data payload
type DataResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

// Helper functions for responding

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	// Get a buffer from the pool to reduce allocations
	buf := getBuffer()
	defer putBuffer(buf)

	// Encode to the buffer first
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		// Headers are already sent at this point, so log and bail.
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondErrorReason sends a JSON error response with a machine-readable reason code
func respondErrorReason(w http.ResponseWriter, status int, message, reason string) {
	respondJSON(w, status, ErrorResponse{Error: message, Reason: reason})
}

// respondServiceError logs a failed service call and writes the mapped
// error response for it.
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	logger.FromContext(r.Context()).Error(opName, "error", err)
	status, message, reason := mapServiceError(err)
	respondErrorReason(w, status, message, reason)
}

// mapServiceError maps domain errors to user-friendly HTTP responses.
// It converts internal service errors to appropriate status codes, messages,
// and reason codes that clients can understand and act upon.
func mapServiceError(err error) (int, string, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError, ""
	}

	switch {
	case errors.Is(err, domain.ErrInsufficientGold):
		return http.StatusPaymentRequired, ErrMsgNotEnoughGold, domain.ReasonInsufficientGold
	case errors.Is(err, domain.ErrInsufficientWater):
		return http.StatusPaymentRequired, ErrMsgNotEnoughWater, domain.ReasonInsufficientWater
	case errors.Is(err, domain.ErrCooldownActive):
		return http.StatusTooManyRequests, ErrMsgOnCooldown, domain.ReasonCooldownActive
	case errors.Is(err, domain.ErrGardenWilted):
		return http.StatusConflict, ErrMsgGardenWiltedHTTP, domain.ReasonGardenWilted
	case errors.Is(err, domain.ErrGardenNotWilted):
		return http.StatusConflict, ErrMsgGardenNotWiltedHTTP, domain.ReasonGardenNotWilted
	case errors.Is(err, domain.ErrCollisionRejected):
		return http.StatusConflict, ErrMsgCollisionHTTP, domain.ReasonCollisionRejected
	case errors.Is(err, domain.ErrUnknownItemType):
		return http.StatusBadRequest, ErrMsgUnknownItemHTTP, domain.ReasonInvalidInput
	case errors.Is(err, domain.ErrWrongCategory):
		return http.StatusBadRequest, ErrMsgWrongCategoryHTTP, domain.ReasonInvalidInput
	case errors.Is(err, domain.ErrGardenNotFound):
		return http.StatusNotFound, ErrMsgGardenNotFoundHTTP, domain.ReasonNotFound
	case errors.Is(err, domain.ErrProfileNotFound):
		return http.StatusNotFound, ErrMsgProfileNotFoundHTTP, domain.ReasonNotFound
	case errors.Is(err, domain.ErrRevisionConflict):
		return http.StatusConflict, ErrMsgConflictHTTP, domain.ReasonRevisionConflict
	case errors.Is(err, domain.ErrNotPairMember):
		return http.StatusForbidden, ErrMsgNotPairMemberHTTP, domain.ReasonNotPairMember
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidInputHTTP, domain.ReasonInvalidInput
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError, ""
}
