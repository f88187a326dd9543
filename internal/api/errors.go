package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"rentshare/internal/domain"
)

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"error": message})
}

// writeDomainError отображает доменную ошибку в HTTP-код.
// ErrUnauthorizedApproval намеренно отдается как 404: по ответу нельзя
// понять, существует ли чужая заявка.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrItemNotFound),
		errors.Is(err, domain.ErrBookingNotFound),
		errors.Is(err, domain.ErrRequestNotFound),
		errors.Is(err, domain.ErrUnauthorizedApproval):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrInvalidBookingDate),
		errors.Is(err, domain.ErrItemUnavailable),
		errors.Is(err, domain.ErrInvalidStatusTransition),
		errors.Is(err, domain.ErrOwnItemRequest):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnauthorizedGetBookings),
		errors.Is(err, domain.ErrCommentNotAuthorized):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrEmailExists):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
