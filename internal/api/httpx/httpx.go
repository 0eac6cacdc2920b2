package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"auction-backend/internal/apperrors"
)

type APIError struct {
	Error   string      `json:"error"`
	Code    string      `json:"code"`
	Details interface{} `json:"details,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, status int, code, msg string, details interface{}) {
	WriteJSON(w, status, APIError{
		Error:   msg,
		Code:    code,
		Details: details,
	})
}

// WriteDomainError translates a service error into its HTTP shape.
func WriteDomainError(w http.ResponseWriter, err error) {
	status, code := ErrorStatus(err)
	WriteError(w, status, code, err.Error(), nil)
}

// ErrorStatus maps domain errors to HTTP status code and machine code.
func ErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, apperrors.ErrInvalidInput):
		return http.StatusBadRequest, "validation_error"
	case errors.Is(err, apperrors.ErrUsernameTaken):
		return http.StatusBadRequest, "username_taken"
	case errors.Is(err, apperrors.ErrEmailTaken):
		return http.StatusBadRequest, "email_taken"
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid_credentials"
	case errors.Is(err, apperrors.ErrForbidden):
		return http.StatusForbidden, "forbidden"
	case errors.Is(err, apperrors.ErrUserNotFound),
		errors.Is(err, apperrors.ErrProductNotFound),
		errors.Is(err, apperrors.ErrAuctionNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, apperrors.ErrAuctionNotActive):
		return http.StatusConflict, "auction_not_active"
	case errors.Is(err, apperrors.ErrBidTooLow):
		return http.StatusConflict, "bid_too_low"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}
