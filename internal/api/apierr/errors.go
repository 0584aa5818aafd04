package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dancojocaru2000/ttt-server/internal/model"
	"github.com/dancojocaru2000/ttt-server/internal/services/logincode"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest  = "INVALID_REQUEST"
	CodeUserNotFound    = "USER_NOT_FOUND"
	CodeGameNotFound    = "GAME_NOT_FOUND"
	CodeNicknameTaken   = "NICKNAME_TAKEN"
	CodeInvalidNickname = "INVALID_NICKNAME"
	CodeInvalidSecret   = "INVALID_SECRET"
	CodeGameIDMismatch  = "GAME_ID_MISMATCH"
	CodeCodeInvalid     = "CODE_INVALID"
	CodeRateLimited     = "RATE_LIMITED"
	CodeInternalError   = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	case errors.Is(err, model.ErrUserNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeUserNotFound, "User not found"}}
	case errors.Is(err, model.ErrGameNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeGameNotFound, "Game not found"}}
	case errors.Is(err, model.ErrNicknameTaken):
		return &httpError{http.StatusConflict, APIError{CodeNicknameTaken, "Nickname is already used"}}
	case errors.Is(err, model.ErrInvalidNickname):
		return &httpError{http.StatusUnprocessableEntity, APIError{CodeInvalidNickname, "Invalid nickname; only English letters, digits, dash - and underscore _ allowed; only letters first"}}
	case errors.Is(err, model.ErrInvalidSecret):
		return &httpError{http.StatusUnprocessableEntity, APIError{CodeInvalidSecret, "Invalid secret"}}
	case errors.Is(err, model.ErrGameIDMismatch):
		return &httpError{http.StatusUnprocessableEntity, APIError{CodeGameIDMismatch, "Cannot change game ID"}}
	case errors.Is(err, model.ErrCodeNotRedeemable):
		return &httpError{http.StatusUnprocessableEntity, APIError{CodeCodeInvalid, "Code doesn't exist"}}
	case errors.Is(err, logincode.ErrCodeSpaceExhausted):
		return &httpError{http.StatusServiceUnavailable, APIError{CodeInternalError, "Could not generate a login code"}}
	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnprocessableError creates a 422 with a specific code and message
func NewUnprocessableError(code, message string) error {
	return &httpError{http.StatusUnprocessableEntity, APIError{code, message}}
}

// NewTooManyRequestsError creates a transport-level throttle error
func NewTooManyRequestsError() error {
	return &httpError{http.StatusTooManyRequests, APIError{CodeRateLimited, "Too many requests. Please slow down."}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
