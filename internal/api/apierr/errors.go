package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/severedgames/mysteryparty/internal/model"
	"github.com/severedgames/mysteryparty/internal/services/auth"
	"github.com/severedgames/mysteryparty/internal/services/chat"
	"github.com/severedgames/mysteryparty/internal/services/dm"
	"github.com/severedgames/mysteryparty/internal/services/room"
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
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeForbidden          = "FORBIDDEN"
	CodeUserNotFound       = "USER_NOT_FOUND"
	CodeRoomNotFound       = "ROOM_NOT_FOUND"
	CodePersonaNotFound    = "PERSONA_NOT_FOUND"
	CodeMessageNotFound    = "MESSAGE_NOT_FOUND"
	CodeRateLimited        = "RATE_LIMITED"
	CodeCapacityExhausted  = "CAPACITY_EXHAUSTED"
	CodeInternalError      = "INTERNAL_ERROR"
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
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrUserNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeUserNotFound, "User not found"}}
	case errors.Is(err, model.ErrRoomNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeRoomNotFound, "Room not found"}}
	case errors.Is(err, model.ErrPersonaNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePersonaNotFound, "Persona not found"}}
	case errors.Is(err, model.ErrCluesNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePersonaNotFound, "Clues not found"}}
	case errors.Is(err, model.ErrDirectMessageNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeMessageNotFound, "Direct message not found"}}
	case errors.Is(err, model.ErrForbidden):
		return &httpError{http.StatusForbidden, APIError{CodeForbidden, "You do not have access to this resource"}}

	// Map service errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, APIError{CodeInvalidCredentials, "Invalid username or password"}}
	case errors.Is(err, auth.ErrInvalidToken):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Invalid or expired token"}}
	case errors.Is(err, chat.ErrRateLimited):
		return &httpError{http.StatusTooManyRequests, APIError{CodeRateLimited, "Message rate limit exceeded, try again shortly"}}
	case errors.Is(err, chat.ErrEmptyMessage), errors.Is(err, dm.ErrEmptyMessage):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, "Message content must not be empty"}}
	case errors.Is(err, chat.ErrMessageTooLong):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, "Message content too long"}}
	case errors.Is(err, room.ErrCapacityExhausted):
		return &httpError{http.StatusServiceUnavailable, APIError{CodeCapacityExhausted, "No room codes available"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
