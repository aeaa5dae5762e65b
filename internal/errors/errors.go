package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrInvalidCredentials is returned for both unknown email and wrong
	// password so responses cannot be used to enumerate accounts.
	ErrInvalidCredentials = errors.New("Invalid credentials")
	// ErrEmailTaken is returned when an email is already registered to a user or store.
	ErrEmailTaken = errors.New("email already in use")
	// ErrUserNotFound is returned when a referenced user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrStoreNotFound is returned when a referenced store does not exist.
	ErrStoreNotFound = errors.New("store not found")
	// ErrRatingNotFound is returned when the caller has no rating for a store.
	ErrRatingNotFound = errors.New("no rating found")
	// ErrNoOwnedStore is returned when a store owner has no store yet.
	ErrNoOwnedStore = errors.New("no store found for this user")
	// ErrWrongPassword is returned when the current password check fails on password change.
	ErrWrongPassword = errors.New("current password is incorrect")
	// ErrInvalidRole is returned when an admin-created user has a role outside {admin, user}.
	ErrInvalidRole = errors.New("invalid role, must be admin or user")
)

// FieldError is a single per-field validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries the full list of field failures for a request.
type ValidationError struct {
	Fields []FieldError `json:"errors"`
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	return "validation failed: " + e.Fields[0].Field + ": " + e.Fields[0].Message
}

// NewValidationError wraps field errors, returning nil when there are none.
func NewValidationError(fields []FieldError) error {
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrWrongPassword):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "WRONG_PASSWORD")
	case errors.Is(err, ErrEmailTaken):
		return NewHTTPError(http.StatusConflict, err.Error(), "EMAIL_TAKEN")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrStoreNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "STORE_NOT_FOUND")
	case errors.Is(err, ErrRatingNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "RATING_NOT_FOUND")
	case errors.Is(err, ErrNoOwnedStore):
		return NewHTTPError(http.StatusNotFound, err.Error(), "NO_OWNED_STORE")
	case errors.Is(err, ErrInvalidRole):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_ROLE")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
