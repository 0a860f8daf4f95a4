package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrInvalidCredentials is returned when email or password is incorrect,
	// or when the account has been deactivated.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrEmailTaken is returned when the signup email is already registered.
	ErrEmailTaken = errors.New("email already registered")
	// ErrUsernameTaken is returned when the signup username is already registered.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrInvalidRefreshToken is returned when a refresh token is missing,
	// revoked, expired, or fails signature verification.
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")
	// ErrInvalidResetToken is returned when a password reset token is
	// unknown, already used, or expired.
	ErrInvalidResetToken = errors.New("invalid or expired reset token")
	// ErrInvalidVerifyCode is returned when an email verification code does
	// not match or is past its window.
	ErrInvalidVerifyCode = errors.New("invalid or expired verification code")
	// ErrVerifyCooldown is returned when a verification resend arrives
	// inside the cooldown window.
	ErrVerifyCooldown = errors.New("verification code requested too recently")
	// ErrAlreadyVerified is returned when a verified user requests a code.
	ErrAlreadyVerified = errors.New("email already verified")
	// ErrNotFound is returned when a requested resource does not exist.
	ErrNotFound = errors.New("resource not found")
	// ErrForbidden is returned when the caller lacks the required privilege.
	ErrForbidden = errors.New("forbidden")
	// ErrDuplicate is returned when a create collides with an existing row.
	ErrDuplicate = errors.New("resource already exists")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
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

// MapErrorToHTTP maps domain errors to HTTP errors. Unexpected errors
// collapse to a generic 500 with no detail leaked to the client.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrEmailTaken):
		return NewHTTPError(http.StatusConflict, err.Error(), "EMAIL_TAKEN")
	case errors.Is(err, ErrUsernameTaken):
		return NewHTTPError(http.StatusConflict, err.Error(), "USERNAME_TAKEN")
	case errors.Is(err, ErrInvalidRefreshToken):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_REFRESH_TOKEN")
	case errors.Is(err, ErrInvalidResetToken):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_RESET_TOKEN")
	case errors.Is(err, ErrInvalidVerifyCode):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_VERIFY_CODE")
	case errors.Is(err, ErrVerifyCooldown):
		return NewHTTPError(http.StatusForbidden, err.Error(), "VERIFY_COOLDOWN")
	case errors.Is(err, ErrAlreadyVerified):
		return NewHTTPError(http.StatusConflict, err.Error(), "ALREADY_VERIFIED")
	case errors.Is(err, ErrNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "NOT_FOUND")
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, err.Error(), "FORBIDDEN")
	case errors.Is(err, ErrDuplicate):
		return NewHTTPError(http.StatusConflict, err.Error(), "ALREADY_EXISTS")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
