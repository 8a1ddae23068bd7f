package errors

import (
	"errors"
	"net/http"
)

// Domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrValidation         = errors.New("validation failed")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDisabled    = errors.New("account disabled")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrTokenExpired       = errors.New("token expired")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTooManyAttempts    = errors.New("too many sign-in attempts")
	ErrUpgradeFailed      = errors.New("account upgrade failed")
)

// Stable machine-readable error codes exposed to clients.
const (
	CodeValidation         = "VALIDATION_ERROR"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeAccountDisabled    = "ACCOUNT_DISABLED"
	CodeDuplicateEmail     = "DUPLICATE_EMAIL"
	CodeNotFound           = "NOT_FOUND"
	CodeInvalidTransition  = "INVALID_TRANSITION"
	CodeTokenExpired       = "TOKEN_EXPIRED"
	CodeInvalidToken       = "INVALID_TOKEN"
	CodeTooManyAttempts    = "TOO_MANY_ATTEMPTS"
	CodeUpgradeFailed      = "UPGRADE_FAILED"
	CodeInternal           = "INTERNAL_ERROR"
)

// AppError is an application error carrying an HTTP status, a stable
// machine-readable code and a human message. The wrapped cause never
// crosses the HTTP boundary.
type AppError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new app error
func NewAppError(status int, code, message string, err error) *AppError {
	return &AppError{
		Status:  status,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common error constructors

func Validation(message string) *AppError {
	return NewAppError(http.StatusBadRequest, CodeValidation, message, ErrValidation)
}

// ValidationField builds a field-attributed validation error.
func ValidationField(field, message string) *AppError {
	return NewAppError(http.StatusBadRequest, CodeValidation, field+": "+message, ErrValidation)
}

func NotFound(message string) *AppError {
	return NewAppError(http.StatusNotFound, CodeNotFound, message, ErrNotFound)
}

func Conflict(code, message string) *AppError {
	return NewAppError(http.StatusConflict, code, message, nil)
}

func Unauthorized(code, message string) *AppError {
	return NewAppError(http.StatusUnauthorized, code, message, nil)
}

func InternalError(err error) *AppError {
	return NewAppError(http.StatusInternalServerError, CodeInternal, "internal server error", err)
}

// From translates any error into an AppError. Sentinel domain errors map to
// their taxonomy entry; everything else is an opaque internal error, so
// store-level failures never leak their shape to callers.
func From(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, ErrValidation):
		return Validation(err.Error())
	case errors.Is(err, ErrNotFound):
		return NotFound(err.Error())
	case errors.Is(err, ErrDuplicateEmail):
		return Conflict(CodeDuplicateEmail, "email already registered")
	case errors.Is(err, ErrInvalidCredentials):
		return Unauthorized(CodeInvalidCredentials, "invalid email or password")
	case errors.Is(err, ErrAccountDisabled):
		return NewAppError(http.StatusForbidden, CodeAccountDisabled, "account is disabled", err)
	case errors.Is(err, ErrInvalidTransition):
		return Conflict(CodeInvalidTransition, err.Error())
	case errors.Is(err, ErrTokenExpired):
		return Unauthorized(CodeTokenExpired, "token has expired")
	case errors.Is(err, ErrInvalidToken):
		return Unauthorized(CodeInvalidToken, "invalid token")
	case errors.Is(err, ErrTooManyAttempts):
		return NewAppError(http.StatusTooManyRequests, CodeTooManyAttempts, "too many sign-in attempts, try again later", err)
	case errors.Is(err, ErrUpgradeFailed):
		return NewAppError(http.StatusInternalServerError, CodeUpgradeFailed, "account upgrade failed", err)
	default:
		return InternalError(err)
	}
}
