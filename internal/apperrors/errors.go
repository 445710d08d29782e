package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates the caller may not act on the requested resource.
var ErrForbidden = errors.New("forbidden")

// ErrRefreshTokenExpired indicates that a stored refresh token is past its expiry.
var ErrRefreshTokenExpired = errors.New("refresh token expired")

// AppError carries an HTTP-ish status code alongside a wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError wrapping the given cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
