package errors

import (
	"errors"
	"fmt"
)

// Common error types for the portal client
var (
	// Storage errors
	ErrNotFound    = errors.New("not found")
	ErrUnavailable = errors.New("storage unavailable")

	// Session errors
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrSessionExpired   = errors.New("session expired")
	ErrBootstrapping    = errors.New("session bootstrap in progress")

	// Validation errors
	ErrMissingCredentials = errors.New("email and password are required")
	ErrInvalidTenant      = errors.New("invalid tenant")
	ErrMissingPassword    = errors.New("all password fields are required")
	ErrPasswordTooShort   = errors.New("new password must be at least 8 characters long")
	ErrPasswordMismatch   = errors.New("password confirmation does not match")
	ErrInvalidCalculation = errors.New("invalid lighting calculation")

	// Token errors
	ErrInvalidToken  = errors.New("invalid token")
	ErrMissingAccess = errors.New("login response missing access token")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
