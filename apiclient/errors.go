package apiclient

import (
	"net/http"

	"github.com/cunservicios/portal/apimodel"
	"github.com/cunservicios/portal/internal/errors"
)

// Validation errors raised before any request is sent.
var (
	ErrMissingPassword  = errors.ErrMissingPassword
	ErrPasswordTooShort = errors.ErrPasswordTooShort
	ErrPasswordMismatch = errors.ErrPasswordMismatch
	ErrMissingAccess    = errors.ErrMissingAccess

	ErrInvalidCalculation = errors.ErrInvalidCalculation
)

// StatusCode returns the HTTP status of an API error, or 0 when err did not
// come from an API response.
func StatusCode(err error) int {
	var apiErr *apimodel.APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// IsUnauthorized reports whether err is a 401 API response.
func IsUnauthorized(err error) bool {
	return StatusCode(err) == http.StatusUnauthorized
}
