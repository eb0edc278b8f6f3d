package session

import (
	"fmt"

	"github.com/cunservicios/portal/internal/errors"
)

// LoginPath is where unauthenticated visitors of protected views are sent.
const LoginPath = "/portal/login"

var (
	ErrMissingCredentials = errors.ErrMissingCredentials
	ErrNotAuthenticated   = errors.ErrNotAuthenticated
	ErrBootstrapping      = errors.ErrBootstrapping
	ErrSessionExpired     = errors.ErrSessionExpired
)

// RedirectError is returned by Require when there is no session. From is the
// requested path so login can send the user back. Expired is set when the
// last session ended because the API rejected its token.
type RedirectError struct {
	To      string
	From    string
	Expired bool
}

func (e *RedirectError) Error() string {
	if e.Expired {
		return fmt.Sprintf("session expired, %s requires authentication, redirect to %s", e.From, e.To)
	}
	return fmt.Sprintf("authentication required for %s, redirect to %s", e.From, e.To)
}

// Unwrap lets callers test for ErrNotAuthenticated and, after a forced
// logout, ErrSessionExpired.
func (e *RedirectError) Unwrap() []error {
	if e.Expired {
		return []error{ErrNotAuthenticated, ErrSessionExpired}
	}
	return []error{ErrNotAuthenticated}
}
