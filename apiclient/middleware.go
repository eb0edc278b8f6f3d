package apiclient

import (
	"net/http"
	"strings"
	"time"

	"github.com/cunservicios/portal/internal/tripper"
	"github.com/cunservicios/portal/tenants"
)

// decorateRequest attaches the bearer token (when present) and the active
// tenant. Both are read from the store on every request.
func (c *Client) decorateRequest(next http.RoundTripper) http.RoundTripper {
	return tripper.RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
		r := req.Clone(req.Context())
		if token := c.store.AuthToken(); token != "" {
			r.Header.Set("Authorization", "Bearer "+token)
		} else {
			r.Header.Del("Authorization")
		}
		r.Header.Set(tenants.HeaderName, c.store.ActiveTenantID())
		return next.RoundTrip(r)
	})
}

// inspectResponse handles session expiry: a 401 to an authenticated request
// that is not the login request clears the token and broadcasts once.
// The response itself is passed through untouched.
func (c *Client) inspectResponse(next http.RoundTripper) http.RoundTripper {
	return tripper.RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
		resp, err := next.RoundTrip(req)
		if err != nil {
			return resp, err
		}
		if resp.StatusCode == http.StatusUnauthorized &&
			req.Header.Get("Authorization") != "" &&
			!c.isLoginRequest(req) {
			c.store.ClearAuthToken()
			c.log.Info().
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Str("tenant", req.Header.Get(tenants.HeaderName)).
				Int("subscribers", c.expired.sig.Listeners()).
				Msg("session expired")
			c.expired.notify()
		}
		return resp, nil
	})
}

func (c *Client) logRequests(next http.RoundTripper) http.RoundTripper {
	return tripper.RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
		start := time.Now()
		resp, err := next.RoundTrip(req)
		event := c.log.Debug().
			Str("method", req.Method).
			Str("path", req.URL.Path).
			Str("tenant", req.Header.Get(tenants.HeaderName)).
			Dur("elapsed", time.Since(start))
		if err != nil {
			event.Err(err).Msg("request failed")
			return resp, err
		}
		event.Int("status", resp.StatusCode).Msg("request")
		return resp, nil
	})
}

func (c *Client) isLoginRequest(req *http.Request) bool {
	return strings.TrimRight(req.URL.Path, "/") == strings.TrimRight(c.loginPath, "/")
}
