package apiclient_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/cunservicios/portal/apiclient"
	"github.com/cunservicios/portal/apimodel"
	"github.com/cunservicios/portal/internal/errors"
	"github.com/cunservicios/portal/internal/tripper"
	"github.com/cunservicios/portal/storage/repofake"
	"github.com/cunservicios/portal/token"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func newStore() *token.Store {
	return token.NewStore(repofake.NewFakeRepo())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func received(ch <-chan struct{}) bool {
	select {
	case <-ch:
		return true
	default:
		return false
	}
}

func TestClient_RequestHeaders(t *testing.T) {
	var gotAuth, gotTenant, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotTenant = r.Header.Get("X-Tenant-ID")
		gotPath = r.URL.Path
		writeJSON(w, http.StatusOK, []apimodel.InvoiceResponse{})
	}))
	defer srv.Close()

	t.Run("anonymous request carries the default tenant", func(t *testing.T) {
		c := apiclient.New(srv.URL, newStore())
		_, err := c.ListInvoices(context.Background())
		require.NoError(t, err)
		require.Empty(t, gotAuth)
		require.Equal(t, "public", gotTenant)
		require.Equal(t, "/api/v1/facturas", gotPath)
	})

	t.Run("token and tenant are read on every request", func(t *testing.T) {
		store := newStore()
		c := apiclient.New(srv.URL, store)

		store.SetAuthToken("abc")
		store.SetActiveTenantID("muni-a")
		_, err := c.ListInvoices(context.Background())
		require.NoError(t, err)
		require.Equal(t, "Bearer abc", gotAuth)
		require.Equal(t, "muni-a", gotTenant)

		store.SetActiveTenantID("muni-b")
		store.ClearAuthToken()
		_, err = c.ListInvoices(context.Background())
		require.NoError(t, err)
		require.Empty(t, gotAuth)
		require.Equal(t, "muni-b", gotTenant)
	})

	t.Run("custom prefix", func(t *testing.T) {
		c := apiclient.New(srv.URL+"/", newStore(), apiclient.WithAPIPrefix("api"))
		_, err := c.ListInvoices(context.Background())
		require.NoError(t, err)
		require.Equal(t, "/api/facturas", gotPath)
	})
}

func TestClient_SessionExpired(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Could not validate credentials"})
	}))
	defer srv.Close()

	t.Run("authenticated 401 clears the token and notifies", func(t *testing.T) {
		store := newStore()
		store.SetAuthToken("stale")
		c := apiclient.New(srv.URL, store)
		events := c.SessionExpired().Subscribe()
		defer c.SessionExpired().Unsubscribe(events)

		_, err := c.GetCurrentUser(context.Background())
		require.Error(t, err)
		require.True(t, apiclient.IsUnauthorized(err))

		var apiErr *apimodel.APIError
		require.True(t, errors.As(err, &apiErr))
		require.Equal(t, "Could not validate credentials", apiErr.Detail)

		require.Empty(t, store.AuthToken())
		require.True(t, received(events))
	})

	t.Run("one rejected request broadcasts exactly once", func(t *testing.T) {
		var logs bytes.Buffer
		store := newStore()
		store.SetAuthToken("stale")
		c := apiclient.New(srv.URL, store, apiclient.WithLogger(zerolog.New(&logs)))
		events := c.SessionExpired().Subscribe()
		defer c.SessionExpired().Unsubscribe(events)

		_, _ = c.ListInvoices(context.Background())
		require.True(t, received(events))
		require.False(t, received(events))

		_, _ = c.ListInvoices(context.Background())
		require.False(t, received(events))
		require.Equal(t, 1, strings.Count(logs.String(), `"message":"session expired"`))
	})

	t.Run("anonymous 401 does not notify", func(t *testing.T) {
		c := apiclient.New(srv.URL, newStore())
		events := c.SessionExpired().Subscribe()
		defer c.SessionExpired().Unsubscribe(events)

		_, err := c.GetCurrentUser(context.Background())
		require.True(t, apiclient.IsUnauthorized(err))
		require.False(t, received(events))
	})

	t.Run("failed login does not notify", func(t *testing.T) {
		store := newStore()
		store.SetAuthToken("previous")
		c := apiclient.New(srv.URL, store)
		events := c.SessionExpired().Subscribe()
		defer c.SessionExpired().Unsubscribe(events)

		_, err := c.Login(context.Background(), "a@b.co", "wrong")
		require.Error(t, err)
		require.Equal(t, http.StatusUnauthorized, apiclient.StatusCode(err))
		require.Equal(t, "previous", store.AuthToken())
		require.False(t, received(events))
	})

	t.Run("every subscriber is notified", func(t *testing.T) {
		store := newStore()
		store.SetAuthToken("stale")
		c := apiclient.New(srv.URL, store)
		first := c.SessionExpired().Subscribe()
		second := c.SessionExpired().Subscribe()

		_, _ = c.ListPQRs(context.Background())
		require.True(t, received(first))
		require.True(t, received(second))

		c.SessionExpired().Unsubscribe(first)
		c.SessionExpired().Unsubscribe(second)
	})
}

func TestClient_Login(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/auth/login", r.URL.Path)
		require.Equal(t, "alc-demo", r.Header.Get("X-Tenant-ID"))
		require.NoError(t, r.ParseForm())
		require.Equal(t, "password", r.PostForm.Get("grant_type"))
		require.Equal(t, "admin@demo.co", r.PostForm.Get("username"))
		require.Equal(t, "secret123", r.PostForm.Get("password"))

		writeJSON(w, http.StatusOK, map[string]any{
			"access_token": "jwt-token",
			"token_type":   "bearer",
			"user_id":      7,
			"email":        "admin@demo.co",
			"is_admin":     true,
			"tenant_id":    "alc-demo",
		})
	}))
	defer srv.Close()

	store := newStore()
	store.SetActiveTenantID("alc-demo")
	c := apiclient.New(srv.URL, store)

	resp, err := c.Login(context.Background(), "  Admin@Demo.CO ", "secret123")
	require.NoError(t, err)
	require.Equal(t, &apimodel.LoginResponse{
		AccessToken: "jwt-token",
		TokenType:   "bearer",
		UserID:      7,
		Email:       "admin@demo.co",
		IsAdmin:     true,
		TenantID:    "alc-demo",
	}, resp)

	// Login returns the token; storing it is up to the caller.
	require.Empty(t, store.AuthToken())
}

func TestClient_ChangePassword(t *testing.T) {
	var calls int32
	var got apimodel.PasswordChange
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		require.Equal(t, "/api/v1/auth/change-password", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		writeJSON(w, http.StatusOK, map[string]string{"message": "ok"})
	}))
	defer srv.Close()

	c := apiclient.New(srv.URL, newStore())
	ctx := context.Background()

	tests := []struct {
		name    string
		current string
		next    string
		confirm string
		want    error
	}{
		{"missing field", "old-pass", "", "", apiclient.ErrMissingPassword},
		{"too short", "old-pass", "short", "short", apiclient.ErrPasswordTooShort},
		{"mismatch", "old-pass", "new-password", "new-passw0rd", apiclient.ErrPasswordMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := c.ChangePassword(ctx, tt.current, tt.next, tt.confirm)
			require.ErrorIs(t, err, tt.want)
		})
	}
	require.Zero(t, atomic.LoadInt32(&calls))

	require.NoError(t, c.ChangePassword(ctx, "old-pass", "new-password", "new-password"))
	require.EqualValues(t, 1, atomic.LoadInt32(&calls))
	require.Equal(t, apimodel.PasswordChange{CurrentPassword: "old-pass", NewPassword: "new-password"}, got)
}

func TestClient_CreatePQR(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var in apimodel.PQRCreate
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		writeJSON(w, http.StatusCreated, apimodel.PQR{
			ID:           1,
			Type:         in.Type,
			Subject:      in.Subject,
			Status:       "Radicada",
			FilingNumber: "PQR-0001",
		})
	}))
	defer srv.Close()

	c := apiclient.New(srv.URL, newStore())
	pqr, err := c.CreatePQR(context.Background(), apimodel.PQRCreate{
		Type:       string(apimodel.PQRPeticion),
		Subject:    "Poste sin luz",
		CustomerID: 3,
	})
	require.NoError(t, err)
	require.Equal(t, "Petición", pqr.Type)
	require.Equal(t, "PQR-0001", pqr.FilingNumber)
}

func TestClient_Receipts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/alumbrado/recibo/plantilla":
			writeJSON(w, http.StatusOK, apimodel.ReceiptTemplate{
				Municipality: "Ubaté",
				Period:       "2026-02",
				Components:   apimodel.ReceiptComponents{CSEE: 10, CINV: 5},
			})
		case "/api/v1/alumbrado/recibo/simple/desde-plantilla":
			var tmpl apimodel.ReceiptTemplate
			require.NoError(t, json.NewDecoder(r.Body).Decode(&tmpl))
			writeJSON(w, http.StatusOK, apimodel.SimpleReceipt{
				Number:       "AP-2026-02-001",
				TenantID:     r.Header.Get("X-Tenant-ID"),
				Municipality: tmpl.Municipality,
				Period:       tmpl.Period,
				Components:   tmpl.Components,
				Total:        tmpl.Components.Total(),
			})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	store := newStore()
	store.SetActiveTenantID("ubate")
	c := apiclient.New(srv.URL, store)
	ctx := context.Background()

	tmpl, err := c.GetReceiptTemplate(ctx)
	require.NoError(t, err)
	require.Equal(t, "2026-02", tmpl.Period)

	receipt, err := c.CreateSimpleReceipt(ctx, *tmpl)
	require.NoError(t, err)
	require.Equal(t, "ubate", receipt.TenantID)
	require.Equal(t, 15.0, receipt.Total)
}

func TestClient_Errors(t *testing.T) {
	t.Run("non-2xx is an APIError", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Factura no encontrada"})
		}))
		defer srv.Close()

		_, err := apiclient.New(srv.URL, newStore()).GetInvoice(context.Background(), "F-404")
		require.Equal(t, http.StatusNotFound, apiclient.StatusCode(err))
		require.Contains(t, err.Error(), "Factura no encontrada")
	})

	t.Run("network errors are passed through", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		srv.Close()

		store := newStore()
		store.SetAuthToken("kept")
		_, err := apiclient.New(srv.URL, store).ListInvoices(context.Background())
		require.Error(t, err)
		require.Zero(t, apiclient.StatusCode(err))

		var urlErr *url.Error
		require.True(t, errors.As(err, &urlErr))
		require.Equal(t, "kept", store.AuthToken())
	})

	t.Run("status code of a non-API error", func(t *testing.T) {
		require.Zero(t, apiclient.StatusCode(errors.ErrNotFound))
		require.False(t, apiclient.IsUnauthorized(nil))
	})
}

func TestClient_WithMiddleware(t *testing.T) {
	var seen string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.Header.Get("X-Request-Source")
		writeJSON(w, http.StatusOK, []apimodel.PQR{})
	}))
	defer srv.Close()

	source := func(next http.RoundTripper) http.RoundTripper {
		return tripper.RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			r.Header.Set("X-Request-Source", "cli")
			return next.RoundTrip(r)
		})
	}

	hc := &http.Client{}
	c := apiclient.New(srv.URL, newStore(), apiclient.WithHTTPClient(hc), apiclient.WithMiddleware(source))
	_, err := c.ListPQRs(context.Background())
	require.NoError(t, err)
	require.Equal(t, "cli", seen)
	require.Nil(t, hc.Transport)
}
