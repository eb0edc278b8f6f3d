package token_test

import (
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	perrors "github.com/cunservicios/portal/internal/errors"
	"github.com/cunservicios/portal/token"
	"github.com/stretchr/testify/require"
)

func signTestToken(t *testing.T, claims jwtlib.MapClaims) string {
	t.Helper()
	raw, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString([]byte("server-only-secret"))
	require.NoError(t, err)
	return raw
}

func TestInspect(t *testing.T) {
	now := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	original := token.NowTimeFunc
	token.NowTimeFunc = func() time.Time { return now }
	t.Cleanup(func() { token.NowTimeFunc = original })

	t.Run("reads claims without the key", func(t *testing.T) {
		raw := signTestToken(t, jwtlib.MapClaims{
			"sub":    "42",
			"tenant": "muni-x",
			"type":   "access",
			"exp":    now.Add(30 * time.Minute).Unix(),
		})

		claims, err := token.Inspect(raw)
		require.NoError(t, err)
		require.Equal(t, "42", claims.Subject)
		require.Equal(t, "muni-x", claims.TenantID)
		require.Equal(t, "access", claims.Type)
		require.Equal(t, now.Add(30*time.Minute).Unix(), claims.ExpiresAt.Unix())
		require.False(t, claims.Expired())
	})

	t.Run("expired", func(t *testing.T) {
		raw := signTestToken(t, jwtlib.MapClaims{"sub": "42", "exp": now.Add(-time.Minute).Unix()})
		claims, err := token.Inspect(raw)
		require.NoError(t, err)
		require.True(t, claims.Expired())
	})

	t.Run("no exp never expires locally", func(t *testing.T) {
		raw := signTestToken(t, jwtlib.MapClaims{"sub": "42"})
		claims, err := token.Inspect(raw)
		require.NoError(t, err)
		require.True(t, claims.ExpiresAt.IsZero())
		require.False(t, claims.Expired())
	})

	t.Run("opaque token", func(t *testing.T) {
		_, err := token.Inspect("not-a-jwt")
		require.ErrorIs(t, err, perrors.ErrInvalidToken)
	})

	t.Run("empty token", func(t *testing.T) {
		_, err := token.Inspect("  ")
		require.ErrorIs(t, err, perrors.ErrInvalidToken)
	})
}
