package token

import (
	"strings"
	"time"

	perrors "github.com/cunservicios/portal/internal/errors"
	jwtlib "github.com/golang-jwt/jwt/v5"
)

// Claims is the unverified content of a portal access token. The client
// never holds the signing key, so these values are informational only: the
// server remains the authority on whether a token is valid.
type Claims struct {
	Subject   string    `json:"sub"`
	TenantID  string    `json:"tenant"`
	Type      string    `json:"type"`
	ExpiresAt time.Time `json:"exp"`
}

// NowTimeFunc is used to evaluate expiry (injectable for testing).
var NowTimeFunc = time.Now

// Expired reports whether the exp claim is set and in the past.
func (c Claims) Expired() bool {
	return !c.ExpiresAt.IsZero() && NowTimeFunc().After(c.ExpiresAt)
}

// Inspect parses rawToken without verifying its signature.
func Inspect(rawToken string) (*Claims, error) {
	if strings.TrimSpace(rawToken) == "" {
		return nil, perrors.ErrInvalidToken
	}

	unverified, _, err := jwtlib.NewParser().ParseUnverified(rawToken, jwtlib.MapClaims{})
	if err != nil {
		return nil, perrors.Wrapf(perrors.ErrInvalidToken, "parse: %v", err)
	}

	claims, ok := unverified.Claims.(jwtlib.MapClaims)
	if !ok {
		return nil, perrors.ErrInvalidToken
	}

	sub, _ := claims["sub"].(string)
	tenant, _ := claims["tenant"].(string)
	typ, _ := claims["type"].(string)

	c := &Claims{Subject: sub, TenantID: tenant, Type: typ}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		c.ExpiresAt = exp.Time
	}
	return c, nil
}
