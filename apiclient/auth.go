package apiclient

import (
	"context"
	"fmt"
	"strings"

	"github.com/cunservicios/portal/apimodel"
	"github.com/cunservicios/portal/internal/errors"
	"golang.org/x/oauth2"
)

// Auth endpoint paths, relative to the API prefix.
const (
	LoginPath          = "/auth/login"
	CurrentUserPath    = "/auth/me"
	ChangePasswordPath = "/auth/change-password"
)

// Login exchanges email and password for a bearer token using the OAuth2
// password grant. The email is sent trimmed and lowercased as the username.
// The token is not stored; that is the caller's decision.
//
// The request goes through the same middleware as every other call, so it
// carries the active tenant header.
func (c *Client) Login(ctx context.Context, email, password string) (*apimodel.LoginResponse, error) {
	conf := oauth2.Config{
		Endpoint: oauth2.Endpoint{
			TokenURL:  c.url(LoginPath),
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	username := strings.ToLower(strings.TrimSpace(email))
	tok, err := conf.PasswordCredentialsToken(ctx, username, password)
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) && retrieveErr.Response != nil {
			return nil, apimodel.NewAPIError(retrieveErr.Response.StatusCode, retrieveErr.Body)
		}
		if strings.Contains(err.Error(), "missing access_token") {
			return nil, ErrMissingAccess
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	return loginResponseFromToken(tok), nil
}

func loginResponseFromToken(tok *oauth2.Token) *apimodel.LoginResponse {
	resp := &apimodel.LoginResponse{
		AccessToken: tok.AccessToken,
		TokenType:   tok.TokenType,
	}
	if v, ok := tok.Extra("user_id").(float64); ok {
		resp.UserID = int(v)
	}
	if v, ok := tok.Extra("email").(string); ok {
		resp.Email = v
	}
	if v, ok := tok.Extra("is_admin").(bool); ok {
		resp.IsAdmin = v
	}
	if v, ok := tok.Extra("tenant_id").(string); ok {
		resp.TenantID = v
	}
	return resp
}

// GetCurrentUser returns the profile of the token's owner.
func (c *Client) GetCurrentUser(ctx context.Context) (*apimodel.CurrentUser, error) {
	var user apimodel.CurrentUser
	if err := c.get(ctx, CurrentUserPath, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Logout forgets the stored token. The backend keeps no server-side session.
func (c *Client) Logout() {
	c.store.ClearAuthToken()
}

// ChangePassword validates the new password locally and then submits the
// change. confirm must equal newPassword.
func (c *Client) ChangePassword(ctx context.Context, current, newPassword, confirm string) error {
	if current == "" || newPassword == "" || confirm == "" {
		return ErrMissingPassword
	}
	if len(newPassword) < apimodel.MinPasswordLength {
		return ErrPasswordTooShort
	}
	if newPassword != confirm {
		return ErrPasswordMismatch
	}

	body := apimodel.PasswordChange{CurrentPassword: current, NewPassword: newPassword}
	return c.post(ctx, ChangePasswordPath, body, nil)
}
