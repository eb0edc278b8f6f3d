// Package session restores, mutates and tears down the portal session and
// gates access to protected views.
package session

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/cunservicios/portal/tenants"
)

// DefaultDisplayName is used when neither the caller nor the server provides a name.
const DefaultDisplayName = "Usuario portal"

// State is the authentication state of a Manager.
type State int

const (
	Bootstrapping State = iota
	Unauthenticated
	Authenticated
)

func (s State) String() string {
	switch s {
	case Bootstrapping:
		return "bootstrapping"
	case Unauthenticated:
		return "unauthenticated"
	case Authenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Session is the signed-in user's profile as persisted between runs.
type Session struct {
	TenantID    string    `json:"tenantId"`    // Tenant the user is working in
	DisplayName string    `json:"displayName"` // Name shown in the portal header
	Email       string    `json:"email"`       // Server-confirmed email
	IsAdmin     bool      `json:"isAdmin"`     // Server-confirmed admin flag
	LastLoginAt time.Time `json:"lastLoginAt"` // Set at login, preserved by updates
}

// LoginInput is what the login form collects.
type LoginInput struct {
	TenantID    string
	DisplayName string
	Email       string
	Password    string
}

// Update is a partial session change. Nil fields are left as they are.
type Update struct {
	TenantID    *string
	DisplayName *string
	Email       *string
	IsAdmin     *bool
}

func (u Update) apply(s Session) Session {
	if u.TenantID != nil {
		s.TenantID = *u.TenantID
	}
	if u.DisplayName != nil {
		s.DisplayName = *u.DisplayName
	}
	if u.Email != nil {
		s.Email = *u.Email
	}
	if u.IsAdmin != nil {
		s.IsAdmin = *u.IsAdmin
	}
	return s
}

// normalize fills defaults: tenant falls back to defaultTenant, display name
// to DefaultDisplayName and the login time to now.
func normalize(s Session, defaultTenant string, now time.Time) Session {
	s.TenantID = tenants.Normalize(s.TenantID, defaultTenant)
	s.DisplayName = strings.TrimSpace(s.DisplayName)
	if s.DisplayName == "" {
		s.DisplayName = DefaultDisplayName
	}
	s.Email = strings.TrimSpace(s.Email)
	if s.LastLoginAt.IsZero() {
		s.LastLoginAt = now
	}
	s.LastLoginAt = s.LastLoginAt.UTC()
	return s
}

func decode(raw string) (Session, bool) {
	var s Session
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return Session{}, false
	}
	return s, true
}

func encode(s Session) (string, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
