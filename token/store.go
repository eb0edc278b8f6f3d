package token

import (
	"errors"
	"strings"

	"github.com/cunservicios/portal/storage"
	"github.com/cunservicios/portal/tenants"
	"github.com/rs/zerolog"
)

// Storage keys shared with the rest of the portal client.
const (
	AuthTokenKey    = "token"
	ActiveTenantKey = "portal.active_tenant"
	SessionKey      = "portal.session.v1"
)

// Store persists the active tenant id and the bearer token. It has no
// in-memory cache: every read goes to the backing repo.
//
// Store never fails. A nil or unavailable repo degrades reads to defaults
// and turns writes into no-ops.
type Store struct {
	repo          storage.Repo
	defaultTenant string
	log           zerolog.Logger
}

type StoreOption func(*Store)

// WithDefaultTenant sets the tenant returned when none is stored.
func WithDefaultTenant(tenantID string) StoreOption {
	return func(s *Store) {
		s.defaultTenant = tenants.Normalize(tenantID, tenants.DefaultID)
	}
}

func WithLogger(logger zerolog.Logger) StoreOption {
	return func(s *Store) {
		s.log = logger
	}
}

func NewStore(repo storage.Repo, options ...StoreOption) *Store {
	s := &Store{
		repo:          repo,
		defaultTenant: tenants.DefaultID,
		log:           zerolog.Nop(),
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

// DefaultTenantID returns the configured fallback tenant.
func (s *Store) DefaultTenantID() string {
	return s.defaultTenant
}

// ActiveTenantID returns the stored tenant id, normalized, or the default
// tenant when it is absent, malformed or storage is unavailable.
func (s *Store) ActiveTenantID() string {
	value, ok := s.get(ActiveTenantKey)
	if !ok {
		return s.defaultTenant
	}
	return tenants.Normalize(value, s.defaultTenant)
}

// SetActiveTenantID normalizes value and persists it.
func (s *Store) SetActiveTenantID(value string) {
	s.set(ActiveTenantKey, tenants.Normalize(value, s.defaultTenant))
}

// ClearActiveTenantID removes the stored tenant so reads return the default.
func (s *Store) ClearActiveTenantID() {
	s.delete(ActiveTenantKey)
}

// AuthToken returns the stored bearer token or "".
func (s *Store) AuthToken() string {
	value, _ := s.get(AuthTokenKey)
	return strings.TrimSpace(value)
}

// SetAuthToken stores the bearer token. An empty token clears it.
func (s *Store) SetAuthToken(token string) {
	if strings.TrimSpace(token) == "" {
		s.ClearAuthToken()
		return
	}
	s.set(AuthTokenKey, token)
}

func (s *Store) ClearAuthToken() {
	s.delete(AuthTokenKey)
}

// LoadSession returns the serialized session record.
func (s *Store) LoadSession() (string, bool) {
	value, ok := s.get(SessionKey)
	if !ok || strings.TrimSpace(value) == "" {
		return "", false
	}
	return value, true
}

func (s *Store) SaveSession(raw string) {
	s.set(SessionKey, raw)
}

func (s *Store) ClearSession() {
	s.delete(SessionKey)
}

// Get, Set and Delete expose the raw repo with the same degrade-silently
// behaviour, for state kept next to the credentials (the session record,
// tenant-scoped history).
func (s *Store) Get(key string) (string, bool) {
	return s.get(key)
}

func (s *Store) Set(key, value string) {
	s.set(key, value)
}

func (s *Store) Delete(key string) {
	s.delete(key)
}

func (s *Store) get(key string) (string, bool) {
	if s.repo == nil {
		return "", false
	}
	value, err := s.repo.Get(key)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.log.Warn().Err(err).Str("key", key).Msg("storage read failed, using default")
		}
		return "", false
	}
	return value, true
}

func (s *Store) set(key, value string) {
	if s.repo == nil {
		return
	}
	if err := s.repo.Set(key, value); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("storage write skipped")
	}
}

func (s *Store) delete(key string) {
	if s.repo == nil {
		return
	}
	if err := s.repo.Delete(key); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("storage delete skipped")
	}
}
