package session

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/cunservicios/portal/apiclient"
	"github.com/cunservicios/portal/apimodel"
	"github.com/cunservicios/portal/internal/errors"
	"github.com/cunservicios/portal/internal/utils"
	"github.com/rs/zerolog"
)

// Client is the part of the API client the session needs.
type Client interface {
	Login(ctx context.Context, email, password string) (*apimodel.LoginResponse, error)
	GetCurrentUser(ctx context.Context) (*apimodel.CurrentUser, error)
	SessionExpired() *apiclient.ExpiryNotifier
}

// Store holds the credential, tenant scope and serialized session.
type Store interface {
	DefaultTenantID() string
	ActiveTenantID() string
	SetActiveTenantID(value string)
	ClearActiveTenantID()
	AuthToken() string
	SetAuthToken(token string)
	ClearAuthToken()
	LoadSession() (string, bool)
	SaveSession(raw string)
	ClearSession()
}

// Manager owns the session state machine. It starts in Bootstrapping and
// leaves it exactly once, when Bootstrap completes.
type Manager struct {
	client   Client
	store    Store
	log      zerolog.Logger
	nowFunc  func() time.Time
	onChange func(State)

	// flow serializes restore, login, update, logout and forced logout so
	// their storage writes never interleave.
	flow sync.Mutex

	mu      sync.Mutex
	state   State
	current *Session
	expired bool // last session ended by a rejected token

	bootOnce sync.Once
	bootErr  error
	ready    chan struct{}

	events    <-chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

type Option func(*Manager)

func WithLogger(logger zerolog.Logger) Option {
	return func(m *Manager) {
		m.log = logger
	}
}

func WithNowFunc(now func() time.Time) Option {
	return func(m *Manager) {
		m.nowFunc = now
	}
}

// WithOnChange registers a hook called after every state transition. The
// hook must not call Login, UpdateSession or Logout.
func WithOnChange(fn func(State)) Option {
	return func(m *Manager) {
		m.onChange = fn
	}
}

// New creates a Manager and subscribes it to the client's expiry events.
// Call Close to unsubscribe.
func New(client Client, store Store, options ...Option) *Manager {
	m := &Manager{
		client:  client,
		store:   store,
		log:     zerolog.Nop(),
		nowFunc: time.Now,
		state:   Bootstrapping,
		ready:   make(chan struct{}),
	}
	for _, opt := range options {
		opt(m)
	}

	m.events = client.SessionExpired().Subscribe()
	m.wg.Add(1)
	go m.watchExpiry()
	return m
}

// Close stops listening for expiry events. It is safe to call more than once.
func (m *Manager) Close() {
	m.closeOnce.Do(func() {
		m.client.SessionExpired().Unsubscribe(m.events)
		m.wg.Wait()
	})
}

func (m *Manager) watchExpiry() {
	defer m.wg.Done()
	for range m.events {
		m.expire()
	}
}

// expire forces a logout after the API rejected the token. It is a no-op
// when there is no confirmed session, or when a new token was stored since.
func (m *Manager) expire() {
	if !m.staleSession() {
		return
	}
	m.log.Info().Msg("session expired")

	m.flow.Lock()
	defer m.flow.Unlock()
	// A login or logout may have completed while waiting for flow.
	if !m.staleSession() {
		m.log.Debug().Msg("stale expiry ignored")
		return
	}
	m.logout(true)
}

func (m *Manager) staleSession() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state == Authenticated && m.store.AuthToken() == ""
}

// Bootstrap restores a persisted session. Only the first call does any work;
// later calls return the first result. When the stored token is rejected or
// the server is unreachable the stored state is cleared, the manager ends
// Unauthenticated and the error is returned for display.
func (m *Manager) Bootstrap(ctx context.Context) error {
	m.bootOnce.Do(func() {
		m.bootErr = m.restore(ctx)
		close(m.ready)
	})
	return m.bootErr
}

func (m *Manager) restore(ctx context.Context) error {
	m.flow.Lock()
	defer m.flow.Unlock()

	raw, hasSession := m.store.LoadSession()
	token := m.store.AuthToken()

	var stored Session
	if hasSession {
		stored, hasSession = decode(raw)
	}

	switch {
	case !hasSession && token == "":
		m.log.Info().Msg("no stored session")
		m.finishBootstrap(nil)
		return nil
	case !hasSession || token == "":
		m.log.Info().Bool("token", token != "").Bool("session", hasSession).Msg("discarding partial session")
		m.store.ClearSession()
		m.store.ClearAuthToken()
		m.finishBootstrap(nil)
		return nil
	}

	m.store.SetActiveTenantID(utils.FirstNonEmpty(stored.TenantID, m.store.DefaultTenantID()))
	user, err := m.client.GetCurrentUser(ctx)
	if err != nil {
		m.log.Info().Err(err).Msg("stored session rejected")
		m.store.ClearSession()
		m.store.ClearAuthToken()
		m.finishBootstrap(nil)
		return errors.Wrapf(err, "restore session")
	}

	restored := normalize(Session{
		TenantID:    utils.FirstNonEmpty(user.TenantID, stored.TenantID),
		DisplayName: utils.FirstNonEmpty(stored.DisplayName, user.Email),
		Email:       user.Email,
		IsAdmin:     user.IsAdmin,
		LastLoginAt: stored.LastLoginAt,
	}, m.store.DefaultTenantID(), m.nowFunc())
	m.persist(restored)
	m.store.SetActiveTenantID(restored.TenantID)

	m.log.Info().Str("tenant", restored.TenantID).Msg("session restored")
	m.finishBootstrap(&restored)
	return nil
}

func (m *Manager) finishBootstrap(s *Session) {
	m.mu.Lock()
	m.current = s
	m.state = Unauthenticated
	if s != nil {
		m.state = Authenticated
	}
	state := m.state
	m.mu.Unlock()
	m.notify(state)
}

// Ready is closed once Bootstrap has completed.
func (m *Manager) Ready() <-chan struct{} {
	return m.ready
}

// WaitReady blocks until Bootstrap has completed or ctx is done.
func (m *Manager) WaitReady(ctx context.Context) error {
	select {
	case <-m.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Current returns the session, if authenticated.
func (m *Manager) Current() (Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return Session{}, false
	}
	return *m.current, true
}

// Require gates a protected view. It returns ErrBootstrapping until the
// restore flow has finished and a *RedirectError to the login view when
// there is no session.
func (m *Manager) Require(path string) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch {
	case m.state == Bootstrapping:
		return Session{}, ErrBootstrapping
	case m.current == nil:
		return Session{}, &RedirectError{To: LoginPath, From: path, Expired: m.expired}
	default:
		return *m.current, nil
	}
}

// Login signs in. The tenant scope is activated before the login request so
// that the request is tenant-scoped, and activated again with the tenant the
// server confirms. On any failure the token is cleared and the error
// returned; a session that was active before the attempt is logged out.
func (m *Manager) Login(ctx context.Context, in LoginInput) (Session, error) {
	if strings.TrimSpace(in.Email) == "" || in.Password == "" {
		return Session{}, ErrMissingCredentials
	}

	m.flow.Lock()
	defer m.flow.Unlock()

	s, err := m.login(ctx, in)
	if err != nil {
		m.failLogin()
		return Session{}, err
	}
	return s, nil
}

func (m *Manager) login(ctx context.Context, in LoginInput) (Session, error) {
	tenant := utils.FirstNonEmpty(in.TenantID, m.store.DefaultTenantID())
	m.store.SetActiveTenantID(tenant)
	tenant = m.store.ActiveTenantID()

	resp, err := m.client.Login(ctx, in.Email, in.Password)
	if err != nil {
		return Session{}, err
	}
	if strings.TrimSpace(resp.AccessToken) == "" {
		return Session{}, apiclient.ErrMissingAccess
	}
	m.store.SetAuthToken(resp.AccessToken)

	user, err := m.client.GetCurrentUser(ctx)
	if err != nil {
		return Session{}, err
	}

	s := normalize(Session{
		TenantID:    utils.FirstNonEmpty(user.TenantID, tenant),
		DisplayName: utils.FirstNonEmpty(in.DisplayName, user.Email),
		Email:       user.Email,
		IsAdmin:     user.IsAdmin,
	}, m.store.DefaultTenantID(), m.nowFunc())
	m.persist(s)
	m.store.SetActiveTenantID(s.TenantID)

	m.mu.Lock()
	m.current = &s
	m.state = Authenticated
	m.expired = false
	m.mu.Unlock()

	m.log.Info().Str("tenant", s.TenantID).Bool("admin", s.IsAdmin).Msg("logged in")
	m.notify(Authenticated)
	return s, nil
}

// failLogin drops the credential after a failed attempt. The tenant scope of
// an anonymous visitor is kept; an existing session cannot outlive its token.
func (m *Manager) failLogin() {
	m.store.ClearAuthToken()
	m.mu.Lock()
	authenticated := m.state == Authenticated
	m.mu.Unlock()
	if authenticated {
		m.log.Info().Msg("login failed, ending previous session")
		m.logout(false)
	}
}

// UpdateSession merges u into the current session, persists it and
// re-activates its tenant. The login time is preserved.
func (m *Manager) UpdateSession(u Update) (Session, error) {
	m.flow.Lock()
	defer m.flow.Unlock()

	m.mu.Lock()
	if m.current == nil {
		m.mu.Unlock()
		return Session{}, ErrNotAuthenticated
	}
	updated := u.apply(*m.current)
	updated.LastLoginAt = m.current.LastLoginAt
	updated = normalize(updated, m.store.DefaultTenantID(), m.nowFunc())
	m.current = &updated
	m.mu.Unlock()

	m.persist(updated)
	m.store.SetActiveTenantID(updated.TenantID)
	m.notify(Authenticated)
	return updated, nil
}

// Logout clears the session, the token and the tenant scope. Calling it
// without a session is a no-op apart from clearing storage again.
func (m *Manager) Logout() {
	m.flow.Lock()
	defer m.flow.Unlock()
	m.logout(false)
}

// logout clears state; expired records that the token was rejected. The
// caller holds flow.
func (m *Manager) logout(expired bool) {
	m.mu.Lock()
	changed := m.state == Authenticated
	m.current = nil
	m.expired = expired && changed
	if m.state != Bootstrapping {
		m.state = Unauthenticated
	}
	m.mu.Unlock()

	m.store.ClearSession()
	m.store.ClearAuthToken()
	m.store.ClearActiveTenantID()

	if changed {
		m.log.Info().Msg("logged out")
		m.notify(Unauthenticated)
	}
}

func (m *Manager) persist(s Session) {
	raw, err := encode(s)
	if err != nil {
		m.log.Warn().Err(err).Msg("session not persisted")
		return
	}
	m.store.SaveSession(raw)
}

func (m *Manager) notify(state State) {
	if m.onChange != nil {
		m.onChange(state)
	}
}
