package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cunservicios/portal/apiclient"
	"github.com/cunservicios/portal/inbox"
	"github.com/cunservicios/portal/internal/config"
	"github.com/cunservicios/portal/internal/errors"
	"github.com/cunservicios/portal/internal/logging"
	"github.com/cunservicios/portal/receipts"
	"github.com/cunservicios/portal/session"
	"github.com/cunservicios/portal/storage"
	"github.com/cunservicios/portal/storage/filestore"
	"github.com/cunservicios/portal/storage/repofake"
	"github.com/cunservicios/portal/storage/sqlitestore"
	"github.com/cunservicios/portal/token"
	"github.com/rs/zerolog"
)

const sqliteFileName = "portal.db"

// app holds the components shared by the commands of one invocation.
type app struct {
	log      zerolog.Logger
	closers  []func() error
	store    *token.Store
	client   *apiclient.Client
	session  *session.Manager
	receipts *receipts.History
	inbox    *inbox.Inbox
}

func (a *app) open(cfg config.Config, f *flags, opts *rootOptions) error {
	a.log = logging.New(logging.ParseLevel(f.logLevel), f.logFormat)

	repo := opts.repo
	if repo == nil {
		var err error
		repo, err = a.openRepo(f.storage, f.dataFolder)
		if err != nil {
			// Local state is best effort; run without it.
			a.log.Warn().Err(err).Str("backend", f.storage).Msg("local storage unavailable")
			repo = storage.Unavailable{}
		}
	}

	a.store = token.NewStore(repo,
		token.WithDefaultTenant(f.tenant),
		token.WithLogger(a.log.With().Str("component", "store").Logger()),
	)
	a.client = apiclient.New(f.apiURL, a.store,
		apiclient.WithAPIPrefix(f.apiPrefix),
		apiclient.WithLogger(a.log.With().Str("component", "api").Logger()),
	)
	a.session = session.New(a.client, a.store,
		session.WithLogger(a.log.With().Str("component", "session").Logger()),
	)
	a.closers = append(a.closers, func() error {
		a.session.Close()
		return nil
	})
	a.receipts = receipts.New(a.store, receipts.WithLogger(a.log))
	a.inbox = inbox.New(a.store, inbox.WithLogger(a.log))

	a.log.Debug().
		Str("app", cfg.GetAppName()).
		Str("env", cfg.GetEnv()).
		Str("api", f.apiURL+f.apiPrefix).
		Str("storage", f.storage).
		Msg("portal client ready")
	return nil
}

func (a *app) openRepo(backend, folder string) (storage.Repo, error) {
	switch backend {
	case config.StorageMemory:
		return repofake.NewFakeRepo(), nil
	case config.StorageSQLite:
		if err := os.MkdirAll(folder, 0o700); err != nil {
			return nil, fmt.Errorf("create data folder: %w", err)
		}
		s, err := sqlitestore.New(filepath.Join(folder, sqliteFileName))
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, s.Close)
		return s, nil
	default:
		return filestore.New(folder)
	}
}

// close releases the components in reverse order of creation.
func (a *app) close() error {
	var firstErr error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	a.closers = nil
	return firstErr
}

// bootstrap restores the stored session. A rejected session is reported
// but is not an error for the command.
func (a *app) bootstrap(ctx context.Context) {
	if err := a.session.Bootstrap(ctx); err != nil {
		if apiclient.IsUnauthorized(err) {
			a.log.Warn().Msg("stored session expired, please log in again")
			return
		}
		a.log.Warn().Err(err).Msg("could not restore session")
	}
}

// requireSession bootstraps and returns the session, or an error telling
// the user to log in.
func (a *app) requireSession(ctx context.Context, command string) (session.Session, error) {
	a.bootstrap(ctx)
	s, err := a.session.Require(command)
	if err != nil {
		var redirect *session.RedirectError
		if errors.As(err, &redirect) {
			if redirect.Expired {
				return session.Session{}, fmt.Errorf("%s: session expired, run `portal login` again", redirect.From)
			}
			return session.Session{}, fmt.Errorf("%s requires a session: run `portal login` first", redirect.From)
		}
		return session.Session{}, err
	}
	return s, nil
}
