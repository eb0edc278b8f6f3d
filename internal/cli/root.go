// Package cli is the portal command line: a thin rendering layer over the
// session, API client and local history packages.
package cli

import (
	"github.com/cunservicios/portal/internal/config"
	"github.com/cunservicios/portal/storage"
	"github.com/spf13/cobra"
)

// Version is stamped at build time.
var Version = "dev"

type flags struct {
	apiURL     string
	apiPrefix  string
	tenant     string
	storage    string
	dataFolder string
	debug      bool
	logLevel   string
	logFormat  string
}

type rootOptions struct {
	repo storage.Repo
}

type Option func(*rootOptions)

// WithRepo makes every command share repo instead of opening the configured
// storage backend.
func WithRepo(repo storage.Repo) Option {
	return func(o *rootOptions) {
		o.repo = repo
	}
}

// Execute runs the CLI with os.Args. Components are released even when the
// command fails, so pending session-expiry events are applied before exit.
func Execute(options ...Option) error {
	root, a := newRootCmd(options...)
	err := root.Execute()
	if closeErr := a.close(); err == nil {
		err = closeErr
	}
	return err
}

// NewRootCmd creates the root cobra command for the portal CLI.
func NewRootCmd(options ...Option) *cobra.Command {
	root, _ := newRootCmd(options...)
	return root
}

func newRootCmd(options ...Option) (*cobra.Command, *app) {
	opts := &rootOptions{}
	for _, opt := range options {
		opt(opts)
	}

	cfg := config.New()
	f := &flags{}
	a := &app{}

	root := &cobra.Command{
		Use:   "portal",
		Short: "Cunservicios customer portal",
		Long:  "Sign in to the Cunservicios portal, switch tenants, and work with invoices, PQRs and public-lighting receipts.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if f.debug {
				f.logLevel = "debug"
			}
			return a.open(cfg, f, opts)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close()
		},
		SilenceUsage: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&f.apiURL, "api-url", cfg.GetAPIURL(), "Portal API base URL (or PORTAL_API_URL env)")
	pf.StringVar(&f.apiPrefix, "api-prefix", cfg.GetAPIPrefix(), "API path prefix (or PORTAL_API_PREFIX env)")
	pf.StringVar(&f.tenant, "default-tenant", cfg.GetDefaultTenantID(), "Tenant used when none is selected (or PORTAL_DEFAULT_TENANT env)")
	pf.StringVar(&f.storage, "storage", cfg.GetStorageBackend(), "Local state backend: file, sqlite or memory (or PORTAL_STORAGE env)")
	pf.StringVar(&f.dataFolder, "data-folder", cfg.GetDataFolder(), "Folder for local state (or PORTAL_DATA_FOLDER env)")
	pf.BoolVar(&f.debug, "debug", false, "Enable debug logging")
	pf.StringVar(&f.logLevel, "log-level", cfg.GetLogLevel(), "Log level (debug, info, warn, error)")
	pf.StringVar(&f.logFormat, "log-format", cfg.GetLogFormat(), "Log format (text, json)")

	root.AddCommand(
		newLoginCmd(a),
		newLogoutCmd(a),
		newWhoamiCmd(a),
		newTenantCmd(a),
		newPasswordCmd(a),
		newInvoicesCmd(a),
		newPQRsCmd(a),
		newCustomersCmd(a),
		newReceiptsCmd(a),
		newLightingCmd(a),
		newInboxCmd(a),
		newDashboardCmd(a),
		newVersionCmd(cfg),
	)

	return root, a
}
