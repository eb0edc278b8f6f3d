package cli

import (
	"fmt"

	"github.com/cunservicios/portal/internal/errors"
	"github.com/cunservicios/portal/internal/utils"
	"github.com/cunservicios/portal/session"
	"github.com/cunservicios/portal/tenants"
	"github.com/spf13/cobra"
)

func newTenantCmd(a *app) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "tenant [id]",
		Short: "Show or switch the active tenant",
		Long: "Without arguments, print the active tenant. With an id, make it the active tenant " +
			"for every following request. " + tenants.ValidationHint,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a.bootstrap(cmd.Context())
			out := cmd.OutOrStdout()

			if len(args) == 0 {
				fmt.Fprintln(out, a.store.ActiveTenantID())
				return nil
			}

			requested := args[0]
			if !tenants.IsValid(requested) {
				if strict {
					return fmt.Errorf("%w %q: %s", errors.ErrInvalidTenant, requested, tenants.ValidationHint)
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "%q is not a valid tenant id, using %s. %s\n",
					requested, a.store.DefaultTenantID(), tenants.ValidationHint)
			}

			if a.session.State() == session.Authenticated {
				if _, err := a.session.UpdateSession(session.Update{TenantID: utils.Ptr(requested)}); err != nil {
					return err
				}
			} else {
				a.store.SetActiveTenantID(requested)
			}

			fmt.Fprintf(out, "Active tenant: %s\n", a.store.ActiveTenantID())
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "Reject malformed tenant ids instead of falling back to the default")
	return cmd
}
