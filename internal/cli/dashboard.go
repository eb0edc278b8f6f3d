package cli

import (
	"fmt"

	"github.com/cunservicios/portal/apimodel"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newDashboardCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Summary of the active tenant",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := a.requireSession(ctx, "dashboard")
			if err != nil {
				return err
			}

			var (
				invoices    []apimodel.InvoiceResponse
				pqrs        []apimodel.PQR
				invoicesErr error
				pqrsErr     error
			)
			// Each section degrades on its own; the group never fails.
			var g errgroup.Group
			g.Go(func() error {
				invoices, invoicesErr = a.client.ListInvoices(ctx)
				return nil
			})
			g.Go(func() error {
				pqrs, pqrsErr = a.client.ListPQRs(ctx)
				return nil
			})
			_ = g.Wait()

			out := cmd.OutOrStdout()
			stats := a.receipts.Stats(s.TenantID)
			fmt.Fprintf(out, "Tenant:             %s\n", s.TenantID)
			fmt.Fprintf(out, "Receipts generated: %d\n", stats.Total)
			fmt.Fprintf(out, "Last period:        %s\n", stats.LastPeriod)
			fmt.Fprintf(out, "Inbox drafts:       %d\n", len(a.inbox.List(s.TenantID)))

			if pqrsErr != nil {
				a.log.Warn().Err(pqrsErr).Msg("pqrs unavailable")
				fmt.Fprintln(out, "PQRs filed:         unavailable")
			} else {
				fmt.Fprintf(out, "PQRs filed:         %d\n", len(pqrs))
			}

			if invoicesErr != nil {
				a.log.Warn().Err(invoicesErr).Msg("invoices unavailable")
				fmt.Fprintln(out, "Latest invoice:     unavailable")
				return nil
			}
			latest, ok := apimodel.LatestInvoice(invoices)
			if !ok {
				fmt.Fprintln(out, "Latest invoice:     none")
				return nil
			}
			inv := apimodel.MapInvoice(latest)
			fmt.Fprintf(out, "Latest invoice:     %s  %s  %.2f  %s\n", inv.Number, formatDate(inv.IssuedAt), inv.Total, inv.Status)
			return nil
		},
	}
}
