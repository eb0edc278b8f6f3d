package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/cunservicios/portal/apimodel"
	"github.com/spf13/cobra"
)

const dateLayout = "2006-01-02"

func newInvoicesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "invoices",
		Aliases: []string{"facturas"},
		Short:   "List, show and pay invoices",
	}
	cmd.AddCommand(newInvoicesListCmd(a), newInvoicesShowCmd(a), newInvoicesPayCmd(a))
	return cmd
}

func newInvoicesListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List invoices of the active tenant",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if _, err := a.requireSession(ctx, "invoices list"); err != nil {
				return err
			}
			resp, err := a.client.ListInvoices(ctx)
			if err != nil {
				return fmt.Errorf("list invoices: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(resp) == 0 {
				fmt.Fprintln(out, "No invoices found.")
				return nil
			}
			fmt.Fprintf(out, "%-16s  %-10s  %-10s  %14s  %s\n", "NUMBER", "ISSUED", "DUE", "TOTAL", "STATUS")
			for _, r := range resp {
				inv := apimodel.MapInvoice(r)
				fmt.Fprintf(out, "%-16s  %-10s  %-10s  %14.2f  %s\n",
					inv.Number, formatDate(inv.IssuedAt),
					formatDate(inv.DueAt), inv.Total, inv.Status)
			}
			return nil
		},
	}
}

func newInvoicesShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <number>",
		Short: "Show one invoice with its concepts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if _, err := a.requireSession(ctx, "invoices show"); err != nil {
				return err
			}
			resp, err := a.client.GetInvoice(ctx, args[0])
			if err != nil {
				return fmt.Errorf("get invoice %s: %w", args[0], err)
			}
			printInvoice(cmd.OutOrStdout(), apimodel.MapInvoice(*resp))
			return nil
		},
	}
}

func newInvoicesPayCmd(a *app) *cobra.Command {
	var payment apimodel.PaymentRequest

	cmd := &cobra.Command{
		Use:   "pay <number>",
		Short: "Register a payment for an invoice",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if _, err := a.requireSession(ctx, "invoices pay"); err != nil {
				return err
			}
			if payment.Amount <= 0 {
				invoice, err := a.client.GetInvoice(ctx, args[0])
				if err != nil {
					return fmt.Errorf("get invoice %s: %w", args[0], err)
				}
				payment.Amount = invoice.Total
			}
			ack, err := a.client.PayInvoice(ctx, args[0], payment)
			if err != nil {
				return fmt.Errorf("pay invoice %s: %w", args[0], err)
			}
			return printJSON(cmd.OutOrStdout(), ack)
		},
	}

	cmd.Flags().StringVar(&payment.Method, "method", "PSE", "Payment method")
	cmd.Flags().Float64Var(&payment.Amount, "amount", 0, "Amount paid (defaults to the invoice total)")
	cmd.Flags().StringVar(&payment.Reference, "reference", "", "Payment reference")
	return cmd
}

func printInvoice(out io.Writer, inv apimodel.Invoice) {
	fmt.Fprintf(out, "Invoice %s (%s)\n", inv.Number, inv.Status)
	fmt.Fprintf(out, "  Issued: %s  Due: %s\n",
		formatDate(inv.IssuedAt),
		formatDate(inv.DueAt))
	for _, c := range inv.Concepts {
		fmt.Fprintf(out, "  %-30s %14.2f\n", c.Concept, c.Amount)
	}
	fmt.Fprintf(out, "  %-30s %14.2f\n", "TOTAL", inv.Total)
	if inv.Observations != "" {
		fmt.Fprintf(out, "  %s\n", inv.Observations)
	}
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(dateLayout)
}

func printJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
