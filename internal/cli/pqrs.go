package cli

import (
	"fmt"
	"strings"

	"github.com/cunservicios/portal/apimodel"
	"github.com/spf13/cobra"
)

func newPQRsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pqrs",
		Short: "File and follow petitions, complaints and claims",
	}
	cmd.AddCommand(newPQRsListCmd(a), newPQRsShowCmd(a), newPQRsCreateCmd(a))
	return cmd
}

func newPQRsListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List filed requests",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if _, err := a.requireSession(ctx, "pqrs list"); err != nil {
				return err
			}
			pqrs, err := a.client.ListPQRs(ctx)
			if err != nil {
				return fmt.Errorf("list pqrs: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(pqrs) == 0 {
				fmt.Fprintln(out, "No requests found.")
				return nil
			}
			fmt.Fprintf(out, "%-14s  %-11s  %-12s  %s\n", "RADICADO", "TYPE", "STATUS", "SUBJECT")
			for _, p := range pqrs {
				fmt.Fprintf(out, "%-14s  %-11s  %-12s  %s\n", p.FilingNumber, p.Type, p.Status, p.Subject)
			}
			return nil
		},
	}
}

func newPQRsShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <radicado>",
		Short: "Show a filed request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if _, err := a.requireSession(ctx, "pqrs show"); err != nil {
				return err
			}
			pqr, err := a.client.GetPQR(ctx, args[0])
			if err != nil {
				return fmt.Errorf("get pqr %s: %w", args[0], err)
			}
			return printJSON(cmd.OutOrStdout(), pqr)
		},
	}
}

func newPQRsCreateCmd(a *app) *cobra.Command {
	var in apimodel.PQRCreate

	cmd := &cobra.Command{
		Use:   "create",
		Short: "File a new request",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if _, err := a.requireSession(ctx, "pqrs create"); err != nil {
				return err
			}
			in.Type = strings.ToUpper(strings.TrimSpace(in.Type))
			if in.Subject == "" || in.Description == "" {
				return fmt.Errorf("--subject and --description are required")
			}
			pqr, err := a.client.CreatePQR(ctx, in)
			if err != nil {
				return fmt.Errorf("create pqr: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Filed %s with radicado %s\n", pqr.Type, pqr.FilingNumber)
			return nil
		},
	}

	cmd.Flags().StringVar(&in.Type, "type", string(apimodel.PQRPeticion), "PETICION, QUEJA, RECLAMO, SUGERENCIA or DENUNCIA")
	cmd.Flags().StringVar(&in.Subject, "subject", "", "Subject")
	cmd.Flags().StringVar(&in.Description, "description", "", "Description")
	cmd.Flags().IntVar(&in.CustomerID, "customer", 0, "Customer id")
	return cmd
}
