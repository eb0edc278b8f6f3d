package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCustomersCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "customers",
		Aliases: []string{"clientes"},
		Short:   "Look up utility customers",
	}
	cmd.AddCommand(newCustomersListCmd(a), newCustomersShowCmd(a))
	return cmd
}

func newCustomersListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List customers of the active tenant",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if _, err := a.requireSession(ctx, "customers list"); err != nil {
				return err
			}
			customers, err := a.client.ListCustomers(ctx)
			if err != nil {
				return fmt.Errorf("list customers: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(customers) == 0 {
				fmt.Fprintln(out, "No customers found.")
				return nil
			}
			fmt.Fprintf(out, "%-14s  %-7s  %-28s  %s\n", "ACCOUNT", "STRATUM", "NAME", "ADDRESS")
			for _, c := range customers {
				fmt.Fprintf(out, "%-14s  %-7d  %-28s  %s\n", c.AccountNumber, c.Stratum, c.Name, c.Address)
			}
			return nil
		},
	}
}

func newCustomersShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <account>",
		Short: "Show a customer and its invoices",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if _, err := a.requireSession(ctx, "customers show"); err != nil {
				return err
			}
			c, err := a.client.GetCustomer(ctx, args[0])
			if err != nil {
				return fmt.Errorf("get customer %s: %w", args[0], err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (account %s, stratum %d)\n", c.Name, c.AccountNumber, c.Stratum)
			fmt.Fprintf(out, "  %s  %s  %s\n", c.Address, c.Phone, c.Email)
			for _, inv := range c.Invoices {
				fmt.Fprintf(out, "  %-16s  %14.2f  %s\n", inv.Number, inv.Total, inv.Status)
			}
			return nil
		},
	}
}
