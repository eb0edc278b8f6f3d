package cli

import (
	"context"
	"fmt"

	"github.com/cunservicios/portal/apimodel"
	"github.com/spf13/cobra"
)

func newReceiptsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "receipts",
		Aliases: []string{"recibos"},
		Short:   "Generate public-lighting receipts",
	}
	cmd.AddCommand(newReceiptsTemplateCmd(a), newReceiptsCreateCmd(a), newReceiptsListCmd(a))
	return cmd
}

type receiptFlags struct {
	municipality string
	contact      string
	period       string
	methodology  string
	components   apimodel.ReceiptComponents
}

func (f *receiptFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.municipality, "municipio", "", "Municipality")
	cmd.Flags().StringVar(&f.contact, "contact", "", "Contact printed on the receipt")
	cmd.Flags().StringVar(&f.period, "period", "", "Billing period (YYYY-MM)")
	cmd.Flags().StringVar(&f.methodology, "methodology", "", "Tariff methodology")
	cmd.Flags().Float64Var(&f.components.CSEE, "csee", 0, "Energy supply cost")
	cmd.Flags().Float64Var(&f.components.CINV, "cinv", 0, "Investment cost")
	cmd.Flags().Float64Var(&f.components.CAOM, "caom", 0, "Administration, operation and maintenance cost")
	cmd.Flags().Float64Var(&f.components.COTR, "cotr", 0, "Other costs")
}

// template loads the server template over the local defaults and applies the
// flags the user set. A failed template request falls back to the defaults.
func (f *receiptFlags) template(ctx context.Context, cmd *cobra.Command, a *app) apimodel.ReceiptTemplate {
	tmpl := apimodel.DefaultReceiptTemplate(f.municipality, f.contact)
	if server, err := a.client.GetReceiptTemplate(ctx); err != nil {
		a.log.Warn().Err(err).Msg("receipt template unavailable, using defaults")
	} else {
		tmpl = tmpl.Merge(*server)
	}

	set := cmd.Flags().Changed
	if set("period") {
		tmpl.Period = f.period
	}
	if set("methodology") {
		tmpl.Methodology = f.methodology
	}
	if set("csee") {
		tmpl.Components.CSEE = f.components.CSEE
	}
	if set("cinv") {
		tmpl.Components.CINV = f.components.CINV
	}
	if set("caom") {
		tmpl.Components.CAOM = f.components.CAOM
	}
	if set("cotr") {
		tmpl.Components.COTR = f.components.COTR
	}
	return tmpl
}

func newReceiptsTemplateCmd(a *app) *cobra.Command {
	f := &receiptFlags{}
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Print the receipt template of the active tenant",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if _, err := a.requireSession(ctx, "receipts template"); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), f.template(ctx, cmd, a))
		},
	}
	f.register(cmd)
	return cmd
}

func newReceiptsCreateCmd(a *app) *cobra.Command {
	f := &receiptFlags{}
	var (
		markdown        bool
		fromCalculation string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Generate a simple receipt from the template or a cost calculation",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := a.requireSession(ctx, "receipts create")
			if err != nil {
				return err
			}

			tmpl := f.template(ctx, cmd, a)
			var receipt *apimodel.SimpleReceipt
			if fromCalculation != "" {
				in, err := readLightingInput(fromCalculation)
				if err != nil {
					return err
				}
				receipt, err = a.client.CreateReceiptFromCalculation(ctx, in, tmpl.Metadata)
				if err != nil {
					return fmt.Errorf("create receipt: %w", err)
				}
			} else {
				if tmpl.Municipality == "" || tmpl.Period == "" {
					return fmt.Errorf("--municipio and --period are required")
				}
				receipt, err = a.client.CreateSimpleReceipt(ctx, tmpl)
				if err != nil {
					return fmt.Errorf("create receipt: %w", err)
				}
			}
			a.receipts.Add(s.TenantID, *receipt)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Receipt %s  period %s  total %.2f\n\n", receipt.Number, receipt.Period, receipt.Total)
			if markdown {
				fmt.Fprintln(out, receipt.MarkdownContent)
			} else {
				fmt.Fprintln(out, receipt.TextContent)
			}
			return nil
		},
	}
	f.register(cmd)
	cmd.Flags().BoolVar(&markdown, "markdown", false, "Print the markdown rendition")
	cmd.Flags().StringVar(&fromCalculation, "from-calculation", "", "Calculate the components from a lighting input JSON file")
	return cmd
}

func newReceiptsListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List receipts generated from this machine",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.requireSession(cmd.Context(), "receipts list")
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			entries := a.receipts.List(s.TenantID)
			if len(entries) == 0 {
				fmt.Fprintln(out, "No receipts generated yet.")
				return nil
			}
			fmt.Fprintf(out, "%-20s  %-8s  %14s  %s\n", "NUMBER", "PERIOD", "TOTAL", "MUNICIPIO")
			for _, e := range entries {
				fmt.Fprintf(out, "%-20s  %-8s  %14.2f  %s\n", e.Number, e.Period, e.Total, e.Municipality)
			}
			return nil
		},
	}
}
