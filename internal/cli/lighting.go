package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/cunservicios/portal/apimodel"
	"github.com/spf13/cobra"
)

func newLightingCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "lighting",
		Aliases: []string{"alumbrado"},
		Short:   "Public-lighting cost calculator",
	}
	cmd.AddCommand(newLightingParamsCmd(a), newLightingCalculateCmd(a))
	return cmd
}

func newLightingParamsCmd(a *app) *cobra.Command {
	var year int

	cmd := &cobra.Command{
		Use:   "params",
		Short: "Print the methodology parameters for a year",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if _, err := a.requireSession(ctx, "lighting params"); err != nil {
				return err
			}
			params, err := a.client.GetLightingParameters(ctx, year)
			if err != nil {
				return fmt.Errorf("lighting parameters: %w", err)
			}
			return printJSON(cmd.OutOrStdout(), params)
		},
	}
	cmd.Flags().IntVar(&year, "year", time.Now().Year(), "Application year")
	return cmd
}

func newLightingCalculateCmd(a *app) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "calculate <input.json>",
		Short: "Calculate the lighting costs (CAP) from a JSON input file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if _, err := a.requireSession(ctx, "lighting calculate"); err != nil {
				return err
			}
			in, err := readLightingInput(args[0])
			if err != nil {
				return err
			}
			result, err := a.client.CalculateLighting(ctx, in)
			if err != nil {
				return fmt.Errorf("calculate: %w", err)
			}

			out := cmd.OutOrStdout()
			if raw {
				return printJSON(out, result)
			}
			fmt.Fprintf(out, "%s  %s  (%s)\n", result.Municipality, result.Period, result.Methodology)
			for _, line := range []struct {
				name  string
				value float64
			}{
				{"CSEE", result.CSEE},
				{"CINV", result.CINV},
				{"CAOM", result.CAOM},
				{"COTR", result.COTR},
				{"CAP", result.CAP},
			} {
				fmt.Fprintf(out, "  %-6s %16.2f\n", line.name, line.value)
			}
			for _, alert := range result.Alerts {
				fmt.Fprintf(out, "  ! %s\n", alert)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&raw, "json", false, "Print the full result as JSON")
	return cmd
}

// readLightingInput decodes a calculation input, rejecting unknown fields so
// misspelled keys are not silently dropped.
func readLightingInput(path string) (apimodel.LightingInput, error) {
	var in apimodel.LightingInput
	f, err := os.Open(path)
	if err != nil {
		return in, fmt.Errorf("read calculation input: %w", err)
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&in); err != nil {
		return in, fmt.Errorf("parse %s: %w", path, err)
	}
	return in, nil
}
