package cli

import (
	"fmt"

	"github.com/common-nighthawk/go-figure"
	"github.com/cunservicios/portal/internal/config"
	"github.com/spf13/cobra"
)

func newVersionCmd(cfg config.Config) *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the client version",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if !plain {
				banner := figure.NewFigure(cfg.GetAppName(), "cybermedium", true)
				fmt.Fprintln(out, banner.String())
			}
			fmt.Fprintf(out, "%s %s (%s)\n", cfg.GetAppName(), Version, cfg.GetEnv())
			return nil
		},
	}
	cmd.Flags().BoolVar(&plain, "plain", false, "Omit the banner")
	return cmd
}
