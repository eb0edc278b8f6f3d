package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/cunservicios/portal/inbox"
	"github.com/spf13/cobra"
)

func newInboxCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inbox",
		Short: "Keep raw input data for later processing",
	}
	cmd.AddCommand(newInboxAddCmd(a), newInboxListCmd(a))
	return cmd
}

func newInboxAddCmd(a *app) *cobra.Command {
	var d inbox.Draft
	var contentFile string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Save a data draft",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.requireSession(cmd.Context(), "inbox add")
			if err != nil {
				return err
			}
			if contentFile != "" {
				data, err := os.ReadFile(contentFile)
				if err != nil {
					return fmt.Errorf("read content: %w", err)
				}
				d.RawContent = string(data)
			}

			rec := a.inbox.Save(s.TenantID, d)
			fmt.Fprintf(cmd.OutOrStdout(), "Saved draft %s\n", rec.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&d.Source, "source", inbox.SourcePDF, "pdf, excel, correo or manual")
	cmd.Flags().StringVar(&d.FileName, "file", "", "Original file name")
	cmd.Flags().StringVar(&d.Description, "description", "", "Description")
	cmd.Flags().StringVar(&d.RawContent, "content", "", "Raw content")
	cmd.Flags().StringVar(&contentFile, "content-file", "", "Read the raw content from a file")
	return cmd
}

func newInboxListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved drafts",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.requireSession(cmd.Context(), "inbox list")
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			records := a.inbox.List(s.TenantID)
			if len(records) == 0 {
				fmt.Fprintln(out, "Inbox is empty.")
				return nil
			}
			for _, r := range records {
				fmt.Fprintf(out, "%s  %-7s  %-24s  %s\n", r.Date.Local().Format(time.DateTime), r.Source, r.FileName, r.Description)
			}
			return nil
		},
	}
}
