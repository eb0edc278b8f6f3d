package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/cunservicios/portal/session"
	"github.com/cunservicios/portal/token"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newLoginCmd(a *app) *cobra.Command {
	var in session.LoginInput

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to the portal",
		Long:  "Sign in with email and password. The session is kept in local storage until logout or expiry.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a.bootstrap(ctx)

			if in.Password == "" {
				password, err := readSecret(cmd, bufio.NewReader(cmd.InOrStdin()), "Password: ")
				if err != nil {
					return err
				}
				in.Password = password
			}

			s, err := a.session.Login(ctx, in)
			if err != nil {
				return fmt.Errorf("login: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (%s) on tenant %s\n", s.DisplayName, s.Email, s.TenantID)
			return nil
		},
	}

	cmd.Flags().StringVar(&in.TenantID, "tenant", "", "Tenant id (defaults to the active tenant)")
	cmd.Flags().StringVar(&in.Email, "email", "", "Account email")
	cmd.Flags().StringVar(&in.Password, "password", "", "Account password (prompted if omitted)")
	cmd.Flags().StringVar(&in.DisplayName, "name", "", "Display name shown in the portal")
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			a.bootstrap(cmd.Context())
			a.session.Logout()
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return nil
		},
	}
}

func newWhoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.requireSession(cmd.Context(), "whoami")
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Name:       %s\n", s.DisplayName)
			fmt.Fprintf(out, "Email:      %s\n", s.Email)
			fmt.Fprintf(out, "Tenant:     %s\n", s.TenantID)
			fmt.Fprintf(out, "Admin:      %t\n", s.IsAdmin)
			fmt.Fprintf(out, "Last login: %s\n", s.LastLoginAt.Local().Format(time.RFC1123))

			if claims, err := token.Inspect(a.store.AuthToken()); err == nil && !claims.ExpiresAt.IsZero() {
				status := ""
				if claims.Expired() {
					status = " (expired)"
				}
				fmt.Fprintf(out, "Token exp:  %s%s\n", claims.ExpiresAt.Local().Format(time.RFC1123), status)
			}
			return nil
		},
	}
}

func newPasswordCmd(a *app) *cobra.Command {
	var current, next, confirm string

	cmd := &cobra.Command{
		Use:   "password",
		Short: "Change the account password",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if _, err := a.requireSession(ctx, "password"); err != nil {
				return err
			}

			fields := []struct {
				value *string
				label string
			}{
				{&current, "Current password: "},
				{&next, "New password: "},
				{&confirm, "Confirm new password: "},
			}
			reader := bufio.NewReader(cmd.InOrStdin())
			for _, field := range fields {
				if *field.value != "" {
					continue
				}
				value, err := readSecret(cmd, reader, field.label)
				if err != nil {
					return err
				}
				*field.value = value
			}

			if err := a.client.ChangePassword(ctx, current, next, confirm); err != nil {
				return fmt.Errorf("change password: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Password updated.")
			return nil
		},
	}

	cmd.Flags().StringVar(&current, "current", "", "Current password (prompted if omitted)")
	cmd.Flags().StringVar(&next, "new", "", "New password, at least 8 characters (prompted if omitted)")
	cmd.Flags().StringVar(&confirm, "confirm", "", "New password again (prompted if omitted)")
	return cmd
}

// readSecret reads a password without echo when stdin is a terminal, and a
// plain line otherwise.
func readSecret(cmd *cobra.Command, reader *bufio.Reader, label string) (string, error) {
	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(cmd.ErrOrStderr(), label)
		secret, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return strings.TrimSpace(string(secret)), nil
	}
	return promptLine(reader, cmd.ErrOrStderr(), label)
}

func promptLine(reader *bufio.Reader, out io.Writer, label string) (string, error) {
	fmt.Fprint(out, label)
	line, err := reader.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}
