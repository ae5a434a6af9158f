package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nourshop/storefront/pkg/credential"
)

var (
	flagEmail    string
	flagPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate against the storefront backend",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		token, err := current.client.Login(ctx, flagEmail, flagPassword)
		if err != nil {
			return fmt.Errorf("login failed: %w", err)
		}

		identity, err := current.sessions.Login(ctx, token)
		if err != nil {
			if errors.Is(err, credential.ErrMalformedCredential) {
				return fmt.Errorf("backend issued an unreadable credential: %w", err)
			}
			// Storage fault: logged in for this run only.
			fmt.Fprintln(cmd.ErrOrStderr(), "warning: session not persisted, it will not survive this run")
		}

		fmt.Fprintf(cmd.OutOrStdout(), "logged in as %s (%s)\n", identity.Email, identity.Role)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the stored credential",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := current.sessions.Logout(cmd.Context()); err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), "warning: stored credential may not have been cleared")
		}
		fmt.Fprintln(cmd.OutOrStdout(), "logged out")
		return nil
	},
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := current.client.Register(cmd.Context(), flagEmail, flagPassword); err != nil {
			return fmt.Errorf("registration failed: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "account created, run 'storefront login' to sign in")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current identity",
	RunE: func(cmd *cobra.Command, args []string) error {
		identity, ok := current.sessions.Current()
		if !ok {
			fmt.Fprintln(cmd.OutOrStdout(), "anonymous")
			return nil
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", identity.Email, identity.Role)
		if identity.ExpiresAt != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "credential expires %s\n", identity.ExpiresAt.Local())
		}
		return nil
	},
}

func init() {
	for _, cmd := range []*cobra.Command{loginCmd, registerCmd} {
		cmd.Flags().StringVar(&flagEmail, "email", "", "account email")
		cmd.Flags().StringVar(&flagPassword, "password", "", "account password")
		_ = cmd.MarkFlagRequired("email")
		_ = cmd.MarkFlagRequired("password")
	}
}
