package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func newAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Session management commands",
	}

	cmd.AddCommand(newAuthLoginCmd())
	cmd.AddCommand(newAuthRegisterCmd())
	cmd.AddCommand(newAuthLogoutCmd())
	cmd.AddCommand(newAuthWhoamiCmd())

	return cmd
}

func newAuthLoginCmd() *cobra.Command {
	var email, pass string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Login with an existing account",
		RunE: func(cmd *cobra.Command, args []string) error {
			result := app.Session.Login(cmd.Context(), email, pass)
			if !result.Success {
				return errors.New(result.Message)
			}

			out := NewOutput(cfg.Output)
			user := app.Session.User()
			out.PrintMessage(fmt.Sprintf("Logged in as %s", user.Username))
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email (required)")
	cmd.Flags().StringVar(&pass, "pass", "", "Password (required)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("pass")

	return cmd
}

func newAuthRegisterCmd() *cobra.Command {
	var user, email, pass, confirm string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new account",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Validated before any request is issued, like the web form
			if confirm != "" && confirm != pass {
				return errors.New("passwords do not match")
			}

			result := app.Session.Register(cmd.Context(), user, email, pass)
			if !result.Success {
				return errors.New(result.Message)
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage(fmt.Sprintf("Welcome to TaskBloom, %s!", user))
			return nil
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "Username (required)")
	cmd.Flags().StringVar(&email, "email", "", "Account email (required)")
	cmd.Flags().StringVar(&pass, "pass", "", "Password (required)")
	cmd.Flags().StringVar(&confirm, "confirm-pass", "", "Password confirmation")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("pass")

	return cmd
}

func newAuthLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Logout and erase the stored session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			app.Session.Logout()

			out := NewOutput(cfg.Output)
			out.PrintMessage("Logged out")
			return nil
		},
	}
}

func newAuthWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current user",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuth(); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(*app.Session.User())
			return nil
		},
	}
}
