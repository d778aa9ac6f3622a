// ABOUTME: CLI commands for the local sign-in session.
// ABOUTME: login, logout, and whoami over the mock auth service.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/fitness/internal/auth"
	"github.com/spf13/cobra"
)

var loginPassword string

var loginCmd = &cobra.Command{
	Use:   "login [email]",
	Short: "Sign in",
	Long: `Sign in to the local account.

Authentication is simulated: the only account is ` + auth.DemoEmail + `
with password "` + auth.DemoPassword + `". The session lasts 24 hours.

EXAMPLES:

  fitness login                                # prompts for password
  fitness login demo@fitness.local --password fitness`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		email := auth.DemoEmail
		if len(args) == 1 {
			email = args[0]
		}

		password := loginPassword
		if password == "" {
			fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
			line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if err != nil && line == "" {
				return fmt.Errorf("failed to read password: %w", err)
			}
			password = strings.TrimSpace(line)
		}

		sess, err := authSvc.Login(cmd.Context(), email, password)
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return err
		}
		if err != nil {
			return fmt.Errorf("login failed: %w", err)
		}

		color.Green("✓ Signed in as %s", sess.Email)
		fmt.Printf("  Session expires %s\n", sess.ExpiresAt.Local().Format("2006-01-02 15:04"))
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := authSvc.Logout(cmd.Context()); err != nil {
			return err
		}
		color.Yellow("✗ Signed out")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in account",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		valid, err := authSvc.ValidateToken(cmd.Context())
		if err != nil {
			return err
		}
		sess, err := authSvc.CurrentSession(cmd.Context())
		if err != nil {
			return err
		}
		if !valid || sess == nil {
			fmt.Println("Not signed in.")
			return nil
		}

		fmt.Printf("%s %s\n", sess.User, faint.Sprint(sess.Email))
		fmt.Printf("  Expires in %s\n", time.Until(sess.ExpiresAt).Round(time.Minute))

		// A profile registered with the same email is the account's own.
		if u, err := svc.ResolveUser(cmd.Context(), sess.Email); err == nil {
			fmt.Printf("  Profile: %s %s\n", u.Name, short(u.ID))
		}
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "password (prompted when omitted)")
	rootCmd.AddCommand(loginCmd, logoutCmd, whoamiCmd)
}
