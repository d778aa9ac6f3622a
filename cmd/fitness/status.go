// ABOUTME: CLI commands for database status and reset.
// ABOUTME: status reports initialization state and counts; reset wipes and reseeds.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var resetYes bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show database and session status",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		state, err := initializer.State(ctx)
		if err != nil {
			return fmt.Errorf("failed to read state: %w", err)
		}
		version, err := db.SchemaVersion(ctx)
		if err != nil {
			return fmt.Errorf("failed to read schema version: %w", err)
		}
		users, err := svc.ListUsers(ctx)
		if err != nil {
			return err
		}
		exercises, err := svc.ListExercises(ctx)
		if err != nil {
			return err
		}

		fmt.Printf("Database:    %s\n", db.Path())
		fmt.Printf("State:       %s (schema v%d)\n", state, version)
		fmt.Printf("Preferences: %s\n", cfg.GetPrefsBackend())
		fmt.Printf("Users:       %d\n", len(users))
		fmt.Printf("Exercises:   %d\n", len(exercises))

		email, err := authSvc.CurrentEmail()
		if err != nil {
			return err
		}
		ok, err := authSvc.IsAuthenticated(ctx)
		if err != nil {
			return err
		}
		switch {
		case ok:
			fmt.Printf("Signed in:   %s\n", color.GreenString(email))
		case email != "":
			fmt.Printf("Signed in:   %s\n", color.YellowString("session expired"))
		default:
			fmt.Printf("Signed in:   %s\n", faint.Sprint("no"))
		}
		return nil
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all data and reseed the exercise library",
	Long: `Delete every user, plan, session, measurement, photo and achievement,
then recreate the schema and reseed the exercise library.

This cannot be undone. Pass --yes to confirm.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !resetYes {
			return fmt.Errorf("refusing to reset without --yes")
		}
		if err := initializer.Reset(cmd.Context()); err != nil {
			return err
		}
		color.Yellow("✗ Database reset")
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolVar(&resetYes, "yes", false, "confirm the reset")
	rootCmd.AddCommand(statusCmd, resetCmd)
}
