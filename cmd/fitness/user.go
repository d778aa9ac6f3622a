// ABOUTME: CLI commands for managing user profiles.
// ABOUTME: Supports add, list, show, and delete subcommands.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/fitness/internal/models"
	"github.com/spf13/cobra"
)

var (
	userEmail  string
	userHeight float64
	userBirth  string
	userGender string
	userGoal   string
)

var userCmd = &cobra.Command{
	Use:     "user",
	Aliases: []string{"u"},
	Short:   "Manage user profiles",
	Long: `Manage the people whose training is tracked.

Every plan, session, measurement, photo and achievement belongs to a user.
Deleting a user deletes all of it.

COMMANDS:

  add      Create a user
  list     List users
  show     Show a user's profile and progress
  delete   Delete a user and everything they own`,
}

var userAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a user",
	Long: `Add a user profile.

Examples:
  fitness user add "Ada" --email ada@example.com
  fitness user add "Grace" --height 170 --birth 1990-05-01 --goal "first pull-up"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		u := models.NewUser(args[0], userEmail)
		if userHeight > 0 {
			u.WithHeight(userHeight)
		}
		if userBirth != "" {
			t, err := parseTime(userBirth)
			if err != nil {
				return fmt.Errorf("invalid birth date: %s", userBirth)
			}
			u.WithBirthDate(t)
		}
		u.Gender = userGender
		if userGoal != "" {
			u.WithGoal(userGoal)
		}

		if _, err := svc.RegisterUser(cmd.Context(), u); err != nil {
			return fmt.Errorf("failed to add user: %w", err)
		}

		color.Green("✓ Added user %s", u.Name)
		fmt.Printf("  ID: %s\n", models.ShortID(u.ID))
		return nil
	},
}

var userListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List users",
	RunE: func(cmd *cobra.Command, args []string) error {
		users, err := svc.ListUsers(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list users: %w", err)
		}
		if len(users) == 0 {
			fmt.Println("No users found.")
			return nil
		}

		for _, u := range users {
			fmt.Printf("%s %s %s\n", short(u.ID), padRight(u.Name, 20), faint.Sprint(u.Email))
		}
		return nil
	},
}

var userShowCmd = &cobra.Command{
	Use:   "show <user>",
	Short: "Show a user's profile and progress",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		u, err := svc.ResolveUser(ctx, args[0])
		if err != nil {
			return err
		}

		color.Cyan("%s", u.Name)
		fmt.Printf("  ID:      %s\n", u.ID)
		if u.Email != "" {
			fmt.Printf("  Email:   %s\n", u.Email)
		}
		if u.HeightCm != nil {
			fmt.Printf("  Height:  %.0f cm\n", *u.HeightCm)
		}
		if u.BirthDate != nil {
			fmt.Printf("  Born:    %s\n", u.BirthDate.Format("2006-01-02"))
		}
		if u.FitnessGoal != "" {
			fmt.Printf("  Goal:    %s\n", u.FitnessGoal)
		}

		if m, err := svc.LatestMeasurement(ctx, u.ID); err != nil {
			return err
		} else if m != nil {
			fmt.Printf("  Weight:  %.1f kg (%s)\n", m.WeightKg, m.Date.Format("2006-01-02"))
		}
		if plan, err := svc.ActivePlan(ctx, u.ID); err != nil {
			return err
		} else if plan != nil {
			fmt.Printf("  Plan:    %s %s\n", plan.Name, short(plan.ID))
		}
		points, err := svc.TotalPoints(ctx, u.ID)
		if err != nil {
			return err
		}
		fmt.Printf("  Points:  %d\n", points)
		return nil
	},
}

var userDeleteCmd = &cobra.Command{
	Use:     "delete <user>",
	Aliases: []string{"rm"},
	Short:   "Delete a user and all their data",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		u, err := svc.ResolveUser(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if err := svc.DeleteUser(cmd.Context(), u.ID); err != nil {
			return fmt.Errorf("failed to delete user: %w", err)
		}
		color.Yellow("✗ Deleted user %s", u.Name)
		return nil
	},
}

func init() {
	userAddCmd.Flags().StringVar(&userEmail, "email", "", "email address")
	userAddCmd.Flags().Float64Var(&userHeight, "height", 0, "height in cm")
	userAddCmd.Flags().StringVar(&userBirth, "birth", "", "birth date (YYYY-MM-DD)")
	userAddCmd.Flags().StringVar(&userGender, "gender", "", "gender")
	userAddCmd.Flags().StringVar(&userGoal, "goal", "", "fitness goal")

	userCmd.AddCommand(userAddCmd, userListCmd, userShowCmd, userDeleteCmd)
	rootCmd.AddCommand(userCmd)
}
