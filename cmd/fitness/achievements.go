// ABOUTME: CLI commands for achievements.
// ABOUTME: Lists a user's progress, re-evaluates unlocks, and shows the template catalog.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var achievementsCmd = &cobra.Command{
	Use:     "achievements",
	Aliases: []string{"ach"},
	Short:   "Show achievements and points",
	Long: `Achievements unlock automatically when you finish sessions or add photos.

TYPES:

  workouts_completed   finished sessions
  photos_uploaded      progress photos
  consecutive_days     days in a row with at least one session`,
}

var achievementsListCmd = &cobra.Command{
	Use:     "list <user>",
	Aliases: []string{"ls"},
	Short:   "List a user's achievements",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		u, err := svc.ResolveUser(ctx, args[0])
		if err != nil {
			return err
		}
		list, err := svc.Achievements(ctx, u.ID)
		if err != nil {
			return fmt.Errorf("failed to list achievements: %w", err)
		}
		points, err := svc.TotalPoints(ctx, u.ID)
		if err != nil {
			return err
		}

		for _, a := range list {
			mark := faint.Sprint("○")
			when := ""
			if a.Unlocked {
				mark = color.MagentaString("★")
				if a.UnlockedAt != nil {
					when = faint.Sprint(a.UnlockedAt.Local().Format("2006-01-02"))
				}
			}
			fmt.Printf("%s %s %s %s %s\n",
				mark,
				padRight(a.Name, 24),
				padRight(fmt.Sprintf("%s %d", a.Type, a.TargetValue), 22),
				padRight(fmt.Sprintf("%d pts", a.PointsAwarded), 8),
				when)
		}
		fmt.Printf("\nTotal: %d points\n", points)
		return nil
	},
}

var achievementsCheckCmd = &cobra.Command{
	Use:   "check <user>",
	Short: "Re-evaluate every achievement for a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		u, err := svc.ResolveUser(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		res, err := svc.Recheck(cmd.Context(), u.ID)
		if err != nil {
			return fmt.Errorf("failed to check achievements: %w", err)
		}
		if len(res.Unlocked) == 0 {
			fmt.Println("No new achievements.")
			return nil
		}
		printUnlocked(res.Unlocked, res.Points)
		return nil
	},
}

var achievementsTemplatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "Show every achievement that can be earned",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, t := range svc.Templates() {
			fmt.Printf("%s %s %s %s\n",
				padRight(t.Key, 16),
				padRight(t.Name, 24),
				padRight(fmt.Sprintf("%s %d", t.Type, t.Target), 22),
				faint.Sprintf("%d pts", t.Points))
		}
		return nil
	},
}

func init() {
	achievementsCmd.AddCommand(achievementsListCmd, achievementsCheckCmd, achievementsTemplatesCmd)
	rootCmd.AddCommand(achievementsCmd)
}
