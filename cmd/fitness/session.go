// ABOUTME: CLI commands for workout sessions.
// ABOUTME: Supports start, log, finish, list, and show subcommands.
package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/harperreed/fitness/internal/models"
	"github.com/spf13/cobra"
)

var (
	sessionDay   string
	sessionNotes string
	sessionLimit int
)

var sessionCmd = &cobra.Command{
	Use:     "session",
	Aliases: []string{"s"},
	Short:   "Record workout sessions",
	Long: `Record what you actually did in the gym.

WORKFLOW:

  1. Start a session:   fitness session start ada@example.com [--day abc12345]
  2. Log exercises:     fitness session log def67890 Squat 3 5 100
  3. Finish it:         fitness session finish def67890

Finishing a session checks workout and streak achievements.`,
}

var sessionStartCmd = &cobra.Command{
	Use:   "start <user>",
	Short: "Start a workout session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		u, err := svc.ResolveUser(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		var dayID *uuid.UUID
		if sessionDay != "" {
			day, err := svc.ResolveDay(cmd.Context(), sessionDay)
			if err != nil {
				return err
			}
			dayID = &day.ID
		}

		s, err := svc.StartSession(cmd.Context(), u.ID, dayID, sessionNotes)
		if err != nil {
			return fmt.Errorf("failed to start session: %w", err)
		}
		color.Green("✓ Started session for %s", u.Name)
		fmt.Printf("  ID: %s\n", models.ShortID(s.ID))
		return nil
	},
}

var sessionLogCmd = &cobra.Command{
	Use:   "log <session> <exercise> <sets> <reps> [weight-kg]",
	Short: "Log an exercise in an open session",
	Long: `Log sets, reps and optional weight for an exercise.

Examples:
  fitness session log abc12345 Squat 3 5 100
  fitness session log abc12345 Push-up 3 15 --notes "slow eccentrics"`,
	Args: cobra.RangeArgs(4, 5),
	RunE: func(cmd *cobra.Command, args []string) error {
		sets, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("invalid sets: %s", args[2])
		}
		reps, err := strconv.Atoi(args[3])
		if err != nil {
			return fmt.Errorf("invalid reps: %s", args[3])
		}
		var weight float64
		if len(args) == 5 {
			if weight, err = strconv.ParseFloat(args[4], 64); err != nil {
				return fmt.Errorf("invalid weight: %s", args[4])
			}
		}

		s, err := svc.ResolveSession(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		e, err := svc.ResolveExercise(cmd.Context(), args[1])
		if err != nil {
			return err
		}

		l, err := svc.LogExercise(cmd.Context(), s.ID, e.ID, sets, reps, weight, sessionNotes)
		if err != nil {
			return fmt.Errorf("failed to log exercise: %w", err)
		}
		color.Green("✓ Logged %s", e.Name)
		fmt.Printf("  %dx%d @ %.1f kg  %s\n", l.Sets, l.Reps, l.WeightKg, faint.Sprintf("volume %.0f kg", l.Volume()))
		return nil
	},
}

var sessionFinishCmd = &cobra.Command{
	Use:   "finish <session>",
	Short: "Finish a session and check achievements",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := svc.ResolveSession(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		summary, err := svc.FinishSession(cmd.Context(), s.ID, sessionNotes)
		if err != nil {
			return fmt.Errorf("failed to finish session: %w", err)
		}

		color.Green("✓ Finished session %s", models.ShortID(s.ID))
		fmt.Printf("  Duration:  %s\n", summary.Session.Duration().Round(time.Second))
		fmt.Printf("  Exercises: %d\n", len(summary.Logs))
		fmt.Printf("  Volume:    %.0f kg\n", summary.VolumeKg)
		printUnlocked(summary.Unlocked, summary.Points)
		return nil
	},
}

var sessionListCmd = &cobra.Command{
	Use:     "list <user>",
	Aliases: []string{"ls"},
	Short:   "List a user's sessions, newest first",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		u, err := svc.ResolveUser(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		sessions, err := svc.Sessions(cmd.Context(), u.ID, sessionLimit)
		if err != nil {
			return fmt.Errorf("failed to list sessions: %w", err)
		}
		if len(sessions) == 0 {
			fmt.Println("No sessions found.")
			return nil
		}
		for _, s := range sessions {
			status := color.YellowString("in progress")
			if s.Completed() {
				status = s.Duration().Round(time.Minute).String()
			}
			fmt.Printf("%s %s %s %s\n",
				short(s.ID),
				faint.Sprint(s.StartTime.Local().Format("2006-01-02 15:04")),
				padRight(status, 12),
				faint.Sprint(truncate(s.Notes, 30)))
		}
		return nil
	},
}

var sessionShowCmd = &cobra.Command{
	Use:   "show <session>",
	Short: "Show a session with its logged exercises",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		s, err := svc.ResolveSession(ctx, args[0])
		if err != nil {
			return err
		}
		logs, err := svc.SessionLogs(ctx, s.ID)
		if err != nil {
			return err
		}

		color.Cyan("Session %s", models.ShortID(s.ID))
		fmt.Printf("  Started:  %s\n", s.StartTime.Local().Format("2006-01-02 15:04"))
		if s.Completed() {
			fmt.Printf("  Duration: %s\n", s.Duration().Round(time.Second))
		} else {
			fmt.Printf("  Status:   %s\n", color.YellowString("in progress"))
		}
		if s.Notes != "" {
			fmt.Printf("  Notes:    %s\n", s.Notes)
		}
		if len(logs) == 0 {
			fmt.Println("  No exercises logged.")
			return nil
		}

		var volume float64
		fmt.Println()
		for _, l := range logs {
			name := models.ShortID(l.ExerciseID)
			if e, err := svc.GetExercise(ctx, l.ExerciseID); err == nil {
				name = e.Name
			}
			fmt.Printf("  %s %dx%d @ %.1f kg\n", padRight(name, 22), l.Sets, l.Reps, l.WeightKg)
			volume += l.Volume()
		}
		fmt.Printf("\n  Volume: %.0f kg\n", volume)
		return nil
	},
}

func init() {
	sessionStartCmd.Flags().StringVar(&sessionDay, "day", "", "plan day ID or prefix to follow")
	sessionStartCmd.Flags().StringVar(&sessionNotes, "notes", "", "session notes")
	sessionLogCmd.Flags().StringVar(&sessionNotes, "notes", "", "notes for this exercise")
	sessionFinishCmd.Flags().StringVar(&sessionNotes, "notes", "", "replace the session notes")
	sessionListCmd.Flags().IntVarP(&sessionLimit, "limit", "n", 20, "max number of results")

	sessionCmd.AddCommand(sessionStartCmd, sessionLogCmd, sessionFinishCmd, sessionListCmd, sessionShowCmd)
	rootCmd.AddCommand(sessionCmd)
}
