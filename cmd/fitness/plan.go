// ABOUTME: CLI commands for workout plans.
// ABOUTME: Supports create, list, show, add-day, add-exercise, and delete subcommands.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/fitness/internal/models"
	"github.com/spf13/cobra"
)

var (
	planDescription string
	planWeekday     string
	planSets        int
	planReps        int
	planRest        int
)

var planCmd = &cobra.Command{
	Use:     "plan",
	Aliases: []string{"p"},
	Short:   "Manage workout plans",
	Long: `Build training plans out of days and prescribed exercises.

A user has at most one active plan: creating a plan makes it the active one.

WORKFLOW:

  1. Create a plan:        fitness plan create ada@example.com "Strength"
  2. Add a training day:   fitness plan add-day abc12345 "Leg day" --weekday mon
  3. Prescribe exercises:  fitness plan add-exercise def67890 Squat --sets 5 --reps 5
  4. Review it:            fitness plan show abc12345`,
}

var planCreateCmd = &cobra.Command{
	Use:   "create <user> <name>",
	Short: "Create a plan and make it active",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		u, err := svc.ResolveUser(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		plan, err := svc.CreatePlan(cmd.Context(), u.ID, args[1], planDescription)
		if err != nil {
			return fmt.Errorf("failed to create plan: %w", err)
		}
		color.Green("✓ Created plan %s", plan.Name)
		fmt.Printf("  ID: %s\n", models.ShortID(plan.ID))
		return nil
	},
}

var planListCmd = &cobra.Command{
	Use:     "list <user>",
	Aliases: []string{"ls"},
	Short:   "List a user's plans",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		u, err := svc.ResolveUser(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		plans, err := svc.ListPlans(cmd.Context(), u.ID)
		if err != nil {
			return fmt.Errorf("failed to list plans: %w", err)
		}
		if len(plans) == 0 {
			fmt.Println("No plans found.")
			return nil
		}
		for _, p := range plans {
			active := ""
			if p.Active {
				active = color.GreenString("active")
			}
			fmt.Printf("%s %s %s\n", short(p.ID), padRight(p.Name, 24), active)
		}
		return nil
	},
}

var planShowCmd = &cobra.Command{
	Use:   "show <plan>",
	Short: "Show a plan with its days and exercises",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		plan, err := svc.ResolvePlan(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		detail, err := svc.PlanDetail(cmd.Context(), plan.ID)
		if err != nil {
			return err
		}

		color.Cyan("%s", detail.Plan.Name)
		if detail.Plan.Description != "" {
			fmt.Printf("  %s\n", detail.Plan.Description)
		}
		if len(detail.Days) == 0 {
			fmt.Println("  No days yet.")
			return nil
		}
		for _, d := range detail.Days {
			fmt.Printf("\n  %s %s %s\n", short(d.Day.ID), d.Day.Name, faint.Sprint(weekdayLabel(d.Day.DayOfWeek)))
			for _, slot := range d.Exercises {
				name := "(deleted exercise)"
				if slot.Exercise != nil {
					name = slot.Exercise.Name
				}
				rest := ""
				if slot.Slot.RestSeconds > 0 {
					rest = faint.Sprintf(" rest %ds", slot.Slot.RestSeconds)
				}
				fmt.Printf("    %s %dx%d%s\n", padRight(name, 22), slot.Slot.Sets, slot.Slot.Reps, rest)
			}
		}
		return nil
	},
}

var planAddDayCmd = &cobra.Command{
	Use:   "add-day <plan> <name>",
	Short: "Add a training day to a plan",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		plan, err := svc.ResolvePlan(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		weekday := models.Unscheduled
		if planWeekday != "" {
			if weekday, err = parseWeekday(planWeekday); err != nil {
				return err
			}
		}
		day, err := svc.AddPlanDay(cmd.Context(), plan.ID, args[1], weekday)
		if err != nil {
			return fmt.Errorf("failed to add day: %w", err)
		}
		color.Green("✓ Added %s to %s", day.Name, plan.Name)
		fmt.Printf("  ID: %s\n", models.ShortID(day.ID))
		return nil
	},
}

var planAddExerciseCmd = &cobra.Command{
	Use:   "add-exercise <day> <exercise>",
	Short: "Prescribe an exercise on a plan day",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		day, err := svc.ResolveDay(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		e, err := svc.ResolveExercise(cmd.Context(), args[1])
		if err != nil {
			return err
		}
		if _, err := svc.AddDayExercise(cmd.Context(), day.ID, e.ID, planSets, planReps, planRest); err != nil {
			return fmt.Errorf("failed to add exercise: %w", err)
		}
		color.Green("✓ Added %s %dx%d to %s", e.Name, planSets, planReps, day.Name)
		return nil
	},
}

var planDeleteCmd = &cobra.Command{
	Use:     "delete <plan>",
	Aliases: []string{"rm"},
	Short:   "Delete a plan",
	Long: `Delete a plan with its days and prescribed exercises.

Sessions that followed the plan are kept.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		plan, err := svc.ResolvePlan(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if err := svc.DeletePlan(cmd.Context(), plan.ID); err != nil {
			return fmt.Errorf("failed to delete plan: %w", err)
		}
		color.Yellow("✗ Deleted plan %s", plan.Name)
		return nil
	},
}

func init() {
	planCreateCmd.Flags().StringVar(&planDescription, "desc", "", "plan description")
	planAddDayCmd.Flags().StringVar(&planWeekday, "weekday", "", "weekday (mon..sun or 0-6)")
	planAddExerciseCmd.Flags().IntVar(&planSets, "sets", 3, "number of sets")
	planAddExerciseCmd.Flags().IntVar(&planReps, "reps", 10, "reps per set")
	planAddExerciseCmd.Flags().IntVar(&planRest, "rest", 0, "rest between sets in seconds")

	planCmd.AddCommand(planCreateCmd, planListCmd, planShowCmd, planAddDayCmd, planAddExerciseCmd, planDeleteCmd)
	rootCmd.AddCommand(planCmd)
}
