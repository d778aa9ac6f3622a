// ABOUTME: CLI commands for the exercise library.
// ABOUTME: Supports add, list, search, and delete subcommands.
package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/fitness/internal/models"
	"github.com/spf13/cobra"
)

var (
	exerciseMuscle      string
	exerciseEquipment   []string
	exerciseDescription string
)

var exerciseCmd = &cobra.Command{
	Use:     "exercise",
	Aliases: []string{"ex"},
	Short:   "Manage the exercise library",
	Long: `Browse and extend the exercise library.

The library is seeded with common movements on first run. Names are unique
ignoring case.

MUSCLE GROUPS:

  chest, back, legs, shoulders, arms, core, cardio, full_body`,
}

var exerciseAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add an exercise",
	Long: `Add an exercise to the library.

Examples:
  fitness exercise add "Goblet Squat" --muscle legs --equipment kettlebell
  fitness exercise add "Hollow Hold" --muscle core --desc "Lower back pressed down"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e := models.NewExercise(args[0], exerciseMuscle, exerciseEquipment...)
		if exerciseDescription != "" {
			e.WithDescription(exerciseDescription)
		}

		if _, err := svc.AddExercise(cmd.Context(), e); err != nil {
			return fmt.Errorf("failed to add exercise: %w", err)
		}

		color.Green("✓ Added %s", e.Name)
		fmt.Printf("  ID: %s\n", models.ShortID(e.ID))
		return nil
	},
}

var exerciseListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List exercises",
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			list []*models.Exercise
			err  error
		)
		if exerciseMuscle != "" {
			list, err = svc.ExercisesByMuscleGroup(cmd.Context(), exerciseMuscle)
		} else {
			list, err = svc.ListExercises(cmd.Context())
		}
		if err != nil {
			return fmt.Errorf("failed to list exercises: %w", err)
		}
		printExercises(list)
		return nil
	},
}

var exerciseSearchCmd = &cobra.Command{
	Use:   "search <term>",
	Short: "Search exercises by name, description or muscle group",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		list, err := svc.SearchExercises(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to search exercises: %w", err)
		}
		printExercises(list)
		return nil
	},
}

var exerciseDeleteCmd = &cobra.Command{
	Use:     "delete <exercise>",
	Aliases: []string{"rm"},
	Short:   "Delete an exercise",
	Long: `Delete an exercise from the library.

Exercises used by a plan or logged in a session cannot be deleted.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := svc.ResolveExercise(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if err := svc.DeleteExercise(cmd.Context(), e.ID); err != nil {
			return fmt.Errorf("failed to delete exercise: %w", err)
		}
		color.Yellow("✗ Deleted %s", e.Name)
		return nil
	},
}

func printExercises(list []*models.Exercise) {
	if len(list) == 0 {
		fmt.Println("No exercises found.")
		return
	}
	for _, e := range list {
		fmt.Printf("%s %s %s %s\n",
			short(e.ID),
			padRight(e.Name, 22),
			padRight(e.MuscleGroup, 10),
			faint.Sprint(strings.Join(e.Equipment, ", ")))
	}
}

func init() {
	exerciseAddCmd.Flags().StringVarP(&exerciseMuscle, "muscle", "m", "", "muscle group")
	exerciseAddCmd.Flags().StringSliceVar(&exerciseEquipment, "equipment", nil, "equipment needed (repeatable)")
	exerciseAddCmd.Flags().StringVar(&exerciseDescription, "desc", "", "description")
	exerciseListCmd.Flags().StringVarP(&exerciseMuscle, "muscle", "m", "", "filter by muscle group")

	exerciseCmd.AddCommand(exerciseAddCmd, exerciseListCmd, exerciseSearchCmd, exerciseDeleteCmd)
	rootCmd.AddCommand(exerciseCmd)
}
