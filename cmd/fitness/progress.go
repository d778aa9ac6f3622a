// ABOUTME: CLI commands for body measurements and progress photos.
// ABOUTME: Photos are referenced by path; the image itself is not copied.
package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/fitness/internal/config"
	"github.com/harperreed/fitness/internal/models"
	"github.com/spf13/cobra"
)

var (
	measureDate  string
	measureNotes string
	measureFrom  string
	measureTo    string
	measureParts = map[string]*float64{}

	photoDate  string
	photoNotes string
)

var bodyParts = []string{"body_fat", "chest", "waist", "hips", "arms", "thighs"}

var measureCmd = &cobra.Command{
	Use:     "measure",
	Aliases: []string{"m"},
	Short:   "Track body measurements",
	Long: `Track weight and body measurements over time.

Lengths are in centimetres, weight in kilograms and body fat in percent.`,
}

var measureAddCmd = &cobra.Command{
	Use:   "add <user> <weight-kg>",
	Short: "Record a measurement",
	Long: `Record weight and optional body measurements.

Examples:
  fitness measure add ada@example.com 72.4
  fitness measure add ada@example.com 72.1 --waist 80.5 --body_fat 18 --date 2025-01-31`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		weight, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid weight: %s", args[1])
		}
		u, err := svc.ResolveUser(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		m := models.NewBodyMeasurement(u.ID, weight)
		if measureDate != "" {
			t, err := parseTime(measureDate)
			if err != nil {
				return fmt.Errorf("invalid date: %s", measureDate)
			}
			m.WithDate(t)
		}
		for _, part := range bodyParts {
			if cmd.Flags().Changed(part) {
				if err := m.Set(part, *measureParts[part]); err != nil {
					return err
				}
			}
		}
		m.Notes = measureNotes

		if _, err := svc.AddMeasurement(cmd.Context(), m); err != nil {
			return fmt.Errorf("failed to add measurement: %w", err)
		}
		color.Green("✓ Recorded %.1f kg for %s", m.WeightKg, u.Name)
		fmt.Printf("  ID: %s\n", models.ShortID(m.ID))
		return nil
	},
}

var measureListCmd = &cobra.Command{
	Use:     "list <user>",
	Aliases: []string{"ls"},
	Short:   "List measurements, newest first",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		u, err := svc.ResolveUser(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		var from, to time.Time
		if measureFrom != "" {
			if from, err = parseTime(measureFrom); err != nil {
				return fmt.Errorf("invalid date: %s", measureFrom)
			}
		}
		if measureTo != "" {
			if to, err = parseTime(measureTo); err != nil {
				return fmt.Errorf("invalid date: %s", measureTo)
			}
		}

		list, err := svc.Measurements(cmd.Context(), u.ID, from, to)
		if err != nil {
			return fmt.Errorf("failed to list measurements: %w", err)
		}
		if len(list) == 0 {
			fmt.Println("No measurements found.")
			return nil
		}
		for _, m := range list {
			fmt.Printf("%s %s %6.1f kg%s%s%s\n",
				short(m.ID),
				faint.Sprint(m.Date.Format("2006-01-02")),
				m.WeightKg,
				optional("fat", m.BodyFat, "%"),
				optional("waist", m.Waist, "cm"),
				optional("chest", m.Chest, "cm"))
		}
		return nil
	},
}

var photoCmd = &cobra.Command{
	Use:   "photo",
	Short: "Track progress photos",
	Long: `Keep a dated record of progress photos.

Photos are referenced by file path; the image is not copied into the database.
Adding photos counts toward photo achievements.`,
}

var photoAddCmd = &cobra.Command{
	Use:   "add <user> <path>",
	Short: "Record a progress photo",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		u, err := svc.ResolveUser(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		path := config.ExpandPath(args[1])
		if _, err := os.Stat(path); err != nil {
			color.Yellow("⚠ %s is not readable: %v", path, err)
		}

		p := models.NewProgressPhoto(u.ID, path)
		if photoDate != "" {
			t, err := parseTime(photoDate)
			if err != nil {
				return fmt.Errorf("invalid date: %s", photoDate)
			}
			p.WithDate(t)
		}
		p.Notes = photoNotes

		_, res, err := svc.AddProgressPhoto(cmd.Context(), p)
		if err != nil {
			return fmt.Errorf("failed to add photo: %w", err)
		}
		color.Green("✓ Added photo for %s", u.Name)
		fmt.Printf("  ID: %s\n", models.ShortID(p.ID))
		printUnlocked(res.Unlocked, res.Points)
		return nil
	},
}

var photoListCmd = &cobra.Command{
	Use:     "list <user>",
	Aliases: []string{"ls"},
	Short:   "List progress photos, newest first",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		u, err := svc.ResolveUser(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		photos, err := svc.Photos(cmd.Context(), u.ID)
		if err != nil {
			return fmt.Errorf("failed to list photos: %w", err)
		}
		if len(photos) == 0 {
			fmt.Println("No photos found.")
			return nil
		}
		for _, p := range photos {
			fmt.Printf("%s %s %s %s\n",
				short(p.ID),
				faint.Sprint(p.Date.Format("2006-01-02")),
				p.Path,
				faint.Sprint(truncate(p.Notes, 30)))
		}
		return nil
	},
}

func init() {
	measureAddCmd.Flags().StringVar(&measureDate, "date", "", "date (YYYY-MM-DD), defaults to today")
	measureAddCmd.Flags().StringVar(&measureNotes, "notes", "", "notes")
	for _, part := range bodyParts {
		v := new(float64)
		measureParts[part] = v
		measureAddCmd.Flags().Float64Var(v, part, 0, part+" measurement")
	}
	measureListCmd.Flags().StringVar(&measureFrom, "from", "", "only include measurements on or after this date")
	measureListCmd.Flags().StringVar(&measureTo, "to", "", "only include measurements on or before this date")
	measureCmd.AddCommand(measureAddCmd, measureListCmd)

	photoAddCmd.Flags().StringVar(&photoDate, "date", "", "date (YYYY-MM-DD), defaults to today")
	photoAddCmd.Flags().StringVar(&photoNotes, "notes", "", "notes")
	photoCmd.AddCommand(photoAddCmd, photoListCmd)

	rootCmd.AddCommand(measureCmd, photoCmd)
}
