// ABOUTME: CLI command for exporting a user's data.
// ABOUTME: Supports JSON and YAML export formats.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export <user> <format>",
	Short: "Export a user's data",
	Long: `Export everything a user owns: profile, plans with days and exercises,
sessions with their logs, measurements, photos and achievements.

FORMATS:

  json   Full JSON export (suitable for backup)
  yaml   YAML export (human-readable)

EXAMPLES:

  fitness export ada@example.com json                  # Export to stdout
  fitness export ada@example.com yaml -o ada.yaml      # Save to file`,
	Args:      cobra.ExactArgs(2),
	ValidArgs: []string{"json", "yaml"},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		u, err := svc.ResolveUser(ctx, args[0])
		if err != nil {
			return err
		}

		var data []byte
		switch format := args[1]; format {
		case "json":
			data, err = db.ExportJSON(ctx, u.ID)
		case "yaml":
			data, err = db.ExportYAML(ctx, u.ID)
		default:
			return fmt.Errorf("unknown format: %s (use json or yaml)", format)
		}
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		if exportOutput != "" {
			if err := os.WriteFile(exportOutput, data, 0600); err != nil {
				return fmt.Errorf("failed to write file: %w", err)
			}
			color.Green("✓ Exported to %s", exportOutput)
		} else {
			fmt.Println(string(data))
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default: stdout)")
	rootCmd.AddCommand(exportCmd)
}
