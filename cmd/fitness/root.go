// ABOUTME: Root Cobra command for fitness CLI.
// ABOUTME: Builds storage, preferences and services in PersistentPreRunE and tears them down after.
package main

import (
	"fmt"
	"io"

	"github.com/harperreed/fitness/internal/achievements"
	"github.com/harperreed/fitness/internal/auth"
	"github.com/harperreed/fitness/internal/bootstrap"
	"github.com/harperreed/fitness/internal/config"
	"github.com/harperreed/fitness/internal/fitness"
	"github.com/harperreed/fitness/internal/prefs"
	"github.com/harperreed/fitness/internal/storage"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	dbPath       string
	dataDir      string
	prefsBackend string

	cfg         *config.Config
	db          *storage.DB
	prefStore   *prefs.Store
	initializer *bootstrap.Initializer
	svc         *fitness.Service
	authSvc     *auth.Service
	logCloser   io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "fitness",
	Short: "Personal workout and progress tracker",
	Long: `Fitness is a CLI tool for planning workouts, logging sessions and tracking
body progress, with achievements that unlock as you train.

QUICK START:

  $ fitness user add "Ada" --email ada@example.com
  $ fitness exercise search squat
  $ fitness session start ada@example.com          # prints a session ID
  $ fitness session log abc12345 Squat 3 5 100     # 3x5 @ 100 kg
  $ fitness session finish abc12345
  $ fitness achievements list ada@example.com

PLANS:

  $ fitness plan create ada@example.com "Strength"
  $ fitness plan add-day def67890 "Leg day" --weekday monday
  $ fitness plan add-exercise 0123abcd Squat --sets 5 --reps 5 --rest 180

PROGRESS:

  $ fitness measure add ada@example.com 72.4 --waist 81
  $ fitness photo add ada@example.com ~/photos/front.jpg

REFERENCES:

  Users can be referenced by email, full ID or ID prefix. Exercises by exact
  name, full ID or ID prefix. Everything else by full ID or ID prefix.

MCP INTEGRATION:

  Run 'fitness mcp' to start the Model Context Protocol server.

  {
    "mcpServers": {
      "fitness": { "command": "fitness", "args": ["mcp"] }
    }
  }

DATA STORAGE:

  Records live in SQLite at ~/.local/share/fitness/fitness.db and preferences
  in ~/.local/share/fitness/prefs. Settings are read from
  ~/.config/fitness/config.json.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}
		if err := openStack(cmd); err != nil {
			_ = closeStack()
			return err
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeStack()
	},
}

// Execute runs the root command. Resources are released even when a command
// fails, since cobra skips PersistentPostRunE on error.
func Execute() error {
	err := rootCmd.Execute()
	if cerr := closeStack(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}

// openStack loads configuration and wires every component the commands use.
func openStack(cmd *cobra.Command) error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	if prefsBackend != "" {
		cfg.PrefsBackend = prefsBackend
	}

	logCloser = cfg.SetupLogging()

	if dbPath != "" {
		db, err = storage.Open(config.ExpandPath(dbPath))
	} else {
		db, err = cfg.OpenStorage()
	}
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	prefStore, err = cfg.OpenPrefs()
	if err != nil {
		return fmt.Errorf("failed to open preferences: %w", err)
	}

	initializer = bootstrap.New(db, prefStore)
	if err := initializer.Run(cmd.Context()); err != nil {
		return err
	}

	tracker := achievements.NewTracker(db.Achievements(), db.WorkoutSessions(), db.ProgressPhotos(), achievements.DefaultTemplates())
	svc = fitness.New(db, tracker)

	authSvc, err = auth.NewService(prefStore, auth.Options{})
	if err != nil {
		return fmt.Errorf("failed to initialize auth: %w", err)
	}
	return nil
}

// closeStack releases everything openStack acquired.
func closeStack() error {
	var firstErr error
	if prefStore != nil {
		if err := prefStore.Close(); err != nil {
			firstErr = err
		}
		prefStore = nil
	}
	if db != nil {
		if err := db.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		db = nil
	}
	if logCloser != nil {
		if err := logCloser.Close(); err != nil {
			logrus.WithError(err).Debug("close log file")
		}
		logCloser = nil
	}
	return firstErr
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "database path (default: <data-dir>/fitness.db)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "data directory (default: ~/.local/share/fitness)")
	rootCmd.PersistentFlags().StringVar(&prefsBackend, "prefs", "", "preference backend: badger, charm or memory")
}
