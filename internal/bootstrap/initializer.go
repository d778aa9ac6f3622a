// ABOUTME: Database initializer: migrate, seed once, and destructive reset.
// ABOUTME: Seeding is gated by the first_time_user preference and an empty catalog check.
package bootstrap

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/harperreed/fitness/internal/models"
	"github.com/harperreed/fitness/internal/prefs"
	"github.com/harperreed/fitness/internal/storage"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

//go:embed exercises.yaml
var exercisesYAML []byte

// State is the initialization state of a database.
type State int

const (
	// StateAbsent means no schema exists yet.
	StateAbsent State = iota
	// StatePresentEmpty means the schema exists but seeding has not completed.
	StatePresentEmpty
	// StateSeeded means the first-run flag is cleared and this database holds
	// a catalog.
	StateSeeded
)

func (s State) String() string {
	switch s {
	case StateAbsent:
		return "absent"
	case StatePresentEmpty:
		return "present-empty"
	case StateSeeded:
		return "seeded"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

type seedExercise struct {
	Name        string   `yaml:"name"`
	MuscleGroup string   `yaml:"muscle_group"`
	Equipment   []string `yaml:"equipment"`
	Description string   `yaml:"description"`
}

// DefaultExercises returns the built-in exercise library.
func DefaultExercises() ([]*models.Exercise, error) {
	var seeds []seedExercise
	if err := yaml.Unmarshal(exercisesYAML, &seeds); err != nil {
		return nil, fmt.Errorf("parse exercise library: %w", err)
	}
	out := make([]*models.Exercise, 0, len(seeds))
	for _, s := range seeds {
		out = append(out, models.NewExercise(s.Name, s.MuscleGroup, s.Equipment...).WithDescription(s.Description))
	}
	return out, nil
}

// Initializer brings a store from absent to seeded.
type Initializer struct {
	db    *storage.DB
	prefs *prefs.Store
	seed  func(ctx context.Context) (int, error)
	log   *logrus.Entry
}

// New creates an Initializer.
func New(db *storage.DB, p *prefs.Store) *Initializer {
	i := &Initializer{
		db:    db,
		prefs: p,
		log:   logrus.WithField("component", "bootstrap"),
	}
	i.seed = i.seedExercises
	return i
}

// State reports where the database is in its lifecycle.
func (i *Initializer) State(ctx context.Context) (State, error) {
	ok, err := i.db.HasSchema(ctx)
	if err != nil {
		return StateAbsent, err
	}
	if !ok {
		return StateAbsent, nil
	}
	first, err := i.prefs.GetBool(prefs.KeyFirstTimeUser, true)
	if err != nil {
		return StatePresentEmpty, err
	}
	if first {
		return StatePresentEmpty, nil
	}
	n, err := i.db.Exercises().Count(ctx, nil)
	if err != nil {
		return StatePresentEmpty, err
	}
	if n == 0 {
		return StatePresentEmpty, nil
	}
	return StateSeeded, nil
}

// Run migrates the schema and, on first run, seeds the exercise library.
// Preferences can outlive or be shared across databases, so a cleared flag
// over an empty catalog still seeds. Migration failures are returned; seed
// failures are only logged and leave the first-run flag set so the next
// start retries.
func (i *Initializer) Run(ctx context.Context) error {
	if err := i.db.Migrate(ctx); err != nil {
		i.log.WithError(err).Error("database migration failed")
		return fmt.Errorf("initialize database: %w", err)
	}

	first, err := i.prefs.GetBool(prefs.KeyFirstTimeUser, true)
	if err != nil {
		i.log.WithError(err).Error("read first-run flag failed")
		return fmt.Errorf("initialize database: %w", err)
	}
	if !first {
		count, err := i.db.Exercises().Count(ctx, nil)
		if err != nil {
			i.log.WithError(err).Error("count exercises failed")
			return fmt.Errorf("initialize database: %w", err)
		}
		if count > 0 {
			return nil
		}
		i.log.Info("first-run flag cleared but exercise catalog is empty, seeding")
	}

	n, err := i.seed(ctx)
	if err != nil {
		i.log.WithError(err).Warn("seeding default data failed, will retry on next start")
		return nil
	}
	if err := i.prefs.SetBool(prefs.KeyFirstTimeUser, false); err != nil {
		i.log.WithError(err).Warn("clearing first-run flag failed")
		return nil
	}
	i.log.WithField("exercises", n).Info("seeded default data")
	return nil
}

// Reset destroys all data and reinitializes from scratch.
func (i *Initializer) Reset(ctx context.Context) error {
	i.log.Warn("resetting database")
	if err := i.db.Reset(ctx); err != nil {
		i.log.WithError(err).Error("database reset failed")
		return fmt.Errorf("reset database: %w", err)
	}
	if err := i.prefs.Remove(prefs.KeyFirstTimeUser); err != nil {
		return fmt.Errorf("reset database: %w", err)
	}
	return i.Run(ctx)
}

// seedExercises adds every library exercise whose name is not yet taken.
func (i *Initializer) seedExercises(ctx context.Context) (int, error) {
	exercises, err := DefaultExercises()
	if err != nil {
		return 0, err
	}

	added := 0
	for _, e := range exercises {
		exists, err := i.db.Exercises().ExistsByName(ctx, e.Name)
		if err != nil {
			return added, fmt.Errorf("check exercise %q: %w", e.Name, err)
		}
		if exists {
			continue
		}
		if _, err := i.db.Exercises().Add(ctx, e); err != nil {
			return added, fmt.Errorf("seed exercise %q: %w", e.Name, err)
		}
		added++
	}
	return added, nil
}
