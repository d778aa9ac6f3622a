// ABOUTME: SQLite database connection and lifecycle management.
// ABOUTME: Uses modernc.org/sqlite (pure Go, no CGO required).
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	sq "github.com/Masterminds/squirrel"
	_ "modernc.org/sqlite"
)

// Pragmas are passed in the DSN so every pooled connection gets them;
// foreign_keys in particular is per-connection in SQLite.
const dsnPragmas = "?_pragma=foreign_keys(1)" +
	"&_pragma=journal_mode(WAL)" +
	"&_pragma=busy_timeout(5000)" +
	"&_pragma=synchronous(NORMAL)"

// DB wraps the SQLite database connection and the repositories built on it.
type DB struct {
	db     *sql.DB
	dbPath string
	sb     sq.StatementBuilderType

	users            *Users
	plans            *WorkoutPlans
	days             *WorkoutDays
	exercises        *Exercises
	workoutExercises *WorkoutExercises
	sessions         *WorkoutSessions
	logs             *ExerciseLogs
	photos           *ProgressPhotos
	measurements     *BodyMeasurements
	achievements     *Achievements
}

// Open opens or creates a SQLite database at the given path and applies
// any pending schema migrations.
func Open(dbPath string) (*DB, error) {
	// Ensure parent directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	conn, err := sql.Open("sqlite", dbPath+dsnPragmas)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("connect database: %w", err)
	}

	// Set file permissions
	if err := os.Chmod(dbPath, 0600); err != nil && !os.IsNotExist(err) {
		_ = conn.Close()
		return nil, fmt.Errorf("set database permissions: %w", err)
	}

	d := Wrap(conn)
	d.dbPath = dbPath

	if err := d.Migrate(context.Background()); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("migrate schema: %w", err)
	}

	return d, nil
}

// Wrap builds a DB around an existing handle without touching the schema.
func Wrap(conn *sql.DB) *DB {
	d := &DB{
		db: conn,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Question),
	}
	d.users = &Users{newTable(d, userMapping)}
	d.plans = &WorkoutPlans{newTable(d, planMapping)}
	d.days = &WorkoutDays{newTable(d, dayMapping)}
	d.exercises = &Exercises{newTable(d, exerciseMapping)}
	d.workoutExercises = &WorkoutExercises{newTable(d, workoutExerciseMapping)}
	d.sessions = &WorkoutSessions{newTable(d, sessionMapping)}
	d.logs = &ExerciseLogs{newTable(d, exerciseLogMapping)}
	d.photos = &ProgressPhotos{newTable(d, photoMapping)}
	d.measurements = &BodyMeasurements{newTable(d, measurementMapping)}
	d.achievements = &Achievements{newTable(d, achievementMapping)}
	return d
}

// OpenDefault opens the database at the default XDG data path.
func OpenDefault() (*DB, error) {
	return Open(DefaultDBPath())
}

// DataDir returns the default data directory following XDG spec.
func DataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "fitness")
}

// DefaultDBPath returns the default database path following XDG spec.
func DefaultDBPath() string {
	return filepath.Join(DataDir(), "fitness.db")
}

// Path returns the database file path, empty for wrapped handles.
func (d *DB) Path() string {
	return d.dbPath
}

// Close closes the database connection.
func (d *DB) Close() error {
	if d.db != nil {
		return d.db.Close()
	}
	return nil
}

func (d *DB) Users() *Users                       { return d.users }
func (d *DB) WorkoutPlans() *WorkoutPlans         { return d.plans }
func (d *DB) WorkoutDays() *WorkoutDays           { return d.days }
func (d *DB) Exercises() *Exercises               { return d.exercises }
func (d *DB) WorkoutExercises() *WorkoutExercises { return d.workoutExercises }
func (d *DB) WorkoutSessions() *WorkoutSessions   { return d.sessions }
func (d *DB) ExerciseLogs() *ExerciseLogs         { return d.logs }
func (d *DB) ProgressPhotos() *ProgressPhotos     { return d.photos }
func (d *DB) BodyMeasurements() *BodyMeasurements { return d.measurements }
func (d *DB) Achievements() *Achievements         { return d.achievements }
