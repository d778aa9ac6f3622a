// ABOUTME: SQLite schema definition as ordered, versioned migrations.
// ABOUTME: Tracks applied versions in schema_migrations; Reset drops everything.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type migration struct {
	version int
	name    string
	stmts   string
}

var migrations = []migration{
	{
		version: 1,
		name:    "initial schema",
		stmts: `
		CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL CHECK (trim(name) <> ''),
			email TEXT NOT NULL DEFAULT '',
			birth_date TEXT,
			height_cm REAL,
			gender TEXT NOT NULL DEFAULT '',
			fitness_goal TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS workout_plans (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			active INTEGER NOT NULL DEFAULT 1,
			created_at TEXT NOT NULL,
			FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
		);

		CREATE TABLE IF NOT EXISTS workout_days (
			id TEXT PRIMARY KEY,
			workout_plan_id TEXT NOT NULL,
			name TEXT NOT NULL,
			day_of_week INTEGER NOT NULL DEFAULT -1,
			sort_order INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL,
			FOREIGN KEY (workout_plan_id) REFERENCES workout_plans(id) ON DELETE CASCADE
		);

		CREATE TABLE IF NOT EXISTS exercises (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			muscle_group TEXT NOT NULL DEFAULT '',
			equipment TEXT NOT NULL DEFAULT '[]',
			created_at TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS workout_exercises (
			id TEXT PRIMARY KEY,
			workout_day_id TEXT NOT NULL,
			exercise_id TEXT NOT NULL,
			sets INTEGER NOT NULL DEFAULT 0,
			reps INTEGER NOT NULL DEFAULT 0,
			rest_seconds INTEGER NOT NULL DEFAULT 0,
			sort_order INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL,
			FOREIGN KEY (workout_day_id) REFERENCES workout_days(id) ON DELETE CASCADE,
			FOREIGN KEY (exercise_id) REFERENCES exercises(id) ON DELETE RESTRICT
		);

		CREATE TABLE IF NOT EXISTS workout_sessions (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			workout_plan_id TEXT,
			workout_day_id TEXT,
			start_time TEXT NOT NULL,
			end_time TEXT,
			notes TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL,
			FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE,
			FOREIGN KEY (workout_plan_id) REFERENCES workout_plans(id) ON DELETE SET NULL,
			FOREIGN KEY (workout_day_id) REFERENCES workout_days(id) ON DELETE SET NULL
		);

		CREATE TABLE IF NOT EXISTS exercise_logs (
			id TEXT PRIMARY KEY,
			workout_session_id TEXT NOT NULL,
			exercise_id TEXT NOT NULL,
			sets INTEGER NOT NULL DEFAULT 0,
			reps INTEGER NOT NULL DEFAULT 0,
			weight_kg REAL NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL,
			FOREIGN KEY (workout_session_id) REFERENCES workout_sessions(id) ON DELETE CASCADE,
			FOREIGN KEY (exercise_id) REFERENCES exercises(id) ON DELETE RESTRICT
		);

		CREATE TABLE IF NOT EXISTS progress_photos (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			date TEXT NOT NULL,
			path TEXT NOT NULL,
			notes TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL,
			FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
		);

		CREATE TABLE IF NOT EXISTS body_measurements (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			date TEXT NOT NULL,
			weight_kg REAL NOT NULL,
			body_fat REAL,
			chest REAL,
			waist REAL,
			hips REAL,
			arms REAL,
			thighs REAL,
			notes TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL,
			FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
		);

		CREATE TABLE IF NOT EXISTS achievements (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			template_key TEXT NOT NULL,
			type TEXT NOT NULL,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			target_value INTEGER NOT NULL,
			points_awarded INTEGER NOT NULL DEFAULT 0,
			unlocked INTEGER NOT NULL DEFAULT 0,
			unlocked_at TEXT,
			created_at TEXT NOT NULL,
			UNIQUE (user_id, template_key),
			FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
		);

		CREATE INDEX IF NOT EXISTS idx_workout_plans_user ON workout_plans(user_id);
		CREATE INDEX IF NOT EXISTS idx_workout_days_plan ON workout_days(workout_plan_id);
		CREATE INDEX IF NOT EXISTS idx_workout_exercises_day ON workout_exercises(workout_day_id);
		CREATE INDEX IF NOT EXISTS idx_workout_sessions_user_start ON workout_sessions(user_id, start_time DESC);
		CREATE INDEX IF NOT EXISTS idx_exercise_logs_session ON exercise_logs(workout_session_id);
		CREATE INDEX IF NOT EXISTS idx_progress_photos_user_date ON progress_photos(user_id, date DESC);
		CREATE INDEX IF NOT EXISTS idx_body_measurements_user_date ON body_measurements(user_id, date DESC);
		`,
	},
	{
		version: 2,
		name:    "exercise log notes",
		stmts:   `ALTER TABLE exercise_logs ADD COLUMN notes TEXT NOT NULL DEFAULT '';`,
	},
	{
		version: 3,
		name:    "lookup indexes",
		stmts: `
		CREATE INDEX IF NOT EXISTS idx_exercises_name ON exercises(lower(name));
		CREATE INDEX IF NOT EXISTS idx_exercise_logs_exercise ON exercise_logs(exercise_id);
		CREATE INDEX IF NOT EXISTS idx_achievements_user_type ON achievements(user_id, type);
		CREATE INDEX IF NOT EXISTS idx_users_email ON users(lower(email));
		`,
	},
}

// LatestSchemaVersion is the version Migrate brings a database to.
func LatestSchemaVersion() int {
	return migrations[len(migrations)-1].version
}

// HasSchema reports whether the migrations table exists.
func (d *DB) HasSchema(ctx context.Context) (bool, error) {
	var n int
	err := d.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'schema_migrations'`,
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("check schema: %w", err)
	}
	return n > 0, nil
}

// SchemaVersion returns the highest applied migration, 0 when none.
func (d *DB) SchemaVersion(ctx context.Context) (int, error) {
	ok, err := d.HasSchema(ctx)
	if err != nil || !ok {
		return 0, err
	}
	var v sql.NullInt64
	if err := d.db.QueryRowContext(ctx, `SELECT MAX(version) FROM schema_migrations`).Scan(&v); err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	return int(v.Int64), nil
}

// Migrate creates the schema if missing and applies outstanding migrations
// in order, each in its own transaction.
func (d *DB) Migrate(ctx context.Context) error {
	_, err := d.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TEXT NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	current, err := d.SchemaVersion(ctx)
	if err != nil {
		return err
	}

	for _, m := range migrations {
		if m.version <= current {
			continue
		}
		if err := d.apply(ctx, m); err != nil {
			return err
		}
	}
	return nil
}

func (d *DB) apply(ctx context.Context, m migration) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin migration %d: %w", m.version, err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, m.stmts); err != nil {
		return fmt.Errorf("apply migration %d (%s): %w", m.version, m.name, err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO schema_migrations (version, name, applied_at) VALUES (?, ?, ?)`,
		m.version, m.name, formatTime(time.Now()),
	); err != nil {
		return fmt.Errorf("record migration %d: %w", m.version, err)
	}
	return tx.Commit()
}

// Reset drops every table and recreates the schema. All data is lost.
// Table names come from sqlite_master so tables added by any migration are
// dropped too.
func (d *DB) Reset(ctx context.Context) error {
	conn, err := d.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	defer conn.Close()

	// Drop order does not matter with enforcement off. The pragma is a no-op
	// inside a transaction, so it is set on the connection first.
	if _, err := conn.ExecContext(ctx, "PRAGMA foreign_keys = OFF"); err != nil {
		return fmt.Errorf("disable foreign keys: %w", err)
	}
	defer func() { _, _ = conn.ExecContext(context.Background(), "PRAGMA foreign_keys = ON") }()

	names, err := userTables(ctx, conn)
	if err != nil {
		return err
	}

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin reset: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, t := range names {
		if _, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS "`+t+`"`); err != nil {
			return fmt.Errorf("drop %s: %w", t, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit reset: %w", err)
	}

	return d.Migrate(ctx)
}

func userTables(ctx context.Context, conn *sql.Conn) ([]string, error) {
	rows, err := conn.QueryContext(ctx,
		`SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%'`)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("list tables: %w", err)
		}
		names = append(names, n)
	}
	return names, rows.Err()
}
