// ABOUTME: Export functionality for a user's fitness data.
// ABOUTME: Supports JSON and YAML export formats.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/fitness/internal/models"
	"gopkg.in/yaml.v3"
)

// ExportData represents the full export format for one user.
type ExportData struct {
	Version      string                    `json:"version" yaml:"version"`
	ExportedAt   time.Time                 `json:"exported_at" yaml:"exported_at"`
	Tool         string                    `json:"tool" yaml:"tool"`
	User         *models.User              `json:"user" yaml:"user"`
	Plans        []*ExportPlan             `json:"plans" yaml:"plans"`
	Sessions     []*ExportSession          `json:"sessions" yaml:"sessions"`
	Measurements []*models.BodyMeasurement `json:"measurements" yaml:"measurements"`
	Photos       []*models.ProgressPhoto   `json:"photos" yaml:"photos"`
	Achievements []*models.Achievement     `json:"achievements" yaml:"achievements"`
}

// ExportPlan is a workout plan with its days.
type ExportPlan struct {
	models.WorkoutPlan `yaml:",inline"`
	Days               []*ExportDay `json:"days" yaml:"days"`
}

// ExportDay is a plan day with its prescribed exercises.
type ExportDay struct {
	models.WorkoutDay `yaml:",inline"`
	Exercises         []*models.WorkoutExercise `json:"exercises" yaml:"exercises"`
}

// ExportSession is a session with its logged exercises.
type ExportSession struct {
	models.WorkoutSession `yaml:",inline"`
	Logs                  []*models.ExerciseLog `json:"logs" yaml:"logs"`
}

// ExportUser gathers a user and everything owned by it. It returns
// ErrNotFound when the user does not exist.
func (d *DB) ExportUser(ctx context.Context, userID uuid.UUID) (*ExportData, error) {
	user, err := d.users.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("export user %s: %w", userID, ErrNotFound)
	}

	data := &ExportData{
		Version:    "1.0",
		ExportedAt: time.Now().UTC(),
		Tool:       "fitness",
		User:       user,
	}

	plans, err := d.plans.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	for _, p := range plans {
		ep := &ExportPlan{WorkoutPlan: *p}
		days, err := d.days.ListByPlan(ctx, p.ID)
		if err != nil {
			return nil, fmt.Errorf("list plan days: %w", err)
		}
		for _, day := range days {
			exercises, err := d.workoutExercises.ListByDay(ctx, day.ID)
			if err != nil {
				return nil, fmt.Errorf("list day exercises: %w", err)
			}
			ep.Days = append(ep.Days, &ExportDay{WorkoutDay: *day, Exercises: exercises})
		}
		data.Plans = append(data.Plans, ep)
	}

	sessions, err := d.sessions.ListByUser(ctx, userID, 0)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	for _, s := range sessions {
		logs, err := d.logs.ListBySession(ctx, s.ID)
		if err != nil {
			return nil, fmt.Errorf("list session logs: %w", err)
		}
		data.Sessions = append(data.Sessions, &ExportSession{WorkoutSession: *s, Logs: logs})
	}

	if data.Measurements, err = d.measurements.ListByUser(ctx, userID, 0); err != nil {
		return nil, fmt.Errorf("list measurements: %w", err)
	}
	if data.Photos, err = d.photos.ListByUser(ctx, userID); err != nil {
		return nil, fmt.Errorf("list photos: %w", err)
	}
	if data.Achievements, err = d.achievements.ListByUser(ctx, userID); err != nil {
		return nil, fmt.Errorf("list achievements: %w", err)
	}

	return data, nil
}

// ExportJSON exports a user's data as indented JSON.
func (d *DB) ExportJSON(ctx context.Context, userID uuid.UUID) ([]byte, error) {
	data, err := d.ExportUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(data, "", "  ")
}

// ExportYAML exports a user's data as YAML.
func (d *DB) ExportYAML(ctx context.Context, userID uuid.UUID) ([]byte, error) {
	data, err := d.ExportUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(data)
}
