// ABOUTME: Workout session and exercise log models.
// ABOUTME: A session is completed once EndTime is set; logs record sets/reps/weight.
package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// WorkoutSession is one training session, optionally following a plan day.
type WorkoutSession struct {
	ID            uuid.UUID  `json:"id" yaml:"id"`
	UserID        uuid.UUID  `json:"user_id" yaml:"user_id"`
	WorkoutPlanID *uuid.UUID `json:"workout_plan_id,omitempty" yaml:"workout_plan_id,omitempty"`
	WorkoutDayID  *uuid.UUID `json:"workout_day_id,omitempty" yaml:"workout_day_id,omitempty"`
	StartTime     time.Time  `json:"start_time" yaml:"start_time"`
	EndTime       *time.Time `json:"end_time,omitempty" yaml:"end_time,omitempty"`
	Notes         string     `json:"notes,omitempty" yaml:"notes,omitempty"`
	CreatedAt     time.Time  `json:"created_at" yaml:"created_at"`
}

// NewWorkoutSession starts a session now.
func NewWorkoutSession(userID uuid.UUID) *WorkoutSession {
	now := time.Now()
	return &WorkoutSession{
		ID:        uuid.New(),
		UserID:    userID,
		StartTime: now,
		CreatedAt: now,
	}
}

func (s *WorkoutSession) GetID() uuid.UUID   { return s.ID }
func (s *WorkoutSession) SetID(id uuid.UUID) { s.ID = id }

// ForDay links the session to a plan day.
func (s *WorkoutSession) ForDay(planID, dayID uuid.UUID) *WorkoutSession {
	s.WorkoutPlanID = &planID
	s.WorkoutDayID = &dayID
	return s
}

// WithStartTime overrides the start time.
func (s *WorkoutSession) WithStartTime(t time.Time) *WorkoutSession {
	s.StartTime = t
	return s
}

// Completed reports whether the session has been finished.
func (s *WorkoutSession) Completed() bool {
	return s.EndTime != nil
}

// Finish marks the session as completed at t.
func (s *WorkoutSession) Finish(t time.Time) {
	s.EndTime = &t
}

// Duration returns the session length, or zero while in progress.
func (s *WorkoutSession) Duration() time.Duration {
	if s.EndTime == nil {
		return 0
	}
	return s.EndTime.Sub(s.StartTime)
}

// ExerciseLog records the work done for one exercise in a session.
type ExerciseLog struct {
	ID               uuid.UUID `json:"id" yaml:"id"`
	WorkoutSessionID uuid.UUID `json:"workout_session_id" yaml:"workout_session_id"`
	ExerciseID       uuid.UUID `json:"exercise_id" yaml:"exercise_id"`
	Sets             int       `json:"sets" yaml:"sets"`
	Reps             int       `json:"reps" yaml:"reps"`
	WeightKg         float64   `json:"weight_kg" yaml:"weight_kg"`
	Notes            string    `json:"notes,omitempty" yaml:"notes,omitempty"`
	CreatedAt        time.Time `json:"created_at" yaml:"created_at"`
}

// NewExerciseLog creates a log entry.
func NewExerciseLog(sessionID, exerciseID uuid.UUID, sets, reps int, weightKg float64) *ExerciseLog {
	return &ExerciseLog{
		ID:               uuid.New(),
		WorkoutSessionID: sessionID,
		ExerciseID:       exerciseID,
		Sets:             sets,
		Reps:             reps,
		WeightKg:         weightKg,
		CreatedAt:        time.Now(),
	}
}

func (l *ExerciseLog) GetID() uuid.UUID   { return l.ID }
func (l *ExerciseLog) SetID(id uuid.UUID) { l.ID = id }

// Volume is sets * reps * weight.
func (l *ExerciseLog) Volume() float64 {
	return float64(l.Sets*l.Reps) * l.WeightKg
}

// Validate checks numeric fields.
func (l *ExerciseLog) Validate() error {
	if l.Sets < 0 || l.Reps < 0 || l.WeightKg < 0 {
		return fmt.Errorf("%w: sets, reps and weight must not be negative", ErrInvalid)
	}
	return nil
}
