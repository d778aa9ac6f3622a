// ABOUTME: Workout plan, day, and day-exercise models.
// ABOUTME: A plan belongs to a user and owns days; days own their exercise slots.
package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Unscheduled marks a WorkoutDay that is not tied to a weekday.
const Unscheduled = -1

// WorkoutPlan is a named training program.
type WorkoutPlan struct {
	ID          uuid.UUID `json:"id" yaml:"id"`
	UserID      uuid.UUID `json:"user_id" yaml:"user_id"`
	Name        string    `json:"name" yaml:"name"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	Active      bool      `json:"active" yaml:"active"`
	CreatedAt   time.Time `json:"created_at" yaml:"created_at"`
}

// NewWorkoutPlan creates an active plan for a user.
func NewWorkoutPlan(userID uuid.UUID, name string) *WorkoutPlan {
	return &WorkoutPlan{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		Active:    true,
		CreatedAt: time.Now(),
	}
}

func (p *WorkoutPlan) GetID() uuid.UUID   { return p.ID }
func (p *WorkoutPlan) SetID(id uuid.UUID) { p.ID = id }

// WithDescription sets the plan description.
func (p *WorkoutPlan) WithDescription(desc string) *WorkoutPlan {
	p.Description = desc
	return p
}

// Validate checks required fields.
func (p *WorkoutPlan) Validate() error {
	if p.UserID == uuid.Nil {
		return fmt.Errorf("%w: plan needs a user", ErrInvalid)
	}
	if blank(p.Name) {
		return fmt.Errorf("%w: plan name is required", ErrInvalid)
	}
	return nil
}

// WorkoutDay is one training day of a plan.
type WorkoutDay struct {
	ID            uuid.UUID `json:"id" yaml:"id"`
	WorkoutPlanID uuid.UUID `json:"workout_plan_id" yaml:"workout_plan_id"`
	Name          string    `json:"name" yaml:"name"`
	DayOfWeek     int       `json:"day_of_week" yaml:"day_of_week"`
	SortOrder     int       `json:"sort_order" yaml:"sort_order"`
	CreatedAt     time.Time `json:"created_at" yaml:"created_at"`
}

// NewWorkoutDay creates an unscheduled day in a plan.
func NewWorkoutDay(planID uuid.UUID, name string) *WorkoutDay {
	return &WorkoutDay{
		ID:            uuid.New(),
		WorkoutPlanID: planID,
		Name:          name,
		DayOfWeek:     Unscheduled,
		CreatedAt:     time.Now(),
	}
}

func (d *WorkoutDay) GetID() uuid.UUID   { return d.ID }
func (d *WorkoutDay) SetID(id uuid.UUID) { d.ID = id }

// On schedules the day on a weekday.
func (d *WorkoutDay) On(day time.Weekday) *WorkoutDay {
	d.DayOfWeek = int(day)
	return d
}

// WorkoutExercise places an exercise on a workout day.
type WorkoutExercise struct {
	ID           uuid.UUID `json:"id" yaml:"id"`
	WorkoutDayID uuid.UUID `json:"workout_day_id" yaml:"workout_day_id"`
	ExerciseID   uuid.UUID `json:"exercise_id" yaml:"exercise_id"`
	Sets         int       `json:"sets" yaml:"sets"`
	Reps         int       `json:"reps" yaml:"reps"`
	RestSeconds  int       `json:"rest_seconds,omitempty" yaml:"rest_seconds,omitempty"`
	SortOrder    int       `json:"sort_order" yaml:"sort_order"`
	CreatedAt    time.Time `json:"created_at" yaml:"created_at"`
}

// NewWorkoutExercise creates a day slot for an exercise.
func NewWorkoutExercise(dayID, exerciseID uuid.UUID, sets, reps int) *WorkoutExercise {
	return &WorkoutExercise{
		ID:           uuid.New(),
		WorkoutDayID: dayID,
		ExerciseID:   exerciseID,
		Sets:         sets,
		Reps:         reps,
		CreatedAt:    time.Now(),
	}
}

func (we *WorkoutExercise) GetID() uuid.UUID   { return we.ID }
func (we *WorkoutExercise) SetID(id uuid.UUID) { we.ID = id }

// Validate checks set and rep counts.
func (we *WorkoutExercise) Validate() error {
	if we.Sets < 0 || we.Reps < 0 || we.RestSeconds < 0 {
		return fmt.Errorf("%w: sets, reps and rest must not be negative", ErrInvalid)
	}
	return nil
}
