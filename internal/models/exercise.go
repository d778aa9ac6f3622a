// ABOUTME: Exercise catalog model.
// ABOUTME: Names are unique by case-insensitive lookup, not by constraint.
package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Common muscle groups used by the seeded catalog.
const (
	MuscleChest     = "chest"
	MuscleBack      = "back"
	MuscleLegs      = "legs"
	MuscleShoulders = "shoulders"
	MuscleArms      = "arms"
	MuscleCore      = "core"
	MuscleFullBody  = "full_body"
)

// Exercise is a movement that can be planned and logged.
type Exercise struct {
	ID          uuid.UUID `json:"id" yaml:"id"`
	Name        string    `json:"name" yaml:"name"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	MuscleGroup string    `json:"muscle_group" yaml:"muscle_group"`
	Equipment   []string  `json:"equipment,omitempty" yaml:"equipment,omitempty"`
	CreatedAt   time.Time `json:"created_at" yaml:"created_at"`
}

// NewExercise creates an Exercise with a generated UUID.
func NewExercise(name, muscleGroup string, equipment ...string) *Exercise {
	return &Exercise{
		ID:          uuid.New(),
		Name:        name,
		MuscleGroup: strings.ToLower(muscleGroup),
		Equipment:   equipment,
		CreatedAt:   time.Now(),
	}
}

func (e *Exercise) GetID() uuid.UUID   { return e.ID }
func (e *Exercise) SetID(id uuid.UUID) { e.ID = id }

// WithDescription sets the description.
func (e *Exercise) WithDescription(desc string) *Exercise {
	e.Description = desc
	return e
}

// Matches reports whether term is a case-insensitive substring of the
// name, description or muscle group.
func (e *Exercise) Matches(term string) bool {
	term = strings.ToLower(term)
	return strings.Contains(strings.ToLower(e.Name), term) ||
		strings.Contains(strings.ToLower(e.Description), term) ||
		strings.Contains(strings.ToLower(e.MuscleGroup), term)
}

// Validate checks required fields.
func (e *Exercise) Validate() error {
	if blank(e.Name) {
		return fmt.Errorf("%w: exercise name is required", ErrInvalid)
	}
	return nil
}
