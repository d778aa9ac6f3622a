// ABOUTME: User model for fitness tracking.
// ABOUTME: Owned plans, photos, measurements and achievements are repository queries, not fields.
package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// User is the owner of every other personal record.
type User struct {
	ID          uuid.UUID  `json:"id" yaml:"id"`
	Name        string     `json:"name" yaml:"name"`
	Email       string     `json:"email,omitempty" yaml:"email,omitempty"`
	BirthDate   *time.Time `json:"birth_date,omitempty" yaml:"birth_date,omitempty"`
	HeightCm    *float64   `json:"height_cm,omitempty" yaml:"height_cm,omitempty"`
	Gender      string     `json:"gender,omitempty" yaml:"gender,omitempty"`
	FitnessGoal string     `json:"fitness_goal,omitempty" yaml:"fitness_goal,omitempty"`
	CreatedAt   time.Time  `json:"created_at" yaml:"created_at"`
}

// NewUser creates a User with a generated UUID.
func NewUser(name, email string) *User {
	return &User{
		ID:        uuid.New(),
		Name:      name,
		Email:     email,
		CreatedAt: time.Now(),
	}
}

func (u *User) GetID() uuid.UUID   { return u.ID }
func (u *User) SetID(id uuid.UUID) { u.ID = id }

// WithHeight sets the height in centimetres.
func (u *User) WithHeight(cm float64) *User {
	u.HeightCm = &cm
	return u
}

// WithBirthDate sets the birth date.
func (u *User) WithBirthDate(t time.Time) *User {
	d := DateOf(t)
	u.BirthDate = &d
	return u
}

// WithGoal sets the free-form fitness goal.
func (u *User) WithGoal(goal string) *User {
	u.FitnessGoal = goal
	return u
}

// Validate checks the fields the store requires.
func (u *User) Validate() error {
	if blank(u.Name) {
		return fmt.Errorf("%w: user name is required", ErrInvalid)
	}
	if u.HeightCm != nil && *u.HeightCm <= 0 {
		return fmt.Errorf("%w: height must be positive", ErrInvalid)
	}
	return nil
}
