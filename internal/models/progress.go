// ABOUTME: Progress photo and body measurement models.
// ABOUTME: Both are dated per day and owned by a user.
package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ProgressPhoto references an image on disk; the file itself is not stored.
type ProgressPhoto struct {
	ID        uuid.UUID `json:"id" yaml:"id"`
	UserID    uuid.UUID `json:"user_id" yaml:"user_id"`
	Date      time.Time `json:"date" yaml:"date"`
	Path      string    `json:"path" yaml:"path"`
	Notes     string    `json:"notes,omitempty" yaml:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// NewProgressPhoto creates a photo record dated today.
func NewProgressPhoto(userID uuid.UUID, path string) *ProgressPhoto {
	now := time.Now()
	return &ProgressPhoto{
		ID:        uuid.New(),
		UserID:    userID,
		Date:      DateOf(now),
		Path:      path,
		CreatedAt: now,
	}
}

func (p *ProgressPhoto) GetID() uuid.UUID   { return p.ID }
func (p *ProgressPhoto) SetID(id uuid.UUID) { p.ID = id }

// WithDate sets the photo date.
func (p *ProgressPhoto) WithDate(t time.Time) *ProgressPhoto {
	p.Date = DateOf(t)
	return p
}

// Validate checks required fields.
func (p *ProgressPhoto) Validate() error {
	if blank(p.Path) {
		return fmt.Errorf("%w: photo path is required", ErrInvalid)
	}
	return nil
}

// BodyMeasurement is a dated set of body metrics. Lengths are in centimetres.
type BodyMeasurement struct {
	ID        uuid.UUID `json:"id" yaml:"id"`
	UserID    uuid.UUID `json:"user_id" yaml:"user_id"`
	Date      time.Time `json:"date" yaml:"date"`
	WeightKg  float64   `json:"weight_kg" yaml:"weight_kg"`
	BodyFat   *float64  `json:"body_fat,omitempty" yaml:"body_fat,omitempty"`
	Chest     *float64  `json:"chest,omitempty" yaml:"chest,omitempty"`
	Waist     *float64  `json:"waist,omitempty" yaml:"waist,omitempty"`
	Hips      *float64  `json:"hips,omitempty" yaml:"hips,omitempty"`
	Arms      *float64  `json:"arms,omitempty" yaml:"arms,omitempty"`
	Thighs    *float64  `json:"thighs,omitempty" yaml:"thighs,omitempty"`
	Notes     string    `json:"notes,omitempty" yaml:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// NewBodyMeasurement creates a measurement dated today.
func NewBodyMeasurement(userID uuid.UUID, weightKg float64) *BodyMeasurement {
	now := time.Now()
	return &BodyMeasurement{
		ID:        uuid.New(),
		UserID:    userID,
		Date:      DateOf(now),
		WeightKg:  weightKg,
		CreatedAt: now,
	}
}

func (m *BodyMeasurement) GetID() uuid.UUID   { return m.ID }
func (m *BodyMeasurement) SetID(id uuid.UUID) { m.ID = id }

// WithDate sets the measurement date.
func (m *BodyMeasurement) WithDate(t time.Time) *BodyMeasurement {
	m.Date = DateOf(t)
	return m
}

// Set assigns an optional body-part measurement by name.
func (m *BodyMeasurement) Set(part string, value float64) error {
	switch part {
	case "body_fat":
		m.BodyFat = &value
	case "chest":
		m.Chest = &value
	case "waist":
		m.Waist = &value
	case "hips":
		m.Hips = &value
	case "arms":
		m.Arms = &value
	case "thighs":
		m.Thighs = &value
	default:
		return fmt.Errorf("%w: unknown body part %q", ErrInvalid, part)
	}
	return nil
}

// Validate checks that weight is present.
func (m *BodyMeasurement) Validate() error {
	if m.WeightKg <= 0 {
		return fmt.Errorf("%w: weight must be positive", ErrInvalid)
	}
	return nil
}
