// ABOUTME: Achievement model and achievement types.
// ABOUTME: Rows are per-user unlock state for a static template; unlocking is one-way.
package models

import (
	"time"

	"github.com/google/uuid"
)

// AchievementType names the metric an achievement is measured against.
type AchievementType string

const (
	WorkoutsCompleted AchievementType = "workouts_completed"
	PhotosUploaded    AchievementType = "photos_uploaded"
	ConsecutiveDays   AchievementType = "consecutive_days"
)

// AllAchievementTypes lists every supported type.
var AllAchievementTypes = []AchievementType{WorkoutsCompleted, PhotosUploaded, ConsecutiveDays}

// IsValidAchievementType checks if a string is a known type.
func IsValidAchievementType(s string) bool {
	for _, t := range AllAchievementTypes {
		if string(t) == s {
			return true
		}
	}
	return false
}

// Achievement is one user's progress toward a template.
type Achievement struct {
	ID            uuid.UUID       `json:"id" yaml:"id"`
	UserID        uuid.UUID       `json:"user_id" yaml:"user_id"`
	TemplateKey   string          `json:"template_key" yaml:"template_key"`
	Type          AchievementType `json:"type" yaml:"type"`
	Name          string          `json:"name" yaml:"name"`
	Description   string          `json:"description,omitempty" yaml:"description,omitempty"`
	TargetValue   int             `json:"target_value" yaml:"target_value"`
	PointsAwarded int             `json:"points_awarded" yaml:"points_awarded"`
	Unlocked      bool            `json:"unlocked" yaml:"unlocked"`
	UnlockedAt    *time.Time      `json:"unlocked_at,omitempty" yaml:"unlocked_at,omitempty"`
	CreatedAt     time.Time       `json:"created_at" yaml:"created_at"`
}

func (a *Achievement) GetID() uuid.UUID   { return a.ID }
func (a *Achievement) SetID(id uuid.UUID) { a.ID = id }

// Unlock flips the achievement to unlocked at t. It returns false and leaves
// the record untouched if it was already unlocked.
func (a *Achievement) Unlock(t time.Time) bool {
	if a.Unlocked {
		return false
	}
	a.Unlocked = true
	a.UnlockedAt = &t
	return true
}
