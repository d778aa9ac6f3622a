// ABOUTME: Repository contract for fitness data storage.
// ABOUTME: Generic CRUD over any Entity; specialized repositories add read filters.
package storage

import (
	"context"

	"github.com/google/uuid"
	"github.com/harperreed/fitness/internal/models"
)

// Repository defines the storage contract shared by every entity.
// This interface allows swapping implementations (e.g., for testing).
type Repository[T models.Entity] interface {
	// List returns every record.
	List(ctx context.Context) ([]T, error)
	// Get returns the record or, when absent, the zero T with a nil error.
	Get(ctx context.Context, id uuid.UUID) (T, error)
	// Add assigns a fresh identity, persists the record and returns the identity.
	Add(ctx context.Context, e T) (uuid.UUID, error)
	// Update replaces the stored record with the same identity.
	Update(ctx context.Context, e T) error
	// Delete removes the record; absent records are ignored.
	Delete(ctx context.Context, id uuid.UUID) error
}

var (
	_ Repository[*models.User]            = (*Users)(nil)
	_ Repository[*models.WorkoutPlan]     = (*WorkoutPlans)(nil)
	_ Repository[*models.WorkoutDay]      = (*WorkoutDays)(nil)
	_ Repository[*models.Exercise]        = (*Exercises)(nil)
	_ Repository[*models.WorkoutExercise] = (*WorkoutExercises)(nil)
	_ Repository[*models.WorkoutSession]  = (*WorkoutSessions)(nil)
	_ Repository[*models.ExerciseLog]     = (*ExerciseLogs)(nil)
	_ Repository[*models.ProgressPhoto]   = (*ProgressPhotos)(nil)
	_ Repository[*models.BodyMeasurement] = (*BodyMeasurements)(nil)
	_ Repository[*models.Achievement]     = (*Achievements)(nil)
)
