// ABOUTME: Workout session and progress operations of the application service.
// ABOUTME: Finishing a session or adding a photo triggers achievement checks.
package fitness

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/fitness/internal/achievements"
	"github.com/harperreed/fitness/internal/models"
)

// StartSession opens a workout session for a user, optionally following a
// plan day.
func (s *Service) StartSession(ctx context.Context, userID uuid.UUID, dayID *uuid.UUID, notes string) (*models.WorkoutSession, error) {
	if _, err := s.GetUser(ctx, userID); err != nil {
		return nil, err
	}

	session := models.NewWorkoutSession(userID).WithStartTime(s.now())
	session.Notes = notes
	if dayID != nil {
		day, err := s.db.WorkoutDays().Get(ctx, *dayID)
		if err != nil {
			return nil, err
		}
		if day == nil {
			return nil, notFound("plan day", *dayID)
		}
		session.ForDay(day.WorkoutPlanID, day.ID)
	}

	if _, err := s.db.WorkoutSessions().Add(ctx, session); err != nil {
		return nil, fmt.Errorf("start session: %w", err)
	}
	return session, nil
}

func (s *Service) openSession(ctx context.Context, id uuid.UUID) (*models.WorkoutSession, error) {
	session, err := s.db.WorkoutSessions().Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, notFound("session", id)
	}
	if session.Completed() {
		return nil, fmt.Errorf("session %s: %w", models.ShortID(id), ErrSessionClosed)
	}
	return session, nil
}

// LogExercise records sets of an exercise in an open session.
func (s *Service) LogExercise(ctx context.Context, sessionID, exerciseID uuid.UUID, sets, reps int, weightKg float64, notes string) (*models.ExerciseLog, error) {
	if _, err := s.openSession(ctx, sessionID); err != nil {
		return nil, err
	}

	log := models.NewExerciseLog(sessionID, exerciseID, sets, reps, weightKg)
	log.Notes = notes
	if _, err := s.db.ExerciseLogs().Add(ctx, log); err != nil {
		return nil, fmt.Errorf("log exercise: %w", err)
	}
	return log, nil
}

// SessionSummary is the result of finishing a session.
type SessionSummary struct {
	Session  *models.WorkoutSession `json:"session"`
	Logs     []*models.ExerciseLog  `json:"logs"`
	VolumeKg float64                `json:"volume_kg"`
	Unlocked []*models.Achievement  `json:"unlocked,omitempty"`
	Points   int                    `json:"points"`
}

// FinishSession closes a session and checks workout and streak achievements.
func (s *Service) FinishSession(ctx context.Context, sessionID uuid.UUID, notes string) (*SessionSummary, error) {
	session, err := s.openSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	session.Finish(s.now())
	if notes != "" {
		session.Notes = notes
	}
	if err := s.db.WorkoutSessions().Update(ctx, session); err != nil {
		return nil, fmt.Errorf("finish session: %w", err)
	}

	logs, err := s.db.ExerciseLogs().ListBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	summary := &SessionSummary{Session: session, Logs: logs}
	for _, l := range logs {
		summary.VolumeKg += l.Volume()
	}

	res, err := s.tracker.Check(ctx, session.UserID, models.WorkoutsCompleted, models.ConsecutiveDays)
	if err != nil {
		return nil, err
	}
	summary.Unlocked = res.Unlocked
	summary.Points = res.Points
	return summary, nil
}

// Sessions returns a user's sessions, newest first. limit <= 0 returns all.
func (s *Service) Sessions(ctx context.Context, userID uuid.UUID, limit int) ([]*models.WorkoutSession, error) {
	return s.db.WorkoutSessions().ListByUser(ctx, userID, limit)
}

// SessionLogs returns the exercise logs of a session.
func (s *Service) SessionLogs(ctx context.Context, sessionID uuid.UUID) ([]*models.ExerciseLog, error) {
	return s.db.ExerciseLogs().ListBySession(ctx, sessionID)
}

// AddProgressPhoto records a photo by path and checks photo achievements.
func (s *Service) AddProgressPhoto(ctx context.Context, photo *models.ProgressPhoto) (*models.ProgressPhoto, *achievements.Result, error) {
	if _, err := s.GetUser(ctx, photo.UserID); err != nil {
		return nil, nil, err
	}
	if _, err := s.db.ProgressPhotos().Add(ctx, photo); err != nil {
		return nil, nil, fmt.Errorf("add photo: %w", err)
	}
	res, err := s.tracker.Check(ctx, photo.UserID, models.PhotosUploaded)
	if err != nil {
		return nil, nil, err
	}
	return photo, res, nil
}

// Photos returns a user's photos, newest first.
func (s *Service) Photos(ctx context.Context, userID uuid.UUID) ([]*models.ProgressPhoto, error) {
	return s.db.ProgressPhotos().ListByUser(ctx, userID)
}

// AddMeasurement records a body measurement.
func (s *Service) AddMeasurement(ctx context.Context, m *models.BodyMeasurement) (*models.BodyMeasurement, error) {
	if _, err := s.GetUser(ctx, m.UserID); err != nil {
		return nil, err
	}
	if _, err := s.db.BodyMeasurements().Add(ctx, m); err != nil {
		return nil, fmt.Errorf("add measurement: %w", err)
	}
	return m, nil
}

// Measurements returns measurements dated within [from, to]. A zero from
// or to leaves that side open.
func (s *Service) Measurements(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*models.BodyMeasurement, error) {
	if from.IsZero() && to.IsZero() {
		return s.db.BodyMeasurements().ListByUser(ctx, userID, 0)
	}
	if from.IsZero() {
		from = time.Unix(0, 0)
	}
	if to.IsZero() {
		to = s.now()
	}
	return s.db.BodyMeasurements().ListByUserInRange(ctx, userID, from, to)
}

// LatestMeasurement returns the newest measurement, or nil.
func (s *Service) LatestMeasurement(ctx context.Context, userID uuid.UUID) (*models.BodyMeasurement, error) {
	return s.db.BodyMeasurements().LatestByUser(ctx, userID)
}

// Achievements returns every achievement of a user, creating missing rows.
func (s *Service) Achievements(ctx context.Context, userID uuid.UUID) ([]*models.Achievement, error) {
	if _, err := s.GetUser(ctx, userID); err != nil {
		return nil, err
	}
	if err := s.tracker.Ensure(ctx, userID); err != nil {
		return nil, err
	}
	return s.db.Achievements().ListByUser(ctx, userID)
}

// TotalPoints sums the points of a user's unlocked achievements.
func (s *Service) TotalPoints(ctx context.Context, userID uuid.UUID) (int, error) {
	return s.db.Achievements().TotalPoints(ctx, userID)
}

// Recheck re-evaluates every achievement type for a user.
func (s *Service) Recheck(ctx context.Context, userID uuid.UUID) (*achievements.Result, error) {
	if _, err := s.GetUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.tracker.CheckAll(ctx, userID)
}
