// ABOUTME: Application service for the fitness tracker.
// ABOUTME: Orchestrates repositories and achievement checks behind one API for the CLI and MCP server.
package fitness

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/fitness/internal/achievements"
	"github.com/harperreed/fitness/internal/models"
	"github.com/harperreed/fitness/internal/storage"
	"github.com/sirupsen/logrus"
)

var (
	// ErrNotFound is returned when a referenced record does not exist.
	ErrNotFound = storage.ErrNotFound
	// ErrDuplicateExercise is returned when adding an exercise whose name is taken.
	ErrDuplicateExercise = errors.New("exercise already exists")
	// ErrDuplicateEmail is returned when registering an email another user has.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrSessionClosed is returned when changing a finished session.
	ErrSessionClosed = errors.New("session already finished")
)

// Service exposes the fitness operations.
type Service struct {
	db      *storage.DB
	tracker *achievements.Tracker
	now     func() time.Time
	log     *logrus.Entry
}

// New creates a Service.
func New(db *storage.DB, tracker *achievements.Tracker) *Service {
	return &Service{
		db:      db,
		tracker: tracker,
		now:     time.Now,
		log:     logrus.WithField("component", "fitness"),
	}
}

// Templates returns the achievement catalog.
func (s *Service) Templates() []achievements.Template {
	return s.tracker.Templates()
}

func notFound(kind string, id uuid.UUID) error {
	return fmt.Errorf("%s %s: %w", kind, models.ShortID(id), ErrNotFound)
}

// RegisterUser stores a new user and materializes their achievements.
func (s *Service) RegisterUser(ctx context.Context, u *models.User) (*models.User, error) {
	if email := strings.TrimSpace(u.Email); email != "" {
		taken, err := s.db.Users().ExistsByEmail(ctx, email)
		if err != nil {
			return nil, fmt.Errorf("register user: %w", err)
		}
		if taken {
			return nil, fmt.Errorf("%q: %w", email, ErrDuplicateEmail)
		}
	}
	if _, err := s.db.Users().Add(ctx, u); err != nil {
		return nil, fmt.Errorf("register user: %w", err)
	}
	if err := s.tracker.Ensure(ctx, u.ID); err != nil {
		return nil, err
	}
	s.log.WithField("user", models.ShortID(u.ID)).Info("user registered")
	return u, nil
}

// ListUsers returns every user.
func (s *Service) ListUsers(ctx context.Context) ([]*models.User, error) {
	return s.db.Users().List(ctx)
}

// GetUser returns a user or ErrNotFound.
func (s *Service) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	u, err := s.db.Users().Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, notFound("user", id)
	}
	return u, nil
}

// DeleteUser removes a user and everything they own.
func (s *Service) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetUser(ctx, id); err != nil {
		return err
	}
	return s.db.Users().Delete(ctx, id)
}

// AddExercise adds an exercise to the catalog. Names are unique ignoring case.
func (s *Service) AddExercise(ctx context.Context, e *models.Exercise) (*models.Exercise, error) {
	exists, err := s.db.Exercises().ExistsByName(ctx, e.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%q: %w", e.Name, ErrDuplicateExercise)
	}
	if _, err := s.db.Exercises().Add(ctx, e); err != nil {
		return nil, fmt.Errorf("add exercise: %w", err)
	}
	return e, nil
}

// SearchExercises finds exercises by name, description or muscle group.
func (s *Service) SearchExercises(ctx context.Context, term string) ([]*models.Exercise, error) {
	return s.db.Exercises().Search(ctx, term)
}

// ListExercises returns the whole catalog.
func (s *Service) ListExercises(ctx context.Context) ([]*models.Exercise, error) {
	return s.db.Exercises().List(ctx)
}

// ExercisesByMuscleGroup returns the catalog entries for one muscle group.
func (s *Service) ExercisesByMuscleGroup(ctx context.Context, group string) ([]*models.Exercise, error) {
	return s.db.Exercises().ListByMuscleGroup(ctx, group)
}

// MuscleGroups lists the muscle groups present in the catalog.
func (s *Service) MuscleGroups(ctx context.Context) ([]string, error) {
	return s.db.Exercises().MuscleGroups(ctx)
}

// GetExercise returns an exercise or ErrNotFound.
func (s *Service) GetExercise(ctx context.Context, id uuid.UUID) (*models.Exercise, error) {
	e, err := s.db.Exercises().Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, notFound("exercise", id)
	}
	return e, nil
}

// DeleteExercise removes an exercise. It fails with storage.ErrReferenced
// while plans or logs still use it.
func (s *Service) DeleteExercise(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetExercise(ctx, id); err != nil {
		return err
	}
	return s.db.Exercises().Delete(ctx, id)
}

// CreatePlan creates the user's new active plan. Earlier plans are deactivated.
func (s *Service) CreatePlan(ctx context.Context, userID uuid.UUID, name, description string) (*models.WorkoutPlan, error) {
	if _, err := s.GetUser(ctx, userID); err != nil {
		return nil, err
	}

	existing, err := s.db.WorkoutPlans().ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, p := range existing {
		if !p.Active {
			continue
		}
		p.Active = false
		if err := s.db.WorkoutPlans().Update(ctx, p); err != nil {
			return nil, fmt.Errorf("deactivate plan: %w", err)
		}
	}

	plan := models.NewWorkoutPlan(userID, name).WithDescription(description)
	if _, err := s.db.WorkoutPlans().Add(ctx, plan); err != nil {
		return nil, fmt.Errorf("create plan: %w", err)
	}
	return plan, nil
}

// ListPlans returns the user's plans.
func (s *Service) ListPlans(ctx context.Context, userID uuid.UUID) ([]*models.WorkoutPlan, error) {
	return s.db.WorkoutPlans().ListByUser(ctx, userID)
}

// ActivePlan returns the user's active plan, or nil.
func (s *Service) ActivePlan(ctx context.Context, userID uuid.UUID) (*models.WorkoutPlan, error) {
	return s.db.WorkoutPlans().ActiveForUser(ctx, userID)
}

// AddPlanDay appends a day to a plan. dayOfWeek is 0-6 (Sunday first) or
// models.Unscheduled.
func (s *Service) AddPlanDay(ctx context.Context, planID uuid.UUID, name string, dayOfWeek int) (*models.WorkoutDay, error) {
	if dayOfWeek < models.Unscheduled || dayOfWeek > int(time.Saturday) {
		return nil, fmt.Errorf("%w: day of week %d out of range", models.ErrInvalid, dayOfWeek)
	}
	existing, err := s.db.WorkoutDays().ListByPlan(ctx, planID)
	if err != nil {
		return nil, err
	}

	day := models.NewWorkoutDay(planID, name)
	day.DayOfWeek = dayOfWeek
	day.SortOrder = len(existing)
	if _, err := s.db.WorkoutDays().Add(ctx, day); err != nil {
		return nil, fmt.Errorf("add plan day: %w", err)
	}
	return day, nil
}

// AddDayExercise appends an exercise slot to a plan day.
func (s *Service) AddDayExercise(ctx context.Context, dayID, exerciseID uuid.UUID, sets, reps, restSeconds int) (*models.WorkoutExercise, error) {
	existing, err := s.db.WorkoutExercises().ListByDay(ctx, dayID)
	if err != nil {
		return nil, err
	}

	we := models.NewWorkoutExercise(dayID, exerciseID, sets, reps)
	we.RestSeconds = restSeconds
	we.SortOrder = len(existing)
	if _, err := s.db.WorkoutExercises().Add(ctx, we); err != nil {
		return nil, fmt.Errorf("add day exercise: %w", err)
	}
	return we, nil
}

// PlanDetail is a plan with its days and their exercises resolved.
type PlanDetail struct {
	Plan *models.WorkoutPlan `json:"plan"`
	Days []DayDetail         `json:"days"`
}

// DayDetail is one day of a PlanDetail.
type DayDetail struct {
	Day       *models.WorkoutDay `json:"day"`
	Exercises []SlotDetail       `json:"exercises"`
}

// SlotDetail pairs a prescribed slot with its exercise.
type SlotDetail struct {
	Slot     *models.WorkoutExercise `json:"slot"`
	Exercise *models.Exercise        `json:"exercise"`
}

// PlanDetail loads a plan with its days and prescribed exercises.
func (s *Service) PlanDetail(ctx context.Context, planID uuid.UUID) (*PlanDetail, error) {
	plan, err := s.db.WorkoutPlans().Get(ctx, planID)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, notFound("plan", planID)
	}

	detail := &PlanDetail{Plan: plan}
	days, err := s.db.WorkoutDays().ListByPlan(ctx, planID)
	if err != nil {
		return nil, err
	}
	for _, day := range days {
		slots, err := s.db.WorkoutExercises().ListByDay(ctx, day.ID)
		if err != nil {
			return nil, err
		}
		dd := DayDetail{Day: day}
		for _, slot := range slots {
			e, err := s.db.Exercises().Get(ctx, slot.ExerciseID)
			if err != nil {
				return nil, err
			}
			dd.Exercises = append(dd.Exercises, SlotDetail{Slot: slot, Exercise: e})
		}
		detail.Days = append(detail.Days, dd)
	}
	return detail, nil
}

// DeletePlan removes a plan; sessions that followed it keep their history.
func (s *Service) DeletePlan(ctx context.Context, planID uuid.UUID) error {
	return s.db.WorkoutPlans().Delete(ctx, planID)
}
