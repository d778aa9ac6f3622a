// ABOUTME: Resolves user-typed references (full UUID, 8-char prefix, email or name) to records.
// ABOUTME: Used by the CLI and MCP server, which show short ID prefixes.
package fitness

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/harperreed/fitness/internal/models"
)

// ErrAmbiguous is returned when a prefix matches more than one record.
var ErrAmbiguous = errors.New("ambiguous prefix")

func resolve[T models.Entity](
	ctx context.Context,
	kind, ref string,
	get func(context.Context, uuid.UUID) (T, error),
	list func(context.Context) ([]T, error),
) (T, error) {
	var zero T
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return zero, fmt.Errorf("%s: empty reference: %w", kind, ErrNotFound)
	}

	if id, err := uuid.Parse(ref); err == nil {
		e, err := get(ctx, id)
		if err != nil {
			return zero, err
		}
		if any(e) == any(zero) {
			return zero, notFound(kind, id)
		}
		return e, nil
	}

	all, err := list(ctx)
	if err != nil {
		return zero, err
	}
	var match T
	found := 0
	for _, e := range all {
		if strings.HasPrefix(e.GetID().String(), strings.ToLower(ref)) {
			match = e
			found++
		}
	}
	switch found {
	case 0:
		return zero, fmt.Errorf("%s %s: %w", kind, ref, ErrNotFound)
	case 1:
		return match, nil
	default:
		return zero, fmt.Errorf("%s %s: %w", kind, ref, ErrAmbiguous)
	}
}

// ResolveUser finds a user by ID, ID prefix or email.
func (s *Service) ResolveUser(ctx context.Context, ref string) (*models.User, error) {
	if strings.Contains(ref, "@") {
		u, err := s.db.Users().GetByEmail(ctx, ref)
		if err != nil {
			return nil, err
		}
		if u == nil {
			return nil, fmt.Errorf("user %s: %w", ref, ErrNotFound)
		}
		return u, nil
	}
	return resolve(ctx, "user", ref, s.db.Users().Get, s.db.Users().List)
}

// ResolveExercise finds an exercise by ID, ID prefix or exact name.
func (s *Service) ResolveExercise(ctx context.Context, ref string) (*models.Exercise, error) {
	e, err := s.db.Exercises().GetByName(ctx, ref)
	if err != nil {
		return nil, err
	}
	if e != nil {
		return e, nil
	}
	return resolve(ctx, "exercise", ref, s.db.Exercises().Get, s.db.Exercises().List)
}

// ResolvePlan finds a plan by ID or ID prefix.
func (s *Service) ResolvePlan(ctx context.Context, ref string) (*models.WorkoutPlan, error) {
	return resolve(ctx, "plan", ref, s.db.WorkoutPlans().Get, s.db.WorkoutPlans().List)
}

// ResolveDay finds a plan day by ID or ID prefix.
func (s *Service) ResolveDay(ctx context.Context, ref string) (*models.WorkoutDay, error) {
	return resolve(ctx, "plan day", ref, s.db.WorkoutDays().Get, s.db.WorkoutDays().List)
}

// ResolveSession finds a session by ID or ID prefix.
func (s *Service) ResolveSession(ctx context.Context, ref string) (*models.WorkoutSession, error) {
	return resolve(ctx, "session", ref, s.db.WorkoutSessions().Get, s.db.WorkoutSessions().List)
}
