// ABOUTME: Workout plan, day, and day-exercise repositories.
// ABOUTME: Deleting a plan cascades to its days and their exercise slots.
package storage

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/harperreed/fitness/internal/models"
)

var planMapping = mapping[*models.WorkoutPlan]{
	table:   "workout_plans",
	columns: []string{"user_id", "name", "description", "active", "created_at"},
	orderBy: "created_at ASC",
	values: func(p *models.WorkoutPlan) []any {
		return []any{p.UserID.String(), p.Name, p.Description, p.Active, formatTime(p.CreatedAt)}
	},
	scan: func(s scanner) (*models.WorkoutPlan, error) {
		var p models.WorkoutPlan
		var id, userID, createdAt string
		if err := s.Scan(&id, &userID, &p.Name, &p.Description, &p.Active, &createdAt); err != nil {
			return nil, err
		}
		var dec decoder
		p.ID = dec.uuid(id)
		p.UserID = dec.uuid(userID)
		p.CreatedAt = dec.time(createdAt)
		if dec.err != nil {
			return nil, dec.err
		}
		return &p, nil
	},
}

// WorkoutPlans stores WorkoutPlan records.
type WorkoutPlans struct {
	*Table[*models.WorkoutPlan]
}

// ListByUser returns a user's plans, oldest first.
func (r *WorkoutPlans) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.WorkoutPlan, error) {
	return r.all(ctx, r.query().Where(sq.Eq{"user_id": userID.String()}).OrderBy(r.m.orderBy))
}

// ActiveForUser returns the user's most recently created active plan, or nil.
func (r *WorkoutPlans) ActiveForUser(ctx context.Context, userID uuid.UUID) (*models.WorkoutPlan, error) {
	return r.one(ctx, r.query().
		Where(sq.Eq{"user_id": userID.String(), "active": true}).
		OrderBy("created_at DESC"))
}

var dayMapping = mapping[*models.WorkoutDay]{
	table:   "workout_days",
	columns: []string{"workout_plan_id", "name", "day_of_week", "sort_order", "created_at"},
	orderBy: "sort_order ASC, created_at ASC",
	values: func(d *models.WorkoutDay) []any {
		return []any{d.WorkoutPlanID.String(), d.Name, d.DayOfWeek, d.SortOrder, formatTime(d.CreatedAt)}
	},
	scan: func(s scanner) (*models.WorkoutDay, error) {
		var d models.WorkoutDay
		var id, planID, createdAt string
		if err := s.Scan(&id, &planID, &d.Name, &d.DayOfWeek, &d.SortOrder, &createdAt); err != nil {
			return nil, err
		}
		var dec decoder
		d.ID = dec.uuid(id)
		d.WorkoutPlanID = dec.uuid(planID)
		d.CreatedAt = dec.time(createdAt)
		if dec.err != nil {
			return nil, dec.err
		}
		return &d, nil
	},
}

// WorkoutDays stores WorkoutDay records.
type WorkoutDays struct {
	*Table[*models.WorkoutDay]
}

// ListByPlan returns the days of a plan in sort order.
func (r *WorkoutDays) ListByPlan(ctx context.Context, planID uuid.UUID) ([]*models.WorkoutDay, error) {
	return r.all(ctx, r.query().Where(sq.Eq{"workout_plan_id": planID.String()}).OrderBy(r.m.orderBy))
}

var workoutExerciseMapping = mapping[*models.WorkoutExercise]{
	table:   "workout_exercises",
	columns: []string{"workout_day_id", "exercise_id", "sets", "reps", "rest_seconds", "sort_order", "created_at"},
	orderBy: "sort_order ASC, created_at ASC",
	values: func(we *models.WorkoutExercise) []any {
		return []any{
			we.WorkoutDayID.String(), we.ExerciseID.String(),
			we.Sets, we.Reps, we.RestSeconds, we.SortOrder,
			formatTime(we.CreatedAt),
		}
	},
	scan: func(s scanner) (*models.WorkoutExercise, error) {
		var we models.WorkoutExercise
		var id, dayID, exerciseID, createdAt string
		if err := s.Scan(&id, &dayID, &exerciseID, &we.Sets, &we.Reps, &we.RestSeconds, &we.SortOrder, &createdAt); err != nil {
			return nil, err
		}
		var dec decoder
		we.ID = dec.uuid(id)
		we.WorkoutDayID = dec.uuid(dayID)
		we.ExerciseID = dec.uuid(exerciseID)
		we.CreatedAt = dec.time(createdAt)
		if dec.err != nil {
			return nil, dec.err
		}
		return &we, nil
	},
}

// WorkoutExercises stores the exercise slots of workout days.
type WorkoutExercises struct {
	*Table[*models.WorkoutExercise]
}

// ListByDay returns a day's exercise slots in sort order.
func (r *WorkoutExercises) ListByDay(ctx context.Context, dayID uuid.UUID) ([]*models.WorkoutExercise, error) {
	return r.all(ctx, r.query().Where(sq.Eq{"workout_day_id": dayID.String()}).OrderBy(r.m.orderBy))
}
