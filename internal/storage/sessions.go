// ABOUTME: Workout session and exercise log repositories.
// ABOUTME: Provides per-user listing, date ranges, and completion aggregates.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/harperreed/fitness/internal/models"
)

var sessionMapping = mapping[*models.WorkoutSession]{
	table:   "workout_sessions",
	columns: []string{"user_id", "workout_plan_id", "workout_day_id", "start_time", "end_time", "notes", "created_at"},
	orderBy: "start_time DESC",
	values: func(s *models.WorkoutSession) []any {
		return []any{
			s.UserID.String(),
			nullableUUID(s.WorkoutPlanID),
			nullableUUID(s.WorkoutDayID),
			formatTime(s.StartTime),
			nullableTime(s.EndTime),
			s.Notes,
			formatTime(s.CreatedAt),
		}
	},
	scan: func(sc scanner) (*models.WorkoutSession, error) {
		var s models.WorkoutSession
		var id, userID, start, createdAt string
		var planID, dayID, end sql.NullString
		if err := sc.Scan(&id, &userID, &planID, &dayID, &start, &end, &s.Notes, &createdAt); err != nil {
			return nil, err
		}
		var dec decoder
		s.ID = dec.uuid(id)
		s.UserID = dec.uuid(userID)
		s.WorkoutPlanID = dec.uuidPtr(planID)
		s.WorkoutDayID = dec.uuidPtr(dayID)
		s.StartTime = dec.time(start)
		s.EndTime = dec.timePtr(end)
		s.CreatedAt = dec.time(createdAt)
		if dec.err != nil {
			return nil, dec.err
		}
		return &s, nil
	},
}

// WorkoutSessions stores WorkoutSession records.
type WorkoutSessions struct {
	*Table[*models.WorkoutSession]
}

// ListByUser returns a user's sessions, most recent first. limit <= 0 means no limit.
func (r *WorkoutSessions) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*models.WorkoutSession, error) {
	b := r.query().Where(sq.Eq{"user_id": userID.String()}).OrderBy(r.m.orderBy)
	if limit > 0 {
		b = b.Limit(uint64(limit))
	}
	return r.all(ctx, b)
}

// ListByUserInRange returns sessions started in [from, to), most recent first.
func (r *WorkoutSessions) ListByUserInRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*models.WorkoutSession, error) {
	return r.all(ctx, r.query().
		Where(sq.Eq{"user_id": userID.String()}).
		Where(sq.GtOrEq{"start_time": formatTime(from)}).
		Where(sq.Lt{"start_time": formatTime(to)}).
		OrderBy(r.m.orderBy))
}

// LatestByUser returns the user's most recently started session, or nil.
func (r *WorkoutSessions) LatestByUser(ctx context.Context, userID uuid.UUID) (*models.WorkoutSession, error) {
	return r.one(ctx, r.query().Where(sq.Eq{"user_id": userID.String()}).OrderBy(r.m.orderBy))
}

// CountCompletedByUser counts sessions that have an end time.
func (r *WorkoutSessions) CountCompletedByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	return r.Count(ctx, sq.And{
		sq.Eq{"user_id": userID.String()},
		sq.NotEq{"end_time": nil},
	})
}

// ActiveDaysByUser returns the distinct UTC days with a completed session,
// most recent first.
func (r *WorkoutSessions) ActiveDaysByUser(ctx context.Context, userID uuid.UUID) ([]time.Time, error) {
	query, args, err := r.d.sb.Select("DISTINCT substr(start_time, 1, 10) AS day").
		From(r.m.table).
		Where(sq.Eq{"user_id": userID.String()}).
		Where(sq.NotEq{"end_time": nil}).
		OrderBy("day DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build active days: %w", err)
	}

	rows, err := r.d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("active days: %w", err)
	}
	defer rows.Close()

	var days []time.Time
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("scan active day: %w", err)
		}
		day, err := time.Parse(time.DateOnly, s)
		if err != nil {
			return nil, fmt.Errorf("parse active day %q: %w", s, err)
		}
		days = append(days, day)
	}
	return days, rows.Err()
}

var exerciseLogMapping = mapping[*models.ExerciseLog]{
	table:   "exercise_logs",
	columns: []string{"workout_session_id", "exercise_id", "sets", "reps", "weight_kg", "notes", "created_at"},
	orderBy: "created_at ASC",
	values: func(l *models.ExerciseLog) []any {
		return []any{
			l.WorkoutSessionID.String(), l.ExerciseID.String(),
			l.Sets, l.Reps, l.WeightKg, l.Notes,
			formatTime(l.CreatedAt),
		}
	},
	scan: func(s scanner) (*models.ExerciseLog, error) {
		var l models.ExerciseLog
		var id, sessionID, exerciseID, createdAt string
		if err := s.Scan(&id, &sessionID, &exerciseID, &l.Sets, &l.Reps, &l.WeightKg, &l.Notes, &createdAt); err != nil {
			return nil, err
		}
		var dec decoder
		l.ID = dec.uuid(id)
		l.WorkoutSessionID = dec.uuid(sessionID)
		l.ExerciseID = dec.uuid(exerciseID)
		l.CreatedAt = dec.time(createdAt)
		if dec.err != nil {
			return nil, dec.err
		}
		return &l, nil
	},
}

// ExerciseLogs stores ExerciseLog records.
type ExerciseLogs struct {
	*Table[*models.ExerciseLog]
}

// ListBySession returns a session's logs in the order they were added.
func (r *ExerciseLogs) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]*models.ExerciseLog, error) {
	return r.all(ctx, r.query().Where(sq.Eq{"workout_session_id": sessionID.String()}).OrderBy(r.m.orderBy))
}

// ListByExercise returns every log of one exercise, most recent first.
func (r *ExerciseLogs) ListByExercise(ctx context.Context, exerciseID uuid.UUID) ([]*models.ExerciseLog, error) {
	return r.all(ctx, r.query().Where(sq.Eq{"exercise_id": exerciseID.String()}).OrderBy("created_at DESC"))
}
