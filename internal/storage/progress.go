// ABOUTME: Progress photo and body measurement repositories.
// ABOUTME: Both are dated per day; queries filter by user, date range, and latest.
package storage

import (
	"context"
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/harperreed/fitness/internal/models"
)

var photoMapping = mapping[*models.ProgressPhoto]{
	table:   "progress_photos",
	columns: []string{"user_id", "date", "path", "notes", "created_at"},
	orderBy: "date DESC, created_at DESC",
	values: func(p *models.ProgressPhoto) []any {
		return []any{p.UserID.String(), formatTime(models.DateOf(p.Date)), p.Path, p.Notes, formatTime(p.CreatedAt)}
	},
	scan: func(s scanner) (*models.ProgressPhoto, error) {
		var p models.ProgressPhoto
		var id, userID, date, createdAt string
		if err := s.Scan(&id, &userID, &date, &p.Path, &p.Notes, &createdAt); err != nil {
			return nil, err
		}
		var dec decoder
		p.ID = dec.uuid(id)
		p.UserID = dec.uuid(userID)
		p.Date = dec.time(date)
		p.CreatedAt = dec.time(createdAt)
		if dec.err != nil {
			return nil, dec.err
		}
		return &p, nil
	},
}

// ProgressPhotos stores ProgressPhoto records.
type ProgressPhotos struct {
	*Table[*models.ProgressPhoto]
}

// ListByUser returns a user's photos, newest first.
func (r *ProgressPhotos) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.ProgressPhoto, error) {
	return r.all(ctx, r.query().Where(sq.Eq{"user_id": userID.String()}).OrderBy(r.m.orderBy))
}

// ListByUserInRange returns photos dated within [from, to], newest first.
func (r *ProgressPhotos) ListByUserInRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*models.ProgressPhoto, error) {
	return r.all(ctx, r.query().
		Where(sq.Eq{"user_id": userID.String()}).
		Where(sq.GtOrEq{"date": formatTime(models.DateOf(from))}).
		Where(sq.LtOrEq{"date": formatTime(models.DateOf(to))}).
		OrderBy(r.m.orderBy))
}

// LatestByUser returns the newest photo, or nil.
func (r *ProgressPhotos) LatestByUser(ctx context.Context, userID uuid.UUID) (*models.ProgressPhoto, error) {
	return r.one(ctx, r.query().Where(sq.Eq{"user_id": userID.String()}).OrderBy(r.m.orderBy))
}

// CountByUser counts a user's photos.
func (r *ProgressPhotos) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	return r.Count(ctx, sq.Eq{"user_id": userID.String()})
}

var measurementMapping = mapping[*models.BodyMeasurement]{
	table: "body_measurements",
	columns: []string{
		"user_id", "date", "weight_kg", "body_fat", "chest", "waist", "hips", "arms", "thighs", "notes", "created_at",
	},
	orderBy: "date DESC, created_at DESC",
	values: func(m *models.BodyMeasurement) []any {
		return []any{
			m.UserID.String(),
			formatTime(models.DateOf(m.Date)),
			m.WeightKg,
			nullableFloat(m.BodyFat),
			nullableFloat(m.Chest),
			nullableFloat(m.Waist),
			nullableFloat(m.Hips),
			nullableFloat(m.Arms),
			nullableFloat(m.Thighs),
			m.Notes,
			formatTime(m.CreatedAt),
		}
	},
	scan: func(s scanner) (*models.BodyMeasurement, error) {
		var m models.BodyMeasurement
		var id, userID, date, createdAt string
		var bodyFat, chest, waist, hips, arms, thighs sql.NullFloat64
		err := s.Scan(&id, &userID, &date, &m.WeightKg,
			&bodyFat, &chest, &waist, &hips, &arms, &thighs,
			&m.Notes, &createdAt)
		if err != nil {
			return nil, err
		}
		var dec decoder
		m.ID = dec.uuid(id)
		m.UserID = dec.uuid(userID)
		m.Date = dec.time(date)
		m.BodyFat = floatPtr(bodyFat)
		m.Chest = floatPtr(chest)
		m.Waist = floatPtr(waist)
		m.Hips = floatPtr(hips)
		m.Arms = floatPtr(arms)
		m.Thighs = floatPtr(thighs)
		m.CreatedAt = dec.time(createdAt)
		if dec.err != nil {
			return nil, dec.err
		}
		return &m, nil
	},
}

// BodyMeasurements stores BodyMeasurement records. More than one record per
// user per day is allowed; GetByUserAndDate returns the newest.
type BodyMeasurements struct {
	*Table[*models.BodyMeasurement]
}

// ListByUser returns a user's measurements, newest first. limit <= 0 means no limit.
func (r *BodyMeasurements) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*models.BodyMeasurement, error) {
	b := r.query().Where(sq.Eq{"user_id": userID.String()}).OrderBy(r.m.orderBy)
	if limit > 0 {
		b = b.Limit(uint64(limit))
	}
	return r.all(ctx, b)
}

// ListByUserInRange returns measurements dated within [from, to], newest first.
func (r *BodyMeasurements) ListByUserInRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*models.BodyMeasurement, error) {
	return r.all(ctx, r.query().
		Where(sq.Eq{"user_id": userID.String()}).
		Where(sq.GtOrEq{"date": formatTime(models.DateOf(from))}).
		Where(sq.LtOrEq{"date": formatTime(models.DateOf(to))}).
		OrderBy(r.m.orderBy))
}

// LatestByUser returns the newest measurement, or nil.
func (r *BodyMeasurements) LatestByUser(ctx context.Context, userID uuid.UUID) (*models.BodyMeasurement, error) {
	return r.one(ctx, r.query().Where(sq.Eq{"user_id": userID.String()}).OrderBy(r.m.orderBy))
}

// GetByUserAndDate returns the newest measurement recorded on day, or nil.
func (r *BodyMeasurements) GetByUserAndDate(ctx context.Context, userID uuid.UUID, day time.Time) (*models.BodyMeasurement, error) {
	return r.one(ctx, r.query().
		Where(sq.Eq{"user_id": userID.String(), "date": formatTime(models.DateOf(day))}).
		OrderBy("created_at DESC"))
}
