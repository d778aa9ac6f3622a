// ABOUTME: User repository for SQLite storage.
// ABOUTME: Adds email lookups on top of the generic table.
package storage

import (
	"context"
	"database/sql"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/harperreed/fitness/internal/models"
)

var userMapping = mapping[*models.User]{
	table:   "users",
	columns: []string{"name", "email", "birth_date", "height_cm", "gender", "fitness_goal", "created_at"},
	orderBy: "created_at ASC",
	values: func(u *models.User) []any {
		return []any{
			strings.TrimSpace(u.Name),
			strings.TrimSpace(u.Email),
			nullableTime(u.BirthDate),
			nullableFloat(u.HeightCm),
			u.Gender,
			u.FitnessGoal,
			formatTime(u.CreatedAt),
		}
	},
	scan: func(s scanner) (*models.User, error) {
		var u models.User
		var id, createdAt string
		var birth sql.NullString
		var height sql.NullFloat64

		if err := s.Scan(&id, &u.Name, &u.Email, &birth, &height, &u.Gender, &u.FitnessGoal, &createdAt); err != nil {
			return nil, err
		}
		var dec decoder
		u.ID = dec.uuid(id)
		u.BirthDate = dec.timePtr(birth)
		u.HeightCm = floatPtr(height)
		u.CreatedAt = dec.time(createdAt)
		if dec.err != nil {
			return nil, dec.err
		}
		return &u, nil
	},
}

// Users stores User records.
type Users struct {
	*Table[*models.User]
}

// GetByEmail returns the user with the given email (case-insensitive), or nil.
// The earliest registration wins if older data holds duplicates.
func (r *Users) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.one(ctx, r.query().
		Where(sq.Eq{folded("email"): lookupKey(email)}).
		OrderBy(r.m.orderBy))
}

// ExistsByEmail reports whether a user already uses email.
func (r *Users) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.Exists(ctx, sq.Eq{folded("email"): lookupKey(email)})
}
