// ABOUTME: Achievement repository for SQLite storage.
// ABOUTME: Per-user rows are materialized from templates with INSERT OR IGNORE.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/harperreed/fitness/internal/models"
)

var achievementMapping = mapping[*models.Achievement]{
	table: "achievements",
	columns: []string{
		"user_id", "template_key", "type", "name", "description",
		"target_value", "points_awarded", "unlocked", "unlocked_at", "created_at",
	},
	orderBy: "target_value ASC, name ASC",
	values: func(a *models.Achievement) []any {
		return []any{
			a.UserID.String(), a.TemplateKey, string(a.Type), a.Name, a.Description,
			a.TargetValue, a.PointsAwarded, a.Unlocked, nullableTime(a.UnlockedAt),
			formatTime(a.CreatedAt),
		}
	},
	scan: func(s scanner) (*models.Achievement, error) {
		var a models.Achievement
		var id, userID, typ, createdAt string
		var unlockedAt sql.NullString
		err := s.Scan(&id, &userID, &a.TemplateKey, &typ, &a.Name, &a.Description,
			&a.TargetValue, &a.PointsAwarded, &a.Unlocked, &unlockedAt, &createdAt)
		if err != nil {
			return nil, err
		}
		var dec decoder
		a.ID = dec.uuid(id)
		a.UserID = dec.uuid(userID)
		a.Type = models.AchievementType(typ)
		a.UnlockedAt = dec.timePtr(unlockedAt)
		a.CreatedAt = dec.time(createdAt)
		if dec.err != nil {
			return nil, dec.err
		}
		return &a, nil
	},
}

// Achievements stores per-user Achievement rows.
type Achievements struct {
	*Table[*models.Achievement]
}

// ListByUser returns every achievement row of a user.
func (r *Achievements) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Achievement, error) {
	return r.all(ctx, r.query().Where(sq.Eq{"user_id": userID.String()}).OrderBy("type ASC", r.m.orderBy))
}

// ListByUserAndType returns a user's rows of one achievement type.
func (r *Achievements) ListByUserAndType(ctx context.Context, userID uuid.UUID, typ models.AchievementType) ([]*models.Achievement, error) {
	return r.all(ctx, r.query().
		Where(sq.Eq{"user_id": userID.String(), "type": string(typ)}).
		OrderBy(r.m.orderBy))
}

// EnsureForUser inserts a locked row for every prototype the user does not
// have yet, keyed by TemplateKey. Existing rows, unlocked or not, are left
// alone. It returns how many rows were created.
func (r *Achievements) EnsureForUser(ctx context.Context, userID uuid.UUID, protos []*models.Achievement) (int, error) {
	if len(protos) == 0 {
		return 0, nil
	}

	cols := append([]string{"id"}, r.m.columns...)
	b := r.d.sb.Insert(r.m.table).Options("OR IGNORE").Columns(cols...)
	for _, p := range protos {
		row := &models.Achievement{
			ID:            uuid.New(),
			UserID:        userID,
			TemplateKey:   p.TemplateKey,
			Type:          p.Type,
			Name:          p.Name,
			Description:   p.Description,
			TargetValue:   p.TargetValue,
			PointsAwarded: p.PointsAwarded,
		}
		b = b.Values(append([]any{row.ID.String()}, r.m.values(row)...)...)
	}

	query, args, err := b.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build ensure achievements: %w", err)
	}
	result, err := r.d.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("ensure achievements: %w", writeErr(err))
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("ensure achievements: %w", err)
	}
	return int(n), nil
}

// TotalPoints sums the points of a user's unlocked achievements.
func (r *Achievements) TotalPoints(ctx context.Context, userID uuid.UUID) (int, error) {
	query, args, err := r.d.sb.Select("COALESCE(SUM(points_awarded), 0)").
		From(r.m.table).
		Where(sq.Eq{"user_id": userID.String(), "unlocked": true}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build total points: %w", err)
	}
	var total int
	if err := r.d.db.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("total points: %w", err)
	}
	return total, nil
}
