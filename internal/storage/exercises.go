// ABOUTME: Exercise catalog repository.
// ABOUTME: Case-insensitive search and name lookups; deletes are restricted while referenced.
package storage

import (
	"context"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/harperreed/fitness/internal/models"
)

var exerciseMapping = mapping[*models.Exercise]{
	table:   "exercises",
	columns: []string{"name", "description", "muscle_group", "equipment", "created_at"},
	orderBy: "name COLLATE NOCASE ASC",
	values: func(e *models.Exercise) []any {
		return []any{
			strings.TrimSpace(e.Name),
			e.Description,
			strings.ToLower(e.MuscleGroup),
			encodeList(e.Equipment),
			formatTime(e.CreatedAt),
		}
	},
	scan: func(s scanner) (*models.Exercise, error) {
		var e models.Exercise
		var id, equipment, createdAt string
		if err := s.Scan(&id, &e.Name, &e.Description, &e.MuscleGroup, &equipment, &createdAt); err != nil {
			return nil, err
		}
		var dec decoder
		e.ID = dec.uuid(id)
		e.Equipment = dec.list(equipment)
		e.CreatedAt = dec.time(createdAt)
		if dec.err != nil {
			return nil, dec.err
		}
		return &e, nil
	},
}

// Exercises stores the exercise catalog.
type Exercises struct {
	*Table[*models.Exercise]
}

// likePattern escapes LIKE wildcards in term and wraps it for substring matching.
func likePattern(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.ToLower(term)) + "%"
}

// Search returns exercises whose name, description or muscle group contains
// term, ignoring case. An empty term returns the whole catalog.
func (r *Exercises) Search(ctx context.Context, term string) ([]*models.Exercise, error) {
	if strings.TrimSpace(term) == "" {
		return r.List(ctx)
	}
	pattern := likePattern(term)
	return r.all(ctx, r.query().
		Where(sq.Or{
			sq.Expr(folded("name")+` LIKE ? ESCAPE '\'`, pattern),
			sq.Expr(folded("description")+` LIKE ? ESCAPE '\'`, pattern),
			sq.Expr(folded("muscle_group")+` LIKE ? ESCAPE '\'`, pattern),
		}).
		OrderBy(r.m.orderBy))
}

// ListByMuscleGroup returns the exercises for one muscle group.
func (r *Exercises) ListByMuscleGroup(ctx context.Context, group string) ([]*models.Exercise, error) {
	return r.all(ctx, r.query().
		Where(sq.Eq{"muscle_group": strings.ToLower(group)}).
		OrderBy(r.m.orderBy))
}

// GetByName returns the exercise with the given name (case-insensitive), or nil.
func (r *Exercises) GetByName(ctx context.Context, name string) (*models.Exercise, error) {
	return r.one(ctx, r.query().Where(sq.Eq{folded("name"): lookupKey(name)}))
}

// ExistsByName reports whether an exercise with this name is already in the catalog.
func (r *Exercises) ExistsByName(ctx context.Context, name string) (bool, error) {
	return r.Exists(ctx, sq.Eq{folded("name"): lookupKey(name)})
}

// MuscleGroups returns the distinct muscle groups in the catalog.
func (r *Exercises) MuscleGroups(ctx context.Context) ([]string, error) {
	query, args, err := r.d.sb.Select("DISTINCT muscle_group").
		From(r.m.table).
		Where(sq.NotEq{"muscle_group": ""}).
		OrderBy("muscle_group").
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []string
	for rows.Next() {
		var g string
		if err := rows.Scan(&g); err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}
