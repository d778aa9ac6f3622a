// ABOUTME: Generic table implementing the Repository contract for any Entity.
// ABOUTME: Each entity supplies a row mapping; SQL is built with squirrel.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/harperreed/fitness/internal/models"
)

// mapping describes how an entity is stored. columns excludes id; values
// must return one value per column in the same order.
type mapping[T models.Entity] struct {
	table   string
	columns []string
	orderBy string
	values  func(T) []any
	scan    func(scanner) (T, error)
}

type validator interface {
	Validate() error
}

// Table is the generic Repository implementation.
type Table[T models.Entity] struct {
	d *DB
	m mapping[T]
}

func newTable[T models.Entity](d *DB, m mapping[T]) *Table[T] {
	return &Table[T]{d: d, m: m}
}

// query starts a SELECT of every mapped column.
func (t *Table[T]) query() sq.SelectBuilder {
	cols := append([]string{"id"}, t.m.columns...)
	return t.d.sb.Select(cols...).From(t.m.table)
}

// List returns every row in the mapping's default order.
func (t *Table[T]) List(ctx context.Context) ([]T, error) {
	return t.all(ctx, t.query().OrderBy(t.m.orderBy))
}

// Get returns the row with the given id, or the zero T and a nil error
// when there is none.
func (t *Table[T]) Get(ctx context.Context, id uuid.UUID) (T, error) {
	return t.one(ctx, t.query().Where(sq.Eq{"id": id.String()}))
}

// Add validates e, assigns it a fresh identity and inserts it.
func (t *Table[T]) Add(ctx context.Context, e T) (uuid.UUID, error) {
	if v, ok := any(e).(validator); ok {
		if err := v.Validate(); err != nil {
			return uuid.Nil, err
		}
	}

	e.SetID(uuid.New())

	cols := append([]string{"id"}, t.m.columns...)
	vals := append([]any{e.GetID().String()}, t.m.values(e)...)
	query, args, err := t.d.sb.Insert(t.m.table).Columns(cols...).Values(vals...).ToSql()
	if err != nil {
		return uuid.Nil, fmt.Errorf("build insert %s: %w", t.m.table, err)
	}

	if _, err := t.d.db.ExecContext(ctx, query, args...); err != nil {
		return uuid.Nil, fmt.Errorf("add %s: %w", t.m.table, writeErr(err))
	}
	return e.GetID(), nil
}

// Update replaces every column of the row identified by e's id.
func (t *Table[T]) Update(ctx context.Context, e T) error {
	if v, ok := any(e).(validator); ok {
		if err := v.Validate(); err != nil {
			return err
		}
	}

	vals := t.m.values(e)
	set := make(map[string]any, len(t.m.columns))
	for i, col := range t.m.columns {
		set[col] = vals[i]
	}

	query, args, err := t.d.sb.Update(t.m.table).
		SetMap(set).
		Where(sq.Eq{"id": e.GetID().String()}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update %s: %w", t.m.table, err)
	}

	result, err := t.d.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update %s: %w", t.m.table, writeErr(err))
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update %s: %w", t.m.table, err)
	}
	if affected == 0 {
		return fmt.Errorf("update %s %s: %w", t.m.table, e.GetID(), ErrNotFound)
	}
	return nil
}

// Delete removes the row with the given id. Deleting a missing row is not an error.
func (t *Table[T]) Delete(ctx context.Context, id uuid.UUID) error {
	query, args, err := t.d.sb.Delete(t.m.table).Where(sq.Eq{"id": id.String()}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete %s: %w", t.m.table, err)
	}
	if _, err := t.d.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete %s: %w", t.m.table, deleteErr(err))
	}
	return nil
}

// Count returns the number of rows matching pred (all rows when nil).
func (t *Table[T]) Count(ctx context.Context, pred sq.Sqlizer) (int, error) {
	b := t.d.sb.Select("COUNT(*)").From(t.m.table)
	if pred != nil {
		b = b.Where(pred)
	}
	query, args, err := b.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count %s: %w", t.m.table, err)
	}
	var n int
	if err := t.d.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", t.m.table, err)
	}
	return n, nil
}

// Exists reports whether any row matches pred.
func (t *Table[T]) Exists(ctx context.Context, pred sq.Sqlizer) (bool, error) {
	n, err := t.Count(ctx, pred)
	return n > 0, err
}

func (t *Table[T]) one(ctx context.Context, b sq.SelectBuilder) (T, error) {
	var zero T
	query, args, err := b.Limit(1).ToSql()
	if err != nil {
		return zero, fmt.Errorf("build select %s: %w", t.m.table, err)
	}

	e, err := t.m.scan(t.d.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return zero, nil
		}
		return zero, fmt.Errorf("get %s: %w", t.m.table, err)
	}
	return e, nil
}

func (t *Table[T]) all(ctx context.Context, b sq.SelectBuilder) ([]T, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select %s: %w", t.m.table, err)
	}

	rows, err := t.d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", t.m.table, err)
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		e, err := t.m.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", t.m.table, err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list %s: %w", t.m.table, err)
	}
	return out, nil
}
