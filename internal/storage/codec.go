// ABOUTME: Column encoding helpers shared by the row mappings.
// ABOUTME: Times are UTC RFC3339 text so lexical order matches time order.
package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type scanner interface {
	Scan(dest ...any) error
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		t = time.Now()
	}
	return t.UTC().Format(time.RFC3339)
}

func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return formatTime(*t)
}

func nullableFloat(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}

func floatPtr(nf sql.NullFloat64) *float64 {
	if !nf.Valid {
		return nil
	}
	f := nf.Float64
	return &f
}

func nullableUUID(id *uuid.UUID) any {
	if id == nil {
		return nil
	}
	return id.String()
}

func encodeList(items []string) string {
	if len(items) == 0 {
		return "[]"
	}
	data, _ := json.Marshal(items)
	return string(data)
}

// decoder converts text columns of one row, keeping the first failure.
type decoder struct {
	err error
}

func (d *decoder) fail(kind, raw string, err error) {
	if d.err == nil {
		d.err = fmt.Errorf("%w: bad %s %q: %v", ErrCorruptRow, kind, raw, err)
	}
}

func (d *decoder) time(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		d.fail("time", s, err)
	}
	return t
}

func (d *decoder) timePtr(ns sql.NullString) *time.Time {
	if !ns.Valid {
		return nil
	}
	t := d.time(ns.String)
	return &t
}

func (d *decoder) uuid(s string) uuid.UUID {
	id, err := uuid.Parse(s)
	if err != nil {
		d.fail("id", s, err)
	}
	return id
}

func (d *decoder) uuidPtr(ns sql.NullString) *uuid.UUID {
	if !ns.Valid {
		return nil
	}
	id := d.uuid(ns.String)
	return &id
}

func (d *decoder) list(s string) []string {
	var items []string
	if s == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(s), &items); err != nil {
		d.fail("list", s, err)
		return nil
	}
	if len(items) == 0 {
		return nil
	}
	return items
}
