// ABOUTME: Storage error sentinels and SQLite constraint translation.
// ABOUTME: Foreign key failures become ErrReferenced or ErrMissingReference.
package storage

import (
	"errors"
	"strings"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

var (
	// ErrNotFound is returned by Update when the row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrReferenced is returned by Delete while other rows still point at the target.
	ErrReferenced = errors.New("still referenced")
	// ErrMissingReference is returned when a row points at a parent that does not exist.
	ErrMissingReference = errors.New("referenced row does not exist")
	// ErrCorruptRow is returned when a stored column cannot be decoded.
	ErrCorruptRow = errors.New("corrupt row")
)

func isForeignKeyViolation(err error) bool {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return false
	}
	code := se.Code()
	if code == sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY {
		return true
	}
	return code&0xff == sqlite3.SQLITE_CONSTRAINT && strings.Contains(se.Error(), "FOREIGN KEY")
}

// writeErr maps a failed insert or update.
func writeErr(err error) error {
	if isForeignKeyViolation(err) {
		return errors.Join(ErrMissingReference, err)
	}
	return err
}

// deleteErr maps a failed delete.
func deleteErr(err error) error {
	if isForeignKeyViolation(err) {
		return errors.Join(ErrReferenced, err)
	}
	return err
}
