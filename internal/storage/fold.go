// ABOUTME: Unicode case folding available inside SQL as fold(text).
// ABOUTME: SQLite's lower() only folds ASCII; fold matches strings.ToLower.
package storage

import (
	"database/sql/driver"
	"strings"

	"modernc.org/sqlite"
)

// foldFunc is the SQL name of the Unicode lower-case function.
const foldFunc = "fold"

func init() {
	sqlite.MustRegisterDeterministicScalarFunction(foldFunc, 1, foldValue)
}

func foldValue(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case string:
		return strings.ToLower(v), nil
	case []byte:
		return strings.ToLower(string(v)), nil
	default:
		return v, nil
	}
}

// lookupKey normalizes a name or email for comparison against fold(col).
// Stored names and emails are trimmed on write.
func lookupKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// folded returns the SQL expression folding col.
func folded(col string) string {
	return foldFunc + "(" + col + ")"
}
