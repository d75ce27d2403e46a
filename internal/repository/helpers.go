package repository

import (
	"database/sql"
	"time"
)

// journalTime formats timestamps so that string comparison in SQL matches
// chronological order.
func journalTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func parseJournalTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}

// nullableStringToValue converts a *string to a value suitable for SQLite storage.
// Returns nil (SQL NULL) if the pointer is nil.
func nullableStringToValue(v *string) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

func nullableString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	return &s.String
}

// boolToInt converts a Go bool to an integer (0 or 1) for SQLite storage.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// intToBool converts a SQLite integer (0 or 1) to a Go bool.
func intToBool(i int) bool {
	return i != 0
}
