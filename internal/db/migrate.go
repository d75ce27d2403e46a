package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all journal schema migrations. Statements are idempotent and
// re-run on every open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE has no IF NOT EXISTS form.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS answer_events (
		id          TEXT PRIMARY KEY,
		module      TEXT NOT NULL,
		points      INTEGER NOT NULL DEFAULT 0 CHECK(points >= 0),
		correct     INTEGER NOT NULL CHECK(correct IN (0,1)),
		answered_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_answer_events_module ON answer_events(module)`,
	`CREATE INDEX IF NOT EXISTS idx_answer_events_answered ON answer_events(answered_at)`,
	`CREATE TABLE IF NOT EXISTS session_logs (
		id       TEXT PRIMARY KEY,
		module   TEXT NOT NULL DEFAULT '',
		minutes  INTEGER NOT NULL CHECK(minutes >= 0),
		ended_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_session_logs_ended ON session_logs(ended_at)`,
	`CREATE TABLE IF NOT EXISTS level_changes (
		id              TEXT PRIMARY KEY,
		answer_event_id TEXT REFERENCES answer_events(id) ON DELETE CASCADE,
		module          TEXT NOT NULL,
		from_level      INTEGER NOT NULL CHECK(from_level BETWEEN 1 AND 3),
		to_level        INTEGER NOT NULL CHECK(to_level BETWEEN 1 AND 3),
		changed_at      TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_level_changes_module ON level_changes(module)`,
	// Streak at the time of the answer, for history charts
	`ALTER TABLE answer_events ADD COLUMN streak INTEGER NOT NULL DEFAULT 0`,
}
