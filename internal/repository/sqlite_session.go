package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/sprout/internal/db"
	"github.com/alexanderramin/sprout/internal/domain"
)

// SQLiteSessionRepo implements SessionRepo using a SQLite database.
type SQLiteSessionRepo struct {
	db db.DBTX
}

// NewSQLiteSessionRepo creates a new SQLiteSessionRepo.
func NewSQLiteSessionRepo(conn db.DBTX) *SQLiteSessionRepo {
	return &SQLiteSessionRepo{db: conn}
}

func (r *SQLiteSessionRepo) Create(ctx context.Context, s *domain.SessionLog) error {
	query := `INSERT INTO session_logs (id, module, minutes, ended_at) VALUES (?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		string(s.Module),
		s.Minutes,
		journalTime(s.EndedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting session log: %w", err)
	}
	return nil
}

func (r *SQLiteSessionRepo) ListSince(ctx context.Context, since time.Time) ([]*domain.SessionLog, error) {
	query := `SELECT id, module, minutes, ended_at
		FROM session_logs
		WHERE ended_at >= ?
		ORDER BY ended_at DESC, id`
	rows, err := r.db.QueryContext(ctx, query, journalTime(since))
	if err != nil {
		return nil, fmt.Errorf("listing session logs: %w", err)
	}
	defer rows.Close()

	var sessions []*domain.SessionLog
	for rows.Next() {
		var s domain.SessionLog
		var module, endedAt string
		if err := rows.Scan(&s.ID, &module, &s.Minutes, &endedAt); err != nil {
			return nil, fmt.Errorf("scanning session row: %w", err)
		}
		at, err := parseJournalTime(endedAt)
		if err != nil {
			return nil, fmt.Errorf("parsing ended_at: %w", err)
		}
		s.Module = domain.Module(module)
		s.EndedAt = at
		sessions = append(sessions, &s)
	}
	return sessions, rows.Err()
}

// MinutesByModuleSince sums session minutes per module. Sessions not
// attributed to a module are keyed by the empty module.
func (r *SQLiteSessionRepo) MinutesByModuleSince(ctx context.Context, since time.Time) (map[domain.Module]int, error) {
	query := `SELECT module, COALESCE(SUM(minutes), 0)
		FROM session_logs
		WHERE ended_at >= ?
		GROUP BY module`
	rows, err := r.db.QueryContext(ctx, query, journalTime(since))
	if err != nil {
		return nil, fmt.Errorf("summing session minutes: %w", err)
	}
	defer rows.Close()

	out := make(map[domain.Module]int)
	for rows.Next() {
		var module string
		var minutes int
		if err := rows.Scan(&module, &minutes); err != nil {
			return nil, fmt.Errorf("scanning session minutes: %w", err)
		}
		out[domain.Module(module)] = minutes
	}
	return out, rows.Err()
}
