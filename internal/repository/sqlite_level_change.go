package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/sprout/internal/db"
	"github.com/alexanderramin/sprout/internal/domain"
)

// SQLiteLevelChangeRepo implements LevelChangeRepo using a SQLite database.
type SQLiteLevelChangeRepo struct {
	db db.DBTX
}

// NewSQLiteLevelChangeRepo creates a new SQLiteLevelChangeRepo.
func NewSQLiteLevelChangeRepo(conn db.DBTX) *SQLiteLevelChangeRepo {
	return &SQLiteLevelChangeRepo{db: conn}
}

func (r *SQLiteLevelChangeRepo) Create(ctx context.Context, c *domain.LevelChangeEvent) error {
	query := `INSERT INTO level_changes (id, answer_event_id, module, from_level, to_level, changed_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		c.ID,
		nullableStringToValue(c.AnswerEventID),
		string(c.Module),
		c.FromLevel,
		c.ToLevel,
		journalTime(c.ChangedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting level change: %w", err)
	}
	return nil
}

func (r *SQLiteLevelChangeRepo) ListByModule(ctx context.Context, module domain.Module) ([]*domain.LevelChangeEvent, error) {
	query := `SELECT id, answer_event_id, module, from_level, to_level, changed_at
		FROM level_changes WHERE module = ? ORDER BY changed_at, id`
	rows, err := r.db.QueryContext(ctx, query, string(module))
	if err != nil {
		return nil, fmt.Errorf("listing level changes: %w", err)
	}
	defer rows.Close()

	var changes []*domain.LevelChangeEvent
	for rows.Next() {
		var c domain.LevelChangeEvent
		var answerID sql.NullString
		var mod, changedAt string
		if err := rows.Scan(&c.ID, &answerID, &mod, &c.FromLevel, &c.ToLevel, &changedAt); err != nil {
			return nil, fmt.Errorf("scanning level change: %w", err)
		}
		at, err := parseJournalTime(changedAt)
		if err != nil {
			return nil, fmt.Errorf("parsing changed_at: %w", err)
		}
		c.AnswerEventID = nullableString(answerID)
		c.Module = domain.Module(mod)
		c.ChangedAt = at
		changes = append(changes, &c)
	}
	return changes, rows.Err()
}

func (r *SQLiteLevelChangeRepo) CountByModuleSince(ctx context.Context, since time.Time) (map[domain.Module]int, error) {
	query := `SELECT module, COUNT(*) FROM level_changes WHERE changed_at >= ? GROUP BY module`
	rows, err := r.db.QueryContext(ctx, query, journalTime(since))
	if err != nil {
		return nil, fmt.Errorf("counting level changes: %w", err)
	}
	defer rows.Close()

	out := make(map[domain.Module]int)
	for rows.Next() {
		var module string
		var n int
		if err := rows.Scan(&module, &n); err != nil {
			return nil, fmt.Errorf("scanning level change count: %w", err)
		}
		out[domain.Module(module)] = n
	}
	return out, rows.Err()
}
