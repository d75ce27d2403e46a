package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/sprout/internal/db"
	"github.com/alexanderramin/sprout/internal/domain"
)

// SQLiteAnswerEventRepo implements AnswerEventRepo using a SQLite database.
type SQLiteAnswerEventRepo struct {
	db db.DBTX
}

// NewSQLiteAnswerEventRepo creates a new SQLiteAnswerEventRepo.
func NewSQLiteAnswerEventRepo(conn db.DBTX) *SQLiteAnswerEventRepo {
	return &SQLiteAnswerEventRepo{db: conn}
}

func (r *SQLiteAnswerEventRepo) Create(ctx context.Context, e *domain.AnswerEvent) error {
	query := `INSERT INTO answer_events (id, module, points, correct, streak, answered_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		string(e.Module),
		e.Points,
		boolToInt(e.Correct),
		e.Streak,
		journalTime(e.AnsweredAt),
	)
	if err != nil {
		return fmt.Errorf("inserting answer event: %w", err)
	}
	return nil
}

func (r *SQLiteAnswerEventRepo) GetByID(ctx context.Context, id string) (*domain.AnswerEvent, error) {
	query := `SELECT id, module, points, correct, streak, answered_at
		FROM answer_events WHERE id = ?`
	e, err := scanAnswerEvent(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("answer event: %w", ErrNotFound)
	}
	return e, err
}

func (r *SQLiteAnswerEventRepo) ListSince(ctx context.Context, since time.Time, module domain.Module, limit int) ([]*domain.AnswerEvent, error) {
	if limit <= 0 {
		limit = -1
	}
	query := `SELECT id, module, points, correct, streak, answered_at
		FROM answer_events
		WHERE answered_at >= ? AND (? = '' OR module = ?)
		ORDER BY answered_at DESC, id
		LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, journalTime(since), string(module), string(module), limit)
	if err != nil {
		return nil, fmt.Errorf("listing answer events: %w", err)
	}
	defer rows.Close()

	var events []*domain.AnswerEvent
	for rows.Next() {
		e, err := scanAnswerEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *SQLiteAnswerEventRepo) SummarizeSince(ctx context.Context, since time.Time) (map[domain.Module]*domain.ModuleActivity, error) {
	query := `SELECT module, COUNT(*), COALESCE(SUM(correct), 0), COALESCE(SUM(points), 0)
		FROM answer_events
		WHERE answered_at >= ?
		GROUP BY module`
	rows, err := r.db.QueryContext(ctx, query, journalTime(since))
	if err != nil {
		return nil, fmt.Errorf("summarizing answer events: %w", err)
	}
	defer rows.Close()

	out := make(map[domain.Module]*domain.ModuleActivity)
	for rows.Next() {
		var a domain.ModuleActivity
		var module string
		if err := rows.Scan(&module, &a.Answers, &a.Correct, &a.Points); err != nil {
			return nil, fmt.Errorf("scanning answer summary: %w", err)
		}
		a.Module = domain.Module(module)
		if a.Answers > 0 {
			a.Accuracy = float64(a.Correct) / float64(a.Answers)
		}
		out[a.Module] = &a
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAnswerEvent(row rowScanner) (*domain.AnswerEvent, error) {
	var e domain.AnswerEvent
	var module, answeredAt string
	var correct int
	if err := row.Scan(&e.ID, &module, &e.Points, &correct, &e.Streak, &answeredAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning answer event: %w", err)
	}
	at, err := parseJournalTime(answeredAt)
	if err != nil {
		return nil, fmt.Errorf("parsing answered_at: %w", err)
	}
	e.Module = domain.Module(module)
	e.Correct = intToBool(correct)
	e.AnsweredAt = at
	return &e, nil
}
