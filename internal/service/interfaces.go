package service

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/sprout/internal/domain"
	"github.com/alexanderramin/sprout/internal/progress"
)

// ErrLocked is returned when the parent controls currently block play.
var ErrLocked = errors.New("play is locked by parent controls")

// AnswerService records answered questions and journals them.
type AnswerService interface {
	Record(ctx context.Context, module string, points int, correct bool) (progress.AnswerResult, error)
	// SetLevel overrides a module's difficulty and journals the change.
	SetLevel(ctx context.Context, module string, level int) (progress.LevelResult, error)
}

// SessionService gates and closes play sessions.
type SessionService interface {
	// Check evaluates the parent controls for a session that has been
	// running for sessionMinutes. It returns ErrLocked, alongside the
	// check, when play should stop.
	Check(ctx context.Context, sessionMinutes int) (SessionCheck, error)
	End(ctx context.Context, module string, elapsed time.Duration) (progress.SessionResult, error)
}

// HistoryService reads the activity journal.
type HistoryService interface {
	Summary(ctx context.Context, days int) (*HistorySummary, error)
	RecentAnswers(ctx context.Context, module string, limit int) ([]*domain.AnswerEvent, error)
	LevelHistory(ctx context.Context, module string) ([]*domain.LevelChangeEvent, error)
}

// SessionCheck is the outcome of a session gate check.
type SessionCheck struct {
	progress.Access
	RestDue bool `json:"rest_due"`
}

// HistorySummary aggregates the journal over the last Days days.
type HistorySummary struct {
	Since   time.Time               `json:"since" yaml:"since"`
	Days    int                     `json:"days" yaml:"days"`
	Modules []domain.ModuleActivity `json:"modules" yaml:"modules"`
	// UnattributedMinutes is session time recorded without a module.
	UnattributedMinutes int `json:"unattributed_minutes" yaml:"unattributed_minutes"`
	TotalAnswers        int `json:"total_answers" yaml:"total_answers"`
	TotalMinutes        int `json:"total_minutes" yaml:"total_minutes"`
}
