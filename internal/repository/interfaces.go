package repository

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/sprout/internal/domain"
)

// ErrNotFound is returned when a journal row does not exist.
var ErrNotFound = errors.New("not found")

type AnswerEventRepo interface {
	Create(ctx context.Context, e *domain.AnswerEvent) error
	GetByID(ctx context.Context, id string) (*domain.AnswerEvent, error)
	// ListSince returns events at or after since, newest first. An empty
	// module lists every module.
	ListSince(ctx context.Context, since time.Time, module domain.Module, limit int) ([]*domain.AnswerEvent, error)
	SummarizeSince(ctx context.Context, since time.Time) (map[domain.Module]*domain.ModuleActivity, error)
}

type SessionRepo interface {
	Create(ctx context.Context, s *domain.SessionLog) error
	ListSince(ctx context.Context, since time.Time) ([]*domain.SessionLog, error)
	MinutesByModuleSince(ctx context.Context, since time.Time) (map[domain.Module]int, error)
}

type LevelChangeRepo interface {
	Create(ctx context.Context, c *domain.LevelChangeEvent) error
	ListByModule(ctx context.Context, module domain.Module) ([]*domain.LevelChangeEvent, error)
	CountByModuleSince(ctx context.Context, since time.Time) (map[domain.Module]int, error)
}
