package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/alexanderramin/sprout/internal/db"
	"github.com/alexanderramin/sprout/internal/domain"
	"github.com/alexanderramin/sprout/internal/progress"
	"github.com/alexanderramin/sprout/internal/repository"
	"github.com/google/uuid"
)

type answerStore interface {
	RecordAnswer(module string, points int, correct bool) progress.AnswerResult
	SetLevel(module string, level int) (progress.LevelResult, bool)
	Now() time.Time
}

type answerService struct {
	store    answerStore
	uow      db.UnitOfWork
	logger   *slog.Logger
	observer UseCaseObserver
}

func NewAnswerService(
	store answerStore,
	uow db.UnitOfWork,
	logger *slog.Logger,
	observers ...UseCaseObserver,
) AnswerService {
	return &answerService{
		store:    store,
		uow:      uow,
		logger:   loggerOrDiscard(logger),
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *answerService) Record(ctx context.Context, module string, points int, correct bool) (res progress.AnswerResult, err error) {
	startedAt := time.Now()
	fields := map[string]any{"module": module, "correct": correct}
	defer func() { observe(ctx, s.observer, "record-answer", startedAt, err, fields) }()

	if err = ctx.Err(); err != nil {
		return res, err
	}

	res = s.store.RecordAnswer(module, points, correct)
	fields["accepted"] = res.Accepted
	if !res.Accepted {
		return res, nil
	}
	fields["streak"] = res.Streak
	fields["badges"] = len(res.NewBadges)

	event := &domain.AnswerEvent{
		ID:         uuid.NewString(),
		Module:     res.Module,
		Points:     res.Points,
		Correct:    res.Correct,
		Streak:     res.Streak,
		AnsweredAt: s.store.Now(),
	}
	var change *domain.LevelChangeEvent
	if res.LevelChange != nil {
		fields["level_to"] = res.LevelChange.To
		change = &domain.LevelChangeEvent{
			ID:            uuid.NewString(),
			AnswerEventID: &event.ID,
			Module:        res.Module,
			FromLevel:     res.LevelChange.From,
			ToLevel:       res.LevelChange.To,
			ChangedAt:     event.AnsweredAt,
		}
	}

	if jerr := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLiteAnswerEventRepo(tx).Create(ctx, event); err != nil {
			return err
		}
		if change != nil {
			if err := repository.NewSQLiteLevelChangeRepo(tx).Create(ctx, change); err != nil {
				return err
			}
		}
		return nil
	}); jerr != nil {
		fields["journaled"] = false
		s.logger.Warn("journaling answer failed", "module", string(res.Module), "error", jerr)
		return res, nil
	}
	fields["journaled"] = true
	return res, nil
}

func (s *answerService) SetLevel(ctx context.Context, module string, level int) (res progress.LevelResult, err error) {
	startedAt := time.Now()
	fields := map[string]any{"module": module, "requested": level}
	defer func() { observe(ctx, s.observer, "set-level", startedAt, err, fields) }()

	if err = ctx.Err(); err != nil {
		return res, err
	}

	res, ok := s.store.SetLevel(module, level)
	if !ok {
		return res, fmt.Errorf("unknown module %q", module)
	}
	fields["stored"] = res.To
	if !res.Changed() {
		return res, nil
	}

	change := &domain.LevelChangeEvent{
		ID:        uuid.NewString(),
		Module:    res.Module,
		FromLevel: res.From,
		ToLevel:   res.To,
		ChangedAt: s.store.Now(),
	}
	if jerr := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteLevelChangeRepo(tx).Create(ctx, change)
	}); jerr != nil {
		s.logger.Warn("journaling level override failed", "module", string(res.Module), "error", jerr)
	}
	return res, nil
}
