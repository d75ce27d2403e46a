package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/alexanderramin/sprout/internal/domain"
	"github.com/alexanderramin/sprout/internal/progress"
	"github.com/alexanderramin/sprout/internal/repository"
	"github.com/google/uuid"
)

type sessionStore interface {
	CheckAccess(sessionMinutes int) progress.Access
	CheckRestReminder(sessionMinutes int) bool
	EndSession(module string, elapsed time.Duration) progress.SessionResult
	Now() time.Time
}

type sessionService struct {
	store    sessionStore
	sessions repository.SessionRepo
	logger   *slog.Logger
	observer UseCaseObserver
}

func NewSessionService(
	store sessionStore,
	sessions repository.SessionRepo,
	logger *slog.Logger,
	observers ...UseCaseObserver,
) SessionService {
	return &sessionService{
		store:    store,
		sessions: sessions,
		logger:   loggerOrDiscard(logger),
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *sessionService) Check(ctx context.Context, sessionMinutes int) (check SessionCheck, err error) {
	startedAt := time.Now()
	fields := map[string]any{"session_minutes": sessionMinutes}
	defer func() { observe(ctx, s.observer, "check-session", startedAt, err, fields) }()

	check.Access = s.store.CheckAccess(sessionMinutes)
	check.RestDue = s.store.CheckRestReminder(sessionMinutes)
	fields["rest_due"] = check.RestDue

	if !check.Blocked() {
		return check, nil
	}
	if !check.TimeAllowed {
		return check, fmt.Errorf("%w: outside allowed hours", ErrLocked)
	}
	return check, fmt.Errorf("%w: %s limit of %d minutes reached",
		ErrLocked, check.Limit.Kind, check.Limit.Limit)
}

func (s *sessionService) End(ctx context.Context, module string, elapsed time.Duration) (res progress.SessionResult, err error) {
	startedAt := time.Now()
	fields := map[string]any{"module": module}
	defer func() { observe(ctx, s.observer, "end-session", startedAt, err, fields) }()

	if err = ctx.Err(); err != nil {
		return res, err
	}

	res = s.store.EndSession(module, elapsed)
	fields["minutes"] = res.Minutes
	if res.Minutes == 0 {
		return res, nil
	}

	log := &domain.SessionLog{
		ID:      uuid.NewString(),
		Module:  res.Module,
		Minutes: res.Minutes,
		EndedAt: s.store.Now(),
	}
	if jerr := s.sessions.Create(ctx, log); jerr != nil {
		s.logger.Warn("journaling session failed", "module", string(res.Module), "error", jerr)
	}
	return res, nil
}
