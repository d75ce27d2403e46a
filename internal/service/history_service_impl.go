package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/sprout/internal/domain"
	"github.com/alexanderramin/sprout/internal/repository"
)

const (
	defaultHistoryDays = 7
	maxHistoryDays     = 365
)

type historyService struct {
	answers      repository.AnswerEventRepo
	sessions     repository.SessionRepo
	levelChanges repository.LevelChangeRepo
	now          func() time.Time
	observer     UseCaseObserver
}

func NewHistoryService(
	answers repository.AnswerEventRepo,
	sessions repository.SessionRepo,
	levelChanges repository.LevelChangeRepo,
	now func() time.Time,
	observers ...UseCaseObserver,
) HistoryService {
	if now == nil {
		now = time.Now
	}
	return &historyService{
		answers:      answers,
		sessions:     sessions,
		levelChanges: levelChanges,
		now:          now,
		observer:     useCaseObserverOrNoop(observers),
	}
}

// windowStart returns local midnight days-1 days before today, so days=1
// covers today only.
func windowStart(now time.Time, days int) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, now.Location()).AddDate(0, 0, -(days - 1))
}

func (s *historyService) Summary(ctx context.Context, days int) (summary *HistorySummary, err error) {
	startedAt := time.Now()
	fields := map[string]any{"days": days}
	defer func() { observe(ctx, s.observer, "history-summary", startedAt, err, fields) }()

	if days <= 0 {
		days = defaultHistoryDays
	}
	days = min(days, maxHistoryDays)
	since := windowStart(s.now(), days)

	answers, err := s.answers.SummarizeSince(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("summarizing history: %w", err)
	}
	minutes, err := s.sessions.MinutesByModuleSince(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("summarizing history: %w", err)
	}
	changes, err := s.levelChanges.CountByModuleSince(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("summarizing history: %w", err)
	}

	summary = &HistorySummary{
		Since:               since,
		Days:                days,
		UnattributedMinutes: minutes[""],
		Modules:             make([]domain.ModuleActivity, 0, len(domain.Modules)),
	}
	summary.TotalMinutes = summary.UnattributedMinutes
	for _, m := range domain.Modules {
		a := domain.ModuleActivity{Module: m}
		if got, ok := answers[m]; ok {
			a = *got
		}
		a.Minutes = minutes[m]
		a.LevelChanges = changes[m]
		if a.Answers == 0 && a.Minutes == 0 && a.LevelChanges == 0 {
			continue
		}
		summary.Modules = append(summary.Modules, a)
		summary.TotalAnswers += a.Answers
		summary.TotalMinutes += a.Minutes
	}
	fields["modules"] = len(summary.Modules)
	return summary, nil
}

func (s *historyService) RecentAnswers(ctx context.Context, module string, limit int) ([]*domain.AnswerEvent, error) {
	var m domain.Module
	if module != "" {
		var ok bool
		if m, ok = domain.ParseModule(module); !ok {
			return nil, fmt.Errorf("unknown module %q", module)
		}
	}
	return s.answers.ListSince(ctx, time.Time{}, m, limit)
}

func (s *historyService) LevelHistory(ctx context.Context, module string) ([]*domain.LevelChangeEvent, error) {
	m, ok := domain.ParseModule(module)
	if !ok {
		return nil, fmt.Errorf("unknown module %q", module)
	}
	return s.levelChanges.ListByModule(ctx, m)
}
