package service

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/sprout/internal/db"
	"github.com/alexanderramin/sprout/internal/domain"
	"github.com/alexanderramin/sprout/internal/progress"
	"github.com/alexanderramin/sprout/internal/repository"
	"github.com/alexanderramin/sprout/internal/testutil"
)

var tuesday = time.Date(2026, 8, 4, 10, 0, 0, 0, time.Local)

type fixture struct {
	conn         *sql.DB
	store        *progress.Store
	clock        *testutil.Clock
	uow          db.UnitOfWork
	answers      *repository.SQLiteAnswerEventRepo
	sessions     *repository.SQLiteSessionRepo
	levelChanges *repository.SQLiteLevelChangeRepo
}

func setup(t *testing.T, opts ...progress.Option) *fixture {
	t.Helper()
	database := testutil.NewTestDB(t)
	clock := testutil.NewClock(tuesday)
	store, _ := testutil.NewTestStore(t, clock, opts...)
	return &fixture{
		conn:         database,
		store:        store,
		clock:        clock,
		uow:          testutil.NewTestUoW(database),
		answers:      repository.NewSQLiteAnswerEventRepo(database),
		sessions:     repository.NewSQLiteSessionRepo(database),
		levelChanges: repository.NewSQLiteLevelChangeRepo(database),
	}
}

// recordingObserver collects use-case events.
type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}

func (o *recordingObserver) last() UseCaseEvent {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.events[len(o.events)-1]
}

var errJournalDown = errors.New("journal unavailable")

// failingSessionRepo rejects every insert.
type failingSessionRepo struct {
	repository.SessionRepo
}

func (failingSessionRepo) Create(context.Context, *domain.SessionLog) error {
	return errJournalDown
}
