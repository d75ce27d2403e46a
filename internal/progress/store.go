// Package progress owns the live learning-progress snapshot. Every read and
// write goes through a Store, which serializes mutations under one lock and
// persists the snapshot with debounced flushes.
package progress

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/sprout/internal/achievement"
	"github.com/alexanderramin/sprout/internal/challenge"
	"github.com/alexanderramin/sprout/internal/domain"
	"github.com/alexanderramin/sprout/internal/storage"
	"github.com/alexanderramin/sprout/internal/telemetry"
	"golang.org/x/sync/singleflight"
)

// DefaultFlushInterval is the auto-flush period used when none is configured.
const DefaultFlushInterval = 30 * time.Second

// Persister writes a snapshot durably. The store hands it a private copy.
type Persister interface {
	Save(s *domain.Snapshot) error
}

// Loader recovers the last persisted snapshot, falling back to defaults.
type Loader interface {
	LoadOrDefault(now time.Time) (*domain.Snapshot, storage.Source)
}

// Store is the single owner of the in-memory snapshot.
type Store struct {
	mu   sync.Mutex
	snap *domain.Snapshot

	persister Persister
	dirty     atomic.Bool
	flights   singleflight.Group

	now          func() time.Time
	logger       *slog.Logger
	metrics      *telemetry.Metrics
	rules        []achievement.Rule
	pool         []domain.Challenge
	restInterval time.Duration
	passwordCost int
	newUser      domain.UserInfo

	loopMu sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// Option configures a Store.
type Option func(*Store)

// WithClock replaces time.Now, e.g. to simulate a different "today".
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

func WithMetrics(m *telemetry.Metrics) Option {
	return func(s *Store) { s.metrics = m }
}

// WithRules replaces the achievement rule table.
func WithRules(rules []achievement.Rule) Option {
	return func(s *Store) { s.rules = rules }
}

// WithChallengePool replaces the daily challenge template pool.
func WithChallengePool(pool []domain.Challenge) Option {
	return func(s *Store) {
		if len(pool) > 0 {
			s.pool = pool
		}
	}
}

// WithRestInterval sets how often a rest reminder fires within a session.
func WithRestInterval(d time.Duration) Option {
	return func(s *Store) { s.restInterval = d }
}

// WithPasswordCost sets the bcrypt cost for parent passwords.
func WithPasswordCost(cost int) Option {
	return func(s *Store) { s.passwordCost = cost }
}

// WithNewUser sets the user info stamped on a snapshot created from defaults.
func WithNewUser(name string, age int) Option {
	return func(s *Store) {
		s.newUser = domain.UserInfo{Name: name, Age: domain.NonNegative(age)}
	}
}

// New wraps an already loaded snapshot. A nil snapshot starts from defaults.
func New(snap *domain.Snapshot, p Persister, opts ...Option) *Store {
	s := &Store{
		persister:    p,
		now:          time.Now,
		logger:       slog.New(slog.DiscardHandler),
		rules:        achievement.Rules,
		pool:         challenge.Templates,
		restInterval: 20 * time.Minute,
	}
	for _, opt := range opts {
		opt(s)
	}
	if snap == nil {
		snap = s.freshSnapshot()
	}
	snap.EnsureCollections()
	s.snap = snap
	return s
}

// Open loads the persisted snapshot through l and returns a store over it.
// Load never fails: a missing or corrupt document degrades to defaults.
func Open(l Loader, p Persister, opts ...Option) (*Store, storage.Source) {
	s := New(domain.NewSnapshot(time.Now()), p, opts...)
	snap, src := l.LoadOrDefault(s.now())
	if src == storage.SourceDefaults {
		snap = s.freshSnapshot()
	}
	snap.EnsureCollections()
	s.snap = snap
	s.logger.Info("progress loaded", "source", string(src), "user", snap.UserInfo.Name)
	return s, src
}

func (s *Store) freshSnapshot() *domain.Snapshot {
	snap := domain.NewSnapshot(s.now())
	snap.UserInfo.Name = s.newUser.Name
	snap.UserInfo.Age = s.newUser.Age
	return snap
}

// today returns the current calendar day and rolls day-scoped counters over
// if the stored day is stale. Callers must hold s.mu.
func (s *Store) today() (time.Time, string) {
	now := s.now()
	day := domain.DateOf(now)

	changed := false
	p := &s.snap.DailyPlan
	if p.Date != day {
		*p = domain.DailyPlan{
			Date:            day,
			ModuleCorrect:   make(map[domain.Module]int),
			TargetQuestions: domain.PositiveOr(p.TargetQuestions, domain.DefaultTargetQuestions),
			TargetMinutes:   domain.PositiveOr(p.TargetMinutes, domain.DefaultTargetMinutes),
		}
		changed = true
	}
	if challenge.Rollover(&s.snap.Challenges, day, s.pool) {
		changed = true
	}
	if changed {
		s.dirty.Store(true)
	}
	return now, day
}

// touchActiveDay counts day as learned the first time activity is recorded
// on it. Callers must hold s.mu.
func (s *Store) touchActiveDay(day string) {
	o := &s.snap.Overall
	if o.LastActiveDate != day {
		o.DaysLearned++
		o.LastActiveDate = day
	}
}

// Unlocks carries the events a mutation produced for the presentation layer.
type Unlocks struct {
	NewBadges           []achievement.Badge `json:"new_badges,omitempty"`
	CompletedChallenges []domain.Challenge  `json:"completed_challenges,omitempty"`
}

// settle runs challenge completion and achievement evaluation after a
// mutation and marks the store dirty. Callers must hold s.mu.
func (s *Store) settle() Unlocks {
	u := Unlocks{
		CompletedChallenges: challenge.CheckCompletion(s.snap),
	}
	u.NewBadges = achievement.Unlock(s.snap, s.rules)
	s.dirty.Store(true)
	return u
}

// afterUnlock records metrics and logs for unlock events. Call without s.mu.
func (s *Store) afterUnlock(u Unlocks) {
	s.metrics.ObserveBadges(len(u.NewBadges))
	for _, b := range u.NewBadges {
		s.logger.Info("badge unlocked", "badge", b.ID)
	}
	for _, c := range u.CompletedChallenges {
		s.logger.Info("daily challenge completed", "challenge", c.ID, "reward", c.Reward)
	}
}

// Now reads the store's clock.
func (s *Store) Now() time.Time {
	return s.now()
}

// Snapshot returns a deep copy of the live snapshot.
func (s *Store) Snapshot() *domain.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.today()
	return s.snap.Clone()
}

// MarkDirty schedules a write for the next flush tick without performing it.
func (s *Store) MarkDirty() {
	s.dirty.Store(true)
}

// Dirty reports whether unflushed changes exist.
func (s *Store) Dirty() bool {
	return s.dirty.Load()
}

// Flush writes the current snapshot synchronously. Concurrent calls collapse
// into one write. On failure the store stays dirty so the next tick retries;
// the in-memory snapshot remains authoritative.
func (s *Store) Flush() error {
	_, err, _ := s.flights.Do("flush", func() (any, error) {
		return nil, s.write()
	})
	return err
}

func (s *Store) write() error {
	if s.persister == nil {
		return nil
	}
	s.mu.Lock()
	snap := s.snap.Clone()
	s.dirty.Store(false)
	s.mu.Unlock()

	start := time.Now()
	err := s.persister.Save(snap)
	s.metrics.ObserveFlush(time.Since(start), err)
	if err != nil {
		s.dirty.Store(true)
		s.logger.Error("progress flush failed", "error", err)
		return fmt.Errorf("flushing progress: %w", err)
	}
	s.logger.Debug("progress flushed", "duration_ms", time.Since(start).Milliseconds())
	return nil
}

// FlushIfDirty flushes only when there are unflushed changes.
func (s *Store) FlushIfDirty() error {
	if !s.dirty.Load() {
		return nil
	}
	return s.Flush()
}

// StartAutoFlush runs a background loop that flushes every interval when
// dirty. It stops when ctx is cancelled or Close is called.
func (s *Store) StartAutoFlush(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultFlushInterval
	}
	s.loopMu.Lock()
	defer s.loopMu.Unlock()
	if s.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	s.cancel, s.done = cancel, done

	go func() {
		defer close(done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				_ = s.FlushIfDirty()
			}
		}
	}()
}

// Close stops the auto-flush loop and performs a final unconditional flush.
func (s *Store) Close() error {
	s.loopMu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.loopMu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
	if err := s.Flush(); err != nil {
		return err
	}
	// A mutation may have landed while the final write was in flight.
	return s.FlushIfDirty()
}
