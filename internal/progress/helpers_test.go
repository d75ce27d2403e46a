package progress_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/sprout/internal/domain"
	"github.com/alexanderramin/sprout/internal/progress"
	"github.com/alexanderramin/sprout/internal/testutil"
)

// monday is a weekday so parent daily limits carry no weekend bonus.
var monday = time.Date(2026, 8, 3, 9, 0, 0, 0, time.Local)

// unreachablePool keeps daily challenges from awarding stars in tests that
// count them.
var unreachablePool = []domain.Challenge{
	{ID: "never", Type: domain.ChallengeCorrect, Title: "never", Target: 1 << 20, Reward: 1},
}

func newStore(t *testing.T, opts ...progress.Option) (*progress.Store, *testutil.Clock) {
	t.Helper()
	clock := testutil.NewClock(monday)
	opts = append([]progress.Option{progress.WithChallengePool(unreachablePool)}, opts...)
	s, _ := testutil.NewTestStore(t, clock, opts...)
	return s, clock
}

// recordingPersister captures saves and fails while fail is set.
type recordingPersister struct {
	mu    sync.Mutex
	fail  bool
	saves []*domain.Snapshot
}

var errDiskFull = errors.New("no space left on device")

func (p *recordingPersister) Save(s *domain.Snapshot) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fail {
		return errDiskFull
	}
	p.saves = append(p.saves, s)
	return nil
}

func (p *recordingPersister) setFail(v bool) {
	p.mu.Lock()
	p.fail = v
	p.mu.Unlock()
}

func (p *recordingPersister) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.saves)
}

func (p *recordingPersister) last() *domain.Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.saves) == 0 {
		return nil
	}
	return p.saves[len(p.saves)-1]
}
