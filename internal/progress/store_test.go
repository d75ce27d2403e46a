package progress_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/sprout/internal/domain"
	"github.com/alexanderramin/sprout/internal/progress"
	"github.com/alexanderramin/sprout/internal/storage"
	"github.com/alexanderramin/sprout/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_FreshSnapshotGetsNewUser(t *testing.T) {
	clock := testutil.NewClock(monday)
	w := testutil.NewTestWriter(t)

	s, src := progress.Open(w, w, progress.WithClock(clock.Now), progress.WithNewUser("小明", 5))
	assert.Equal(t, storage.SourceDefaults, src)
	st := s.GetStats()
	assert.Equal(t, "小明", st.UserInfo.Name)
	assert.Equal(t, 5, st.UserInfo.Age)
	assert.Equal(t, "2026-08-03", st.UserInfo.CreatedAt)
	require.NoError(t, s.Flush())

	again, src := progress.Open(w, w, progress.WithClock(clock.Now), progress.WithNewUser("someone else", 9))
	assert.Equal(t, storage.SourcePrimary, src)
	assert.Equal(t, "小明", again.GetStats().UserInfo.Name, "existing user info is never overwritten")
}

func TestFlush_RoundTripThroughDurableWriter(t *testing.T) {
	clock := testutil.NewClock(monday)
	s, w := testutil.NewTestStore(t, clock)

	s.RecordAnswer("math", 10, true)
	s.RecordAnswer("literacy", 5, false)
	s.AddWrongQuestion("literacy", "山", "shān")
	s.AddReviewItem("literacy", "苹果")
	s.UpdateReviewItem("literacy", "苹果", true)
	s.AddMasteredItem("english", "cat")
	s.EndSession("math", 12*time.Minute)
	require.NoError(t, s.SetParentPassword("1234"))
	s.AddNotification("info", "hello")
	require.True(t, s.Dirty())

	require.NoError(t, s.Flush())
	assert.False(t, s.Dirty())

	reloaded, src := progress.Open(w, w, progress.WithClock(clock.Now))
	assert.Equal(t, storage.SourcePrimary, src)
	assert.Equal(t, s.Snapshot(), reloaded.Snapshot())
}

func TestFlush_FailureKeepsDirtyAndMemoryAuthoritative(t *testing.T) {
	p := &recordingPersister{fail: true}
	s := progress.New(nil, p, progress.WithClock(testutil.NewClock(monday).Now))

	s.RecordAnswer("math", 10, true)
	err := s.Flush()
	require.ErrorIs(t, err, errDiskFull)
	assert.True(t, s.Dirty(), "failed write is retried on the next tick")
	assert.Equal(t, 1, s.GetStats().Overall.TotalCorrect)

	p.setFail(false)
	require.NoError(t, s.FlushIfDirty())
	assert.False(t, s.Dirty())
	require.Equal(t, 1, p.count())
	assert.Equal(t, 1, p.last().Overall.TotalCorrect)
}

func TestMarkDirty_DoesNotWrite(t *testing.T) {
	p := &recordingPersister{}
	s := progress.New(nil, p)

	s.MarkDirty()
	assert.True(t, s.Dirty())
	assert.Equal(t, 0, p.count())

	require.NoError(t, s.FlushIfDirty())
	assert.Equal(t, 1, p.count())
	require.NoError(t, s.FlushIfDirty())
	assert.Equal(t, 1, p.count(), "clean store skips the write")
}

func TestFlush_SnapshotIsPrivateCopy(t *testing.T) {
	p := &recordingPersister{}
	s := progress.New(nil, p)

	s.RecordAnswer("math", 10, true)
	require.NoError(t, s.Flush())
	s.RecordAnswer("math", 10, true)

	assert.Equal(t, 1, p.last().Modules[domain.ModuleMath].Correct)
}

func TestAutoFlush_WritesWhenDirtyAndOnClose(t *testing.T) {
	p := &recordingPersister{}
	s := progress.New(nil, p)

	s.StartAutoFlush(context.Background(), 5*time.Millisecond)
	s.RecordAnswer("english", 10, true)

	require.Eventually(t, func() bool {
		return p.count() >= 1 && !s.Dirty()
	}, 2*time.Second, 5*time.Millisecond)

	before := p.count()
	require.NoError(t, s.Close())
	assert.Equal(t, before+1, p.count(), "close flushes unconditionally")
}

func TestAutoFlush_StopsWithContext(t *testing.T) {
	p := &recordingPersister{}
	s := progress.New(nil, p)
	ctx, cancel := context.WithCancel(context.Background())

	s.StartAutoFlush(ctx, 5*time.Millisecond)
	cancel()
	require.NoError(t, s.Close())
}

func TestFlush_ConcurrentWithMutations(t *testing.T) {
	p := &recordingPersister{}
	s := progress.New(nil, p)
	const n = 200

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			s.RecordAnswer("math", 10, true)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 20; i++ {
			_ = s.Flush()
		}
	}()
	wg.Wait()

	require.NoError(t, s.Close())
	assert.Equal(t, n, p.last().Overall.TotalCorrect)
	assert.False(t, s.Dirty())
}
