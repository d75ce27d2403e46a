package service

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/sprout/internal/domain"
	"github.com/alexanderramin/sprout/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord_JournalsAcceptedAnswers(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	obs := &recordingObserver{}
	svc := NewAnswerService(f.store, f.uow, nil, obs)

	res, err := svc.Record(ctx, "Math", 10, true)
	require.NoError(t, err)
	assert.True(t, res.Accepted)
	assert.Equal(t, domain.ModuleMath, res.Module)

	_, err = svc.Record(ctx, "math", 10, false)
	require.NoError(t, err)

	events, err := f.answers.ListSince(ctx, time.Time{}, domain.ModuleMath, 0)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, tuesday.UTC(), events[0].AnsweredAt.UTC())
	assert.Equal(t, 10, events[0].Points+events[1].Points, "only the correct answer scores")

	ev := obs.last()
	assert.Equal(t, "record-answer", ev.Name)
	assert.True(t, ev.Success)
	assert.Equal(t, true, ev.Fields["journaled"])
}

func TestRecord_UnknownModuleIsNotJournaled(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	svc := NewAnswerService(f.store, f.uow, nil)

	res, err := svc.Record(ctx, "chemistry", 10, true)
	require.NoError(t, err)
	assert.False(t, res.Accepted)

	events, err := f.answers.ListSince(ctx, time.Time{}, "", 0)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestRecord_LevelChangeJournaledWithAnswer(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	svc := NewAnswerService(f.store, f.uow, nil)

	for i := 0; i < 9; i++ {
		res, err := svc.Record(ctx, "math", 10, true)
		require.NoError(t, err)
		require.Nil(t, res.LevelChange)
	}
	res, err := svc.Record(ctx, "math", 10, true)
	require.NoError(t, err)
	require.NotNil(t, res.LevelChange)
	assert.Equal(t, 2, res.LevelChange.To)

	changes, err := f.levelChanges.ListByModule(ctx, domain.ModuleMath)
	require.NoError(t, err)
	require.Len(t, changes, 1)
	assert.Equal(t, 1, changes[0].FromLevel)
	assert.Equal(t, 2, changes[0].ToLevel)
	require.NotNil(t, changes[0].AnswerEventID)

	linked, err := f.answers.GetByID(ctx, *changes[0].AnswerEventID)
	require.NoError(t, err)
	assert.True(t, linked.Correct)
}

func TestRecord_JournalFailureIsSoft(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	// The second exec in a transaction is the level change insert.
	uow := &testutil.FailOnNthExecUoW{DB: f.conn, FailOn: 2, Err: errJournalDown}
	obs := &recordingObserver{}
	svc := NewAnswerService(f.store, uow, nil, obs)

	for i := 0; i < 10; i++ {
		_, err := svc.Record(ctx, "math", 10, true)
		require.NoError(t, err)
	}

	assert.Equal(t, 2, f.store.GetStats().Modules[domain.ModuleMath].Level, "store is authoritative")
	assert.Equal(t, false, obs.last().Fields["journaled"])

	events, err := f.answers.ListSince(ctx, time.Time{}, domain.ModuleMath, 0)
	require.NoError(t, err)
	assert.Len(t, events, 9, "the failed transaction rolls back its answer row")

	changes, err := f.levelChanges.ListByModule(ctx, domain.ModuleMath)
	require.NoError(t, err)
	assert.Empty(t, changes)
}

func TestRecord_CancelledContext(t *testing.T) {
	f := setup(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	obs := &recordingObserver{}
	svc := NewAnswerService(f.store, f.uow, nil, obs)

	_, err := svc.Record(ctx, "math", 10, true)
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, f.store.GetStats().Overall.TotalCorrect)
	assert.False(t, obs.last().Success)
}

func TestSetLevel_JournalsOverride(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	svc := NewAnswerService(f.store, f.uow, nil)

	res, err := svc.SetLevel(ctx, "english", 9)
	require.NoError(t, err)
	assert.Equal(t, domain.MaxLevel, res.To)
	require.Len(t, res.NewBadges, 1, "override unlocks the top-level badge")
	assert.Equal(t, "level_max", res.NewBadges[0].ID)

	// Same level again is not a change.
	_, err = svc.SetLevel(ctx, "english", 3)
	require.NoError(t, err)

	changes, err := f.levelChanges.ListByModule(ctx, domain.ModuleEnglish)
	require.NoError(t, err)
	require.Len(t, changes, 1)
	assert.Nil(t, changes[0].AnswerEventID)
	assert.Equal(t, 1, changes[0].FromLevel)
	assert.Equal(t, 3, changes[0].ToLevel)
}

func TestSetLevel_UnknownModule(t *testing.T) {
	f := setup(t)
	svc := NewAnswerService(f.store, f.uow, nil)

	_, err := svc.SetLevel(context.Background(), "chemistry", 2)
	assert.Error(t, err)
}
