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

func TestWindowStart(t *testing.T) {
	now := time.Date(2026, 8, 4, 15, 30, 0, 0, time.Local)
	assert.Equal(t, time.Date(2026, 8, 4, 0, 0, 0, 0, time.Local), windowStart(now, 1))
	assert.Equal(t, time.Date(2026, 7, 29, 0, 0, 0, 0, time.Local), windowStart(now, 7))
}

func TestSummary_MergesJournalTables(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	answers := NewAnswerService(f.store, f.uow, nil)
	sessions := NewSessionService(f.store, f.sessions, nil)
	history := NewHistoryService(f.answers, f.sessions, f.levelChanges, f.clock.Now)

	for i := 0; i < 4; i++ {
		_, err := answers.Record(ctx, "math", 10, i != 0)
		require.NoError(t, err)
	}
	_, err := answers.Record(ctx, "pinyin", 5, true)
	require.NoError(t, err)
	_, err = answers.SetLevel(ctx, "math", 2)
	require.NoError(t, err)
	_, err = sessions.End(ctx, "math", 10*time.Minute)
	require.NoError(t, err)
	_, err = sessions.End(ctx, "", 4*time.Minute)
	require.NoError(t, err)

	// Outside the window.
	old := testutil.NewTestAnswerEvent(domain.ModuleMath, true,
		testutil.WithAnsweredAt(tuesday.AddDate(0, 0, -10)))
	require.NoError(t, f.answers.Create(ctx, old))

	sum, err := history.Summary(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, 7, sum.Days)
	assert.Equal(t, 5, sum.TotalAnswers)
	assert.Equal(t, 14, sum.TotalMinutes)
	assert.Equal(t, 4, sum.UnattributedMinutes)

	require.Len(t, sum.Modules, 2)
	assert.Equal(t, domain.ModulePinyin, sum.Modules[0].Module, "modules follow canonical order")
	m := sum.Modules[1]
	assert.Equal(t, domain.ModuleMath, m.Module)
	assert.Equal(t, 4, m.Answers)
	assert.Equal(t, 3, m.Correct)
	assert.Equal(t, 30, m.Points)
	assert.Equal(t, 10, m.Minutes)
	assert.Equal(t, 1, m.LevelChanges)
	assert.InDelta(t, 0.75, m.Accuracy, 1e-9)
}

func TestSummary_DefaultsAndClamps(t *testing.T) {
	f := setup(t)
	history := NewHistoryService(f.answers, f.sessions, f.levelChanges, f.clock.Now)

	sum, err := history.Summary(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, 7, sum.Days)
	assert.Empty(t, sum.Modules)

	sum, err = history.Summary(context.Background(), 10000)
	require.NoError(t, err)
	assert.Equal(t, 365, sum.Days)
}

func TestRecentAnswersAndLevelHistory(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	answers := NewAnswerService(f.store, f.uow, nil)
	history := NewHistoryService(f.answers, f.sessions, f.levelChanges, f.clock.Now)

	for i := 0; i < 3; i++ {
		f.clock.Advance(time.Minute)
		_, err := answers.Record(ctx, "logic", i, true)
		require.NoError(t, err)
	}
	_, err := answers.Record(ctx, "math", 10, true)
	require.NoError(t, err)

	recent, err := history.RecentAnswers(ctx, "logic", 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, 2, recent[0].Points, "newest first")

	all, err := history.RecentAnswers(ctx, "", 0)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	_, err = history.RecentAnswers(ctx, "chemistry", 0)
	assert.Error(t, err)

	_, err = answers.SetLevel(ctx, "logic", 3)
	require.NoError(t, err)
	levels, err := history.LevelHistory(ctx, "logic")
	require.NoError(t, err)
	require.Len(t, levels, 1)
	assert.Equal(t, 3, levels[0].ToLevel)
}
