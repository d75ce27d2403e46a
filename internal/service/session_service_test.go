package service

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/sprout/internal/domain"
	"github.com/alexanderramin/sprout/internal/progress"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestCheck_SessionLimitLocks(t *testing.T) {
	f := setup(t)
	f.store.SetParentLimits(progress.Limits{
		SessionLimitMin: ptr(30),
		LockEnabled:     ptr(true),
	})
	svc := NewSessionService(f.store, f.sessions, nil)

	check, err := svc.Check(context.Background(), 10)
	require.NoError(t, err)
	assert.False(t, check.Blocked())

	check, err = svc.Check(context.Background(), 30)
	require.ErrorIs(t, err, ErrLocked)
	assert.Equal(t, domain.LimitSession, check.Limit.Kind)
	assert.Contains(t, err.Error(), "session limit of 30 minutes")
}

func TestCheck_AdvisoryWithoutLock(t *testing.T) {
	f := setup(t)
	f.store.SetParentLimits(progress.Limits{SessionLimitMin: ptr(30)})
	svc := NewSessionService(f.store, f.sessions, nil)

	check, err := svc.Check(context.Background(), 45)
	require.NoError(t, err)
	assert.True(t, check.Limit.Reached())
	assert.False(t, check.Blocked())
}

func TestCheck_OutsideAllowedHours(t *testing.T) {
	f := setup(t)
	f.store.SetParentLimits(progress.Limits{
		AllowedStartHour: ptr(18),
		AllowedEndHour:   ptr(20),
		TimeLockEnabled:  ptr(true),
		LockEnabled:      ptr(true),
	})
	svc := NewSessionService(f.store, f.sessions, nil)

	check, err := svc.Check(context.Background(), 0)
	require.ErrorIs(t, err, ErrLocked)
	assert.False(t, check.TimeAllowed)
	assert.Contains(t, err.Error(), "outside allowed hours")

	f.clock.Set(time.Date(2026, 8, 4, 19, 0, 0, 0, time.Local))
	_, err = svc.Check(context.Background(), 0)
	assert.NoError(t, err)
}

func TestCheck_RestReminderFiresOncePerInterval(t *testing.T) {
	f := setup(t)
	svc := NewSessionService(f.store, f.sessions, nil)

	check, err := svc.Check(context.Background(), 20)
	require.NoError(t, err)
	assert.True(t, check.RestDue)

	check, err = svc.Check(context.Background(), 25)
	require.NoError(t, err)
	assert.False(t, check.RestDue)

	check, err = svc.Check(context.Background(), 40)
	require.NoError(t, err)
	assert.True(t, check.RestDue)
}

func TestEnd_JournalsSession(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	svc := NewSessionService(f.store, f.sessions, nil)

	res, err := svc.End(ctx, "math", 12*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 12, res.Minutes)

	// Rounds to zero minutes, nothing to journal.
	_, err = svc.End(ctx, "math", 20*time.Second)
	require.NoError(t, err)

	minutes, err := f.sessions.MinutesByModuleSince(ctx, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, map[domain.Module]int{domain.ModuleMath: 12}, minutes)

	logs, err := f.sessions.ListSince(ctx, time.Time{})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, tuesday.UTC(), logs[0].EndedAt)
}

func TestEnd_JournalFailureIsSoft(t *testing.T) {
	f := setup(t)
	svc := NewSessionService(f.store, failingSessionRepo{}, nil)

	res, err := svc.End(context.Background(), "literacy", 15*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 15, res.Minutes)
	assert.Equal(t, 15, f.store.GetStats().Overall.TotalMinutes)
}
