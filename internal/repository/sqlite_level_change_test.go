package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/sprout/internal/db"
	"github.com/alexanderramin/sprout/internal/domain"
	"github.com/alexanderramin/sprout/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelChangeRepo_ListByModule(t *testing.T) {
	database := testutil.NewTestDB(t)
	answers := NewSQLiteAnswerEventRepo(database)
	repo := NewSQLiteLevelChangeRepo(database)
	ctx := context.Background()

	e := testutil.NewTestAnswerEvent(domain.ModuleMath, true, testutil.WithAnsweredAt(journalNow))
	require.NoError(t, answers.Create(ctx, e))

	up := testutil.NewTestLevelChange(domain.ModuleMath, 1, 2,
		testutil.WithAnswerEventID(e.ID), testutil.WithChangedAt(journalNow))
	manual := testutil.NewTestLevelChange(domain.ModuleMath, 2, 1, testutil.WithChangedAt(journalNow.Add(time.Minute)))
	require.NoError(t, repo.Create(ctx, up))
	require.NoError(t, repo.Create(ctx, manual))
	require.NoError(t, repo.Create(ctx, testutil.NewTestLevelChange(domain.ModuleLogic, 1, 2)))

	list, err := repo.ListByModule(ctx, domain.ModuleMath)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.NotNil(t, list[0].AnswerEventID)
	assert.Equal(t, e.ID, *list[0].AnswerEventID)
	assert.Nil(t, list[1].AnswerEventID, "manual overrides have no answer")

	counts, err := repo.CountByModuleSince(ctx, journalNow.AddDate(0, 0, -1))
	require.NoError(t, err)
	assert.Equal(t, 2, counts[domain.ModuleMath])
}

// An answer and its level change are written together; a failure on the
// second insert leaves neither row behind.
func TestLevelChangeRepo_RollsBackWithAnswer(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	injected := errors.New("disk I/O error")
	uow := &testutil.FailOnNthExecUoW{DB: database, FailOn: 2, Err: injected}

	e := testutil.NewTestAnswerEvent(domain.ModuleMath, true)
	err := uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := NewSQLiteAnswerEventRepo(tx).Create(ctx, e); err != nil {
			return err
		}
		return NewSQLiteLevelChangeRepo(tx).Create(ctx,
			testutil.NewTestLevelChange(domain.ModuleMath, 1, 2, testutil.WithAnswerEventID(e.ID)))
	})
	require.ErrorIs(t, err, injected)

	_, err = NewSQLiteAnswerEventRepo(database).GetByID(ctx, e.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
