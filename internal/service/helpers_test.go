package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/studysync/internal/db"
	"github.com/alexanderramin/studysync/internal/domain"
	"github.com/alexanderramin/studysync/internal/planner"
	"github.com/alexanderramin/studysync/internal/repository"
	"github.com/alexanderramin/studysync/internal/testutil"
)

// Odd-dated Sunday.
var fixedNow = time.Date(2025, 6, 15, 8, 0, 0, 0, time.UTC)

func storeOptions() []StoreOption {
	return []StoreOption{
		WithClock(func() time.Time { return fixedNow }),
		WithIDGenerator(testutil.SequentialIDs("id")),
		WithStoreRandom(planner.SeededRandom(7)),
	}
}

func newTestStore(t *testing.T, state *domain.AppState) (*Store, *sql.DB) {
	t.Helper()
	database := testutil.NewTestDB(t)
	return NewStore(state, testutil.NewTestUoW(database), storeOptions()...), database
}

func newFailingStore(t *testing.T, state *domain.AppState, failOn int32, err error) (*Store, *sql.DB, *testutil.FailOnNthExecUoW) {
	t.Helper()
	database := testutil.NewTestDB(t)
	uow := &testutil.FailOnNthExecUoW{DB: database, FailOn: failOn, Err: err}
	return NewStore(state, uow, storeOptions()...), database, uow
}

// reload reads back what is on disk.
func reload(t *testing.T, database *sql.DB) (*domain.AppState, repository.LoadReport) {
	t.Helper()
	state, report, err := repository.LoadSnapshot(context.Background(), repository.NewSQLiteSlotRepo(database))
	require.NoError(t, err)
	return state, report
}

func newGenerator() *planner.Generator {
	return planner.NewGenerator(planner.DefaultRules(),
		planner.WithRandom(planner.SeededRandom(3)),
		planner.WithIDs(testutil.SequentialIDs("task")))
}

func seedState() *domain.AppState {
	return domain.NewAppState()
}

var _ db.UnitOfWork = (*testutil.FailOnNthExecUoW)(nil)
