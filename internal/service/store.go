package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/studysync/internal/db"
	"github.com/alexanderramin/studysync/internal/domain"
	"github.com/alexanderramin/studysync/internal/planner"
	"github.com/alexanderramin/studysync/internal/repository"
)

// Command is one state transition. Apply edits m.State, a private copy;
// returning an error discards the copy.
type Command interface {
	Name() string
	Apply(m *Mutation) error
}

// Mutation is the working area a Command runs in.
type Mutation struct {
	State *domain.AppState
	Now   time.Time
	NewID func() string
	Rand  planner.RandomSource

	journal   *domain.PlanRun
	unchanged bool
	reset     bool
}

// Journal records a plan run alongside this mutation's save.
func (m *Mutation) Journal(run domain.PlanRun) { m.journal = &run }

// Unchanged marks the command as a no-op so nothing is written.
func (m *Mutation) Unchanged() { m.unchanged = true }

// Reset wipes stored slots and history instead of saving, and restarts
// from the first-run state.
func (m *Mutation) Reset() {
	m.reset = true
	m.State = domain.NewAppState()
}

// Store owns the live AppState. Every change goes through Dispatch, which
// applies a command to a copy, persists the copy in one transaction and
// only then publishes it. A failing command or save leaves both memory and
// disk as they were.
type Store struct {
	mu    sync.Mutex
	state *domain.AppState

	uow      db.UnitOfWork
	observer UseCaseObserver
	now      func() time.Time
	newID    func() string
	rand     planner.RandomSource
}

type StoreOption func(*Store)

func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) { s.now = now }
}

func WithIDGenerator(fn func() string) StoreOption {
	return func(s *Store) { s.newID = fn }
}

func WithStoreRandom(r planner.RandomSource) StoreOption {
	return func(s *Store) { s.rand = r }
}

func WithObserver(obs UseCaseObserver) StoreOption {
	return func(s *Store) { s.observer = useCaseObserverOrNoop([]UseCaseObserver{obs}) }
}

// NewStore wraps an already loaded state.
func NewStore(state *domain.AppState, uow db.UnitOfWork, opts ...StoreOption) *Store {
	s := &Store{
		state:    state,
		uow:      uow,
		observer: NoopUseCaseObserver{},
		now:      func() time.Time { return time.Now().UTC() },
		newID:    uuid.NewString,
		rand:     planner.SystemRandom(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// OpenStore loads the saved slots through slots and wraps them.
func OpenStore(ctx context.Context, slots repository.SlotRepo, uow db.UnitOfWork, opts ...StoreOption) (*Store, repository.LoadReport, error) {
	state, report, err := repository.LoadSnapshot(ctx, slots)
	if err != nil {
		return nil, report, fmt.Errorf("loading state: %w", err)
	}
	state.ClearTipLoading()
	return NewStore(state, uow, opts...), report, nil
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() *domain.AppState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Now is the store's clock.
func (s *Store) Now() time.Time { return s.now() }

func (s *Store) Dispatch(ctx context.Context, cmd Command) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	fields := map[string]any{}
	return observe(ctx, s.observer, cmd.Name(), fields, func() error {
		m := &Mutation{
			State: s.state.Clone(),
			Now:   s.now(),
			NewID: s.newID,
			Rand:  s.rand,
		}
		if err := cmd.Apply(m); err != nil {
			return err
		}
		if m.unchanged {
			fields["noop"] = true
			return nil
		}
		if err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
			return persist(ctx, tx, m)
		}); err != nil {
			return fmt.Errorf("saving state: %w", err)
		}
		s.state = m.State
		return nil
	})
}

func persist(ctx context.Context, tx db.DBTX, m *Mutation) error {
	slots := repository.NewSQLiteSlotRepo(tx)
	runs := repository.NewSQLitePlanRunRepo(tx)
	if m.reset {
		if err := slots.Clear(ctx); err != nil {
			return err
		}
		return runs.Clear(ctx)
	}
	if err := repository.SaveSnapshot(ctx, slots, m.State, m.Now); err != nil {
		return err
	}
	if m.journal != nil {
		return runs.Create(ctx, m.journal)
	}
	return nil
}
