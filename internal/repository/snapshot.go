package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/studysync/internal/db"
	"github.com/alexanderramin/studysync/internal/domain"
)

// LoadReport says which slots were not read back as stored.
type LoadReport struct {
	// Missing slots had never been written.
	Missing []string
	// Corrupt slots held something that did not decode and were replaced
	// by their default.
	Corrupt []string
}

// Fresh reports whether nothing had been saved yet.
func (r LoadReport) Fresh() bool {
	return len(r.Missing) == len(db.AllSlots)
}

// LoadSnapshot reads the four slots. Each one decodes independently and
// falls back to its default: seed resources, an empty plan or queue, or
// the Foundation stage.
func LoadSnapshot(ctx context.Context, slots SlotRepo) (*domain.AppState, LoadReport, error) {
	state := &domain.AppState{}
	var report LoadReport

	for _, key := range db.AllSlots {
		raw, err := slots.Get(ctx, key)
		if errors.Is(err, ErrNotFound) {
			report.Missing = append(report.Missing, key)
			applyDefault(state, key)
			continue
		}
		if err != nil {
			return nil, report, err
		}
		if err := decodeSlot(state, key, raw); err != nil {
			report.Corrupt = append(report.Corrupt, key)
			applyDefault(state, key)
		}
	}
	return state, report, nil
}

func decodeSlot(state *domain.AppState, key string, raw []byte) error {
	switch key {
	case db.SlotResources:
		var v []domain.Resource
		if err := json.Unmarshal(raw, &v); err != nil {
			return err
		}
		if v == nil {
			return errors.New("null resources")
		}
		state.Resources = v
	case db.SlotDailyPlan:
		var v []domain.DailyTask
		if err := json.Unmarshal(raw, &v); err != nil {
			return err
		}
		state.DailyPlan = nonNilTasks(v)
	case db.SlotReviewQueue:
		var v domain.ReviewQueue
		if err := json.Unmarshal(raw, &v); err != nil {
			return err
		}
		if v == nil {
			v = domain.ReviewQueue{}
		}
		state.ReviewQueue = v
	case db.SlotStudyStage:
		var v domain.StudyStage
		if err := json.Unmarshal(raw, &v); err != nil {
			return err
		}
		if !v.Valid() {
			return fmt.Errorf("unknown stage %q", v)
		}
		state.StudyStage = v
	}
	return nil
}

func applyDefault(state *domain.AppState, key string) {
	switch key {
	case db.SlotResources:
		state.Resources = domain.SeedResources()
	case db.SlotDailyPlan:
		state.DailyPlan = []domain.DailyTask{}
	case db.SlotReviewQueue:
		state.ReviewQueue = domain.ReviewQueue{}
	case db.SlotStudyStage:
		state.StudyStage = domain.StageFoundation
	}
}

// SaveSnapshot writes all four slots. Callers run it inside a UnitOfWork so
// the slots never disagree.
func SaveSnapshot(ctx context.Context, slots SlotRepo, state *domain.AppState, at time.Time) error {
	resources := state.Resources
	if resources == nil {
		// an empty library must not read back as "never saved"
		resources = []domain.Resource{}
	}
	values := map[string]any{
		db.SlotResources:   resources,
		db.SlotDailyPlan:   nonNilTasks(state.DailyPlan),
		db.SlotReviewQueue: state.ReviewQueue,
		db.SlotStudyStage:  state.StudyStage,
	}
	if state.ReviewQueue == nil {
		values[db.SlotReviewQueue] = domain.ReviewQueue{}
	}
	for _, key := range db.AllSlots {
		raw, err := json.Marshal(values[key])
		if err != nil {
			return fmt.Errorf("encoding slot %s: %w", key, err)
		}
		if err := slots.Put(ctx, key, raw, at); err != nil {
			return err
		}
	}
	return nil
}

func nonNilTasks(tasks []domain.DailyTask) []domain.DailyTask {
	if tasks == nil {
		return []domain.DailyTask{}
	}
	return tasks
}
