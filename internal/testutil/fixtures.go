package testutil

import (
	"fmt"
	"sync/atomic"

	"github.com/alexanderramin/studysync/internal/domain"
)

// NewTestState returns a small state: one resource "r-test" with modules
// "m-a" (100 Questions) and "m-b" (10 Sections), Foundation stage.
func NewTestState() *domain.AppState {
	return &domain.AppState{
		Resources: []domain.Resource{NewTestResource("r-test", "Test Bank",
			domain.Module{ID: "m-a", Name: "Part A", Kind: domain.UnitQuestions, TotalItems: 100},
			domain.Module{ID: "m-b", Name: "Part B", Kind: domain.UnitSections, TotalItems: 10},
		)},
		DailyPlan:   []domain.DailyTask{},
		ReviewQueue: domain.ReviewQueue{},
		StudyStage:  domain.StageFoundation,
	}
}

func NewTestResource(id, name string, modules ...domain.Module) domain.Resource {
	if modules == nil {
		modules = []domain.Module{}
	}
	return domain.Resource{ID: id, Name: name, Modules: modules}
}

// SequentialIDs returns a generator yielding prefix-1, prefix-2, ...
func SequentialIDs(prefix string) func() string {
	var n atomic.Int64
	return func() string {
		return fmt.Sprintf("%s-%d", prefix, n.Add(1))
	}
}
