package importer

import "github.com/alexanderramin/studysync/internal/domain"

// Preview summarizes a parsed save code for the confirmation prompt.
type Preview struct {
	Resources      int
	Modules        int
	Tasks          int
	ReviewItems    int
	CompletedItems int
	Stage          domain.StudyStage
}

func Summarize(state *domain.AppState) Preview {
	p := Preview{
		Resources:   len(state.Resources),
		Tasks:       len(state.DailyPlan),
		ReviewItems: len(state.ReviewQueue),
		Stage:       state.StudyStage,
	}
	for _, r := range state.Resources {
		p.Modules += len(r.Modules)
	}
	p.CompletedItems = state.Progress().Completed
	return p
}
