package domain

import "strings"

// AppState is the whole application snapshot. It is persisted as four
// slots: resources, daily plan, review queue and study stage.
type AppState struct {
	Resources   []Resource  `json:"resources" validate:"unique=ID,dive"`
	DailyPlan   []DailyTask `json:"dailyPlan" validate:"unique=ID,dive"`
	ReviewQueue ReviewQueue `json:"reviewQueue" validate:"unique=ID,dive"`
	StudyStage  StudyStage  `json:"studyStage"`
}

// NewAppState returns the first-run state: seed resources, empty plan and
// queue, Foundation stage.
func NewAppState() *AppState {
	return &AppState{
		Resources:   SeedResources(),
		DailyPlan:   []DailyTask{},
		ReviewQueue: ReviewQueue{},
		StudyStage:  StageFoundation,
	}
}

// Clone returns a deep copy so a command can work on it without touching
// the published snapshot.
func (s *AppState) Clone() *AppState {
	out := &AppState{
		Resources:   make([]Resource, len(s.Resources)),
		DailyPlan:   make([]DailyTask, len(s.DailyPlan)),
		ReviewQueue: make(ReviewQueue, len(s.ReviewQueue)),
		StudyStage:  s.StudyStage,
	}
	for i, r := range s.Resources {
		r.Modules = append([]Module(nil), r.Modules...)
		out.Resources[i] = r
	}
	copy(out.DailyPlan, s.DailyPlan)
	copy(out.ReviewQueue, s.ReviewQueue)
	return out
}

// FindResource returns the resource with the given id, or nil.
func (s *AppState) FindResource(id string) *Resource {
	for i := range s.Resources {
		if s.Resources[i].ID == id {
			return &s.Resources[i]
		}
	}
	return nil
}

// FindModule resolves a resource/module pair. Both are nil on any miss.
func (s *AppState) FindModule(resourceID, moduleID string) (*Resource, *Module) {
	res := s.FindResource(resourceID)
	if res == nil {
		return nil, nil
	}
	mod := res.FindModule(moduleID)
	if mod == nil {
		return nil, nil
	}
	return res, mod
}

// ResourceNamed returns the first resource whose name contains fragment.
func (s *AppState) ResourceNamed(fragment string) *Resource {
	return ResourceNamed(s.Resources, fragment)
}

// ResourceNamed returns the first resource in list order whose name
// contains fragment, or nil.
func ResourceNamed(resources []Resource, fragment string) *Resource {
	if fragment == "" {
		return nil
	}
	for i := range resources {
		if strings.Contains(resources[i].Name, fragment) {
			return &resources[i]
		}
	}
	return nil
}

// FindTask returns the task with the given id, or nil.
func (s *AppState) FindTask(id string) *DailyTask {
	for i := range s.DailyPlan {
		if s.DailyPlan[i].ID == id {
			return &s.DailyPlan[i]
		}
	}
	return nil
}

// PendingCount returns the number of tasks not yet completed.
func (s *AppState) PendingCount() int {
	n := 0
	for _, t := range s.DailyPlan {
		if !t.IsCompleted {
			n++
		}
	}
	return n
}

// Progress aggregates completion across every module.
type Progress struct {
	Completed int
	Total     int
}

// Pct returns completion as a percentage in [0,100].
func (p Progress) Pct() float64 {
	if p.Total <= 0 {
		return 0
	}
	return float64(p.Completed) / float64(p.Total) * 100
}

// Progress sums completed and total items over all resources.
func (s *AppState) Progress() Progress {
	var p Progress
	for i := range s.Resources {
		c, t := s.Resources[i].Totals()
		p.Completed += c
		p.Total += t
	}
	return p
}
