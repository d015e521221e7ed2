package domain

import "strings"

// AddResource appends a resource. Ids must be unique among resources.
func (s *AppState) AddResource(r Resource) error {
	if strings.TrimSpace(r.ID) == "" {
		return invalid("resource id is required")
	}
	if s.FindResource(r.ID) != nil {
		return invalid("resource %q already exists", r.ID)
	}
	r.Modules = append([]Module{}, r.Modules...)
	for i := range r.Modules {
		r.Modules[i].clamp()
	}
	s.Resources = append(s.Resources, r)
	return nil
}

// RenameResource changes a resource's display name. Tasks and review items
// keep the old name snapshot.
func (s *AppState) RenameResource(id, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return invalid("resource name must not be empty")
	}
	if r := s.FindResource(id); r != nil {
		r.Name = name
	}
	return nil
}

// DeleteResource removes a resource, its modules, and every daily task that
// points at it. Review items keep their snapshot and are skipped by the
// planner once their module is gone.
func (s *AppState) DeleteResource(id string) bool {
	idx := -1
	for i := range s.Resources {
		if s.Resources[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}
	s.Resources = append(s.Resources[:idx], s.Resources[idx+1:]...)
	s.DailyPlan = filterTasks(s.DailyPlan, func(t DailyTask) bool { return t.ResourceID != id })
	return true
}

// AddModule appends a module to a resource.
func (s *AppState) AddModule(resourceID string, m Module) error {
	if strings.TrimSpace(m.Name) == "" {
		return invalid("module name must not be empty")
	}
	if m.TotalItems <= 0 {
		return invalid("module total must be positive, got %d", m.TotalItems)
	}
	if m.Kind == "" {
		m.Kind = UnitQuestions
	}
	if !ValidUnitKinds[m.Kind] {
		return invalid("unknown unit kind %q", m.Kind)
	}
	r := s.FindResource(resourceID)
	if r == nil {
		return nil
	}
	m.clamp()
	r.Modules = append(r.Modules, m)
	return nil
}

// DeleteModule removes a module and every daily task that points at it.
func (s *AppState) DeleteModule(resourceID, moduleID string) bool {
	r := s.FindResource(resourceID)
	if r == nil {
		return false
	}
	for i := range r.Modules {
		if r.Modules[i].ID != moduleID {
			continue
		}
		r.Modules = append(r.Modules[:i], r.Modules[i+1:]...)
		s.DailyPlan = filterTasks(s.DailyPlan, func(t DailyTask) bool { return t.ModuleID != moduleID })
		return true
	}
	return false
}

// SetModuleTotal is the admin edit of a module's capacity. The completed
// count is clamped to the new total.
func (s *AppState) SetModuleTotal(resourceID, moduleID string, total int) error {
	if total < 0 {
		return invalid("module total must not be negative, got %d", total)
	}
	_, mod := s.FindModule(resourceID, moduleID)
	if mod == nil {
		return nil
	}
	mod.TotalItems = total
	mod.clamp()
	return nil
}

// SetStage switches the planner policy. Any stage may follow any other.
func (s *AppState) SetStage(stage StudyStage) error {
	if !stage.Valid() {
		return invalid("unknown study stage %q", stage)
	}
	s.StudyStage = stage
	return nil
}

func filterTasks(tasks []DailyTask, keep func(DailyTask) bool) []DailyTask {
	out := make([]DailyTask, 0, len(tasks))
	for _, t := range tasks {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}
