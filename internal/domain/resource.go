package domain

import "strings"

// Module is a countable sub-unit of a Resource.
type Module struct {
	ID             string   `json:"id" validate:"required"`
	Name           string   `json:"name"`
	Kind           UnitKind `json:"type" validate:"omitempty,unitkind"`
	TotalItems     int      `json:"totalItems" validate:"gte=0"`
	CompletedItems int      `json:"completedItems" validate:"gte=0,ltefield=TotalItems"`
	Color          string   `json:"color,omitempty"`
}

// IsComplete reports whether every item of the module is done. A module
// with no items counts as complete.
func (m *Module) IsComplete() bool {
	return m.CompletedItems >= m.TotalItems
}

// Remaining returns how many items are left.
func (m *Module) Remaining() int {
	if m.CompletedItems >= m.TotalItems {
		return 0
	}
	return m.TotalItems - m.CompletedItems
}

// Fraction returns completion in [0,1].
func (m *Module) Fraction() float64 {
	if m.TotalItems <= 0 {
		return 0
	}
	return float64(m.CompletedItems) / float64(m.TotalItems)
}

func (m *Module) clamp() {
	m.CompletedItems = clampInt(m.CompletedItems, 0, m.TotalItems)
}

// Resource is a learning source such as an app or a book.
type Resource struct {
	ID          string   `json:"id" validate:"required"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	IsSystem    bool     `json:"isSystem,omitempty"`
	Modules     []Module `json:"modules" validate:"unique=ID,dive"`
}

// FindModule returns the module with the given id, or nil.
func (r *Resource) FindModule(id string) *Module {
	for i := range r.Modules {
		if r.Modules[i].ID == id {
			return &r.Modules[i]
		}
	}
	return nil
}

// FirstIncomplete returns the first module in list order that still has
// items left, or nil.
func (r *Resource) FirstIncomplete() *Module {
	for i := range r.Modules {
		if !r.Modules[i].IsComplete() {
			return &r.Modules[i]
		}
	}
	return nil
}

// CompletedModules returns the fully completed modules in list order.
func (r *Resource) CompletedModules() []*Module {
	var out []*Module
	for i := range r.Modules {
		if r.Modules[i].IsComplete() {
			out = append(out, &r.Modules[i])
		}
	}
	return out
}

// ModuleMatching returns the first module whose name contains any of the
// keywords, or nil.
func (r *Resource) ModuleMatching(keywords ...string) *Module {
	for i := range r.Modules {
		for _, k := range keywords {
			if k != "" && strings.Contains(r.Modules[i].Name, k) {
				return &r.Modules[i]
			}
		}
	}
	return nil
}

// Totals returns completed and total item counts across the modules.
func (r *Resource) Totals() (completed, total int) {
	for _, m := range r.Modules {
		completed += m.CompletedItems
		total += m.TotalItems
	}
	return completed, total
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
