package intelligence

import "github.com/alexanderramin/studysync/internal/domain"

// ResourceTemplate is a drafted resource before it gets ids and colors.
type ResourceTemplate struct {
	Name        string           `json:"name" validate:"required"`
	Description string           `json:"description"`
	Modules     []ModuleTemplate `json:"modules" validate:"required,min=1,dive"`
}

// ModuleTemplate is one drafted module.
type ModuleTemplate struct {
	Name       string          `json:"name" validate:"required"`
	Kind       domain.UnitKind `json:"type" validate:"unitkind"`
	TotalItems int             `json:"totalItems" validate:"gt=0,lte=100000"`
}

// TotalItems sums the item counts across the drafted modules.
func (t *ResourceTemplate) TotalItems() int {
	n := 0
	for _, m := range t.Modules {
		n += m.TotalItems
	}
	return n
}

// TipRequest describes the knowledge point a tip is wanted for.
type TipRequest struct {
	Topic        string
	ResourceName string
	ModuleName   string
	Stage        domain.StudyStage
}

// draftPayload is the shape the model is asked to return. Kind stays a
// plain string so legacy names can be normalized before validation.
type draftPayload struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Modules     []struct {
		Name       string `json:"name"`
		Kind       string `json:"type"`
		TotalItems int    `json:"totalItems"`
	} `json:"modules"`
}
