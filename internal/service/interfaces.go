package service

import (
	"context"

	"github.com/alexanderramin/studysync/internal/domain"
	"github.com/alexanderramin/studysync/internal/importer"
	"github.com/alexanderramin/studysync/internal/intelligence"
	"github.com/alexanderramin/studysync/internal/planner"
)

// StudyService covers the daily loop: plan, work, settle.
type StudyService interface {
	State() *domain.AppState
	GeneratePlan(ctx context.Context) (planner.Plan, error)
	AddTask(ctx context.Context, resourceID, moduleID string, amount int) (*domain.DailyTask, error)
	ClickTask(ctx context.Context, taskID string) (domain.ClickOutcome, error)
	ToggleTask(ctx context.Context, taskID string) (bool, error)
	SettleTask(ctx context.Context, taskID string, in domain.Settlement) (*domain.ReviewItem, error)
	EditTask(ctx context.Context, taskID string, target, completed int) error
	DeleteTask(ctx context.Context, taskID string) (bool, error)
	SetStage(ctx context.Context, stage domain.StudyStage) error
	PlanHistory(ctx context.Context, limit int) ([]*domain.PlanRun, error)
}

// CatalogService administers resources and modules.
type CatalogService interface {
	AddManualResource(ctx context.Context, name string) (*domain.Resource, error)
	AddFromTemplate(ctx context.Context, tpl *intelligence.ResourceTemplate) (*domain.Resource, error)
	RenameResource(ctx context.Context, resourceID, name string) error
	DeleteResource(ctx context.Context, resourceID string) (bool, error)
	AddModule(ctx context.Context, resourceID string, m domain.Module) (*domain.Module, error)
	DeleteModule(ctx context.Context, resourceID, moduleID string) (bool, error)
	SetModuleTotal(ctx context.Context, resourceID, moduleID string, total int) error
}

// TransferService moves the whole state in and out.
type TransferService interface {
	Export(ctx context.Context) ([]byte, error)
	Preview(raw []byte) (*domain.AppState, importer.Preview, error)
	Import(ctx context.Context, state *domain.AppState) error
	Reset(ctx context.Context) error
}

// TipGenerator produces a knowledge tip, or "" when it cannot.
type TipGenerator interface {
	Tip(ctx context.Context, req intelligence.TipRequest) string
}
