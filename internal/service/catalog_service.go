package service

import (
	"context"
	"strings"

	"github.com/alexanderramin/studysync/internal/domain"
	"github.com/alexanderramin/studysync/internal/intelligence"
)

// Defaults for a resource added by hand.
const (
	DefaultResourceName = "新資源"
	DefaultModuleName   = "通用單元"
	DefaultModuleTotal  = 100
)

type catalogService struct {
	store *Store
}

func NewCatalogService(store *Store) CatalogService {
	return &catalogService{store: store}
}

// AddManualResource creates a resource with one general-purpose module.
func (s *catalogService) AddManualResource(ctx context.Context, name string) (*domain.Resource, error) {
	res := domain.Resource{
		Name: domain.CoalesceStr(strings.TrimSpace(name), DefaultResourceName),
		Modules: []domain.Module{{
			Name:       DefaultModuleName,
			Kind:       domain.UnitQuestions,
			TotalItems: DefaultModuleTotal,
		}},
	}
	return s.add(ctx, res)
}

// AddFromTemplate creates a resource from a drafted template.
func (s *catalogService) AddFromTemplate(ctx context.Context, tpl *intelligence.ResourceTemplate) (*domain.Resource, error) {
	res := domain.Resource{
		Name:        domain.CoalesceStr(strings.TrimSpace(tpl.Name), DefaultResourceName),
		Description: tpl.Description,
		Modules:     make([]domain.Module, 0, len(tpl.Modules)),
	}
	for _, m := range tpl.Modules {
		res.Modules = append(res.Modules, domain.Module{
			Name:       m.Name,
			Kind:       m.Kind,
			TotalItems: m.TotalItems,
		})
	}
	return s.add(ctx, res)
}

func (s *catalogService) add(ctx context.Context, res domain.Resource) (*domain.Resource, error) {
	cmd := &AddResource{Resource: res}
	if err := s.store.Dispatch(ctx, cmd); err != nil {
		return nil, err
	}
	return &cmd.Resource, nil
}

func (s *catalogService) RenameResource(ctx context.Context, resourceID, name string) error {
	return s.store.Dispatch(ctx, &RenameResource{ResourceID: resourceID, NewName: name})
}

func (s *catalogService) DeleteResource(ctx context.Context, resourceID string) (bool, error) {
	cmd := &DeleteResource{ResourceID: resourceID}
	err := s.store.Dispatch(ctx, cmd)
	return cmd.Deleted, err
}

func (s *catalogService) AddModule(ctx context.Context, resourceID string, m domain.Module) (*domain.Module, error) {
	cmd := &AddModule{ResourceID: resourceID, Module: m}
	if err := s.store.Dispatch(ctx, cmd); err != nil {
		return nil, err
	}
	if cmd.Module.ID == "" {
		return nil, nil
	}
	return &cmd.Module, nil
}

func (s *catalogService) DeleteModule(ctx context.Context, resourceID, moduleID string) (bool, error) {
	cmd := &DeleteModule{ResourceID: resourceID, ModuleID: moduleID}
	err := s.store.Dispatch(ctx, cmd)
	return cmd.Deleted, err
}

func (s *catalogService) SetModuleTotal(ctx context.Context, resourceID, moduleID string, total int) error {
	return s.store.Dispatch(ctx, &SetModuleTotal{ResourceID: resourceID, ModuleID: moduleID, Total: total})
}
