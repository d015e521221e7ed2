package service

import (
	"github.com/alexanderramin/studysync/internal/domain"
	"github.com/alexanderramin/studysync/internal/planner"
)

// Commands carry their inputs as fields and, where useful, expose what
// they did through output fields read after Dispatch returns.

type GeneratePlan struct {
	Generator *planner.Generator

	Plan planner.Plan
}

func (*GeneratePlan) Name() string { return "plan.generate" }

func (c *GeneratePlan) Apply(m *Mutation) error {
	plan, err := c.Generator.Generate(planner.Input{
		Resources: m.State.Resources,
		Queue:     m.State.ReviewQueue,
		Stage:     m.State.StudyStage,
		Now:       m.Now,
	})
	if err != nil {
		return err
	}
	m.State.CommitPlan(plan.Tasks, plan.ConsumedReviewIDs)
	m.Journal(domain.PlanRun{
		ID:          m.NewID(),
		Stage:       plan.Stage,
		TaskCount:   len(plan.Tasks),
		ReviewCount: plan.ReviewCount(),
		Summary:     plan.Summary,
		ConsumedIDs: plan.ConsumedReviewIDs,
		CreatedAt:   m.Now,
	})
	c.Plan = plan
	return nil
}

type AddTask struct {
	ResourceID string
	ModuleID   string
	Amount     int

	Task *domain.DailyTask
}

func (*AddTask) Name() string { return "task.add" }

func (c *AddTask) Apply(m *Mutation) error {
	task, err := m.State.AddTaskToPlan(m.NewID(), c.ResourceID, c.ModuleID, c.Amount, m.Now)
	if err != nil {
		return err
	}
	if task == nil {
		m.Unchanged()
		return nil
	}
	cp := *task
	c.Task = &cp
	return nil
}

type ToggleTask struct {
	TaskID string

	Found bool
}

func (*ToggleTask) Name() string { return "task.toggle" }

func (c *ToggleTask) Apply(m *Mutation) error {
	c.Found = m.State.ToggleTask(c.TaskID)
	if !c.Found {
		m.Unchanged()
	}
	return nil
}

type ClickTask struct {
	TaskID string

	Outcome domain.ClickOutcome
}

func (*ClickTask) Name() string { return "task.click" }

func (c *ClickTask) Apply(m *Mutation) error {
	c.Outcome = m.State.ClickTask(c.TaskID)
	if c.Outcome != domain.ClickUncompleted {
		m.Unchanged()
	}
	return nil
}

type SettleTask struct {
	TaskID     string
	Settlement domain.Settlement

	Review *domain.ReviewItem
}

func (*SettleTask) Name() string { return "task.settle" }

func (c *SettleTask) Apply(m *Mutation) error {
	task := m.State.FindTask(c.TaskID)
	if task == nil || task.IsCompleted {
		m.Unchanged()
	}
	item, err := m.State.SettleTask(c.TaskID, c.Settlement, m.NewID(), m.Now)
	if err != nil {
		return err
	}
	c.Review = item
	return nil
}

type EditTask struct {
	TaskID    string
	Target    int
	Completed int
}

func (*EditTask) Name() string { return "task.edit" }

func (c *EditTask) Apply(m *Mutation) error {
	if m.State.FindTask(c.TaskID) == nil {
		m.Unchanged()
	}
	return m.State.EditTaskAmounts(c.TaskID, c.Target, c.Completed)
}

type DeleteTask struct {
	TaskID string

	Deleted bool
}

func (*DeleteTask) Name() string { return "task.delete" }

func (c *DeleteTask) Apply(m *Mutation) error {
	c.Deleted = m.State.DeleteTask(c.TaskID)
	if !c.Deleted {
		m.Unchanged()
	}
	return nil
}

type MarkTipLoading struct {
	TaskID string

	Task *domain.DailyTask
}

func (*MarkTipLoading) Name() string { return "tip.loading" }

func (c *MarkTipLoading) Apply(m *Mutation) error {
	if !m.State.SetTipLoading(c.TaskID) {
		m.Unchanged()
		return nil
	}
	cp := *m.State.FindTask(c.TaskID)
	c.Task = &cp
	return nil
}

type WriteTip struct {
	TaskID string
	Tip    string

	Written bool
}

func (*WriteTip) Name() string { return "tip.write" }

func (c *WriteTip) Apply(m *Mutation) error {
	c.Written = m.State.WriteTip(c.TaskID, c.Tip)
	if !c.Written {
		m.Unchanged()
	}
	return nil
}

type StopTipLoading struct {
	TaskID string
}

func (*StopTipLoading) Name() string { return "tip.stop" }

func (c *StopTipLoading) Apply(m *Mutation) error {
	if !m.State.StopTipLoading(c.TaskID) {
		m.Unchanged()
	}
	return nil
}

type SetStage struct {
	Stage domain.StudyStage
}

func (*SetStage) Name() string { return "stage.set" }

func (c *SetStage) Apply(m *Mutation) error {
	return m.State.SetStage(c.Stage)
}

type AddResource struct {
	Resource domain.Resource
}

func (*AddResource) Name() string { return "resource.add" }

func (c *AddResource) Apply(m *Mutation) error {
	if c.Resource.ID == "" {
		c.Resource.ID = m.NewID()
	}
	for i := range c.Resource.Modules {
		mod := &c.Resource.Modules[i]
		if mod.ID == "" {
			mod.ID = m.NewID()
		}
		if mod.Color == "" {
			mod.Color = pastel(m)
		}
	}
	return m.State.AddResource(c.Resource)
}

type RenameResource struct {
	ResourceID string
	NewName    string
}

func (*RenameResource) Name() string { return "resource.rename" }

func (c *RenameResource) Apply(m *Mutation) error {
	if m.State.FindResource(c.ResourceID) == nil {
		m.Unchanged()
	}
	return m.State.RenameResource(c.ResourceID, c.NewName)
}

type DeleteResource struct {
	ResourceID string

	Deleted bool
}

func (*DeleteResource) Name() string { return "resource.delete" }

func (c *DeleteResource) Apply(m *Mutation) error {
	c.Deleted = m.State.DeleteResource(c.ResourceID)
	if !c.Deleted {
		m.Unchanged()
	}
	return nil
}

type AddModule struct {
	ResourceID string
	Module     domain.Module
}

func (*AddModule) Name() string { return "module.add" }

func (c *AddModule) Apply(m *Mutation) error {
	if m.State.FindResource(c.ResourceID) == nil {
		m.Unchanged()
		return nil
	}
	if c.Module.ID == "" {
		c.Module.ID = m.NewID()
	}
	if c.Module.Color == "" {
		c.Module.Color = pastel(m)
	}
	return m.State.AddModule(c.ResourceID, c.Module)
}

type DeleteModule struct {
	ResourceID string
	ModuleID   string

	Deleted bool
}

func (*DeleteModule) Name() string { return "module.delete" }

func (c *DeleteModule) Apply(m *Mutation) error {
	c.Deleted = m.State.DeleteModule(c.ResourceID, c.ModuleID)
	if !c.Deleted {
		m.Unchanged()
	}
	return nil
}

type SetModuleTotal struct {
	ResourceID string
	ModuleID   string
	Total      int
}

func (*SetModuleTotal) Name() string { return "module.set_total" }

func (c *SetModuleTotal) Apply(m *Mutation) error {
	if _, mod := m.State.FindModule(c.ResourceID, c.ModuleID); mod == nil {
		m.Unchanged()
	}
	return m.State.SetModuleTotal(c.ResourceID, c.ModuleID, c.Total)
}

// ReplaceState swaps in an imported state wholesale.
type ReplaceState struct {
	State *domain.AppState
}

func (*ReplaceState) Name() string { return "data.import" }

func (c *ReplaceState) Apply(m *Mutation) error {
	m.State = c.State.Clone()
	m.State.ClearTipLoading()
	return nil
}

type ResetAll struct{}

func (ResetAll) Name() string { return "data.reset" }

func (ResetAll) Apply(m *Mutation) error {
	m.Reset()
	return nil
}

func pastel(m *Mutation) string {
	return domain.PastelColors[m.Rand.IntN(len(domain.PastelColors))]
}
