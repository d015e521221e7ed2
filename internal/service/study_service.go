package service

import (
	"context"

	"github.com/alexanderramin/studysync/internal/domain"
	"github.com/alexanderramin/studysync/internal/planner"
	"github.com/alexanderramin/studysync/internal/repository"
)

type studyService struct {
	store     *Store
	generator *planner.Generator
	runs      repository.PlanRunRepo
	tips      *TipTracker
}

// NewStudyService wires the daily-loop use cases. tips may be nil when tip
// generation is not configured.
func NewStudyService(store *Store, generator *planner.Generator, runs repository.PlanRunRepo, tips *TipTracker) StudyService {
	return &studyService{store: store, generator: generator, runs: runs, tips: tips}
}

func (s *studyService) State() *domain.AppState {
	return s.store.Snapshot()
}

func (s *studyService) GeneratePlan(ctx context.Context) (planner.Plan, error) {
	cmd := &GeneratePlan{Generator: s.generator}
	if err := s.store.Dispatch(ctx, cmd); err != nil {
		return planner.Plan{}, err
	}
	return cmd.Plan, nil
}

func (s *studyService) AddTask(ctx context.Context, resourceID, moduleID string, amount int) (*domain.DailyTask, error) {
	cmd := &AddTask{ResourceID: resourceID, ModuleID: moduleID, Amount: amount}
	if err := s.store.Dispatch(ctx, cmd); err != nil {
		return nil, err
	}
	return cmd.Task, nil
}

func (s *studyService) ClickTask(ctx context.Context, taskID string) (domain.ClickOutcome, error) {
	cmd := &ClickTask{TaskID: taskID}
	if err := s.store.Dispatch(ctx, cmd); err != nil {
		return domain.ClickNotFound, err
	}
	return cmd.Outcome, nil
}

func (s *studyService) ToggleTask(ctx context.Context, taskID string) (bool, error) {
	cmd := &ToggleTask{TaskID: taskID}
	err := s.store.Dispatch(ctx, cmd)
	return cmd.Found, err
}

func (s *studyService) SettleTask(ctx context.Context, taskID string, in domain.Settlement) (*domain.ReviewItem, error) {
	cmd := &SettleTask{TaskID: taskID, Settlement: in}
	if err := s.store.Dispatch(ctx, cmd); err != nil {
		return nil, err
	}
	return cmd.Review, nil
}

func (s *studyService) EditTask(ctx context.Context, taskID string, target, completed int) error {
	return s.store.Dispatch(ctx, &EditTask{TaskID: taskID, Target: target, Completed: completed})
}

// DeleteTask removes the task and cancels any tip still being generated
// for it.
func (s *studyService) DeleteTask(ctx context.Context, taskID string) (bool, error) {
	cmd := &DeleteTask{TaskID: taskID}
	if err := s.store.Dispatch(ctx, cmd); err != nil {
		return false, err
	}
	if cmd.Deleted && s.tips != nil {
		s.tips.Invalidate(taskID)
	}
	return cmd.Deleted, nil
}

func (s *studyService) SetStage(ctx context.Context, stage domain.StudyStage) error {
	return s.store.Dispatch(ctx, &SetStage{Stage: stage})
}

func (s *studyService) PlanHistory(ctx context.Context, limit int) ([]*domain.PlanRun, error) {
	return s.runs.ListRecent(ctx, limit)
}
