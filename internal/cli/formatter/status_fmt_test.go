package formatter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/alexanderramin/studysync/internal/domain"
	"github.com/alexanderramin/studysync/internal/importer"
	"github.com/alexanderramin/studysync/internal/intelligence"
	"github.com/alexanderramin/studysync/internal/planner"
)

func sampleState() *domain.AppState {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	return &domain.AppState{
		Resources: []domain.Resource{{
			ID:   "res-aaaaaaaa",
			Name: "Math App",
			Modules: []domain.Module{
				{ID: "mod-algebra", Name: "Algebra", Kind: domain.UnitQuestions, TotalItems: 100, CompletedItems: 40},
				{ID: "mod-geometr", Name: "Geometry", Kind: domain.UnitQuestions, TotalItems: 50, CompletedItems: 50},
			},
		}},
		DailyPlan: []domain.DailyTask{
			{ID: "task-1111", ResourceName: "Math App", ModuleName: "Algebra", TargetAmount: 20, Tag: domain.TagCoreA, CreatedAt: now},
			{ID: "task-2222", ResourceName: "Math App", ModuleName: "Geometry", TargetAmount: 10, CompletedAmount: 10, IsCompleted: true, Tag: domain.TagReviewR, SourceKnowledgePoint: "similar triangles", CreatedAt: now},
		},
		ReviewQueue: domain.ReviewQueue{
			{ID: "rev-1", ResourceName: "Math App", ModuleName: "Algebra", WrongCount: 3, KnowledgePoint: "factoring", CreatedAt: now.Add(-2 * time.Hour)},
		},
		StudyStage: domain.StageReview,
	}
}

func TestFormatStatus(t *testing.T) {
	out := stripANSI(FormatStatus(sampleState()))

	assert.Contains(t, out, "STUDYSYNC")
	assert.Contains(t, out, "90 of 150 items done")
	assert.Contains(t, out, "STRENGTHEN")
	assert.Contains(t, out, "2 tasks, 1 pending")
	assert.Contains(t, out, "1 item waiting")
	assert.Contains(t, out, "Math App")
	assert.Contains(t, out, "90/150")
	assert.Contains(t, out, "1/2")
}

func TestFormatStatusEmpty(t *testing.T) {
	out := stripANSI(FormatStatus(&domain.AppState{StudyStage: domain.StageFoundation}))
	assert.Contains(t, out, "0 of 0 items done")
	assert.Contains(t, out, "all done")
	assert.Contains(t, out, "queue empty")
}

func TestRenderResourceTree(t *testing.T) {
	state := sampleState()
	state.Resources[0].Description = "daily drills"

	out := stripANSI(RenderResourceTree(state.Resources))
	assert.Contains(t, out, "res-aaaa")
	assert.Contains(t, out, "Algebra")
	assert.Contains(t, out, "40/100 題")
	assert.Contains(t, out, "✔")
	assert.Contains(t, out, "daily drills")

	assert.Contains(t, stripANSI(RenderResourceTree(nil)), "No resources yet")
}

func TestFormatPlan(t *testing.T) {
	out := stripANSI(FormatPlan(sampleState().DailyPlan))
	assert.Contains(t, out, "TODAY'S PLAN")
	assert.Contains(t, out, "核心 A")
	assert.Contains(t, out, "回鍋 R")
	assert.Contains(t, out, "similar triangles")
	assert.Contains(t, out, "0/20")
	assert.Contains(t, out, "1/2 done")

	assert.Contains(t, stripANSI(FormatPlan(nil)), "No tasks for today")
}

func TestFormatPlanMarksTips(t *testing.T) {
	tasks := sampleState().DailyPlan
	tasks[0].AITip = "remember FOIL"
	tasks[1].AILoading = true
	out := stripANSI(FormatPlan(tasks))
	assert.Contains(t, out, "★tip")
	assert.Contains(t, out, "…tip")
}

func TestFormatGenerated(t *testing.T) {
	state := sampleState()
	p := planner.Plan{
		Stage:             domain.StageReview,
		Tasks:             state.DailyPlan,
		ConsumedReviewIDs: []string{"rev-1"},
		Summary:           "Strengthen plan ready",
	}
	out := stripANSI(FormatGenerated(p))
	assert.Contains(t, out, "Strengthen plan ready")
	assert.Contains(t, out, "2 new tasks")
	assert.Contains(t, out, "1 from the review queue")
	assert.Contains(t, out, "×20")

	assert.Contains(t, stripANSI(FormatGenerated(planner.Plan{})), "Nothing to plan")
}

func TestFormatHistory(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	runs := []*domain.PlanRun{
		{ID: "r1", Stage: domain.StageSprint, TaskCount: 4, ReviewCount: 2, Summary: "sprint", CreatedAt: now.Add(-time.Hour)},
	}
	out := stripANSI(FormatHistory(runs, now))
	assert.Contains(t, out, "1h ago")
	assert.Contains(t, out, "SPRINT")
	assert.Contains(t, out, "sprint")

	assert.Contains(t, stripANSI(FormatHistory(nil, now)), "No plans generated yet")
}

func TestFormatReviewQueue(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	state := sampleState()
	out := stripANSI(FormatReviewQueue(state.ReviewQueue, now))
	assert.Contains(t, out, "REVIEW QUEUE (1)")
	assert.Contains(t, out, "factoring")
	assert.Contains(t, out, "3h ago")

	assert.Contains(t, stripANSI(FormatReviewQueue(nil, now)), "empty")
}

func TestFormatQueued(t *testing.T) {
	assert.Empty(t, FormatQueued(nil))
	out := stripANSI(FormatQueued(&domain.ReviewItem{ResourceName: "Math App", ModuleName: "Algebra", WrongCount: 2, KnowledgePoint: "signs"}))
	assert.Contains(t, out, "Math App · Algebra (2 wrong)")
	assert.Contains(t, out, "signs")
}

func TestFormatPreview(t *testing.T) {
	out := stripANSI(FormatPreview(importer.Summarize(sampleState())))
	assert.Contains(t, out, "IMPORT PREVIEW")
	assert.Contains(t, out, "1 (2 modules)")
	assert.Contains(t, out, "90 items")
	assert.Contains(t, out, "STRENGTHEN")
}

func TestFormatTip(t *testing.T) {
	task := sampleState().DailyPlan[1]
	assert.Contains(t, stripANSI(FormatTip(&task)), "No tip yet")

	task.AILoading = true
	assert.Contains(t, stripANSI(FormatTip(&task)), "still being generated")

	task.AILoading = false
	task.AITip = "【核心概念】AA similarity"
	out := stripANSI(FormatTip(&task))
	assert.Contains(t, out, "similar triangles")
	assert.Contains(t, out, "【核心概念】AA similarity")
}

func TestFormatDraft(t *testing.T) {
	tpl := &intelligence.ResourceTemplate{
		Name:        "Biology",
		Description: "cells and genes",
		Modules: []intelligence.ModuleTemplate{
			{Name: "Cells", Kind: domain.UnitSections, TotalItems: 12},
			{Name: "Quiz", Kind: domain.UnitQuestions, TotalItems: 200},
		},
	}
	out := stripANSI(FormatDraft(tpl))
	assert.Contains(t, out, "Biology")
	assert.Contains(t, out, "cells and genes")
	assert.Contains(t, out, "12 節")
	assert.Contains(t, out, "200 題")
	assert.Contains(t, out, "2 modules, 212 items in total")
}
