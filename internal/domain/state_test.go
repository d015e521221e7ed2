package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

func testState() *AppState {
	return &AppState{
		Resources: []Resource{{
			ID:   "r1",
			Name: "Primary",
			Modules: []Module{
				{ID: "m1", Name: "Mod One", Kind: UnitQuestions, TotalItems: 100, CompletedItems: 10},
				{ID: "m2", Name: "Mod Two", Kind: UnitSections, TotalItems: 5},
			},
		}},
		DailyPlan:   []DailyTask{},
		ReviewQueue: ReviewQueue{},
		StudyStage:  StageFoundation,
	}
}

func addTask(t *testing.T, s *AppState, id, modID string, amount int) *DailyTask {
	t.Helper()
	task, err := s.AddTaskToPlan(id, "r1", modID, amount, testNow)
	require.NoError(t, err)
	require.NotNil(t, task)
	return task
}

func TestNewAppState_SeedsResources(t *testing.T) {
	s := NewAppState()
	require.Len(t, s.Resources, 3)
	assert.Equal(t, StageFoundation, s.StudyStage)
	assert.Empty(t, s.DailyPlan)
	assert.Empty(t, s.ReviewQueue)

	primary := s.ResourceNamed("一起考")
	require.NotNil(t, primary)
	assert.Equal(t, 2360, primary.Modules[0].TotalItems)
	assert.True(t, primary.IsSystem)

	// seed copies must not share backing arrays
	s.Resources[0].Modules[0].CompletedItems = 50
	assert.Zero(t, SeedResources()[0].Modules[0].CompletedItems)
}

func TestClone_IsDeep(t *testing.T) {
	s := testState()
	addTask(t, s, "t1", "m1", 5)
	c := s.Clone()

	c.Resources[0].Modules[0].CompletedItems = 99
	c.DailyPlan[0].TargetAmount = 42
	c.ReviewQueue.Enqueue(ReviewItem{ID: "x"})

	assert.Equal(t, 10, s.Resources[0].Modules[0].CompletedItems)
	assert.Equal(t, 5, s.DailyPlan[0].TargetAmount)
	assert.Empty(t, s.ReviewQueue)
}

func TestApplyDelta_Clamps(t *testing.T) {
	cases := []struct {
		name  string
		delta int
		want  int
	}{
		{"forward", 15, 25},
		{"backward", -4, 6},
		{"overshoot", 500, 100},
		{"undershoot", -500, 0},
		{"zero", 0, 10},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := testState()
			s.ApplyDelta("r1", "m1", tc.delta)
			assert.Equal(t, tc.want, s.Resources[0].Modules[0].CompletedItems)
		})
	}
}

func TestApplyDelta_UnknownModuleIsNoop(t *testing.T) {
	s := testState()
	s.ApplyDelta("r1", "missing", 5)
	s.ApplyDelta("missing", "m1", 5)
	assert.Equal(t, 10, s.Resources[0].Modules[0].CompletedItems)
}

func TestApplyDelta_StaysInRange(t *testing.T) {
	s := testState()
	for _, d := range []int{7, -30, 200, 3, -1, -99, 64, 0, 12} {
		s.ApplyDelta("r1", "m1", d)
		got := s.Resources[0].Modules[0].CompletedItems
		assert.GreaterOrEqual(t, got, 0)
		assert.LessOrEqual(t, got, 100)
	}
}

func TestProgress(t *testing.T) {
	s := testState()
	p := s.Progress()
	assert.Equal(t, 10, p.Completed)
	assert.Equal(t, 105, p.Total)
	assert.InDelta(t, 9.52, p.Pct(), 0.01)
	assert.Zero(t, Progress{}.Pct())
}

func TestResourceNamed_FirstMatchWins(t *testing.T) {
	rs := []Resource{{ID: "a", Name: "粉筆 App"}, {ID: "b", Name: "粉筆 Extra"}}
	got := ResourceNamed(rs, "粉筆")
	require.NotNil(t, got)
	assert.Equal(t, "a", got.ID)
	assert.Nil(t, ResourceNamed(rs, "nope"))
	assert.Nil(t, ResourceNamed(rs, ""))
}

func TestAppState_JSONFieldNames(t *testing.T) {
	raw := `{
		"resources":[{"id":"r1","name":"R","modules":[{"id":"m1","name":"M","type":"Questions","totalItems":10,"completedItems":2}]}],
		"dailyPlan":[{"id":"t1","resourceId":"r1","moduleId":"m1","targetAmount":3,"completedAmount":0,"isCompleted":false,"date":"2025-06-15T10:00:00Z","tag":"回鍋 R","notes":"n"}],
		"reviewQueue":[{"id":"q1","resourceId":"r1","moduleId":"m1","wrongCount":2,"createdAt":"2025-06-15T10:00:00Z"}],
		"studyStage":"Sprint"
	}`
	var s AppState
	require.NoError(t, json.Unmarshal([]byte(raw), &s))
	assert.Equal(t, UnitQuestions, s.Resources[0].Modules[0].Kind)
	assert.Equal(t, TagReviewR, s.DailyPlan[0].Tag)
	assert.Equal(t, "n", s.DailyPlan[0].Note)
	assert.Equal(t, testNow, s.DailyPlan[0].CreatedAt)
	assert.Equal(t, 2, s.ReviewQueue[0].WrongCount)
	assert.Equal(t, StageSprint, s.StudyStage)
}
