package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/studysync/internal/domain"
	"github.com/alexanderramin/studysync/internal/intelligence"
	"github.com/alexanderramin/studysync/internal/llm"
	"github.com/alexanderramin/studysync/internal/planner"
	"github.com/alexanderramin/studysync/internal/repository"
	"github.com/alexanderramin/studysync/internal/service"
	"github.com/alexanderramin/studysync/internal/testutil"
)

var fixedNow = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

// fakePrompter answers every prompt the same way and records titles.
type fakePrompter struct {
	answer     bool
	settlement domain.Settlement
	asked      []string
}

func (p *fakePrompter) Confirm(title, _ string) (bool, error) {
	p.asked = append(p.asked, title)
	return p.answer, nil
}

func (p *fakePrompter) Settle(task *domain.DailyTask) (domain.Settlement, error) {
	p.asked = append(p.asked, "settle "+task.ID)
	return p.settlement, nil
}

type fixedTips struct{ reply string }

func (f fixedTips) Tip(context.Context, intelligence.TipRequest) string { return f.reply }

type cannedLLM struct{ text string }

func (c cannedLLM) Generate(context.Context, llm.GenerateRequest) (*llm.GenerateResponse, error) {
	return &llm.GenerateResponse{Text: c.text}, nil
}
func (cannedLLM) Available(context.Context) bool { return true }
func (cannedLLM) Close() error { return nil }

type testEnv struct {
	app      *App
	store    *service.Store
	prompter *fakePrompter
}

// testApp wires a full App over an in-memory DB holding state.
func testApp(t *testing.T, state *domain.AppState) *testEnv {
	t.Helper()
	database := testutil.NewTestDB(t)
	store := service.NewStore(state, testutil.NewTestUoW(database),
		service.WithClock(func() time.Time { return fixedNow }),
		service.WithIDGenerator(testutil.SequentialIDs("id")),
		service.WithStoreRandom(planner.SeededRandom(7)),
	)
	gen := planner.NewGenerator(planner.DefaultRules(),
		planner.WithRandom(planner.SeededRandom(3)),
		planner.WithIDs(testutil.SequentialIDs("task")))
	tips := service.NewTipTracker(store, fixedTips{reply: "【核心概念】keep going"}, nil)
	t.Cleanup(tips.Wait)

	prompter := &fakePrompter{}
	app := &App{
		Study:         service.NewStudyService(store, gen, repository.NewSQLitePlanRunRepo(database), tips),
		Catalog:       service.NewCatalogService(store),
		Transfer:      service.NewTransferService(store, tips),
		Tips:          tips,
		Prompter:      prompter,
		In:            strings.NewReader(""),
		IsInteractive: func() bool { return false },
		Now:           func() time.Time { return fixedNow },
	}
	return &testEnv{app: app, store: store, prompter: prompter}
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	app.AssumeYes = false
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return stripANSI(buf.String()), err
}

func stateWithTask(t *testing.T) *domain.AppState {
	t.Helper()
	state := testutil.NewTestState()
	_, err := state.AddTaskToPlan("task-abc", "r-test", "m-a", 20, fixedNow)
	require.NoError(t, err)
	return state
}

// --- status / stage ---

func TestStatusCmd(t *testing.T) {
	env := testApp(t, stateWithTask(t))
	out, err := executeCmd(t, env.app, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Test Bank")
	assert.Contains(t, out, "1 tasks, 1 pending")
	assert.Contains(t, out, "FOUNDATION")
}

func TestStageSetAndShow(t *testing.T) {
	env := testApp(t, testutil.NewTestState())

	out, err := executeCmd(t, env.app, "stage", "set", "strengthen")
	require.NoError(t, err)
	assert.Contains(t, out, "STRENGTHEN")
	assert.Equal(t, domain.StageReview, env.app.Study.State().StudyStage)

	out, err = executeCmd(t, env.app, "stage", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "STRENGTHEN")
}

func TestStageSet_Invalid(t *testing.T) {
	env := testApp(t, testutil.NewTestState())
	_, err := executeCmd(t, env.app, "stage", "set", "cramming")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, domain.StageFoundation, env.app.Study.State().StudyStage)
}

// --- resources and modules ---

func TestResourceAddListRename(t *testing.T) {
	env := testApp(t, testutil.NewTestState())

	out, err := executeCmd(t, env.app, "resource", "add", "Physics")
	require.NoError(t, err)
	assert.Contains(t, out, "Added resource")

	state := env.app.Study.State()
	require.Len(t, state.Resources, 2)
	added := state.Resources[1]
	assert.Equal(t, "Physics", added.Name)
	require.Len(t, added.Modules, 1)
	assert.Equal(t, service.DefaultModuleTotal, added.Modules[0].TotalItems)

	_, err = executeCmd(t, env.app, "resource", "rename", added.ID, "Physics", "II")
	require.NoError(t, err)
	assert.Equal(t, "Physics II", env.app.Study.State().Resources[1].Name)

	out, err = executeCmd(t, env.app, "resource", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Physics II")
	assert.Contains(t, out, "Part A")
}

func TestResourceAdd_DefaultName(t *testing.T) {
	env := testApp(t, testutil.NewTestState())
	_, err := executeCmd(t, env.app, "resource", "add")
	require.NoError(t, err)
	assert.Equal(t, service.DefaultResourceName, env.app.Study.State().Resources[1].Name)
}

func TestResourceRemove_RequiresConfirmation(t *testing.T) {
	env := testApp(t, stateWithTask(t))

	_, err := executeCmd(t, env.app, "resource", "remove", "r-test")
	require.ErrorIs(t, err, errConfirmationRequired)
	assert.Len(t, env.app.Study.State().Resources, 1)

	_, err = executeCmd(t, env.app, "resource", "remove", "r-test", "--yes")
	require.NoError(t, err)
	state := env.app.Study.State()
	assert.Empty(t, state.Resources)
	assert.Empty(t, state.DailyPlan, "tasks of a removed resource go too")
}

func TestResourceRemove_InteractiveDecline(t *testing.T) {
	env := testApp(t, testutil.NewTestState())
	env.app.IsInteractive = func() bool { return true }
	env.prompter.answer = false

	out, err := executeCmd(t, env.app, "resource", "remove", "Test")
	require.NoError(t, err)
	assert.Contains(t, out, "Cancelled.")
	assert.Equal(t, []string{"Remove Test Bank?"}, env.prompter.asked)
	assert.Len(t, env.app.Study.State().Resources, 1)
}

func TestResourceDraft(t *testing.T) {
	env := testApp(t, testutil.NewTestState())

	_, err := executeCmd(t, env.app, "resource", "draft", "biology")
	require.ErrorIs(t, err, errDraftingDisabled)

	payload := `{"name":"Biology","description":"cells","modules":[{"name":"Cells","type":"Chapters","totalItems":12}]}`
	env.app.Drafts = intelligence.NewResourceDraftService(cannedLLM{text: payload}, nil)

	out, err := executeCmd(t, env.app, "resource", "draft", "biology", "-y")
	require.NoError(t, err)
	assert.Contains(t, out, "Biology")
	assert.Contains(t, out, "12 篇")
	assert.Contains(t, out, "Added resource")

	res := env.app.Study.State().ResourceNamed("Biology")
	require.NotNil(t, res)
	assert.Equal(t, domain.UnitArticles, res.Modules[0].Kind)
}

func TestResourceDraft_Unusable(t *testing.T) {
	env := testApp(t, testutil.NewTestState())
	env.app.Drafts = intelligence.NewResourceDraftService(cannedLLM{text: "no idea"}, nil)

	_, err := executeCmd(t, env.app, "resource", "draft", "biology", "-y")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not draft")
	assert.Len(t, env.app.Study.State().Resources, 1)
}

func TestModuleAddSetTotalRemove(t *testing.T) {
	env := testApp(t, testutil.NewTestState())

	out, err := executeCmd(t, env.app, "module", "add", "r-test", "--name", "Essays", "--total", "8", "--kind", "articles")
	require.NoError(t, err)
	assert.Contains(t, out, "8 篇")

	res := env.app.Study.State().FindResource("r-test")
	require.Len(t, res.Modules, 3)
	modID := res.Modules[2].ID

	_, err = executeCmd(t, env.app, "module", "set-total", "r-test", "m-a", "30")
	require.NoError(t, err)
	_, mod := env.app.Study.State().FindModule("r-test", "m-a")
	assert.Equal(t, 30, mod.TotalItems)

	_, err = executeCmd(t, env.app, "module", "remove", "r-test", modID, "--yes")
	require.NoError(t, err)
	assert.Len(t, env.app.Study.State().FindResource("r-test").Modules, 2)
}

func TestModuleAdd_Validation(t *testing.T) {
	env := testApp(t, testutil.NewTestState())

	_, err := executeCmd(t, env.app, "module", "add", "r-test", "--name", "X", "--total", "0")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = executeCmd(t, env.app, "module", "add", "r-test", "--name", "X", "--total", "5", "--kind", "Minutes2")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = executeCmd(t, env.app, "module", "set-total", "r-test", "m-a", "many")
	assert.Error(t, err)

	assert.Len(t, env.app.Study.State().FindResource("r-test").Modules, 2)
}

func TestModuleRemove_AmbiguousPrefix(t *testing.T) {
	env := testApp(t, testutil.NewTestState())
	_, err := executeCmd(t, env.app, "module", "remove", "r-test", "m-", "--yes")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "matches 2 modules")
}

// --- plan ---

func TestPlanRunListHistory(t *testing.T) {
	env := testApp(t, domain.NewAppState())

	out, err := executeCmd(t, env.app, "plan", "run")
	require.NoError(t, err)
	assert.Contains(t, out, "new tasks")

	state := env.app.Study.State()
	require.NotEmpty(t, state.DailyPlan)

	out, err = executeCmd(t, env.app, "plan", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "TODAY'S PLAN")
	assert.Contains(t, out, "核心 A")

	out, err = executeCmd(t, env.app, "plan", "history")
	require.NoError(t, err)
	assert.Contains(t, out, "Just now")
	assert.Contains(t, out, "FOUNDATION")
}

func TestPlanRun_StageFlag(t *testing.T) {
	env := testApp(t, domain.NewAppState())

	out, err := executeCmd(t, env.app, "plan", "run", "--stage", "sprint")
	require.NoError(t, err)
	assert.Contains(t, out, "SPRINT")
	assert.Equal(t, domain.StageSprint, env.app.Study.State().StudyStage)

	_, err = executeCmd(t, env.app, "plan", "run", "--stage", "nap")
	assert.Error(t, err)
}

func TestPlanAdd(t *testing.T) {
	env := testApp(t, testutil.NewTestState())

	out, err := executeCmd(t, env.app, "plan", "add", "--resource", "Test Bank", "--module", "m-b", "--amount", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Part B ×2")

	plan := env.app.Study.State().DailyPlan
	require.Len(t, plan, 1)
	assert.Equal(t, domain.TagManual, plan[0].Tag)

	_, err = executeCmd(t, env.app, "plan", "add", "--resource", "r-test", "--module", "m-b", "--amount", "0")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = executeCmd(t, env.app, "plan", "add", "--resource", "nothing", "--module", "m-b", "--amount", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no resource matches")
}

// --- tasks ---

func TestTaskClick_SettlesWithFlags(t *testing.T) {
	env := testApp(t, stateWithTask(t))

	out, err := executeCmd(t, env.app, "task", "click", "task-a", "--wrong", "3", "--point", "fractions")
	require.NoError(t, err)
	assert.Contains(t, out, "Done: Test Bank · Part A ×20")
	assert.Contains(t, out, "Queued for review")

	state := env.app.Study.State()
	assert.True(t, state.FindTask("task-abc").IsCompleted)
	assert.Equal(t, 20, state.Resources[0].Modules[0].CompletedItems)
	require.Len(t, state.ReviewQueue, 1)
	assert.Equal(t, "fractions", state.ReviewQueue[0].KnowledgePoint)

	out, err = executeCmd(t, env.app, "task", "click", "task-abc")
	require.NoError(t, err)
	assert.Contains(t, out, "Reopened")
	state = env.app.Study.State()
	assert.False(t, state.FindTask("task-abc").IsCompleted)
	assert.Zero(t, state.Resources[0].Modules[0].CompletedItems)
	assert.Len(t, state.ReviewQueue, 1)
}

func TestTaskClick_InteractiveUsesPrompter(t *testing.T) {
	env := testApp(t, stateWithTask(t))
	env.app.IsInteractive = func() bool { return true }
	env.prompter.settlement = domain.Settlement{WrongCount: 0}

	out, err := executeCmd(t, env.app, "task", "click", "task-abc")
	require.NoError(t, err)
	assert.Contains(t, out, "Done")
	assert.NotContains(t, out, "Queued for review")
	assert.Equal(t, []string{"settle task-abc"}, env.prompter.asked)
	assert.Empty(t, env.app.Study.State().ReviewQueue)
}

func TestTaskSettle_AlreadyDone(t *testing.T) {
	env := testApp(t, stateWithTask(t))
	_, err := executeCmd(t, env.app, "task", "toggle", "task-abc")
	require.NoError(t, err)

	out, err := executeCmd(t, env.app, "task", "settle", "task-abc", "--wrong", "4")
	require.NoError(t, err)
	assert.Contains(t, out, "already done")
	assert.Empty(t, env.app.Study.State().ReviewQueue)
}

func TestTaskSettle_NegativeWrongCount(t *testing.T) {
	env := testApp(t, stateWithTask(t))
	_, err := executeCmd(t, env.app, "task", "settle", "task-abc", "--wrong", "-1")
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.False(t, env.app.Study.State().FindTask("task-abc").IsCompleted)
}

func TestTaskToggleRoundTrip(t *testing.T) {
	env := testApp(t, stateWithTask(t))

	out, err := executeCmd(t, env.app, "task", "toggle", "task-abc")
	require.NoError(t, err)
	assert.Contains(t, out, "now done")
	assert.Equal(t, 20, env.app.Study.State().Resources[0].Modules[0].CompletedItems)

	out, err = executeCmd(t, env.app, "task", "toggle", "task-abc")
	require.NoError(t, err)
	assert.Contains(t, out, "now pending")
	assert.Zero(t, env.app.Study.State().Resources[0].Modules[0].CompletedItems)
}

func TestTaskEdit(t *testing.T) {
	env := testApp(t, stateWithTask(t))

	_, err := executeCmd(t, env.app, "task", "edit", "task-abc", "--completed", "7")
	require.NoError(t, err)
	state := env.app.Study.State()
	task := state.FindTask("task-abc")
	assert.Equal(t, 20, task.TargetAmount)
	assert.Equal(t, 7, task.CompletedAmount)
	assert.False(t, task.IsCompleted)
	assert.Equal(t, 7, state.Resources[0].Modules[0].CompletedItems)
	assert.Empty(t, state.ReviewQueue)

	_, err = executeCmd(t, env.app, "task", "edit", "task-abc")
	assert.Error(t, err, "one of --target or --completed is required")

	_, err = executeCmd(t, env.app, "task", "edit", "task-abc", "--target", "0")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTaskRemove(t *testing.T) {
	env := testApp(t, stateWithTask(t))
	_, err := executeCmd(t, env.app, "task", "edit", "task-abc", "--completed", "5")
	require.NoError(t, err)

	out, err := executeCmd(t, env.app, "task", "remove", "task-abc")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed task")
	state := env.app.Study.State()
	assert.Empty(t, state.DailyPlan)
	assert.Zero(t, state.Resources[0].Modules[0].CompletedItems)

	_, err = executeCmd(t, env.app, "task", "remove", "task-abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no task matches")
}

func TestTaskTip(t *testing.T) {
	env := testApp(t, stateWithTask(t))

	out, err := executeCmd(t, env.app, "task", "tip", "task-abc")
	require.NoError(t, err)
	assert.Contains(t, out, "【核心概念】keep going")
	assert.Equal(t, "【核心概念】keep going", env.app.Study.State().FindTask("task-abc").AITip)

	out, err = executeCmd(t, env.app, "task", "tip", "task-abc", "--cached")
	require.NoError(t, err)
	assert.Contains(t, out, "keep going")
}

func TestTaskTip_FallbackText(t *testing.T) {
	env := testApp(t, stateWithTask(t))
	env.app.Tips = service.NewTipTracker(env.store, fixedTips{}, nil)
	t.Cleanup(env.app.Tips.Wait)

	out, err := executeCmd(t, env.app, "task", "tip", "task-abc")
	require.NoError(t, err)
	assert.Contains(t, out, service.TipFallback)
}

func TestTaskTip_Disabled(t *testing.T) {
	env := testApp(t, stateWithTask(t))
	env.app.Tips = nil
	_, err := executeCmd(t, env.app, "task", "tip", "task-abc")
	assert.ErrorIs(t, err, errTipsDisabled)
}

// --- review ---

func TestReviewList(t *testing.T) {
	env := testApp(t, stateWithTask(t))

	out, err := executeCmd(t, env.app, "review", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "empty")

	_, err = executeCmd(t, env.app, "task", "settle", "task-abc", "--wrong", "2", "--point", "ratios")
	require.NoError(t, err)

	out, err = executeCmd(t, env.app, "review", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "REVIEW QUEUE (1)")
	assert.Contains(t, out, "ratios")
}

// --- data ---

func TestDataExportImportRoundTrip(t *testing.T) {
	env := testApp(t, stateWithTask(t))
	path := filepath.Join(t.TempDir(), "save.json")

	_, err := executeCmd(t, env.app, "data", "export", "--out", path)
	require.NoError(t, err)
	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var envelope map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &envelope))
	assert.Contains(t, envelope, "meta")
	assert.Contains(t, envelope, "data")

	_, err = executeCmd(t, env.app, "data", "reset", "--yes")
	require.NoError(t, err)
	assert.Empty(t, env.app.Study.State().DailyPlan)

	out, err := executeCmd(t, env.app, "data", "import", path, "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "IMPORT PREVIEW")
	assert.Contains(t, out, "Import complete.")

	state := env.app.Study.State()
	require.Len(t, state.DailyPlan, 1)
	assert.Equal(t, "task-abc", state.DailyPlan[0].ID)
	assert.Equal(t, "Test Bank", state.Resources[0].Name)
}

func TestDataExport_Stdout(t *testing.T) {
	env := testApp(t, testutil.NewTestState())
	out, err := executeCmd(t, env.app, "data", "export")
	require.NoError(t, err)
	assert.Contains(t, out, `"platform"`)
	assert.Contains(t, out, `"studyStage"`)
}

func TestDataImport_FromStdin(t *testing.T) {
	env := testApp(t, testutil.NewTestState())
	env.app.In = strings.NewReader(`{"resources":[],"dailyPlan":[],"studyStage":"Sprint"}`)

	_, err := executeCmd(t, env.app, "data", "import", "-", "--yes")
	require.NoError(t, err)
	state := env.app.Study.State()
	assert.Empty(t, state.Resources)
	assert.Equal(t, domain.StageSprint, state.StudyStage)
}

func TestDataImport_Invalid(t *testing.T) {
	env := testApp(t, stateWithTask(t))

	env.app.In = strings.NewReader("not json")
	_, err := executeCmd(t, env.app, "data", "import", "--yes")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")

	env.app.In = strings.NewReader(`{"reviewQueue":[]}`)
	_, err = executeCmd(t, env.app, "data", "import", "--yes")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing resources or daily plan")

	assert.Len(t, env.app.Study.State().DailyPlan, 1, "failed import leaves state alone")
}

func TestDataImport_NeedsConfirmation(t *testing.T) {
	env := testApp(t, stateWithTask(t))
	env.app.In = strings.NewReader(`{"resources":[],"dailyPlan":[]}`)

	out, err := executeCmd(t, env.app, "data", "import")
	require.ErrorIs(t, err, errConfirmationRequired)
	assert.Contains(t, out, "IMPORT PREVIEW")
	assert.Len(t, env.app.Study.State().DailyPlan, 1)
}

func TestDataReset_Declined(t *testing.T) {
	env := testApp(t, stateWithTask(t))
	env.app.IsInteractive = func() bool { return true }

	out, err := executeCmd(t, env.app, "data", "reset")
	require.NoError(t, err)
	assert.Contains(t, out, "Reset cancelled.")
	assert.Len(t, env.app.Study.State().DailyPlan, 1)
}
