package intelligence

import (
	"context"
	"strings"
	"testing"

	"github.com/alexanderramin/studysync/internal/domain"
	"github.com/alexanderramin/studysync/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockLLMClient struct {
	response string
	err      error
	calls    []llm.GenerateRequest
}

func (m *mockLLMClient) Generate(_ context.Context, req llm.GenerateRequest) (*llm.GenerateResponse, error) {
	m.calls = append(m.calls, req)
	if m.err != nil {
		return nil, m.err
	}
	return &llm.GenerateResponse{Text: m.response, Model: "mock"}, nil
}

func (m *mockLLMClient) Available(context.Context) bool { return m.err == nil }
func (m *mockLLMClient) Close() error                   { return nil }

func TestResourceDraft_RequestShape(t *testing.T) {
	client := &mockLLMClient{response: `{"name":"Go","description":"lang","modules":[{"name":"Basics","type":"Pages","totalItems":40}]}`}
	tpl := NewResourceDraftService(client, nil).Draft(context.Background(), "  golang  ")

	require.NotNil(t, tpl)
	assert.Equal(t, "lang", tpl.Description)
	assert.Equal(t, domain.UnitPages, tpl.Modules[0].Kind)

	require.Len(t, client.calls, 1)
	req := client.calls[0]
	assert.Equal(t, llm.TaskResourceDraft, req.Task)
	assert.True(t, req.JSON)
	assert.Contains(t, req.UserPrompt, `"golang"`)
}

func TestResourceDraft_UnknownKindFallsBackToQuestions(t *testing.T) {
	client := &mockLLMClient{response: `{"name":"X","modules":[{"name":"A","type":"Flashcards","totalItems":5}]}`}
	tpl := NewResourceDraftService(client, nil).Draft(context.Background(), "x")

	require.NotNil(t, tpl)
	assert.Equal(t, domain.UnitQuestions, tpl.Modules[0].Kind)
}

func TestResourceDraft_DegradesToNil(t *testing.T) {
	cases := map[string]*mockLLMClient{
		"provider error":    {err: llm.ErrUnavailable},
		"no json":           {response: "Sorry, I can't."},
		"no modules":        {response: `{"name":"Empty","modules":[]}`},
		"missing name":      {response: `{"modules":[{"name":"A","type":"Pages","totalItems":3}]}`},
		"zero total":        {response: `{"name":"X","modules":[{"name":"A","type":"Pages","totalItems":0}]}`},
		"blank module name": {response: `{"name":"X","modules":[{"name":" ","type":"Pages","totalItems":3}]}`},
	}
	for name, client := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Nil(t, NewResourceDraftService(client, nil).Draft(context.Background(), "topic"))
		})
	}
}

func TestResourceDraft_EmptyTopicOrNoClient(t *testing.T) {
	client := &mockLLMClient{response: `{}`}
	assert.Nil(t, NewResourceDraftService(client, nil).Draft(context.Background(), "   "))
	assert.Empty(t, client.calls)

	assert.Nil(t, NewResourceDraftService(nil, nil).Draft(context.Background(), "topic"))
}

func TestTip_PromptCarriesContext(t *testing.T) {
	client := &mockLLMClient{response: "tip"}
	tip := NewTipService(client, nil).Tip(context.Background(), TipRequest{
		Topic:        "皮亞傑認知發展",
		ResourceName: "一起考教師",
		ModuleName:   "科目二：教育教學",
		Stage:        domain.StageReview,
	})

	assert.Equal(t, "tip", tip)
	require.Len(t, client.calls, 1)
	req := client.calls[0]
	assert.Equal(t, llm.TaskTip, req.Task)
	assert.Contains(t, req.SystemPrompt, "【核心概念】")
	assert.Contains(t, req.SystemPrompt, "【常考坑點】")
	assert.Contains(t, req.SystemPrompt, "【記憶口訣】")
	assert.Contains(t, req.UserPrompt, "皮亞傑認知發展")
	assert.Contains(t, req.UserPrompt, "科目二：教育教學")
	assert.True(t, strings.Contains(req.UserPrompt, "Strengthen"))
}

func TestTip_DegradesToEmpty(t *testing.T) {
	assert.Empty(t, NewTipService(&mockLLMClient{err: llm.ErrTimeout}, nil).Tip(context.Background(), TipRequest{Topic: "x"}))
	assert.Empty(t, NewTipService(&mockLLMClient{err: context.Canceled}, nil).Tip(context.Background(), TipRequest{Topic: "x"}))
	assert.Empty(t, NewTipService(nil, nil).Tip(context.Background(), TipRequest{Topic: "x"}))

	client := &mockLLMClient{response: "tip"}
	assert.Empty(t, NewTipService(client, nil).Tip(context.Background(), TipRequest{Topic: "  "}))
	assert.Empty(t, client.calls)
}
