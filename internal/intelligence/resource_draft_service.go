package intelligence

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/alexanderramin/studysync/internal/domain"
	"github.com/alexanderramin/studysync/internal/llm"
	"github.com/alexanderramin/studysync/internal/validation"
)

// ResourceDraftService turns a free-text topic into a resource template.
type ResourceDraftService interface {
	// Draft returns nil when no usable template could be produced. Failures
	// are logged, never returned.
	Draft(ctx context.Context, topic string) *ResourceTemplate
}

type resourceDraftService struct {
	client   llm.LLMClient
	logger   *slog.Logger
	validate *validation.Validator
}

var templateValidator = validation.MustNew("json")

// NewResourceDraftService creates a ResourceDraftService. A nil client
// yields a service that always returns nil.
func NewResourceDraftService(client llm.LLMClient, logger *slog.Logger) ResourceDraftService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &resourceDraftService{client: client, logger: logger, validate: templateValidator}
}

func (s *resourceDraftService) Draft(ctx context.Context, topic string) *ResourceTemplate {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil
	}
	if s.client == nil {
		s.logger.WarnContext(ctx, "resource draft skipped: content generation disabled")
		return nil
	}

	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskResourceDraft,
		SystemPrompt: resourceDraftSystemPrompt,
		UserPrompt:   resourceDraftUserPrompt(topic),
		JSON:         true,
	})
	if err != nil {
		s.logger.WarnContext(ctx, "resource draft failed", "topic", topic, "error", err)
		return nil
	}

	payload, err := llm.ExtractJSON[draftPayload](resp.Text, nil)
	if err != nil {
		s.logger.WarnContext(ctx, "resource draft unreadable", "topic", topic, "error", err)
		return nil
	}

	tpl := toTemplate(payload, topic)
	if err := s.validate.Struct(tpl); err != nil {
		s.logger.WarnContext(ctx, "resource draft rejected", "topic", topic, "error", err)
		return nil
	}
	return tpl
}

// toTemplate normalizes the model output. Unknown unit kinds fall back to
// Questions; Minutes and Chapters map to Sections and Articles.
func toTemplate(p draftPayload, topic string) *ResourceTemplate {
	tpl := &ResourceTemplate{
		Name:        strings.TrimSpace(p.Name),
		Description: strings.TrimSpace(p.Description),
		Modules:     make([]ModuleTemplate, 0, len(p.Modules)),
	}
	if tpl.Description == "" {
		tpl.Description = fmt.Sprintf("AI 為 %s 生成的計劃", topic)
	}
	for _, m := range p.Modules {
		kind, err := domain.ParseUnitKind(m.Kind)
		if err != nil {
			kind = domain.UnitQuestions
		}
		tpl.Modules = append(tpl.Modules, ModuleTemplate{
			Name:       strings.TrimSpace(m.Name),
			Kind:       kind,
			TotalItems: m.TotalItems,
		})
	}
	return tpl
}
