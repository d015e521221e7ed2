package intelligence

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/alexanderramin/studysync/internal/llm"
)

// TipService produces short three-part advice for a knowledge point.
type TipService interface {
	// Tip returns "" when nothing could be generated.
	Tip(ctx context.Context, req TipRequest) string
}

type tipService struct {
	client llm.LLMClient
	logger *slog.Logger
}

// NewTipService creates a TipService. A nil client yields a service that
// always returns "".
func NewTipService(client llm.LLMClient, logger *slog.Logger) TipService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &tipService{client: client, logger: logger}
}

func (s *tipService) Tip(ctx context.Context, req TipRequest) string {
	if s.client == nil {
		s.logger.DebugContext(ctx, "tip skipped: content generation disabled")
		return ""
	}
	if strings.TrimSpace(req.Topic) == "" {
		return ""
	}

	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskTip,
		SystemPrompt: tipSystemPrompt,
		UserPrompt:   tipUserPrompt(req),
	})
	if err != nil {
		// A superseded or deleted task cancels the request; that is not a failure.
		if errors.Is(err, context.Canceled) {
			s.logger.DebugContext(ctx, "tip cancelled", "topic", req.Topic)
			return ""
		}
		s.logger.WarnContext(ctx, "tip generation failed", "topic", req.Topic, "error", err)
		return ""
	}
	return cleanTip(resp.Text)
}

// cleanTip drops code fences and blank lines the model sometimes adds.
func cleanTip(text string) string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "```") {
			continue
		}
		lines = append(lines, trimmed)
	}
	return strings.Join(lines, "\n")
}
