package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiClient implements LLMClient on the Gemini API.
type GeminiClient struct {
	cfg      LLMConfig
	client   *genai.Client
	observer Observer
}

// NewGeminiClient opens a Gemini client. An empty API key is an error so
// callers can fall back to running without content generation.
func NewGeminiClient(ctx context.Context, cfg LLMConfig, observer Observer, opts ...option.ClientOption) (*GeminiClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: gemini api key is not set", ErrUnavailable)
	}
	if observer == nil {
		observer = NoopObserver{}
	}
	client, err := genai.NewClient(ctx, append([]option.ClientOption{option.WithAPIKey(cfg.APIKey)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	return &GeminiClient{cfg: cfg, client: client, observer: observer}, nil
}

func (c *GeminiClient) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	model := c.client.GenerativeModel(c.cfg.ModelName())
	temp, maxTok := c.cfg.sampling(req)
	model.SetTemperature(float32(temp))
	if maxTok > 0 {
		model.SetMaxOutputTokens(int32(maxTok))
	}
	if req.SystemPrompt != "" {
		model.SystemInstruction = genai.NewUserContent(genai.Text(req.SystemPrompt))
	}
	if req.JSON {
		model.ResponseMIMEType = "application/json"
	}

	var text string
	call := callMeta{task: req.Task, provider: ProviderGemini, model: c.cfg.ModelName()}
	latency, err := withRetry(ctx, c.cfg, call, c.observer, func(attemptCtx context.Context) error {
		resp, err := model.GenerateContent(attemptCtx, genai.Text(req.UserPrompt))
		if err != nil {
			return classifyGeminiError(err)
		}
		text = extractText(resp)
		if text == "" {
			return fmt.Errorf("%w: empty response", ErrInvalidOutput)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &GenerateResponse{Text: text, Model: call.model, LatencyMs: latency}, nil
}

// Available reports whether a key is configured. Gemini has no cheap
// health endpoint worth a round trip.
func (c *GeminiClient) Available(context.Context) bool {
	return c.cfg.APIKey != ""
}

func (c *GeminiClient) Close() error {
	return c.client.Close()
}

func extractText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	var b strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if t, ok := part.(genai.Text); ok {
				b.WriteString(string(t))
			}
		}
		// Only the first candidate with content is used.
		if b.Len() > 0 {
			break
		}
	}
	return strings.TrimSpace(b.String())
}

// classifyGeminiError marks client-side API errors as rejections so they
// are not retried. Rate limits and server errors stay retryable.
func classifyGeminiError(err error) error {
	var coded interface{ HTTPCode() int }
	if errors.As(err, &coded) {
		code := coded.HTTPCode()
		if code >= 400 {
			return statusError(code, err.Error())
		}
	}
	if isConnectionError(err) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return err
}
