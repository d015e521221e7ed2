package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avast/retry-go"
	"resty.dev/v3"
)

// GenerateRequest holds the parameters for an LLM generation call.
type GenerateRequest struct {
	Task         TaskType
	SystemPrompt string
	UserPrompt   string
	// JSON asks the provider for a JSON-only response where it supports it.
	JSON        bool
	Temperature *float64 // nil uses task default
	MaxTokens   *int     // nil uses task default
}

// GenerateResponse holds the result of an LLM generation call.
type GenerateResponse struct {
	Text      string
	Model     string
	LatencyMs int64
}

// LLMClient provides access to a language model for text generation.
type LLMClient interface {
	// Generate sends a prompt and returns the raw text response.
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)

	// Available reports whether the provider can currently serve requests.
	Available(ctx context.Context) bool

	Close() error
}

// NewClient builds the client for the configured provider.
func NewClient(ctx context.Context, cfg LLMConfig, observer Observer) (LLMClient, error) {
	switch cfg.Provider {
	case ProviderGemini:
		client, err := NewGeminiClient(ctx, cfg, observer)
		if err != nil {
			return nil, err
		}
		return client, nil
	case ProviderOllama, "":
		return NewOllamaClient(cfg, observer), nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}

// ollamaClient implements LLMClient using the Ollama HTTP API.
type ollamaClient struct {
	cfg      LLMConfig
	http     *resty.Client
	observer Observer
}

// NewOllamaClient creates an LLMClient that talks to a local Ollama instance.
func NewOllamaClient(cfg LLMConfig, observer Observer) LLMClient {
	if observer == nil {
		observer = NoopObserver{}
	}
	client := resty.New()
	client.SetBaseURL(cfg.Endpoint)
	client.SetHeader("Content-Type", "application/json")
	return &ollamaClient{cfg: cfg, http: client, observer: observer}
}

// ollamaRequest is the JSON body sent to POST /api/generate.
type ollamaRequest struct {
	Model   string        `json:"model"`
	System  string        `json:"system,omitempty"`
	Prompt  string        `json:"prompt"`
	Stream  bool          `json:"stream"`
	Format  string        `json:"format,omitempty"`
	Options ollamaOptions `json:"options,omitempty"`
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature,omitempty"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

// ollamaResponse is the JSON body returned by POST /api/generate (non-streaming).
type ollamaResponse struct {
	Model    string `json:"model"`
	Response string `json:"response"`
}

func (c *ollamaClient) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	temp, maxTok := c.cfg.sampling(req)
	body := ollamaRequest{
		Model:  c.cfg.ModelName(),
		System: req.SystemPrompt,
		Prompt: req.UserPrompt,
		Options: ollamaOptions{
			Temperature: temp,
			NumPredict:  maxTok,
		},
	}
	if req.JSON {
		body.Format = "json"
	}

	var out *ollamaResponse
	call := callMeta{task: req.Task, provider: ProviderOllama, model: body.Model}
	latency, err := withRetry(ctx, c.cfg, call, c.observer, func(attemptCtx context.Context) error {
		resp, err := c.doRequest(attemptCtx, body)
		if err != nil {
			return err
		}
		out = resp
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &GenerateResponse{Text: out.Response, Model: out.Model, LatencyMs: latency}, nil
}

func (c *ollamaClient) doRequest(ctx context.Context, body ollamaRequest) (*ollamaResponse, error) {
	response, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&ollamaResponse{}).
		Post("/api/generate")
	if err != nil {
		if isConnectionError(err) {
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		return nil, fmt.Errorf("posting generate request: %w", err)
	}
	if response.IsError() {
		return nil, statusError(response.StatusCode(), response.String())
	}
	resp, ok := response.Result().(*ollamaResponse)
	if !ok || resp == nil {
		return nil, fmt.Errorf("%w: empty response body", ErrInvalidOutput)
	}
	return resp, nil
}

func (c *ollamaClient) Available(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	response, err := c.http.R().SetContext(ctx).Get("/api/tags")
	if err != nil {
		return false
	}
	return !response.IsError()
}

func (c *ollamaClient) Close() error {
	return c.http.Close()
}

// statusError classifies an HTTP error status. 429 and 5xx are retried;
// anything else is a rejection.
func statusError(code int, body string) error {
	if code == 429 || code >= 500 {
		return fmt.Errorf("response error %d: %s", code, body)
	}
	return fmt.Errorf("%w: response error %d: %s", ErrRejected, code, body)
}

type callMeta struct {
	task     TaskType
	provider Provider
	model    string
}

// withRetry runs fn with a per-attempt timeout and backoff between attempts,
// then reports one call event. It returns the total latency in ms.
func withRetry(ctx context.Context, cfg LLMConfig, call callMeta, observer Observer, fn func(context.Context) error) (int64, error) {
	start := time.Now()
	timeout := time.Duration(cfg.TaskTimeout(call.task)) * time.Millisecond
	attempts := 0

	err := retry.Do(
		func() error {
			attempts++
			attemptCtx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			err := fn(attemptCtx)
			if err == nil {
				return nil
			}
			if ctx.Err() != nil {
				return retry.Unrecoverable(ctx.Err())
			}
			if errors.Is(attemptCtx.Err(), context.DeadlineExceeded) {
				return fmt.Errorf("%w: %v", ErrTimeout, err)
			}
			if errors.Is(err, ErrRejected) || errors.Is(err, ErrInvalidOutput) {
				return retry.Unrecoverable(err)
			}
			return err
		},
		retry.Context(ctx),
		retry.Attempts(uint(cfg.MaxRetries)+1),
		retry.Delay(50*time.Millisecond),
		retry.LastErrorOnly(true),
		retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
			return retry.BackOffDelay(n, err, config)
		}),
	)

	latency := time.Since(start).Milliseconds()
	if err != nil && !errors.Is(err, ErrTimeout) && !errors.Is(err, ErrUnavailable) &&
		!errors.Is(err, ErrRejected) && !errors.Is(err, ErrInvalidOutput) && ctx.Err() == nil {
		err = fmt.Errorf("%w: %v", ErrRetryExhausted, err)
	}
	event := LLMCallEvent{
		Task:      call.task,
		Provider:  call.provider,
		Model:     call.model,
		LatencyMs: latency,
		Attempts:  attempts,
		Success:   err == nil,
		ErrorCode: errorCode(err),
	}
	observer.OnCallComplete(event)
	return latency, err
}
