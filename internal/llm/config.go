package llm

// Provider selects the backend that serves generation calls.
type Provider string

const (
	ProviderOllama Provider = "ollama"
	ProviderGemini Provider = "gemini"
)

// TaskType identifies the kind of LLM task being performed.
type TaskType string

const (
	TaskResourceDraft TaskType = "resource_draft"
	TaskTip           TaskType = "tip"
)

// TaskConfig holds per-task LLM parameters.
type TaskConfig struct {
	Temperature float64 `mapstructure:"temperature" validate:"gte=0,lte=2"`
	MaxTokens   int     `mapstructure:"max_tokens" validate:"gte=0"`
	TimeoutMs   int     `mapstructure:"timeout_ms" validate:"gte=0"` // overrides global if > 0
}

// LLMConfig holds all configuration for the LLM subsystem.
type LLMConfig struct {
	Enabled    bool                    `mapstructure:"enabled"`
	LogCalls   bool                    `mapstructure:"log_calls"`
	Provider   Provider                `mapstructure:"provider" validate:"oneof=ollama gemini"`
	Endpoint   string                  `mapstructure:"endpoint" validate:"omitempty,url"`
	Model      string                  `mapstructure:"model"`
	APIKey     string                  `mapstructure:"api_key"`
	TimeoutMs  int                     `mapstructure:"timeout_ms" validate:"gt=0"`
	MaxRetries int                     `mapstructure:"max_retries" validate:"gte=0,lte=5"`
	Tasks      map[TaskType]TaskConfig `mapstructure:"-" validate:"dive"`
}

// DefaultOllamaModel and DefaultGeminiModel are used when no model is
// configured for the selected provider.
const (
	DefaultOllamaModel = "llama3.2"
	DefaultGeminiModel = "gemini-2.5-flash"
)

// DefaultConfig returns an LLMConfig with sensible defaults.
// LLM is disabled by default.
func DefaultConfig() LLMConfig {
	return LLMConfig{
		Enabled:    false,
		LogCalls:   false,
		Provider:   ProviderOllama,
		Endpoint:   "http://localhost:11434",
		TimeoutMs:  15000,
		MaxRetries: 1,
		Tasks: map[TaskType]TaskConfig{
			TaskResourceDraft: {Temperature: 0.2, MaxTokens: 2048, TimeoutMs: 30000},
			TaskTip:           {Temperature: 0.4, MaxTokens: 512},
		},
	}
}

// ModelName returns the configured model, or the provider default.
func (c LLMConfig) ModelName() string {
	if c.Model != "" {
		return c.Model
	}
	if c.Provider == ProviderGemini {
		return DefaultGeminiModel
	}
	return DefaultOllamaModel
}

// TaskTimeout returns the effective timeout for a given task type.
// Uses the task-specific timeout if set, otherwise the global timeout.
func (c LLMConfig) TaskTimeout(task TaskType) int {
	if tc, ok := c.Tasks[task]; ok && tc.TimeoutMs > 0 {
		return tc.TimeoutMs
	}
	return c.TimeoutMs
}

// sampling resolves temperature and token limit for a request.
func (c LLMConfig) sampling(req GenerateRequest) (float64, int) {
	tc := c.Tasks[req.Task]
	temp, maxTok := tc.Temperature, tc.MaxTokens
	if req.Temperature != nil {
		temp = *req.Temperature
	}
	if req.MaxTokens != nil {
		maxTok = *req.MaxTokens
	}
	return temp, maxTok
}
