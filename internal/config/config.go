// Package config loads settings from an optional YAML file, a .env file
// and STUDYSYNC_* environment variables, in rising precedence.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/alexanderramin/studysync/internal/llm"
	"github.com/alexanderramin/studysync/internal/planner"
	"github.com/alexanderramin/studysync/internal/validation"
)

// EnvPrefix prefixes every bound environment variable.
const EnvPrefix = "STUDYSYNC"

type Config struct {
	DB      DBConfig      `mapstructure:"db"`
	Log     LogConfig     `mapstructure:"log"`
	LLM     llm.LLMConfig `mapstructure:"llm"`
	Planner planner.Rules `mapstructure:"planner"`
}

type DBConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

type LogConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
}

// SlogLevel maps the configured level name onto slog.
func (c LogConfig) SlogLevel() slog.Level {
	switch c.Level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// Options points Load at explicit files. Empty fields use the defaults:
// ./config.yaml or ~/.config/studysync/config.yaml, and ./.env.
type Options struct {
	ConfigFile string
	EnvFile    string
}

var configValidator = validation.MustNew("mapstructure")

func Load(opts Options) (*Config, error) {
	if err := loadEnvFile(opts.EnvFile); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/studysync")
	}

	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("llm.api_key", EnvPrefix+"_LLM_API_KEY", "GEMINI_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind GEMINI_API_KEY environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("configuration file found but could not be read: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}
	cfg.LLM.Tasks = llm.DefaultConfig().Tasks
	if ms := v.GetInt("llm.draft_timeout_ms"); ms > 0 {
		tc := cfg.LLM.Tasks[llm.TaskResourceDraft]
		tc.TimeoutMs = ms
		cfg.LLM.Tasks[llm.TaskResourceDraft] = tc
	}
	cfg.LLM.APIKey = cleanAPIKey(cfg.LLM.APIKey)

	path, err := expandHome(cfg.DB.Path)
	if err != nil {
		return nil, err
	}
	cfg.DB.Path = path

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field constraints and the cross-field rule that an
// enabled Gemini provider needs a key.
func (c *Config) Validate() error {
	if err := configValidator.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if c.LLM.Enabled && c.LLM.Provider == llm.ProviderGemini && c.LLM.APIKey == "" {
		return errors.New("invalid configuration: llm.api_key (or GEMINI_API_KEY) is required when llm.provider is gemini")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	v.SetDefault("db.path", filepath.Join(home, ".studysync", "studysync.db"))
	v.SetDefault("log.level", "warn")

	l := llm.DefaultConfig()
	v.SetDefault("llm.enabled", l.Enabled)
	v.SetDefault("llm.log_calls", l.LogCalls)
	v.SetDefault("llm.provider", string(l.Provider))
	v.SetDefault("llm.endpoint", l.Endpoint)
	v.SetDefault("llm.model", "")
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.timeout_ms", l.TimeoutMs)
	v.SetDefault("llm.max_retries", l.MaxRetries)
	v.SetDefault("llm.draft_timeout_ms", l.TaskTimeout(llm.TaskResourceDraft))

	r := planner.DefaultRules()
	v.SetDefault("planner.primary", r.Primary)
	v.SetDefault("planner.secondary", r.Secondary)
	v.SetDefault("planner.tertiary", r.Tertiary)
	v.SetDefault("planner.odd_day_keywords", r.OddDayKeywords)
	v.SetDefault("planner.even_day_keywords", r.EvenDayKeywords)
	v.SetDefault("planner.video_keyword", r.VideoKeyword)
	v.SetDefault("planner.drill_keyword", r.DrillKeyword)
	v.SetDefault("planner.video_weekdays", weekdayInts(r.VideoWeekdays))
}

func loadEnvFile(path string) error {
	explicit := path != ""
	if !explicit {
		path = ".env"
	}
	if _, err := os.Stat(path); err != nil {
		if explicit {
			return fmt.Errorf("env file %s: %w", path, err)
		}
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading env file %s: %w", path, err)
	}
	return nil
}

// cleanAPIKey strips quotes that often survive copy-pasting keys into
// env files.
func cleanAPIKey(key string) string {
	return strings.TrimSpace(strings.NewReplacer(`"`, "", `'`, "").Replace(key))
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

func weekdayInts(days []time.Weekday) []int {
	out := make([]int, len(days))
	for i, d := range days {
		out[i] = int(d)
	}
	return out
}
