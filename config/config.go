// Package config loads the agent's settings from an optional JSON file, an optional .env file
// and the process environment, in increasing order of precedence.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"agentcore_spec_agent/generator"
	"agentcore_spec_agent/telemetry"
)

const (
	DefaultServerAddr        = ":8080"
	DefaultInvocationTimeout = 5 * time.Minute
	DefaultShutdownTimeout   = 15 * time.Second
	DefaultServiceName       = "spec-agent"
	DefaultMetricsInterval   = time.Minute
)

// Config mirrors config.json.
type Config struct {
	ServerAddr        string          `json:"server_addr,omitempty"`
	InvocationTimeout Duration        `json:"invocation_timeout,omitempty"`
	ShutdownTimeout   Duration        `json:"shutdown_timeout,omitempty"`
	LLM               LLMConfig       `json:"llm"`
	Log               LogConfig       `json:"log"`
	Telemetry         TelemetryConfig `json:"telemetry"`
}

// LLMConfig selects and configures the model client.
type LLMConfig struct {
	Provider  string `json:"provider,omitempty"`
	Model     string `json:"model,omitempty"`
	Region    string `json:"region,omitempty"`
	MaxTokens int    `json:"max_tokens,omitempty"`
	APIKey    string `json:"api_key,omitempty"`
	BaseURL   string `json:"base_url,omitempty"`
}

type LogConfig struct {
	Level  string `json:"level,omitempty"`
	Format string `json:"format,omitempty"`
}

type TelemetryConfig struct {
	Tracing         bool     `json:"tracing,omitempty"`
	Metrics         bool     `json:"metrics,omitempty"`
	MetricsInterval Duration `json:"metrics_interval,omitempty"`
	ServiceName     string   `json:"service_name,omitempty"`
}

// Duration accepts Go duration strings ("90s", "5m") in JSON.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("duration must be a string like \"5m\": %w", err)
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		ServerAddr:        DefaultServerAddr,
		InvocationTimeout: Duration(DefaultInvocationTimeout),
		ShutdownTimeout:   Duration(DefaultShutdownTimeout),
		LLM: LLMConfig{
			Provider:  generator.ProviderBedrock,
			Model:     generator.DefaultModel,
			Region:    generator.DefaultRegion,
			MaxTokens: generator.DefaultMaxTokens,
		},
		Log: LogConfig{
			Level:  "info",
			Format: telemetry.FormatJSON,
		},
		Telemetry: TelemetryConfig{
			MetricsInterval: Duration(DefaultMetricsInterval),
			ServiceName:     DefaultServiceName,
		},
	}
}

// Load reads .env (if present), then path (if non-empty), then environment overrides, and validates.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := json.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	setString(&cfg.ServerAddr, "SERVER_ADDR")
	setString(&cfg.LLM.Provider, "LLM_PROVIDER")
	setString(&cfg.LLM.Model, "LLM_MODEL")
	setString(&cfg.LLM.Region, "AWS_REGION")
	setString(&cfg.LLM.APIKey, "OPENAI_API_KEY")
	setString(&cfg.LLM.BaseURL, "LLM_BASE_URL")
	setString(&cfg.Log.Level, "LOG_LEVEL")
	setString(&cfg.Log.Format, "LOG_FORMAT")

	if v := os.Getenv("LLM_MAX_TOKENS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("LLM_MAX_TOKENS: %w", err)
		}
		cfg.LLM.MaxTokens = n
	}
	if v := os.Getenv("INVOCATION_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("INVOCATION_TIMEOUT: %w", err)
		}
		cfg.InvocationTimeout = Duration(d)
	}
	if v := os.Getenv("OTEL_TRACING_ENABLED"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("OTEL_TRACING_ENABLED: %w", err)
		}
		cfg.Telemetry.Tracing = b
	}
	if v := os.Getenv("OTEL_METRICS_ENABLED"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("OTEL_METRICS_ENABLED: %w", err)
		}
		cfg.Telemetry.Metrics = b
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// Validate rejects settings the agent cannot start with.
func (c Config) Validate() error {
	switch c.LLM.Provider {
	case generator.ProviderBedrock, generator.ProviderMock:
	case generator.ProviderOpenAI:
		if c.LLM.APIKey == "" {
			return errors.New("configuration error: llm.api_key (OPENAI_API_KEY) is required for provider openai")
		}
		if err := c.requireChatModel(); err != nil {
			return err
		}
	case generator.ProviderDeepSeek:
		if c.LLM.APIKey == "" || c.LLM.BaseURL == "" {
			return errors.New("configuration error: provider deepseek requires llm.api_key and llm.base_url")
		}
		if err := c.requireChatModel(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("configuration error: llm provider %q not supported", c.LLM.Provider)
	}
	if c.LLM.MaxTokens <= 0 {
		return fmt.Errorf("configuration error: llm.max_tokens must be positive, got %d", c.LLM.MaxTokens)
	}
	if c.InvocationTimeout < 0 {
		return errors.New("configuration error: invocation_timeout must not be negative")
	}
	if c.Telemetry.Metrics && c.Telemetry.MetricsInterval <= 0 {
		return errors.New("configuration error: telemetry.metrics_interval must be positive")
	}
	if _, err := telemetry.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	switch c.Log.Format {
	case telemetry.FormatJSON, telemetry.FormatText:
	default:
		return fmt.Errorf("configuration error: unknown log format %q", c.Log.Format)
	}
	return nil
}

// requireChatModel catches OpenAI-compatible providers left on the Bedrock model id.
func (c Config) requireChatModel() error {
	if c.LLM.Model == "" || c.LLM.Model == generator.DefaultModel {
		return fmt.Errorf("configuration error: provider %s needs llm.model (LLM_MODEL)", c.LLM.Provider)
	}
	return nil
}

// LLMSettings converts the llm section for generator.NewLLMFromConfig.
func (c Config) LLMSettings() generator.LLMSettings {
	return generator.LLMSettings{
		Provider:  c.LLM.Provider,
		Model:     c.LLM.Model,
		Region:    c.LLM.Region,
		MaxTokens: c.LLM.MaxTokens,
		APIKey:    c.LLM.APIKey,
		BaseURL:   c.LLM.BaseURL,
	}
}
