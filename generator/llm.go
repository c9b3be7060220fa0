package generator

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("spec-agent/generator")

var (
	// ErrGenerationFailed wraps every model-client failure: transport, auth, throttling.
	ErrGenerationFailed = errors.New("generation failed")
	// ErrMalformedResponse marks a model response without the expected text segment.
	ErrMalformedResponse = errors.New("malformed model response")
	ErrInvalidConfig     = errors.New("invalid llm configuration")
)

// Supported providers.
const (
	ProviderBedrock  = "bedrock"
	ProviderOpenAI   = "openai"
	ProviderDeepSeek = "deepseek"
	ProviderMock     = "mock"
)

// Model defaults: the APAC cross-region inference profile for Claude 3.5 Sonnet v2.
const (
	DefaultModel     = "apac.anthropic.claude-3-5-sonnet-20241022-v2:0"
	DefaultRegion    = "ap-northeast-1"
	DefaultMaxTokens = 4000
)

// LLMClient sends one complete prompt and returns the first generated text segment.
// Implementations are shared across invocations and must be safe for concurrent use.
type LLMClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// LLMSettings configures a concrete client.
type LLMSettings struct {
	Provider  string
	Model     string
	Region    string
	MaxTokens int
	APIKey    string
	BaseURL   string
}

// NewLLMFromConfig builds the process-wide client for the configured provider.
func NewLLMFromConfig(ctx context.Context, settings LLMSettings) (LLMClient, error) {
	switch settings.Provider {
	case "", ProviderBedrock:
		return NewBedrockLLM(ctx, settings)
	case ProviderOpenAI:
		return NewOpenAILLM(settings)
	case ProviderDeepSeek:
		// DeepSeek exposes an OpenAI-compatible API and needs its gateway URL.
		if settings.BaseURL == "" {
			return nil, fmt.Errorf("%w: provider deepseek requires base_url", ErrInvalidConfig)
		}
		return NewOpenAILLM(settings)
	case ProviderMock:
		return &MockLLM{}, nil
	default:
		return nil, fmt.Errorf("%w: provider %s not supported", ErrInvalidConfig, settings.Provider)
	}
}
