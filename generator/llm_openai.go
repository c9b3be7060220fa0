package generator

import (
	"context"
	"fmt"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// OpenAILLM implements LLMClient with the openai-go SDK (chat completions).
// It also serves OpenAI-compatible gateways such as DeepSeek through BaseURL.
type OpenAILLM struct {
	client    openai.Client
	provider  string
	model     string
	maxTokens int
}

// NewOpenAILLM builds the client once; extra options are appended after the settings-derived ones.
func NewOpenAILLM(settings LLMSettings, extra ...option.RequestOption) (*OpenAILLM, error) {
	if settings.APIKey == "" {
		return nil, fmt.Errorf("%w: openai api key missing; provide llm.api_key", ErrInvalidConfig)
	}
	if settings.Model == "" {
		return nil, fmt.Errorf("%w: llm model is required", ErrInvalidConfig)
	}
	opts := []option.RequestOption{option.WithAPIKey(settings.APIKey)}
	if settings.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(settings.BaseURL))
	}
	opts = append(opts, extra...)

	provider := settings.Provider
	if provider == "" {
		provider = ProviderOpenAI
	}
	maxTokens := settings.MaxTokens
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	return &OpenAILLM{
		client:    openai.NewClient(opts...),
		provider:  provider,
		model:     settings.Model,
		maxTokens: maxTokens,
	}, nil
}

func (o *OpenAILLM) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, span := tracer.Start(ctx, "llm.complete", trace.WithAttributes(
		attribute.String("llm.provider", o.provider),
		attribute.String("llm.model", o.model),
		attribute.Int("llm.prompt_chars", len([]rune(prompt))),
	))
	defer span.End()

	resp, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:     openai.ChatModel(o.model),
		Messages:  []openai.ChatCompletionMessageParamUnion{openai.UserMessage(prompt)},
		MaxTokens: openai.Int(int64(o.maxTokens)),
	})
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrGenerationFailed, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}
	if len(resp.Choices) == 0 {
		err = fmt.Errorf("%w: %w: empty choices", ErrGenerationFailed, ErrMalformedResponse)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}
	return resp.Choices[0].Message.Content, nil
}
