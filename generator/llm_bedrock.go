package generator

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const anthropicBedrockVersion = "bedrock-2023-05-31"

// bedrockInvoker is the slice of the Bedrock runtime client used here.
type bedrockInvoker interface {
	InvokeModel(ctx context.Context, params *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error)
}

// BedrockLLM implements LLMClient with the Anthropic Messages API on Amazon Bedrock.
// Credentials come from the default AWS chain (execution role, env, shared config).
type BedrockLLM struct {
	client    bedrockInvoker
	model     string
	maxTokens int
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicRequest struct {
	AnthropicVersion string             `json:"anthropic_version"`
	MaxTokens        int                `json:"max_tokens"`
	Messages         []anthropicMessage `json:"messages"`
}

type anthropicContent struct {
	Type string  `json:"type"`
	Text *string `json:"text"`
}

type anthropicResponse struct {
	Content []anthropicContent `json:"content"`
}

// NewBedrockLLM loads the default AWS configuration for the settings' region.
func NewBedrockLLM(ctx context.Context, settings LLMSettings) (*BedrockLLM, error) {
	region := settings.Region
	if region == "" {
		region = DefaultRegion
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("%w: load aws config: %w", ErrInvalidConfig, err)
	}
	return newBedrockLLM(bedrockruntime.NewFromConfig(cfg), settings.Model, settings.MaxTokens), nil
}

func newBedrockLLM(client bedrockInvoker, model string, maxTokens int) *BedrockLLM {
	if model == "" {
		model = DefaultModel
	}
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	return &BedrockLLM{client: client, model: model, maxTokens: maxTokens}
}

func (b *BedrockLLM) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, span := tracer.Start(ctx, "llm.complete", trace.WithAttributes(
		attribute.String("llm.provider", ProviderBedrock),
		attribute.String("llm.model", b.model),
		attribute.Int("llm.prompt_chars", len([]rune(prompt))),
	))
	defer span.End()

	text, err := b.invoke(ctx, prompt)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}
	return text, nil
}

func (b *BedrockLLM) invoke(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(anthropicRequest{
		AnthropicVersion: anthropicBedrockVersion,
		MaxTokens:        b.maxTokens,
		Messages:         []anthropicMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", fmt.Errorf("%w: encode request: %w", ErrGenerationFailed, err)
	}

	out, err := b.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(b.model),
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
		Body:        body,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}
	return parseAnthropicResponse(out.Body)
}

func parseAnthropicResponse(raw []byte) (string, error) {
	var resp anthropicResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return "", fmt.Errorf("%w: %w: %w", ErrGenerationFailed, ErrMalformedResponse, err)
	}
	if len(resp.Content) == 0 || resp.Content[0].Text == nil {
		return "", fmt.Errorf("%w: %w: missing content[0].text", ErrGenerationFailed, ErrMalformedResponse)
	}
	return *resp.Content[0].Text, nil
}
