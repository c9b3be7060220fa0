package generator

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeInvoker struct {
	body  string
	err   error
	input *bedrockruntime.InvokeModelInput
}

func (f *fakeInvoker) InvokeModel(_ context.Context, params *bedrockruntime.InvokeModelInput, _ ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &bedrockruntime.InvokeModelOutput{Body: []byte(f.body)}, nil
}

func TestBedrockLLM_Complete(t *testing.T) {
	invoker := &fakeInvoker{body: `{"id":"msg_1","type":"message","role":"assistant","content":[{"type":"text","text":"# Requirements Document"}],"stop_reason":"end_turn"}`}
	llm := newBedrockLLM(invoker, "", 0)

	text, err := llm.Complete(context.Background(), "요구사항을 작성해주세요")
	require.NoError(t, err)
	assert.Equal(t, "# Requirements Document", text)

	require.NotNil(t, invoker.input)
	assert.Equal(t, DefaultModel, aws.ToString(invoker.input.ModelId))
	assert.Equal(t, "application/json", aws.ToString(invoker.input.ContentType))
	assert.Equal(t, "application/json", aws.ToString(invoker.input.Accept))

	var sent map[string]any
	require.NoError(t, json.Unmarshal(invoker.input.Body, &sent))
	assert.Equal(t, "bedrock-2023-05-31", sent["anthropic_version"])
	assert.Equal(t, float64(4000), sent["max_tokens"])
	assert.Equal(t, []any{map[string]any{"role": "user", "content": "요구사항을 작성해주세요"}}, sent["messages"])
}

func TestBedrockLLM_CustomModel(t *testing.T) {
	invoker := &fakeInvoker{body: `{"content":[{"type":"text","text":"ok"}]}`}
	llm := newBedrockLLM(invoker, "anthropic.claude-3-haiku-20240307-v1:0", 512)

	_, err := llm.Complete(context.Background(), "p")
	require.NoError(t, err)
	assert.Equal(t, "anthropic.claude-3-haiku-20240307-v1:0", aws.ToString(invoker.input.ModelId))
	assert.Contains(t, string(invoker.input.Body), `"max_tokens":512`)
}

func TestBedrockLLM_Errors(t *testing.T) {
	tests := []struct {
		name          string
		invoker       *fakeInvoker
		wantMalformed bool
		wantMsg       string
	}{
		{
			name:    "transport failure",
			invoker: &fakeInvoker{err: errors.New("ThrottlingException: Too many requests")},
			wantMsg: "ThrottlingException: Too many requests",
		},
		{
			name:          "empty content",
			invoker:       &fakeInvoker{body: `{"content":[]}`},
			wantMalformed: true,
		},
		{
			name:          "missing text",
			invoker:       &fakeInvoker{body: `{"content":[{"type":"tool_use"}]}`},
			wantMalformed: true,
		},
		{
			name:          "not json",
			invoker:       &fakeInvoker{body: `<html>`},
			wantMalformed: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			llm := newBedrockLLM(tt.invoker, "", 0)

			_, err := llm.Complete(context.Background(), "p")
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrGenerationFailed)
			assert.Equal(t, tt.wantMalformed, errors.Is(err, ErrMalformedResponse))
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}
