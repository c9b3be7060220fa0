package publisher

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agentcore_spec_agent/generator"
)

func generate(t *testing.T, outDir, response string) generator.SpecResult {
	t.Helper()
	agent, err := generator.NewAgent(generator.NewMockLLM(response))
	require.NoError(t, err)
	result := agent.GenerateSpec(context.Background(), generator.Payload{ProjectName: "Demo", OutputDir: &outDir})
	require.True(t, result.Success)
	return result
}

func TestPublish_WritesDocumentsInOrder(t *testing.T) {
	out := filepath.Join(t.TempDir(), "specs")
	result := generate(t, out, "# 요구사항\n\n- [ ] 항목")

	written, err := New(Options{}).Publish(context.Background(), result)
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(out, "10-requirements.md"),
		filepath.Join(out, "20-architecture.md"),
		filepath.Join(out, "30-backlog.md"),
		filepath.Join(out, "trace.yaml"),
	}, written)
	for _, path := range written {
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "# 요구사항\n\n- [ ] 항목", string(data))
	}
}

func TestPublish_HTMLPreview(t *testing.T) {
	out := t.TempDir()
	result := generate(t, out, "# Backlog\n\n- [ ] **TASK-001**: setup (8h)\n")

	written, err := New(Options{HTML: true}).Publish(context.Background(), result)
	require.NoError(t, err)

	// trace.yaml gets no preview.
	assert.Len(t, written, 7)
	assert.NoFileExists(t, filepath.Join(out, "trace.html"))

	page, err := os.ReadFile(filepath.Join(out, "30-backlog.html"))
	require.NoError(t, err)
	assert.Contains(t, string(page), `<meta charset="utf-8">`)
	assert.Contains(t, string(page), "<title>Demo</title>")
	assert.Contains(t, string(page), "<h1>Backlog</h1>")
	assert.Contains(t, string(page), `type="checkbox"`)
}

func TestPublish_RejectsFailedResult(t *testing.T) {
	_, err := New(Options{}).Publish(context.Background(), generator.SpecResult{Success: false, Error: "boom"})
	assert.ErrorIs(t, err, ErrFailedResult)
}

func TestPublish_CancelledContext(t *testing.T) {
	out := t.TempDir()
	result := generate(t, out, "x")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	written, err := New(Options{}).Publish(ctx, result)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, written)
}

func TestMarkdownToHTML(t *testing.T) {
	p := New(Options{})

	got, err := p.MarkdownToHTML("## 1. 프로젝트 개요\n\n| ID | 우선순위 |\n|----|----|\n| REQ-F-001 | High |\n")
	require.NoError(t, err)
	assert.Contains(t, got, "<h2>1. 프로젝트 개요</h2>")
	assert.Contains(t, got, "<table>")
	assert.Contains(t, got, "<td>REQ-F-001</td>")
}
