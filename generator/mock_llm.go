package generator

import (
	"context"
	"strings"
	"sync"
)

// MockLLM is a deterministic stand-in for local runs and tests. It never calls a remote model.
//
// With Err set, every call fails, or only call number FailOnCall (1-based) when that is non-zero.
// Every attempt is counted, including failing ones; only the last MaxRecordedPrompts prompts are kept.
type MockLLM struct {
	Response   string
	Err        error
	FailOnCall int

	mu      sync.Mutex
	calls   int
	prompts []string
}

// MaxRecordedPrompts bounds the prompt log of a long-running mock.
const MaxRecordedPrompts = 64

// NewMockLLM returns a mock answering every prompt with response.
func NewMockLLM(response string) *MockLLM {
	return &MockLLM{Response: response}
}

func (m *MockLLM) Complete(_ context.Context, prompt string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls++
	if len(m.prompts) == MaxRecordedPrompts {
		m.prompts = append(m.prompts[:0], m.prompts[1:]...)
	}
	m.prompts = append(m.prompts, prompt)
	if m.Err != nil && (m.FailOnCall == 0 || m.FailOnCall == m.calls) {
		return "", m.Err
	}
	if m.Response != "" {
		return m.Response, nil
	}
	return mockDocument(prompt), nil
}

// Calls reports how many completions were attempted.
func (m *MockLLM) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Prompts returns a copy of the most recent prompts in call order.
func (m *MockLLM) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.prompts...)
}

// mockDocument echoes the prompt's first line under a heading so output stays recognisable.
func mockDocument(prompt string) string {
	first, _, _ := strings.Cut(prompt, "\n")
	var sb strings.Builder
	sb.WriteString("# Mock Document\n\n")
	sb.WriteString("> ")
	sb.WriteString(strings.TrimSpace(first))
	sb.WriteString("\n\n```\n")
	sb.WriteString(prompt)
	sb.WriteString("\n```\n")
	return sb.String()
}
