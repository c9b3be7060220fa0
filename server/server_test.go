package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agentcore_spec_agent/generator"
)

func newTestServer(t *testing.T, llm generator.LLMClient) *httptest.Server {
	t.Helper()
	agent, err := generator.NewAgent(llm)
	require.NoError(t, err)
	router, err := generator.NewRouter(agent)
	require.NoError(t, err)
	srv, err := New(router)
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Routes())
	t.Cleanup(ts.Close)
	return ts
}

func invoke(t *testing.T, ts *httptest.Server, body string, headers map[string]string) (*http.Response, map[string]any) {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, ts.URL+"/invocations", strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp, out
}

func TestNew_RequiresRouter(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)
}

func TestPing(t *testing.T) {
	ts := newTestServer(t, generator.NewMockLLM("x"))

	resp, err := http.Get(ts.URL + "/ping")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var out map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "Healthy", out["status"])
}

func TestInvocations_Chat(t *testing.T) {
	ts := newTestServer(t, generator.NewMockLLM("x"))

	resp, out := invoke(t, ts, `{"prompt": "hi"}`, map[string]string{SessionHeader: "session-123"})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "session-123", resp.Header.Get(SessionHeader))
	assert.NotEmpty(t, resp.Header.Get(InvocationHeader))
	result, ok := out["result"].(string)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(result, "Hello! You said: 'hi'\n\n"))
	assert.Contains(t, result, "- chat: Have a conversation with me")
	assert.Contains(t, result, "- generate_spec: Generate project specification documents")
}

func TestInvocations_GenerateSpec(t *testing.T) {
	ts := newTestServer(t, generator.NewMockLLM("# Doc <ok>"))

	resp, out := invoke(t, ts, `{
		"action": "generate_spec",
		"projectName": "Demo",
		"features": ["Login"],
		"techStack": ["Go"],
		"outputDir": "./out"
	}`, nil)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, out["success"])
	assert.Equal(t, "Demo", out["projectName"])
	assert.Equal(t, "Successfully generated spec documents for Demo", out["message"])
	assert.NotContains(t, out, "error")

	files, ok := out["files"].(map[string]any)
	require.True(t, ok)
	require.Len(t, files, 4)
	wantPaths := map[string]string{
		"requirements": "./out/10-requirements.md",
		"architecture": "./out/20-architecture.md",
		"backlog":      "./out/30-backlog.md",
		"trace":        "./out/trace.yaml",
	}
	for key, path := range wantPaths {
		doc := files[key].(map[string]any)
		assert.Equal(t, path, doc["path"])
		assert.Equal(t, "# Doc <ok>", doc["content"])
		assert.Equal(t, float64(10), doc["size"])
	}
}

func TestInvocations_GenerateSpecFailures(t *testing.T) {
	t.Run("missing project name", func(t *testing.T) {
		mock := generator.NewMockLLM("x")
		ts := newTestServer(t, mock)

		resp, out := invoke(t, ts, `{"action": "generate_spec"}`, nil)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, map[string]any{
			"success": false,
			"error":   "projectName is required for generate_spec action",
		}, out)
		assert.Equal(t, 0, mock.Calls())
	})

	t.Run("model failure", func(t *testing.T) {
		ts := newTestServer(t, &generator.MockLLM{Err: errors.New("connection reset")})

		_, out := invoke(t, ts, `{"action": "generate_spec", "projectName": "Demo"}`, nil)

		assert.Equal(t, map[string]any{
			"success": false,
			"error":   "Failed to generate spec: connection reset",
		}, out)
	})
}

func TestInvocations_BadPayload(t *testing.T) {
	ts := newTestServer(t, generator.NewMockLLM("x"))

	for name, body := range map[string]string{
		"not json":       `action=chat`,
		"array":          `[1, 2]`,
		"null":           `null`,
		"empty":          ``,
		"wrong type":     `{"features": "Login"}`,
		"truncated json": `{"action": "chat"`,
	} {
		t.Run(name, func(t *testing.T) {
			resp, out := invoke(t, ts, body, nil)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.NotEmpty(t, out["error"])
		})
	}
}

func TestInvocations_KeysAreCaseSensitive(t *testing.T) {
	mock := generator.NewMockLLM("x")
	ts := newTestServer(t, mock)

	for name, body := range map[string]string{
		"upper-cased action": `{"Action": "generate_spec", "PROJECTNAME": "X"}`,
		"upper-cased prompt": `{"PROMPT": "secret"}`,
		"title-cased prompt": `{"action": "chat", "Prompt": "secret"}`,
	} {
		t.Run(name, func(t *testing.T) {
			resp, out := invoke(t, ts, body, nil)

			assert.Equal(t, http.StatusOK, resp.StatusCode)
			result, ok := out["result"].(string)
			require.True(t, ok, "answered as chat")
			assert.True(t, strings.HasPrefix(result, "Hello! You said: 'No prompt provided'\n\n"))
		})
	}
	assert.Equal(t, 0, mock.Calls())
}

func TestDecodePayload(t *testing.T) {
	p, err := DecodePayload(strings.NewReader(`{
		"action": "generate_spec",
		"projectName": "Demo",
		"description": "d",
		"features": ["a", "b"],
		"techStack": ["Go"],
		"outputDir": "",
		"prompt": null,
		"ProjectName": "ignored"
	}`))
	require.NoError(t, err)

	assert.Equal(t, "generate_spec", p.Action)
	assert.Equal(t, "Demo", p.ProjectName)
	assert.Equal(t, "d", p.Description)
	assert.Equal(t, []string{"a", "b"}, p.Features)
	assert.Equal(t, []string{"Go"}, p.TechStack)
	require.NotNil(t, p.OutputDir)
	assert.Equal(t, "", *p.OutputDir)
	assert.Nil(t, p.Prompt)

	_, err = DecodePayload(strings.NewReader(`{"techStack": "Go"}`))
	assert.ErrorContains(t, err, "field techStack")
}

func TestInvocations_MethodNotAllowed(t *testing.T) {
	ts := newTestServer(t, generator.NewMockLLM("x"))

	resp, err := http.Get(ts.URL + "/invocations")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}
