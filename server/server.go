package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"agentcore_spec_agent/generator"
)

// SessionHeader carries the runtime session id assigned by the AgentCore runtime.
const SessionHeader = "X-Amzn-Bedrock-AgentCore-Runtime-Session-Id"

// InvocationHeader is set on every /invocations response.
const InvocationHeader = "X-Invocation-Id"

const maxPayloadBytes = 1 << 20

// Server exposes the router over the AgentCore HTTP contract.
type Server struct {
	router  *generator.Router
	timeout time.Duration
}

// Option customises a Server.
type Option func(*Server)

// WithInvocationTimeout bounds each invocation; zero means no deadline beyond the client's.
func WithInvocationTimeout(d time.Duration) Option {
	return func(s *Server) { s.timeout = d }
}

func New(router *generator.Router, opts ...Option) (*Server, error) {
	if router == nil {
		return nil, errors.New("request router required")
	}
	s := &Server{router: router}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(logMiddleware)
	r.Use(middleware.Recoverer)

	r.Get("/ping", s.handlePing)
	r.Post("/invocations", s.handleInvocation)
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	return r
}

// --- Handlers ---

type pingResp struct {
	Status string `json:"status"`
}

type errorResp struct {
	Error string `json:"error"`
}

func (s *Server) handlePing(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, pingResp{Status: "Healthy"})
}

func (s *Server) handleInvocation(w http.ResponseWriter, r *http.Request) {
	invocationID := uuid.NewString()
	sessionID := r.Header.Get(SessionHeader)
	w.Header().Set(InvocationHeader, invocationID)
	if sessionID != "" {
		w.Header().Set(SessionHeader, sessionID)
	}

	payload, err := DecodePayload(http.MaxBytesReader(w, r.Body, maxPayloadBytes))
	if err != nil {
		slog.WarnContext(r.Context(), "Rejected invocation payload",
			"invocation_id", invocationID,
			"error", err.Error())
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx := r.Context()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	resp := s.router.Handle(ctx, payload)
	slog.InfoContext(ctx, "Invocation handled",
		"invocation_id", invocationID,
		"session_id", sessionID,
		"action", payload.ResolvedAction(),
		"success", succeeded(resp),
		"duration_ms", time.Since(start).Milliseconds())

	writeJSON(w, http.StatusOK, resp)
}

// --- Helpers ---

var errNotObject = errors.New("payload must be a JSON object")

// DecodePayload reads a single JSON object into a Payload. Keys match exactly; a key that
// differs only in case is ignored.
func DecodePayload(body io.Reader) (generator.Payload, error) {
	raw, err := io.ReadAll(body)
	if err != nil {
		return generator.Payload{}, err
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return generator.Payload{}, errNotObject
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return generator.Payload{}, err
	}

	var p generator.Payload
	for _, f := range []struct {
		key string
		dst any
	}{
		{"action", &p.Action},
		{"prompt", &p.Prompt},
		{"projectName", &p.ProjectName},
		{"description", &p.Description},
		{"features", &p.Features},
		{"techStack", &p.TechStack},
		{"outputDir", &p.OutputDir},
	} {
		v, ok := fields[f.key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(v, f.dst); err != nil {
			return generator.Payload{}, fmt.Errorf("field %s: %w", f.key, err)
		}
	}
	return p, nil
}

func succeeded(resp any) bool {
	if r, ok := resp.(generator.SpecResult); ok {
		return r.Success
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResp{Error: msg})
}

func logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		level := slog.LevelInfo
		if r.URL.Path == "/ping" {
			level = slog.LevelDebug
		}
		slog.Log(r.Context(), level, "HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"request_id", middleware.GetReqID(r.Context()),
			"duration_ms", time.Since(start).Milliseconds())
	})
}
