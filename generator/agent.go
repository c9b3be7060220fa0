package generator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// ErrProjectNameRequired is reported, without any model call, when generate_spec lacks a project name.
var ErrProjectNameRequired = errors.New("projectName is required for generate_spec action")

// Recorder receives workflow measurements. telemetry.WorkflowMetrics implements it.
type Recorder interface {
	RecordInvocation(ctx context.Context, action string)
	RecordSpecRun(ctx context.Context, success bool, d time.Duration)
	RecordDocument(ctx context.Context, document string, d time.Duration, err error)
}

type nopRecorder struct{}

func (nopRecorder) RecordInvocation(context.Context, string) {}
func (nopRecorder) RecordSpecRun(context.Context, bool, time.Duration) {}
func (nopRecorder) RecordDocument(context.Context, string, time.Duration, error) {}

// Agent runs the four-document specification workflow against one LLMClient.
type Agent struct {
	llm     LLMClient
	metrics Recorder
}

// AgentOption customises an Agent.
type AgentOption func(*Agent)

// WithRecorder routes workflow measurements to r.
func WithRecorder(r Recorder) AgentOption {
	return func(a *Agent) {
		if r != nil {
			a.metrics = r
		}
	}
}

func NewAgent(llm LLMClient, opts ...AgentOption) (*Agent, error) {
	if llm == nil {
		return nil, errors.New("llm client is required")
	}
	a := &Agent{llm: llm, metrics: nopRecorder{}}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// GenerateSpec validates the payload, then generates requirements, architecture, backlog and
// trace strictly in that order. Any failure aborts the run and nothing partial is returned.
func (a *Agent) GenerateSpec(ctx context.Context, p Payload) (result SpecResult) {
	if p.ProjectName == "" {
		return SpecResult{Success: false, Error: ErrProjectNameRequired.Error()}
	}
	outputDir := p.ResolvedOutputDir()

	ctx, span := tracer.Start(ctx, "spec.generate", trace.WithAttributes(
		attribute.String("spec.project", p.ProjectName),
		attribute.Int("spec.features", len(p.Features)),
		attribute.Int("spec.tech_stack", len(p.TechStack)),
	))
	defer span.End()

	start := time.Now()
	slog.InfoContext(ctx, "Starting spec generation", "project", p.ProjectName)

	defer func() {
		if r := recover(); r != nil {
			result = a.fail(ctx, span, p.ProjectName, start, fmt.Errorf("%v", r))
		}
	}()

	projectContext := BuildProjectContext(p.ProjectName, p.Description, p.Features, p.TechStack)
	texts, err := a.generateDocuments(ctx, projectContext)
	if err != nil {
		return a.fail(ctx, span, p.ProjectName, start, err)
	}

	docs := assembleDocuments(outputDir, texts)
	a.metrics.RecordSpecRun(ctx, true, time.Since(start))
	slog.InfoContext(ctx, "Spec generation completed successfully",
		"project", p.ProjectName,
		"duration_ms", time.Since(start).Milliseconds())

	return SpecResult{
		Success:     true,
		Message:     fmt.Sprintf("Successfully generated spec documents for %s", p.ProjectName),
		ProjectName: p.ProjectName,
		Files:       &docs,
	}
}

func (a *Agent) fail(ctx context.Context, span trace.Span, project string, start time.Time, err error) SpecResult {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	a.metrics.RecordSpecRun(ctx, false, time.Since(start))
	slog.ErrorContext(ctx, "Spec generation failed", "project", project, "error", err.Error())
	return SpecResult{
		Success: false,
		Error:   fmt.Sprintf("Failed to generate spec: %s", err.Error()),
	}
}

// generateDocuments issues the four calls in dependency order: the backlog prompt quotes the
// requirements, and the trace matrix refers to all three earlier documents.
func (a *Agent) generateDocuments(ctx context.Context, projectContext string) (generatedTexts, error) {
	var texts generatedTexts
	var err error

	if texts.requirements, err = a.generate(ctx, DocRequirements, BuildRequirementsPrompt(projectContext)); err != nil {
		return generatedTexts{}, err
	}
	if texts.architecture, err = a.generate(ctx, DocArchitecture, BuildArchitecturePrompt(projectContext)); err != nil {
		return generatedTexts{}, err
	}
	if texts.backlog, err = a.generate(ctx, DocBacklog, BuildBacklogPrompt(projectContext, texts.requirements)); err != nil {
		return generatedTexts{}, err
	}
	if texts.trace, err = a.generate(ctx, DocTrace, BuildTracePrompt(projectContext)); err != nil {
		return generatedTexts{}, err
	}
	return texts, nil
}

func (a *Agent) generate(ctx context.Context, document, prompt string) (string, error) {
	ctx, span := tracer.Start(ctx, "spec.document", trace.WithAttributes(
		attribute.String("spec.document", document),
	))
	defer span.End()

	slog.InfoContext(ctx, "Generating document", "document", document)
	start := time.Now()
	text, err := a.llm.Complete(ctx, prompt)
	a.metrics.RecordDocument(ctx, document, time.Since(start), err)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		slog.ErrorContext(ctx, "Document generation failed", "document", document, "error", err.Error())
		return "", err
	}
	span.SetAttributes(attribute.Int("spec.document_chars", len([]rune(text))))
	return text, nil
}
