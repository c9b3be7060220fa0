package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"

	"agentcore_spec_agent/config"
	"agentcore_spec_agent/generator"
	"agentcore_spec_agent/telemetry"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "spec-agent",
	Short: "Spec agent - AgentCore runtime that drafts project specification documents",
	Long: `spec-agent answers AgentCore invocations. The "chat" action echoes the prompt,
the "generate_spec" action asks Claude on Bedrock for a requirements document,
an architecture document, a task backlog and a traceability matrix.

Run "spec-agent serve" inside the runtime container, or use the generate,
invoke and chat commands locally.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config.json (optional)")
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// app holds everything a command needs once configuration is loaded.
type app struct {
	cfg     config.Config
	agent   *generator.Agent
	router  *generator.Router
	closers []func(context.Context) error
}

// setup loads configuration, installs logging, tracing and metrics, then builds the model client,
// the workflow and the router. Logs and spans go to stderr so stdout stays machine readable.
func setup(ctx context.Context) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	logger, err := telemetry.NewLogger(os.Stderr, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(logger)

	rt := &app{cfg: cfg}
	if cfg.Telemetry.Tracing {
		shutdown, err := telemetry.InitTracer(os.Stderr, cfg.Telemetry.ServiceName)
		if err != nil {
			return nil, err
		}
		rt.closers = append(rt.closers, shutdown)
	}
	if cfg.Telemetry.Metrics {
		shutdown, err := telemetry.InitMeter(os.Stderr, cfg.Telemetry.ServiceName, time.Duration(cfg.Telemetry.MetricsInterval))
		if err != nil {
			rt.shutdown()
			return nil, err
		}
		rt.closers = append(rt.closers, shutdown)
	}

	llm, err := generator.NewLLMFromConfig(ctx, cfg.LLMSettings())
	if err != nil {
		rt.shutdown()
		return nil, err
	}
	metrics, err := telemetry.NewWorkflowMetrics(otel.GetMeterProvider())
	if err != nil {
		rt.shutdown()
		return nil, fmt.Errorf("register metrics: %w", err)
	}
	agent, err := generator.NewAgent(llm, generator.WithRecorder(metrics))
	if err != nil {
		rt.shutdown()
		return nil, err
	}
	router, err := generator.NewRouter(agent)
	if err != nil {
		rt.shutdown()
		return nil, err
	}

	slog.InfoContext(ctx, "Spec agent configured",
		"provider", cfg.LLM.Provider,
		"model", cfg.LLM.Model,
		"tracing", cfg.Telemetry.Tracing,
		"metrics", cfg.Telemetry.Metrics)

	rt.agent, rt.router = agent, router
	return rt, nil
}

// shutdown flushes telemetry providers in reverse order of installation.
func (rt *app) shutdown() {
	for i := len(rt.closers) - 1; i >= 0; i-- {
		if err := rt.closers[i](context.Background()); err != nil {
			slog.Error("Failed to flush telemetry", "error", err)
		}
	}
}
