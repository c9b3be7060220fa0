package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"agentcore_spec_agent/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the AgentCore runtime contract (GET /ping, POST /invocations)",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides server_addr / SERVER_ADDR)")
}

func runServe(cmd *cobra.Command, args []string) error {
	rt, err := setup(cmd.Context())
	if err != nil {
		return err
	}
	defer rt.shutdown()

	srv, err := server.New(rt.router, server.WithInvocationTimeout(time.Duration(rt.cfg.InvocationTimeout)))
	if err != nil {
		return err
	}

	addr := rt.cfg.ServerAddr
	if serveAddr != "" {
		addr = serveAddr
	}
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Starting spec agent", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case sig := <-quit:
		slog.Info("Shutting down spec agent", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(rt.cfg.ShutdownTimeout))
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		return err
	}
	slog.Info("Spec agent stopped")
	return nil
}
