// # cmd/indexer/serve.go
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"sherlock/internal/api"
	"sherlock/internal/core/config"
	"sherlock/internal/shared/observability"
	"sherlock/internal/shared/version"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newServeCmd(c *cli) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				c.cfg.Server.Address = addr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return c.serve(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides server.address)")
	return cmd
}

func (c *cli) serve(ctx context.Context) error {
	obs := c.cfg.Observability
	if obs.TracingEnabled {
		shutdown, err := observability.InitTracing(ctx, obs.OTLPEndpoint, obs.ServiceName, version.Version)
		if err != nil {
			return err
		}
		defer func() {
			flushCtx, cancel := context.WithTimeout(context.Background(), c.cfg.Server.ShutdownTimeout)
			defer cancel()
			if err := shutdown(flushCtx); err != nil {
				slog.Warn("tracer shutdown failed", "error", err)
			}
		}()
	}

	a, err := c.newApp()
	if err != nil {
		return fmt.Errorf("init: %w", err)
	}
	server, err := api.NewServer(a)
	if err != nil {
		return fmt.Errorf("init server: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Start(gctx)
	})
	if c.configFileExists() {
		watcher := config.NewWatcher(c.configPath, c.onConfigReload)
		g.Go(func() error {
			return watcher.Run(gctx)
		})
	}

	slog.Info("sherlock-indexer started",
		"version", version.Version,
		"addr", c.cfg.Server.Address,
		"languages", len(a.Service.Registry().Languages()),
		"extensions", a.Service.Registry().SupportedExtensions(),
	)
	return g.Wait()
}

// onConfigReload applies the settings that can change without a restart.
// Only the log level is live; other changes are logged and wait for the
// next start.
func (c *cli) onConfigReload(cfg *config.Config) {
	if !c.verbose {
		c.logLevel.Set(cfg.Log.SlogLevel())
	}
	slog.Info("configuration reloaded",
		"log_level", cfg.Log.Level,
		"restart_required", cfg.Server.Address != c.cfg.Server.Address || cfg.Paths.Root != c.cfg.Paths.Root,
	)
}
