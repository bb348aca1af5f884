package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/graft/internal/cli"
	"github.com/aretw0/graft/internal/host"
	httpAdapter "github.com/aretw0/graft/pkg/adapters/http"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP suggestion server",
	Long: `Synchronizes the definitions and serves the foreign tree over a JSON API:
GET /commands, /suggest, /usage/{command}, /metrics and /healthz.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, cfg, logger, err := setup(cmd)
		if err != nil {
			return err
		}
		defer engine.Close()

		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.HTTPAddr = addr
		}
		watch, _ := cmd.Flags().GetBool("watch")

		handler := httpAdapter.NewHandler[host.Listener](engine, host.ParseListener,
			httpAdapter.WithLogger(logger),
			httpAdapter.WithRateLimit(cfg.Limit(), cfg.RateBurst),
			httpAdapter.WithGatherer(engine.Metrics),
		)

		srv := &http.Server{
			Addr:    cfg.HTTPAddr,
			Handler: handler,
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		if watch {
			go func() {
				if err := cli.Watch(ctx, engine, logger); err != nil {
					logger.Error("Watcher unavailable", "err", err)
				}
			}()
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			logger.Info("Starting graft server", "addr", srv.Addr, "commands", len(engine.Commands()))
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		// Blocking main and waiting for shutdown.
		select {
		case err := <-serverErrors:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return fmt.Errorf("server error: %w", err)

		case sig := <-shutdown:
			logger.Info("Start shutdown", "signal", sig)
			cancel()

			// Give outstanding requests a deadline for completion.
			shutdownCtx, stop := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
			defer stop()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error("Graceful shutdown did not complete", "timeout", cfg.ShutdownTimeout, "err", err)
				return srv.Close()
			}
			logger.Info("graft server stopped gracefully")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "", "Address to listen on (env GRAFT_HTTP_ADDR)")
	serveCmd.Flags().BoolP("watch", "w", false, "Reload the definitions when the file changes")
}
