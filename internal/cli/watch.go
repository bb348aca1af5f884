package cli

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aretw0/graft/pkg/ports"
)

// ErrNotWatchable is returned by Watch when the definitions cannot be watched.
var ErrNotWatchable = errors.New("definitions do not support watching")

// Watch reloads the engine every time its definitions change, until ctx is done.
// A failed reload keeps the previous commands and waits for the next change.
func Watch(ctx context.Context, e *Engine, logger *slog.Logger) error {
	w, ok := e.Loader.(ports.Watchable)
	if !ok {
		return ErrNotWatchable
	}
	watchCh, err := w.Watch(ctx)
	if err != nil {
		return err
	}

	logger.Info("Starting Watcher")
	for {
		select {
		case <-ctx.Done():
			logger.Info("Stopping watcher")
			return nil
		case _, ok := <-watchCh:
			if !ok {
				return nil
			}
			logger.Info("Change detected, triggering reload")
			if err := e.Reload(); err != nil {
				logger.Error("Reload failed, keeping previous commands", "err", err)
				continue
			}
			logger.Info("Commands reloaded", "count", len(e.Commands()))
		}
	}
}
