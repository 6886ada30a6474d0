package registry

import (
	"context"
	"log/slog"
	"time"
)

// Worker periodically re-runs the registry's reconciliation pass so
// registrations created while the service runs get their endpoints mounted
// without a restart.
type Worker struct {
	registry *Registry
	interval time.Duration
	logger   *slog.Logger
	stopCh   chan struct{}
}

func NewWorker(registry *Registry, logger *slog.Logger, interval time.Duration) *Worker {
	return &Worker{
		registry: registry,
		interval: interval,
		logger:   logger,
		stopCh:   make(chan struct{}),
	}
}

// Run reconciles once immediately, then on every tick until the context is
// cancelled or Stop is called. Reconcile failures only skip the cycle.
func (w *Worker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Info("registry refresh worker started", "interval", w.interval)

	if err := w.registry.Reconcile(ctx); err != nil {
		w.logger.Error("failed to reconcile endpoint registry", "error", err)
	}

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("registry refresh worker stopped")
			return
		case <-w.stopCh:
			w.logger.Info("registry refresh worker stopped")
			return
		case <-ticker.C:
			if err := w.registry.Reconcile(ctx); err != nil {
				w.logger.Error("failed to reconcile endpoint registry", "error", err)
			}
		}
	}
}

func (w *Worker) Stop() {
	close(w.stopCh)
}
