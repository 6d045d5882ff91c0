package sync

import (
	"context"
	"fmt"
	"time"

	"github.com/stanleymf/order-to-do-app-sub000/pkg/logger"
)

const defaultInterval = 5 * time.Minute

// WorkerParams configure the polling worker.
type WorkerParams struct {
	Logger   *logger.Logger
	Service  *Service
	Lock     Lock
	Interval time.Duration
}

// Worker runs the sync pass on a fixed cadence, guarded by a distributed
// lock so overlapping deployments never double-poll a store.
type Worker struct {
	logg     *logger.Logger
	service  *Service
	lock     Lock
	interval time.Duration
}

// NewWorker builds a sync worker.
func NewWorker(params WorkerParams) (*Worker, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Service == nil {
		return nil, fmt.Errorf("sync service required")
	}
	if params.Lock == nil {
		return nil, fmt.Errorf("lock required")
	}
	interval := params.Interval
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Worker{
		logg:     params.Logger,
		service:  params.Service,
		lock:     params.Lock,
		interval: interval,
	}, nil
}

// Run starts the polling loop until the context is canceled. The first
// pass fires immediately.
func (w *Worker) Run(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := w.runCycle(ctx); err != nil {
		w.logg.Error(ctx, "sync cycle failed", err)
	}
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logg.Info(ctx, "sync worker context canceled")
			return ctx.Err()
		case <-ticker.C:
			if err := w.runCycle(ctx); err != nil {
				w.logg.Error(ctx, "sync cycle failed", err)
			}
		}
	}
}

func (w *Worker) runCycle(ctx context.Context) error {
	locked, err := w.lock.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("lock acquire: %w", err)
	}
	if !locked {
		w.logg.Info(ctx, "another sync instance is running; skipping this cycle")
		return nil
	}
	defer func() {
		if relErr := w.lock.Release(ctx); relErr != nil {
			w.logg.Error(ctx, "failed to release sync lock", relErr)
		}
	}()

	w.logg.Info(ctx, "sync pass starting")
	if err := w.service.SyncAll(ctx); err != nil {
		return err
	}
	w.logg.Info(ctx, "sync pass complete")
	return nil
}
