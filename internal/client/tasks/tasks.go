// Package tasks runs best-effort background work (FCM token sync, analytics
// writes) whose failure must never interrupt the user flow. Failures are
// not swallowed silently: every outcome is logged with the task name so it
// stays observable in telemetry.
package tasks

import (
	"context"
	"sync"

	"github.com/sangamlabs/sangam/internal/logging"
)

type Runner struct {
	log logging.Logger
	wg  sync.WaitGroup
}

func NewRunner(log logging.Logger) *Runner {
	return &Runner{log: log}
}

// Go runs fn in the background. The error is logged, never returned: this is
// the explicit "best-effort" contract.
func (r *Runner) Go(ctx context.Context, name string, fn func(ctx context.Context) error) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		if err := fn(ctx); err != nil {
			r.log.Warn(ctx, "background task failed", "task", name, "error", err)
			return
		}
		r.log.Info(ctx, "background task done", "task", name)
	}()
}

// Wait blocks until all started tasks have finished. Used on shutdown.
func (r *Runner) Wait() {
	r.wg.Wait()
}
