package tasks

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sangamlabs/sangam/internal/logging"
)

func newRunner() *Runner {
	return NewRunner(logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
}

func TestRunner_RunsTask(t *testing.T) {
	r := newRunner()
	var ran atomic.Bool

	r.Go(context.Background(), "sync", func(ctx context.Context) error {
		ran.Store(true)
		return nil
	})
	r.Wait()

	assert.True(t, ran.Load())
}

func TestRunner_FailureDoesNotPropagate(t *testing.T) {
	r := newRunner()

	r.Go(context.Background(), "sync", func(ctx context.Context) error {
		return errors.New("push gateway down")
	})
	r.Wait()
	// reaching here without a panic is the contract
}

func TestRunner_WaitBlocksForAllTasks(t *testing.T) {
	r := newRunner()
	var count atomic.Int32

	for i := 0; i < 5; i++ {
		r.Go(context.Background(), "n", func(ctx context.Context) error {
			count.Add(1)
			return nil
		})
	}
	r.Wait()

	assert.EqualValues(t, 5, count.Load())
}
