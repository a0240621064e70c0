// Package batch drives bulk operations over many records while respecting
// a fixed-rate throttle: operations run concurrently within a chunk, and
// consecutive chunks start at least MinInterval apart. Steady-state
// throughput is therefore capped at Size/MinInterval operations per
// second, independent of per-operation latency.
package batch

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/notehq/notehq.go/pkg/iterator"
	"github.com/notehq/notehq.go/pkg/logger"
)

const (
	// DefaultSize is the default chunk size.
	DefaultSize = 10
	// DefaultMinInterval is the default spacing between chunk starts.
	DefaultMinInterval = time.Second
)

// Executor holds the throttle configuration. Non-positive fields fall
// back to the defaults at run time, so the zero value throttles at
// DefaultSize per DefaultMinInterval.
type Executor struct {
	// Size is the maximum number of operations in flight at once.
	Size int
	// MinInterval is the minimum time between the starts of two
	// consecutive chunks.
	MinInterval time.Duration

	log logger.Logger
}

// Option configures an Executor.
type Option func(*Executor)

// WithLogger sets the logger used for chunk progress.
func WithLogger(l logger.Logger) Option {
	return func(e *Executor) { e.log = l }
}

// NewExecutor builds an Executor, applying defaults for non-positive
// size or interval.
func NewExecutor(size int, minInterval time.Duration, opts ...Option) *Executor {
	e := &Executor{Size: size, MinInterval: minInterval, log: logger.Nop{}}
	if e.Size <= 0 {
		e.Size = DefaultSize
	}
	if e.MinInterval <= 0 {
		e.MinInterval = DefaultMinInterval
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run applies op to every item, in chunks of e.Size. Results are returned
// in item order. The first failing op aborts after its chunk drains; the
// partial results collected so far are returned alongside the error.
//
// Cancelling ctx stops further chunks from being issued; operations
// already dispatched in the current chunk run to completion.
func Run[T, R any](ctx context.Context, e *Executor, items []T, op func(context.Context, T) (R, error)) ([]R, error) {
	size, interval := e.throttle()
	results := make([]R, len(items))
	done := 0

	var lastStart time.Time
	for start := 0; start < len(items); start += size {
		if err := waitInterval(ctx, interval, lastStart); err != nil {
			return results[:done], err
		}
		lastStart = time.Now()

		end := start + size
		if end > len(items) {
			end = len(items)
		}

		g, gctx := errgroup.WithContext(ctx)
		for i := start; i < end; i++ {
			i := i
			g.Go(func() error {
				r, err := op(gctx, items[i])
				if err != nil {
					return err
				}
				results[i] = r
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			e.log.Warn("batch chunk failed", "offset", start, "error", err)
			return results[:done], err
		}
		done = end
		e.log.Debug("batch chunk complete", "offset", start, "size", end-start)
	}
	return results[:done], nil
}

// RunSeq is Run over a lazy sequence: each chunk is pulled from the
// sequence right before it is dispatched, so bulk operations over large
// query results never materialize the whole result set. It returns the
// number of operations that completed.
func RunSeq[T, R any](ctx context.Context, e *Executor, seq *iterator.Seq[T], op func(context.Context, T) (R, error)) (int, error) {
	size, interval := e.throttle()
	count := 0
	var lastStart time.Time

	err := iterator.Batches(seq, size).ForEach(ctx, func(chunk []T) error {
		if err := waitInterval(ctx, interval, lastStart); err != nil {
			return err
		}
		lastStart = time.Now()

		g, gctx := errgroup.WithContext(ctx)
		for _, item := range chunk {
			item := item
			g.Go(func() error {
				_, err := op(gctx, item)
				return err
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
		count += len(chunk)
		return nil
	})
	return count, err
}

// throttle returns the effective chunk size and interval, substituting
// defaults for non-positive fields so a hand-built Executor cannot stall
// chunking. It also substitutes a no-op logger for a nil one so the zero
// value is usable.
func (e *Executor) throttle() (int, time.Duration) {
	if e.log == nil {
		e.log = logger.Nop{}
	}
	size, interval := e.Size, e.MinInterval
	if size <= 0 {
		size = DefaultSize
	}
	if interval <= 0 {
		interval = DefaultMinInterval
	}
	return size, interval
}

// waitInterval sleeps out the remainder of the throttle window that began
// at lastStart. A zero lastStart (first chunk) does not wait.
func waitInterval(ctx context.Context, interval time.Duration, lastStart time.Time) error {
	if lastStart.IsZero() {
		return ctx.Err()
	}
	wait := interval - time.Since(lastStart)
	if wait <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
