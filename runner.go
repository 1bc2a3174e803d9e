package structeval

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Runner lets the suite schedule evaluation work with any concurrency model.
type Runner interface {
	Go(fn func() error) // schedule
	Wait() error        // join / propagate first err
}

// DefaultRunner returns the default implementation backed by errgroup.Group,
// bounded by the CPU count.
func DefaultRunner(ctx context.Context) Runner {
	return NewLimitedRunner(ctx, runtime.NumCPU())
}

// NewLimitedRunner creates a runner with bounded concurrency.
func NewLimitedRunner(ctx context.Context, maxConcurrency int) Runner {
	eg, _ := errgroup.WithContext(ctx)
	if maxConcurrency > 0 {
		eg.SetLimit(maxConcurrency)
	}
	return &errGroupRunner{eg: eg}
}

type errGroupRunner struct {
	eg *errgroup.Group
}

func (r *errGroupRunner) Go(fn func() error) { r.eg.Go(fn) }
func (r *errGroupRunner) Wait() error        { return r.eg.Wait() }
