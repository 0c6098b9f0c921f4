package service

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/olusolaa/netbox-reconciler/internal/core/domain"
	"github.com/olusolaa/netbox-reconciler/internal/core/ports"
	"github.com/olusolaa/netbox-reconciler/internal/errors"
	"github.com/olusolaa/netbox-reconciler/internal/log"
)

const defaultConcurrency = 10

// BatchRunner applies independent invocations concurrently. A failing
// invocation is recorded in its result and does not stop the others.
type BatchRunner struct {
	runner      ports.Runner
	logger      ports.Logger
	concurrency int
}

func NewBatchRunner(runner ports.Runner, logger ports.Logger, concurrency int) (*BatchRunner, error) {
	if runner == nil {
		return nil, errors.New(errors.CodeInternal, "runner cannot be nil")
	}
	if logger == nil {
		logger = log.NewNop()
	}
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	return &BatchRunner{runner: runner, logger: logger, concurrency: concurrency}, nil
}

// Apply runs every invocation and returns the results in input order.
func (b *BatchRunner) Apply(ctx context.Context, invocations []domain.Invocation) ([]domain.BatchResult, error) {
	b.logger.Infof(ctx, "Applying %d objects with concurrency %d", len(invocations), b.concurrency)

	results := make([]domain.BatchResult, len(invocations))
	var mu sync.Mutex
	var g errgroup.Group
	g.SetLimit(b.concurrency)

	for i, inv := range invocations {
		if err := ctx.Err(); err != nil {
			mu.Lock()
			results[i] = domain.BatchResult{Index: i, Category: inv.Category, Ref: inv.Ref, Err: err}
			mu.Unlock()
			continue
		}
		g.Go(func() error {
			outcome, err := b.runner.Run(ctx, inv)
			if err != nil {
				b.logger.Errorf(ctx, err, "Object %d (%s %v) failed", i, inv.Category, inv.Ref)
			}
			mu.Lock()
			results[i] = domain.BatchResult{
				Index:    i,
				Category: inv.Category,
				Ref:      inv.Ref,
				Outcome:  outcome,
				Err:      err,
			}
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return results, errors.Wrap(err, errors.CodeTimeout, "batch apply interrupted")
	}

	summary := domain.Summarize(results)
	b.logger.Infof(ctx, "Batch finished: %d changed, %d unchanged, %d failed, %d errors",
		summary.Changed, summary.Unchanged, summary.Failed, summary.Errors)
	return results, nil
}
