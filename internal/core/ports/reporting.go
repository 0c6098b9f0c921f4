package ports

import (
	"context"

	"github.com/olusolaa/netbox-reconciler/internal/core/domain"
)

type Reporter interface {
	ReportOutcome(ctx context.Context, outcome domain.Outcome) error
	ReportFacts(ctx context.Context, facts domain.Facts) error
	ReportBatch(ctx context.Context, results []domain.BatchResult) error
	// ReportError reports an invocation that ended before an outcome existed.
	ReportError(ctx context.Context, err error) error
}
