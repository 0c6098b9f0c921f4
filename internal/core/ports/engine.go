package ports

import (
	"context"

	"github.com/olusolaa/netbox-reconciler/internal/core/domain"
)

//go:generate mockery --name Runner --output ./mocks --outpkg mocks --case underscore
type Runner interface {
	Run(ctx context.Context, inv domain.Invocation) (domain.Outcome, error)
}
