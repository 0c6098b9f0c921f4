package ports

import (
	"context"

	"github.com/olusolaa/netbox-reconciler/internal/core/domain"
)

// InventoryClient is the remote inventory API. Validation failures reported
// by the API come back as response objects, not errors; errors are reserved
// for transport and authentication failures.
//
//go:generate mockery --name InventoryClient --output ./mocks --outpkg mocks --case underscore
type InventoryClient interface {
	// Get returns the referenced object, or domain.NotFound() when absent.
	Get(ctx context.Context, category domain.Category, ref domain.ObjectRef) (domain.Object, error)
	List(ctx context.Context, category domain.Category) ([]domain.Object, error)
	Create(ctx context.Context, category domain.Category, data domain.Object) (domain.Object, error)
	// Update replaces the referenced object with data.
	Update(ctx context.Context, category domain.Category, ref domain.ObjectRef, data domain.Object) (domain.Object, error)
	Delete(ctx context.Context, category domain.Category, ref domain.ObjectRef) (domain.Object, error)
}

//go:generate mockery --name DesiredStateLoader --output ./mocks --outpkg mocks --case underscore
type DesiredStateLoader interface {
	Kind() string
	Load(ctx context.Context, src domain.DesiredSource) (domain.Object, error)
}
