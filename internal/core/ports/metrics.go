package ports

import "github.com/olusolaa/netbox-reconciler/internal/core/domain"

// OutcomeObserver receives every finished invocation, e.g. to count them.
//
//go:generate mockery --name OutcomeObserver --output ./mocks --outpkg mocks --case underscore
type OutcomeObserver interface {
	ObserveOutcome(category domain.Category, outcome domain.Outcome)
	ObserveError(category domain.Category, err error)
}
