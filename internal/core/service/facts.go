package service

import (
	"context"
	"fmt"

	"github.com/olusolaa/netbox-reconciler/internal/core/domain"
	"github.com/olusolaa/netbox-reconciler/internal/core/ports"
	"github.com/olusolaa/netbox-reconciler/internal/errors"
	"github.com/olusolaa/netbox-reconciler/internal/log"
)

// FactsService answers read-only lookups. It never mutates remote state.
type FactsService struct {
	client              ports.InventoryClient
	logger              ports.Logger
	reportChangedOnRead bool
}

func NewFactsService(client ports.InventoryClient, logger ports.Logger, reportChangedOnRead bool) (*FactsService, error) {
	if client == nil {
		return nil, errors.New(errors.CodeInternal, "inventory client cannot be nil")
	}
	if logger == nil {
		logger = log.NewNop()
	}
	return &FactsService{
		client:              client,
		logger:              logger,
		reportChangedOnRead: reportChangedOnRead,
	}, nil
}

// Gather fetches one object when ref is set and lists the whole category
// otherwise. The result is also exposed under domain.FactName.
func (s *FactsService) Gather(ctx context.Context, category domain.Category, ref domain.ObjectRef) (domain.Facts, error) {
	if category.IsZero() {
		return domain.Facts{}, errors.NewUserFacing(errors.CodeConfigValidation,
			"model and obj are required",
			"Set both model (e.g. dcim) and obj (e.g. sites).")
	}

	var result any
	if ref == nil {
		objs, err := s.client.List(ctx, category)
		if err != nil {
			return domain.Facts{}, errors.Wrap(err, errors.CodePlatformAPIError,
				fmt.Sprintf("failed to list %s", category))
		}
		s.logger.Debugf(ctx, "Gathered %d %s objects", len(objs), category)
		result = objs
	} else {
		obj, err := s.client.Get(ctx, category, ref)
		if err != nil {
			return domain.Facts{}, errors.Wrap(err, errors.CodePlatformAPIError,
				fmt.Sprintf("failed to read %s %s", category, ref))
		}
		s.logger.Debugf(ctx, "Gathered %s %s (found=%t)", category, ref, !domain.IsNotFound(obj))
		result = obj
	}

	return domain.Facts{
		Changed: s.reportChangedOnRead,
		Result:  result,
		Facts:   map[string]any{domain.FactName: result},
	}, nil
}
