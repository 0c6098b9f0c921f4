package service

import (
	"context"
	"fmt"

	"github.com/olusolaa/netbox-reconciler/internal/core/domain"
	"github.com/olusolaa/netbox-reconciler/internal/core/ports"
	"github.com/olusolaa/netbox-reconciler/internal/errors"
	"github.com/olusolaa/netbox-reconciler/pkg/compare"
	"github.com/olusolaa/netbox-reconciler/pkg/reflectutil"
)

// Plan decides the single action that moves current towards desired.
//
// For present, an equivalent current object needs nothing, a missing one is
// created and anything else is replaced. Absent always deletes, whether or
// not the object exists.
func Plan(desired, current domain.Object, lifecycle domain.Lifecycle) (domain.Action, error) {
	switch lifecycle {
	case domain.LifecyclePresent:
		if compare.IsEquivalent(desired, current) {
			return domain.ActionNone, nil
		}
		if domain.IsNotFound(current) {
			return domain.ActionCreate, nil
		}
		return domain.ActionUpdate, nil
	case domain.LifecycleAbsent:
		return domain.ActionDelete, nil
	default:
		return domain.ActionNone, invalidLifecycle(lifecycle)
	}
}

// Reconcile performs at most one mutating call against client and returns
// the raw API response together with the action taken. The response is nil
// when no call was needed.
func Reconcile(
	ctx context.Context,
	client ports.InventoryClient,
	ref domain.ObjectRef,
	category domain.Category,
	desired, current domain.Object,
	lifecycle domain.Lifecycle,
) (domain.Object, domain.Action, error) {
	action, err := Plan(desired, current, lifecycle)
	if err != nil {
		return nil, domain.ActionNone, err
	}

	var resp domain.Object
	switch action {
	case domain.ActionNone:
		return nil, action, nil
	case domain.ActionCreate:
		resp, err = client.Create(ctx, category, desired)
	case domain.ActionUpdate:
		resp, err = client.Update(ctx, category, knownID(ref, current), desired)
	case domain.ActionDelete:
		resp, err = client.Delete(ctx, category, ref)
	}
	if err != nil {
		return nil, action, errors.Wrap(err, errors.CodePlatformAPIError,
			fmt.Sprintf("%s of %s %v failed", action, category, ref))
	}
	return resp, action, nil
}

// knownID prefers the id of the object already read over a name, so the
// client does not have to look the name up again.
func knownID(ref domain.ObjectRef, current domain.Object) domain.ObjectRef {
	if _, byName := ref.(domain.ByName); !byName {
		return ref
	}
	if id, ok := reflectutil.ToInt64(current[domain.KeyID]); ok && id > 0 {
		return domain.ByID(id)
	}
	return ref
}

func invalidLifecycle(lifecycle domain.Lifecycle) error {
	return errors.NewUserFacing(errors.CodeConfigValidation,
		fmt.Sprintf("invalid state %q", lifecycle),
		fmt.Sprintf("Use %q or %q.", domain.LifecyclePresent, domain.LifecycleAbsent))
}
