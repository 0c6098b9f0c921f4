package service

import (
	"context"
	"fmt"

	"github.com/olusolaa/netbox-reconciler/internal/core/domain"
	"github.com/olusolaa/netbox-reconciler/internal/core/ports"
	"github.com/olusolaa/netbox-reconciler/internal/errors"
	"github.com/olusolaa/netbox-reconciler/internal/log"
	"github.com/olusolaa/netbox-reconciler/pkg/compare"
)

// Reconciler drives one invocation: validate, load desired state, read the
// current object, apply at most one change and classify the answer.
type Reconciler struct {
	client   ports.InventoryClient
	loaders  *LoaderRegistry
	logger   ports.Logger
	policy   ClassifierPolicy
	observer ports.OutcomeObserver
}

var _ ports.Runner = (*Reconciler)(nil)

type ReconcilerOption func(*Reconciler)

func WithClassifierPolicy(policy ClassifierPolicy) ReconcilerOption {
	return func(r *Reconciler) {
		r.policy = policy
	}
}

func WithObserver(observer ports.OutcomeObserver) ReconcilerOption {
	return func(r *Reconciler) {
		r.observer = observer
	}
}

func NewReconciler(client ports.InventoryClient, loaders *LoaderRegistry, logger ports.Logger, opts ...ReconcilerOption) (*Reconciler, error) {
	if client == nil {
		return nil, errors.New(errors.CodeInternal, "inventory client cannot be nil")
	}
	if loaders == nil {
		return nil, errors.New(errors.CodeInternal, "loader registry cannot be nil")
	}
	if logger == nil {
		logger = log.NewNop()
	}
	r := &Reconciler{
		client:  client,
		loaders: loaders,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Validate rejects invocations that cannot run. It never touches the API.
func Validate(inv domain.Invocation) error {
	if inv.Category.IsZero() {
		return errors.NewUserFacing(errors.CodeConfigValidation,
			"model and obj are required",
			"Set both model (e.g. dcim) and obj (e.g. sites).")
	}
	if !inv.Lifecycle.Valid() {
		return invalidLifecycle(inv.Lifecycle)
	}
	if inv.Ref == nil {
		return errors.NewUserFacing(errors.CodeConfigValidation,
			fmt.Sprintf("no object reference given for %s", inv.Category),
			"Set either name or ident.")
	}
	if inv.Lifecycle == domain.LifecyclePresent && inv.Source.IsZero() {
		return errors.NewUserFacing(errors.CodeConfigValidation,
			"state present needs desired data",
			"Set either template or data.")
	}
	return nil
}

func (r *Reconciler) Run(ctx context.Context, inv domain.Invocation) (domain.Outcome, error) {
	outcome, err := r.run(ctx, inv)
	if r.observer != nil {
		if err != nil {
			r.observer.ObserveError(inv.Category, err)
		} else {
			r.observer.ObserveOutcome(inv.Category, outcome)
		}
	}
	return outcome, err
}

func (r *Reconciler) run(ctx context.Context, inv domain.Invocation) (domain.Outcome, error) {
	if err := Validate(inv); err != nil {
		return domain.Outcome{}, err
	}
	logger := r.logger.WithFields(map[string]any{
		"category": inv.Category.String(),
		"ref":      inv.Ref.String(),
		"state":    inv.Lifecycle.String(),
	})

	var desired domain.Object
	if inv.Lifecycle == domain.LifecyclePresent {
		loaded, err := r.loaders.Load(ctx, inv.Source)
		if err != nil {
			return domain.Outcome{}, errors.Wrap(err, errors.CodeDesiredStateRead, "failed to load desired state")
		}
		desired = loaded
	}

	// Deleting does not depend on the current object, so absent only reads
	// it when asked to preview.
	var current domain.Object
	if inv.Lifecycle == domain.LifecyclePresent || inv.Check {
		obj, err := r.client.Get(ctx, inv.Category, inv.Ref)
		if err != nil {
			return domain.Outcome{}, errors.Wrap(err, errors.CodePlatformAPIError,
				fmt.Sprintf("failed to read %s %s", inv.Category, inv.Ref))
		}
		current = obj
	}

	if inv.Check {
		return r.preview(ctx, logger, inv, desired, current)
	}

	resp, action, err := Reconcile(ctx, r.client, inv.Ref, inv.Category, desired, current, inv.Lifecycle)
	if err != nil {
		logger.Errorf(ctx, err, "Reconciliation failed")
		return domain.Outcome{}, err
	}

	outcome := domain.Outcome{Action: action}
	if action == domain.ActionNone {
		outcome.Result = domain.NothingChanged
		outcome.Reason = domain.ReasonNoop
		logger.Infof(ctx, "Object already matches desired state")
	} else {
		cls := ClassifyWith(r.policy, resp, action)
		outcome.Changed = cls.Changed
		outcome.Failed = cls.Failed
		outcome.Reason = cls.Reason
		outcome.Result = resp
		if cls.Failed {
			logger.Warnf(ctx, "%s rejected by the API (%s)", action, cls.Reason)
		} else {
			logger.Infof(ctx, "%s done: changed=%t reason=%s", action, cls.Changed, cls.Reason)
		}
	}

	if inv.Diff && desired != nil {
		outcome.Diff = compare.Report(desired, current)
	}
	return outcome, nil
}

func (r *Reconciler) preview(ctx context.Context, logger ports.Logger, inv domain.Invocation, desired, current domain.Object) (domain.Outcome, error) {
	action, err := Plan(desired, current, inv.Lifecycle)
	if err != nil {
		return domain.Outcome{}, err
	}
	outcome := domain.Outcome{
		Changed: action.Mutates(),
		Action:  action,
		Reason:  domain.ReasonPlanned,
		Result:  fmt.Sprintf("would %s %s %s", action, inv.Category, inv.Ref),
	}
	if action == domain.ActionNone {
		outcome.Reason = domain.ReasonNoop
		outcome.Result = domain.NothingChanged
	}
	if inv.Diff && desired != nil {
		outcome.Diff = compare.Report(desired, current)
	}

	if action.Mutates() && desired != nil {
		logger.Infof(ctx, "Check mode: would %s (%s)", action, compare.Summary(desired, current))
	} else {
		logger.Infof(ctx, "Check mode: would %s", action)
	}
	return outcome, nil
}
