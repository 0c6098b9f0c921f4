package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/olusolaa/netbox-reconciler/internal/adapters/inventory/netbox"
	"github.com/olusolaa/netbox-reconciler/internal/config"
	"github.com/olusolaa/netbox-reconciler/internal/core/domain"
	"github.com/olusolaa/netbox-reconciler/internal/core/ports"
	"github.com/olusolaa/netbox-reconciler/internal/core/service"
	"github.com/olusolaa/netbox-reconciler/internal/errors"
	"github.com/olusolaa/netbox-reconciler/internal/metrics"
)

type clientFactory func(cfg netbox.Config, logger ports.Logger) (ports.InventoryClient, error)

// Application wires the services for one CLI run. Inventory clients are
// built on first use, since invocation parameters may carry their own
// connection.
type Application struct {
	Config   *config.Config
	Logger   ports.Logger
	Reporter ports.Reporter
	Metrics  *metrics.Recorder

	loaders   *service.LoaderRegistry
	newClient clientFactory

	mu      sync.Mutex
	clients map[config.Connection]ports.InventoryClient
}

func defaultClientFactory(cfg netbox.Config, logger ports.Logger) (ports.InventoryClient, error) {
	return netbox.NewClient(cfg, logger)
}

// client returns the inventory client for conn, falling back to the
// configured connection for unset fields.
func (a *Application) client(ctx context.Context, conn config.Connection) (ports.InventoryClient, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if c, ok := a.clients[conn]; ok {
		return c, nil
	}

	merged := *a.Config
	if conn.URL != "" {
		merged.Inventory.URL = conn.URL
	}
	if conn.Token != "" {
		merged.Inventory.Token = conn.Token
	}
	if err := config.Validate(ctx, &merged); err != nil {
		return nil, err
	}

	clientLog := a.Logger.WithFields(map[string]any{"component": "inventory", "url": merged.Inventory.URL})
	c, err := a.newClient(merged.Inventory, clientLog)
	if err != nil {
		return nil, err
	}
	a.clients[conn] = c
	return c, nil
}

func (a *Application) reconciler(ctx context.Context, conn config.Connection) (*service.Reconciler, error) {
	client, err := a.client(ctx, conn)
	if err != nil {
		return nil, err
	}
	return service.NewReconciler(client, a.loaders,
		a.Logger.WithFields(map[string]any{"component": "reconciler"}),
		service.WithClassifierPolicy(service.ClassifierPolicy{StrictConflicts: a.Config.Settings.StrictConflicts}),
		service.WithObserver(a.Metrics),
	)
}

// Reconcile runs a single invocation.
func (a *Application) Reconcile(ctx context.Context, params config.ReconcileParams) (domain.Outcome, error) {
	inv, err := params.Invocation()
	if err != nil {
		return domain.Outcome{}, err
	}
	rec, err := a.reconciler(ctx, params.Connection)
	if err != nil {
		return domain.Outcome{}, err
	}
	return rec.Run(ctx, inv)
}

// Facts runs a read-only lookup.
func (a *Application) Facts(ctx context.Context, params config.FactsParams) (domain.Facts, error) {
	ref, err := params.Ref()
	if err != nil {
		return domain.Facts{}, err
	}
	client, err := a.client(ctx, params.Connection)
	if err != nil {
		return domain.Facts{}, err
	}
	facts, err := service.NewFactsService(client,
		a.Logger.WithFields(map[string]any{"component": "facts"}),
		a.Config.Settings.ReportChangedOnRead)
	if err != nil {
		return domain.Facts{}, err
	}
	return facts.Gather(ctx, params.Category(), ref)
}

// Apply runs a manifest. All objects share one connection; a manifest may
// set it in its defaults but objects cannot point at different instances.
func (a *Application) Apply(ctx context.Context, params []config.ReconcileParams) ([]domain.BatchResult, error) {
	if len(params) == 0 {
		return nil, nil
	}

	conn := params[0].Connection
	invs := make([]domain.Invocation, len(params))
	for i, p := range params {
		if p.Connection != conn {
			return nil, errors.NewUserFacing(errors.CodeConfigValidation,
				fmt.Sprintf("manifest object %d uses a different inventory connection", i),
				"Set url and token once, in the manifest defaults or the configuration.")
		}
		inv, err := p.Invocation()
		if err != nil {
			return nil, errors.WrapUserFacing(err, errors.CodeConfigValidation,
				fmt.Sprintf("manifest object %d is invalid", i), "Fix the object entry in the manifest.")
		}
		invs[i] = inv
	}

	rec, err := a.reconciler(ctx, conn)
	if err != nil {
		return nil, err
	}
	batch, err := service.NewBatchRunner(rec,
		a.Logger.WithFields(map[string]any{"component": "batch"}),
		a.Config.Settings.Concurrency)
	if err != nil {
		return nil, err
	}
	return batch.Apply(ctx, invs)
}

// Flush writes run metrics when a textfile path is configured.
func (a *Application) Flush(ctx context.Context) error {
	return a.Metrics.WriteTextfile(ctx, a.Config.Settings.MetricsTextfile, a.Logger)
}
