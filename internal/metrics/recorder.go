package metrics

import (
	"context"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/olusolaa/netbox-reconciler/internal/core/domain"
	"github.com/olusolaa/netbox-reconciler/internal/core/ports"
	"github.com/olusolaa/netbox-reconciler/internal/errors"
)

const namespace = "netbox_reconciler"

// Recorder counts invocation outcomes on its own registry, so a short-lived
// CLI run can flush them to a node exporter textfile.
type Recorder struct {
	registry *prometheus.Registry
	outcomes *prometheus.CounterVec
	errors   *prometheus.CounterVec
}

var _ ports.OutcomeObserver = (*Recorder)(nil)

func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		outcomes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "outcomes_total",
				Help:      "Invocations by category, action and classification.",
			},
			[]string{"model", "obj", "action", "changed", "failed"},
		),
		errors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "errors_total",
				Help:      "Invocations that ended in an error, by category and error code.",
			},
			[]string{"model", "obj", "code"},
		),
	}
	r.registry.MustRegister(r.outcomes, r.errors)
	return r
}

func (r *Recorder) ObserveOutcome(category domain.Category, outcome domain.Outcome) {
	action := outcome.Action
	if action == "" {
		action = domain.ActionNone
	}
	r.outcomes.WithLabelValues(category.Model, category.Obj, string(action),
		strconv.FormatBool(outcome.Changed), strconv.FormatBool(outcome.Failed)).Inc()
}

func (r *Recorder) ObserveError(category domain.Category, err error) {
	r.errors.WithLabelValues(category.Model, category.Obj, errors.GetCode(err).String()).Inc()
}

func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}

// WriteTextfile writes the current values in the text exposition format.
// An empty path is a no-op.
func (r *Recorder) WriteTextfile(ctx context.Context, path string, logger ports.Logger) error {
	if path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return errors.WrapUserFacing(err, errors.CodeReportError,
			"failed to write metrics textfile "+path,
			"Check that the metrics_textfile directory exists and is writable.")
	}
	logger.Debugf(ctx, "Metrics written to %s", path)
	return nil
}
