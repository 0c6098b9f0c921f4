package json

import (
	"context"
	"fmt"
	"io"
	"os"

	jsoniter "github.com/json-iterator/go"

	"github.com/olusolaa/netbox-reconciler/internal/core/domain"
	"github.com/olusolaa/netbox-reconciler/internal/core/ports"
	"github.com/olusolaa/netbox-reconciler/internal/errors"
)

const ReporterTypeJSON = "json"

type Config struct {
	Pretty bool `mapstructure:"pretty"`
}

// Reporter writes results in the shape automation hosts expect from a
// module: a single JSON document with changed, failed and result keys.
type Reporter struct {
	config Config
	writer io.Writer
	logger ports.Logger
	api    jsoniter.API
}

type Option func(*Reporter)

func WithWriter(w io.Writer) Option {
	return func(r *Reporter) { r.writer = w }
}

func NewReporter(cfg Config, logger ports.Logger, opts ...Option) (*Reporter, error) {
	r := &Reporter{
		config: cfg,
		writer: os.Stdout,
		logger: logger,
		api: jsoniter.Config{
			EscapeHTML:  true,
			SortMapKeys: true,
		}.Froze(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

type outcomeDoc struct {
	Changed bool      `json:"changed"`
	Failed  bool      `json:"failed"`
	Result  any       `json:"result"`
	Action  string    `json:"action,omitempty"`
	Reason  string    `json:"reason,omitempty"`
	Diff    *diffDoc  `json:"diff,omitempty"`
	Msg     string    `json:"msg,omitempty"`
	Error   *errorDoc `json:"error,omitempty"`
}

type diffDoc struct {
	Prepared string `json:"prepared"`
}

type errorDoc struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
}

type factsDoc struct {
	Changed bool           `json:"changed"`
	Result  any            `json:"result"`
	Facts   map[string]any `json:"ansible_facts"`
}

type batchDoc struct {
	Changed bool           `json:"changed"`
	Failed  bool           `json:"failed"`
	Summary batchSummary   `json:"summary"`
	Results []batchItemDoc `json:"results"`
}

type batchSummary struct {
	Total     int `json:"total"`
	Changed   int `json:"changed"`
	Unchanged int `json:"unchanged"`
	Failed    int `json:"failed"`
	Errors    int `json:"errors"`
}

type batchItemDoc struct {
	Index    int       `json:"index"`
	Category string    `json:"category"`
	Ref      string    `json:"ref,omitempty"`
	Changed  bool      `json:"changed"`
	Failed   bool      `json:"failed"`
	Result   any       `json:"result"`
	Action   string    `json:"action,omitempty"`
	Reason   string    `json:"reason,omitempty"`
	Diff     *diffDoc  `json:"diff,omitempty"`
	Msg      string    `json:"msg,omitempty"`
	Error    *errorDoc `json:"error,omitempty"`
}

func toOutcomeDoc(o domain.Outcome) outcomeDoc {
	doc := outcomeDoc{
		Changed: o.Changed,
		Failed:  o.Failed,
		Result:  o.Result,
		Action:  string(o.Action),
		Reason:  o.Reason,
	}
	if o.Diff != "" {
		doc.Diff = &diffDoc{Prepared: o.Diff}
	}
	if o.Failed {
		doc.Msg = "remote call failed: " + o.Reason
	}
	return doc
}

func toErrorDoc(err error) *errorDoc {
	msg, suggestion, ok := errors.GetUserFacingMessage(err)
	if !ok {
		msg = err.Error()
		suggestion = ""
	}
	return &errorDoc{Code: errors.GetCode(err).String(), Message: msg, Suggestion: suggestion}
}

func (r *Reporter) ReportOutcome(ctx context.Context, outcome domain.Outcome) error {
	return r.write(ctx, toOutcomeDoc(outcome))
}

func (r *Reporter) ReportFacts(ctx context.Context, facts domain.Facts) error {
	return r.write(ctx, factsDoc{Changed: facts.Changed, Result: facts.Result, Facts: facts.Facts})
}

func (r *Reporter) ReportBatch(ctx context.Context, results []domain.BatchResult) error {
	summary := domain.Summarize(results)
	doc := batchDoc{
		Changed: summary.Changed > 0,
		Failed:  !summary.OK(),
		Summary: batchSummary(summary),
		Results: make([]batchItemDoc, 0, len(results)),
	}

	for _, res := range results {
		if ctx.Err() != nil {
			r.logger.Warnf(ctx, "JSON report generation cancelled.")
			return ctx.Err()
		}
		o := toOutcomeDoc(res.Outcome)
		item := batchItemDoc{
			Index:    res.Index,
			Category: res.Category.String(),
			Changed:  o.Changed,
			Failed:   o.Failed,
			Result:   o.Result,
			Action:   o.Action,
			Reason:   o.Reason,
			Diff:     o.Diff,
			Msg:      o.Msg,
		}
		if res.Ref != nil {
			item.Ref = res.Ref.String()
		}
		if res.Err != nil {
			item.Failed = true
			item.Error = toErrorDoc(res.Err)
			item.Msg = item.Error.Message
		}
		doc.Results = append(doc.Results, item)
	}
	return r.write(ctx, doc)
}

// ReportError writes a failure document for an invocation that could not
// produce an outcome.
func (r *Reporter) ReportError(ctx context.Context, err error) error {
	doc := outcomeDoc{Failed: true, Error: toErrorDoc(err)}
	doc.Msg = doc.Error.Message
	return r.write(ctx, doc)
}

func (r *Reporter) write(ctx context.Context, doc any) error {
	var (
		out []byte
		err error
	)
	if r.config.Pretty {
		out, err = r.api.MarshalIndent(doc, "", "  ")
	} else {
		out, err = r.api.Marshal(doc)
	}
	if err != nil {
		r.logger.Errorf(ctx, err, "Failed to encode JSON report")
		fmt.Fprintf(r.writer, "{\"failed\": true, \"msg\": %q}\n", "failed to encode report: "+err.Error())
		return errors.Wrap(err, errors.CodeReportError, "failed to encode JSON report")
	}
	out = append(out, '\n')
	if _, err := r.writer.Write(out); err != nil {
		return errors.Wrap(err, errors.CodeReportError, "failed to write JSON report")
	}
	r.logger.Debugf(ctx, "JSON report successfully generated.")
	return nil
}
