package text

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/olusolaa/netbox-reconciler/internal/core/domain"
	"github.com/olusolaa/netbox-reconciler/internal/core/ports"
	"github.com/olusolaa/netbox-reconciler/internal/errors"
)

const ReporterTypeText = "text"

type Config struct {
	NoColor bool `mapstructure:"no_color"`
}

type Reporter struct {
	config Config
	writer io.Writer
	logger ports.Logger
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
	}
	for _, opt := range opts {
		opt(r)
	}
	if cfg.NoColor || !isTerminal(r.writer) {
		color.NoColor = true
	}
	return r, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	stat, err := f.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) != 0
}

var (
	red     = color.New(color.FgRed).SprintFunc()
	yellow  = color.New(color.FgYellow).SprintFunc()
	green   = color.New(color.FgGreen).SprintFunc()
	magenta = color.New(color.FgMagenta).SprintFunc()
)

func status(o domain.Outcome, err error) string {
	switch {
	case err != nil:
		return magenta("[ERROR]")
	case o.Failed:
		return red("[FAILED]")
	case o.Changed:
		return yellow("[CHANGED]")
	default:
		return green("[OK]")
	}
}

func (r *Reporter) ReportOutcome(ctx context.Context, outcome domain.Outcome) error {
	fmt.Fprintf(r.writer, "%s %s (%s)\n", status(outcome, nil), actionLabel(outcome.Action), outcome.Reason)
	if outcome.Failed {
		fmt.Fprintf(r.writer, "  %s\n", formatValue(outcome.Result))
	}
	if outcome.Diff != "" {
		fmt.Fprintln(r.writer, indent(outcome.Diff))
	}
	return nil
}

func (r *Reporter) ReportFacts(ctx context.Context, facts domain.Facts) error {
	switch res := facts.Result.(type) {
	case []domain.Object:
		fmt.Fprintf(r.writer, "%d objects\n", len(res))
		for _, obj := range res {
			fmt.Fprintf(r.writer, "  %s\n", describe(obj))
		}
	case domain.Object:
		if domain.IsNotFound(res) {
			fmt.Fprintln(r.writer, yellow(domain.NotFoundDetail))
			return nil
		}
		keys := make([]string, 0, len(res))
		for k := range res {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		tw := tabwriter.NewWriter(r.writer, 0, 8, 2, ' ', 0)
		for _, k := range keys {
			fmt.Fprintf(tw, "%s:\t%s\n", k, formatValue(res[k]))
		}
		return tw.Flush()
	default:
		fmt.Fprintln(r.writer, formatValue(res))
	}
	return nil
}

func (r *Reporter) ReportBatch(ctx context.Context, results []domain.BatchResult) error {
	if len(results) == 0 {
		fmt.Fprintln(r.writer, "No objects processed.")
		return nil
	}

	tw := tabwriter.NewWriter(r.writer, 0, 8, 2, ' ', 0)

	fmt.Fprintln(tw, "Reconciliation Report")
	fmt.Fprintln(tw, "=====================")
	fmt.Fprintln(tw, "Status\tCategory\tObject\tDetails")
	fmt.Fprintln(tw, "------\t--------\t------\t-------")

	for _, res := range results {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		ref := "<all>"
		if res.Ref != nil {
			ref = res.Ref.String()
		}

		var details string
		switch {
		case res.Err != nil:
			details = errorDetails(res.Err)
		case res.Outcome.Failed:
			details = fmt.Sprintf("%s: %s", res.Outcome.Reason, formatValue(res.Outcome.Result))
		default:
			details = fmt.Sprintf("%s (%s)", actionLabel(res.Outcome.Action), res.Outcome.Reason)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", status(res.Outcome, res.Err), res.Category, ref, details)
	}

	summary := domain.Summarize(results)
	fmt.Fprintln(tw, "\nSummary:")
	fmt.Fprintln(tw, "-------")
	fmt.Fprintf(tw, "Total Objects Processed:\t%d\n", summary.Total)
	fmt.Fprintf(tw, "Unchanged:\t%s\n", green(summary.Unchanged))
	fmt.Fprintf(tw, "Changed:\t%s\n", yellow(summary.Changed))
	fmt.Fprintf(tw, "Failed:\t%s\n", red(summary.Failed))
	fmt.Fprintf(tw, "Errors:\t%s\n", magenta(summary.Errors))

	return tw.Flush()
}

func (r *Reporter) ReportError(ctx context.Context, err error) error {
	fmt.Fprintf(r.writer, "%s %s\n", magenta("[ERROR]"), errorDetails(err))
	if _, suggestion, ok := errors.GetUserFacingMessage(err); ok && suggestion != "" {
		fmt.Fprintf(r.writer, "  Suggestion: %s\n", suggestion)
	}
	return nil
}

func errorDetails(err error) string {
	if msg, _, ok := errors.GetUserFacingMessage(err); ok {
		return fmt.Sprintf("%s [%s]", msg, errors.GetCode(err))
	}
	return err.Error()
}

func actionLabel(a domain.Action) string {
	if a == "" || a == domain.ActionNone {
		return "no change"
	}
	return string(a)
}

func describe(obj domain.Object) string {
	var parts []string
	for _, key := range []string{domain.KeyID, domain.KeyName, domain.KeySlug} {
		if v, ok := obj[key]; ok {
			parts = append(parts, fmt.Sprintf("%s=%v", key, v))
		}
	}
	if len(parts) == 0 {
		return formatValue(obj)
	}
	return strings.Join(parts, " ")
}

func indent(s string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, l := range lines {
		lines[i] = "  " + l
	}
	return strings.Join(lines, "\n")
}

func formatValue(value any) string {
	const maxLen = 100
	str := fmt.Sprintf("%v", value)
	if len(str) > maxLen {
		return str[:maxLen-3] + "..."
	}
	return str
}
