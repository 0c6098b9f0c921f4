package text

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olusolaa/netbox-reconciler/internal/core/domain"
	"github.com/olusolaa/netbox-reconciler/internal/errors"
	"github.com/olusolaa/netbox-reconciler/internal/log"
)

func newTestReporter(t *testing.T) (*Reporter, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	r, err := NewReporter(Config{NoColor: true}, log.NewNop(), WithWriter(&buf))
	require.NoError(t, err)
	return r, &buf
}

func TestReportOutcome(t *testing.T) {
	r, buf := newTestReporter(t)

	require.NoError(t, r.ReportOutcome(context.Background(), domain.Outcome{
		Changed: true,
		Action:  domain.ActionUpdate,
		Reason:  domain.ReasonApplied,
		Diff:    "- a\n+ b\n",
	}))
	assert.Equal(t, "[CHANGED] update (applied)\n  - a\n  + b\n", buf.String())
}

func TestReportOutcomeNoop(t *testing.T) {
	r, buf := newTestReporter(t)

	require.NoError(t, r.ReportOutcome(context.Background(), domain.Outcome{
		Action: domain.ActionNone,
		Reason: domain.ReasonNoop,
		Result: domain.NothingChanged,
	}))
	assert.Equal(t, "[OK] no change (noop)\n", buf.String())
}

func TestReportFacts(t *testing.T) {
	r, buf := newTestReporter(t)

	require.NoError(t, r.ReportFacts(context.Background(), domain.Facts{
		Result: []domain.Object{{"id": 1, "name": "a", "slug": "a"}, {"id": 2, "name": "b"}},
	}))
	assert.Equal(t, "2 objects\n  id=1 name=a slug=a\n  id=2 name=b\n", buf.String())

	buf.Reset()
	require.NoError(t, r.ReportFacts(context.Background(), domain.Facts{Result: domain.NotFound()}))
	assert.Equal(t, domain.NotFoundDetail+"\n", buf.String())

	buf.Reset()
	require.NoError(t, r.ReportFacts(context.Background(), domain.Facts{Result: domain.Object{"slug": "a", "id": 1}}))
	assert.Contains(t, buf.String(), "id:")
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("id:")), bytes.Index(buf.Bytes(), []byte("slug:")))
}

func TestReportBatch(t *testing.T) {
	r, buf := newTestReporter(t)
	cat := domain.Category{Model: "dcim", Obj: "sites"}

	require.NoError(t, r.ReportBatch(context.Background(), []domain.BatchResult{
		{Category: cat, Ref: domain.ByName("a"), Outcome: domain.Outcome{Changed: true, Action: domain.ActionCreate, Reason: domain.ReasonApplied}},
		{Category: cat, Ref: domain.ByName("b"), Outcome: domain.Outcome{Failed: true, Reason: domain.ReasonMissingRequired, Result: "slug is required"}},
		{Category: cat, Ref: domain.ByID(3), Err: errors.NewUserFacing(errors.CodeTimeout, "request timed out", "Retry.")},
	}))

	out := buf.String()
	assert.Contains(t, out, "Reconciliation Report")
	assert.Contains(t, out, "[CHANGED]")
	assert.Contains(t, out, "name=a")
	assert.Contains(t, out, "[FAILED]")
	assert.Contains(t, out, "missing_required_field: slug is required")
	assert.Contains(t, out, "request timed out [TIMEOUT_ERROR]")
	assert.Contains(t, out, "Total Objects Processed:")
}

func TestReportBatchEmpty(t *testing.T) {
	r, buf := newTestReporter(t)
	require.NoError(t, r.ReportBatch(context.Background(), nil))
	assert.Equal(t, "No objects processed.\n", buf.String())
}

func TestReportError(t *testing.T) {
	r, buf := newTestReporter(t)
	require.NoError(t, r.ReportError(context.Background(),
		errors.NewUserFacing(errors.CodeConfigValidation, "model and obj are required", "Set both.")))
	assert.Equal(t, "[ERROR] model and obj are required [CONFIG_VALIDATION_ERROR]\n  Suggestion: Set both.\n", buf.String())
}
