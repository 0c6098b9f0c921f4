package json

import (
	"bytes"
	"context"
	stdjson "encoding/json"
	stderrs "errors"
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
	r, err := NewReporter(Config{}, log.NewNop(), WithWriter(&buf))
	require.NoError(t, err)
	return r, &buf
}

func TestReportOutcome(t *testing.T) {
	r, buf := newTestReporter(t)

	err := r.ReportOutcome(context.Background(), domain.Outcome{
		Changed: true,
		Result:  domain.Object{"id": stdjson.Number("7"), "name": "site-a"},
		Action:  domain.ActionCreate,
		Reason:  domain.ReasonApplied,
		Diff:    "-a\n+b\n",
	})
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"changed": true,
		"failed": false,
		"result": {"id": 7, "name": "site-a"},
		"action": "create",
		"reason": "applied",
		"diff": {"prepared": "-a\n+b\n"}
	}`, buf.String())
}

func TestReportOutcomeFailed(t *testing.T) {
	r, buf := newTestReporter(t)

	require.NoError(t, r.ReportOutcome(context.Background(), domain.Outcome{
		Failed: true,
		Result: domain.Object{"slug": []any{"This field is required."}},
		Action: domain.ActionCreate,
		Reason: domain.ReasonMissingRequired,
	}))

	var doc map[string]any
	require.NoError(t, stdjson.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, true, doc["failed"])
	assert.Equal(t, false, doc["changed"])
	assert.Contains(t, doc["msg"], domain.ReasonMissingRequired)
}

func TestReportFacts(t *testing.T) {
	r, buf := newTestReporter(t)

	obj := domain.Object{"id": 3, "name": "vlan-3"}
	require.NoError(t, r.ReportFacts(context.Background(), domain.Facts{
		Result: obj,
		Facts:  map[string]any{domain.FactName: obj},
	}))

	assert.JSONEq(t, `{
		"changed": false,
		"result": {"id": 3, "name": "vlan-3"},
		"ansible_facts": {"netbox_result": {"id": 3, "name": "vlan-3"}}
	}`, buf.String())
}

func TestReportBatch(t *testing.T) {
	r, buf := newTestReporter(t)
	cat := domain.Category{Model: "dcim", Obj: "sites"}

	err := r.ReportBatch(context.Background(), []domain.BatchResult{
		{Index: 0, Category: cat, Ref: domain.ByName("a"), Outcome: domain.Outcome{Changed: true, Action: domain.ActionCreate, Reason: domain.ReasonApplied}},
		{Index: 1, Category: cat, Ref: domain.ByID(9), Err: errors.NewUserFacing(errors.CodePlatformAuthError, "token rejected", "Check the token.")},
	})
	require.NoError(t, err)

	var doc struct {
		Changed bool `json:"changed"`
		Failed  bool `json:"failed"`
		Summary struct {
			Total   int `json:"total"`
			Changed int `json:"changed"`
			Errors  int `json:"errors"`
		} `json:"summary"`
		Results []struct {
			Index    int    `json:"index"`
			Category string `json:"category"`
			Ref      string `json:"ref"`
			Failed   bool   `json:"failed"`
			Msg      string `json:"msg"`
			Error    *struct {
				Code string `json:"code"`
			} `json:"error"`
		} `json:"results"`
	}
	require.NoError(t, stdjson.Unmarshal(buf.Bytes(), &doc))

	assert.True(t, doc.Changed)
	assert.True(t, doc.Failed)
	assert.Equal(t, 2, doc.Summary.Total)
	assert.Equal(t, 1, doc.Summary.Changed)
	assert.Equal(t, 1, doc.Summary.Errors)
	require.Len(t, doc.Results, 2)
	assert.Equal(t, "dcim/sites", doc.Results[0].Category)
	assert.Equal(t, "name=a", doc.Results[0].Ref)
	assert.Nil(t, doc.Results[0].Error)
	assert.Equal(t, "id=9", doc.Results[1].Ref)
	assert.True(t, doc.Results[1].Failed)
	assert.Equal(t, "token rejected", doc.Results[1].Msg)
	require.NotNil(t, doc.Results[1].Error)
	assert.Equal(t, string(errors.CodePlatformAuthError), doc.Results[1].Error.Code)
}

func TestReportError(t *testing.T) {
	r, buf := newTestReporter(t)

	require.NoError(t, r.ReportError(context.Background(), stderrs.New("boom")))

	var doc map[string]any
	require.NoError(t, stdjson.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, true, doc["failed"])
	assert.Equal(t, "boom", doc["msg"])
}

func TestReportPretty(t *testing.T) {
	var buf bytes.Buffer
	r, err := NewReporter(Config{Pretty: true}, log.NewNop(), WithWriter(&buf))
	require.NoError(t, err)

	require.NoError(t, r.ReportOutcome(context.Background(), domain.Outcome{Action: domain.ActionNone, Reason: domain.ReasonNoop, Result: domain.NothingChanged}))
	assert.Contains(t, buf.String(), "\n  \"changed\": false")
}
