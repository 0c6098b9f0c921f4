package service

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/olusolaa/netbox-reconciler/internal/core/domain"
	"github.com/olusolaa/netbox-reconciler/internal/core/ports/mocks"
	"github.com/olusolaa/netbox-reconciler/internal/errors"
)

var sites = domain.Category{Model: "dcim", Obj: "sites"}

func TestPlan(t *testing.T) {
	existing := domain.Object{"id": 1.0, "name": "site-a", "slug": "site-a"}

	tests := []struct {
		name      string
		desired   domain.Object
		current   domain.Object
		lifecycle domain.Lifecycle
		want      domain.Action
	}{
		{name: "equivalent is a no-op", desired: domain.Object{"name": "site-a"}, current: existing, lifecycle: domain.LifecyclePresent, want: domain.ActionNone},
		{name: "missing object is created", desired: domain.Object{"name": "site-a"}, current: domain.NotFound(), lifecycle: domain.LifecyclePresent, want: domain.ActionCreate},
		{name: "drifted object is updated", desired: domain.Object{"name": "site-b"}, current: existing, lifecycle: domain.LifecyclePresent, want: domain.ActionUpdate},
		{name: "absent deletes existing", current: existing, lifecycle: domain.LifecycleAbsent, want: domain.ActionDelete},
		{name: "absent deletes even when missing", current: domain.NotFound(), lifecycle: domain.LifecycleAbsent, want: domain.ActionDelete},
		{name: "absent without current", lifecycle: domain.LifecycleAbsent, want: domain.ActionDelete},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Plan(tt.desired, tt.current, tt.lifecycle)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPlanInvalidLifecycle(t *testing.T) {
	_, err := Plan(domain.Object{}, domain.Object{}, domain.Lifecycle("gone"))
	require.Error(t, err)
	assert.True(t, errors.IsConfiguration(err))
}

func TestReconcileIdempotent(t *testing.T) {
	client := mocks.NewInventoryClient(t)
	current := domain.Object{"id": 1.0, "name": "site-a", "slug": "site-a", "asn": 64542.0}

	resp, action, err := Reconcile(context.Background(), client, domain.ByName("site-a"), sites,
		domain.Object{"name": "site-a", "asn": 64542}, current, domain.LifecyclePresent)

	require.NoError(t, err)
	assert.Nil(t, resp)
	assert.Equal(t, domain.ActionNone, action)
	client.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	client.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReconcileCreatesMissingObject(t *testing.T) {
	client := mocks.NewInventoryClient(t)
	desired := domain.Object{"name": "site-a", "slug": "site-a"}
	client.On("Create", mock.Anything, sites, desired).
		Return(domain.Object{"id": 1, "name": "site-a"}, nil).Once()

	resp, action, err := Reconcile(context.Background(), client, domain.ByName("site-a"), sites,
		desired, domain.NotFound(), domain.LifecyclePresent)

	require.NoError(t, err)
	assert.Equal(t, domain.ActionCreate, action)
	assert.Equal(t, domain.Object{"id": 1, "name": "site-a"}, resp)
	assert.Equal(t, domain.Classification{Changed: true, Reason: domain.ReasonApplied}, Classify(resp, action))
}

func TestReconcileUpdatesDriftedObject(t *testing.T) {
	client := mocks.NewInventoryClient(t)
	desired := domain.Object{"name": "site-a", "status": map[string]any{"value": "active"}}
	current := domain.Object{"id": 5.0, "name": "site-a", "status": map[string]any{"value": "planned"}}
	client.On("Update", mock.Anything, sites, domain.ByID(5), desired).
		Return(domain.Object{"id": 5, "name": "site-a"}, nil).Once()

	_, action, err := Reconcile(context.Background(), client, domain.ByID(5), sites, desired, current, domain.LifecyclePresent)

	require.NoError(t, err)
	assert.Equal(t, domain.ActionUpdate, action)
	client.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestReconcileUpdateByNameUsesIDAlreadyRead(t *testing.T) {
	client := mocks.NewInventoryClient(t)
	desired := domain.Object{"name": "site-a", "description": "edge"}
	current := domain.Object{"id": json.Number("7"), "name": "site-a", "description": "core"}
	client.On("Update", mock.Anything, sites, domain.ByID(7), desired).
		Return(domain.Object{"id": 7, "name": "site-a", "description": "edge"}, nil).Once()

	_, action, err := Reconcile(context.Background(), client, domain.ByName("site-a"), sites,
		desired, current, domain.LifecyclePresent)

	require.NoError(t, err)
	assert.Equal(t, domain.ActionUpdate, action)
}

func TestReconcileUpdateByNameWithoutIDKeepsName(t *testing.T) {
	client := mocks.NewInventoryClient(t)
	desired := domain.Object{"name": "site-a", "description": "edge"}
	current := domain.Object{"name": "site-a", "description": "core"}
	client.On("Update", mock.Anything, sites, domain.ByName("site-a"), desired).
		Return(domain.Object{"name": "site-a"}, nil).Once()

	_, _, err := Reconcile(context.Background(), client, domain.ByName("site-a"), sites,
		desired, current, domain.LifecyclePresent)

	require.NoError(t, err)
}

func TestReconcileAbsentAlwaysDeletes(t *testing.T) {
	for _, current := range []domain.Object{
		{"id": 3.0, "name": "site-a"},
		domain.NotFound(),
		nil,
	} {
		t.Run(fmt.Sprintf("current=%v", current), func(t *testing.T) {
			client := mocks.NewInventoryClient(t)
			raw := domain.Object{"detail": "whatever the API says"}
			client.On("Delete", mock.Anything, sites, domain.ByName("site-a")).Return(raw, nil).Once()

			resp, action, err := Reconcile(context.Background(), client, domain.ByName("site-a"), sites,
				nil, current, domain.LifecycleAbsent)

			require.NoError(t, err)
			assert.Equal(t, domain.ActionDelete, action)
			assert.Equal(t, raw, resp)
		})
	}
}

func TestReconcileInvalidLifecycleMakesNoCall(t *testing.T) {
	client := mocks.NewInventoryClient(t)

	_, _, err := Reconcile(context.Background(), client, domain.ByName("x"), sites,
		domain.Object{"name": "x"}, domain.NotFound(), domain.Lifecycle("archived"))

	require.Error(t, err)
	assert.True(t, errors.IsConfiguration(err))
	assert.Empty(t, client.Calls)
}

func TestReconcileKeepsTransportErrorCode(t *testing.T) {
	client := mocks.NewInventoryClient(t)
	authErr := errors.NewUserFacing(errors.CodePlatformAuthError, "denied", "check token")
	client.On("Create", mock.Anything, sites, mock.Anything).Return(nil, authErr).Once()

	_, action, err := Reconcile(context.Background(), client, domain.ByName("x"), sites,
		domain.Object{"name": "x"}, domain.NotFound(), domain.LifecyclePresent)

	require.Error(t, err)
	assert.Equal(t, domain.ActionCreate, action)
	assert.ErrorIs(t, err, authErr)
	assert.True(t, errors.Is(err, errors.CodePlatformAuthError))
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		resp   domain.Object
		action domain.Action
		want   domain.Classification
	}{
		{
			name:   "uniqueness conflict wins over required field",
			resp:   domain.Object{"slug": []any{"already exists"}, "other_field": []any{"is required"}},
			action: domain.ActionCreate,
			want:   domain.Classification{Reason: domain.ReasonUniquenessClash},
		},
		{
			name:   "name conflict",
			resp:   domain.Object{"name": []any{"site with this name already exists."}},
			action: domain.ActionUpdate,
			want:   domain.Classification{Reason: domain.ReasonUniquenessClash},
		},
		{
			name:   "conflict text is case sensitive",
			resp:   domain.Object{"name": []any{"Already Exists"}},
			action: domain.ActionCreate,
			want:   domain.Classification{Changed: true, Reason: domain.ReasonApplied},
		},
		{
			name:   "non field errors",
			resp:   domain.Object{"non_field_errors": []any{"The fields site, name must make a unique set."}},
			action: domain.ActionCreate,
			want:   domain.Classification{Reason: domain.ReasonNonFieldErrors},
		},
		{
			name:   "missing required field",
			resp:   domain.Object{"asn": []any{"This field is required."}},
			action: domain.ActionCreate,
			want:   domain.Classification{Failed: true, Reason: domain.ReasonMissingRequired},
		},
		{
			name:   "only first error of a field is inspected",
			resp:   domain.Object{"asn": []any{"Enter a whole number.", "This field is required."}},
			action: domain.ActionCreate,
			want:   domain.Classification{Changed: true, Reason: domain.ReasonApplied},
		},
		{
			name:   "string slices are sequences",
			resp:   domain.Object{"slug": []string{"This field is required."}},
			action: domain.ActionCreate,
			want:   domain.Classification{Failed: true, Reason: domain.ReasonMissingRequired},
		},
		{
			name:   "scalar name is not a conflict",
			resp:   domain.Object{"id": 1, "name": "already exists"},
			action: domain.ActionCreate,
			want:   domain.Classification{Changed: true, Reason: domain.ReasonApplied},
		},
		{
			name:   "created object",
			resp:   domain.Object{"id": 1, "name": "site-a"},
			action: domain.ActionCreate,
			want:   domain.Classification{Changed: true, Reason: domain.ReasonApplied},
		},
		{
			name:   "empty delete response",
			resp:   domain.Object{},
			action: domain.ActionDelete,
			want:   domain.Classification{Changed: true, Reason: domain.ReasonApplied},
		},
		{
			name:   "delete of missing object",
			resp:   domain.NotFound(),
			action: domain.ActionDelete,
			want:   domain.Classification{Changed: true, Reason: domain.ReasonApplied},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.resp, tt.action))
		})
	}
}

func TestClassifyStrictConflicts(t *testing.T) {
	strict := ClassifierPolicy{StrictConflicts: true}

	got := ClassifyWith(strict, domain.Object{"slug": []any{"already exists"}}, domain.ActionCreate)
	assert.Equal(t, domain.Classification{Failed: true, Reason: domain.ReasonUniquenessClash}, got)

	got = ClassifyWith(strict, domain.Object{"non_field_errors": []any{"x"}}, domain.ActionUpdate)
	assert.Equal(t, domain.Classification{Failed: true, Reason: domain.ReasonNonFieldErrors}, got)

	got = ClassifyWith(strict, domain.Object{"id": 1}, domain.ActionCreate)
	assert.Equal(t, domain.Classification{Changed: true, Reason: domain.ReasonApplied}, got)
}
