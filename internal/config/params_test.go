package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olusolaa/netbox-reconciler/internal/core/domain"
	"github.com/olusolaa/netbox-reconciler/internal/errors"
)

func TestDecodeReconcileParams(t *testing.T) {
	p, err := DecodeReconcileParams(context.Background(), map[string]any{
		"model":               "dcim",
		"obj":                 "sites",
		"name":                "site-a",
		"data":                map[string]any{"name": "site-a", "slug": "site-a"},
		"url":                 "https://netbox.example.org",
		"token":               "abc",
		"vars":                nil,
		"_ansible_check_mode": true,
		"_ansible_diff":       "True",
		"_ansible_verbosity":  3,
	})
	require.NoError(t, err)

	assert.Equal(t, "dcim", p.Model)
	assert.Equal(t, "sites", p.Obj)
	assert.Equal(t, "site-a", p.Name)
	assert.Equal(t, "present", p.State)
	assert.Equal(t, "https://netbox.example.org", p.URL)
	assert.True(t, p.Check)
	assert.True(t, p.Diff)

	inv, err := p.Invocation()
	require.NoError(t, err)
	assert.Equal(t, domain.Category{Model: "dcim", Obj: "sites"}, inv.Category)
	assert.Equal(t, domain.ByName("site-a"), inv.Ref)
	assert.Equal(t, domain.LifecyclePresent, inv.Lifecycle)
	assert.True(t, inv.Check)
}

func TestDecodeReconcileParamsIdentFromString(t *testing.T) {
	p, err := DecodeReconcileParams(context.Background(), map[string]any{
		"model": "dcim",
		"obj":   "sites",
		"ident": "42",
		"state": "absent",
	})
	require.NoError(t, err)
	require.NotNil(t, p.Ident)
	assert.Equal(t, int64(42), *p.Ident)

	inv, err := p.Invocation()
	require.NoError(t, err)
	assert.Equal(t, domain.ByID(42), inv.Ref)
	assert.Equal(t, domain.LifecycleAbsent, inv.Lifecycle)
}

func TestDecodeReconcileParamsRejects(t *testing.T) {
	tests := []struct {
		name  string
		input map[string]any
	}{
		{
			name:  "missing model",
			input: map[string]any{"obj": "sites", "name": "a", "data": "name: a"},
		},
		{
			name:  "name and ident",
			input: map[string]any{"model": "dcim", "obj": "sites", "name": "a", "ident": 3, "data": "name: a"},
		},
		{
			name:  "unknown state",
			input: map[string]any{"model": "dcim", "obj": "sites", "name": "a", "state": "gone"},
		},
		{
			name:  "template and data",
			input: map[string]any{"model": "dcim", "obj": "sites", "name": "a", "template": "site.tmpl", "data": "name: a"},
		},
		{
			name:  "unknown parameter",
			input: map[string]any{"model": "dcim", "obj": "sites", "name": "a", "colour": "red"},
		},
		{
			name:  "ident below one",
			input: map[string]any{"model": "dcim", "obj": "sites", "ident": 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeReconcileParams(context.Background(), tt.input)
			require.Error(t, err)
			assert.True(t, errors.IsConfiguration(err), "got %v", err)
		})
	}
}

func TestInvocationErrors(t *testing.T) {
	ident := int64(7)

	_, err := ReconcileParams{
		Target: Target{Model: "dcim", Obj: "sites"},
		State:  "present",
		Data:   "name: a",
	}.Invocation()
	assert.True(t, errors.Is(err, errors.CodeConfigValidation))

	_, err = ReconcileParams{
		Target: Target{Model: "dcim", Obj: "sites", Name: "a", Ident: &ident},
		State:  "present",
		Data:   "name: a",
	}.Invocation()
	assert.True(t, errors.Is(err, errors.CodeConfigValidation))

	_, err = ReconcileParams{
		Target: Target{Model: "dcim", Obj: "sites", Name: "a"},
		State:  "present",
	}.Invocation()
	assert.True(t, errors.Is(err, errors.CodeConfigValidation))

	inv, err := ReconcileParams{
		Target: Target{Model: "dcim", Obj: "sites", Ident: &ident},
		State:  "absent",
	}.Invocation()
	require.NoError(t, err)
	assert.True(t, inv.Source.IsZero())
}

func TestDecodeFactsParams(t *testing.T) {
	p, err := DecodeFactsParams(context.Background(), map[string]any{
		"model": "ipam",
		"obj":   "vlans",
	})
	require.NoError(t, err)

	ref, err := p.Ref()
	require.NoError(t, err)
	assert.Nil(t, ref)
	assert.Equal(t, "ipam/vlans", p.Category().String())

	_, err = DecodeFactsParams(context.Background(), map[string]any{"model": "ipam", "obj": "vlans", "state": "present"})
	assert.True(t, errors.IsConfiguration(err))
}

func TestReadArgsFile(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "args.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"model": "dcim", "obj": "sites", "ident": 3}`), 0o600))
	args, err := ReadArgsFile(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, "dcim", args["model"])
	assert.Equal(t, 3, args["ident"])

	listPath := filepath.Join(dir, "list.yaml")
	require.NoError(t, os.WriteFile(listPath, []byte("- a\n- b\n"), 0o600))
	_, err = ReadArgsFile(listPath)
	assert.True(t, errors.Is(err, errors.CodeConfigParseError))

	_, err = ReadArgsFile(filepath.Join(dir, "missing.json"))
	assert.True(t, errors.Is(err, errors.CodeConfigReadError))
}
