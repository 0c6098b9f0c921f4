package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-viper/mapstructure/v2"

	"github.com/olusolaa/netbox-reconciler/internal/errors"
)

// Manifest lists objects to reconcile in one run. Defaults are merged into
// every object before it is decoded.
//
//	defaults:
//	  model: dcim
//	  obj: sites
//	objects:
//	  - name: site-a
//	    data: {name: site-a, slug: site-a}
//	  - name: site-old
//	    state: absent
type Manifest struct {
	Defaults map[string]any   `mapstructure:"defaults"`
	Objects  []map[string]any `mapstructure:"objects" validate:"required,min=1"`
}

// LoadManifest reads and validates a manifest file. Relative template paths
// are resolved against the manifest's directory.
func LoadManifest(ctx context.Context, path string) ([]ReconcileParams, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapUserFacing(err, errors.CodeConfigReadError,
			fmt.Sprintf("failed to read manifest %s", path), "Check the manifest path.")
	}
	raw, err := parseMapping(path, content)
	if err != nil {
		return nil, err
	}

	var m Manifest
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{Result: &m, ErrorUnused: true})
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to build manifest decoder")
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, errors.WrapUserFacing(err, errors.CodeConfigParseError,
			fmt.Sprintf("invalid manifest %s", path), "A manifest has a 'defaults' mapping and an 'objects' list.")
	}
	if err := validateStruct(ctx, &m, fmt.Sprintf("Invalid manifest %s:", path), "List at least one object under 'objects'."); err != nil {
		return nil, err
	}

	baseDir := filepath.Dir(path)
	params := make([]ReconcileParams, 0, len(m.Objects))
	for i, obj := range m.Objects {
		merged := make(map[string]any, len(m.Defaults)+len(obj))
		for k, v := range m.Defaults {
			merged[k] = v
		}
		for k, v := range obj {
			merged[k] = v
		}

		p, err := DecodeReconcileParams(ctx, merged)
		if err != nil {
			return nil, errors.WrapUserFacing(err, errors.CodeConfigValidation,
				fmt.Sprintf("manifest object %d is invalid", i),
				"Fix the object entry in the manifest.")
		}
		if p.Template != "" && !filepath.IsAbs(p.Template) {
			p.Template = filepath.Join(baseDir, p.Template)
		}
		params = append(params, p)
	}
	return params, nil
}
