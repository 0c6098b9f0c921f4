package service

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/olusolaa/netbox-reconciler/internal/core/domain"
	"github.com/olusolaa/netbox-reconciler/internal/core/ports"
	"github.com/olusolaa/netbox-reconciler/internal/errors"
)

// LoaderRegistry holds the desired state loaders by kind.
type LoaderRegistry struct {
	mu      sync.RWMutex
	loaders map[string]ports.DesiredStateLoader
}

func NewLoaderRegistry() *LoaderRegistry {
	return &LoaderRegistry{
		loaders: make(map[string]ports.DesiredStateLoader),
	}
}

func (r *LoaderRegistry) Register(loader ports.DesiredStateLoader) error {
	if loader == nil {
		return errors.New(errors.CodeInternal, "attempted to register nil desired state loader")
	}
	kind := loader.Kind()
	if kind == "" {
		return errors.New(errors.CodeInternal, "desired state loader kind cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.loaders[kind]; exists {
		return errors.New(errors.CodeInternal, fmt.Sprintf("desired state loader '%s' already registered", kind))
	}
	r.loaders[kind] = loader
	return nil
}

func (r *LoaderRegistry) Get(kind string) (ports.DesiredStateLoader, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	loader, exists := r.loaders[kind]
	if !exists {
		return nil, errors.New(errors.CodeNotImplemented, fmt.Sprintf("no desired state loader for '%s'", kind))
	}
	return loader, nil
}

func (r *LoaderRegistry) Kinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kinds := make([]string, 0, len(r.loaders))
	for k := range r.loaders {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// Load picks the loader matching src and runs it.
func (r *LoaderRegistry) Load(ctx context.Context, src domain.DesiredSource) (domain.Object, error) {
	kind := SourceKind(src)
	loader, err := r.Get(kind)
	if err != nil {
		return nil, err
	}
	return loader.Load(ctx, src)
}

// SourceKind tells which loader handles src. A template file is chosen by
// its extension; anything unrecognised is rendered as a text template.
func SourceKind(src domain.DesiredSource) string {
	if src.Template == "" {
		return domain.SourceData
	}
	switch strings.ToLower(filepath.Ext(src.Template)) {
	case ".hcl":
		return domain.SourceHCL
	case ".json":
		return domain.SourceJSON
	case ".yaml", ".yml":
		return domain.SourceYAML
	default:
		return domain.SourceTemplate
	}
}
