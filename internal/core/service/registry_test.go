package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/olusolaa/netbox-reconciler/internal/core/domain"
	"github.com/olusolaa/netbox-reconciler/internal/core/ports/mocks"
	"github.com/olusolaa/netbox-reconciler/internal/errors"
)

func TestSourceKind(t *testing.T) {
	tests := map[string]struct {
		src  domain.DesiredSource
		want string
	}{
		"inline data":   {src: domain.DesiredSource{Data: "{name: a}"}, want: domain.SourceData},
		"hcl file":      {src: domain.DesiredSource{Template: "objects/site.hcl"}, want: domain.SourceHCL},
		"json file":     {src: domain.DesiredSource{Template: "site.JSON"}, want: domain.SourceJSON},
		"yaml file":     {src: domain.DesiredSource{Template: "site.yml"}, want: domain.SourceYAML},
		"text template": {src: domain.DesiredSource{Template: "templates/site.j2"}, want: domain.SourceTemplate},
		"template wins": {src: domain.DesiredSource{Template: "site.yaml", Data: "x"}, want: domain.SourceYAML},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, SourceKind(tt.src))
		})
	}
}

func TestLoaderRegistry(t *testing.T) {
	r := NewLoaderRegistry()
	loader := mocks.NewDesiredStateLoader(t)
	loader.On("Kind").Return(domain.SourceYAML)

	require.NoError(t, r.Register(loader))
	assert.Error(t, r.Register(loader))
	assert.Error(t, r.Register(nil))
	assert.Equal(t, []string{domain.SourceYAML}, r.Kinds())

	src := domain.DesiredSource{Template: "site.yaml"}
	loader.On("Load", mock.Anything, src).Return(domain.Object{"name": "a"}, nil).Once()
	obj, err := r.Load(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, domain.Object{"name": "a"}, obj)

	_, err = r.Load(context.Background(), domain.DesiredSource{Template: "site.hcl"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.CodeNotImplemented))
}
