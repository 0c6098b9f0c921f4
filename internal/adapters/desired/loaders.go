package desired

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"github.com/olusolaa/netbox-reconciler/internal/core/domain"
	"github.com/olusolaa/netbox-reconciler/internal/core/ports"
	"github.com/olusolaa/netbox-reconciler/internal/errors"
)

// DataLoader decodes inline data. Strings are parsed as YAML; mappings
// passed programmatically are used as they are.
type DataLoader struct{}

var _ ports.DesiredStateLoader = DataLoader{}

func NewDataLoader() DataLoader { return DataLoader{} }

func (DataLoader) Kind() string { return domain.SourceData }

func (DataLoader) Load(_ context.Context, src domain.DesiredSource) (domain.Object, error) {
	switch v := src.Data.(type) {
	case nil:
		return nil, errors.NewUserFacing(errors.CodeDesiredStateParse,
			"no inline data given", "Set data or template.")
	case string:
		return decodeYAML("data", []byte(v))
	case []byte:
		return decodeYAML("data", v)
	default:
		return toObject("data", v)
	}
}

// TemplateLoader renders a text/template file with the invocation's vars
// and decodes the output as YAML.
type TemplateLoader struct {
	logger ports.Logger
}

func NewTemplateLoader(logger ports.Logger) *TemplateLoader {
	return &TemplateLoader{logger: logger}
}

func (*TemplateLoader) Kind() string { return domain.SourceTemplate }

func (l *TemplateLoader) Load(ctx context.Context, src domain.DesiredSource) (domain.Object, error) {
	content, err := readSource(src.Template)
	if err != nil {
		return nil, err
	}

	tmpl, err := template.New(filepath.Base(src.Template)).
		Option("missingkey=error").
		Parse(string(content))
	if err != nil {
		return nil, errors.WrapUserFacing(err, errors.CodeTemplateRender,
			fmt.Sprintf("failed to parse template %s", src.Template),
			"Check the template syntax.")
	}

	vars := src.Vars
	if vars == nil {
		vars = map[string]any{}
	}
	var rendered bytes.Buffer
	if err := tmpl.Execute(&rendered, vars); err != nil {
		return nil, errors.WrapUserFacing(err, errors.CodeTemplateRender,
			fmt.Sprintf("failed to render template %s", src.Template),
			"Check that every variable the template uses is set with --var.")
	}
	l.logger.Debugf(ctx, "Rendered template %s (%d bytes)", src.Template, rendered.Len())

	return decodeYAML(src.Template, rendered.Bytes())
}

// FileLoader decodes a plain JSON or YAML file.
type FileLoader struct {
	kind string
}

func NewJSONFileLoader() FileLoader { return FileLoader{kind: domain.SourceJSON} }

func NewYAMLFileLoader() FileLoader { return FileLoader{kind: domain.SourceYAML} }

func (l FileLoader) Kind() string { return l.kind }

func (l FileLoader) Load(_ context.Context, src domain.DesiredSource) (domain.Object, error) {
	content, err := readSource(src.Template)
	if err != nil {
		return nil, err
	}
	if l.kind == domain.SourceJSON {
		return decodeJSON(src.Template, content)
	}
	return decodeYAML(src.Template, content)
}

func readSource(path string) ([]byte, error) {
	if path == "" {
		return nil, errors.New(errors.CodeDesiredStateRead, "no template path given")
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapUserFacing(err, errors.CodeDesiredStateRead,
			fmt.Sprintf("failed to read %s", path),
			"Check that the template path exists and is readable.")
	}
	return content, nil
}
