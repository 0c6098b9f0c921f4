package hclfile

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/olusolaa/netbox-reconciler/internal/core/domain"
	"github.com/olusolaa/netbox-reconciler/internal/core/ports"
	"github.com/olusolaa/netbox-reconciler/internal/errors"
)

// Loader reads desired state from an HCL file whose top-level attributes are
// the object fields. Expressions may reference var.<name> and call the
// functions in Functions.
//
//	name   = "site-${var.suffix}"
//	slug   = lower("SITE-${var.suffix}")
//	status = { value = "active" }
type Loader struct {
	logger ports.Logger
}

var _ ports.DesiredStateLoader = (*Loader)(nil)

func NewLoader(logger ports.Logger) *Loader {
	return &Loader{logger: logger.WithFields(map[string]any{"component": "hcl_loader"})}
}

func (*Loader) Kind() string { return domain.SourceHCL }

func (l *Loader) Load(ctx context.Context, src domain.DesiredSource) (domain.Object, error) {
	content, err := os.ReadFile(src.Template)
	if err != nil {
		return nil, errors.WrapUserFacing(err, errors.CodeDesiredStateRead,
			fmt.Sprintf("failed to read %s", src.Template),
			"Check that the template path exists and is readable.")
	}

	file, diags := hclparse.NewParser().ParseHCL(content, src.Template)
	if diags.HasErrors() {
		return nil, errors.Wrap(&DiagnosticsError{Operation: "parsing", FilePath: src.Template, Diags: diags},
			errors.CodeHCLParseError, fmt.Sprintf("failed to parse %s", src.Template))
	}

	attrs, diags := file.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, errors.Wrap(&DiagnosticsError{Operation: "reading attributes", FilePath: src.Template, Diags: diags},
			errors.CodeHCLParseError, fmt.Sprintf("%s may only contain attributes", src.Template))
	}

	evalCtx, err := newEvalContext(src.Vars)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeHCLEvalError, "failed to build evaluation context")
	}

	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	sort.Strings(names)

	obj := make(domain.Object, len(attrs))
	for _, name := range names {
		val, diags := attrs[name].Expr.Value(evalCtx)
		if diags.HasErrors() {
			return nil, errors.Wrap(&DiagnosticsError{Operation: "evaluating " + name, FilePath: src.Template, Diags: diags},
				errors.CodeHCLEvalError, fmt.Sprintf("failed to evaluate %s in %s", name, src.Template))
		}
		goVal, err := ConvertValue(ctx, val, l.logger)
		if err != nil {
			return nil, errors.Wrap(&ValueConversionError{AttributeName: name, Err: err},
				errors.CodeHCLEvalError, fmt.Sprintf("failed to convert %s in %s", name, src.Template))
		}
		obj[name] = goVal
	}

	l.logger.Debugf(ctx, "Loaded %d attributes from %s", len(obj), src.Template)
	return obj, nil
}

func newEvalContext(vars map[string]any) (*hcl.EvalContext, error) {
	varsVal, err := VarsValue(vars)
	if err != nil {
		return nil, err
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{"var": varsVal},
		Functions: Functions(),
	}, nil
}
