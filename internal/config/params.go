package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"gopkg.in/yaml.v3"

	"github.com/olusolaa/netbox-reconciler/internal/core/domain"
	"github.com/olusolaa/netbox-reconciler/internal/errors"
	"github.com/olusolaa/netbox-reconciler/pkg/convert"
)

// Target selects the object an invocation is about.
type Target struct {
	Model string `mapstructure:"model" validate:"required"`
	Obj   string `mapstructure:"obj" validate:"required"`
	Name  string `mapstructure:"name" validate:"excluded_with=Ident"`
	Ident *int64 `mapstructure:"ident" validate:"omitempty,min=1"`
}

func (t Target) Category() domain.Category {
	return domain.Category{Model: t.Model, Obj: t.Obj}
}

func (t Target) Ref() (domain.ObjectRef, error) {
	ref, err := domain.NewObjectRef(t.Name, t.Ident)
	if err != nil {
		return nil, errors.NewUserFacing(errors.CodeConfigValidation, err.Error(), "Set either name or ident, not both.")
	}
	return ref, nil
}

// Connection optionally overrides the configured inventory instance.
type Connection struct {
	URL   string `mapstructure:"url" validate:"omitempty,url"`
	Token string `mapstructure:"token"`
}

// ReconcileParams are the inputs of one reconciliation.
type ReconcileParams struct {
	Target     `mapstructure:",squash"`
	Connection `mapstructure:",squash"`

	State    string         `mapstructure:"state" validate:"required,oneof=present absent"`
	Template string         `mapstructure:"template" validate:"excluded_with=Data"`
	Data     any            `mapstructure:"data"`
	Vars     map[string]any `mapstructure:"vars"`
	Check    bool           `mapstructure:"check"`
	Diff     bool           `mapstructure:"diff"`
}

// FactsParams are the inputs of a read-only lookup.
type FactsParams struct {
	Target     `mapstructure:",squash"`
	Connection `mapstructure:",squash"`
}

// Ansible passes its own switches alongside module arguments.
var hostSwitches = map[string]string{
	"_ansible_check_mode": "check",
	"_ansible_diff":       "diff",
}

func DecodeReconcileParams(ctx context.Context, input map[string]any) (ReconcileParams, error) {
	p := ReconcileParams{State: string(domain.LifecyclePresent)}
	if err := decodeParams(input, &p); err != nil {
		return ReconcileParams{}, err
	}
	if err := validateStruct(ctx, &p, "Invalid reconcile parameters:", "Check model, obj, name/ident, state and template/data."); err != nil {
		return ReconcileParams{}, err
	}
	return p, nil
}

func DecodeFactsParams(ctx context.Context, input map[string]any) (FactsParams, error) {
	var p FactsParams
	if err := decodeParams(input, &p); err != nil {
		return FactsParams{}, err
	}
	if err := validateStruct(ctx, &p, "Invalid facts parameters:", "Check model, obj and name/ident."); err != nil {
		return FactsParams{}, err
	}
	return p, nil
}

func decodeParams(input map[string]any, out any) error {
	cleaned := make(map[string]any, len(input))
	for k, v := range input {
		if target, ok := hostSwitches[k]; ok {
			cleaned[target] = v
			continue
		}
		if strings.HasPrefix(k, "_ansible_") {
			continue
		}
		// Hosts send null for unset optional arguments.
		if v == nil {
			continue
		}
		cleaned[k] = v
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		TagName:          "mapstructure",
	})
	if err != nil {
		return errors.Wrap(err, errors.CodeInternal, "failed to build parameter decoder")
	}
	if err := decoder.Decode(cleaned); err != nil {
		return errors.WrapUserFacing(err, errors.CodeConfigValidation,
			"invalid parameters", "Check parameter names and types.")
	}
	return nil
}

// ReadArgsFile reads invocation parameters from a JSON or YAML file, as
// written by automation hosts.
func ReadArgsFile(path string) (map[string]any, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapUserFacing(err, errors.CodeConfigReadError,
			fmt.Sprintf("failed to read args file %s", path), "Check the --args-file path.")
	}
	return parseMapping(path, content)
}

func parseMapping(origin string, content []byte) (map[string]any, error) {
	var raw any
	if err := yaml.Unmarshal(content, &raw); err != nil {
		return nil, errors.WrapUserFacing(err, errors.CodeConfigParseError,
			fmt.Sprintf("failed to parse %s", origin), "The file must hold a JSON or YAML mapping.")
	}
	m, err := convert.ToObjectMap(raw)
	if err != nil {
		return nil, errors.WrapUserFacing(err, errors.CodeConfigParseError,
			fmt.Sprintf("%s is not a mapping", origin), "The file must hold a JSON or YAML mapping.")
	}
	if m == nil {
		m = map[string]any{}
	}
	return m, nil
}

// Invocation turns validated parameters into a domain invocation.
func (p ReconcileParams) Invocation() (domain.Invocation, error) {
	ref, err := p.Ref()
	if err != nil {
		return domain.Invocation{}, err
	}
	if ref == nil {
		return domain.Invocation{}, errors.NewUserFacing(errors.CodeConfigValidation,
			fmt.Sprintf("no object reference given for %s", p.Category()),
			"Set either name or ident.")
	}
	inv := domain.Invocation{
		Category:  p.Category(),
		Ref:       ref,
		Lifecycle: domain.Lifecycle(p.State),
		Source:    domain.DesiredSource{Data: p.Data, Template: p.Template, Vars: p.Vars},
		Check:     p.Check,
		Diff:      p.Diff,
	}
	if inv.Lifecycle == domain.LifecyclePresent && inv.Source.IsZero() {
		return domain.Invocation{}, errors.NewUserFacing(errors.CodeConfigValidation,
			"state present needs desired data",
			"Set either template or data.")
	}
	return inv, nil
}
