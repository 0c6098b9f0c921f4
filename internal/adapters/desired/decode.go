package desired

import (
	"fmt"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"gopkg.in/yaml.v3"

	"github.com/olusolaa/netbox-reconciler/internal/core/domain"
	"github.com/olusolaa/netbox-reconciler/internal/errors"
	"github.com/olusolaa/netbox-reconciler/pkg/convert"
)

var jsonCodec = jsoniter.Config{
	EscapeHTML: true,
	UseNumber:  true,
}.Froze()

// decodeYAML parses text as a YAML document. JSON and the single-quoted
// flow style ({'name': 'x'}) are both valid YAML.
func decodeYAML(origin string, text []byte) (domain.Object, error) {
	if strings.TrimSpace(string(text)) == "" {
		return nil, errors.NewUserFacing(errors.CodeDesiredStateParse,
			fmt.Sprintf("desired state from %s is empty", origin),
			"Provide a mapping of object fields.")
	}
	var raw any
	if err := yaml.Unmarshal(text, &raw); err != nil {
		return nil, errors.WrapUserFacing(err, errors.CodeDesiredStateParse,
			fmt.Sprintf("failed to parse desired state from %s", origin),
			"Check the YAML/JSON syntax.")
	}
	return toObject(origin, raw)
}

func decodeJSON(origin string, text []byte) (domain.Object, error) {
	var raw any
	if err := jsonCodec.Unmarshal(text, &raw); err != nil {
		return nil, errors.WrapUserFacing(err, errors.CodeDesiredStateParse,
			fmt.Sprintf("failed to parse desired state from %s", origin),
			"Check the JSON syntax.")
	}
	return toObject(origin, raw)
}

func toObject(origin string, raw any) (domain.Object, error) {
	m, err := convert.ToObjectMap(raw)
	if err != nil || m == nil {
		return nil, errors.NewUserFacing(errors.CodeDesiredStateParse,
			fmt.Sprintf("desired state from %s is %T, not a mapping", origin, raw),
			"The top level must be a mapping of object fields.")
	}
	return domain.Object(m), nil
}
