package hclfile

import (
	"context"
	"fmt"
	"math"
	"math/big"

	jsoniter "github.com/json-iterator/go"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
	ctyjson "github.com/zclconf/go-cty/cty/json"

	"github.com/olusolaa/netbox-reconciler/internal/core/ports"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ConvertValue turns an evaluated cty value into plain Go data: string,
// bool, int64/float64, []any and map[string]any.
func ConvertValue(ctx context.Context, val cty.Value, logger ports.Logger) (any, error) {
	if !val.IsKnown() {
		return nil, &ValueConversionError{Err: fmt.Errorf("value of type %s is unknown", val.Type().FriendlyName())}
	}
	if val.IsNull() {
		return nil, nil
	}

	ty := val.Type()
	switch {
	case ty == cty.String:
		var s string
		if err := gocty.FromCtyValue(val, &s); err != nil {
			return nil, &ValueConversionError{Err: err}
		}
		return s, nil
	case ty == cty.Bool:
		var b bool
		if err := gocty.FromCtyValue(val, &b); err != nil {
			return nil, &ValueConversionError{Err: err}
		}
		return b, nil
	case ty == cty.Number:
		return convertNumber(val), nil
	case ty.IsListType() || ty.IsSetType() || ty.IsTupleType():
		out := []any{}
		for it := val.ElementIterator(); it.Next(); {
			_, elem := it.Element()
			goElem, err := ConvertValue(ctx, elem, logger)
			if err != nil {
				return nil, err
			}
			out = append(out, goElem)
		}
		return out, nil
	case ty.IsMapType() || ty.IsObjectType():
		out := make(map[string]any)
		for it := val.ElementIterator(); it.Next(); {
			key, elem := it.Element()
			goElem, err := ConvertValue(ctx, elem, logger)
			if err != nil {
				return nil, &ValueConversionError{AttributeName: key.AsString(), Err: err}
			}
			out[key.AsString()] = goElem
		}
		return out, nil
	}

	logger.Debugf(ctx, "No direct conversion for %s, falling back to JSON intermediate", ty.FriendlyName())

	raw, err := ctyjson.Marshal(val, ty)
	if err != nil {
		return nil, &ValueConversionError{Err: fmt.Errorf("failed to marshal %s to intermediary JSON: %w", ty.FriendlyName(), err)}
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, &ValueConversionError{Err: fmt.Errorf("failed to unmarshal intermediary JSON (%s): %w", ty.FriendlyName(), err)}
	}
	return out, nil
}

func convertNumber(val cty.Value) any {
	bf := val.AsBigFloat()
	if i64, acc := bf.Int64(); acc == big.Exact {
		return i64
	}
	f64, _ := bf.Float64()
	if !math.IsInf(f64, 0) {
		return f64
	}
	return bf.Text('g', -1)
}

// VarsValue encodes template variables as the object bound to var.
func VarsValue(vars map[string]any) (cty.Value, error) {
	if len(vars) == 0 {
		return cty.EmptyObjectVal, nil
	}
	raw, err := json.Marshal(vars)
	if err != nil {
		return cty.NilVal, &ValueConversionError{Err: fmt.Errorf("failed to encode vars: %w", err)}
	}
	ty, err := ctyjson.ImpliedType(raw)
	if err != nil {
		return cty.NilVal, &ValueConversionError{Err: fmt.Errorf("failed to infer vars type: %w", err)}
	}
	val, err := ctyjson.Unmarshal(raw, ty)
	if err != nil {
		return cty.NilVal, &ValueConversionError{Err: fmt.Errorf("failed to decode vars: %w", err)}
	}
	return val, nil
}
