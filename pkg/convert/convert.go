package convert

import (
	"fmt"
	"reflect"
)

var errNotMap = fmt.Errorf("input data is not a map")
var errNotSlice = fmt.Errorf("input data is not a slice")
var errNotMapElement = fmt.Errorf("slice element is not a map[string]any")

// Normalize rewrites decoded data into the shapes the rest of the code
// expects: map[string]any for mappings and []any for sequences, at every
// depth. Map keys that are not strings are formatted with %v.
func Normalize(data any) any {
	switch v := data.(type) {
	case nil:
		return nil
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, item := range v {
			out[k] = Normalize(item)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(v))
		for k, item := range v {
			out[fmt.Sprintf("%v", k)] = Normalize(item)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = Normalize(item)
		}
		return out
	}

	val := reflect.ValueOf(data)
	switch val.Kind() {
	case reflect.Map:
		out := make(map[string]any, val.Len())
		iter := val.MapRange()
		for iter.Next() {
			out[fmt.Sprintf("%v", iter.Key().Interface())] = Normalize(iter.Value().Interface())
		}
		return out
	case reflect.Slice, reflect.Array:
		if val.Type().Elem().Kind() == reflect.Uint8 {
			return data
		}
		out := make([]any, val.Len())
		for i := 0; i < val.Len(); i++ {
			out[i] = Normalize(val.Index(i).Interface())
		}
		return out
	}
	return data
}

// ToObjectMap normalizes data and requires the result to be a mapping.
// Returns nil map if input is nil.
func ToObjectMap(data any) (map[string]any, error) {
	if data == nil {
		return nil, nil
	}
	m, ok := Normalize(data).(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: input type %T", errNotMap, data)
	}
	return m, nil
}

// ToSliceOfMap converts slice types ([]map[string]any, []any) to []map[string]any.
// Returns an error if input is not a slice or elements are not mappings.
func ToSliceOfMap(data any) ([]map[string]any, error) {
	if data == nil {
		return []map[string]any{}, nil
	}

	if sliceMap, ok := data.([]map[string]any); ok {
		return sliceMap, nil
	}

	val := reflect.ValueOf(data)
	if val.Kind() != reflect.Slice {
		return nil, fmt.Errorf("%w: input type %T", errNotSlice, data)
	}

	result := make([]map[string]any, 0, val.Len())
	for i := 0; i < val.Len(); i++ {
		item := Normalize(val.Index(i).Interface())
		if mapItem, okMap := item.(map[string]any); okMap {
			result = append(result, mapItem)
		} else {
			return nil, fmt.Errorf("index %d: %w (type %T)", i, errNotMapElement, item)
		}
	}
	return result, nil
}
