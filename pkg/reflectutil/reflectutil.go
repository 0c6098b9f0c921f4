package reflectutil

import (
	"encoding/json"
	"math"
	"reflect"
	"strconv"
)

func DerefValue(v reflect.Value) reflect.Value {
	for (v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface) && !v.IsNil() {
		v = v.Elem()
	}
	return v
}

func IsNumber(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

// IsNumeric reports whether x is a Go number or a json.Number. Numeric
// strings are deliberately not numbers here.
func IsNumeric(x any) bool {
	if _, ok := x.(json.Number); ok {
		return true
	}
	if x == nil {
		return false
	}
	return IsNumber(DerefValue(reflect.ValueOf(x)))
}

func ToFloat64(v reflect.Value) (float64, bool) {
	v = DerefValue(v)
	if !v.IsValid() {
		return 0, false
	}
	if n, ok := v.Interface().(json.Number); ok {
		f, err := n.Float64()
		return f, err == nil
	}
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint()), true
	case reflect.Float32, reflect.Float64:
		return v.Float(), true
	}
	return 0, false
}

// ExactInt64 returns x when it is held as an integer: a Go integer kind
// that fits in int64, or a json.Number written without fraction or
// exponent. Floats are never exact here, even when integral.
func ExactInt64(x any) (int64, bool) {
	if n, ok := x.(json.Number); ok {
		i, err := n.Int64()
		return i, err == nil
	}
	if x == nil {
		return 0, false
	}
	v := DerefValue(reflect.ValueOf(x))
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := v.Uint()
		if u > math.MaxInt64 {
			return 0, false
		}
		return int64(u), true
	}
	return 0, false
}

// ToInt64 converts integral numbers (including integral floats such as
// decoded JSON ids) to int64.
func ToInt64(x any) (int64, bool) {
	switch n := x.(type) {
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	case string:
		i, err := strconv.ParseInt(n, 10, 64)
		return i, err == nil
	}
	if x == nil {
		return 0, false
	}
	f, ok := ToFloat64(reflect.ValueOf(x))
	if !ok || f != float64(int64(f)) {
		return 0, false
	}
	return int64(f), true
}
