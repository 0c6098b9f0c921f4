package reflectutil

import (
	"encoding/json"
	"math"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNumeric(t *testing.T) {
	assert.True(t, IsNumeric(1))
	assert.True(t, IsNumeric(int64(1)))
	assert.True(t, IsNumeric(1.5))
	assert.True(t, IsNumeric(json.Number("12")))
	assert.False(t, IsNumeric("12"))
	assert.False(t, IsNumeric(nil))
	assert.False(t, IsNumeric(true))
}

func TestToFloat64(t *testing.T) {
	f, ok := ToFloat64(reflect.ValueOf(uint8(7)))
	assert.True(t, ok)
	assert.Equal(t, 7.0, f)

	f, ok = ToFloat64(reflect.ValueOf(json.Number("64542")))
	assert.True(t, ok)
	assert.Equal(t, 64542.0, f)

	_, ok = ToFloat64(reflect.ValueOf("64542"))
	assert.False(t, ok)
}

func TestToInt64(t *testing.T) {
	tests := []struct {
		in     any
		want   int64
		wantOK bool
	}{
		{float64(12), 12, true},
		{12, 12, true},
		{json.Number("9"), 9, true},
		{"15", 15, true},
		{1.5, 0, false},
		{"abc", 0, false},
		{nil, 0, false},
	}
	for _, tt := range tests {
		got, ok := ToInt64(tt.in)
		assert.Equal(t, tt.wantOK, ok, "input %v", tt.in)
		assert.Equal(t, tt.want, got, "input %v", tt.in)
	}
}

func TestExactInt64(t *testing.T) {
	tests := []struct {
		in     any
		want   int64
		wantOK bool
	}{
		{int64(9007199254740993), 9007199254740993, true},
		{json.Number("9007199254740993"), 9007199254740993, true},
		{uint16(80), 80, true},
		{uint64(math.MaxUint64), 0, false},
		{json.Number("5.0"), 0, false},
		{json.Number("1e3"), 0, false},
		{float64(5), 0, false},
		{"5", 0, false},
		{nil, 0, false},
	}
	for _, tt := range tests {
		got, ok := ExactInt64(tt.in)
		assert.Equal(t, tt.wantOK, ok, "input %v", tt.in)
		assert.Equal(t, tt.want, got, "input %v", tt.in)
	}
}
