package compare

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/olusolaa/netbox-reconciler/pkg/convert"
	"github.com/olusolaa/netbox-reconciler/pkg/reflectutil"
)

const numericTolerance = 1e-9

// Difference describes one field of a desired mapping that the current
// mapping does not satisfy.
type Difference struct {
	Path     string
	Expected any
	Actual   any
	Missing  bool
}

func (d Difference) String() string {
	if d.Missing {
		return fmt.Sprintf("%s: expected '%v', actual <missing>", d.Path, d.Expected)
	}
	return fmt.Sprintf("%s: expected '%v', actual '%v'", d.Path, d.Expected, d.Actual)
}

// IsEquivalent reports whether desired is a subset of current: every key of
// desired must exist in current with an equivalent value. Keys only present
// in current are ignored, nested mappings follow the same rule, and an empty
// desired mapping is equivalent to anything.
func IsEquivalent(desired, current map[string]any) bool {
	for key, want := range desired {
		have, ok := current[key]
		if !ok {
			return false
		}
		if !valuesEquivalent(want, have) {
			return false
		}
	}
	return true
}

func valuesEquivalent(want, have any) bool {
	if want == nil || have == nil {
		return want == nil && have == nil
	}

	if wantMap, ok := asMap(want); ok {
		haveMap, ok := asMap(have)
		return ok && IsEquivalent(wantMap, haveMap)
	}

	if wantSeq, ok := asSeq(want); ok {
		haveSeq, ok := asSeq(have)
		if !ok || len(wantSeq) != len(haveSeq) {
			return false
		}
		for i := range wantSeq {
			if !valuesEquivalent(wantSeq[i], haveSeq[i]) {
				return false
			}
		}
		return true
	}

	return scalarsEqual(want, have)
}

// scalarsEqual compares leaf values. Numbers compare by value whatever
// their Go kind, so an int decoded from YAML equals the float64 decoded from
// an API response. Two integers compare exactly; the float tolerance only
// applies once either side is a float. Strings are never coerced into
// numbers.
func scalarsEqual(want, have any) bool {
	if reflectutil.IsNumeric(want) && reflectutil.IsNumeric(have) {
		wi, wExact := reflectutil.ExactInt64(want)
		hi, hExact := reflectutil.ExactInt64(have)
		if wExact && hExact {
			return wi == hi
		}
		w, wOK := reflectutil.ToFloat64(reflect.ValueOf(want))
		h, hOK := reflectutil.ToFloat64(reflect.ValueOf(have))
		if wOK && hOK {
			diff := w - h
			return diff < numericTolerance && diff > -numericTolerance
		}
	}

	wantType := reflect.TypeOf(want)
	if wantType == reflect.TypeOf(have) && wantType.Comparable() {
		return want == have
	}
	return reflect.DeepEqual(want, have)
}

func asMap(x any) (map[string]any, bool) {
	if m, ok := x.(map[string]any); ok {
		return m, true
	}
	if reflect.ValueOf(x).Kind() != reflect.Map {
		return nil, false
	}
	m, err := convert.ToObjectMap(x)
	return m, err == nil
}

func asSeq(x any) ([]any, bool) {
	if s, ok := x.([]any); ok {
		return s, true
	}
	kind := reflect.ValueOf(x).Kind()
	if kind != reflect.Slice && kind != reflect.Array {
		return nil, false
	}
	s, ok := convert.Normalize(x).([]any)
	return s, ok
}

// Differences lists every path of desired that current does not satisfy,
// sorted by path. It reports the same verdict as IsEquivalent: the result is
// empty exactly when IsEquivalent returns true.
func Differences(desired, current map[string]any) []Difference {
	var diffs []Difference
	collectMapDiffs("", desired, current, &diffs)
	sort.SliceStable(diffs, func(i, j int) bool { return diffs[i].Path < diffs[j].Path })
	return diffs
}

func collectMapDiffs(prefix string, desired, current map[string]any, out *[]Difference) {
	for key, want := range desired {
		path := joinPath(prefix, key)
		have, ok := current[key]
		if !ok {
			*out = append(*out, Difference{Path: path, Expected: want, Missing: true})
			continue
		}
		collectValueDiffs(path, want, have, out)
	}
}

func collectValueDiffs(path string, want, have any, out *[]Difference) {
	if want != nil && have != nil {
		if wantMap, ok := asMap(want); ok {
			if haveMap, ok := asMap(have); ok {
				collectMapDiffs(path, wantMap, haveMap, out)
				return
			}
		}
		if wantSeq, ok := asSeq(want); ok {
			if haveSeq, ok := asSeq(have); ok && len(wantSeq) == len(haveSeq) {
				for i := range wantSeq {
					collectValueDiffs(fmt.Sprintf("%s[%d]", path, i), wantSeq[i], haveSeq[i], out)
				}
				return
			}
		}
	}
	if !valuesEquivalent(want, have) {
		*out = append(*out, Difference{Path: path, Expected: want, Actual: have})
	}
}

func joinPath(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

// Summary joins Differences into one line for logs.
func Summary(desired, current map[string]any) string {
	diffs := Differences(desired, current)
	parts := make([]string, 0, len(diffs))
	for _, d := range diffs {
		parts = append(parts, d.String())
	}
	return strings.Join(parts, "; ")
}

// Report renders a human diff between the part of current that desired
// speaks about (before, "-") and desired (after, "+"). It returns an empty
// string when the two are equivalent.
func Report(desired, current map[string]any) string {
	if IsEquivalent(desired, current) {
		return ""
	}
	before := project(convert.Normalize(current), convert.Normalize(desired))
	after := convert.Normalize(desired)
	if before == nil {
		before = map[string]any{}
	}
	return cmp.Diff(before, after, cmpopts.EquateEmpty(), numericComparer())
}

func numericComparer() cmp.Option {
	return cmp.FilterValues(func(x, y any) bool {
		return reflectutil.IsNumeric(x) && reflectutil.IsNumeric(y)
	}, cmp.Comparer(func(x, y any) bool {
		return scalarsEqual(x, y)
	}))
}

// project keeps only the parts of current addressed by desired.
func project(current, desired any) any {
	curMap, curIsMap := current.(map[string]any)
	desMap, desIsMap := desired.(map[string]any)
	if curIsMap && desIsMap {
		out := make(map[string]any, len(desMap))
		for key, want := range desMap {
			if have, ok := curMap[key]; ok {
				out[key] = project(have, want)
			}
		}
		return out
	}

	curSeq, curIsSeq := current.([]any)
	desSeq, desIsSeq := desired.([]any)
	if curIsSeq && desIsSeq && len(curSeq) == len(desSeq) {
		out := make([]any, len(curSeq))
		for i := range curSeq {
			out[i] = project(curSeq[i], desSeq[i])
		}
		return out
	}
	return current
}
