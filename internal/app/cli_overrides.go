package app

import (
	"strings"
)

// ParseVarsOverride parses template variables given on the command line as
// "key=value;key2=value2". Malformed pairs are skipped. Later keys win.
func ParseVarsOverride(override string) map[string]any {
	if override == "" {
		return nil
	}
	parsed := make(map[string]any)
	pairs := strings.Split(override, ";")
	for _, pair := range pairs {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}

		parts := strings.SplitN(pair, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		if key == "" {
			continue
		}
		parsed[key] = strings.TrimSpace(parts[1])
	}
	if len(parsed) == 0 {
		return nil
	}
	return parsed
}

// MergeVars layers overrides on top of base without modifying either.
func MergeVars(base, overrides map[string]any) map[string]any {
	if len(overrides) == 0 {
		return base
	}
	merged := make(map[string]any, len(base)+len(overrides))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range overrides {
		merged[k] = v
	}
	return merged
}
