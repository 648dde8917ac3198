package config

import (
	"fmt"
	"slices"
	"strings"
)

// overridePrefix is accepted, and stripped, in front of override keys.
const overridePrefix = "xt."

var knownKeys = map[string]bool{
	"theme":       true,
	"debug_log":   true,
	"sort":        true,
	"compressed":  true,
	"show_icons":  true,
	"transition":  true,
	"auto_reload": true,
}

// Keys returns the configuration keys accepted by overrides, sorted.
func Keys() []string {
	keys := make([]string, 0, len(knownKeys))
	for key := range knownKeys {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}

// parseOverrides turns "key=value" pairs into the map consumed by apply.
// Input format: "xt.sort=Height" or "sort=Height".
func parseOverrides(overrides []string) (map[string]any, error) {
	result := make(map[string]any, len(overrides))
	for _, override := range overrides {
		key, value, found := strings.Cut(override, "=")
		if !found {
			return nil, fmt.Errorf("invalid override %q: expected key=value", override)
		}
		key = strings.TrimPrefix(strings.TrimSpace(key), overridePrefix)
		if !knownKeys[key] {
			return nil, fmt.Errorf("unknown config key %q", key)
		}
		result[key] = strings.TrimSpace(value)
	}
	return result, nil
}

// ApplyCLIOverrides applies --config key=value overrides on top of cfg.
func (cfg *AppConfig) ApplyCLIOverrides(overrides []string) error {
	data, err := parseOverrides(overrides)
	if err != nil {
		return err
	}
	cfg.apply(data)
	return nil
}
