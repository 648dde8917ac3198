// Package completion describes the xtree flags for shell completion.
package completion

import (
	"strings"

	"github.com/chmouel/xtree/internal/config"
	"github.com/chmouel/xtree/internal/models"
	"github.com/chmouel/xtree/internal/theme"
)

// FlagInfo contains metadata about a command-line flag for completion generation.
type FlagInfo struct {
	Name        string   // Flag name without dashes
	Short       string   // Single letter alias, may be empty
	Description string   // Human-readable description
	HasValue    bool     // true for string flags, false for bool flags
	ValueHint   string   // Hint for value type (e.g., "PATH", "NAME")
	Values      []string // Enumerated values for completion (e.g., theme names)
}

// GetFlags returns metadata for all xtree command-line flags.
func GetFlags() []FlagInfo {
	overrides := make([]string, 0, len(config.Keys()))
	for _, key := range config.Keys() {
		overrides = append(overrides, "xt."+key+"=")
	}

	return []FlagInfo{
		{Name: "config-file", Description: "Path to configuration file", HasValue: true, ValueHint: "FILE"},
		{Name: "debug-log", Description: "Path to debug log file", HasValue: true, ValueHint: "PATH"},
		{Name: "theme", Short: "t", Description: "Override UI theme", HasValue: true, ValueHint: "NAME", Values: theme.AvailableThemes()},
		{Name: "sort", Description: "Initial sorting", HasValue: true, ValueHint: "KEY", Values: models.SortingValues()},
		{Name: "no-compress", Description: "Start with redundant explicit dependencies shown"},
		{
			Name:        "transition",
			Description: "Filter panel animation backend",
			HasValue:    true,
			ValueHint:   "BACKEND",
			Values:      []string{config.TransitionAuto, config.TransitionEvent, config.TransitionTimer},
		},
		{Name: "watch", Description: "Reload the tree when the input file changes"},
		{Name: "list-themes", Description: "List available themes and exit"},
		{Name: "config", Short: "C", Description: "Override config values", HasValue: true, ValueHint: "KEY=VALUE", Values: overrides},
	}
}

// Suggest returns the completion candidates following the word prev.
func Suggest(prev string) []string {
	if strings.HasPrefix(prev, "-") {
		name := strings.TrimLeft(prev, "-")
		for _, flag := range GetFlags() {
			if flag.HasValue && (flag.Name == name || (flag.Short != "" && flag.Short == name)) {
				return flag.Values
			}
		}
	}

	suggestions := []string{"version"}
	for _, flag := range GetFlags() {
		suggestions = append(suggestions, "--"+flag.Name)
	}
	return suggestions
}
