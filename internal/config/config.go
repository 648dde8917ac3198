// Package config loads the xtree configuration from YAML.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/chmouel/xtree/internal/models"
	"github.com/chmouel/xtree/internal/theme"
	"gopkg.in/yaml.v3"
)

// Transition backends accepted by the transition option.
const (
	TransitionAuto  = "auto"
	TransitionEvent = "event"
	TransitionTimer = "timer"
)

// AppConfig defines the xtree configuration options.
type AppConfig struct {
	Theme      string // see theme.AvailableThemes; empty means detect from the terminal
	DebugLog   string
	Sort       string // initial sort key: one of models.SortingValues
	Compressed bool   // start in compressed mode (default: true)
	ShowIcons  bool   // render Nerd Font glyphs next to nodes (default: true)
	Transition string // filter panel animation backend: auto, event or timer
	AutoReload bool   // reload the tree when the input file changes
}

// DefaultConfig returns the default configuration values.
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Sort:       models.SortName,
		Compressed: true,
		ShowIcons:  true,
		Transition: TransitionAuto,
	}
}

func coerceBool(value any, defaultVal bool) bool {
	if value == nil {
		return defaultVal
	}

	switch v := value.(type) {
	case bool:
		return v
	case int:
		return v != 0
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "yes", "y", "on":
			return true
		case "0", "false", "no", "n", "off":
			return false
		}
	}
	return defaultVal
}

// NormalizeSort maps a case-insensitive sort key onto its canonical spelling,
// or "" when it is not a sort key.
func NormalizeSort(value string) string {
	value = strings.TrimSpace(value)
	for _, key := range models.SortingValues() {
		if strings.EqualFold(key, value) {
			return key
		}
	}
	return ""
}

// NormalizeTransition returns the canonical backend name, or "" when value is
// not one.
func NormalizeTransition(value string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	switch value {
	case TransitionAuto, TransitionEvent, TransitionTimer:
		return value
	}
	return ""
}

// apply overlays the recognised keys of data onto cfg. Invalid values are
// ignored and keep whatever cfg already holds.
func (cfg *AppConfig) apply(data map[string]any) {
	if themeName, ok := data["theme"].(string); ok {
		if normalized := theme.Normalize(themeName); normalized != "" {
			cfg.Theme = normalized
		}
	}
	if debugLog, ok := data["debug_log"].(string); ok {
		if debugLog = strings.TrimSpace(debugLog); debugLog != "" {
			cfg.DebugLog = debugLog
		}
	}
	if sortKey, ok := data["sort"].(string); ok {
		if normalized := NormalizeSort(sortKey); normalized != "" {
			cfg.Sort = normalized
		}
	}
	if transition, ok := data["transition"].(string); ok {
		if normalized := NormalizeTransition(transition); normalized != "" {
			cfg.Transition = normalized
		}
	}
	cfg.Compressed = coerceBool(data["compressed"], cfg.Compressed)
	cfg.ShowIcons = coerceBool(data["show_icons"], cfg.ShowIcons)
	cfg.AutoReload = coerceBool(data["auto_reload"], cfg.AutoReload)
}

func parseConfig(data map[string]any) *AppConfig {
	cfg := DefaultConfig()
	cfg.apply(data)
	return cfg
}

func getConfigDir() string {
	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		return xdgConfigHome
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config")
}

// LoadConfig reads the configuration from configPath, or from
// $XDG_CONFIG_HOME/xtree/config.yaml when configPath is empty. A missing file
// yields the defaults.
func LoadConfig(configPath string) (*AppConfig, error) {
	configBase := filepath.Clean(filepath.Join(getConfigDir(), "xtree"))

	var paths []string
	if configPath != "" {
		expanded, err := ExpandPath(configPath)
		if err != nil {
			return DefaultConfig(), err
		}
		absPath, err := filepath.Abs(expanded)
		if err != nil {
			return DefaultConfig(), err
		}
		paths = []string{absPath}
	} else {
		paths = []string{
			filepath.Join(configBase, "config.yaml"),
			filepath.Join(configBase, "config.yml"),
		}
	}

	for _, path := range paths {
		data, err := os.ReadFile(path) //nolint:gosec
		if os.IsNotExist(err) {
			if configPath != "" {
				return DefaultConfig(), fmt.Errorf("config file %s does not exist", path)
			}
			continue
		}
		if err != nil {
			return DefaultConfig(), fmt.Errorf("failed to read %s: %w", path, err)
		}

		var yamlData map[string]any
		if err := yaml.Unmarshal(data, &yamlData); err != nil {
			return DefaultConfig(), fmt.Errorf("failed to parse %s: %w", path, err)
		}
		return parseConfig(yamlData), nil
	}

	return DefaultConfig(), nil
}

// ResolveTheme fills in the theme from the terminal background when the
// configuration leaves it unset.
func (cfg *AppConfig) ResolveTheme() {
	if cfg.Theme == "" {
		cfg.Theme = theme.Detect()
	}
}

// ExpandPath expands a leading ~ and environment variables in path.
func ExpandPath(path string) (string, error) {
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, path[1:])
	}
	return os.ExpandEnv(path), nil
}
