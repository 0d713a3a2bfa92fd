package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// Config holds application configuration.
type Config struct {
	// BasicFoodsFile is the basic foods data file name inside the base
	// directory.
	BasicFoodsFile string `json:"basic_foods_file,omitempty"`

	// CompositeFoodsFile is the composite foods data file name.
	CompositeFoodsFile string `json:"composite_foods_file,omitempty"`

	// DailyLogFile is the daily log data file name.
	DailyLogFile string `json:"daily_log_file,omitempty"`

	// MaxServings bounds a single log entry's servings count at the
	// CLI/MCP surface. The core model enforces no upper bound.
	MaxServings float64 `json:"max_servings,omitempty"`

	// DisabledTools is a list of MCP tool names to exclude from
	// registration. Unknown tool names are rejected at startup.
	DisabledTools []string `json:"disabled_tools,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		BasicFoodsFile:     "basic_foods.txt",
		CompositeFoodsFile: "composite_foods.txt",
		DailyLogFile:       "daily_log.txt",
		MaxServings:        100,
	}
}

// Load loads configuration from baseDir/config.json. Returns default
// config if the file doesn't exist. The baseDir parameter allows tests
// to use t.TempDir() instead of ~/.yada.
func Load(baseDir string) (*Config, error) {
	data, err := os.ReadFile(filepath.Join(baseDir, "config.json"))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return Merge(DefaultConfig(), cfg), nil
}

// Merge combines base and overlay configs. Overlay values take
// precedence for scalars; arrays are merged and deduplicated.
func Merge(base, overlay *Config) *Config {
	result := &Config{}

	result.BasicFoodsFile = overlay.BasicFoodsFile
	if result.BasicFoodsFile == "" {
		result.BasicFoodsFile = base.BasicFoodsFile
	}

	result.CompositeFoodsFile = overlay.CompositeFoodsFile
	if result.CompositeFoodsFile == "" {
		result.CompositeFoodsFile = base.CompositeFoodsFile
	}

	result.DailyLogFile = overlay.DailyLogFile
	if result.DailyLogFile == "" {
		result.DailyLogFile = base.DailyLogFile
	}

	result.MaxServings = overlay.MaxServings
	if result.MaxServings == 0 {
		result.MaxServings = base.MaxServings
	}

	result.DisabledTools = mergeStringSlice(base.DisabledTools, overlay.DisabledTools)

	return result
}

// mergeStringSlice combines two slices, trims whitespace, and removes
// duplicates.
func mergeStringSlice(a, b []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, len(a)+len(b))

	for _, s := range append(append([]string{}, a...), b...) {
		s = strings.TrimSpace(s)
		if s != "" && !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
	}

	if len(result) == 0 {
		return nil
	}
	return result
}
