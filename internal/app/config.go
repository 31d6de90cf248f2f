package app

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// DefaultManifestPath is the manifest read when none is configured.
const DefaultManifestPath = "appregister.hcl"

// LogLevels and LogFormats are the accepted logging settings.
var (
	LogLevels  = []string{"debug", "info", "warn", "error"}
	LogFormats = []string{"text", "json"}
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ManifestPath string // hcl file or directory of hcl files
	Module       string // discovery submodule, overrides the manifest

	LogFormat string
	LogLevel  string
}

// NewConfig validates cfg and returns a normalized copy.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ManifestPath == "" {
		return nil, errors.New("ManifestPath is a required configuration field and cannot be empty")
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if !slices.Contains(LogLevels, cfg.LogLevel) {
		return nil, fmt.Errorf("invalid log-level %q: must be one of %s", cfg.LogLevel, strings.Join(LogLevels, ", "))
	}

	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	if !slices.Contains(LogFormats, cfg.LogFormat) {
		return nil, fmt.Errorf("invalid log-format %q: must be one of %s", cfg.LogFormat, strings.Join(LogFormats, ", "))
	}

	cfg.Module = strings.TrimSpace(cfg.Module)
	return &cfg, nil
}
