// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"slices"

	"gopkg.in/yaml.v3"
)

// EnvironmentVariable names the variable [Load] reads the config path
// from.
const EnvironmentVariable = "OPTWIRE_CONFIG"

// Environment represents the deployment environment.
type Environment string

const (
	// Development is for local development machines.
	Development Environment = "development"
	// Staging is for pre-production testing.
	Staging Environment = "staging"
	// Production is for production deployments.
	Production Environment = "production"
)

// Config is the master configuration for optwire.
type Config struct {
	// Environment identifies the deployment type (development, staging, production).
	Environment Environment `yaml:"environment"`

	// Root is the base directory for optwire data. Other paths may
	// refer to it as ${OPTWIRE_ROOT}.
	Root string `yaml:"root"`

	// Limits bounds the payloads the CLI will decode.
	Limits LimitsConfig `yaml:"limits"`

	// Output configures how decoded options are printed.
	Output OutputConfig `yaml:"output"`

	// Logging configures the CLI logger.
	Logging LoggingConfig `yaml:"logging"`

	// Capture configures capture replay.
	Capture CaptureConfig `yaml:"capture"`

	// EnvironmentOverrides contains per-environment overrides.
	// These are applied after the base config is loaded.
	Development *ConfigOverrides `yaml:"development,omitempty"`
	Staging     *ConfigOverrides `yaml:"staging,omitempty"`
	Production  *ConfigOverrides `yaml:"production,omitempty"`
}

// ConfigOverrides contains fields that can be overridden per environment.
type ConfigOverrides struct {
	Limits  *LimitsConfig  `yaml:"limits,omitempty"`
	Output  *OutputConfig  `yaml:"output,omitempty"`
	Logging *LoggingConfig `yaml:"logging,omitempty"`
	Capture *CaptureConfig `yaml:"capture,omitempty"`
}

// LimitsConfig bounds decoder input. The codec itself has no limits;
// the CLI checks these against the parsed payload before decoding.
type LimitsConfig struct {
	// MaxDepth is the deepest container nesting accepted. An option
	// map is depth 1; each sub-command level adds two (the options
	// array and the nested map).
	// Default: 16
	MaxDepth int `yaml:"max_depth"`

	// MaxPayloadBytes is the largest single payload accepted.
	// Default: 1 MiB
	MaxPayloadBytes int `yaml:"max_payload_bytes"`
}

// OutputConfig configures printed output.
type OutputConfig struct {
	// Format is the default output format of decode.
	// Values: "json", "yaml", "tree"
	// Default: json
	Format string `yaml:"format"`

	// Color controls ANSI styling of tree output.
	// Values: "auto" (when stdout is a terminal), "always", "never"
	// Default: auto (development), never (production)
	Color string `yaml:"color"`
}

// LoggingConfig configures the CLI logger.
type LoggingConfig struct {
	// Level is the minimum level logged: debug, info, warn, or error.
	// Default: info (development), warn (production)
	Level string `yaml:"level"`
}

// CaptureConfig configures capture replay.
type CaptureConfig struct {
	// DefaultFormat is the record format assumed when a capture's
	// file name does not say.
	// Values: "json", "cbor"
	// Default: json
	DefaultFormat string `yaml:"default_format"`

	// Directory is where relative capture paths are resolved.
	// Default: ${OPTWIRE_ROOT}/captures
	Directory string `yaml:"directory"`
}

var (
	outputFormats  = []string{"json", "yaml", "tree"}
	colorModes     = []string{"auto", "always", "never"}
	captureFormats = []string{"json", "cbor"}
)

// Default returns the default configuration.
// These defaults are the base the config file is merged into, and
// the whole configuration when no file is given to [Resolve].
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	defaultRoot := filepath.Join(homeDir, ".cache", "optwire")

	return &Config{
		Environment: Development,
		Root:        defaultRoot,
		Limits: LimitsConfig{
			MaxDepth:        16,
			MaxPayloadBytes: 1 << 20,
		},
		Output: OutputConfig{
			Format: "json",
			Color:  "auto",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Capture: CaptureConfig{
			DefaultFormat: "json",
			Directory:     "${OPTWIRE_ROOT}/captures",
		},
	}
}

// Load loads configuration from the OPTWIRE_CONFIG environment variable.
//
// There are no fallbacks or defaults - if OPTWIRE_CONFIG is not set, this fails.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvironmentVariable)
	if configPath == "" {
		return nil, fmt.Errorf("%s environment variable not set; "+
			"set it to the path of your optwire.yaml config file, or use --config flag", EnvironmentVariable)
	}

	return LoadFile(configPath)
}

// Resolve loads configuration for a CLI invocation: path if non-empty,
// else OPTWIRE_CONFIG if set, else [Default].
func Resolve(path string) (*Config, error) {
	if path != "" {
		return LoadFile(path)
	}
	if os.Getenv(EnvironmentVariable) != "" {
		return Load()
	}
	cfg := Default()
	cfg.applyEnvironmentOverrides()
	cfg.expandVariables()
	return cfg, nil
}

// LoadFile loads configuration from a specific file path.
//
// The config file is the single source of truth. Environment variables do not
// override config values. The only expansion performed is ${HOME} and
// similar path variables for portability.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}

	// Apply environment-specific overrides (development/staging/production sections in the file).
	cfg.applyEnvironmentOverrides()

	// Expand ${HOME} and similar variables in paths for portability.
	cfg.expandVariables()

	return cfg, nil
}

// loadFile loads a single configuration file, merging into the current config.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

// applyEnvironmentOverrides applies the environment-specific overrides.
func (c *Config) applyEnvironmentOverrides() {
	var overrides *ConfigOverrides

	switch c.Environment {
	case Development:
		overrides = c.Development
	case Staging:
		overrides = c.Staging
	case Production:
		overrides = c.Production
		if overrides == nil {
			overrides = &ConfigOverrides{
				Output:  &OutputConfig{Color: "never"},
				Logging: &LoggingConfig{Level: "warn"},
			}
		}
	}

	if overrides == nil {
		return
	}

	if overrides.Limits != nil {
		if overrides.Limits.MaxDepth != 0 {
			c.Limits.MaxDepth = overrides.Limits.MaxDepth
		}
		if overrides.Limits.MaxPayloadBytes != 0 {
			c.Limits.MaxPayloadBytes = overrides.Limits.MaxPayloadBytes
		}
	}

	if overrides.Output != nil {
		if overrides.Output.Format != "" {
			c.Output.Format = overrides.Output.Format
		}
		if overrides.Output.Color != "" {
			c.Output.Color = overrides.Output.Color
		}
	}

	if overrides.Logging != nil && overrides.Logging.Level != "" {
		c.Logging.Level = overrides.Logging.Level
	}

	if overrides.Capture != nil {
		if overrides.Capture.DefaultFormat != "" {
			c.Capture.DefaultFormat = overrides.Capture.DefaultFormat
		}
		if overrides.Capture.Directory != "" {
			c.Capture.Directory = overrides.Capture.Directory
		}
	}
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in paths.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"OPTWIRE_ROOT": c.Root,
		"HOME":         os.Getenv("HOME"),
	}

	c.Root = expandVars(c.Root, vars)
	vars["OPTWIRE_ROOT"] = c.Root // Update for dependent paths.

	c.Capture.Directory = expandVars(c.Capture.Directory, vars)
}

// expandVars expands ${VAR} and ${VAR:-default} patterns.
var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		// Check provided vars first, then environment.
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if c.Environment != Development && c.Environment != Staging && c.Environment != Production {
		errs = append(errs, fmt.Errorf("invalid environment: %s", c.Environment))
	}

	if c.Limits.MaxDepth < 1 {
		errs = append(errs, fmt.Errorf("limits.max_depth must be at least 1, got %d", c.Limits.MaxDepth))
	}
	if c.Limits.MaxPayloadBytes < 1 {
		errs = append(errs, fmt.Errorf("limits.max_payload_bytes must be at least 1, got %d", c.Limits.MaxPayloadBytes))
	}

	if !slices.Contains(outputFormats, c.Output.Format) {
		errs = append(errs, fmt.Errorf("output.format must be one of: %v", outputFormats))
	}
	if !slices.Contains(colorModes, c.Output.Color) {
		errs = append(errs, fmt.Errorf("output.color must be one of: %v", colorModes))
	}

	if _, err := c.Logging.SlogLevel(); err != nil {
		errs = append(errs, fmt.Errorf("logging.level: %w", err))
	}

	if !slices.Contains(captureFormats, c.Capture.DefaultFormat) {
		errs = append(errs, fmt.Errorf("capture.default_format must be one of: %v", captureFormats))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// SlogLevel parses Level. Accepts the names slog understands
// ("debug", "INFO", "warn+2").
func (l LoggingConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, err
	}
	return level, nil
}

// CapturePath resolves a capture file name against Capture.Directory.
// Absolute paths, and names that exist relative to the working
// directory, are returned unchanged.
func (c *Config) CapturePath(name string) string {
	if filepath.IsAbs(name) || c.Capture.Directory == "" {
		return name
	}
	if _, err := os.Stat(name); err == nil {
		return name
	}
	return filepath.Join(c.Capture.Directory, name)
}
