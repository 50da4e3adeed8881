// Package config loads lint configuration from an optional YAML file with
// environment-variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultFileName is looked up in the working directory when no explicit
// config path is given.
const DefaultFileName = ".changelog.yaml"

// Config holds lint tool settings.
type Config struct {
	// RequireDates flags finalized releases without a release date.
	RequireDates bool `yaml:"require_dates"`
	// Ignore lists glob patterns (matched against the base name or the
	// full path) for files the directory walk should skip.
	Ignore []string `yaml:"ignore"`
	// Format selects the default output format: text, json, or github.
	Format string `yaml:"format"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{Format: "text"}
}

// Load reads configuration from path. An empty path means: use
// DefaultFileName if it exists, built-in defaults otherwise. Environment
// overrides are applied last.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if path == "" {
		path = DefaultFileName
	}

	data, err := os.ReadFile(path) // #nosec G304 -- config path is operator-provided
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case os.IsNotExist(err) && !explicit:
		// Optional default file; fall through to defaults.
	default:
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg.applyEnv()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv layers CHANGELOG_* environment variables over the file values.
func (c *Config) applyEnv() {
	if v := os.Getenv("CHANGELOG_REQUIRE_DATES"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.RequireDates = b
		}
	}
	if v := os.Getenv("CHANGELOG_FORMAT"); v != "" {
		c.Format = v
	}
	if v := os.Getenv("CHANGELOG_IGNORE"); v != "" {
		c.Ignore = strings.Split(v, ",")
		for i := range c.Ignore {
			c.Ignore[i] = strings.TrimSpace(c.Ignore[i])
		}
	}
}

func (c *Config) validate() error {
	switch c.Format {
	case "", "text", "json", "github":
		return nil
	}
	return fmt.Errorf("invalid output format %q: expected text, json, or github", c.Format)
}

// Ignored reports whether path matches any configured ignore pattern.
func (c *Config) Ignored(path string) bool {
	base := filepath.Base(path)
	for _, pattern := range c.Ignore {
		if ok, _ := filepath.Match(pattern, base); ok {
			return true
		}
		if ok, _ := filepath.Match(pattern, path); ok {
			return true
		}
	}
	return false
}
