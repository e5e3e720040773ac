// Package config loads the site configuration: site metadata, the sidebar
// declaration and the settings of every sitenav component.
package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	ferrors "git.home.luguber.info/inful/sitenav/internal/foundation/errors"
	"git.home.luguber.info/inful/sitenav/internal/nav"
)

// Config is the complete sitenav configuration. Values are passed explicitly;
// nothing in this package is global, so several sites can be checked in one
// process.
type Config struct {
	Site    SiteConfig    `yaml:"site"`
	Sidebar []nav.Entry   `yaml:"sidebar"`
	Content ContentConfig `yaml:"content"`
	Check   CheckConfig   `yaml:"check,omitempty"`
	Metrics MetricsConfig `yaml:"metrics,omitempty"`
	Notify  *NotifyConfig `yaml:"notify,omitempty"`
	Watch   WatchConfig   `yaml:"watch,omitempty"`
}

// Load reads, expands and validates the configuration at configPath.
// Relative content paths are resolved against the directory of configPath.
func Load(configPath string) (*Config, error) {
	if err := LoadDotEnv(".env", ".env.local"); err != nil {
		slog.Warn("Failed to load .env file", "error", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ferrors.ConfigError("configuration file not found").
				WithContext("path", configPath).Build()
		}
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to read config file").
			WithContext("path", configPath).Build()
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}
	cfg.resolvePaths(filepath.Dir(configPath))
	return cfg, nil
}

// Parse decodes configuration YAML after expanding ${VAR} references, then
// applies defaults and validates every section except the sidebar structure,
// which nav.Build checks.
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		var structural *nav.StructuralError
		if errors.As(err, &structural) {
			return nil, structural
		}
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to unmarshal config").Build()
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) resolvePaths(base string) {
	abs := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(base, p)
	}
	c.Content.Dir = abs(c.Content.Dir)
	c.Content.Database = abs(c.Content.Database)
}
