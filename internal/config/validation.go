package config

import (
	"fmt"
	"strings"
	"time"

	ferrors "git.home.luguber.info/inful/sitenav/internal/foundation/errors"
	"git.home.luguber.info/inful/sitenav/internal/resolve"
)

// Validate checks every section except the sidebar structure. Errors are
// classified as config errors.
func (c *Config) Validate() error {
	validators := []func() error{
		c.validateContent,
		c.validateCheck,
		c.validateMetrics,
		c.validateNotify,
		c.validateWatch,
	}
	for _, v := range validators {
		if err := v(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) validateContent() error {
	cc := c.Content
	switch cc.Source {
	case SourceDir:
		if cc.Dir == "" {
			return configError("content.dir is required for the dir source", "content.dir")
		}
	case SourceSQLite:
		if cc.Database == "" {
			return configError("content.database is required for the sqlite source", "content.database")
		}
	case SourceGit:
		if cc.Git == nil || strings.TrimSpace(cc.Git.URL) == "" {
			return configError("content.git.url is required for the git source", "content.git.url")
		}
	default:
		return ferrors.ConfigError(fmt.Sprintf("unsupported content source %q", cc.Source)).
			WithContext("field", "content.source").
			WithContext("allowed", "dir, sqlite, git").
			Build()
	}
	for _, ext := range cc.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return configError(fmt.Sprintf("content extension %q must start with a dot", ext), "content.extensions")
		}
	}
	return nil
}

func (c *Config) validateCheck() error {
	_, err := resolve.ParsePolicy(c.Check.Policy)
	return err
}

func (c *Config) validateMetrics() error {
	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return configError("metrics.path must start with /", "metrics.path")
	}
	return nil
}

func (c *Config) validateNotify() error {
	if c.Notify == nil {
		return nil
	}
	if strings.TrimSpace(c.Notify.NATSURL) == "" {
		return configError("notify.nats_url is required when notify is configured", "notify.nats_url")
	}
	if strings.ContainsAny(c.Notify.Subject, " \t*>") {
		return configError(fmt.Sprintf("notify.subject %q must be a literal subject", c.Notify.Subject), "notify.subject")
	}
	return nil
}

func (c *Config) validateWatch() error {
	if err := validateDuration(c.Watch.Interval, "watch.interval", true); err != nil {
		return err
	}
	return validateDuration(c.Watch.Debounce, "watch.debounce", false)
}

func validateDuration(raw, field string, allowZero bool) error {
	d, err := time.ParseDuration(raw)
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryConfig, fmt.Sprintf("invalid duration for %s", field)).
			WithContext("field", field).
			WithContext("value", raw).
			Build()
	}
	if d < 0 || (d == 0 && !allowZero) {
		return configError(fmt.Sprintf("%s must be positive, got %s", field, raw), field)
	}
	return nil
}

func configError(msg, field string) error {
	return ferrors.ConfigError(msg).WithContext("field", field).Build()
}
