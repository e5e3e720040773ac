package config

import (
	"time"

	"git.home.luguber.info/inful/sitenav/internal/foundation/normalization"
)

// SiteConfig is site metadata. sitenav carries it through to reports and
// never interprets it.
type SiteConfig struct {
	Title       string       `yaml:"title"`
	Description string       `yaml:"description,omitempty"`
	Logo        *LogoConfig  `yaml:"logo,omitempty"`
	Favicon     string       `yaml:"favicon,omitempty"`
	Social      []SocialLink `yaml:"social,omitempty"`
}

// LogoConfig describes the site logo.
type LogoConfig struct {
	Src           string `yaml:"src"`
	ReplacesTitle bool   `yaml:"replaces_title"`
}

// SocialLink is one header link.
type SocialLink struct {
	Icon  string `yaml:"icon"`
	Label string `yaml:"label"`
	Href  string `yaml:"href"`
}

// ContentSource selects where page content is read from.
type ContentSource string

const (
	SourceDir    ContentSource = "dir"
	SourceSQLite ContentSource = "sqlite"
	SourceGit    ContentSource = "git"
)

var contentSourceNormalizer = normalization.NewNormalizer(map[string]ContentSource{
	"dir":    SourceDir,
	"sqlite": SourceSQLite,
	"git":    SourceGit,
}, SourceDir)

// ContentConfig configures the content store.
type ContentConfig struct {
	Source        ContentSource `yaml:"source"`
	Dir           string        `yaml:"dir,omitempty"`      // dir source, and the tree indexed by `sitenav index`
	Database      string        `yaml:"database,omitempty"` // sqlite source
	Git           *GitConfig    `yaml:"git,omitempty"`
	IncludeDrafts bool          `yaml:"include_drafts,omitempty"`
	Extensions    []string      `yaml:"extensions,omitempty"`
}

// GitConfig locates content inside a git repository.
type GitConfig struct {
	URL    string `yaml:"url"`
	Ref    string `yaml:"ref,omitempty"`    // branch or tag; empty means the remote HEAD
	Subdir string `yaml:"subdir,omitempty"` // content root inside the repository
}

// CheckConfig configures how resolution findings fail a check.
type CheckConfig struct {
	Policy string `yaml:"policy,omitempty"` // lenient|strict
}

// MetricsConfig configures Prometheus metrics.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path,omitempty"`
}

// NotifyConfig configures report publishing over NATS. Publishing is off
// when the section is absent.
type NotifyConfig struct {
	NATSURL  string `yaml:"nats_url"`
	Subject  string `yaml:"subject,omitempty"`
	KVBucket string `yaml:"kv_bucket,omitempty"`
}

// WatchConfig configures `sitenav watch`.
type WatchConfig struct {
	Addr     string `yaml:"addr,omitempty"`
	Interval string `yaml:"interval,omitempty"` // periodic re-check, e.g. "5m"; "0" disables
	Debounce string `yaml:"debounce,omitempty"` // quiet period after file changes
}

// IntervalDuration returns the parsed periodic re-check interval. Validate
// guarantees it parses.
func (w WatchConfig) IntervalDuration() time.Duration {
	d, _ := time.ParseDuration(w.Interval)
	return d
}

// DebounceDuration returns the parsed debounce window.
func (w WatchConfig) DebounceDuration() time.Duration {
	d, _ := time.ParseDuration(w.Debounce)
	return d
}
