package config

// DefaultDatabase is the SQLite index used when content.database is unset.
const DefaultDatabase = "sitenav.db"

const (
	defaultSiteTitle   = "Documentation"
	defaultContentDir  = "src/content/docs"
	defaultMetricsPath = "/metrics"
	defaultSubject     = "sitenav.reports"
	defaultKVBucket    = "sitenav_reports"
	defaultWatchAddr   = ":8090"
	defaultInterval    = "5m"
	defaultDebounce    = "500ms"
)

// ApplyDefaults fills unset fields. It is idempotent.
func (c *Config) ApplyDefaults() {
	if c.Site.Title == "" {
		c.Site.Title = defaultSiteTitle
	}

	// Unknown sources are left untouched for Validate to reject.
	if src, err := contentSourceNormalizer.NormalizeWithError(string(c.Content.Source)); err == nil {
		c.Content.Source = src
	}
	if c.Content.Dir == "" && c.Content.Source == SourceDir {
		c.Content.Dir = defaultContentDir
	}
	if c.Content.Database == "" && c.Content.Source == SourceSQLite {
		c.Content.Database = DefaultDatabase
	}

	if c.Check.Policy == "" {
		c.Check.Policy = "lenient"
	}

	if c.Metrics.Path == "" {
		c.Metrics.Path = defaultMetricsPath
	}

	if c.Notify != nil {
		if c.Notify.Subject == "" {
			c.Notify.Subject = defaultSubject
		}
		if c.Notify.KVBucket == "" {
			c.Notify.KVBucket = defaultKVBucket
		}
	}

	if c.Watch.Addr == "" {
		c.Watch.Addr = defaultWatchAddr
	}
	if c.Watch.Interval == "" {
		c.Watch.Interval = defaultInterval
	}
	if c.Watch.Debounce == "" {
		c.Watch.Debounce = defaultDebounce
	}
}
