package config

import (
	"os"

	"gopkg.in/yaml.v3"

	ferrors "git.home.luguber.info/inful/sitenav/internal/foundation/errors"
	"git.home.luguber.info/inful/sitenav/internal/nav"
)

// Example returns the example configuration written by Init: the Loggator
// documentation site.
func Example() *Config {
	item := nav.ItemEntry
	group := nav.GroupEntry

	return &Config{
		Site: SiteConfig{
			Title:       "Loggator",
			Description: "Docker Log Aggregator with AI-Search powered by Meilisearch and OpenRouter",
			Logo:        &LogoConfig{Src: "./public/logo.png"},
			Favicon:     "/logo.png",
			Social: []SocialLink{
				{Icon: "github", Label: "GitHub", Href: "https://github.com/MBeggiato/loggator"},
			},
		},
		Sidebar: []nav.Entry{
			group("Getting Started",
				item("Introduction", "introduction"),
				item("Quick Start", "guides/quickstart"),
				item("Installation", "guides/installation"),
			),
			group("Configuration",
				item("Environment Variables", "configuration/environment"),
				item("Docker Setup", "configuration/docker"),
				item("AI Assistant", "configuration/ai-assistant"),
			),
			group("Features",
				item("Log Search", "features/log-search"),
				item("AI Chat Assistant", "features/ai-assistant"),
				item("Real-time Dashboard", "features/dashboard"),
				item("Container Monitoring", "features/container-monitoring"),
			),
			group("API Reference",
				item("Overview", "api/overview"),
				item("Chat API", "api/chat"),
				item("Logs API", "api/logs"),
				item("Containers API", "api/containers"),
			),
			group("Development",
				item("Local Setup", "development/local-setup"),
				item("Architecture", "development/architecture"),
				item("Contributing", "development/contributing"),
			),
		},
		Content: ContentConfig{
			Source: SourceDir,
			Dir:    defaultContentDir,
		},
		Check:   CheckConfig{Policy: "lenient"},
		Metrics: MetricsConfig{Enabled: true, Path: defaultMetricsPath},
		Watch: WatchConfig{
			Addr:     defaultWatchAddr,
			Interval: defaultInterval,
			Debounce: defaultDebounce,
		},
	}
}

// Init writes the example configuration to configPath. An existing file is
// only replaced when force is set.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return ferrors.ConfigError("configuration file already exists (use --force to overwrite)").
			WithContext("path", configPath).Build()
	}

	data, err := yaml.Marshal(Example())
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryInternal, "failed to marshal example config").Build()
	}

	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to write config file").
			WithContext("path", configPath).Build()
	}
	return nil
}
