// Package config provides configuration types, defaults, and persistence for relens.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/zjrosen/relens/internal/log"
	"github.com/zjrosen/relens/internal/markup"
	"github.com/zjrosen/relens/internal/tracing"
	"github.com/zjrosen/relens/internal/ui/styles"
)

// State backends accepted in StateConfig.Backend.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Config holds all configuration options for relens.
type Config struct {
	Service      ServiceConfig      `mapstructure:"service"`
	Orchestrator OrchestratorConfig `mapstructure:"orchestrator"`
	UI           UIConfig           `mapstructure:"ui"`
	Theme        ThemeConfig        `mapstructure:"theme"`
	Render       RenderConfig       `mapstructure:"render"`
	State        StateConfig        `mapstructure:"state"`
	Tracing      tracing.Config     `mapstructure:"tracing"`
}

// ServiceConfig locates the translation service.
type ServiceConfig struct {
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`
	Cache   CacheConfig   `mapstructure:"cache"`
}

// CacheConfig controls the client-side response cache.
type CacheConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	TTL     time.Duration `mapstructure:"ttl"`
}

// OrchestratorConfig controls when edits become requests.
type OrchestratorConfig struct {
	Debounce time.Duration `mapstructure:"debounce"`
	// Sequencing discards responses older than the last applied one.
	Sequencing bool `mapstructure:"sequencing"`
}

// UIConfig holds user interface configuration options.
type UIConfig struct {
	ScrollSyncInterval time.Duration `mapstructure:"scroll_sync_interval"`
	CopyFeedback       time.Duration `mapstructure:"copy_feedback"`
	// Theme is used only when no theme has been persisted yet.
	Theme string `mapstructure:"theme"`
}

// ThemeConfig holds color customization options.
type ThemeConfig struct {
	// Colors overrides individual color tokens in both themes.
	// Supports nested YAML structure and quoted dot notation:
	//   colors:
	//     syntax:
	//       group: "#FF0000"
	//     "mark.bg": "#FFFF00"
	Colors map[string]any `mapstructure:"colors"`
}

// FlattenedColors returns the Colors map flattened to dot-notation keys.
func (t ThemeConfig) FlattenedColors() map[string]string {
	result := make(map[string]string)
	flattenColors("", t.Colors, result)
	return result
}

func flattenColors(prefix string, m map[string]any, result map[string]string) {
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}

		switch val := v.(type) {
		case string:
			result[key] = val
		case map[string]any:
			flattenColors(key, val, result)
		case map[any]any:
			// YAML sometimes produces map[any]any instead of map[string]any
			converted := make(map[string]any)
			for mk, mv := range val {
				if strKey, ok := mk.(string); ok {
					converted[strKey] = mv
				}
			}
			flattenColors(key, converted, result)
		}
	}
}

// RenderConfig controls how service blobs are inserted.
type RenderConfig struct {
	// TrustMode is "sniff" (default) or "strict".
	TrustMode string `mapstructure:"trust_mode"`
}

// Trust returns the parsed trust mode. Call Validate first.
func (r RenderConfig) Trust() markup.TrustMode {
	m, ok := markup.ParseTrustMode(r.TrustMode)
	if !ok {
		return markup.TrustSniff
	}
	return m
}

// StateConfig locates persisted client state (focus, theme).
type StateConfig struct {
	// Backend is "file" (default) or "sqlite".
	Backend string `mapstructure:"backend"`
	// Path overrides the default state location for the backend.
	Path string `mapstructure:"path"`
}

// ResolvedPath returns Path, or the default location for the backend.
func (s StateConfig) ResolvedPath() string {
	if s.Path != "" {
		return s.Path
	}
	name := "state.yaml"
	if s.Backend == BackendSQLite {
		name = "state.db"
	}
	dir := DefaultConfigDir()
	if dir == "" {
		return name
	}
	return filepath.Join(dir, name)
}

// DefaultConfigDir returns ~/.config/relens, or empty if home is unavailable.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "relens")
}

// DefaultTracesFilePath returns ~/.config/relens/traces/traces.jsonl or
// empty string if home dir unavailable.
func DefaultTracesFilePath() string {
	dir := DefaultConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "traces", "traces.jsonl")
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	tr := tracing.DefaultConfig()
	tr.FilePath = DefaultTracesFilePath()

	return Config{
		Service: ServiceConfig{
			URL:     "http://127.0.0.1:5000",
			Timeout: 10 * time.Second,
			Cache: CacheConfig{
				Enabled: true,
				TTL:     10 * time.Minute,
			},
		},
		Orchestrator: OrchestratorConfig{
			Debounce:   600 * time.Millisecond,
			Sequencing: true,
		},
		UI: UIConfig{
			ScrollSyncInterval: 150 * time.Millisecond,
			CopyFeedback:       900 * time.Millisecond,
			Theme:              string(styles.ThemeDark),
		},
		Render: RenderConfig{
			TrustMode: string(markup.TrustSniff),
		},
		State: StateConfig{
			Backend: BackendFile,
		},
		Tracing: tr,
	}
}

// Validate checks the whole configuration.
func (c Config) Validate() error {
	if err := ValidateServiceURL(c.Service.URL); err != nil {
		return err
	}

	durations := []struct {
		key string
		d   time.Duration
	}{
		{"service.timeout", c.Service.Timeout},
		{"orchestrator.debounce", c.Orchestrator.Debounce},
		{"ui.scroll_sync_interval", c.UI.ScrollSyncInterval},
		{"ui.copy_feedback", c.UI.CopyFeedback},
	}
	for _, d := range durations {
		if d.d <= 0 {
			return fmt.Errorf("%s must be positive, got %s", d.key, d.d)
		}
	}
	if c.Service.Cache.Enabled && c.Service.Cache.TTL <= 0 {
		return fmt.Errorf("service.cache.ttl must be positive when the cache is enabled, got %s", c.Service.Cache.TTL)
	}

	if c.UI.Theme != "" {
		if _, ok := styles.ParseTheme(c.UI.Theme); !ok {
			return fmt.Errorf("ui.theme must be \"dark\" or \"light\", got %q", c.UI.Theme)
		}
	}
	if _, ok := markup.ParseTrustMode(c.Render.TrustMode); !ok {
		return fmt.Errorf("render.trust_mode must be \"sniff\" or \"strict\", got %q", c.Render.TrustMode)
	}
	switch c.State.Backend {
	case "", BackendFile, BackendSQLite:
	default:
		return fmt.Errorf("state.backend must be \"file\" or \"sqlite\", got %q", c.State.Backend)
	}
	if err := styles.ValidateOverrides(c.Theme.FlattenedColors()); err != nil {
		return fmt.Errorf("theme.colors: %w", err)
	}
	return c.Tracing.Validate()
}

// ValidateServiceURL requires an absolute http(s) URL with a host.
func ValidateServiceURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("service.url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("service.url must use http or https, got %q", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("service.url must include a host, got %q", raw)
	}
	return nil
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# relens configuration

# Translation service
service:
  url: http://127.0.0.1:5000   # POST {url}/api/run
  timeout: 10s
  cache:
    enabled: true   # Reuse successful results for identical inputs
    ttl: 10m

# When edits turn into requests
orchestrator:
  debounce: 600ms    # Quiet period after the last edit
  sequencing: true   # Drop responses older than the last applied one

# UI settings
ui:
  scroll_sync_interval: 150ms   # Overlay scroll sync polling period
  copy_feedback: 900ms          # How long the copy icon shows the result
  theme: dark                   # Initial theme when none has been saved: dark or light

# Color overrides (apply to both themes)
# theme:
#   colors:
#     syntax.group: "#89B4FA"
#     syntax.literal: "#A6E3A1"
#     mark.bg: "#F9E2AF"

# How service-provided highlight markup is inserted
render:
  trust_mode: sniff   # sniff: markup-like blobs verbatim; strict: sanitized

# Persisted focus and theme
state:
  backend: file   # file (YAML) or sqlite
  # path: ~/.config/relens/state.yaml

# Distributed tracing of service calls
# tracing:
#   enabled: false                 # Enable/disable tracing (default: false)
#   exporter: file                 # Export backend: none, file, stdout, otlp (default: file)
#   file_path: ~/.config/relens/traces/traces.jsonl
#   otlp_endpoint: localhost:4317  # OTLP collector endpoint (for otlp exporter)
#   sample_rate: 1.0               # Trace sampling rate 0.0-1.0 (default: 1.0)
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	if err := WriteFileAtomic(configPath, []byte(DefaultConfigTemplate())); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return err
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
