// Package config provides configuration types, defaults, and persistence
// for parley.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Config holds all configuration options for parley.
type Config struct {
	// DataDir is where the snapshot database lives. Default: ~/.parley
	DataDir string `mapstructure:"data_dir"`

	// AutoRefresh reloads state when another process rewrites the database.
	AutoRefresh bool `mapstructure:"auto_refresh"`

	// Reactions is the quick-reaction emoji palette offered on messages.
	Reactions []string `mapstructure:"reactions"`

	UI      UIConfig      `mapstructure:"ui"`
	Theme   ThemeConfig   `mapstructure:"theme"`
	Tracing TracingConfig `mapstructure:"tracing"`
}

// UIConfig holds user interface configuration options.
type UIConfig struct {
	// ShowTaskPanel shows the task list beside the message pane.
	ShowTaskPanel bool `mapstructure:"show_task_panel"`

	// RelativeTimestamps renders "5m ago" instead of absolute times.
	RelativeTimestamps bool `mapstructure:"relative_timestamps"`
}

// ThemeConfig holds theme customization options as hex colors.
type ThemeConfig struct {
	Highlight string `mapstructure:"highlight"`
	Subtle    string `mapstructure:"subtle"`
	Error     string `mapstructure:"error"`
	Success   string `mapstructure:"success"`
}

// TracingConfig holds tracing configuration for state mutations.
type TracingConfig struct {
	// Enabled controls whether tracing is active. Default: false
	Enabled bool `mapstructure:"enabled"`

	// Exporter selects the export backend: "none", "file", "stdout", "otlp".
	Exporter string `mapstructure:"exporter"`

	// FilePath is the output file for the "file" exporter.
	FilePath string `mapstructure:"file_path"`

	// OTLPEndpoint is the collector endpoint for the "otlp" exporter.
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`

	// SampleRate is the fraction of traces to sample (1.0 = all).
	SampleRate float64 `mapstructure:"sample_rate"`
}

// Defaults returns the default configuration.
func Defaults() Config {
	return Config{
		DataDir:     defaultDataDir(),
		AutoRefresh: true,
		Reactions:   []string{"👍", "❤️", "😂"},
		UI: UIConfig{
			ShowTaskPanel:      true,
			RelativeTimestamps: false,
		},
		Theme: ThemeConfig{
			Highlight: "#7D56F4",
			Subtle:    "#696969",
			Error:     "#FF6B6B",
			Success:   "#73F59F",
		},
		Tracing: TracingConfig{
			Enabled:      false,
			Exporter:     "file",
			OTLPEndpoint: "localhost:4317",
			SampleRate:   1.0,
		},
	}
}

// DBPath returns the snapshot database path under the data directory.
func (c Config) DBPath() string {
	dir := c.DataDir
	if dir == "" {
		dir = defaultDataDir()
	}
	return filepath.Join(dir, "parley.db")
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".parley"
	}
	return filepath.Join(home, ".parley")
}

// defaultConfigContent is written when no config file exists anywhere.
const defaultConfigContent = `# parley configuration
auto_refresh: true

# Quick-reaction palette shown on messages.
reactions:
  - "👍"
  - "❤️"
  - "😂"

ui:
  show_task_panel: true
  relative_timestamps: false

# tracing:
#   enabled: true
#   exporter: stdout
`

// WriteDefaultConfig creates a default config file at path, including
// parent directories. Fails if the file already exists.
func WriteDefaultConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists: %s", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(defaultConfigContent), 0644); err != nil { //nolint:gosec // G306: config is not sensitive
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}
