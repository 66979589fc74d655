// Package config provides configuration types, defaults, and persistence for
// fling.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fling-dev/fling/internal/log"
	"github.com/fling-dev/fling/internal/tracing"
)

// Config holds all configuration options for fling.
type Config struct {
	// Width and Height bound the rendered window, in terminal cells.
	// Zero means use the full terminal size.
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`

	// Hint is the placeholder text shown in the empty filter box.
	Hint string `mapstructure:"hint"`

	// IconSize, FilterFontSize and EntriesFontSize are accepted for CLI
	// parity and persisted in the cache inspector output; a terminal UI
	// renders no pixels, so they change nothing on screen.
	IconSize        int `mapstructure:"icon_size"`
	FilterFontSize  int `mapstructure:"filter_font_size"`
	EntriesFontSize int `mapstructure:"entries_font_size"`

	// RankByUsage orders the unfiltered list by launch count instead of
	// alphabetically.
	RankByUsage bool `mapstructure:"rank_by_usage"`

	// Watch rescans when a descriptor directory changes during the session.
	Watch bool `mapstructure:"watch"`

	UI      UIConfig       `mapstructure:"ui"`
	Theme   ThemeConfig    `mapstructure:"theme"`
	Cache   CacheConfig    `mapstructure:"cache"`
	Tracing tracing.Config `mapstructure:"tracing"`
}

// UIConfig holds user interface configuration options.
type UIConfig struct {
	// VisibleRows caps the entry rows shown at once; also the page size
	// for pgup/pgdn.
	VisibleRows int `mapstructure:"visible_rows"`

	// WrapNavigation wraps the selection around at list ends instead of
	// stopping.
	WrapNavigation bool `mapstructure:"wrap_navigation"`
}

// ThemeConfig holds theme customization options.
type ThemeConfig struct {
	// Preset loads a built-in theme.
	// Valid values: "nord", "default", "dracula", "catppuccin-mocha"
	Preset string `mapstructure:"preset"`
}

// CacheConfig holds registry cache options.
type CacheConfig struct {
	// Enabled persists the scanned registry between sessions.
	Enabled bool `mapstructure:"enabled"`

	// Path overrides the cache file location.
	// Default: ~/.cache/fling/fling.db
	Path string `mapstructure:"path"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Width:           0,
		Height:          0,
		Hint:            "drun",
		IconSize:        32,
		FilterFontSize:  14,
		EntriesFontSize: 12,
		RankByUsage:     false,
		Watch:           true,
		UI: UIConfig{
			VisibleRows:    10,
			WrapNavigation: false,
		},
		Theme: ThemeConfig{
			Preset: "nord",
		},
		Cache: CacheConfig{
			Enabled: true,
		},
		Tracing: tracing.DefaultConfig(),
	}
}

// DefaultConfigPath returns ~/.config/fling/config.yaml, or empty string when
// the home directory is unavailable.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "fling", "config.yaml")
}

// DefaultTracesFilePath returns the default path for trace file export.
func DefaultTracesFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "fling", "traces", "traces.jsonl")
}

// DefaultConfigTemplate returns the default config as a YAML string with
// comments.
func DefaultConfigTemplate() string {
	return `# Fling Configuration

# Placeholder text shown in the empty filter box
hint: drun

# Window size in terminal cells (0 = use the full terminal)
width: 0
height: 0

# Order the unfiltered list by how often you launch each app
rank_by_usage: false

# Rescan automatically when application descriptors change
watch: true

# Accepted for CLI parity; a terminal UI ignores pixel sizes
icon_size: 32
filter_font_size: 14
entries_font_size: 12

ui:
  visible_rows: 10        # Entry rows shown at once (also the page size)
  wrap_navigation: false  # Wrap selection around at list ends

theme:
  # Available presets: nord (default), default, dracula, catppuccin-mocha
  preset: nord

cache:
  enabled: true
  # path: ~/.cache/fling/fling.db

# Startup tracing for diagnosing slow scans
# tracing:
#   enabled: true
#   exporter: file        # none, file, stdout, otlp
#   file_path: ~/.config/fling/traces/traces.jsonl
`
}

// WriteDefaultConfig creates a config file at the given path with default
// settings and comments.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}

// Validate rejects option values the UI cannot work with.
func (c Config) Validate() error {
	if c.Width < 0 || c.Height < 0 {
		return fmt.Errorf("width and height must be non-negative")
	}
	if c.UI.VisibleRows < 1 {
		return fmt.Errorf("ui.visible_rows must be at least 1")
	}
	return nil
}
