// Package config provides configuration types and defaults for traysheet.
package config

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"github.com/spf13/viper"

	"github.com/zjrosen/traysheet/internal/catalog"
	"github.com/zjrosen/traysheet/internal/tracing"
	"github.com/zjrosen/traysheet/internal/tray"
)

// DisplayName maps a model title to the shorter label shown on the model row.
type DisplayName struct {
	Title string `mapstructure:"title" yaml:"title"`
	Short string `mapstructure:"short" yaml:"short"`
}

// CatalogConfig is the file form of catalog.Config. Display names are a list
// because viper lowercases map keys and splits them on dots.
type CatalogConfig struct {
	DefaultMode  string            `mapstructure:"default_mode" yaml:"default_mode"`
	Modes        []catalog.Mode    `mapstructure:"modes" yaml:"modes"`
	Models       []catalog.AIModel `mapstructure:"models" yaml:"models"`
	DisplayNames []DisplayName     `mapstructure:"display_names" yaml:"display_names,omitempty"`
}

// Catalog converts to the form catalog.New accepts.
func (c CatalogConfig) Catalog() catalog.Config {
	cfg := catalog.Config{
		DefaultMode: c.DefaultMode,
		Modes:       c.Modes,
		Models:      c.Models,
	}
	if len(c.DisplayNames) > 0 {
		cfg.DisplayNames = make(map[string]string, len(c.DisplayNames))
		for _, d := range c.DisplayNames {
			cfg.DisplayNames[d.Title] = d.Short
		}
	}
	return cfg
}

func catalogConfigFrom(c catalog.Config) CatalogConfig {
	out := CatalogConfig{DefaultMode: c.DefaultMode, Modes: c.Modes, Models: c.Models}
	for _, title := range slices.Sorted(maps.Keys(c.DisplayNames)) {
		out.DisplayNames = append(out.DisplayNames, DisplayName{Title: title, Short: c.DisplayNames[title]})
	}
	return out
}

// UIConfig holds host screen options.
type UIConfig struct {
	// Tagline is markdown rendered under the host title.
	Tagline string `mapstructure:"tagline" yaml:"tagline"`
	// MarkdownStyle is the glamour style: "dark" (default), "light" or "notty".
	MarkdownStyle string `mapstructure:"markdown_style" yaml:"markdown_style"`
	// Accent overrides the accent colour, e.g. "#1FB8CD".
	Accent string `mapstructure:"accent" yaml:"accent,omitempty"`
}

// Config holds all configuration options for traysheet.
type Config struct {
	Catalog CatalogConfig  `mapstructure:"catalog" yaml:"catalog"`
	Tray    tray.Config    `mapstructure:"tray" yaml:"tray"`
	Tracing tracing.Config `mapstructure:"tracing" yaml:"tracing"`
	UI      UIConfig       `mapstructure:"ui" yaml:"ui"`
	// DBPath is the SQLite file used by the persist session policy.
	DBPath string `mapstructure:"db_path" yaml:"db_path,omitempty"`
}

// Dir returns ~/.config/traysheet, or "" if the home dir is unavailable.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "traysheet")
}

// DefaultDBPath returns the default path for the selection database.
func DefaultDBPath() string {
	if dir := Dir(); dir != "" {
		return filepath.Join(dir, "traysheet.db")
	}
	return ""
}

// DefaultTracesFilePath returns the default path for trace file export.
func DefaultTracesFilePath() string {
	if dir := Dir(); dir != "" {
		return filepath.Join(dir, "traces", "traces.jsonl")
	}
	return ""
}

// Defaults returns a Config with the demo catalog and default tray settings.
func Defaults() Config {
	return Config{
		Catalog: catalogConfigFrom(catalog.DefaultConfig()),
		Tray:    tray.DefaultConfig(),
		Tracing: tracing.DefaultConfig(),
		UI: UIConfig{
			Tagline:       "Transition between **different views**",
			MarkdownStyle: "dark",
		},
		DBPath: DefaultDBPath(),
	}
}

// SetDefaults registers every scalar default on v. The catalog lists are
// filled in by Load when the file does not define them.
func SetDefaults(v *viper.Viper) {
	d := Defaults()

	v.SetDefault("catalog.default_mode", d.Catalog.DefaultMode)

	v.SetDefault("tray.sizing.mode", string(d.Tray.Sizing.Mode))
	v.SetDefault("tray.sizing.height", d.Tray.Sizing.Height)
	v.SetDefault("tray.corner_radius", d.Tray.CornerRadius)
	v.SetDefault("tray.interactive_dismiss", d.Tray.InteractiveDismiss)
	v.SetDefault("tray.horizontal_margin", d.Tray.HorizontalMargin)
	v.SetDefault("tray.bottom_margin", d.Tray.BottomMargin)
	v.SetDefault("tray.session_policy", string(d.Tray.SessionPolicy))
	v.SetDefault("tray.press_delay", d.Tray.PressDelay)
	v.SetDefault("tray.return_delay", d.Tray.ReturnDelay)

	v.SetDefault("tracing.enabled", d.Tracing.Enabled)
	v.SetDefault("tracing.exporter", d.Tracing.Exporter)
	v.SetDefault("tracing.otlp_endpoint", d.Tracing.OTLPEndpoint)
	v.SetDefault("tracing.sample_rate", d.Tracing.SampleRate)
	v.SetDefault("tracing.service_name", d.Tracing.ServiceName)

	v.SetDefault("ui.tagline", d.UI.Tagline)
	v.SetDefault("ui.markdown_style", d.UI.MarkdownStyle)

	v.SetDefault("db_path", d.DBPath)
}

// Load unmarshals v into a Config and validates it. A file without catalog
// lists gets the demo catalog.
func Load(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}

	if len(cfg.Catalog.Modes) == 0 && len(cfg.Catalog.Models) == 0 {
		d := Defaults().Catalog
		cfg.Catalog.Modes = d.Modes
		cfg.Catalog.Models = d.Models
		if cfg.Catalog.DisplayNames == nil {
			cfg.Catalog.DisplayNames = d.DisplayNames
		}
	}
	if cfg.Tracing.FilePath == "" {
		cfg.Tracing.FilePath = DefaultTracesFilePath()
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// BuildCatalog constructs the catalog described by the configuration.
func (c Config) BuildCatalog() (*catalog.Catalog, error) {
	cat, err := catalog.New(c.Catalog.Catalog())
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	return cat, nil
}

// Validate reports the first setting that would prevent startup.
func (c Config) Validate() error {
	if _, err := c.BuildCatalog(); err != nil {
		return err
	}
	if err := c.Tray.Validate(); err != nil {
		return fmt.Errorf("tray: %w", err)
	}
	if err := ValidateTracing(c.Tracing); err != nil {
		return fmt.Errorf("tracing: %w", err)
	}
	if c.Tray.SessionPolicy == tray.PolicyPersist && c.DBPath == "" {
		return fmt.Errorf("db_path is required for the persist session policy")
	}
	switch c.UI.MarkdownStyle {
	case "", "dark", "light", "notty":
	default:
		return fmt.Errorf("ui.markdown_style %q: must be dark, light or notty", c.UI.MarkdownStyle)
	}
	return nil
}

// ValidateTracing checks exporter and sampling settings. Disabled tracing is
// always valid.
func ValidateTracing(t tracing.Config) error {
	if !t.Enabled {
		return nil
	}
	switch t.Exporter {
	case "none", "stdout", "otlp":
	case "file":
		if t.FilePath == "" {
			return fmt.Errorf("file_path is required for the file exporter")
		}
	default:
		return fmt.Errorf("exporter %q: must be none, file, stdout or otlp", t.Exporter)
	}
	if t.SampleRate < 0 || t.SampleRate > 1 {
		return fmt.Errorf("sample_rate %v: must be between 0 and 1", t.SampleRate)
	}
	return nil
}
