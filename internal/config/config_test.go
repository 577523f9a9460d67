package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/traysheet/internal/catalog"
	"github.com/zjrosen/traysheet/internal/tracing"
	"github.com/zjrosen/traysheet/internal/tray"
)

// loadFromYAML loads config the way the CLI does: defaults, then the file.
func loadFromYAML(t *testing.T, content string) (Config, error) {
	t.Helper()

	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o600))

	v := viper.New()
	SetDefaults(v)
	v.SetConfigFile(configPath)
	require.NoError(t, v.ReadInConfig())

	return Load(v)
}

func TestDefaults_Valid(t *testing.T) {
	d := Defaults()
	require.NoError(t, d.Validate())
	require.Equal(t, tray.PolicyReset, d.Tray.SessionPolicy)
	require.Len(t, d.Catalog.Modes, 4)
	require.Len(t, d.Catalog.Models, 6)
}

func TestCatalogConfig_Catalog(t *testing.T) {
	cc := CatalogConfig{
		Modes:        []catalog.Mode{{ID: "search", Title: "Search"}},
		Models:       []catalog.AIModel{{ID: "best", Title: "Best"}},
		DisplayNames: []DisplayName{{Title: "Claude 3.7 Sonnet", Short: "Claude 3.7"}},
	}

	cfg := cc.Catalog()

	require.Equal(t, map[string]string{"Claude 3.7 Sonnet": "Claude 3.7"}, cfg.DisplayNames)
	require.Empty(t, CatalogConfig{}.Catalog().DisplayNames)
}

func TestDefaults_DisplayNamesSorted(t *testing.T) {
	names := Defaults().Catalog.DisplayNames
	require.Equal(t, []DisplayName{
		{Title: "Claude 3.7 Sonnet", Short: "Claude 3.7"},
		{Title: "Claude 3.7 Sonnet Thinking", Short: "Claude 3.7 Thinking"},
	}, names)
}

func TestLoad_EmptyFileUsesDefaults(t *testing.T) {
	cfg, err := loadFromYAML(t, "")
	require.NoError(t, err)

	d := Defaults()
	require.Equal(t, d.Catalog.Modes, cfg.Catalog.Modes)
	require.Equal(t, d.Catalog.Models, cfg.Catalog.Models)
	require.Equal(t, d.Catalog.DisplayNames, cfg.Catalog.DisplayNames)
	require.Equal(t, d.Tray, cfg.Tray)
	require.Equal(t, "dark", cfg.UI.MarkdownStyle)
	require.Equal(t, DefaultTracesFilePath(), cfg.Tracing.FilePath)
}

func TestLoad_OverridesFromFile(t *testing.T) {
	cfg, err := loadFromYAML(t, `
catalog:
  default_mode: Write
  modes:
    - id: write
      title: Write
      subtitle: Drafts
    - title: Private
      toggle: true
  models:
    - id: fast
      title: Fast 1.0 Mini
    - id: big
      title: Big 2.5 Pro
      selected: true
  display_names:
    - title: Big 2.5 Pro
      short: Big
tray:
  session_policy: retain
  press_delay: 10ms
  interactive_dismiss: false
  sizing:
    mode: breakpoints
    breakpoints: [12, 24]
`)
	require.NoError(t, err)

	require.Equal(t, tray.PolicyRetain, cfg.Tray.SessionPolicy)
	require.Equal(t, 10*time.Millisecond, cfg.Tray.PressDelay)
	require.Equal(t, tray.DefaultReturnDelay, cfg.Tray.ReturnDelay, "unset keys keep defaults")
	require.False(t, cfg.Tray.InteractiveDismiss)
	require.Equal(t, []int{12, 24}, cfg.Tray.Sizing.Breakpoints)

	cat, err := cfg.BuildCatalog()
	require.NoError(t, err)
	require.Equal(t, "write", cat.DefaultMode().ID)
	require.Equal(t, "big", cat.DefaultModel().ID)
	require.Equal(t, "Big", cat.DisplayName("Big 2.5 Pro"))
	toggle, ok := cat.ToggleMode()
	require.True(t, ok)
	require.NotEmpty(t, toggle.ID, "missing ids are generated")
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr error
		wantMsg string
	}{
		{
			name:    "unknown session policy",
			yaml:    "tray:\n  session_policy: forever\n",
			wantMsg: "tray: session_policy",
		},
		{
			name:    "negative delay",
			yaml:    "tray:\n  return_delay: -5ms\n",
			wantMsg: "tray: press_delay and return_delay",
		},
		{
			name:    "no models",
			yaml:    "catalog:\n  modes:\n    - title: Search\n",
			wantErr: catalog.ErrNoModels,
		},
		{
			name:    "toggle default mode",
			yaml:    "catalog:\n  modes:\n    - title: Search\n      toggle: true\n  models:\n    - title: Best\n",
			wantErr: catalog.ErrDefaultModeToggle,
		},
		{
			name:    "bad exporter",
			yaml:    "tracing:\n  enabled: true\n  exporter: zipkin\n",
			wantMsg: "tracing: exporter",
		},
		{
			name:    "bad markdown style",
			yaml:    "ui:\n  markdown_style: neon\n",
			wantMsg: "ui.markdown_style",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadFromYAML(t, tt.yaml)
			require.Error(t, err)
			if tt.wantErr != nil {
				require.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			}
			if tt.wantMsg != "" {
				require.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestValidate_PersistNeedsDBPath(t *testing.T) {
	cfg := Defaults()
	cfg.Tray.SessionPolicy = tray.PolicyPersist
	cfg.DBPath = ""

	require.ErrorContains(t, cfg.Validate(), "db_path")
}

func TestValidateTracing(t *testing.T) {
	tests := []struct {
		name    string
		cfg     tracing.Config
		wantErr bool
	}{
		{"disabled ignores everything", tracing.Config{Exporter: "bogus"}, false},
		{"file with path", tracing.Config{Enabled: true, Exporter: "file", FilePath: "/tmp/t.jsonl", SampleRate: 1}, false},
		{"file without path", tracing.Config{Enabled: true, Exporter: "file", SampleRate: 1}, true},
		{"otlp", tracing.Config{Enabled: true, Exporter: "otlp", SampleRate: 0.5}, false},
		{"sample rate above one", tracing.Config{Enabled: true, Exporter: "stdout", SampleRate: 1.5}, true},
		{"unknown exporter", tracing.Config{Enabled: true, Exporter: "jaeger"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTracing(tt.cfg)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
