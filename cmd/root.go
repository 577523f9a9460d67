package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fsnotify/fsnotify"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/traysheet/internal/app"
	"github.com/zjrosen/traysheet/internal/config"
	"github.com/zjrosen/traysheet/internal/infrastructure/sqlite"
	"github.com/zjrosen/traysheet/internal/log"
	"github.com/zjrosen/traysheet/internal/tracing"
	"github.com/zjrosen/traysheet/internal/tray"
	"github.com/zjrosen/traysheet/internal/ui/styles"
)

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// any Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop and appearing as
	// garbage text.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

const (
	envPrefix       = "TRAYSHEET"
	localConfigPath = ".traysheet/config.yaml"
)

var (
	version    = "dev"
	cfgFile    string
	debugFlag  bool
	cfg        config.Config
	logCleanup func()
)

var rootCmd = &cobra.Command{
	Use:   "traysheet",
	Short: "A bottom sheet for picking a mode and an AI model",
	Long: `A terminal demo of a dynamic bottom sheet. The sheet switches between a
mode list and a model picker, and reports the final selection when dismissed.`,
	Version:            version,
	SilenceUsage:       true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
	RunE:               runApp,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/traysheet/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "d", false,
		"write a debug log (also enabled by TRAYSHEET_DEBUG)")
	rootCmd.PersistentFlags().String("policy", "",
		"session policy: reset, retain or persist")

	// Bind flags to viper
	_ = viper.BindPFlag("tray.session_policy", rootCmd.PersistentFlags().Lookup("policy"))
}

// setup starts logging and loads the configuration before any command runs.
func setup(_ *cobra.Command, _ []string) error {
	if debugFlag || os.Getenv(envPrefix+"_DEBUG") != "" {
		logPath := os.Getenv(envPrefix + "_LOG")
		if logPath == "" {
			logPath = "debug.log"
		}
		cleanup, err := log.InitWithTeaLog(logPath, "traysheet")
		if err != nil {
			return fmt.Errorf("initializing logging: %w", err)
		}
		logCleanup = cleanup
		log.Info(log.CatConfig, "traysheet starting", "version", version, "logPath", logPath)
	}

	v := viper.GetViper()
	configureViper(v, cfgFile)
	if err := readConfig(v, cfgFile); err != nil {
		return err
	}

	loaded, err := config.Load(v)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	cfg = loaded
	log.Info(log.CatConfig, "config loaded", "file", v.ConfigFileUsed(), "policy", cfg.Tray.SessionPolicy)
	return nil
}

func teardown(_ *cobra.Command, _ []string) error {
	if logCleanup != nil {
		logCleanup()
		logCleanup = nil
	}
	return nil
}

// configureViper registers defaults and environment binding, then points v at
// the config file. Lookup order without an explicit path:
//  1. .traysheet/config.yaml (current directory)
//  2. ~/.config/traysheet/config.yaml (user config)
func configureViper(v *viper.Viper, path string) {
	config.SetDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		return
	}
	if _, err := os.Stat(localConfigPath); err == nil {
		v.SetConfigFile(localConfigPath)
		return
	}
	if dir := config.Dir(); dir != "" {
		v.AddConfigPath(dir)
	}
	v.SetConfigName("config")
	v.SetConfigType("yaml")
}

// readConfig reads the config file. When none exists a default one is written
// and read back; if that write fails the built-in defaults are used.
func readConfig(v *viper.Viper, path string) error {
	err := v.ReadInConfig()
	if err == nil {
		return nil
	}

	var notFound viper.ConfigFileNotFoundError
	if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("reading config: %w", err)
	}

	target := path
	if target == "" {
		target = defaultConfigPath()
	}
	if writeErr := config.WriteDefaultConfig(target); writeErr != nil {
		log.Warn(log.CatConfig, "no config file, using defaults", "error", writeErr)
		return nil
	}

	v.SetConfigFile(target)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("reading config: %w", err)
	}
	return nil
}

func defaultConfigPath() string {
	if dir := config.Dir(); dir != "" {
		return filepath.Join(dir, "config.yaml")
	}
	return localConfigPath
}

func runApp(_ *cobra.Command, _ []string) error {
	styles.ApplyTheme(cfg.UI.Accent)

	cat, err := cfg.BuildCatalog()
	if err != nil {
		return err
	}

	provider, err := tracing.NewProvider(cfg.Tracing)
	if err != nil {
		return fmt.Errorf("initializing tracing: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := provider.Shutdown(ctx); err != nil {
			log.ErrorErr(log.CatTrace, "shutting down tracing", err)
		}
	}()

	store, closeStore, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	ctrl := tray.NewController(cfg.Tray, cat, store)
	ctrl.SetTracer(provider.Tracer())

	zone.NewGlobal()
	model := app.New(cfg, ctrl)
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	watchConfig(viper.GetViper(), p.Send)

	final, err := p.Run()

	if fm, ok := final.(app.Model); ok {
		fm.Close()
	} else {
		model.Close()
	}

	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// openStore opens the selection store the session policy needs. Only the
// persist policy touches disk; retain gets the controller's in-memory store.
func openStore(c config.Config) (tray.SelectionStore, func(), error) {
	if c.Tray.SessionPolicy != tray.PolicyPersist {
		return nil, func() {}, nil
	}

	db, err := sqlite.NewDB(c.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("opening selection store: %w", err)
	}
	closeDB := func() {
		if err := db.Close(); err != nil {
			log.ErrorErr(log.CatDB, "closing selection store", err)
		}
	}
	return sqlite.NewSelectionStore(db), closeDB, nil
}

// watchConfig rebuilds the catalog whenever the config file changes. Only
// the catalog is reloaded; tray settings apply on the next start.
func watchConfig(v *viper.Viper, send func(tea.Msg)) {
	if v.ConfigFileUsed() == "" {
		return
	}
	v.OnConfigChange(func(e fsnotify.Event) {
		reloadCatalog(v, e, send)
	})
	v.WatchConfig()
}

func reloadCatalog(v *viper.Viper, e fsnotify.Event, send func(tea.Msg)) {
	log.Info(log.CatConfig, "config changed", "file", e.Name, "op", e.Op.String())

	next, err := config.Load(v)
	if err != nil {
		log.ErrorErr(log.CatConfig, "reloading config", err)
		return
	}
	cat, err := next.BuildCatalog()
	if err != nil {
		log.ErrorErr(log.CatConfig, "rebuilding catalog", err)
		return
	}
	send(app.CatalogReloadedMsg{Catalog: cat})
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
