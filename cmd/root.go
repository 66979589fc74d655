// Package cmd wires the CLI surface: flags, config, and the launcher UI.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fling-dev/fling/internal/cache"
	"github.com/fling-dev/fling/internal/config"
	"github.com/fling-dev/fling/internal/controller"
	"github.com/fling-dev/fling/internal/desktop"
	"github.com/fling-dev/fling/internal/launch"
	"github.com/fling-dev/fling/internal/log"
	"github.com/fling-dev/fling/internal/pubsub"
	"github.com/fling-dev/fling/internal/registry"
	"github.com/fling-dev/fling/internal/ui/launcher"
	"github.com/fling-dev/fling/internal/ui/styles"
	"github.com/fling-dev/fling/internal/watcher"
)

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// any Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop and appearing as
	// garbage text in input fields.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

var (
	version = "dev"
	cfgFile string
	cfg     config.Config
)

var rootCmd = &cobra.Command{
	Use:     "fling",
	Short:   "A keyboard-driven application launcher",
	Long:    `Fling scans the desktop application descriptors on this machine and presents a filter-as-you-type list; the selected app is spawned detached and fling exits.`,
	Version: version,
	RunE:    runLauncher,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/fling/config.yaml)")

	rootCmd.Flags().Int("width", 0, "window width in terminal cells (0 = full terminal)")
	rootCmd.Flags().Int("height", 0, "window height in terminal cells (0 = full terminal)")
	rootCmd.Flags().String("theme", "", "theme preset (nord, default, dracula, catppuccin-mocha)")
	rootCmd.Flags().String("hint", "", "placeholder text for the empty filter box")
	rootCmd.Flags().Int("icon-size", 0, "icon size hint (accepted for compatibility)")
	rootCmd.Flags().Int("filter-font-size", 0, "filter font size hint (accepted for compatibility)")
	rootCmd.Flags().Int("entries-font-size", 0, "entries font size hint (accepted for compatibility)")
	rootCmd.Flags().Bool("list-search-paths", false,
		"print the descriptor search directories in priority order and exit")
	rootCmd.Flags().Bool("reset-cache", false, "drop the registry cache before starting")
	rootCmd.Flags().Bool("no-cache", false, "skip the registry cache for this session")
	rootCmd.Flags().Bool("debug", false, "write a debug log to ~/.cache/fling/fling.log")

	// Bind flags to viper
	_ = viper.BindPFlag("width", rootCmd.Flags().Lookup("width"))
	_ = viper.BindPFlag("height", rootCmd.Flags().Lookup("height"))
	_ = viper.BindPFlag("theme.preset", rootCmd.Flags().Lookup("theme"))
	_ = viper.BindPFlag("hint", rootCmd.Flags().Lookup("hint"))
	_ = viper.BindPFlag("icon_size", rootCmd.Flags().Lookup("icon-size"))
	_ = viper.BindPFlag("filter_font_size", rootCmd.Flags().Lookup("filter-font-size"))
	_ = viper.BindPFlag("entries_font_size", rootCmd.Flags().Lookup("entries-font-size"))
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("hint", defaults.Hint)
	viper.SetDefault("icon_size", defaults.IconSize)
	viper.SetDefault("filter_font_size", defaults.FilterFontSize)
	viper.SetDefault("entries_font_size", defaults.EntriesFontSize)
	viper.SetDefault("rank_by_usage", defaults.RankByUsage)
	viper.SetDefault("watch", defaults.Watch)
	viper.SetDefault("ui.visible_rows", defaults.UI.VisibleRows)
	viper.SetDefault("ui.wrap_navigation", defaults.UI.WrapNavigation)
	viper.SetDefault("theme.preset", defaults.Theme.Preset)
	viper.SetDefault("cache.enabled", defaults.Cache.Enabled)
	viper.SetDefault("tracing.exporter", defaults.Tracing.Exporter)
	viper.SetDefault("tracing.otlp_endpoint", defaults.Tracing.OTLPEndpoint)
	viper.SetDefault("tracing.sample_rate", defaults.Tracing.SampleRate)
	viper.SetDefault("tracing.service_name", defaults.Tracing.ServiceName)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, _ := os.UserHomeDir()
		viper.AddConfigPath(filepath.Join(home, ".config", "fling"))
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		// First run: write the commented default config, then load it.
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			defaultPath := config.DefaultConfigPath()
			if defaultPath != "" {
				if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
					viper.SetConfigFile(defaultPath)
					_ = viper.ReadInConfig()
				}
			}
			// If write fails, just continue with defaults (no config file)
		}
	}

	_ = viper.Unmarshal(&cfg)
}

func runLauncher(cmd *cobra.Command, args []string) error {
	if listPaths, _ := cmd.Flags().GetBool("list-search-paths"); listPaths {
		for _, dir := range desktop.DataDirs() {
			fmt.Fprintln(cmd.OutOrStdout(), dir)
		}
		return nil
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if debug, _ := cmd.Flags().GetBool("debug"); debug || os.Getenv("FLING_DEBUG") != "" {
		if closer, err := initDebugLog(); err == nil {
			defer closer()
		}
	}

	theme, err := styles.Load(cfg.Theme.Preset)
	if err != nil {
		return err
	}

	provider, err := newTraceProvider()
	if err != nil {
		return fmt.Errorf("starting tracing: %w", err)
	}
	defer shutdownTraceProvider(provider)

	store, err := openStore(cmd)
	if err != nil {
		// Cache trouble never blocks a launch; scan instead.
		log.ErrorErr(log.CatCache, "cache unavailable, scanning", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	spawner := launch.New()
	spawn := func(entry desktop.Entry) error {
		if err := spawner.Spawn(entry); err != nil {
			return err
		}
		if store != nil {
			if err := store.RecordLaunch(entry.ID); err != nil {
				log.ErrorErr(log.CatCache, "recording launch", err, "id", entry.ID)
			}
		}
		return nil
	}

	ctrl := controller.New(spawn, controller.Options{
		WrapNavigation: cfg.UI.WrapNavigation,
		PageSize:       cfg.UI.VisibleRows,
	})

	var changes *pubsub.Broker[string]
	if cfg.Watch {
		changes = pubsub.NewBroker[string]()
		defer changes.Close()
		if w, err := watcher.New(watcher.DefaultConfig(desktop.DataDirs()), changes); err == nil {
			w.Start()
			defer func() { _ = w.Stop() }()
		}
		// A watcher that cannot start just means no live rescans.
	}

	zone.NewGlobal()
	model := launcher.New(cfg, theme, ctrl, func() ([]registry.Item, error) {
		return loadRegistry(provider, store)
	}, changes)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	if m, ok := final.(launcher.Model); ok && m.LoadErr() != nil {
		return fmt.Errorf("loading applications: %w", m.LoadErr())
	}
	return nil
}

func initDebugLog() (func(), error) {
	cacheHome := os.Getenv("XDG_CACHE_HOME")
	if cacheHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		cacheHome = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(cacheHome, "fling")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return log.Init(filepath.Join(dir, "fling.log"))
}

// openStore opens the registry cache honoring --no-cache and --reset-cache.
// A nil store with nil error means caching is off for this session.
func openStore(cmd *cobra.Command) (*cache.Store, error) {
	noCache, _ := cmd.Flags().GetBool("no-cache")
	if noCache || !cfg.Cache.Enabled {
		return nil, nil
	}

	path := cfg.Cache.Path
	if path == "" {
		var err error
		path, err = cache.DefaultPath()
		if err != nil {
			return nil, err
		}
	}

	if reset, _ := cmd.Flags().GetBool("reset-cache"); reset {
		if err := cache.Reset(path); err != nil {
			return nil, err
		}
	}

	return cache.Open(path)
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
