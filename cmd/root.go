package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"parley/internal/app"
	"parley/internal/chat/service"
	"parley/internal/config"
	"parley/internal/infrastructure/sqlite"
	"parley/internal/log"
	"parley/internal/mode"
	"parley/internal/tracing"
	"parley/internal/ui/styles"
	"parley/internal/watcher"
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
	Use:     "parley",
	Short:   "A terminal messaging simulator",
	Long:    `A terminal user interface for a single-user messaging simulator: channels, direct messages, reactions, and a task list promoted from messages.`,
	Version: version,
	RunE:    runApp,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/parley/config.yaml)")
	rootCmd.Flags().String("data-dir", "",
		"directory holding the snapshot database (default: ~/.parley)")
	rootCmd.Flags().Bool("no-auto-refresh", false,
		"disable automatic reload when the database changes")
	rootCmd.Flags().Bool("debug", false,
		"write debug logs to <data-dir>/debug.log")

	_ = viper.BindPFlag("data_dir", rootCmd.Flags().Lookup("data-dir"))
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("data_dir", defaults.DataDir)
	viper.SetDefault("auto_refresh", defaults.AutoRefresh)
	viper.SetDefault("reactions", defaults.Reactions)
	viper.SetDefault("ui.show_task_panel", defaults.UI.ShowTaskPanel)
	viper.SetDefault("ui.relative_timestamps", defaults.UI.RelativeTimestamps)
	viper.SetDefault("theme.highlight", defaults.Theme.Highlight)
	viper.SetDefault("theme.subtle", defaults.Theme.Subtle)
	viper.SetDefault("theme.error", defaults.Theme.Error)
	viper.SetDefault("theme.success", defaults.Theme.Success)
	viper.SetDefault("tracing.enabled", defaults.Tracing.Enabled)
	viper.SetDefault("tracing.exporter", defaults.Tracing.Exporter)
	viper.SetDefault("tracing.file_path", defaults.Tracing.FilePath)
	viper.SetDefault("tracing.otlp_endpoint", defaults.Tracing.OTLPEndpoint)
	viper.SetDefault("tracing.sample_rate", defaults.Tracing.SampleRate)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .parley/config.yaml (current directory)
		// 2. ~/.config/parley/config.yaml (user config)
		if _, err := os.Stat(".parley/config.yaml"); err == nil {
			viper.SetConfigFile(".parley/config.yaml")
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "parley"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		// No config file found anywhere - create the user-level default
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			home, homeErr := os.UserHomeDir()
			if homeErr == nil {
				defaultPath := filepath.Join(home, ".config", "parley", "config.yaml")
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

func runApp(cmd *cobra.Command, args []string) error {
	if noAutoRefresh, _ := cmd.Flags().GetBool("no-auto-refresh"); noAutoRefresh {
		cfg.AutoRefresh = false
	}

	if debug, _ := cmd.Flags().GetBool("debug"); debug || os.Getenv("PARLEY_DEBUG") != "" {
		cleanup, err := log.Init(filepath.Join(cfg.DataDir, "debug.log"))
		if err != nil {
			return fmt.Errorf("initializing debug log: %w", err)
		}
		defer cleanup()
		log.SetEnabled(true)
	}

	styles.ApplyTheme(cfg.Theme)

	tracerProvider, err := tracing.NewProvider(tracing.Config{
		Enabled:      cfg.Tracing.Enabled,
		Exporter:     cfg.Tracing.Exporter,
		FilePath:     tracingFilePath(),
		OTLPEndpoint: cfg.Tracing.OTLPEndpoint,
		SampleRate:   cfg.Tracing.SampleRate,
	})
	if err != nil {
		return fmt.Errorf("initializing tracing: %w", err)
	}
	defer func() {
		_ = tracerProvider.Shutdown(context.Background())
	}()

	db, err := sqlite.Open(cfg.DBPath())
	if err != nil {
		return fmt.Errorf("opening snapshot database: %w", err)
	}
	defer db.Close()

	svc := service.New(sqlite.NewSnapshotRepository(db))

	var dbChanges <-chan struct{}
	var fileWatcher *watcher.Watcher
	if cfg.AutoRefresh {
		fileWatcher, err = watcher.New(watcher.DefaultConfig(cfg.DBPath()))
		if err != nil {
			log.ErrorErr(log.CatWatcher, "Watcher unavailable, auto-refresh disabled", err)
		} else if dbChanges, err = fileWatcher.Start(); err != nil {
			log.ErrorErr(log.CatWatcher, "Watcher failed to start, auto-refresh disabled", err)
			dbChanges = nil
		}
	}

	configFilePath := viper.ConfigFileUsed()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	model := app.New(ctx, mode.Services{
		Chat:       svc,
		Config:     &cfg,
		ConfigPath: configFilePath,
	}, dbChanges)

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()

	if fileWatcher != nil {
		if stopErr := fileWatcher.Stop(); stopErr != nil && err == nil {
			err = stopErr
		}
	}

	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// tracingFilePath defaults the file exporter output into the data dir.
func tracingFilePath() string {
	if cfg.Tracing.FilePath != "" {
		return cfg.Tracing.FilePath
	}
	return filepath.Join(cfg.DataDir, "traces.jsonl")
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
