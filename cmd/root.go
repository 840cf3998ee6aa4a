package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/launchpad/internal/app"
	"github.com/zjrosen/launchpad/internal/config"
	"github.com/zjrosen/launchpad/internal/infrastructure/jsonstore"
	"github.com/zjrosen/launchpad/internal/log"
	"github.com/zjrosen/launchpad/internal/paths"
	"github.com/zjrosen/launchpad/internal/registry"
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
	version   = "dev"
	cfgFile   string
	debugMode bool
	cfg       config.Config
)

var rootCmd = &cobra.Command{
	Use:     "launchpad",
	Short:   "A terminal launcher for applications and scripts",
	Long:    `A terminal user interface for keeping an ordered list of applications, scripts and documents, and launching them with the right program.`,
	Version: version,
	RunE:    runApp,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/launchpad/config.yaml)")
	rootCmd.PersistentFlags().StringP("data-dir", "d", "",
		"directory holding the entry document (default: ~/.launcher)")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false,
		"enable debug logging and the in-app log overlay")
	rootCmd.Flags().Bool("no-auto-reload", false,
		"disable automatic reload when the data file changes on disk")

	_ = viper.BindPFlag("data_dir", rootCmd.PersistentFlags().Lookup("data-dir"))
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("data_dir", defaults.DataDir)
	viper.SetDefault("auto_reload", defaults.AutoReload)
	viper.SetDefault("ui.show_descriptions", defaults.UI.ShowDescriptions)
	viper.SetDefault("ui.show_status_bar", defaults.UI.ShowStatusBar)
	viper.SetDefault("ui.missing_badge", defaults.UI.MissingBadge)
	viper.SetDefault("launch.terminal", defaults.Launch.Terminal)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .launchpad/config.yaml (current directory)
		// 2. ~/.config/launchpad/config.yaml (user config)
		if _, err := os.Stat(".launchpad/config.yaml"); err == nil {
			viper.SetConfigFile(".launchpad/config.yaml")
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "launchpad"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		// No config file found anywhere - create default at
		// ~/.config/launchpad/config.yaml
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			home, homeErr := os.UserHomeDir()
			if homeErr == nil {
				defaultPath := filepath.Join(home, ".config", "launchpad", "config.yaml")
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

// openStore resolves the data directory and returns the store plus a logger
// cleanup function. Shared by the root command and the headless subcommands.
func openStore() (*jsonstore.Store, func(), error) {
	dataDir, err := paths.DataDir(cfg.DataDir)
	if err != nil {
		return nil, nil, fmt.Errorf("resolving data directory: %w", err)
	}

	cleanup, err := log.Init(paths.LogFile(dataDir))
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	log.SetEnabled(debugMode || os.Getenv("LAUNCHPAD_DEBUG") != "")

	return jsonstore.New(paths.DataFile(dataDir)), cleanup, nil
}

func runApp(cmd *cobra.Command, args []string) error {
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if noAutoReload, _ := cmd.Flags().GetBool("no-auto-reload"); noAutoReload {
		cfg.AutoReload = false
	}

	store, cleanup, err := openStore()
	if err != nil {
		return err
	}
	defer cleanup()

	result, err := store.Load()
	if err != nil {
		return fmt.Errorf("loading entries: %w", err)
	}
	if result.Provenance == jsonstore.CorruptDocument {
		log.Warn(log.CatStore, "data file unreadable, starting with an empty list",
			"path", store.Path())
	}

	reg := registry.New(store, result.Entries)

	model := app.New(cfg, store, reg, debugMode)
	p := tea.NewProgram(
		&model,
		tea.WithAltScreen(),
	)

	_, err = p.Run()

	if closeErr := model.Close(); closeErr != nil && err == nil {
		err = closeErr
	}

	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
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
