// Package config provides configuration types and defaults for launchpad.
package config

import (
	"fmt"
	"strings"
)

// Config holds all configuration options for launchpad.
type Config struct {
	// DataDir overrides the entry document location. Empty means ~/.launcher.
	DataDir    string       `mapstructure:"data_dir"`
	AutoReload bool         `mapstructure:"auto_reload"`
	UI         UIConfig     `mapstructure:"ui"`
	Launch     LaunchConfig `mapstructure:"launch"`
}

// UIConfig holds user interface options.
type UIConfig struct {
	ShowDescriptions bool `mapstructure:"show_descriptions"`
	ShowStatusBar    bool `mapstructure:"show_status_bar"`
	// MissingBadge marks entries whose target path no longer exists.
	MissingBadge bool `mapstructure:"missing_badge"`
}

// LaunchConfig holds launch dispatch options.
type LaunchConfig struct {
	// Terminal overrides the terminal emulator used for console launches on
	// platforms without a built-in console spawner.
	Terminal string `mapstructure:"terminal"`
	// Interpreters maps file extensions to interpreter programs, extending
	// or overriding the built-in table. Keys must start with a dot.
	Interpreters map[string]string `mapstructure:"interpreters"`
}

// Defaults returns the default configuration.
func Defaults() Config {
	return Config{
		DataDir:    "",
		AutoReload: true,
		UI: UIConfig{
			ShowDescriptions: true,
			ShowStatusBar:    true,
			MissingBadge:     true,
		},
		Launch: LaunchConfig{},
	}
}

// Validate checks the configuration for mistakes worth failing fast on.
func Validate(cfg Config) error {
	for ext, program := range cfg.Launch.Interpreters {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("launch.interpreters: key %q must start with a dot", ext)
		}
		if strings.TrimSpace(program) == "" {
			return fmt.Errorf("launch.interpreters: interpreter for %q is empty", ext)
		}
	}
	return nil
}
