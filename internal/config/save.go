package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// defaultConfigYAML is written on first run so the file documents itself.
const defaultConfigYAML = `# launchpad configuration

# data_dir overrides where launcher_data.json and its backups live.
# Default: ~/.launcher
# data_dir: ~/my-launcher-data

# auto_reload re-reads the entry list when the data file changes on disk
# (for example after restoring a backup).
auto_reload: true

ui:
  show_descriptions: true
  show_status_bar: true
  # missing_badge marks entries whose target no longer exists.
  missing_badge: true

launch:
  # terminal picks the terminal emulator for console launches (Linux).
  # Default: $TERMINAL, then x-terminal-emulator.
  # terminal: alacritty

  # interpreters extends the extension -> interpreter table.
  # interpreters:
  #   ".rb": ruby
`

// WriteDefaultConfig writes the commented default config file, creating
// parent directories as needed. Fails if the file already exists.
func WriteDefaultConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists: %s", path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(defaultConfigYAML), 0644); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}
