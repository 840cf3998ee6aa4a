// Package paths resolves the per-user data directory and the files inside it.
package paths

import (
	"os"
	"path/filepath"
)

// DataFileName is the name of the persisted entry document.
const DataFileName = "launcher_data.json"

// LogFileName is the debug log written next to the data file.
const LogFileName = "launchpad.log"

// dataDirName is the default directory under the user's home.
const dataDirName = ".launcher"

// DataDir resolves the data directory, creating it if needed.
// An empty override resolves to ~/.launcher.
//
// Input normalization:
//   - ""                 -> "~/.launcher"
//   - "/path/to/dir"     -> "/path/to/dir"
//   - "~/custom"         -> "<home>/custom"
func DataDir(override string) (string, error) {
	dir := override
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(home, dataDirName)
	} else if len(dir) > 1 && dir[0] == '~' && (dir[1] == '/' || dir[1] == filepath.Separator) {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(home, dir[2:])
	}
	dir = filepath.Clean(dir)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}

// DataFile returns the entry document path inside dir.
func DataFile(dir string) string {
	return filepath.Join(dir, DataFileName)
}

// LogFile returns the debug log path inside dir.
func LogFile(dir string) string {
	return filepath.Join(dir, LogFileName)
}
