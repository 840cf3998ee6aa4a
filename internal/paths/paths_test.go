package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDataDir_Override(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "launcher-data")
	resolved, err := DataDir(dir)
	require.NoError(t, err)
	require.Equal(t, dir, resolved)

	// Directory is created
	info, err := os.Stat(resolved)
	require.NoError(t, err)
	require.True(t, info.IsDir())
}

func TestDataDir_Default(t *testing.T) {
	resolved, err := DataDir("")
	require.NoError(t, err)

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	require.Equal(t, filepath.Join(home, ".launcher"), resolved)
}

func TestDataDir_TildeExpansion(t *testing.T) {
	resolved, err := DataDir("~/.launcher")
	require.NoError(t, err)

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	require.Equal(t, filepath.Join(home, ".launcher"), resolved)
}

func TestDataFile(t *testing.T) {
	require.Equal(t, "/tmp/x/launcher_data.json", DataFile("/tmp/x"))
}

func TestLogFile(t *testing.T) {
	require.Equal(t, "/tmp/x/launchpad.log", LogFile("/tmp/x"))
}
