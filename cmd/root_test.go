package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/launchpad/internal/config"
	"github.com/zjrosen/launchpad/internal/domain/entry"
	"github.com/zjrosen/launchpad/internal/infrastructure/jsonstore"
	"github.com/zjrosen/launchpad/internal/paths"
)

// withTempData points the global config at a temp data directory for the
// duration of the test.
func withTempData(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	prev := cfg
	cfg = config.Defaults()
	cfg.DataDir = dir
	t.Cleanup(func() { cfg = prev })
	return dir
}

// captureCmd builds a cobra command whose output goes to the returned buffer.
func captureCmd() (*cobra.Command, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	c := &cobra.Command{}
	c.SetOut(buf)
	c.SetErr(buf)
	return c, buf
}

func TestOpenStore_ResolvesDataFile(t *testing.T) {
	dir := withTempData(t)

	store, cleanup, err := openStore()
	require.NoError(t, err)
	defer cleanup()

	assert.Equal(t, filepath.Join(dir, paths.DataFileName), store.Path())
}

func TestRunBackups_EmptyState(t *testing.T) {
	withTempData(t)

	c, buf := captureCmd()
	require.NoError(t, runBackups(c, nil))
	assert.Contains(t, buf.String(), "No backups yet")
}

func TestRunBackups_ListsGenerations(t *testing.T) {
	dir := withTempData(t)

	store := jsonstore.New(filepath.Join(dir, paths.DataFileName))
	e, err := entry.NewCategory("Tools")
	require.NoError(t, err)
	require.NoError(t, store.Save([]entry.Entry{e}))
	require.NoError(t, store.Save(nil)) // second save rotates a backup

	c, buf := captureCmd()
	require.NoError(t, runBackups(c, nil))
	assert.Contains(t, buf.String(), "#1")
}

func TestRunAdd_PersistsEntry(t *testing.T) {
	dir := withTempData(t)

	target := filepath.Join(t.TempDir(), "tool.sh")
	require.NoError(t, os.WriteFile(target, []byte("#!/bin/sh\n"), 0o755))

	addName = ""
	addDescription = ""
	c, buf := captureCmd()
	require.NoError(t, runAdd(c, []string{target}))
	assert.Contains(t, buf.String(), `Added "tool"`)

	result, err := jsonstore.New(filepath.Join(dir, paths.DataFileName)).Load()
	require.NoError(t, err)
	require.Len(t, result.Entries, 1)
	assert.Equal(t, "tool", result.Entries[0].Name())
	assert.Equal(t, target, result.Entries[0].Path())
}

func TestRunAdd_NameAndDescriptionFlags(t *testing.T) {
	dir := withTempData(t)

	target := filepath.Join(t.TempDir(), "tool.sh")
	require.NoError(t, os.WriteFile(target, []byte("#!/bin/sh\n"), 0o755))

	addName = "My Tool"
	addDescription = "does things"
	t.Cleanup(func() { addName, addDescription = "", "" })

	c, _ := captureCmd()
	require.NoError(t, runAdd(c, []string{target}))

	result, err := jsonstore.New(filepath.Join(dir, paths.DataFileName)).Load()
	require.NoError(t, err)
	require.Len(t, result.Entries, 1)
	assert.Equal(t, "My Tool", result.Entries[0].Name())
	assert.Equal(t, "does things", result.Entries[0].Description())
}

func TestRunAdd_MissingTargetStillAdds(t *testing.T) {
	withTempData(t)

	addName = ""
	addDescription = ""
	c, buf := captureCmd()
	require.NoError(t, runAdd(c, []string{"/nonexistent/ghost.sh"}))
	assert.True(t, strings.Contains(buf.String(), "warning"),
		"missing target should be reported but not rejected")
}
