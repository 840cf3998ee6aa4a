// Package testutil provides builders for constructing entries in tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/launchpad/internal/domain/entry"
)

// entryData accumulates fields before construction.
type entryData struct {
	id          string
	path        string
	description string
}

// Option configures a built entry.
type Option func(*entryData)

// WithID fixes the entry id instead of generating one.
func WithID(id string) Option {
	return func(d *entryData) { d.id = id }
}

// WithPath sets the target path.
func WithPath(path string) Option {
	return func(d *entryData) { d.path = path }
}

// WithDescription sets the description.
func WithDescription(desc string) Option {
	return func(d *entryData) { d.description = desc }
}

// App builds an application entry. The path defaults to a placeholder that
// does not exist on disk; use WithPath or TempTarget to control it.
func App(t *testing.T, name string, opts ...Option) entry.Entry {
	t.Helper()
	d := entryData{path: "/nonexistent/" + name}
	for _, opt := range opts {
		opt(&d)
	}
	e, err := entry.New(d.id, name, d.path, d.description, entry.KindApplication)
	require.NoError(t, err)
	return e
}

// Category builds a grouping marker entry.
func Category(t *testing.T, name string, opts ...Option) entry.Entry {
	t.Helper()
	var d entryData
	for _, opt := range opts {
		opt(&d)
	}
	e, err := entry.New(d.id, name, "", d.description, entry.KindCategory)
	require.NoError(t, err)
	return e
}

// TempTarget creates a real file under t.TempDir() and returns its path,
// for tests that need an existing launch target.
func TempTarget(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"), 0755)) //nolint:gosec // test fixture is executable on purpose
	return path
}
