// Package entry defines the launcher's entry value type.
//
// An Entry is either a launchable application or a category marker used to
// group the list visually. The two variants share identity and display
// fields; only applications carry a filesystem path. Categories cannot be
// constructed with one.
package entry

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Validation errors returned by the constructors.
var (
	ErrEmptyName   = errors.New("entry name cannot be empty")
	ErrMissingPath = errors.New("application entry requires a path")
)

// Kind discriminates the two entry variants.
type Kind int

const (
	// KindApplication is a launchable entry addressing a file on disk.
	KindApplication Kind = iota
	// KindCategory is a visual grouping marker. Not launchable, no path.
	KindCategory
)

func (k Kind) String() string {
	switch k {
	case KindApplication:
		return "application"
	case KindCategory:
		return "category"
	default:
		return "unknown"
	}
}

// Entry is one record in the launcher's ordered list.
// The zero value is not valid; use the constructors.
type Entry struct {
	id          string
	name        string
	path        string
	description string
	kind        Kind
}

// New builds an entry from raw fields, validating the variant invariants.
// An empty id is replaced with a fresh one; a category's path is discarded.
// Used by the persistence layer to rehydrate stored records.
func New(id, name, path, description string, kind Kind) (Entry, error) {
	if strings.TrimSpace(name) == "" {
		return Entry{}, ErrEmptyName
	}
	if kind == KindCategory {
		path = ""
	} else if path == "" {
		return Entry{}, ErrMissingPath
	}
	if id == "" {
		id = uuid.NewString()
	}
	return Entry{
		id:          id,
		name:        name,
		path:        path,
		description: description,
		kind:        kind,
	}, nil
}

// NewApplication creates a launchable entry with a fresh id.
func NewApplication(name, path, description string) (Entry, error) {
	return New("", name, path, description, KindApplication)
}

// NewCategory creates a grouping marker with a fresh id.
func NewCategory(name string) (Entry, error) {
	return New("", name, "", "", KindCategory)
}

// FromFile derives an application entry from a file path: the name defaults
// to the base name without extension, the path is made absolute.
func FromFile(path string) (Entry, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return Entry{}, err
	}
	base := filepath.Base(abs)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return New("", name, abs, "", KindApplication)
}

// ID returns the opaque unique identifier. Never reassigned, never reused.
func (e Entry) ID() string { return e.id }

// Name returns the display name.
func (e Entry) Name() string { return e.name }

// Path returns the target path. Always empty for categories.
func (e Entry) Path() string { return e.path }

// Description returns the free-form description, possibly empty.
func (e Entry) Description() string { return e.description }

// Kind returns the entry variant.
func (e Entry) Kind() Kind { return e.kind }

// IsCategory reports whether the entry is a grouping marker.
func (e Entry) IsCategory() bool { return e.kind == KindCategory }

// Fields holds the mutable portion of an entry for edits.
type Fields struct {
	Name        string
	Path        string
	Description string
	Kind        Kind
}

// With returns a copy of the entry with its mutable fields replaced.
// The id is preserved; the replacement is validated like a new entry.
func (e Entry) With(f Fields) (Entry, error) {
	return New(e.id, f.Name, f.Path, f.Description, f.Kind)
}
