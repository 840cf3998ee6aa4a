// Package jsonstore persists the entry list as a single pretty-printed JSON
// document with a bounded set of generational backups.
//
// Durability is "best effort with history", not atomic: every save first
// rotates the backup generations, then overwrites the document. A failure
// mid-rotation is reported and not rolled back; the generations that did
// rotate remain valid full copies.
package jsonstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/zjrosen/launchpad/internal/domain/entry"
	"github.com/zjrosen/launchpad/internal/log"
)

// maxGenerations bounds the backup set. Generation 1 is the newest.
const maxGenerations = 10

// Provenance describes how a load produced its result, so callers can tell
// a genuinely empty document apart from one recovered from corruption.
type Provenance int

const (
	// LoadedClean means the document parsed as a JSON object.
	LoadedClean Provenance = iota
	// FileMissing means no document existed; the result is empty.
	FileMissing
	// CorruptDocument means the document existed but was not valid JSON;
	// the result is empty rather than an error, trading data-loss risk for
	// availability.
	CorruptDocument
)

func (p Provenance) String() string {
	switch p {
	case LoadedClean:
		return "clean"
	case FileMissing:
		return "file_missing"
	case CorruptDocument:
		return "corrupt_document"
	default:
		return "unknown"
	}
}

// LoadResult carries the loaded entries plus provenance. Dropped counts
// records that were present in the document but failed to parse or validate
// individually.
type LoadResult struct {
	Entries    []entry.Entry
	Provenance Provenance
	Dropped    int
}

// Backup is a handle to one rotated generation of the document.
type Backup struct {
	Generation int
	Path       string
	ModTime    time.Time
	Size       int64
}

// Store owns the document file and its backup generations. Nothing else
// reads or writes them.
type Store struct {
	path string
}

// New creates a store over the given document path. The file need not exist.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the document path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the document. A missing file or a corrupt document yields an
// empty result rather than an error; the provenance says which. Records are
// parsed independently, discarding unparseable ones while preserving the
// array order of the survivors. Ids duplicated within the document keep the
// first occurrence only.
func (s *Store) Load() (LoadResult, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		log.Debug(log.CatStore, "no document on disk, starting empty", "path", s.path)
		return LoadResult{Provenance: FileMissing}, nil
	}
	if err != nil {
		return LoadResult{}, fmt.Errorf("reading document: %w", err)
	}

	var raw rawDocument
	if err := json.Unmarshal(data, &raw); err != nil {
		log.Warn(log.CatStore, "document is corrupt, starting empty", "path", s.path, "error", err)
		return LoadResult{Provenance: CorruptDocument}, nil
	}

	result := LoadResult{Provenance: LoadedClean}
	seen := make(map[string]struct{}, len(raw.Entries))
	for _, msg := range raw.Entries {
		var rec entryRecord
		if err := json.Unmarshal(msg, &rec); err != nil {
			result.Dropped++
			continue
		}
		e, err := rec.toDomain()
		if err != nil {
			result.Dropped++
			continue
		}
		if _, dup := seen[e.ID()]; dup {
			result.Dropped++
			continue
		}
		seen[e.ID()] = struct{}{}
		result.Entries = append(result.Entries, e)
	}

	if result.Dropped > 0 {
		log.Warn(log.CatStore, "dropped malformed records on load",
			"dropped", result.Dropped, "kept", len(result.Entries))
	}
	return result, nil
}

// Save rotates the backup generations (when a current document exists) and
// then overwrites the document with the given entries, in order,
// pretty-printed for human inspection.
func (s *Store) Save(entries []entry.Entry) error {
	if _, err := os.Stat(s.path); err == nil {
		if err := s.rotateBackups(); err != nil {
			return fmt.Errorf("rotating backups: %w", err)
		}
	}

	doc := document{Entries: make([]entryRecord, 0, len(entries))}
	for _, e := range entries {
		doc.Entries = append(doc.Entries, toRecord(e))
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding document: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(s.path, data, 0644); err != nil { //nolint:gosec // G306: user-readable data file
		return fmt.Errorf("writing document: %w", err)
	}

	log.Debug(log.CatStore, "document saved", "entries", len(entries), "path", s.path)
	return nil
}

// ListBackups enumerates the existing generations in ascending order,
// skipping gaps.
func (s *Store) ListBackups() ([]Backup, error) {
	var backups []Backup
	for gen := 1; gen <= maxGenerations; gen++ {
		path := s.backupPath(gen)
		info, err := os.Stat(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("inspecting backup generation %d: %w", gen, err)
		}
		backups = append(backups, Backup{
			Generation: gen,
			Path:       path,
			ModTime:    info.ModTime(),
			Size:       info.Size(),
		})
	}
	return backups, nil
}

// Restore copies the chosen backup over the current document verbatim. The
// store does not touch any in-memory state; the caller is responsible for
// reloading.
func (s *Store) Restore(b Backup) error {
	if err := copyFile(b.Path, s.path); err != nil {
		return fmt.Errorf("restoring generation %d: %w", b.Generation, err)
	}
	log.Info(log.CatStore, "document restored from backup", "generation", b.Generation)
	return nil
}

// rotateBackups shifts generation i to i+1 for i = 9..1, deleting any
// occupant of i+1 first, then copies the current document into generation 1.
// What was generation 10 rolls off.
func (s *Store) rotateBackups() error {
	for gen := maxGenerations - 1; gen >= 1; gen-- {
		src := s.backupPath(gen)
		if _, err := os.Stat(src); errors.Is(err, os.ErrNotExist) {
			continue
		} else if err != nil {
			return err
		}
		dst := s.backupPath(gen + 1)
		if _, err := os.Stat(dst); err == nil {
			if err := os.Remove(dst); err != nil {
				return err
			}
		}
		if err := os.Rename(src, dst); err != nil {
			return err
		}
	}

	newest := s.backupPath(1)
	if _, err := os.Stat(newest); err == nil {
		if err := os.Remove(newest); err != nil {
			return err
		}
	}
	return copyFile(s.path, newest)
}

func (s *Store) backupPath(gen int) string {
	return fmt.Sprintf("%s.bak%d", s.path, gen)
}

// copyFile copies src to dst byte-for-byte, truncating dst if it exists.
func copyFile(src, dst string) error {
	in, err := os.Open(src) //nolint:gosec // G304: both paths live in the store's data dir
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := os.Create(dst) //nolint:gosec // G304: both paths live in the store's data dir
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
