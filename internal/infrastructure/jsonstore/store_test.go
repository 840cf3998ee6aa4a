package jsonstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/launchpad/internal/domain/entry"
	"github.com/zjrosen/launchpad/internal/testutil"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return New(filepath.Join(t.TempDir(), "launcher_data.json"))
}

func TestLoad_MissingFile(t *testing.T) {
	s := newTestStore(t)

	res, err := s.Load()
	require.NoError(t, err, "missing file is not an error")
	assert.Empty(t, res.Entries)
	assert.Equal(t, FileMissing, res.Provenance)
	assert.Zero(t, res.Dropped)
}

func TestLoad_CorruptDocument(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.WriteFile(s.Path(), []byte("{not json"), 0644))

	res, err := s.Load()
	require.NoError(t, err, "corrupt document is not an error")
	assert.Empty(t, res.Entries)
	assert.Equal(t, CorruptDocument, res.Provenance, "corruption must be distinguishable from empty")
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	s := newTestStore(t)
	entries := []entry.Entry{
		testutil.App(t, "Notes", testutil.WithPath("/opt/notes.py"), testutil.WithDescription("daily notes")),
		testutil.Category(t, "Games"),
		testutil.App(t, "Calc", testutil.WithPath("/usr/bin/calc")),
	}

	require.NoError(t, s.Save(entries))

	res, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, LoadedClean, res.Provenance)
	assert.Zero(t, res.Dropped)
	require.Len(t, res.Entries, 3)

	for i, got := range res.Entries {
		want := entries[i]
		assert.Equal(t, want.ID(), got.ID())
		assert.Equal(t, want.Name(), got.Name())
		assert.Equal(t, want.Path(), got.Path())
		assert.Equal(t, want.Description(), got.Description())
		assert.Equal(t, want.Kind(), got.Kind())
	}
}

func TestSave_PrettyPrintedWireFormat(t *testing.T) {
	s := newTestStore(t)
	entries := []entry.Entry{
		testutil.App(t, "Notes", testutil.WithPath("/opt/notes.py")),
		testutil.Category(t, "Games"),
	}
	require.NoError(t, s.Save(entries))

	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  ", "document should be indented for human inspection")

	var doc struct {
		Entries []map[string]any `json:"entries"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))
	require.Len(t, doc.Entries, 2)
	assert.Equal(t, "app", doc.Entries[0]["entry_type"])
	assert.Equal(t, "separator", doc.Entries[1]["entry_type"])
	assert.Equal(t, "", doc.Entries[1]["path"], "categories persist an empty path")
}

// Scenario: one well-formed record and one missing its name; load keeps
// exactly the well-formed one.
func TestLoad_DropsMalformedRecords(t *testing.T) {
	s := newTestStore(t)
	doc := `{
  "entries": [
    {"id": "a", "name": "Notes", "path": "/opt/notes.py", "description": "", "entry_type": "app"},
    {"id": "b", "path": "/opt/other.py", "description": "", "entry_type": "app"}
  ]
}`
	require.NoError(t, os.WriteFile(s.Path(), []byte(doc), 0644))

	res, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, LoadedClean, res.Provenance)
	assert.Equal(t, 1, res.Dropped)
	require.Len(t, res.Entries, 1)
	assert.Equal(t, "Notes", res.Entries[0].Name())
}

func TestLoad_DropsStructurallyInvalidRecord(t *testing.T) {
	s := newTestStore(t)
	doc := `{"entries": [
    "not an object",
    {"id": "a", "name": "Calc", "path": "/usr/bin/calc", "entry_type": "app"}
  ]}`
	require.NoError(t, os.WriteFile(s.Path(), []byte(doc), 0644))

	res, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, 1, res.Dropped)
	require.Len(t, res.Entries, 1)
	assert.Equal(t, "Calc", res.Entries[0].Name())
}

func TestLoad_ToleratesUnknownFieldsAndAssignsMissingIDs(t *testing.T) {
	s := newTestStore(t)
	doc := `{"entries": [
    {"name": "Calc", "path": "/usr/bin/calc", "entry_type": "app", "color": "red"}
  ]}`
	require.NoError(t, os.WriteFile(s.Path(), []byte(doc), 0644))

	res, err := s.Load()
	require.NoError(t, err)
	require.Len(t, res.Entries, 1)
	assert.NotEmpty(t, res.Entries[0].ID(), "missing id gets a fresh one")
}

func TestLoad_KeepsFirstOfDuplicateIDs(t *testing.T) {
	s := newTestStore(t)
	doc := `{"entries": [
    {"id": "dup", "name": "First", "path": "/a", "entry_type": "app"},
    {"id": "dup", "name": "Second", "path": "/b", "entry_type": "app"}
  ]}`
	require.NoError(t, os.WriteFile(s.Path(), []byte(doc), 0644))

	res, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, 1, res.Dropped)
	require.Len(t, res.Entries, 1)
	assert.Equal(t, "First", res.Entries[0].Name())
}

func TestSave_NoBackupOnFirstSave(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Save([]entry.Entry{testutil.App(t, "Notes")}))

	backups, err := s.ListBackups()
	require.NoError(t, err)
	assert.Empty(t, backups, "no backup without a pre-existing document")
}

func TestSave_BackupGeneration1IsPriorState(t *testing.T) {
	s := newTestStore(t)
	first := []entry.Entry{testutil.App(t, "Notes")}
	require.NoError(t, s.Save(first))

	before, err := os.ReadFile(s.Path())
	require.NoError(t, err)

	require.NoError(t, s.Save([]entry.Entry{testutil.App(t, "Calc")}))

	bak1, err := os.ReadFile(s.Path() + ".bak1")
	require.NoError(t, err)
	assert.Equal(t, before, bak1, "generation 1 is a byte-for-byte copy of the prior document")
}

// Scenario: 12 successive saves on an initially-existing document leave
// exactly 10 generations, the two oldest states having rolled off.
func TestSave_BackupBound(t *testing.T) {
	s := newTestStore(t)

	// Initial document (save #0); the 12 saves after it rotate backups.
	require.NoError(t, s.Save([]entry.Entry{testutil.App(t, "state-0")}))
	for i := 1; i <= 12; i++ {
		require.NoError(t, s.Save([]entry.Entry{testutil.App(t, fmt.Sprintf("state-%d", i))}))
	}

	backups, err := s.ListBackups()
	require.NoError(t, err)
	require.Len(t, backups, 10)
	for i, b := range backups {
		assert.Equal(t, i+1, b.Generation, "generations are ascending with no gaps")
	}

	// Generation 1 = state before the latest save, generation 10 = state as
	// of save #2 from the rotation's point of view.
	bak1, err := os.ReadFile(s.Path() + ".bak1")
	require.NoError(t, err)
	assert.Contains(t, string(bak1), "state-11")

	bak10, err := os.ReadFile(s.Path() + ".bak10")
	require.NoError(t, err)
	assert.Contains(t, string(bak10), "state-2")
}

func TestSave_BackupCountGrowsWithSaves(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Save([]entry.Entry{testutil.App(t, "seed")}))

	for n := 1; n <= 4; n++ {
		require.NoError(t, s.Save([]entry.Entry{testutil.App(t, fmt.Sprintf("v%d", n))}))
		backups, err := s.ListBackups()
		require.NoError(t, err)
		assert.Len(t, backups, n, "after N saves over an existing document there are min(N,10) generations")
	}
}

func TestListBackups_SkipsGaps(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.WriteFile(s.Path()+".bak1", []byte("{}"), 0644))
	require.NoError(t, os.WriteFile(s.Path()+".bak3", []byte("{}"), 0644))

	backups, err := s.ListBackups()
	require.NoError(t, err)
	require.Len(t, backups, 2)
	assert.Equal(t, 1, backups[0].Generation)
	assert.Equal(t, 3, backups[1].Generation)
	assert.NotZero(t, backups[0].Size)
	assert.False(t, backups[0].ModTime.IsZero())
}

func TestRestore_CopiesBackupOverDocument(t *testing.T) {
	s := newTestStore(t)
	old := []entry.Entry{testutil.App(t, "Old")}
	require.NoError(t, s.Save(old))
	require.NoError(t, s.Save([]entry.Entry{testutil.App(t, "New")}))

	backups, err := s.ListBackups()
	require.NoError(t, err)
	require.Len(t, backups, 1)

	require.NoError(t, s.Restore(backups[0]))

	res, err := s.Load()
	require.NoError(t, err)
	require.Len(t, res.Entries, 1)
	assert.Equal(t, "Old", res.Entries[0].Name(), "restore replaces the document verbatim")
}

func TestRestore_MissingBackupFails(t *testing.T) {
	s := newTestStore(t)
	err := s.Restore(Backup{Generation: 1, Path: s.Path() + ".bak1"})
	require.Error(t, err)
}

func TestSave_WriteFailureSurfaced(t *testing.T) {
	// Point the store at a path whose parent does not exist.
	s := New(filepath.Join(t.TempDir(), "missing", "launcher_data.json"))
	err := s.Save([]entry.Entry{testutil.App(t, "Notes")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "writing document")
}
