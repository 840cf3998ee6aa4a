package jsonstore

import (
	"encoding/json"

	"github.com/zjrosen/launchpad/internal/domain/entry"
)

// Wire-format entry types. The document predates this implementation, so the
// tags stay "app" and "separator" regardless of the domain naming.
const (
	typeApp       = "app"
	typeSeparator = "separator"
)

// document is the persisted JSON object. The array order is the display and
// launch order.
type document struct {
	Entries []entryRecord `json:"entries"`
}

// rawDocument defers per-record decoding so one malformed record cannot fail
// the whole load.
type rawDocument struct {
	Entries []json.RawMessage `json:"entries"`
}

// entryRecord is the wire form of a single entry.
type entryRecord struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Path        string `json:"path"`
	Description string `json:"description"`
	EntryType   string `json:"entry_type"`
}

// toRecord maps a domain entry to its wire form.
func toRecord(e entry.Entry) entryRecord {
	entryType := typeApp
	if e.IsCategory() {
		entryType = typeSeparator
	}
	return entryRecord{
		ID:          e.ID(),
		Name:        e.Name(),
		Path:        e.Path(),
		Description: e.Description(),
		EntryType:   entryType,
	}
}

// toDomain rehydrates a domain entry from its wire form. A missing id gets a
// fresh one; an unknown entry_type is treated as an application, matching the
// tolerant read policy. Records that fail domain validation (no name, app
// without path) are rejected and dropped by the caller.
func (r entryRecord) toDomain() (entry.Entry, error) {
	kind := entry.KindApplication
	if r.EntryType == typeSeparator {
		kind = entry.KindCategory
	}
	return entry.New(r.ID, r.Name, r.Path, r.Description, kind)
}
