// Package registry holds the ordered, uniquely-keyed entry collection and
// mediates every mutation. Each successful mutation persists synchronously
// through the store, so the on-disk document and the in-memory sequence never
// diverge for longer than one operation.
package registry

import (
	"errors"
	"fmt"
	"os"

	"github.com/zjrosen/launchpad/internal/domain/entry"
	"github.com/zjrosen/launchpad/internal/log"
	"github.com/zjrosen/launchpad/internal/pubsub"
)

// Registry errors
var (
	ErrNotFound        = errors.New("entry not found")
	ErrDuplicateID     = errors.New("duplicate entry id")
	ErrIncompleteOrder = errors.New("reorder does not cover current entries; resynchronize")
)

// Store persists the ordered entry sequence. The registry never reads the
// document itself; loading happens once at startup and on external reloads,
// both outside this package.
type Store interface {
	Save(entries []entry.Entry) error
}

// Warning flags a non-fatal condition on an accepted mutation. The caller
// decides whether to surface it.
type Warning int

const (
	WarnNone Warning = iota
	// WarnTargetMissing means the entry's path did not exist at add time.
	// The add still succeeds; resolution will fail later if it stays gone.
	WarnTargetMissing
)

// Snapshot is the payload published on every applied change.
type Snapshot = []entry.Entry

// Registry is the single owner of the in-memory sequence. Construct it
// explicitly and inject it into whatever consumes it; all methods must be
// called from the one goroutine that owns it.
type Registry struct {
	store   Store
	entries []entry.Entry
	broker  *pubsub.Broker[Snapshot]
}

// New creates a registry over the given store, seeded with the entries
// loaded at startup. Entries with duplicate ids are dropped (first wins)
// rather than rejected, matching the tolerant load policy.
func New(store Store, initial []entry.Entry) *Registry {
	r := &Registry{
		store:  store,
		broker: pubsub.NewBroker[Snapshot](),
	}
	r.entries = dedupe(initial)
	return r
}

// Events exposes the change broker. Subscribers receive a snapshot of the
// sequence after every applied mutation.
func (r *Registry) Events() *pubsub.Broker[Snapshot] {
	return r.broker
}

// Close shuts down the change broker.
func (r *Registry) Close() {
	r.broker.Close()
}

// List returns a copied snapshot, safe for the caller to hold across
// subsequent mutations.
func (r *Registry) List() []entry.Entry {
	out := make([]entry.Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Len returns the number of entries.
func (r *Registry) Len() int {
	return len(r.entries)
}

// Get returns the entry addressed by id.
func (r *Registry) Get(id string) (entry.Entry, error) {
	for _, e := range r.entries {
		if e.ID() == id {
			return e, nil
		}
	}
	return entry.Entry{}, ErrNotFound
}

// Add appends the entry to the end of the order, assigning a fresh id if it
// has none. A non-existent target path is a warning, not a rejection; the
// caller decides whether to proceed. The mutation is committed only after a
// successful save.
func (r *Registry) Add(e entry.Entry) (entry.Entry, Warning, error) {
	// Revalidate through the constructor; this also assigns a missing id.
	validated, err := entry.New(e.ID(), e.Name(), e.Path(), e.Description(), e.Kind())
	if err != nil {
		return entry.Entry{}, WarnNone, err
	}
	if _, err := r.Get(validated.ID()); err == nil {
		return entry.Entry{}, WarnNone, fmt.Errorf("%w: %s", ErrDuplicateID, validated.ID())
	}

	warning := WarnNone
	if !validated.IsCategory() {
		if _, statErr := os.Stat(validated.Path()); statErr != nil {
			warning = WarnTargetMissing
			log.Warn(log.CatRegistry, "added entry targets a missing path",
				"name", validated.Name(), "path", validated.Path())
		}
	}

	next := append(r.List(), validated)
	if err := r.commit(next, pubsub.EntryAdded); err != nil {
		return entry.Entry{}, WarnNone, err
	}
	return validated, warning, nil
}

// Edit replaces the addressed entry's mutable fields in place, preserving
// its position in the order.
func (r *Registry) Edit(id string, fields entry.Fields) (entry.Entry, error) {
	idx := r.indexOf(id)
	if idx < 0 {
		return entry.Entry{}, ErrNotFound
	}

	edited, err := r.entries[idx].With(fields)
	if err != nil {
		return entry.Entry{}, err
	}

	next := r.List()
	next[idx] = edited
	if err := r.commit(next, pubsub.EntryUpdated); err != nil {
		return entry.Entry{}, err
	}
	return edited, nil
}

// Delete removes the addressed entry. The order of the remaining entries is
// preserved; identity is by id, so nothing is renumbered.
func (r *Registry) Delete(id string) error {
	idx := r.indexOf(id)
	if idx < 0 {
		return ErrNotFound
	}

	next := r.List()
	next = append(next[:idx], next[idx+1:]...)
	return r.commit(next, pubsub.EntryDeleted)
}

// Reorder re-projects the sequence into the observed order reported by the
// presentation layer. The report is untrusted and validated in two steps:
// set equality first, so a report that dropped or invented an id rejects
// with ErrIncompleteOrder and the caller knows it must resynchronize, even
// when the same report also duplicates an id; only a report covering exactly
// the current membership can then reject with ErrDuplicateID. Partial
// reorders are never merged best-effort, because silently losing an entry is
// worse than asking the caller to refresh. On any rejection the registry's
// own order is untouched.
func (r *Registry) Reorder(observed []string) error {
	reported := make(map[string]struct{}, len(observed))
	for _, id := range observed {
		reported[id] = struct{}{}
	}

	byID := make(map[string]entry.Entry, len(r.entries))
	for _, e := range r.entries {
		byID[e.ID()] = e
	}

	for _, e := range r.entries {
		if _, ok := reported[e.ID()]; !ok {
			return fmt.Errorf("%w: missing %s", ErrIncompleteOrder, e.ID())
		}
	}
	for _, id := range observed {
		if _, ok := byID[id]; !ok {
			return fmt.Errorf("%w: unknown %s", ErrIncompleteOrder, id)
		}
	}

	if len(observed) != len(reported) {
		seen := make(map[string]struct{}, len(observed))
		for _, id := range observed {
			if _, dup := seen[id]; dup {
				return fmt.Errorf("%w: %s", ErrDuplicateID, id)
			}
			seen[id] = struct{}{}
		}
	}

	next := make([]entry.Entry, 0, len(observed))
	for _, id := range observed {
		next = append(next, byID[id])
	}
	return r.commit(next, pubsub.OrderChanged)
}

// Replace resets the sequence to mirror the document after an external
// change (e.g. a backup restore picked up by the watcher). It does not save:
// disk is already the source of the new state.
func (r *Registry) Replace(entries []entry.Entry) {
	r.entries = dedupe(entries)
	log.Info(log.CatRegistry, "registry reloaded", "entries", len(r.entries))
	r.broker.Publish(pubsub.RegistryLoaded, r.List())
}

// commit persists the staged sequence and only then makes it current, so a
// failed save leaves the in-memory order identical to the document.
func (r *Registry) commit(next []entry.Entry, event pubsub.EventType) error {
	if err := r.store.Save(next); err != nil {
		log.ErrorErr(log.CatRegistry, "save failed, mutation discarded", err)
		return fmt.Errorf("persisting entries: %w", err)
	}
	r.entries = next
	r.broker.Publish(event, r.List())
	return nil
}

func (r *Registry) indexOf(id string) int {
	for i, e := range r.entries {
		if e.ID() == id {
			return i
		}
	}
	return -1
}

func dedupe(entries []entry.Entry) []entry.Entry {
	out := make([]entry.Entry, 0, len(entries))
	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if _, dup := seen[e.ID()]; dup {
			log.Warn(log.CatRegistry, "dropping entry with duplicate id", "id", e.ID(), "name", e.Name())
			continue
		}
		seen[e.ID()] = struct{}{}
		out = append(out, e)
	}
	return out
}
