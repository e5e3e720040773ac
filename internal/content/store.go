// Package content provides read-only snapshots of the content units a
// documentation site can link to, addressed by slug.
package content

import (
	"maps"
	"slices"

	"git.home.luguber.info/inful/sitenav/internal/util/sets"
)

// Store is the read-only capability the resolver queries.
type Store interface {
	Contains(slug string) bool
	AllSlugs() sets.Set[string]
}

// Entry describes one addressable content unit.
type Entry struct {
	Slug        string
	Title       string
	Path        string // source path relative to the content root; empty for synthetic entries
	Fingerprint string
	Draft       bool
}

// Snapshot is an immutable Store captured at one point in time.
type Snapshot struct {
	entries map[string]Entry
}

// NewSnapshot builds a snapshot from entries. Later entries with a slug
// already present are ignored.
func NewSnapshot(entries ...Entry) *Snapshot {
	s := &Snapshot{entries: make(map[string]Entry, len(entries))}
	for _, e := range entries {
		if _, exists := s.entries[e.Slug]; exists {
			continue
		}
		s.entries[e.Slug] = e
	}
	return s
}

// FromSlugs builds a snapshot holding bare slugs.
func FromSlugs(slugs ...string) *Snapshot {
	entries := make([]Entry, len(slugs))
	for i, slug := range slugs {
		entries[i] = Entry{Slug: slug}
	}
	return NewSnapshot(entries...)
}

// Contains reports whether slug names a content unit.
func (s *Snapshot) Contains(slug string) bool {
	_, ok := s.entries[slug]
	return ok
}

// AllSlugs returns a fresh set of every slug in the snapshot.
func (s *Snapshot) AllSlugs() sets.Set[string] {
	out := make(sets.Set[string], len(s.entries))
	for slug := range s.entries {
		out.Add(slug)
	}
	return out
}

// Get returns the entry for slug.
func (s *Snapshot) Get(slug string) (Entry, bool) {
	e, ok := s.entries[slug]
	return e, ok
}

// Entries returns all entries sorted by slug.
func (s *Snapshot) Entries() []Entry {
	out := make([]Entry, 0, len(s.entries))
	for _, slug := range slices.Sorted(maps.Keys(s.entries)) {
		out = append(out, s.entries[slug])
	}
	return out
}

// Len returns the number of entries.
func (s *Snapshot) Len() int { return len(s.entries) }

// Capture reads store once and returns an immutable snapshot of it. A
// *Snapshot is returned as is.
func Capture(store Store) *Snapshot {
	if snap, ok := store.(*Snapshot); ok {
		return snap
	}
	return FromSlugs(sets.Sorted(store.AllSlugs())...)
}
