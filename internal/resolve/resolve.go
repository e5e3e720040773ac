// Package resolve classifies the leaves of a navigation tree against a
// content store snapshot.
package resolve

import (
	"encoding/json"

	"git.home.luguber.info/inful/sitenav/internal/content"
	"git.home.luguber.info/inful/sitenav/internal/nav"
	"git.home.luguber.info/inful/sitenav/internal/util/sets"
)

// Report is the outcome of resolving one tree against one store snapshot.
//
//	Resolved ∩ Missing = ∅
//	Resolved ∪ Missing = every leaf slug of the tree
//	Orphaned           = store slugs − (Resolved ∪ Missing)
type Report struct {
	Resolved sets.Set[string]
	Missing  sets.Set[string]
	Orphaned sets.Set[string]
}

// Resolve classifies every leaf slug of tree. The store is read once. It
// never fails: findings are data, and callers apply a Policy on top.
func Resolve(tree *nav.Tree, store content.Store) *Report {
	snap := content.Capture(store)

	r := &Report{
		Resolved: sets.New[string](),
		Missing:  sets.New[string](),
	}
	referenced := tree.SlugSet()
	for slug := range referenced {
		if snap.Contains(slug) {
			r.Resolved.Add(slug)
		} else {
			r.Missing.Add(slug)
		}
	}
	r.Orphaned = snap.AllSlugs().Difference(referenced)
	return r
}

// SortedResolved returns resolved slugs in lexicographic order.
func (r *Report) SortedResolved() []string { return sets.Sorted(r.Resolved) }

// SortedMissing returns missing slugs in lexicographic order.
func (r *Report) SortedMissing() []string { return sets.Sorted(r.Missing) }

// SortedOrphaned returns orphaned slugs in lexicographic order.
func (r *Report) SortedOrphaned() []string { return sets.Sorted(r.Orphaned) }

// Clean reports whether nothing is missing or orphaned.
func (r *Report) Clean() bool {
	return r.Missing.Len() == 0 && r.Orphaned.Len() == 0
}

// Equal reports whether both reports hold the same three sets.
func (r *Report) Equal(other *Report) bool {
	return r.Resolved.Equal(other.Resolved) &&
		r.Missing.Equal(other.Missing) &&
		r.Orphaned.Equal(other.Orphaned)
}

type reportJSON struct {
	Resolved []string `json:"resolved"`
	Missing  []string `json:"missing"`
	Orphaned []string `json:"orphaned"`
}

// MarshalJSON emits the three sets as sorted arrays.
func (r *Report) MarshalJSON() ([]byte, error) {
	return json.Marshal(reportJSON{
		Resolved: r.SortedResolved(),
		Missing:  r.SortedMissing(),
		Orphaned: r.SortedOrphaned(),
	})
}

// UnmarshalJSON restores a report published by MarshalJSON.
func (r *Report) UnmarshalJSON(b []byte) error {
	var raw reportJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	r.Resolved = sets.New(raw.Resolved...)
	r.Missing = sets.New(raw.Missing...)
	r.Orphaned = sets.New(raw.Orphaned...)
	return nil
}
