package nav

import (
	"fmt"
	"strings"
)

// builder carries cross-tree state for a single Build call.
type builder struct {
	// slugOwner maps each slug to the label of its first referencing item.
	slugOwner map[string]string
	// duplicate is reported only once the traversal finishes.
	duplicate *StructuralError
	leaves    []Leaf
}

// Build validates entries and returns the canonical navigation tree.
//
// Checks run depth-first, left-to-right. For every node: non-empty label,
// distinct sibling labels, non-empty groups, slug grammar. Slug uniqueness is
// checked across the whole tree after the traversal completes. The first
// violation aborts the build and no tree is returned.
func Build(entries []Entry) (*Tree, error) {
	b := &builder{slugOwner: make(map[string]string)}

	groups := make([]*Group, 0, len(entries))
	siblings := make(map[string]struct{}, len(entries))
	for i, e := range entries {
		path := fmt.Sprintf("sidebar[%d]", i)
		label, err := checkLabel(e, path, siblings)
		if err != nil {
			return nil, err
		}
		if e.Kind != KindGroup {
			return nil, newStructuralError(ReasonTopLevelItem,
				fmt.Sprintf("top-level entry %q at %s must be a group", label, path)).
				withPath(path).withLabel(label)
		}
		n, err := b.node(e, label, path, nil)
		if err != nil {
			return nil, err
		}
		groups = append(groups, n.(*Group))
	}

	if b.duplicate != nil {
		return nil, b.duplicate
	}
	return &Tree{groups: groups, leaves: b.leaves}, nil
}

// checkLabel enforces rules 1 and 2 for one node and records it among its siblings.
func checkLabel(e Entry, path string, siblings map[string]struct{}) (string, error) {
	label := strings.TrimSpace(e.Label)
	if label == "" {
		return "", newStructuralError(ReasonEmptyLabel, "empty label at "+path).withPath(path)
	}
	if _, dup := siblings[label]; dup {
		return "", newStructuralError(ReasonDuplicateLabel,
			fmt.Sprintf("duplicate label %q at %s", label, path)).
			withPath(path).withLabel(label)
	}
	siblings[label] = struct{}{}
	return label, nil
}

func (b *builder) node(e Entry, label, path string, breadcrumb []string) (Node, error) {
	switch e.Kind {
	case KindGroup:
		if len(e.Items) == 0 {
			return nil, newStructuralError(ReasonEmptyGroup, fmt.Sprintf("empty group %q", label)).
				withPath(path).withLabel(label)
		}
		crumbs := append(append(make([]string, 0, len(breadcrumb)+1), breadcrumb...), label)
		g := &Group{label: label, collapsed: e.Collapsed, children: make([]Node, 0, len(e.Items))}
		siblings := make(map[string]struct{}, len(e.Items))
		for i, child := range e.Items {
			childPath := fmt.Sprintf("%s.items[%d]", path, i)
			childLabel, err := checkLabel(child, childPath, siblings)
			if err != nil {
				return nil, err
			}
			n, err := b.node(child, childLabel, childPath, crumbs)
			if err != nil {
				return nil, err
			}
			g.children = append(g.children, n)
		}
		return g, nil

	case KindItem:
		if !ValidSlug(e.Slug) {
			err := newStructuralError(ReasonInvalidSlug, fmt.Sprintf("invalid slug %q", e.Slug)).
				withPath(path).withLabel(label).withSlug(e.Slug)
			err.Suggestion = SuggestSlug(e.Slug)
			return nil, err
		}
		if owner, taken := b.slugOwner[e.Slug]; taken {
			if b.duplicate == nil {
				b.duplicate = newStructuralError(ReasonDuplicateSlug,
					fmt.Sprintf("duplicate slug %q referenced by %q and %q", e.Slug, owner, label)).
					withPath(path).withLabel(label).withSlug(e.Slug)
				b.duplicate.OtherLabel = owner
			}
		} else {
			b.slugOwner[e.Slug] = label
		}
		b.leaves = append(b.leaves, Leaf{Label: label, Slug: e.Slug, Breadcrumb: breadcrumb})
		return &Item{label: label, slug: e.Slug}, nil
	}

	return nil, newStructuralError(ReasonMalformedEntry,
		fmt.Sprintf("entry %q at %s has no kind", label, path)).withPath(path).withLabel(label)
}
