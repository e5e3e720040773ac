package nav

import (
	"encoding/json"
	"slices"

	"git.home.luguber.info/inful/sitenav/internal/util/sets"
)

// Node is a Group or an Item.
type Node interface {
	Label() string
	Kind() Kind
	isNode()
}

// Group owns an ordered, non-empty list of children.
type Group struct {
	label     string
	collapsed bool
	children  []Node
}

func (g *Group) Label() string   { return g.label }
func (g *Group) Kind() Kind      { return KindGroup }
func (g *Group) Collapsed() bool { return g.collapsed }
func (*Group) isNode()           {}

// Children returns the group's children in declaration order.
func (g *Group) Children() []Node { return slices.Clone(g.children) }

// Item is a leaf pointing at one content slug.
type Item struct {
	label string
	slug  string
}

func (i *Item) Label() string { return i.label }
func (i *Item) Kind() Kind    { return KindItem }
func (i *Item) Slug() string  { return i.slug }
func (*Item) isNode()         {}

// Leaf is a flattened view of an Item with its ancestry.
type Leaf struct {
	Label string
	Slug  string
	// Breadcrumb holds the labels of enclosing groups, outermost first.
	Breadcrumb []string
}

// Tree is the validated, immutable navigation structure of one build.
type Tree struct {
	groups []*Group
	leaves []Leaf
}

// Groups returns the top-level groups in menu order.
func (t *Tree) Groups() []*Group { return slices.Clone(t.groups) }

// Leaves returns every item in depth-first, left-to-right order.
func (t *Tree) Leaves() []Leaf {
	out := make([]Leaf, len(t.leaves))
	for i, l := range t.leaves {
		out[i] = Leaf{Label: l.Label, Slug: l.Slug, Breadcrumb: slices.Clone(l.Breadcrumb)}
	}
	return out
}

// Slugs returns every leaf slug in menu order.
func (t *Tree) Slugs() []string {
	out := make([]string, len(t.leaves))
	for i, l := range t.leaves {
		out[i] = l.Slug
	}
	return out
}

// SlugSet returns the leaf slugs as a set.
func (t *Tree) SlugSet() sets.Set[string] {
	return sets.New(t.Slugs()...)
}

// Walk visits every node depth-first in menu order. Returning false from fn
// skips the children of a group.
func (t *Tree) Walk(fn func(n Node, depth int) bool) {
	var visit func(nodes []Node, depth int)
	visit = func(nodes []Node, depth int) {
		for _, n := range nodes {
			descend := fn(n, depth)
			if g, ok := n.(*Group); ok && descend {
				visit(g.children, depth+1)
			}
		}
	}
	top := make([]Node, len(t.groups))
	for i, g := range t.groups {
		top[i] = g
	}
	visit(top, 0)
}

// Entries converts the tree back into its declarative form.
func (t *Tree) Entries() []Entry {
	out := make([]Entry, len(t.groups))
	for i, g := range t.groups {
		out[i] = entryOf(g)
	}
	return out
}

func entryOf(n Node) Entry {
	switch v := n.(type) {
	case *Item:
		return ItemEntry(v.label, v.slug)
	case *Group:
		items := make([]Entry, len(v.children))
		for i, c := range v.children {
			items[i] = entryOf(c)
		}
		e := GroupEntry(v.label, items...)
		e.Collapsed = v.collapsed
		return e
	}
	return Entry{}
}

type jsonNode struct {
	Label     string     `json:"label"`
	Slug      string     `json:"slug,omitempty"`
	Collapsed bool       `json:"collapsed,omitempty"`
	Items     []jsonNode `json:"items,omitempty"`
}

// MarshalJSON renders the canonical navigation structure.
func (t *Tree) MarshalJSON() ([]byte, error) {
	var convert func(e Entry) jsonNode
	convert = func(e Entry) jsonNode {
		n := jsonNode{Label: e.Label, Slug: e.Slug, Collapsed: e.Collapsed}
		for _, c := range e.Items {
			n.Items = append(n.Items, convert(c))
		}
		return n
	}
	entries := t.Entries()
	out := make([]jsonNode, len(entries))
	for i, e := range entries {
		out[i] = convert(e)
	}
	return json.Marshal(out)
}
