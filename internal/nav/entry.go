package nav

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Kind discriminates sidebar entries.
type Kind int

const (
	KindGroup Kind = iota + 1
	KindItem
)

func (k Kind) String() string {
	switch k {
	case KindGroup:
		return "group"
	case KindItem:
		return "item"
	default:
		return "unknown"
	}
}

// Entry is one raw sidebar declaration. The variant is fixed when the entry
// is decoded: entries declaring items are groups, entries declaring a slug
// are items.
type Entry struct {
	Kind      Kind
	Label     string
	Slug      string  // KindItem only
	Items     []Entry // KindGroup only
	Collapsed bool    // KindGroup only; rendering hint passed through untouched
}

// GroupEntry declares a group.
func GroupEntry(label string, items ...Entry) Entry {
	return Entry{Kind: KindGroup, Label: label, Items: items}
}

// ItemEntry declares a leaf item.
func ItemEntry(label, slug string) Entry {
	return Entry{Kind: KindItem, Label: label, Slug: slug}
}

type rawEntry struct {
	Label     string   `yaml:"label"`
	Slug      *string  `yaml:"slug"`
	Items     *[]Entry `yaml:"items"`
	Collapsed bool     `yaml:"collapsed"`
}

// UnmarshalYAML decodes a sidebar record and fixes its variant.
func (e *Entry) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return newStructuralError(ReasonMalformedEntry, fmt.Sprintf("sidebar entry at line %d must be a mapping", value.Line)).
			withPath(fmt.Sprintf("line %d", value.Line))
	}

	var raw rawEntry
	if err := value.Decode(&raw); err != nil {
		return err
	}

	switch {
	case raw.Items != nil && raw.Slug != nil:
		return newStructuralError(ReasonMalformedEntry,
			fmt.Sprintf("sidebar entry %q at line %d declares both slug and items", raw.Label, value.Line)).
			withPath(fmt.Sprintf("line %d", value.Line)).withLabel(raw.Label)
	case raw.Items != nil:
		*e = Entry{Kind: KindGroup, Label: raw.Label, Items: *raw.Items, Collapsed: raw.Collapsed}
	case raw.Slug != nil:
		*e = Entry{Kind: KindItem, Label: raw.Label, Slug: *raw.Slug}
	default:
		return newStructuralError(ReasonMalformedEntry,
			fmt.Sprintf("sidebar entry %q at line %d declares neither slug nor items", raw.Label, value.Line)).
			withPath(fmt.Sprintf("line %d", value.Line)).withLabel(raw.Label)
	}
	return nil
}

// MarshalYAML writes the entry back in its declarative form.
func (e Entry) MarshalYAML() (any, error) {
	if e.Kind == KindItem {
		return struct {
			Label string `yaml:"label"`
			Slug  string `yaml:"slug"`
		}{e.Label, e.Slug}, nil
	}
	items := e.Items
	if items == nil {
		items = []Entry{}
	}
	return struct {
		Label     string  `yaml:"label"`
		Collapsed bool    `yaml:"collapsed,omitempty"`
		Items     []Entry `yaml:"items"`
	}{e.Label, e.Collapsed, items}, nil
}
