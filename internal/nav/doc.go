// Package nav builds the canonical navigation tree of a documentation site.
//
// A sidebar is declared as an ordered list of groups. Each group carries a
// label and an ordered list of children that are either nested groups or
// leaf items pointing at a content slug. Build validates the declaration
// depth-first, left-to-right and returns an immutable Tree, or a
// *StructuralError describing the first violation. A failed build never
// yields a partial tree.
package nav
