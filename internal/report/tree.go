package report

import (
	"encoding/json"
	"io"
	"strings"

	"git.home.luguber.info/inful/sitenav/internal/nav"
	"git.home.luguber.info/inful/sitenav/internal/resolve"
)

// TreeFormatter prints a navigation tree in menu order. When a report is
// supplied, text output marks each item resolved (✓) or missing (✗).
type TreeFormatter struct {
	Format Format
}

// Write renders tree to w. rep may be nil.
func (f TreeFormatter) Write(w io.Writer, tree *nav.Tree, rep *resolve.Report) error {
	if f.Format == FormatJSON {
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(tree)
	}

	p := &printer{w: w}
	tree.Walk(func(n nav.Node, depth int) bool {
		indent := strings.Repeat("  ", depth)
		switch v := n.(type) {
		case *nav.Group:
			suffix := ""
			if v.Collapsed() {
				suffix = " (collapsed)"
			}
			p.linef("%s%s%s", indent, v.Label(), suffix)
		case *nav.Item:
			p.linef("%s%s%s → %s", indent, marker(rep, v.Slug()), v.Label(), v.Slug())
		}
		return true
	})
	return p.err
}

func marker(rep *resolve.Report, slug string) string {
	switch {
	case rep == nil:
		return ""
	case rep.Missing.Has(slug):
		return "✗ "
	default:
		return "✓ "
	}
}
