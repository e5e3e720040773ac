// Package report renders check results and navigation trees for humans and
// machines.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"git.home.luguber.info/inful/sitenav/internal/check"
	ferrors "git.home.luguber.info/inful/sitenav/internal/foundation/errors"
	"git.home.luguber.info/inful/sitenav/internal/foundation/normalization"
	"git.home.luguber.info/inful/sitenav/internal/metrics"
	"git.home.luguber.info/inful/sitenav/internal/nav"
)

// Format selects an output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

var formatNormalizer = normalization.NewNormalizer(map[string]Format{
	"text": FormatText,
	"json": FormatJSON,
}, FormatText)

// ParseFormat accepts "text", "json" or "" (text).
func ParseFormat(raw string) (Format, error) {
	f, err := formatNormalizer.NormalizeWithError(raw)
	if err != nil {
		return "", ferrors.WrapError(err, ferrors.CategoryValidation, "unknown output format").
			WithContext("format", raw).Build()
	}
	return f, nil
}

// Formatter writes a check result.
type Formatter interface {
	Format(w io.Writer, result *check.Result) error
}

// NewFormatter returns the formatter for f.
func NewFormatter(f Format) Formatter {
	if f == FormatJSON {
		return NewJSONFormatter()
	}
	return NewTextFormatter()
}

// TextFormatter formats results as human-readable text. Slugs are listed in
// lexicographic order.
type TextFormatter struct{}

// NewTextFormatter creates a text formatter.
func NewTextFormatter() *TextFormatter {
	return &TextFormatter{}
}

// Format outputs result in human-readable text format.
func (f *TextFormatter) Format(w io.Writer, result *check.Result) error {
	p := &printer{w: w}
	rule := strings.Repeat("━", 60)

	p.linef("Checking navigation for: %s", result.Site)
	p.line(rule)
	p.line("")

	if result.Report == nil {
		p.line("No report available.")
		return p.err
	}
	rep := result.Report
	leaves := leafIndex(result.Tree)

	for _, slug := range rep.SortedMissing() {
		p.linef("✗ %s", slug)
		if leaf, ok := leaves[slug]; ok {
			p.linef("  missing content for %q in %s", leaf.Label, breadcrumb(leaf))
		}
	}
	for _, slug := range rep.SortedOrphaned() {
		p.linef("ℹ %s", slug)
		p.line("  not reachable from navigation")
	}
	if rep.Missing.Len()+rep.Orphaned.Len() > 0 {
		p.line("")
	}

	p.line(rule)
	p.line("Results:")
	p.linef("  %d navigation entr%s", len(leaves), pluralize(len(leaves), "y", "ies"))
	p.linef("  %d resolved", rep.Resolved.Len())
	if n := rep.Missing.Len(); n > 0 {
		p.linef("  %d missing", n)
	}
	if n := rep.Orphaned.Len(); n > 0 {
		p.linef("  %d orphaned", n)
	}
	p.line("")

	switch {
	case result.Outcome == metrics.OutcomeFailed:
		p.linef("❌ Navigation references missing content (policy: %s).", result.Policy)
	case rep.Missing.Len() > 0:
		p.line("⚠️  Navigation references missing content.")
		p.line("   To fail on this: sitenav check --strict")
	case rep.Orphaned.Len() > 0:
		p.line("ℹ️  Some content is not reachable from navigation.")
	default:
		p.line("✨ Every navigation entry resolves!")
	}
	return p.err
}

// JSONFormatter formats results as JSON.
type JSONFormatter struct{}

// NewJSONFormatter creates a JSON formatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// JSONOutput is the JSON output structure. Resolved, Missing and Orphaned are
// the report sets as lexicographically sorted arrays.
type JSONOutput struct {
	RunID      string        `json:"run_id"`
	Site       string        `json:"site"`
	Policy     string        `json:"policy"`
	Outcome    string        `json:"outcome"`
	DurationMS int64         `json:"duration_ms"`
	Resolved   []string      `json:"resolved"`
	Missing    []string      `json:"missing"`
	Orphaned   []string      `json:"orphaned"`
	Findings   []JSONFinding `json:"findings"`
}

// JSONFinding is one missing or orphaned slug.
type JSONFinding struct {
	Severity   string   `json:"severity"`
	Slug       string   `json:"slug"`
	Message    string   `json:"message"`
	Label      string   `json:"label,omitempty"`
	Breadcrumb []string `json:"breadcrumb,omitempty"`
}

// Format outputs result as indented JSON.
func (f *JSONFormatter) Format(w io.Writer, result *check.Result) error {
	out := JSONOutput{
		RunID:      result.RunID,
		Site:       result.Site,
		Policy:     string(result.Policy),
		Outcome:    string(result.Outcome),
		DurationMS: result.Duration.Milliseconds(),
		Resolved:   []string{},
		Missing:    []string{},
		Orphaned:   []string{},
		Findings:   []JSONFinding{},
	}
	if rep := result.Report; rep != nil {
		out.Resolved = rep.SortedResolved()
		out.Missing = rep.SortedMissing()
		out.Orphaned = rep.SortedOrphaned()

		leaves := leafIndex(result.Tree)
		for _, finding := range rep.Findings() {
			slug, _ := finding.Context().GetString("slug")
			jf := JSONFinding{
				Severity: string(finding.Severity()),
				Slug:     slug,
				Message:  finding.Message(),
			}
			if leaf, ok := leaves[slug]; ok {
				jf.Label = leaf.Label
				jf.Breadcrumb = leaf.Breadcrumb
			}
			out.Findings = append(out.Findings, jf)
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}

func leafIndex(tree *nav.Tree) map[string]nav.Leaf {
	if tree == nil {
		return map[string]nav.Leaf{}
	}
	leaves := tree.Leaves()
	out := make(map[string]nav.Leaf, len(leaves))
	for _, l := range leaves {
		out[l.Slug] = l
	}
	return out
}

func breadcrumb(l nav.Leaf) string {
	return strings.Join(l.Breadcrumb, " › ")
}

func pluralize(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// printer remembers the first write error so formatting code stays linear.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) line(s string) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintln(p.w, s)
}

func (p *printer) linef(format string, args ...any) {
	p.line(fmt.Sprintf(format, args...))
}
