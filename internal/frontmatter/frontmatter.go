// Package frontmatter splits YAML frontmatter from Markdown content pages and
// extracts the fields the content store cares about.
package frontmatter

import (
	"bytes"
	"errors"
	"strings"

	"github.com/inful/mdfp"
	"gopkg.in/yaml.v3"
)

// ErrMissingClosingDelimiter is returned when an opening "---" has no matching close.
var ErrMissingClosingDelimiter = errors.New("yaml frontmatter start delimiter found but closing delimiter is missing")

// Meta holds the frontmatter fields that influence content addressing.
type Meta struct {
	Title string
	Slug  string
	Draft bool
	// Fields is the full decoded frontmatter map.
	Fields map[string]any
}

// Split separates frontmatter from body. had reports whether a frontmatter block was present.
func Split(content []byte) (fm []byte, body []byte, had bool, err error) {
	nl := detectNewline(content)

	open := []byte("---" + nl)
	if !bytes.HasPrefix(content, open) {
		return nil, content, false, nil
	}

	start := len(open)
	closeLine := []byte("---" + nl)
	if bytes.HasPrefix(content[start:], closeLine) {
		return []byte{}, content[start+len(closeLine):], true, nil
	}

	closeSeq := []byte(nl + "---" + nl)
	idx := bytes.Index(content[start:], closeSeq)
	if idx < 0 {
		// A closing delimiter at EOF without trailing newline is still valid.
		trailer := []byte(nl + "---")
		if bytes.HasSuffix(content, trailer) {
			end := len(content) - len(trailer)
			return content[start : end+len(nl)], []byte{}, true, nil
		}
		return nil, nil, false, ErrMissingClosingDelimiter
	}

	end := start + idx + len(nl)
	return content[start:end], content[start+idx+len(closeSeq):], true, nil
}

// ParseYAML decodes a frontmatter block into a map. Empty input yields an empty map.
func ParseYAML(fm []byte) (map[string]any, error) {
	if len(bytes.TrimSpace(fm)) == 0 {
		return map[string]any{}, nil
	}

	var fields map[string]any
	if err := yaml.Unmarshal(fm, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return fields, nil
}

// Parse splits content and decodes its frontmatter into Meta.
func Parse(content []byte) (Meta, []byte, error) {
	fm, body, _, err := Split(content)
	if err != nil {
		return Meta{}, nil, err
	}
	fields, err := ParseYAML(fm)
	if err != nil {
		return Meta{}, nil, err
	}

	meta := Meta{Fields: fields}
	if v, ok := fields["title"].(string); ok {
		meta.Title = strings.TrimSpace(v)
	}
	if v, ok := fields["slug"].(string); ok {
		meta.Slug = strings.TrimSpace(v)
	}
	if v, ok := fields["draft"].(bool); ok {
		meta.Draft = v
	}
	return meta, body, nil
}

// Fingerprint computes a stable content fingerprint over frontmatter fields and body.
// The fingerprint field itself is excluded so stamped and unstamped pages hash alike.
func Fingerprint(fields map[string]any, body []byte) (string, error) {
	hashed := make(map[string]any, len(fields))
	for k, v := range fields {
		if k == mdfp.FingerprintField {
			continue
		}
		hashed[k] = v
	}

	serialized := ""
	if len(hashed) > 0 {
		// yaml.v3 emits map keys in sorted order.
		out, err := yaml.Marshal(hashed)
		if err != nil {
			return "", err
		}
		serialized = strings.TrimSuffix(string(out), "\n")
	}
	return mdfp.CalculateFingerprintFromParts(serialized, string(body)), nil
}

func detectNewline(content []byte) string {
	if i := bytes.IndexByte(content, '\n'); i > 0 && content[i-1] == '\r' {
		return "\r\n"
	}
	return "\n"
}
