package content

import (
	"bytes"
	"log/slog"
	"path"
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"git.home.luguber.info/inful/sitenav/internal/frontmatter"
	"git.home.luguber.info/inful/sitenav/internal/logfields"
)

// DefaultExtensions lists the page extensions recognized as content.
var DefaultExtensions = []string{".md", ".mdx", ".mdoc"}

// LoadOptions controls how pages become entries.
type LoadOptions struct {
	// IncludeDrafts keeps pages whose frontmatter sets draft: true.
	IncludeDrafts bool
	// Extensions overrides DefaultExtensions.
	Extensions []string
}

func (o LoadOptions) isPage(name string) bool {
	exts := o.Extensions
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	ext := path.Ext(name)
	for _, e := range exts {
		if strings.EqualFold(ext, e) {
			return true
		}
	}
	return false
}

// SlugForPath derives a slug from a slash-separated path relative to the
// content root: the extension is dropped, segments are lowercased with
// spaces turned into hyphens, and a trailing "index" collapses into its
// directory. The root index page keeps the slug "index".
func SlugForPath(rel string) string {
	rel = strings.TrimPrefix(path.Clean("/"+rel), "/")
	rel = strings.TrimSuffix(rel, path.Ext(rel))

	segments := strings.Split(rel, "/")
	for i, seg := range segments {
		segments[i] = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(seg)), " ", "-")
	}
	if n := len(segments); n > 1 && segments[n-1] == "index" {
		segments = segments[:n-1]
	}
	return strings.Join(segments, "/")
}

// collector accumulates entries from a walk, keeping the first page per slug.
type collector struct {
	opts    LoadOptions
	source  string
	entries []Entry
	seen    map[string]string
}

func newCollector(source string, opts LoadOptions) *collector {
	return &collector{opts: opts, source: source, seen: make(map[string]string)}
}

// add parses one page. Unparseable frontmatter degrades to path addressing.
func (c *collector) add(rel string, raw []byte) {
	entry := Entry{Slug: SlugForPath(rel), Path: rel}

	meta, body, err := frontmatter.Parse(raw)
	if err != nil {
		slog.Warn("Ignoring unreadable frontmatter",
			logfields.Source(c.source), logfields.Path(rel), logfields.Error(err))
		body = raw
	} else {
		if meta.Draft && !c.opts.IncludeDrafts {
			slog.Debug("Skipping draft page", logfields.Source(c.source), logfields.Path(rel))
			return
		}
		if meta.Slug != "" {
			entry.Slug = strings.Trim(meta.Slug, "/")
		}
		entry.Title = meta.Title
		entry.Draft = meta.Draft
		if fp, fpErr := frontmatter.Fingerprint(meta.Fields, body); fpErr == nil {
			entry.Fingerprint = fp
		}
	}
	if entry.Title == "" {
		entry.Title = FirstHeading(body)
	}

	if first, dup := c.seen[entry.Slug]; dup {
		slog.Warn("Content slug defined twice; keeping first page",
			logfields.Source(c.source), logfields.Slug(entry.Slug),
			slog.String("kept", first), slog.String("ignored", rel))
		return
	}
	c.seen[entry.Slug] = rel
	c.entries = append(c.entries, entry)
}

func (c *collector) snapshot() *Snapshot {
	return NewSnapshot(c.entries...)
}

// FirstHeading returns the text of the first level-one heading in a Markdown body.
func FirstHeading(body []byte) string {
	root := goldmark.New().Parser().Parse(text.NewReader(body))

	var title string
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		h, ok := n.(*gmast.Heading)
		if !ok || h.Level != 1 {
			return gmast.WalkContinue, nil
		}
		var buf bytes.Buffer
		_ = gmast.Walk(h, func(c gmast.Node, entering bool) (gmast.WalkStatus, error) {
			if !entering {
				return gmast.WalkContinue, nil
			}
			switch t := c.(type) {
			case *gmast.Text:
				buf.Write(t.Segment.Value(body))
				if t.SoftLineBreak() {
					buf.WriteByte(' ')
				}
			case *gmast.String:
				buf.Write(t.Value)
			}
			return gmast.WalkContinue, nil
		})
		title = strings.TrimSpace(buf.String())
		return gmast.WalkStop, nil
	})
	return title
}
