package content

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"git.home.luguber.info/inful/sitenav/internal/util/sets"
)

func TestSnapshot_Queries(t *testing.T) {
	snap := NewSnapshot(
		Entry{Slug: "intro", Title: "Introduction"},
		Entry{Slug: "api/chat", Title: "Chat API"},
		Entry{Slug: "intro", Title: "Shadowed"},
	)

	assert.Equal(t, 2, snap.Len())
	assert.True(t, snap.Contains("api/chat"))
	assert.False(t, snap.Contains("api/logs"))

	e, ok := snap.Get("intro")
	assert.True(t, ok)
	assert.Equal(t, "Introduction", e.Title)

	entries := snap.Entries()
	assert.Equal(t, "api/chat", entries[0].Slug)
	assert.Equal(t, "intro", entries[1].Slug)
}

func TestSnapshot_AllSlugsIsACopy(t *testing.T) {
	snap := FromSlugs("a", "b")
	all := snap.AllSlugs()
	all.Add("c")

	assert.False(t, snap.Contains("c"))
	assert.Equal(t, []string{"a", "b"}, sets.Sorted(snap.AllSlugs()))
}

type setStore struct{ sets.Set[string] }

func (s setStore) Contains(slug string) bool   { return s.Has(slug) }
func (s setStore) AllSlugs() sets.Set[string] { return s.Clone() }

func TestCapture(t *testing.T) {
	snap := FromSlugs("x")
	assert.Same(t, snap, Capture(snap))

	live := setStore{sets.New("b", "a")}
	captured := Capture(live)
	live.Add("c")

	assert.Equal(t, 2, captured.Len())
	assert.False(t, captured.Contains("c"))
}

func TestSlugForPath(t *testing.T) {
	cases := map[string]string{
		"index.md":                   "index",
		"introduction.md":            "introduction",
		"guides/quickstart.mdx":      "guides/quickstart",
		"guides/index.md":            "guides",
		"API/Chat.md":                "api/chat",
		"development/Local Setup.md": "development/local-setup",
	}
	for in, want := range cases {
		assert.Equal(t, want, SlugForPath(in), in)
	}
}

func TestFirstHeading(t *testing.T) {
	assert.Equal(t, "Quick Start", FirstHeading([]byte("Intro text\n\n# Quick *Start*\n\n## Later\n")))
	assert.Equal(t, "", FirstHeading([]byte("## Only level two\n")))
}
