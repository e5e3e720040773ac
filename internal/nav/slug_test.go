package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidSlug(t *testing.T) {
	valid := []string{"intro", "guides/start", "api/chat", "legacy/old-page", "getting-started", "v2/api-ref", "404"}
	for _, s := range valid {
		assert.True(t, ValidSlug(s), s)
	}
	invalid := []string{"", "API", "a/", "/a", "a//b", "a b", "a_b", "café", "-a"}
	for _, s := range invalid {
		assert.False(t, ValidSlug(s), s)
	}
}

func TestSuggestSlug(t *testing.T) {
	cases := map[string]string{
		"API/Chat":              "api/chat",
		"/Guides//Quick Start/": "guides/quick-start",
		"Café Über":             "cafe-uber",
		"a_b--c":                "a-b-c",
		"///":                   "",
	}
	for in, want := range cases {
		assert.Equal(t, want, SuggestSlug(in), in)
	}
}
