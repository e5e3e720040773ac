package frontmatter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplit_NoFrontmatter_ReturnsBodyOnly(t *testing.T) {
	input := []byte("# Title\n\nHello\n")

	fm, body, had, err := Split(input)
	require.NoError(t, err)
	require.False(t, had)
	require.Empty(t, fm)
	require.Equal(t, input, body)
}

func TestSplit_YAMLFrontmatter_SplitsFrontmatterAndBody(t *testing.T) {
	input := []byte("---\nkey: value\n---\n# Title\n")

	fm, body, had, err := Split(input)
	require.NoError(t, err)
	require.True(t, had)
	require.Equal(t, []byte("key: value\n"), fm)
	require.Equal(t, []byte("# Title\n"), body)
}

func TestSplit_EmptyFrontmatter(t *testing.T) {
	fm, body, had, err := Split([]byte("---\n---\nbody\n"))
	require.NoError(t, err)
	require.True(t, had)
	require.Empty(t, fm)
	require.Equal(t, []byte("body\n"), body)
}

func TestSplit_MissingClosingDelimiter_ReturnsError(t *testing.T) {
	_, _, had, err := Split([]byte("---\nkey: value\n# Title\n"))
	require.Error(t, err)
	require.False(t, had)
	require.True(t, errors.Is(err, ErrMissingClosingDelimiter))
}

func TestSplit_CRLF_SplitsFrontmatterAndBody(t *testing.T) {
	fm, body, had, err := Split([]byte("---\r\nkey: value\r\n---\r\n# Title\r\n"))
	require.NoError(t, err)
	require.True(t, had)
	require.Equal(t, []byte("key: value\r\n"), fm)
	require.Equal(t, []byte("# Title\r\n"), body)
}

func TestParse_ExtractsAddressingFields(t *testing.T) {
	meta, body, err := Parse([]byte("---\ntitle: Chat API\nslug: api/chat\ndraft: true\n---\nHello\n"))
	require.NoError(t, err)
	require.Equal(t, "Chat API", meta.Title)
	require.Equal(t, "api/chat", meta.Slug)
	require.True(t, meta.Draft)
	require.Equal(t, []byte("Hello\n"), body)
}

func TestParse_InvalidYAML(t *testing.T) {
	_, _, err := Parse([]byte("---\ntitle: [unclosed\n---\n"))
	require.Error(t, err)
}

func TestFingerprint_StableAndContentSensitive(t *testing.T) {
	fields := map[string]any{"title": "Intro", "b": 1}
	a, err := Fingerprint(fields, []byte("body"))
	require.NoError(t, err)
	require.NotEmpty(t, a)

	again, err := Fingerprint(map[string]any{"b": 1, "title": "Intro"}, []byte("body"))
	require.NoError(t, err)
	require.Equal(t, a, again)

	changed, err := Fingerprint(fields, []byte("other body"))
	require.NoError(t, err)
	require.NotEqual(t, a, changed)
}
