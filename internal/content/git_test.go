package content

import (
	"context"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/storage/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/sitenav/internal/foundation/errors"
	"git.home.luguber.info/inful/sitenav/internal/util/sets"
)

func commitPages(t *testing.T, pages map[string]string) *git.Repository {
	t.Helper()
	fs := memfs.New()
	repo, err := git.Init(memory.NewStorage(), fs)
	require.NoError(t, err)
	wt, err := repo.Worktree()
	require.NoError(t, err)

	for rel, body := range pages {
		require.NoError(t, util.WriteFile(fs, rel, []byte(body), 0o644))
		_, err := wt.Add(rel)
		require.NoError(t, err)
	}
	_, err = wt.Commit("docs", &git.CommitOptions{
		Author: &object.Signature{Name: "docs", Email: "docs@example.com", When: time.Unix(1700000000, 0)},
	})
	require.NoError(t, err)
	return repo
}

func TestLoadGit_Head(t *testing.T) {
	repo := commitPages(t, map[string]string{
		"src/content/docs/introduction.md":      "# Introduction\n",
		"src/content/docs/guides/quickstart.md": "---\ntitle: Quick Start\n---\n",
		"README.md":                             "# Readme\n",
	})

	snap, err := LoadGit(context.Background(), repo, "memory", GitOptions{Subdir: "src/content/docs"})
	require.NoError(t, err)

	assert.Equal(t, []string{"guides/quickstart", "introduction"}, sets.Sorted(snap.AllSlugs()))
	qs, _ := snap.Get("guides/quickstart")
	assert.Equal(t, "Quick Start", qs.Title)
	assert.Equal(t, "guides/quickstart.md", qs.Path)
}

func TestLoadGit_WholeTree(t *testing.T) {
	repo := commitPages(t, map[string]string{"a.md": "# A\n", ".github/b.md": "# B\n"})

	snap, err := LoadGit(context.Background(), repo, "memory", GitOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, sets.Sorted(snap.AllSlugs()))
}

func TestLoadGit_MissingSubdir(t *testing.T) {
	repo := commitPages(t, map[string]string{"a.md": "# A\n"})

	_, err := LoadGit(context.Background(), repo, "memory", GitOptions{Subdir: "docs"})
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryGit))
}

func TestLoadGit_UnknownRef(t *testing.T) {
	repo := commitPages(t, map[string]string{"a.md": "# A\n"})

	_, err := LoadGit(context.Background(), repo, "memory", GitOptions{Ref: "does-not-exist"})
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryGit))
}

// releasedRepo creates an on-disk repository with two commits on master and an
// annotated tag v1.0.0 on the first. It returns the path and the first commit.
func releasedRepo(t *testing.T) (string, plumbing.Hash) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git binary required for local clones")
	}
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	wt, err := repo.Worktree()
	require.NoError(t, err)

	sig := &object.Signature{Name: "docs", Email: "docs@example.com", When: time.Unix(1700000000, 0)}
	commit := func(rel, body string) plumbing.Hash {
		require.NoError(t, util.WriteFile(wt.Filesystem, rel, []byte(body), 0o644))
		_, err := wt.Add(rel)
		require.NoError(t, err)
		h, err := wt.Commit("docs: "+rel, &git.CommitOptions{Author: sig})
		require.NoError(t, err)
		return h
	}

	first := commit("docs/intro.md", "# Intro\n")
	_, err = repo.CreateTag("v1.0.0", first, &git.CreateTagOptions{Tagger: sig, Message: "v1.0.0"})
	require.NoError(t, err)
	commit("docs/changelog.md", "# Changelog\n")
	return dir, first
}

func TestCloneGit_Refs(t *testing.T) {
	dir, first := releasedRepo(t)
	url := filepath.ToSlash(dir)

	tests := []struct {
		name string
		ref  string
		want []string
	}{
		{"head", "", []string{"changelog", "intro"}},
		{"branch", "master", []string{"changelog", "intro"}},
		{"tag", "v1.0.0", []string{"intro"}},
		{"commit", first.String(), []string{"intro"}},
		{"short commit", first.String()[:8], []string{"intro"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap, err := CloneGit(context.Background(), url, GitOptions{Ref: tt.ref, Subdir: "docs"})
			require.NoError(t, err)
			assert.Equal(t, tt.want, sets.Sorted(snap.AllSlugs()))
		})
	}
}

func TestCloneGit_UnknownRef(t *testing.T) {
	dir, _ := releasedRepo(t)

	for _, ref := range []string{"release/9", "deadbeef"} {
		_, err := CloneGit(context.Background(), filepath.ToSlash(dir), GitOptions{Ref: ref})
		require.Error(t, err, ref)
		assert.True(t, ferrors.HasCategory(err, ferrors.CategoryGit), ref)
	}
}

func TestHexRef(t *testing.T) {
	assert.True(t, hexRef("deadbeef"))
	assert.True(t, hexRef("0123456789abcdef0123456789ABCDEF01234567"))
	assert.False(t, hexRef("abc"))
	assert.False(t, hexRef("v1.0.0"))
	assert.False(t, hexRef("main"))
}
