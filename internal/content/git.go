package content

import (
	"context"
	"errors"
	"log/slog"
	"path"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/storage/memory"

	ferrors "git.home.luguber.info/inful/sitenav/internal/foundation/errors"
	"git.home.luguber.info/inful/sitenav/internal/logfields"
)

// GitOptions selects the revision and directory read from a repository.
type GitOptions struct {
	LoadOptions
	// Ref is a branch, tag or commit; empty means HEAD.
	Ref string
	// Subdir limits the snapshot to one directory of the tree.
	Subdir string
}

// CloneGit clones url into memory and snapshots its content. Ref is tried as
// a branch, then as a tag; a hex ref that matches neither falls back to a
// full clone resolved as a commit.
func CloneGit(ctx context.Context, url string, opts GitOptions) (*Snapshot, error) {
	slog.Info("Cloning content repository", logfields.Source(url), slog.String("ref", opts.Ref))

	var candidates []plumbing.ReferenceName
	if opts.Ref != "" {
		candidates = []plumbing.ReferenceName{
			plumbing.NewBranchReferenceName(opts.Ref),
			plumbing.NewTagReferenceName(opts.Ref),
		}
	} else {
		candidates = []plumbing.ReferenceName{""}
	}

	var err error
	for _, name := range candidates {
		var repo *git.Repository
		repo, err = shallowClone(ctx, url, name)
		if err == nil {
			// HEAD already points at the requested branch or tag.
			opts.Ref = ""
			return LoadGit(ctx, repo, url, opts)
		}
		if !errors.Is(err, git.NoMatchingRefSpecError{}) {
			break
		}
		slog.Debug("Reference not found on remote", logfields.Source(url), slog.String("ref", name.String()))
	}

	if opts.Ref != "" && hexRef(opts.Ref) && errors.Is(err, git.NoMatchingRefSpecError{}) {
		repo, fullErr := git.CloneContext(ctx, memory.NewStorage(), nil, &git.CloneOptions{
			URL:  url,
			Tags: git.AllTags,
		})
		if fullErr == nil {
			return LoadGit(ctx, repo, url, opts)
		}
		err = fullErr
	}

	return nil, ferrors.WrapError(err, ferrors.CategoryGit, "clone content repository").
		WithContext("url", url).WithContext("ref", opts.Ref).Build()
}

func shallowClone(ctx context.Context, url string, name plumbing.ReferenceName) (*git.Repository, error) {
	return git.CloneContext(ctx, memory.NewStorage(), nil, &git.CloneOptions{
		URL:           url,
		ReferenceName: name,
		Depth:         1,
		SingleBranch:  true,
		Tags:          git.NoTags,
	})
}

// hexRef reports whether ref could be a full or abbreviated commit hash.
func hexRef(ref string) bool {
	if len(ref) < 4 || len(ref) > 40 {
		return false
	}
	for _, c := range ref {
		if !strings.ContainsRune("0123456789abcdefABCDEF", c) {
			return false
		}
	}
	return true
}

// LoadGit snapshots the pages of one commit tree in repo. source labels log lines.
func LoadGit(ctx context.Context, repo *git.Repository, source string, opts GitOptions) (*Snapshot, error) {
	hash, err := resolveRevision(repo, opts.Ref)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryGit, "resolve content revision").
			WithContext("ref", opts.Ref).Build()
	}

	commit, err := repo.CommitObject(hash)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryGit, "read commit").
			WithContext("hash", hash.String()).Build()
	}
	tree, err := commit.Tree()
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryGit, "read commit tree").Build()
	}

	subdir := strings.Trim(path.Clean("/"+opts.Subdir), "/")
	if subdir != "" {
		tree, err = tree.Tree(subdir)
		if err != nil {
			return nil, ferrors.WrapError(err, ferrors.CategoryGit, "content directory not found in tree").
				WithContext("subdir", subdir).Build()
		}
	}

	c := newCollector(source, opts.LoadOptions)
	err = tree.Files().ForEach(func(f *object.File) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if !opts.isPage(f.Name) || hiddenPath(f.Name) {
			return nil
		}
		body, readErr := f.Contents()
		if readErr != nil {
			return readErr
		}
		c.add(f.Name, []byte(body))
		return nil
	})
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryGit, "walk commit tree").Build()
	}

	snap := c.snapshot()
	slog.Debug("Content revision indexed",
		logfields.Source(source), slog.String("commit", hash.String()), slog.Int("entries", snap.Len()))
	return snap, nil
}

func resolveRevision(repo *git.Repository, ref string) (plumbing.Hash, error) {
	if ref == "" {
		head, err := repo.Head()
		if err != nil {
			return plumbing.ZeroHash, err
		}
		return head.Hash(), nil
	}
	h, err := repo.ResolveRevision(plumbing.Revision(ref))
	if err != nil {
		return plumbing.ZeroHash, err
	}
	return *h, nil
}

func hiddenPath(p string) bool {
	for _, seg := range strings.Split(p, "/") {
		if strings.HasPrefix(seg, ".") {
			return true
		}
	}
	return false
}
