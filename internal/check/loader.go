package check

import (
	"context"
	"os"

	"git.home.luguber.info/inful/sitenav/internal/config"
	"git.home.luguber.info/inful/sitenav/internal/content"
	ferrors "git.home.luguber.info/inful/sitenav/internal/foundation/errors"
)

// LoadContent snapshots the content source selected by cc.
func LoadContent(ctx context.Context, cc config.ContentConfig) (*content.Snapshot, error) {
	opts := content.LoadOptions{IncludeDrafts: cc.IncludeDrafts, Extensions: cc.Extensions}

	switch cc.Source {
	case config.SourceSQLite:
		if _, err := os.Stat(cc.Database); err != nil {
			return nil, ferrors.WrapError(err, ferrors.CategoryFileSystem, "content index not found (run `sitenav index` first)").
				WithContext("path", cc.Database).Build()
		}
		store, err := content.OpenSQLite(cc.Database)
		if err != nil {
			return nil, err
		}
		defer func() { _ = store.Close() }()
		return store.Load(ctx)

	case config.SourceGit:
		if cc.Git == nil {
			return nil, ferrors.ConfigError("content.git is required for the git source").Build()
		}
		return content.CloneGit(ctx, cc.Git.URL, content.GitOptions{
			LoadOptions: opts,
			Ref:         cc.Git.Ref,
			Subdir:      cc.Git.Subdir,
		})

	case config.SourceDir:
		return content.LoadDir(ctx, cc.Dir, opts)
	}
	return nil, ferrors.ConfigError("unsupported content source").
		WithContext("source", string(cc.Source)).Build()
}

// Index scans the content directory of cc and replaces the SQLite index at
// database with the result. It returns the number of indexed pages.
func Index(ctx context.Context, cc config.ContentConfig, database string) (int, error) {
	if cc.Dir == "" {
		return 0, ferrors.ConfigError("content.dir is required to build an index").Build()
	}
	snap, err := content.LoadDir(ctx, cc.Dir, content.LoadOptions{
		IncludeDrafts: cc.IncludeDrafts,
		Extensions:    cc.Extensions,
	})
	if err != nil {
		return 0, err
	}

	store, err := content.OpenSQLite(database)
	if err != nil {
		return 0, err
	}
	defer func() { _ = store.Close() }()

	if err := store.Save(ctx, snap); err != nil {
		return 0, err
	}
	return snap.Len(), nil
}
