package content

import (
	"context"
	"io/fs"
	"log/slog"
	"os"

	ferrors "git.home.luguber.info/inful/sitenav/internal/foundation/errors"
	"git.home.luguber.info/inful/sitenav/internal/logfields"
)

// LoadDir snapshots a content directory on disk.
func LoadDir(ctx context.Context, dir string, opts LoadOptions) (*Snapshot, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryFileSystem, "content directory unavailable").
			WithContext("path", dir).Build()
	}
	if !info.IsDir() {
		return nil, ferrors.FileSystemError("content path is not a directory").
			WithContext("path", dir).Build()
	}
	return LoadFS(ctx, os.DirFS(dir), dir, opts)
}

// LoadFS snapshots every page in fsys. source labels log lines.
func LoadFS(ctx context.Context, fsys fs.FS, source string, opts LoadOptions) (*Snapshot, error) {
	c := newCollector(source, opts)

	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if d.IsDir() {
			if p != "." && d.Name()[0] == '.' {
				return fs.SkipDir
			}
			return nil
		}
		if !opts.isPage(p) {
			return nil
		}
		raw, readErr := fs.ReadFile(fsys, p)
		if readErr != nil {
			return readErr
		}
		c.add(p, raw)
		return nil
	})
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryFileSystem, "walk content directory").
			WithContext("path", source).Build()
	}

	snap := c.snapshot()
	slog.Debug("Content directory indexed", logfields.Source(source), slog.Int("entries", snap.Len()))
	return snap, nil
}
