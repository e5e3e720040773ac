package watch

import (
	"context"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	ferrors "git.home.luguber.info/inful/sitenav/internal/foundation/errors"
	"git.home.luguber.info/inful/sitenav/internal/logfields"
)

// FileWatcher watches the configuration file and the content tree and calls
// onChange once per burst of changes.
type FileWatcher struct {
	watcher    *fsnotify.Watcher
	configPath string
	contentDir string
	debounce   time.Duration
	onChange   func(ctx context.Context)
}

// NewFileWatcher creates a watcher. Either path may be empty.
func NewFileWatcher(configPath, contentDir string, debounce time.Duration, onChange func(ctx context.Context)) (*FileWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryRuntime, "failed to create file watcher").Build()
	}

	fw := &FileWatcher{
		watcher:  w,
		debounce: debounce,
		onChange: onChange,
	}
	if configPath != "" {
		if fw.configPath, err = filepath.Abs(configPath); err != nil {
			_ = w.Close()
			return nil, ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to resolve config path").Build()
		}
	}
	if contentDir != "" {
		if fw.contentDir, err = filepath.Abs(contentDir); err != nil {
			_ = w.Close()
			return nil, ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to resolve content dir").Build()
		}
	}
	return fw, nil
}

// Close releases the underlying watcher. Run closes it on return.
func (fw *FileWatcher) Close() error {
	return fw.watcher.Close()
}

// Run registers the watches and blocks until ctx is done.
func (fw *FileWatcher) Run(ctx context.Context) error {
	defer func() {
		if err := fw.Close(); err != nil {
			slog.Error("Error closing file watcher", logfields.Error(err))
		}
	}()

	// Watching the directory survives editors that replace the file on save.
	if fw.configPath != "" {
		if err := fw.watcher.Add(filepath.Dir(fw.configPath)); err != nil {
			return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to watch config directory").
				WithContext("path", filepath.Dir(fw.configPath)).Build()
		}
	}
	if fw.contentDir != "" {
		if err := fw.addTree(fw.contentDir); err != nil {
			return err
		}
	}
	slog.Info("Starting file watcher",
		logfields.Path(fw.configPath),
		slog.String("content_dir", fw.contentDir))

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return nil
			}
			if !fw.relevant(event) {
				continue
			}
			slog.Debug("Change detected", logfields.Path(event.Name), slog.String("op", event.Op.String()))
			if event.Has(fsnotify.Create) && fw.underContent(event.Name) {
				// New directories inside the content tree need their own watch.
				_ = fw.addTree(event.Name)
			}
			if timer == nil {
				timer = time.NewTimer(fw.debounce)
			} else {
				timer.Reset(fw.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			fw.onChange(ctx)

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("File watcher error", logfields.Error(err))
		}
	}
}

// addTree watches root and every non-hidden directory below it. Files are
// ignored, so calling it on a file path is harmless.
func (fw *FileWatcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to watch content dir").
					WithContext("path", root).Build()
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := fw.watcher.Add(path); err != nil {
			return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to watch directory").
				WithContext("path", path).Build()
		}
		return nil
	})
}

func (fw *FileWatcher) relevant(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	name := filepath.Clean(event.Name)
	if fw.configPath != "" && name == fw.configPath {
		return true
	}
	return fw.underContent(name) && !strings.HasPrefix(filepath.Base(name), ".")
}

func (fw *FileWatcher) underContent(name string) bool {
	if fw.contentDir == "" {
		return false
	}
	rel, err := filepath.Rel(fw.contentDir, name)
	return err == nil && rel != "." && !strings.HasPrefix(rel, "..")
}
