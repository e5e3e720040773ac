// Package watch keeps a site checked continuously: it re-runs the check when
// the configuration or content changes and on a schedule, and serves the
// latest result over HTTP.
package watch

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"git.home.luguber.info/inful/sitenav/internal/check"
	"git.home.luguber.info/inful/sitenav/internal/config"
	"git.home.luguber.info/inful/sitenav/internal/logfields"
)

const shutdownTimeout = 10 * time.Second

// Options configures a Runner.
type Options struct {
	// ConfigPath is reloaded before every check when set.
	ConfigPath string
	Service    *check.Service
	// MetricsHandler is served at the configured metrics path when set.
	MetricsHandler http.Handler
}

// Runner drives watch mode for one site.
type Runner struct {
	opts   Options
	state  *State
	flight singleflight.Group

	mu  sync.Mutex
	cfg *config.Config
	// watchedDir is the content directory the file watcher follows; it is
	// fixed once Run starts.
	watchedDir string
	watching   bool
}

// NewRunner creates a Runner starting from cfg.
func NewRunner(cfg *config.Config, opts Options) *Runner {
	if opts.Service == nil {
		opts.Service = check.NewService()
	}
	return &Runner{opts: opts, cfg: cfg, state: &State{}}
}

// State exposes the latest check status.
func (r *Runner) State() *State { return r.state }

func (r *Runner) config() *config.Config {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cfg
}

// Check reloads the configuration and runs one check. Concurrent calls share
// a single run. A configuration that fails to load is recorded as the
// latest error and the previous configuration stays in effect.
func (r *Runner) Check(ctx context.Context) {
	_, _, _ = r.flight.Do("check", func() (any, error) {
		if r.opts.ConfigPath != "" {
			cfg, err := config.Load(r.opts.ConfigPath)
			if err != nil {
				slog.Error("Failed to reload configuration", logfields.Path(r.opts.ConfigPath), logfields.Error(err))
				r.state.Set(nil, err)
				return nil, nil
			}
			r.mu.Lock()
			r.cfg = cfg
			watched, moved := r.watchedDir, r.watching && watchedContentDir(cfg) != r.watchedDir
			r.mu.Unlock()
			if moved {
				slog.Warn("Content directory changed; restart watch to follow it",
					slog.String("watched", watched), slog.String("configured", watchedContentDir(cfg)))
			}
		}

		result, err := r.opts.Service.Run(ctx, r.config())
		r.state.Set(result, err)
		return nil, nil
	})
}

// Run checks once, then serves HTTP, watches files and re-checks on schedule
// until ctx is canceled or a component fails.
func (r *Runner) Run(ctx context.Context) error {
	cfg := r.config()

	dir := watchedContentDir(cfg)
	fw, err := NewFileWatcher(r.opts.ConfigPath, dir, cfg.Watch.DebounceDuration(), r.Check)
	if err != nil {
		return err
	}
	r.follow(dir)

	var sched *Scheduler
	if interval := cfg.Watch.IntervalDuration(); interval > 0 {
		if sched, err = NewScheduler(); err != nil {
			_ = fw.Close()
			return err
		}
		if _, err := sched.SchedulePeriodicCheck(interval, func() { r.Check(ctx) }); err != nil {
			_ = sched.Stop()
			_ = fw.Close()
			return err
		}
	}

	var metricsHandler http.Handler
	if cfg.Metrics.Enabled {
		metricsHandler = r.opts.MetricsHandler
	}
	server := NewServer(cfg.Watch.Addr, NewRouter(r.state, metricsHandler, cfg.Metrics.Path))

	r.Check(ctx)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(server.Start)
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	g.Go(func() error { return fw.Run(gctx) })
	if sched != nil {
		sched.Start()
		g.Go(func() error {
			<-gctx.Done()
			return sched.Stop()
		})
	}
	return g.Wait()
}

// follow records the content directory the file watcher was started on.
func (r *Runner) follow(dir string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.watchedDir = dir
	r.watching = true
}

// watchedContentDir is the directory watched for cfg, empty for non-directory sources.
func watchedContentDir(cfg *config.Config) string {
	if cfg.Content.Source != config.SourceDir {
		return ""
	}
	return cfg.Content.Dir
}
