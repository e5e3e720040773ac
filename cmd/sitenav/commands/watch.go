package commands

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	prom "github.com/prometheus/client_golang/prometheus"
	promcollect "github.com/prometheus/client_golang/prometheus/collectors"

	"git.home.luguber.info/inful/sitenav/internal/check"
	"git.home.luguber.info/inful/sitenav/internal/config"
	"git.home.luguber.info/inful/sitenav/internal/metrics"
	"git.home.luguber.info/inful/sitenav/internal/resolve"
	"git.home.luguber.info/inful/sitenav/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	Addr   string `help:"HTTP listen address (overrides watch.addr)"`
	Strict bool   `help:"Evaluate every check with the strict policy"`
}

func (w *WatchCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}
	if w.Addr != "" {
		cfg.Watch.Addr = w.Addr
	}
	if w.Strict {
		cfg.Check.Policy = string(resolve.PolicyStrict)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	opts := []check.Option{}
	var handler http.Handler
	if cfg.Metrics.Enabled {
		reg := prom.NewRegistry()
		reg.MustRegister(promcollect.NewGoCollector(), promcollect.NewProcessCollector(promcollect.ProcessCollectorOpts{}))
		opts = append(opts, check.WithRecorder(metrics.NewPrometheusRecorder(reg)))
		handler = metrics.HTTPHandler(reg)
	}
	if publisher := connectPublisher(ctx, cfg); publisher != nil {
		defer func() { _ = publisher.Close() }()
		opts = append(opts, check.WithPublisher(publisher))
	}

	runner := watch.NewRunner(cfg, watch.Options{
		ConfigPath:     root.Config,
		Service:        check.NewService(opts...),
		MetricsHandler: handler,
	})
	slog.Info("Watching site", slog.String("addr", cfg.Watch.Addr), slog.String("config", root.Config))
	return runner.Run(ctx)
}
