package commands

import (
	"context"
	"log/slog"

	"git.home.luguber.info/inful/sitenav/internal/check"
	"git.home.luguber.info/inful/sitenav/internal/config"
	"git.home.luguber.info/inful/sitenav/internal/logfields"
	"git.home.luguber.info/inful/sitenav/internal/notify"
	"git.home.luguber.info/inful/sitenav/internal/report"
	"git.home.luguber.info/inful/sitenav/internal/resolve"
)

// CheckCmd implements the 'check' command.
type CheckCmd struct {
	Format string `short:"f" default:"text" help:"Output format (text or json)" enum:"text,json"`
	Strict bool   `help:"Fail when any navigation entry references missing content"`
}

// Run executes one check and prints the report. The returned error carries
// the policy verdict, so a strict run with missing content exits non-zero.
func (c *CheckCmd) Run(g *Global, root *CLI) error {
	format, err := report.ParseFormat(c.Format)
	if err != nil {
		return err
	}
	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}
	if c.Strict {
		cfg.Check.Policy = string(resolve.PolicyStrict)
	}

	ctx := context.Background()
	var opts []check.Option
	if publisher := connectPublisher(ctx, cfg); publisher != nil {
		defer func() { _ = publisher.Close() }()
		opts = append(opts, check.WithPublisher(publisher))
	}

	result, verdict := check.NewService(opts...).Run(ctx, cfg)
	if result.Report == nil {
		return verdict
	}
	if err := report.NewFormatter(format).Format(g.stdout(), result); err != nil {
		return err
	}
	return verdict
}

// connectPublisher returns nil when notifications are disabled or the broker
// cannot be reached. Reporting is best effort and never blocks a check.
func connectPublisher(ctx context.Context, cfg *config.Config) notify.Publisher {
	if cfg.Notify == nil {
		return nil
	}
	publisher, err := notify.NewNATSPublisher(ctx, cfg.Notify)
	if err != nil {
		slog.Warn("Report notifications disabled", logfields.Error(err))
		return nil
	}
	return publisher
}
