package commands

import (
	"context"

	"git.home.luguber.info/inful/sitenav/internal/check"
	"git.home.luguber.info/inful/sitenav/internal/config"
	"git.home.luguber.info/inful/sitenav/internal/nav"
	"git.home.luguber.info/inful/sitenav/internal/report"
	"git.home.luguber.info/inful/sitenav/internal/resolve"
)

// TreeCmd implements the 'tree' command.
type TreeCmd struct {
	Format  string `short:"f" default:"text" help:"Output format (text or json)" enum:"text,json"`
	Resolve bool   `short:"r" help:"Load content and mark each item resolved or missing"`
}

func (t *TreeCmd) Run(g *Global, root *CLI) error {
	format, err := report.ParseFormat(t.Format)
	if err != nil {
		return err
	}
	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}
	tree, err := nav.Build(cfg.Sidebar)
	if err != nil {
		return err
	}

	var rep *resolve.Report
	if t.Resolve {
		snap, err := check.LoadContent(context.Background(), cfg.Content)
		if err != nil {
			return err
		}
		rep = resolve.Resolve(tree, snap)
	}
	return report.TreeFormatter{Format: format}.Write(g.stdout(), tree, rep)
}
