package commands

import (
	"context"
	"fmt"

	"git.home.luguber.info/inful/sitenav/internal/check"
	"git.home.luguber.info/inful/sitenav/internal/config"
)

// IndexCmd implements the 'index' command.
type IndexCmd struct {
	Database string `short:"d" help:"SQLite database to write (defaults to content.database)"`
	Dir      string `help:"Content directory to scan (defaults to content.dir)"`
}

func (i *IndexCmd) Run(g *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}
	cc := cfg.Content
	if i.Dir != "" {
		cc.Dir = i.Dir
	}
	database := i.Database
	if database == "" {
		database = cc.Database
	}
	if database == "" {
		database = config.DefaultDatabase
	}

	n, err := check.Index(context.Background(), cc, database)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(g.stdout(), "Indexed %d pages from %s into %s\n", n, cc.Dir, database)
	return err
}
