package commands

import (
	"fmt"
	"path/filepath"

	"git.home.luguber.info/inful/sitenav/internal/config"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force  bool   `help:"Overwrite existing configuration file"`
	Output string `short:"o" name:"output" help:"Output directory for generated config file"`
}

func (i *InitCmd) Run(g *Global, root *CLI) error {
	cfgPath := root.Config
	// An explicit output directory places the config there as "sitenav.yaml".
	if i.Output != "" {
		cfgPath = filepath.Join(i.Output, "sitenav.yaml")
	}
	out := g.stdout()
	_, _ = fmt.Fprintf(out, "Writing configuration to %s\n", cfgPath)
	if err := config.Init(cfgPath, i.Force); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(out, "Initialized successfully")
	return nil
}
