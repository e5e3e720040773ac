package commands

import (
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/sitenav/internal/version"
)

// Global carries state shared by every subcommand.
type Global struct {
	Logger *slog.Logger
	// Out receives command output. Defaults to os.Stdout.
	Out io.Writer
}

func (g *Global) stdout() io.Writer {
	if g == nil || g.Out == nil {
		return os.Stdout
	}
	return g.Out
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"sitenav.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Check CheckCmd `cmd:"" help:"Resolve the sidebar against site content and report missing or orphaned pages"`
	Tree  TreeCmd  `cmd:"" help:"Print the navigation tree built from the sidebar"`
	Index IndexCmd `cmd:"" help:"Scan the content directory into a SQLite index"`
	Watch WatchCmd `cmd:"" help:"Re-check on changes and serve the latest report over HTTP"`
	Last  LastCmd  `cmd:"" help:"Print the latest report published to NATS for this site"`
	Init  InitCmd  `cmd:"" help:"Write an example configuration file"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// New builds the kong parser for cli. Extra options are appended after the
// defaults so tests can override exit and output handling.
func New(cli *CLI, options ...kong.Option) (*kong.Kong, error) {
	opts := []kong.Option{
		kong.Name("sitenav"),
		kong.Description("Build the documentation sidebar and check it against site content."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	}
	return kong.New(cli, append(opts, options...)...)
}
