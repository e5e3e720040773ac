package main

import (
	"log/slog"
	"os"

	"git.home.luguber.info/inful/sitenav/cmd/sitenav/commands"
	ferrors "git.home.luguber.info/inful/sitenav/internal/foundation/errors"
)

func main() {
	var cli commands.CLI
	parser, err := commands.New(&cli)
	if err != nil {
		panic(err)
	}
	kctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	err = kctx.Run(&commands.Global{Logger: slog.Default(), Out: os.Stdout}, &cli)
	os.Exit(ferrors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).Report(os.Stderr, err))
}
