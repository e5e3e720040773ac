package commands

import (
	"context"
	"encoding/json"

	"git.home.luguber.info/inful/sitenav/internal/config"
	ferrors "git.home.luguber.info/inful/sitenav/internal/foundation/errors"
	"git.home.luguber.info/inful/sitenav/internal/notify"
)

// LastCmd implements the 'last' command.
type LastCmd struct{}

// Run prints the latest report event stored in the NATS KV bucket.
func (l *LastCmd) Run(g *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}
	if cfg.Notify == nil {
		return ferrors.ConfigError("notify is not configured").WithContext("field", "notify").Build()
	}

	ctx := context.Background()
	publisher, err := notify.NewNATSPublisher(ctx, cfg.Notify)
	if err != nil {
		return err
	}
	defer func() { _ = publisher.Close() }()

	event, err := publisher.Latest(ctx, cfg.Site.Title)
	if err != nil {
		return err
	}
	if event == nil {
		return ferrors.NewError(ferrors.CategoryNotFound, "no report published yet").
			WithContext("site", cfg.Site.Title).Build()
	}
	encoder := json.NewEncoder(g.stdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(event)
}
