package cli

import (
	"context"

	"fichaje/internal/bot"
)

// ServeCommand runs the Telegram bot until the context is cancelled
type ServeCommand struct {
	app *App
}

// NewServeCommand creates the serve handler
func NewServeCommand(app *App) *ServeCommand {
	return &ServeCommand{app: app}
}

// Execute connects to Telegram and serves updates
func (c *ServeCommand) Execute(ctx context.Context, args []string) error {
	cfg := c.app.config
	if err := cfg.ValidateForBot(); err != nil {
		return err
	}

	client, err := c.app.connect(cfg.Bot.Token, cfg.Bot.Debug)
	if err != nil {
		return err
	}

	b := bot.New(client, c.app.dispatcher, bot.Options{
		Workers:     cfg.Bot.Workers,
		PollTimeout: cfg.Bot.PollTimeout,
		Logger:      c.app.logger,
		Clock:       c.app.clock,
	})
	return b.Run(ctx)
}
