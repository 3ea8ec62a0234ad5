package cli

import (
	"io"
	"log/slog"

	"fichaje/internal/bot"
	"fichaje/internal/config"
	"fichaje/internal/dispatcher"
	"fichaje/internal/logging"
	"fichaje/internal/repository"
	"fichaje/internal/timeutil"
	"fichaje/internal/workday"
)

// ClientFactory opens the chat transport for the serve command
type ClientFactory func(token string, debug bool) (bot.Client, error)

// App holds the dependencies shared by every command
type App struct {
	config     *config.Config
	store      repository.Store
	clock      timeutil.Clock
	dispatcher dispatcher.Dispatcher
	logger     *slog.Logger
	out        io.Writer
	registry   *CommandRegistry
	connect    ClientFactory
}

// NewApp opens the configured store and wires the dispatcher over it
func NewApp(cfg *config.Config, out, logOut io.Writer) (*App, error) {
	loc, err := cfg.GetLocation()
	if err != nil {
		return nil, err
	}
	store, err := config.CreateStore(cfg)
	if err != nil {
		return nil, err
	}
	logger := logging.New(logOut, logging.Options{
		Format:  cfg.Application.LogFormat,
		Verbose: cfg.Application.Verbose,
	})
	return NewAppWithStore(cfg, store, timeutil.NewSystemClock(loc), logger, out), nil
}

// NewAppWithStore wires an application over an already opened store
func NewAppWithStore(cfg *config.Config, store repository.Store, clock timeutil.Clock, logger *slog.Logger, out io.Writer) *App {
	loc, err := cfg.GetLocation()
	if err != nil {
		loc = clock.Now().Location()
	}
	calc := workday.NewCalculator(clock, cfg.Policy())
	app := &App{
		config: cfg,
		store:  store,
		clock:  clock,
		dispatcher: dispatcher.New(store, calc, clock, dispatcher.Options{
			Location: loc,
			Timeout:  cfg.Application.Timeout,
			Logger:   logger,
		}),
		logger:  logger,
		out:     out,
		connect: connectTelegram,
	}
	app.registry = NewCommandRegistry(app)
	return app
}

// WithClientFactory replaces the Telegram connection used by serve
func (a *App) WithClientFactory(connect ClientFactory) *App {
	a.connect = connect
	return a
}

// Close releases the store
func (a *App) Close() error {
	return a.store.Close()
}

func connectTelegram(token string, debug bool) (bot.Client, error) {
	api, err := bot.Connect(token, debug)
	if err != nil {
		return nil, err
	}
	return api, nil
}
