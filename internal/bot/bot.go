// Package bot binds the dispatcher to Telegram: button presses arrive as
// callback queries, edits and menus as slash commands.
package bot

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"fichaje/internal/dispatcher"
	appErrors "fichaje/internal/errors"
	"fichaje/internal/logging"
	"fichaje/internal/timeutil"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
)

const (
	commandStart   = "start"
	commandHelp    = "help"
	commandSummary = "resumen"
)

// Client is the part of the Telegram API the bot uses. *tgbotapi.BotAPI satisfies it.
type Client interface {
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	StopReceivingUpdates()
}

var _ Client = (*tgbotapi.BotAPI)(nil)

// Options tunes the bot
type Options struct {
	Workers     int
	PollTimeout time.Duration
	Logger      *slog.Logger
	Clock       timeutil.Clock
}

// Bot pulls updates from Telegram and answers them through the dispatcher
type Bot struct {
	client      Client
	dispatcher  dispatcher.Dispatcher
	workers     int
	pollTimeout time.Duration
	logger      *slog.Logger
	clock       timeutil.Clock
}

// Connect authenticates against the Telegram API
func Connect(token string, debug bool) (*tgbotapi.BotAPI, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, appErrors.NewTransportError("connect", err)
	}
	api.Debug = debug
	return api, nil
}

// New creates a bot over client
func New(client Client, d dispatcher.Dispatcher, opts Options) *Bot {
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	clock := opts.Clock
	if clock == nil {
		clock = timeutil.NewSystemClock(nil)
	}
	return &Bot{
		client:      client,
		dispatcher:  d,
		workers:     workers,
		pollTimeout: opts.PollTimeout,
		logger:      logger,
		clock:       clock,
	}
}

// RegisterCommands publishes the command menu
func (b *Bot) RegisterCommands() error {
	if _, err := b.client.Request(tgbotapi.NewSetMyCommands(Commands()...)); err != nil {
		return appErrors.NewTransportError("set my commands", err)
	}
	return nil
}

// Run long-polls for updates until ctx is cancelled. Updates from one user
// always go to the same worker so they are answered in arrival order.
func (b *Bot) Run(ctx context.Context) error {
	if err := b.RegisterCommands(); err != nil {
		b.logger.Warn("failed to register commands", "error", err)
	}

	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = int(b.pollTimeout / time.Second)
	updates := b.client.GetUpdatesChan(cfg)

	shards := make([]chan tgbotapi.Update, b.workers)
	var wg sync.WaitGroup
	for i := range shards {
		shards[i] = make(chan tgbotapi.Update, 16)
		wg.Add(1)
		go func(in <-chan tgbotapi.Update) {
			defer wg.Done()
			for update := range in {
				b.process(ctx, update)
			}
		}(shards[i])
	}

	b.logger.Info("bot started", "workers", b.workers, "poll_timeout", b.pollTimeout)

	defer func() {
		for _, shard := range shards {
			close(shard)
		}
		wg.Wait()
		b.logger.Info("bot stopped")
	}()

	for {
		select {
		case <-ctx.Done():
			b.client.StopReceivingUpdates()
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			user := senderID(update)
			shards[user%int64(b.workers)] <- update
		}
	}
}

// process answers update unless the bot is shutting down. Updates still
// queued at shutdown are dropped without a reply.
func (b *Bot) process(ctx context.Context, update tgbotapi.Update) {
	if ctx.Err() != nil {
		b.logger.Debug("dropping update after shutdown", "update_id", update.UpdateID)
		return
	}
	b.HandleUpdate(ctx, update)
}

// HandleUpdate answers a single update
func (b *Bot) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil && update.Message.IsCommand():
		b.handleCommand(ctx, update.Message)
	default:
		b.logger.Debug("ignoring update", "update_id", update.UpdateID)
	}
}

func (b *Bot) handleCallback(ctx context.Context, query *tgbotapi.CallbackQuery) {
	if query.From == nil {
		return
	}
	userID := strconv.FormatInt(query.From.ID, 10)
	logger := b.interactionLogger(userID).With("callback", query.Data)

	if _, err := b.client.Request(tgbotapi.NewCallback(query.ID, "")); err != nil {
		logger.Warn("failed to acknowledge callback", "error", err)
	}

	var text string
	action, err := dispatcher.ParseAction(query.Data)
	if err != nil {
		logger.Info("unknown action")
		text = dispatcher.UnknownActionText
	} else {
		text = b.dispatch(logger, func() (dispatcher.Response, error) {
			return b.dispatcher.Handle(ctx, userID, action)
		})
	}

	if query.Message == nil {
		b.send(logger, tgbotapi.NewMessage(query.From.ID, text), true)
		return
	}
	edit := tgbotapi.NewEditMessageTextAndMarkup(query.Message.Chat.ID, query.Message.MessageID, text, ControlKeyboard())
	if _, err := b.client.Request(edit); err != nil {
		// Telegram rejects edits that leave the message unchanged
		if strings.Contains(err.Error(), "message is not modified") {
			logger.Debug("message unchanged")
			return
		}
		logger.Error("failed to edit message", "error", appErrors.NewTransportError("edit message", err))
	}
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	if msg.From == nil {
		return
	}
	userID := strconv.FormatInt(msg.From.ID, 10)
	command := msg.Command()
	logger := b.interactionLogger(userID).With("command", command)

	switch command {
	case commandStart:
		b.send(logger, tgbotapi.NewMessage(msg.Chat.ID, dispatcher.GreetingText), true)
	case commandHelp:
		b.send(logger, tgbotapi.NewMessage(msg.Chat.ID, dispatcher.HelpText()), false)
	case commandSummary:
		text := b.dispatch(logger, func() (dispatcher.Response, error) {
			return b.dispatcher.Handle(ctx, userID, dispatcher.ActionBalance)
		})
		b.send(logger, tgbotapi.NewMessage(msg.Chat.ID, text), true)
	default:
		field, err := dispatcher.ParseEditField(command)
		if err != nil {
			logger.Debug("ignoring unknown command")
			return
		}
		args := strings.Fields(msg.CommandArguments())
		text := b.dispatch(logger, func() (dispatcher.Response, error) {
			return b.dispatcher.Edit(ctx, userID, field, args)
		})
		b.send(logger, tgbotapi.NewMessage(msg.Chat.ID, text), false)
	}
}

// dispatch runs one dispatcher call and returns the text to show, logging failures
func (b *Bot) dispatch(logger *slog.Logger, call func() (dispatcher.Response, error)) string {
	start := time.Now()
	resp, err := call()
	if err != nil {
		if appErrors.ShouldLogError(err) {
			logger.Error("interaction failed", "error", err, "error_code", appErrors.GetErrorCode(err))
		}
		if resp.Text == "" {
			resp.Text = appErrors.GetUserMessage(err)
		}
		return resp.Text
	}
	logger.Debug("interaction completed", "changed", resp.Changed, "elapsed", time.Since(start))
	return resp.Text
}

func (b *Bot) send(logger *slog.Logger, msg tgbotapi.MessageConfig, withKeyboard bool) {
	if withKeyboard {
		msg.ReplyMarkup = ControlKeyboard()
	}
	if _, err := b.client.Send(msg); err != nil {
		logger.Error("failed to send message", "error", appErrors.NewTransportError("send message", err))
	}
}

func (b *Bot) interactionLogger(userID string) *slog.Logger {
	return logging.WithInteraction(b.logger, uuid.NewString(), userID, timeutil.TodayKey(b.clock))
}

func senderID(update tgbotapi.Update) int64 {
	var id int64
	switch {
	case update.CallbackQuery != nil && update.CallbackQuery.From != nil:
		id = update.CallbackQuery.From.ID
	case update.Message != nil && update.Message.From != nil:
		id = update.Message.From.ID
	}
	if id < 0 {
		id = -id
	}
	return id
}
