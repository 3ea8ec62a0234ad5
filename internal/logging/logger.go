// Package logging builds the structured slog logger shared by the bot, the
// dispatcher and the CLI.
package logging

import (
	"io"
	"log/slog"
	"math"
	"os"
	"strings"
)

// DebugEnabled returns true if debug mode is enabled via FICHAJE_DEBUG environment variable
func DebugEnabled() bool {
	return os.Getenv("FICHAJE_DEBUG") != ""
}

// Options controls handler selection and verbosity
type Options struct {
	Format  string // "json" or "text"
	Verbose bool
}

// New creates a logger writing to w. FICHAJE_DEBUG or Verbose lower the level to debug.
func New(w io.Writer, opts Options) *slog.Logger {
	level := slog.LevelInfo
	if opts.Verbose || DebugEnabled() {
		level = slog.LevelDebug
	}
	handlerOpts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch strings.ToLower(opts.Format) {
	case "text":
		handler = slog.NewTextHandler(w, handlerOpts)
	default:
		handler = slog.NewJSONHandler(w, handlerOpts)
	}
	return slog.New(handler)
}

// Discard returns a logger that drops every record
func Discard() *slog.Logger {
	// Equivalent of slog.DiscardHandler (Go 1.24+): writes nowhere and reports every level disabled
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(math.MaxInt)}))
}

// WithInteraction returns a child logger tagged with one chat interaction
func WithInteraction(l *slog.Logger, interactionID, userID, date string) *slog.Logger {
	return l.With("interaction_id", interactionID, "user_id", userID, "date", date)
}
