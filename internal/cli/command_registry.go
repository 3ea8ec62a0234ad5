package cli

import (
	"context"

	"fichaje/internal/dispatcher"
	"fichaje/internal/errors"
)

// Command represents a CLI command
type Command interface {
	Execute(ctx context.Context, args []string) error
}

// CommandRegistry manages all available commands
type CommandRegistry struct {
	commands map[string]Command
}

// NewCommandRegistry creates a new command registry
func NewCommandRegistry(app *App) *CommandRegistry {
	registry := &CommandRegistry{
		commands: make(map[string]Command),
	}

	registry.Register("start", NewDayCommand(app, dispatcher.ActionStartDay))
	registry.Register("pause", NewDayCommand(app, dispatcher.ActionPause))
	registry.Register("resume", NewDayCommand(app, dispatcher.ActionResume))
	registry.Register("end", NewDayCommand(app, dispatcher.ActionEndDay))
	registry.Register("summary", NewDayCommand(app, dispatcher.ActionSummary))
	registry.Register("balance", NewDayCommand(app, dispatcher.ActionBalance))
	registry.Register("edit", NewEditCommand(app))
	registry.Register("serve", NewServeCommand(app))

	return registry
}

// Register adds a command to the registry
func (r *CommandRegistry) Register(name string, command Command) {
	r.commands[name] = command
}

// Execute runs the specified command with the given arguments
func (r *CommandRegistry) Execute(ctx context.Context, commandName string, args []string) error {
	command, exists := r.commands[commandName]
	if !exists {
		return errors.NewInvalidInputError("command", commandName, "unknown command")
	}
	return command.Execute(ctx, args)
}

// GetUsage returns usage information for all commands
func (r *CommandRegistry) GetUsage() string {
	return `Usage: fichaje <command> [arguments] --user ID

Commands:
  serve                      Run the Telegram bot
  start                      Start today's workday
  pause                      Start a pause
  resume                     End the open pause
  end                        End today's workday
  summary [--balance]        Show today's summary
  edit <target> [N] HH:MM    Correct a recorded time (entrada, salida, pausa-inicio, pausa-fin)

Use "fichaje <command> --help" for more information about a command.`
}
