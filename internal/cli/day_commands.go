package cli

import (
	"context"
	"fmt"

	"fichaje/internal/dispatcher"
	"fichaje/internal/errors"
)

// DayCommand runs one button action for a user and prints the reply
type DayCommand struct {
	app    *App
	action dispatcher.Action
}

// NewDayCommand creates a handler for action
func NewDayCommand(app *App, action dispatcher.Action) *DayCommand {
	return &DayCommand{app: app, action: action}
}

// Execute runs the action. args holds exactly the user id.
func (c *DayCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("user", args, "exactly one user id is required")
	}
	resp, err := c.app.dispatcher.Handle(ctx, args[0], c.action)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.app.out, resp.Text)
	return nil
}

// EditCommand runs a manual edit for a user and prints the reply
type EditCommand struct {
	app *App
}

// NewEditCommand creates the edit handler
func NewEditCommand(app *App) *EditCommand {
	return &EditCommand{app: app}
}

// editTargets maps the CLI target names to edit fields
var editTargets = map[string]dispatcher.EditField{
	"entrada":      dispatcher.EditStart,
	"salida":       dispatcher.EditEnd,
	"pausa-inicio": dispatcher.EditPauseStart,
	"pausa-fin":    dispatcher.EditPauseEnd,
}

// Execute expects the user id, the target and the command arguments
func (c *EditCommand) Execute(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return errors.NewInvalidInputError("args", args, "usage: fichaje edit <entrada|salida|pausa-inicio|pausa-fin> [N] HH:MM --user ID")
	}
	field, ok := editTargets[args[1]]
	if !ok {
		return errors.NewInvalidInputError("target", args[1], "must be entrada, salida, pausa-inicio or pausa-fin")
	}
	resp, err := c.app.dispatcher.Edit(ctx, args[0], field, args[2:])
	if err != nil {
		return err
	}
	fmt.Fprintln(c.app.out, resp.Text)
	return nil
}
