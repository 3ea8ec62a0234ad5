package dispatcher

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownAction is returned for a trigger outside the Action set
var ErrUnknownAction = errors.New("unknown action")

// Action is a button-press transition on the day record
type Action int

const (
	ActionStartDay Action = iota + 1
	ActionPause
	ActionResume
	ActionEndDay
	ActionSummary
	// ActionBalance is a summary that always includes the balance
	ActionBalance
)

var actionNames = map[Action]string{
	ActionStartDay: "start_day",
	ActionPause:    "pause",
	ActionResume:   "resume",
	ActionEndDay:   "end_day",
	ActionSummary:  "summary",
	ActionBalance:  "balance",
}

// Actions lists every action in declaration order
func Actions() []Action {
	return []Action{ActionStartDay, ActionPause, ActionResume, ActionEndDay, ActionSummary, ActionBalance}
}

// String returns the wire name used as button callback data
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return fmt.Sprintf("action(%d)", int(a))
}

// ParseAction maps a wire name to its Action
func ParseAction(s string) (Action, error) {
	s = strings.TrimSpace(s)
	for action, name := range actionNames {
		if name == s {
			return action, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAction, s)
}

// EditField is the target of a manual edit command
type EditField int

const (
	EditStart EditField = iota + 1
	EditEnd
	EditPauseStart
	EditPauseEnd
)

type editCommand struct {
	command     string
	usage       string
	description string
}

var editCommands = map[EditField]editCommand{
	EditStart:      {"editar_entrada", "/editar_entrada HH:MM", "Editar hora de entrada"},
	EditEnd:        {"editar_salida", "/editar_salida HH:MM", "Editar hora de salida"},
	EditPauseStart: {"editar_pausa_inicio", "/editar_pausa_inicio N HH:MM", "Editar pausa inicio"},
	EditPauseEnd:   {"editar_pausa_fin", "/editar_pausa_fin N HH:MM", "Editar pausa fin"},
}

// EditFields lists every edit target in declaration order
func EditFields() []EditField {
	return []EditField{EditStart, EditEnd, EditPauseStart, EditPauseEnd}
}

// Command is the slash command name without the leading slash
func (f EditField) Command() string {
	return editCommands[f].command
}

// Usage is the correct invocation shown on an argument count error
func (f EditField) Usage() string {
	return editCommands[f].usage
}

// Description is the menu text registered with the chat transport
func (f EditField) Description() string {
	return editCommands[f].description
}

// IsPause is true for the edits that address a pause by number
func (f EditField) IsPause() bool {
	return f == EditPauseStart || f == EditPauseEnd
}

// String returns the command name
func (f EditField) String() string {
	if c, ok := editCommands[f]; ok {
		return c.command
	}
	return fmt.Sprintf("edit(%d)", int(f))
}

// ParseEditField maps a slash command name, with or without the slash, to its field
func ParseEditField(command string) (EditField, error) {
	command = strings.TrimPrefix(strings.TrimSpace(command), "/")
	for field, c := range editCommands {
		if c.command == command {
			return field, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAction, command)
}
