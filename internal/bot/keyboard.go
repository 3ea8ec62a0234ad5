package bot

import (
	"fichaje/internal/dispatcher"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// ControlKeyboard is the persistent set of day controls attached to replies
func ControlKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🟢 Iniciar", dispatcher.ActionStartDay.String()),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⏸ Pausa", dispatcher.ActionPause.String()),
			tgbotapi.NewInlineKeyboardButtonData("▶️ Reanudar", dispatcher.ActionResume.String()),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔴 Salir", dispatcher.ActionEndDay.String()),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📊 Resumen", dispatcher.ActionSummary.String()),
		),
	)
}

// Commands is the command menu registered at startup
func Commands() []tgbotapi.BotCommand {
	commands := []tgbotapi.BotCommand{
		{Command: commandStart, Description: "Mostrar menú de fichaje"},
		{Command: commandHelp, Description: "Instrucciones de uso"},
		{Command: commandSummary, Description: "Resumen del día con saldo"},
	}
	for _, field := range dispatcher.EditFields() {
		commands = append(commands, tgbotapi.BotCommand{Command: field.Command(), Description: field.Description()})
	}
	return commands
}
