package dispatcher

import (
	"strings"
)

// User-facing texts
const (
	UnknownActionText = "❓ Acción no reconocida."
	PauseStartedText  = "⏸ Pausa iniciada."
	AlreadyPausedText = "⚠️ Ya estás en pausa."
	PauseEndedText    = "▶️ Pausa finalizada."
	NoActivePauseText = "⚠️ No hay pausa activa."
	DayEndedText      = "🔴 Jornada finalizada."
	EditAppliedText   = "✏️ Actualizado correctamente."
	GreetingText      = "¡Hola! Usa los botones para controlar tu jornada o /help para ver los comandos disponibles."
)

var helpDescriptions = map[EditField]string{
	EditStart:      "Cambiar hora de entrada",
	EditEnd:        "Cambiar hora de salida",
	EditPauseStart: "Cambiar inicio de la pausa número N",
	EditPauseEnd:   "Cambiar fin de la pausa número N",
}

// HelpText lists the manual edit commands
func HelpText() string {
	var b strings.Builder
	b.WriteString("Aquí tienes las instrucciones para editar tus registros manualmente:\n\n")
	b.WriteString("✏️ Comandos disponibles:\n")
	for _, field := range EditFields() {
		b.WriteString(field.Usage() + " - " + helpDescriptions[field] + "\n")
	}
	b.WriteString("\n📌 N es el índice de la pausa (1 = primera, 2 = segunda, etc.)")
	return b.String()
}
