package workday

import (
	"fmt"
	"strings"
	"time"

	"fichaje/internal/timeutil"
)

// InsufficientDataText is shown when there is nothing to summarize yet
const InsufficientDataText = "⚠️ No hay suficientes datos."

// RenderStarted announces a fresh clock-in
func RenderStarted(start, exit time.Time) string {
	return fmt.Sprintf("🟢 Jornada iniciada a las %s\n📌 Hora estimada de salida: %s",
		timeutil.FormatClock(start), timeutil.FormatClock(exit))
}

// RenderAlreadyStarted repeats the estimate for a day that was already running
func RenderAlreadyStarted(start, exit time.Time) string {
	return fmt.Sprintf("🟢 Jornada ya iniciada a las %s\n📌 Hora estimada de salida: %s",
		timeutil.FormatClock(start), timeutil.FormatClock(exit))
}

// RenderSummary renders worked time, estimated exit and, when present, the balance
func RenderSummary(s Summary) string {
	hours, minutes := s.WorkedClock()

	var b strings.Builder
	fmt.Fprintf(&b, "📊 Tiempo trabajado: %dh %dm\n", hours, minutes)
	fmt.Fprintf(&b, "📌 Hora estimada de salida: %s", timeutil.FormatClock(s.EstimatedExit))

	if s.Balance != nil {
		sign := "➖"
		if s.Balance.IsSurplus() {
			sign = "➕"
		}
		fmt.Fprintf(&b, "\n%s Tiempo %s: %d min", sign, s.Balance.Label(), s.Balance.Minutes())
	}
	return b.String()
}

// RenderBalanceLine is the closing line shown when the day ends
func RenderBalanceLine(b Balance) string {
	return fmt.Sprintf("📈 Has trabajado %d minutos de hora %s hoy.", b.Minutes(), b.Label())
}
