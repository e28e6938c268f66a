package harness

import "github.com/charmbracelet/lipgloss"

// Semantic colors shared with the rest of the toolchain's CLI surfaces.
var (
	successColor = lipgloss.Color("#8BC34A") // Lime Green
	failColor    = lipgloss.Color("#e53935") // Red
	warnColor    = lipgloss.Color("#FFC107") // Yellow
	infoColor    = lipgloss.Color("#2196F3") // Blue
)

var (
	passStyle   = lipgloss.NewStyle().Foreground(successColor).Bold(true)
	failStyle   = lipgloss.NewStyle().Foreground(failColor).Bold(true)
	warnStyle   = lipgloss.NewStyle().Foreground(warnColor).Bold(true)
	headerStyle = lipgloss.NewStyle().Bold(true)
	detailStyle = lipgloss.NewStyle().Foreground(infoColor)
)

// passMark renders the per-check verdict.
func passMark(ok bool) string {
	if ok {
		return passStyle.Render("✅ PASS")
	}
	return failStyle.Render("❌ FAIL")
}

// okMark renders a single diagnostic boolean.
func okMark(ok bool) string {
	if ok {
		return "✅"
	}
	return "❌"
}
