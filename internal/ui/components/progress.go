package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/nodaysoff/internal/ui/theme"
)

// CountdownBar shows how much of the current interval has elapsed.
type CountdownBar struct {
	Fraction float64 // elapsed share, clamped to [0, 1]
	Width    int
	Warn     bool // final seconds: the bar turns to the warning color
	Paused   bool
}

// View renders the bar at exactly Width cells (minimum 4).
func (b CountdownBar) View() string {
	width := max(b.Width, 4)
	filled := int(float64(width) * min(max(b.Fraction, 0), 1))
	empty := width - filled

	fill := theme.Secondary
	switch {
	case b.Paused:
		fill = theme.TextDim
	case b.Warn:
		fill = theme.Warning
	}

	return lipgloss.NewStyle().Background(fill).Render(strings.Repeat(" ", filled)) +
		lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", empty))
}

// Track renders one cell per interval: done, current and upcoming, followed
// by a "done/total" count.
func Track(done, total int, running bool) string {
	if total <= 0 {
		return ""
	}
	done = min(max(done, 0), total)

	var b strings.Builder
	doneStyle := lipgloss.NewStyle().Foreground(theme.Success)
	currentStyle := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true)
	todoStyle := lipgloss.NewStyle().Foreground(theme.Border)
	for i := 0; i < total; i++ {
		switch {
		case i < done:
			b.WriteString(doneStyle.Render("■"))
		case i == done && running:
			b.WriteString(currentStyle.Render("■"))
		default:
			b.WriteString(todoStyle.Render("□"))
		}
	}
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf("  %d/%d", done, total)))
	return b.String()
}
