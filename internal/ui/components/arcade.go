package components

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/nodaysoff/internal/ui/theme"
)

// maxContentWidth fits the block-letter banner plus padding.
const maxContentWidth = 64

// ContentWidth returns the inner width every workout screen lays out to,
// so cards, bars and lists line up.
func ContentWidth(frameWidth int) int {
	// Leave room for the frame border (2) and padding (4).
	return min(max(frameWidth-6, 20), maxContentWidth)
}

// CabinetFrame wraps the home screen in a double border filling the given
// area, content centered. Borders count toward the size.
func CabinetFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// Panel is a rounded card at the content width with an optional heading.
type Panel struct {
	Heading string
	Body    string
	Accent  color.Color // border color; nil means theme.Border
}

// Render draws the panel cw cells wide.
func (p Panel) Render(cw int) string {
	accent := p.Accent
	if accent == nil {
		accent = theme.Border
	}
	body := p.Body
	if p.Heading != "" {
		heading := lipgloss.NewStyle().Foreground(accent).Bold(true).Render(p.Heading)
		body = heading + "\n\n" + body
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Width(cw).
		Align(lipgloss.Center).
		Padding(1, 2).
		Render(body)
}

// Button renders a fixed-width choice. Done choices carry a check mark.
func Button(label string, selected, done bool, width int) string {
	if done {
		label += " ✓"
	}
	style := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)

	switch {
	case selected:
		return style.
			Bold(true).
			Foreground(theme.BgDark).
			Background(theme.ArcadeYellow).
			BorderForeground(theme.ArcadeYellow).
			Render("▸ " + label)
	case done:
		return style.
			Foreground(theme.Success).
			BorderForeground(theme.Success).
			Render(label)
	default:
		return style.
			Foreground(theme.Text).
			BorderForeground(theme.Border).
			Render(label)
	}
}
