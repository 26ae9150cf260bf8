// Package layout draws the chrome around every screen: a header bar with
// the streak and today's progress, and a footer of key hints.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/nodaysoff/internal/ui/theme"
)

// Smallest terminal the screens are laid out for.
const (
	MinWidth  = 80
	MinHeight = 24
)

const appName = "No Days Off"

// KeyHint is one "key description" pair in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// HeaderStats is the status shown on the right of the header.
type HeaderStats struct {
	Streak  int
	Done    int // modalities completed this sitting
	Total   int
	Resting bool
	Unsaved bool // a completed session is waiting to be saved
}

// IsTooSmall reports whether the terminal is below the minimum size.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage asks the user to enlarge the terminal.
func RenderMinSizeMessage(width, height int) string {
	text := fmt.Sprintf("Terminal too small\n\nNeed at least %d x %d, have %d x %d",
		MinWidth, MinHeight, width, height)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Warning).Render(text))
}

// bar is the rounded strip shared by header and footer.
func bar(content string, width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Padding(0, 1).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render(content)
}

// RenderHeader lays out the app name, the screen title centered, and the
// stats flush right.
func RenderHeader(title string, stats HeaderStats, width int) string {
	name := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(appName)
	mid := lipgloss.NewStyle().Foreground(theme.Text).Render(title)
	right := renderStats(stats)

	// Border and padding take four cells.
	inner := max(width-4, 0)
	nameW, midW, rightW := lipgloss.Width(name), lipgloss.Width(mid), lipgloss.Width(right)

	gapL := max((inner-midW)/2-nameW, 1)
	gapR := max(inner-nameW-gapL-midW-rightW, 1)
	return bar(name+strings.Repeat(" ", gapL)+mid+strings.Repeat(" ", gapR)+right, width)
}

func renderStats(s HeaderStats) string {
	today := fmt.Sprintf("● %d/%d", s.Done, s.Total)
	todayColor := theme.Secondary
	if s.Unsaved {
		today += " unsaved"
		todayColor = theme.Error
	}

	unit := "days"
	if s.Streak == 1 {
		unit = "day"
	}
	streak := fmt.Sprintf("★ %d %s", s.Streak, unit)
	if s.Resting {
		streak += " (rest)"
	}

	return lipgloss.NewStyle().Foreground(todayColor).Render(today) + "   " +
		lipgloss.NewStyle().Foreground(theme.Accent).Render(streak)
}

// RenderFooter lists key hints left to right, dropping the ones that do
// not fit.
func RenderFooter(hints []KeyHint, width int) string {
	keyStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	inner := max(width-4, 0)
	var line string
	for _, h := range hints {
		part := keyStyle.Render(h.Key) + " " + descStyle.Render(h.Description)
		next := part
		if line != "" {
			next = line + "   " + part
		}
		if lipgloss.Width(next) > inner {
			break
		}
		line = next
	}
	return bar(line, width)
}

// RenderFrame stacks header, content and footer, padding the content so the
// frame fills exactly height rows.
func RenderFrame(header, content, footer string, width, height int) string {
	body := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content = lipgloss.NewStyle().Width(width).Height(body).MaxHeight(body).Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}
