package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/nodaysoff/internal/screens/intro"
	"github.com/abhisek/nodaysoff/internal/session"
	"github.com/abhisek/nodaysoff/internal/ui/components"
	"github.com/abhisek/nodaysoff/internal/ui/theme"
)

// renderTitle returns the styled title block or compact fallback.
func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.ArcadeYellow).
		Bold(true)

	art := intro.BannerArt
	if compact {
		art = intro.BannerCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(strings.Trim(art, "\n")))
}

// renderStatusCard shows where the user stands today and their targets.
func renderStatusCard(t *session.Tracker, cw int, compact bool) string {
	status := t.Status()
	rec := t.Record()

	titleStyle := lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Bold(true)
	if status.Resting {
		titleStyle = titleStyle.Foreground(theme.Secondary)
	}
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	strong := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true)

	var lines []string
	lines = append(lines, titleStyle.Render(status.Title))
	if compact {
		lines = append(lines, theme.Body.Render(status.Short))
	} else {
		lines = append(lines,
			theme.Body.Render("Today: "+status.Today),
			dim.Render("Tomorrow: "+status.Tomorrow))
	}
	if status.Warning != "" {
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.Warning).Render("⚠ "+status.Warning))
	}
	lines = append(lines, "",
		fmt.Sprintf("%s  %s  %s",
			strong.Render(fmt.Sprintf("HIIT %ds", rec.HIITTarget)),
			strong.Render(fmt.Sprintf("VO2 %.1f", rec.VO2MaxTarget)),
			dim.Render(progressLine(t))))

	// Borders count toward the width.
	inner := cw - 2
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.ArcadeCyan).
		Width(inner).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}

func renderNotice(lines []string, isErr bool, cw int) string {
	color := theme.Success
	if isErr {
		color = theme.Error
	}
	return lipgloss.NewStyle().
		Foreground(color).
		Bold(true).
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}

func renderConfirm(cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Warning).
		Bold(true).
		Width(cw).
		Align(lipgloss.Center).
		Render("Reset ALL progress? Press y to confirm.")
}

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 24

// renderMenu stacks the menu as bordered buttons, or as plain lines when
// compact.
func renderMenu(m components.Menu, cw int, compact bool) string {
	var body string
	if compact {
		body = strings.TrimRight(m.View(), "\n")
	} else {
		disabled := lipgloss.NewStyle().
			Width(buttonWidth).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1)
		buttons := make([]string, len(m.Items))
		for i, item := range m.Items {
			if item.Disabled {
				buttons[i] = disabled.Render(item.Label)
				continue
			}
			label := item.Label
			if item.Hotkey != "" {
				label = "[" + strings.ToUpper(item.Hotkey) + "] " + label
			}
			buttons[i] = components.Button(label, i == m.Selected, item.Done, buttonWidth)
		}
		body = strings.Join(buttons, "\n")
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(body)
}
