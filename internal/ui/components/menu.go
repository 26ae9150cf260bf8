package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/nodaysoff/internal/ui/theme"
)

// MenuItem is one entry in a Menu. Hotkey, when set, selects and triggers
// the item directly.
type MenuItem struct {
	Label    string
	Hotkey   string
	Done     bool // rendered with a check mark
	Disabled bool
	Action   func() tea.Cmd
}

// Menu is a vertical navigation menu. Navigation skips disabled items and
// wraps around at either end.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu creates a menu with the first enabled item selected.
func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items, Selected: -1}
	m.Selected = m.step(-1, 1)
	if m.Selected < 0 {
		m.Selected = 0
	}
	return m
}

// step returns the next enabled index from `from` in direction dir, or
// `from` when none is enabled.
func (m Menu) step(from, dir int) int {
	n := len(m.Items)
	for k := 1; k <= n; k++ {
		i := ((from+dir*k)%n + n) % n
		if !m.Items[i].Disabled {
			return i
		}
	}
	return from
}

// Clamp moves the selection off a disabled item after Items changed.
func (m *Menu) Clamp() {
	if len(m.Items) == 0 {
		m.Selected = 0
		return
	}
	if m.Selected < 0 || m.Selected >= len(m.Items) || m.Items[m.Selected].Disabled {
		if i := m.step(-1, 1); i >= 0 {
			m.Selected = i
		}
	}
}

// Update handles keyboard navigation.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(m.Items) == 0 {
		return m, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		m.Selected = m.step(m.Selected, -1)
		return m, nil
	case "down", "j", "tab":
		m.Selected = m.step(m.Selected, 1)
		return m, nil
	case "enter":
		return m, m.trigger(m.Selected)
	}

	for i, item := range m.Items {
		if item.Hotkey != "" && item.Hotkey == key && !item.Disabled {
			m.Selected = i
			return m, m.trigger(i)
		}
	}
	return m, nil
}

func (m Menu) trigger(i int) tea.Cmd {
	if i < 0 || i >= len(m.Items) {
		return nil
	}
	item := m.Items[i]
	if item.Disabled || item.Action == nil {
		return nil
	}
	return item.Action()
}

// Text returns the display text of item i, with its check mark and hotkey.
func (m Menu) Text(i int) string {
	item := m.Items[i]
	text := item.Label
	if item.Done {
		text += " ✓"
	}
	if item.Hotkey != "" {
		text = "[" + strings.ToUpper(item.Hotkey) + "] " + text
	}
	return text
}

// View renders the menu as plain lines.
func (m Menu) View() string {
	var b strings.Builder
	for i, item := range m.Items {
		text := m.Text(i)
		switch {
		case item.Disabled:
			b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render("    " + text))
		case i == m.Selected:
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("  ▸ " + text))
		case item.Done:
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Success).Render("    " + text))
		default:
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render("    " + text))
		}
		b.WriteString("\n")
	}
	return b.String()
}
