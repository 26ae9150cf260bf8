// Package targets lets the user set the HIIT duration and VO2 max speed by
// hand. Invalid entries keep the current value.
package targets

import (
	"fmt"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/nodaysoff/internal/router"
	"github.com/abhisek/nodaysoff/internal/screen"
	"github.com/abhisek/nodaysoff/internal/screens/env"
	"github.com/abhisek/nodaysoff/internal/ui/components"
	"github.com/abhisek/nodaysoff/internal/ui/layout"
	"github.com/abhisek/nodaysoff/internal/ui/theme"
)

const (
	fieldHIIT = iota
	fieldVO2Max
)

// TargetsScreen edits the two session-level targets.
type TargetsScreen struct {
	env    *env.Env
	fields [2]components.TextInput
	focus  int
	status string
	failed bool
}

var _ screen.Screen = (*TargetsScreen)(nil)
var _ screen.KeyHintProvider = (*TargetsScreen)(nil)

// New creates a TargetsScreen prefilled with the current targets.
func New(e *env.Env) *TargetsScreen {
	rec := e.Tracker.Record()

	hiit := components.NewTextInput("seconds", true, 4)
	hiit.SetValue(strconv.Itoa(rec.HIITTarget))

	vo2 := components.NewTextInput("speed", true, 5)
	vo2.AllowDecimal = true
	vo2.SetValue(strconv.FormatFloat(rec.VO2MaxTarget, 'f', 1, 64))
	vo2.Model.Blur()

	return &TargetsScreen{env: e, fields: [2]components.TextInput{hiit, vo2}}
}

func (s *TargetsScreen) Init() tea.Cmd {
	return s.fields[s.focus].Init()
}

func (s *TargetsScreen) Title() string {
	return "Targets"
}

func (s *TargetsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Switch field"},
		{Key: "Enter", Description: "Save"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *TargetsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "tab", "shift+tab", "up", "down":
			s.fields[s.focus].Model.Blur()
			s.focus = 1 - s.focus
			return s, s.fields[s.focus].Model.Focus()
		case "enter":
			s.save()
			return s, nil
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}

	var cmd tea.Cmd
	s.fields[s.focus], cmd = s.fields[s.focus].Update(msg)
	return s, cmd
}

func (s *TargetsScreen) save() {
	ctx := s.env.Context()
	t := s.env.Tracker

	secs, err := t.SetHIITTarget(ctx, s.fields[fieldHIIT].Value())
	if err != nil {
		s.status, s.failed = "Could not save: "+err.Error(), true
		return
	}
	speed, err := t.SetVO2MaxTarget(ctx, s.fields[fieldVO2Max].Value())
	if err != nil {
		s.status, s.failed = "Could not save: "+err.Error(), true
		return
	}

	// Show what was kept when an entry was rejected.
	s.fields[fieldHIIT].SetValue(strconv.Itoa(secs))
	s.fields[fieldVO2Max].SetValue(strconv.FormatFloat(speed, 'f', 1, 64))
	s.status = fmt.Sprintf("Saved: HIIT %ds per exercise, VO2 max speed %.1f", secs, speed)
	s.failed = false
}

func (s *TargetsScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	label := func(i int, text string) string {
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.focus {
			style = theme.Selected
		}
		return style.Render(fmt.Sprintf("%-26s", text))
	}

	form := strings.Join([]string{
		label(fieldHIIT, "HIIT seconds per exercise") + s.fields[fieldHIIT].View(),
		label(fieldVO2Max, "VO2 max speed") + s.fields[fieldVO2Max].View(),
	}, "\n\n")

	sections := []string{components.Panel{Heading: "Targets", Body: form, Accent: theme.ArcadeCyan}.Render(cw)}
	if s.status != "" {
		style := lipgloss.NewStyle().Foreground(theme.Success)
		if s.failed {
			style = lipgloss.NewStyle().Foreground(theme.Error)
		}
		sections = append(sections, style.Render(s.status))
	}
	sections = append(sections, theme.Hint.Render("Targets also move on their own as you train."))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(sections, "\n\n"))
}
