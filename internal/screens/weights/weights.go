// Package weights is the weights screen: pick a split day, then record
// each exercise as passed or failed at the weight lifted.
package weights

import (
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/nodaysoff/internal/catalog"
	"github.com/abhisek/nodaysoff/internal/effects"
	"github.com/abhisek/nodaysoff/internal/router"
	"github.com/abhisek/nodaysoff/internal/screen"
	"github.com/abhisek/nodaysoff/internal/screens/env"
	"github.com/abhisek/nodaysoff/internal/screens/summary"
	"github.com/abhisek/nodaysoff/internal/session"
	"github.com/abhisek/nodaysoff/internal/ui/components"
	"github.com/abhisek/nodaysoff/internal/ui/layout"
	"github.com/abhisek/nodaysoff/internal/ui/theme"
	"github.com/abhisek/nodaysoff/internal/workout"
)

type phase int

const (
	phaseDay phase = iota
	phaseLift
)

// WeightsScreen records the weights modality.
type WeightsScreen struct {
	env   *env.Env
	phase phase

	days      []catalog.DayKey
	dayCursor int

	program catalog.DayProgram
	cursor  int
	input   components.TextInput

	banners []string
	errMsg  string
}

var _ screen.Screen = (*WeightsScreen)(nil)
var _ screen.KeyHintProvider = (*WeightsScreen)(nil)

// New creates a WeightsScreen with the session's current day preselected.
func New(e *env.Env) *WeightsScreen {
	s := &WeightsScreen{
		env:  e,
		days: catalog.Days(),
	}
	current := e.Tracker.State().Day()
	for i, d := range s.days {
		if d == current {
			s.dayCursor = i
		}
	}
	return s
}

func (s *WeightsScreen) Init() tea.Cmd {
	return nil
}

func (s *WeightsScreen) Title() string {
	if s.phase == phaseLift {
		return "Weights: " + s.program.Name
	}
	return "Weights"
}

func (s *WeightsScreen) KeyHints() []layout.KeyHint {
	if s.phase == phaseDay {
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Day"},
			{Key: "Enter", Description: "Select"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Exercise"},
		{Key: "Enter/p", Description: "Pass"},
		{Key: "f", Description: "Fail"},
		{Key: "e", Description: "End early"},
		{Key: "Esc", Description: "Days"},
	}
}

func (s *WeightsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if s.phase == phaseLift {
			var cmd tea.Cmd
			s.input, cmd = s.input.Update(msg)
			return s, cmd
		}
		return s, nil
	}
	if s.phase == phaseDay {
		return s, s.updateDay(kmsg)
	}
	return s, s.updateLift(kmsg)
}

func (s *WeightsScreen) updateDay(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "up", "k":
		if s.dayCursor > 0 {
			s.dayCursor--
		}
	case "down", "j":
		if s.dayCursor < len(s.days)-1 {
			s.dayCursor++
		}
	case "1", "2", "3", "4":
		s.dayCursor = int(msg.String()[0] - '1')
		return s.selectDay()
	case "enter":
		return s.selectDay()
	case "esc":
		return func() tea.Msg { return router.PopScreenMsg{} }
	}
	return nil
}

func (s *WeightsScreen) selectDay() tea.Cmd {
	day := s.days[s.dayCursor]
	if err := s.env.Tracker.SelectWeightsDay(day); err != nil {
		s.errMsg = err.Error()
		return nil
	}
	s.program, _ = catalog.Program(day)
	s.phase = phaseLift
	s.errMsg = ""
	s.banners = nil

	st := s.env.Tracker.State()
	s.cursor = 0
	for i, ex := range s.program.Exercises {
		if _, done := st.Result(ex.Name); !done {
			s.cursor = i
			break
		}
	}
	return s.loadInput()
}

// loadInput fills the weight field with the last weight entered for the
// exercise this sitting, else the stored target.
func (s *WeightsScreen) loadInput() tea.Cmd {
	s.input = components.NewTextInput("kg", true, 7)
	s.input.AllowDecimal = true

	name := s.current().Name
	w := s.env.Tracker.Record().Weight(s.program.Key, name)
	if res, ok := s.env.Tracker.State().Result(name); ok {
		w = res.Entered
	}
	if w > 0 {
		s.input.SetValue(effects.FormatWeight(w))
	}
	return s.input.Init()
}

func (s *WeightsScreen) current() catalog.Exercise {
	return s.program.Exercises[s.cursor]
}

func (s *WeightsScreen) updateLift(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "up":
		if s.cursor > 0 {
			s.cursor--
			return s.loadInput()
		}
		return nil
	case "down":
		if s.cursor < len(s.program.Exercises)-1 {
			s.cursor++
			return s.loadInput()
		}
		return nil
	case "enter", "p":
		return s.record(true)
	case "f":
		return s.record(false)
	case "e":
		return s.endEarly()
	case "esc":
		s.phase = phaseDay
		s.errMsg = ""
		return nil
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return cmd
}

func (s *WeightsScreen) record(passed bool) tea.Cmd {
	name := s.current().Name
	stored := s.env.Tracker.Record().Weight(s.program.Key, name)
	weight := workout.ParseWeight(s.input.Value(), stored)

	out, err := s.env.Tracker.RecordWeightsExercise(s.env.Context(), name, passed, weight)
	switch {
	case errors.Is(err, session.ErrPenaltyNotSaved):
		s.errMsg = "Could not save the reduced weight. Nothing was recorded, try again."
		return nil
	case errors.Is(err, session.ErrCommitNotSaved):
		return summary.AfterRecord(s.env, "", out, err)
	case err != nil:
		s.errMsg = err.Error()
		return nil
	}
	s.errMsg = ""

	if out.Committed || s.env.Tracker.State().WeightsComplete {
		return summary.AfterRecord(s.env, "Weights complete!", out, nil)
	}

	s.banners = s.env.Announce(out)
	if s.cursor < len(s.program.Exercises)-1 {
		s.cursor++
	}
	return s.loadInput()
}

func (s *WeightsScreen) endEarly() tea.Cmd {
	done := len(s.env.Tracker.State().WeightsResults)
	line := fmt.Sprintf("Weights ended early: %d of %d exercises recorded. Finish the last one to complete weights.",
		done, len(s.program.Exercises))
	return func() tea.Msg {
		return router.PopToRootMsg{Refresh: env.NoticeMsg{Lines: []string{line}}}
	}
}

func (s *WeightsScreen) View(width, height int) string {
	var body string
	if s.phase == phaseDay {
		body = s.viewDays(width)
	} else {
		body = s.viewLift(width)
	}
	if s.errMsg != "" {
		body += "\n\n" + lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg))
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}

func (s *WeightsScreen) viewDays(width int) string {
	cw := components.ContentWidth(width)
	st := s.env.Tracker.State()

	var buttons []string
	for i, d := range s.days {
		p, _ := catalog.Program(d)
		label := fmt.Sprintf("%d. %s", i+1, p.Name)
		buttons = append(buttons, components.Button(label, i == s.dayCursor, d == st.Day() && st.WeightsComplete, 32))
	}

	hint := theme.Hint.Render("Choose today's split")
	if n := len(st.WeightsResults); n > 0 && s.days[s.dayCursor] != st.Day() {
		hint = theme.Banner.Render(fmt.Sprintf("Switching days discards %d result(s) from the current day", n))
	}

	return lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).
		Render(strings.Join(buttons, "\n") + "\n\n" + hint)
}

func (s *WeightsScreen) viewLift(width int) string {
	rec := s.env.Tracker.Record()
	st := s.env.Tracker.State()

	var lines []string
	for i, ex := range s.program.Exercises {
		stored := rec.Weight(s.program.Key, ex.Name)
		target := "new"
		if stored > 0 {
			target = effects.FormatWeight(stored) + " kg"
		}

		mark := "  "
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if res, ok := st.Result(ex.Name); ok {
			if res.Passed {
				mark = "✓ "
				style = lipgloss.NewStyle().Foreground(theme.Success)
			} else {
				mark = "✗ "
				style = lipgloss.NewStyle().Foreground(theme.Error)
			}
		}

		line := fmt.Sprintf("%s%-36s %2d reps  %s", mark, ex.Name, ex.Reps, target)
		if i == s.cursor {
			line = theme.Selected.Render("▸ "+line) + "   " + s.input.View()
		} else {
			line = "  " + style.Render(line)
		}
		lines = append(lines, line)
	}

	out := strings.Join(lines, "\n")
	for _, b := range s.banners {
		out += "\n\n" + theme.Banner.Render(b)
	}
	return out
}
