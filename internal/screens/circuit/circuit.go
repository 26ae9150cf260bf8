// Package circuit is the HIIT circuit screen: a one-second countdown per
// exercise with beeps and spoken announcements, then pass or fail.
package circuit

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/nodaysoff/internal/catalog"
	"github.com/abhisek/nodaysoff/internal/hiit"
	"github.com/abhisek/nodaysoff/internal/router"
	"github.com/abhisek/nodaysoff/internal/screen"
	"github.com/abhisek/nodaysoff/internal/screens/env"
	"github.com/abhisek/nodaysoff/internal/screens/summary"
	"github.com/abhisek/nodaysoff/internal/ui/components"
	"github.com/abhisek/nodaysoff/internal/ui/layout"
	"github.com/abhisek/nodaysoff/internal/ui/theme"
)

// HIITScreen runs the circuit.
type HIITScreen struct {
	env   *env.Env
	timer hiit.Timer
	gen   int // bumped on every pause, reset and exit; older ticks are dropped
}

var _ screen.Screen = (*HIITScreen)(nil)
var _ screen.KeyHintProvider = (*HIITScreen)(nil)

// New creates a HIITScreen at the user's current target duration.
func New(e *env.Env) *HIITScreen {
	return &HIITScreen{
		env:   e,
		timer: e.Timer(catalog.HIITExercises, e.Tracker.Record().HIITTarget),
	}
}

func (s *HIITScreen) Init() tea.Cmd {
	return nil
}

func (s *HIITScreen) Title() string {
	return "HIIT Circuit"
}

func (s *HIITScreen) KeyHints() []layout.KeyHint {
	switch s.timer.Status {
	case hiit.StatusIdle:
		return []layout.KeyHint{
			{Key: "Space", Description: "Start"},
			{Key: "p/f", Description: "Pass/Fail"},
			{Key: "Esc", Description: "Back"},
		}
	case hiit.StatusPaused:
		return []layout.KeyHint{
			{Key: "Space", Description: "Resume"},
			{Key: "r", Description: "Restart exercise"},
			{Key: "p/f", Description: "Pass/Fail"},
			{Key: "Esc", Description: "Back"},
		}
	case hiit.StatusDone:
		return []layout.KeyHint{
			{Key: "p", Description: "Pass"},
			{Key: "f", Description: "Fail"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "Space", Description: "Pause"},
		{Key: "r", Description: "Restart exercise"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HIITScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case env.TickMsg:
		if msg.Gen != s.gen || !s.timer.Active() {
			return s, nil
		}
		var cues []hiit.Cue
		s.timer, cues = s.timer.Tick()
		s.env.Cues(cues)
		if s.timer.Active() {
			return s, env.TickCmd(s.gen)
		}
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "space", "enter":
			return s, s.toggle()
		case "r":
			s.gen++
			s.timer, _ = s.timer.ResetExercise()
			return s, nil
		case "p", "f":
			if s.timer.Active() {
				return s, nil
			}
			s.gen++
			out, err := s.env.Tracker.RecordHIIT(s.env.Context(), msg.String() == "p")
			label := "HIIT failed. Targets stay put for this one."
			if msg.String() == "p" {
				label = "HIIT passed!"
			}
			return s, summary.AfterRecord(s.env, label, out, err)
		case "esc":
			s.gen++
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *HIITScreen) toggle() tea.Cmd {
	var cues []hiit.Cue
	s.gen++
	switch s.timer.Status {
	case hiit.StatusIdle:
		s.timer, cues = s.timer.Start()
	case hiit.StatusPaused:
		s.timer, cues = s.timer.Resume()
	case hiit.StatusRunning, hiit.StatusLeadIn:
		s.timer, cues = s.timer.Pause()
	}
	s.env.Cues(cues)
	if s.timer.Active() {
		return env.TickCmd(s.gen)
	}
	return nil
}

func (s *HIITScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	var sections []string

	sections = append(sections, s.renderClock(cw))
	sections = append(sections, components.CountdownBar{
		Fraction: s.timer.Fraction(),
		Width:    cw,
		Warn:     s.timer.Warning(),
		Paused:   s.timer.Status == hiit.StatusPaused,
	}.View())
	sections = append(sections, components.Track(s.done(), len(s.timer.Exercises), s.timer.Active()))
	sections = append(sections, renderList(s.timer, listRows(height)))

	content := strings.Join(sections, "\n\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (s *HIITScreen) renderClock(cw int) string {
	t := s.timer
	var head, clock string
	switch t.Status {
	case hiit.StatusIdle:
		head = fmt.Sprintf("%d exercises, %ds each", len(t.Exercises), t.Duration)
		clock = "Ready"
	case hiit.StatusLeadIn:
		head = "Get ready: " + t.Current()
		clock = fmt.Sprintf("%d", t.Remaining)
	case hiit.StatusDone:
		head = "Circuit complete"
		clock = "Did you make every interval?"
	default:
		head = fmt.Sprintf("%d/%d  %s", t.Index+1, len(t.Exercises), t.Current())
		clock = fmt.Sprintf("%ds", t.Remaining)
		if t.Status == hiit.StatusPaused {
			clock += "  (paused)"
		}
	}

	clockStyle := theme.Countdown
	accent := theme.ArcadeCyan
	if t.Warning() {
		clockStyle = theme.CountdownWarn
		accent = theme.Warning
	}
	body := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(head) + "\n\n" +
		clockStyle.Render(clock)
	if next := t.Next(); next != "" && t.Status != hiit.StatusIdle && t.Status != hiit.StatusDone {
		body += "\n\n" + theme.Hint.Render("Next: "+next)
	}
	return components.Panel{Body: body, Accent: accent}.Render(cw)
}

// done counts finished exercises.
func (s *HIITScreen) done() int {
	if s.timer.Status == hiit.StatusDone {
		return len(s.timer.Exercises)
	}
	if s.timer.Status == hiit.StatusIdle {
		return 0
	}
	return s.timer.Index
}

func listRows(height int) int {
	rows := height - 18
	if rows < 3 {
		rows = 3
	}
	return rows
}

// renderList shows a window of the circuit around the current exercise.
func renderList(t hiit.Timer, rows int) string {
	start := t.Index - rows/2
	if start < 0 {
		start = 0
	}
	end := min(start+rows, len(t.Exercises))
	if end-start < rows {
		start = max(end-rows, 0)
	}

	var lines []string
	for i := start; i < end; i++ {
		name := t.Exercises[i]
		switch {
		case t.Status == hiit.StatusDone || (i < t.Index && t.Status != hiit.StatusIdle):
			lines = append(lines, lipgloss.NewStyle().Foreground(theme.TextDim).Render("  ✓ "+name))
		case i == t.Index && t.Status != hiit.StatusIdle:
			lines = append(lines, theme.Selected.Render("  ▸ "+name))
		default:
			lines = append(lines, lipgloss.NewStyle().Foreground(theme.Text).Render("    "+name))
		}
	}
	return strings.Join(lines, "\n")
}
