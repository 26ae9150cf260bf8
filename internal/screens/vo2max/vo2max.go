// Package vo2max is the VO2 max screen: four one-minute intervals at the
// target speed with a minute of rest between them.
package vo2max

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

const restLabel = "Rest"

// Protocol returns the interval sequence at speed.
func Protocol(speed float64) []string {
	var steps []string
	for i := 1; i <= catalog.VO2MaxIntervals; i++ {
		if i > 1 {
			steps = append(steps, restLabel)
		}
		steps = append(steps, fmt.Sprintf("Interval %d at %.1f", i, speed))
	}
	return steps
}

// VO2MaxScreen runs the intervals.
type VO2MaxScreen struct {
	env   *env.Env
	speed float64
	timer hiit.Timer
	gen   int
}

var _ screen.Screen = (*VO2MaxScreen)(nil)
var _ screen.KeyHintProvider = (*VO2MaxScreen)(nil)

// New creates a VO2MaxScreen at the user's current target speed.
func New(e *env.Env) *VO2MaxScreen {
	speed := e.Tracker.Record().VO2MaxTarget
	return &VO2MaxScreen{
		env:   e,
		speed: speed,
		timer: e.Timer(Protocol(speed), int(catalog.VO2MaxIntervalDuration.Seconds())),
	}
}

func (s *VO2MaxScreen) Init() tea.Cmd {
	return nil
}

func (s *VO2MaxScreen) Title() string {
	return "VO2 Max"
}

func (s *VO2MaxScreen) KeyHints() []layout.KeyHint {
	if s.timer.Active() {
		return []layout.KeyHint{
			{Key: "Space", Description: "Pause"},
			{Key: "Esc", Description: "Back"},
		}
	}
	start := "Start clock"
	if s.timer.Status == hiit.StatusPaused {
		start = "Resume"
	}
	return []layout.KeyHint{
		{Key: "Space", Description: start},
		{Key: "p", Description: "Pass"},
		{Key: "f", Description: "Fail"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *VO2MaxScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
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
		case "space":
			return s, s.toggle()
		case "p", "f":
			if s.timer.Active() {
				return s, nil
			}
			s.gen++
			passed := msg.String() == "p"
			out, err := s.env.Tracker.RecordVO2Max(s.env.Context(), passed)
			label := "VO2 max failed. Speed stays put for this one."
			if passed {
				label = "VO2 max passed!"
			}
			return s, summary.AfterRecord(s.env, label, out, err)
		case "esc":
			s.gen++
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *VO2MaxScreen) toggle() tea.Cmd {
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

func (s *VO2MaxScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	target := lipgloss.NewStyle().Foreground(theme.TextDim).Render("Target speed") + "\n\n" +
		theme.Countdown.Render(fmt.Sprintf("%.1f", s.speed))

	var steps []string
	for i, step := range s.timer.Exercises {
		line := "  " + step
		style := lipgloss.NewStyle().Foreground(theme.Text)
		current := false
		switch {
		case s.timer.Status == hiit.StatusDone || (s.timer.Status != hiit.StatusIdle && i < s.timer.Index):
			line = "✓ " + step
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case s.timer.Status != hiit.StatusIdle && i == s.timer.Index:
			line = fmt.Sprintf("▸ %s  %ds", step, s.timer.Remaining)
			style = theme.Selected
			current = true
			if s.timer.Status == hiit.StatusPaused {
				line += " (paused)"
			}
		}
		if step == restLabel && !current {
			style = style.Italic(true)
		}
		steps = append(steps, style.Render(line))
	}

	status := theme.Hint.Render("Run each interval at full effort, then mark the session.")
	if s.timer.Status == hiit.StatusDone {
		status = theme.Banner.Render("All intervals done. Pass or fail?")
	}

	content := strings.Join([]string{
		components.Panel{Body: target, Accent: theme.ArcadeCyan}.Render(cw),
		strings.Join(steps, "\n"),
		status,
	}, "\n\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
