// Package intro shows the first-run splash with the progression rules.
package intro

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/nodaysoff/internal/router"
	"github.com/abhisek/nodaysoff/internal/screen"
	"github.com/abhisek/nodaysoff/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	phase1End    = 500 * time.Millisecond
	phase2End    = 1500 * time.Millisecond
	totalDur     = 3000 * time.Millisecond
)

// Rules is the "how it works" copy, one rule per line.
var Rules = []string{
	"Three workouts a day: HIIT, weights and VO2 max.",
	"Train on consecutive days and every number goes up 1%.",
	"Gains begin on the second day of a streak.",
	"One day off is a rest day. Nothing changes.",
	"Three or more days off cost 1% per day, compounding.",
	"Fail a lift and that weight drops 1% right away.",
	"Five days straight earns a recommended 48 hour rest.",
}

var pulseFrames = []string{"▶", "▷"}

type tickMsg time.Time

// IntroScreen plays the banner, then the rules, then waits for a key.
type IntroScreen struct {
	homeFactory  func() screen.Screen
	elapsed      time.Duration
	tickCount    int
	transitioned bool
}

var _ screen.Screen = (*IntroScreen)(nil)

// New creates an IntroScreen that replaces itself with homeFactory's screen.
func New(homeFactory func() screen.Screen) *IntroScreen {
	return &IntroScreen{homeFactory: homeFactory}
}

func (s *IntroScreen) Title() string {
	return ""
}

func (s *IntroScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (s *IntroScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if s.transitioned {
			return s, nil
		}
		if s.elapsed < totalDur {
			s.elapsed += tickInterval
		}
		s.tickCount++
		return s, tick()

	case tea.KeyPressMsg:
		return s, s.transition()
	}
	return s, nil
}

func (s *IntroScreen) transition() tea.Cmd {
	if s.transitioned {
		return nil
	}
	s.transitioned = true
	next := s.homeFactory()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

func (s *IntroScreen) View(width, height int) string {
	var sections []string

	sections = append(sections, RenderBanner(width))

	if s.elapsed >= phase1End {
		tagline := lipgloss.NewStyle().
			Foreground(theme.Text).
			Bold(true).
			Render("Every day counts. So does every day off.")
		sections = append(sections, "", tagline)
	}

	if s.elapsed >= phase2End {
		var b strings.Builder
		b.WriteString(theme.Subtitle.Render("How it works"))
		b.WriteString("\n\n")
		bullet := lipgloss.NewStyle().Foreground(theme.Accent).Render("•")
		for _, rule := range Rules {
			b.WriteString(bullet + " " + theme.Body.Render(rule) + "\n")
		}
		sections = append(sections, "", theme.Card.Render(strings.TrimRight(b.String(), "\n")))
	}

	if s.elapsed >= totalDur {
		frame := pulseFrames[s.tickCount%len(pulseFrames)]
		hint := lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Italic(true).
			Render(frame + " press any key to begin")
		sections = append(sections, "", hint)
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(sections, "\n"))
}
