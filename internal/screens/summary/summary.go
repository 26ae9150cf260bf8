package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/nodaysoff/internal/catalog"
	"github.com/abhisek/nodaysoff/internal/coach"
	"github.com/abhisek/nodaysoff/internal/effects"
	"github.com/abhisek/nodaysoff/internal/router"
	"github.com/abhisek/nodaysoff/internal/screen"
	"github.com/abhisek/nodaysoff/internal/screens/env"
	"github.com/abhisek/nodaysoff/internal/session"
	"github.com/abhisek/nodaysoff/internal/store"
	"github.com/abhisek/nodaysoff/internal/ui/layout"
	"github.com/abhisek/nodaysoff/internal/ui/theme"
)

type recapMsg struct {
	Recap coach.Recap
	Err   error
}

// SummaryScreen shows what a commit changed, plus a short recap.
type SummaryScreen struct {
	env     *env.Env
	event   store.CommitEvent
	banners []string

	recap   coach.Recap
	loading bool
	recapAI bool
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a SummaryScreen for a saved commit.
func New(e *env.Env, sum session.CommitSummary, banners []string) *SummaryScreen {
	return &SummaryScreen{
		env:     e,
		event:   sum.Event(),
		banners: banners,
	}
}

// Show returns the command that replaces the active screen with the summary
// of out. It is nil when out did not commit.
func Show(e *env.Env, out session.Outcome, banners []string) tea.Cmd {
	if !out.Committed || out.Summary == nil {
		return nil
	}
	s := New(e, *out.Summary, banners)
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: s}
	}
}

func (s *SummaryScreen) Init() tea.Cmd {
	if s.env.Coach == nil {
		s.recap = coach.StaticRecap(s.event)
		return nil
	}
	s.loading = true
	c, ctx, ev := s.env.Coach, s.env.Context(), s.event
	return func() tea.Msg {
		r, err := c.Recap(ctx, ev)
		return recapMsg{Recap: r, Err: err}
	}
}

func (s *SummaryScreen) Title() string {
	return "Workout Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Continue"},
		{Key: "Esc", Description: "Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case recapMsg:
		s.loading = false
		if msg.Err != nil {
			s.env.Logger.Warn("coach recap failed, using static recap", "error", msg.Err)
			s.recap = coach.StaticRecap(s.event)
			return s, nil
		}
		s.recap = msg.Recap
		s.recapAI = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopToRootMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	ev := s.event
	center := func(style lipgloss.Style, text string) string {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(text)) + "\n"
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true), "Workout complete!"))
	b.WriteString("\n")

	streak := fmt.Sprintf("Streak: %d → %d", ev.StreakBefore, ev.StreakAfter)
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Accent).Bold(true), streak))
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.TextDim), bandLabel(ev)))
	b.WriteString("\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", min(width-8, 60)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n")

	b.WriteString(center(changeStyle(ev.HIITPassed, ev.HIITBefore != ev.HIITAfter),
		fmt.Sprintf("HIIT      %s  %ds → %ds", passMark(ev.HIITPassed), ev.HIITBefore, ev.HIITAfter)))
	b.WriteString(center(changeStyle(ev.VO2MaxPassed, ev.VO2MaxBefore != ev.VO2MaxAfter),
		fmt.Sprintf("VO2 max   %s  %.1f → %.1f", passMark(ev.VO2MaxPassed), ev.VO2MaxBefore, ev.VO2MaxAfter)))

	if p, ok := catalog.Program(ev.WeightsDay); ok {
		b.WriteString("\n")
		b.WriteString(center(lipgloss.NewStyle().Foreground(theme.TextDim), "Weights: "+p.Name))
	}
	for _, w := range ev.Weights {
		line := fmt.Sprintf("%s  %s  %s → %s", passMark(w.Passed), w.Exercise,
			effects.FormatWeight(w.Before), effects.FormatWeight(w.After))
		b.WriteString(center(changeStyle(w.Passed, w.Before != w.After), line))
	}

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	for _, line := range s.banners {
		b.WriteString(center(theme.Banner, line))
	}
	if len(s.banners) > 0 {
		b.WriteString("\n")
	}

	if s.loading {
		b.WriteString(center(theme.Hint, "Coach is writing your recap..."))
		return b.String()
	}
	headline := s.recap.Headline
	if s.recapAI {
		headline = "Coach: " + headline
	}
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true), headline))
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Text).Width(min(width-8, 60)), s.recap.Message))

	return b.String()
}

func bandLabel(ev store.CommitEvent) string {
	switch {
	case ev.FirstEver:
		return "First workout: baseline set"
	case ev.GapDays == 0:
		return "Same day: no change"
	case ev.GapDays == 1 && ev.StreakBefore >= 1:
		return "Consecutive day: +1% on every pass"
	case ev.GapDays == 1:
		return "Back on track: streak started"
	case ev.GapDays == 2:
		return "After a rest day: no change"
	}
	return fmt.Sprintf("%d days away: decay applied", ev.GapDays)
}

func passMark(passed bool) string {
	if passed {
		return "✓"
	}
	return "✗"
}

func changeStyle(passed, changed bool) lipgloss.Style {
	switch {
	case !passed:
		return theme.Failed
	case changed:
		return lipgloss.NewStyle().Foreground(theme.Success)
	}
	return lipgloss.NewStyle().Foreground(theme.Text)
}

// AfterRecord turns the result of a modality recording into navigation:
// the summary on commit, home with an error notice when the commit could
// not be saved, and home with a short notice otherwise.
func AfterRecord(e *env.Env, label string, out session.Outcome, err error) tea.Cmd {
	if err != nil {
		notice := env.NoticeMsg{Err: true, Lines: []string{
			"Workout complete but not saved: " + err.Error(),
			"Choose SAVE WORKOUT to try again.",
		}}
		return func() tea.Msg { return router.PopToRootMsg{Refresh: notice} }
	}
	banners := e.Announce(out)
	if out.Committed {
		return Show(e, out, banners)
	}
	lines := append([]string{label}, banners...)
	return func() tea.Msg {
		return router.PopToRootMsg{Refresh: env.NoticeMsg{Lines: lines}}
	}
}
