package history

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/nodaysoff/internal/catalog"
	"github.com/abhisek/nodaysoff/internal/effects"
	"github.com/abhisek/nodaysoff/internal/router"
	"github.com/abhisek/nodaysoff/internal/screen"
	"github.com/abhisek/nodaysoff/internal/screens/env"
	"github.com/abhisek/nodaysoff/internal/store"
	"github.com/abhisek/nodaysoff/internal/ui/layout"
	"github.com/abhisek/nodaysoff/internal/ui/theme"
)

// pageSize is how many workouts the screen loads.
const pageSize = 50

type historyLoadedMsg struct {
	Commits   []store.CommitEvent
	Penalties map[int64][]store.PenaltyEvent // commit sequence → penalties in that sitting
	Err       error
}

// HistoryScreen displays past workouts and the penalties taken during them.
type HistoryScreen struct {
	env       *env.Env
	commits   []store.CommitEvent
	penalties map[int64][]store.PenaltyEvent
	selected  int
	expanded  map[int]bool
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(e *env.Env) *HistoryScreen {
	return &HistoryScreen{
		env:      e,
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo, ctx, userID := s.env.History, s.env.Context(), s.env.Tracker.UserID()
	return func() tea.Msg {
		commits, err := repo.QueryCommits(ctx, userID, store.QueryOpts{Limit: pageSize})
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		if len(commits) == 0 {
			return historyLoadedMsg{}
		}

		oldest := commits[len(commits)-1].Timestamp
		penalties, err := repo.QueryPenalties(ctx, userID, store.QueryOpts{From: oldest.AddDate(0, 0, -1)})
		if err != nil {
			return historyLoadedMsg{Commits: commits}
		}
		return historyLoadedMsg{Commits: commits, Penalties: groupPenalties(commits, penalties)}
	}
}

// groupPenalties assigns each penalty to the first commit at or after it.
// Both slices are newest first.
func groupPenalties(commits []store.CommitEvent, penalties []store.PenaltyEvent) map[int64][]store.PenaltyEvent {
	out := make(map[int64][]store.PenaltyEvent)
	for _, p := range penalties {
		for i := len(commits) - 1; i >= 0; i-- {
			if !commits[i].Timestamp.Before(p.Timestamp) {
				seq := commits[i].Sequence
				out[seq] = append(out[seq], p)
				break
			}
		}
	}
	return out
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.commits = msg.Commits
			s.penalties = msg.Penalties
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.commits)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
			return s, nil
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.commits) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No workouts yet. Finish all three to log one!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, ev := range s.commits {
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		day := string(ev.WeightsDay)
		if p, ok := catalog.Program(ev.WeightsDay); ok {
			day = p.Name
		}
		line := fmt.Sprintf("%s%s  streak %d  HIIT %ds  VO2 %.1f  %s",
			prefix, ev.Timestamp.Local().Format("Mon Jan 02, 2006"), ev.StreakAfter,
			ev.HIITAfter, ev.VO2MaxAfter, day)
		if ev.RestEntered {
			line += "  rest"
		}

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.ArcadeYellow).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			for _, d := range details(ev, s.penalties[ev.Sequence]) {
				b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, d))
				b.WriteString("\n")
			}
		}
	}

	return b.String()
}

func details(ev store.CommitEvent, penalties []store.PenaltyEvent) []string {
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	pick := func(passed bool) lipgloss.Style {
		if passed {
			return theme.Passed
		}
		return theme.Failed
	}

	lines := []string{
		pick(ev.HIITPassed).Render(fmt.Sprintf("    HIIT %ds → %ds", ev.HIITBefore, ev.HIITAfter)),
		pick(ev.VO2MaxPassed).Render(fmt.Sprintf("    VO2 max %.1f → %.1f", ev.VO2MaxBefore, ev.VO2MaxAfter)),
	}
	for _, w := range ev.Weights {
		lines = append(lines, pick(w.Passed).Render(fmt.Sprintf("    %s %s → %s",
			w.Exercise, effects.FormatWeight(w.Before), effects.FormatWeight(w.After))))
	}
	for _, p := range penalties {
		lines = append(lines, theme.Failed.Render(fmt.Sprintf("    penalty: %s %s → %s",
			p.Exercise, effects.FormatWeight(p.Before), effects.FormatWeight(p.After))))
	}
	if len(ev.Weights) == 0 && len(penalties) == 0 {
		lines = append(lines, dim.Italic(true).Render("    No weights recorded"))
	}
	return lines
}
