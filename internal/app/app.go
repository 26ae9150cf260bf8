package app

import (
	"context"
	"errors"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/nodaysoff/internal/router"
	"github.com/abhisek/nodaysoff/internal/screen"
	"github.com/abhisek/nodaysoff/internal/screens/env"
	"github.com/abhisek/nodaysoff/internal/screens/home"
	"github.com/abhisek/nodaysoff/internal/screens/intro"
	"github.com/abhisek/nodaysoff/internal/session"
	"github.com/abhisek/nodaysoff/internal/ui/layout"
)

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	env    *env.Env
	width  int
	height int
}

// newAppModel starts on the intro for a first-time user and on the home
// screen otherwise.
func newAppModel(e *env.Env) AppModel {
	var root screen.Screen = home.New(e)
	if e.Tracker.Record().LastWorkout == nil {
		root = intro.New(func() screen.Screen { return home.New(e) })
	}
	return AppModel{
		router: router.New(root),
		env:    e,
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

// Update handles ctrl+c and sizing. Esc goes to the active screen so
// workout screens can stop their timers before leaving.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			if m.env.Tracker.Pending() {
				m.env.Logger.WarnContext(m.env.Context(), "quitting with an unsaved session")
			}
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) headerStats() layout.HeaderStats {
	t := m.env.Tracker
	return layout.HeaderStats{
		Streak:  t.Record().ConsecutiveDays,
		Done:    t.Progress(),
		Total:   session.Modalities,
		Resting: t.Status().Resting,
		Unsaved: t.Pending(),
	}
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.render())
	return v
}

// render draws the header, the active screen and the footer.
func (m AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.headerStats(), m.width)

	var footerHints []layout.KeyHint
	if p, ok := active.(screen.KeyHintProvider); ok {
		footerHints = p.KeyHints()
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	} else {
		footerHints = []layout.KeyHint{
			{Key: "any key", Description: "Continue"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(ctx context.Context, e *env.Env) error {
	p := tea.NewProgram(newAppModel(e), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		// SIGTERM cancels ctx; that is a normal exit.
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("running tui: %w", err)
	}
	return nil
}
