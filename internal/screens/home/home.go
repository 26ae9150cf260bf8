// Package home is the root screen: today's status, the three workouts and
// record maintenance.
package home

import (
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/nodaysoff/internal/router"
	"github.com/abhisek/nodaysoff/internal/screen"
	"github.com/abhisek/nodaysoff/internal/screens/circuit"
	"github.com/abhisek/nodaysoff/internal/screens/env"
	"github.com/abhisek/nodaysoff/internal/screens/history"
	"github.com/abhisek/nodaysoff/internal/screens/summary"
	"github.com/abhisek/nodaysoff/internal/screens/targets"
	"github.com/abhisek/nodaysoff/internal/screens/vo2max"
	"github.com/abhisek/nodaysoff/internal/screens/weights"
	"github.com/abhisek/nodaysoff/internal/session"
	"github.com/abhisek/nodaysoff/internal/ui/components"
	"github.com/abhisek/nodaysoff/internal/ui/layout"
)

// Menu positions.
const (
	itemHIIT = iota
	itemWeights
	itemVO2Max
	itemHistory
	itemTargets
	itemSave
	itemResetSession
	itemResetAll
	itemQuit
)

var menuLabels = []string{
	"HIIT", "WEIGHTS", "VO2 MAX", "HISTORY", "TARGETS",
	"SAVE WORKOUT", "RESET SESSION", "RESET ALL", "QUIT",
}

// Hotkeys stay clear of the vim navigation keys and the y confirmation.
var menuHotkeys = []string{"h", "w", "v", "l", "t", "s", "r", "", "q"}

// HomeScreen is the main menu.
type HomeScreen struct {
	env  *env.Env
	menu components.Menu

	notice    []string
	noticeErr bool
	confirm   bool // RESET ALL awaits y/n
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)
var _ screen.Resumer = (*HomeScreen)(nil)

// New creates the home screen.
func New(e *env.Env) *HomeScreen {
	h := &HomeScreen{env: e}
	push := func(build func() screen.Screen) func() tea.Cmd {
		return func() tea.Cmd {
			h.clearNotice()
			s := build()
			return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
		}
	}

	items := make([]components.MenuItem, len(menuLabels))
	for i, label := range menuLabels {
		items[i] = components.MenuItem{Label: label, Hotkey: menuHotkeys[i]}
	}
	items[itemHIIT].Action = push(func() screen.Screen { return circuit.New(e) })
	items[itemWeights].Action = push(func() screen.Screen { return weights.New(e) })
	items[itemVO2Max].Action = push(func() screen.Screen { return vo2max.New(e) })
	items[itemHistory].Action = push(func() screen.Screen { return history.New(e) })
	items[itemTargets].Action = push(func() screen.Screen { return targets.New(e) })
	items[itemSave].Action = h.saveWorkout
	items[itemResetSession].Action = h.resetSession
	items[itemResetAll].Action = func() tea.Cmd {
		h.confirm = true
		return nil
	}
	items[itemQuit].Action = func() tea.Cmd { return tea.Quit }

	h.menu = components.NewMenu(items)
	h.refresh()
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

// Resume picks up results recorded by a workout screen that was popped.
func (h *HomeScreen) Resume() tea.Cmd {
	h.refresh()
	return nil
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	if h.confirm {
		return []layout.KeyHint{
			{Key: "y", Description: "Reset everything"},
			{Key: "any key", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "h/w/v", Description: "Workouts"},
		{Key: "q", Description: "Quit"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case env.NoticeMsg:
		h.notice = msg.Lines
		h.noticeErr = msg.Err
		h.refresh()
		return h, nil

	case tea.KeyPressMsg:
		if h.confirm {
			h.confirm = false
			if msg.String() == "y" {
				h.resetAll()
			}
			return h, nil
		}
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	h.refresh()
	return h, cmd
}

// refresh syncs the menu with the tracker after anything that may have
// changed the sitting.
func (h *HomeScreen) refresh() {
	t := h.env.Tracker
	state := t.State()
	items := h.menu.Items

	items[itemHIIT].Done = state.Complete(session.ModalityHIIT)
	items[itemWeights].Done = state.Complete(session.ModalityWeights)
	items[itemVO2Max].Done = state.Complete(session.ModalityVO2Max)

	items[itemHistory].Disabled = h.env.History == nil
	items[itemSave].Disabled = !t.Pending()
	items[itemResetSession].Disabled = t.Progress() == 0 && !t.Pending()
	h.menu.Clamp()
}

func (h *HomeScreen) clearNotice() {
	h.notice = nil
	h.noticeErr = false
}

func (h *HomeScreen) saveWorkout() tea.Cmd {
	out, err := h.env.Tracker.RetryCommit(h.env.Context())
	if err != nil {
		h.noticeErr = true
		if errors.Is(err, session.ErrNotReady) {
			h.notice = []string{"Finish all three workouts before saving."}
		} else {
			h.notice = []string{"Still not saved: " + err.Error(), "Your results are kept. Try again in a moment."}
		}
		return nil
	}
	h.clearNotice()
	banners := h.env.Announce(out)
	s := summary.New(h.env, *out.Summary, banners)
	return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
}

func (h *HomeScreen) resetSession() tea.Cmd {
	h.env.Tracker.Abandon()
	h.noticeErr = false
	h.notice = []string{"Session reset. Today's results were discarded."}
	return nil
}

func (h *HomeScreen) resetAll() {
	if err := h.env.Tracker.ResetAll(h.env.Context()); err != nil {
		h.noticeErr = true
		h.notice = []string{"Could not reset: " + err.Error()}
		return
	}
	h.noticeErr = false
	h.notice = []string{"Everything is back to the starting numbers."}
	h.refresh()
}

func (h *HomeScreen) View(width, height int) string {
	termHeight := height + 8
	compact := termHeight < 56 || width < 100
	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	sections = append(sections, renderStatusCard(h.env.Tracker, cw, compact))
	if len(h.notice) > 0 {
		sections = append(sections, renderNotice(h.notice, h.noticeErr, cw))
	}
	if h.confirm {
		sections = append(sections, renderConfirm(cw))
	}
	sections = append(sections, renderMenu(h.menu, cw, compact))

	return components.CabinetFrame(strings.Join(sections, "\n\n"), width, height)
}

func progressLine(t *session.Tracker) string {
	return fmt.Sprintf("%d/%d done today", t.Progress(), session.Modalities)
}
