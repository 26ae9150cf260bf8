// Package env carries the collaborators every workout screen needs.
package env

import (
	"context"
	"log/slog"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/nodaysoff/internal/coach"
	"github.com/abhisek/nodaysoff/internal/effects"
	"github.com/abhisek/nodaysoff/internal/hiit"
	"github.com/abhisek/nodaysoff/internal/session"
	"github.com/abhisek/nodaysoff/internal/store"
)

// Env is shared by pointer between screens. Only the UI goroutine touches
// the tracker.
type Env struct {
	Tracker *session.Tracker
	Effects *effects.Dispatcher
	Coach   *coach.Coach    // nil disables AI recaps
	History store.EventRepo // nil hides history
	Logger  *slog.Logger

	LeadIn     int
	BeepWindow int

	ctx context.Context
}

// New returns an Env bound to ctx.
func New(ctx context.Context, tracker *session.Tracker, fx *effects.Dispatcher) *Env {
	return &Env{
		Tracker:    tracker,
		Effects:    fx,
		Logger:     slog.Default(),
		LeadIn:     hiit.DefaultLeadIn,
		BeepWindow: hiit.DefaultBeepWindow,
		ctx:        ctx,
	}
}

// Context returns the context for tracker and repository calls.
func (e *Env) Context() context.Context {
	if e.ctx == nil {
		return context.Background()
	}
	return e.ctx
}

// Announce plays the effects for every event in out and returns the banner
// lines to show.
func (e *Env) Announce(out session.Outcome) []string {
	var lines []string
	for _, ev := range out.Events {
		msg := Banner(ev)
		if e.Effects != nil {
			msg = e.Effects.Event(e.Context(), ev)
		}
		if msg != "" {
			lines = append(lines, msg)
		}
	}
	return lines
}

// Cues plays timer cues.
func (e *Env) Cues(cues []hiit.Cue) {
	if e.Effects == nil {
		return
	}
	for _, c := range cues {
		e.Effects.Cue(e.Context(), c)
	}
}

// Timer returns a countdown configured with the user's lead-in and beep
// settings.
func (e *Env) Timer(exercises []string, duration int) hiit.Timer {
	t := hiit.New(exercises, duration)
	t.LeadIn = e.LeadIn
	t.BeepWindow = e.BeepWindow
	return t
}

// Banner is effects.Banner, for callers without a dispatcher.
func Banner(ev session.Event) string { return effects.Banner(ev) }

// NoticeMsg carries banner lines to the home screen.
type NoticeMsg struct {
	Lines []string
	Err   bool
}

// TickMsg is one second of countdown. Gen lets a screen ignore ticks
// scheduled before a pause or reset.
type TickMsg struct {
	Gen int
}

// TickCmd schedules the next tick for generation gen.
func TickCmd(gen int) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return TickMsg{Gen: gen}
	})
}
