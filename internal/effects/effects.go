// Package effects turns timer cues and session events into sound, speech
// and banner text. Nothing in the engine waits on it.
package effects

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strings"
	"sync"

	"github.com/abhisek/nodaysoff/internal/hiit"
	"github.com/abhisek/nodaysoff/internal/session"
)

// Runner starts an external command without waiting for it.
type Runner func(ctx context.Context, name string, args ...string) error

// Options configures a Dispatcher.
type Options struct {
	Bell          bool
	BellOut       io.Writer // where the BEL byte goes
	SpeechCommand string    // e.g. "say" or "espeak -s 160"; empty disables speech
	Logger        *slog.Logger
	Runner        Runner // defaults to exec
}

// Dispatcher performs presentation side effects.
type Dispatcher struct {
	bell   bool
	out    io.Writer
	speech []string
	logger *slog.Logger
	run    Runner

	mu         sync.Mutex
	stopSpeech context.CancelFunc // cancels the announcement in progress
}

// New creates a Dispatcher.
func New(opts Options) *Dispatcher {
	d := &Dispatcher{
		bell:   opts.Bell && opts.BellOut != nil,
		out:    opts.BellOut,
		speech: strings.Fields(opts.SpeechCommand),
		logger: opts.Logger,
		run:    opts.Runner,
	}
	if d.logger == nil {
		d.logger = slog.Default()
	}
	if d.run == nil {
		d.run = startCommand
	}
	return d
}

// Cue plays a timer cue.
func (d *Dispatcher) Cue(ctx context.Context, c hiit.Cue) {
	switch c.Kind {
	case hiit.CueBeep:
		d.Beep()
	case hiit.CueAnnounce:
		d.Say(ctx, "Next: "+c.Exercise)
	case hiit.CueFinished:
		d.Beep()
		d.Say(ctx, "Circuit complete")
	}
}

// Beep rings the terminal bell.
func (d *Dispatcher) Beep() {
	if !d.bell {
		return
	}
	if _, err := io.WriteString(d.out, "\a"); err != nil {
		d.logger.Debug("bell failed", "error", err)
	}
}

// Say speaks text with the configured command. An announcement still
// playing is cut off so announcements never overlap.
func (d *Dispatcher) Say(ctx context.Context, text string) {
	if len(d.speech) == 0 || text == "" {
		return
	}
	args := append(append([]string(nil), d.speech[1:]...), text)

	d.mu.Lock()
	if d.stopSpeech != nil {
		d.stopSpeech()
	}
	speechCtx, cancel := context.WithCancel(ctx)
	d.stopSpeech = cancel
	d.mu.Unlock()

	if err := d.run(speechCtx, d.speech[0], args...); err != nil {
		d.logger.WarnContext(ctx, "speech command failed", "command", d.speech[0], "error", err)
	}
}

// Stop cuts off any announcement in progress.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopSpeech != nil {
		d.stopSpeech()
		d.stopSpeech = nil
	}
}

// Event reacts to a session event and returns banner text for the UI.
func (d *Dispatcher) Event(ctx context.Context, ev session.Event) string {
	msg := Banner(ev)
	switch ev.Kind {
	case session.KindSessionCommitted:
		d.Say(ctx, "Workout complete")
	case session.KindRestWindowEntered:
		d.Say(ctx, "Rest recommended")
	}
	return msg
}

// Banner returns the user-facing text for ev.
func Banner(ev session.Event) string {
	switch ev.Kind {
	case session.KindWeightPenalized:
		return fmt.Sprintf("Weight for %s reduced 1%% to %s", ev.Exercise, FormatWeight(ev.Weight))
	case session.KindSessionCommitted:
		return "Workout complete! Progress saved."
	case session.KindRestWindowEntered:
		if ev.Until != nil {
			return "Five days straight. Rest recommended until " + ev.Until.Local().Format("Mon Jan 2 15:04") + "."
		}
		return "Five days straight. Rest recommended."
	case session.KindRestWindowCleared:
		return "Rest taken. Rest window cleared."
	}
	return ""
}

// FormatWeight renders a half-unit weight without trailing zeros.
func FormatWeight(w float64) string {
	return strings.TrimSuffix(fmt.Sprintf("%.1f", w), ".0")
}

// startCommand starts name and reaps it in the background. Cancelling ctx
// kills the process.
func startCommand(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	go cmd.Wait() //nolint:errcheck
	return nil
}
