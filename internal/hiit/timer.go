// Package hiit is the HIIT circuit countdown as a pure state machine.
// Each transition returns the next Timer and the cues the UI should play;
// the caller owns the clock.
package hiit

// Defaults for the pause between exercises and the closing beeps.
const (
	DefaultLeadIn     = 2
	DefaultBeepWindow = 5
)

// Status is the timer phase.
type Status int

const (
	StatusIdle    Status = iota // not started
	StatusLeadIn                // between exercises, next one announced
	StatusRunning               // counting down an exercise
	StatusPaused
	StatusDone // circuit finished, waiting for pass/fail
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLeadIn:
		return "lead-in"
	case StatusRunning:
		return "running"
	case StatusPaused:
		return "paused"
	case StatusDone:
		return "done"
	}
	return "unknown"
}

// CueKind identifies a presentation cue.
type CueKind int

const (
	CueBeep CueKind = iota
	CueAnnounce
	CueFinished
)

// Cue is a side effect requested by a transition.
type Cue struct {
	Kind     CueKind
	Exercise string // CueAnnounce
}

// Timer is a value type; transitions never modify the receiver.
type Timer struct {
	Exercises  []string
	Duration   int // seconds per exercise
	LeadIn     int // seconds between exercises
	BeepWindow int // beep while this many seconds or fewer remain

	Index     int
	Remaining int
	Status    Status

	resume Status // phase to return to from StatusPaused
}

// New returns an idle timer over exercises.
func New(exercises []string, duration int) Timer {
	if duration < 1 {
		duration = 1
	}
	return Timer{
		Exercises:  exercises,
		Duration:   duration,
		LeadIn:     DefaultLeadIn,
		BeepWindow: DefaultBeepWindow,
		Remaining:  duration,
	}
}

// Current returns the exercise at Index, or "".
func (t Timer) Current() string {
	if t.Index < 0 || t.Index >= len(t.Exercises) {
		return ""
	}
	return t.Exercises[t.Index]
}

// Next returns the exercise after Index, or "".
func (t Timer) Next() string {
	if t.Index+1 >= len(t.Exercises) {
		return ""
	}
	return t.Exercises[t.Index+1]
}

// Active reports whether the timer needs ticks.
func (t Timer) Active() bool {
	return t.Status == StatusRunning || t.Status == StatusLeadIn
}

// Warning reports whether the countdown is inside the beep window.
func (t Timer) Warning() bool {
	return t.Status == StatusRunning && t.Remaining > 0 && t.Remaining <= t.BeepWindow
}

// Fraction returns the elapsed share of the current exercise in [0, 1].
func (t Timer) Fraction() float64 {
	if t.Status != StatusRunning && t.Status != StatusPaused {
		if t.Status == StatusDone {
			return 1
		}
		return 0
	}
	f := float64(t.Duration-t.Remaining) / float64(t.Duration)
	return min(max(f, 0), 1)
}

// Start begins the circuit from the first exercise.
func (t Timer) Start() (Timer, []Cue) {
	if t.Status != StatusIdle {
		return t, nil
	}
	if len(t.Exercises) == 0 {
		t.Status = StatusDone
		return t, []Cue{{Kind: CueFinished}}
	}
	t.Index = 0
	t.Remaining = t.Duration
	t.Status = StatusRunning
	return t, []Cue{{Kind: CueAnnounce, Exercise: t.Exercises[0]}}
}

// Pause stops the countdown.
func (t Timer) Pause() (Timer, []Cue) {
	if !t.Active() {
		return t, nil
	}
	t.resume = t.Status
	t.Status = StatusPaused
	return t, nil
}

// Resume continues a paused countdown.
func (t Timer) Resume() (Timer, []Cue) {
	if t.Status != StatusPaused {
		return t, nil
	}
	t.Status = t.resume
	if t.Status != StatusLeadIn {
		t.Status = StatusRunning
	}
	return t, nil
}

// ResetExercise restarts the current exercise and leaves the timer paused.
func (t Timer) ResetExercise() (Timer, []Cue) {
	if t.Status == StatusIdle || t.Status == StatusDone {
		return t, nil
	}
	t.Remaining = t.Duration
	t.resume = StatusRunning
	t.Status = StatusPaused
	return t, nil
}

// Tick advances one second.
func (t Timer) Tick() (Timer, []Cue) {
	switch t.Status {
	case StatusRunning:
		if t.Remaining <= 1 {
			return t.finishExercise()
		}
		var cues []Cue
		if t.Remaining <= t.BeepWindow {
			cues = append(cues, Cue{Kind: CueBeep})
		}
		t.Remaining--
		return t, cues

	case StatusLeadIn:
		t.Remaining--
		if t.Remaining <= 0 {
			t.Status = StatusRunning
			t.Remaining = t.Duration
		}
		return t, nil
	}
	return t, nil
}

func (t Timer) finishExercise() (Timer, []Cue) {
	t.Remaining = 0
	if t.Index >= len(t.Exercises)-1 {
		t.Status = StatusDone
		return t, []Cue{{Kind: CueFinished}}
	}

	t.Index++
	cues := []Cue{{Kind: CueAnnounce, Exercise: t.Exercises[t.Index]}}
	if t.LeadIn <= 0 {
		t.Status = StatusRunning
		t.Remaining = t.Duration
		return t, cues
	}
	t.Status = StatusLeadIn
	t.Remaining = t.LeadIn
	return t, cues
}
