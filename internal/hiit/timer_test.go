package hiit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t Timer, ticks int) (Timer, []Cue) {
	var all []Cue
	for range ticks {
		var cues []Cue
		t, cues = t.Tick()
		all = append(all, cues...)
	}
	return t, all
}

func count(cues []Cue, kind CueKind) int {
	n := 0
	for _, c := range cues {
		if c.Kind == kind {
			n++
		}
	}
	return n
}

func TestStartAnnouncesFirstExercise(t *testing.T) {
	tm, cues := New([]string{"Burpees", "Plank"}, 10).Start()

	assert.Equal(t, StatusRunning, tm.Status)
	assert.Equal(t, 10, tm.Remaining)
	require.Len(t, cues, 1)
	assert.Equal(t, Cue{Kind: CueAnnounce, Exercise: "Burpees"}, cues[0])
}

func TestBeepsInLastSeconds(t *testing.T) {
	tm, _ := New([]string{"Burpees", "Plank"}, 10).Start()

	// 10 -> 5 is silent.
	tm, cues := run(tm, 5)
	assert.Equal(t, 5, tm.Remaining)
	assert.Empty(t, cues)

	// 5,4,3,2 beep; the tick at 1 ends the exercise.
	tm, cues = run(tm, 4)
	assert.Equal(t, 1, tm.Remaining)
	assert.Equal(t, 4, count(cues, CueBeep))
	assert.True(t, tm.Warning())
}

func TestAdvanceWithLeadIn(t *testing.T) {
	tm, _ := New([]string{"Burpees", "Plank"}, 3).Start()

	tm, cues := run(tm, 3)
	assert.Equal(t, StatusLeadIn, tm.Status)
	assert.Equal(t, 1, tm.Index)
	assert.Equal(t, "Plank", tm.Current())
	assert.Equal(t, 1, count(cues, CueAnnounce))

	tm, _ = run(tm, DefaultLeadIn)
	assert.Equal(t, StatusRunning, tm.Status)
	assert.Equal(t, 3, tm.Remaining)
}

func TestFinishCircuit(t *testing.T) {
	tm, _ := New([]string{"Burpees", "Plank"}, 2).Start()

	// 2 ticks for the first, 2 lead-in, 2 for the last.
	tm, cues := run(tm, 6)
	assert.Equal(t, StatusDone, tm.Status)
	assert.Equal(t, 1, count(cues, CueFinished))
	assert.False(t, tm.Active())
	assert.Equal(t, 1.0, tm.Fraction())

	// Further ticks do nothing.
	tm2, cues := tm.Tick()
	assert.Equal(t, tm, tm2)
	assert.Empty(t, cues)
}

func TestPauseResume(t *testing.T) {
	tm, _ := New([]string{"Burpees", "Plank"}, 10).Start()
	tm, _ = run(tm, 3)

	tm, _ = tm.Pause()
	assert.Equal(t, StatusPaused, tm.Status)
	paused, cues := run(tm, 5)
	assert.Equal(t, 7, paused.Remaining, "paused timer must not count")
	assert.Empty(t, cues)

	tm, _ = paused.Resume()
	assert.Equal(t, StatusRunning, tm.Status)
	tm, _ = tm.Tick()
	assert.Equal(t, 6, tm.Remaining)
}

func TestPauseDuringLeadInResumesLeadIn(t *testing.T) {
	tm, _ := New([]string{"A", "B"}, 1).Start()
	tm, _ = tm.Tick()
	require.Equal(t, StatusLeadIn, tm.Status)

	tm, _ = tm.Pause()
	tm, _ = tm.Resume()
	assert.Equal(t, StatusLeadIn, tm.Status)
}

func TestResetExercise(t *testing.T) {
	tm, _ := New([]string{"Burpees", "Plank"}, 10).Start()
	tm, _ = run(tm, 4)

	tm, _ = tm.ResetExercise()
	assert.Equal(t, StatusPaused, tm.Status)
	assert.Equal(t, 10, tm.Remaining)
	assert.Equal(t, 0, tm.Index)

	tm, _ = tm.Resume()
	assert.Equal(t, StatusRunning, tm.Status)
}

func TestNoLeadIn(t *testing.T) {
	tm := New([]string{"A", "B"}, 2)
	tm.LeadIn = 0
	tm, _ = tm.Start()
	tm, _ = run(tm, 2)
	assert.Equal(t, StatusRunning, tm.Status)
	assert.Equal(t, 1, tm.Index)
	assert.Equal(t, 2, tm.Remaining)
}

func TestEmptyCircuit(t *testing.T) {
	tm, cues := New(nil, 30).Start()
	assert.Equal(t, StatusDone, tm.Status)
	assert.Equal(t, []Cue{{Kind: CueFinished}}, cues)
}

func TestIdleIgnoresControls(t *testing.T) {
	idle := New([]string{"A"}, 5)
	for _, f := range []func() (Timer, []Cue){idle.Pause, idle.Resume, idle.ResetExercise, idle.Tick} {
		got, cues := f()
		assert.Equal(t, idle, got)
		assert.Empty(t, cues)
	}
}

func TestNewClampsDuration(t *testing.T) {
	assert.Equal(t, 1, New([]string{"A"}, 0).Duration)
}
