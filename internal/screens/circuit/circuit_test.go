package circuit

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/nodaysoff/internal/catalog"
	"github.com/abhisek/nodaysoff/internal/hiit"
	"github.com/abhisek/nodaysoff/internal/router"
	"github.com/abhisek/nodaysoff/internal/screens/env"
	"github.com/abhisek/nodaysoff/internal/screens/env/envtest"
	"github.com/abhisek/nodaysoff/internal/workout"
)

func key(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

var space = tea.KeyPressMsg{Code: tea.KeySpace, Text: " "}

func newFixture(t *testing.T, target int) *envtest.Fixture {
	rec := workout.Default()
	rec.HIITTarget = target
	return envtest.New(t, envtest.Options{Record: &rec})
}

// completeOthers resolves weights and VO2 max so HIIT is the last modality.
func completeOthers(t *testing.T, f *envtest.Fixture) {
	t.Helper()
	ctx := context.Background()
	p, _ := catalog.Program(catalog.Day1)
	for _, ex := range p.Exercises {
		_, err := f.Env.Tracker.RecordWeightsExercise(ctx, ex.Name, true, 20)
		require.NoError(t, err)
	}
	_, err := f.Env.Tracker.RecordVO2Max(ctx, true)
	require.NoError(t, err)
}

func runToDone(t *testing.T, s *HIITScreen) {
	t.Helper()
	s.Update(space)
	for i := 0; i < 10*len(catalog.HIITExercises) && s.timer.Status != hiit.StatusDone; i++ {
		s.Update(env.TickMsg{Gen: s.gen})
	}
	require.Equal(t, hiit.StatusDone, s.timer.Status)
}

func TestStartAnnouncesFirstExercise(t *testing.T) {
	f := newFixture(t, 30)
	s := New(f.Env)

	_, cmd := s.Update(space)

	assert.NotNil(t, cmd, "expected a tick to be scheduled")
	assert.Equal(t, hiit.StatusRunning, s.timer.Status)
	assert.Equal(t, 30, s.timer.Remaining)
	assert.Equal(t, []string{"Next: Burpees"}, f.Spoken)
}

func TestTickCountsDown(t *testing.T) {
	f := newFixture(t, 30)
	s := New(f.Env)
	s.Update(space)

	_, cmd := s.Update(env.TickMsg{Gen: s.gen})

	assert.Equal(t, 29, s.timer.Remaining)
	assert.NotNil(t, cmd)
}

func TestStaleTicksIgnoredAfterPause(t *testing.T) {
	f := newFixture(t, 30)
	s := New(f.Env)
	s.Update(space)
	stale := s.gen

	s.Update(space) // pause
	require.Equal(t, hiit.StatusPaused, s.timer.Status)
	s.Update(space) // resume
	_, cmd := s.Update(env.TickMsg{Gen: stale})

	assert.Nil(t, cmd)
	assert.Equal(t, 30, s.timer.Remaining, "stale tick must not advance the clock")
}

func TestResetExerciseRestartsAndPauses(t *testing.T) {
	f := newFixture(t, 30)
	s := New(f.Env)
	s.Update(space)
	s.Update(env.TickMsg{Gen: s.gen})
	s.Update(env.TickMsg{Gen: s.gen})

	s.Update(key('r'))

	assert.Equal(t, hiit.StatusPaused, s.timer.Status)
	assert.Equal(t, 30, s.timer.Remaining)
}

func TestPassFailIgnoredWhileRunning(t *testing.T) {
	f := newFixture(t, 30)
	s := New(f.Env)
	s.Update(space)

	_, cmd := s.Update(key('p'))

	assert.Nil(t, cmd)
	assert.False(t, f.Env.Tracker.State().HIITComplete)
}

func TestPassRecordsAndReturnsHome(t *testing.T) {
	f := newFixture(t, 1)
	s := New(f.Env)
	runToDone(t, s)

	_, cmd := s.Update(key('p'))
	require.NotNil(t, cmd)

	msg, ok := cmd().(router.PopToRootMsg)
	require.True(t, ok)
	notice, ok := msg.Refresh.(env.NoticeMsg)
	require.True(t, ok)
	assert.Equal(t, []string{"HIIT passed!"}, notice.Lines)
	assert.True(t, f.Env.Tracker.State().HIITComplete)
	assert.True(t, f.Env.Tracker.State().HIITPassed)
	assert.Contains(t, f.Spoken, "Circuit complete")
}

func TestFailBeforeStartStillCompletes(t *testing.T) {
	f := newFixture(t, 30)
	s := New(f.Env)

	_, cmd := s.Update(key('f'))
	require.NotNil(t, cmd)
	cmd()

	st := f.Env.Tracker.State()
	assert.True(t, st.HIITComplete)
	assert.False(t, st.HIITPassed)
}

func TestLastModalityShowsSummary(t *testing.T) {
	f := newFixture(t, 1)
	completeOthers(t, f)
	s := New(f.Env)
	runToDone(t, s)

	_, cmd := s.Update(key('p'))
	require.NotNil(t, cmd)

	msg, ok := cmd().(router.ReplaceScreenMsg)
	require.True(t, ok, "expected the summary screen")
	assert.Equal(t, "Workout Summary", msg.Screen.Title())
	assert.NotNil(t, f.Env.Tracker.Record().LastWorkout)
}

func TestUnsavedCommitReturnsHomeWithError(t *testing.T) {
	f := newFixture(t, 1)
	completeOthers(t, f)
	f.Saver.Fail = true
	s := New(f.Env)

	_, cmd := s.Update(key('p'))
	require.NotNil(t, cmd)

	msg, ok := cmd().(router.PopToRootMsg)
	require.True(t, ok)
	notice := msg.Refresh.(env.NoticeMsg)
	assert.True(t, notice.Err)
	assert.True(t, f.Env.Tracker.Pending())
	assert.Nil(t, f.Env.Tracker.Record().LastWorkout)
}

func TestEscCancelsTicks(t *testing.T) {
	f := newFixture(t, 30)
	s := New(f.Env)
	s.Update(space)
	gen := s.gen

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	require.NotNil(t, cmd)
	_, ok := cmd().(router.PopScreenMsg)
	assert.True(t, ok)

	_, tick := s.Update(env.TickMsg{Gen: gen})
	assert.Nil(t, tick)
}

func TestViewShowsCurrentAndNext(t *testing.T) {
	f := newFixture(t, 30)
	s := New(f.Env)
	s.Update(space)

	view := s.View(100, 30)
	assert.Contains(t, view, "1/19  Burpees")
	assert.Contains(t, view, "Next: Mountain Climbers")
	assert.Contains(t, view, "30s")
}

func TestRenderListMarksProgress(t *testing.T) {
	tm := hiit.New([]string{"A", "B", "C"}, 10)
	tm, _ = tm.Start()
	tm.Index = 1

	out := renderList(tm, 5)
	assert.Contains(t, out, "✓ A")
	assert.Contains(t, out, "▸ B")
	assert.Contains(t, out, "    C")
}
