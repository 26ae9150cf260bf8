package weights

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/nodaysoff/internal/catalog"
	"github.com/abhisek/nodaysoff/internal/router"
	"github.com/abhisek/nodaysoff/internal/screens/env"
	"github.com/abhisek/nodaysoff/internal/screens/env/envtest"
	"github.com/abhisek/nodaysoff/internal/store"
	"github.com/abhisek/nodaysoff/internal/workout"
)

var (
	enter = tea.KeyPressMsg{Code: tea.KeyEnter}
	down  = tea.KeyPressMsg{Code: tea.KeyDown}
)

func key(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func typeText(s *WeightsScreen, text string) {
	for _, r := range text {
		s.Update(key(r))
	}
}

func seeded(t *testing.T) *envtest.Fixture {
	rec := workout.Default()
	rec.WeightsByDay[catalog.Day1]["Incline bench press"] = 50
	return envtest.New(t, envtest.Options{Record: &rec})
}

func TestSelectDayPrefillsStoredWeight(t *testing.T) {
	f := seeded(t)
	s := New(f.Env)

	s.Update(enter)

	require.Equal(t, phaseLift, s.phase)
	assert.Equal(t, catalog.Day1, s.program.Key)
	assert.Equal(t, "50", s.input.Value())
	assert.Equal(t, "Weights: CHEST/BICEPS/ABS", s.Title())
}

func TestNumberKeySelectsDay(t *testing.T) {
	f := seeded(t)
	s := New(f.Env)

	s.Update(key('4'))

	require.Equal(t, phaseLift, s.phase)
	assert.Equal(t, catalog.Day4, s.program.Key)
	assert.Equal(t, catalog.Day4, f.Env.Tracker.State().Day())
	assert.Equal(t, "", s.input.Value(), "no stored weight means an empty field")
}

func TestPassAdvancesWithEnteredWeight(t *testing.T) {
	f := seeded(t)
	s := New(f.Env)
	s.Update(enter)

	s.Update(key('p'))

	res, ok := f.Env.Tracker.State().Result("Incline bench press")
	require.True(t, ok)
	assert.True(t, res.Passed)
	assert.Equal(t, 50.0, res.Entered)
	assert.Equal(t, 1, s.cursor)

	typeText(s, "42.5")
	s.Update(enter)

	res, ok = f.Env.Tracker.State().Result("Machine bench press/flat bench")
	require.True(t, ok)
	assert.Equal(t, 42.5, res.Entered)
	assert.Equal(t, 2, s.cursor)
}

func TestFailPenalizesImmediately(t *testing.T) {
	f := seeded(t)
	s := New(f.Env)
	s.Update(enter)

	s.Update(key('f'))

	assert.Equal(t, 49.5, f.Env.Tracker.Record().Weight(catalog.Day1, "Incline bench press"))
	stored, err := f.Store.RecordRepo().Load(context.Background(), envtest.UserID)
	require.NoError(t, err)
	assert.Equal(t, 49.5, stored.Weight(catalog.Day1, "Incline bench press"))

	require.Len(t, s.banners, 1)
	assert.Contains(t, s.banners[0], "49.5")

	penalties, err := f.Store.EventRepo().QueryPenalties(context.Background(), envtest.UserID, store.QueryOpts{})
	require.NoError(t, err)
	require.Len(t, penalties, 1)
	assert.Equal(t, 50.0, penalties[0].Before)
}

func TestPenaltySaveFailureRecordsNothing(t *testing.T) {
	f := seeded(t)
	s := New(f.Env)
	s.Update(enter)
	f.Saver.Fail = true

	_, cmd := s.Update(key('f'))

	assert.Nil(t, cmd)
	assert.Contains(t, s.errMsg, "try again")
	assert.Equal(t, 0, s.cursor)
	_, ok := f.Env.Tracker.State().Result("Incline bench press")
	assert.False(t, ok)
	assert.Equal(t, 50.0, f.Env.Tracker.Record().Weight(catalog.Day1, "Incline bench press"))
}

func TestLastExerciseCompletesWeights(t *testing.T) {
	f := seeded(t)
	s := New(f.Env)
	s.Update(key('2'))

	p, _ := catalog.Program(catalog.Day2)
	var cmd tea.Cmd
	for range p.Exercises {
		typeText(s, "30")
		_, cmd = s.Update(enter)
	}
	require.NotNil(t, cmd)

	msg, ok := cmd().(router.PopToRootMsg)
	require.True(t, ok)
	notice := msg.Refresh.(env.NoticeMsg)
	assert.Equal(t, "Weights complete!", notice.Lines[0])
	assert.True(t, f.Env.Tracker.State().WeightsComplete)
}

func TestFinalModalityShowsSummary(t *testing.T) {
	f := seeded(t)
	ctx := context.Background()
	_, err := f.Env.Tracker.RecordHIIT(ctx, true)
	require.NoError(t, err)
	_, err = f.Env.Tracker.RecordVO2Max(ctx, false)
	require.NoError(t, err)

	s := New(f.Env)
	s.Update(key('4'))
	p, _ := catalog.Program(catalog.Day4)
	for i := 0; i < len(p.Exercises)-1; i++ {
		s.Update(down)
	}

	typeText(s, "100")
	_, cmd := s.Update(key('p'))
	require.NotNil(t, cmd)
	msg, ok := cmd().(router.ReplaceScreenMsg)
	require.True(t, ok)
	assert.Equal(t, "Workout Summary", msg.Screen.Title())
	assert.Equal(t, 100.0, f.Env.Tracker.Record().Weight(catalog.Day4, "Deadlift"))
}

func TestEndEarlyKeepsResults(t *testing.T) {
	f := seeded(t)
	s := New(f.Env)
	s.Update(enter)
	s.Update(key('p'))

	_, cmd := s.Update(key('e'))
	require.NotNil(t, cmd)
	msg := cmd().(router.PopToRootMsg)
	notice := msg.Refresh.(env.NoticeMsg)
	assert.Contains(t, notice.Lines[0], "1 of 9")
	assert.Len(t, f.Env.Tracker.State().WeightsResults, 1)
}

func TestSwitchDayWarning(t *testing.T) {
	f := seeded(t)
	s := New(f.Env)
	s.Update(enter)
	s.Update(key('p'))
	s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	require.Equal(t, phaseDay, s.phase)

	s.Update(down)
	view := s.View(100, 30)
	assert.True(t, strings.Contains(view, "discards 1 result"), "missing warning:\n%s", view)
}

func TestEscFromDaysPops(t *testing.T) {
	f := seeded(t)
	s := New(f.Env)

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	require.NotNil(t, cmd)
	_, ok := cmd().(router.PopScreenMsg)
	assert.True(t, ok)
}
