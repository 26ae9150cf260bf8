package history

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/nodaysoff/internal/catalog"
	"github.com/abhisek/nodaysoff/internal/router"
	"github.com/abhisek/nodaysoff/internal/screens/env/envtest"
	"github.com/abhisek/nodaysoff/internal/store"
)

// workout completes one sitting on Day 2, failing the first exercise when
// failFirst is set.
func workout(t *testing.T, f *envtest.Fixture, failFirst bool) {
	t.Helper()
	ctx := context.Background()
	tr := f.Env.Tracker
	require.NoError(t, tr.SelectWeightsDay(catalog.Day2))
	p, _ := catalog.Program(catalog.Day2)
	for i, ex := range p.Exercises {
		_, err := tr.RecordWeightsExercise(ctx, ex.Name, !(failFirst && i == 0), 50)
		require.NoError(t, err)
	}
	_, err := tr.RecordHIIT(ctx, true)
	require.NoError(t, err)
	out, err := tr.RecordVO2Max(ctx, true)
	require.NoError(t, err)
	require.True(t, out.Committed)
}

func load(t *testing.T, s *HistoryScreen) {
	t.Helper()
	cmd := s.Init()
	require.NotNil(t, cmd)
	s.Update(cmd())
	require.True(t, s.loaded)
}

func TestEmptyHistory(t *testing.T) {
	f := envtest.New(t, envtest.Options{})
	s := New(f.Env)
	load(t, s)

	assert.Contains(t, s.View(100, 30), "No workouts yet")
}

func TestListsCommitsNewestFirst(t *testing.T) {
	f := envtest.New(t, envtest.Options{})
	workout(t, f, false)
	f.Now = f.Now.Add(24 * time.Hour)
	workout(t, f, true)

	s := New(f.Env)
	load(t, s)

	require.Len(t, s.commits, 2)
	assert.Equal(t, 1, s.commits[0].StreakAfter)
	assert.Equal(t, 0, s.commits[1].StreakAfter)

	view := s.View(120, 30)
	assert.Contains(t, view, "LEGS")
	assert.Contains(t, view, "> ")
}

func TestExpandShowsChangesAndPenalties(t *testing.T) {
	f := envtest.New(t, envtest.Options{})
	workout(t, f, false)
	f.Now = f.Now.Add(24 * time.Hour)
	workout(t, f, true)

	s := New(f.Env)
	load(t, s)
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})

	view := s.View(120, 40)
	assert.Contains(t, view, "penalty: Goblet squats 50 → 49.5")
	assert.Contains(t, view, "HIIT 30s → 30s")
	require.Len(t, s.penalties[s.commits[0].Sequence], 1)
	assert.Empty(t, s.penalties[s.commits[1].Sequence])
}

func TestGroupPenalties(t *testing.T) {
	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	commits := []store.CommitEvent{
		{Sequence: 4, Timestamp: base.Add(48 * time.Hour)},
		{Sequence: 2, Timestamp: base},
	}
	penalties := []store.PenaltyEvent{
		{Sequence: 5, Timestamp: base.Add(72 * time.Hour), Exercise: "open sitting"},
		{Sequence: 3, Timestamp: base.Add(47 * time.Hour), Exercise: "second"},
		{Sequence: 1, Timestamp: base.Add(-time.Minute), Exercise: "first"},
	}

	got := groupPenalties(commits, penalties)

	require.Len(t, got[4], 1)
	assert.Equal(t, "second", got[4][0].Exercise)
	require.Len(t, got[2], 1)
	assert.Equal(t, "first", got[2][0].Exercise)
}

func TestNavigationAndEsc(t *testing.T) {
	f := envtest.New(t, envtest.Options{})
	workout(t, f, false)
	f.Now = f.Now.Add(24 * time.Hour)
	workout(t, f, false)

	s := New(f.Env)
	load(t, s)

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	assert.Equal(t, 1, s.selected)
	s.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	assert.Equal(t, 0, s.selected)

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	require.NotNil(t, cmd)
	_, ok := cmd().(router.PopScreenMsg)
	assert.True(t, ok)
	assert.False(t, strings.Contains(s.View(120, 30), "Loading"))
}
