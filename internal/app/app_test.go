package app

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/nodaysoff/internal/catalog"
	"github.com/abhisek/nodaysoff/internal/screens/env/envtest"
	"github.com/abhisek/nodaysoff/internal/screens/home"
	"github.com/abhisek/nodaysoff/internal/screens/intro"
	"github.com/abhisek/nodaysoff/internal/workout"
)

func TestFirstRunStartsOnIntro(t *testing.T) {
	f := envtest.New(t, envtest.Options{})
	m := newAppModel(f.Env)
	assert.IsType(t, &intro.IntroScreen{}, m.router.Active())
}

func TestReturningUserStartsOnHome(t *testing.T) {
	rec := workout.Default()
	last := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	rec.LastWorkout = &last
	rec.ConsecutiveDays = 2
	f := envtest.New(t, envtest.Options{Record: &rec})

	m := newAppModel(f.Env)
	assert.IsType(t, &home.HomeScreen{}, m.router.Active())

	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 60})
	content := next.(AppModel).render()
	assert.Contains(t, content, "★ 2 days")
	assert.Contains(t, content, "● 0/3")
}

func TestHeaderShowsUnsaved(t *testing.T) {
	f := envtest.New(t, envtest.Options{})
	f.Saver.Fail = true
	ctx := context.Background()
	_, err := f.Env.Tracker.RecordVO2Max(ctx, true)
	require.NoError(t, err)
	_, err = f.Env.Tracker.RecordHIIT(ctx, true)
	require.NoError(t, err)
	require.NoError(t, f.Env.Tracker.SelectWeightsDay(catalog.Day4))
	_, err = f.Env.Tracker.RecordWeightsExercise(ctx, "Deadlift", true, 100)
	require.Error(t, err)

	m := newAppModel(f.Env)
	assert.True(t, m.headerStats().Unsaved)
}

func TestCtrlCQuits(t *testing.T) {
	f := envtest.New(t, envtest.Options{})
	m := newAppModel(f.Env)
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestTooSmall(t *testing.T) {
	f := envtest.New(t, envtest.Options{})
	next, _ := newAppModel(f.Env).Update(tea.WindowSizeMsg{Width: 20, Height: 5})
	assert.True(t, strings.Contains(next.(AppModel).render(), "small"))
}
