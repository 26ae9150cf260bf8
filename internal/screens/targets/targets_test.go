package targets

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/nodaysoff/internal/screens/env/envtest"
)

var (
	enter     = tea.KeyPressMsg{Code: tea.KeyEnter}
	tab       = tea.KeyPressMsg{Code: tea.KeyTab}
	backspace = tea.KeyPressMsg{Code: tea.KeyBackspace}
)

func typeText(s *TargetsScreen, text string) {
	for _, r := range text {
		s.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

func clearField(s *TargetsScreen) {
	for range 8 {
		s.Update(backspace)
	}
}

func TestPrefilled(t *testing.T) {
	f := envtest.New(t, envtest.Options{})
	s := New(f.Env)

	assert.Equal(t, "30", s.fields[fieldHIIT].Value())
	assert.Equal(t, "10.0", s.fields[fieldVO2Max].Value())
}

func TestSaveBothTargets(t *testing.T) {
	f := envtest.New(t, envtest.Options{})
	s := New(f.Env)

	clearField(s)
	typeText(s, "45")
	s.Update(tab)
	clearField(s)
	typeText(s, "11.5")
	s.Update(enter)

	rec := f.Env.Tracker.Record()
	assert.Equal(t, 45, rec.HIITTarget)
	assert.Equal(t, 11.5, rec.VO2MaxTarget)
	assert.Contains(t, s.status, "Saved")

	stored, err := f.Store.RecordRepo().Load(context.Background(), envtest.UserID)
	require.NoError(t, err)
	assert.Equal(t, 45, stored.HIITTarget)
}

func TestInvalidEntryKeepsTarget(t *testing.T) {
	f := envtest.New(t, envtest.Options{})
	s := New(f.Env)

	clearField(s)
	s.Update(enter)

	assert.Equal(t, 30, f.Env.Tracker.Record().HIITTarget)
	assert.Equal(t, "30", s.fields[fieldHIIT].Value(), "rejected entry is replaced by the kept value")
}

func TestSaveFailureShown(t *testing.T) {
	f := envtest.New(t, envtest.Options{})
	s := New(f.Env)
	f.Saver.Fail = true

	clearField(s)
	typeText(s, "40")
	s.Update(enter)

	assert.True(t, s.failed)
	assert.Contains(t, s.status, "Could not save")
	assert.Equal(t, 30, f.Env.Tracker.Record().HIITTarget)
}
