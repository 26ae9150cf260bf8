package summary

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/nodaysoff/internal/catalog"
	"github.com/abhisek/nodaysoff/internal/coach"
	"github.com/abhisek/nodaysoff/internal/progression"
	"github.com/abhisek/nodaysoff/internal/router"
	"github.com/abhisek/nodaysoff/internal/screens/env/envtest"
	"github.com/abhisek/nodaysoff/internal/session"
	"github.com/abhisek/nodaysoff/internal/store"
)

func streakSummary() session.CommitSummary {
	return session.CommitSummary{
		At:           time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
		Gap:          progression.Gap{Days: 1},
		StreakBefore: 2,
		StreakAfter:  3,
		HIIT:         session.TargetChange{Passed: true, Before: 30, After: 31},
		VO2Max:       session.TargetChange{Passed: false, Before: 10, After: 10},
		WeightsDay:   catalog.Day2,
		Weights: []store.WeightChange{
			{Exercise: "Leg press", Passed: true, Before: 100, After: 101},
		},
	}
}

func TestSummaryStaticRecapWithoutCoach(t *testing.T) {
	f := envtest.New(t, envtest.Options{})
	s := New(f.Env, streakSummary(), []string{"Workout complete! Progress saved."})

	if cmd := s.Init(); cmd != nil {
		t.Fatal("expected no command without a coach")
	}

	view := s.View(100, 30)
	for _, want := range []string{
		"Workout complete!",
		"Streak: 2 → 3",
		"30s → 31s",
		"Leg press",
		"LEGS",
		"Progress saved",
		"Streak at 3",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestSummaryCoachRecap(t *testing.T) {
	f := envtest.New(t, envtest.Options{})
	mock := coach.NewMockProvider(coach.MockResponse{
		Content: []byte(`{"headline":"Strong day","message":"Three in a row. Keep it going."}`),
	})
	f.Env.Coach = coach.NewCoach(mock, time.Second)

	s := New(f.Env, streakSummary(), nil)
	cmd := s.Init()
	if cmd == nil {
		t.Fatal("expected recap command")
	}
	if !strings.Contains(s.View(100, 30), "writing your recap") {
		t.Error("expected loading text before the recap arrives")
	}

	s.Update(cmd())

	view := s.View(100, 30)
	if !strings.Contains(view, "Coach: Strong day") {
		t.Errorf("view missing coach headline:\n%s", view)
	}
	if mock.CallCount() != 1 {
		t.Errorf("provider calls = %d, want 1", mock.CallCount())
	}
}

func TestSummaryCoachFailureFallsBack(t *testing.T) {
	f := envtest.New(t, envtest.Options{})
	f.Env.Coach = coach.NewCoach(coach.NewMockProvider(coach.MockResponse{Err: errors.New("offline")}), time.Second)

	s := New(f.Env, streakSummary(), nil)
	s.Update(s.Init()())

	view := s.View(100, 30)
	if !strings.Contains(view, "Streak at 3") {
		t.Errorf("expected static recap after coach failure:\n%s", view)
	}
	if strings.Contains(view, "Coach:") {
		t.Error("static recap should not be labelled as the coach")
	}
}

func TestSummaryEnterReturnsHome(t *testing.T) {
	f := envtest.New(t, envtest.Options{})
	s := New(f.Env, streakSummary(), nil)
	s.Init()

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected command")
	}
	if _, ok := cmd().(router.PopToRootMsg); !ok {
		t.Errorf("expected PopToRootMsg")
	}
}

func TestSummaryKeyHints(t *testing.T) {
	f := envtest.New(t, envtest.Options{})
	s := New(f.Env, streakSummary(), nil)
	if len(s.KeyHints()) != 2 {
		t.Errorf("expected 2 key hints, got %d", len(s.KeyHints()))
	}
	if s.Title() != "Workout Summary" {
		t.Errorf("title = %q", s.Title())
	}
}

func TestShowOnlyForCommits(t *testing.T) {
	f := envtest.New(t, envtest.Options{})
	if Show(f.Env, session.Outcome{}, nil) != nil {
		t.Error("expected nil command for an uncommitted outcome")
	}
	sum := streakSummary()
	cmd := Show(f.Env, session.Outcome{Committed: true, Summary: &sum}, nil)
	if cmd == nil {
		t.Fatal("expected command")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg")
	}
	if msg.Screen.Title() != "Workout Summary" {
		t.Errorf("replaced with %q", msg.Screen.Title())
	}
}
