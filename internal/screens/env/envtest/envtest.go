// Package envtest builds screen environments backed by an in-memory SQLite
// store for screen tests.
package envtest

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/abhisek/nodaysoff/internal/effects"
	"github.com/abhisek/nodaysoff/internal/hiit"
	"github.com/abhisek/nodaysoff/internal/logging"
	"github.com/abhisek/nodaysoff/internal/screens/env"
	"github.com/abhisek/nodaysoff/internal/session"
	"github.com/abhisek/nodaysoff/internal/store"
	"github.com/abhisek/nodaysoff/internal/workout"
)

// UserID is the profile every fixture uses.
const UserID = "athlete"

// ErrSaveFailed is returned by a failing Saver.
var ErrSaveFailed = errors.New("disk unplugged")

// Saver wraps a record repo and can be told to fail.
type Saver struct {
	Repo  store.RecordRepo
	Fail  bool
	Saves int
}

func (s *Saver) Save(ctx context.Context, userID string, r workout.Record) error {
	if s.Fail {
		return ErrSaveFailed
	}
	s.Saves++
	return s.Repo.Save(ctx, userID, r)
}

// Fixture is a ready-to-use screen environment.
type Fixture struct {
	Env    *env.Env
	Store  *store.Store
	Saver  *Saver
	Now    time.Time
	Spoken []string
}

// Options tweaks a fixture.
type Options struct {
	Record *workout.Record // starting record; defaults to workout.Default()
	Now    time.Time       // fixed clock; defaults to 2026-03-02 09:00 UTC
}

// New opens a fresh store and wires a tracker, an effects dispatcher that
// records speech, and a zero lead-in timer.
func New(t testing.TB, opts Options) *Fixture {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	st, err := store.Open(fmt.Sprintf("file:envtest_%s?mode=memory&cache=shared", name))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	rec := workout.Default()
	if opts.Record != nil {
		rec = opts.Record.Clone()
	}
	now := opts.Now
	if now.IsZero() {
		now = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	}

	f := &Fixture{Store: st, Now: now}
	f.Saver = &Saver{Repo: st.RecordRepo()}
	if err := f.Saver.Repo.Save(context.Background(), UserID, rec); err != nil {
		t.Fatalf("seed record: %v", err)
	}

	logger := logging.Discard()
	tracker := session.NewTracker(UserID, rec, f.Saver,
		session.WithHistory(st.EventRepo()),
		session.WithClock(func() time.Time { return f.Now }),
		session.WithLogger(logger))
	fx := effects.New(effects.Options{
		SpeechCommand: "say",
		Logger:        logger,
		Runner: func(_ context.Context, _ string, args ...string) error {
			f.Spoken = append(f.Spoken, args[len(args)-1])
			return nil
		},
	})

	f.Env = env.New(context.Background(), tracker, fx)
	f.Env.History = st.EventRepo()
	f.Env.Logger = logger
	f.Env.LeadIn = 0
	f.Env.BeepWindow = hiit.DefaultBeepWindow
	return f
}
