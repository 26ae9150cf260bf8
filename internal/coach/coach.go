package coach

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/nodaysoff/internal/store"
)

// Recap is the short message shown after a workout is saved.
type Recap struct {
	Headline string `json:"headline"`
	Message  string `json:"message"`
}

var recapSchema = &Schema{
	Name:        "workout-recap",
	Description: "A short recap of a completed workout",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"headline": map[string]any{
				"type":        "string",
				"description": "At most eight words",
				"maxLength":   80,
			},
			"message": map[string]any{
				"type":        "string",
				"description": "One or two encouraging sentences",
				"maxLength":   400,
			},
		},
		"required":             []any{"headline", "message"},
		"additionalProperties": false,
	},
}

const recapSystemPrompt = `You are a terse, upbeat strength coach. You receive the facts of a workout
that has already been saved. Write a headline and one or two sentences.
Only mention numbers that appear in the facts. Never suggest changing the numbers;
the training rules adjust them automatically. If rest is recommended, encourage rest.`

const defaultTimeout = 20 * time.Second

// Coach asks a provider for recaps.
type Coach struct {
	provider Provider
	timeout  time.Duration
}

func NewCoach(p Provider, timeout time.Duration) *Coach {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Coach{provider: p, timeout: timeout}
}

// Recap returns a recap for a committed session. A nil Coach returns the
// static recap.
func (c *Coach) Recap(ctx context.Context, ev store.CommitEvent) (Recap, error) {
	if c == nil {
		return StaticRecap(ev), nil
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.provider.Generate(ctx, Request{
		System:      recapSystemPrompt,
		Messages:    []Message{{Role: RoleUser, Content: Facts(ev)}},
		Schema:      recapSchema,
		MaxTokens:   300,
		Temperature: 0.7,
	})
	if err != nil {
		return Recap{}, fmt.Errorf("generate recap: %w", err)
	}

	var r Recap
	if err := json.Unmarshal(resp.Content, &r); err != nil {
		return Recap{}, &ErrInvalidResponse{Content: resp.Content, Err: err}
	}
	r.Headline = strings.TrimSpace(r.Headline)
	r.Message = strings.TrimSpace(r.Message)
	return r, nil
}

// Facts renders a commit as the plain-text prompt body.
func Facts(ev store.CommitEvent) string {
	var b strings.Builder
	switch {
	case ev.FirstEver:
		b.WriteString("This was the first workout ever.\n")
	default:
		fmt.Fprintf(&b, "Days since the previous workout: %d (%s).\n", ev.GapDays, ev.Band)
	}
	fmt.Fprintf(&b, "Consecutive-day streak: %d -> %d.\n", ev.StreakBefore, ev.StreakAfter)
	fmt.Fprintf(&b, "HIIT interval: %s, %ds -> %ds.\n", passFail(ev.HIITPassed), ev.HIITBefore, ev.HIITAfter)
	fmt.Fprintf(&b, "VO2 max speed: %s, %.1f -> %.1f.\n", passFail(ev.VO2MaxPassed), ev.VO2MaxBefore, ev.VO2MaxAfter)
	if ev.WeightsDay != "" {
		fmt.Fprintf(&b, "Weights %s:\n", ev.WeightsDay)
		for _, w := range ev.Weights {
			fmt.Fprintf(&b, "- %s: %s, %s -> %s\n", w.Exercise, passFail(w.Passed), formatKg(w.Before), formatKg(w.After))
		}
	}
	if ev.RestEntered {
		b.WriteString("Five days in a row reached: two days of rest are recommended.\n")
	}
	if ev.RestCleared {
		b.WriteString("The user took a real rest before this workout.\n")
	}
	return b.String()
}

// StaticRecap is the recap used when no provider is configured or the
// provider fails.
func StaticRecap(ev store.CommitEvent) Recap {
	switch {
	case ev.RestEntered:
		return Recap{
			Headline: "Five days straight",
			Message:  "Outstanding consistency. Take the next two days off and come back fresh.",
		}
	case ev.FirstEver:
		return Recap{
			Headline: "Baseline set",
			Message:  "Your first workout is saved. Train tomorrow to start your streak.",
		}
	case ev.GapDays >= 3:
		return Recap{
			Headline: "Welcome back",
			Message:  "The decay stops here. Keep coming back daily to rebuild.",
		}
	case ev.GapDays == 1 && ev.StreakBefore >= 1:
		return Recap{
			Headline: fmt.Sprintf("Streak at %d", ev.StreakAfter),
			Message:  "Every number moved up 1%. See you tomorrow.",
		}
	}
	return Recap{
		Headline: "Workout saved",
		Message:  "Nice work. Train tomorrow to keep building.",
	}
}

func passFail(passed bool) string {
	if passed {
		return "passed"
	}
	return "failed"
}

func formatKg(w float64) string {
	if w == float64(int64(w)) {
		return fmt.Sprintf("%d", int64(w))
	}
	return fmt.Sprintf("%.1f", w)
}
