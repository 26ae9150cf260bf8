package coach

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/nodaysoff/internal/catalog"
	"github.com/abhisek/nodaysoff/internal/store"
)

func sampleEvent() store.CommitEvent {
	return store.CommitEvent{
		GapDays:      1,
		Band:         "consecutive",
		StreakBefore: 1,
		StreakAfter:  2,
		HIITPassed:   true,
		HIITBefore:   30,
		HIITAfter:    31,
		VO2MaxPassed: false,
		VO2MaxBefore: 10,
		VO2MaxAfter:  10,
		WeightsDay:   catalog.Day1,
		Weights: []store.WeightChange{
			{Exercise: "Bench press", Passed: true, Before: 50, After: 50.5},
		},
	}
}

func TestCoach_RecapFromProvider(t *testing.T) {
	mock := NewMockProvider(MockResponse{
		Content: json.RawMessage(`{"headline":" Two in a row ","message":"HIIT is up to 31s."}`),
	})
	c := NewCoach(mock, time.Second)

	r, err := c.Recap(context.Background(), sampleEvent())
	require.NoError(t, err)
	assert.Equal(t, "Two in a row", r.Headline)
	assert.Equal(t, "HIIT is up to 31s.", r.Message)

	require.Equal(t, 1, mock.CallCount())
	req := mock.Calls[0]
	assert.Equal(t, recapSchema, req.Schema)
	require.Len(t, req.Messages, 1)
	assert.Contains(t, req.Messages[0].Content, "HIIT interval: passed, 30s -> 31s.")
	assert.Contains(t, req.Messages[0].Content, "- Bench press: passed, 50 -> 50.5")
}

func TestCoach_RejectsContentOutsideSchema(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{"headline":"Hi"}`)})
	c := NewCoach(mock, time.Second)

	_, err := c.Recap(context.Background(), sampleEvent())
	var inv *ErrInvalidResponse
	require.True(t, errors.As(err, &inv), "got %v", err)
}

func TestCoach_ProviderFailure(t *testing.T) {
	mock := NewMockProvider(MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}})
	c := NewCoach(mock, time.Second)

	_, err := c.Recap(context.Background(), sampleEvent())
	var unavail *ErrProviderUnavailable
	assert.True(t, errors.As(err, &unavail))
}

func TestCoach_NilUsesStaticRecap(t *testing.T) {
	var c *Coach
	r, err := c.Recap(context.Background(), sampleEvent())
	require.NoError(t, err)
	assert.Equal(t, StaticRecap(sampleEvent()), r)
}

func TestStaticRecap(t *testing.T) {
	tests := []struct {
		name string
		ev   store.CommitEvent
		want string
	}{
		{"rest entered", store.CommitEvent{GapDays: 1, StreakAfter: 5, RestEntered: true}, "Five days straight"},
		{"first ever", store.CommitEvent{FirstEver: true}, "Baseline set"},
		{"lapsed", store.CommitEvent{GapDays: 6}, "Welcome back"},
		{"streak", store.CommitEvent{GapDays: 1, StreakBefore: 2, StreakAfter: 3}, "Streak at 3"},
		{"rest day", store.CommitEvent{GapDays: 2}, "Workout saved"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StaticRecap(tt.ev).Headline)
		})
	}
}

func TestFacts(t *testing.T) {
	ev := store.CommitEvent{FirstEver: true, HIITBefore: 30, HIITAfter: 30, VO2MaxBefore: 10, VO2MaxAfter: 10}
	facts := Facts(ev)
	assert.True(t, strings.HasPrefix(facts, "This was the first workout ever."))
	assert.NotContains(t, facts, "Weights")

	ev = sampleEvent()
	ev.RestEntered = true
	facts = Facts(ev)
	assert.Contains(t, facts, "Days since the previous workout: 1 (consecutive).")
	assert.Contains(t, facts, "VO2 max speed: failed, 10.0 -> 10.0.")
	assert.Contains(t, facts, "two days of rest are recommended")
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"disabled", Config{}, false},
		{"mock", Config{Provider: "mock"}, false},
		{"anthropic without key", Config{Provider: "anthropic"}, true},
		{"anthropic with key", Config{Provider: "anthropic", AnthropicAPIKey: "k"}, false},
		{"openai without key", Config{Provider: "openai"}, true},
		{"gemini without key", Config{Provider: "gemini"}, true},
		{"unknown", Config{Provider: "oracle"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNew_DisabledReturnsNil(t *testing.T) {
	c, err := New(context.Background(), Config{}, nil)
	require.NoError(t, err)
	assert.Nil(t, c)
}

func TestNewProvider_MockIsWrapped(t *testing.T) {
	p, err := NewProvider(context.Background(), Config{Provider: "mock", Retry: store.RetryConfig{MaxAttempts: 1}}, nil)
	require.NoError(t, err)
	_, ok := p.(*RetryProvider)
	assert.True(t, ok)
	assert.Equal(t, "mock", p.ModelID())
}
