package store

import (
	"context"
	"errors"
	"time"

	"github.com/abhisek/nodaysoff/internal/catalog"
	"github.com/abhisek/nodaysoff/internal/workout"
)

// ErrCorruptRecord is returned (wrapped) by Load when a stored record exists
// but cannot be decoded.
var ErrCorruptRecord = errors.New("corrupt workout record")

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// RecordRepo loads and saves the per-user workout record.
type RecordRepo interface {
	// Load returns the stored record, or nil if the user has none.
	Load(ctx context.Context, userID string) (*workout.Record, error)

	// Save replaces the user's record.
	Save(ctx context.Context, userID string, r workout.Record) error
}

// WeightChange is the before/after of one weights exercise in a commit.
type WeightChange struct {
	Exercise string  `json:"exercise"`
	Passed   bool    `json:"passed"`
	Before   float64 `json:"before"`
	After    float64 `json:"after"`
}

// CommitEvent records one completed 3-of-3 session.
type CommitEvent struct {
	Sequence     int64          `json:"-"`
	Timestamp    time.Time      `json:"-"`
	GapDays      int            `json:"gap_days"`
	FirstEver    bool           `json:"first_ever"`
	Band         string         `json:"band"`
	StreakBefore int            `json:"streak_before"`
	StreakAfter  int            `json:"streak_after"`
	HIITPassed   bool           `json:"hiit_passed"`
	HIITBefore   int            `json:"hiit_before"`
	HIITAfter    int            `json:"hiit_after"`
	VO2MaxPassed bool           `json:"vo2max_passed"`
	VO2MaxBefore float64        `json:"vo2max_before"`
	VO2MaxAfter  float64        `json:"vo2max_after"`
	WeightsDay   catalog.DayKey `json:"weights_day"`
	Weights      []WeightChange `json:"weights"`
	RestEntered  bool           `json:"rest_entered"`
	RestCleared  bool           `json:"rest_cleared"`
}

// PenaltyEvent records an immediate weights penalty.
type PenaltyEvent struct {
	Sequence  int64          `json:"-"`
	Timestamp time.Time      `json:"-"`
	Day       catalog.DayKey `json:"day"`
	Exercise  string         `json:"exercise"`
	Before    float64        `json:"before"`
	After     float64        `json:"after"`
}

// EventRepo provides append and query access to session history.
type EventRepo interface {
	// AppendCommit records a committed session.
	AppendCommit(ctx context.Context, userID string, ev CommitEvent) error

	// AppendPenalty records a failed weights attempt.
	AppendPenalty(ctx context.Context, userID string, ev PenaltyEvent) error

	// QueryCommits returns commits newest first.
	QueryCommits(ctx context.Context, userID string, opts QueryOpts) ([]CommitEvent, error)

	// QueryPenalties returns penalties newest first.
	QueryPenalties(ctx context.Context, userID string, opts QueryOpts) ([]PenaltyEvent, error)
}
