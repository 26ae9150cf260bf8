package session

import "errors"

var (
	// ErrCommitNotSaved means a completed session could not be persisted.
	// The session is kept so the commit can be retried.
	ErrCommitNotSaved = errors.New("session complete but not saved")

	// ErrPenaltyNotSaved means a failed weights attempt could not be
	// persisted. Nothing was recorded; the attempt can be reported again.
	ErrPenaltyNotSaved = errors.New("weights penalty not saved")

	// ErrUnknownExercise is returned for an exercise outside the selected day.
	ErrUnknownExercise = errors.New("unknown exercise")

	// ErrUnknownDay is returned for a day key outside the program.
	ErrUnknownDay = errors.New("unknown weights day")

	// ErrNotReady is returned by RetryCommit when the session is incomplete.
	ErrNotReady = errors.New("session not complete")
)
