package session

import "time"

// EventKind identifies an advisory presentation trigger.
type EventKind int

const (
	KindWeightPenalized EventKind = iota
	KindSessionCommitted
	KindRestWindowEntered
	KindRestWindowCleared
)

func (k EventKind) String() string {
	switch k {
	case KindWeightPenalized:
		return "weight_penalized"
	case KindSessionCommitted:
		return "session_committed"
	case KindRestWindowEntered:
		return "rest_window_entered"
	case KindRestWindowCleared:
		return "rest_window_cleared"
	}
	return "unknown"
}

// Event is emitted after a state change has been persisted. The UI uses it
// for banners and announcements; nothing in this package depends on it.
type Event struct {
	Kind     EventKind
	At       time.Time
	Exercise string     // KindWeightPenalized
	Weight   float64    // KindWeightPenalized: the stored weight
	Until    *time.Time // KindRestWindowEntered
}
