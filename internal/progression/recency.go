package progression

import "time"

// Day is the unit the streak rules count in.
const Day = 24 * time.Hour

// Streak and rest-window rules.
const (
	// RestTriggerStreak is the consecutive-day count that opens a rest window.
	RestTriggerStreak = 5

	// RestWindow is how long a recommended rest lasts from the commit that set it.
	RestWindow = 2 * Day
)

// Gap is the whole number of days since the last completed session.
// FirstEver is set when no session has been completed yet.
type Gap struct {
	Days      int
	FirstEver bool
}

// Band classifies a Gap for adjustment and status purposes.
type Band int

const (
	BandFirstEver Band = iota
	BandSameDay
	BandConsecutive
	BandRestDay
	BandLapsed
)

func (b Band) String() string {
	switch b {
	case BandFirstEver:
		return "first-ever"
	case BandSameDay:
		return "same-day"
	case BandConsecutive:
		return "consecutive"
	case BandRestDay:
		return "rest-day"
	case BandLapsed:
		return "lapsed"
	}
	return "unknown"
}

// GapSince returns floor(|now - last| / 24h), or a first-ever gap when last is nil.
func GapSince(last *time.Time, now time.Time) Gap {
	if last == nil || last.IsZero() {
		return Gap{FirstEver: true}
	}
	d := now.Sub(*last)
	if d < 0 {
		d = -d
	}
	return Gap{Days: int(d / Day)}
}

// Band returns the classification band for the gap.
func (g Gap) Band() Band {
	switch {
	case g.FirstEver:
		return BandFirstEver
	case g.Days == 0:
		return BandSameDay
	case g.Days == 1:
		return BandConsecutive
	case g.Days == 2:
		return BandRestDay
	default:
		return BandLapsed
	}
}

// NextStreak returns the consecutive-day count after a session committed at gap.
// Only a literal one-day gap continues a streak; a first-ever session starts at 0.
func NextStreak(gap Gap, streak int) int {
	if gap.FirstEver || gap.Days != 1 {
		return 0
	}
	if streak < 0 {
		streak = 0
	}
	return streak + 1
}

// RestWindowActive reports whether a recommended rest is still running at now.
func RestWindowActive(restUntil *time.Time, now time.Time) bool {
	return restUntil != nil && now.Before(*restUntil)
}

// RealRestTaken reports whether the gap counts as a genuine rest (two days or more).
func RealRestTaken(gap Gap) bool {
	return !gap.FirstEver && gap.Days >= 2
}
