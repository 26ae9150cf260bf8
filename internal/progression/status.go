package progression

import (
	"fmt"
	"math"
	"time"
)

// StatusMessage is the user-facing summary of where the user stands today.
type StatusMessage struct {
	Band     Band
	Gap      Gap
	Title    string
	Short    string // one-liner for menus
	Today    string // what training today does
	Tomorrow string // what waiting a day does
	Warning  string // optional banner
	Streak   int
	Resting  bool // a recommended rest window is active
}

// Status describes the current state for display. An active rest window
// replaces the band wording but never changes the adjustment math.
func Status(last *time.Time, streak int, restUntil *time.Time, now time.Time) StatusMessage {
	gap := GapSince(last, now)
	msg := bandMessage(gap, streak)
	msg.Band = gap.Band()
	msg.Gap = gap
	msg.Streak = streak

	if RestWindowActive(restUntil, now) {
		msg.Resting = true
		msg.Title = "Recommended Rest"
		msg.Short = "Rest recommended"
		msg.Today = fmt.Sprintf("You've trained %d days straight. Rest is recommended until %s",
			streak, restUntil.Local().Format("Mon 15:04"))
		msg.Tomorrow = "Two days off clears the rest window with no change to your numbers"
		msg.Warning = ""
	}
	return msg
}

func bandMessage(gap Gap, streak int) StatusMessage {
	switch gap.Band() {
	case BandFirstEver:
		return StatusMessage{
			Title:    "Ready to Start Your Journey",
			Short:    "Start your journey!",
			Today:    "Start today and set your baseline numbers",
			Tomorrow: "The sooner you start, the sooner you improve",
		}
	case BandSameDay:
		tomorrow := "Train tomorrow to start a streak (gains begin on its second day)"
		if streak >= 1 {
			tomorrow = "Train tomorrow to keep your streak and get +1% on everything"
		}
		return StatusMessage{
			Title:    "Already Trained Today",
			Short:    "Trained today",
			Today:    "Great work! Come back tomorrow",
			Tomorrow: tomorrow,
		}
	case BandConsecutive:
		if streak >= 1 {
			return StatusMessage{
				Title:    "Consecutive Day Bonus Ready",
				Short:    "+1% boost ready!",
				Today:    "Train today to get +1% on all your numbers",
				Tomorrow: "Miss today and it becomes a rest day (no change)",
			}
		}
		return StatusMessage{
			Title:    "Back On Track",
			Short:    "Streak starts today",
			Today:    "Train today to start a streak (no change on the first day back)",
			Tomorrow: "Miss today and it becomes a rest day (no change)",
		}
	case BandRestDay:
		return StatusMessage{
			Title:    "Rest Day - No Changes",
			Short:    "Rest day - no change",
			Today:    "Train today to restart your streak",
			Tomorrow: "Wait another day and you'll face -1% penalties",
		}
	}

	missed := gap.Days - 2
	drop := (1 - math.Pow(0.99, float64(missed))) * 100
	return StatusMessage{
		Title:    "Decay Applied - Time to Return",
		Short:    fmt.Sprintf("-%.1f%% decay", drop),
		Today:    fmt.Sprintf("Train today to stop the decay (%d day(s) of -1%% counted)", missed),
		Tomorrow: "Each extra day missed compounds another -1%",
		Warning:  fmt.Sprintf("Your numbers drop about %.1f%% when you next train. Train today to prevent further losses.", drop),
	}
}
