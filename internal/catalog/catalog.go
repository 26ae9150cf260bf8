package catalog

import "time"

// DayKey identifies one of the four weights split days.
type DayKey string

const (
	Day1 DayKey = "day1"
	Day2 DayKey = "day2"
	Day3 DayKey = "day3"
	Day4 DayKey = "day4"
)

// VO2 max protocol: fixed intervals at the target speed.
const (
	VO2MaxIntervals        = 4
	VO2MaxIntervalDuration = time.Minute
)

// Exercise is one movement in a weights day with its rep target.
type Exercise struct {
	Name string
	Reps int
}

// DayProgram is the ordered exercise list for a split day.
type DayProgram struct {
	Key       DayKey
	Name      string
	Exercises []Exercise
}

// HIITExercises is the fixed circuit order. Names repeat on purpose.
var HIITExercises = []string{
	"Burpees", "Mountain Climbers", "Press-ups", "Plank", "Squats",
	"Bench Dips", "High knees", "Burpees", "Press-ups", "Plank",
	"V-ups", "Alternate lunges", "Incline Press-ups", "Pull ups",
	"Leg raises", "Alternate leg raises", "Knees to chest",
	"Barbell squats", "Deadlifts",
}

var programs = map[DayKey]DayProgram{
	Day1: {
		Key:  Day1,
		Name: "CHEST/BICEPS/ABS",
		Exercises: []Exercise{
			{Name: "Incline bench press", Reps: 8},
			{Name: "Machine bench press/flat bench", Reps: 8},
			{Name: "Incline dumbbell fly", Reps: 12},
			{Name: "Machine fly/cable fly", Reps: 12},
			{Name: "Incline bicep curl", Reps: 8},
			{Name: "EZ bar curl/barbell curl", Reps: 8},
			{Name: "Concentration/cable curl", Reps: 12},
			{Name: "Hanging leg raise", Reps: 12},
			{Name: "Cable crunch", Reps: 15},
		},
	},
	Day2: {
		Key:  Day2,
		Name: "LEGS",
		Exercises: []Exercise{
			{Name: "Goblet squats", Reps: 12},
			{Name: "Leg press", Reps: 12},
			{Name: "Leg press calf raise", Reps: 15},
			{Name: "Smith machine squat/barbell squat", Reps: 12},
			{Name: "Hip abductor", Reps: 15},
			{Name: "Romanian Dead Lift", Reps: 8},
			{Name: "Hip aductor", Reps: 15},
			{Name: "Weighted lunges", Reps: 12},
		},
	},
	Day3: {
		Key:  Day3,
		Name: "SHOULDERS/TRICEPS/ABS",
		Exercises: []Exercise{
			{Name: "Overhead press", Reps: 8},
			{Name: "Dumbbell lateral raise", Reps: 8},
			{Name: "Barbell upright row", Reps: 8},
			{Name: "Cable lateral raise", Reps: 12},
			{Name: "Cable pressdown", Reps: 8},
			{Name: "EZ bar skullcrusher", Reps: 8},
			{Name: "Cable overhead extension", Reps: 12},
			{Name: "Weighted Abdominal Twists", Reps: 12},
			{Name: "Reverse crunch", Reps: 10},
		},
	},
	Day4: {
		Key:  Day4,
		Name: "BACK",
		Exercises: []Exercise{
			{Name: "Dumbbell pullover", Reps: 12},
			{Name: "Machine pulldown", Reps: 8},
			{Name: "Barbell row", Reps: 8},
			{Name: "Cable row", Reps: 8},
			{Name: "Chest-supported row or facepull", Reps: 12},
			{Name: "Barbell back extension", Reps: 10},
			{Name: "Deadlift", Reps: 8},
		},
	},
}

// Days returns the split days in program order.
func Days() []DayKey {
	return []DayKey{Day1, Day2, Day3, Day4}
}

// Program returns the program for day. The returned exercise slice is a copy.
func Program(day DayKey) (DayProgram, bool) {
	p, ok := programs[day]
	if !ok {
		return DayProgram{}, false
	}
	p.Exercises = append([]Exercise(nil), p.Exercises...)
	return p, true
}

// Contains reports whether exercise belongs to the day's program.
func Contains(day DayKey, exercise string) bool {
	p, ok := programs[day]
	if !ok {
		return false
	}
	for _, e := range p.Exercises {
		if e.Name == exercise {
			return true
		}
	}
	return false
}

// IsLast reports whether exercise is the final movement of the day's program.
func IsLast(day DayKey, exercise string) bool {
	p, ok := programs[day]
	if !ok || len(p.Exercises) == 0 {
		return false
	}
	return p.Exercises[len(p.Exercises)-1].Name == exercise
}

// ParseDay accepts "day3" or "3".
func ParseDay(s string) (DayKey, bool) {
	switch s {
	case "1", string(Day1):
		return Day1, true
	case "2", string(Day2):
		return Day2, true
	case "3", string(Day3):
		return Day3, true
	case "4", string(Day4):
		return Day4, true
	}
	return "", false
}

// Number returns 1-4 for a valid day, 0 otherwise.
func (d DayKey) Number() int {
	for i, k := range Days() {
		if k == d {
			return i + 1
		}
	}
	return 0
}
