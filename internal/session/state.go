package session

import (
	"github.com/abhisek/nodaysoff/internal/catalog"
)

// Modality is one of the three parts of a sitting.
type Modality int

const (
	ModalityHIIT Modality = iota
	ModalityWeights
	ModalityVO2Max
)

func (m Modality) String() string {
	switch m {
	case ModalityHIIT:
		return "HIIT"
	case ModalityWeights:
		return "Weights"
	case ModalityVO2Max:
		return "VO2 Max"
	}
	return "unknown"
}

// Modalities is the number of modalities needed to commit.
const Modalities = 3

// WeightResult is one weights exercise attempted in this sitting.
type WeightResult struct {
	Exercise string
	Passed   bool
	Entered  float64 // weight the user lifted
	Weight   float64 // value carried to commit; the penalized weight on failure
}

// State is the ephemeral progress of one sitting.
type State struct {
	HIITComplete   bool
	HIITPassed     bool
	VO2MaxComplete bool
	VO2MaxPassed   bool

	WeightsComplete bool
	WeightsDay      catalog.DayKey

	// WeightsResults is in attempt order; a repeated exercise keeps its slot.
	WeightsResults []WeightResult
}

// NewState returns an empty session on day 1.
func NewState() State {
	return State{WeightsDay: catalog.Day1}
}

// Day returns the selected weights day, defaulting to day 1.
func (s State) Day() catalog.DayKey {
	if s.WeightsDay == "" {
		return catalog.Day1
	}
	return s.WeightsDay
}

// AllComplete reports whether every modality has been resolved.
func (s State) AllComplete() bool {
	return s.HIITComplete && s.VO2MaxComplete && s.WeightsComplete
}

// Progress returns how many modalities are complete (0..3).
func (s State) Progress() int {
	n := 0
	for _, done := range []bool{s.HIITComplete, s.WeightsComplete, s.VO2MaxComplete} {
		if done {
			n++
		}
	}
	return n
}

// Complete reports whether modality m is resolved.
func (s State) Complete(m Modality) bool {
	switch m {
	case ModalityHIIT:
		return s.HIITComplete
	case ModalityWeights:
		return s.WeightsComplete
	case ModalityVO2Max:
		return s.VO2MaxComplete
	}
	return false
}

// Result returns the recorded result for an exercise, if any.
func (s State) Result(exercise string) (WeightResult, bool) {
	for _, r := range s.WeightsResults {
		if r.Exercise == exercise {
			return r, true
		}
	}
	return WeightResult{}, false
}

// Clone returns a copy that shares no slices with s.
func (s State) Clone() State {
	out := s
	if s.WeightsResults != nil {
		out.WeightsResults = append([]WeightResult(nil), s.WeightsResults...)
	}
	return out
}

// putResult appends res, or overwrites an earlier attempt at the same exercise.
func (s *State) putResult(res WeightResult) {
	for i := range s.WeightsResults {
		if s.WeightsResults[i].Exercise == res.Exercise {
			s.WeightsResults[i] = res
			return
		}
	}
	s.WeightsResults = append(s.WeightsResults, res)
}
