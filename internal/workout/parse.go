package workout

import (
	"math"
	"strconv"
	"strings"
)

// ParseSeconds parses a HIIT duration entry. Anything that is not a positive
// whole number of seconds returns fallback.
func ParseSeconds(input string, fallback int) int {
	v, ok := parsePositive(input)
	if !ok {
		return fallback
	}
	n := int(math.Ceil(v))
	if n <= 0 || float64(n) != v {
		return fallback
	}
	return n
}

// ParseSpeed parses a VO2 max speed entry, falling back on invalid input.
func ParseSpeed(input string, fallback float64) float64 {
	v, ok := parsePositive(input)
	if !ok {
		return fallback
	}
	return v
}

// ParseWeight parses a weight entry. A blank entry keeps the fallback; an
// explicit 0 is allowed for exercises done without load.
func ParseWeight(input string, fallback float64) float64 {
	s := strings.TrimSpace(input)
	if s == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fallback
	}
	return CleanWeight(v, fallback)
}

// CleanWeight returns w, or fallback when w is NaN, infinite or negative.
func CleanWeight(w, fallback float64) float64 {
	if math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
		return fallback
	}
	return w
}

func parsePositive(input string) (float64, bool) {
	s := strings.TrimSpace(input)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0, false
	}
	return v, true
}
