package workout

import "testing"

func TestParseSeconds(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"45", 45},
		{" 40 ", 40},
		{"", 30},
		{"abc", 30},
		{"-5", 30},
		{"0", 30},
		{"12.5", 30},
		{"NaN", 30},
		{"Inf", 30},
	}
	for _, tt := range tests {
		if got := ParseSeconds(tt.in, 30); got != tt.want {
			t.Errorf("ParseSeconds(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestParseSpeed(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"11.5", 11.5},
		{"9", 9},
		{"", 10},
		{"fast", 10},
		{"0", 10},
		{"-2", 10},
		{"nan", 10},
	}
	for _, tt := range tests {
		if got := ParseSpeed(tt.in, 10); got != tt.want {
			t.Errorf("ParseSpeed(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseWeight(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"62.5", 62.5},
		{"0", 0},
		{"", 40},
		{"heavy", 40},
		{"-10", 40},
		{"+Inf", 40},
	}
	for _, tt := range tests {
		if got := ParseWeight(tt.in, 40); got != tt.want {
			t.Errorf("ParseWeight(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
