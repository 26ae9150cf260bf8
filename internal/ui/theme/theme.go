// Package theme holds the palette and shared styles.
package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette: gym-floor dark with high-contrast accents.
var (
	Primary   = lipgloss.Color("#EF4444") // Red
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F97316") // Orange
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	Warning   = lipgloss.Color("#EAB308") // Amber
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgDark    = lipgloss.Color("#0F172A") // Deep Navy
	BgCard    = lipgloss.Color("#1E293B") // Dark Slate
	Border    = lipgloss.Color("#334155") // Slate

	ArcadeYellow = lipgloss.Color("#FACC15")
	ArcadeCyan   = lipgloss.Color("#22D3EE")
)

// Typography
var (
	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// Card is the plain panel used by list screens.
var Card = lipgloss.NewStyle().
	Background(BgCard).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(Border).
	Padding(1, 2)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(ArcadeYellow).
			Bold(true)

	Passed = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Failed = lipgloss.NewStyle().
		Foreground(Error).
		Bold(true)

	// Banner is the one-line notice shown after a saved change.
	Banner = lipgloss.NewStyle().
		Foreground(Warning).
		Bold(true)
)

// Countdown styles the big HIIT clock; CountdownWarn takes over inside
// the beep window.
var (
	Countdown = lipgloss.NewStyle().
			Foreground(ArcadeCyan).
			Bold(true)

	CountdownWarn = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true).
			Blink(true)
)
