package intro

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/nodaysoff/internal/ui/theme"
)

// BannerArt is the block-letter title shared with the home screen.
const BannerArt = `
███╗   ██╗ ██████╗    ██████╗  █████╗ ██╗   ██╗███████╗
████╗  ██║██╔═══██╗   ██╔══██╗██╔══██╗╚██╗ ██╔╝██╔════╝
██╔██╗ ██║██║   ██║   ██║  ██║███████║ ╚████╔╝ ███████╗
██║╚██╗██║██║   ██║   ██║  ██║██╔══██║  ╚██╔╝  ╚════██║
██║ ╚████║╚██████╔╝   ██████╔╝██║  ██║   ██║   ███████║
╚═╝  ╚═══╝ ╚═════╝    ╚═════╝ ╚═╝  ╚═╝   ╚═╝   ╚══════╝
                ██████╗ ███████╗███████╗
               ██╔═══██╗██╔════╝██╔════╝
               ██║   ██║█████╗  █████╗
               ██║   ██║██╔══╝  ██╔══╝
               ╚██████╔╝██║     ██║
                ╚═════╝ ╚═╝     ╚═╝`

// BannerCompact is the title for narrow terminals.
const BannerCompact = "N O   D A Y S   O F F"

// RenderBanner returns the NO DAYS OFF banner styled in the primary color.
// Uses a compact fallback for terminals narrower than 60 columns.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 60 {
		return style.Render(BannerCompact)
	}
	return style.Render(BannerArt)
}
