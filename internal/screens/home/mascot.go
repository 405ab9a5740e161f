package home

import (
	"charm.land/lipgloss/v2"

	"github.com/HEADES94/MovieProjektFinal/internal/ui/theme"
)

// MascotVariant selects which clapperboard art to display.
type MascotVariant int

const (
	MascotIdle        MascotVariant = iota // Red clapper
	MascotCelebrating                      // Gold, every streak reached
	MascotNudge                            // Amber, no quiz played yet
)

const mascotIdle = `╱╲╱╲╱╲╱╲╱
┌───────┐
│ ◉   ◉ │
│   ▽   │
│ TAKE1 │
└───────┘`

const mascotCelebrating = `╱╲╱╲╱╲╱╲╱
┌───────┐
│ ★   ★ │
│   ▿   │
│ ENCORE│
└─╥═══╥─┘`

const mascotNudge = `╱╲╱╲╱╲╱╲╱
┌───────┐ !
│ ◉   ◉ │
│   ○   │
│ ACTION│
└───────┘`

// VariantFor picks the mascot for a player's progress.
func VariantFor(attempts, nextStreak int) MascotVariant {
	switch {
	case attempts == 0:
		return MascotNudge
	case nextStreak == 0:
		return MascotCelebrating
	default:
		return MascotIdle
	}
}

// RenderMascot returns the mascot art for the given variant.
func RenderMascot(v MascotVariant) string {
	art, fg := mascotIdle, theme.Primary
	switch v {
	case MascotCelebrating:
		art, fg = mascotCelebrating, theme.Marquee
	case MascotNudge:
		art, fg = mascotNudge, theme.Accent
	}
	return lipgloss.NewStyle().Foreground(fg).Render(art)
}
