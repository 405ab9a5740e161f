package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/HEADES94/MovieProjektFinal/internal/ui/theme"
)

const bannerMovie = ` ███╗   ███╗ ██████╗ ██╗   ██╗██╗███████╗
 ████╗ ████║██╔═══██╗██║   ██║██║██╔════╝
 ██╔████╔██║██║   ██║██║   ██║██║█████╗
 ██║╚██╔╝██║██║   ██║╚██╗ ██╔╝██║██╔══╝
 ██║ ╚═╝ ██║╚██████╔╝ ╚████╔╝ ██║███████╗
 ╚═╝     ╚═╝ ╚═════╝   ╚═══╝  ╚═╝╚══════╝`

const bannerQuiz = `  ██████╗ ██╗   ██╗██╗███████╗
 ██╔═══██╗██║   ██║██║╚══███╔╝
 ██║   ██║██║   ██║██║  ███╔╝
 ██║▄▄ ██║██║   ██║██║ ███╔╝
 ╚██████╔╝╚██████╔╝██║███████╗
  ╚══▀▀═╝  ╚═════╝ ╚═╝╚══════╝`

const bannerCompact = "M O V I E · Q U I Z"

// bannerMinWidth is the narrowest terminal the block-letter banner fits.
const bannerMinWidth = 46

// RenderBanner returns the MOVIE QUIZ banner. Terminals narrower than
// bannerMinWidth get a one-line fallback.
func RenderBanner(width int) string {
	if width < bannerMinWidth {
		return lipgloss.NewStyle().Foreground(theme.Marquee).Bold(true).Render(bannerCompact)
	}
	top := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(bannerMovie)
	bottom := lipgloss.NewStyle().Foreground(theme.Marquee).Bold(true).Render(bannerQuiz)
	return lipgloss.JoinVertical(lipgloss.Center, top, bottom)
}
