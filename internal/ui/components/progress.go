package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/HEADES94/MovieProjektFinal/internal/ui/theme"
)

// QuizProgress is a film-strip bar with one frame per question. Answered
// frames are lit, the current one is highlighted.
type QuizProgress struct {
	Current int // zero-based index of the question on screen
	Total   int
	Width   int
}

// Label reads "Question n/total", capped at the last question.
func (p QuizProgress) Label() string {
	return fmt.Sprintf("Question %d/%d", min(p.Current+1, p.Total), p.Total)
}

// Fraction is the share of questions already answered.
func (p QuizProgress) Fraction() float64 {
	if p.Total <= 0 {
		return 0
	}
	return float64(min(max(p.Current, 0), p.Total)) / float64(p.Total)
}

func (p QuizProgress) View() string {
	label := lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label())
	if p.Total <= 0 {
		return label
	}

	// Each frame is cell wide plus a one-column gap.
	room := p.Width - lipgloss.Width(label) - 2
	cell := max(room/p.Total-1, 1)

	lit := lipgloss.NewStyle().Background(theme.Secondary)
	now := lipgloss.NewStyle().Background(theme.Marquee)
	dark := lipgloss.NewStyle().Background(theme.Border)

	frames := make([]string, p.Total)
	for i := range frames {
		style := dark
		switch {
		case i < p.Current:
			style = lit
		case i == p.Current:
			style = now
		}
		frames[i] = style.Render(strings.Repeat(" ", cell))
	}
	return label + "  " + strings.Join(frames, " ")
}
