package play

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/HEADES94/MovieProjektFinal/internal/ui/components"
	"github.com/HEADES94/MovieProjektFinal/internal/ui/theme"
)

var spinnerFrames = []string{"◐", "◓", "◑", "◒"}

func (s *PlayScreen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	switch {
	case s.phase == phaseError:
		return center.Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nCould not run the quiz: %s\n\n", s.errMsg)) +
			center.Foreground(theme.TextDim).Render("press any key to go back")
	case s.confirmQuit:
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(theme.Accent).
				Padding(1, 3).
				Render("Leave this quiz?\nYour answers will not be scored.\n\n[Y] Leave   [N] Keep playing"))
	case s.phase == phaseLoading:
		return s.renderSpinner(width, height, "Rolling the film... preparing questions")
	case s.phase == phaseSubmitting:
		return s.renderSpinner(width, height, "Scoring your answers...")
	}

	var b strings.Builder

	info := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).
		Render(fmt.Sprintf("  %s · %s", s.movie.Title, s.difficulty.DisplayName()))
	points := lipgloss.NewStyle().Foreground(theme.TextDim).
		Render(fmt.Sprintf("%d pts per answer", s.difficulty.PointsPerQuestion()))
	line := info
	if pad := width - lipgloss.Width(info) - lipgloss.Width(points) - 4; pad > 0 {
		line += strings.Repeat(" ", pad) + points
	}
	b.WriteString(line)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	bar := components.QuizProgress{Current: s.current, Total: len(s.quiz.Questions), Width: min(width-8, 50)}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
	b.WriteString("\n\n")

	block := lipgloss.NewStyle().Width(min(width-8, 70)).Render(s.choice.View())
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, block))
	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.TextDim).Render("Select (1-4) or use arrows + Enter"))

	return b.String()
}

func (s *PlayScreen) renderSpinner(width, height int, text string) string {
	frame := spinnerFrames[s.spinner%len(spinnerFrames)]
	content := lipgloss.NewStyle().Foreground(theme.Marquee).Render(frame) + "  " +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(text)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
