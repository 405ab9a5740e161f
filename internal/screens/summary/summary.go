package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/HEADES94/MovieProjektFinal/internal/achievements"
	"github.com/HEADES94/MovieProjektFinal/internal/engine"
	"github.com/HEADES94/MovieProjektFinal/internal/quiz"
	"github.com/HEADES94/MovieProjektFinal/internal/router"
	"github.com/HEADES94/MovieProjektFinal/internal/screen"
	"github.com/HEADES94/MovieProjektFinal/internal/ui/layout"
	"github.com/HEADES94/MovieProjektFinal/internal/ui/theme"
)

// SummaryScreen shows the scored quiz and any newly unlocked achievements.
type SummaryScreen struct {
	outcome    *engine.Outcome
	movie      string
	difficulty quiz.Difficulty
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(outcome *engine.Outcome, movie string, difficulty quiz.Difficulty) *SummaryScreen {
	return &SummaryScreen{outcome: outcome, movie: movie, difficulty: difficulty}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Results"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Continue"},
		{Key: "Esc", Description: "Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopToRootMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	out := s.outcome
	if out == nil {
		return ""
	}

	center := func(st lipgloss.Style, text string) string {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, st.Render(text))
	}
	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", min(width-8, 60)))

	var b strings.Builder

	headline := "That's a wrap!"
	if out.TotalQuestions > 0 && out.CorrectCount == out.TotalQuestions {
		headline = "Perfect take!"
	}
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true), headline))
	b.WriteString("\n")
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.TextDim),
		fmt.Sprintf("%s · %s", s.movie, s.difficulty.DisplayName())))
	b.WriteString("\n\n")

	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Marquee).Bold(true),
		fmt.Sprintf("★ %d POINTS", out.Score)))
	b.WriteString("\n")
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Text),
		fmt.Sprintf("Correct: %d of %d", out.CorrectCount, out.TotalQuestions)))
	b.WriteString("\n\n")

	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.TextDim), "Answers"))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n")

	for i, r := range out.QuestionResults {
		var line string
		style := theme.Correct
		if r.IsCorrect {
			line = fmt.Sprintf("✓ %d. %s", i+1, r.QuestionText)
		} else {
			style = theme.Incorrect
			given := r.SubmittedAnswer
			if given == "" {
				given = "no answer"
			}
			line = fmt.Sprintf("✗ %d. %s\n     you: %s · correct: %s", i+1, r.QuestionText, given, r.CorrectAnswer)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			style.Width(min(width-8, 70)).Render(line)))
		b.WriteString("\n")
	}

	if len(out.Achievements) > 0 {
		b.WriteString("\n")
		b.WriteString(center(lipgloss.NewStyle().Foreground(theme.TextDim), "Unlocked"))
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
		b.WriteString("\n")

		for _, a := range out.Achievements {
			rarity := ""
			if d, ok := achievements.Lookup(a.Code); ok {
				rarity = string(d.Rarity)
			}
			b.WriteString(center(lipgloss.NewStyle().Foreground(theme.RarityColor(rarity)).Bold(true),
				fmt.Sprintf("🏆 %s · %s", a.Title, a.Description)))
			b.WriteString("\n")
		}
	}

	return b.String()
}
