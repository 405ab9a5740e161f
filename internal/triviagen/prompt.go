package triviagen

import (
	"fmt"
	"strings"

	"github.com/HEADES94/MovieProjektFinal/internal/quiz"
)

const systemPrompt = `You write multiple-choice film quiz questions.

Rules:
- Every question has exactly one correct answer and exactly three wrong answers.
- Questions must be unambiguous and answerable by someone who has seen the film.
- All four answers should be about the same length. No joke answers.
- Facts must be correct. If you are unsure about a detail, ask about something else.
- Cover different topics; never ask two questions about the same fact.
- Do not repeat or rephrase any question from the "already asked" list.`

// guidance describes what each difficulty should ask about.
var guidance = map[quiz.Difficulty]string{
	quiz.DifficultyEasy: `- Obvious facts: main actors, genre, release year
- Answerable by casual viewers
- No plot details that are easily forgotten
- Wrong answers are clearly distinguishable`,
	quiz.DifficultyMedium: `- Important plot points and central characters
- Relationships between characters
- Significant scenes and turning points
- Production details such as director, screenplay, score
- Wrong answers are plausible but distinguishable`,
	quiz.DifficultyHard: `- Complex plot details and subtext
- Hidden clues and easter eggs
- Technical aspects of the production
- Background trivia
- Supporting characters and how they develop
- Wrong answers are very plausible`,
}

func buildUserMessage(input Input, count, maxPrior int) string {
	var b strings.Builder
	m := input.Movie

	fmt.Fprintf(&b, "Write %d quiz questions about %q", count, m.Title)
	if m.Year > 0 {
		fmt.Fprintf(&b, " (%d)", m.Year)
	}
	b.WriteString(".\n\n")

	fmt.Fprintf(&b, "Difficulty: %s\n", input.Difficulty)
	if g, ok := guidance[input.Difficulty]; ok {
		b.WriteString(g)
		b.WriteString("\n")
	}

	b.WriteString("\nFilm:\n")
	writeField(&b, "Plot", m.Plot)
	writeField(&b, "Genre", m.Genre)
	writeField(&b, "Director", m.Director)

	b.WriteString("\nAlready asked:\n")
	b.WriteString(listPrior(input.PriorQuestions, maxPrior))
	return b.String()
}

func writeField(b *strings.Builder, name, value string) {
	if value == "" {
		value = "unknown"
	}
	fmt.Fprintf(b, "- %s: %s\n", name, value)
}

// listPrior numbers the most recent max questions, or returns "None".
func listPrior(prior []string, max int) string {
	if max > 0 && len(prior) > max {
		prior = prior[len(prior)-max:]
	}
	if len(prior) == 0 {
		return "None"
	}
	lines := make([]string, len(prior))
	for i, q := range prior {
		lines[i] = fmt.Sprintf("%d. %s", i+1, q)
	}
	return strings.Join(lines, "\n")
}
