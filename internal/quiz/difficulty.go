package quiz

import (
	"fmt"
	"strings"
)

// Difficulty is the declared difficulty of a quiz or question.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// PerfectBonus is added once when every question of a quiz is answered correctly.
const PerfectBonus = 100

// AllDifficulties returns the difficulties in ascending order.
func AllDifficulties() []Difficulty {
	return []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}
}

// legacyDifficulties maps the values stored by older releases.
var legacyDifficulties = map[string]Difficulty{
	"leicht": DifficultyEasy,
	"mittel": DifficultyMedium,
	"schwer": DifficultyHard,
}

// ParseDifficulty accepts easy/medium/hard (any case, surrounding space
// ignored) and the legacy leicht/mittel/schwer values.
func ParseDifficulty(s string) (Difficulty, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	switch Difficulty(v) {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return Difficulty(v), nil
	}
	if d, ok := legacyDifficulties[v]; ok {
		return d, nil
	}
	if v == "" {
		return "", &ValidationError{Field: "difficulty", Message: "difficulty is required"}
	}
	return "", &ValidationError{Field: "difficulty", Message: fmt.Sprintf("unknown difficulty %q", s)}
}

// PointsPerQuestion returns the points a correct answer is worth.
func (d Difficulty) PointsPerQuestion() int {
	if d == DifficultyHard {
		return 200
	}
	return 100
}

// DisplayName returns a human-readable label.
func (d Difficulty) DisplayName() string {
	switch d {
	case DifficultyEasy:
		return "Easy"
	case DifficultyMedium:
		return "Medium"
	case DifficultyHard:
		return "Hard"
	default:
		return string(d)
	}
}

// ValidationError reports invalid quiz input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}
