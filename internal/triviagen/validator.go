package triviagen

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// MinQuestionLength is the shortest question text accepted, in characters.
const MinQuestionLength = 15

// Validator checks one candidate. Implementations are stateless.
type Validator interface {
	Name() string
	Validate(c Candidate, input Input) *ValidationError
}

// ValidationError says why a candidate was dropped.
type ValidationError struct {
	Validator string
	Message   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

// StructuralValidator checks the shape: a long enough question, a correct
// answer and exactly three wrong answers, none of them blank.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(c Candidate, _ Input) *ValidationError {
	fail := func(format string, args ...any) *ValidationError {
		return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf(format, args...)}
	}
	if n := utf8.RuneCountInString(strings.TrimSpace(c.Question)); n < MinQuestionLength {
		return fail("question has %d characters, need at least %d", n, MinQuestionLength)
	}
	if len(c.WrongAnswers) != 3 {
		return fail("got %d wrong answers, need exactly 3", len(c.WrongAnswers))
	}
	if strings.TrimSpace(c.CorrectAnswer) == "" {
		return fail("correct answer is blank")
	}
	for i, w := range c.WrongAnswers {
		if strings.TrimSpace(w) == "" {
			return fail("wrong answer %d is blank", i+1)
		}
	}
	return nil
}

// DistinctValidator requires the four answers to differ. Comparison ignores
// case and surrounding space, since "Paris" and "paris " would read as the
// same choice.
type DistinctValidator struct{}

func (v *DistinctValidator) Name() string { return "distinct" }

func (v *DistinctValidator) Validate(c Candidate, _ Input) *ValidationError {
	seen := make(map[string]bool, 4)
	for _, a := range append([]string{c.CorrectAnswer}, c.WrongAnswers...) {
		k := normalize(a)
		if seen[k] {
			return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf("answer %q appears twice", strings.TrimSpace(a))}
		}
		seen[k] = true
	}
	return nil
}

// RepeatValidator drops questions whose text matches one already stored
// for the movie.
type RepeatValidator struct{}

func (v *RepeatValidator) Name() string { return "repeat" }

func (v *RepeatValidator) Validate(c Candidate, input Input) *ValidationError {
	q := normalize(c.Question)
	for _, prior := range input.PriorQuestions {
		if normalize(prior) == q {
			return &ValidationError{Validator: v.Name(), Message: "question was asked before"}
		}
	}
	return nil
}

func normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
