package triviagen

import (
	"context"

	"github.com/HEADES94/MovieProjektFinal/internal/quiz"
)

// Generator produces a batch of multiple-choice trivia questions.
type Generator interface {
	// Generate asks for input.Count questions. Questions that fail a
	// validator are dropped and reported in Batch.Rejected; a short batch
	// is not an error.
	Generate(ctx context.Context, input Input) (*Batch, error)
}

// Movie is the film context the questions are about.
type Movie struct {
	Title    string
	Year     int
	Plot     string
	Genre    string
	Director string
}

// Input holds everything the prompt is built from.
type Input struct {
	Movie      Movie
	Difficulty quiz.Difficulty

	// Count is the number of questions requested. Zero uses
	// Config.DefaultCount.
	Count int

	// PriorQuestions are texts already stored for the movie. They are
	// listed in the prompt and exact repeats are rejected.
	PriorQuestions []string
}

// Question is one validated multiple-choice question.
type Question struct {
	Text          string
	CorrectAnswer string
	WrongAnswers  [3]string
}

// Candidate is a question as the model returned it, before validation.
type Candidate struct {
	Question      string   `json:"question"`
	CorrectAnswer string   `json:"correct_answer"`
	WrongAnswers  []string `json:"wrong_answers"`
}

// Rejection pairs a dropped candidate with the reason.
type Rejection struct {
	Candidate Candidate
	Err       *ValidationError
}

// Batch is the result of one generation call.
type Batch struct {
	Questions []Question
	Rejected  []Rejection

	// Model is the model that served the request.
	Model string
}

// RejectedBy counts rejections per validator name.
func (b *Batch) RejectedBy() map[string]int {
	out := make(map[string]int)
	for _, r := range b.Rejected {
		out[r.Err.Validator]++
	}
	return out
}
