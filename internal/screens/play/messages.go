package play

import (
	"time"

	"github.com/HEADES94/MovieProjektFinal/internal/engine"
)

// quizReadyMsg is sent when the quiz has been generated or loaded.
type quizReadyMsg struct {
	Quiz *engine.GeneratedQuiz
	Err  error
}

// submittedMsg is sent when the backend has scored the quiz.
type submittedMsg struct {
	Outcome *engine.Outcome
	Err     error
}

// spinnerTickMsg animates the loading spinner.
type spinnerTickMsg time.Time
