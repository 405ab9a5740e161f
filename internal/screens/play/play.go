// Package play runs a quiz question by question and submits it.
package play

import (
	"context"
	"strconv"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/HEADES94/MovieProjektFinal/internal/engine"
	"github.com/HEADES94/MovieProjektFinal/internal/quiz"
	"github.com/HEADES94/MovieProjektFinal/internal/router"
	"github.com/HEADES94/MovieProjektFinal/internal/screen"
	"github.com/HEADES94/MovieProjektFinal/internal/screens/summary"
	"github.com/HEADES94/MovieProjektFinal/internal/store"
	"github.com/HEADES94/MovieProjektFinal/internal/ui/components"
	"github.com/HEADES94/MovieProjektFinal/internal/ui/layout"
)

const spinnerInterval = 120 * time.Millisecond

type phase int

const (
	phaseLoading phase = iota
	phaseAnswering
	phaseSubmitting
	phaseError
)

// PlayScreen implements screen.Screen for a running quiz.
type PlayScreen struct {
	backend    screen.Backend
	userID     int64
	movie      store.Movie
	difficulty quiz.Difficulty

	phase       phase
	quiz        *engine.GeneratedQuiz
	current     int
	choice      components.MultiChoice
	answers     map[string]string
	confirmQuit bool
	spinner     int
	errMsg      string
}

var _ screen.Screen = (*PlayScreen)(nil)
var _ screen.KeyHintProvider = (*PlayScreen)(nil)

// New creates a new PlayScreen.
func New(backend screen.Backend, userID int64, movie store.Movie, difficulty quiz.Difficulty) *PlayScreen {
	return &PlayScreen{
		backend:    backend,
		userID:     userID,
		movie:      movie,
		difficulty: difficulty,
		answers:    make(map[string]string),
	}
}

func (s *PlayScreen) Init() tea.Cmd {
	return tea.Batch(s.loadQuiz(), spinnerTick())
}

func (s *PlayScreen) Title() string {
	return s.movie.Title
}

func (s *PlayScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.confirmQuit:
		return []layout.KeyHint{
			{Key: "Y", Description: "Leave quiz"},
			{Key: "N", Description: "Keep playing"},
		}
	case s.phase == phaseAnswering:
		return []layout.KeyHint{
			{Key: "1-4", Description: "Answer"},
			{Key: "↑↓", Description: "Choose"},
			{Key: "Enter", Description: "Lock in"},
			{Key: "Esc", Description: "Quit"},
		}
	case s.phase == phaseError:
		return []layout.KeyHint{{Key: "any key", Description: "Back"}}
	}
	return []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
}

func (s *PlayScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case quizReadyMsg:
		return s.handleReady(msg)

	case submittedMsg:
		return s.handleSubmitted(msg)

	case spinnerTickMsg:
		if s.phase == phaseLoading || s.phase == phaseSubmitting {
			s.spinner++
			return s, spinnerTick()
		}
		return s, nil

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

// loadQuiz generates the quiz asynchronously.
func (s *PlayScreen) loadQuiz() tea.Cmd {
	backend, movieID, d := s.backend, s.movie.ID, s.difficulty
	return func() tea.Msg {
		q, err := backend.GenerateQuiz(context.Background(), movieID, string(d))
		return quizReadyMsg{Quiz: q, Err: err}
	}
}

func (s *PlayScreen) handleReady(msg quizReadyMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.fail(msg.Err)
		return s, nil
	}
	if msg.Quiz == nil || len(msg.Quiz.Questions) == 0 {
		s.fail(engine.ErrNoQuestions)
		return s, nil
	}
	s.quiz = msg.Quiz
	s.current = 0
	s.phase = phaseAnswering
	s.resetChoice()
	return s, nil
}

func (s *PlayScreen) handleSubmitted(msg submittedMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.fail(msg.Err)
		return s, nil
	}
	result := summary.New(msg.Outcome, s.movie.Title, s.difficulty)
	return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: result} }
}

func (s *PlayScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.phase == phaseError {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}

	if s.confirmQuit {
		switch key {
		case "y", "Y":
			s.confirmQuit = false
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "n", "N", "esc":
			s.confirmQuit = false
		}
		return s, nil
	}

	if key == "esc" {
		if s.phase == phaseSubmitting {
			return s, nil
		}
		s.confirmQuit = true
		return s, nil
	}

	if s.phase != phaseAnswering {
		return s, nil
	}

	var cmd tea.Cmd
	s.choice, cmd = s.choice.Update(msg)
	if !s.choice.Chosen {
		return s, cmd
	}

	q := s.quiz.Questions[s.current]
	s.answers[strconv.FormatInt(q.ID, 10)] = s.choice.Answer()

	if s.current+1 < len(s.quiz.Questions) {
		s.current++
		s.resetChoice()
		return s, cmd
	}
	return s, tea.Batch(cmd, s.submit())
}

// submit sends the answers, with the served question ids so that skipped
// questions count as wrong.
func (s *PlayScreen) submit() tea.Cmd {
	s.phase = phaseSubmitting
	sub := engine.Submission{
		UserID:      s.userID,
		MovieID:     s.movie.ID,
		Answers:     s.answers,
		Difficulty:  string(s.quiz.Difficulty),
		QuestionIDs: s.quiz.QuestionIDs(),
	}
	backend := s.backend
	return tea.Batch(
		func() tea.Msg {
			out, err := backend.SubmitQuiz(context.Background(), sub)
			return submittedMsg{Outcome: out, Err: err}
		},
		spinnerTick(),
	)
}

func (s *PlayScreen) resetChoice() {
	q := s.quiz.Questions[s.current]
	s.choice = components.NewMultiChoice(q.Text, q.Choices)
}

func (s *PlayScreen) fail(err error) {
	s.phase = phaseError
	s.errMsg = err.Error()
}

func spinnerTick() tea.Cmd {
	return tea.Tick(spinnerInterval, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}
