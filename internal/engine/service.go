// Package engine is the application layer: it runs quiz submissions,
// watchlist and review events through scoring, storage and achievement
// evaluation, each in a single transaction.
package engine

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/HEADES94/MovieProjektFinal/internal/achievements"
	"github.com/HEADES94/MovieProjektFinal/internal/metrics"
	"github.com/HEADES94/MovieProjektFinal/internal/quiz"
	"github.com/HEADES94/MovieProjektFinal/internal/store"
	"github.com/HEADES94/MovieProjektFinal/internal/triviagen"
)

var (
	// ErrNotFound is store.ErrNotFound, re-exported for callers that
	// only import engine.
	ErrNotFound = store.ErrNotFound

	// ErrNoQuestions means no question could be generated or loaded for
	// a quiz.
	ErrNoQuestions = errors.New("no questions available")
)

// ValidationError reports a request rejected before anything was written.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// parseDifficulty converts quiz validation errors into engine ones.
func parseDifficulty(s string) (quiz.Difficulty, error) {
	d, err := quiz.ParseDifficulty(s)
	var qe *quiz.ValidationError
	if errors.As(err, &qe) {
		return "", &ValidationError{Field: qe.Field, Message: qe.Message}
	}
	return d, err
}

type Config struct {
	// GenerateCount is how many questions a generation call asks for.
	GenerateCount int

	// QuestionsPerQuiz is how many questions a quiz serves.
	QuestionsPerQuiz int
}

func DefaultConfig() Config {
	return Config{GenerateCount: 10, QuestionsPerQuiz: 5}
}

// Service is safe for concurrent use.
type Service struct {
	store   *store.Store
	gen     triviagen.Generator
	grantor *achievements.Grantor
	config  Config
	now     func() time.Time
	shuffle func(n int, swap func(i, j int))
}

type Option func(*Service)

// WithClock sets the time used for attempts and grants.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithShuffle replaces the choice shuffler, for deterministic tests.
func WithShuffle(shuffle func(n int, swap func(i, j int))) Option {
	return func(s *Service) { s.shuffle = shuffle }
}

// New creates a Service. gen may be nil; quizzes are then served from
// stored questions only.
func New(st *store.Store, gen triviagen.Generator, cfg Config, opts ...Option) *Service {
	s := &Service{
		store:   st,
		gen:     gen,
		config:  cfg,
		now:     time.Now,
		shuffle: rand.Shuffle,
	}
	for _, o := range opts {
		o(s)
	}
	s.grantor = achievements.NewGrantor(
		achievements.WithClock(func() time.Time { return s.now() }),
		achievements.WithObserver(func(code string, res store.GrantResult) {
			metrics.RecordGrant(code, res.String())
		}),
	)
	return s
}

// orEmpty keeps JSON replies at [] rather than null.
func orEmpty(as []achievements.Achievement) []achievements.Achievement {
	if as == nil {
		return []achievements.Achievement{}
	}
	return as
}
