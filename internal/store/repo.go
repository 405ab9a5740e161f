package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned when a looked-up row does not exist.
var ErrNotFound = errors.New("not found")

// QueryOpts configures list queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // id > After
	Before int64     // id < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// Movie is a film quizzes can be generated for.
type Movie struct {
	ID          int64
	Title       string
	ReleaseYear int
	Plot        string
	Genre       string
	Director    string
	CreatedAt   time.Time
}

// MovieInput holds the fields of a new movie.
type MovieInput struct {
	Title       string
	ReleaseYear int
	Plot        string
	Genre       string
	Director    string
}

// Question is a stored multiple-choice trivia question. Questions are never
// updated after creation; usage statistics are derived from attempt results.
type Question struct {
	ID            int64
	MovieID       int64
	Text          string
	CorrectAnswer string
	WrongAnswers  [3]string
	Difficulty    string
	Source        string
	CreatedAt     time.Time
}

// Choices returns the correct answer followed by the three wrong answers.
func (q Question) Choices() []string {
	return []string{q.CorrectAnswer, q.WrongAnswers[0], q.WrongAnswers[1], q.WrongAnswers[2]}
}

// QuestionInput holds the fields of a new question.
type QuestionInput struct {
	MovieID       int64
	Text          string
	CorrectAnswer string
	WrongAnswers  [3]string
	Difficulty    string
	Source        string
}

// Question sources.
const (
	SourceAI     = "ai"
	SourceManual = "manual"
)

// QuestionStats is derived from stored attempt results.
type QuestionStats struct {
	TimesUsed    int
	TimesCorrect int
}

// CorrectRate returns the share of correct answers, 0 when unused.
func (s QuestionStats) CorrectRate() float64 {
	if s.TimesUsed == 0 {
		return 0
	}
	return float64(s.TimesCorrect) / float64(s.TimesUsed)
}

// Attempt is one completed quiz. Attempts are append-only.
type Attempt struct {
	ID     int64
	UserID int64

	// MovieID is 0 when the attempt is not tied to a movie.
	MovieID int64

	Score int

	// CorrectCount is nil for rows written before the count was stored.
	CorrectCount *int

	TotalQuestions int
	Difficulty     string
	CompletedAt    time.Time

	// Results holds the per-question rows in position order. Older attempts
	// may have none.
	Results []AttemptResult
}

// AttemptResult is the stored outcome of one question within an attempt.
type AttemptResult struct {
	Position   int
	QuestionID int64
	UserAnswer string
	IsCorrect  bool
}

// AttemptInput holds the fields of a new attempt and its results.
type AttemptInput struct {
	UserID         int64
	MovieID        int64
	Score          int
	CorrectCount   int
	TotalQuestions int
	Difficulty     string
	CompletedAt    time.Time
	Results        []ResultInput
}

// ResultInput is one question outcome of a new attempt.
type ResultInput struct {
	QuestionID int64
	UserAnswer string
	IsCorrect  bool
}

// Achievement is a catalog row.
type Achievement struct {
	ID          int64
	Code        string
	Name        string
	Description string
	Category    string
}

// EarnedAchievement is an achievement held by a user.
type EarnedAchievement struct {
	Achievement
	EarnedAt time.Time
}

// GrantResult reports the outcome of recording an achievement grant.
type GrantResult int

const (
	// Granted means a new grant row was written.
	Granted GrantResult = iota + 1

	// AlreadyGranted means the user already held the achievement.
	AlreadyGranted
)

func (r GrantResult) String() string {
	switch r {
	case Granted:
		return "granted"
	case AlreadyGranted:
		return "already_granted"
	default:
		return "unknown"
	}
}

// Review is a user's rating of a movie.
type Review struct {
	ID        int64
	UserID    int64
	MovieID   int64
	Rating    int
	Comment   string
	CreatedAt time.Time
}

// UserStats aggregates a user's quiz history.
type UserStats struct {
	Attempts       int
	BestScore      int
	AverageScore   float64
	TotalCorrect   int
	TotalQuestions int
}

// Accuracy returns the percentage of correctly answered questions.
func (s UserStats) Accuracy() float64 {
	if s.TotalQuestions == 0 {
		return 0
	}
	return float64(s.TotalCorrect) / float64(s.TotalQuestions) * 100
}

// Highscore is a user's best score.
type Highscore struct {
	UserID     int64
	MovieID    int64
	BestScore  int
	Difficulty string
	AchievedAt time.Time
}

// querier is satisfied by *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Repo runs queries either directly against the database or inside a
// transaction opened by Store.WithTx.
type Repo struct {
	q  querier
	tx *sql.Tx

	savepoints int
}

// InTx reports whether the repo is bound to a transaction.
func (r *Repo) InTx() bool {
	return r.tx != nil
}

// withSavepoint runs fn under a savepoint when the repo is transactional so
// a failed statement can be undone without aborting the transaction. The
// returned error is fn's error; the savepoint is rolled back when it is
// non-nil and released otherwise.
func (r *Repo) withSavepoint(ctx context.Context, fn func() error) error {
	if r.tx == nil {
		return fn()
	}

	r.savepoints++
	name := fmt.Sprintf("sp_%d", r.savepoints)
	if _, err := r.tx.ExecContext(ctx, "SAVEPOINT "+name); err != nil {
		return fmt.Errorf("savepoint: %w", err)
	}

	if ferr := fn(); ferr != nil {
		if _, err := r.tx.ExecContext(ctx, "ROLLBACK TO SAVEPOINT "+name); err != nil {
			return errors.Join(ferr, fmt.Errorf("rollback to savepoint: %w", err))
		}
		if _, err := r.tx.ExecContext(ctx, "RELEASE SAVEPOINT "+name); err != nil {
			return errors.Join(ferr, fmt.Errorf("release savepoint: %w", err))
		}
		return ferr
	}

	if _, err := r.tx.ExecContext(ctx, "RELEASE SAVEPOINT "+name); err != nil {
		return fmt.Errorf("release savepoint: %w", err)
	}
	return nil
}

// exec builds and runs a statement.
func (r *Repo) exec(ctx context.Context, query string, args []any) (sql.Result, error) {
	return r.q.ExecContext(ctx, query, args...)
}

// count runs a single-value integer query.
func (r *Repo) count(ctx context.Context, query string, args []any) (int, error) {
	var n sql.NullInt64
	if err := r.q.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, err
	}
	return int(n.Int64), nil
}
