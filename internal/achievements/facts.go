package achievements

import (
	"github.com/HEADES94/MovieProjektFinal/internal/quiz"
	"github.com/HEADES94/MovieProjektFinal/internal/store"
	"github.com/HEADES94/MovieProjektFinal/internal/streak"
)

// Score thresholds used by the performance predicates.
const (
	highScore         = 400
	expertMinCorrect  = 4
	perfectRunTarget  = 3
	distinctMovieGoal = 10
)

// Facts is the aggregate state unlock predicates read. Attempt-derived
// fields are zero when the user has no attempts.
type Facts struct {
	Attempts int

	// Latest is the most recent attempt, nil when there is none.
	Latest *LatestAttempt

	// PriorBest is the best score before the latest attempt, 0 when there
	// is no earlier attempt.
	PriorBest int

	MaxStreak      int
	HighScoring    int
	TotalCorrect   int
	DistinctMovies int
	PerfectRun     int

	Watchlist int
	Reviews   int
}

// LatestAttempt summarises the most recent attempt.
type LatestAttempt struct {
	Score          int
	CorrectCount   int
	TotalQuestions int
	Difficulty     quiz.Difficulty
}

// Perfect reports whether every question was answered correctly.
func (a LatestAttempt) Perfect() bool {
	return a.TotalQuestions > 0 && a.CorrectCount == a.TotalQuestions
}

// BuildFacts derives predicate inputs from a user's attempts, oldest first,
// and their watchlist and review counts.
func BuildFacts(attempts []store.Attempt, watchlist, reviews int) Facts {
	f := Facts{
		Attempts:  len(attempts),
		Watchlist: watchlist,
		Reviews:   reviews,
	}

	history := make([]streak.Attempt, 0, len(attempts))
	movies := make(map[int64]bool)
	var run int
	for i, a := range attempts {
		sa := streakAttempt(a)
		history = append(history, sa)

		correct := correctCount(a, sa)
		f.TotalCorrect += correct
		if a.Score >= highScore {
			f.HighScoring++
		}
		if a.MovieID > 0 {
			movies[a.MovieID] = true
		}

		if a.TotalQuestions > 0 && correct == a.TotalQuestions {
			run++
			f.PerfectRun = max(f.PerfectRun, run)
		} else {
			run = 0
		}

		if i == len(attempts)-1 {
			f.Latest = &LatestAttempt{
				Score:          a.Score,
				CorrectCount:   correct,
				TotalQuestions: a.TotalQuestions,
				Difficulty:     sa.Difficulty,
			}
		} else {
			f.PriorBest = max(f.PriorBest, a.Score)
		}
	}
	f.DistinctMovies = len(movies)
	f.MaxStreak = streak.Max(history)
	return f
}

// streakAttempt converts a stored attempt for the streak analyzer. Legacy
// difficulty values are normalised; anything unrecognised is scored at the
// default point value.
func streakAttempt(a store.Attempt) streak.Attempt {
	d, err := quiz.ParseDifficulty(a.Difficulty)
	if err != nil {
		d = quiz.Difficulty(a.Difficulty)
	}
	sa := streak.Attempt{
		Score:          a.Score,
		TotalQuestions: a.TotalQuestions,
		Difficulty:     d,
	}
	if len(a.Results) > 0 {
		sa.Results = make([]bool, len(a.Results))
		for i, r := range a.Results {
			sa.Results[i] = r.IsCorrect
		}
	}
	return sa
}

// correctCount prefers the stored count and falls back to the per-question
// flags.
func correctCount(a store.Attempt, sa streak.Attempt) int {
	if a.CorrectCount != nil {
		return *a.CorrectCount
	}
	var n int
	for _, ok := range streak.Flags(sa) {
		if ok {
			n++
		}
	}
	return n
}
