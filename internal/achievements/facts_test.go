package achievements

import (
	"testing"

	"github.com/HEADES94/MovieProjektFinal/internal/store"
)

func attempt(score, correct, total int, difficulty string, movie int64) store.Attempt {
	return store.Attempt{
		MovieID:        movie,
		Score:          score,
		CorrectCount:   &correct,
		TotalQuestions: total,
		Difficulty:     difficulty,
	}
}

func TestBuildFacts_Empty(t *testing.T) {
	f := BuildFacts(nil, 2, 3)
	if f.Attempts != 0 || f.Latest != nil || f.MaxStreak != 0 {
		t.Fatalf("unexpected facts %+v", f)
	}
	if f.Watchlist != 2 || f.Reviews != 3 {
		t.Fatalf("counts not carried: %+v", f)
	}
}

func TestBuildFacts_Aggregates(t *testing.T) {
	attempts := []store.Attempt{
		attempt(600, 5, 5, "easy", 1),
		attempt(600, 5, 5, "easy", 2),
		attempt(400, 4, 5, "medium", 2),
		attempt(1100, 5, 5, "hard", 3),
	}
	f := BuildFacts(attempts, 0, 0)

	if f.Attempts != 4 {
		t.Errorf("attempts = %d", f.Attempts)
	}
	if f.PriorBest != 600 {
		t.Errorf("prior best = %d, want 600", f.PriorBest)
	}
	if f.Latest == nil || f.Latest.Score != 1100 || !f.Latest.Perfect() {
		t.Errorf("latest = %+v", f.Latest)
	}
	if f.HighScoring != 4 {
		t.Errorf("high scoring = %d, want 4", f.HighScoring)
	}
	if f.TotalCorrect != 19 {
		t.Errorf("total correct = %d, want 19", f.TotalCorrect)
	}
	if f.DistinctMovies != 3 {
		t.Errorf("distinct movies = %d, want 3", f.DistinctMovies)
	}
	if f.PerfectRun != 2 {
		t.Errorf("perfect run = %d, want 2", f.PerfectRun)
	}
	// Reconstructed flags: 5 + 5 + 4 true then a false, then 5 true.
	if f.MaxStreak != 14 {
		t.Errorf("max streak = %d, want 14", f.MaxStreak)
	}
}

func TestBuildFacts_LegacyRows(t *testing.T) {
	legacy := store.Attempt{Score: 800, TotalQuestions: 5, Difficulty: "schwer"}
	f := BuildFacts([]store.Attempt{legacy}, 0, 0)
	if f.Latest.Difficulty != "hard" {
		t.Errorf("difficulty = %q, want hard", f.Latest.Difficulty)
	}
	if f.Latest.CorrectCount != 4 {
		t.Errorf("correct = %d, want 4 reconstructed from score", f.Latest.CorrectCount)
	}
	if f.MaxStreak != 4 {
		t.Errorf("max streak = %d, want 4", f.MaxStreak)
	}
}

func TestBuildFacts_StoredResultsWin(t *testing.T) {
	a := attempt(400, 4, 5, "easy", 0)
	for _, ok := range []bool{true, false, true, true, true} {
		a.Results = append(a.Results, store.AttemptResult{IsCorrect: ok})
	}
	f := BuildFacts([]store.Attempt{a}, 0, 0)
	if f.MaxStreak != 3 {
		t.Fatalf("max streak = %d, want 3 from stored rows", f.MaxStreak)
	}
	if f.DistinctMovies != 0 {
		t.Fatalf("attempt without movie counted: %d", f.DistinctMovies)
	}
}

func TestPredicates(t *testing.T) {
	perfectHard := attempt(1100, 5, 5, "hard", 1)
	fourHard := attempt(800, 4, 5, "hard", 1)
	fourMedium := attempt(400, 4, 5, "medium", 1)
	zero := attempt(0, 0, 5, "easy", 1)

	tests := []struct {
		name     string
		kind     Kind
		attempts []store.Attempt
		want     bool
	}{
		{"beginner first", KindQuizBeginner, []store.Attempt{zero}, true},
		{"beginner second", KindQuizBeginner, []store.Attempt{zero, zero}, false},
		{"perfect", KindPerfectQuiz, []store.Attempt{perfectHard}, true},
		{"not perfect", KindPerfectQuiz, []store.Attempt{fourHard}, false},
		{"expert hard 4", KindQuizExpert, []store.Attempt{fourHard}, true},
		{"expert medium 4", KindQuizExpert, []store.Attempt{fourMedium}, false},
		{"highscore first positive", KindFirstHighscore, []store.Attempt{fourMedium}, true},
		{"highscore zero", KindFirstHighscore, []store.Attempt{zero}, false},
		{"highscore not beaten", KindFirstHighscore, []store.Attempt{fourHard, fourMedium}, false},
		{"highscore beaten", KindFirstHighscore, []store.Attempt{fourMedium, fourHard}, true},
		{"streak 5", KindStreak5, []store.Attempt{perfectHard}, true},
		{"streak 10 no", KindStreak10, []store.Attempt{perfectHard}, false},
		{"streak 10 yes", KindStreak10, []store.Attempt{perfectHard, perfectHard}, true},
		{"perfectionist", KindPerfectionist, []store.Attempt{perfectHard, perfectHard, perfectHard}, true},
		{"perfectionist broken", KindPerfectionist, []store.Attempt{perfectHard, fourHard, perfectHard, perfectHard}, false},
		{"quiz master four", KindQuizMaster, []store.Attempt{fourMedium, fourMedium, fourMedium, fourMedium}, false},
		{"quiz master five", KindQuizMaster, []store.Attempt{fourMedium, fourMedium, fourMedium, fourMedium, fourMedium}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, _ := ByKind(tt.kind)
			if got := d.Unlocked(BuildFacts(tt.attempts, 0, 0)); got != tt.want {
				t.Errorf("%s unlocked = %v, want %v", d.Code, got, tt.want)
			}
		})
	}
}

func TestCountPredicates(t *testing.T) {
	tests := []struct {
		kind      Kind
		watchlist int
		reviews   int
		want      bool
	}{
		{KindFirstWatchlist, 1, 0, true},
		{KindFirstWatchlist, 0, 5, false},
		{KindCollector10, 9, 0, false},
		{KindCollector10, 10, 0, true},
		{KindCollector50, 50, 0, true},
		{KindFirstReview, 0, 1, true},
		{KindCritic10, 0, 10, true},
		{KindCritic25, 0, 24, false},
		{KindCritic25, 0, 25, true},
		{KindCritic50, 0, 49, false},
		{KindCritic50, 0, 50, true},
	}
	for _, tt := range tests {
		d, _ := ByKind(tt.kind)
		if got := d.Unlocked(BuildFacts(nil, tt.watchlist, tt.reviews)); got != tt.want {
			t.Errorf("%s with watchlist=%d reviews=%d = %v, want %v", d.Code, tt.watchlist, tt.reviews, got, tt.want)
		}
	}
}
