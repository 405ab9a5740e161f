package streak

import (
	"testing"

	"github.com/HEADES94/MovieProjektFinal/internal/quiz"
)

func TestLongest(t *testing.T) {
	tests := []struct {
		name  string
		flags []bool
		want  int
	}{
		{"empty", nil, 0},
		{"all false", []bool{false, false}, 0},
		{"all true", []bool{true, true, true}, 3},
		{"reset in middle", []bool{true, true, false, true}, 2},
		{"longest at end", []bool{true, false, true, true, true}, 3},
		{"single", []bool{true}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Longest(tt.flags); got != tt.want {
				t.Errorf("Longest(%v) = %d, want %d", tt.flags, got, tt.want)
			}
		})
	}
}

func TestLongest_AppendingNeverDecreases(t *testing.T) {
	base := []bool{true, true, false, true, true, true, false}
	before := Longest(base)
	for _, next := range [][]bool{{false}, {true}, {true, true, true, true}, {false, false}} {
		after := Longest(append(append([]bool{}, base...), next...))
		if after < before {
			t.Fatalf("appending %v lowered max streak from %d to %d", next, before, after)
		}
	}
}

func TestFlags_UsesStoredResults(t *testing.T) {
	a := Attempt{
		Score:          300,
		TotalQuestions: 5,
		Difficulty:     quiz.DifficultyMedium,
		Results:        []bool{false, true, true, false, true},
	}
	got := Flags(a)
	for i, want := range a.Results {
		if got[i] != want {
			t.Fatalf("flag %d = %v, want %v", i, got[i], want)
		}
	}
}

func TestFlags_Reconstructs(t *testing.T) {
	tests := []struct {
		name string
		a    Attempt
		want []bool
	}{
		{
			name: "medium 300 of 5",
			a:    Attempt{Score: 300, TotalQuestions: 5, Difficulty: quiz.DifficultyMedium},
			want: []bool{true, true, true, false, false},
		},
		{
			name: "hard perfect with bonus clamps to total",
			a:    Attempt{Score: 1100, TotalQuestions: 5, Difficulty: quiz.DifficultyHard},
			want: []bool{true, true, true, true, true},
		},
		{
			name: "easy perfect with bonus",
			a:    Attempt{Score: 600, TotalQuestions: 5, Difficulty: quiz.DifficultyEasy},
			want: []bool{true, true, true, true, true},
		},
		{
			name: "partial stored rows ignored",
			a:    Attempt{Score: 200, TotalQuestions: 3, Difficulty: quiz.DifficultyEasy, Results: []bool{false}},
			want: []bool{true, true, false},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Flags(tt.a)
			if len(got) != len(tt.want) {
				t.Fatalf("len = %d, want %d", len(got), len(tt.want))
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Fatalf("flags = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestFlags_ZeroQuestions(t *testing.T) {
	if got := Flags(Attempt{Score: 100, Difficulty: quiz.DifficultyEasy}); len(got) != 0 {
		t.Fatalf("expected no flags, got %v", got)
	}
}

func TestMax_AcrossAttempts(t *testing.T) {
	// Two perfect medium quizzes then a 3/5: the run spans both quizzes.
	attempts := []Attempt{
		{Score: 600, TotalQuestions: 5, Difficulty: quiz.DifficultyMedium},
		{Score: 600, TotalQuestions: 5, Difficulty: quiz.DifficultyMedium},
		{Score: 300, TotalQuestions: 5, Difficulty: quiz.DifficultyMedium},
	}
	if got := Max(attempts); got != 13 {
		t.Fatalf("Max = %d, want 13", got)
	}
}

func TestMax_StoredRowsBreakRun(t *testing.T) {
	attempts := []Attempt{
		{Score: 400, TotalQuestions: 5, Difficulty: quiz.DifficultyEasy, Results: []bool{true, true, false, true, true}},
		{Score: 600, TotalQuestions: 5, Difficulty: quiz.DifficultyEasy, Results: []bool{true, true, true, true, true}},
	}
	if got := Max(attempts); got != 7 {
		t.Fatalf("Max = %d, want 7", got)
	}
}

func TestNextThreshold(t *testing.T) {
	tests := []struct {
		current int
		want    int
	}{
		{0, 5},
		{4, 5},
		{5, 10},
		{9, 10},
		{10, 20},
		{19, 20},
		{20, 0},
		{35, 0},
	}
	for _, tt := range tests {
		if got := NextThreshold(tt.current); got != tt.want {
			t.Errorf("NextThreshold(%d) = %d, want %d", tt.current, got, tt.want)
		}
	}
}
