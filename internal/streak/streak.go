// Package streak finds runs of consecutive correct answers across a user's
// quiz history.
package streak

import "github.com/HEADES94/MovieProjektFinal/internal/quiz"

// Thresholds are the streak lengths that unlock achievements, ascending.
var Thresholds = []int{5, 10, 20}

// Attempt is the part of a stored quiz attempt the analyzer needs.
type Attempt struct {
	Score          int
	TotalQuestions int
	Difficulty     quiz.Difficulty

	// Results holds the stored per-question outcomes in question order.
	// Attempts recorded before per-question rows existed leave it empty.
	Results []bool
}

// Longest returns the length of the longest run of true values.
func Longest(flags []bool) int {
	var cur, best int
	for _, ok := range flags {
		if !ok {
			cur = 0
			continue
		}
		cur++
		if cur > best {
			best = cur
		}
	}
	return best
}

// Flags returns the per-question outcomes of a. Stored results are used
// when there is one per question; otherwise the outcome is reconstructed
// from the score as correct answers first, then incorrect ones.
func Flags(a Attempt) []bool {
	if a.TotalQuestions <= 0 {
		return nil
	}
	if len(a.Results) == a.TotalQuestions {
		return a.Results
	}

	correct := a.Score / a.Difficulty.PointsPerQuestion()
	if correct > a.TotalQuestions {
		correct = a.TotalQuestions
	}
	if correct < 0 {
		correct = 0
	}
	flags := make([]bool, a.TotalQuestions)
	for i := range correct {
		flags[i] = true
	}
	return flags
}

// History concatenates the flags of attempts, which must be oldest first.
func History(attempts []Attempt) []bool {
	var n int
	for _, a := range attempts {
		n += max(a.TotalQuestions, 0)
	}
	out := make([]bool, 0, n)
	for _, a := range attempts {
		out = append(out, Flags(a)...)
	}
	return out
}

// Max returns the longest streak across attempts, oldest first.
func Max(attempts []Attempt) int {
	return Longest(History(attempts))
}

// NextThreshold returns the next achievement threshold above current, or 0
// once every threshold has been reached.
func NextThreshold(current int) int {
	for _, t := range Thresholds {
		if current < t {
			return t
		}
	}
	return 0
}
