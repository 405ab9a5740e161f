// Package quiz scores quiz submissions.
package quiz

import "strings"

// KeyEntry is one question of an answer key.
type KeyEntry struct {
	QuestionID    int64
	Text          string
	CorrectAnswer string
}

// AnswerKey lists the questions of a quiz in presentation order.
type AnswerKey []KeyEntry

// QuestionResult is the outcome for a single question.
type QuestionResult struct {
	QuestionID      int64  `json:"question_id"`
	QuestionText    string `json:"question_text"`
	SubmittedAnswer string `json:"user_answer"`
	CorrectAnswer   string `json:"correct_answer"`
	IsCorrect       bool   `json:"is_correct"`
	Answered        bool   `json:"-"`
}

// ScoreResult is the outcome of scoring one submission.
type ScoreResult struct {
	Score          int              `json:"score"`
	CorrectCount   int              `json:"correct_count"`
	TotalQuestions int              `json:"total_questions"`
	Results        []QuestionResult `json:"question_results"`
}

// Perfect reports whether every question was answered correctly.
func (r ScoreResult) Perfect() bool {
	return r.TotalQuestions > 0 && r.CorrectCount == r.TotalQuestions
}

// Flags returns the per-question correctness in key order.
func (r ScoreResult) Flags() []bool {
	flags := make([]bool, len(r.Results))
	for i, res := range r.Results {
		flags[i] = res.IsCorrect
	}
	return flags
}

// Score grades answers against key.
//
// Answers for question ids that are not part of the key are ignored. Key
// questions without an answer count as incorrect. Answers are compared after
// trimming surrounding whitespace; the comparison is case-sensitive. A quiz
// with every question correct earns PerfectBonus on top of the per-question
// points. Score is pure: identical inputs always produce identical results.
func Score(answers map[int64]string, key AnswerKey, d Difficulty) ScoreResult {
	res := ScoreResult{
		TotalQuestions: len(key),
		Results:        make([]QuestionResult, 0, len(key)),
	}

	for _, q := range key {
		submitted, answered := answers[q.QuestionID]
		correct := answered && strings.TrimSpace(submitted) == strings.TrimSpace(q.CorrectAnswer)
		if correct {
			res.CorrectCount++
		}
		res.Results = append(res.Results, QuestionResult{
			QuestionID:      q.QuestionID,
			QuestionText:    q.Text,
			SubmittedAnswer: submitted,
			CorrectAnswer:   q.CorrectAnswer,
			IsCorrect:       correct,
			Answered:        answered,
		})
	}

	res.Score = res.CorrectCount * d.PointsPerQuestion()
	if res.Perfect() {
		res.Score += PerfectBonus
	}
	return res
}

// MaxScore is the score of a perfect quiz with n questions.
func MaxScore(n int, d Difficulty) int {
	if n <= 0 {
		return 0
	}
	return n*d.PointsPerQuestion() + PerfectBonus
}
