package engine

import (
	"context"
	"slices"
	"strconv"
	"strings"

	"github.com/HEADES94/MovieProjektFinal/internal/achievements"
	"github.com/HEADES94/MovieProjektFinal/internal/logging"
	"github.com/HEADES94/MovieProjektFinal/internal/metrics"
	"github.com/HEADES94/MovieProjektFinal/internal/quiz"
	"github.com/HEADES94/MovieProjektFinal/internal/store"
)

// Submission is a completed quiz.
type Submission struct {
	UserID  int64
	MovieID int64 // 0 when the quiz is not tied to a movie

	// Answers maps question ids, as decimal strings, to the chosen answer.
	// Keys that are not known question ids are ignored.
	Answers    map[string]string
	Difficulty string

	// QuestionIDs lists the questions that were served, in order. When
	// set, served questions without an answer count as wrong. When empty,
	// the quiz consists of the answered questions.
	QuestionIDs []int64
}

// Outcome is the result of SubmitQuiz.
type Outcome struct {
	AttemptID       int64                      `json:"attempt_id"`
	Score           int                        `json:"score"`
	CorrectCount    int                        `json:"correct_count"`
	TotalQuestions  int                        `json:"total_questions"`
	QuestionResults []quiz.QuestionResult      `json:"question_results"`
	Achievements    []achievements.Achievement `json:"achievements"`
}

// SubmitQuiz scores a submission, stores the attempt with its per-question
// results and grants newly unlocked achievements. Storage and grants share
// one transaction: on any failure nothing is kept.
func (s *Service) SubmitQuiz(ctx context.Context, sub Submission) (*Outcome, error) {
	if sub.UserID <= 0 {
		return nil, invalid("user_id", "must be positive")
	}
	if len(sub.Answers) == 0 {
		return nil, invalid("answers", "at least one answer is required")
	}
	d, err := parseDifficulty(sub.Difficulty)
	if err != nil {
		return nil, err
	}

	answers := make(map[int64]string, len(sub.Answers))
	for k, v := range sub.Answers {
		id, err := strconv.ParseInt(strings.TrimSpace(k), 10, 64)
		if err != nil || id <= 0 {
			continue
		}
		answers[id] = v
	}
	ids := sub.QuestionIDs
	if len(ids) == 0 {
		for id := range answers {
			ids = append(ids, id)
		}
		slices.Sort(ids)
	}

	var out *Outcome
	err = s.store.WithTx(ctx, func(r *store.Repo) error {
		key, err := s.answerKey(ctx, r, sub.MovieID, ids)
		if err != nil {
			return err
		}

		scored := quiz.Score(answers, key, d)
		in := store.AttemptInput{
			UserID:         sub.UserID,
			MovieID:        sub.MovieID,
			Score:          scored.Score,
			CorrectCount:   scored.CorrectCount,
			TotalQuestions: scored.TotalQuestions,
			Difficulty:     string(d),
			CompletedAt:    s.now(),
		}
		for _, qr := range scored.Results {
			in.Results = append(in.Results, store.ResultInput{
				QuestionID: qr.QuestionID,
				UserAnswer: qr.SubmittedAnswer,
				IsCorrect:  qr.IsCorrect,
			})
		}
		attempt, err := r.InsertAttempt(ctx, in)
		if err != nil {
			return err
		}

		granted, err := s.grantor.Evaluate(ctx, r, achievements.Trigger{
			Event:  achievements.EventQuizSubmitted,
			UserID: sub.UserID,
		})
		if err != nil {
			return err
		}

		out = &Outcome{
			AttemptID:       attempt.ID,
			Score:           scored.Score,
			CorrectCount:    scored.CorrectCount,
			TotalQuestions:  scored.TotalQuestions,
			QuestionResults: scored.Results,
			Achievements:    orEmpty(granted),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordSubmission(string(d), out.Score)
	logging.Ctx(ctx).Info().
		Int64("user_id", sub.UserID).
		Int64("movie_id", sub.MovieID).
		Str("difficulty", string(d)).
		Int("score", out.Score).
		Int("correct", out.CorrectCount).
		Int("total", out.TotalQuestions).
		Int("granted", len(out.Achievements)).
		Msg("quiz submitted")
	return out, nil
}

// answerKey loads the listed questions in order. Unknown ids, and
// questions of another movie when movieID is set, are skipped.
func (s *Service) answerKey(ctx context.Context, r *store.Repo, movieID int64, ids []int64) (quiz.AnswerKey, error) {
	byID, err := r.QuestionsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	key := make(quiz.AnswerKey, 0, len(ids))
	seen := make(map[int64]bool, len(ids))
	for _, id := range ids {
		q, ok := byID[id]
		if !ok || seen[id] || (movieID > 0 && q.MovieID != movieID) {
			continue
		}
		seen[id] = true
		key = append(key, quiz.KeyEntry{QuestionID: id, Text: q.Text, CorrectAnswer: q.CorrectAnswer})
	}
	if len(key) == 0 {
		return nil, invalid("answers", "no known questions in submission")
	}
	return key, nil
}
