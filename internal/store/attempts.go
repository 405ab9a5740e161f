package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

var attemptColumns = []string{
	"id", "user_id", "movie_id", "score", "correct_count",
	"total_questions", "difficulty", "completed_at",
}

// InsertAttempt appends an attempt together with its per-question results.
// Callers that need the attempt and its results to land atomically use a
// transactional repo.
func (r *Repo) InsertAttempt(ctx context.Context, in AttemptInput) (Attempt, error) {
	if in.UserID <= 0 {
		return Attempt{}, errors.New("attempt user id must be positive")
	}
	completed := in.CompletedAt
	if completed.IsZero() {
		completed = time.Now()
	}
	completed = completed.UTC()

	var movie any
	if in.MovieID > 0 {
		movie = in.MovieID
	}

	query, args := builder().Insert("quiz_attempts").
		Columns(attemptColumns[1:]...).
		Values(in.UserID, movie, in.Score, in.CorrectCount, in.TotalQuestions, in.Difficulty, completed).
		Query()
	res, err := r.exec(ctx, query, args)
	if err != nil {
		return Attempt{}, fmt.Errorf("insert attempt: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Attempt{}, fmt.Errorf("attempt id: %w", err)
	}

	correct := in.CorrectCount
	a := Attempt{
		ID:             id,
		UserID:         in.UserID,
		MovieID:        max(in.MovieID, 0),
		Score:          in.Score,
		CorrectCount:   &correct,
		TotalQuestions: in.TotalQuestions,
		Difficulty:     in.Difficulty,
		CompletedAt:    completed,
	}

	for i, ri := range in.Results {
		var qid any
		if ri.QuestionID > 0 {
			qid = ri.QuestionID
		}
		query, args := builder().Insert("attempt_question_results").
			Columns("attempt_id", "position", "question_id", "user_answer", "is_correct").
			Values(id, i, qid, ri.UserAnswer, ri.IsCorrect).
			Query()
		if _, err := r.exec(ctx, query, args); err != nil {
			return Attempt{}, fmt.Errorf("insert result %d of attempt %d: %w", i, id, err)
		}
		a.Results = append(a.Results, AttemptResult{
			Position:   i,
			QuestionID: max(ri.QuestionID, 0),
			UserAnswer: ri.UserAnswer,
			IsCorrect:  ri.IsCorrect,
		})
	}

	return a, nil
}

// AttemptsForUser returns a user's attempts oldest first, each with its
// stored results. Attempts completed at the same instant keep insertion
// order.
func (r *Repo) AttemptsForUser(ctx context.Context, userID int64) ([]Attempt, error) {
	query, args := builder().Select(attemptColumns...).
		From(entsql.Table("quiz_attempts")).
		Where(entsql.EQ("user_id", userID)).
		OrderBy("completed_at", "id").
		Query()

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query attempts: %w", err)
	}
	defer rows.Close()

	var (
		attempts []Attempt
		index    = make(map[int64]int)
	)
	for rows.Next() {
		a, err := scanAttempt(rows)
		if err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		index[a.ID] = len(attempts)
		attempts = append(attempts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	if len(attempts) == 0 {
		return nil, nil
	}
	if err := r.loadResults(ctx, userID, attempts, index); err != nil {
		return nil, err
	}
	return attempts, nil
}

// loadResults attaches stored per-question rows to attempts.
func (r *Repo) loadResults(ctx context.Context, userID int64, attempts []Attempt, index map[int64]int) error {
	query, args := builder().Select("r.attempt_id", "r.position", "r.question_id", "r.user_answer", "r.is_correct").
		From(entsql.Table("attempt_question_results").As("r")).
		Join(entsql.Table("quiz_attempts").As("a")).
		On("r.attempt_id", "a.id").
		Where(entsql.EQ("a.user_id", userID)).
		OrderBy("r.attempt_id", "r.position").
		Query()

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("query attempt results: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			attemptID int64
			res       AttemptResult
			qid       sql.NullInt64
		)
		if err := rows.Scan(&attemptID, &res.Position, &qid, &res.UserAnswer, &res.IsCorrect); err != nil {
			return fmt.Errorf("scan attempt result: %w", err)
		}
		res.QuestionID = qid.Int64
		if i, ok := index[attemptID]; ok {
			attempts[i].Results = append(attempts[i].Results, res)
		}
	}
	return rows.Err()
}

func scanAttempt(row rowScanner) (Attempt, error) {
	var (
		a       Attempt
		movie   sql.NullInt64
		correct sql.NullInt64
	)
	if err := row.Scan(&a.ID, &a.UserID, &movie, &a.Score, &correct,
		&a.TotalQuestions, &a.Difficulty, &a.CompletedAt); err != nil {
		return Attempt{}, err
	}
	a.MovieID = movie.Int64
	if correct.Valid {
		n := int(correct.Int64)
		a.CorrectCount = &n
	}
	return a, nil
}
