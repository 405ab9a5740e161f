package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

var questionColumns = []string{
	"id", "movie_id", "question_text", "correct_answer",
	"wrong_answer_1", "wrong_answer_2", "wrong_answer_3",
	"difficulty", "source", "created_at",
}

// CreateQuestion inserts a question for an existing movie.
func (r *Repo) CreateQuestion(ctx context.Context, in QuestionInput) (Question, error) {
	if strings.TrimSpace(in.Text) == "" {
		return Question{}, errors.New("question text is required")
	}
	if in.Source == "" {
		in.Source = SourceAI
	}
	now := time.Now().UTC()

	query, args := builder().Insert("quiz_questions").
		Columns(questionColumns[1:]...).
		Values(in.MovieID, in.Text, in.CorrectAnswer,
			in.WrongAnswers[0], in.WrongAnswers[1], in.WrongAnswers[2],
			in.Difficulty, in.Source, now).
		Query()
	res, err := r.exec(ctx, query, args)
	if err != nil {
		return Question{}, fmt.Errorf("insert question: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Question{}, fmt.Errorf("question id: %w", err)
	}

	return Question{
		ID:            id,
		MovieID:       in.MovieID,
		Text:          in.Text,
		CorrectAnswer: in.CorrectAnswer,
		WrongAnswers:  in.WrongAnswers,
		Difficulty:    in.Difficulty,
		Source:        in.Source,
		CreatedAt:     now,
	}, nil
}

// QuestionsByIDs returns the questions with the given ids keyed by id.
// Unknown ids are absent from the map.
func (r *Repo) QuestionsByIDs(ctx context.Context, ids []int64) (map[int64]Question, error) {
	out := make(map[int64]Question, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	query, qargs := builder().Select(questionColumns...).
		From(entsql.Table("quiz_questions")).
		Where(entsql.In("id", args...)).
		Query()

	qs, err := r.queryQuestions(ctx, query, qargs)
	if err != nil {
		return nil, err
	}
	for _, q := range qs {
		out[q.ID] = q
	}
	return out, nil
}

// QuestionsForMovie returns a movie's questions, newest first. An empty
// difficulty matches all difficulties.
func (r *Repo) QuestionsForMovie(ctx context.Context, movieID int64, difficulty string) ([]Question, error) {
	sel := builder().Select(questionColumns...).
		From(entsql.Table("quiz_questions")).
		Where(entsql.EQ("movie_id", movieID))
	if difficulty != "" {
		sel = sel.Where(entsql.EQ("difficulty", difficulty))
	}
	query, args := sel.OrderBy(entsql.Desc("id")).Query()
	return r.queryQuestions(ctx, query, args)
}

// QuestionStats derives usage counts for a question from stored attempt
// results.
func (r *Repo) QuestionStats(ctx context.Context, questionID int64) (QuestionStats, error) {
	query, args := builder().Select("COUNT(*)", "SUM(is_correct)").
		From(entsql.Table("attempt_question_results")).
		Where(entsql.EQ("question_id", questionID)).
		Query()

	var (
		st      QuestionStats
		correct *int64
	)
	if err := r.q.QueryRowContext(ctx, query, args...).Scan(&st.TimesUsed, &correct); err != nil {
		return QuestionStats{}, fmt.Errorf("question stats: %w", err)
	}
	if correct != nil {
		st.TimesCorrect = int(*correct)
	}
	return st, nil
}

func (r *Repo) queryQuestions(ctx context.Context, query string, args []any) ([]Question, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query questions: %w", err)
	}
	defer rows.Close()

	var qs []Question
	for rows.Next() {
		var q Question
		if err := rows.Scan(&q.ID, &q.MovieID, &q.Text, &q.CorrectAnswer,
			&q.WrongAnswers[0], &q.WrongAnswers[1], &q.WrongAnswers[2],
			&q.Difficulty, &q.Source, &q.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		qs = append(qs, q)
	}
	return qs, rows.Err()
}
