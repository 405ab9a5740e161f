package store

import (
	"context"
	"database/sql"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

// UserStats aggregates a user's attempts. Attempts without a stored
// correct count are left out of the answer totals.
func (r *Repo) UserStats(ctx context.Context, userID int64) (UserStats, error) {
	query, args := builder().Select(
		"COUNT(*)",
		"MAX(score)",
		"AVG(score)",
		"SUM(correct_count)",
		"SUM(CASE WHEN correct_count IS NULL THEN 0 ELSE total_questions END)",
	).
		From(entsql.Table("quiz_attempts")).
		Where(entsql.EQ("user_id", userID)).
		Query()

	var (
		st                   UserStats
		best, correct, asked sql.NullInt64
		avg                  sql.NullFloat64
	)
	if err := r.q.QueryRowContext(ctx, query, args...).Scan(&st.Attempts, &best, &avg, &correct, &asked); err != nil {
		return UserStats{}, fmt.Errorf("user stats: %w", err)
	}
	st.BestScore = int(best.Int64)
	st.AverageScore = avg.Float64
	st.TotalCorrect = int(correct.Int64)
	st.TotalQuestions = int(asked.Int64)
	return st, nil
}

// Highscores returns each user's best score, highest first. Ties go to the
// user who reached the score earliest. A positive movieID restricts the
// board to that movie. limit <= 0 returns every user.
func (r *Repo) Highscores(ctx context.Context, movieID int64, limit int) ([]Highscore, error) {
	sel := builder().Select("user_id", "movie_id", "score", "difficulty", "completed_at").
		From(entsql.Table("quiz_attempts")).
		OrderBy(entsql.Desc("score"), "completed_at", "id")
	if movieID > 0 {
		sel = sel.Where(entsql.EQ("movie_id", movieID))
	}
	query, args := sel.Query()

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query highscores: %w", err)
	}
	defer rows.Close()

	var (
		out  []Highscore
		seen = make(map[int64]bool)
	)
	for rows.Next() {
		var (
			h     Highscore
			movie sql.NullInt64
		)
		if err := rows.Scan(&h.UserID, &movie, &h.BestScore, &h.Difficulty, &h.AchievedAt); err != nil {
			return nil, fmt.Errorf("scan highscore: %w", err)
		}
		if seen[h.UserID] {
			continue
		}
		seen[h.UserID] = true
		h.MovieID = movie.Int64
		out = append(out, h)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, rows.Err()
}
