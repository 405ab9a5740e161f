package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/HEADES94/MovieProjektFinal/internal/achievements"
	"github.com/HEADES94/MovieProjektFinal/internal/store"
	"github.com/HEADES94/MovieProjektFinal/internal/streak"
)

// UserStats is a user's progress summary.
type UserStats struct {
	UserID         int64   `json:"user_id"`
	Attempts       int     `json:"attempts"`
	BestScore      int     `json:"best_score"`
	AverageScore   float64 `json:"average_score"`
	TotalCorrect   int     `json:"total_correct"`
	TotalQuestions int     `json:"total_questions"`
	Accuracy       float64 `json:"accuracy"`
	MaxStreak      int     `json:"max_streak"`

	// NextStreak is the next streak threshold to reach, 0 when all are
	// reached.
	NextStreak   int                 `json:"next_streak"`
	Watchlist    int                 `json:"watchlist"`
	Reviews      int                 `json:"reviews"`
	Achievements []EarnedAchievement `json:"achievements"`
}

// EarnedAchievement is an achievement a user holds.
type EarnedAchievement struct {
	Code        string `json:"code"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	EarnedAt    string `json:"earned_at"`
}

// UserStats summarises a user's quizzes, streaks and achievements.
func (s *Service) UserStats(ctx context.Context, userID int64) (*UserStats, error) {
	if userID <= 0 {
		return nil, invalid("user_id", "must be positive")
	}
	r := s.store.Repo()

	agg, err := r.UserStats(ctx, userID)
	if err != nil {
		return nil, err
	}
	attempts, err := r.AttemptsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	watchlist, err := r.CountWatchlist(ctx, userID)
	if err != nil {
		return nil, err
	}
	reviews, err := r.CountReviews(ctx, userID)
	if err != nil {
		return nil, err
	}
	earned, err := s.UserAchievements(ctx, userID)
	if err != nil {
		return nil, err
	}

	facts := achievements.BuildFacts(attempts, watchlist, reviews)
	return &UserStats{
		UserID:         userID,
		Attempts:       agg.Attempts,
		BestScore:      agg.BestScore,
		AverageScore:   agg.AverageScore,
		TotalCorrect:   agg.TotalCorrect,
		TotalQuestions: agg.TotalQuestions,
		Accuracy:       agg.Accuracy(),
		MaxStreak:      facts.MaxStreak,
		NextStreak:     streak.NextThreshold(facts.MaxStreak),
		Watchlist:      watchlist,
		Reviews:        reviews,
		Achievements:   earned,
	}, nil
}

// UserAchievements lists the achievements a user holds, oldest first.
func (s *Service) UserAchievements(ctx context.Context, userID int64) ([]EarnedAchievement, error) {
	rows, err := s.store.Repo().UserAchievements(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]EarnedAchievement, 0, len(rows))
	for _, row := range rows {
		out = append(out, EarnedAchievement{
			Code:        row.Code,
			Title:       row.Name,
			Description: row.Description,
			Category:    row.Category,
			EarnedAt:    row.EarnedAt.UTC().Format("2006-01-02T15:04:05Z"),
		})
	}
	return out, nil
}

// Highscores returns the leaderboard. movieID 0 covers every movie.
func (s *Service) Highscores(ctx context.Context, movieID int64, limit int) ([]store.Highscore, error) {
	if limit < 0 {
		return nil, invalid("limit", "must not be negative")
	}
	return s.store.Repo().Highscores(ctx, movieID, limit)
}

// CatalogEntry is one achievement definition with its display metadata.
type CatalogEntry struct {
	Code        string `json:"code"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Rarity      string `json:"rarity"`
}

// Catalog lists every achievement definition, optionally filtered by
// category.
func (s *Service) Catalog(category string) []CatalogEntry {
	var out []CatalogEntry
	for _, d := range achievements.Catalog() {
		if category != "" && !strings.EqualFold(string(d.Category), category) {
			continue
		}
		out = append(out, CatalogEntry{
			Code:        d.Code,
			Title:       d.Name,
			Description: d.Description,
			Category:    string(d.Category),
			Rarity:      string(d.Rarity),
		})
	}
	return out
}

// Seed writes the achievement catalog.
func (s *Service) Seed(ctx context.Context, force bool) (achievements.SeedResult, error) {
	var res achievements.SeedResult
	err := s.store.WithTx(ctx, func(r *store.Repo) error {
		var err error
		res, err = achievements.Seed(ctx, r, force)
		return err
	})
	return res, err
}

// AddMovie stores a movie.
func (s *Service) AddMovie(ctx context.Context, in store.MovieInput) (store.Movie, error) {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return store.Movie{}, invalid("title", "title is required")
	}
	if in.ReleaseYear < 0 {
		return store.Movie{}, invalid("release_year", "must not be negative")
	}
	return s.store.Repo().CreateMovie(ctx, in)
}

func (s *Service) Movies(ctx context.Context) ([]store.Movie, error) {
	return s.store.Repo().ListMovies(ctx)
}

func (s *Service) Movie(ctx context.Context, id int64) (store.Movie, error) {
	return s.store.Repo().GetMovie(ctx, id)
}

// QuestionUsage reports how often a stored question was answered and how
// often correctly.
type QuestionUsage struct {
	QuestionID   int64   `json:"question_id"`
	TimesUsed    int     `json:"times_used"`
	TimesCorrect int     `json:"times_correct"`
	CorrectRate  float64 `json:"correct_rate"`
}

func (s *Service) QuestionStats(ctx context.Context, questionID int64) (*QuestionUsage, error) {
	if questionID <= 0 {
		return nil, invalid("question_id", "must be positive")
	}
	repo := s.store.Repo()
	found, err := repo.QuestionsByIDs(ctx, []int64{questionID})
	if err != nil {
		return nil, err
	}
	if _, exists := found[questionID]; !exists {
		return nil, fmt.Errorf("question %d: %w", questionID, ErrNotFound)
	}
	st, err := repo.QuestionStats(ctx, questionID)
	if err != nil {
		return nil, err
	}
	return &QuestionUsage{
		QuestionID:   questionID,
		TimesUsed:    st.TimesUsed,
		TimesCorrect: st.TimesCorrect,
		CorrectRate:  st.CorrectRate(),
	}, nil
}
