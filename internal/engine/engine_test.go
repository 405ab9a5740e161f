package engine

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HEADES94/MovieProjektFinal/internal/achievements"
	"github.com/HEADES94/MovieProjektFinal/internal/llm"
	"github.com/HEADES94/MovieProjektFinal/internal/store"
	"github.com/HEADES94/MovieProjektFinal/internal/triviagen"
)

var fixedNow = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func noShuffle(int, func(i, j int)) {}

type fixture struct {
	svc   *Service
	store *store.Store
	mock  *llm.MockProvider
	movie store.Movie
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	st, err := store.Open("file:" + uuid.NewString() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	mock := llm.NewMockProvider()
	svc := New(st, triviagen.New(mock, triviagen.DefaultConfig()), DefaultConfig(),
		WithClock(func() time.Time { return fixedNow }),
		WithShuffle(noShuffle),
	)
	ctx := context.Background()
	_, err = svc.Seed(ctx, false)
	require.NoError(t, err)

	movie, err := svc.AddMovie(ctx, store.MovieInput{Title: "Jaws", ReleaseYear: 1975, Director: "Steven Spielberg"})
	require.NoError(t, err)
	return &fixture{svc: svc, store: st, mock: mock, movie: movie}
}

// questions stores n questions whose correct answer is "right <i>".
func (f *fixture) questions(t *testing.T, n int, difficulty string) []store.Question {
	t.Helper()
	var out []store.Question
	for i := range n {
		q, err := f.store.Repo().CreateQuestion(context.Background(), store.QuestionInput{
			MovieID:       f.movie.ID,
			Text:          fmt.Sprintf("Stored question %d about the shark?", i),
			CorrectAnswer: fmt.Sprintf("right %d", i),
			WrongAnswers:  [3]string{"w1", "w2", "w3"},
			Difficulty:    difficulty,
			Source:        store.SourceManual,
		})
		require.NoError(t, err)
		out = append(out, q)
	}
	return out
}

// answers answers the first `correct` questions right and the rest wrong.
func answers(qs []store.Question, correct int) map[string]string {
	out := make(map[string]string, len(qs))
	for i, q := range qs {
		a := "w1"
		if i < correct {
			a = q.CorrectAnswer
		}
		out[strconv.FormatInt(q.ID, 10)] = a
	}
	return out
}

func codes(as []achievements.Achievement) []string {
	out := make([]string, len(as))
	for i, a := range as {
		out[i] = a.Code
	}
	return out
}

func TestSubmitQuiz_PerfectMedium(t *testing.T) {
	f := newFixture(t)
	qs := f.questions(t, 5, "medium")

	out, err := f.svc.SubmitQuiz(context.Background(), Submission{
		UserID: 1, MovieID: f.movie.ID, Answers: answers(qs, 5), Difficulty: "medium",
	})
	require.NoError(t, err)

	assert.Equal(t, 600, out.Score)
	assert.Equal(t, 5, out.CorrectCount)
	assert.Equal(t, 5, out.TotalQuestions)
	assert.NotZero(t, out.AttemptID)
	require.Len(t, out.QuestionResults, 5)
	assert.Equal(t, qs[0].ID, out.QuestionResults[0].QuestionID, "results follow question id order")
	assert.ElementsMatch(t, []string{"quiz_beginner", "perfect_quiz", "first_highscore", "streak_5"}, codes(out.Achievements))

	attempts, err := f.store.Repo().AttemptsForUser(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, attempts, 1)
	assert.Len(t, attempts[0].Results, 5)
	assert.True(t, attempts[0].CompletedAt.Equal(fixedNow))
}

func TestSubmitQuiz_HardFourCorrectTwice(t *testing.T) {
	f := newFixture(t)
	qs := f.questions(t, 5, "hard")
	sub := Submission{UserID: 2, MovieID: f.movie.ID, Answers: answers(qs, 4), Difficulty: "hard"}

	first, err := f.svc.SubmitQuiz(context.Background(), sub)
	require.NoError(t, err)
	assert.Equal(t, 800, first.Score)
	assert.Contains(t, codes(first.Achievements), "quiz_expert")
	assert.NotContains(t, codes(first.Achievements), "perfect_quiz")

	second, err := f.svc.SubmitQuiz(context.Background(), sub)
	require.NoError(t, err)
	assert.Empty(t, second.Achievements)

	earned, err := f.svc.UserAchievements(context.Background(), 2)
	require.NoError(t, err)
	assert.Len(t, earned, len(first.Achievements))
}

func TestSubmitQuiz_ServedQuestionsWithoutAnswer(t *testing.T) {
	f := newFixture(t)
	qs := f.questions(t, 3, "easy")

	ids := []int64{qs[2].ID, qs[0].ID, qs[1].ID}
	out, err := f.svc.SubmitQuiz(context.Background(), Submission{
		UserID:      3,
		Answers:     map[string]string{strconv.FormatInt(qs[2].ID, 10): qs[2].CorrectAnswer, "not-a-number": "x", "999999": "y"},
		Difficulty:  "leicht",
		QuestionIDs: ids,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, out.TotalQuestions)
	assert.Equal(t, 1, out.CorrectCount)
	assert.Equal(t, 100, out.Score)
	assert.Equal(t, qs[2].ID, out.QuestionResults[0].QuestionID, "served order kept")
}

func TestSubmitQuiz_Validation(t *testing.T) {
	f := newFixture(t)
	qs := f.questions(t, 1, "easy")
	other, err := f.svc.AddMovie(context.Background(), store.MovieInput{Title: "Alien"})
	require.NoError(t, err)

	tests := []struct {
		name  string
		sub   Submission
		field string
	}{
		{"no user", Submission{Answers: answers(qs, 1), Difficulty: "easy"}, "user_id"},
		{"no answers", Submission{UserID: 1, Difficulty: "easy"}, "answers"},
		{"bad difficulty", Submission{UserID: 1, Answers: answers(qs, 1), Difficulty: "extreme"}, "difficulty"},
		{"unknown questions", Submission{UserID: 1, Answers: map[string]string{"424242": "x"}, Difficulty: "easy"}, "answers"},
		{"other movie", Submission{UserID: 1, MovieID: other.ID, Answers: answers(qs, 1), Difficulty: "easy"}, "answers"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.SubmitQuiz(context.Background(), tt.sub)
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}

	attempts, err := f.store.Repo().AttemptsForUser(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, attempts, "rejected submissions write nothing")
}

func TestSubmitQuiz_RollsBackWhenCatalogMissing(t *testing.T) {
	st, err := store.Open("file:" + uuid.NewString() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	defer st.Close()
	ctx := context.Background()

	svc := New(st, nil, DefaultConfig())
	movie, err := svc.AddMovie(ctx, store.MovieInput{Title: "Heat"})
	require.NoError(t, err)
	q, err := st.Repo().CreateQuestion(ctx, store.QuestionInput{
		MovieID: movie.ID, Text: "Who directed Heat?", CorrectAnswer: "Michael Mann",
		WrongAnswers: [3]string{"a", "b", "c"}, Difficulty: "easy", Source: store.SourceManual,
	})
	require.NoError(t, err)

	// The catalog was never seeded, so granting quiz_beginner fails.
	_, err = svc.SubmitQuiz(ctx, Submission{
		UserID: 9, Answers: map[string]string{strconv.FormatInt(q.ID, 10): "Michael Mann"}, Difficulty: "easy",
	})
	require.ErrorIs(t, err, store.ErrNotFound)

	attempts, err := st.Repo().AttemptsForUser(ctx, 9)
	require.NoError(t, err)
	assert.Empty(t, attempts, "attempt rolled back with the failed grant")
}

func TestRecordWatchlistAdd_TenthMovie(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	var all []string
	movies := []int64{f.movie.ID}
	for i := range 9 {
		m, err := f.svc.AddMovie(ctx, store.MovieInput{Title: fmt.Sprintf("Sequel %d", i+2)})
		require.NoError(t, err)
		movies = append(movies, m.ID)
	}
	for _, id := range movies {
		out, err := f.svc.RecordWatchlistAdd(ctx, 4, id)
		require.NoError(t, err)
		assert.True(t, out.Added)
		all = append(all, codes(out.Achievements)...)
	}
	assert.Equal(t, []string{"first_watchlist", "collector_10"}, all)

	again, err := f.svc.RecordWatchlistAdd(ctx, 4, f.movie.ID)
	require.NoError(t, err)
	assert.False(t, again.Added)
	assert.Empty(t, again.Achievements)
}

func TestRecordWatchlistAdd_Errors(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.RecordWatchlistAdd(context.Background(), 1, 9999)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = f.svc.RecordWatchlistAdd(context.Background(), 0, f.movie.ID)
	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestRecordReview(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	out, err := f.svc.RecordReview(ctx, ReviewInput{UserID: 5, MovieID: f.movie.ID, Rating: 5, Comment: "  Classic.  "})
	require.NoError(t, err)
	assert.NotZero(t, out.ReviewID)
	assert.Equal(t, []string{"first_review"}, codes(out.Achievements))

	for _, rating := range []int{0, 6} {
		_, err := f.svc.RecordReview(ctx, ReviewInput{UserID: 5, MovieID: f.movie.ID, Rating: rating})
		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "rating", ve.Field)
	}

	n, err := f.store.Repo().CountReviews(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestReevaluate_GrantsFromHistory(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.store.Repo().InsertAttempt(ctx, store.AttemptInput{
		UserID: 6, Score: 600, CorrectCount: 5, TotalQuestions: 5, Difficulty: "easy", CompletedAt: fixedNow,
	})
	require.NoError(t, err)

	got, err := f.svc.Reevaluate(ctx, 6)
	require.NoError(t, err)
	assert.Contains(t, codes(got), "perfect_quiz")

	again, err := f.svc.Reevaluate(ctx, 6)
	require.NoError(t, err)
	assert.Empty(t, again)
}

func TestUserStats(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	qs := f.questions(t, 5, "medium")

	_, err := f.svc.SubmitQuiz(ctx, Submission{UserID: 7, Answers: answers(qs, 5), Difficulty: "medium"})
	require.NoError(t, err)
	_, err = f.svc.SubmitQuiz(ctx, Submission{UserID: 7, Answers: answers(qs, 2), Difficulty: "medium"})
	require.NoError(t, err)
	_, err = f.svc.RecordWatchlistAdd(ctx, 7, f.movie.ID)
	require.NoError(t, err)

	st, err := f.svc.UserStats(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, 2, st.Attempts)
	assert.Equal(t, 600, st.BestScore)
	assert.Equal(t, 7, st.TotalCorrect)
	assert.Equal(t, 10, st.TotalQuestions)
	assert.InDelta(t, 70.0, st.Accuracy, 0.001)
	assert.Equal(t, 7, st.MaxStreak)
	assert.Equal(t, 10, st.NextStreak)
	assert.Equal(t, 1, st.Watchlist)
	assert.NotEmpty(t, st.Achievements)
}

func TestHighscores(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	qs := f.questions(t, 5, "easy")

	for user, correct := range map[int64]int{1: 3, 2: 5, 3: 1} {
		_, err := f.svc.SubmitQuiz(ctx, Submission{UserID: user, MovieID: f.movie.ID, Answers: answers(qs, correct), Difficulty: "easy"})
		require.NoError(t, err)
	}

	board, err := f.svc.Highscores(ctx, f.movie.ID, 2)
	require.NoError(t, err)
	require.Len(t, board, 2)
	assert.Equal(t, int64(2), board[0].UserID)
	assert.Equal(t, 600, board[0].BestScore)
	assert.Equal(t, int64(1), board[1].UserID)

	_, err = f.svc.Highscores(ctx, 0, -1)
	assert.Error(t, err)
}

func TestCatalog(t *testing.T) {
	f := newFixture(t)
	assert.Len(t, f.svc.Catalog(""), len(achievements.Catalog()))
	for _, e := range f.svc.Catalog("REVIEW") {
		assert.Equal(t, "review", e.Category)
	}
}

func TestAddMovie_RequiresTitle(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.AddMovie(context.Background(), store.MovieInput{Title: "   "})
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "title", ve.Field)
}

func TestQuestionStats(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	qs := f.questions(t, 5, "easy")

	for _, correct := range []int{5, 0} {
		_, err := f.svc.SubmitQuiz(ctx, Submission{UserID: 8, Answers: answers(qs, correct), Difficulty: "easy"})
		require.NoError(t, err)
	}

	u, err := f.svc.QuestionStats(ctx, qs[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 2, u.TimesUsed)
	assert.Equal(t, 1, u.TimesCorrect)
	assert.InDelta(t, 0.5, u.CorrectRate, 0.001)

	_, err = f.svc.QuestionStats(ctx, 9999)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = f.svc.QuestionStats(ctx, 0)
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}
