package achievements

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HEADES94/MovieProjektFinal/internal/store"
)

func openSeededStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open("file:" + uuid.NewString() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	_, err = Seed(context.Background(), s.Repo(), false)
	require.NoError(t, err)
	return s
}

// submit stores an attempt and evaluates quiz achievements in one
// transaction, the way a quiz submission does.
func submit(t *testing.T, s *store.Store, g *Grantor, user int64, difficulty string, correct int) []Achievement {
	t.Helper()
	ctx := context.Background()
	points := 100
	if difficulty == "hard" {
		points = 200
	}
	score := correct * points
	if correct == 5 {
		score += 100
	}

	var granted []Achievement
	err := s.WithTx(ctx, func(r *store.Repo) error {
		if _, err := r.InsertAttempt(ctx, store.AttemptInput{
			UserID: user, Score: score, CorrectCount: correct, TotalQuestions: 5, Difficulty: difficulty,
		}); err != nil {
			return err
		}
		var err error
		granted, err = g.Evaluate(ctx, r, Trigger{Event: EventQuizSubmitted, UserID: user})
		return err
	})
	require.NoError(t, err)
	return granted
}

func codes(as []Achievement) []string {
	out := make([]string, len(as))
	for i, a := range as {
		out[i] = a.Code
	}
	return out
}

func grantRows(t *testing.T, s *store.Store, user int64) int {
	t.Helper()
	var n int
	require.NoError(t, s.DB().QueryRow("SELECT COUNT(*) FROM user_achievements WHERE user_id = ?", user).Scan(&n))
	return n
}

func TestScenarioA_PerfectMediumFirstQuiz(t *testing.T) {
	s := openSeededStore(t)
	got := submit(t, s, NewGrantor(), 1, "medium", 5)

	assert.ElementsMatch(t, []string{"quiz_beginner", "perfect_quiz", "first_highscore", "streak_5"}, codes(got))
	for _, a := range got {
		assert.NotEmpty(t, a.Title)
		assert.NotEmpty(t, a.Description)
	}
}

func TestScenarioBC_HardFourCorrect(t *testing.T) {
	s := openSeededStore(t)
	g := NewGrantor()

	first := submit(t, s, g, 2, "hard", 4)
	assert.Contains(t, codes(first), "quiz_expert")
	assert.NotContains(t, codes(first), "perfect_quiz")

	before := grantRows(t, s, 2)
	second := submit(t, s, g, 2, "hard", 4)
	assert.Empty(t, second, "nothing new on the second identical quiz")
	assert.Equal(t, before, grantRows(t, s, 2))
}

func TestScenarioD_TenthWatchlistItem(t *testing.T) {
	s := openSeededStore(t)
	ctx := context.Background()
	g := NewGrantor()
	r := s.Repo()

	for i := range 10 {
		m, err := r.CreateMovie(ctx, store.MovieInput{Title: "Movie " + string(rune('A'+i))})
		require.NoError(t, err)
		_, err = r.AddWatchlist(ctx, 3, m.ID)
		require.NoError(t, err)
	}

	var all []string
	for range 2 {
		err := s.WithTx(ctx, func(tx *store.Repo) error {
			got, err := g.Evaluate(ctx, tx, Trigger{Event: EventWatchlistChanged, UserID: 3})
			all = append(all, codes(got)...)
			return err
		})
		require.NoError(t, err)
	}

	assert.ElementsMatch(t, []string{"first_watchlist", "collector_10"}, all)
	assert.Equal(t, 2, grantRows(t, s, 3))
}

func TestEvaluate_Idempotent(t *testing.T) {
	s := openSeededStore(t)
	ctx := context.Background()
	g := NewGrantor()
	r := s.Repo()

	_, err := r.InsertAttempt(ctx, store.AttemptInput{UserID: 4, Score: 600, CorrectCount: 5, TotalQuestions: 5, Difficulty: "easy"})
	require.NoError(t, err)

	first, err := g.Evaluate(ctx, r, Trigger{Event: EventQuizSubmitted, UserID: 4})
	require.NoError(t, err)
	require.NotEmpty(t, first)
	rows := grantRows(t, s, 4)

	second, err := g.Evaluate(ctx, r, Trigger{Event: EventQuizSubmitted, UserID: 4})
	require.NoError(t, err)
	assert.Empty(t, second)
	assert.Equal(t, rows, grantRows(t, s, 4))
}

func TestEvaluate_CatchUpReplaysHistory(t *testing.T) {
	s := openSeededStore(t)
	ctx := context.Background()
	r := s.Repo()
	base := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)

	// A perfect quiz followed by a zero, both recorded without evaluation.
	_, err := r.InsertAttempt(ctx, store.AttemptInput{UserID: 5, Score: 600, CorrectCount: 5, TotalQuestions: 5, Difficulty: "easy", CompletedAt: base})
	require.NoError(t, err)
	_, err = r.InsertAttempt(ctx, store.AttemptInput{UserID: 5, Score: 0, CorrectCount: 0, TotalQuestions: 5, Difficulty: "easy", CompletedAt: base.Add(time.Hour)})
	require.NoError(t, err)
	_, err = r.InsertReview(ctx, 5, mustMovie(t, r), 4, "")
	require.NoError(t, err)

	got, err := NewGrantor().Evaluate(ctx, r, Trigger{Event: EventCatchUp, UserID: 5})
	require.NoError(t, err)
	assert.ElementsMatch(t,
		[]string{"quiz_beginner", "perfect_quiz", "first_highscore", "streak_5", "first_review"},
		codes(got))

	// A plain quiz evaluation only sees the latest attempt.
	got, err = NewGrantor().Evaluate(ctx, r, Trigger{Event: EventQuizSubmitted, UserID: 6})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestEvaluate_ObserverAndClock(t *testing.T) {
	s := openSeededStore(t)
	ctx := context.Background()
	r := s.Repo()
	at := time.Date(2026, 5, 5, 5, 5, 5, 0, time.UTC)

	var seen []string
	g := NewGrantor(
		WithClock(func() time.Time { return at }),
		WithObserver(func(code string, res store.GrantResult) { seen = append(seen, code+":"+res.String()) }),
	)

	_, err := r.InsertReview(ctx, 7, mustMovie(t, r), 5, "")
	require.NoError(t, err)
	_, err = g.Evaluate(ctx, r, Trigger{Event: EventReviewSubmitted, UserID: 7})
	require.NoError(t, err)
	_, err = g.Evaluate(ctx, r, Trigger{Event: EventReviewSubmitted, UserID: 7})
	require.NoError(t, err)

	assert.Equal(t, []string{"first_review:granted", "first_review:already_granted"}, seen)

	earned, err := r.UserAchievements(ctx, 7)
	require.NoError(t, err)
	require.Len(t, earned, 1)
	assert.True(t, earned[0].EarnedAt.Equal(at))
}

func TestEvaluate_RejectsBadTrigger(t *testing.T) {
	s := openSeededStore(t)
	g := NewGrantor()

	_, err := g.Evaluate(context.Background(), s.Repo(), Trigger{Event: EventQuizSubmitted})
	assert.Error(t, err)

	_, err = g.Evaluate(context.Background(), s.Repo(), Trigger{Event: "nope", UserID: 1})
	assert.Error(t, err)
}

func mustMovie(t *testing.T, r *store.Repo) int64 {
	t.Helper()
	m, err := r.CreateMovie(context.Background(), store.MovieInput{Title: "Fixture " + uuid.NewString()[:6]})
	require.NoError(t, err)
	return m.ID
}

// fakeRepo drives the grantor's error paths.
type fakeRepo struct {
	reviews  int
	missing  bool
	grantErr error
	grants   int
}

func (f *fakeRepo) AttemptsForUser(context.Context, int64) ([]store.Attempt, error) { return nil, nil }
func (f *fakeRepo) CountWatchlist(context.Context, int64) (int, error)              { return 0, nil }
func (f *fakeRepo) CountReviews(context.Context, int64) (int, error)                { return f.reviews, nil }

func (f *fakeRepo) AchievementByCode(_ context.Context, code string) (store.Achievement, error) {
	if f.missing {
		return store.Achievement{}, store.ErrNotFound
	}
	return store.Achievement{ID: 1, Code: code}, nil
}

func (f *fakeRepo) InsertGrant(context.Context, int64, int64, time.Time) (store.GrantResult, error) {
	f.grants++
	if f.grantErr != nil {
		return 0, f.grantErr
	}
	return store.Granted, nil
}

func TestEvaluate_StorageErrorAborts(t *testing.T) {
	boom := errors.New("disk full")
	repo := &fakeRepo{reviews: 50, grantErr: boom}

	got, err := NewGrantor().Evaluate(context.Background(), repo, Trigger{Event: EventReviewSubmitted, UserID: 1})
	require.ErrorIs(t, err, boom)
	assert.Nil(t, got)
	assert.Equal(t, 1, repo.grants, "evaluation stops at the first failure")
}

func TestEvaluate_UnseededCatalog(t *testing.T) {
	repo := &fakeRepo{reviews: 1, missing: true}
	_, err := NewGrantor().Evaluate(context.Background(), repo, Trigger{Event: EventReviewSubmitted, UserID: 1})
	require.ErrorIs(t, err, store.ErrNotFound)
}
