// Package screentest provides an in-memory screen.Backend for screen tests.
package screentest

import (
	"context"
	"sync"

	tea "charm.land/bubbletea/v2"

	"github.com/HEADES94/MovieProjektFinal/internal/engine"
	"github.com/HEADES94/MovieProjektFinal/internal/screen"
	"github.com/HEADES94/MovieProjektFinal/internal/store"
)

// Backend is a canned screen.Backend. Zero values return empty results.
type Backend struct {
	MoviesList  []store.Movie
	Quiz        *engine.GeneratedQuiz
	Outcome     *engine.Outcome
	Stats       *engine.UserStats
	Earned      []engine.EarnedAchievement
	Entries     []engine.CatalogEntry
	Scores      []store.Highscore
	Err         error
	GenerateErr error
	SubmitErr   error

	mu          sync.Mutex
	Submissions []engine.Submission
	Generated   []string
	ScoreCalls  []int64
}

var _ screen.Backend = (*Backend)(nil)

func (b *Backend) Movies(context.Context) ([]store.Movie, error) {
	return b.MoviesList, b.Err
}

func (b *Backend) GenerateQuiz(_ context.Context, movieID int64, difficulty string) (*engine.GeneratedQuiz, error) {
	b.mu.Lock()
	b.Generated = append(b.Generated, difficulty)
	b.mu.Unlock()
	if b.GenerateErr != nil {
		return nil, b.GenerateErr
	}
	return b.Quiz, nil
}

func (b *Backend) SubmitQuiz(_ context.Context, sub engine.Submission) (*engine.Outcome, error) {
	b.mu.Lock()
	b.Submissions = append(b.Submissions, sub)
	b.mu.Unlock()
	if b.SubmitErr != nil {
		return nil, b.SubmitErr
	}
	return b.Outcome, nil
}

func (b *Backend) UserStats(_ context.Context, userID int64) (*engine.UserStats, error) {
	if b.Err != nil {
		return nil, b.Err
	}
	if b.Stats == nil {
		return &engine.UserStats{UserID: userID}, nil
	}
	return b.Stats, nil
}

func (b *Backend) UserAchievements(context.Context, int64) ([]engine.EarnedAchievement, error) {
	return b.Earned, b.Err
}

func (b *Backend) Catalog(category string) []engine.CatalogEntry {
	if category == "" {
		return b.Entries
	}
	var out []engine.CatalogEntry
	for _, e := range b.Entries {
		if e.Category == category {
			out = append(out, e)
		}
	}
	return out
}

func (b *Backend) Highscores(_ context.Context, movieID int64, _ int) ([]store.Highscore, error) {
	b.mu.Lock()
	b.ScoreCalls = append(b.ScoreCalls, movieID)
	b.mu.Unlock()
	if b.Err != nil {
		return nil, b.Err
	}
	if movieID == 0 {
		return b.Scores, nil
	}
	var out []store.Highscore
	for _, h := range b.Scores {
		if h.MovieID == movieID {
			out = append(out, h)
		}
	}
	return out, nil
}

// Run executes cmd and any batched commands it yields, returning every
// message produced. Commands whose message matches skip are dropped.
func Run(cmd tea.Cmd, skip func(tea.Msg) bool) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, Run(c, skip)...)
		}
		return out
	}
	if msg == nil || (skip != nil && skip(msg)) {
		return nil
	}
	return []tea.Msg{msg}
}
