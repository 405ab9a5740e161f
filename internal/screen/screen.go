package screen

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/HEADES94/MovieProjektFinal/internal/engine"
	"github.com/HEADES94/MovieProjektFinal/internal/store"
	"github.com/HEADES94/MovieProjektFinal/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Backend is the part of the quiz engine the screens use.
// *engine.Service satisfies it.
type Backend interface {
	Movies(ctx context.Context) ([]store.Movie, error)
	GenerateQuiz(ctx context.Context, movieID int64, difficulty string) (*engine.GeneratedQuiz, error)
	SubmitQuiz(ctx context.Context, sub engine.Submission) (*engine.Outcome, error)
	UserStats(ctx context.Context, userID int64) (*engine.UserStats, error)
	UserAchievements(ctx context.Context, userID int64) ([]engine.EarnedAchievement, error)
	Catalog(category string) []engine.CatalogEntry
	Highscores(ctx context.Context, movieID int64, limit int) ([]store.Highscore, error)
}

var _ Backend = (*engine.Service)(nil)

// StatsMsg carries a freshly loaded stats summary. The app refreshes the
// header from it before the active screen sees it.
type StatsMsg struct {
	Stats *engine.UserStats
	Err   error
}

// LoadStats fetches a user's stats asynchronously.
func LoadStats(b Backend, userID int64) tea.Cmd {
	return func() tea.Msg {
		st, err := b.UserStats(context.Background(), userID)
		return StatsMsg{Stats: st, Err: err}
	}
}
