// Package highscores shows the best score per player, overall or per
// movie.
package highscores

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/HEADES94/MovieProjektFinal/internal/quiz"
	"github.com/HEADES94/MovieProjektFinal/internal/router"
	"github.com/HEADES94/MovieProjektFinal/internal/screen"
	"github.com/HEADES94/MovieProjektFinal/internal/store"
	"github.com/HEADES94/MovieProjektFinal/internal/ui/layout"
	"github.com/HEADES94/MovieProjektFinal/internal/ui/theme"
)

// limit is the number of rows shown per board.
const limit = 10

type moviesLoadedMsg struct {
	Movies []store.Movie
	Err    error
}

type scoresLoadedMsg struct {
	MovieID int64
	Scores  []store.Highscore
	Err     error
}

// HighscoresScreen is the leaderboard.
type HighscoresScreen struct {
	backend screen.Backend
	movies  []store.Movie
	titles  map[int64]string
	filter  int // 0 is every movie, i > 0 is movies[i-1]
	scores  []store.Highscore
	loaded  bool
	errMsg  string
}

var _ screen.Screen = (*HighscoresScreen)(nil)
var _ screen.KeyHintProvider = (*HighscoresScreen)(nil)

// New creates a new HighscoresScreen.
func New(backend screen.Backend) *HighscoresScreen {
	return &HighscoresScreen{
		backend: backend,
		titles:  make(map[int64]string),
	}
}

func (s *HighscoresScreen) Init() tea.Cmd {
	backend := s.backend
	return tea.Batch(
		func() tea.Msg {
			movies, err := backend.Movies(context.Background())
			return moviesLoadedMsg{Movies: movies, Err: err}
		},
		s.load(0),
	)
}

func (s *HighscoresScreen) load(movieID int64) tea.Cmd {
	backend := s.backend
	return func() tea.Msg {
		scores, err := backend.Highscores(context.Background(), movieID, limit)
		return scoresLoadedMsg{MovieID: movieID, Scores: scores, Err: err}
	}
}

func (s *HighscoresScreen) Title() string {
	return "Highscores"
}

func (s *HighscoresScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Switch movie"},
		{Key: "Esc", Description: "Back"},
	}
}

// selectedMovie returns the filtered movie id, 0 for every movie.
func (s *HighscoresScreen) selectedMovie() int64 {
	if s.filter == 0 || s.filter > len(s.movies) {
		return 0
	}
	return s.movies[s.filter-1].ID
}

func (s *HighscoresScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case moviesLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.movies = msg.Movies
		for _, m := range msg.Movies {
			s.titles[m.ID] = m.Title
		}
		return s, nil

	case scoresLoadedMsg:
		// Drop replies for a filter the player already left.
		if msg.MovieID != s.selectedMovie() {
			return s, nil
		}
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.scores = msg.Scores
		}
		s.loaded = true
		return s, nil

	case tea.KeyPressMsg:
		n := len(s.movies) + 1
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "tab", "right", "l":
			s.filter = (s.filter + 1) % n
		case "shift+tab", "left", "h":
			s.filter = (s.filter - 1 + n) % n
		default:
			return s, nil
		}
		s.loaded = false
		return s, s.load(s.selectedMovie())
	}
	return s, nil
}

func (s *HighscoresScreen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	if s.errMsg != "" {
		return center.Foreground(theme.Error).Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}

	board := "ALL MOVIES"
	if id := s.selectedMovie(); id != 0 {
		board = strings.ToUpper(s.titles[id])
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.Marquee).Bold(true).Render("★ " + board + " ★"))
	b.WriteString("\n\n")

	if !s.loaded {
		b.WriteString(center.Foreground(theme.TextDim).Render("Loading scores..."))
		return b.String()
	}
	if len(s.scores) == 0 {
		b.WriteString(center.Foreground(theme.TextDim).Italic(true).Render("No scores yet. Be the first!"))
		return b.String()
	}

	header := fmt.Sprintf("%-4s %-10s %-22s %6s  %-7s %s", "#", "PLAYER", "MOVIE", "SCORE", "LEVEL", "DATE")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(header)))
	b.WriteString("\n")

	for i, h := range s.scores {
		title := s.titles[h.MovieID]
		if title == "" {
			title = "-"
		}
		d, err := quiz.ParseDifficulty(h.Difficulty)
		level := h.Difficulty
		if err == nil {
			level = d.DisplayName()
		}
		line := fmt.Sprintf("%-4d %-10s %-22s %6d  %-7s %s",
			i+1, fmt.Sprintf("P%d", h.UserID), truncate(title, 22), h.BestScore, level,
			h.AchievedAt.Format("Jan 02, 2006"))

		style := lipgloss.NewStyle().Foreground(theme.Text)
		switch i {
		case 0:
			style = style.Foreground(theme.Marquee).Bold(true)
		case 1, 2:
			style = style.Foreground(theme.Neon)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")
	}

	return b.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
