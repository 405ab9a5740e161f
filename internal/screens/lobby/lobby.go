// Package lobby lets the player pick a movie and a difficulty before a
// quiz starts.
package lobby

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/HEADES94/MovieProjektFinal/internal/quiz"
	"github.com/HEADES94/MovieProjektFinal/internal/router"
	"github.com/HEADES94/MovieProjektFinal/internal/screen"
	"github.com/HEADES94/MovieProjektFinal/internal/screens/play"
	"github.com/HEADES94/MovieProjektFinal/internal/store"
	"github.com/HEADES94/MovieProjektFinal/internal/ui/layout"
	"github.com/HEADES94/MovieProjektFinal/internal/ui/theme"
)

type moviesLoadedMsg struct {
	Movies []store.Movie
	Err    error
}

// LobbyScreen is a two-step picker: movie, then difficulty.
type LobbyScreen struct {
	backend    screen.Backend
	userID     int64
	movies     []store.Movie
	selected   int
	difficulty int
	picking    bool // true once a movie is chosen
	loaded     bool
	errMsg     string
}

var _ screen.Screen = (*LobbyScreen)(nil)
var _ screen.KeyHintProvider = (*LobbyScreen)(nil)

// New creates a new LobbyScreen.
func New(backend screen.Backend, userID int64) *LobbyScreen {
	return &LobbyScreen{
		backend:    backend,
		userID:     userID,
		difficulty: 1,
	}
}

func (s *LobbyScreen) Init() tea.Cmd {
	return func() tea.Msg {
		movies, err := s.backend.Movies(context.Background())
		return moviesLoadedMsg{Movies: movies, Err: err}
	}
}

func (s *LobbyScreen) Title() string {
	return "New Quiz"
}

func (s *LobbyScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Choose"},
		{Key: "Enter", Description: "Select"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *LobbyScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case moviesLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.movies = msg.Movies
		}
		s.loaded = true
		return s, nil

	case tea.KeyPressMsg:
		if s.picking {
			return s.updateDifficulty(msg.String())
		}
		return s.updateMovie(msg.String())
	}
	return s, nil
}

func (s *LobbyScreen) updateMovie(key string) (screen.Screen, tea.Cmd) {
	switch key {
	case "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < len(s.movies)-1 {
			s.selected++
		}
	case "enter":
		if len(s.movies) > 0 {
			s.picking = true
		}
	}
	return s, nil
}

func (s *LobbyScreen) updateDifficulty(key string) (screen.Screen, tea.Cmd) {
	levels := quiz.AllDifficulties()
	switch key {
	case "esc":
		s.picking = false
	case "up", "k", "left", "h":
		if s.difficulty > 0 {
			s.difficulty--
		}
	case "down", "j", "right", "l":
		if s.difficulty < len(levels)-1 {
			s.difficulty++
		}
	case "enter":
		q := play.New(s.backend, s.userID, s.movies[s.selected], levels[s.difficulty])
		return s, func() tea.Msg { return router.PushScreenMsg{Screen: q} }
	}
	return s, nil
}

func (s *LobbyScreen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	if s.errMsg != "" {
		return center.Foreground(theme.Error).Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return center.Foreground(theme.TextDim).Render("\n\n  Loading movies...")
	}
	if len(s.movies) == 0 {
		return center.Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No movies yet. Add one with `movie add`.")
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.Marquee).Bold(true).Render("NOW SHOWING"))
	b.WriteString("\n\n")

	// Keep the selection visible on short terminals.
	maxVisible := max(height-12, 3)
	start := max(0, s.selected-maxVisible+1)
	end := min(len(s.movies), start+maxVisible)

	for i := start; i < end; i++ {
		m := s.movies[i]
		label := m.Title
		if m.ReleaseYear > 0 {
			label = fmt.Sprintf("%s (%d)", m.Title, m.ReleaseYear)
		}
		style := theme.Unselected
		prefix := "  "
		if i == s.selected {
			style = theme.Selected
			prefix = "▸ "
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(prefix+label)))
		b.WriteString("\n")
	}

	if s.picking {
		b.WriteString("\n")
		b.WriteString(center.Foreground(theme.TextDim).Render("Difficulty"))
		b.WriteString("\n")
		var tabs []string
		for i, d := range quiz.AllDifficulties() {
			label := fmt.Sprintf("%s · %d pts", d.DisplayName(), d.PointsPerQuestion())
			if i == s.difficulty {
				tabs = append(tabs, lipgloss.NewStyle().Foreground(theme.BgDark).Background(theme.Marquee).Bold(true).Render(" "+label+" "))
			} else {
				tabs = append(tabs, lipgloss.NewStyle().Foreground(theme.Text).Render(" "+label+" "))
			}
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(tabs, "   ")))
	}

	return b.String()
}
