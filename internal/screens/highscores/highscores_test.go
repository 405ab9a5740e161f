package highscores

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/HEADES94/MovieProjektFinal/internal/screen/screentest"
	"github.com/HEADES94/MovieProjektFinal/internal/store"
)

func testBackend() *screentest.Backend {
	at := time.Date(2026, 6, 1, 20, 0, 0, 0, time.UTC)
	return &screentest.Backend{
		MoviesList: []store.Movie{{ID: 1, Title: "Jaws"}, {ID: 2, Title: "Alien"}},
		Scores: []store.Highscore{
			{UserID: 7, MovieID: 2, BestScore: 1100, Difficulty: "hard", AchievedAt: at},
			{UserID: 3, MovieID: 1, BestScore: 600, Difficulty: "mittel", AchievedAt: at},
		},
	}
}

func loaded(b *screentest.Backend) *HighscoresScreen {
	s := New(b)
	for _, msg := range screentest.Run(s.Init(), nil) {
		s.Update(msg)
	}
	return s
}

func TestHighscores_AllMovies(t *testing.T) {
	view := loaded(testBackend()).View(120, 30)
	for _, want := range []string{"ALL MOVIES", "P7", "Alien", "1100", "Hard", "P3", "Medium", "Jun 01, 2026"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestHighscores_FilterByMovie(t *testing.T) {
	b := testBackend()
	s := loaded(b)

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	if s.selectedMovie() != 1 {
		t.Fatalf("selected movie = %d, want 1", s.selectedMovie())
	}
	for _, msg := range screentest.Run(cmd, nil) {
		s.Update(msg)
	}

	view := s.View(120, 30)
	if !strings.Contains(view, "JAWS") || strings.Contains(view, "P7") {
		t.Errorf("board not filtered to Jaws:\n%s", view)
	}
	if got := b.ScoreCalls[len(b.ScoreCalls)-1]; got != 1 {
		t.Errorf("last highscore query for movie %d, want 1", got)
	}
}

func TestHighscores_StaleReplyIgnored(t *testing.T) {
	s := loaded(testBackend())
	s.Update(tea.KeyPressMsg{Code: tea.KeyTab})

	s.Update(scoresLoadedMsg{MovieID: 0, Scores: nil})
	if s.loaded {
		t.Error("a reply for the previous board should be dropped")
	}
}

func TestHighscores_Empty(t *testing.T) {
	s := loaded(&screentest.Backend{})
	if !strings.Contains(s.View(80, 24), "No scores yet") {
		t.Error("expected the empty hint")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("The Lord of the Rings", 10); got != "The Lord …" {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("Jaws", 10); got != "Jaws" {
		t.Errorf("truncate = %q", got)
	}
}
