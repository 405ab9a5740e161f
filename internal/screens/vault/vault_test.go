package vault

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/HEADES94/MovieProjektFinal/internal/engine"
	"github.com/HEADES94/MovieProjektFinal/internal/router"
	"github.com/HEADES94/MovieProjektFinal/internal/screen/screentest"
)

func testBackend() *screentest.Backend {
	return &screentest.Backend{
		Entries: []engine.CatalogEntry{
			{Code: "quiz_beginner", Title: "Quiz Beginner", Description: "Complete your first quiz", Category: "quiz", Rarity: "common"},
			{Code: "perfect_quiz", Title: "Perfect Quiz", Description: "Answer every question", Category: "quiz", Rarity: "rare"},
			{Code: "streak_5", Title: "Hot Streak", Description: "5 in a row", Category: "streak", Rarity: "rare"},
		},
		Earned: []engine.EarnedAchievement{{Code: "quiz_beginner", EarnedAt: "2026-05-01T10:00:00Z"}},
	}
}

func loaded() *VaultScreen {
	s := New(testBackend(), 1)
	s.Update(s.Init()())
	return s
}

func TestVault_CountsAndLocks(t *testing.T) {
	view := loaded().View(120, 30)
	for _, want := range []string{"Unlocked: 1 of 3", "QUIZ (1/2)", "STREAK (0/1)", "🏆 Quiz Beginner", "🔒 Perfect Quiz", "2026-05-01"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if strings.Contains(view, "Hot Streak") {
		t.Error("streak entries belong to another tab")
	}
}

func TestVault_Tabs(t *testing.T) {
	s := loaded()
	s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	if !strings.Contains(s.View(120, 30), "Hot Streak") {
		t.Error("tab should switch to the streak category")
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift})
	if s.category != 0 {
		t.Errorf("category = %d after shift+tab, want 0", s.category)
	}
}

func TestVault_Scroll(t *testing.T) {
	s := loaded()
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if s.scrollOffset != 1 {
		t.Errorf("scroll = %d, want 1 (two quiz entries)", s.scrollOffset)
	}
}

func TestVault_Esc(t *testing.T) {
	_, cmd := loaded().Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected pop")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}
