package app

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/HEADES94/MovieProjektFinal/internal/engine"
	"github.com/HEADES94/MovieProjektFinal/internal/screen"
	"github.com/HEADES94/MovieProjektFinal/internal/screen/screentest"
)

func TestStatsMsgUpdatesHeader(t *testing.T) {
	m := newAppModel(&screentest.Backend{}, Options{UserID: 4})
	if m.header.UserID != 4 {
		t.Fatalf("header user = %d, want 4", m.header.UserID)
	}

	updated, _ := m.Update(screen.StatsMsg{Stats: &engine.UserStats{UserID: 4, BestScore: 1100, MaxStreak: 12}})
	got := updated.(AppModel).header
	if got.BestScore != 1100 || got.MaxStreak != 12 {
		t.Errorf("header = %+v", got)
	}

	// Failed loads keep the last header.
	updated, _ = updated.Update(screen.StatsMsg{Err: engine.ErrNotFound})
	if updated.(AppModel).header.BestScore != 1100 {
		t.Error("error should not reset the header")
	}
}

func TestCtrlCQuits(t *testing.T) {
	m := newAppModel(&screentest.Backend{}, Options{})
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("expected quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+c should quit")
	}
}
