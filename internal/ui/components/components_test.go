package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func TestMultiChoice_Shortcuts(t *testing.T) {
	tests := []struct {
		key  tea.KeyPressMsg
		want string
	}{
		{tea.KeyPressMsg{Code: '3', Text: "3"}, "Scott"},
		{tea.KeyPressMsg{Code: 'b', Text: "b"}, "Lucas"},
		{tea.KeyPressMsg{Code: tea.KeyEnter}, "Spielberg"},
	}
	for _, tt := range tests {
		mc := NewMultiChoice("Who directed Alien?", []string{"Spielberg", "Lucas", "Scott", "Cameron"})
		mc, _ = mc.Update(tt.key)
		if !mc.Chosen || mc.Answer() != tt.want {
			t.Errorf("%s: answer = %q chosen=%v, want %q", tt.key.String(), mc.Answer(), mc.Chosen, tt.want)
		}
	}
}

func TestMultiChoice_LockedAfterChoice(t *testing.T) {
	mc := NewMultiChoice("q", []string{"a", "b", "c", "d"})
	if mc.Answer() != "" {
		t.Fatal("no answer before a choice")
	}
	mc, _ = mc.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	mc, _ = mc.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	mc, _ = mc.Update(tea.KeyPressMsg{Code: '4', Text: "4"})
	if mc.Answer() != "b" {
		t.Errorf("answer = %q, want b", mc.Answer())
	}
}

func TestMultiChoice_OutOfRangeShortcut(t *testing.T) {
	mc := NewMultiChoice("q", []string{"yes", "no"})
	mc, _ = mc.Update(tea.KeyPressMsg{Code: '4', Text: "4"})
	if mc.Chosen {
		t.Error("shortcut past the last option should be ignored")
	}
}

func TestMenu_SkipsDisabled(t *testing.T) {
	m := NewMenu([]MenuItem{
		{Label: "A", Disabled: true},
		{Label: "B"},
		{Label: "C", Disabled: true},
		{Label: "D"},
	})
	if m.Selected != 1 {
		t.Fatalf("selected = %d, want first enabled item", m.Selected)
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if m.Selected != 3 {
		t.Errorf("selected = %d, want 3", m.Selected)
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if m.Selected != 1 {
		t.Errorf("selected = %d, want 1", m.Selected)
	}
}

func TestQuizProgress(t *testing.T) {
	tests := []struct {
		current, total int
		label          string
		fraction       float64
	}{
		{0, 5, "Question 1/5", 0},
		{2, 5, "Question 3/5", 0.4},
		{5, 5, "Question 5/5", 1},
		{0, 0, "Question 0/0", 0},
	}
	for _, tt := range tests {
		p := QuizProgress{Current: tt.current, Total: tt.total, Width: 40}
		if got := p.Label(); got != tt.label {
			t.Errorf("Label(%d/%d) = %q, want %q", tt.current, tt.total, got, tt.label)
		}
		if got := p.Fraction(); got != tt.fraction {
			t.Errorf("Fraction(%d/%d) = %v, want %v", tt.current, tt.total, got, tt.fraction)
		}
		if !strings.Contains(p.View(), tt.label) {
			t.Errorf("view of %d/%d misses its label", tt.current, tt.total)
		}
	}
}
