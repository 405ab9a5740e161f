// Package vault shows the achievement catalog with the player's unlocks.
package vault

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/HEADES94/MovieProjektFinal/internal/achievements"
	"github.com/HEADES94/MovieProjektFinal/internal/engine"
	"github.com/HEADES94/MovieProjektFinal/internal/router"
	"github.com/HEADES94/MovieProjektFinal/internal/screen"
	"github.com/HEADES94/MovieProjektFinal/internal/ui/layout"
	"github.com/HEADES94/MovieProjektFinal/internal/ui/theme"
)

type earnedLoadedMsg struct {
	Earned []engine.EarnedAchievement
	Err    error
}

// VaultScreen lists achievements by category.
type VaultScreen struct {
	backend      screen.Backend
	userID       int64
	earned       map[string]engine.EarnedAchievement
	category     int // index into achievements.AllCategories
	scrollOffset int
	loaded       bool
	errMsg       string
}

var _ screen.Screen = (*VaultScreen)(nil)
var _ screen.KeyHintProvider = (*VaultScreen)(nil)

// New creates a new VaultScreen.
func New(backend screen.Backend, userID int64) *VaultScreen {
	return &VaultScreen{
		backend: backend,
		userID:  userID,
		earned:  make(map[string]engine.EarnedAchievement),
	}
}

func (s *VaultScreen) Init() tea.Cmd {
	return func() tea.Msg {
		earned, err := s.backend.UserAchievements(context.Background(), s.userID)
		return earnedLoadedMsg{Earned: earned, Err: err}
	}
}

func (s *VaultScreen) Title() string {
	return "Achievements"
}

func (s *VaultScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Switch category"},
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *VaultScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case earnedLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			for _, e := range msg.Earned {
				s.earned[e.Code] = e
			}
		}
		s.loaded = true
		return s, nil

	case tea.KeyPressMsg:
		cats := achievements.AllCategories()
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "tab", "right", "l":
			s.category = (s.category + 1) % len(cats)
			s.scrollOffset = 0
		case "shift+tab", "left", "h":
			s.category = (s.category - 1 + len(cats)) % len(cats)
			s.scrollOffset = 0
		case "up", "k":
			if s.scrollOffset > 0 {
				s.scrollOffset--
			}
		case "down", "j":
			if s.scrollOffset < len(s.entries())-1 {
				s.scrollOffset++
			}
		}
	}
	return s, nil
}

// entries returns the catalog entries of the selected category.
func (s *VaultScreen) entries() []engine.CatalogEntry {
	return s.backend.Catalog(string(achievements.AllCategories()[s.category]))
}

func (s *VaultScreen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	if s.errMsg != "" {
		return center.Foreground(theme.Error).Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return center.Foreground(theme.TextDim).Render("\n\n  Loading achievements...")
	}

	var b strings.Builder
	b.WriteString(center.Foreground(theme.Text).
		Render(fmt.Sprintf("\nUnlocked: %d of %d\n", len(s.earned), len(s.backend.Catalog("")))))
	b.WriteString("\n")

	var tabs []string
	for i, c := range achievements.AllCategories() {
		entries := s.backend.Catalog(string(c))
		got := 0
		for _, e := range entries {
			if _, ok := s.earned[e.Code]; ok {
				got++
			}
		}
		label := fmt.Sprintf("%s (%d/%d)", strings.ToUpper(string(c)), got, len(entries))
		if i == s.category {
			tabs = append(tabs, lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(label))
		} else {
			tabs = append(tabs, lipgloss.NewStyle().Foreground(theme.TextDim).Render(label))
		}
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(tabs, "    ")))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", min(width-8, 60)))))
	b.WriteString("\n\n")

	entries := s.entries()
	maxVisible := max(height-10, 3)
	start := s.scrollOffset
	end := min(start+maxVisible, len(entries))

	for i := start; i < end; i++ {
		e := entries[i]
		var line string
		style := lipgloss.NewStyle().Foreground(theme.TextDim)
		if got, ok := s.earned[e.Code]; ok {
			line = fmt.Sprintf("🏆 %-20s %-9s %s  %s", e.Title, e.Rarity, e.Description, got.EarnedAt)
			style = lipgloss.NewStyle().Foreground(theme.RarityColor(e.Rarity))
		} else {
			line = fmt.Sprintf("🔒 %-20s %-9s %s", e.Title, e.Rarity, e.Description)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")
	}

	if end < len(entries) {
		b.WriteString("\n")
		b.WriteString(center.Foreground(theme.TextDim).Render(fmt.Sprintf("... %d more", len(entries)-end)))
	}

	return b.String()
}
