package home

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/HEADES94/MovieProjektFinal/internal/engine"
	"github.com/HEADES94/MovieProjektFinal/internal/router"
	"github.com/HEADES94/MovieProjektFinal/internal/screen"
	"github.com/HEADES94/MovieProjektFinal/internal/screens/highscores"
	"github.com/HEADES94/MovieProjektFinal/internal/screens/lobby"
	"github.com/HEADES94/MovieProjektFinal/internal/screens/vault"
	"github.com/HEADES94/MovieProjektFinal/internal/screens/welcome"
	"github.com/HEADES94/MovieProjektFinal/internal/ui/components"
	"github.com/HEADES94/MovieProjektFinal/internal/ui/layout"
	"github.com/HEADES94/MovieProjektFinal/internal/ui/theme"
)

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 22

// HomeScreen is the main menu with the player's stats.
type HomeScreen struct {
	backend screen.Backend
	userID  int64
	menu    components.Menu
	stats   *engine.UserStats
	errMsg  string
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen for a player.
func New(backend screen.Backend, userID int64) *HomeScreen {
	push := func(s screen.Screen) tea.Cmd {
		return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
	}

	h := &HomeScreen{backend: backend, userID: userID}
	h.menu = components.NewMenu([]components.MenuItem{
		{Label: "PLAY QUIZ", Action: func() tea.Cmd {
			return push(lobby.New(backend, userID))
		}},
		{Label: "ACHIEVEMENTS", Action: func() tea.Cmd {
			return push(vault.New(backend, userID))
		}},
		{Label: "HIGHSCORES", Action: func() tea.Cmd {
			return push(highscores.New(backend))
		}},
		{Label: "EXIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	})
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return screen.LoadStats(h.backend, h.userID)
}

// Refresh reloads the stats when the player returns from a quiz.
func (h *HomeScreen) Refresh() tea.Cmd {
	return screen.LoadStats(h.backend, h.userID)
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(screen.StatsMsg); ok {
		if msg.Err != nil {
			h.errMsg = msg.Err.Error()
			return h, nil
		}
		h.errMsg = ""
		h.stats = msg.Stats
		return h, nil
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; add back header and footer
	compact := layout.IsCompactHeight(height+8) || layout.IsCompactWidth(width)

	cw := components.ContentWidth(width)

	var sections []string
	if compact {
		sections = append(sections, welcome.RenderBanner(0))
	} else {
		sections = append(sections, welcome.RenderBanner(width))
		sections = append(sections, lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).
			Render(RenderMascot(h.variant())))
	}

	sections = append(sections, h.renderStatsBar(cw, compact))

	var buttons []string
	for i, label := range h.menu.Labels() {
		buttons = append(buttons, components.Button(label, i == h.menu.Selected, buttonWidth))
	}
	sections = append(sections, lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).
		Render(strings.Join(buttons, "\n")))

	return components.CabinetFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) variant() MascotVariant {
	if h.stats == nil {
		return MascotIdle
	}
	return VariantFor(h.stats.Attempts, h.stats.NextStreak)
}

// renderStatsBar renders best score, longest streak and achievement count
// in a double-bordered box at content width.
func (h *HomeScreen) renderStatsBar(cw int, compact bool) string {
	if h.errMsg != "" {
		return lipgloss.NewStyle().Foreground(theme.Error).Width(cw).Align(lipgloss.Center).
			Render("Stats unavailable: " + h.errMsg)
	}

	var best, streak, earned, next int
	if st := h.stats; st != nil {
		best, streak, earned, next = st.BestScore, st.MaxStreak, len(st.Achievements), st.NextStreak
	}

	bestStyle := lipgloss.NewStyle().Foreground(theme.Marquee).Bold(true)
	streakStyle := lipgloss.NewStyle().Foreground(theme.Neon).Bold(true)
	trophyStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)

	var stats string
	if compact {
		stats = fmt.Sprintf("%s %s %s",
			bestStyle.Render(fmt.Sprintf("★%d", best)),
			streakStyle.Render(fmt.Sprintf("⚡%d", streak)),
			trophyStyle.Render(fmt.Sprintf("🏆%d", earned)))
	} else {
		stats = fmt.Sprintf("%s  %s  %s",
			bestStyle.Render(fmt.Sprintf("★ BEST %d", best)),
			streakStyle.Render(fmt.Sprintf("⚡ STREAK %d", streak)),
			trophyStyle.Render(fmt.Sprintf("🏆 %d EARNED", earned)))
		if next > 0 {
			stats += "\n" + lipgloss.NewStyle().Foreground(theme.TextDim).
				Render(fmt.Sprintf("next streak goal: %d in a row", next))
		}
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Neon).
		Width(cw-2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}
