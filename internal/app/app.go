package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/HEADES94/MovieProjektFinal/internal/router"
	"github.com/HEADES94/MovieProjektFinal/internal/screen"
	"github.com/HEADES94/MovieProjektFinal/internal/screens/home"
	"github.com/HEADES94/MovieProjektFinal/internal/screens/welcome"
	"github.com/HEADES94/MovieProjektFinal/internal/ui/layout"
)

// Options configures the interactive player.
type Options struct {
	// UserID selects the player. Zero prompts for it on the welcome
	// screen.
	UserID int64
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	header layout.HeaderInfo
	width  int
	height int
}

// newAppModel creates a new AppModel starting at the welcome screen.
func newAppModel(backend screen.Backend, opts Options) AppModel {
	homeFactory := func(userID int64) screen.Screen {
		return home.New(backend, userID)
	}
	return AppModel{
		router: router.New(welcome.New(homeFactory, opts.UserID)),
		header: layout.HeaderInfo{UserID: opts.UserID},
	}
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case screen.StatsMsg:
		if msg.Err == nil && msg.Stats != nil {
			m.header = layout.HeaderInfo{
				UserID:    msg.Stats.UserID,
				BestScore: msg.Stats.BestScore,
				MaxStreak: msg.Stats.MaxStreak,
			}
		}

	case tea.KeyPressMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.header, m.width)

	var footerHints []layout.KeyHint
	if p, ok := active.(screen.KeyHintProvider); ok {
		footerHints = p.KeyHints()
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	} else {
		footerHints = []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	contentHeight := m.height - lipgloss.Height(header) - lipgloss.Height(footer)
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

// Run starts the Bubble Tea program.
func Run(backend screen.Backend, opts Options) error {
	p := tea.NewProgram(newAppModel(backend, opts))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
