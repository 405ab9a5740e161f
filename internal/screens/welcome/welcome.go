package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/HEADES94/MovieProjektFinal/internal/router"
	"github.com/HEADES94/MovieProjektFinal/internal/screen"
	"github.com/HEADES94/MovieProjektFinal/internal/ui/components"
	"github.com/HEADES94/MovieProjektFinal/internal/ui/layout"
	"github.com/HEADES94/MovieProjektFinal/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	phase1End    = 500 * time.Millisecond
	phase2End    = 1500 * time.Millisecond
	totalDur     = 4500 * time.Millisecond
)

const reelArt = `   ╭─────────╮
  ╭┤ ◯  ◯  ◯ ├╮
  │╰─────────╯│
  │ ▐▓▓▓▓▓▓▓▌ │
  │ ▐▓ ▶  ▓▓▌ │
  │ ▐▓▓▓▓▓▓▓▌ │
  ╰───────────╯`

// bulbFrames cycle around the reel like marquee lights.
var bulbFrames = []string{"●", "○"}

type tickMsg time.Time

// WelcomeScreen shows a splash animation, asks for a player number when
// none was given, then hands over to the home screen.
type WelcomeScreen struct {
	homeFactory  func(userID int64) screen.Screen
	userID       int64
	elapsed      time.Duration
	tickCount    int
	prompting    bool
	input        components.TextInput
	errMsg       string
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)
var _ screen.KeyHintProvider = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen. A zero userID makes the screen prompt for
// one before transitioning.
func New(homeFactory func(userID int64) screen.Screen, userID int64) *WelcomeScreen {
	return &WelcomeScreen{
		homeFactory: homeFactory,
		userID:      userID,
		input:       components.NewTextInput("player number", true, 9),
	}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) KeyHints() []layout.KeyHint {
	if w.prompting {
		return []layout.KeyHint{
			{Key: "0-9", Description: "Player number"},
			{Key: "Enter", Description: "Start"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "any key", Description: "Continue"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if w.elapsed < totalDur {
			w.elapsed += tickInterval
		}
		w.tickCount++
		return w, tick()

	case tea.KeyPressMsg:
		if w.transitioned {
			return w, nil
		}
		if w.prompting {
			return w.handlePrompt(msg)
		}
		// Any key skips the rest of the animation.
		w.elapsed = totalDur
		if w.userID > 0 {
			return w, w.transition(w.userID)
		}
		w.prompting = true
		return w, w.input.Init()
	}

	return w, nil
}

func (w *WelcomeScreen) handlePrompt(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	if msg.String() != "enter" {
		w.errMsg = ""
		var cmd tea.Cmd
		w.input, cmd = w.input.Update(msg)
		return w, cmd
	}

	id, err := w.input.NumericValue()
	if err != nil || id <= 0 {
		w.input.Submit(false)
		w.errMsg = "Enter a player number above zero"
		return w, nil
	}
	w.input.Submit(true)
	w.userID = id
	return w, w.transition(id)
}

func (w *WelcomeScreen) transition(userID int64) tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	homeScreen := w.homeFactory(userID)
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: homeScreen}
	}
}

func (w *WelcomeScreen) View(width, height int) string {
	var sections []string

	rendered := lipgloss.NewStyle().Foreground(theme.Primary).Render(reelArt)

	if w.elapsed >= phase1End {
		bulb := bulbFrames[w.tickCount%len(bulbFrames)]
		other := bulbFrames[(w.tickCount+1)%len(bulbFrames)]
		on := lipgloss.NewStyle().Foreground(theme.Marquee).Render(bulb)
		off := lipgloss.NewStyle().Foreground(theme.Accent).Render(other)

		lines := strings.Split(rendered, "\n")
		for i := 0; i < len(lines); i += 3 {
			lines[i] = on + "  " + lines[i] + "  " + off
		}
		rendered = strings.Join(lines, "\n")
	}
	sections = append(sections, rendered)

	if w.elapsed >= phase2End {
		sections = append(sections, "", RenderBanner(width), "")
		sections = append(sections, lipgloss.NewStyle().
			Foreground(theme.Text).
			Bold(true).
			Render("How well do you know your movies?"))
		sections = append(sections, "")

		if w.prompting {
			sections = append(sections, lipgloss.NewStyle().Foreground(theme.Neon).Render("Player number: ")+w.input.View())
			if w.errMsg != "" {
				sections = append(sections, lipgloss.NewStyle().Foreground(theme.Error).Render(w.errMsg))
			}
		} else {
			sections = append(sections, lipgloss.NewStyle().
				Foreground(theme.TextDim).
				Italic(true).
				Render("press any key to continue"))
		}
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(sections, "\n"))
}
