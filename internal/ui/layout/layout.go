package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/HEADES94/MovieProjektFinal/internal/ui/theme"
)

const (
	MinWidth  = 80
	MinHeight = 24

	CompactWidthThreshold  = 100
	CompactHeightThreshold = 30
)

// KeyHint represents a key binding hint shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// IsCompactWidth returns true if the terminal width is in compact range.
func IsCompactWidth(width int) bool {
	return width < CompactWidthThreshold
}

// IsCompactHeight returns true if the terminal height is in compact range.
func IsCompactHeight(height int) bool {
	return height < CompactHeightThreshold
}

// IsTooSmall returns true if the terminal is below minimum size.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage asks for a larger terminal.
func RenderMinSizeMessage(width, height int) string {
	body := theme.Title.Render("The screen is too small") + "\n\n" +
		theme.Body.Render(fmt.Sprintf("Resize to at least %d×%d", MinWidth, MinHeight)) + "\n" +
		theme.Hint.Render(fmt.Sprintf("now %d×%d", width, height))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}

// HeaderInfo is the player status shown on the right of the header.
type HeaderInfo struct {
	UserID    int64
	BestScore int
	MaxStreak int
}

var bar = lipgloss.NewStyle().
	Background(theme.BgCard).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(theme.Border)

// RenderHeader draws the marquee: brand left, screen title centred and the
// player's best score and streak right.
func RenderHeader(title string, info HeaderInfo, width int) string {
	brand := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(" 🎬 MovieQuiz")

	var status string
	if info.UserID > 0 {
		status = strings.Join([]string{
			lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf("Player %d", info.UserID)),
			lipgloss.NewStyle().Foreground(theme.Accent).Render(fmt.Sprintf("★ %d", info.BestScore)),
			lipgloss.NewStyle().Foreground(theme.Neon).Render(fmt.Sprintf("⚡ %d", info.MaxStreak)),
		}, "   ") + " "
	}

	inner := max(width-4, 0)
	side := max((inner-lipgloss.Width(title))/2, lipgloss.Width(brand)+1)
	left := lipgloss.PlaceHorizontal(side, lipgloss.Left, brand)
	rest := max(inner-side, 0)
	right := lipgloss.PlaceHorizontal(rest, lipgloss.Right, status)
	mid := lipgloss.NewStyle().Foreground(theme.Text).Render(title)
	if pad := rest - lipgloss.Width(mid) - lipgloss.Width(status); pad > 0 {
		right = mid + strings.Repeat(" ", pad) + status
	}
	return bar.Width(width).Render(left + right)
}

// RenderFooter lists key hints separated by marquee dots.
func RenderFooter(hints []KeyHint, width int) string {
	key := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	desc := lipgloss.NewStyle().Foreground(theme.TextDim)
	dot := lipgloss.NewStyle().Foreground(theme.Marquee).Render(" · ")

	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = key.Render(h.Key) + " " + desc.Render(h.Description)
	}
	return bar.Width(width).Render(" " + strings.Join(parts, dot))
}

// RenderFrame stacks header, content and footer, giving the content
// whatever height is left.
func RenderFrame(header, content, footer string, width, height int) string {
	h := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	body := lipgloss.NewStyle().Width(width).Height(h).Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}
