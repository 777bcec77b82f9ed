package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/ayanda4rbn/khasinomvp-sub000/internal/game/card"
)

// Icon constants
const (
	PlayerIcon = "🧑"
	AIIcon     = "🤖"
	BuildIcon  = "🧱"
)

// Lipgloss Styles
var (
	docStyle    = lipgloss.NewStyle().Margin(1, 2)
	redStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#CD0000")).Background(lipgloss.Color("#FFFFFF")).Bold(true)
	blackStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("#FFFFFF")).Bold(true)
	grayStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("228")).Bold(true).Render
	boxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	buildStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("36")).Padding(0, 1)
	promptStyle = lipgloss.NewStyle().MarginTop(1)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

// renderCard 按花色颜色渲染一张牌
func renderCard(c card.Card) string {
	if c.Suit.IsRed() {
		return redStyle.Render(" " + c.String() + " ")
	}
	return blackStyle.Render(" " + c.String() + " ")
}

func renderCards(cards []card.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = renderCard(c)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, joinSpaced(parts)...)
}

func joinSpaced(parts []string) []string {
	if len(parts) == 0 {
		return nil
	}
	out := make([]string, 0, len(parts)*2-1)
	for i, p := range parts {
		if i > 0 {
			out = append(out, " ")
		}
		out = append(out, p)
	}
	return out
}
