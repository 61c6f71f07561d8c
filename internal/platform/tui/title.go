package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	subtitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	promptStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
)

// titleView renders the screen shown before the first game.
func (m Model) titleView() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("  S P L A T   S H O O T E R  "), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(subtitleStyle.Render(m.game.Title()), m.width))
	b.WriteString("\n\n")

	full := m.help
	full.ShowAll = true
	for _, line := range strings.Split(full.View(m.keys), "\n") {
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(promptStyle.Render("Press enter to start"), m.width))
	b.WriteString("\n")
	return b.String()
}

// centerText centers text within the given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
