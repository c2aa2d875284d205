package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/altinukshini/assetflow-tui/internal/model"
	"github.com/altinukshini/assetflow-tui/internal/ui"
)

func RenderHeader(host string, user *model.User, width int) string {
	left := lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.Color("#F9FAFB")).
		Render(fmt.Sprintf(" assetflow | %s", host))

	who := ""
	if user != nil {
		name := user.Name
		if name == "" {
			name = user.Email
		}
		color := ui.ColorSuccess
		if user.Role == "" {
			color = ui.ColorMuted
		}
		label := name
		if user.Role != "" {
			label = fmt.Sprintf("%s (%s)", name, user.Role)
		}
		who = lipgloss.NewStyle().Foreground(color).Render(label + " ")
	} else {
		who = lipgloss.NewStyle().Foreground(ui.ColorWarning).Render("not signed in ")
	}

	gap := width - lipgloss.Width(left) - lipgloss.Width(who)
	if gap < 0 {
		gap = 0
	}
	padding := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.NewStyle().
		Background(lipgloss.Color("#1F2937")).
		Width(width).
		Render(left + padding + who)
}
