package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("55")).
			Padding(0, 1)

	tabStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Foreground(lipgloss.Color("245"))

	activeTabStyle = tabStyle.
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("55")).
			Bold(true)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62"))

	faintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("111")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	statusStyle = map[string]lipgloss.Style{
		"REQUESTED": lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		"ACCEPTED":  lipgloss.NewStyle().Foreground(lipgloss.Color("45")),
		"ONGOING":   lipgloss.NewStyle().Foreground(lipgloss.Color("213")),
		"COMPLETED": lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		"CANCELLED": lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	}
)

func renderStatus(status string) string {
	if s, ok := statusStyle[status]; ok {
		return s.Render(status)
	}
	return status
}
