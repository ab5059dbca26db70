package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
)

var priorityStyles = map[string]lipgloss.Style{
	"high":   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1")),
	"medium": lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	"low":    lipgloss.NewStyle().Faint(true),
}

var doneStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))

// PriorityBadge renders a priority label, colored on terminals.
func PriorityBadge(priority string) string {
	if !ansiEnabled(os.Stdout) {
		return priority
	}
	return priorityBadge(priority)
}

func priorityBadge(priority string) string {
	style, ok := priorityStyles[priority]
	if !ok {
		return priority
	}
	return style.Render(priority)
}

// Checkbox renders a completion marker.
func Checkbox(completed bool) string {
	if !completed {
		return "[ ]"
	}
	if !ansiEnabled(os.Stdout) {
		return "[x]"
	}
	return doneStyle.Render("[x]")
}
