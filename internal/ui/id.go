package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	internalstrings "github.com/amonks/neotodo/internal/strings"
)

var idPrefixStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))

// HighlightID returns an ID with its unique prefix highlighted when stdout
// is a terminal.
func HighlightID(id string, prefixLen int) string {
	if !ansiEnabled(os.Stdout) {
		return id
	}
	return highlightID(id, prefixLen)
}

func highlightID(id string, prefixLen int) string {
	if id == "" || prefixLen <= 0 || prefixLen > len(id) {
		return id
	}
	return idPrefixStyle.Render(id[:prefixLen]) + id[prefixLen:]
}

// PrefixLength looks up an ID's unique prefix length, ignoring case.
// It returns 0 when the ID is unknown.
func PrefixLength(lengths map[string]int, id string) int {
	if id == "" || lengths == nil {
		return 0
	}
	return lengths[internalstrings.NormalizeLower(id)]
}

func ansiEnabled(f *os.File) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
