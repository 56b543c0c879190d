// Package testutil provides common testing utilities for UI components.
package testutil

import (
	"regexp"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var ansiRe = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// StripANSI removes ANSI escape codes so rendered output can be compared
// without styling.
func StripANSI(s string) string {
	return ansiRe.ReplaceAllString(s, "")
}

// MeasureWidth returns the visual width of a string, accounting for
// wide characters and stripping ANSI codes.
func MeasureWidth(s string) int {
	return lipgloss.Width(StripANSI(s))
}

// FindLine returns the first line containing substr, or empty string.
func FindLine(output, substr string) string {
	for line := range strings.SplitSeq(output, "\n") {
		if strings.Contains(StripANSI(line), substr) {
			return StripANSI(line)
		}
	}
	return ""
}

// MaxLineWidth returns the widest line of the output.
func MaxLineWidth(output string) int {
	widest := 0
	for line := range strings.SplitSeq(output, "\n") {
		widest = max(widest, MeasureWidth(line))
	}
	return widest
}

// Key builds the key message bubbletea sends for k. " " is the space
// bar and "ctrl+c" interrupt; anything else is typed runes.
func Key(k string) tea.KeyMsg {
	switch k {
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}
