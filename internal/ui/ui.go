package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#DC2626")).Bold(true)
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#16A34A"))
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#CA8A04"))
	hintStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280")).Italic(true)
	boldStyle = lipgloss.NewStyle().Bold(true)
	dimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF"))
)

// Status is the outcome of a pipeline stage or a validation check.
type Status int

const (
	StatusOK Status = iota
	StatusSkipped
	StatusFailed
)

func (s Status) badge() string {
	switch s {
	case StatusSkipped:
		return dimStyle.Render(" -- ")
	case StatusFailed:
		return failStyle.Render("FAIL")
	default:
		return okStyle.Render(" OK ")
	}
}

// Step writes one status line, e.g. "  OK  extract 3 services".
func Step(w io.Writer, s Status, name, detail string) {
	line := "  " + s.badge() + " " + name
	if detail != "" {
		if s == StatusFailed {
			line += ": " + detail
		} else {
			line += " " + dimStyle.Render(detail)
		}
	}
	fmt.Fprintln(w, line)
}

// Failed writes a failed check followed by an optional hint.
func Failed(w io.Writer, name, detail, hint string) {
	Step(w, StatusFailed, name, detail)
	if hint != "" {
		fmt.Fprintln(w, "       "+hintStyle.Render("Hint: "+hint))
	}
}

// Abort formats an error that stopped the pipeline before any manifest
// was written.
func Abort(title string, err error, hint string) string {
	out := failStyle.Render("Error: "+title) + "\n"
	if err != nil {
		out += "  " + err.Error() + "\n"
	}
	if hint != "" {
		out += "  " + hintStyle.Render("Hint: "+hint) + "\n"
	}
	return out
}

// Success renders a line in green.
func Success(msg string) string {
	return okStyle.Render(msg)
}

// Bold renders text in bold.
func Bold(s string) string {
	return boldStyle.Render(s)
}

// Hint renders text in dim italic.
func Hint(s string) string {
	return hintStyle.Render(s)
}
