package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var (
	Primary = lipgloss.Color("#0EA5E9")
	Text    = lipgloss.Color("#F9FAFB")

	ColorSuccess = lipgloss.Color("#10B981")
	ColorWarning = lipgloss.Color("#F59E0B")
	ColorMuted   = lipgloss.Color("#6B7280")
)

var (
	SuccessBadge = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#000")).
			Background(ColorSuccess).
			Padding(0, 1).
			Bold(true)

	WarningBadge = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#000")).
			Background(ColorWarning).
			Padding(0, 1).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	DirectoryStyle = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	ReadOnlyStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)
)

// SetPlain drops every color so output stays readable when piped.
func SetPlain() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

// Success renders a one-line success message.
func Success(msg string) string {
	return SuccessBadge.Render("OK") + " " + msg
}

// Warning renders a one-line warning message.
func Warning(msg string) string {
	return WarningBadge.Render("WARN") + " " + msg
}
