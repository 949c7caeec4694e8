package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Color palette
// - Default (white/black): Primary text
// - Accent (soft teal #2DD4BF): Task titles, values, highlights
// - Muted (gray): Secondary info, hints
// - No colored success/error - unicode symbols only

var (
	// Accent style for task titles, normalized values, highlights
	Accent = lipgloss.NewStyle().Foreground(lipgloss.Color("#2DD4BF"))

	// Muted style for secondary info and hints
	Muted = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))

	// Bold style for emphasis
	Bold = lipgloss.NewStyle().Bold(true)

	// AccentBold combines accent color with bold
	AccentBold = lipgloss.NewStyle().Foreground(lipgloss.Color("#2DD4BF")).Bold(true)
)

// ConfigureTheme overrides the accent color from config. Accepts ANSI color
// codes ("0" to "255") or hex colors ("#RRGGBB"); anything else is ignored.
func ConfigureTheme(accent string) {
	if accent == "" {
		return
	}
	color := lipgloss.Color(accent)
	Accent = lipgloss.NewStyle().Foreground(color)
	AccentBold = lipgloss.NewStyle().Foreground(color).Bold(true)
}

// ColorEnabled reports whether stdout is a terminal that should get styled
// output.
func ColorEnabled() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}
