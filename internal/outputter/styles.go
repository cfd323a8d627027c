package outputter

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// This file centralizes the lipgloss styles used by the console renderer.

type consoleStyles struct {
	banner   lipgloss.Style // [==========], [ RUN      ], [     DONE ]
	disabled lipgloss.Style // [ DISABLED ]
	section  lipgloss.Style // [   RUNS   ], [ITERATIONS]
	name     lipgloss.Style
	better   lipgloss.Style
	worse    lipgloss.Style
}

// newRenderer binds a lipgloss renderer to w. With color disabled the ASCII
// profile strips every escape sequence.
func newRenderer(w io.Writer, color bool) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(w)
	if !color {
		r.SetColorProfile(termenv.Ascii)
	}
	return r
}

func newConsoleStyles(r *lipgloss.Renderer) consoleStyles {
	return consoleStyles{
		banner: r.NewStyle().
			Foreground(lipgloss.Color("2")), // Green
		disabled: r.NewStyle().
			Foreground(lipgloss.Color("6")), // Cyan
		section: r.NewStyle().
			Foreground(lipgloss.Color("4")), // Blue
		name: r.NewStyle().
			Foreground(lipgloss.Color("3")), // Yellow
		better: r.NewStyle().
			Foreground(lipgloss.Color("2")),
		worse: r.NewStyle().
			Foreground(lipgloss.Color("1")). // Red
			Bold(true),
	}
}
