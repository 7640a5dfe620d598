package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Spinner is a frame-cycling loading indicator advanced by the tick loop.
type Spinner struct {
	frames []string
	frame  int
}

// NewSpinner creates a new spinner.
func NewSpinner() *Spinner {
	return &Spinner{
		frames: []string{"⣾", "⣽", "⣻", "⢿", "⡿", "⣟", "⣯", "⣷"},
	}
}

// Next advances the spinner to the next frame.
func (s *Spinner) Next() {
	s.frame = (s.frame + 1) % len(s.frames)
}

// View returns the current spinner frame.
func (s *Spinner) View() string {
	return s.frames[s.frame]
}

// Line renders the spinner next to a message.
func (s *Spinner) Line(message string) string {
	spinnerStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	messageStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	return fmt.Sprintf("%s %s", spinnerStyle.Render(s.View()), messageStyle.Render(message))
}
