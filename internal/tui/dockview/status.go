package dockview

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/regenrek/peakydock/internal/tui/theme"
)

type statusLevel int

const (
	statusInfo statusLevel = iota
	statusWarning
	statusError
)

// status is the one-line message shown instead of the key help until the
// next key press.
type status struct {
	text  string
	level statusLevel
}

func (m *Model) setStatus(level statusLevel, text string) {
	m.status = status{text: text, level: level}
}

func (s status) style() *lipgloss.Style {
	switch s.level {
	case statusWarning:
		return &theme.StatusWarning
	case statusError:
		return &theme.StatusError
	default:
		return &theme.StatusMessage
	}
}
