// Package theme holds the colors and styles of the dock TUI.
package theme

import "github.com/charmbracelet/lipgloss"

// Design tokens.
var (
	Accent      = lipgloss.Color("#3B82F6")
	AccentSoft  = lipgloss.Color("#60A5FA")
	AccentAlt   = lipgloss.Color("#22C55E")
	AccentFocus = lipgloss.Color("#F9F871")

	Success = lipgloss.AdaptiveColor{Light: "#16A34A", Dark: "#22C55E"}
	Warning = lipgloss.AdaptiveColor{Light: "#F59E0B", Dark: "#FBBF24"}
	Error   = lipgloss.AdaptiveColor{Light: "#EF4444", Dark: "#F87171"}

	TextPrimary   = lipgloss.Color("#F8FAFC")
	TextSecondary = lipgloss.Color("#CBD5E1")
	TextMuted     = lipgloss.Color("#94A3B8")
	TextDim       = lipgloss.Color("#64748B")

	Surface    = lipgloss.Color("#1A1A1A")
	SurfaceAlt = lipgloss.Color("#242424")

	Border        = lipgloss.Color("#3A3A3A")
	BorderFocused = Accent
	BorderTarget  = AccentAlt
)

// ===== Stacks =====

// PanelBorder colors the frame around a stack's content.
var PanelBorder = lipgloss.NewStyle().
	Foreground(Border)

var PanelBorderFocused = lipgloss.NewStyle().
	Foreground(BorderFocused)

var PanelText = lipgloss.NewStyle().
	Foreground(TextSecondary)

// TabActive is the active tab of a stack.
var TabActive = lipgloss.NewStyle().
	Bold(true).
	Foreground(TextPrimary).
	Background(Accent)

var TabInactive = lipgloss.NewStyle().
	Foreground(TextMuted).
	Background(SurfaceAlt)

var TabBar = lipgloss.NewStyle().
	Background(Surface)

// ===== Drag =====

// DropIndicator outlines where a dragged tab would land.
var DropIndicator = lipgloss.NewStyle().
	Foreground(BorderTarget).
	Bold(true)

// DragGhost follows the pointer with the dragged tab's title.
var DragGhost = lipgloss.NewStyle().
	Foreground(Surface).
	Background(AccentFocus).
	Bold(true)

// ===== Status line =====

var StatusBar = lipgloss.NewStyle().
	Foreground(TextMuted)

var StatusMessage = lipgloss.NewStyle().
	Foreground(Success)

var StatusWarning = lipgloss.NewStyle().
	Foreground(Warning)

var StatusError = lipgloss.NewStyle().
	Foreground(Error)

// ===== Dialogs =====

var Dialog = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(Accent).
	Foreground(TextPrimary).
	Padding(0, 1)

var DialogTitle = lipgloss.NewStyle().
	Bold(true).
	Foreground(Accent)

var DialogNote = lipgloss.NewStyle().
	Foreground(TextMuted).
	Italic(true)

// TitleAlt heads pickers.
var TitleAlt = lipgloss.NewStyle().
	Foreground(TextPrimary).
	Background(AccentAlt).
	Padding(0, 1)
