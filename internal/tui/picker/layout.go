// Package picker builds the list models used by the dock TUI.
package picker

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/lipgloss"

	"github.com/regenrek/peakydock/internal/tui/theme"
)

// LayoutChoice is one saved layout in the picker.
type LayoutChoice struct {
	Name    string
	SavedAt time.Time
	Panels  int
}

func (l LayoutChoice) Title() string { return l.Name }

func (l LayoutChoice) Description() string {
	desc := fmt.Sprintf("%d panels", l.Panels)
	if l.Panels == 1 {
		desc = "1 panel"
	}
	if !l.SavedAt.IsZero() {
		desc += " · saved " + l.SavedAt.Local().Format("2006-01-02 15:04")
	}
	return desc
}

func (l LayoutChoice) FilterValue() string { return l.Name }

// ChoicesToItems converts choices for list.Model.SetItems.
func ChoicesToItems(choices []LayoutChoice) []list.Item {
	items := make([]list.Item, len(choices))
	for i, choice := range choices {
		items[i] = choice
	}
	return items
}

// NewLayoutPicker builds the list model for opening a saved layout.
func NewLayoutPicker() list.Model {
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = true
	delegate.SetSpacing(0)
	delegate.Styles.NormalTitle = delegate.Styles.NormalTitle.
		Foreground(theme.TextSecondary)
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(theme.TextPrimary).
		BorderLeftForeground(theme.AccentAlt).
		Bold(true)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(theme.TextSecondary).
		BorderLeftForeground(theme.AccentAlt)
	delegate.Styles.FilterMatch = lipgloss.NewStyle().
		Foreground(theme.AccentFocus).
		Bold(true)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Open Layout"
	l.Styles.Title = theme.TitleAlt
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(true)
	l.SetStatusBarItemName("layout", "layouts")
	l.DisableQuitKeybindings()
	return l
}
