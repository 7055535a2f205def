package dockview

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/regenrek/peakydock/internal/dock"
	"github.com/regenrek/peakydock/internal/tui/picker"
	"github.com/regenrek/peakydock/internal/tui/theme"
)

// ===== Save prompt =====

func (m *Model) openSavePrompt() tea.Cmd {
	if m.store == nil {
		m.setStatus(statusError, "no layout store configured")
		return nil
	}
	m.drag.Abort()
	m.mode = modeSave
	m.nameInput.SetValue("")
	return m.nameInput.Focus()
}

func (m *Model) updateSavePrompt(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		m.closeDialog()
		return nil
	case tea.KeyEnter:
		name := m.nameInput.Value()
		if err := m.store.Save(context.Background(), name, m.tree.Layout()); err != nil {
			m.setStatus(statusError, err.Error())
			return nil
		}
		m.closeDialog()
		m.setStatus(statusInfo, fmt.Sprintf("saved layout %q", name))
		return nil
	}
	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return cmd
}

// ===== Layout picker =====

func (m *Model) openPicker() {
	if m.store == nil {
		m.setStatus(statusError, "no layout store configured")
		return
	}
	names := m.store.Names()
	if len(names) == 0 {
		m.setStatus(statusWarning, "no saved layouts")
		return
	}
	choices := make([]picker.LayoutChoice, 0, len(names))
	for _, name := range names {
		entry, err := m.store.Get(name)
		if err != nil {
			continue
		}
		choices = append(choices, picker.LayoutChoice{
			Name:    name,
			SavedAt: entry.SavedAt,
			Panels:  countItems(entry.Layout),
		})
	}
	m.drag.Abort()
	m.picker.ResetFilter()
	m.picker.SetItems(picker.ChoicesToItems(choices))
	m.sizePicker()
	m.mode = modePicker
}

func (m *Model) sizePicker() {
	hFrame, vFrame := theme.Dialog.GetFrameSize()
	w := min(max(m.width-6, 20), 60)
	h := min(max(m.height-4, 6), 20)
	m.picker.SetSize(w-hFrame, h-vFrame)
}

func (m *Model) updatePicker(msg tea.KeyMsg) tea.Cmd {
	if m.picker.FilterState() != list.Filtering {
		switch msg.Type {
		case tea.KeyEsc:
			m.closeDialog()
			return nil
		case tea.KeyEnter:
			choice, ok := m.picker.SelectedItem().(picker.LayoutChoice)
			m.closeDialog()
			if ok {
				m.loadLayout(choice.Name)
			}
			return nil
		}
	}
	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	return cmd
}

// loadLayout replaces the tree with a saved layout. Panels the layout does
// not mention are closed; undo brings them back.
func (m *Model) loadLayout(name string) {
	entry, err := m.store.Get(name)
	if err != nil {
		m.setStatus(statusError, err.Error())
		return
	}
	m.remember()
	m.history.Record(m.tree)
	if err := m.tree.SetLayout(entry.Layout, m.resolve); err != nil {
		m.setStatus(statusError, err.Error())
		return
	}
	m.afterRestore()
	m.setStatus(statusInfo, fmt.Sprintf("opened layout %q", name))
}

func countItems(layout dock.Layout) int {
	var count func(n *dock.NodeSnapshot) int
	count = func(n *dock.NodeSnapshot) int {
		if n == nil {
			return 0
		}
		total := len(n.Items)
		for _, child := range n.Children {
			total += count(child)
		}
		return total
	}
	return count(layout.Root)
}

func (m *Model) closeDialog() {
	m.mode = modeDock
	m.nameInput.Blur()
}

func (m *Model) dialogView() string {
	var body string
	switch m.mode {
	case modeSave:
		body = lipgloss.JoinVertical(lipgloss.Left,
			theme.DialogTitle.Render("Save layout"),
			"",
			m.nameInput.View(),
			"",
			theme.DialogNote.Render("enter save · esc cancel"),
		)
	case modePicker:
		body = m.picker.View()
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, theme.Dialog.Render(body))
}
