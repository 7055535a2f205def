package dockview

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	quit      key.Binding
	abort     key.Binding
	newPanel  key.Binding
	close     key.Binding
	undo      key.Binding
	redo      key.Binding
	save      key.Binding
	open      key.Binding
	yank      key.Binding
	shrink    key.Binding
	grow      key.Binding
	focusNext key.Binding
	tabNext   key.Binding
	tabPrev   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		abort:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel drag")),
		newPanel:  key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new")),
		close:     key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "close")),
		undo:      key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "undo")),
		redo:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "redo")),
		save:      key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save")),
		open:      key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open")),
		yank:      key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy json")),
		shrink:    key.NewBinding(key.WithKeys("["), key.WithHelp("[/]", "resize")),
		grow:      key.NewBinding(key.WithKeys("]")),
		focusNext: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "focus")),
		tabNext:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "next tab")),
		tabPrev:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "prev tab")),
	}
}

// ShortHelp feeds the status line.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.newPanel, k.close, k.undo, k.redo, k.save, k.open, k.shrink, k.focusNext, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		k.ShortHelp(),
		{k.abort, k.yank, k.tabPrev, k.tabNext},
	}
}
