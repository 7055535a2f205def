package dockview

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/regenrek/peakydock/internal/dock"
)

func (m *Model) openScratch() {
	m.scratchCount++
	item := scratchItem(m.scratchCount)
	m.history.Record(m.tree)
	if err := m.tree.AddItem(item, m.focus); err != nil {
		m.setStatus(statusError, err.Error())
		return
	}
	m.catalog[item.ID] = item
	_ = m.tree.ActivateItem(item.ID)
	m.fixFocus(item.ID)
}

func (m *Model) closeActive() {
	view, ok := m.tree.Node(m.focus)
	if !ok {
		return
	}
	id, ok := view.ActiveItem()
	if !ok {
		return
	}
	item, _ := m.tree.Item(id)
	if !item.Closable {
		m.setStatus(statusWarning, fmt.Sprintf("%s cannot be closed", item.Title))
		return
	}
	m.history.Record(m.tree)
	if _, err := m.tree.RemoveItem(id); err != nil {
		m.setStatus(statusError, err.Error())
		return
	}
	m.fixFocus("")
}

func (m *Model) undo() {
	if !m.history.Undo(m.tree) {
		m.setStatus(statusWarning, "nothing to undo")
		return
	}
	m.afterRestore()
}

func (m *Model) redo() {
	if !m.history.Redo(m.tree) {
		m.setStatus(statusWarning, "nothing to redo")
		return
	}
	m.afterRestore()
}

func (m *Model) afterRestore() {
	clear(m.resizeSnap)
	m.fixFocus("")
}

func (m *Model) yankLayout() {
	data, err := json.MarshalIndent(m.tree.Layout(), "", "  ")
	if err != nil {
		m.setStatus(statusError, err.Error())
		return
	}
	if err := m.clipboard(string(data)); err != nil {
		m.setStatus(statusError, "clipboard: "+err.Error())
		return
	}
	m.setStatus(statusInfo, "layout copied to clipboard")
}

// resizeFocused moves the divider next to the focused stack so the stack
// grows (dir > 0) or shrinks. Snapping state is kept per split so repeated
// presses stick to a snap point until they move past its hysteresis.
func (m *Model) resizeFocused(dir int) {
	split, ok := m.tree.ParentSplit(m.focus)
	if !ok {
		m.setStatus(statusWarning, "panel is not split")
		return
	}
	view, _ := m.tree.Node(split)
	delta := dir * resizeStep
	if view.Children[1] == m.focus {
		delta = -delta
	}
	result, err := m.tree.ResizeSplit(dock.ResizeOp{
		Split:     split,
		Delta:     delta,
		Snap:      true,
		SnapState: m.resizeSnap[split],
	}, m.cfg.Dock.Snap.DockSnap())
	if err != nil {
		m.setStatus(statusError, err.Error())
		return
	}
	m.resizeSnap[split] = result.SnapState
	if result.Snapped {
		m.setStatus(statusInfo, fmt.Sprintf("snapped to %.0f%%", result.Ratio*100))
	}
}

func (m *Model) focusNext() {
	stacks := m.tree.Stacks()
	if len(stacks) == 0 {
		return
	}
	i := slices.Index(stacks, m.focus)
	m.focus = stacks[(i+1)%len(stacks)]
}

func (m *Model) cycleTab(step int) {
	view, ok := m.tree.Node(m.focus)
	if !ok || len(view.Items) == 0 {
		return
	}
	next := (view.Active + step + len(view.Items)) % len(view.Items)
	if err := m.tree.ActivateItem(view.Items[next]); err != nil {
		m.setStatus(statusError, err.Error())
	}
}
