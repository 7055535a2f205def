package dockview

import (
	"log/slog"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/regenrek/peakydock/internal/dockgeom"
	"github.com/regenrek/peakydock/internal/drag"
)

const wheelStep = 3

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.sizePicker()
		if m.drag.State() != drag.Idle {
			// Geometry the gesture was classified against is gone.
			m.drag.Abort()
		}
	case tea.KeyMsg:
		cmd = m.handleKey(msg)
	case tea.MouseMsg:
		if m.mode == modeDock {
			m.handleMouse(msg)
		}
	case configMsg:
		if msg.err != nil {
			m.setStatus(statusError, "config: "+msg.err.Error())
		} else {
			m.applyConfig(msg.cfg)
			m.setStatus(statusInfo, "config reloaded")
		}
		cmd = waitForConfig(m.configCh)
	}
	m.syncPanels()
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch m.mode {
	case modeSave:
		return m.updateSavePrompt(msg)
	case modePicker:
		return m.updatePicker(msg)
	}
	m.status = status{}
	switch {
	case key.Matches(msg, m.keys.quit):
		return m.quit()
	case key.Matches(msg, m.keys.abort):
		if m.drag.State() != drag.Idle {
			m.drag.Abort()
			m.setStatus(statusInfo, "drag cancelled")
		}
	case key.Matches(msg, m.keys.newPanel):
		m.openScratch()
	case key.Matches(msg, m.keys.close):
		m.closeActive()
	case key.Matches(msg, m.keys.undo):
		m.undo()
	case key.Matches(msg, m.keys.redo):
		m.redo()
	case key.Matches(msg, m.keys.save):
		return m.openSavePrompt()
	case key.Matches(msg, m.keys.open):
		m.openPicker()
	case key.Matches(msg, m.keys.yank):
		m.yankLayout()
	case key.Matches(msg, m.keys.shrink):
		m.resizeFocused(-1)
	case key.Matches(msg, m.keys.grow):
		m.resizeFocused(1)
	case key.Matches(msg, m.keys.focusNext):
		m.focusNext()
	case key.Matches(msg, m.keys.tabNext):
		m.cycleTab(1)
	case key.Matches(msg, m.keys.tabPrev):
		m.cycleTab(-1)
	}
	return nil
}

// handleMouse maps terminal mouse events onto the drag controller: a left
// press on a tab arms a gesture, motion drives it, release ends it.
func (m *Model) handleMouse(msg tea.MouseMsg) {
	pos := dockgeom.Point{X: msg.X, Y: msg.Y}
	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.scrollAt(pos, -wheelStep)
		case tea.MouseButtonWheelDown:
			m.scrollAt(pos, wheelStep)
		case tea.MouseButtonLeft:
			if stack, index, ok := m.tabAt(pos); ok {
				m.focus = stack
				m.drag.PointerDown(pos, stack, index)
				return
			}
			if stack, ok := m.stackAt(pos); ok {
				m.focus = stack
			}
		}
	case tea.MouseActionMotion:
		m.drag.PointerMove(pos)
	case tea.MouseActionRelease:
		item, active := m.drag.Item()
		wasDragging := m.drag.State() == drag.Dragging
		if err := m.drag.PointerUp(pos); err != nil {
			slog.Warn("dockview: drop failed", slog.Any("err", err))
			m.setStatus(statusError, err.Error())
			return
		}
		if !active {
			return
		}
		m.fixFocus(item)
		if wasDragging {
			clear(m.resizeSnap)
		}
	}
}

func (m *Model) scrollAt(pos dockgeom.Point, lines int) {
	stack, ok := m.stackAt(pos)
	if !ok {
		return
	}
	view, _ := m.tree.Node(stack)
	active, ok := view.ActiveItem()
	if !ok {
		return
	}
	item, _ := m.tree.Item(active)
	if p, ok := panelOf(item); ok {
		p.scroll(lines)
	}
}
