package dockview

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/regenrek/peakydock/internal/dock"
	"github.com/regenrek/peakydock/internal/dockgeom"
	"github.com/regenrek/peakydock/internal/tui/theme"
)

const emptyHint = "no panels · press n to open one"

func (m *Model) View() string {
	if m.quitting || m.width <= 0 || m.height <= 0 {
		return ""
	}
	if m.mode != modeDock {
		return m.dialogView()
	}
	c := newCanvas(m.width, m.height)
	for id, r := range m.tree.StackRects(m.Bounds()) {
		m.drawStack(c, id, stackGeometry(r))
	}
	if m.tree.Empty() {
		b := m.Bounds()
		w := ansi.StringWidth(emptyHint)
		c.drawText(b.X+max((b.W-w)/2, 0), b.Y+b.H/2, b.W, emptyHint, &theme.StatusMessage)
	}
	m.drawOverlays(c)
	m.drawStatus(c)
	return c.String()
}

func (m *Model) drawStack(c *canvas, id dock.NodeID, geom dockgeom.StackGeometry) {
	view, ok := m.tree.Node(id)
	if !ok {
		return
	}
	c.fill(geom.TabBar, " ", &theme.TabBar)
	for i, tab := range m.TabRects(id) {
		if tab.W == 0 {
			continue
		}
		item, _ := m.tree.Item(view.Items[i])
		style := &theme.TabInactive
		if i == view.Active {
			style = &theme.TabActive
		}
		c.drawText(tab.X, tab.Y, tab.W, m.tabLabel(item.Title, item.ID), style)
	}

	border := &theme.PanelBorder
	if id == m.focus {
		border = &theme.PanelBorderFocused
	}
	c.drawBorder(geom.Content, lipgloss.RoundedBorder(), border)

	active, ok := view.ActiveItem()
	if !ok {
		return
	}
	item, _ := m.tree.Item(active)
	p, ok := panelOf(item)
	if !ok {
		return
	}
	box := contentBox(geom)
	for i, line := range p.lines() {
		if i >= box.H {
			break
		}
		c.drawText(box.X, box.Y+i, box.W, line, &theme.PanelText)
	}
}

// drawOverlays paints the drop indicator and the dragged tab's ghost over the
// stacks.
func (m *Model) drawOverlays(c *canvas) {
	if m.indicator.visible {
		r := m.indicator.rect
		if r.W >= 2 && r.H >= 2 {
			c.drawBorder(r, lipgloss.ThickBorder(), &theme.DropIndicator)
		} else {
			c.fill(r, "┃", &theme.DropIndicator)
		}
	}
	if m.ghost.visible {
		label := " " + m.ghost.title + " "
		c.drawText(m.ghost.pos.X+1, m.ghost.pos.Y, m.width, label, &theme.DragGhost)
	}
}

func (m *Model) drawStatus(c *canvas) {
	y := m.height - statusRows
	row := dockgeom.Rect{Y: y, W: m.width, H: statusRows}
	c.fill(row, " ", &theme.StatusBar)
	if m.status.text != "" {
		c.drawText(1, y, m.width-1, m.status.text, m.status.style())
		return
	}
	c.drawText(1, y, m.width-1, ansi.Strip(m.help.ShortHelpView(m.keys.ShortHelp())), &theme.StatusBar)
}
