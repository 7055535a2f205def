package dockview

import (
	"github.com/charmbracelet/x/ansi"

	"github.com/regenrek/peakydock/internal/dock"
	"github.com/regenrek/peakydock/internal/dockgeom"
)

// Bounds is the dock area: the whole terminal minus the status line.
func (m *Model) Bounds() dockgeom.Rect {
	return dockgeom.Rect{W: max(m.width, 0), H: max(m.height-statusRows, 0)}
}

// StackGeometry places a one-row tab bar on top of the stack's rect and the
// bordered content box below it.
func (m *Model) StackGeometry(id dock.NodeID) (dockgeom.StackGeometry, bool) {
	r, ok := m.tree.NodeRect(id, m.Bounds())
	if !ok || r.Empty() {
		return dockgeom.StackGeometry{}, false
	}
	if view, found := m.tree.Node(id); !found || !view.IsStack() {
		return dockgeom.StackGeometry{}, false
	}
	return stackGeometry(r), true
}

func stackGeometry(r dockgeom.Rect) dockgeom.StackGeometry {
	return dockgeom.StackGeometry{
		Bounds:  r,
		TabBar:  dockgeom.Rect{X: r.X, Y: r.Y, W: r.W, H: min(r.H, 1)},
		Content: dockgeom.Rect{X: r.X, Y: r.Y + 1, W: r.W, H: max(r.H-1, 0)},
	}
}

// TabRects lays tabs out left to right at their label width. Tabs that do not
// fit get zero width at the end of the bar so indices still line up.
func (m *Model) TabRects(id dock.NodeID) []dockgeom.Rect {
	geom, ok := m.StackGeometry(id)
	if !ok {
		return nil
	}
	view, _ := m.tree.Node(id)
	labels := make([]string, len(view.Items))
	for i, itemID := range view.Items {
		item, _ := m.tree.Item(itemID)
		labels[i] = m.tabLabel(item.Title, itemID)
	}
	return layoutTabs(geom.TabBar, labels)
}

func layoutTabs(bar dockgeom.Rect, labels []string) []dockgeom.Rect {
	tabs := make([]dockgeom.Rect, len(labels))
	x, end := bar.X, bar.X+bar.W
	for i, label := range labels {
		w := min(ansi.StringWidth(label), max(end-x, 0))
		tabs[i] = dockgeom.Rect{X: x, Y: bar.Y, W: w, H: bar.H}
		x += w
	}
	return tabs
}

// tabLabel pads a title by one cell each side and truncates it to the
// configured tab width.
func (m *Model) tabLabel(title string, id dock.ItemID) string {
	if title == "" {
		title = string(id)
	}
	width := m.cfg.Dock.TabMaxWidth
	if width <= 2 {
		width = 24
	}
	return " " + ansi.Truncate(title, width-2, "…") + " "
}

// tabAt hit-tests the tab bars.
func (m *Model) tabAt(pos dockgeom.Point) (dock.NodeID, int, bool) {
	for _, id := range m.tree.Stacks() {
		geom, ok := m.StackGeometry(id)
		if !ok || !geom.TabBar.Contains(pos) {
			continue
		}
		for i, tab := range m.TabRects(id) {
			if tab.Contains(pos) {
				return id, i, true
			}
		}
		return id, -1, false
	}
	return "", -1, false
}

func (m *Model) stackAt(pos dockgeom.Point) (dock.NodeID, bool) {
	for id, r := range m.tree.StackRects(m.Bounds()) {
		if r.Contains(pos) {
			return id, true
		}
	}
	return "", false
}

// contentBox is the inside of the border drawn around a stack's content.
func contentBox(geom dockgeom.StackGeometry) dockgeom.Rect {
	c := geom.Content
	if c.W < 3 || c.H < 3 {
		return dockgeom.Rect{}
	}
	return dockgeom.Rect{X: c.X + 1, Y: c.Y + 1, W: c.W - 2, H: c.H - 2}
}

// syncPanels sizes every panel to the box of the stack it is active in.
func (m *Model) syncPanels() {
	for id, r := range m.tree.StackRects(m.Bounds()) {
		view, _ := m.tree.Node(id)
		active, ok := view.ActiveItem()
		if !ok {
			continue
		}
		item, _ := m.tree.Item(active)
		if p, ok := panelOf(item); ok {
			box := contentBox(stackGeometry(r))
			p.resize(box.W, box.H)
		}
	}
}
