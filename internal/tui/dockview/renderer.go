package dockview

import (
	"log/slog"

	"github.com/regenrek/peakydock/internal/dock"
	"github.com/regenrek/peakydock/internal/dockgeom"
)

// The drag controller calls these while a gesture runs; View draws the
// resulting state on the next frame.

func (m *Model) ShowDragVisual(title string) {
	m.ghost = ghostState{visible: true, title: title, pos: m.ghost.pos}
}

func (m *Model) MoveDragVisual(pos dockgeom.Point) {
	m.ghost.pos = pos
}

func (m *Model) HideDragVisual() {
	m.ghost = ghostState{}
}

func (m *Model) ShowDropIndicator(r dockgeom.Rect) {
	m.indicator = indicatorState{visible: true, rect: r}
}

func (m *Model) HideDropIndicator() {
	m.indicator = indicatorState{}
}

// ReparentContent resizes the moved panel to its new box right away so the
// frame after the drop is already laid out.
func (m *Model) ReparentContent(id dock.ItemID, from, to dockgeom.Rect) {
	item, ok := m.tree.Item(id)
	if !ok {
		return
	}
	if p, ok := panelOf(item); ok {
		box := contentBox(stackGeometry(to))
		p.resize(box.W, box.H)
	}
	slog.Debug("dockview: panel moved", slog.String("item", string(id)),
		slog.String("from", from.String()), slog.String("to", to.String()))
}
