package dock

import "github.com/regenrek/peakydock/internal/dockgeom"

// StackRects lays every stack out inside bounds. Stacks whose share rounds
// down to nothing are left out.
func (t *Tree) StackRects(bounds dockgeom.Rect) map[NodeID]dockgeom.Rect {
	out := make(map[NodeID]dockgeom.Rect)
	if t.Empty() {
		return out
	}
	t.rectsForNode(t.root, bounds, out)
	return out
}

// NodeRect returns the rectangle a node occupies inside bounds.
func (t *Tree) NodeRect(id NodeID, bounds dockgeom.Rect) (dockgeom.Rect, bool) {
	if t.Empty() || t.nodes[id] == nil {
		return dockgeom.Rect{}, false
	}
	var path []*node
	for n := t.nodes[id]; n != nil; n = t.nodes[n.parent] {
		path = append(path, n)
	}
	rect := bounds
	for i := len(path) - 1; i > 0; i-- {
		parent, child := path[i], path[i-1]
		a, b := SplitRect(rect, parent.orientation, parent.ratio)
		if parent.childIndex(child.id) == 0 {
			rect = a
		} else {
			rect = b
		}
	}
	return rect, !rect.Empty()
}

func (t *Tree) rectsForNode(id NodeID, rect dockgeom.Rect, out map[NodeID]dockgeom.Rect) {
	n := t.nodes[id]
	if n == nil || rect.Empty() {
		return
	}
	if n.isStack() {
		out[n.id] = rect
		return
	}
	a, b := SplitRect(rect, n.orientation, n.ratio)
	t.rectsForNode(n.children[0], a, out)
	t.rectsForNode(n.children[1], b, out)
}

// SplitRect divides bounds between two children. Child A gets ratio of the
// split axis rounded down and at least one cell when there is room for two;
// child B gets the remainder.
func SplitRect(bounds dockgeom.Rect, orientation Orientation, ratio float64) (dockgeom.Rect, dockgeom.Rect) {
	total := bounds.W
	if orientation == Vertical {
		total = bounds.H
	}
	first := splitShare(total, ratio)
	if orientation == Vertical {
		return dockgeom.Rect{X: bounds.X, Y: bounds.Y, W: bounds.W, H: first},
			dockgeom.Rect{X: bounds.X, Y: bounds.Y + first, W: bounds.W, H: total - first}
	}
	return dockgeom.Rect{X: bounds.X, Y: bounds.Y, W: first, H: bounds.H},
		dockgeom.Rect{X: bounds.X + first, Y: bounds.Y, W: total - first, H: bounds.H}
}

func splitShare(total int, ratio float64) int {
	if total <= 0 {
		return 0
	}
	first := int(float64(total) * ratio)
	if total >= 2 {
		first = clampInt(first, 1, total-1)
	} else {
		first = clampInt(first, 0, total)
	}
	return first
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
