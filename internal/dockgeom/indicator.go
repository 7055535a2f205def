package dockgeom

// IndicatorRect returns where a renderer should draw the drop indicator for a
// hotspot: a one-cell insertion bar inside the tab bar for tab positions, or
// the half of the stack on the requested side for edges.
func IndicatorRect(h Hotspot, geom StackGeometry, tabs []Rect) (Rect, bool) {
	if !geom.Valid() {
		return Rect{}, false
	}
	switch {
	case h.IsTabPosition():
		return tabInsertionBar(h, geom.TabBar, tabs)
	case h.IsEdge():
		return edgeHalf(h.Kind, geom.Bounds), true
	default:
		return Rect{}, false
	}
}

func tabInsertionBar(h Hotspot, bar Rect, tabs []Rect) (Rect, bool) {
	if bar.Empty() {
		return Rect{}, false
	}
	horizontal := bar.W >= bar.H
	pos := bar.X
	if !horizontal {
		pos = bar.Y
	}
	switch {
	case h.Kind == HotspotTabBefore && h.Index >= 0 && h.Index < len(tabs):
		pos = tabs[h.Index].Y
		if horizontal {
			pos = tabs[h.Index].X
		}
	case len(tabs) > 0:
		last := tabs[len(tabs)-1]
		pos = last.Y + last.H
		if horizontal {
			pos = last.X + last.W
		}
	}
	if horizontal {
		pos = clampInt(pos, bar.X, bar.X+bar.W-1)
		return Rect{X: pos, Y: bar.Y, W: 1, H: bar.H}, true
	}
	pos = clampInt(pos, bar.Y, bar.Y+bar.H-1)
	return Rect{X: bar.X, Y: pos, W: bar.W, H: 1}, true
}

func edgeHalf(kind HotspotKind, r Rect) Rect {
	halfW := max(r.W/2, 1)
	halfH := max(r.H/2, 1)
	switch kind {
	case HotspotEdgeNorth:
		return Rect{X: r.X, Y: r.Y, W: r.W, H: halfH}
	case HotspotEdgeSouth:
		return Rect{X: r.X, Y: r.Y + r.H - halfH, W: r.W, H: halfH}
	case HotspotEdgeWest:
		return Rect{X: r.X, Y: r.Y, W: halfW, H: r.H}
	case HotspotEdgeEast:
		return Rect{X: r.X + r.W - halfW, Y: r.Y, W: halfW, H: r.H}
	default:
		return Rect{}
	}
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
