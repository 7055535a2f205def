package dockgeom

// EdgeBandDivisor splits the content area into quarter bands: a point is in
// the north band when it lies in the top 1/EdgeBandDivisor of the height.
const EdgeBandDivisor = 4

// Classify maps a pointer position to a hotspot on one stack. It depends only
// on its inputs, so it can run against any stack's last-known geometry.
// Unknown or stale geometry classifies as Outside.
func Classify(pos Point, geom StackGeometry, tabs []Rect) Hotspot {
	if !geom.Valid() || !geom.Bounds.Contains(pos) {
		return Outside()
	}
	if geom.TabBar.Contains(pos) {
		return classifyTabBar(pos, geom.TabBar, tabs)
	}
	if geom.Content.Contains(pos) {
		return classifyContent(pos, geom.Content)
	}
	return Outside()
}

func classifyTabBar(pos Point, bar Rect, tabs []Rect) Hotspot {
	horizontal := bar.W >= bar.H
	coord := pos.Y
	if horizontal {
		coord = pos.X
	}
	for i, tab := range tabs {
		start, span := tab.Y, tab.H
		if horizontal {
			start, span = tab.X, tab.W
		}
		if span <= 0 {
			continue
		}
		if coord < start {
			return TabInsertBefore(i)
		}
		if coord >= start+span {
			continue
		}
		if 2*(coord-start) < span {
			return TabInsertBefore(i)
		}
		if i == len(tabs)-1 {
			return TabInsertAfterLast()
		}
		return TabInsertBefore(i + 1)
	}
	return TabInsertAfterLast()
}

type edgeCandidate struct {
	kind HotspotKind
	dist int
	span int
}

func classifyContent(pos Point, content Rect) Hotspot {
	candidates := [4]edgeCandidate{
		{kind: HotspotEdgeNorth, dist: pos.Y - content.Y, span: content.H},
		{kind: HotspotEdgeSouth, dist: content.Y + content.H - 1 - pos.Y, span: content.H},
		{kind: HotspotEdgeWest, dist: pos.X - content.X, span: content.W},
		{kind: HotspotEdgeEast, dist: content.X + content.W - 1 - pos.X, span: content.W},
	}
	best := -1
	for i, c := range candidates {
		if EdgeBandDivisor*c.dist >= c.span {
			continue
		}
		if best < 0 || nearer(c, candidates[best]) {
			best = i
		}
	}
	if best < 0 {
		return Outside()
	}
	return Edge(candidates[best].kind)
}

// nearer compares dist/span ratios without division; ties keep the earlier
// candidate.
func nearer(a, b edgeCandidate) bool {
	return a.dist*b.span < b.dist*a.span
}
