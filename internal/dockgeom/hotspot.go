package dockgeom

import "fmt"

type HotspotKind int

const (
	HotspotOutside HotspotKind = iota
	HotspotTabBefore
	HotspotTabAfterLast
	HotspotEdgeNorth
	HotspotEdgeSouth
	HotspotEdgeEast
	HotspotEdgeWest
)

func (k HotspotKind) String() string {
	switch k {
	case HotspotOutside:
		return "outside"
	case HotspotTabBefore:
		return "tab_before"
	case HotspotTabAfterLast:
		return "tab_after_last"
	case HotspotEdgeNorth:
		return "edge_north"
	case HotspotEdgeSouth:
		return "edge_south"
	case HotspotEdgeEast:
		return "edge_east"
	case HotspotEdgeWest:
		return "edge_west"
	default:
		return "unknown"
	}
}

// Hotspot classifies a pointer position relative to one stack. Index is only
// meaningful for HotspotTabBefore.
type Hotspot struct {
	Kind  HotspotKind
	Index int
}

func Outside() Hotspot { return Hotspot{Kind: HotspotOutside} }

func TabInsertBefore(i int) Hotspot { return Hotspot{Kind: HotspotTabBefore, Index: i} }

func TabInsertAfterLast() Hotspot { return Hotspot{Kind: HotspotTabAfterLast} }

func Edge(kind HotspotKind) Hotspot { return Hotspot{Kind: kind} }

func (h Hotspot) IsOutside() bool { return h.Kind == HotspotOutside }

func (h Hotspot) IsEdge() bool { return h.Kind >= HotspotEdgeNorth && h.Kind <= HotspotEdgeWest }

func (h Hotspot) IsTabPosition() bool {
	return h.Kind == HotspotTabBefore || h.Kind == HotspotTabAfterLast
}

func (h Hotspot) String() string {
	if h.Kind == HotspotTabBefore {
		return fmt.Sprintf("%s(%d)", h.Kind, h.Index)
	}
	return h.Kind.String()
}

// LeadingEdge reports whether the new region goes before the target
// (north or west) rather than after it.
func (h Hotspot) LeadingEdge() bool {
	return h.Kind == HotspotEdgeNorth || h.Kind == HotspotEdgeWest
}

// VerticalEdge reports whether the edge splits the target top/bottom.
func (h Hotspot) VerticalEdge() bool {
	return h.Kind == HotspotEdgeNorth || h.Kind == HotspotEdgeSouth
}
