package dock

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/regenrek/peakydock/internal/dockgeom"
)

type ItemID string

type NodeID string

// Item is a dockable panel. Content is an opaque handle owned by the caller;
// the tree stores the reference and never frees or mutates it.
type Item struct {
	ID       ItemID
	Title    string
	Tooltip  string
	Content  any
	Closable bool
}

// NewItemID returns a fresh random item id.
func NewItemID() ItemID {
	return ItemID(uuid.NewString())
}

type Orientation int

const (
	// Horizontal places the two children side by side.
	Horizontal Orientation = iota
	// Vertical places the first child above the second.
	Vertical
)

func (o Orientation) String() string {
	switch o {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	default:
		return "unknown"
	}
}

// ParseOrientation accepts the snapshot spelling of an orientation.
func ParseOrientation(raw string) (Orientation, error) {
	switch raw {
	case "horizontal":
		return Horizontal, nil
	case "vertical":
		return Vertical, nil
	default:
		return 0, fmt.Errorf("unknown orientation %q", raw)
	}
}

type NodeKind int

const (
	KindStack NodeKind = iota + 1
	KindSplit
)

func (k NodeKind) String() string {
	switch k {
	case KindStack:
		return "stack"
	case KindSplit:
		return "split"
	default:
		return "unknown"
	}
}

const (
	DefaultRatio = 0.5
	MinRatio     = 0.1
)

// DropTarget names a stack and the hotspot on it that a tab was dropped on.
type DropTarget struct {
	Stack   NodeID
	Hotspot dockgeom.Hotspot
}

func (d DropTarget) String() string {
	return fmt.Sprintf("%s@%s", d.Hotspot, d.Stack)
}

type node struct {
	id     NodeID
	kind   NodeKind
	parent NodeID

	orientation Orientation
	ratio       float64
	children    [2]NodeID

	items  []ItemID
	active int
}

func (n *node) isStack() bool { return n != nil && n.kind == KindStack }

func (n *node) isSplit() bool { return n != nil && n.kind == KindSplit }

func (n *node) indexOf(id ItemID) int {
	for i, candidate := range n.items {
		if candidate == id {
			return i
		}
	}
	return -1
}

func (n *node) childIndex(child NodeID) int {
	for i, candidate := range n.children {
		if candidate == child {
			return i
		}
	}
	return -1
}

// NodeView is a read-only copy of one node. Split fields are zero for stacks
// and stack fields are zero for splits.
type NodeView struct {
	ID          NodeID
	Kind        NodeKind
	Parent      NodeID
	Orientation Orientation
	Ratio       float64
	Children    [2]NodeID
	Items       []ItemID
	Active      int
}

func (v NodeView) IsStack() bool { return v.Kind == KindStack }

func (v NodeView) IsSplit() bool { return v.Kind == KindSplit }

// ActiveItem returns the active item of a stack view.
func (v NodeView) ActiveItem() (ItemID, bool) {
	if v.Kind != KindStack || v.Active < 0 || v.Active >= len(v.Items) {
		return "", false
	}
	return v.Items[v.Active], true
}
