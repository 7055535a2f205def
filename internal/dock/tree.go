package dock

import (
	"fmt"
)

// Tree owns a binary split/stack arrangement of items. Nodes live in an arena
// keyed by stable ids and link to their parent by id. A Tree is not safe for
// concurrent use; hosts drive it from their event loop.
type Tree struct {
	root          NodeID
	nodes         map[NodeID]*node
	items         map[ItemID]*Item
	owner         map[ItemID]NodeID
	nextNodeIndex int

	// OnItemRemoved is called after RemoveItem has finished mutating the tree
	// so the caller can dispose of the item's content.
	OnItemRemoved func(Item)
}

func NewTree() *Tree {
	return &Tree{
		nodes: make(map[NodeID]*node),
		items: make(map[ItemID]*Item),
		owner: make(map[ItemID]NodeID),
	}
}

func (t *Tree) nextNodeID() NodeID {
	t.nextNodeIndex++
	return NodeID(fmt.Sprintf("n-%d", t.nextNodeIndex))
}

func (t *Tree) newStack(items ...ItemID) *node {
	n := &node{id: t.nextNodeID(), kind: KindStack, items: items}
	t.nodes[n.id] = n
	return n
}

func (t *Tree) newSplit(orientation Orientation, ratio float64) *node {
	n := &node{id: t.nextNodeID(), kind: KindSplit, orientation: orientation, ratio: ratio}
	t.nodes[n.id] = n
	return n
}

// Empty reports whether the tree has no root.
func (t *Tree) Empty() bool {
	return t == nil || t.root == ""
}

// Len returns the number of items in the tree.
func (t *Tree) Len() int {
	if t == nil {
		return 0
	}
	return len(t.items)
}

// Root returns the root node id, or "" for an empty tree.
func (t *Tree) Root() NodeID {
	if t == nil {
		return ""
	}
	return t.root
}

// Node returns a copy of a node.
func (t *Tree) Node(id NodeID) (NodeView, bool) {
	if t == nil {
		return NodeView{}, false
	}
	n := t.nodes[id]
	if n == nil {
		return NodeView{}, false
	}
	view := NodeView{ID: n.id, Kind: n.kind, Parent: n.parent}
	if n.isSplit() {
		view.Orientation = n.orientation
		view.Ratio = n.ratio
		view.Children = n.children
		return view, true
	}
	view.Items = append([]ItemID(nil), n.items...)
	view.Active = n.active
	return view, true
}

// Item returns a copy of an item.
func (t *Tree) Item(id ItemID) (Item, bool) {
	if t == nil {
		return Item{}, false
	}
	item := t.items[id]
	if item == nil {
		return Item{}, false
	}
	return *item, true
}

// FindStackContaining returns the stack that holds the item.
func (t *Tree) FindStackContaining(id ItemID) (NodeID, error) {
	if t == nil {
		return "", fmt.Errorf("dock: item %q: %w", id, ErrNotFound)
	}
	stack, ok := t.owner[id]
	if !ok {
		return "", fmt.Errorf("dock: item %q: %w", id, ErrNotFound)
	}
	return stack, nil
}

// Stacks returns every stack in left-to-right depth-first order.
func (t *Tree) Stacks() []NodeID {
	if t.Empty() {
		return nil
	}
	var out []NodeID
	t.walk(t.root, func(n *node) {
		if n.isStack() {
			out = append(out, n.id)
		}
	})
	return out
}

// Items returns every item id in traversal order, stacks left to right and
// tabs in tab order.
func (t *Tree) Items() []ItemID {
	if t.Empty() {
		return nil
	}
	out := make([]ItemID, 0, len(t.items))
	t.walk(t.root, func(n *node) {
		if n.isStack() {
			out = append(out, n.items...)
		}
	})
	return out
}

func (t *Tree) walk(id NodeID, fn func(*node)) {
	n := t.nodes[id]
	if n == nil {
		return
	}
	fn(n)
	if n.isSplit() {
		t.walk(n.children[0], fn)
		t.walk(n.children[1], fn)
	}
}

func (t *Tree) firstStack() *node {
	for id := t.root; id != ""; {
		n := t.nodes[id]
		if n == nil {
			return nil
		}
		if n.isStack() {
			return n
		}
		id = n.children[0]
	}
	return nil
}

func (t *Tree) stack(id NodeID) (*node, error) {
	n := t.nodes[id]
	if !n.isStack() {
		return nil, fmt.Errorf("dock: stack %q: %w", id, ErrNotFound)
	}
	return n, nil
}

// Clone returns a deep copy with identical node ids. Content handles are
// shared, not copied.
func (t *Tree) Clone() *Tree {
	if t == nil {
		return nil
	}
	clone := NewTree()
	clone.root = t.root
	clone.nextNodeIndex = t.nextNodeIndex
	clone.OnItemRemoved = t.OnItemRemoved
	for id, n := range t.nodes {
		dup := *n
		dup.items = append([]ItemID(nil), n.items...)
		clone.nodes[id] = &dup
	}
	for id, item := range t.items {
		dup := *item
		clone.items[id] = &dup
	}
	for id, stack := range t.owner {
		clone.owner[id] = stack
	}
	return clone
}

// CheckInvariants verifies the structural invariants: every split has two
// live children that point back at it, no stack is empty, active indices are
// in range and every item is owned by exactly the stack that lists it.
func (t *Tree) CheckInvariants() error {
	if t.Empty() {
		if len(t.items) != 0 || len(t.nodes) != 0 {
			return fmt.Errorf("dock: empty tree holds %d items and %d nodes", len(t.items), len(t.nodes))
		}
		return nil
	}
	if root := t.nodes[t.root]; root == nil || root.parent != "" {
		return fmt.Errorf("dock: root %q missing or parented", t.root)
	}
	seen := make(map[NodeID]bool, len(t.nodes))
	listed := 0
	var err error
	t.walk(t.root, func(n *node) {
		if err != nil {
			return
		}
		if seen[n.id] {
			err = fmt.Errorf("dock: node %q reached twice", n.id)
			return
		}
		seen[n.id] = true
		switch n.kind {
		case KindSplit:
			for _, child := range n.children {
				c := t.nodes[child]
				if c == nil {
					err = fmt.Errorf("dock: split %q has missing child %q", n.id, child)
					return
				}
				if c.parent != n.id {
					err = fmt.Errorf("dock: node %q parent %q, want %q", c.id, c.parent, n.id)
					return
				}
			}
			if n.ratio <= 0 || n.ratio >= 1 {
				err = fmt.Errorf("dock: split %q ratio %v out of range", n.id, n.ratio)
			}
		case KindStack:
			if len(n.items) == 0 {
				err = fmt.Errorf("dock: stack %q is empty", n.id)
				return
			}
			if n.active < 0 || n.active >= len(n.items) {
				err = fmt.Errorf("dock: stack %q active %d out of range", n.id, n.active)
				return
			}
			for _, id := range n.items {
				if t.owner[id] != n.id || t.items[id] == nil {
					err = fmt.Errorf("dock: item %q listed in %q but owned by %q", id, n.id, t.owner[id])
					return
				}
			}
			listed += len(n.items)
		default:
			err = fmt.Errorf("dock: node %q has unknown kind", n.id)
		}
	})
	if err != nil {
		return err
	}
	if len(seen) != len(t.nodes) {
		return fmt.Errorf("dock: %d nodes unreachable", len(t.nodes)-len(seen))
	}
	if listed != len(t.items) || listed != len(t.owner) {
		return fmt.Errorf("dock: %d items listed, %d known, %d owned", listed, len(t.items), len(t.owner))
	}
	return nil
}
