package dock

import (
	"fmt"
	"strings"

	"github.com/regenrek/peakydock/internal/dockgeom"
)

// AddItem docks a new item. An empty tree gets a root stack holding the item
// and target is ignored. Otherwise the item is appended to target, or to the
// first stack in traversal order when target is "".
func (t *Tree) AddItem(item Item, target NodeID) error {
	if err := t.checkNewItem(item); err != nil {
		return err
	}
	if t.Empty() {
		root := t.newStack(item.ID)
		t.root = root.id
		t.register(item, root)
		return nil
	}
	var stack *node
	if target == "" {
		stack = t.firstStack()
	} else {
		var err error
		if stack, err = t.stack(target); err != nil {
			return err
		}
	}
	if stack == nil {
		return fmt.Errorf("dock: no stack for item %q: %w", item.ID, ErrNotFound)
	}
	stack.items = append(stack.items, item.ID)
	if len(stack.items) == 1 {
		stack.active = 0
	}
	t.register(item, stack)
	return nil
}

// RemoveItem removes an item and prunes what it leaves behind. OnItemRemoved
// runs after the tree is consistent again.
func (t *Tree) RemoveItem(id ItemID) (Item, error) {
	if t == nil {
		return Item{}, fmt.Errorf("dock: item %q: %w", id, ErrNotFound)
	}
	item := t.items[id]
	if item == nil {
		return Item{}, fmt.Errorf("dock: item %q: %w", id, ErrNotFound)
	}
	removed := *item
	t.detach(id)
	delete(t.items, id)
	if t.OnItemRemoved != nil {
		t.OnItemRemoved(removed)
	}
	return removed, nil
}

// ActivateItem makes the item the active tab of its stack.
func (t *Tree) ActivateItem(id ItemID) error {
	stackID, err := t.FindStackContaining(id)
	if err != nil {
		return err
	}
	stack := t.nodes[stackID]
	stack.active = stack.indexOf(id)
	return nil
}

// UpdateItem changes the display strings of an item.
func (t *Tree) UpdateItem(id ItemID, title, tooltip string) error {
	if t == nil || t.items[id] == nil {
		return fmt.Errorf("dock: item %q: %w", id, ErrNotFound)
	}
	t.items[id].Title = title
	t.items[id].Tooltip = tooltip
	return nil
}

// MoveItem relocates an item to a drop target. Tab hotspots insert the item
// into the target stack; edge hotspots split the target stack and give the
// item a stack of its own. Dropping an item where it already is changes
// nothing.
func (t *Tree) MoveItem(id ItemID, target DropTarget) error {
	source, err := t.FindStackContaining(id)
	if err != nil {
		return err
	}
	dest, err := t.checkTarget(target)
	if err != nil {
		return err
	}
	src := t.nodes[source]
	if target.Hotspot.IsTabPosition() {
		index, err := tabIndex(dest, target.Hotspot)
		if err != nil {
			return err
		}
		if src == dest {
			return t.reorder(dest, src.indexOf(id), index)
		}
		t.detach(id)
		t.insertTab(dest, id, index)
		return nil
	}
	if src == dest && len(src.items) == 1 {
		return nil
	}
	t.detach(id)
	t.splitEdge(dest, id, target.Hotspot)
	return nil
}

// PlaceItem docks an item that is not yet part of the tree at a drop target.
// An empty tree ignores the target and makes the item its root stack.
func (t *Tree) PlaceItem(item Item, target DropTarget) error {
	if t.Empty() {
		return t.AddItem(item, "")
	}
	if err := t.checkNewItem(item); err != nil {
		return err
	}
	dest, err := t.checkTarget(target)
	if err != nil {
		return err
	}
	if target.Hotspot.IsTabPosition() {
		index, err := tabIndex(dest, target.Hotspot)
		if err != nil {
			return err
		}
		t.items[item.ID] = &item
		t.insertTab(dest, item.ID, index)
		return nil
	}
	t.items[item.ID] = &item
	t.splitEdge(dest, item.ID, target.Hotspot)
	return nil
}

func (t *Tree) checkNewItem(item Item) error {
	if t == nil {
		return fmt.Errorf("dock: tree is nil: %w", ErrInvalidItem)
	}
	if strings.TrimSpace(string(item.ID)) == "" {
		return fmt.Errorf("dock: item requires id: %w", ErrInvalidItem)
	}
	if t.items[item.ID] != nil {
		return fmt.Errorf("dock: item %q: %w", item.ID, ErrDuplicateItem)
	}
	return nil
}

func (t *Tree) checkTarget(target DropTarget) (*node, error) {
	dest, err := t.stack(target.Stack)
	if err != nil {
		return nil, err
	}
	if !target.Hotspot.IsTabPosition() && !target.Hotspot.IsEdge() {
		return nil, fmt.Errorf("dock: %s: %w", target, ErrInvalidTarget)
	}
	return dest, nil
}

// tabIndex resolves a tab hotspot against the stack's current tabs. Index
// len(items) is accepted as an append.
func tabIndex(stack *node, h dockgeom.Hotspot) (int, error) {
	if h.Kind == dockgeom.HotspotTabAfterLast {
		return len(stack.items), nil
	}
	if h.Index < 0 || h.Index > len(stack.items) {
		return 0, fmt.Errorf("dock: tab index %d of %d in %q: %w", h.Index, len(stack.items), stack.id, ErrInvalidTarget)
	}
	return h.Index, nil
}

func (t *Tree) register(item Item, stack *node) {
	t.items[item.ID] = &item
	t.owner[item.ID] = stack.id
}

// reorder moves a tab within its own stack. from and to use pre-move
// positions, so to == from and to == from+1 both name the current slot.
func (t *Tree) reorder(stack *node, from, to int) error {
	if to == from || to == from+1 {
		return nil
	}
	id := stack.items[from]
	stack.items = append(stack.items[:from], stack.items[from+1:]...)
	if to > from {
		to--
	}
	stack.items = insertAt(stack.items, to, id)
	stack.active = to
	return nil
}

func (t *Tree) insertTab(stack *node, id ItemID, index int) {
	stack.items = insertAt(stack.items, index, id)
	stack.active = index
	t.owner[id] = stack.id
}

func insertAt(items []ItemID, index int, id ItemID) []ItemID {
	items = append(items, "")
	copy(items[index+1:], items[index:])
	items[index] = id
	return items
}

// splitEdge gives id a new stack S and wraps target X in a new split of the
// edge's orientation: [S, X] for north and west, [X, S] for south and east.
// Splits are strictly binary, so a sibling on an already matching axis is
// still represented by one more level of nesting.
func (t *Tree) splitEdge(x *node, id ItemID, h dockgeom.Hotspot) {
	s := t.newStack(id)
	t.owner[id] = s.id
	orientation := Horizontal
	if h.VerticalEdge() {
		orientation = Vertical
	}
	split := t.newSplit(orientation, DefaultRatio)
	if h.LeadingEdge() {
		split.children = [2]NodeID{s.id, x.id}
	} else {
		split.children = [2]NodeID{x.id, s.id}
	}
	t.replaceChild(x.parent, x.id, split.id)
	x.parent = split.id
	s.parent = split.id
}

// replaceChild puts next where old was: under parent, or at the root when
// parent is "".
func (t *Tree) replaceChild(parent, old, next NodeID) {
	if n := t.nodes[next]; n != nil {
		n.parent = parent
	}
	if parent == "" {
		t.root = next
		return
	}
	p := t.nodes[parent]
	if i := p.childIndex(old); i >= 0 {
		p.children[i] = next
	}
}

// detach takes an item out of its stack and runs the pruning cascade. The
// item record stays in t.items.
func (t *Tree) detach(id ItemID) {
	stack := t.nodes[t.owner[id]]
	delete(t.owner, id)
	if stack == nil {
		return
	}
	index := stack.indexOf(id)
	if index < 0 {
		return
	}
	stack.items = append(stack.items[:index], stack.items[index+1:]...)
	switch {
	case len(stack.items) == 0:
		stack.active = 0
		t.prune(stack)
	case index < stack.active:
		stack.active--
	case index == stack.active:
		stack.active = max(index-1, 0)
	}
}

// prune deletes an empty stack. Its parent split is left with one child and
// is replaced in the grandparent by that child; an empty root empties the
// tree.
func (t *Tree) prune(stack *node) {
	delete(t.nodes, stack.id)
	if stack.parent == "" {
		t.root = ""
		return
	}
	parent := t.nodes[stack.parent]
	i := parent.childIndex(stack.id)
	if i < 0 {
		return
	}
	survivor := parent.children[1-i]
	delete(t.nodes, parent.id)
	t.replaceChild(parent.parent, parent.id, survivor)
}
