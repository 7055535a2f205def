package dock

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"strings"
)

const (
	SnapshotSplit = "split"
	SnapshotStack = "stack"
)

// maxSnapshotDepth bounds how deeply nested splits may be in a restored
// layout.
const maxSnapshotDepth = 128

// Layout captures a tree without content handles. A nil Root is an empty
// tree.
type Layout struct {
	Root *NodeSnapshot `json:"root"`
}

// NodeSnapshot is a tagged union: Type selects which of the split or stack
// fields are meaningful.
type NodeSnapshot struct {
	Type string `json:"type"`

	Orientation string          `json:"orientation,omitempty"`
	Ratio       float64         `json:"ratio,omitempty"`
	Children    []*NodeSnapshot `json:"children,omitempty"`

	ActiveIndex int            `json:"activeIndex"`
	Items       []ItemSnapshot `json:"items,omitempty"`
}

type ItemSnapshot struct {
	ID    ItemID `json:"id"`
	Title string `json:"title,omitempty"`
}

// MarshalJSON writes only the fields of the node's own variant.
func (n NodeSnapshot) MarshalJSON() ([]byte, error) {
	switch n.Type {
	case SnapshotSplit:
		return json.Marshal(struct {
			Type        string          `json:"type"`
			Orientation string          `json:"orientation"`
			Ratio       float64         `json:"ratio"`
			Children    []*NodeSnapshot `json:"children"`
		}{n.Type, n.Orientation, n.Ratio, n.Children})
	case SnapshotStack:
		items := n.Items
		if items == nil {
			items = []ItemSnapshot{}
		}
		return json.Marshal(struct {
			Type        string         `json:"type"`
			ActiveIndex int            `json:"activeIndex"`
			Items       []ItemSnapshot `json:"items"`
		}{n.Type, n.ActiveIndex, items})
	default:
		type raw NodeSnapshot
		return json.Marshal(raw(n))
	}
}

var snapshotFields = map[string][]string{
	SnapshotSplit: {"type", "orientation", "ratio", "children"},
	SnapshotStack: {"type", "activeIndex", "items"},
}

// UnmarshalJSON rejects fields that belong to the other variant, and any
// unknown field. Unknown type tags decode as is and fail validation later.
func (n *NodeSnapshot) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	var tag string
	if raw, ok := fields["type"]; ok {
		if err := json.Unmarshal(raw, &tag); err != nil {
			return malformed("node", "type: %v", err)
		}
	}
	if allowed, ok := snapshotFields[tag]; ok {
		for key := range fields {
			if !slices.Contains(allowed, key) {
				return malformed("node", "field %q not allowed on a %s", key, tag)
			}
		}
	}
	type raw NodeSnapshot
	var out raw
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&out); err != nil {
		return err
	}
	*n = NodeSnapshot(out)
	return nil
}

// Resolver maps a snapshot item id back to a live item. Returning false drops
// the entry from the restored layout.
type Resolver func(id ItemID) (Item, bool)

// Layout walks the tree depth first and returns its snapshot.
func (t *Tree) Layout() Layout {
	if t.Empty() {
		return Layout{}
	}
	return Layout{Root: t.snapshotNode(t.root)}
}

func (t *Tree) snapshotNode(id NodeID) *NodeSnapshot {
	n := t.nodes[id]
	if n == nil {
		return nil
	}
	if n.isSplit() {
		return &NodeSnapshot{
			Type:        SnapshotSplit,
			Orientation: n.orientation.String(),
			Ratio:       n.ratio,
			Children:    []*NodeSnapshot{t.snapshotNode(n.children[0]), t.snapshotNode(n.children[1])},
		}
	}
	snap := &NodeSnapshot{Type: SnapshotStack, ActiveIndex: n.active}
	snap.Items = make([]ItemSnapshot, 0, len(n.items))
	for _, itemID := range n.items {
		entry := ItemSnapshot{ID: itemID}
		if item := t.items[itemID]; item != nil {
			entry.Title = item.Title
		}
		snap.Items = append(snap.Items, entry)
	}
	return snap
}

// ValidateLayout checks the shape of a snapshot without touching any tree.
// Errors wrap ErrMalformed and name the offending node.
func ValidateLayout(layout Layout) error {
	if layout.Root == nil {
		return nil
	}
	seen := make(map[ItemID]bool)
	return validateNode(layout.Root, "root", 0, seen)
}

func validateNode(n *NodeSnapshot, path string, depth int, seen map[ItemID]bool) error {
	if n == nil {
		return malformed(path, "missing node")
	}
	if depth > maxSnapshotDepth {
		return malformed(path, "nested deeper than %d", maxSnapshotDepth)
	}
	switch n.Type {
	case SnapshotSplit:
		if len(n.Children) != 2 {
			return malformed(path, "split has %d children, want 2", len(n.Children))
		}
		if _, err := ParseOrientation(n.Orientation); err != nil {
			return malformed(path, "%v", err)
		}
		if !(n.Ratio > 0 && n.Ratio < 1) {
			return malformed(path, "ratio %v outside (0,1)", n.Ratio)
		}
		for i, child := range n.Children {
			if err := validateNode(child, fmt.Sprintf("%s.children[%d]", path, i), depth+1, seen); err != nil {
				return err
			}
		}
		return nil
	case SnapshotStack:
		if len(n.Items) == 0 {
			return malformed(path, "stack has no items")
		}
		if n.ActiveIndex < 0 || n.ActiveIndex >= len(n.Items) {
			return malformed(path, "activeIndex %d out of range for %d items", n.ActiveIndex, len(n.Items))
		}
		for i, item := range n.Items {
			if strings.TrimSpace(string(item.ID)) == "" {
				return malformed(fmt.Sprintf("%s.items[%d]", path, i), "empty id")
			}
			if seen[item.ID] {
				return malformed(fmt.Sprintf("%s.items[%d]", path, i), "duplicate id %q", item.ID)
			}
			seen[item.ID] = true
		}
		return nil
	default:
		return malformed(path, "unknown type %q", n.Type)
	}
}

func malformed(path, format string, args ...any) error {
	return fmt.Errorf("dock: %s: %s: %w", path, fmt.Sprintf(format, args...), ErrMalformed)
}

// SetLayout replaces the tree with one rebuilt from layout. The snapshot is
// validated first; a malformed one leaves the tree untouched. Entries the
// resolver rejects, or panics on, are dropped and stacks left without items
// are pruned. Items of the old tree that are not restored are released
// without OnItemRemoved since their content stays with the caller.
func (t *Tree) SetLayout(layout Layout, resolve Resolver) error {
	if t == nil {
		return fmt.Errorf("dock: tree is nil: %w", ErrMalformed)
	}
	if err := ValidateLayout(layout); err != nil {
		return err
	}
	fresh := NewTree()
	fresh.nextNodeIndex = t.nextNodeIndex
	if layout.Root != nil {
		fresh.root = fresh.buildNode(layout.Root, resolve)
	}
	t.root = fresh.root
	t.nodes = fresh.nodes
	t.items = fresh.items
	t.owner = fresh.owner
	t.nextNodeIndex = fresh.nextNodeIndex
	return nil
}

func (t *Tree) buildNode(snap *NodeSnapshot, resolve Resolver) NodeID {
	if snap.Type == SnapshotSplit {
		a := t.buildNode(snap.Children[0], resolve)
		b := t.buildNode(snap.Children[1], resolve)
		switch {
		case a == "":
			return b
		case b == "":
			return a
		}
		orientation, _ := ParseOrientation(snap.Orientation)
		split := t.newSplit(orientation, snap.Ratio)
		split.children = [2]NodeID{a, b}
		t.nodes[a].parent = split.id
		t.nodes[b].parent = split.id
		return split.id
	}

	var ids []ItemID
	active := 0
	for i, entry := range snap.Items {
		item, ok := safeResolve(resolve, entry.ID)
		if !ok {
			if i == snap.ActiveIndex {
				active = max(len(ids)-1, 0)
			}
			continue
		}
		item.ID = entry.ID
		if entry.Title != "" {
			item.Title = entry.Title
		}
		if i == snap.ActiveIndex {
			active = len(ids)
		}
		ids = append(ids, item.ID)
		t.items[item.ID] = &item
	}
	if len(ids) == 0 {
		return ""
	}
	stack := t.newStack(ids...)
	stack.active = active
	for _, id := range ids {
		t.owner[id] = stack.id
	}
	return stack.id
}

func safeResolve(resolve Resolver, id ItemID) (item Item, ok bool) {
	if resolve == nil {
		return Item{}, false
	}
	defer func() {
		if r := recover(); r != nil {
			slog.Debug("dock: item resolve panicked", slog.String("item", string(id)), slog.Any("panic", r))
			item, ok = Item{}, false
		}
	}()
	item, ok = resolve(id)
	if !ok {
		slog.Debug("dock: item not resolved", slog.String("item", string(id)))
	}
	return item, ok
}

// ItemResolver resolves ids against the items currently held by the tree.
// The returned resolver reads a copy, so it stays valid across SetLayout.
func (t *Tree) ItemResolver() Resolver {
	known := make(map[ItemID]Item)
	if t != nil {
		for id, item := range t.items {
			known[id] = *item
		}
	}
	return func(id ItemID) (Item, bool) {
		item, ok := known[id]
		return item, ok
	}
}
