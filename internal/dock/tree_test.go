package dock

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/regenrek/peakydock/internal/dockgeom"
)

func testItem(id string) Item {
	return Item{ID: ItemID(id), Title: strings.ToUpper(id), Closable: true}
}

// describe renders the tree as h(ratio A B) / v(ratio A B) for splits and
// [a* b] for stacks, with * marking the active tab.
func describe(tree *Tree) string {
	if tree.Empty() {
		return "empty"
	}
	return describeNode(tree, tree.Root())
}

func describeNode(tree *Tree, id NodeID) string {
	view, ok := tree.Node(id)
	if !ok {
		return "?"
	}
	if view.IsSplit() {
		axis := "h"
		if view.Orientation == Vertical {
			axis = "v"
		}
		return fmt.Sprintf("%s(%.2f %s %s)", axis, view.Ratio, describeNode(tree, view.Children[0]), describeNode(tree, view.Children[1]))
	}
	parts := make([]string, len(view.Items))
	for i, item := range view.Items {
		parts[i] = string(item)
		if i == view.Active {
			parts[i] += "*"
		}
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func mustInvariants(t *testing.T, tree *Tree) {
	t.Helper()
	if err := tree.CheckInvariants(); err != nil {
		t.Fatalf("invariants: %v (tree %s)", err, describe(tree))
	}
}

func mustAdd(t *testing.T, tree *Tree, target NodeID, ids ...string) {
	t.Helper()
	for _, id := range ids {
		if err := tree.AddItem(testItem(id), target); err != nil {
			t.Fatalf("AddItem(%s) error: %v", id, err)
		}
	}
}

func mustPlace(t *testing.T, tree *Tree, id string, stack NodeID, h dockgeom.Hotspot) {
	t.Helper()
	if err := tree.PlaceItem(testItem(id), DropTarget{Stack: stack, Hotspot: h}); err != nil {
		t.Fatalf("PlaceItem(%s) error: %v", id, err)
	}
}

func mustStack(t *testing.T, tree *Tree, id string) NodeID {
	t.Helper()
	stack, err := tree.FindStackContaining(ItemID(id))
	if err != nil {
		t.Fatalf("FindStackContaining(%s) error: %v", id, err)
	}
	return stack
}

// newSplitTree builds h(0.50 [a* b] [c*]).
func newSplitTree(t *testing.T) *Tree {
	t.Helper()
	tree := NewTree()
	mustAdd(t, tree, "", "a", "b")
	mustPlace(t, tree, "c", tree.Root(), dockgeom.Edge(dockgeom.HotspotEdgeEast))
	if got := describe(tree); got != "h(0.50 [a* b] [c*])" {
		t.Fatalf("unexpected fixture %s", got)
	}
	return tree
}

func TestAddItemCreatesRootStack(t *testing.T) {
	tree := NewTree()
	if !tree.Empty() || tree.Len() != 0 {
		t.Fatalf("new tree should be empty")
	}
	mustAdd(t, tree, "", "a")
	view, ok := tree.Node(tree.Root())
	if !ok || !view.IsStack() {
		t.Fatalf("expected root stack, got %#v", view)
	}
	if active, _ := view.ActiveItem(); active != "a" {
		t.Fatalf("active = %q, want a", active)
	}
	mustAdd(t, tree, "", "b")
	if got := describe(tree); got != "[a* b]" {
		t.Fatalf("tree = %s, want [a* b]", got)
	}
	mustInvariants(t, tree)
}

func TestAddItemWithoutTargetUsesFirstStack(t *testing.T) {
	tree := newSplitTree(t)
	mustAdd(t, tree, "", "d")
	if got := describe(tree); got != "h(0.50 [a* b d] [c*])" {
		t.Fatalf("tree = %s", got)
	}
	mustAdd(t, tree, mustStack(t, tree, "c"), "e")
	if got := describe(tree); got != "h(0.50 [a* b d] [c* e])" {
		t.Fatalf("tree = %s", got)
	}
	mustInvariants(t, tree)
}

func TestAddItemErrors(t *testing.T) {
	tree := NewTree()
	mustAdd(t, tree, "", "a")
	if err := tree.AddItem(testItem("a"), ""); !errors.Is(err, ErrDuplicateItem) {
		t.Fatalf("duplicate add error = %v", err)
	}
	if err := tree.AddItem(Item{Title: "untitled"}, ""); !errors.Is(err, ErrInvalidItem) {
		t.Fatalf("empty id error = %v", err)
	}
	if err := tree.AddItem(testItem("b"), "n-404"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing target error = %v", err)
	}
	if got := describe(tree); got != "[a*]" {
		t.Fatalf("failed adds mutated tree: %s", got)
	}
}

func TestRemoveItemCollapsesSplit(t *testing.T) {
	tree := newSplitTree(t)
	left := mustStack(t, tree, "a")
	if _, err := tree.RemoveItem("c"); err != nil {
		t.Fatalf("RemoveItem(c) error: %v", err)
	}
	if got := describe(tree); got != "[a* b]" {
		t.Fatalf("tree = %s, want [a* b]", got)
	}
	if tree.Root() != left {
		t.Fatalf("root = %s, want surviving stack %s", tree.Root(), left)
	}
	mustInvariants(t, tree)
}

func TestRemoveItemKeepsNonEmptyStack(t *testing.T) {
	tree := NewTree()
	mustAdd(t, tree, "", "a", "b")
	if _, err := tree.RemoveItem("b"); err != nil {
		t.Fatalf("RemoveItem(b) error: %v", err)
	}
	if got := describe(tree); got != "[a*]" {
		t.Fatalf("tree = %s, want [a*]", got)
	}
	if _, err := tree.RemoveItem("a"); err != nil {
		t.Fatalf("RemoveItem(a) error: %v", err)
	}
	if !tree.Empty() {
		t.Fatalf("tree = %s, want empty", describe(tree))
	}
	mustInvariants(t, tree)
}

func TestRemoveItemActiveSelection(t *testing.T) {
	tests := []struct {
		name     string
		activate string
		remove   string
		want     string
	}{
		{name: "active middle picks left neighbour", activate: "b", remove: "b", want: "[a* c]"},
		{name: "active first picks new leftmost", activate: "a", remove: "a", want: "[b* c]"},
		{name: "active right of removed stays", activate: "c", remove: "a", want: "[b c*]"},
		{name: "active left of removed stays", activate: "a", remove: "c", want: "[a* b]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := NewTree()
			mustAdd(t, tree, "", "a", "b", "c")
			if err := tree.ActivateItem(ItemID(tt.activate)); err != nil {
				t.Fatalf("ActivateItem() error: %v", err)
			}
			if _, err := tree.RemoveItem(ItemID(tt.remove)); err != nil {
				t.Fatalf("RemoveItem() error: %v", err)
			}
			if got := describe(tree); got != tt.want {
				t.Fatalf("tree = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestRemoveItemCallbackRunsAfterMutation(t *testing.T) {
	tree := newSplitTree(t)
	var removed []ItemID
	tree.OnItemRemoved = func(item Item) {
		if _, ok := tree.Item(item.ID); ok {
			t.Fatalf("callback saw %q still in tree", item.ID)
		}
		if err := tree.CheckInvariants(); err != nil {
			t.Fatalf("callback saw inconsistent tree: %v", err)
		}
		removed = append(removed, item.ID)
	}
	item, err := tree.RemoveItem("c")
	if err != nil {
		t.Fatalf("RemoveItem() error: %v", err)
	}
	if item.Title != "C" {
		t.Fatalf("removed item = %#v", item)
	}
	if len(removed) != 1 || removed[0] != "c" {
		t.Fatalf("callback calls = %v", removed)
	}
}

func TestRemoveItemNotFound(t *testing.T) {
	tree := newSplitTree(t)
	before := describe(tree)
	if _, err := tree.RemoveItem("zzz"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("RemoveItem() error = %v, want ErrNotFound", err)
	}
	if err := tree.ActivateItem("zzz"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("ActivateItem() error = %v, want ErrNotFound", err)
	}
	if _, err := tree.FindStackContaining("zzz"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("FindStackContaining() error = %v, want ErrNotFound", err)
	}
	if got := describe(tree); got != before {
		t.Fatalf("tree changed from %s to %s", before, got)
	}
}

func TestActivateAndUpdateItem(t *testing.T) {
	tree := NewTree()
	mustAdd(t, tree, "", "a", "b")
	if err := tree.ActivateItem("b"); err != nil {
		t.Fatalf("ActivateItem() error: %v", err)
	}
	if got := describe(tree); got != "[a b*]" {
		t.Fatalf("tree = %s", got)
	}
	if err := tree.UpdateItem("a", "Renamed", "tip"); err != nil {
		t.Fatalf("UpdateItem() error: %v", err)
	}
	item, _ := tree.Item("a")
	if item.Title != "Renamed" || item.Tooltip != "tip" {
		t.Fatalf("item = %#v", item)
	}
	if err := tree.UpdateItem("zzz", "x", ""); !errors.Is(err, ErrNotFound) {
		t.Fatalf("UpdateItem() error = %v", err)
	}
}

func TestTraversalOrder(t *testing.T) {
	tree := newSplitTree(t)
	mustPlace(t, tree, "d", mustStack(t, tree, "a"), dockgeom.Edge(dockgeom.HotspotEdgeNorth))
	if got := describe(tree); got != "h(0.50 v(0.50 [d*] [a* b]) [c*])" {
		t.Fatalf("tree = %s", got)
	}
	got := fmt.Sprint(tree.Items())
	if got != "[d a b c]" {
		t.Fatalf("Items() = %s", got)
	}
	stacks := tree.Stacks()
	if len(stacks) != 3 || stacks[0] != mustStack(t, tree, "d") || stacks[2] != mustStack(t, tree, "c") {
		t.Fatalf("Stacks() = %v", stacks)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	tree := newSplitTree(t)
	clone := tree.Clone()
	if _, err := clone.RemoveItem("c"); err != nil {
		t.Fatalf("RemoveItem() error: %v", err)
	}
	if got := describe(tree); got != "h(0.50 [a* b] [c*])" {
		t.Fatalf("original changed: %s", got)
	}
	if got := describe(clone); got != "[a* b]" {
		t.Fatalf("clone = %s", got)
	}
	mustInvariants(t, tree)
	mustInvariants(t, clone)
}

func TestCheckInvariantsDetectsCorruption(t *testing.T) {
	tree := newSplitTree(t)
	tree.nodes[mustStack(t, tree, "c")].items = nil
	if err := tree.CheckInvariants(); err == nil {
		t.Fatalf("expected invariant failure for empty stack")
	}
}
