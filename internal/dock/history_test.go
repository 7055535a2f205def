package dock

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/regenrek/peakydock/internal/dockgeom"
)

func TestHistoryUndoRedo(t *testing.T) {
	tree := NewTree()
	mustAdd(t, tree, "", "a", "b")
	history := NewHistory()
	if history.CanUndo() || history.Undo(tree) {
		t.Fatalf("empty history should not undo")
	}

	history.Record(tree)
	mustMove(t, tree, "b", tree.Root(), dockgeom.Edge(dockgeom.HotspotEdgeWest))
	if !history.Undo(tree) {
		t.Fatalf("Undo() = false")
	}
	if got := describe(tree); got != "[a* b]" {
		t.Fatalf("after undo tree = %s", got)
	}
	if !history.CanRedo() || !history.Redo(tree) {
		t.Fatalf("Redo() = false")
	}
	if got := describe(tree); got != "h(0.50 [b*] [a*])" {
		t.Fatalf("after redo tree = %s", got)
	}
	if history.Redo(tree) {
		t.Fatalf("second Redo() should fail")
	}
	mustInvariants(t, tree)
}

func TestHistoryKeepsItemsOpenedSinceRecord(t *testing.T) {
	tree := NewTree()
	mustAdd(t, tree, "", "a")
	history := NewHistory()
	history.Record(tree)
	mustPlace(t, tree, "b", tree.Root(), dockgeom.Edge(dockgeom.HotspotEdgeEast))
	if !history.Undo(tree) {
		t.Fatalf("Undo() = false")
	}
	if got := describe(tree); got != "[a* b]" {
		t.Fatalf("tree = %s, want [a* b]", got)
	}
}

func TestHistoryLogsKeptItems(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })

	tree := NewTree()
	mustAdd(t, tree, "", "a")
	history := NewHistory()
	history.Record(tree)
	mustAdd(t, tree, "", "b")
	if !history.Undo(tree) {
		t.Fatalf("Undo() = false")
	}
	out := buf.String()
	if !strings.Contains(out, "history kept item") || !strings.Contains(out, "item=b") {
		t.Fatalf("log output = %q", out)
	}
	if strings.Contains(out, "could not keep") {
		t.Fatalf("unexpected failure log: %q", out)
	}
}

func TestHistoryDropsItemsClosedSinceRecord(t *testing.T) {
	tree := newSplitTree(t)
	history := NewHistory()
	history.Record(tree)
	if _, err := tree.RemoveItem("a"); err != nil {
		t.Fatalf("RemoveItem() error: %v", err)
	}
	if !history.Undo(tree) {
		t.Fatalf("Undo() = false")
	}
	if got := describe(tree); got != "h(0.50 [b*] [c*])" {
		t.Fatalf("tree = %s", got)
	}
}

func TestHistoryLimit(t *testing.T) {
	tree := NewTree()
	mustAdd(t, tree, "", "a")
	history := &History{Limit: 3}
	for i := 0; i < 5; i++ {
		history.Record(tree)
	}
	if len(history.Past) != 3 {
		t.Fatalf("history size = %d, want 3", len(history.Past))
	}
	history.Clear()
	if history.CanUndo() || history.CanRedo() {
		t.Fatalf("Clear() left entries")
	}
}

func TestTransplantBetweenTrees(t *testing.T) {
	src := NewTree()
	mustAdd(t, src, "", "a")
	mustPlace(t, src, "b", src.Root(), dockgeom.Edge(dockgeom.HotspotEdgeEast))
	removed := 0
	src.OnItemRemoved = func(Item) { removed++ }
	dst := NewTree()

	if err := Transplant(src, dst, "b", DropTarget{}); err != nil {
		t.Fatalf("Transplant() error: %v", err)
	}
	if got := describe(src); got != "[a*]" {
		t.Fatalf("src = %s", got)
	}
	if got := describe(dst); got != "[b*]" {
		t.Fatalf("dst = %s", got)
	}

	if err := Transplant(src, dst, "a", DropTarget{Stack: dst.Root(), Hotspot: dockgeom.Edge(dockgeom.HotspotEdgeEast)}); err != nil {
		t.Fatalf("Transplant() error: %v", err)
	}
	if !src.Empty() {
		t.Fatalf("src = %s, want empty", describe(src))
	}
	if got := describe(dst); got != "h(0.50 [b*] [a*])" {
		t.Fatalf("dst = %s", got)
	}
	if removed != 0 {
		t.Fatalf("transplant fired OnItemRemoved %d times", removed)
	}
	mustInvariants(t, src)
	mustInvariants(t, dst)
}

func TestTransplantRejectsBadTargetWithoutTouchingSource(t *testing.T) {
	src := NewTree()
	mustAdd(t, src, "", "a")
	dst := NewTree()
	mustAdd(t, dst, "", "b")

	err := Transplant(src, dst, "a", DropTarget{Stack: dst.Root(), Hotspot: dockgeom.Outside()})
	if !errors.Is(err, ErrInvalidTarget) {
		t.Fatalf("Transplant() error = %v", err)
	}
	if got := describe(src); got != "[a*]" {
		t.Fatalf("src = %s", got)
	}
	mustAdd(t, dst, "", "a")
	err = Transplant(src, dst, "a", DropTarget{Stack: dst.Root(), Hotspot: dockgeom.TabInsertAfterLast()})
	if !errors.Is(err, ErrDuplicateItem) {
		t.Fatalf("Transplant(duplicate) error = %v", err)
	}
	if _, err := src.FindStackContaining("a"); err != nil {
		t.Fatalf("source lost item: %v", err)
	}
}

func TestHistoryFallbackRestoresClosedItems(t *testing.T) {
	tree := newSplitTree(t)
	closed := map[ItemID]Item{}
	history := NewHistory()
	history.Fallback = func(id ItemID) (Item, bool) {
		item, ok := closed[id]
		return item, ok
	}
	history.Record(tree)
	item, err := tree.RemoveItem("c")
	if err != nil {
		t.Fatalf("RemoveItem() error: %v", err)
	}
	closed[item.ID] = item
	if !history.Undo(tree) {
		t.Fatalf("Undo() = false")
	}
	if got := describe(tree); got != "h(0.50 [a* b] [c*])" {
		t.Fatalf("tree = %s", got)
	}
	mustInvariants(t, tree)
}

func TestHistoryUndoDropsItemsHeldByFallback(t *testing.T) {
	tree := newSplitTree(t)
	held := map[ItemID]Item{}
	history := NewHistory()
	history.Fallback = func(id ItemID) (Item, bool) {
		item, ok := held[id]
		return item, ok
	}
	history.Record(tree)
	added := Item{ID: "d", Title: "d"}
	held[added.ID] = added
	if err := tree.AddItem(added, ""); err != nil {
		t.Fatalf("AddItem() error: %v", err)
	}
	if !history.Undo(tree) {
		t.Fatalf("Undo() = false")
	}
	if _, ok := tree.Item("d"); ok {
		t.Fatalf("item held by the fallback should not be re-added")
	}
	if !history.Redo(tree) {
		t.Fatalf("Redo() = false")
	}
	if _, ok := tree.Item("d"); !ok {
		t.Fatalf("redo should bring the item back through the fallback")
	}
	mustInvariants(t, tree)
}
