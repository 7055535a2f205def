package dock

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/regenrek/peakydock/internal/dockgeom"
)

func stackSnapshot(active int, ids ...string) *NodeSnapshot {
	snap := &NodeSnapshot{Type: SnapshotStack, ActiveIndex: active}
	for _, id := range ids {
		snap.Items = append(snap.Items, ItemSnapshot{ID: ItemID(id), Title: strings.ToUpper(id)})
	}
	return snap
}

func resolveAll(id ItemID) (Item, bool) {
	return testItem(string(id)), true
}

// newNestedTree builds h(0.30 v(0.50 [d*] [a b*]) [c* e]), a tree with a resized
// root split.
func newNestedTree(t *testing.T) *Tree {
	t.Helper()
	tree := newSplitTree(t)
	mustPlace(t, tree, "d", mustStack(t, tree, "a"), dockgeom.Edge(dockgeom.HotspotEdgeNorth))
	mustAdd(t, tree, mustStack(t, tree, "c"), "e")
	if err := tree.ActivateItem("b"); err != nil {
		t.Fatalf("ActivateItem() error: %v", err)
	}
	if err := tree.SetRatio(tree.Root(), 0.3); err != nil {
		t.Fatalf("SetRatio() error: %v", err)
	}
	return tree
}

func TestLayoutRoundTrip(t *testing.T) {
	src := newNestedTree(t)
	want := describe(src)
	dst := NewTree()
	if err := dst.SetLayout(src.Layout(), src.ItemResolver()); err != nil {
		t.Fatalf("SetLayout() error: %v", err)
	}
	if got := describe(dst); got != want {
		t.Fatalf("round trip = %s, want %s", got, want)
	}
	for _, id := range src.Items() {
		a, _ := src.Item(id)
		b, ok := dst.Item(id)
		if !ok || a.Title != b.Title || a.Closable != b.Closable {
			t.Fatalf("item %q = %#v, want %#v", id, b, a)
		}
	}
	mustInvariants(t, dst)
}

func TestLayoutJSONRoundTrip(t *testing.T) {
	src := newNestedTree(t)
	data, err := json.Marshal(src.Layout())
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	text := string(data)
	if !strings.Contains(text, `"type":"split"`) || !strings.Contains(text, `"orientation":"horizontal"`) {
		t.Fatalf("unexpected json: %s", text)
	}
	if !strings.Contains(text, `{"type":"stack","activeIndex":0,"items":[{"id":"d","title":"D"}]}`) {
		t.Fatalf("stack encoding missing from %s", text)
	}
	var layout Layout
	if err := json.Unmarshal(data, &layout); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	dst := NewTree()
	if err := dst.SetLayout(layout, resolveAll); err != nil {
		t.Fatalf("SetLayout() error: %v", err)
	}
	if got, want := describe(dst), describe(src); got != want {
		t.Fatalf("json round trip = %s, want %s", got, want)
	}
}

func TestLayoutJSONRejectsForeignFields(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{"orientation on stack", `{"root":{"type":"stack","orientation":"vertical","activeIndex":0,"items":[{"id":"a"}]}}`},
		{"items on split", `{"root":{"type":"split","orientation":"vertical","ratio":0.5,"items":[{"id":"a"}],"children":[{"type":"stack","activeIndex":0,"items":[{"id":"b"}]},{"type":"stack","activeIndex":0,"items":[{"id":"c"}]}]}}`},
		{"nested unknown field", `{"root":{"type":"split","orientation":"vertical","ratio":0.5,"children":[{"type":"stack","activeIndex":0,"items":[{"id":"b"}],"extra":1},{"type":"stack","activeIndex":0,"items":[{"id":"c"}]}]}}`},
		{"unknown item field", `{"root":{"type":"stack","activeIndex":0,"items":[{"id":"a","icon":"x"}]}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var layout Layout
			if err := json.Unmarshal([]byte(tt.json), &layout); err == nil {
				t.Fatalf("expected decode error")
			}
		})
	}

	var layout Layout
	err := json.Unmarshal([]byte(`{"root":{"type":"stack","ratio":0.5,"activeIndex":0,"items":[{"id":"a"}]}}`), &layout)
	if !errors.Is(err, ErrMalformed) {
		t.Fatalf("error = %v, want ErrMalformed", err)
	}
}

func TestEmptyLayoutRoundTrip(t *testing.T) {
	data, err := json.Marshal(NewTree().Layout())
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	if string(data) != `{"root":null}` {
		t.Fatalf("empty layout json = %s", data)
	}
	tree := newSplitTree(t)
	if err := tree.SetLayout(Layout{}, resolveAll); err != nil {
		t.Fatalf("SetLayout() error: %v", err)
	}
	if !tree.Empty() {
		t.Fatalf("tree = %s, want empty", describe(tree))
	}
	mustInvariants(t, tree)
}

func TestSetLayoutRejectsMalformed(t *testing.T) {
	tests := []struct {
		name string
		root *NodeSnapshot
	}{
		{
			name: "diagonal orientation",
			root: &NodeSnapshot{Type: SnapshotSplit, Orientation: "diagonal", Ratio: 0.5, Children: []*NodeSnapshot{stackSnapshot(0, "x"), stackSnapshot(0, "y")}},
		},
		{
			name: "one child",
			root: &NodeSnapshot{Type: SnapshotSplit, Orientation: "vertical", Ratio: 0.5, Children: []*NodeSnapshot{stackSnapshot(0, "x")}},
		},
		{
			name: "three children",
			root: &NodeSnapshot{Type: SnapshotSplit, Orientation: "vertical", Ratio: 0.5, Children: []*NodeSnapshot{stackSnapshot(0, "x"), stackSnapshot(0, "y"), stackSnapshot(0, "z")}},
		},
		{
			name: "ratio out of range",
			root: &NodeSnapshot{Type: SnapshotSplit, Orientation: "vertical", Ratio: 1, Children: []*NodeSnapshot{stackSnapshot(0, "x"), stackSnapshot(0, "y")}},
		},
		{
			name: "nil child",
			root: &NodeSnapshot{Type: SnapshotSplit, Orientation: "vertical", Ratio: 0.5, Children: []*NodeSnapshot{stackSnapshot(0, "x"), nil}},
		},
		{name: "active index out of range", root: stackSnapshot(2, "x", "y")},
		{name: "negative active index", root: stackSnapshot(-1, "x")},
		{name: "empty stack", root: stackSnapshot(0)},
		{name: "duplicate ids", root: stackSnapshot(0, "x", "x")},
		{name: "empty id", root: stackSnapshot(0, "")},
		{name: "unknown type", root: &NodeSnapshot{Type: "grid"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := newSplitTree(t)
			before := describe(tree)
			err := tree.SetLayout(Layout{Root: tt.root}, resolveAll)
			if !errors.Is(err, ErrMalformed) {
				t.Fatalf("SetLayout() error = %v, want ErrMalformed", err)
			}
			if got := describe(tree); got != before {
				t.Fatalf("tree changed from %s to %s", before, got)
			}
		})
	}
}

func TestMalformedErrorNamesPath(t *testing.T) {
	root := &NodeSnapshot{
		Type:        SnapshotSplit,
		Orientation: "horizontal",
		Ratio:       0.5,
		Children:    []*NodeSnapshot{stackSnapshot(0, "x"), stackSnapshot(4, "y")},
	}
	err := ValidateLayout(Layout{Root: root})
	if err == nil || !strings.Contains(err.Error(), "root.children[1]") {
		t.Fatalf("ValidateLayout() error = %v", err)
	}
}

func TestSetLayoutDropsUnresolvedItems(t *testing.T) {
	tree := NewTree()
	resolve := func(id ItemID) (Item, bool) {
		if id == "x" {
			return Item{}, false
		}
		return Item{ID: id, Title: "live"}, true
	}
	if err := tree.SetLayout(Layout{Root: stackSnapshot(0, "x", "y")}, resolve); err != nil {
		t.Fatalf("SetLayout() error: %v", err)
	}
	if got := describe(tree); got != "[y*]" {
		t.Fatalf("tree = %s, want [y*]", got)
	}
	item, _ := tree.Item("y")
	if item.Title != "Y" {
		t.Fatalf("snapshot title not applied: %#v", item)
	}
	mustInvariants(t, tree)
}

func TestSetLayoutTreatsResolverPanicAsDrop(t *testing.T) {
	tree := NewTree()
	resolve := func(id ItemID) (Item, bool) {
		if id == "y" {
			panic("content gone")
		}
		return testItem(string(id)), true
	}
	if err := tree.SetLayout(Layout{Root: stackSnapshot(1, "x", "y", "z")}, resolve); err != nil {
		t.Fatalf("SetLayout() error: %v", err)
	}
	if got := describe(tree); got != "[x* z]" {
		t.Fatalf("tree = %s, want [x* z]", got)
	}
}

func TestSetLayoutPrunesEmptiedStacks(t *testing.T) {
	root := &NodeSnapshot{
		Type:        SnapshotSplit,
		Orientation: "vertical",
		Ratio:       0.4,
		Children: []*NodeSnapshot{
			stackSnapshot(0, "gone"),
			{
				Type:        SnapshotSplit,
				Orientation: "horizontal",
				Ratio:       0.6,
				Children:    []*NodeSnapshot{stackSnapshot(0, "x"), stackSnapshot(1, "y", "z")},
			},
		},
	}
	resolve := func(id ItemID) (Item, bool) {
		if id == "gone" {
			return Item{}, false
		}
		return testItem(string(id)), true
	}
	tree := NewTree()
	if err := tree.SetLayout(Layout{Root: root}, resolve); err != nil {
		t.Fatalf("SetLayout() error: %v", err)
	}
	if got := describe(tree); got != "h(0.60 [x*] [y z*])" {
		t.Fatalf("tree = %s", got)
	}
	mustInvariants(t, tree)

	if err := tree.SetLayout(Layout{Root: stackSnapshot(0, "gone")}, resolve); err != nil {
		t.Fatalf("SetLayout() error: %v", err)
	}
	if !tree.Empty() {
		t.Fatalf("tree = %s, want empty", describe(tree))
	}
}

func TestSetLayoutKeepsNodeIDsUnique(t *testing.T) {
	tree := newSplitTree(t)
	old := tree.Stacks()
	if err := tree.SetLayout(tree.Layout(), tree.ItemResolver()); err != nil {
		t.Fatalf("SetLayout() error: %v", err)
	}
	for _, id := range old {
		if _, ok := tree.Node(id); ok {
			t.Fatalf("stale node id %s reused", id)
		}
	}
}
