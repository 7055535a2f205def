package dockview

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/regenrek/peakydock/internal/config"
	"github.com/regenrek/peakydock/internal/dock"
	"github.com/regenrek/peakydock/internal/layoutstore"
)

type clipboardSpy struct {
	writes []string
}

func (c *clipboardSpy) write(text string) error {
	c.writes = append(c.writes, text)
	return nil
}

func newTestModel(t *testing.T) (*Model, *clipboardSpy) {
	t.Helper()
	lipgloss.SetColorProfile(termenv.Ascii)
	store, err := layoutstore.NewStore(layoutstore.Config{Dir: t.TempDir()})
	if err != nil {
		t.Fatalf("NewStore() error: %v", err)
	}
	spy := &clipboardSpy{}
	m, err := New(Options{Config: config.Defaults(), Store: store, Clipboard: spy.write})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return m, spy
}

func press(m *Model, keys string) {
	for _, r := range keys {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func mouse(m *Model, action tea.MouseAction, x, y int) {
	m.Update(tea.MouseMsg{X: x, Y: y, Action: action, Button: tea.MouseButtonLeft})
}

func stackItems(t *testing.T, m *Model, item dock.ItemID) []dock.ItemID {
	t.Helper()
	stack, err := m.tree.FindStackContaining(item)
	if err != nil {
		t.Fatalf("FindStackContaining(%q) error: %v", item, err)
	}
	view, _ := m.tree.Node(stack)
	return view.Items
}

func TestNewOpensDemoLayout(t *testing.T) {
	m, _ := newTestModel(t)
	if got := len(m.tree.Stacks()); got != 3 {
		t.Fatalf("stacks = %d, want 3", got)
	}
	if got := stackItems(t, m, "main-go"); len(got) != 2 || got[1] != "readme" {
		t.Fatalf("editor stack = %v", got)
	}
	if err := m.tree.CheckInvariants(); err != nil {
		t.Fatalf("CheckInvariants() error: %v", err)
	}
}

func TestViewDrawsTabsAndStatus(t *testing.T) {
	m, _ := newTestModel(t)
	out := m.View()
	lines := strings.Split(out, "\n")
	if len(lines) != 24 {
		t.Fatalf("view rows = %d, want 24", len(lines))
	}
	if !strings.Contains(lines[0], "Explorer") || !strings.Contains(lines[0], "README.md") {
		t.Fatalf("tab row = %q", lines[0])
	}
	if !strings.Contains(lines[23], "undo") {
		t.Fatalf("status row = %q", lines[23])
	}
	if !strings.Contains(out, "╭") {
		t.Fatalf("expected rounded panel borders")
	}
}

func TestDragTabToEdgeSplitsStack(t *testing.T) {
	m, _ := newTestModel(t)
	terminal, _ := m.tree.FindStackContaining("terminal")

	mouse(m, tea.MouseActionPress, 33, 0)
	mouse(m, tea.MouseActionMotion, 40, 5)
	mouse(m, tea.MouseActionMotion, 75, 19)
	if !m.indicator.visible || !m.ghost.visible {
		t.Fatalf("expected drop indicator and ghost while dragging")
	}
	if m.ghost.title != "README.md" {
		t.Fatalf("ghost title = %q", m.ghost.title)
	}
	if out := m.View(); !strings.Contains(out, "┏") {
		t.Fatalf("drop indicator not drawn:\n%s", out)
	}
	mouse(m, tea.MouseActionRelease, 75, 19)

	if m.indicator.visible || m.ghost.visible {
		t.Fatalf("overlays left visible after drop")
	}
	if got := stackItems(t, m, "main-go"); len(got) != 1 {
		t.Fatalf("editor stack = %v, want main-go only", got)
	}
	readme, _ := m.tree.FindStackContaining("readme")
	split, ok := m.tree.ParentSplit(readme)
	if !ok {
		t.Fatalf("readme stack has no parent split")
	}
	view, _ := m.tree.Node(split)
	if view.Orientation != dock.Horizontal || view.Children[0] != terminal || view.Children[1] != readme {
		t.Fatalf("split = %+v, want terminal | readme", view)
	}
	if m.focus != readme {
		t.Fatalf("focus = %q, want %q", m.focus, readme)
	}
	if err := m.tree.CheckInvariants(); err != nil {
		t.Fatalf("CheckInvariants() error: %v", err)
	}

	press(m, "u")
	if got := stackItems(t, m, "main-go"); len(got) != 2 {
		t.Fatalf("after undo editor stack = %v", got)
	}
}

func TestClickActivatesTab(t *testing.T) {
	m, _ := newTestModel(t)
	mouse(m, tea.MouseActionPress, 33, 0)
	mouse(m, tea.MouseActionRelease, 33, 0)
	stack, _ := m.tree.FindStackContaining("readme")
	view, _ := m.tree.Node(stack)
	if active, _ := view.ActiveItem(); active != "readme" {
		t.Fatalf("active = %q, want readme", active)
	}
	if m.history.CanUndo() {
		t.Fatalf("a click must not record history")
	}
}

func TestEscAbortsDrag(t *testing.T) {
	m, _ := newTestModel(t)
	before, _ := json.Marshal(m.tree.Layout())
	mouse(m, tea.MouseActionPress, 33, 0)
	mouse(m, tea.MouseActionMotion, 75, 19)
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	mouse(m, tea.MouseActionRelease, 75, 19)
	after, _ := json.Marshal(m.tree.Layout())
	if string(before) != string(after) {
		t.Fatalf("layout changed after abort:\n%s\n%s", before, after)
	}
	if m.status.text != "drag cancelled" {
		t.Fatalf("status = %q", m.status.text)
	}
}

func TestNewCloseUndoRedo(t *testing.T) {
	m, _ := newTestModel(t)
	focus := m.focus
	press(m, "n")
	view, _ := m.tree.Node(focus)
	if len(view.Items) != 3 {
		t.Fatalf("items after new = %d, want 3", len(view.Items))
	}
	scratch := view.Items[2]

	press(m, "w")
	if _, ok := m.tree.Item(scratch); ok {
		t.Fatalf("scratch panel still open after close")
	}
	press(m, "u")
	if _, ok := m.tree.Item(scratch); !ok {
		t.Fatalf("undo did not reopen the closed panel")
	}
	press(m, "r")
	if _, ok := m.tree.Item(scratch); ok {
		t.Fatalf("redo did not close the panel again")
	}
}

func TestCloseRefusesPinnedPanel(t *testing.T) {
	m, _ := newTestModel(t)
	press(m, "w")
	if _, ok := m.tree.Item("explorer"); !ok {
		t.Fatalf("explorer closed")
	}
	if m.status.level != statusWarning {
		t.Fatalf("status = %+v, want warning", m.status)
	}
}

func TestResizeSnapsToPreset(t *testing.T) {
	m, _ := newTestModel(t)
	press(m, "]")
	root, _ := m.tree.Node(m.tree.Root())
	if root.Ratio != 0.33 {
		t.Fatalf("ratio = %v, want 0.33", root.Ratio)
	}
	if m.status.text != "snapped to 33%" {
		t.Fatalf("status = %q", m.status.text)
	}
}

func TestSavePromptStoresLayout(t *testing.T) {
	m, _ := newTestModel(t)
	press(m, "s")
	if m.mode != modeSave {
		t.Fatalf("mode = %v, want save prompt", m.mode)
	}
	press(m, "work")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.mode != modeDock {
		t.Fatalf("prompt still open")
	}
	entry, err := m.store.Get("work")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if countItems(entry.Layout) != 6 {
		t.Fatalf("saved panels = %d, want 6", countItems(entry.Layout))
	}
}

func TestLoadLayoutAndUndo(t *testing.T) {
	m, _ := newTestModel(t)
	small := dock.Layout{Root: &dock.NodeSnapshot{
		Type:  dock.SnapshotStack,
		Items: []dock.ItemSnapshot{{ID: "explorer"}, {ID: "terminal"}},
	}}
	if err := m.store.Save(context.Background(), "small", small); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	m.loadLayout("small")
	if got := len(m.tree.Items()); got != 2 {
		t.Fatalf("items = %d, want 2", got)
	}
	press(m, "u")
	if got := len(m.tree.Items()); got != 6 {
		t.Fatalf("items after undo = %d, want 6", got)
	}
}

func TestYankCopiesLayoutJSON(t *testing.T) {
	m, spy := newTestModel(t)
	press(m, "y")
	if len(spy.writes) != 1 {
		t.Fatalf("clipboard writes = %d", len(spy.writes))
	}
	var layout dock.Layout
	if err := json.Unmarshal([]byte(spy.writes[0]), &layout); err != nil {
		t.Fatalf("clipboard is not a layout: %v", err)
	}
	if err := dock.ValidateLayout(layout); err != nil {
		t.Fatalf("ValidateLayout() error: %v", err)
	}
}

func TestConfigMessageUpdatesThreshold(t *testing.T) {
	m, _ := newTestModel(t)
	cfg := config.Defaults()
	cfg.Dock.DragThreshold = 5
	m.Update(configMsg{cfg: cfg})
	if m.drag.Threshold() != 5 {
		t.Fatalf("threshold = %d, want 5", m.drag.Threshold())
	}
	if m.status.text != "config reloaded" {
		t.Fatalf("status = %q", m.status.text)
	}
}
