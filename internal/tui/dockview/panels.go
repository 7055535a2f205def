package dockview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"

	"github.com/regenrek/peakydock/internal/dock"
)

// Panel is the content behind a dock item: scrollable text sized to the box
// of the stack showing it.
type Panel struct {
	view viewport.Model
}

func NewPanel(body string) *Panel {
	p := &Panel{view: viewport.New(0, 0)}
	p.view.SetContent(body)
	return p
}

func (p *Panel) resize(w, h int) {
	p.view.Width = max(w, 0)
	p.view.Height = max(h, 0)
}

func (p *Panel) scroll(lines int) {
	p.view.SetYOffset(p.view.YOffset + lines)
}

func (p *Panel) lines() []string {
	if p.view.Width <= 0 || p.view.Height <= 0 {
		return nil
	}
	return strings.Split(p.view.View(), "\n")
}

func panelOf(item dock.Item) (*Panel, bool) {
	p, ok := item.Content.(*Panel)
	return p, ok && p != nil
}

// DemoItems returns the panels the demo opens with. Their ids are stable so
// saved layouts can find them again.
func DemoItems() []dock.Item {
	return []dock.Item{
		{ID: "explorer", Title: "Explorer", Tooltip: "Project files", Content: NewPanel(demoExplorer)},
		{ID: "outline", Title: "Outline", Tooltip: "Symbols in the open file", Content: NewPanel(demoOutline)},
		{ID: "main-go", Title: "main.go", Closable: true, Content: NewPanel(demoMain)},
		{ID: "readme", Title: "README.md", Closable: true, Content: NewPanel(demoReadme)},
		{ID: "terminal", Title: "Terminal", Content: NewPanel(demoTerminal)},
		{ID: "problems", Title: "Problems", Closable: true, Content: NewPanel("No problems detected.")},
	}
}

// DemoLayout places the demo items: a sidebar on the left, an editor stack
// above a tool stack on the right.
func DemoLayout() dock.Layout {
	stack := func(active int, ids ...dock.ItemID) *dock.NodeSnapshot {
		items := make([]dock.ItemSnapshot, len(ids))
		for i, id := range ids {
			items[i] = dock.ItemSnapshot{ID: id}
		}
		return &dock.NodeSnapshot{Type: dock.SnapshotStack, ActiveIndex: active, Items: items}
	}
	return dock.Layout{Root: &dock.NodeSnapshot{
		Type:        dock.SnapshotSplit,
		Orientation: dock.Horizontal.String(),
		Ratio:       0.25,
		Children: []*dock.NodeSnapshot{
			stack(0, "explorer", "outline"),
			{
				Type:        dock.SnapshotSplit,
				Orientation: dock.Vertical.String(),
				Ratio:       0.7,
				Children: []*dock.NodeSnapshot{
					stack(0, "main-go", "readme"),
					stack(0, "terminal", "problems"),
				},
			},
		},
	}}
}

func scratchItem(n int) dock.Item {
	title := fmt.Sprintf("Scratch %d", n)
	return dock.Item{
		ID:       dock.NewItemID(),
		Title:    title,
		Closable: true,
		Content:  NewPanel(title + "\n\nDrag this tab onto another stack or an edge."),
	}
}

const demoExplorer = `peakydock/
  cmd/
    peakydock/
  internal/
    dock/
    dockgeom/
    drag/
    layoutstore/
  go.mod`

const demoOutline = `func main()
type Tree
  AddItem
  MoveItem
  RemoveItem
type Controller`

const demoMain = `package main

import "os"

func main() {
	os.Exit(run(os.Args))
}`

const demoReadme = `# peakydock

Drag a tab by its title:
- onto another tab bar to move it there
- onto the edge of a panel to split it

u undo   r redo   s save   o open`

const demoTerminal = `$ go test ./...
ok   internal/dock       0.012s
ok   internal/dockgeom   0.004s
ok   internal/drag       0.006s`
