package layouts

import (
	"fmt"
	"strings"

	"github.com/regenrek/peakydock/internal/dock"
)

// RenderTree draws a layout as an indented tree, one node per line. The
// active item of each stack is marked with *.
func RenderTree(layout dock.Layout) string {
	if layout.Root == nil {
		return "(empty)\n"
	}
	var b strings.Builder
	renderNode(&b, layout.Root, "", "")
	return b.String()
}

func renderNode(b *strings.Builder, n *dock.NodeSnapshot, first, rest string) {
	b.WriteString(first)
	switch n.Type {
	case dock.SnapshotSplit:
		fmt.Fprintf(b, "split %s %.2f\n", n.Orientation, n.Ratio)
		for i, child := range n.Children {
			if i == len(n.Children)-1 {
				renderNode(b, child, rest+"└─ ", rest+"   ")
			} else {
				renderNode(b, child, rest+"├─ ", rest+"│  ")
			}
		}
	default:
		names := make([]string, len(n.Items))
		for i, item := range n.Items {
			names[i] = string(item.ID)
			if item.Title != "" && item.Title != names[i] {
				names[i] += " (" + item.Title + ")"
			}
			if i == n.ActiveIndex {
				names[i] += "*"
			}
		}
		fmt.Fprintf(b, "stack [%s]\n", strings.Join(names, ", "))
	}
}
