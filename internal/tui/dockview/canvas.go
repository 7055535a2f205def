package dockview

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/regenrek/peakydock/internal/dockgeom"
)

// cell is one terminal cell. An empty text marks the right half of a wide
// rune drawn in the cell before it.
type cell struct {
	text  string
	style *lipgloss.Style
}

// canvas is a fixed-size grid the frame is painted onto. Later draws replace
// earlier ones, so overlays are just drawn last.
type canvas struct {
	w, h  int
	cells []cell
}

func newCanvas(w, h int) *canvas {
	w, h = max(w, 0), max(h, 0)
	c := &canvas{w: w, h: h, cells: make([]cell, w*h)}
	for i := range c.cells {
		c.cells[i] = cell{text: " "}
	}
	return c
}

func (c *canvas) set(x, y int, text string, style *lipgloss.Style) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	i := y*c.w + x
	if text != "" {
		// Overwriting half of a wide rune leaves the other half blank.
		if c.cells[i].text == "" && x > 0 {
			c.cells[i-1] = cell{text: " ", style: c.cells[i-1].style}
		}
		if x+1 < c.w && c.cells[i+1].text == "" {
			c.cells[i+1] = cell{text: " ", style: c.cells[i+1].style}
		}
	}
	c.cells[i] = cell{text: text, style: style}
}

// drawText writes text from (x, y), clipped to maxW cells and the canvas. It
// returns the number of cells used.
func (c *canvas) drawText(x, y, maxW int, text string, style *lipgloss.Style) int {
	used := 0
	for _, r := range ansi.Strip(text) {
		w := ansi.StringWidth(string(r))
		if w == 0 {
			continue
		}
		if used+w > maxW || x+used+w > c.w {
			break
		}
		c.set(x+used, y, string(r), style)
		if w == 2 {
			c.set(x+used+1, y, "", style)
		}
		used += w
	}
	return used
}

func (c *canvas) fill(r dockgeom.Rect, text string, style *lipgloss.Style) {
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			c.set(x, y, text, style)
		}
	}
}

// drawBorder outlines r with b. Rects smaller than 2x2 are filled with the
// border's left edge instead.
func (c *canvas) drawBorder(r dockgeom.Rect, b lipgloss.Border, style *lipgloss.Style) {
	if r.Empty() {
		return
	}
	if r.W < 2 || r.H < 2 {
		c.fill(r, b.Left, style)
		return
	}
	right, bottom := r.X+r.W-1, r.Y+r.H-1
	for x := r.X + 1; x < right; x++ {
		c.set(x, r.Y, b.Top, style)
		c.set(x, bottom, b.Bottom, style)
	}
	for y := r.Y + 1; y < bottom; y++ {
		c.set(r.X, y, b.Left, style)
		c.set(right, y, b.Right, style)
	}
	c.set(r.X, r.Y, b.TopLeft, style)
	c.set(right, r.Y, b.TopRight, style)
	c.set(r.X, bottom, b.BottomLeft, style)
	c.set(right, bottom, b.BottomRight, style)
}

// String renders the grid row by row, styling runs of cells that share a
// style together.
func (c *canvas) String() string {
	var out strings.Builder
	var run strings.Builder
	for y := 0; y < c.h; y++ {
		if y > 0 {
			out.WriteByte('\n')
		}
		var style *lipgloss.Style
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if style != nil {
				out.WriteString(style.Render(run.String()))
			} else {
				out.WriteString(run.String())
			}
			run.Reset()
		}
		for x := 0; x < c.w; x++ {
			cl := c.cells[y*c.w+x]
			if cl.style != style {
				flush()
				style = cl.style
			}
			run.WriteString(cl.text)
		}
		flush()
	}
	return out.String()
}
