package dockgeom

import "fmt"

// Point is a position in host coordinates (terminal cells, pixels, ...).
type Point struct {
	X int
	Y int
}

// Rect describes an axis-aligned rectangle in host coordinates.
type Rect struct {
	X int
	Y int
	W int
	H int
}

// Empty reports whether the rectangle has non-positive dimensions.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Contains reports whether the point lies within the rectangle.
func (r Rect) Contains(p Point) bool {
	if r.Empty() {
		return false
	}
	return p.X >= r.X && p.Y >= r.Y && p.X < r.X+r.W && p.Y < r.Y+r.H
}

// Intersects reports whether two rectangles overlap.
func (r Rect) Intersects(o Rect) bool {
	if r.Empty() || o.Empty() {
		return false
	}
	return r.X < o.X+o.W && o.X < r.X+r.W && r.Y < o.Y+o.H && o.Y < r.Y+r.H
}

func (r Rect) String() string {
	return fmt.Sprintf("%dx%d@%d,%d", r.W, r.H, r.X, r.Y)
}

// StackGeometry is the last-known placement of a stack as reported by the
// renderer. TabBar and Content are expected to lie inside Bounds.
type StackGeometry struct {
	Bounds  Rect
	TabBar  Rect
	Content Rect
}

// Valid reports whether the geometry can be hit-tested at all.
func (g StackGeometry) Valid() bool {
	return !g.Bounds.Empty() && (!g.TabBar.Empty() || !g.Content.Empty())
}

// ManhattanDistance returns |dx|+|dy| between two points.
func ManhattanDistance(a, b Point) int {
	return absInt(a.X-b.X) + absInt(a.Y-b.Y)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
