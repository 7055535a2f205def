// Package drag turns pointer gestures on tabs into dock tree operations.
package drag

import (
	"context"
	"log/slog"
	"time"

	"github.com/regenrek/peakydock/internal/dock"
	"github.com/regenrek/peakydock/internal/dockgeom"
	"github.com/regenrek/peakydock/internal/logging"
)

// DefaultThreshold is the Manhattan distance a pressed tab must travel before
// a drag starts.
const DefaultThreshold = 1

const hotspotLogInterval = 250 * time.Millisecond

type State int

const (
	Idle State = iota
	Armed
	Dragging
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Armed:
		return "armed"
	case Dragging:
		return "dragging"
	default:
		return "unknown"
	}
}

// Renderer executes the visual side effects of a drag. The controller never
// draws; it only issues these commands.
type Renderer interface {
	ShowDragVisual(title string)
	MoveDragVisual(pos dockgeom.Point)
	HideDragVisual()
	ShowDropIndicator(r dockgeom.Rect)
	HideDropIndicator()
	ReparentContent(id dock.ItemID, from, to dockgeom.Rect)
}

// GeometrySource reports the last-known on-screen placement of stacks.
type GeometrySource interface {
	StackGeometry(id dock.NodeID) (dockgeom.StackGeometry, bool)
	TabRects(id dock.NodeID) []dockgeom.Rect
	Bounds() dockgeom.Rect
}

// Tree is the part of *dock.Tree the controller drives.
type Tree interface {
	Node(id dock.NodeID) (dock.NodeView, bool)
	Item(id dock.ItemID) (dock.Item, bool)
	Stacks() []dock.NodeID
	ActivateItem(id dock.ItemID) error
	MoveItem(id dock.ItemID, target dock.DropTarget) error
	FindStackContaining(id dock.ItemID) (dock.NodeID, error)
	StackRects(bounds dockgeom.Rect) map[dock.NodeID]dockgeom.Rect
}

type armedState struct {
	stack dock.NodeID
	index int
	item  dock.ItemID
	start dockgeom.Point
}

type dragState struct {
	target    dock.NodeID
	hotspot   dockgeom.Hotspot
	indicator bool
}

// Controller is the press/move/release state machine for tab drags. Only one
// gesture runs at a time; presses during a gesture are ignored. It is not
// safe for concurrent use.
type Controller struct {
	tree      Tree
	renderer  Renderer
	geometry  GeometrySource
	threshold int

	state State
	armed armedState
	drag  dragState

	// BeforeMove runs right before a drop mutates the tree, so hosts can
	// record undo history.
	BeforeMove func(id dock.ItemID, target dock.DropTarget)
}

func NewController(tree Tree, renderer Renderer, geometry GeometrySource) *Controller {
	return &Controller{
		tree:      tree,
		renderer:  renderer,
		geometry:  geometry,
		threshold: DefaultThreshold,
	}
}

func (c *Controller) State() State { return c.state }

func (c *Controller) Threshold() int { return c.threshold }

// SetThreshold changes the drag start distance; negative values mean zero.
func (c *Controller) SetThreshold(threshold int) {
	c.threshold = max(threshold, 0)
}

// Hotspot returns the last classified hotspot and its stack while dragging.
func (c *Controller) Hotspot() (dockgeom.Hotspot, dock.NodeID) {
	if c.state != Dragging {
		return dockgeom.Outside(), ""
	}
	return c.drag.hotspot, c.drag.target
}

// Item returns the item of the current gesture.
func (c *Controller) Item() (dock.ItemID, bool) {
	if c.state == Idle {
		return "", false
	}
	return c.armed.item, true
}

// PointerDown arms a gesture on a tab. It reports false when a gesture is
// already running or the tab does not exist.
func (c *Controller) PointerDown(pos dockgeom.Point, stack dock.NodeID, tabIndex int) bool {
	if c.state != Idle {
		slog.Debug("drag: press ignored", slog.String("state", c.state.String()))
		return false
	}
	view, ok := c.tree.Node(stack)
	if !ok || !view.IsStack() || tabIndex < 0 || tabIndex >= len(view.Items) {
		return false
	}
	c.armed = armedState{stack: stack, index: tabIndex, item: view.Items[tabIndex], start: pos}
	c.drag = dragState{hotspot: dockgeom.Outside()}
	c.state = Armed
	return true
}

func (c *Controller) PointerMove(pos dockgeom.Point) {
	switch c.state {
	case Armed:
		if dockgeom.ManhattanDistance(c.armed.start, pos) <= c.threshold {
			return
		}
		c.state = Dragging
		title := string(c.armed.item)
		if item, ok := c.tree.Item(c.armed.item); ok && item.Title != "" {
			title = item.Title
		}
		slog.Debug("drag: start", slog.String("item", string(c.armed.item)), slog.String("stack", string(c.armed.stack)))
		c.renderer.ShowDragVisual(title)
		c.track(pos)
	case Dragging:
		c.track(pos)
	}
}

func (c *Controller) track(pos dockgeom.Point) {
	c.renderer.MoveDragVisual(pos)
	target, hotspot := c.classify(pos)
	if target == c.drag.target && hotspot == c.drag.hotspot {
		return
	}
	c.drag.target = target
	c.drag.hotspot = hotspot
	logging.LogEvery(context.Background(), "drag.hotspot", hotspotLogInterval, slog.LevelDebug, "drag: hotspot",
		slog.String("stack", string(target)), slog.String("hotspot", hotspot.String()))
	if !hotspot.IsOutside() {
		geom, _ := c.geometry.StackGeometry(target)
		if rect, ok := dockgeom.IndicatorRect(hotspot, geom, c.geometry.TabRects(target)); ok {
			c.renderer.ShowDropIndicator(rect)
			c.drag.indicator = true
			return
		}
	}
	c.hideIndicator()
}

// classify tries stacks in traversal order and returns the first one that
// accepts the position.
func (c *Controller) classify(pos dockgeom.Point) (dock.NodeID, dockgeom.Hotspot) {
	for _, id := range c.tree.Stacks() {
		geom, ok := c.geometry.StackGeometry(id)
		if !ok {
			continue
		}
		if hotspot := dockgeom.Classify(pos, geom, c.geometry.TabRects(id)); !hotspot.IsOutside() {
			return id, hotspot
		}
	}
	return "", dockgeom.Outside()
}

// PointerUp ends the gesture. A press that never crossed the threshold is a
// click and activates the tab. A drag drops the item on the last classified
// hotspot, if any.
func (c *Controller) PointerUp(pos dockgeom.Point) error {
	switch c.state {
	case Armed:
		item := c.armed.item
		c.reset()
		return c.tree.ActivateItem(item)
	case Dragging:
		armed, drag := c.armed, c.drag
		var err error
		if !drag.hotspot.IsOutside() && drag.target != "" {
			err = c.drop(armed, drag)
		}
		c.hideIndicator()
		c.renderer.HideDragVisual()
		c.reset()
		return err
	default:
		return nil
	}
}

func (c *Controller) drop(armed armedState, drag dragState) error {
	target := dock.DropTarget{Stack: drag.target, Hotspot: drag.hotspot}
	from, _ := c.geometry.StackGeometry(armed.stack)
	if c.BeforeMove != nil {
		c.BeforeMove(armed.item, target)
	}
	if err := c.tree.MoveItem(armed.item, target); err != nil {
		slog.Warn("drag: drop failed", slog.String("item", string(armed.item)), slog.String("target", target.String()), slog.Any("err", err))
		return err
	}
	stack, err := c.tree.FindStackContaining(armed.item)
	if err != nil {
		return err
	}
	to := c.tree.StackRects(c.geometry.Bounds())[stack]
	slog.Debug("drag: dropped", slog.String("item", string(armed.item)), slog.String("target", target.String()))
	c.renderer.ReparentContent(armed.item, from.Bounds, to)
	return nil
}

// Abort cancels the gesture without touching the tree.
func (c *Controller) Abort() {
	if c.state == Dragging {
		c.hideIndicator()
		c.renderer.HideDragVisual()
		slog.Debug("drag: aborted", slog.String("item", string(c.armed.item)))
	}
	c.reset()
}

func (c *Controller) hideIndicator() {
	if !c.drag.indicator {
		return
	}
	c.drag.indicator = false
	c.renderer.HideDropIndicator()
}

func (c *Controller) reset() {
	c.state = Idle
	c.armed = armedState{}
	c.drag = dragState{hotspot: dockgeom.Outside()}
}
