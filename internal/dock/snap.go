package dock

import (
	"fmt"
	"math"
)

// RatioScale is the resolution used when resizing and snapping split ratios:
// positions run from 0 to RatioScale along the split axis.
const RatioScale = 1000

type SnapConfig struct {
	Threshold  int
	Hysteresis int
	Ratios     []int
}

func DefaultSnapConfig() SnapConfig {
	return SnapConfig{
		Threshold:  30,
		Hysteresis: 15,
		Ratios:     []int{50, 33, 67, 25, 75},
	}
}

type SnapState struct {
	Active bool
	Target int
}

// SnapPosition clamps desired to [min, max] and pulls it onto the midpoint or
// a preset ratio when one is within Threshold. An active snap holds until the
// pointer moves more than Hysteresis away from it.
func SnapPosition(cfg SnapConfig, desired, min, max int, state SnapState) (int, SnapState) {
	desired = clampInt(desired, min, max)
	if state.Active && absInt(desired-state.Target) <= cfg.Hysteresis {
		return state.Target, state
	}
	if target, ok := nearestSnapTarget(cfg, desired, min, max); ok {
		return target, SnapState{Active: true, Target: target}
	}
	return desired, SnapState{}
}

func nearestSnapTarget(cfg SnapConfig, desired, min, max int) (int, bool) {
	best := 0
	bestDist := math.MaxInt
	consider := func(value int) {
		if value < min || value > max {
			return
		}
		dist := absInt(desired - value)
		if dist <= cfg.Threshold && dist < bestDist {
			best = value
			bestDist = dist
		}
	}
	consider((min + max) / 2)
	if bestDist != math.MaxInt {
		return best, true
	}
	for _, ratio := range cfg.Ratios {
		consider((max + min) * ratio / 100)
	}
	if bestDist == math.MaxInt {
		return 0, false
	}
	return best, true
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// ResizeOp moves a split's divider by Delta (in RatioScale units, positive
// grows child A).
type ResizeOp struct {
	Split     NodeID
	Delta     int
	Snap      bool
	SnapState SnapState
}

type ResizeResult struct {
	Changed   bool
	Snapped   bool
	SnapState SnapState
	Ratio     float64
}

// ResizeSplit applies op to the split and returns the new ratio. Callers
// feed SnapState back into the next op of the same gesture.
func (t *Tree) ResizeSplit(op ResizeOp, cfg SnapConfig) (ResizeResult, error) {
	split, err := t.split(op.Split)
	if err != nil {
		return ResizeResult{}, err
	}
	lo := int(math.Round(MinRatio * RatioScale))
	hi := RatioScale - lo
	current := int(math.Round(split.ratio * RatioScale))
	desired := clampInt(current+op.Delta, lo, hi)

	state := op.SnapState
	if op.Snap {
		desired, state = SnapPosition(cfg, desired, lo, hi, state)
	} else {
		state = SnapState{}
	}
	ratio := float64(desired) / RatioScale
	changed := ratio != split.ratio
	split.ratio = ratio
	return ResizeResult{Changed: changed, Snapped: state.Active, SnapState: state, Ratio: ratio}, nil
}

// SetRatio sets child A's share of a split, clamped to
// [MinRatio, 1-MinRatio].
func (t *Tree) SetRatio(id NodeID, ratio float64) error {
	split, err := t.split(id)
	if err != nil {
		return err
	}
	if math.IsNaN(ratio) {
		return fmt.Errorf("dock: split %q ratio is NaN", id)
	}
	split.ratio = math.Min(math.Max(ratio, MinRatio), 1-MinRatio)
	return nil
}

func (t *Tree) split(id NodeID) (*node, error) {
	if t == nil {
		return nil, fmt.Errorf("dock: split %q: %w", id, ErrNotFound)
	}
	n := t.nodes[id]
	if !n.isSplit() {
		return nil, fmt.Errorf("dock: split %q: %w", id, ErrNotFound)
	}
	return n, nil
}

// ParentSplit returns the split directly above a node.
func (t *Tree) ParentSplit(id NodeID) (NodeID, bool) {
	if t == nil || t.nodes[id] == nil || t.nodes[id].parent == "" {
		return "", false
	}
	return t.nodes[id].parent, true
}
