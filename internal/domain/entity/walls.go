package entity

import "github.com/younwookim/tilegrid/internal/domain/geom"

// MergePass records which consolidation pass emitted a wall box
type MergePass uint8

const (
	PassHorizontal MergePass = iota + 1
	PassVertical
	PassOrphan
)

func (p MergePass) String() string {
	switch p {
	case PassHorizontal:
		return "horizontal"
	case PassVertical:
		return "vertical"
	case PassOrphan:
		return "orphan"
	default:
		return "unknown"
	}
}

// WallSet is one generation of consolidated wall boxes. It is built once per
// map load and never edited; a new load replaces it.
type WallSet struct {
	boxes  []geom.Box
	passes []MergePass
}

// NewWallSet takes ownership of the slices. They must be the same length.
func NewWallSet(boxes []geom.Box, passes []MergePass) *WallSet {
	if len(boxes) != len(passes) {
		panic("entity: wall boxes and passes differ in length")
	}
	return &WallSet{boxes: boxes, passes: passes}
}

// Boxes returns the boxes in emission order. Callers must not modify it.
func (s *WallSet) Boxes() []geom.Box {
	return s.boxes
}

// Pass returns the pass that emitted box i
func (s *WallSet) Pass(i int) MergePass {
	return s.passes[i]
}

// Len returns the number of boxes
func (s *WallSet) Len() int {
	return len(s.boxes)
}

// Count returns how many boxes a pass emitted
func (s *WallSet) Count(p MergePass) int {
	n := 0
	for _, q := range s.passes {
		if q == p {
			n++
		}
	}
	return n
}

// CollideCircle returns the first box the circle touches, in emission order
func (s *WallSet) CollideCircle(c geom.Circle) (bool, geom.Vec2, float64) {
	for i := range s.boxes {
		if hit, n, d := geom.QueryCircleBox(c, s.boxes[i]); hit {
			return true, n, d
		}
	}
	return false, geom.Vec2{}, 0
}

// IsVisible reports whether a circle at target can be seen from observer
func (s *WallSet) IsVisible(observer, target geom.Vec2, radius float64) bool {
	return geom.IsVisible(s.boxes, observer, target, radius)
}
