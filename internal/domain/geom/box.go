package geom

import "math"

// Box is an axis-aligned bounding box. Min is the bottom-left corner.
type Box struct {
	Min, Max Vec2
}

// NewBox builds a box from its left, bottom, right and top edges
func NewBox(left, bottom, right, top float64) Box {
	return Box{Min: Vec2{left, bottom}, Max: Vec2{right, top}}
}

// Union returns the smallest box containing both
func (b Box) Union(o Box) Box {
	return Box{
		Min: Vec2{math.Min(b.Min.X, o.Min.X), math.Min(b.Min.Y, o.Min.Y)},
		Max: Vec2{math.Max(b.Max.X, o.Max.X), math.Max(b.Max.Y, o.Max.Y)},
	}
}

func (b Box) Center() Vec2 {
	return Vec2{(b.Min.X + b.Max.X) / 2, (b.Min.Y + b.Max.Y) / 2}
}

func (b Box) Width() float64 { return b.Max.X - b.Min.X }

func (b Box) Height() float64 { return b.Max.Y - b.Min.Y }

// Contains reports whether p lies inside or on the boundary
func (b Box) Contains(p Vec2) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X && p.Y >= b.Min.Y && p.Y <= b.Max.Y
}

// Overlaps reports whether the interiors of two boxes intersect
func (b Box) Overlaps(o Box) bool {
	return b.Min.X < o.Max.X && b.Max.X > o.Min.X && b.Min.Y < o.Max.Y && b.Max.Y > o.Min.Y
}
