package geom

import "math"

// EdgeBias is added to edge penetrations so a resolved circle ends strictly
// outside the box instead of exactly touching it.
const EdgeBias = 0.01

// sightSliver caps how far into the target circle the sight triangles reach.
const sightSliver = 16.0

// QueryCircleBox tests a circle against a box. On a hit it returns the unit
// normal pointing out of the box towards the circle and the penetration depth.
// Touching counts as a hit.
func QueryCircleBox(c Circle, b Box) (bool, Vec2, float64) {
	cx, cy, r := c.Center.X, c.Center.Y, c.Radius
	left, bottom, right, top := b.Min.X, b.Min.Y, b.Max.X, b.Max.Y

	if cx < left-r || cx > right+r || cy < bottom-r || cy > top+r {
		return false, Vec2{}, 0
	}

	outX := cx < left || cx > right
	outY := cy < bottom || cy > top

	// Corner region: the nearest point of the box is a vertex.
	if outX && outY {
		corner := Vec2{left, bottom}
		if cx > right {
			corner.X = right
		}
		if cy > top {
			corner.Y = top
		}
		diff := c.Center.Sub(corner)
		dist := diff.Len()
		if dist > r {
			return false, Vec2{}, 0
		}
		return true, diff.Scale(1 / dist), r - dist
	}

	switch {
	case outX && cx < left:
		return true, Vec2{-1, 0}, cx - left + r + EdgeBias
	case outX:
		return true, Vec2{1, 0}, right - cx + r + EdgeBias
	case outY && cy < bottom:
		return true, Vec2{0, -1}, cy - bottom + r + EdgeBias
	case outY:
		return true, Vec2{0, 1}, top - cy + r + EdgeBias
	}

	// Center inside (or on) the box: leave through the nearest edge.
	normal, dist := Vec2{-1, 0}, cx-left
	if d := right - cx; d < dist {
		normal, dist = Vec2{1, 0}, d
	}
	if d := cy - bottom; d < dist {
		normal, dist = Vec2{0, -1}, d
	}
	if d := top - cy; d < dist {
		normal, dist = Vec2{0, 1}, d
	}
	return true, normal, dist + r + EdgeBias
}

// QueryCircleCircle tests two circles. The normal points from b towards a.
// Coincident centers report a hit with a zero normal; the caller picks an axis.
func QueryCircleCircle(a, b Circle) (bool, Vec2, float64) {
	sep := a.Center.Sub(b.Center)
	dist := sep.Len()
	depth := a.Radius + b.Radius - dist
	if depth <= 0 {
		return false, Vec2{}, 0
	}
	if dist == 0 {
		return true, Vec2{}, depth
	}
	return true, sep.Scale(1 / dist), depth
}

// IsVisible reports whether target can be seen from observer. Two thin
// triangles run from the observer to the left and right tangent edges of the
// target circle; the target is visible if either one misses every box.
func IsVisible(boxes []Box, observer, target Vec2, radius float64) bool {
	dir := observer.Sub(target).Normalize()
	if dir.IsZero() {
		return true
	}
	norm := dir.Perp()
	delta := math.Min(radius, sightSliver)
	outer := norm.Scale(radius)
	inner := norm.Scale(radius - delta)

	if clearOf(boxes, observer, target.Add(outer), target.Add(inner)) {
		return true
	}
	return clearOf(boxes, observer, target.Sub(outer), target.Sub(inner))
}

func clearOf(boxes []Box, a, b, c Vec2) bool {
	for i := range boxes {
		if TriangleIntersectsBox(a, b, c, boxes[i]) {
			return false
		}
	}
	return true
}

// TriangleIntersectsBox is a separating-axis test. Shared boundaries count
// as an intersection. Degenerate triangles behave as segments.
func TriangleIntersectsBox(a, b, c Vec2, box Box) bool {
	if math.Max(a.X, math.Max(b.X, c.X)) < box.Min.X || math.Min(a.X, math.Min(b.X, c.X)) > box.Max.X {
		return false
	}
	if math.Max(a.Y, math.Max(b.Y, c.Y)) < box.Min.Y || math.Min(a.Y, math.Min(b.Y, c.Y)) > box.Max.Y {
		return false
	}

	tri := [3]Vec2{a, b, c}
	corners := [4]Vec2{
		box.Min,
		{box.Max.X, box.Min.Y},
		box.Max,
		{box.Min.X, box.Max.Y},
	}
	for i := 0; i < 3; i++ {
		axis := tri[(i+1)%3].Sub(tri[i]).Perp()
		if axis.IsZero() {
			continue
		}
		tMin, tMax := project(tri[:], axis)
		bMin, bMax := project(corners[:], axis)
		if tMax < bMin || bMax < tMin {
			return false
		}
	}
	return true
}

func project(pts []Vec2, axis Vec2) (float64, float64) {
	lo := pts[0].Dot(axis)
	hi := lo
	for _, p := range pts[1:] {
		d := p.Dot(axis)
		if d < lo {
			lo = d
		}
		if d > hi {
			hi = d
		}
	}
	return lo, hi
}
