// Package geom holds the 2D value types and the stateless collision queries
// used by the world engine. World coordinates have Y pointing up.
package geom

import "math"

// Vec2 is a 2D vector in world units
type Vec2 struct {
	X, Y float64
}

// V is shorthand for Vec2{x, y}
func V(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

func (v Vec2) Neg() Vec2 { return Vec2{-v.X, -v.Y} }

func (v Vec2) Dot(o Vec2) float64 { return v.X*o.X + v.Y*o.Y }

// Len returns the Euclidean length
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// Perp returns v rotated 90 degrees counter-clockwise
func (v Vec2) Perp() Vec2 { return Vec2{-v.Y, v.X} }

// Normalize returns the unit vector in v's direction, or the zero vector
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// IsZero reports whether both components are exactly zero
func (v Vec2) IsZero() bool { return v.X == 0 && v.Y == 0 }

// Circle is a bounding circle
type Circle struct {
	Center Vec2
	Radius float64
}
