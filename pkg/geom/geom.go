// Package geom provides the small set of 2D primitives used by the layout
// algorithms: a vector with the usual arithmetic and an axis-aligned box.
package geom

import "math"

// Vec is a 2D vector or point.
type Vec struct {
	X, Y float64
}

// Add returns v+o.
func (v Vec) Add(o Vec) Vec { return Vec{v.X + o.X, v.Y + o.Y} }

// Sub returns v-o.
func (v Vec) Sub(o Vec) Vec { return Vec{v.X - o.X, v.Y - o.Y} }

// Scale returns v multiplied by s.
func (v Vec) Scale(s float64) Vec { return Vec{v.X * s, v.Y * s} }

// Len returns the Euclidean length of v.
func (v Vec) Len() float64 { return math.Hypot(v.X, v.Y) }

// IsZero reports whether both components are exactly zero.
func (v Vec) IsZero() bool { return v.X == 0 && v.Y == 0 }

// IsFinite reports whether neither component is NaN or infinite.
func (v Vec) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

// Clamp returns v with its length limited to max, preserving direction.
func (v Vec) Clamp(max float64) Vec {
	if l := v.Len(); l > max && l > 0 {
		return v.Scale(max / l)
	}
	return v
}

// Box is an axis-aligned rectangle spanning [Min, Max].
type Box struct {
	Min, Max Vec
}

// NewBox returns the box with top-left corner (x, y) and the given size.
func NewBox(x, y, w, h float64) Box {
	return Box{Min: Vec{x, y}, Max: Vec{x + w, y + h}}
}

// Width returns the horizontal extent.
func (b Box) Width() float64 { return b.Max.X - b.Min.X }

// Height returns the vertical extent.
func (b Box) Height() float64 { return b.Max.Y - b.Min.Y }

// Center returns the midpoint of the box.
func (b Box) Center() Vec {
	return Vec{(b.Min.X + b.Max.X) / 2, (b.Min.Y + b.Max.Y) / 2}
}

// Inset shrinks the box by m on every side. If the box is too small to
// shrink, both bounds collapse onto the center line of that axis.
func (b Box) Inset(m float64) Box {
	out := Box{Min: Vec{b.Min.X + m, b.Min.Y + m}, Max: Vec{b.Max.X - m, b.Max.Y - m}}
	if out.Max.X < out.Min.X {
		c := (b.Min.X + b.Max.X) / 2
		out.Min.X, out.Max.X = c, c
	}
	if out.Max.Y < out.Min.Y {
		c := (b.Min.Y + b.Max.Y) / 2
		out.Min.Y, out.Max.Y = c, c
	}
	return out
}

// Contains reports whether p lies inside b, bounds included.
func (b Box) Contains(p Vec) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X && p.Y >= b.Min.Y && p.Y <= b.Max.Y
}

// ClampPoint returns p moved to the nearest point inside b.
func (b Box) ClampPoint(p Vec) Vec {
	return Vec{
		X: math.Max(b.Min.X, math.Min(b.Max.X, p.X)),
		Y: math.Max(b.Min.Y, math.Min(b.Max.Y, p.Y)),
	}
}

// Union returns the smallest box containing both b and o.
func (b Box) Union(o Box) Box {
	return Box{
		Min: Vec{math.Min(b.Min.X, o.Min.X), math.Min(b.Min.Y, o.Min.Y)},
		Max: Vec{math.Max(b.Max.X, o.Max.X), math.Max(b.Max.Y, o.Max.Y)},
	}
}
