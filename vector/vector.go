// Package vector provides a 2D vector value type.
package vector

import "math"

// Vec2 is a 2D vector. Operations return new values and never modify
// the receiver.
type Vec2 struct {
	X, Y float64
}

func Zero() Vec2 { return Vec2{} }
func One() Vec2  { return Vec2{1, 1} }

func (v Vec2) Add(u Vec2) Vec2 { return Vec2{v.X + u.X, v.Y + u.Y} }
func (v Vec2) Sub(u Vec2) Vec2 { return Vec2{v.X - u.X, v.Y - u.Y} }
func (v Vec2) Mul(u Vec2) Vec2 { return Vec2{v.X * u.X, v.Y * u.Y} }

// Div divides component-wise. Division by a zero component follows
// IEEE 754 and yields an infinity or NaN.
func (v Vec2) Div(u Vec2) Vec2 { return Vec2{v.X / u.X, v.Y / u.Y} }

// Scale multiplies both components by s
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

func (v Vec2) Dot(u Vec2) float64 { return v.X*u.X + v.Y*u.Y }

// Delta returns the vector from u to v
func (v Vec2) Delta(u Vec2) Vec2 { return v.Sub(u) }

// Len returns the euclidean length of v
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

func (v Vec2) XY() Vec2 { return v }
func (v Vec2) YX() Vec2 { return Vec2{v.Y, v.X} }
func (v Vec2) XX() Vec2 { return Vec2{v.X, v.X} }
func (v Vec2) YY() Vec2 { return Vec2{v.Y, v.Y} }
