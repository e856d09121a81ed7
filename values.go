package sway

import "math"

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is opaque white.
var ColorWhite = Color{1, 1, 1, 1}

// Equal reports whether c and o have identical components.
func (c Color) Equal(o Color) bool {
	return c == o
}

// Vec2 is a 2D vector.
type Vec2 struct {
	X, Y float64
}

// Equal reports whether v and o have identical components.
func (v Vec2) Equal(o Vec2) bool {
	return v == o
}

// Vec3 is a 3D vector.
type Vec3 struct {
	X, Y, Z float64
}

// Equal reports whether v and o have identical components.
func (v Vec3) Equal(o Vec3) bool {
	return v == o
}

// Quat is a rotation quaternion. The zero value is not a valid rotation; use
// QuatIdentity.
type Quat struct {
	X, Y, Z, W float64
}

// QuatIdentity is the rotation that does nothing.
var QuatIdentity = Quat{W: 1}

// QuatFromAxisAngle returns the rotation of angle radians around axis.
// The axis does not need to be normalized.
func QuatFromAxisAngle(axis Vec3, angle float64) Quat {
	l := math.Sqrt(axis.X*axis.X + axis.Y*axis.Y + axis.Z*axis.Z)
	if l == 0 {
		return QuatIdentity
	}
	s := math.Sin(angle/2) / l
	return Quat{X: axis.X * s, Y: axis.Y * s, Z: axis.Z * s, W: math.Cos(angle / 2)}
}

// Equal reports whether q and o have identical components.
func (q Quat) Equal(o Quat) bool {
	return q == o
}

// Dot returns the four-component dot product.
func (q Quat) Dot(o Quat) float64 {
	return q.X*o.X + q.Y*o.Y + q.Z*o.Z + q.W*o.W
}

// Normalize returns q scaled to unit length. A zero quaternion is returned
// unchanged.
func (q Quat) Normalize() Quat {
	l := math.Sqrt(q.Dot(q))
	if l == 0 {
		return q
	}
	return Quat{q.X / l, q.Y / l, q.Z / l, q.W / l}
}

func (q Quat) neg() Quat {
	return Quat{-q.X, -q.Y, -q.Z, -q.W}
}

// Mat4 is a 4x4 matrix in row-major order.
type Mat4 [16]float64

// Mat4Identity is the identity matrix.
var Mat4Identity = Mat4{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 1, 0,
	0, 0, 0, 1,
}

// Equal reports whether m and o have identical elements.
func (m Mat4) Equal(o Mat4) bool {
	return m == o
}
