package sway

import "math"

// LerpFunc interpolates between a and b. It must be continuous for t outside
// [0, 1] because overshooting easings (elastic, back) produce such values.
type LerpFunc[T any] func(a, b T, t float64) T

// LerpFloat64 is the unclamped linear interpolation of two float64 values.
func LerpFloat64(a, b, t float64) float64 {
	return a + (b-a)*t
}

// LerpFloat32 is the unclamped linear interpolation of two float32 values.
func LerpFloat32(a, b float32, t float64) float32 {
	return float32(float64(a) + float64(b-a)*t)
}

// LerpInt interpolates two ints and rounds to the nearest integer.
func LerpInt(a, b int, t float64) int {
	return int(math.Round(float64(a) + float64(b-a)*t))
}

// LerpVec2 interpolates each component of a Vec2.
func LerpVec2(a, b Vec2, t float64) Vec2 {
	return Vec2{
		X: LerpFloat64(a.X, b.X, t),
		Y: LerpFloat64(a.Y, b.Y, t),
	}
}

// LerpVec3 interpolates each component of a Vec3.
func LerpVec3(a, b Vec3, t float64) Vec3 {
	return Vec3{
		X: LerpFloat64(a.X, b.X, t),
		Y: LerpFloat64(a.Y, b.Y, t),
		Z: LerpFloat64(a.Z, b.Z, t),
	}
}

// LerpColor interpolates each channel of a Color. Channels are not clamped.
func LerpColor(a, b Color, t float64) Color {
	return Color{
		R: LerpFloat64(a.R, b.R, t),
		G: LerpFloat64(a.G, b.G, t),
		B: LerpFloat64(a.B, b.B, t),
		A: LerpFloat64(a.A, b.A, t),
	}
}

// LerpQuat interpolates two rotations linearly along the shortest arc and
// normalizes the result.
func LerpQuat(a, b Quat, t float64) Quat {
	if a.Dot(b) < 0 {
		b = b.neg()
	}
	return Quat{
		X: LerpFloat64(a.X, b.X, t),
		Y: LerpFloat64(a.Y, b.Y, t),
		Z: LerpFloat64(a.Z, b.Z, t),
		W: LerpFloat64(a.W, b.W, t),
	}.Normalize()
}

// slerpThreshold is the cosine above which SlerpQuat falls back to LerpQuat.
const slerpThreshold = 1 - 1e-6

// SlerpQuat is the unclamped spherical interpolation of two rotations along
// the shortest arc.
func SlerpQuat(a, b Quat, t float64) Quat {
	cos := a.Dot(b)
	if cos < 0 {
		b = b.neg()
		cos = -cos
	}
	if cos > slerpThreshold {
		return LerpQuat(a, b, t)
	}
	theta := math.Acos(cos)
	sin := math.Sin(theta)
	wa := math.Sin((1-t)*theta) / sin
	wb := math.Sin(t*theta) / sin
	return Quat{
		X: a.X*wa + b.X*wb,
		Y: a.Y*wa + b.Y*wb,
		Z: a.Z*wa + b.Z*wb,
		W: a.W*wa + b.W*wb,
	}
}

// LerpMat4 interpolates every element of two matrices.
func LerpMat4(a, b Mat4, t float64) Mat4 {
	var m Mat4
	for i := range m {
		m[i] = LerpFloat64(a[i], b[i], t)
	}
	return m
}
