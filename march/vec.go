package march

import "math"

// Scalar is the numeric type used by march.
type Scalar = float32

// Vec3 is a 3D vector or point.
type Vec3 struct {
	X, Y, Z Scalar
}

func V3(x, y, z Scalar) Vec3 { return Vec3{X: x, Y: y, Z: z} }

func (v Vec3) Add(o Vec3) Vec3   { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3   { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Mul(s Scalar) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

func (v Vec3) Len() Scalar {
	return sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// IsZero reports whether all components are exactly zero.
func (v Vec3) IsZero() bool { return v.X == 0 && v.Y == 0 && v.Z == 0 }

// Normalize returns v scaled to unit length.
//
// The zero vector has no direction and is returned unchanged.
func Normalize(v Vec3) Vec3 {
	l := v.Len()
	if l == 0 {
		return Vec3{}
	}
	return Vec3{v.X / l, v.Y / l, v.Z / l}
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Vec3) Scalar {
	return a.Sub(b).Len()
}

// Mod is the floored modulo x - floor(x/n)*n. For n > 0 the result is in
// [0, n), negative x included.
func Mod(x, n Scalar) Scalar {
	r := x - floor(x/n)*n
	if n > 0 && r >= n {
		// Rounding carried x just below a multiple of n up to n.
		return 0
	}
	return r
}

// ModVec applies Mod to each component.
func ModVec(v Vec3, n Scalar) Vec3 {
	return Vec3{Mod(v.X, n), Mod(v.Y, n), Mod(v.Z, n)}
}

func sqrt(x Scalar) Scalar   { return Scalar(math.Sqrt(float64(x))) }
func floor(x Scalar) Scalar  { return Scalar(math.Floor(float64(x))) }
func tan(x Scalar) Scalar    { return Scalar(math.Tan(float64(x))) }
func pow(x, y Scalar) Scalar { return Scalar(math.Pow(float64(x), float64(y))) }
func isFinite(x Scalar) bool { return !math.IsNaN(float64(x)) && !math.IsInf(float64(x), 0) }
