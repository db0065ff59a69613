package core

import (
	"math"
)

// Vec3 is a 3-component vector used for points, directions, and normals
type Vec3 struct {
	X, Y, Z float64
}

// NewVec3 constructs a vector from its components
func NewVec3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Add returns v + other
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

// Subtract returns v - other
func (v Vec3) Subtract(other Vec3) Vec3 {
	return Vec3{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

// Multiply returns v scaled by scalar
func (v Vec3) Multiply(scalar float64) Vec3 {
	return Vec3{v.X * scalar, v.Y * scalar, v.Z * scalar}
}

// MultiplyVec returns the component-wise product of two vectors
func (v Vec3) MultiplyVec(other Vec3) Vec3 {
	return Vec3{v.X * other.X, v.Y * other.Y, v.Z * other.Z}
}

// Negate returns -v
func (v Vec3) Negate() Vec3 {
	return Vec3{-v.X, -v.Y, -v.Z}
}

// Dot returns the inner product of two vectors
func (v Vec3) Dot(other Vec3) float64 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// AbsDot returns |v · other|
func (v Vec3) AbsDot(other Vec3) float64 {
	return math.Abs(v.Dot(other))
}

// Cross returns the cross product v × other
func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3{
		v.Y*other.Z - v.Z*other.Y,
		v.Z*other.X - v.X*other.Z,
		v.X*other.Y - v.Y*other.X,
	}
}

// Length returns the Euclidean norm
func (v Vec3) Length() float64 {
	return math.Sqrt(v.LengthSquared())
}

// LengthSquared returns the squared norm without the square root
func (v Vec3) LengthSquared() float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

// Normalize returns the unit vector pointing the same way. The zero vector
// normalizes to itself.
func (v Vec3) Normalize() Vec3 {
	length := v.Length()
	if length == 0 {
		return Vec3{}
	}
	return Vec3{v.X / length, v.Y / length, v.Z / length}
}

// Faceforward flips v when it points against reference, so the result always
// lies in the reference hemisphere
func (v Vec3) Faceforward(reference Vec3) Vec3 {
	if v.Dot(reference) < 0 {
		return v.Negate()
	}
	return v
}

// IsZero reports whether every component is exactly zero
func (v Vec3) IsZero() bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}

// IsFinite reports whether no component is NaN or infinite
func (v Vec3) IsFinite() bool {
	for _, c := range [3]float64{v.X, v.Y, v.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// CoordinateSystem builds two unit vectors completing an orthonormal frame
// around w. w must already be normalized.
func CoordinateSystem(w Vec3) (u, v Vec3) {
	axis := NewVec3(1, 0, 0)
	if math.Abs(w.X) > 0.1 {
		axis = NewVec3(0, 1, 0)
	}
	u = axis.Cross(w).Normalize()
	v = w.Cross(u)
	return u, v
}

// Vec2 is a 2-component vector, most often a UV coordinate or a sample point
type Vec2 struct {
	X, Y float64
}

// NewVec2 constructs a 2D vector from its components
func NewVec2(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Multiply returns v scaled by scalar
func (v Vec2) Multiply(scalar float64) Vec2 {
	return Vec2{v.X * scalar, v.Y * scalar}
}

// Ray is a half-line with an origin and a direction. The direction is not
// required to be unit length.
type Ray struct {
	Origin    Vec3
	Direction Vec3
}

// NewRay constructs a ray
func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}
