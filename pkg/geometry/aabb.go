package geometry

import (
	"math"

	"github.com/kazijawad/bonsai/pkg/core"
)

// AABB is an axis-aligned bounding box, the volume the BVH tests before
// descending into a subtree.
type AABB struct {
	Min core.Vec3
	Max core.Vec3
}

// NewAABB creates a box from its two extreme corners
func NewAABB(min, max core.Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// NewAABBFromPoints creates the tightest box containing all given points
func NewAABBFromPoints(points ...core.Vec3) AABB {
	if len(points) == 0 {
		return AABB{}
	}
	box := AABB{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		box = box.extend(p)
	}
	return box
}

func (aabb AABB) extend(p core.Vec3) AABB {
	return AABB{
		Min: core.NewVec3(
			math.Min(aabb.Min.X, p.X),
			math.Min(aabb.Min.Y, p.Y),
			math.Min(aabb.Min.Z, p.Z),
		),
		Max: core.NewVec3(
			math.Max(aabb.Max.X, p.X),
			math.Max(aabb.Max.Y, p.Y),
			math.Max(aabb.Max.Z, p.Z),
		),
	}
}

func axisComponent(v core.Vec3, axis int) float64 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

// Hit performs the slab test against the ray's parametric interval. Dividing
// by a zero direction component produces infinities that resolve the
// parallel case without a branch: the interval collapses when the origin
// lies outside the slab and stays open when it lies inside.
func (aabb AABB) Hit(ray core.Ray, tMin, tMax float64) bool {
	for axis := 0; axis < 3; axis++ {
		invD := 1.0 / axisComponent(ray.Direction, axis)
		origin := axisComponent(ray.Origin, axis)

		tNear := (axisComponent(aabb.Min, axis) - origin) * invD
		tFar := (axisComponent(aabb.Max, axis) - origin) * invD
		if invD < 0 {
			tNear, tFar = tFar, tNear
		}

		if tNear > tMin {
			tMin = tNear
		}
		if tFar < tMax {
			tMax = tFar
		}
		if tMax < tMin {
			return false
		}
	}
	return true
}

// Union returns the smallest box containing both boxes
func (aabb AABB) Union(other AABB) AABB {
	return aabb.extend(other.Min).extend(other.Max)
}

// Center returns the midpoint of the box
func (aabb AABB) Center() core.Vec3 {
	return aabb.Min.Add(aabb.Max).Multiply(0.5)
}

// LongestAxis returns the axis index (0, 1, 2 for x, y, z) along which the
// box extends furthest
func (aabb AABB) LongestAxis() int {
	size := aabb.Max.Subtract(aabb.Min)
	if size.X >= size.Y && size.X >= size.Z {
		return 0
	}
	if size.Y >= size.Z {
		return 1
	}
	return 2
}

// IsValid reports whether Min is at or below Max on every axis
func (aabb AABB) IsValid() bool {
	return aabb.Min.X <= aabb.Max.X &&
		aabb.Min.Y <= aabb.Max.Y &&
		aabb.Min.Z <= aabb.Max.Z
}

// Expand returns the box grown by the given margin in every direction. Flat
// shapes pad their boxes so the slab test cannot miss them edge-on.
func (aabb AABB) Expand(amount float64) AABB {
	margin := core.NewVec3(amount, amount, amount)
	return AABB{
		Min: aabb.Min.Subtract(margin),
		Max: aabb.Max.Add(margin),
	}
}
