package geometry

import (
	"math"

	"github.com/kazijawad/bonsai/pkg/core"
	"github.com/kazijawad/bonsai/pkg/material"
)

// Plane is an infinite plane through a point with a given normal
type Plane struct {
	Point    core.Vec3 // A point on the plane
	Normal   core.Vec3 // Unit normal
	Material material.Material

	// Tangents spanning the plane, used for the UV parameterization
	tangent, bitangent core.Vec3
}

// NewPlane normalizes the normal and derives a tangent basis for UVs
func NewPlane(point, normal core.Vec3, mat material.Material) *Plane {
	normal = normal.Normalize()
	tangent, bitangent := core.CoordinateSystem(normal)

	return &Plane{
		Point:     point,
		Normal:    normal,
		Material:  mat,
		tangent:   tangent,
		bitangent: bitangent,
	}
}

// Hit intersects the ray with the plane. Rays running parallel to the
// surface are treated as misses.
func (p *Plane) Hit(ray core.Ray, tMin, tMax float64) (*material.SurfaceInteraction, bool) {
	denom := ray.Direction.Dot(p.Normal)
	if math.Abs(denom) < 1e-8 {
		return nil, false
	}

	t := p.Point.Subtract(ray.Origin).Dot(p.Normal) / denom
	if t < tMin || t > tMax {
		return nil, false
	}

	point := ray.At(t)
	offset := point.Subtract(p.Point)

	si := &material.SurfaceInteraction{
		T:        t,
		Point:    point,
		UV:       core.NewVec2(offset.Dot(p.tangent), offset.Dot(p.bitangent)),
		Material: p.Material,
	}
	si.Wo = ray.Direction.Negate().Normalize()
	si.SetFaceNormal(ray, p.Normal)
	si.Shading.Dpdu = p.tangent
	si.Shading.Dpdv = p.bitangent

	return si, true
}

// BoundingBox approximates the infinite plane with a huge box. Axis-aligned
// planes get a thin slab instead, which keeps the BVH effective for floors
// and walls.
func (p *Plane) BoundingBox() AABB {
	const extent = 1e6
	const thickness = 0.001

	lo := core.NewVec3(-extent, -extent, -extent)
	hi := core.NewVec3(extent, extent, extent)

	switch {
	case math.Abs(p.Normal.X) > 1-1e-9:
		lo.X, hi.X = p.Point.X-thickness, p.Point.X+thickness
	case math.Abs(p.Normal.Y) > 1-1e-9:
		lo.Y, hi.Y = p.Point.Y-thickness, p.Point.Y+thickness
	case math.Abs(p.Normal.Z) > 1-1e-9:
		lo.Z, hi.Z = p.Point.Z-thickness, p.Point.Z+thickness
	}
	return NewAABB(lo, hi)
}
