package geometry

import (
	"math"

	"github.com/kazijawad/bonsai/pkg/core"
	"github.com/kazijawad/bonsai/pkg/material"
)

// Sphere is an analytic sphere
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	Material material.Material
}

// NewSphere creates a sphere with the given center, radius, and material
func NewSphere(center core.Vec3, radius float64, mat material.Material) *Sphere {
	return &Sphere{Center: center, Radius: radius, Material: mat}
}

// Hit solves the ray-sphere quadratic and reports the nearest intersection
// inside [tMin, tMax]
func (s *Sphere) Hit(ray core.Ray, tMin, tMax float64) (*material.SurfaceInteraction, bool) {
	oc := ray.Origin.Subtract(s.Center)
	a := ray.Direction.LengthSquared()
	halfB := oc.Dot(ray.Direction)
	c := oc.LengthSquared() - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return nil, false
	}
	sqrtD := math.Sqrt(discriminant)

	// The smaller root comes first; fall through to the far side when the
	// origin sits inside the sphere
	root := (-halfB - sqrtD) / a
	if root < tMin || root > tMax {
		root = (-halfB + sqrtD) / a
		if root < tMin || root > tMax {
			return nil, false
		}
	}

	si := &material.SurfaceInteraction{
		T:        root,
		Point:    ray.At(root),
		Material: s.Material,
	}
	si.Wo = ray.Direction.Negate().Normalize()

	outwardNormal := si.Point.Subtract(s.Center).Multiply(1.0 / s.Radius)
	si.UV = sphereUV(outwardNormal)
	si.SetFaceNormal(ray, outwardNormal)

	// Azimuthal tangent around the polar axis; degenerates at the poles,
	// where the shading frame falls back to an arbitrary basis
	si.Shading.Dpdu = core.NewVec3(outwardNormal.Z, 0, -outwardNormal.X)
	si.Shading.Dpdv = si.Shading.Normal.Cross(si.Shading.Dpdu)

	return si, true
}

// sphereUV maps a point on the unit sphere to [0,1]² coordinates, with v
// running between the poles along the y axis.
func sphereUV(p core.Vec3) core.Vec2 {
	theta := math.Acos(clampUnit(-p.Y))
	phi := math.Atan2(-p.Z, p.X) + math.Pi
	return core.NewVec2(phi/(2*math.Pi), theta/math.Pi)
}

func clampUnit(x float64) float64 {
	if x < -1 {
		return -1
	}
	if x > 1 {
		return 1
	}
	return x
}

// BoundingBox returns the box enclosing the sphere
func (s *Sphere) BoundingBox() AABB {
	extent := core.NewVec3(s.Radius, s.Radius, s.Radius)
	return NewAABB(s.Center.Subtract(extent), s.Center.Add(extent))
}
