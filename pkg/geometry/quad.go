package geometry

import (
	"math"

	"github.com/kazijawad/bonsai/pkg/core"
	"github.com/kazijawad/bonsai/pkg/material"
)

// Quad is a parallelogram spanned by two edge vectors from a corner
type Quad struct {
	Corner   core.Vec3 // One corner of the quad
	U        core.Vec3 // First edge vector
	V        core.Vec3 // Second edge vector
	Normal   core.Vec3 // Unit normal, computed from U × V
	Material material.Material

	d float64   // Plane equation constant: normal · p = d
	w core.Vec3 // Cached vector for barycentric coordinates
}

// NewQuad builds a quad and precomputes its plane equation
func NewQuad(corner, u, v core.Vec3, mat material.Material) *Quad {
	// w = normal / (normal · (u × v)) turns hit offsets into barycentrics
	cross := u.Cross(v)
	normal := cross.Normalize()
	w := normal.Multiply(1.0 / normal.Dot(cross))

	return &Quad{
		Corner:   corner,
		U:        u,
		V:        v,
		Normal:   normal,
		Material: mat,
		d:        normal.Dot(corner),
		w:        w,
	}
}

// Hit intersects the ray with the quad's plane and accepts the point when
// its barycentrics land inside the parallelogram
func (q *Quad) Hit(ray core.Ray, tMin, tMax float64) (*material.SurfaceInteraction, bool) {
	denom := ray.Direction.Dot(q.Normal)

	// Parallel rays never cross the plane
	if math.Abs(denom) < 1e-8 {
		return nil, false
	}

	t := (q.d - ray.Origin.Dot(q.Normal)) / denom
	if t < tMin || t > tMax {
		return nil, false
	}

	point := ray.At(t)
	offset := point.Subtract(q.Corner)

	// Barycentric coordinates double as the surface parameterization
	alpha := q.w.Dot(offset.Cross(q.V))
	beta := q.w.Dot(q.U.Cross(offset))
	if alpha < 0 || alpha > 1 || beta < 0 || beta > 1 {
		return nil, false
	}

	si := &material.SurfaceInteraction{
		T:        t,
		Point:    point,
		UV:       core.NewVec2(alpha, beta),
		Material: q.Material,
	}
	si.Wo = ray.Direction.Negate().Normalize()
	si.SetFaceNormal(ray, q.Normal)
	si.Shading.Dpdu = q.U
	si.Shading.Dpdv = q.V

	return si, true
}

// Area returns the parallelogram's surface area
func (q *Quad) Area() float64 {
	return q.U.Cross(q.V).Length()
}

// BoundingBox bounds all four corners, padded so axis-aligned quads keep a
// non-degenerate box
func (q *Quad) BoundingBox() AABB {
	corner2 := q.Corner.Add(q.U)
	corner3 := q.Corner.Add(q.V)
	corner4 := corner2.Add(q.V)
	return NewAABBFromPoints(q.Corner, corner2, corner3, corner4).Expand(0.001)
}
