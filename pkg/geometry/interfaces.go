package geometry

import (
	"github.com/kazijawad/bonsai/pkg/core"
	"github.com/kazijawad/bonsai/pkg/material"
)

// Shape is anything a ray can intersect. Implementations fill in the full
// surface interaction, including the UV parameterization and tangent frame
// the shading system builds its local frame from.
type Shape interface {
	Hit(ray core.Ray, tMin, tMax float64) (*material.SurfaceInteraction, bool)
	BoundingBox() AABB
}
