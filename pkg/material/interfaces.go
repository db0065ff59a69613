package material

import (
	"github.com/kazijawad/bonsai/pkg/core"
)

// TransportMode distinguishes paths traced from the camera (Radiance) from
// paths traced from a light (Importance). Non-reciprocal scattering terms,
// such as the eta² scaling of specular transmission, depend on it.
type TransportMode int

const (
	Radiance TransportMode = iota
	Importance
)

// Material computes the scattering behavior at a surface intersection.
// Implementations evaluate their textures at the interaction point and
// install a BSDF holding the resulting lobes. A material that installs a
// BSDF with no lobes describes a surface with no interaction for the
// requested directions; callers must treat that as path termination.
type Material interface {
	ComputeScatteringFunctions(si *SurfaceInteraction, mode TransportMode)
}

// Emitter is implemented by materials that emit light
type Emitter interface {
	Emit(si *SurfaceInteraction) core.Spectrum
}

// ShadingGeometry holds the possibly-perturbed shading frame at an intersection.
// The shading normal is the z axis of the BSDF's local frame; the geometric
// normal stays on the SurfaceInteraction for reflect/transmit classification.
type ShadingGeometry struct {
	Normal core.Vec3 // Shading normal
	Dpdu   core.Vec3 // Primary surface tangent
	Dpdv   core.Vec3 // Secondary surface tangent
}

// SurfaceInteraction contains information about a ray-surface intersection
type SurfaceInteraction struct {
	Point     core.Vec3 // Point of intersection
	Normal    core.Vec3 // Geometric surface normal
	Wo        core.Vec3 // Outgoing direction, toward the ray origin
	UV        core.Vec2 // Surface parameterization at the hit point
	T         float64   // Parameter t along the ray
	FrontFace bool      // Whether the ray hit the front face
	Shading   ShadingGeometry
	Material  Material // Material of the hit object
	BSDF      *BSDF    // Installed by Material.ComputeScatteringFunctions
}

// SetFaceNormal sets the geometric and shading normals from an outward
// normal, flipping both toward the incoming ray, and determines front/back
// face. Shapes call this before filling in the tangent vectors.
func (si *SurfaceInteraction) SetFaceNormal(ray core.Ray, outwardNormal core.Vec3) {
	si.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if si.FrontFace {
		si.Normal = outwardNormal
	} else {
		si.Normal = outwardNormal.Negate()
	}
	si.Shading.Normal = si.Normal
}
