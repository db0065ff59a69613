package renderer

import (
	"math"

	"github.com/kazijawad/bonsai/pkg/core"
)

// CameraConfig describes a camera placement. Scenes carry one of these as
// their preferred view; the renderer turns it into a Camera at a concrete
// resolution.
type CameraConfig struct {
	Center        core.Vec3 // Camera position
	LookAt        core.Vec3 // Point the camera looks at
	Up            core.Vec3 // Up direction
	VFov          float64   // Vertical field of view in degrees
	AspectRatio   float64   // Preferred aspect ratio, used when no height is given
	Aperture      float64   // Lens diameter; zero disables depth of field
	FocusDistance float64   // Zero focuses at the look-at point
}

// Camera generates primary rays through image pixels, with optional thin-lens
// depth of field.
type Camera struct {
	origin          core.Vec3
	lowerLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
	u, v            core.Vec3 // Lens plane basis
	lensRadius      float64
	width, height   int
}

// NewCamera creates a camera for the given image resolution
func NewCamera(config CameraConfig, width, height int) *Camera {
	aspectRatio := float64(width) / float64(height)

	theta := config.VFov * math.Pi / 180
	h := math.Tan(theta / 2)
	viewportHeight := 2.0 * h
	viewportWidth := aspectRatio * viewportHeight

	w := config.Center.Subtract(config.LookAt).Normalize()
	u := config.Up.Cross(w).Normalize()
	v := w.Cross(u)

	focusDistance := config.FocusDistance
	if focusDistance <= 0 {
		focusDistance = config.Center.Subtract(config.LookAt).Length()
	}

	origin := config.Center
	horizontal := u.Multiply(viewportWidth * focusDistance)
	vertical := v.Multiply(viewportHeight * focusDistance)
	lowerLeftCorner := origin.
		Subtract(horizontal.Multiply(0.5)).
		Subtract(vertical.Multiply(0.5)).
		Subtract(w.Multiply(focusDistance))

	return &Camera{
		origin:          origin,
		lowerLeftCorner: lowerLeftCorner,
		horizontal:      horizontal,
		vertical:        vertical,
		u:               u,
		v:               v,
		lensRadius:      config.Aperture / 2,
		width:           width,
		height:          height,
	}
}

// GetRay generates a ray through pixel (i, j), jittered within the pixel.
// Pixel (0, 0) is the top-left corner of the image.
func (c *Camera) GetRay(i, j int, sampler core.Sampler) core.Ray {
	jitter := sampler.Get2D()
	s := (float64(i) + jitter.X) / float64(c.width)
	t := (float64(c.height-1-j) + jitter.Y) / float64(c.height)

	origin := c.origin
	if c.lensRadius > 0 {
		rd := core.SampleConcentricDisk(sampler.Get2D()).Multiply(c.lensRadius)
		origin = origin.Add(c.u.Multiply(rd.X)).Add(c.v.Multiply(rd.Y))
	}

	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t)).
		Subtract(origin)

	return core.NewRay(origin, direction.Normalize())
}
