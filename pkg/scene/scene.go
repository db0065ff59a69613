package scene

import (
	"github.com/kazijawad/bonsai/pkg/core"
	"github.com/kazijawad/bonsai/pkg/geometry"
	"github.com/kazijawad/bonsai/pkg/lights"
	"github.com/kazijawad/bonsai/pkg/material"
	"github.com/kazijawad/bonsai/pkg/renderer"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Name           string
	CameraConfig   renderer.CameraConfig
	SamplingConfig SamplingConfig
	Shapes         []geometry.Shape
	Lights         []lights.Light
	TopColor       core.Spectrum // Background gradient top
	BottomColor    core.Spectrum // Background gradient bottom
	BVH            *geometry.BVH // Built by Preprocess
}

// SamplingConfig carries a scene's preferred rendering settings. The command
// line and web server use these as defaults and may override any of them.
type SamplingConfig struct {
	Width                     int     // Image width
	Height                    int     // Image height
	SamplesPerPixel           int     // Number of rays per pixel
	MaxDepth                  int     // Maximum ray bounce depth
	RussianRouletteMinBounces int     // Minimum bounces before Russian roulette can terminate
	AdaptiveMinSamples        float64 // Minimum samples as a fraction of the pass target
	AdaptiveThreshold         float64 // Relative error threshold for convergence
}

// NewScene creates an empty scene with a black background
func NewScene(name string) *Scene {
	return &Scene{
		Name:   name,
		Shapes: make([]geometry.Shape, 0),
		Lights: make([]lights.Light, 0),
	}
}

// Preprocess prepares the scene for rendering by building the acceleration
// structure. Call it once after all shapes are added, before tracing rays.
func (s *Scene) Preprocess() {
	s.BVH = geometry.NewBVH(s.Shapes)
}

// Hit returns the closest intersection along the ray
func (s *Scene) Hit(ray core.Ray, tMin, tMax float64) (*material.SurfaceInteraction, bool) {
	if s.BVH == nil {
		return nil, false
	}
	return s.BVH.Hit(ray, tMin, tMax)
}

// GetLights returns the scene's light list
func (s *Scene) GetLights() []lights.Light {
	return s.Lights
}

// GetBackgroundColors returns the background gradient colors
func (s *Scene) GetBackgroundColors() (top, bottom core.Spectrum) {
	return s.TopColor, s.BottomColor
}

// AddQuadLight adds a rectangular area light to the scene. The light's quad
// joins the shape list so BSDF-sampled rays can hit it.
func (s *Scene) AddQuadLight(corner, u, v core.Vec3, emission core.Spectrum) {
	quadLight := lights.NewQuadLight(corner, u, v, emission)
	s.Lights = append(s.Lights, quadLight)
	s.Shapes = append(s.Shapes, quadLight.Quad)
}

// AddSphereLight adds a spherical light to the scene
func (s *Scene) AddSphereLight(center core.Vec3, radius float64, emission core.Spectrum) {
	sphereLight := lights.NewSphereLight(center, radius, emission)
	s.Lights = append(s.Lights, sphereLight)
	s.Shapes = append(s.Shapes, sphereLight.Sphere)
}

// NewGroundQuad creates a large horizontal quad centered at the given point
// with its normal pointing up. Finite ground keeps the scene bounds tight for
// the BVH, unlike an infinite plane.
func NewGroundQuad(center core.Vec3, size float64, mat material.Material) *geometry.Quad {
	corner := core.NewVec3(center.X-size/2, center.Y, center.Z-size/2)
	// u × v = (size,0,0) × (0,0,size) points down, so flip the edge order
	u := core.NewVec3(0, 0, size)
	v := core.NewVec3(size, 0, 0)
	return geometry.NewQuad(corner, u, v, mat)
}
