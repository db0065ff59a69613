package scene

import (
	"github.com/kazijawad/bonsai/pkg/core"
	"github.com/kazijawad/bonsai/pkg/geometry"
	"github.com/kazijawad/bonsai/pkg/material"
	"github.com/kazijawad/bonsai/pkg/renderer"
)

// NewSpheresScene creates a material showcase: a row of spheres covering
// every material model, resting on a checkered ground under a sky gradient
// and a warm sphere light.
func NewSpheresScene() *Scene {
	s := NewScene("spheres")

	s.CameraConfig = renderer.CameraConfig{
		Center:        core.NewVec3(0, 1.4, 4.5),
		LookAt:        core.NewVec3(0, 0.5, 0),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          35.0,
		AspectRatio:   16.0 / 9.0,
		Aperture:      0.02,
		FocusDistance: 0, // focus on the look-at point
	}

	s.SamplingConfig = SamplingConfig{
		Width:                     640,
		Height:                    360,
		SamplesPerPixel:           128,
		MaxDepth:                  50,
		RussianRouletteMinBounces: 8,
		AdaptiveMinSamples:        0.15,
		AdaptiveThreshold:         0.01,
	}

	// Checkered ground: a huge sphere so the checker pattern, which keys off
	// world coordinates, never degenerates the way it would on the y=0 plane
	checker := material.NewCheckerTexture(
		material.NewConstantTexture(core.NewSpectrum(0.15, 0.15, 0.15)),
		material.NewConstantTexture(core.NewSpectrum(0.85, 0.85, 0.85)),
		4.0,
	)
	ground := geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, material.NewMatte(checker, nil))

	matte := material.NewMatte(
		material.NewConstantTexture(core.NewSpectrum(0.65, 0.2, 0.15)),
		material.NewConstantFloatTexture(20), // rough clay look
	)
	mirror := material.NewMirror(material.NewConstantTexture(core.NewSpectrum(0.9, 0.9, 0.9)))
	gold := material.NewMetal(
		material.NewConstantTexture(core.NewSpectrum(0.143, 0.375, 1.44)),
		material.NewConstantTexture(core.NewSpectrum(3.98, 2.39, 1.60)),
	)
	glass := material.NewGlass(
		material.NewConstantTexture(core.NewSpectrum(1, 1, 1)),
		material.NewConstantTexture(core.NewSpectrum(1, 1, 1)),
		material.NewConstantFloatTexture(1.5),
	)
	plastic := material.NewPlastic(
		material.NewConstantTexture(core.NewSpectrum(0.1, 0.2, 0.6)),
		material.NewConstantTexture(core.NewSpectrum(1, 1, 1)),
	)

	s.Shapes = append(s.Shapes,
		ground,
		geometry.NewSphere(core.NewVec3(-2.4, 0.5, 0), 0.5, matte),
		geometry.NewSphere(core.NewVec3(-1.2, 0.5, 0), 0.5, mirror),
		geometry.NewSphere(core.NewVec3(0, 0.5, 0), 0.5, gold),
		geometry.NewSphere(core.NewVec3(1.2, 0.5, 0), 0.5, glass),
		geometry.NewSphere(core.NewVec3(2.4, 0.5, 0), 0.5, plastic),
	)

	s.AddSphereLight(core.NewVec3(4, 5, 3), 1.0, core.NewSpectrum(12, 11, 9))

	// Sky gradient
	s.TopColor = core.NewSpectrum(0.5, 0.7, 1.0)
	s.BottomColor = core.NewSpectrum(1.0, 1.0, 1.0)

	return s
}
