package scene

import (
	"github.com/kazijawad/bonsai/pkg/core"
	"github.com/kazijawad/bonsai/pkg/geometry"
	"github.com/kazijawad/bonsai/pkg/material"
	"github.com/kazijawad/bonsai/pkg/renderer"
)

// NewCornellScene creates a classic Cornell box with quad walls, a ceiling
// area light, and a metal and a glass sphere.
func NewCornellScene() *Scene {
	s := NewScene("cornell")

	s.CameraConfig = renderer.CameraConfig{
		Center:      core.NewVec3(278, 278, -800),
		LookAt:      core.NewVec3(278, 278, 0),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        40.0,
		AspectRatio: 1.0,
	}

	s.SamplingConfig = SamplingConfig{
		Width:                     400,
		Height:                    400,
		SamplesPerPixel:           128,
		MaxDepth:                  25,
		RussianRouletteMinBounces: 4,
		AdaptiveMinSamples:        0.15,
		AdaptiveThreshold:         0.01,
	}

	white := material.NewMatte(material.NewConstantTexture(core.NewSpectrum(0.73, 0.73, 0.73)), nil)
	red := material.NewMatte(material.NewConstantTexture(core.NewSpectrum(0.65, 0.05, 0.05)), nil)
	green := material.NewMatte(material.NewConstantTexture(core.NewSpectrum(0.12, 0.45, 0.15)), nil)

	// Standard 555-unit box
	boxSize := 555.0

	floor := geometry.NewQuad(
		core.NewVec3(0, 0, 0),
		core.NewVec3(boxSize, 0, 0),
		core.NewVec3(0, 0, boxSize),
		white,
	)
	ceiling := geometry.NewQuad(
		core.NewVec3(0, boxSize, 0),
		core.NewVec3(boxSize, 0, 0),
		core.NewVec3(0, 0, boxSize),
		white,
	)
	backWall := geometry.NewQuad(
		core.NewVec3(0, 0, boxSize),
		core.NewVec3(boxSize, 0, 0),
		core.NewVec3(0, boxSize, 0),
		white,
	)
	leftWall := geometry.NewQuad(
		core.NewVec3(0, 0, 0),
		core.NewVec3(0, 0, boxSize),
		core.NewVec3(0, boxSize, 0),
		red,
	)
	rightWall := geometry.NewQuad(
		core.NewVec3(boxSize, 0, 0),
		core.NewVec3(0, boxSize, 0),
		core.NewVec3(0, 0, boxSize),
		green,
	)

	s.Shapes = append(s.Shapes, floor, ceiling, backWall, leftWall, rightWall)

	// Ceiling light slightly below the ceiling, emitting downward: the quad
	// normal is u × v = (0,-1,0), and quad lights emit from their front face.
	lightSize := 130.0
	lightOffset := (boxSize - lightSize) / 2.0
	s.AddQuadLight(
		core.NewVec3(lightOffset, boxSize-1, lightOffset),
		core.NewVec3(lightSize, 0, 0),
		core.NewVec3(0, 0, lightSize),
		core.NewSpectrum(15.0, 15.0, 15.0),
	)

	// Silver conductor sphere on the left, glass on the right
	silver := material.NewMetal(
		material.NewConstantTexture(core.NewSpectrum(0.155, 0.117, 0.138)),
		material.NewConstantTexture(core.NewSpectrum(4.83, 3.12, 2.15)),
	)
	glass := material.NewGlass(
		material.NewConstantTexture(core.NewSpectrum(1, 1, 1)),
		material.NewConstantTexture(core.NewSpectrum(1, 1, 1)),
		material.NewConstantFloatTexture(1.5),
	)

	s.Shapes = append(s.Shapes,
		geometry.NewSphere(core.NewVec3(185, 82.5, 169), 82.5, silver),
		geometry.NewSphere(core.NewVec3(370, 90, 351), 90, glass),
	)

	return s
}
