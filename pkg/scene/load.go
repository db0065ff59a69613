package scene

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kazijawad/bonsai/pkg/core"
	"github.com/kazijawad/bonsai/pkg/geometry"
	"github.com/kazijawad/bonsai/pkg/loaders"
	"github.com/kazijawad/bonsai/pkg/material"
	"github.com/kazijawad/bonsai/pkg/renderer"
)

// sceneFile is the on-disk JSON scene description. Materials are declared
// once with an id and referenced by name from objects, so a wall material is
// shared rather than repeated.
type sceneFile struct {
	Name       string          `json:"name"`
	Camera     cameraFile      `json:"camera"`
	Settings   settingsFile    `json:"settings"`
	Background *backgroundFile `json:"background"`
	Materials  []materialFile  `json:"materials"`
	Objects    []objectFile    `json:"objects"`
	Lights     []lightFile     `json:"lights"`
}

type vec3File struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

type colorFile struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
}

type cameraFile struct {
	Position      vec3File `json:"position"`
	LookAt        vec3File `json:"look_at"`
	Up            vec3File `json:"up"`
	VFov          float64  `json:"vfov"`
	Aperture      float64  `json:"aperture"`
	FocusDistance float64  `json:"focus_distance"`
}

type settingsFile struct {
	Width                     int     `json:"width"`
	Height                    int     `json:"height"`
	SamplesPerPixel           int     `json:"samples_per_pixel"`
	MaxDepth                  int     `json:"max_depth"`
	RussianRouletteMinBounces int     `json:"rr_min_bounces"`
	AdaptiveMinSamples        float64 `json:"adaptive_min_samples"`
	AdaptiveThreshold         float64 `json:"adaptive_threshold"`
}

type backgroundFile struct {
	Top    colorFile `json:"top"`
	Bottom colorFile `json:"bottom"`
}

// materialFile covers every material type; which fields apply depends on
// Type. The albedo of matte, mirror, and plastic materials can come from a
// constant color, a checker pattern, or an image file, in that order of
// precedence from most specific to least: texture, checker, albedo.
type materialFile struct {
	ID      string       `json:"id"`
	Type    string       `json:"type"` // matte | mirror | metal | glass | plastic | emissive
	Albedo  *colorFile   `json:"albedo"`
	Checker *checkerFile `json:"checker"`
	Texture string       `json:"texture"` // image file path, relative to the scene file
	Sigma   float64      `json:"sigma"`   // matte roughness in degrees
	Eta     *colorFile   `json:"eta"`     // metal index of refraction
	K       *colorFile   `json:"k"`       // metal absorption coefficient
	Index   float64      `json:"index"`   // glass index of refraction
	Emit    *colorFile   `json:"emit"`    // emissive radiance
}

type checkerFile struct {
	Odd   colorFile `json:"odd"`
	Even  colorFile `json:"even"`
	Scale float64   `json:"scale"`
}

type objectFile struct {
	Type     string   `json:"type"` // sphere | quad | plane
	Material string   `json:"material"`
	Center   vec3File `json:"center"` // sphere
	Radius   float64  `json:"radius"` // sphere
	Corner   vec3File `json:"corner"` // quad
	U        vec3File `json:"u"`      // quad
	V        vec3File `json:"v"`      // quad
	Point    vec3File `json:"point"`  // plane
	Normal   vec3File `json:"normal"` // plane
}

type lightFile struct {
	Type     string    `json:"type"` // quad | sphere
	Emission colorFile `json:"emission"`
	Corner   vec3File  `json:"corner"` // quad
	U        vec3File  `json:"u"`      // quad
	V        vec3File  `json:"v"`      // quad
	Center   vec3File  `json:"center"` // sphere
	Radius   float64   `json:"radius"` // sphere
}

// Load reads a scene from a JSON file. Texture paths inside the file are
// resolved relative to the file's directory.
func Load(path string) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scene: %w", err)
	}
	defer f.Close()

	var sf sceneFile
	if err := json.NewDecoder(f).Decode(&sf); err != nil {
		return nil, fmt.Errorf("decode scene: %w", err)
	}

	return buildScene(&sf, filepath.Dir(path))
}

func buildScene(sf *sceneFile, baseDir string) (*Scene, error) {
	s := NewScene(sf.Name)

	s.CameraConfig = renderer.CameraConfig{
		Center:        sf.Camera.Position.vec3(),
		LookAt:        sf.Camera.LookAt.vec3(),
		Up:            sf.Camera.Up.vec3(),
		VFov:          sf.Camera.VFov,
		Aperture:      sf.Camera.Aperture,
		FocusDistance: sf.Camera.FocusDistance,
	}
	if s.CameraConfig.Up.IsZero() {
		s.CameraConfig.Up = core.NewVec3(0, 1, 0)
	}
	if s.CameraConfig.VFov <= 0 {
		s.CameraConfig.VFov = 40.0
	}

	s.SamplingConfig = SamplingConfig{
		Width:                     sf.Settings.Width,
		Height:                    sf.Settings.Height,
		SamplesPerPixel:           sf.Settings.SamplesPerPixel,
		MaxDepth:                  sf.Settings.MaxDepth,
		RussianRouletteMinBounces: sf.Settings.RussianRouletteMinBounces,
		AdaptiveMinSamples:        sf.Settings.AdaptiveMinSamples,
		AdaptiveThreshold:         sf.Settings.AdaptiveThreshold,
	}

	if sf.Background != nil {
		s.TopColor = sf.Background.Top.spectrum()
		s.BottomColor = sf.Background.Bottom.spectrum()
	}

	materials := make(map[string]material.Material, len(sf.Materials))
	for _, mf := range sf.Materials {
		if mf.ID == "" {
			return nil, fmt.Errorf("material without id")
		}
		if _, exists := materials[mf.ID]; exists {
			return nil, fmt.Errorf("duplicate material id %q", mf.ID)
		}
		mat, err := buildMaterial(&mf, baseDir)
		if err != nil {
			return nil, fmt.Errorf("material %q: %w", mf.ID, err)
		}
		materials[mf.ID] = mat
	}

	for i, of := range sf.Objects {
		shape, err := buildShape(&of, materials)
		if err != nil {
			return nil, fmt.Errorf("object %d: %w", i, err)
		}
		s.Shapes = append(s.Shapes, shape)
	}

	for i, lf := range sf.Lights {
		switch lf.Type {
		case "quad":
			s.AddQuadLight(lf.Corner.vec3(), lf.U.vec3(), lf.V.vec3(), lf.Emission.spectrum())
		case "sphere":
			if lf.Radius <= 0 {
				return nil, fmt.Errorf("light %d: sphere light needs a positive radius", i)
			}
			s.AddSphereLight(lf.Center.vec3(), lf.Radius, lf.Emission.spectrum())
		default:
			return nil, fmt.Errorf("light %d: unknown light type %q", i, lf.Type)
		}
	}

	return s, nil
}

// buildMaterial constructs a material from its file description
func buildMaterial(mf *materialFile, baseDir string) (material.Material, error) {
	switch mf.Type {
	case "matte":
		kd, err := albedoTexture(mf, baseDir)
		if err != nil {
			return nil, err
		}
		var sigma material.FloatTexture
		if mf.Sigma > 0 {
			sigma = material.NewConstantFloatTexture(mf.Sigma)
		}
		return material.NewMatte(kd, sigma), nil

	case "mirror":
		kr, err := albedoTexture(mf, baseDir)
		if err != nil {
			return nil, err
		}
		return material.NewMirror(kr), nil

	case "metal":
		if mf.Eta == nil || mf.K == nil {
			return nil, fmt.Errorf("metal needs eta and k")
		}
		return material.NewMetal(
			material.NewConstantTexture(mf.Eta.spectrum()),
			material.NewConstantTexture(mf.K.spectrum()),
		), nil

	case "glass":
		reflect := core.NewSpectrum(1, 1, 1)
		if mf.Albedo != nil {
			reflect = mf.Albedo.spectrum()
		}
		index := mf.Index
		if index <= 0 {
			index = 1.5
		}
		return material.NewGlass(
			material.NewConstantTexture(reflect),
			material.NewConstantTexture(reflect),
			material.NewConstantFloatTexture(index),
		), nil

	case "plastic":
		kd, err := albedoTexture(mf, baseDir)
		if err != nil {
			return nil, err
		}
		return material.NewPlastic(kd, material.NewConstantTexture(core.NewSpectrum(1, 1, 1))), nil

	case "emissive":
		if mf.Emit == nil {
			return nil, fmt.Errorf("emissive needs emit")
		}
		return material.NewEmissive(mf.Emit.spectrum()), nil

	default:
		return nil, fmt.Errorf("unknown material type %q", mf.Type)
	}
}

// albedoTexture resolves a material's diffuse texture: an image file wins
// over a checker pattern, which wins over a constant color. With none of the
// three given the material falls back to middle gray.
func albedoTexture(mf *materialFile, baseDir string) (material.Texture, error) {
	if mf.Texture != "" {
		data, err := loaders.LoadImage(filepath.Join(baseDir, mf.Texture))
		if err != nil {
			return nil, err
		}
		return material.NewImageTextureFromData(data), nil
	}
	if mf.Checker != nil {
		scale := mf.Checker.Scale
		if scale <= 0 {
			scale = 1.0
		}
		return material.NewCheckerTexture(
			material.NewConstantTexture(mf.Checker.Odd.spectrum()),
			material.NewConstantTexture(mf.Checker.Even.spectrum()),
			scale,
		), nil
	}
	if mf.Albedo != nil {
		return material.NewConstantTexture(mf.Albedo.spectrum()), nil
	}
	return material.NewConstantTexture(core.NewSpectrum(0.5, 0.5, 0.5)), nil
}

// buildShape constructs a geometric primitive from its file description
func buildShape(of *objectFile, materials map[string]material.Material) (geometry.Shape, error) {
	mat, ok := materials[of.Material]
	if !ok {
		return nil, fmt.Errorf("unknown material reference %q", of.Material)
	}

	switch of.Type {
	case "sphere":
		if of.Radius == 0 {
			return nil, fmt.Errorf("sphere needs a non-zero radius")
		}
		return geometry.NewSphere(of.Center.vec3(), of.Radius, mat), nil
	case "quad":
		return geometry.NewQuad(of.Corner.vec3(), of.U.vec3(), of.V.vec3(), mat), nil
	case "plane":
		if of.Normal.vec3().IsZero() {
			return nil, fmt.Errorf("plane needs a normal")
		}
		return geometry.NewPlane(of.Point.vec3(), of.Normal.vec3(), mat), nil
	default:
		return nil, fmt.Errorf("unknown object type %q", of.Type)
	}
}

func (v vec3File) vec3() core.Vec3 {
	return core.NewVec3(v.X, v.Y, v.Z)
}

func (c colorFile) spectrum() core.Spectrum {
	return core.NewSpectrum(c.R, c.G, c.B)
}
