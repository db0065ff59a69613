package geometry

import (
	"math"
	"testing"

	"github.com/kazijawad/bonsai/pkg/core"
	"github.com/kazijawad/bonsai/pkg/material"
)

func testMaterial() material.Material {
	return material.NewMatte(material.NewConstantTexture(core.NewUniformSpectrum(0.5)), nil)
}

func TestSphere_HitFromOutside(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1, testMaterial())
	ray := core.NewRay(core.NewVec3(-5, 0, 0), core.NewVec3(1, 0, 0))

	si, hit := sphere.Hit(ray, 0.001, math.Inf(1))
	if !hit {
		t.Fatal("Expected a hit")
	}

	if math.Abs(si.T-4) > 1e-9 {
		t.Errorf("T: got %f, expected 4", si.T)
	}
	if si.Point.Subtract(core.NewVec3(-1, 0, 0)).Length() > 1e-9 {
		t.Errorf("Point: got %v, expected (-1, 0, 0)", si.Point)
	}
	if !si.FrontFace {
		t.Error("Hit from outside should be front face")
	}
	if si.Normal.Subtract(core.NewVec3(-1, 0, 0)).Length() > 1e-9 {
		t.Errorf("Normal: got %v, expected (-1, 0, 0)", si.Normal)
	}
	if si.Wo.Subtract(core.NewVec3(-1, 0, 0)).Length() > 1e-9 {
		t.Errorf("Wo should point back along the ray, got %v", si.Wo)
	}
}

func TestSphere_HitFromInside(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1, testMaterial())
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0))

	si, hit := sphere.Hit(ray, 0.001, math.Inf(1))
	if !hit {
		t.Fatal("Expected a hit")
	}

	if si.FrontFace {
		t.Error("Hit from inside should be back face")
	}
	// Normal flips toward the ray origin
	if si.Normal.Subtract(core.NewVec3(-1, 0, 0)).Length() > 1e-9 {
		t.Errorf("Normal: got %v, expected (-1, 0, 0)", si.Normal)
	}
}

func TestSphere_Miss(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1, testMaterial())
	ray := core.NewRay(core.NewVec3(-5, 3, 0), core.NewVec3(1, 0, 0))

	if _, hit := sphere.Hit(ray, 0.001, math.Inf(1)); hit {
		t.Error("Ray passing above the sphere should miss")
	}
}

func TestSphere_RangeSkipsNearRoot(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1, testMaterial())
	ray := core.NewRay(core.NewVec3(-5, 0, 0), core.NewVec3(1, 0, 0))

	// tMin past the near intersection picks up the far one
	si, hit := sphere.Hit(ray, 4.5, math.Inf(1))
	if !hit {
		t.Fatal("Expected the far intersection")
	}
	if math.Abs(si.T-6) > 1e-9 {
		t.Errorf("T: got %f, expected 6", si.T)
	}

	// Window excluding both roots misses
	if _, hit := sphere.Hit(ray, 4.5, 5.5); hit {
		t.Error("Window between the roots should miss")
	}
}

func TestSphere_UVMapping(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1, testMaterial())

	tests := []struct {
		name      string
		origin    core.Vec3
		direction core.Vec3
		expected  core.Vec2
	}{
		{"equator +x", core.NewVec3(5, 0, 0), core.NewVec3(-1, 0, 0), core.NewVec2(0.5, 0.5)},
		{"north pole", core.NewVec3(0, 5, 0), core.NewVec3(0, -1, 0), core.NewVec2(0.5, 1)},
		{"south pole", core.NewVec3(0, -5, 0), core.NewVec3(0, 1, 0), core.NewVec2(0.5, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			si, hit := sphere.Hit(core.NewRay(tt.origin, tt.direction), 0.001, math.Inf(1))
			if !hit {
				t.Fatal("Expected a hit")
			}
			if math.Abs(si.UV.Y-tt.expected.Y) > 1e-9 {
				t.Errorf("V: got %f, expected %f", si.UV.Y, tt.expected.Y)
			}
			if tt.name == "equator +x" && math.Abs(si.UV.X-tt.expected.X) > 1e-9 {
				t.Errorf("U: got %f, expected %f", si.UV.X, tt.expected.X)
			}
		})
	}
}

func TestSphere_TangentPerpendicularToNormal(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 2, testMaterial())
	ray := core.NewRay(core.NewVec3(5, 1, 1), core.NewVec3(-1, -0.1, -0.15).Normalize())

	si, hit := sphere.Hit(ray, 0.001, math.Inf(1))
	if !hit {
		t.Fatal("Expected a hit")
	}
	if math.Abs(si.Shading.Dpdu.Dot(si.Normal)) > 1e-9 {
		t.Errorf("Tangent %v not perpendicular to normal %v", si.Shading.Dpdu, si.Normal)
	}
}

func TestSphere_BoundingBox(t *testing.T) {
	sphere := NewSphere(core.NewVec3(1, 2, 3), 2, testMaterial())
	box := sphere.BoundingBox()

	if box.Min != core.NewVec3(-1, 0, 1) || box.Max != core.NewVec3(3, 4, 5) {
		t.Errorf("BoundingBox: got %v to %v", box.Min, box.Max)
	}
}
