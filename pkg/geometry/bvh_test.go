package geometry

import (
	"math"
	"math/rand"
	"testing"

	"github.com/kazijawad/bonsai/pkg/core"
	"github.com/kazijawad/bonsai/pkg/material"
)

func TestAABB_Hit(t *testing.T) {
	box := NewAABB(core.NewVec3(-1, -1, -1), core.NewVec3(1, 1, 1))

	tests := []struct {
		name     string
		ray      core.Ray
		expected bool
	}{
		{"through center", core.NewRay(core.NewVec3(-5, 0, 0), core.NewVec3(1, 0, 0)), true},
		{"misses above", core.NewRay(core.NewVec3(-5, 2, 0), core.NewVec3(1, 0, 0)), false},
		{"parallel inside slab", core.NewRay(core.NewVec3(-5, 0.5, 0.5), core.NewVec3(1, 0, 0)), true},
		{"parallel outside slab", core.NewRay(core.NewVec3(-5, 1.5, 0), core.NewVec3(1, 0, 0)), false},
		{"diagonal", core.NewRay(core.NewVec3(-2, -2, -2), core.NewVec3(1, 1, 1).Normalize()), true},
		{"pointing away", core.NewRay(core.NewVec3(-5, 0, 0), core.NewVec3(-1, 0, 0)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := box.Hit(tt.ray, 0.001, math.Inf(1)); got != tt.expected {
				t.Errorf("Hit: got %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestAABB_UnionAndAxis(t *testing.T) {
	a := NewAABB(core.NewVec3(0, 0, 0), core.NewVec3(1, 1, 1))
	b := NewAABB(core.NewVec3(2, -1, 0), core.NewVec3(3, 0.5, 1))

	union := a.Union(b)
	if union.Min != core.NewVec3(0, -1, 0) || union.Max != core.NewVec3(3, 1, 1) {
		t.Errorf("Union: got %v to %v", union.Min, union.Max)
	}
	if union.LongestAxis() != 0 {
		t.Errorf("LongestAxis: got %d, expected 0", union.LongestAxis())
	}
	if !union.IsValid() {
		t.Error("Union of valid boxes should be valid")
	}
}

func TestBVH_Empty(t *testing.T) {
	bvh := NewBVH(nil)
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0))
	if _, hit := bvh.Hit(ray, 0.001, math.Inf(1)); hit {
		t.Error("Empty BVH should never hit")
	}
}

func TestBVH_MatchesLinearSearch(t *testing.T) {
	random := rand.New(rand.NewSource(42))
	mat := testMaterial()

	// A scattered cloud of spheres, more than one leaf's worth
	var shapes []Shape
	for i := 0; i < 100; i++ {
		center := core.NewVec3(
			random.Float64()*20-10,
			random.Float64()*20-10,
			random.Float64()*20-10,
		)
		shapes = append(shapes, NewSphere(center, 0.3+random.Float64()*0.5, mat))
	}
	bvh := NewBVH(shapes)

	for i := 0; i < 500; i++ {
		origin := core.NewVec3(
			random.Float64()*30-15,
			random.Float64()*30-15,
			random.Float64()*30-15,
		)
		direction := core.UniformSampleSphere(core.NewVec2(random.Float64(), random.Float64()))
		ray := core.NewRay(origin, direction)

		// Reference: linear scan for the closest hit
		var want *material.SurfaceInteraction
		closest := math.Inf(1)
		for _, shape := range shapes {
			if hit, isHit := shape.Hit(ray, 0.001, closest); isHit {
				closest = hit.T
				want = hit
			}
		}

		got, gotHit := bvh.Hit(ray, 0.001, math.Inf(1))
		if gotHit != (want != nil) {
			t.Fatalf("Ray %d: BVH hit %v, linear hit %v", i, gotHit, want != nil)
		}
		if gotHit && math.Abs(got.T-want.T) > 1e-9 {
			t.Fatalf("Ray %d: BVH t %f, linear t %f", i, got.T, want.T)
		}
	}
}

func TestBVH_ReturnsClosestHit(t *testing.T) {
	mat := testMaterial()
	shapes := []Shape{
		NewSphere(core.NewVec3(10, 0, 0), 1, mat),
		NewSphere(core.NewVec3(5, 0, 0), 1, mat),
		NewSphere(core.NewVec3(15, 0, 0), 1, mat),
	}
	bvh := NewBVH(shapes)

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0))
	si, hit := bvh.Hit(ray, 0.001, math.Inf(1))
	if !hit {
		t.Fatal("Expected a hit")
	}
	if math.Abs(si.T-4) > 1e-9 {
		t.Errorf("Closest hit t: got %f, expected 4", si.T)
	}
}

func TestBVH_DoesNotReorderInput(t *testing.T) {
	mat := testMaterial()
	shapes := make([]Shape, 50)
	for i := range shapes {
		shapes[i] = NewSphere(core.NewVec3(float64(i), 0, 0), 0.4, mat)
	}
	first, last := shapes[0], shapes[len(shapes)-1]

	NewBVH(shapes)

	if shapes[0] != first || shapes[len(shapes)-1] != last {
		t.Error("Building a BVH should not reorder the caller's slice")
	}
}

func TestBVH_Stats(t *testing.T) {
	mat := testMaterial()
	shapes := make([]Shape, 100)
	for i := range shapes {
		shapes[i] = NewSphere(core.NewVec3(float64(i%10), float64(i/10), 0), 0.3, mat)
	}

	stats := NewBVH(shapes).Stats()
	if stats.TotalShapes != 100 {
		t.Errorf("TotalShapes: got %d, expected 100", stats.TotalShapes)
	}
	if stats.LeafNodes == 0 || stats.TotalNodes <= stats.LeafNodes {
		t.Errorf("Unexpected structure: %+v", stats)
	}
}
