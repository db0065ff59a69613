package geometry

import (
	"sort"

	"github.com/kazijawad/bonsai/pkg/core"
	"github.com/kazijawad/bonsai/pkg/material"
)

// Nodes holding this many shapes or fewer stay leaves; linear search beats
// further subdivision at that size.
const leafShapeCount = 8

// BVHNode is one node of the hierarchy. Leaves hold shapes, internal nodes
// hold two children.
type BVHNode struct {
	BoundingBox AABB
	Left, Right *BVHNode
	Shapes      []Shape
}

// BVH accelerates ray intersection with a median-split bounding volume
// hierarchy over the scene's shapes.
type BVH struct {
	Root *BVHNode
}

// NewBVH builds the hierarchy. The input slice is copied, so the caller's
// shape order stays untouched.
func NewBVH(shapes []Shape) *BVH {
	if len(shapes) == 0 {
		return &BVH{}
	}
	owned := make([]Shape, len(shapes))
	copy(owned, shapes)
	return &BVH{Root: buildNode(owned)}
}

func buildNode(shapes []Shape) *BVHNode {
	node := &BVHNode{BoundingBox: boundsOf(shapes)}
	if len(shapes) <= leafShapeCount {
		node.Shapes = shapes
		return node
	}

	// Median split along the longest axis. Surface-area heuristics build
	// better trees but cost more than these scene sizes justify.
	axis := node.BoundingBox.LongestAxis()
	sort.Slice(shapes, func(i, j int) bool {
		return axisComponent(shapes[i].BoundingBox().Center(), axis) <
			axisComponent(shapes[j].BoundingBox().Center(), axis)
	})

	mid := len(shapes) / 2
	node.Left = buildNode(shapes[:mid])
	node.Right = buildNode(shapes[mid:])
	return node
}

func boundsOf(shapes []Shape) AABB {
	box := shapes[0].BoundingBox()
	for _, shape := range shapes[1:] {
		box = box.Union(shape.BoundingBox())
	}
	return box
}

// Hit returns the closest intersection of any shape in the hierarchy
func (bvh *BVH) Hit(ray core.Ray, tMin, tMax float64) (*material.SurfaceInteraction, bool) {
	if bvh.Root == nil {
		return nil, false
	}
	return bvh.Root.hit(ray, tMin, tMax)
}

func (node *BVHNode) hit(ray core.Ray, tMin, tMax float64) (*material.SurfaceInteraction, bool) {
	if !node.BoundingBox.Hit(ray, tMin, tMax) {
		return nil, false
	}

	if node.Shapes != nil {
		return hitShapes(node.Shapes, ray, tMin, tMax)
	}

	var closest *material.SurfaceInteraction
	if si, ok := node.Left.hit(ray, tMin, tMax); ok {
		closest = si
		tMax = si.T
	}
	if si, ok := node.Right.hit(ray, tMin, tMax); ok {
		closest = si
	}
	return closest, closest != nil
}

// hitShapes scans a leaf linearly, narrowing the interval as hits land
func hitShapes(shapes []Shape, ray core.Ray, tMin, tMax float64) (*material.SurfaceInteraction, bool) {
	var closest *material.SurfaceInteraction
	for _, shape := range shapes {
		if si, ok := shape.Hit(ray, tMin, tMax); ok {
			closest = si
			tMax = si.T
		}
	}
	return closest, closest != nil
}

// Stats describes the structure of a built hierarchy
type Stats struct {
	TotalNodes  int
	LeafNodes   int
	MaxDepth    int
	AvgDepth    float64
	TotalShapes int
}

// Stats walks the hierarchy and summarizes its shape
func (bvh *BVH) Stats() Stats {
	var stats Stats
	walkStats(bvh.Root, 0, &stats)
	if stats.LeafNodes > 0 {
		stats.AvgDepth /= float64(stats.LeafNodes)
	}
	return stats
}

func walkStats(node *BVHNode, depth int, stats *Stats) {
	if node == nil {
		return
	}
	stats.TotalNodes++
	if depth > stats.MaxDepth {
		stats.MaxDepth = depth
	}
	if node.Shapes != nil {
		stats.LeafNodes++
		stats.TotalShapes += len(node.Shapes)
		stats.AvgDepth += float64(depth)
		return
	}
	walkStats(node.Left, depth+1, stats)
	walkStats(node.Right, depth+1, stats)
}
