package scene

import (
	"sort"

	"github.com/df07/go-light-transport/pkg/core"
	"github.com/df07/go-light-transport/pkg/transport"
)

// BVHNode represents a node in the Bounding Volume Hierarchy
type BVHNode struct {
	Bounds     core.AABB
	Left       *BVHNode
	Right      *BVHNode
	Primitives []transport.Primitive // leaf contents (nil for internal nodes)
}

// BVH represents a Bounding Volume Hierarchy for fast ray-primitive intersection
type BVH struct {
	Root *BVHNode
}

// NewBVH constructs a BVH from a slice of primitives
func NewBVH(primitives []transport.Primitive) *BVH {
	if len(primitives) == 0 {
		return &BVH{Root: nil}
	}

	// Build on a copy so the caller's ordering is preserved
	sorted := make([]transport.Primitive, len(primitives))
	copy(sorted, primitives)

	return &BVH{Root: buildBVH(sorted, 0)}
}

// Leaf threshold: if we have this many or fewer primitives, store them in a leaf node
const leafThreshold = 8

// buildBVH recursively builds the BVH with a median split along the longest axis
func buildBVH(primitives []transport.Primitive, depth int) *BVHNode {
	bounds := primitives[0].Bounds()
	for _, p := range primitives[1:] {
		bounds = bounds.Union(p.Bounds())
	}

	if len(primitives) <= leafThreshold {
		return &BVHNode{Bounds: bounds, Primitives: primitives}
	}

	axis := bounds.LongestAxis()
	sortByAxis(primitives, axis)

	mid := len(primitives) / 2
	return &BVHNode{
		Bounds: bounds,
		Left:   buildBVH(primitives[:mid], depth+1),
		Right:  buildBVH(primitives[mid:], depth+1),
	}
}

// sortByAxis sorts primitives by their bounding box center along the specified axis
func sortByAxis(primitives []transport.Primitive, axis int) {
	sort.SliceStable(primitives, func(i, j int) bool {
		return primitives[i].Bounds().Center().Axis(axis) < primitives[j].Bounds().Center().Axis(axis)
	})
}

// Intersect returns the closest primitive hit on [ray.NearT, ray.FarT], or
// nil. Every primitive hit shrinks ray.FarT, so later candidates only
// succeed if they are closer.
func (bvh *BVH) Intersect(ray *core.Ray, hit *transport.HitRecord) transport.Primitive {
	if bvh.Root == nil {
		return nil
	}
	return bvh.intersectNode(bvh.Root, ray, hit)
}

func (bvh *BVH) intersectNode(node *BVHNode, ray *core.Ray, hit *transport.HitRecord) transport.Primitive {
	if !node.Bounds.Hit(*ray) {
		return nil
	}

	var closest transport.Primitive
	if node.Primitives != nil {
		for _, p := range node.Primitives {
			if p.Intersect(ray, hit) {
				closest = p
			}
		}
		return closest
	}

	if node.Left != nil {
		if p := bvh.intersectNode(node.Left, ray, hit); p != nil {
			closest = p
		}
	}
	if node.Right != nil {
		if p := bvh.intersectNode(node.Right, ray, hit); p != nil {
			closest = p
		}
	}
	return closest
}

// bvhStats contains statistics about the BVH structure
type bvhStats struct {
	totalNodes      int
	leafNodes       int
	maxDepth        int
	avgDepth        float64
	totalPrimitives int
}

// stats returns statistics about the BVH structure
func (bvh *BVH) stats() bvhStats {
	stats := bvhStats{}
	if bvh.Root == nil {
		return stats
	}

	bvh.collectStats(bvh.Root, 0, &stats)
	if stats.leafNodes > 0 {
		stats.avgDepth /= float64(stats.leafNodes)
	}
	return stats
}

func (bvh *BVH) collectStats(node *BVHNode, depth int, stats *bvhStats) {
	stats.totalNodes++
	if depth > stats.maxDepth {
		stats.maxDepth = depth
	}

	if node.Primitives != nil {
		stats.leafNodes++
		stats.totalPrimitives += len(node.Primitives)
		stats.avgDepth += float64(depth)
		return
	}
	if node.Left != nil {
		bvh.collectStats(node.Left, depth+1, stats)
	}
	if node.Right != nil {
		bvh.collectStats(node.Right, depth+1, stats)
	}
}
