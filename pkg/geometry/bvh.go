package geometry

import (
	"sort"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/material"
)

// leafThreshold is the largest primitive count stored in a single leaf
const leafThreshold = 4

// bvhNode is one entry in the flattened hierarchy. Leaves cover
// order[start:start+count]; interior nodes reference children by index.
type bvhNode struct {
	bounds      core.AABB
	left, right int
	start       int
	count       int
}

// BVH is a bounding volume hierarchy over an indexed slice of shapes.
// Nodes and primitives live in flat slices so traversal touches no pointers.
type BVH struct {
	shapes []Shape
	order  []int
	nodes  []bvhNode
}

// NewBVH builds a hierarchy over shapes. The input slice is not modified.
func NewBVH(shapes []Shape) *BVH {
	bvh := &BVH{
		shapes: shapes,
		order:  make([]int, len(shapes)),
	}
	for i := range bvh.order {
		bvh.order[i] = i
	}
	if len(shapes) > 0 {
		bvh.build(0, len(shapes))
	}
	return bvh
}

// build creates the node covering order[start:end] and returns its index
func (b *BVH) build(start, end int) int {
	bounds := b.shapes[b.order[start]].BoundingBox()
	for _, idx := range b.order[start+1 : end] {
		bounds = bounds.Union(b.shapes[idx].BoundingBox())
	}

	nodeIndex := len(b.nodes)
	b.nodes = append(b.nodes, bvhNode{bounds: bounds, left: -1, right: -1, start: start, count: end - start})

	if end-start <= leafThreshold {
		return nodeIndex
	}

	// Median split along the longest axis of the node bounds
	axis := bounds.LongestAxis()
	span := b.order[start:end]
	sort.SliceStable(span, func(i, j int) bool {
		ci := b.shapes[span[i]].BoundingBox().Center().Component(axis)
		cj := b.shapes[span[j]].BoundingBox().Center().Component(axis)
		return ci < cj
	})

	mid := start + (end-start)/2
	left := b.build(start, mid)
	right := b.build(mid, end)

	b.nodes[nodeIndex].left = left
	b.nodes[nodeIndex].right = right
	b.nodes[nodeIndex].count = 0
	return nodeIndex
}

// Hit returns the closest hit among all shapes in the hierarchy
func (b *BVH) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	if len(b.nodes) == 0 {
		return nil, false
	}

	var closest *material.HitRecord
	closestSoFar := tMax

	var stack [64]int
	top := 0
	stack[top] = 0
	top++

	for top > 0 {
		top--
		node := &b.nodes[stack[top]]
		if !node.bounds.Hit(ray, tMin, closestSoFar) {
			continue
		}

		if node.count > 0 {
			for _, idx := range b.order[node.start : node.start+node.count] {
				if hit, ok := b.shapes[idx].Hit(ray, tMin, closestSoFar); ok {
					closestSoFar = hit.T
					closest = hit
				}
			}
			continue
		}

		// Median splits keep the depth near log2(n), far below the stack size
		if top+2 > len(stack) {
			continue
		}
		stack[top] = node.right
		stack[top+1] = node.left
		top += 2
	}

	return closest, closest != nil
}

// BoundingBox returns the bounds of the whole hierarchy
func (b *BVH) BoundingBox() core.AABB {
	if len(b.nodes) == 0 {
		return core.AABB{}
	}
	return b.nodes[0].bounds
}

// bvhStats contains statistics about the BVH structure
type bvhStats struct {
	totalNodes  int
	leafNodes   int
	maxDepth    int
	totalShapes int
}

// getStats walks the hierarchy and collects structure statistics
func (b *BVH) getStats() bvhStats {
	var stats bvhStats
	if len(b.nodes) > 0 {
		b.collectStats(0, 0, &stats)
	}
	return stats
}

func (b *BVH) collectStats(nodeIndex, depth int, stats *bvhStats) {
	node := b.nodes[nodeIndex]
	stats.totalNodes++
	stats.maxDepth = max(stats.maxDepth, depth)

	if node.count > 0 {
		stats.leafNodes++
		stats.totalShapes += node.count
		return
	}
	b.collectStats(node.left, depth+1, stats)
	b.collectStats(node.right, depth+1, stats)
}
