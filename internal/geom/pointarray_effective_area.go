package geom

import (
	"container/heap"
	"math"
)

// EffectiveArea runs the Visvalingam-Whyatt algorithm: repeatedly remove
// the vertex with the smallest "effective area" (the area of the triangle
// it forms with its current neighbours), recomputing neighbours' areas via
// a min-heap, and record each removed vertex's effective area. Grounded on
// original_source/effectivearea.c's areanode/MINHEAP design.
//
// The returned slice has one entry per input point, giving each point's
// effective area (endpoints get +Inf, never eliminated). EffectiveArea
// takes no threshold; EffectiveAreaSimplify below applies one to these
// areas (the PointArray.Simplify-by-area counterpart used by pkg/rtgeom's
// EffectiveAreaSimplify).
func (pa *PointArray) EffectiveArea() ([]float64, error) {
	n := len(pa.points)
	areas := make([]float64, n)
	if n < 3 {
		for i := range areas {
			areas[i] = math.Inf(1)
		}
		return areas, nil
	}
	areas[0] = math.Inf(1)
	areas[n-1] = math.Inf(1)

	nodes := make([]*areaNode, n)
	for i := range nodes {
		nodes[i] = &areaNode{idx: i}
	}
	for i := 1; i < n-1; i++ {
		nodes[i].prev = nodes[i-1]
		nodes[i].next = nodes[i+1]
		nodes[i].area = triArea2D(pa.points[i-1], pa.points[i], pa.points[i+1])
	}

	h := &areaHeap{}
	heap.Init(h)
	for i := 1; i < n-1; i++ {
		heap.Push(h, nodes[i])
	}

	lastArea := -math.Inf(1)
	for h.Len() > 0 {
		node := heap.Pop(h).(*areaNode)
		if node.removed {
			continue
		}
		if node.area < lastArea-EpsilonGeneral {
			return nil, newErr(ErrInvariantViolation,
				"effective area decreased from %g to %g at vertex %d: elimination order must be non-decreasing",
				lastArea, node.area, node.idx)
		}
		if node.area > lastArea {
			lastArea = node.area
		}
		areas[node.idx] = node.area
		node.removed = true

		prev, next := node.prev, node.next
		prev.next = next
		next.prev = prev
		if prev.idx != 0 {
			prev.area = triArea2D(pa.points[prev.prev.idx], pa.points[prev.idx], pa.points[next.idx])
			heap.Push(h, prev)
		}
		if next.idx != n-1 {
			next.area = triArea2D(pa.points[prev.idx], pa.points[next.idx], pa.points[next.next.idx])
			heap.Push(h, next)
		}
	}
	return areas, nil
}

// EffectiveAreaSimplify keeps only the points whose effective area (per
// EffectiveArea) is >= threshold, always keeping the endpoints.
func (pa *PointArray) EffectiveAreaSimplify(threshold float64) (*PointArray, error) {
	areas, err := pa.EffectiveArea()
	if err != nil {
		return nil, err
	}
	out := NewPointArray(pa.flags.HasZ, pa.flags.HasM, len(pa.points))
	for i, a := range areas {
		if a >= threshold {
			out.points = append(out.points, pa.points[i])
		}
	}
	return out, nil
}

func triArea2D(p1, p2, p3 Coord4) float64 {
	return math.Abs(0.5 * ((p1.X-p2.X)*(p3.Y-p2.Y) - (p1.Y-p2.Y)*(p3.X-p2.X)))
}

type areaNode struct {
	idx        int
	area       float64
	prev, next *areaNode
	removed    bool
	heapIndex  int
}

// areaHeap implements container/heap.Interface ordered by area, breaking
// exact ties by index so results are deterministic across platforms
// (mirroring effectivearea.c's cmpfunc tie-break-by-pointer comment).
type areaHeap []*areaNode

func (h areaHeap) Len() int { return len(h) }
func (h areaHeap) Less(i, j int) bool {
	if h[i].area == h[j].area {
		return h[i].idx < h[j].idx
	}
	return h[i].area < h[j].area
}
func (h areaHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].heapIndex, h[j].heapIndex = i, j
}
func (h *areaHeap) Push(x interface{}) {
	n := x.(*areaNode)
	n.heapIndex = len(*h)
	*h = append(*h, n)
}
func (h *areaHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
