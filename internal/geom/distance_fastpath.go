package geom

import (
	"math"
	"sort"
)

// fastPathLinear accelerates MIN-distance between two disjoint-bbox
// LineStrings by sweeping each array's vertices, sorted by their signed
// projection onto the line perpendicular to the line joining the two
// bboxes' centers, and only comparing vertex pairs whose projections lie
// within the current best distance of each other (spec.md §4.4). Grounded
// on original_source/measures.c:rt_dist2d_fast_ptarray_ptarray.
func fastPathLinear(d *DistState, l1, l2 *PointArray, box1, box2 GBox) bool {
	n1, n2 := l1.NPoints(), l2.NPoints()
	if n1 == 0 || n2 == 0 {
		return false
	}

	c1x, c1y := box1.CenterXY()
	c2x, c2y := box2.CenterXY()
	deltaX, deltaY := c2x-c1x, c2y-c1y

	// horizontal selects the "y - k*x" projection (the bboxes lie roughly
	// north/south of each other, so the sweep line runs roughly
	// east/west); otherwise "x - k*y" is used (spec.md §4.4
	// step 2, preserving the larger-component-axis choice per DESIGN.md).
	horizontal := deltaX*deltaX < deltaY*deltaY
	var k float64
	if horizontal {
		k = -deltaX / deltaY
	} else {
		k = -deltaY / deltaX
	}
	project := func(p Coord4) float64 {
		if horizontal {
			return p.Y - k*p.X
		}
		return p.X - k*p.Y
	}

	order1 := sortedIndicesByProjection(l1, project)
	order2 := sortedIndicesByProjection(l2, project)
	c1m := project(Coord4{X: c1x, Y: c1y})
	c2m := project(Coord4{X: c2x, Y: c2y})

	if c1m < c2m {
		sweepSegSeg(d, l1, l2, order1, order2, project)
	} else {
		d.swapped = !d.swapped
		sweepSegSeg(d, l2, l1, order2, order1, project)
		d.swapped = !d.swapped
	}
	return true
}

func sortedIndicesByProjection(pa *PointArray, project func(Coord4) float64) []int {
	n := pa.NPoints()
	idx := make([]int, n)
	measure := make([]float64, n)
	for i := 0; i < n; i++ {
		idx[i] = i
		measure[i] = project(pa.At(i))
	}
	sort.Slice(idx, func(i, j int) bool { return measure[idx[i]] < measure[idx[j]] })
	return idx
}

// ringNeighbor returns the index adjacent to i (i+step), wrapping around
// only when the array is actually closed (first == last point); otherwise
// the out-of-range direction is clamped to i itself, so the edge beyond
// the array's open end is never fabricated (spec.md §4.4, grounded on
// measures.c's pnr+r boundary handling).
func ringNeighbor(pa *PointArray, i, step int) int {
	n := pa.NPoints()
	j := i + step
	closed := pa.At(0).Equal2D(pa.At(n - 1))
	if j < 0 {
		if closed {
			return n - 1
		}
		return i
	}
	if j > n-1 {
		if closed {
			return 0
		}
		return i
	}
	return j
}

// sweepSegSeg is the windowed comparison pass: walking l1's vertices in
// decreasing projection order, compare each vertex's two adjacent edges
// against every vertex of l2 whose projection lies within the current
// best distance (rescaled for the sweep-line slope), stopping once the
// gap exceeds that window (spec.md §4.4 step 5).
func sweepSegSeg(d *DistState, l1, l2 *PointArray, order1, order2 []int, project func(Coord4) float64) {
	measure1 := make([]float64, l1.NPoints())
	for _, i := range order1 {
		measure1[i] = project(l1.At(i))
	}
	measure2 := make([]float64, l2.NPoints())
	for _, i := range order2 {
		measure2[i] = project(l2.At(i))
	}

	// k's contribution folds into maxMeasure via the same slope used by
	// project; recover it implicitly by comparing raw projected gaps
	// against the Euclidean distance scaled to this projection's units.
	p1, p3 := l1.At(order1[0]), l2.At(order2[0])
	d.consider(p1, p3)
	maxMeasure := d.Distance * math.Sqrt2

	for ii := len(order1) - 1; ii >= 0; ii-- {
		i := order1[ii]
		if measure2[order2[0]]-measure1[i] > maxMeasure {
			break
		}
		for _, r := range [2]int{-1, 1} {
			j := ringNeighbor(l1, i, r)
			pa1, pa2 := l1.At(i), l1.At(j)
			for _, jj := range order2 {
				if measure2[jj]-measure1[i] >= maxMeasure {
					break
				}
				for _, s := range [2]int{-1, 1} {
					k := ringNeighbor(l2, jj, s)
					_, p, q := segSegMinDistance(pa1, pa2, l2.At(jj), l2.At(k))
					d.consider(p, q)
				}
				maxMeasure = d.Distance * math.Sqrt2
			}
		}
	}
}
