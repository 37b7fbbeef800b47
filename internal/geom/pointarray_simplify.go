package geom

import "math"

// Simplify runs Douglas-Peucker simplification with an explicit index
// stack (emulating the source's non-recursive traversal, spec.md §4.1).
// Points whose perpendicular distance^2 to the chord exceeds epsilon^2 are
// kept; minPoints bounds how aggressively the recursion may thin the
// output. The output always includes the first and last points.
func (pa *PointArray) Simplify(epsilon float64, minPoints int) *PointArray {
	n := len(pa.points)
	if n < 3 || epsilon <= 0 {
		return pa.CloneDeep()
	}
	if minPoints < 2 {
		minPoints = 2
	}

	keep := make([]bool, n)
	keep[0] = true
	keep[n-1] = true

	epsSq := epsilon * epsilon
	type span struct{ lo, hi int }
	stack := []span{{0, n - 1}}
	kept := 2

	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if s.hi-s.lo < 2 {
			continue
		}
		p1, p2 := pa.points[s.lo], pa.points[s.hi]
		maxDistSq := -1.0
		maxIdx := -1
		for k := s.lo + 1; k < s.hi; k++ {
			d := perpDistSq(p1, p2, pa.points[k])
			if d > maxDistSq {
				maxDistSq, maxIdx = d, k
			}
		}
		if maxIdx < 0 {
			continue
		}
		mustSplit := maxDistSq > epsSq
		if !mustSplit && kept < minPoints {
			mustSplit = true
		}
		if mustSplit {
			if !keep[maxIdx] {
				keep[maxIdx] = true
				kept++
			}
			stack = append(stack, span{s.lo, maxIdx}, span{maxIdx, s.hi})
		}
	}

	out := NewPointArray(pa.flags.HasZ, pa.flags.HasM, kept)
	for i, k := range keep {
		if k {
			out.points = append(out.points, pa.points[i])
		}
	}
	return out
}

// perpDistSq returns the squared perpendicular distance from q to the
// infinite line through p1-p2 (falling back to point distance when p1==p2).
func perpDistSq(p1, p2, q Coord4) float64 {
	dx, dy := p2.X-p1.X, p2.Y-p1.Y
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return q.Dist2DSq(p1)
	}
	// |cross product| / |p2-p1|, squared.
	cross := dx*(p1.Y-q.Y) - dy*(p1.X-q.X)
	return (cross * cross) / lenSq
}

// RemoveRepeatedPoints scans linearly, collapsing consecutive points that
// are "equal": bit-exact under the array's dimensionality when tolerance==0,
// or within tolerance (2D squared distance) otherwise. A minimum point
// count is preserved even if that means tolerating a repeat (spec.md §4.1).
func (pa *PointArray) RemoveRepeatedPoints(tolerance float64, minPoints int) *PointArray {
	if minPoints < 2 {
		minPoints = 2
	}
	n := len(pa.points)
	if n <= minPoints {
		return pa.CloneDeep()
	}
	out := NewPointArray(pa.flags.HasZ, pa.flags.HasM, n)
	out.points = append(out.points, pa.points[0])
	for i := 1; i < n; i++ {
		prev := out.points[len(out.points)-1]
		cur := pa.points[i]
		dup := false
		if tolerance == 0 {
			dup = prev.Equal(cur, pa.flags)
		} else {
			dup = prev.Dist2DSq(cur) <= tolerance*tolerance
		}
		remaining := n - i
		if dup && len(out.points)+remaining > minPoints {
			continue
		}
		out.points = append(out.points, cur)
	}
	return out
}

// Segmentize2D inserts intermediate points between consecutive vertices so
// that no segment exceeds dist in 2D length; inserted points linearly
// interpolate z/m (spec.md §4.1).
func (pa *PointArray) Segmentize2D(dist float64) (*PointArray, error) {
	if dist <= 0 {
		return nil, newErr(ErrInvalidInput, "segmentize distance must be positive, got %g", dist)
	}
	out := NewPointArray(pa.flags.HasZ, pa.flags.HasM, len(pa.points))
	n := len(pa.points)
	if n == 0 {
		return out, nil
	}
	out.points = append(out.points, pa.points[0])
	for i := 1; i < n; i++ {
		p1, p2 := pa.points[i-1], pa.points[i]
		segLen := p1.Dist2D(p2)
		if segLen > dist {
			steps := int(math.Ceil(segLen / dist))
			for s := 1; s < steps; s++ {
				t := float64(s) / float64(steps)
				out.points = append(out.points, lerp(p1, p2, t))
			}
		}
		out.points = append(out.points, p2)
	}
	return out, nil
}

func lerp(a, b Coord4, t float64) Coord4 {
	return Coord4{
		X: a.X + t*(b.X-a.X),
		Y: a.Y + t*(b.Y-a.Y),
		Z: a.Z + t*(b.Z-a.Z),
		M: a.M + t*(b.M-a.M),
	}
}
