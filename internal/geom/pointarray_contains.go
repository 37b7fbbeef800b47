package geom

// Containment is the tri-state result of a ring containment test (spec.md
// §4.1).
type Containment int

const (
	Outside Containment = iota
	Inside
	Boundary
)

// ContainsPoint returns the containment of pt relative to the closed ring
// pa describes, via integer winding number. Grounded in shape on the
// VRPT/face-ring resolution in the teacher's internal/parser/topology.go
// (walking a ring's segments to decide interior/exterior), rewritten
// against spec.md's winding-number algorithm.
func (pa *PointArray) ContainsPoint(pt Coord4) Containment {
	c, winding := pa.containsPointPartial(pt, 0, true)
	if c == Boundary {
		return Boundary
	}
	if winding != 0 {
		return Inside
	}
	return Outside
}

// ContainsPointPartial is the _partial variant: it may be called on an
// unclosed ring, and returns the accumulated winding number via the second
// return value so callers can combine pieces (used for CompoundCurve rings
// assembled from multiple components, spec.md §4.1). Unlike ContainsPoint
// it does not implicitly close the ring between its last and first point;
// the caller is responsible for ensuring the full set of combined pieces
// closes.
func (pa *PointArray) ContainsPointPartial(pt Coord4, windingIn int) (Containment, int) {
	return pa.containsPointPartial(pt, windingIn, false)
}

func (pa *PointArray) containsPointPartial(pt Coord4, windingIn int, closeRing bool) (Containment, int) {
	n := len(pa.points)
	winding := windingIn
	last := n - 1
	if closeRing {
		last = n
	}
	for i := 0; i < last; i++ {
		j := (i + 1) % n
		p1, p2 := pa.points[i], pa.points[j]
		if p1.Equal2D(p2) {
			continue // zero-length segment skipped
		}
		if OnSegment(p1, p2, pt) {
			return Boundary, winding
		}
		if p1.Y <= pt.Y {
			if p2.Y > pt.Y && Side(p1, p2, pt) > 0 {
				winding++
			}
		} else {
			if p2.Y <= pt.Y && Side(p1, p2, pt) < 0 {
				winding--
			}
		}
	}
	return Outside, winding
}
