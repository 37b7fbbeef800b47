// Analytic kernels (C6): segment side, segment/segment, segment/arc, and
// arc/arc intersection classification, grounded on
// original_source/measures.c (the librttopo distance/intersection kernel
// this spec's C6+C7 distill) and original_source/rtalgorithm.c (point
// projection).
package geom

import "math"

// Side classifies q relative to the directed segment p1->p2: -1 left of
// the line, 0 on the line, +1 right of the line (spec.md §4.3).
func Side(p1, p2, q Coord4) int {
	cross := (q.X-p1.X)*(p2.Y-p1.Y) - (p2.X-p1.X)*(q.Y-p1.Y)
	switch {
	case cross > 0:
		return 1
	case cross < 0:
		return -1
	default:
		return 0
	}
}

// InSegmentRange2D reports whether q's projection lies within [p1,p2]'s 2D
// bounding span, used alongside Side==0 to test exact on-segment
// membership (spec.md §4.1 BOUNDARY test).
func InSegmentRange2D(p1, p2, q Coord4) bool {
	minX, maxX := math.Min(p1.X, p2.X), math.Max(p1.X, p2.X)
	minY, maxY := math.Min(p1.Y, p2.Y), math.Max(p1.Y, p2.Y)
	return q.X >= minX && q.X <= maxX && q.Y >= minY && q.Y <= maxY
}

// OnSegment reports whether q lies exactly on the closed segment p1-p2:
// collinear (Side==0) and within range.
func OnSegment(p1, p2, q Coord4) bool {
	return Side(p1, p2, q) == 0 && InSegmentRange2D(p1, p2, q)
}

// SegIntersection classifies the relationship between segment p1-p2 and
// segment q1-q2 (spec.md §4.3).
type SegIntersection int

const (
	NoIntersection SegIntersection = iota
	Colinear
	CrossLeft
	CrossRight
	TouchLeft
	TouchRight
)

// SegmentIntersects classifies p1-p2 against q1-q2 using the sign pattern
// of the four cross-products, with an envelope fast-reject first. "Touch"
// from the second endpoint is treated as NoIntersection to avoid
// double-counting along a chain of segments (spec.md §4.3).
func SegmentIntersects(p1, p2, q1, q2 Coord4) SegIntersection {
	pBox := GBox{XMin: math.Min(p1.X, p2.X), XMax: math.Max(p1.X, p2.X), YMin: math.Min(p1.Y, p2.Y), YMax: math.Max(p1.Y, p2.Y)}
	qBox := GBox{XMin: math.Min(q1.X, q2.X), XMax: math.Max(q1.X, q2.X), YMin: math.Min(q1.Y, q2.Y), YMax: math.Max(q1.Y, q2.Y)}
	if pBox.XMax < qBox.XMin || pBox.XMin > qBox.XMax || pBox.YMax < qBox.YMin || pBox.YMin > qBox.YMax {
		return NoIntersection
	}

	s1 := Side(p1, p2, q1)
	s2 := Side(p1, p2, q2)
	s3 := Side(q1, q2, p1)
	s4 := Side(q1, q2, p2)

	if s1 == 0 && s2 == 0 && s3 == 0 && s4 == 0 {
		return Colinear
	}

	// Proper crossing: q1,q2 on opposite sides of p1-p2 AND p1,p2 on
	// opposite sides of q1-q2.
	if s1*s2 < 0 && s3*s4 < 0 {
		if s1 > 0 {
			return CrossLeft
		}
		return CrossRight
	}

	// Touching: one endpoint lies exactly on the other segment.
	if s1 == 0 && InSegmentRange2D(p1, p2, q1) {
		if s4 > 0 {
			return TouchLeft
		}
		return TouchRight
	}
	if s2 == 0 && InSegmentRange2D(p1, p2, q2) {
		// Touch from the second endpoint: suppressed per spec to avoid
		// double-counting along chains.
		return NoIntersection
	}
	if s3 == 0 && InSegmentRange2D(q1, q2, p1) {
		if s2 > 0 {
			return TouchRight
		}
		return TouchLeft
	}
	if s4 == 0 && InSegmentRange2D(q1, q2, p2) {
		return NoIntersection
	}

	return NoIntersection
}

// ProjectPointToSegment returns the closest point on segment p1-p2 to q,
// the fraction along the segment in [0,1] at which it occurs, and the
// distance. Shared by PointArray.LocatePoint and the distance engine's
// brute-force path, mirroring original_source/rtalgorithm.c's single shared
// projection routine (spec.md §12 supplement).
func ProjectPointToSegment(p1, p2, q Coord4) (closest Coord4, frac, dist float64) {
	dx, dy := p2.X-p1.X, p2.Y-p1.Y
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return p1, 0, q.Dist2D(p1)
	}
	t := ((q.X-p1.X)*dx + (q.Y-p1.Y)*dy) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	cx, cy := p1.X+t*dx, p1.Y+t*dy
	cz := p1.Z + t*(p2.Z-p1.Z)
	cm := p1.M + t*(p2.M-p1.M)
	closest = Coord4{X: cx, Y: cy, Z: cz, M: cm}
	dist = q.Dist2D(closest)
	return closest, t, dist
}
