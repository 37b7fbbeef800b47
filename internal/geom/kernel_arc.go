package geom

import "math"

// ArcCenter computes the circumscribed-circle center and radius of the
// three non-colinear points p1, p2, p3 that define a circular arc. Returns
// ok=false (degenerate) when the points are colinear; returns the exact
// midpoint/half-distance when p1 == p3 (the full-circle case), per
// spec.md §4.3.
func ArcCenter(p1, p2, p3 Coord4) (center Coord4, radius float64, ok bool) {
	if p1.Equal2D(p3) {
		// Full circle: center is the midpoint of p1-p2, radius half their
		// distance.
		cx, cy := (p1.X+p2.X)/2, (p1.Y+p2.Y)/2
		r := p1.Dist2D(p2) / 2
		return Coord4{X: cx, Y: cy}, r, true
	}

	ax, ay := p2.X-p1.X, p2.Y-p1.Y
	bx, by := p3.X-p1.X, p3.Y-p1.Y
	d := 2 * (ax*by - ay*bx)
	if math.Abs(d) < EpsilonSQLMM {
		return Coord4{}, -1, false
	}

	aSq := ax*ax + ay*ay
	bSq := bx*bx + by*by
	ux := (by*aSq - ay*bSq) / d
	uy := (ax*bSq - bx*aSq) / d

	center = Coord4{X: p1.X + ux, Y: p1.Y + uy}
	radius = center.Dist2D(p1)
	return center, radius, true
}

// PointInArc reports whether p lies on the same side of chord p1->p3 as
// the interior control point p2, the open-arc membership test of spec.md
// §4.3.
func PointInArc(p1, p2, p3, p Coord4) bool {
	side := Side(p1, p3, p2)
	if side == 0 {
		// p2 colinear with p1,p3: the "arc" is really the chord itself.
		return OnSegment(p1, p3, p)
	}
	return Side(p1, p3, p) == side
}

// arcAngle returns the angle (radians, via atan2) of p relative to center.
func arcAngle(center, p Coord4) float64 {
	return math.Atan2(p.Y-center.Y, p.X-center.X)
}

// ArcLength computes the arc length swept from p1 to p3 through p2: circle
// circumference times the sweep fraction, where sweep direction is
// determined by which side of chord p1->p3 the control point p2 lies on
// (spec.md §4.3).
func ArcLength(p1, p2, p3 Coord4) (float64, error) {
	center, radius, ok := ArcCenter(p1, p2, p3)
	if !ok {
		// Colinear triple: the "arc" degenerates to the p1-p2-p3
		// polyline length (straight line, per Stroke's colinear handling).
		return p1.Dist2D(p2) + p2.Dist2D(p3), nil
	}
	if radius < 0 {
		return 0, newErr(ErrArithmeticDegenerate, "negative arc radius")
	}
	a1 := arcAngle(center, p1)
	a2 := arcAngle(center, p2)
	a3 := arcAngle(center, p3)
	sweep := sweepAngle(a1, a2, a3)
	return math.Abs(sweep) * radius, nil
}

// sweepAngle returns the signed angular sweep from a1 to a3 passing through
// a2, in [-2*pi, 2*pi); positive when that path runs counter-clockwise.
func sweepAngle(a1, a2, a3 float64) float64 {
	// Counter-clockwise offsets of a2 and a3 from a1, in [0, 2*pi): the arc
	// runs counter-clockwise iff a2 is reached before a3 going that way,
	// whichever way around the circle the arc goes and however long it is.
	to2, to3 := normalizeAngle(a2-a1), normalizeAngle(a3-a1)
	if to2 < 0 {
		to2 += 2 * math.Pi
	}
	if to3 < 0 {
		to3 += 2 * math.Pi
	}
	if to2 <= to3 {
		return to3
	}
	return to3 - 2*math.Pi
}

func normalizeAngle(a float64) float64 {
	for a <= -math.Pi {
		a += 2 * math.Pi
	}
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	return a
}

// SegArcIntersectDistance solves for the minimum distance between segment
// s1-s2 and arc (p1,p2,p3). If the analytic circle-line intersection
// points exist and lie within both the segment and the arc sweep, the
// distance is zero. Otherwise it falls back to the minimum of
// endpoint-to-segment and endpoint-to-arc distances (spec.md §4.3).
func SegArcIntersectDistance(s1, s2, p1, p2, p3 Coord4) (dist float64, closestSeg, closestArc Coord4) {
	center, radius, ok := ArcCenter(p1, p2, p3)
	if !ok {
		// Degenerate arc: treat as the chord p1-p3.
		return segSegMinDistance(s1, s2, p1, p3)
	}

	// Analytic line/circle intersection: parametrize the segment as
	// s1 + t*(s2-s1), solve |s1 + t*d - center|^2 = r^2.
	dx, dy := s2.X-s1.X, s2.Y-s1.Y
	fx, fy := s1.X-center.X, s1.Y-center.Y
	a := dx*dx + dy*dy
	b := 2 * (fx*dx + fy*dy)
	cc := fx*fx + fy*fy - radius*radius

	if a > 0 {
		disc := b*b - 4*a*cc
		if disc >= 0 {
			sq := math.Sqrt(disc)
			for _, t := range []float64{(-b - sq) / (2 * a), (-b + sq) / (2 * a)} {
				if t < 0 || t > 1 {
					continue
				}
				cand := Coord4{X: s1.X + t*dx, Y: s1.Y + t*dy}
				if PointInArc(p1, p2, p3, cand) || cand.Equal2D(p1) || cand.Equal2D(p3) {
					return 0, cand, cand
				}
			}
		}
	}

	// Fallback: minimum of endpoint-to-segment and endpoint-to-arc
	// distances.
	best := math.Inf(1)
	consider := func(segPt, arcPt Coord4, d float64) {
		if d < best {
			best, closestSeg, closestArc = d, segPt, arcPt
		}
	}
	// Segment endpoints against the arc (approximate via closest of the
	// three defining points, refined by the chord/center geometry).
	for _, sp := range []Coord4{s1, s2} {
		ap, d := closestPointOnArc(center, radius, p1, p2, p3, sp)
		consider(sp, ap, d)
	}
	// Arc endpoints against the segment.
	for _, ap := range []Coord4{p1, p3} {
		cp, _, d := ProjectPointToSegment(s1, s2, ap)
		consider(cp, ap, d)
	}
	return best, closestSeg, closestArc
}

// closestPointOnArc returns the closest point on the arc sweep (p1,p2,p3)
// to q: if q's angular projection onto the circle falls within the sweep,
// that projected point; otherwise the nearer of the two arc endpoints.
func closestPointOnArc(center Coord4, radius float64, p1, p2, p3, q Coord4) (Coord4, float64) {
	angle := arcAngle(center, q)
	proj := Coord4{X: center.X + radius*math.Cos(angle), Y: center.Y + radius*math.Sin(angle)}
	if PointInArc(p1, p2, p3, proj) {
		return proj, q.Dist2D(proj)
	}
	d1, d3 := q.Dist2D(p1), q.Dist2D(p3)
	if d1 <= d3 {
		return p1, d1
	}
	return p3, d3
}

// segSegMinDistance returns the minimum distance between two segments and
// the closest pair of points (brute 4-projection approach, used as the
// degenerate-arc fallback here; the general seg/seg path lives in
// distance_bruteforce.go).
func segSegMinDistance(a1, a2, b1, b2 Coord4) (float64, Coord4, Coord4) {
	best := math.Inf(1)
	var bp1, bp2 Coord4
	try := func(p, q1, q2 Coord4) {
		cp, _, d := ProjectPointToSegment(q1, q2, p)
		if d < best {
			best, bp1, bp2 = d, p, cp
		}
	}
	try(a1, b1, b2)
	try(a2, b1, b2)
	tryRev := func(p, q1, q2 Coord4) {
		cp, _, d := ProjectPointToSegment(q1, q2, p)
		if d < best {
			best, bp1, bp2 = d, cp, p
		}
	}
	tryRev(b1, a1, a2)
	tryRev(b2, a1, a2)
	return best, bp1, bp2
}

// ArcArcIntersectDistance computes the minimum distance between arc A
// (a1,a2,a3) and arc B (b1,b2,b3), classifying by the relationship between
// their centers' distance d and rA+rB / |rA-rB| (spec.md §4.3).
func ArcArcIntersectDistance(a1, a2, a3, b1, b2, b3 Coord4) (dist float64, closestA, closestB Coord4) {
	centerA, rA, okA := ArcCenter(a1, a2, a3)
	centerB, rB, okB := ArcCenter(b1, b2, b3)
	if !okA {
		return SegArcIntersectDistance(a1, a3, b1, b2, b3)
	}
	if !okB {
		d, cb, ca := SegArcIntersectDistance(b1, b3, a1, a2, a3)
		return d, ca, cb
	}

	d := centerA.Dist2D(centerB)
	best := math.Inf(1)
	consider := func(pa, pb Coord4) {
		dd := pa.Dist2D(pb)
		if dd < best {
			best, closestA, closestB = dd, pa, pb
		}
	}

	switch {
	case d == 0 && rA == rB:
		// Concentric equal circles: infinite or zero overlap; report
		// distance 0 at an arbitrary shared angle if sweeps overlap,
		// else the endpoint separation (via the fallback below).
		for _, p := range []Coord4{a1, a3} {
			if PointInArc(b1, b2, b3, p) {
				consider(p, p)
			}
		}
		for _, p := range []Coord4{b1, b3} {
			if PointInArc(a1, a2, a3, p) {
				consider(p, p)
			}
		}
	case d >= rA+rB, d <= math.Abs(rA-rB):
		// Disjoint or one contained in the other: nearest points lie on
		// the center-center line at distance rA and rB respectively.
		ux, uy := (centerB.X-centerA.X)/maxf(d, EpsilonSQLMM), (centerB.Y-centerA.Y)/maxf(d, EpsilonSQLMM)
		pA := Coord4{X: centerA.X + ux*rA, Y: centerA.Y + uy*rA}
		pB := Coord4{X: centerB.X - ux*rB, Y: centerB.Y - uy*rB}
		if PointInArc(a1, a2, a3, pA) && PointInArc(b1, b2, b3, pB) {
			consider(pA, pB)
		}
	default:
		// Two circles properly intersect (or are tangent): chord-offset
		// formula for the intersection point(s) of the two circles.
		aDist := (d*d + rA*rA - rB*rB) / (2 * d)
		h2 := rA*rA - aDist*aDist
		ux, uy := (centerB.X-centerA.X)/d, (centerB.Y-centerA.Y)/d
		mx, my := centerA.X+aDist*ux, centerA.Y+aDist*uy
		if h2 < 0 {
			h2 = 0
		}
		h := math.Sqrt(h2)
		cands := []Coord4{
			{X: mx - h*uy, Y: my + h*ux},
			{X: mx + h*uy, Y: my - h*ux},
		}
		for _, c := range cands {
			if PointInArc(a1, a2, a3, c) && PointInArc(b1, b2, b3, c) {
				consider(c, c)
			}
		}
	}

	if best == math.Inf(1) {
		// No valid intersection point landed within both sweeps: fall
		// back to comparing all four endpoint-to-arc combinations.
		for _, pa := range []Coord4{a1, a3} {
			cp, _ := closestPointOnArc(centerB, rB, b1, b2, b3, pa)
			consider(pa, cp)
		}
		for _, pb := range []Coord4{b1, b3} {
			cp, _ := closestPointOnArc(centerA, rA, a1, a2, a3, pb)
			consider(cp, pb)
		}
	}
	return best, closestA, closestB
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
