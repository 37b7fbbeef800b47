package geom

import "math"

// distEdge is either a straight segment (a,b) or a circular arc defined by
// its three control points (a,b,c); isArc selects which. Brute-force
// distance compares every edge of one side against every edge of the
// other via the analytic kernels in kernel_segment.go/kernel_arc.go.
type distEdge struct {
	isArc bool
	a, b, c Coord4
}

// curveEdges flattens a LineString/CircularString/CompoundCurve (or a
// single ring of a surface) into its constituent segments/arcs, in order.
func curveEdges(g *Geometry) []distEdge {
	switch g.Kind {
	case KindLineString:
		if len(g.Rings) == 0 {
			return nil
		}
		return segEdgesOf(g.Rings[0])
	case KindCircularString:
		if len(g.Rings) == 0 {
			return nil
		}
		return arcEdgesOf(g.Rings[0])
	case KindCompoundCurve:
		var out []distEdge
		for _, child := range g.Children {
			out = append(out, curveEdges(child)...)
		}
		return out
	default:
		return nil
	}
}

func segEdgesOf(pa *PointArray) []distEdge {
	n := pa.NPoints()
	if n < 2 {
		return nil
	}
	out := make([]distEdge, 0, n-1)
	for i := 1; i < n; i++ {
		out = append(out, distEdge{a: pa.At(i - 1), b: pa.At(i)})
	}
	return out
}

func arcEdgesOf(pa *PointArray) []distEdge {
	n := pa.NPoints()
	if n < 3 {
		return nil
	}
	out := make([]distEdge, 0, (n-1)/2)
	for i := 2; i < n; i += 2 {
		out = append(out, distEdge{isArc: true, a: pa.At(i - 2), b: pa.At(i - 1), c: pa.At(i)})
	}
	return out
}

// ringEdges returns the edge lists of a Polygon/Triangle/CurvePolygon's
// rings, outer ring first, stroking any arcs so every ring is a plain
// closed polyline (spec.md §4.4's containment shortcuts operate on the
// stroked form; see DESIGN.md's note on curved-surface distance).
func ringEdges(g *Geometry) ([][]distEdge, error) {
	flat, err := g.Stroke(DefaultArcSegments)
	if err != nil {
		return nil, err
	}
	out := make([][]distEdge, 0, len(flat.Rings))
	for _, r := range flat.Rings {
		out = append(out, segEdgesOf(r))
	}
	return out, nil
}

// considerPointVsEdges updates d with the closest/farthest point on any
// edge to p.
func considerPointVsEdges(d *DistState, p Coord4, edges []distEdge) error {
	for _, e := range edges {
		if e.isArc {
			considerPointVsArc(d, p, e.a, e.b, e.c)
		} else {
			considerPointVsSeg(d, p, e.a, e.b)
		}
		if d.shouldStop() {
			return nil
		}
	}
	return nil
}

func considerPointVsSeg(d *DistState, p, a, b Coord4) {
	switch d.Mode {
	case DistMin:
		cp, _, _ := ProjectPointToSegment(a, b, p)
		d.consider(p, cp)
	case DistMax:
		// The farthest point from p on a segment is always one of its two
		// endpoints (distance-to-p is a convex function of arc length).
		d.consider(p, a)
		d.consider(p, b)
	}
}

func considerPointVsArc(d *DistState, p, a1, a2, a3 Coord4) {
	center, radius, ok := ArcCenter(a1, a2, a3)
	if !ok {
		considerPointVsSeg(d, p, a1, a3)
		return
	}
	switch d.Mode {
	case DistMin:
		cp, _ := closestPointOnArc(center, radius, a1, a2, a3, p)
		d.consider(p, cp)
	case DistMax:
		// Farthest point on an arc from an external point p is either an
		// endpoint or the point diametrically opposite p's projection.
		d.consider(p, a1)
		d.consider(p, a3)
		angle := arcAngle(center, p)
		farAngle := angle + math.Pi
		far := Coord4{X: center.X + radius*math.Cos(farAngle), Y: center.Y + radius*math.Sin(farAngle)}
		if PointInArc(a1, a2, a3, far) {
			d.consider(p, far)
		}
	}
}

// considerEdgePair dispatches a single edge-vs-edge comparison to the
// matching analytic kernel, for MIN mode; MAX mode falls back to
// vertex-vertex comparison since the maximum of a convex distance
// function over two segments' parameter squares is always attained at a
// corner (spec.md §4.4, §4.3).
func considerEdgePair(d *DistState, e1, e2 distEdge) {
	if d.Mode == DistMax {
		for _, p := range edgeVertices(e1) {
			for _, q := range edgeVertices(e2) {
				d.consider(p, q)
			}
		}
		return
	}
	switch {
	case !e1.isArc && !e2.isArc:
		if SegmentIntersects(e1.a, e1.b, e2.a, e2.b) != NoIntersection {
			ip := segmentIntersectionPoint(e1.a, e1.b, e2.a, e2.b)
			d.considerExact(ip, 0)
			return
		}
		_, p, q := segSegMinDistance(e1.a, e1.b, e2.a, e2.b)
		d.consider(p, q)
	case e1.isArc && !e2.isArc:
		_, ap, sp := SegArcIntersectDistance(e2.a, e2.b, e1.a, e1.b, e1.c)
		d.consider(sp, ap)
	case !e1.isArc && e2.isArc:
		_, sp, ap := SegArcIntersectDistance(e1.a, e1.b, e2.a, e2.b, e2.c)
		d.consider(sp, ap)
	default:
		_, pa, pb := ArcArcIntersectDistance(e1.a, e1.b, e1.c, e2.a, e2.b, e2.c)
		d.consider(pa, pb)
	}
}

func edgeVertices(e distEdge) []Coord4 {
	if e.isArc {
		return []Coord4{e.a, e.c}
	}
	return []Coord4{e.a, e.b}
}

// segmentIntersectionPoint returns the point where segment p1-p2 crosses
// q1-q2, assumed (by the caller) to actually intersect. When the lines are
// parallel (the colinear-overlap case, where any point in the shared span
// is a valid witness) it returns an endpoint lying in that shared span.
func segmentIntersectionPoint(p1, p2, q1, q2 Coord4) Coord4 {
	dx1, dy1 := p2.X-p1.X, p2.Y-p1.Y
	dx2, dy2 := q2.X-q1.X, q2.Y-q1.Y
	denom := dx1*dy2 - dy1*dx2
	if denom == 0 {
		switch {
		case OnSegment(q1, q2, p1):
			return p1
		case OnSegment(q1, q2, p2):
			return p2
		default:
			return q1
		}
	}
	t := ((q1.X-p1.X)*dy2 - (q1.Y-p1.Y)*dx2) / denom
	return Coord4{X: p1.X + t*dx1, Y: p1.Y + t*dy1}
}

// considerCurveVsCurve compares two curve primitives, routing to the
// sweep-line fast path when both are purely linear, disjoint in bbox, and
// the search is MIN (spec.md §4.4 step 3); brute force otherwise.
func considerCurveVsCurve(d *DistState, a, b *Geometry) error {
	if d.Mode == DistMin && a.Kind == KindLineString && b.Kind == KindLineString {
		boxA, boxB := a.BoundingBox(), b.BoundingBox()
		if !boxA.Intersects2D(boxB) {
			ok := fastPathLinear(d, a.Rings[0], b.Rings[0], boxA, boxB)
			if ok {
				return nil
			}
		}
	}
	edgesA, edgesB := curveEdges(a), curveEdges(b)
	for _, e1 := range edgesA {
		for _, e2 := range edgesB {
			considerEdgePair(d, e1, e2)
			if d.shouldStop() {
				return nil
			}
		}
	}
	return nil
}

// considerEdgesVsSurface compares a curve's edges against every ring of a
// (possibly arc-bearing) surface.
func considerEdgesVsSurface(d *DistState, edges []distEdge, surface *Geometry) error {
	rings, err := ringEdges(surface)
	if err != nil {
		return err
	}
	for _, ring := range rings {
		for _, e1 := range edges {
			for _, e2 := range ring {
				considerEdgePair(d, e1, e2)
				if d.shouldStop() {
					return nil
				}
			}
		}
	}
	return nil
}
