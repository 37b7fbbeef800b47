package geom

import "math"

// minQuadEdges is the minimum number of polyline edges per quadrant of
// sweep required before a run of points is accepted as an arc, rather than
// a coincidentally-circular polyline (spec.md §4.3, grounded on
// original_source/rtstroke.c's min_quad_edges, set to reject
// http://trac.osgeo.org/postgis/ticket/2420-style false positives).
const minQuadEdges = 2

// arcAngleABC returns the signed angle at vertex b of the path a->b->c, in
// (-pi, pi], via atan2(cross, dot) of the two legs.
func arcAngleABC(a, b, c Coord4) float64 {
	abx, aby := b.X-a.X, b.Y-a.Y
	cbx, cby := b.X-c.X, b.Y-c.Y
	dot := abx*cbx + aby*cby
	cross := abx*cby - aby*cbx
	return math.Atan2(cross, dot)
}

// ptContinuesArc reports whether b lies on the circle defined by a1,a2,a3,
// in the unbounded continuation of that arc rather than retracing it
// (spec.md §4.3).
func ptContinuesArc(a1, a2, a3, b Coord4) bool {
	center, radius, ok := ArcCenter(a1, a2, a3)
	if !ok {
		return false
	}
	diff := math.Abs(radius - b.Dist2D(center))
	if diff >= EpsilonSQLMM {
		return false
	}
	a2Side := Side(a1, a3, a2)
	bSide := Side(a1, a3, b)
	angle1 := arcAngleABC(a1, a2, a3)
	angle2 := arcAngleABC(a2, a3, b)
	if math.Abs(angle1-angle2) > EpsilonSQLMM {
		return false
	}
	return bSide != a2Side
}

// UnstrokePointArray scans a dense polyline for runs of points that lie on
// a common circular arc (at least minQuadEdges edges per quadrant of
// sweep) and returns either a single LineString/CircularString, or when
// both linear and arc runs are present, a CompoundCurve with alternating
// members. Arrays shorter than 4 points are returned unchanged as a
// LineString (spec.md §4.3, grounded on
// original_source/rtstroke.c:pta_unstroke).
func UnstrokePointArray(pa *PointArray, srid int32) (*Geometry, error) {
	n := pa.NPoints()
	if n == 0 {
		return ConstructEmpty(KindLineString, srid, pa.HasZ(), pa.HasM()), nil
	}
	if n < 4 {
		return &Geometry{Kind: KindLineString, Flags: pa.Flags(), SRID: srid, Rings: []*PointArray{pa.CloneDeep()}}, nil
	}

	numEdges := n - 1
	edgeArc := make([]int, numEdges)
	currentArc := 1
	i := 0
	for i < numEdges-2 {
		a1, a2, a3 := pa.At(i), pa.At(i+1), pa.At(i+2)
		first := a1
		foundArc := false
		j := i + 3
		var b Coord4
		for ; j < numEdges+1; j++ {
			b = pa.At(j)
			if ptContinuesArc(a1, a2, a3, b) {
				foundArc = true
				for k := j - 1; k > j-4 && k >= 0; k-- {
					edgeArc[k] = currentArc
				}
			} else {
				currentArc++
				break
			}
			a1, a2, a3 = a2, a3, b
		}
		if foundArc {
			arcEdges := j - 1 - i
			var numQuadrants float64
			if first.Equal2D(b) {
				numQuadrants = 4
			} else {
				center, _, ok := ArcCenter(first, b, a1)
				angle := 0.0
				if ok {
					angle = arcAngleABC(first, center, b)
					if Side(first, a1, b) >= 0 {
						angle = -angle
					}
					if angle < 0 {
						angle = 2*math.Pi + angle
					}
				}
				numQuadrants = (4 * angle) / (2 * math.Pi)
			}
			if float64(arcEdges) < minQuadEdges*numQuadrants {
				for k := j - 1; k >= i; k-- {
					edgeArc[k] = 0
				}
			}
			i = j - 1
		} else {
			edgeArc[i] = 0
			i++
		}
	}

	start := 0
	edgeType := edgeArc[0]
	var pieces []*Geometry
	for i := 1; i < numEdges; i++ {
		if edgeArc[i] != edgeType {
			pieces = append(pieces, geomFromRun(pa, srid, edgeType != 0, start, i-1))
			start = i
			edgeType = edgeArc[i]
		}
	}
	pieces = append(pieces, geomFromRun(pa, srid, edgeType != 0, start, numEdges-1))

	if len(pieces) == 1 {
		return pieces[0], nil
	}
	out := &Geometry{Kind: KindCompoundCurve, Flags: pa.Flags(), SRID: srid, Children: pieces}
	return out, nil
}

// geomFromRun builds a LineString or 3-point CircularString spanning edges
// [start,end] of pa (inclusive, so vertices start..end+1).
func geomFromRun(pa *PointArray, srid int32, isArc bool, start, end int) *Geometry {
	if isArc {
		mid := (start + end + 1) / 2
		out := NewPointArray(pa.HasZ(), pa.HasM(), 3)
		out.points = append(out.points, pa.At(start), pa.At(mid), pa.At(end+1))
		return &Geometry{Kind: KindCircularString, Flags: pa.Flags(), SRID: srid, Rings: []*PointArray{out}}
	}
	out := NewPointArray(pa.HasZ(), pa.HasM(), end-start+2)
	for i := start; i <= end+1; i++ {
		out.points = append(out.points, pa.At(i))
	}
	return &Geometry{Kind: KindLineString, Flags: pa.Flags(), SRID: srid, Rings: []*PointArray{out}}
}

// Unstroke attempts to recognize circular arcs within g's vertex runs,
// recursively for Polygon rings and collection children, replacing
// straight-segment approximations with CircularString/CompoundCurve forms
// where a match is found (spec.md §4.3, the inverse of Stroke).
func (g *Geometry) Unstroke() (*Geometry, error) {
	switch g.Kind {
	case KindLineString:
		if len(g.Rings) == 0 {
			return g.CloneDeep(), nil
		}
		return UnstrokePointArray(g.Rings[0], g.SRID)

	case KindPolygon:
		out := &Geometry{Kind: KindCurvePolygon, Flags: g.Flags, SRID: g.SRID}
		anyArc := false
		for _, r := range g.Rings {
			ring, err := UnstrokePointArray(r, g.SRID)
			if err != nil {
				return nil, err
			}
			if ring.Kind != KindLineString {
				anyArc = true
			}
			out.Children = append(out.Children, ring)
		}
		if !anyArc {
			return g.CloneDeep(), nil
		}
		return out, nil

	case KindMultiLineString:
		out := &Geometry{Kind: KindMultiCurve, Flags: g.Flags, SRID: g.SRID}
		anyArc := false
		for _, c := range g.Children {
			u, err := c.Unstroke()
			if err != nil {
				return nil, err
			}
			if u.Kind != KindLineString {
				anyArc = true
			}
			out.Children = append(out.Children, u)
		}
		if !anyArc {
			return g.CloneDeep(), nil
		}
		return out, nil

	case KindMultiPolygon:
		out := &Geometry{Kind: KindMultiSurface, Flags: g.Flags, SRID: g.SRID}
		anyArc := false
		for _, c := range g.Children {
			u, err := c.Unstroke()
			if err != nil {
				return nil, err
			}
			if u.Kind != KindPolygon {
				anyArc = true
			}
			out.Children = append(out.Children, u)
		}
		if !anyArc {
			return g.CloneDeep(), nil
		}
		return out, nil

	case KindGeometryCollection:
		out := &Geometry{Kind: KindGeometryCollection, Flags: g.Flags, SRID: g.SRID}
		for _, c := range g.Children {
			u, err := c.Unstroke()
			if err != nil {
				return nil, err
			}
			out.Children = append(out.Children, u)
		}
		return out, nil

	default:
		return g.CloneDeep(), nil
	}
}
