package geom

import "math"

// DefaultArcSegments is the default points-per-quadrant used when a caller
// does not specify its own: spec.md §4.5 fixes this at 32 "for SFS
// compatibility" (original_source/rtstroke.c takes perQuad as a caller
// parameter and fixes no default itself).
const DefaultArcSegments = 32

// HasArc reports, recursively for collections, whether g contains at least
// one CircularString component (spec.md §4.3).
func (g *Geometry) HasArc() bool {
	switch g.Kind {
	case KindCircularString:
		return true
	default:
		for _, c := range g.Children {
			if c.HasArc() {
				return true
			}
		}
		return false
	}
}

// strokeCircle stroke-samples the arc (p1,p2,p3) into a polyline, at
// perQuad points per quadrant, interpolating z/m angularly along the
// sweep. Returns ok=false when the three points are colinear (the caller
// falls back to emitting the control points verbatim), matching
// rtcircle_stroke's NULL-on-colinear contract.
func strokeCircle(p1, p2, p3 Coord4, hasZ, hasM bool, perQuad int) (*PointArray, bool) {
	center, radius, ok := ArcCenter(p1, p2, p3)
	isCircle := p1.Equal2D(p3)
	side := Side(p1, p3, p2)
	if (!ok || side == 0) && !isCircle {
		return nil, false
	}

	clockwise := side == -1

	increment := math.Abs(math.Pi / 2 / float64(perQuad))
	a1 := arcAngle(center, p1)
	a2 := arcAngle(center, p2)
	a3 := arcAngle(center, p3)

	if clockwise {
		increment *= -1
		if a3 > a1 {
			a3 -= 2 * math.Pi
		}
		if a2 > a1 {
			a2 -= 2 * math.Pi
		}
	} else {
		if a3 < a1 {
			a3 += 2 * math.Pi
		}
		if a2 < a1 {
			a2 += 2 * math.Pi
		}
	}

	if isCircle {
		a3 = a1 + 2*math.Pi
		a2 = a1 + math.Pi
		increment = math.Abs(increment)
		clockwise = false
	}

	pa := NewPointArray(hasZ, hasM, 32)
	pa.points = append(pa.points, p1)
	for angle := a1 + increment; (clockwise && angle > a3) || (!clockwise && angle < a3); angle += increment {
		pt := Coord4{
			X: center.X + radius*math.Cos(angle),
			Y: center.Y + radius*math.Sin(angle),
		}
		if hasZ {
			pt.Z = interpolateArc(angle, a1, a2, a3, p1.Z, p2.Z, p3.Z)
		}
		if hasM {
			pt.M = interpolateArc(angle, a1, a2, a3, p1.M, p2.M, p3.M)
		}
		pa.points = append(pa.points, pt)
	}
	return pa, true
}

// interpolateArc linearly interpolates the zm1/zm2/zm3 value at angle,
// piecewise across the a1-a2 and a2-a3 legs of the sweep (spec.md §4.3).
func interpolateArc(angle, a1, a2, a3, zm1, zm2, zm3 float64) float64 {
	if a1 < a2 {
		if angle <= a2 {
			return zm1 + (zm2-zm1)*(angle-a1)/(a2-a1)
		}
		return zm2 + (zm3-zm2)*(angle-a2)/(a3-a2)
	}
	if angle >= a2 {
		return zm1 + (zm2-zm1)*(a1-angle)/(a1-a2)
	}
	return zm2 + (zm3-zm2)*(a2-angle)/(a2-a3)
}

// strokeCircularStringArray stroke-samples every consecutive arc triple of
// an odd-count CircularString PointArray into a single dense polyline.
func strokeCircularStringArray(pa *PointArray, perQuad int) *PointArray {
	out := NewPointArray(pa.HasZ(), pa.HasM(), 64)
	n := pa.NPoints()
	for i := 2; i < n; i += 2 {
		p1, p2, p3 := pa.At(i-2), pa.At(i-1), pa.At(i)
		tmp, ok := strokeCircle(p1, p2, p3, pa.HasZ(), pa.HasM(), perQuad)
		if ok {
			for j := 0; j < tmp.NPoints(); j++ {
				_ = out.AppendPoint(tmp.At(j), false)
			}
		} else {
			_ = out.AppendPoint(p1, false)
			_ = out.AppendPoint(p2, false)
			_ = out.AppendPoint(p3, false)
		}
	}
	_ = out.AppendPoint(pa.At(n-1), false)
	return out
}

// Stroke returns a copy of g with every CircularString/CompoundCurve/
// CurvePolygon/MultiCurve/MultiSurface component replaced by its
// straight-segment approximation at perQuad points per quadrant. Kinds
// without arcs are returned as a deep clone unchanged (spec.md §4.3).
func (g *Geometry) Stroke(perQuad int) (*Geometry, error) {
	if perQuad <= 0 {
		perQuad = DefaultArcSegments
	}
	switch g.Kind {
	case KindCircularString:
		if len(g.Rings) == 0 || g.Rings[0].NPoints() == 0 {
			return ConstructEmpty(KindLineString, g.SRID, g.Flags.HasZ, g.Flags.HasM), nil
		}
		stroked := strokeCircularStringArray(g.Rings[0], perQuad)
		return &Geometry{Kind: KindLineString, Flags: g.Flags, SRID: g.SRID, Rings: []*PointArray{stroked}}, nil

	case KindCompoundCurve:
		out := NewPointArray(g.Flags.HasZ, g.Flags.HasM, 64)
		for _, piece := range g.Children {
			switch piece.Kind {
			case KindCircularString:
				if len(piece.Rings) == 0 {
					continue
				}
				stroked := strokeCircularStringArray(piece.Rings[0], perQuad)
				if err := out.AppendArray(stroked, 0); err != nil {
					return nil, err
				}
			case KindLineString:
				if len(piece.Rings) == 0 {
					continue
				}
				if err := out.AppendArray(piece.Rings[0], 0); err != nil {
					return nil, err
				}
			default:
				return nil, newErr(ErrUnsupportedGeometryType, "compound curve component %s cannot be stroked", piece.Kind).withGeom(piece.Kind)
			}
		}
		return &Geometry{Kind: KindLineString, Flags: g.Flags, SRID: g.SRID, Rings: []*PointArray{out}}, nil

	case KindCurvePolygon:
		var rings []*PointArray
		for _, ring := range g.Children {
			strokedRing, err := ring.Stroke(perQuad)
			if err != nil {
				return nil, err
			}
			rings = append(rings, strokedRing.Rings[0])
		}
		return &Geometry{Kind: KindPolygon, Flags: g.Flags, SRID: g.SRID, Rings: rings}, nil

	case KindMultiCurve:
		out := &Geometry{Kind: KindMultiLineString, Flags: g.Flags, SRID: g.SRID}
		for _, c := range g.Children {
			s, err := c.Stroke(perQuad)
			if err != nil {
				return nil, err
			}
			out.Children = append(out.Children, s)
		}
		return out, nil

	case KindMultiSurface:
		out := &Geometry{Kind: KindMultiPolygon, Flags: g.Flags, SRID: g.SRID}
		for _, c := range g.Children {
			s, err := c.Stroke(perQuad)
			if err != nil {
				return nil, err
			}
			out.Children = append(out.Children, s)
		}
		return out, nil

	case KindGeometryCollection:
		out := &Geometry{Kind: KindGeometryCollection, Flags: g.Flags, SRID: g.SRID}
		for _, c := range g.Children {
			s, err := c.Stroke(perQuad)
			if err != nil {
				return nil, err
			}
			out.Children = append(out.Children, s)
		}
		return out, nil

	default:
		return g.CloneDeep(), nil
	}
}
