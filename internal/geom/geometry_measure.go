package geom

import "math"

// Area returns the planar area of a surface-dimensioned geometry (spec.md
// §6.4). Polygon area is outer-ring area minus hole areas; CurvePolygon
// first strokes its rings (see arc_stroke.go) then applies the same rule.
// Non-surface kinds return 0.
func (g *Geometry) Area() (float64, error) {
	switch g.Kind {
	case KindPolygon, KindTriangle:
		var total float64
		for i, r := range g.Rings {
			a := math.Abs(r.SignedArea())
			if i == 0 {
				total += a
			} else {
				total -= a
			}
		}
		return total, nil
	case KindMultiPolygon, KindPolyhedralSurface, KindTin:
		var total float64
		for _, c := range g.Children {
			a, err := c.Area()
			if err != nil {
				return 0, err
			}
			total += a
		}
		return total, nil
	case KindCurvePolygon:
		stroked, err := g.Stroke(DefaultArcSegments)
		if err != nil {
			return 0, err
		}
		return stroked.Area()
	case KindMultiSurface, KindGeometryCollection:
		var total float64
		for _, c := range g.Children {
			a, err := c.Area()
			if err != nil {
				return 0, err
			}
			total += a
		}
		return total, nil
	default:
		return 0, nil
	}
}

// Perimeter returns the total boundary length of a surface geometry
// (spec.md §6.4). Non-surface kinds return 0.
func (g *Geometry) Perimeter() (float64, error) {
	switch g.Kind {
	case KindPolygon, KindTriangle:
		var total float64
		for _, r := range g.Rings {
			total += r.Length2D()
		}
		return total, nil
	case KindMultiPolygon, KindPolyhedralSurface, KindTin, KindMultiSurface, KindGeometryCollection:
		var total float64
		for _, c := range g.Children {
			p, err := c.Perimeter()
			if err != nil {
				return 0, err
			}
			total += p
		}
		return total, nil
	case KindCurvePolygon:
		stroked, err := g.Stroke(DefaultArcSegments)
		if err != nil {
			return 0, err
		}
		return stroked.Perimeter()
	default:
		return 0, nil
	}
}

// LengthOf returns the total length of a curve-dimensioned geometry
// (spec.md §6.4). CircularString/CompoundCurve use arc length; collections
// sum their children. Non-curve kinds return 0.
func (g *Geometry) LengthOf() (float64, error) {
	switch g.Kind {
	case KindLineString:
		if len(g.Rings) == 0 {
			return 0, nil
		}
		return g.Rings[0].Length(), nil
	case KindCircularString:
		if len(g.Rings) == 0 {
			return 0, nil
		}
		return g.Rings[0].ArcLength2D()
	case KindCompoundCurve, KindMultiLineString, KindMultiCurve, KindGeometryCollection:
		var total float64
		for _, c := range g.Children {
			l, err := c.LengthOf()
			if err != nil {
				return 0, err
			}
			total += l
		}
		return total, nil
	default:
		return 0, nil
	}
}

// BoundingBox returns the geometry's 2D/ZM bounding box, computing and
// caching it lazily (spec.md §5 "C5 bbox engine").
func (g *Geometry) BoundingBox() GBox {
	if g.hasBBox && g.bbox != nil {
		return *g.bbox
	}
	box := EmptyGBox(g.Flags)
	for _, r := range g.Rings {
		box = box.Union(r.ComputeBBox())
	}
	for _, c := range g.Children {
		box = box.Union(c.BoundingBox())
	}
	g.bbox = &box
	g.hasBBox = true
	g.Flags.HasBBox = true
	return box
}

// DropBBox discards any cached bounding box, forcing recomputation on next
// access.
func (g *Geometry) DropBBox() {
	g.bbox = nil
	g.hasBBox = false
	g.Flags.HasBBox = false
}
