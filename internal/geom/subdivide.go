package geom

const (
	// SubdivideMaxDepth bounds the bisection recursion to guarantee
	// termination (spec.md §4.6).
	SubdivideMaxDepth = 50
	// SubdivideMinVertices is the smallest max_vertices a caller may
	// request (spec.md §4.6).
	SubdivideMinVertices = 8
	// fpTolerance inflates a degenerate (zero-width or zero-height) bbox
	// axis before bisecting it, so the recursion always makes progress.
	fpTolerance = 1e-10
)

// Subdivide recursively bisects g along the wider axis of its bbox,
// clipping to each half, until every piece has at most maxVertices
// vertices or the depth limit is hit (spec.md §4.6). Pieces are returned
// in the order produced by the bisection (lower half before upper half at
// each level), which for a left-to-right input is x-ascending. A notice is
// reported via ctx if the depth limit truncates subdivision before every
// piece satisfies maxVertices.
func (g *Geometry) Subdivide(ctx *Context, maxVertices int) ([]*Geometry, error) {
	if maxVertices < SubdivideMinVertices {
		maxVertices = SubdivideMinVertices
	}
	var out []*Geometry
	if err := subdivideInto(ctx, g, maxVertices, 0, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func subdivideInto(ctx *Context, g *Geometry, maxVertices, depth int, out *[]*Geometry) error {
	if err := ctx.checkInterrupt(); err != nil {
		return err
	}
	if g.IsEmpty() {
		return nil
	}
	if g.CountVertices() <= maxVertices {
		*out = append(*out, g)
		return nil
	}
	if depth >= SubdivideMaxDepth {
		ctx.notice("subdivide: depth limit %d reached with %d vertices remaining", SubdivideMaxDepth, g.CountVertices())
		*out = append(*out, g)
		return nil
	}

	box := g.BoundingBox()
	width, height := box.XMax-box.XMin, box.YMax-box.YMin
	if width == 0 {
		width = fpTolerance
		box.XMin -= fpTolerance / 2
		box.XMax += fpTolerance / 2
	}
	if height == 0 {
		height = fpTolerance
		box.YMin -= fpTolerance / 2
		box.YMax += fpTolerance / 2
	}

	var lowerBox, upperBox GBox
	if width >= height {
		mid := (box.XMin + box.XMax) / 2
		lowerBox = GBox{Flags: box.Flags, XMin: box.XMin, XMax: mid, YMin: box.YMin, YMax: box.YMax}
		upperBox = GBox{Flags: box.Flags, XMin: mid, XMax: box.XMax, YMin: box.YMin, YMax: box.YMax}
	} else {
		mid := (box.YMin + box.YMax) / 2
		lowerBox = GBox{Flags: box.Flags, XMin: box.XMin, XMax: box.XMax, YMin: box.YMin, YMax: mid}
		upperBox = GBox{Flags: box.Flags, XMin: box.XMin, XMax: box.XMax, YMin: mid, YMax: box.YMax}
	}

	for _, half := range []GBox{lowerBox, upperBox} {
		piece := clipGeometry(g, half)
		if piece == nil || piece.IsEmpty() {
			continue
		}
		if err := subdivideInto(ctx, piece, maxVertices, depth+1, out); err != nil {
			return err
		}
	}
	return nil
}

// clipGeometry clips g to box using the appropriate kernel for its shape:
// point containment for Point, Liang-Barsky for curve kinds, and
// Sutherland-Hodgman ring clipping for surface kinds. CircularString/
// CurvePolygon inputs are stroked first, since clipping an arc against a
// rectangle is not itself a spec.md-defined analytic operation.
func clipGeometry(g *Geometry, box GBox) *Geometry {
	switch g.Kind {
	case KindPoint:
		p, ok := g.pointCoord()
		if !ok || p.X < box.XMin || p.X > box.XMax || p.Y < box.YMin || p.Y > box.YMax {
			return ConstructEmpty(KindPoint, g.SRID, g.Flags.HasZ, g.Flags.HasM)
		}
		return g.CloneDeep()

	case KindLineString:
		pieces := rectClipLineString(g.Rings[0], box)
		return multiOrSingleLine(g, pieces)

	case KindCircularString, KindCompoundCurve:
		stroked, err := g.Stroke(DefaultArcSegments)
		if err != nil {
			return nil
		}
		pieces := rectClipLineString(stroked.Rings[0], box)
		return multiOrSingleLine(g, pieces)

	case KindPolygon, KindTriangle:
		var rings []*PointArray
		outer := rectClipPolygonRing(g.Rings[0], box)
		if outer.NPoints() < 4 {
			return ConstructEmpty(KindPolygon, g.SRID, g.Flags.HasZ, g.Flags.HasM)
		}
		rings = append(rings, outer)
		for _, hole := range g.Rings[1:] {
			clipped := rectClipPolygonRing(hole, box)
			if clipped.NPoints() >= 4 {
				rings = append(rings, clipped)
			}
		}
		return &Geometry{Kind: KindPolygon, Flags: g.Flags, SRID: g.SRID, Rings: rings}

	case KindCurvePolygon:
		stroked, err := g.Stroke(DefaultArcSegments)
		if err != nil {
			return nil
		}
		return clipGeometry(stroked, box)

	case KindMultiPoint, KindMultiLineString, KindMultiPolygon, KindMultiCurve,
		KindMultiSurface, KindGeometryCollection, KindPolyhedralSurface, KindTin:
		out := &Geometry{Kind: g.Kind, Flags: g.Flags, SRID: g.SRID}
		for _, c := range g.Children {
			piece := clipGeometry(c, box)
			if piece != nil && !piece.IsEmpty() {
				out.Children = append(out.Children, piece)
			}
		}
		return out

	default:
		return g.CloneDeep()
	}
}

func multiOrSingleLine(g *Geometry, pieces []*PointArray) *Geometry {
	if len(pieces) == 0 {
		return ConstructEmpty(KindLineString, g.SRID, g.Flags.HasZ, g.Flags.HasM)
	}
	if len(pieces) == 1 {
		return &Geometry{Kind: KindLineString, Flags: g.Flags, SRID: g.SRID, Rings: []*PointArray{pieces[0]}}
	}
	out := &Geometry{Kind: KindMultiLineString, Flags: g.Flags, SRID: g.SRID}
	for _, p := range pieces {
		out.Children = append(out.Children, &Geometry{Kind: KindLineString, Flags: g.Flags, SRID: g.SRID, Rings: []*PointArray{p}})
	}
	return out
}
