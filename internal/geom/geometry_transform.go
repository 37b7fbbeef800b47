package geom

import "gonum.org/v1/gonum/mat"

// minPointsFor returns the minimum point count a ring of kind k must keep
// through simplification/repeated-point-removal (4 for a closed
// Polygon/Triangle ring, 2 otherwise).
func minPointsFor(k GeomKind) int {
	if k == KindPolygon || k == KindTriangle {
		return 4
	}
	return 2
}

// mapRingsNode rebuilds g's tree, replacing every PointArray (Rings[i]) via
// fn, which receives the owning node so it can branch on kind (e.g. ring
// vs. plain line minimum point counts). Empty rings are passed through
// unchanged to fn as well, so callers must handle NPoints()==0 themselves
// when that matters.
func mapRingsNode(g *Geometry, fn func(node *Geometry, ring *PointArray) (*PointArray, error)) (*Geometry, error) {
	out := &Geometry{Kind: g.Kind, Flags: g.Flags, SRID: g.SRID}
	for _, r := range g.Rings {
		nr, err := fn(g, r)
		if err != nil {
			return nil, err
		}
		out.Rings = append(out.Rings, nr)
	}
	for _, c := range g.Children {
		nc, err := mapRingsNode(c, fn)
		if err != nil {
			return nil, err
		}
		out.Children = append(out.Children, nc)
	}
	return out, nil
}

// Simplify returns a Douglas-Peucker-simplified copy of g (spec.md §4.1,
// §6.4). When a ring would be reduced to exactly its kind's minimum point
// count (i.e. all interior shape is discarded) and preserveCollapsed is
// false, Simplify returns (nil, nil) rather than the degenerate result,
// per spec.md §8.4 scenario 4. This is an Open Question resolution: see
// DESIGN.md.
func (g *Geometry) Simplify(epsilon float64, preserveCollapsed bool) (*Geometry, error) {
	if epsilon <= 0 {
		return g.CloneDeep(), nil
	}
	out, collapsed := simplifyNode(g, epsilon, preserveCollapsed)
	if collapsed {
		return nil, nil
	}
	return out, nil
}

func simplifyNode(g *Geometry, epsilon float64, preserveCollapsed bool) (*Geometry, bool) {
	out := &Geometry{Kind: g.Kind, Flags: g.Flags, SRID: g.SRID}
	minpts := minPointsFor(g.Kind)
	for _, r := range g.Rings {
		if r.NPoints() == 0 {
			out.Rings = append(out.Rings, r.CloneDeep())
			continue
		}
		simplified := r.Simplify(epsilon, minpts)
		if !preserveCollapsed && simplified.NPoints() <= minpts && r.NPoints() > minpts {
			return nil, true
		}
		out.Rings = append(out.Rings, simplified)
	}
	for _, c := range g.Children {
		sc, collapsed := simplifyNode(c, epsilon, preserveCollapsed)
		if collapsed {
			return nil, true
		}
		out.Children = append(out.Children, sc)
	}
	return out, false
}

// EffectiveAreaSimplify applies the Visvalingam effective-area simplifier
// (spec.md §4.1, §8.3.2) to every PointArray in g's tree.
func (g *Geometry) EffectiveAreaSimplify(threshold float64) (*Geometry, error) {
	return mapRingsNode(g, func(node *Geometry, pa *PointArray) (*PointArray, error) {
		if pa.NPoints() == 0 {
			return pa.CloneDeep(), nil
		}
		return pa.EffectiveAreaSimplify(threshold)
	})
}

// RemoveRepeatedPoints drops consecutive duplicate vertices (within
// tolerance) throughout g's tree, preserving each ring's minimum point
// count (spec.md §4.1).
func (g *Geometry) RemoveRepeatedPoints(tolerance float64) *Geometry {
	out, _ := mapRingsNode(g, func(node *Geometry, pa *PointArray) (*PointArray, error) {
		if pa.NPoints() == 0 {
			return pa.CloneDeep(), nil
		}
		return pa.RemoveRepeatedPoints(tolerance, minPointsFor(node.Kind)), nil
	})
	return out
}

// Segmentize2D inserts intermediate vertices so no segment in g's tree
// exceeds dist (spec.md §4.1, §8.3.6).
func (g *Geometry) Segmentize2D(dist float64) (*Geometry, error) {
	return mapRingsNode(g, func(node *Geometry, pa *PointArray) (*PointArray, error) {
		if pa.NPoints() == 0 {
			return pa.CloneDeep(), nil
		}
		return pa.Segmentize2D(dist)
	})
}

// SnapToGrid rounds every coordinate in g's tree to spec's grid cells,
// collapsing consecutive coincident points (spec.md §4.1, §9).
func (g *Geometry) SnapToGrid(spec GridSpec) *Geometry {
	out, _ := mapRingsNode(g, func(node *Geometry, pa *PointArray) (*PointArray, error) {
		return pa.SnapToGrid(spec), nil
	})
	return out
}

// Affine2D applies a 3x3 homogeneous matrix to every 2D coordinate in g's
// tree, leaving z/m untouched.
func (g *Geometry) Affine2D(m *mat.Dense) (*Geometry, error) {
	return mapRingsNode(g, func(node *Geometry, pa *PointArray) (*PointArray, error) {
		cp := pa.CloneDeep()
		if err := cp.Affine2D(m); err != nil {
			return nil, err
		}
		return cp, nil
	})
}

// Affine3D applies a 4x4 homogeneous matrix to every 3D coordinate in g's
// tree.
func (g *Geometry) Affine3D(m *mat.Dense) (*Geometry, error) {
	return mapRingsNode(g, func(node *Geometry, pa *PointArray) (*PointArray, error) {
		cp := pa.CloneDeep()
		if err := cp.Affine3D(m); err != nil {
			return nil, err
		}
		return cp, nil
	})
}

// Scale multiplies every ordinate in g's tree by the given per-axis
// factor.
func (g *Geometry) Scale(fx, fy, fz, fm float64) (*Geometry, error) {
	return mapRingsNode(g, func(node *Geometry, pa *PointArray) (*PointArray, error) {
		cp := pa.CloneDeep()
		if err := cp.Scale(fx, fy, fz, fm); err != nil {
			return nil, err
		}
		return cp, nil
	})
}

// LongitudeShift maps every x ordinate in g's tree into [-180, 180] by
// adding or subtracting 360 as needed.
func (g *Geometry) LongitudeShift() (*Geometry, error) {
	return mapRingsNode(g, func(node *Geometry, pa *PointArray) (*PointArray, error) {
		cp := pa.CloneDeep()
		if err := cp.LongitudeShift(); err != nil {
			return nil, err
		}
		return cp, nil
	})
}

// Substring returns the portion of a LineString between fractional
// distances from/to along its length (spec.md §4.1, §6.4). Defined only
// for LineString.
func (g *Geometry) Substring(from, to, snapTol float64) (*Geometry, error) {
	if g.Kind != KindLineString {
		return nil, newErr(ErrUnsupportedGeometryType, "substring is only defined for LineString, got %s", g.Kind).withGeom(g.Kind)
	}
	if len(g.Rings) == 0 || g.Rings[0].NPoints() == 0 {
		return nil, newErr(ErrInvalidInput, "substring of empty geometry").withGeom(g.Kind)
	}
	sub, err := g.Rings[0].Substring(from, to, snapTol)
	if err != nil {
		return nil, err
	}
	return NewLineString(g.SRID, sub)
}

// LocatePoint returns the fraction along a LineString closest to q, the
// projected point, and the distance (spec.md §4.1, §6.4). Defined only
// for LineString.
func (g *Geometry) LocatePoint(q Coord4) (frac float64, projected Coord4, dist float64, err error) {
	if g.Kind != KindLineString {
		return 0, Coord4{}, 0, newErr(ErrUnsupportedGeometryType, "locate_point is only defined for LineString, got %s", g.Kind).withGeom(g.Kind)
	}
	if len(g.Rings) == 0 || g.Rings[0].NPoints() == 0 {
		return 0, Coord4{}, 0, newErr(ErrInvalidInput, "locate_point of empty geometry").withGeom(g.Kind)
	}
	return g.Rings[0].LocatePoint(q)
}
