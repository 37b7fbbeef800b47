package geom

// SplitLineByPoint splits line at point, returning the pieces added by the
// split per spec.md §4.6 (grounded on
// original_source/ptarray.c-adjacent rtline_split_by_point_to semantics):
//   - point does not lie on line within onLineTolerance: returns nil, 0.
//   - point coincides with a line endpoint: returns the line unchanged as
//     its single piece, 1.
//   - otherwise: returns the two substrings split at point, 2.
//
// The split point is snapped to an existing vertex when within
// length/1e14 of one, so near-degenerate splits don't fabricate a
// vanishingly short substring.
func SplitLineByPoint(line *Geometry, point Coord4) ([]*Geometry, int, error) {
	if line.Kind != KindLineString {
		return nil, 0, newErr(ErrInvalidInput, "split_by_point requires a LineString, got %s", line.Kind)
	}
	pa := line.Rings[0]
	if pa.NPoints() < 2 {
		return nil, 0, newErr(ErrInvalidInput, "split_by_point on degenerate line")
	}

	frac, _, dist, err := pa.LocatePoint(point)
	if err != nil {
		return nil, 0, err
	}
	const onLineTolerance = 1e-8
	if dist > onLineTolerance {
		return nil, 0, nil
	}
	if frac <= 0 || frac >= 1 {
		return []*Geometry{line.CloneDeep()}, 1, nil
	}

	total := pa.Length2D()
	snapTol := total / 1e14

	head, err := pa.Substring(0, frac, snapTol)
	if err != nil {
		return nil, 0, err
	}
	tail, err := pa.Substring(frac, 1, snapTol)
	if err != nil {
		return nil, 0, err
	}
	if head.NPoints() < 2 || tail.NPoints() < 2 {
		return []*Geometry{line.CloneDeep()}, 1, nil
	}

	out := []*Geometry{
		{Kind: KindLineString, Flags: line.Flags, SRID: line.SRID, Rings: []*PointArray{head}},
		{Kind: KindLineString, Flags: line.Flags, SRID: line.SRID, Rings: []*PointArray{tail}},
	}
	return out, 2, nil
}

// SplitLineByMultiPoint applies SplitLineByPoint repeatedly: for each point
// in mp (in order), the current set of line components is scanned and the
// point is applied to the first component it falls on (within tolerance),
// replacing that component with its split pieces. Points that fall on no
// component, or exactly on an existing endpoint, leave the component set
// unchanged (spec.md §4.6).
func SplitLineByMultiPoint(line *Geometry, mp *Geometry) ([]*Geometry, error) {
	if line.Kind != KindLineString {
		return nil, newErr(ErrInvalidInput, "split_by_multipoint requires a LineString, got %s", line.Kind)
	}
	if mp.Kind != KindMultiPoint {
		return nil, newErr(ErrInvalidInput, "split_by_multipoint requires a MultiPoint, got %s", mp.Kind)
	}

	components := []*Geometry{line.CloneDeep()}
	for _, child := range mp.Children {
		p, ok := child.pointCoord()
		if !ok {
			continue
		}
		for i, comp := range components {
			pieces, n, err := SplitLineByPoint(comp, p)
			if err != nil {
				return nil, err
			}
			if n == 2 {
				components = append(components[:i], append(pieces, components[i+1:]...)...)
				break
			}
		}
	}
	return components, nil
}
