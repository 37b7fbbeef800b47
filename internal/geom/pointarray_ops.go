package geom

import "math"

// InsertPoint inserts p at idx, shifting the tail. Capacity growth is
// handled by append's doubling, mirroring the source's manual
// maxpoints-doubling (spec.md §4.1) via Go's slice growth.
func (pa *PointArray) InsertPoint(idx int, p Coord4) error {
	if err := pa.checkMutable(); err != nil {
		return err
	}
	if idx < 0 || idx > len(pa.points) {
		return newErr(ErrInvalidInput, "insert index %d out of range [0,%d]", idx, len(pa.points)).withIndex(idx)
	}
	p = pa.project(p)
	pa.points = append(pa.points, Coord4{})
	copy(pa.points[idx+1:], pa.points[idx:])
	pa.points[idx] = p
	return nil
}

// AppendPoint appends p, skipping it as a no-op if allowDup is false and
// the last point equals p under this array's dimensionality (spec.md §4.1).
func (pa *PointArray) AppendPoint(p Coord4, allowDup bool) error {
	if err := pa.checkMutable(); err != nil {
		return err
	}
	p = pa.project(p)
	if !allowDup && len(pa.points) > 0 {
		last := pa.points[len(pa.points)-1]
		if last.Equal(p, pa.flags) {
			return nil
		}
	}
	pa.points = append(pa.points, p)
	return nil
}

// RemovePoint removes the point at idx.
func (pa *PointArray) RemovePoint(idx int) error {
	if err := pa.checkMutable(); err != nil {
		return err
	}
	if idx < 0 || idx >= len(pa.points) {
		return newErr(ErrInvalidInput, "remove index %d out of range [0,%d)", idx, len(pa.points)).withIndex(idx)
	}
	pa.points = append(pa.points[:idx], pa.points[idx+1:]...)
	return nil
}

// SetPoint overwrites the point at idx.
func (pa *PointArray) SetPoint(idx int, p Coord4) error {
	if err := pa.checkMutable(); err != nil {
		return err
	}
	if idx < 0 || idx >= len(pa.points) {
		return newErr(ErrInvalidInput, "set index %d out of range [0,%d)", idx, len(pa.points)).withIndex(idx)
	}
	pa.points[idx] = pa.project(p)
	return nil
}

// Reverse reverses the point order in place.
func (pa *PointArray) Reverse() error {
	if err := pa.checkMutable(); err != nil {
		return err
	}
	for i, j := 0, len(pa.points)-1; i < j; i, j = i+1, j-1 {
		pa.points[i], pa.points[j] = pa.points[j], pa.points[i]
	}
	return nil
}

// SwapOrdinates exchanges the values of two ordinates at every point, e.g.
// to swap X and Y.
func (pa *PointArray) SwapOrdinates(o1, o2 Ordinate) error {
	if err := pa.checkMutable(); err != nil {
		return err
	}
	for i, p := range pa.points {
		v1, v2 := p.Get(o1), p.Get(o2)
		p = p.Set(o1, v2).Set(o2, v1)
		pa.points[i] = p
	}
	return nil
}

// LongitudeShift maps every x ordinate into [-180, 180] by adding or
// subtracting 360 as needed (spec.md §4.1).
func (pa *PointArray) LongitudeShift() error {
	if err := pa.checkMutable(); err != nil {
		return err
	}
	for i, p := range pa.points {
		for p.X < -180 {
			p.X += 360
		}
		for p.X > 180 {
			p.X -= 360
		}
		pa.points[i] = p
	}
	return nil
}

// AppendArray joins other onto the end of pa. If the last point of pa
// equals the first point of other in 2D, that first point is skipped
// (spec.md §4.1). If the gap is nonzero and gapTolerance > 0, the join
// fails when the gap exceeds it.
func (pa *PointArray) AppendArray(other *PointArray, gapTolerance float64) error {
	if err := pa.checkMutable(); err != nil {
		return err
	}
	if other == nil || other.NPoints() == 0 {
		return nil
	}
	start := 0
	if pa.NPoints() > 0 {
		last := pa.points[len(pa.points)-1]
		first := other.points[0]
		gap := math.Sqrt(last.Dist2DSq(first))
		if gap == 0 {
			start = 1
		} else if gapTolerance > 0 && gap > gapTolerance {
			return newErr(ErrInvariantViolation, "append-array gap %g exceeds tolerance %g", gap, gapTolerance)
		}
	}
	for i := start; i < other.NPoints(); i++ {
		pa.points = append(pa.points, pa.project(other.points[i]))
	}
	return nil
}
