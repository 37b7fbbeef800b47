package geom

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// GridSpec defines a snap-to-grid cell size per axis. A zero size on an
// axis disables snapping on that axis (spec.md §4.1).
type GridSpec struct {
	OriginX, OriginY, OriginZ, OriginM float64
	SizeX, SizeY, SizeZ, SizeM         float64
}

func snapAxis(v, origin, size float64) float64 {
	if size == 0 {
		return v
	}
	k := math.Round((v - origin) / size)
	return origin + k*size
}

// SnapToGrid rounds each coordinate to the nearest grid cell per axis, then
// collapses consecutive coincident points. Per spec.md §9's resolution of
// the open question: z/m participate in the post-snap equality check
// unless that axis's grid size is zero AND the array lacks that dimension.
func (pa *PointArray) SnapToGrid(g GridSpec) *PointArray {
	out := NewPointArray(pa.flags.HasZ, pa.flags.HasM, len(pa.points))
	for _, p := range pa.points {
		snapped := Coord4{
			X: snapAxis(p.X, g.OriginX, g.SizeX),
			Y: snapAxis(p.Y, g.OriginY, g.SizeY),
		}
		if pa.flags.HasZ {
			snapped.Z = snapAxis(p.Z, g.OriginZ, g.SizeZ)
		}
		if pa.flags.HasM {
			snapped.M = snapAxis(p.M, g.OriginM, g.SizeM)
		}

		if len(out.points) > 0 {
			prev := out.points[len(out.points)-1]
			zParticipates := pa.flags.HasZ || g.SizeZ != 0
			mParticipates := pa.flags.HasM || g.SizeM != 0
			same := prev.X == snapped.X && prev.Y == snapped.Y
			if same && zParticipates {
				same = prev.Z == snapped.Z
			}
			if same && mParticipates {
				same = prev.M == snapped.M
			}
			if same {
				continue
			}
		}
		out.points = append(out.points, snapped)
	}
	return out
}

// Affine2D applies the 3x3 homogeneous matrix m (row-major, last row
// implicitly [0 0 1]) to every point's x/y in place, via gonum/mat.
func (pa *PointArray) Affine2D(m *mat.Dense) error {
	if err := pa.checkMutable(); err != nil {
		return err
	}
	r, c := m.Dims()
	if r != 3 || c != 3 {
		return newErr(ErrInvalidInput, "affine2d requires a 3x3 matrix, got %dx%d", r, c)
	}
	for i, p := range pa.points {
		v := mat.NewVecDense(3, []float64{p.X, p.Y, 1})
		var out mat.VecDense
		out.MulVec(m, v)
		p.X, p.Y = out.AtVec(0), out.AtVec(1)
		pa.points[i] = p
	}
	return nil
}

// Affine3D applies the 4x4 homogeneous matrix m to every point's x/y/z in
// place.
func (pa *PointArray) Affine3D(m *mat.Dense) error {
	if err := pa.checkMutable(); err != nil {
		return err
	}
	r, c := m.Dims()
	if r != 4 || c != 4 {
		return newErr(ErrInvalidInput, "affine3d requires a 4x4 matrix, got %dx%d", r, c)
	}
	for i, p := range pa.points {
		v := mat.NewVecDense(4, []float64{p.X, p.Y, p.Z, 1})
		var out mat.VecDense
		out.MulVec(m, v)
		p.X, p.Y, p.Z = out.AtVec(0), out.AtVec(1), out.AtVec(2)
		pa.points[i] = p
	}
	return nil
}

// Scale multiplies every ordinate present by the corresponding factor.
func (pa *PointArray) Scale(fx, fy, fz, fm float64) error {
	if err := pa.checkMutable(); err != nil {
		return err
	}
	for i, p := range pa.points {
		p.X *= fx
		p.Y *= fy
		if pa.flags.HasZ {
			p.Z *= fz
		}
		if pa.flags.HasM {
			p.M *= fm
		}
		pa.points[i] = p
	}
	return nil
}

// ForceDims returns a new array with the requested hasZ/hasM, filling
// added ordinates with 0.0 and dropping ordinates no longer present
// (spec.md §3.3/§8.1).
func (pa *PointArray) ForceDims(hasZ, hasM bool) *PointArray {
	out := NewPointArray(hasZ, hasM, len(pa.points))
	for _, p := range pa.points {
		np := Coord4{X: p.X, Y: p.Y}
		if hasZ {
			if pa.flags.HasZ {
				np.Z = p.Z
			}
		}
		if hasM {
			if pa.flags.HasM {
				np.M = p.M
			}
		}
		out.points = append(out.points, np)
	}
	return out
}

// Substring returns the sub-polyline between fractional positions from and
// to (each in [0,1], measured by cumulative 2D length), snapping to an
// existing vertex when within snapTol of it (spec.md §4.1).
func (pa *PointArray) Substring(from, to, snapTol float64) (*PointArray, error) {
	if from < 0 || from > 1 || to < 0 || to > 1 {
		return nil, newErr(ErrInvalidInput, "substring fractions must be in [0,1], got %g,%g", from, to)
	}
	total := pa.Length2D()
	if total == 0 {
		return pa.CloneDeep(), nil
	}
	reverse := from > to
	if reverse {
		from, to = to, from
	}
	fromLen, toLen := from*total, to*total

	out := NewPointArray(pa.flags.HasZ, pa.flags.HasM, len(pa.points))
	var cum float64
	started := false
	for i := 1; i < len(pa.points); i++ {
		p1, p2 := pa.points[i-1], pa.points[i]
		segLen := p1.Dist2D(p2)
		segStart, segEnd := cum, cum+segLen

		if !started && fromLen >= segStart-snapTol && fromLen <= segEnd+snapTol {
			t := 0.0
			if segLen > 0 {
				t = (fromLen - segStart) / segLen
				if t < 0 {
					t = 0
				} else if t > 1 {
					t = 1
				}
			}
			out.points = append(out.points, lerp(p1, p2, t))
			started = true
		}
		if started && segEnd > fromLen {
			if toLen <= segEnd+snapTol {
				t := 1.0
				if segLen > 0 {
					t = (toLen - segStart) / segLen
					if t < 0 {
						t = 0
					} else if t > 1 {
						t = 1
					}
				}
				last := out.points[len(out.points)-1]
				cand := lerp(p1, p2, t)
				if !last.Equal2D(cand) {
					out.points = append(out.points, cand)
				}
				break
			}
			out.points = append(out.points, p2)
		}
		cum = segEnd
	}

	if reverse {
		_ = out.Reverse()
	}
	return out, nil
}

// LocatePoint returns the closest fraction along the array (in [0,1]) to
// q, plus the projected 4D point and the minimum 2D distance (spec.md
// §4.1). Uses the shared ProjectPointToSegment kernel per spec.md §12.
func (pa *PointArray) LocatePoint(q Coord4) (frac float64, projected Coord4, dist float64, err error) {
	n := len(pa.points)
	if n == 0 {
		return 0, Coord4{}, 0, newErr(ErrInvalidInput, "locate_point on empty array")
	}
	if n == 1 {
		return 0, pa.points[0], q.Dist2D(pa.points[0]), nil
	}
	total := pa.Length2D()
	best := math.Inf(1)
	var bestLen float64
	var cum float64
	for i := 1; i < n; i++ {
		p1, p2 := pa.points[i-1], pa.points[i]
		cp, t, d := ProjectPointToSegment(p1, p2, q)
		if d < best {
			best = d
			projected = cp
			bestLen = cum + t*p1.Dist2D(p2)
		}
		cum += p1.Dist2D(p2)
	}
	if total == 0 {
		return 0, projected, best, nil
	}
	return bestLen / total, projected, best, nil
}
