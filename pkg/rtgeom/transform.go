package rtgeom

import (
	"github.com/rtgeom/rtgeom/internal/geom"
	"gonum.org/v1/gonum/mat"
)

// Reverse returns a copy of g with vertex order reversed, recursively for
// collections.
func (g *Geometry) Reverse() *Geometry { return wrap(g.g.Reverse()) }

// ForceDims returns a copy of g coerced to the requested Z/M
// dimensionality; added ordinates are 0.0.
func (g *Geometry) ForceDims(hasZ, hasM bool) *Geometry { return wrap(g.g.ForceDims(hasZ, hasM)) }

// Force2D drops Z and M.
func (g *Geometry) Force2D() *Geometry { return g.ForceDims(false, false) }

// Force3DZ keeps/adds Z, drops M.
func (g *Geometry) Force3DZ() *Geometry { return g.ForceDims(true, false) }

// Force3DM drops Z, keeps/adds M.
func (g *Geometry) Force3DM() *Geometry { return g.ForceDims(false, true) }

// Force4D keeps/adds both Z and M.
func (g *Geometry) Force4D() *Geometry { return g.ForceDims(true, true) }

// ForceClockwise normalizes Polygon/MultiPolygon/PolyhedralSurface/Tin ring
// winding: outer rings CCW, holes CW (spec.md §3.3, §8.3).
func (g *Geometry) ForceClockwise() *Geometry { return wrap(g.g.ForceClockwise()) }

// Homogenize re-buckets a GeometryCollection into the tightest equivalent
// type; other kinds are returned unchanged (spec.md §4.2).
func (g *Geometry) Homogenize() *Geometry { return wrap(g.g.Homogenize()) }

// AsMulti wraps a singleton geometry in its typed multi-form.
func (g *Geometry) AsMulti() *Geometry { return wrap(g.g.AsMulti()) }

// AsCurve promotes a linear geometry to its curved-type tag.
func (g *Geometry) AsCurve() *Geometry { return wrap(g.g.AsCurve()) }

// ForceSFS strokes every curved component to a linear equivalent for
// SFS 1.1/1.2 compatibility (spec.md §4.2).
func (g *Geometry) ForceSFS(version int) (*Geometry, error) {
	out, err := g.g.ForceSFS(version)
	if err != nil {
		return nil, err
	}
	return wrap(out), nil
}

// Equal reports bit-exact structural equality with o.
func (g *Geometry) Equal(o *Geometry) bool { return g.g.Equal(o.g) }

// CloneDeep returns a fully independent copy of g.
func (g *Geometry) CloneDeep() *Geometry { return wrap(g.g.CloneDeep()) }

// CloneShallow returns a copy sharing PointArrays (marked read-only) with
// g. g must outlive the returned value.
func (g *Geometry) CloneShallow() *Geometry { return wrap(g.g.CloneShallow()) }

// Simplify returns a Douglas-Peucker-simplified copy of g within the given
// tolerance. If preserveCollapsed is false and a ring would collapse to
// its bare minimum point count, Simplify returns (nil, nil) (spec.md §8.4
// scenario 4).
func (g *Geometry) Simplify(tolerance float64, preserveCollapsed bool) (*Geometry, error) {
	out, err := g.g.Simplify(tolerance, preserveCollapsed)
	if err != nil {
		return nil, err
	}
	return wrap(out), nil
}

// EffectiveArea returns the per-vertex Visvalingam effective area for a
// LineString/CircularString-shaped geometry; defined only on a single
// PointArray. Endpoints always report +Inf (never eliminated).
func (g *Geometry) EffectiveArea() ([]float64, error) {
	if len(g.g.Rings) != 1 {
		return nil, &geom.GeomError{Kind: geom.ErrUnsupportedGeometryType, Msg: "effective_area requires a single-ring geometry"}
	}
	return g.g.Rings[0].EffectiveArea()
}

// EffectiveAreaSimplify simplifies g by the Visvalingam effective-area
// method, keeping only vertices whose effective area is >= threshold
// (spec.md §4.1, §8.3.2).
func (g *Geometry) EffectiveAreaSimplify(threshold float64) (*Geometry, error) {
	out, err := g.g.EffectiveAreaSimplify(threshold)
	if err != nil {
		return nil, err
	}
	return wrap(out), nil
}

// RemoveRepeatedPoints drops consecutive duplicate vertices within
// tolerance throughout g's tree.
func (g *Geometry) RemoveRepeatedPoints(tolerance float64) *Geometry {
	return wrap(g.g.RemoveRepeatedPoints(tolerance))
}

// Segmentize2D inserts intermediate vertices so no segment exceeds dist
// (spec.md §8.3.6).
func (g *Geometry) Segmentize2D(dist float64) (*Geometry, error) {
	out, err := g.g.Segmentize2D(dist)
	if err != nil {
		return nil, err
	}
	return wrap(out), nil
}

// GridSpec defines a snap-to-grid cell size per axis; a zero size on an
// axis disables snapping on that axis.
type GridSpec struct {
	OriginX, OriginY, OriginZ, OriginM float64
	SizeX, SizeY, SizeZ, SizeM         float64
}

func (s GridSpec) internal() geom.GridSpec {
	return geom.GridSpec{
		OriginX: s.OriginX, OriginY: s.OriginY, OriginZ: s.OriginZ, OriginM: s.OriginM,
		SizeX: s.SizeX, SizeY: s.SizeY, SizeZ: s.SizeZ, SizeM: s.SizeM,
	}
}

// SnapToGrid rounds every coordinate in g to the nearest grid cell per
// axis, collapsing consecutive coincident points (spec.md §4.1).
func (g *Geometry) SnapToGrid(spec GridSpec) *Geometry {
	return wrap(g.g.SnapToGrid(spec.internal()))
}

// Affine2D applies a 3x3 homogeneous matrix (row-major, 3 rows x 3 cols)
// to every 2D coordinate in g, leaving z/m untouched.
func (g *Geometry) Affine2D(m *mat.Dense) (*Geometry, error) {
	out, err := g.g.Affine2D(m)
	if err != nil {
		return nil, err
	}
	return wrap(out), nil
}

// Affine3D applies a 4x4 homogeneous matrix to every 3D coordinate in g.
func (g *Geometry) Affine3D(m *mat.Dense) (*Geometry, error) {
	out, err := g.g.Affine3D(m)
	if err != nil {
		return nil, err
	}
	return wrap(out), nil
}

// Scale multiplies every ordinate in g by the given per-axis factor.
func (g *Geometry) Scale(fx, fy, fz, fm float64) (*Geometry, error) {
	out, err := g.g.Scale(fx, fy, fz, fm)
	if err != nil {
		return nil, err
	}
	return wrap(out), nil
}

// LongitudeShift maps every x ordinate in g into [-180, 180].
func (g *Geometry) LongitudeShift() (*Geometry, error) {
	out, err := g.g.LongitudeShift()
	if err != nil {
		return nil, err
	}
	return wrap(out), nil
}

// Substring returns the portion of a LineString between fractional
// distances from/to along its length, snapping to an existing vertex
// within snapTol (spec.md §4.1).
func (g *Geometry) Substring(from, to, snapTol float64) (*Geometry, error) {
	out, err := g.g.Substring(from, to, snapTol)
	if err != nil {
		return nil, err
	}
	return wrap(out), nil
}

// LocatePoint returns the fraction along a LineString closest to q, the
// projected 4D point, and the distance from q to that projection.
func (g *Geometry) LocatePoint(q Coord) (frac float64, projected Coord, dist float64, err error) {
	f, p, d, err := g.g.LocatePoint(coordToInternal(q))
	return f, coordFromInternal(p), d, err
}
