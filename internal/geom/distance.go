// Distance engine (C7): recursive min/max planar distance between any two
// geometries, with a brute-force kernel and a sweep-line fast path for
// disjoint linear pairs. Grounded on original_source/measures.c, the
// librttopo module this component distills; expressed here as ordinary
// Go control flow rather than the C state-machine with output parameters.
package geom

import "math"

// DistMode selects whether Dist2D searches for the closest or farthest
// pair of points (spec.md §4.4).
type DistMode int

const (
	DistMin DistMode = iota
	DistMax
)

// DistState accumulates the running best distance and its witnessing pair
// during a Dist2D search. P1 is always bound to the geometry passed as
// Dist2D's first argument, regardless of how recursion reordered the
// comparisons that produced it — the "twisted" sign of spec.md §4.4 is
// resolved here as a single finalize step (finalize) rather than a sign
// threaded through every recursive call, per the open-question decision
// recorded in DESIGN.md.
type DistState struct {
	Mode      DistMode
	Tolerance float64
	Distance  float64
	p1, p2    Coord4
	swapped   bool
	found     bool
}

func newDistState(mode DistMode, tolerance float64) *DistState {
	d := &DistState{Mode: mode, Tolerance: tolerance}
	if mode == DistMin {
		d.Distance = math.Inf(1)
	} else {
		d.Distance = math.Inf(-1)
	}
	return d
}

// shouldStop reports whether the MIN-mode tolerance short-circuit has
// fired: further searching cannot improve the caller's answer once the
// best distance found is already within tolerance.
func (d *DistState) shouldStop() bool {
	return d.Mode == DistMin && d.Tolerance > 0 && d.found && d.Distance <= d.Tolerance
}

// consider updates the running best with the pair (a from side 1, b from
// side 2) if it improves on the current extremum.
func (d *DistState) consider(a, b Coord4) {
	dist := a.Dist2D(b)
	better := (d.Mode == DistMin && dist < d.Distance) || (d.Mode == DistMax && dist > d.Distance)
	if better || !d.found {
		d.Distance, d.p1, d.p2, d.found = dist, a, b, true
	}
}

// considerExact forces a zero-distance MIN result at the given touching
// point (used by intersection detection and containment short circuits).
func (d *DistState) considerExact(p Coord4, dist float64) {
	if d.Mode != DistMin {
		return
	}
	if !d.found || dist < d.Distance {
		d.Distance, d.p1, d.p2, d.found = dist, p, p, true
	}
}

// finalize returns the witnessing pair in the caller-facing order: p1 from
// argument 1, p2 from argument 2, honoring any side-swap recursion
// performed internally.
func (d *DistState) finalize() (p1, p2 Coord4) {
	if d.swapped {
		return d.p2, d.p1
	}
	return d.p1, d.p2
}

// Dist2D computes the MIN or MAX planar distance between a and b, along
// with a witnessing pair of points, honoring tolerance as a MIN-mode
// dwithin short circuit (spec.md §4.4). Either side may be any of the 15
// geometry kinds; collections are iterated recursively.
func Dist2D(ctx *Context, a, b *Geometry, mode DistMode, tolerance float64) (distance float64, p1, p2 Coord4, err error) {
	d := newDistState(mode, tolerance)
	if err := dist2DRecursive(ctx, a, b, d); err != nil {
		return 0, Coord4{}, Coord4{}, err
	}
	if !d.found {
		return 0, Coord4{}, Coord4{}, newErr(ErrInvalidInput, "distance between empty geometries is undefined")
	}
	p1, p2 = d.finalize()
	return d.Distance, p1, p2, nil
}

func dist2DRecursive(ctx *Context, a, b *Geometry, d *DistState) error {
	if err := ctx.checkInterrupt(); err != nil {
		return err
	}
	if a.IsEmpty() || b.IsEmpty() {
		return nil
	}
	if isDistCollection(a.Kind) {
		for _, c := range a.Children {
			if err := dist2DRecursive(ctx, c, b, d); err != nil {
				return err
			}
			if d.shouldStop() {
				return nil
			}
		}
		return nil
	}
	if isDistCollection(b.Kind) {
		for _, c := range b.Children {
			if err := dist2DRecursive(ctx, a, c, d); err != nil {
				return err
			}
			if d.shouldStop() {
				return nil
			}
		}
		return nil
	}
	return dist2DPrimitivePair(a, b, d)
}

// isDistCollection reports whether kind should be decomposed into children
// before the 5x5 primitive dispatch runs (spec.md §4.4 step 1): every
// collection-shaped kind except the three that are themselves treated as
// atomic curve/surface primitives for distance purposes (Polygon,
// CurvePolygon, CompoundCurve keep their own edge structure).
func isDistCollection(k GeomKind) bool {
	switch k {
	case KindMultiPoint, KindMultiLineString, KindMultiPolygon, KindMultiCurve,
		KindMultiSurface, KindPolyhedralSurface, KindTin, KindGeometryCollection:
		return true
	default:
		return false
	}
}

// distCategory buckets a primitive geometry kind into one of the three
// shapes the 5x5 matrix distinguishes (spec.md §4.4 step 2).
type distCategory int

const (
	catPoint distCategory = iota
	catCurve
	catSurface
)

func categoryOf(k GeomKind) distCategory {
	switch k {
	case KindPoint:
		return catPoint
	case KindPolygon, KindTriangle, KindCurvePolygon:
		return catSurface
	default:
		return catCurve
	}
}

func dist2DPrimitivePair(a, b *Geometry, d *DistState) error {
	ca, cb := categoryOf(a.Kind), categoryOf(b.Kind)

	switch {
	case ca == catPoint && cb == catPoint:
		pa, _ := a.pointCoord()
		pb, _ := b.pointCoord()
		d.consider(pa, pb)
		return nil

	case ca == catPoint && cb == catCurve:
		p, _ := a.pointCoord()
		return considerPointVsEdges(d, p, curveEdges(b))

	case ca == catCurve && cb == catPoint:
		p, _ := b.pointCoord()
		return considerPointVsEdges(d, p, curveEdges(a))

	case ca == catPoint && cb == catSurface:
		p, _ := a.pointCoord()
		return considerPointVsSurface(d, p, b)

	case ca == catSurface && cb == catPoint:
		p, _ := b.pointCoord()
		d.swapped = !d.swapped
		err := considerPointVsSurface(d, p, a)
		d.swapped = !d.swapped
		return err

	case ca == catCurve && cb == catCurve:
		return considerCurveVsCurve(d, a, b)

	case ca == catCurve && cb == catSurface:
		return considerEdgesVsSurface(d, curveEdges(a), b)

	case ca == catSurface && cb == catCurve:
		d.swapped = !d.swapped
		err := considerEdgesVsSurface(d, curveEdges(b), a)
		d.swapped = !d.swapped
		return err

	default: // surface vs surface
		return surfaceVsSurface(d, a, b)
	}
}

// pointCoord returns g's single coordinate when g is a non-empty Point.
func (g *Geometry) pointCoord() (Coord4, bool) {
	if g.Kind != KindPoint || len(g.Rings) == 0 || g.Rings[0].NPoints() == 0 {
		return Coord4{}, false
	}
	return g.Rings[0].At(0), true
}
