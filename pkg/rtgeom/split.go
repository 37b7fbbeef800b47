package rtgeom

import "github.com/rtgeom/rtgeom/internal/geom"

// SplitLineByPoint splits line at point if point falls exactly on an
// interior vertex-snapped location of line, returning the two resulting
// LineStrings. If point is off the line (farther than the 1e-8 on-line
// tolerance), it returns a single-element slice containing a copy of line
// unmodified; if point lands on an endpoint, a single-element slice is
// likewise returned (spec.md §4.6).
func SplitLineByPoint(line *Geometry, point Coord) ([]*Geometry, error) {
	pieces, n, err := geom.SplitLineByPoint(line.unwrap(), coordToInternal(point))
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return []*Geometry{line.CloneDeep()}, nil
	}
	return wrapAll(pieces), nil
}

// SplitLineByMultiPoint splits line at every point in mp, applying
// SplitLineByPoint repeatedly (spec.md §4.6).
func SplitLineByMultiPoint(line, mp *Geometry) ([]*Geometry, error) {
	pieces, err := geom.SplitLineByMultiPoint(line.unwrap(), mp.unwrap())
	if err != nil {
		return nil, err
	}
	return wrapAll(pieces), nil
}

// Subdivide recursively bisects g by a clipping rectangle until every
// piece has at most maxVertices vertices (minimum 8), depth-limited to 50
// (spec.md §4.6, §8.3.7).
func (g *Geometry) Subdivide(ctx *Context, maxVertices int) ([]*Geometry, error) {
	pieces, err := g.g.Subdivide(ctx.inner, maxVertices)
	if err != nil {
		return nil, err
	}
	return wrapAll(pieces), nil
}

func wrapAll(gs []*geom.Geometry) []*Geometry {
	out := make([]*Geometry, len(gs))
	for i, g := range gs {
		out[i] = wrap(g)
	}
	return out
}
