package rtgeom

import "github.com/rtgeom/rtgeom/internal/geom"

// DefaultArcSegments is the points-per-quadrant Stroke uses when the
// caller doesn't specify one, matching the SFS-compatible default of 32
// quarter-circle segments (spec.md §4.9).
const DefaultArcSegments = geom.DefaultArcSegments

// HasArc reports whether g (recursively) contains a CircularString
// component.
func (g *Geometry) HasArc() bool { return g.g.HasArc() }

// Stroke replaces every arc in g with a polyline approximation, perQuad
// segments per quarter-circle (spec.md §4.5, §6.4).
func (g *Geometry) Stroke(perQuad int) (*Geometry, error) {
	out, err := g.g.Stroke(perQuad)
	if err != nil {
		return nil, err
	}
	return wrap(out), nil
}

// Unstroke attempts to detect circular arcs within a stroked LineString,
// returning a CircularString/CompoundCurve equivalent where arcs are
// found (spec.md §4.5, §6.4).
func (g *Geometry) Unstroke() (*Geometry, error) {
	out, err := g.g.Unstroke()
	if err != nil {
		return nil, err
	}
	return wrap(out), nil
}
