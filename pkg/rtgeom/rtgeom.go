// Package rtgeom provides a clean public API over the rtgeom core geometry
// engine: construction, codecs (WKT/WKB/TWKB), measurement, and transforms
// for planar point/line/arc/polygon geometries and their collections.
//
// Create or decode a Geometry with the From* functions, inspect or
// transform it with its methods, and re-encode with the To* functions.
// Operations that can fail, loop unboundedly, or need cooperative
// cancellation take a *Context as their first argument; DefaultContext
// returns one with no-op hooks suitable for most callers.
package rtgeom

import (
	"github.com/rtgeom/rtgeom/internal/geom"
)

// Geometry is a planar 2D/3D vector shape: a point, line, arc, polygon,
// triangle, or one of their typed collections. The zero value is not a
// valid Geometry; obtain one from a constructor or a From* decoder.
//
// Geometry wraps the engine's internal tagged-variant representation. All
// fields are private; use the exported methods.
type Geometry struct {
	g *geom.Geometry
}

func wrap(g *geom.Geometry) *Geometry {
	if g == nil {
		return nil
	}
	return &Geometry{g: g}
}

func (g *Geometry) unwrap() *geom.Geometry {
	if g == nil {
		return nil
	}
	return g.g
}

// Kind identifies which of the 15 geometry alternatives a Geometry holds.
type Kind int

const (
	KindPoint Kind = iota
	KindLineString
	KindCircularString
	KindPolygon
	KindTriangle
	KindMultiPoint
	KindMultiLineString
	KindMultiPolygon
	KindCompoundCurve
	KindCurvePolygon
	KindMultiCurve
	KindMultiSurface
	KindPolyhedralSurface
	KindTin
	KindGeometryCollection
)

func kindFromInternal(k geom.GeomKind) Kind { return Kind(k) }

// String returns the SQL/MM type name, e.g. "LineString".
func (k Kind) String() string { return geom.GeomKind(k).String() }

// Kind reports which geometry alternative g holds.
func (g *Geometry) Kind() Kind { return kindFromInternal(g.g.Kind) }

// SRID returns the geometry's spatial reference identifier, or
// UnknownSRID if none was set.
func (g *Geometry) SRID() int32 { return g.g.SRID }

// UnknownSRID is the sentinel SRID value meaning "no spatial reference
// system specified" (spec.md §3.1).
const UnknownSRID = geom.UnknownSRID

// Coord is a 2D/3D/4D coordinate: x, y, and optionally z and/or m depending
// on the owning Geometry's dimensionality.
type Coord struct {
	X, Y, Z, M float64
}

func coordFromInternal(c geom.Coord4) Coord {
	return Coord{X: c.X, Y: c.Y, Z: c.Z, M: c.M}
}

func coordToInternal(c Coord) geom.Coord4 {
	return geom.Coord4{X: c.X, Y: c.Y, Z: c.Z, M: c.M}
}

// HasZ reports whether g carries a Z ordinate.
func (g *Geometry) HasZ() bool { return g.g.Flags.HasZ }

// HasM reports whether g carries an M ordinate.
func (g *Geometry) HasM() bool { return g.g.Flags.HasM }
