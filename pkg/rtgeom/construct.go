package rtgeom

import "github.com/rtgeom/rtgeom/internal/geom"

func coordsToInternal(hasZ, hasM bool, pts []Coord) []geom.Coord4 {
	out := make([]geom.Coord4, len(pts))
	for i, p := range pts {
		out[i] = coordToInternal(p)
	}
	return out
}

// NewPoint builds a Point geometry from zero or one coordinate.
func NewPoint(srid int32, hasZ, hasM bool, pts ...Coord) (*Geometry, error) {
	pa := geom.NewPointArrayFrom(hasZ, hasM, coordsToInternal(hasZ, hasM, pts))
	g, err := geom.NewPoint(srid, pa)
	if err != nil {
		return nil, err
	}
	return wrap(g), nil
}

// NewLineString builds a LineString from zero or at least two
// coordinates.
func NewLineString(srid int32, hasZ, hasM bool, pts []Coord) (*Geometry, error) {
	pa := geom.NewPointArrayFrom(hasZ, hasM, coordsToInternal(hasZ, hasM, pts))
	g, err := geom.NewLineString(srid, pa)
	if err != nil {
		return nil, err
	}
	return wrap(g), nil
}

// NewCircularString builds a CircularString from zero or an odd count (>=
// 3) of coordinates.
func NewCircularString(srid int32, hasZ, hasM bool, pts []Coord) (*Geometry, error) {
	pa := geom.NewPointArrayFrom(hasZ, hasM, coordsToInternal(hasZ, hasM, pts))
	g, err := geom.NewCircularString(srid, pa)
	if err != nil {
		return nil, err
	}
	return wrap(g), nil
}

// NewPolygon builds a Polygon from closed rings; rings[0] is the outer
// ring, the rest are holes.
func NewPolygon(srid int32, hasZ, hasM bool, rings [][]Coord) (*Geometry, error) {
	ras := make([]*geom.PointArray, len(rings))
	for i, r := range rings {
		ras[i] = geom.NewPointArrayFrom(hasZ, hasM, coordsToInternal(hasZ, hasM, r))
	}
	g, err := geom.NewPolygon(srid, hasZ, hasM, ras)
	if err != nil {
		return nil, err
	}
	return wrap(g), nil
}

// NewTriangle builds a Triangle from exactly 4 closed coordinates.
func NewTriangle(srid int32, hasZ, hasM bool, pts []Coord) (*Geometry, error) {
	pa := geom.NewPointArrayFrom(hasZ, hasM, coordsToInternal(hasZ, hasM, pts))
	g, err := geom.NewTriangle(srid, pa)
	if err != nil {
		return nil, err
	}
	return wrap(g), nil
}

// NewCollection builds an empty collection geometry of the given kind
// (MultiPoint, MultiLineString, MultiPolygon, CompoundCurve, CurvePolygon,
// MultiCurve, MultiSurface, PolyhedralSurface, Tin, or
// GeometryCollection); append members with AddGeom.
func NewCollection(kind Kind, srid int32, hasZ, hasM bool) *Geometry {
	return wrap(geom.ConstructEmpty(geom.GeomKind(kind), srid, hasZ, hasM))
}

// AddGeom appends child to a collection-kind Geometry, rejecting
// incompatible kinds per the spec's add_geom compatibility matrix (spec.md
// §3.3).
func (g *Geometry) AddGeom(child *Geometry) error {
	return g.g.AddGeom(child.g)
}
