package rtgeom

import "github.com/rtgeom/rtgeom/internal/geom"

// IsEmpty reports whether g has zero vertices (and, for collections, zero
// children).
func (g *Geometry) IsEmpty() bool { return g.g.IsEmpty() }

// CountVertices recursively counts g's total vertex count.
func (g *Geometry) CountVertices() int { return g.g.CountVertices() }

// Dimension returns the topological dimension: 0 for points, 1 for
// curves, 2 for surfaces.
func (g *Geometry) Dimension() int { return g.g.Dimension() }

// IsClosed reports whether g's start and end points coincide, for kinds
// where closure is meaningful; returns an error for kinds it is not
// defined on.
func (g *Geometry) IsClosed() (bool, error) { return g.g.IsClosed() }

// StartPoint returns g's first vertex.
func (g *Geometry) StartPoint() (Coord, error) {
	c, err := g.g.StartPoint()
	return coordFromInternal(c), err
}

// EndPoint returns g's last vertex.
func (g *Geometry) EndPoint() (Coord, error) {
	c, err := g.g.EndPoint()
	return coordFromInternal(c), err
}

// Length returns the total length of a curve-dimensioned geometry (3D when
// HasZ, otherwise equivalent to Length2D).
func (g *Geometry) Length() (float64, error) { return g.g.LengthOf() }

// Length2D returns the total planar length of a curve-dimensioned
// geometry, ignoring Z.
func (g *Geometry) Length2D() (float64, error) {
	// LengthOf already computes over the geometry's own PointArrays;
	// planar length is obtained by ignoring Z during accumulation, which
	// ArcLength2D/Length2D on PointArray already do. Dispatch mirrors
	// geom.Geometry.LengthOf but calls the 2D primitives.
	return length2D(g.g)
}

func length2D(gg *geom.Geometry) (float64, error) {
	switch gg.Kind {
	case geom.KindLineString:
		if len(gg.Rings) == 0 {
			return 0, nil
		}
		return gg.Rings[0].Length2D(), nil
	case geom.KindCircularString:
		if len(gg.Rings) == 0 {
			return 0, nil
		}
		return gg.Rings[0].ArcLength2D()
	case geom.KindCompoundCurve, geom.KindMultiLineString, geom.KindMultiCurve, geom.KindGeometryCollection:
		var total float64
		for _, c := range gg.Children {
			l, err := length2D(c)
			if err != nil {
				return 0, err
			}
			total += l
		}
		return total, nil
	default:
		return 0, nil
	}
}

// Perimeter returns the total boundary length of a surface geometry.
func (g *Geometry) Perimeter() (float64, error) { return g.g.Perimeter() }

// Area returns the planar area of a surface-dimensioned geometry.
func (g *Geometry) Area() (float64, error) { return g.g.Area() }

// BBox is a geometry's axis-aligned 2D/3D/4D bounding box.
type BBox struct {
	XMin, XMax float64
	YMin, YMax float64
	ZMin, ZMax float64
	MMin, MMax float64
}

func bboxFromInternal(b geom.GBox) BBox {
	return BBox{
		XMin: b.XMin, XMax: b.XMax,
		YMin: b.YMin, YMax: b.YMax,
		ZMin: b.ZMin, ZMax: b.ZMax,
		MMin: b.MMin, MMax: b.MMax,
	}
}

// BoundingBox returns g's bounding box, computing and caching it lazily.
func (g *Geometry) BoundingBox() BBox { return bboxFromInternal(g.g.BoundingBox()) }

// MinDistance2D returns the minimum planar distance between a and b, plus
// the witnessing closest points (p1 on a, p2 on b).
func MinDistance2D(ctx *Context, a, b *Geometry) (dist float64, p1, p2 Coord, err error) {
	d, c1, c2, err := geom.Dist2D(ctx.inner, a.unwrap(), b.unwrap(), geom.DistMin, 0)
	return d, coordFromInternal(c1), coordFromInternal(c2), err
}

// MaxDistance2D returns the maximum planar distance between a and b
// (their "diameter" pair), plus the witnessing furthest points.
func MaxDistance2D(ctx *Context, a, b *Geometry) (dist float64, p1, p2 Coord, err error) {
	d, c1, c2, err := geom.Dist2D(ctx.inner, a.unwrap(), b.unwrap(), geom.DistMax, 0)
	return d, coordFromInternal(c1), coordFromInternal(c2), err
}

// DWithin2D reports whether a and b are within tol of each other,
// short-circuiting the search as soon as that's established (spec.md §8.3
// "distance vs dwithin").
func DWithin2D(ctx *Context, a, b *Geometry, tol float64) (bool, error) {
	d, _, _, err := geom.Dist2D(ctx.inner, a.unwrap(), b.unwrap(), geom.DistMin, tol)
	if err != nil {
		return false, err
	}
	return d <= tol, nil
}

// ClosestPoint returns the point on a closest to b, as a Point Geometry.
func ClosestPoint(ctx *Context, a, b *Geometry) (*Geometry, error) {
	_, p1, _, err := MinDistance2D(ctx, a, b)
	if err != nil {
		return nil, err
	}
	return newPointGeometry(a.g.SRID, a.g.Flags, p1)
}

// ClosestLine returns the two-point LineString connecting the closest
// points of a and b.
func ClosestLine(ctx *Context, a, b *Geometry) (*Geometry, error) {
	_, p1, p2, err := MinDistance2D(ctx, a, b)
	if err != nil {
		return nil, err
	}
	return newTwoPointLine(a.g.SRID, a.g.Flags, p1, p2)
}

// FurthestPoint returns the point on a furthest from b.
func FurthestPoint(ctx *Context, a, b *Geometry) (*Geometry, error) {
	_, p1, _, err := MaxDistance2D(ctx, a, b)
	if err != nil {
		return nil, err
	}
	return newPointGeometry(a.g.SRID, a.g.Flags, p1)
}

// FurthestLine returns the two-point LineString connecting the furthest
// points of a and b.
func FurthestLine(ctx *Context, a, b *Geometry) (*Geometry, error) {
	_, p1, p2, err := MaxDistance2D(ctx, a, b)
	if err != nil {
		return nil, err
	}
	return newTwoPointLine(a.g.SRID, a.g.Flags, p1, p2)
}

func newPointGeometry(srid int32, flags geom.Flags, c Coord) (*Geometry, error) {
	pa := geom.NewPointArrayFrom(flags.HasZ, flags.HasM, []geom.Coord4{coordToInternal(c)})
	gg, err := geom.NewPoint(srid, pa)
	if err != nil {
		return nil, err
	}
	return wrap(gg), nil
}

func newTwoPointLine(srid int32, flags geom.Flags, c1, c2 Coord) (*Geometry, error) {
	pa := geom.NewPointArrayFrom(flags.HasZ, flags.HasM, []geom.Coord4{coordToInternal(c1), coordToInternal(c2)})
	gg, err := geom.NewLineString(srid, pa)
	if err != nil {
		return nil, err
	}
	return wrap(gg), nil
}
