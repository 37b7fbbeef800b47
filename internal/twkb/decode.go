package twkb

import (
	"math"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/rtgeom/rtgeom/internal/geom"
)

type reader struct {
	buf []byte
	pos int
}

func (r *reader) byte() (byte, error) {
	if r.pos >= len(r.buf) {
		return 0, parseErrAt(r.pos, "truncated TWKB: expected 1 byte")
	}
	b := r.buf[r.pos]
	r.pos++
	return b, nil
}

func (r *reader) varint() (uint64, error) {
	v, n := protowire.ConsumeVarint(r.buf[r.pos:])
	if n < 0 {
		return 0, parseErrAt(r.pos, "truncated or malformed TWKB varint")
	}
	r.pos += n
	return v, nil
}

func (r *reader) zigzag() (int64, error) {
	v, err := r.varint()
	if err != nil {
		return 0, err
	}
	return protowire.DecodeZigZag(v), nil
}

// Result carries a decoded geometry plus the id-list, when present, since
// ids belong to the wire geometry rather than the in-memory one (spec.md
// §4.9 ids are a TWKB-only concept with no internal/geom analogue).
type Result struct {
	Geom *geom.Geometry
	IDs  []int64
}

// Decode parses a TWKB buffer per spec.md §4.9.
func Decode(data []byte) (*Result, error) {
	r := &reader{buf: data}

	b0, err := r.byte()
	if err != nil {
		return nil, err
	}
	kind, err := kindFromNibble(b0 & 0x0F)
	if err != nil {
		return nil, err
	}
	xyPrec := decodeNibble(b0 >> 4)

	flags, err := r.byte()
	if err != nil {
		return nil, err
	}
	hasBBox := flags&flagBBox != 0
	hasSize := flags&flagSize != 0
	hasIDList := flags&flagIDList != 0
	extended := flags&flagExtendedPrec != 0
	empty := flags&flagEmpty != 0

	hasZ, hasM := false, false
	zPrec, mPrec := 0, 0
	if extended {
		ext, err := r.byte()
		if err != nil {
			return nil, err
		}
		hasZ = ext&0x01 != 0
		hasM = ext&0x02 != 0
		zPrec = decodeTriBit((ext >> 2) & 0x07)
		mPrec = decodeTriBit((ext >> 5) & 0x07)
	}

	g := geom.ConstructEmpty(kind, geom.UnknownSRID, hasZ, hasM)
	if empty {
		return &Result{Geom: g}, nil
	}

	q := quantizer{
		xyScale: math.Pow(10, float64(xyPrec)),
		zScale:  math.Pow(10, float64(zPrec)),
		mScale:  math.Pow(10, float64(mPrec)),
	}

	if hasBBox {
		if err := skipBBox(r, hasZ, hasM); err != nil {
			return nil, err
		}
	}

	if hasSize {
		if _, err := r.varint(); err != nil {
			return nil, err
		}
	}

	var ids []int64
	a := &accum{}
	if hasIDList {
		n, err := r.varint()
		if err != nil {
			return nil, err
		}
		ids = make([]int64, n)
		for i := range ids {
			v, err := r.zigzag()
			if err != nil {
				return nil, err
			}
			ids[i] = v
		}
		g2 := &geom.Geometry{Kind: kind, Flags: geom.Flags{HasZ: hasZ, HasM: hasM}, SRID: geom.UnknownSRID}
		if err := decodeChildrenInto(r, g2, q, a, int(n)); err != nil {
			return nil, err
		}
		return &Result{Geom: g2, IDs: ids}, nil
	}

	g2, err := decodeGeomBody(r, kind, hasZ, hasM, q, a)
	if err != nil {
		return nil, err
	}
	return &Result{Geom: g2}, nil
}

// skipBBox consumes (but discards) the optional bbox section: it exists
// for skip-ahead/spatial pre-filtering, which this decoder doesn't need
// since it always fully decodes the geometry.
func skipBBox(r *reader, hasZ, hasM bool) error {
	naxes := 2
	if hasZ {
		naxes++
	}
	if hasM {
		naxes++
	}
	for i := 0; i < naxes; i++ {
		if _, err := r.zigzag(); err != nil {
			return err
		}
		if _, err := r.zigzag(); err != nil {
			return err
		}
	}
	return nil
}

func decodeGeomBody(r *reader, kind geom.GeomKind, hasZ, hasM bool, q quantizer, a *accum) (*geom.Geometry, error) {
	flags := geom.Flags{HasZ: hasZ, HasM: hasM}

	switch kind {
	case geom.KindPoint:
		c, err := readPoint(r, flags, q, a)
		if err != nil {
			return nil, err
		}
		pa := geom.NewPointArrayFrom(hasZ, hasM, []geom.Coord4{c})
		return geom.NewPoint(geom.UnknownSRID, pa)

	case geom.KindLineString:
		pa, err := readPointArray(r, flags, q, a)
		if err != nil {
			return nil, err
		}
		return geom.NewLineString(geom.UnknownSRID, pa)

	case geom.KindCircularString:
		pa, err := readPointArray(r, flags, q, a)
		if err != nil {
			return nil, err
		}
		return geom.NewCircularString(geom.UnknownSRID, pa)

	case geom.KindPolygon, geom.KindTriangle:
		n, err := r.varint()
		if err != nil {
			return nil, err
		}
		rings := make([]*geom.PointArray, 0, n)
		for i := uint64(0); i < n; i++ {
			ring, err := readPointArray(r, flags, q, a)
			if err != nil {
				return nil, err
			}
			rings = append(rings, ring)
		}
		if kind == geom.KindTriangle {
			if len(rings) != 1 {
				return nil, parseErr("TWKB triangle must have exactly one ring, got %d", len(rings))
			}
			return geom.NewTriangle(geom.UnknownSRID, rings[0])
		}
		return geom.NewPolygon(geom.UnknownSRID, hasZ, hasM, rings)

	default: // collection-shaped kinds
		n, err := r.varint()
		if err != nil {
			return nil, err
		}
		g := &geom.Geometry{Kind: kind, Flags: flags, SRID: geom.UnknownSRID}
		if err := decodeChildrenInto(r, g, q, a, int(n)); err != nil {
			return nil, err
		}
		return g, nil
	}
}

// decodeChildrenInto reads n children into g (the leading count varint
// already consumed by the caller), mirroring encode.go's encodeChildren:
// a one-byte kind tag precedes each child when the parent kind doesn't
// imply a single member kind.
func decodeChildrenInto(r *reader, g *geom.Geometry, q quantizer, a *accum, n int) error {
	tagged := needsChildKindTag(g.Kind)
	implied, impliedErr := impliedChildKind(g.Kind)
	for i := 0; i < n; i++ {
		childKind := implied
		if tagged {
			b, err := r.byte()
			if err != nil {
				return err
			}
			childKind, err = kindFromNibble(b)
			if err != nil {
				return err
			}
		} else if impliedErr != nil {
			return impliedErr
		}
		childAccum := a
		if g.Kind == geom.KindGeometryCollection {
			childAccum = &accum{}
		}
		child, err := decodeGeomBody(r, childKind, g.Flags.HasZ, g.Flags.HasM, q, childAccum)
		if err != nil {
			return err
		}
		g.Children = append(g.Children, child)
	}
	return nil
}

// impliedChildKind resolves the fixed member kind of a homogeneous
// collection (spec.md §4.9 "sub-kind implied"); only consulted when
// needsChildKindTag reports false.
func impliedChildKind(parent geom.GeomKind) (geom.GeomKind, error) {
	switch parent {
	case geom.KindMultiPoint:
		return geom.KindPoint, nil
	case geom.KindMultiLineString:
		return geom.KindLineString, nil
	case geom.KindMultiPolygon, geom.KindPolyhedralSurface, geom.KindTin:
		return geom.KindPolygon, nil
	default:
		return 0, parseErr("%s is not a homogeneous TWKB collection kind", parent)
	}
}

func readPoint(r *reader, flags geom.Flags, q quantizer, a *accum) (geom.Coord4, error) {
	x, err := readOrdinate(r, q.xyScale, 0, a)
	if err != nil {
		return geom.Coord4{}, err
	}
	y, err := readOrdinate(r, q.xyScale, 1, a)
	if err != nil {
		return geom.Coord4{}, err
	}
	c := geom.Coord4{X: x, Y: y}
	if flags.HasZ {
		z, err := readOrdinate(r, q.zScale, 2, a)
		if err != nil {
			return geom.Coord4{}, err
		}
		c.Z = z
	}
	if flags.HasM {
		m, err := readOrdinate(r, q.mScale, 3, a)
		if err != nil {
			return geom.Coord4{}, err
		}
		c.M = m
	}
	return c, nil
}

func readPointArray(r *reader, flags geom.Flags, q quantizer, a *accum) (*geom.PointArray, error) {
	n, err := r.varint()
	if err != nil {
		return nil, err
	}
	pts := make([]geom.Coord4, 0, n)
	for i := uint64(0); i < n; i++ {
		c, err := readPoint(r, flags, q, a)
		if err != nil {
			return nil, err
		}
		pts = append(pts, c)
	}
	return geom.NewPointArrayFrom(flags.HasZ, flags.HasM, pts), nil
}

func readOrdinate(r *reader, scale float64, dim int, a *accum) (float64, error) {
	d, err := r.zigzag()
	if err != nil {
		return 0, err
	}
	a.last[dim] += d
	return float64(a.last[dim]) / scale, nil
}
