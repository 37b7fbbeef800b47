package twkb

import (
	"math"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/rtgeom/rtgeom/internal/geom"
)

// quantizer holds the per-dimension scale factors (10^precision) used to
// turn floating ordinates into the int64 values TWKB's varints carry
// (spec.md §4.9).
type quantizer struct {
	xyScale, zScale, mScale float64
}

func newQuantizer(opts Options) quantizer {
	return quantizer{
		xyScale: math.Pow(10, float64(opts.XYPrecision)),
		zScale:  math.Pow(10, float64(opts.ZPrecision)),
		mScale:  math.Pow(10, float64(opts.MPrecision)),
	}
}

// accum is the running per-dimension delta accumulator (spec.md §4.9
// "deltas from a running accumulator per dimension"), indices 0=X 1=Y 2=Z
// 3=M, mirroring the original encoder's accum_rels[MAX_N_DIMS].
type accum struct {
	last [4]int64
}

func (a *accum) delta(idx int, v int64) int64 {
	d := v - a.last[idx]
	a.last[idx] = v
	return d
}

// Encode renders g as TWKB per opts (spec.md §4.9).
func Encode(g *geom.Geometry, opts Options) ([]byte, error) {
	nib, err := kindNibble(g.Kind)
	if err != nil {
		return nil, err
	}
	precNibble, err := encodeNibble(opts.XYPrecision)
	if err != nil {
		return nil, err
	}

	var out []byte
	out = append(out, nib|(precNibble<<4))

	empty := g.IsEmpty()
	flags := byte(0)
	if opts.IncludeBBox && !empty {
		flags |= flagBBox
	}
	if opts.IncludeSize {
		flags |= flagSize
	}
	if len(opts.IDs) > 0 {
		flags |= flagIDList
	}
	extended := g.Flags.HasZ || g.Flags.HasM
	if extended {
		flags |= flagExtendedPrec
	}
	if empty {
		flags |= flagEmpty
	}
	out = append(out, flags)

	if extended {
		zNib, err := encodeTriBit(opts.ZPrecision)
		if err != nil {
			return nil, err
		}
		mNib, err := encodeTriBit(opts.MPrecision)
		if err != nil {
			return nil, err
		}
		var ext byte
		if g.Flags.HasZ {
			ext |= 0x01
		}
		if g.Flags.HasM {
			ext |= 0x02
		}
		ext |= zNib << 2
		ext |= mNib << 5
		out = append(out, ext)
	}

	if empty {
		return out, nil
	}

	q := newQuantizer(opts)

	if flags&flagBBox != 0 {
		out = appendBBox(out, g, q)
	}

	var body []byte
	a := &accum{}
	if len(opts.IDs) > 0 {
		if !g.Kind.IsCollection() || g.Kind == geom.KindPolygon || g.Kind == geom.KindTriangle {
			return nil, parseErr("id-list is only valid for collection-of-geometries kinds, got %s", g.Kind)
		}
		if len(opts.IDs) != len(g.Children) {
			return nil, parseErr("id-list length %d does not match child count %d", len(opts.IDs), len(g.Children))
		}
		body = protowire.AppendVarint(body, uint64(len(g.Children)))
		body = appendIDList(body, opts.IDs)
		body = encodeChildren(body, g, q, a)
	} else {
		body = encodeGeomBody(body, g, q, a)
	}

	if flags&flagSize != 0 {
		out = protowire.AppendVarint(out, uint64(len(body)))
	}
	out = append(out, body...)
	return out, nil
}

func appendBBox(out []byte, g *geom.Geometry, q quantizer) []byte {
	box := g.BoundingBox()
	out = appendBBoxAxis(out, box.XMin, box.XMax, q.xyScale)
	out = appendBBoxAxis(out, box.YMin, box.YMax, q.xyScale)
	if g.Flags.HasZ {
		out = appendBBoxAxis(out, box.ZMin, box.ZMax, q.zScale)
	}
	if g.Flags.HasM {
		out = appendBBoxAxis(out, box.MMin, box.MMax, q.mScale)
	}
	return out
}

func appendBBoxAxis(out []byte, min, max float64, scale float64) []byte {
	qmin := int64(math.Round(min * scale))
	qmax := int64(math.Round(max * scale))
	out = protowire.AppendVarint(out, protowire.EncodeZigZag(qmin))
	out = protowire.AppendVarint(out, protowire.EncodeZigZag(qmax-qmin))
	return out
}

func appendIDList(out []byte, ids []int64) []byte {
	for _, id := range ids {
		out = protowire.AppendVarint(out, protowire.EncodeZigZag(id))
	}
	return out
}

// encodeGeomBody writes the headerless coordinate/child section shared by
// every kind, threading one delta accumulator through sibling
// sub-components (spec.md §4.9 "deltas compound"); GeometryCollection
// children get their own fresh accumulator.
func encodeGeomBody(out []byte, g *geom.Geometry, q quantizer, a *accum) []byte {
	switch g.Kind {
	case geom.KindPoint:
		return appendPoint(out, g.Rings[0].At(0), g.Flags, q, a)

	case geom.KindLineString, geom.KindCircularString:
		return appendPointArray(out, g.Rings[0], g.Flags, q, a)

	case geom.KindPolygon, geom.KindTriangle:
		out = protowire.AppendVarint(out, uint64(len(g.Rings)))
		for _, r := range g.Rings {
			out = appendPointArray(out, r, g.Flags, q, a)
		}
		return out

	default: // every collection-shaped kind
		out = protowire.AppendVarint(out, uint64(len(g.Children)))
		return encodeChildren(out, g, q, a)
	}
}

// encodeChildren writes g's children (without the leading count varint,
// already written by the caller), tagging each with a one-byte kind marker
// when the parent doesn't imply a single member kind.
func encodeChildren(out []byte, g *geom.Geometry, q quantizer, a *accum) []byte {
	tagged := needsChildKindTag(g.Kind)
	for _, c := range g.Children {
		if tagged {
			nib, _ := kindNibble(c.Kind) // child kinds are validated at AddGeom time
			out = append(out, nib)
		}
		childAccum := a
		if g.Kind == geom.KindGeometryCollection {
			childAccum = &accum{}
		}
		out = encodeGeomBody(out, c, q, childAccum)
	}
	return out
}

// needsChildKindTag reports whether parent's children need a one-byte
// kind tag ahead of their headerless body: true for every collection whose
// member kind isn't a single implied type (spec.md §4.9 "sub-kind implied"
// covers only the homogeneous Multi*/PolyhedralSurface/Tin forms).
func needsChildKindTag(parent geom.GeomKind) bool {
	switch parent {
	case geom.KindMultiPoint, geom.KindMultiLineString, geom.KindMultiPolygon,
		geom.KindPolyhedralSurface, geom.KindTin:
		return false
	default:
		return true
	}
}

func appendPoint(out []byte, c geom.Coord4, flags geom.Flags, q quantizer, a *accum) []byte {
	out = appendOrdinate(out, c.X, q.xyScale, 0, a)
	out = appendOrdinate(out, c.Y, q.xyScale, 1, a)
	if flags.HasZ {
		out = appendOrdinate(out, c.Z, q.zScale, 2, a)
	}
	if flags.HasM {
		out = appendOrdinate(out, c.M, q.mScale, 3, a)
	}
	return out
}

func appendPointArray(out []byte, pa *geom.PointArray, flags geom.Flags, q quantizer, a *accum) []byte {
	n := pa.NPoints()
	out = protowire.AppendVarint(out, uint64(n))
	for i := 0; i < n; i++ {
		out = appendPoint(out, pa.At(i), flags, q, a)
	}
	return out
}

func appendOrdinate(out []byte, v float64, scale float64, dim int, a *accum) []byte {
	q := int64(math.Round(v * scale))
	d := a.delta(dim, q)
	return protowire.AppendVarint(out, protowire.EncodeZigZag(d))
}
