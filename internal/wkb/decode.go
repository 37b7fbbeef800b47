package wkb

import (
	"encoding/binary"
	"encoding/hex"
	"math"

	"github.com/rtgeom/rtgeom/internal/geom"
)

// reader walks a WKB byte slice. Unlike the encoder, decode is
// variant-agnostic: spec.md §4.7 calls for "the reader is the dual; rejects
// unknown types, truncated buffers, and inconsistent dimensionality between
// parent and child" without requiring the caller to name the dialect ahead
// of time, since the type word itself carries everything needed to tell ISO,
// Extended, and SFSQL apart.
type reader struct {
	buf []byte
	pos int
}

func (r *reader) remaining() int { return len(r.buf) - r.pos }

func (r *reader) byte() (byte, error) {
	if r.remaining() < 1 {
		return 0, parseErrAt(r.pos, "truncated WKB: expected 1 byte")
	}
	b := r.buf[r.pos]
	r.pos++
	return b, nil
}

func (r *reader) u32(order binary.ByteOrder) (uint32, error) {
	if r.remaining() < 4 {
		return 0, parseErrAt(r.pos, "truncated WKB: expected 4-byte uint32")
	}
	v := order.Uint32(r.buf[r.pos:])
	r.pos += 4
	return v, nil
}

func (r *reader) f64(order binary.ByteOrder) (float64, error) {
	if r.remaining() < 8 {
		return 0, parseErrAt(r.pos, "truncated WKB: expected 8-byte float64")
	}
	v := math.Float64frombits(order.Uint64(r.buf[r.pos:]))
	r.pos += 8
	return v, nil
}

// Decode parses a WKB byte stream into a Geometry, accepting any of the
// three dialects and either endianness (spec.md §4.7).
func Decode(data []byte) (*geom.Geometry, error) {
	r := &reader{buf: data}
	g, err := decodeGeom(r, geom.UnknownSRID)
	if err != nil {
		return nil, err
	}
	return g, nil
}

// DecodeHex decodes an upper- or lower-case hex envelope, per spec.md §6.1.
func DecodeHex(s string) (*geom.Geometry, error) {
	raw, err := hex.DecodeString(s)
	if err != nil {
		return nil, parseErr("invalid hex WKB: %s", err)
	}
	return Decode(raw)
}

func decodeGeom(r *reader, parentSRID int32) (*geom.Geometry, error) {
	endian, err := r.byte()
	if err != nil {
		return nil, err
	}
	var order binary.ByteOrder = binary.LittleEndian
	if endian == 0 {
		order = binary.BigEndian
	}

	raw, err := r.u32(order)
	if err != nil {
		return nil, err
	}

	base, hasZ, hasM, hasSRID := decodeTypeWord(raw)
	kind, err := kindFromBaseType(base)
	if err != nil {
		return nil, err
	}

	srid := parentSRID
	if hasSRID {
		v, err := r.u32(order)
		if err != nil {
			return nil, err
		}
		srid = int32(v)
	}

	g := &geom.Geometry{Kind: kind, Flags: geom.Flags{HasZ: hasZ, HasM: hasM}, SRID: srid}
	if err := decodePayload(r, order, g, hasZ, hasM, srid); err != nil {
		return nil, err
	}
	return g, nil
}

// decodeTypeWord splits a raw WKB type word into its base type code and
// dimensionality/SRID flags, recognizing the Extended (high-bit-flag) form
// first and falling back to the ISO (+1000/+2000/+3000) dimensionality
// offsets, else treating it as a plain (SFSQL, 2D) code (spec.md §4.7).
func decodeTypeWord(raw uint32) (base uint32, hasZ, hasM, hasSRID bool) {
	if raw&wkbFlagMask != 0 {
		hasZ = raw&wkbZFlag != 0
		hasM = raw&wkbMFlag != 0
		hasSRID = raw&wkbSRIDFlag != 0
		return raw &^ wkbFlagMask, hasZ, hasM, hasSRID
	}
	switch {
	case raw >= 3000 && raw < 4000:
		return raw - 3000, true, true, false
	case raw >= 2000 && raw < 3000:
		return raw - 2000, false, true, false
	case raw >= 1000 && raw < 2000:
		return raw - 1000, true, false, false
	default:
		return raw, false, false, false
	}
}

func decodePayload(r *reader, order binary.ByteOrder, g *geom.Geometry, hasZ, hasM bool, srid int32) error {
	switch g.Kind {
	case geom.KindPoint:
		pa, empty, err := decodePointOrdinates(r, order, hasZ, hasM)
		if err != nil {
			return err
		}
		if !empty {
			g.Rings = []*geom.PointArray{pa}
		} else {
			g.Rings = []*geom.PointArray{geom.NewPointArray(hasZ, hasM, 0)}
		}
		return nil

	case geom.KindLineString, geom.KindCircularString:
		pa, err := decodeRing(r, order, hasZ, hasM)
		if err != nil {
			return err
		}
		g.Rings = []*geom.PointArray{pa}
		return nil

	case geom.KindPolygon, geom.KindTriangle:
		nrings, err := r.u32(order)
		if err != nil {
			return err
		}
		for i := uint32(0); i < nrings; i++ {
			ring, err := decodeRing(r, order, hasZ, hasM)
			if err != nil {
				return err
			}
			g.Rings = append(g.Rings, ring)
		}
		return nil

	default: // collection-shaped kinds
		ngeoms, err := r.u32(order)
		if err != nil {
			return err
		}
		for i := uint32(0); i < ngeoms; i++ {
			child, err := decodeGeom(r, srid)
			if err != nil {
				return err
			}
			if child.Flags.HasZ != hasZ || child.Flags.HasM != hasM {
				return parseErrAt(r.pos, "child geometry %d dimensionality disagrees with parent %s", i, g.Kind)
			}
			g.Children = append(g.Children, child)
		}
		return nil
	}
}

// decodePointOrdinates reads a Point's coordinate(s). An all-NaN coordinate
// decodes as an empty point, the dual of Encode's empty-point convention
// (spec.md §4.7).
func decodePointOrdinates(r *reader, order binary.ByteOrder, hasZ, hasM bool) (*geom.PointArray, bool, error) {
	x, err := r.f64(order)
	if err != nil {
		return nil, false, err
	}
	y, err := r.f64(order)
	if err != nil {
		return nil, false, err
	}
	c := geom.Coord4{X: x, Y: y}
	allNaN := math.IsNaN(x) && math.IsNaN(y)
	if hasZ {
		z, err := r.f64(order)
		if err != nil {
			return nil, false, err
		}
		c.Z = z
		allNaN = allNaN && math.IsNaN(z)
	}
	if hasM {
		m, err := r.f64(order)
		if err != nil {
			return nil, false, err
		}
		c.M = m
		allNaN = allNaN && math.IsNaN(m)
	}
	if allNaN {
		return nil, true, nil
	}
	return geom.NewPointArrayFrom(hasZ, hasM, []geom.Coord4{c}), false, nil
}

func decodeRing(r *reader, order binary.ByteOrder, hasZ, hasM bool) (*geom.PointArray, error) {
	n, err := r.u32(order)
	if err != nil {
		return nil, err
	}
	pts := make([]geom.Coord4, 0, n)
	for i := uint32(0); i < n; i++ {
		x, err := r.f64(order)
		if err != nil {
			return nil, err
		}
		y, err := r.f64(order)
		if err != nil {
			return nil, err
		}
		c := geom.Coord4{X: x, Y: y}
		if hasZ {
			z, err := r.f64(order)
			if err != nil {
				return nil, err
			}
			c.Z = z
		}
		if hasM {
			m, err := r.f64(order)
			if err != nil {
				return nil, err
			}
			c.M = m
		}
		pts = append(pts, c)
	}
	return geom.NewPointArrayFrom(hasZ, hasM, pts), nil
}
