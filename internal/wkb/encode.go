package wkb

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"math"

	"github.com/rtgeom/rtgeom/internal/geom"
)

// resolveByteOrder maps the caller's Endian choice to a binary.ByteOrder.
// NativeEndian and LittleEndian both resolve to little-endian: every
// mainstream Go build target is little-endian, so "caller didn't specify"
// and "caller asked for little" coincide in practice.
func resolveByteOrder(e Endian) binary.ByteOrder {
	if e == BigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// Encode renders g as WKB per opts (spec.md §4.7). The SRID is written only
// at the root call, per the "wire forms suppress child SRIDs" rule of
// spec.md §3.3.
func Encode(g *geom.Geometry, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	order := resolveByteOrder(opts.Endian)
	if err := encodeGeom(&buf, order, opts.Variant, g, true); err != nil {
		return nil, err
	}
	if opts.Hex {
		enc := make([]byte, hex.EncodedLen(buf.Len()))
		hex.Encode(enc, buf.Bytes())
		return bytes.ToUpper(enc), nil
	}
	return buf.Bytes(), nil
}

func endianByte(order binary.ByteOrder) byte {
	if order == binary.BigEndian {
		return 0
	}
	return 1
}

func encodeGeom(buf *bytes.Buffer, order binary.ByteOrder, variant Variant, g *geom.Geometry, isRoot bool) error {
	hasZ, hasM := g.Flags.HasZ, g.Flags.HasM
	if variant == SFSQL {
		hasZ, hasM = false, false
	}

	base, err := baseTypeOf(g.Kind)
	if err != nil {
		return err
	}

	writeSRID := isRoot && variant == Extended && g.SRID != geom.UnknownSRID

	var typeWord uint32
	switch variant {
	case ISO:
		typeWord = base + isoDimOffset(hasZ, hasM)
	case Extended:
		typeWord = base
		if hasZ {
			typeWord |= wkbZFlag
		}
		if hasM {
			typeWord |= wkbMFlag
		}
		if writeSRID {
			typeWord |= wkbSRIDFlag
		}
	case SFSQL:
		typeWord = base
	}

	buf.WriteByte(endianByte(order))
	writeU32(buf, order, typeWord)
	if writeSRID {
		writeU32(buf, order, uint32(g.SRID))
	}

	g2 := g
	if variant == SFSQL && (g.Flags.HasZ || g.Flags.HasM) {
		g2 = g.ForceDims(false, false)
	}

	return encodePayload(buf, order, variant, g2)
}

// isoDimOffset returns the ISO dimensionality offset added to the base type
// code: +1000 Z, +2000 M, +3000 both (spec.md §4.7).
func isoDimOffset(hasZ, hasM bool) uint32 {
	switch {
	case hasZ && hasM:
		return 3000
	case hasZ:
		return 1000
	case hasM:
		return 2000
	default:
		return 0
	}
}

func encodePayload(buf *bytes.Buffer, order binary.ByteOrder, variant Variant, g *geom.Geometry) error {
	switch g.Kind {
	case geom.KindPoint:
		return encodePointPayload(buf, order, g)

	case geom.KindLineString, geom.KindCircularString:
		return encodeRingPayload(buf, order, g.Rings[0])

	case geom.KindPolygon, geom.KindTriangle:
		writeU32(buf, order, uint32(len(g.Rings)))
		for _, r := range g.Rings {
			if err := encodeRingPayload(buf, order, r); err != nil {
				return err
			}
		}
		return nil

	default: // every collection-shaped kind
		writeU32(buf, order, uint32(len(g.Children)))
		for _, c := range g.Children {
			if err := encodeGeom(buf, order, variant, c, false); err != nil {
				return err
			}
		}
		return nil
	}
}

func encodePointPayload(buf *bytes.Buffer, order binary.ByteOrder, g *geom.Geometry) error {
	if g.IsEmpty() {
		// Empty point: all-NaN in every dimension the geometry carries
		// (spec.md §4.7 — the extended-variant convention, applied
		// uniformly here since classic WKB's Point payload has no count
		// field to otherwise signal emptiness).
		writeF64(buf, order, math.NaN())
		writeF64(buf, order, math.NaN())
		if g.Flags.HasZ {
			writeF64(buf, order, math.NaN())
		}
		if g.Flags.HasM {
			writeF64(buf, order, math.NaN())
		}
		return nil
	}
	p := g.Rings[0].At(0)
	writeF64(buf, order, p.X)
	writeF64(buf, order, p.Y)
	if g.Flags.HasZ {
		writeF64(buf, order, p.Z)
	}
	if g.Flags.HasM {
		writeF64(buf, order, p.M)
	}
	return nil
}

func encodeRingPayload(buf *bytes.Buffer, order binary.ByteOrder, pa *geom.PointArray) error {
	n := pa.NPoints()
	writeU32(buf, order, uint32(n))
	hasZ, hasM := pa.HasZ(), pa.HasM()
	for i := 0; i < n; i++ {
		p := pa.At(i)
		writeF64(buf, order, p.X)
		writeF64(buf, order, p.Y)
		if hasZ {
			writeF64(buf, order, p.Z)
		}
		if hasM {
			writeF64(buf, order, p.M)
		}
	}
	return nil
}

func writeU32(buf *bytes.Buffer, order binary.ByteOrder, v uint32) {
	var tmp [4]byte
	order.PutUint32(tmp[:], v)
	buf.Write(tmp[:])
}

func writeF64(buf *bytes.Buffer, order binary.ByteOrder, v float64) {
	var tmp [8]byte
	order.PutUint64(tmp[:], math.Float64bits(v))
	buf.Write(tmp[:])
}
