// Package twkb implements the compact delta-encoded binary geometry format
// (spec.md §4.9): a header byte packing kind and signed precision, an
// optional extended-precision byte, optional bbox/size/id-list sections,
// and zig-zag varint-delta-encoded coordinates, Protocol-Buffers style.
package twkb

import (
	"fmt"

	"github.com/rtgeom/rtgeom/internal/geom"
)

// flag bits of the second header byte (spec.md §4.9).
const (
	flagBBox         = 1 << 0
	flagSize         = 1 << 1
	flagIDList       = 1 << 2
	flagExtendedPrec = 1 << 3
	flagEmpty        = 1 << 4
)

// Options configures Encode. A zero Options encodes at integer precision
// with no bbox, size, or id-list sections.
type Options struct {
	// XYPrecision is the decimal scale applied to X/Y before rounding to
	// int64: coordinates are multiplied by 10^XYPrecision (spec.md §4.9).
	// Must fit in a signed 4-bit two's complement value, i.e. [-8, 7].
	XYPrecision int
	// ZPrecision/MPrecision likewise scale Z/M, each packed in 3 bits
	// ([-4, 3]) when the geometry carries that dimension.
	ZPrecision int
	MPrecision int
	// IncludeBBox writes a per-axis (min, extent) bbox section.
	IncludeBBox bool
	// IncludeSize writes a total-payload-length varint after the header,
	// letting a reader skip this geometry without fully decoding it.
	IncludeSize bool
	// IDs, when non-nil, is written as the id-list section; valid only for
	// collection-shaped kinds and must have one entry per child.
	IDs []int64
}

func parseErr(format string, args ...interface{}) *geom.GeomError {
	return &geom.GeomError{Kind: geom.ErrInvalidInput, Msg: fmt.Sprintf(format, args...)}
}

func parseErrAt(offset int, format string, args ...interface{}) *geom.GeomError {
	e := parseErr(format, args...)
	e.Index, e.HasIdx = offset, true
	return e
}

// encodeNibble packs a signed value in [-8, 7] into the low 4 bits of a
// byte as two's complement (spec.md §4.9 "signed 4-bit (two's
// complement)").
func encodeNibble(v int) (byte, error) {
	if v < -8 || v > 7 {
		return 0, parseErr("precision %d does not fit in a signed 4-bit value", v)
	}
	return byte(v) & 0x0F, nil
}

func decodeNibble(b byte) int {
	n := int(b & 0x0F)
	if n >= 8 {
		n -= 16
	}
	return n
}

// encodeTriBit packs a signed value in [-4, 3] into 3 bits as two's
// complement, used for the extended-precision byte's z/m precision fields.
func encodeTriBit(v int) (byte, error) {
	if v < -4 || v > 3 {
		return 0, parseErr("z/m precision %d does not fit in a signed 3-bit value", v)
	}
	return byte(v) & 0x07, nil
}

func decodeTriBit(b byte) int {
	n := int(b & 0x07)
	if n >= 4 {
		n -= 8
	}
	return n
}

// kindNibble/kindFromNibble map geom.GeomKind directly onto the header's
// low 4 bits: GeomKind's iota range (0-14) already fits a nibble, so no
// separate lookup table is needed the way internal/wkb needs one for the
// OGC-numbered base type codes.
func kindNibble(k geom.GeomKind) (byte, error) {
	if k < geom.KindPoint || k > geom.KindGeometryCollection {
		return 0, parseErr("unsupported geometry kind %s", k)
	}
	return byte(k), nil
}

func kindFromNibble(n byte) (geom.GeomKind, error) {
	k := geom.GeomKind(n)
	if k < geom.KindPoint || k > geom.KindGeometryCollection {
		return 0, parseErr("unknown TWKB kind nibble %d", n)
	}
	return k, nil
}
