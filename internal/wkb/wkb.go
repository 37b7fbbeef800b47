// Package wkb implements the ISO, Extended, and SFSQL variants of the
// Well-Known Binary geometry format (spec.md §4.7), the direct analog of
// the teacher's internal/parser wire-format handling but generalized to
// the full SQL/MM kind set and to all three historical WKB dialects.
package wkb

import (
	"fmt"

	"github.com/rtgeom/rtgeom/internal/geom"
)

// Variant selects which of the three WKB dialects Encode/Decode use.
type Variant int

const (
	// ISO encodes Z/M via type-number offsets (+1000/+2000/+3000) and
	// never carries an SRID.
	ISO Variant = iota
	// Extended encodes Z/M/SRID as high bits of the type word
	// (PostGIS's "EWKB").
	Extended
	// SFSQL is always 2D; Z/M ordinates are dropped on encode.
	SFSQL
)

func (v Variant) String() string {
	switch v {
	case ISO:
		return "ISO"
	case Extended:
		return "Extended"
	case SFSQL:
		return "SFSQL"
	default:
		return "Unknown"
	}
}

// Endian selects the byte order Encode emits. Decode always accepts
// either, regardless of this setting.
type Endian int

const (
	// NativeEndian picks little-endian, matching every mainstream Go
	// build target; spec.md §4.7 calls this "machine native".
	NativeEndian Endian = iota
	BigEndian
	LittleEndian
)

// Options configures an Encode call.
type Options struct {
	Variant Variant
	Endian  Endian
	// Hex wraps the output as an upper-case hex envelope instead of raw
	// bytes (spec.md §4.7).
	Hex bool
}

// Extended-variant high type-bits (spec.md §4.7).
const (
	wkbZFlag    = 0x80000000
	wkbMFlag    = 0x40000000
	wkbSRIDFlag = 0x20000000
	wkbFlagMask = wkbZFlag | wkbMFlag | wkbSRIDFlag
)

// Base OGC type codes, shared by all three variants (ISO adds a
// dimensionality offset on top; Extended sets flag bits instead).
const (
	typePoint              = 1
	typeLineString         = 2
	typePolygon            = 3
	typeMultiPoint         = 4
	typeMultiLineString    = 5
	typeMultiPolygon       = 6
	typeGeometryCollection = 7
	typeCircularString     = 8
	typeCompoundCurve      = 9
	typeCurvePolygon       = 10
	typeMultiCurve         = 11
	typeMultiSurface       = 12
	typePolyhedralSurface  = 15
	typeTin                = 16
	typeTriangle           = 17
)

func baseTypeOf(k geom.GeomKind) (uint32, error) {
	switch k {
	case geom.KindPoint:
		return typePoint, nil
	case geom.KindLineString:
		return typeLineString, nil
	case geom.KindPolygon:
		return typePolygon, nil
	case geom.KindMultiPoint:
		return typeMultiPoint, nil
	case geom.KindMultiLineString:
		return typeMultiLineString, nil
	case geom.KindMultiPolygon:
		return typeMultiPolygon, nil
	case geom.KindGeometryCollection:
		return typeGeometryCollection, nil
	case geom.KindCircularString:
		return typeCircularString, nil
	case geom.KindCompoundCurve:
		return typeCompoundCurve, nil
	case geom.KindCurvePolygon:
		return typeCurvePolygon, nil
	case geom.KindMultiCurve:
		return typeMultiCurve, nil
	case geom.KindMultiSurface:
		return typeMultiSurface, nil
	case geom.KindPolyhedralSurface:
		return typePolyhedralSurface, nil
	case geom.KindTin:
		return typeTin, nil
	case geom.KindTriangle:
		return typeTriangle, nil
	default:
		return 0, parseErr("unsupported geometry kind %s for WKB encoding", k)
	}
}

func kindFromBaseType(base uint32) (geom.GeomKind, error) {
	switch base {
	case typePoint:
		return geom.KindPoint, nil
	case typeLineString:
		return geom.KindLineString, nil
	case typePolygon:
		return geom.KindPolygon, nil
	case typeMultiPoint:
		return geom.KindMultiPoint, nil
	case typeMultiLineString:
		return geom.KindMultiLineString, nil
	case typeMultiPolygon:
		return geom.KindMultiPolygon, nil
	case typeGeometryCollection:
		return geom.KindGeometryCollection, nil
	case typeCircularString:
		return geom.KindCircularString, nil
	case typeCompoundCurve:
		return geom.KindCompoundCurve, nil
	case typeCurvePolygon:
		return geom.KindCurvePolygon, nil
	case typeMultiCurve:
		return geom.KindMultiCurve, nil
	case typeMultiSurface:
		return geom.KindMultiSurface, nil
	case typePolyhedralSurface:
		return geom.KindPolyhedralSurface, nil
	case typeTin:
		return geom.KindTin, nil
	case typeTriangle:
		return geom.KindTriangle, nil
	default:
		return 0, parseErr("unknown WKB type code %d", base)
	}
}

func parseErr(format string, args ...interface{}) *geom.GeomError {
	return &geom.GeomError{Kind: geom.ErrInvalidInput, Msg: fmt.Sprintf(format, args...)}
}

func parseErrAt(offset int, format string, args ...interface{}) *geom.GeomError {
	e := parseErr(format, args...)
	e.Index, e.HasIdx = offset, true
	return e
}
