// Package wkt implements the ISO, Extended, and SFSQL variants of the
// Well-Known Text geometry format (spec.md §4.8): a recursive writer plus a
// hand-written tokenizing reader, the direct textual sibling of
// internal/wkb's binary codec.
package wkt

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rtgeom/rtgeom/internal/geom"
)

// Variant selects which of the three WKT dialects Write/the parser honour
// on output; the reader accepts all three on input regardless of this
// setting (spec.md §4.8).
type Variant int

const (
	// SFSQL is always 2D: "POINT(x y)".
	SFSQL Variant = iota
	// ISO adds an explicit dimension qualifier after the tag:
	// "POINT Z (x y z)".
	ISO
	// Extended fuses the M-only marker onto the tag ("POINTM(x y m)") and
	// allows a leading "SRID=n;" prefix on the root geometry.
	Extended
)

// Options configures a Write call.
type Options struct {
	Variant Variant
	// Digits is the number of decimal digits rendered per ordinate. Zero
	// value (not set) falls back to DefaultWKTDigits (spec.md §6.2).
	Digits int
}

func (o Options) digits() int {
	if o.Digits <= 0 {
		return geom.DefaultWKTDigits
	}
	return o.Digits
}

var tagNames = map[geom.GeomKind]string{
	geom.KindPoint:              "POINT",
	geom.KindLineString:         "LINESTRING",
	geom.KindCircularString:     "CIRCULARSTRING",
	geom.KindPolygon:            "POLYGON",
	geom.KindTriangle:           "TRIANGLE",
	geom.KindMultiPoint:         "MULTIPOINT",
	geom.KindMultiLineString:    "MULTILINESTRING",
	geom.KindMultiPolygon:       "MULTIPOLYGON",
	geom.KindCompoundCurve:      "COMPOUNDCURVE",
	geom.KindCurvePolygon:       "CURVEPOLYGON",
	geom.KindMultiCurve:         "MULTICURVE",
	geom.KindMultiSurface:       "MULTISURFACE",
	geom.KindPolyhedralSurface:  "POLYHEDRALSURFACE",
	geom.KindTin:                "TIN",
	geom.KindGeometryCollection: "GEOMETRYCOLLECTION",
}

var tagKinds = func() map[string]geom.GeomKind {
	m := make(map[string]geom.GeomKind, len(tagNames))
	for k, v := range tagNames {
		m[v] = k
	}
	return m
}()

func parseErr(format string, args ...interface{}) *geom.GeomError {
	return &geom.GeomError{Kind: geom.ErrInvalidInput, Msg: fmt.Sprintf(format, args...)}
}

func parseErrAt(col int, format string, args ...interface{}) *geom.GeomError {
	e := parseErr(format, args...)
	e.Index, e.HasIdx = col, true
	return e
}

// formatFloat renders v with the given number of decimal digits, trimming
// trailing zeros (WKT numbers don't carry a fixed-width mantissa), matching
// how PostGIS's own text output behaves. Values whose magnitude exceeds
// MaxVerbatimDouble fall back to Go's shortest round-tripping form rather
// than a fixed-decimal expansion (spec.md §6.2).
func formatFloat(v float64, digits int) string {
	if v == 0 {
		return "0"
	}
	abs := v
	if abs < 0 {
		abs = -abs
	}
	if abs > geom.MaxVerbatimDouble {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	s := strconv.FormatFloat(v, 'f', digits, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	if s == "-0" {
		s = "0"
	}
	return s
}
