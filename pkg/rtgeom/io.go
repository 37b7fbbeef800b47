package rtgeom

import (
	"github.com/rtgeom/rtgeom/internal/twkb"
	"github.com/rtgeom/rtgeom/internal/wkb"
	"github.com/rtgeom/rtgeom/internal/wkt"
)

// WKBVariant selects which WKB dialect ToWKB emits; FromWKB/FromWKBHex
// accept any of them regardless of this setting (spec.md §4.7).
type WKBVariant int

const (
	WKBVariantISO WKBVariant = iota
	WKBVariantExtended
	WKBVariantSFSQL
)

func (v WKBVariant) internal() wkb.Variant {
	switch v {
	case WKBVariantExtended:
		return wkb.Extended
	case WKBVariantSFSQL:
		return wkb.SFSQL
	default:
		return wkb.ISO
	}
}

// Endian selects the byte order ToWKB emits.
type Endian int

const (
	NativeEndian Endian = iota
	BigEndian
	LittleEndian
)

func (e Endian) internal() wkb.Endian {
	switch e {
	case BigEndian:
		return wkb.BigEndian
	case LittleEndian:
		return wkb.LittleEndian
	default:
		return wkb.NativeEndian
	}
}

// WKBOptions configures ToWKB.
type WKBOptions struct {
	Variant WKBVariant
	Endian  Endian
	// Hex wraps the output as an upper-case hex envelope (spec.md §4.7).
	Hex bool
}

// FromWKT parses Well-Known Text into a Geometry (spec.md §4.8, §6.4
// from_wkt). Accepts an optional leading "SRID=n;" prefix and is
// case-insensitive on tag names.
func FromWKT(s string) (*Geometry, error) {
	g, err := wkt.Read(s)
	if err != nil {
		return nil, err
	}
	return wrap(g), nil
}

// ToWKT renders g as Well-Known Text in the requested variant with the
// given decimal digit count (0 selects the spec's default of 15).
func ToWKT(g *Geometry, variant WKTVariant, digits int) (string, error) {
	return wkt.Write(g.unwrap(), wkt.Options{Variant: variant.internal(), Digits: digits})
}

// WKTVariant selects which WKT dialect ToWKT emits.
type WKTVariant int

const (
	WKTVariantSFSQL WKTVariant = iota
	WKTVariantISO
	WKTVariantExtended
)

func (v WKTVariant) internal() wkt.Variant {
	switch v {
	case WKTVariantISO:
		return wkt.ISO
	case WKTVariantExtended:
		return wkt.Extended
	default:
		return wkt.SFSQL
	}
}

// FromWKB decodes a raw WKB byte buffer, accepting any of the ISO,
// Extended, or SFSQL dialects and either endianness transparently (spec.md
// §4.7, §6.4 from_wkb).
func FromWKB(data []byte) (*Geometry, error) {
	g, err := wkb.Decode(data)
	if err != nil {
		return nil, err
	}
	return wrap(g), nil
}

// FromWKBHex decodes an upper- or lower-case hex-encoded WKB buffer
// (spec.md §6.4 from_wkb_hex).
func FromWKBHex(s string) (*Geometry, error) {
	g, err := wkb.DecodeHex(s)
	if err != nil {
		return nil, err
	}
	return wrap(g), nil
}

// ToWKB encodes g as WKB under opts (spec.md §6.4 to_wkb). If opts.Hex is
// set, the result is the upper-case hex envelope of the binary form as
// ASCII bytes.
func ToWKB(g *Geometry, opts WKBOptions) ([]byte, error) {
	return wkb.Encode(g.unwrap(), wkb.Options{
		Variant: opts.Variant.internal(),
		Endian:  opts.Endian.internal(),
		Hex:     opts.Hex,
	})
}

// TWKBOptions configures ToTWKB (spec.md §4.9, §6.4 to_twkb).
type TWKBOptions struct {
	XYPrecision int
	ZPrecision  int
	MPrecision  int
	IncludeBBox bool
	IncludeSize bool
	IDs         []int64
}

func (o TWKBOptions) internal() twkb.Options {
	return twkb.Options{
		XYPrecision: o.XYPrecision,
		ZPrecision:  o.ZPrecision,
		MPrecision:  o.MPrecision,
		IncludeBBox: o.IncludeBBox,
		IncludeSize: o.IncludeSize,
		IDs:         o.IDs,
	}
}

// ToTWKB encodes g as TWKB under opts.
func ToTWKB(g *Geometry, opts TWKBOptions) ([]byte, error) {
	return twkb.Encode(g.unwrap(), opts.internal())
}

// TWKBResult is the decoded geometry plus its id-list, if the buffer
// carried one (only meaningful for collection-shaped kinds).
type TWKBResult struct {
	Geom *Geometry
	IDs  []int64
}

// FromTWKB decodes a TWKB byte buffer (spec.md §6.4 from_twkb).
func FromTWKB(data []byte) (*TWKBResult, error) {
	res, err := twkb.Decode(data)
	if err != nil {
		return nil, err
	}
	return &TWKBResult{Geom: wrap(res.Geom), IDs: res.IDs}, nil
}
