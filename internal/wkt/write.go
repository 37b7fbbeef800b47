package wkt

import (
	"strconv"
	"strings"

	"github.com/rtgeom/rtgeom/internal/geom"
)

// Write renders g as WKT per opts (spec.md §4.8). SRID is only ever
// prefixed at the root, and only in the Extended variant.
func Write(g *geom.Geometry, opts Options) (string, error) {
	var sb strings.Builder
	if opts.Variant == SFSQL && (g.Flags.HasZ || g.Flags.HasM) {
		g = g.ForceDims(false, false)
	}
	if opts.Variant == Extended && g.SRID != geom.UnknownSRID {
		sb.WriteString("SRID=")
		sb.WriteString(strconv.Itoa(int(g.SRID)))
		sb.WriteString(";")
	}
	if err := writeTagged(&sb, g, opts); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// dimQualifier returns the ISO-variant dimension qualifier (with leading
// space), or "" for every other variant/dimensionality.
func dimQualifier(variant Variant, hasZ, hasM bool) string {
	if variant != ISO {
		return ""
	}
	switch {
	case hasZ && hasM:
		return " ZM"
	case hasZ:
		return " Z"
	case hasM:
		return " M"
	default:
		return ""
	}
}

// tagAndOpen returns the tag plus dimension marker plus opening paren for
// g's kind/variant, e.g. "POINT Z (", "POINTM(", "POLYGON(".
func tagAndOpen(g *geom.Geometry, opts Options) string {
	tag := tagNames[g.Kind]
	switch opts.Variant {
	case Extended:
		if g.Flags.HasM && !g.Flags.HasZ {
			return tag + "M("
		}
		return tag + "("
	case ISO:
		return tag + dimQualifier(ISO, g.Flags.HasZ, g.Flags.HasM) + " ("
	default:
		return tag + "("
	}
}

func emptyRepr(g *geom.Geometry, opts Options) string {
	tag := tagNames[g.Kind]
	if opts.Variant == ISO {
		return tag + dimQualifier(ISO, g.Flags.HasZ, g.Flags.HasM) + " EMPTY"
	}
	if opts.Variant == Extended && g.Flags.HasM && !g.Flags.HasZ {
		return tag + "M EMPTY"
	}
	return tag + " EMPTY"
}

// writeTagged renders the full "TAG ... (...)" or "TAG EMPTY" form for g.
func writeTagged(sb *strings.Builder, g *geom.Geometry, opts Options) error {
	if g.IsEmpty() {
		sb.WriteString(emptyRepr(g, opts))
		return nil
	}
	sb.WriteString(tagAndOpen(g, opts))
	if err := writeBody(sb, g, opts); err != nil {
		return err
	}
	sb.WriteString(")")
	return nil
}

// writeBody renders the comma-joined interior of g's parens, without the
// tag, qualifier, or outer parens.
func writeBody(sb *strings.Builder, g *geom.Geometry, opts Options) error {
	switch g.Kind {
	case geom.KindPoint:
		writeCoord(sb, g.Rings[0].At(0), g.Flags, opts)
		return nil

	case geom.KindLineString, geom.KindCircularString:
		writeCoordList(sb, g.Rings[0], g.Flags, opts)
		return nil

	case geom.KindPolygon, geom.KindTriangle:
		for i, r := range g.Rings {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString("(")
			writeCoordList(sb, r, g.Flags, opts)
			sb.WriteString(")")
		}
		return nil

	case geom.KindMultiPoint:
		// MultiPoint stores each member as a child Point (spec.md §3.3);
		// rendered flat without per-point parens.
		for i, c := range g.Children {
			if i > 0 {
				sb.WriteString(", ")
			}
			if c.IsEmpty() {
				sb.WriteString("EMPTY")
				continue
			}
			writeCoord(sb, c.Rings[0].At(0), g.Flags, opts)
		}
		return nil

	case geom.KindMultiLineString, geom.KindPolyhedralSurface, geom.KindTin:
		for i, c := range g.Children {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString("(")
			if err := writeBody(sb, c, opts); err != nil {
				return err
			}
			sb.WriteString(")")
		}
		return nil

	case geom.KindMultiPolygon:
		for i, c := range g.Children {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString("(")
			if err := writeBody(sb, c, opts); err != nil {
				return err
			}
			sb.WriteString(")")
		}
		return nil

	case geom.KindCompoundCurve, geom.KindCurvePolygon, geom.KindMultiCurve:
		for i, c := range g.Children {
			if i > 0 {
				sb.WriteString(", ")
			}
			if err := writeCurveMember(sb, c, opts); err != nil {
				return err
			}
		}
		return nil

	case geom.KindMultiSurface:
		for i, c := range g.Children {
			if i > 0 {
				sb.WriteString(", ")
			}
			if c.Kind == geom.KindPolygon {
				sb.WriteString("(")
				if err := writeBody(sb, c, opts); err != nil {
					return err
				}
				sb.WriteString(")")
			} else if err := writeTagged(sb, c, opts); err != nil {
				return err
			}
		}
		return nil

	case geom.KindGeometryCollection:
		for i, c := range g.Children {
			if i > 0 {
				sb.WriteString(", ")
			}
			if err := writeTagged(sb, c, opts); err != nil {
				return err
			}
		}
		return nil

	default:
		return parseErr("WKT write: unsupported geometry kind %s", g.Kind)
	}
}

// writeCurveMember renders a CompoundCurve/CurvePolygon/MultiCurve member:
// a LineString is printed without its tag (just its coordinate-list parens,
// spec.md §4.8); CircularString/CompoundCurve print with their own tag.
func writeCurveMember(sb *strings.Builder, c *geom.Geometry, opts Options) error {
	if c.Kind == geom.KindLineString {
		sb.WriteString("(")
		if err := writeBody(sb, c, opts); err != nil {
			return err
		}
		sb.WriteString(")")
		return nil
	}
	return writeTagged(sb, c, opts)
}

func writeCoordList(sb *strings.Builder, pa *geom.PointArray, flags geom.Flags, opts Options) {
	for i := 0; i < pa.NPoints(); i++ {
		if i > 0 {
			sb.WriteString(", ")
		}
		writeCoord(sb, pa.At(i), flags, opts)
	}
}

func writeCoord(sb *strings.Builder, c geom.Coord4, flags geom.Flags, opts Options) {
	digits := opts.digits()
	sb.WriteString(formatFloat(c.X, digits))
	sb.WriteString(" ")
	sb.WriteString(formatFloat(c.Y, digits))
	if flags.HasZ {
		sb.WriteString(" ")
		sb.WriteString(formatFloat(c.Z, digits))
	}
	if flags.HasM {
		sb.WriteString(" ")
		sb.WriteString(formatFloat(c.M, digits))
	}
}
