// Package geom implements the core geometry object model and the analytic,
// simplification, arc, and splitting kernels that operate on it. It is the
// direct analog of the teacher's internal/parser package: the heavy lifting
// lives here, wrapped by a thin public facade in pkg/rtgeom.
package geom

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Numeric tolerances observable at the public boundary (spec.md §6.2).
const (
	// EpsilonGeneral is the default tolerance for general float equality.
	EpsilonGeneral = 1e-12
	// EpsilonSQLMM is the tolerance for arc/circle exactness.
	EpsilonSQLMM = 1e-8
	// MaxVerbatimDouble is the largest absolute double value WKT printing
	// renders without falling back to scientific-ish expansion.
	MaxVerbatimDouble = 1e15
	// DefaultWKTDigits is the default number of decimal digits for WKT
	// output.
	DefaultWKTDigits = 15
)

// FloatEqual reports whether a and b are equal within EpsilonGeneral.
func FloatEqual(a, b float64) bool {
	return floats.EqualWithinAbs(a, b, EpsilonGeneral)
}

// FloatEqualTol reports whether a and b are equal within the given
// tolerance. A tolerance of exactly 0 requires bit-exact equality, matching
// the source's "tolerance == 0 means exact" convention used throughout
// §4.1 (remove-repeated-points, append-array gap checks).
func FloatEqualTol(a, b, tol float64) bool {
	if tol == 0 {
		return a == b
	}
	return floats.EqualWithinAbs(a, b, tol)
}

// Ordinate is a four-valued enum standing in for the source's dynamic
// dispatch on ordinate letters ('x'/'y'/'z'/'m' as char). See spec.md §9.
type Ordinate int

const (
	OrdinateX Ordinate = iota
	OrdinateY
	OrdinateZ
	OrdinateM
)

// Coord4 is the fixed-layout record every PointArray coordinate is
// projected from/to. Storage in a PointArray keeps only the ordinates its
// Flags declare; Coord4 is the in-memory working representation used by
// every kernel so they never need dimension-specific variants.
type Coord4 struct {
	X, Y, Z, M float64
}

// Get returns the named ordinate.
func (c Coord4) Get(o Ordinate) float64 {
	switch o {
	case OrdinateX:
		return c.X
	case OrdinateY:
		return c.Y
	case OrdinateZ:
		return c.Z
	default:
		return c.M
	}
}

// Set returns a copy of c with the named ordinate replaced.
func (c Coord4) Set(o Ordinate, v float64) Coord4 {
	switch o {
	case OrdinateX:
		c.X = v
	case OrdinateY:
		c.Y = v
	case OrdinateZ:
		c.Z = v
	default:
		c.M = v
	}
	return c
}

// Equal2D reports bit-exact equality of the x/y ordinates only.
func (c Coord4) Equal2D(o Coord4) bool {
	return c.X == o.X && c.Y == o.Y
}

// Equal reports bit-exact equality of whichever ordinates flags declares
// present.
func (c Coord4) Equal(o Coord4, flags Flags) bool {
	if c.X != o.X || c.Y != o.Y {
		return false
	}
	if flags.HasZ && c.Z != o.Z {
		return false
	}
	if flags.HasM && c.M != o.M {
		return false
	}
	return true
}

// Dist2DSq returns the squared planar distance between c and o.
func (c Coord4) Dist2DSq(o Coord4) float64 {
	dx, dy := c.X-o.X, c.Y-o.Y
	return dx*dx + dy*dy
}

// Dist2D returns the planar distance between c and o.
func (c Coord4) Dist2D(o Coord4) float64 {
	return math.Sqrt(c.Dist2DSq(o))
}

// Dist3DSq returns the 3D squared distance between c and o, treating both
// as having a z ordinate (callers are responsible for only calling this
// when both arrays carry Z).
func (c Coord4) Dist3DSq(o Coord4) float64 {
	dx, dy, dz := c.X-o.X, c.Y-o.Y, c.Z-o.Z
	return dx*dx + dy*dy + dz*dz
}

// Flags are packed attribute bits shared by PointArray and Geometry
// (spec.md §3.1).
type Flags struct {
	HasZ       bool
	HasM       bool
	HasBBox    bool
	IsGeodetic bool
	IsReadonly bool
}

// DimCompatible reports whether two Flags agree on HasZ/HasM, the
// "dimensionality-compatible" relation of spec.md §3.1.
func DimCompatible(a, b Flags) bool {
	return a.HasZ == b.HasZ && a.HasM == b.HasM
}

// Stride returns the per-point byte width implied by flags, one of
// {16, 24, 24, 32} per spec.md §3.2.
func Stride(f Flags) int {
	switch {
	case f.HasZ && f.HasM:
		return 32
	case f.HasZ, f.HasM:
		return 24
	default:
		return 16
	}
}

// ZMOrdinates returns how many of {z, m} are present, i.e. the coordinate's
// dimension beyond x/y.
func ZMOrdinates(f Flags) int {
	n := 0
	if f.HasZ {
		n++
	}
	if f.HasM {
		n++
	}
	return n
}

// GBox is the axis-aligned bounding box for a geometry or PointArray,
// carrying its own Flags mirroring the owner's dimensionality (spec.md
// §3.1). Ordinates absent per Flags are left zero and ignored by every
// consumer.
type GBox struct {
	Flags            Flags
	XMin, XMax       float64
	YMin, YMax       float64
	ZMin, ZMax       float64
	MMin, MMax       float64
}

// EmptyGBox returns a box suitable for accumulation via Expand: min = +Inf,
// max = -Inf on every ordinate flags declares present.
func EmptyGBox(f Flags) GBox {
	return GBox{
		Flags: f,
		XMin: math.Inf(1), XMax: math.Inf(-1),
		YMin: math.Inf(1), YMax: math.Inf(-1),
		ZMin: math.Inf(1), ZMax: math.Inf(-1),
		MMin: math.Inf(1), MMax: math.Inf(-1),
	}
}

// IsEmpty reports whether the box has never been expanded.
func (b GBox) IsEmpty() bool {
	return b.XMin > b.XMax
}

// ExpandPoint grows b in place to include c.
func (b *GBox) ExpandPoint(c Coord4) {
	if c.X < b.XMin {
		b.XMin = c.X
	}
	if c.X > b.XMax {
		b.XMax = c.X
	}
	if c.Y < b.YMin {
		b.YMin = c.Y
	}
	if c.Y > b.YMax {
		b.YMax = c.Y
	}
	if b.Flags.HasZ {
		if c.Z < b.ZMin {
			b.ZMin = c.Z
		}
		if c.Z > b.ZMax {
			b.ZMax = c.Z
		}
	}
	if b.Flags.HasM {
		if c.M < b.MMin {
			b.MMin = c.M
		}
		if c.M > b.MMax {
			b.MMax = c.M
		}
	}
}

// Union returns the smallest box containing both b and o. Grounded on
// original_source/box2d.c's box union routine.
func (b GBox) Union(o GBox) GBox {
	if b.IsEmpty() {
		return o
	}
	if o.IsEmpty() {
		return b
	}
	r := b
	r.XMin, r.XMax = math.Min(b.XMin, o.XMin), math.Max(b.XMax, o.XMax)
	r.YMin, r.YMax = math.Min(b.YMin, o.YMin), math.Max(b.YMax, o.YMax)
	if r.Flags.HasZ {
		r.ZMin, r.ZMax = math.Min(b.ZMin, o.ZMin), math.Max(b.ZMax, o.ZMax)
	}
	if r.Flags.HasM {
		r.MMin, r.MMax = math.Min(b.MMin, o.MMin), math.Max(b.MMax, o.MMax)
	}
	return r
}

// Intersects2D reports whether b and o overlap in x/y, ignoring z/m. This
// is the fast-reject box2d.c-style test consulted before full distance
// computation (spec.md §4.4).
func (b GBox) Intersects2D(o GBox) bool {
	if b.IsEmpty() || o.IsEmpty() {
		return false
	}
	return !(b.XMax < o.XMin || b.XMin > o.XMax || b.YMax < o.YMin || b.YMin > o.YMax)
}

// Contains2D reports whether o is entirely within b in x/y.
func (b GBox) Contains2D(o GBox) bool {
	if b.IsEmpty() || o.IsEmpty() {
		return false
	}
	return o.XMin >= b.XMin && o.XMax <= b.XMax && o.YMin >= b.YMin && o.YMax <= b.YMax
}

// CenterXY returns the 2D center of the box.
func (b GBox) CenterXY() (x, y float64) {
	return (b.XMin + b.XMax) / 2, (b.YMin + b.YMax) / 2
}

// UnknownSRID is the sentinel SRID value meaning "not specified".
const UnknownSRID int32 = 0
