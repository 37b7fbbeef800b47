package wkt_test

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rtgeom/rtgeom/internal/geom"
	"github.com/rtgeom/rtgeom/internal/wkb"
	"github.com/rtgeom/rtgeom/internal/wkt"
)

// coord4Approx is the cmp.Comparer backing the spec.md §8.2 "equals_approx"
// testable property: a bare reflect.DeepEqual (what cmp.Diff falls back to
// for a struct with no registered Comparer) can't express an epsilon, so
// decimal round-trip through WKT needs its own tolerance-aware comparison.
func coord4Approx(tol float64) cmp.Option {
	return cmp.Comparer(func(a, b geom.Coord4) bool {
		return math.Abs(a.X-b.X) <= tol && math.Abs(a.Y-b.Y) <= tol &&
			math.Abs(a.Z-b.Z) <= tol && math.Abs(a.M-b.M) <= tol
	})
}

func vertices(t *testing.T, g *geom.Geometry) []geom.Coord4 {
	t.Helper()
	require.Len(t, g.Rings, 1)
	out := make([]geom.Coord4, g.Rings[0].NPoints())
	for i := range out {
		out[i] = g.Rings[0].At(i)
	}
	return out
}

func point(srid int32, hasZ, hasM bool, x, y, z, m float64) *geom.Geometry {
	c := geom.Coord4{X: x, Y: y, Z: z, M: m}
	pa := geom.NewPointArrayFrom(hasZ, hasM, []geom.Coord4{c})
	g, err := geom.NewPoint(srid, pa)
	if err != nil {
		panic(err)
	}
	return g
}

func TestWKTPointRoundTripSFSQL(t *testing.T) {
	g := point(0, false, false, 1, 2, 0, 0)
	s, err := wkt.Write(g, wkt.Options{Variant: wkt.SFSQL})
	require.NoError(t, err)
	assert.Equal(t, "POINT(1 2)", s)

	got, err := wkt.Read(s)
	require.NoError(t, err)
	assert.True(t, got.Equal(g))
}

func TestWKTPointZExtendedSRID(t *testing.T) {
	g := point(4326, true, false, 1, 2, 3, 0)
	s, err := wkt.Write(g, wkt.Options{Variant: wkt.ISO})
	require.NoError(t, err)
	assert.Equal(t, "POINT Z (1 2 3)", s)

	full, err := wkt.Write(g, wkt.Options{Variant: wkt.Extended})
	require.NoError(t, err)
	assert.Equal(t, "SRID=4326;POINT(1 2 3)", full)

	got, err := wkt.Read(full)
	require.NoError(t, err)
	assert.EqualValues(t, 4326, got.SRID)
	assert.True(t, got.Flags.HasZ)
	assert.False(t, got.Flags.HasM)
	require.Equal(t, 1, got.Rings[0].NPoints())
	assert.Equal(t, geom.Coord4{X: 1, Y: 2, Z: 3}, got.Rings[0].At(0))
}

// TestWKTThroughWKBRoundTrip reads an extended WKT string, re-encodes it
// through WKB, decodes, and re-emits WKT, requiring the final text to match
// the original exactly.
func TestWKTThroughWKBRoundTrip(t *testing.T) {
	const src = "SRID=4326;POINT(1 2 3)"
	g, err := wkt.Read(src)
	require.NoError(t, err)

	bin, err := wkb.Encode(g, wkb.Options{Variant: wkb.Extended, Endian: wkb.LittleEndian})
	require.NoError(t, err)
	back, err := wkb.Decode(bin)
	require.NoError(t, err)

	out, err := wkt.Write(back, wkt.Options{Variant: wkt.Extended})
	require.NoError(t, err)
	assert.Equal(t, src, out)
}

func TestWKTLineStringRoundTrip(t *testing.T) {
	pa := geom.NewPointArrayFrom(false, false, []geom.Coord4{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 0}})
	g, err := geom.NewLineString(0, pa)
	require.NoError(t, err)

	s, err := wkt.Write(g, wkt.Options{Variant: wkt.SFSQL})
	require.NoError(t, err)
	assert.Equal(t, "LINESTRING(0 0, 1 1, 2 0)", s)

	got, err := wkt.Read(s)
	require.NoError(t, err)
	assert.True(t, got.Equal(g))
}

func TestWKTPolygonWithHoleRoundTrip(t *testing.T) {
	outer := geom.NewPointArrayFrom(false, false, []geom.Coord4{
		{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}, {X: 0, Y: 0},
	})
	hole := geom.NewPointArrayFrom(false, false, []geom.Coord4{
		{X: 2, Y: 2}, {X: 4, Y: 2}, {X: 4, Y: 4}, {X: 2, Y: 4}, {X: 2, Y: 2},
	})
	g, err := geom.NewPolygon(0, false, false, []*geom.PointArray{outer, hole})
	require.NoError(t, err)

	s, err := wkt.Write(g, wkt.Options{Variant: wkt.SFSQL})
	require.NoError(t, err)

	got, err := wkt.Read(s)
	require.NoError(t, err)
	assert.True(t, got.Equal(g))
}

func TestWKTEmptyGeometry(t *testing.T) {
	g := geom.ConstructEmpty(geom.KindLineString, 0, false, false)
	s, err := wkt.Write(g, wkt.Options{Variant: wkt.SFSQL})
	require.NoError(t, err)
	assert.Equal(t, "LINESTRING EMPTY", s)

	got, err := wkt.Read(s)
	require.NoError(t, err)
	assert.True(t, got.IsEmpty())
}

func TestWKTMultiPointRoundTrip(t *testing.T) {
	mp := &geom.Geometry{Kind: geom.KindMultiPoint, SRID: 0}
	require.NoError(t, mp.AddGeom(point(0, false, false, 1, 1, 0, 0)))
	require.NoError(t, mp.AddGeom(point(0, false, false, 2, 2, 0, 0)))

	s, err := wkt.Write(mp, wkt.Options{Variant: wkt.SFSQL})
	require.NoError(t, err)
	assert.Equal(t, "MULTIPOINT(1 1, 2 2)", s)

	got, err := wkt.Read(s)
	require.NoError(t, err)
	require.Len(t, got.Children, 2)
}

func TestWKTGeometryCollectionRoundTrip(t *testing.T) {
	gc := &geom.Geometry{Kind: geom.KindGeometryCollection, SRID: 0}
	require.NoError(t, gc.AddGeom(point(0, false, false, 1, 1, 0, 0)))
	pa := geom.NewPointArrayFrom(false, false, []geom.Coord4{{X: 0, Y: 0}, {X: 1, Y: 1}})
	ls, err := geom.NewLineString(0, pa)
	require.NoError(t, err)
	require.NoError(t, gc.AddGeom(ls))

	s, err := wkt.Write(gc, wkt.Options{Variant: wkt.SFSQL})
	require.NoError(t, err)
	assert.Equal(t, "GEOMETRYCOLLECTION(POINT(1 1), LINESTRING(0 0, 1 1))", s)

	got, err := wkt.Read(s)
	require.NoError(t, err)
	require.Len(t, got.Children, 2)
	assert.Equal(t, geom.KindPoint, got.Children[0].Kind)
	assert.Equal(t, geom.KindLineString, got.Children[1].Kind)
}

func TestWKTCompoundCurveMixedMembers(t *testing.T) {
	const src = "COMPOUNDCURVE(CIRCULARSTRING(0 0, 1 1, 2 0), (2 0, 3 0))"
	g, err := wkt.Read(src)
	require.NoError(t, err)
	require.Len(t, g.Children, 2)
	assert.Equal(t, geom.KindCircularString, g.Children[0].Kind)
	assert.Equal(t, geom.KindLineString, g.Children[1].Kind)

	s, err := wkt.Write(g, wkt.Options{Variant: wkt.SFSQL})
	require.NoError(t, err)
	assert.Equal(t, src, s)
}

// TestWKTRoundTripEqualsApprox is spec.md §8.2 law 3: from_wkt(to_wkt(g,
// precision=17)).equals_approx(g). Irrational-looking coordinates exercise
// decimal-printing rounding; each ordinate is compared with an absolute
// tolerance of 1e-9.
func TestWKTRoundTripEqualsApprox(t *testing.T) {
	pa := geom.NewPointArrayFrom(false, false, []geom.Coord4{
		{X: 1.0 / 3.0, Y: 2.0 / 3.0}, {X: 123456.789012345, Y: -0.000001},
	})
	g, err := geom.NewLineString(0, pa)
	require.NoError(t, err)

	s, err := wkt.Write(g, wkt.Options{Variant: wkt.SFSQL, Digits: 17})
	require.NoError(t, err)
	back, err := wkt.Read(s)
	require.NoError(t, err)

	diff := cmp.Diff(vertices(t, g), vertices(t, back), coord4Approx(1e-9))
	assert.Empty(t, diff, "WKT round trip should match within tolerance:\n%s", diff)
}

func TestWKTParseErrorOnBadTag(t *testing.T) {
	_, err := wkt.Read("NOTAGEOM(1 2)")
	assert.Error(t, err)
}

func TestWKTParseErrorOnUnbalancedParens(t *testing.T) {
	_, err := wkt.Read("POINT(1 2")
	assert.Error(t, err)
}

func TestWKTParseErrorOnBadNumber(t *testing.T) {
	_, err := wkt.Read("POINT(1 x)")
	assert.Error(t, err)
}
