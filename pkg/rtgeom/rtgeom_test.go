package rtgeom_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rtgeom/rtgeom/pkg/rtgeom"
)

func TestConstructAndInspect(t *testing.T) {
	g, err := rtgeom.NewLineString(4326, false, false, []rtgeom.Coord{
		{X: 0, Y: 0}, {X: 3, Y: 4},
	})
	require.NoError(t, err)
	assert.Equal(t, rtgeom.KindLineString, g.Kind())
	assert.Equal(t, int32(4326), g.SRID())
	length, err := g.Length2D()
	require.NoError(t, err)
	assert.InDelta(t, 5, length, 1e-9)
}

func TestWKTRoundTrip(t *testing.T) {
	g, err := rtgeom.FromWKT("LINESTRING(0 0, 1 1, 2 0)")
	require.NoError(t, err)
	out, err := rtgeom.ToWKT(g, rtgeom.WKTVariantISO, 0)
	require.NoError(t, err)

	back, err := rtgeom.FromWKT(out)
	require.NoError(t, err)
	assert.True(t, g.Equal(back))
}

func TestWKBRoundTrip(t *testing.T) {
	g, err := rtgeom.NewPoint(0, false, false, rtgeom.Coord{X: 1, Y: 2})
	require.NoError(t, err)

	data, err := rtgeom.ToWKB(g, rtgeom.WKBOptions{Variant: rtgeom.WKBVariantExtended})
	require.NoError(t, err)
	back, err := rtgeom.FromWKB(data)
	require.NoError(t, err)
	assert.True(t, g.Equal(back))
}

func TestWKBHexRoundTrip(t *testing.T) {
	g, err := rtgeom.NewPoint(0, false, false, rtgeom.Coord{X: 1, Y: 2})
	require.NoError(t, err)

	hex, err := rtgeom.ToWKB(g, rtgeom.WKBOptions{Variant: rtgeom.WKBVariantExtended, Hex: true})
	require.NoError(t, err)
	back, err := rtgeom.FromWKBHex(string(hex))
	require.NoError(t, err)
	assert.True(t, g.Equal(back))
}

func TestTWKBRoundTrip(t *testing.T) {
	g, err := rtgeom.NewLineString(0, false, false, []rtgeom.Coord{
		{X: 0, Y: 0}, {X: 1.5, Y: 2.25},
	})
	require.NoError(t, err)

	data, err := rtgeom.ToTWKB(g, rtgeom.TWKBOptions{XYPrecision: 2})
	require.NoError(t, err)
	res, err := rtgeom.FromTWKB(data)
	require.NoError(t, err)
	assert.Equal(t, rtgeom.KindLineString, res.Geom.Kind())
	assert.Equal(t, 2, res.Geom.CountVertices())
}

func TestMinMaxDistance2D(t *testing.T) {
	ctx := rtgeom.NewContext()
	a, err := rtgeom.NewPoint(0, false, false, rtgeom.Coord{X: 0, Y: 0})
	require.NoError(t, err)
	b, err := rtgeom.NewPoint(0, false, false, rtgeom.Coord{X: 3, Y: 4})
	require.NoError(t, err)

	dist, _, _, err := rtgeom.MinDistance2D(ctx, a, b)
	require.NoError(t, err)
	assert.InDelta(t, 5, dist, 1e-9)

	within, err := rtgeom.DWithin2D(ctx, a, b, 10)
	require.NoError(t, err)
	assert.True(t, within)

	within, err = rtgeom.DWithin2D(ctx, a, b, 1)
	require.NoError(t, err)
	assert.False(t, within)
}

func TestSimplifyCollapseReturnsNil(t *testing.T) {
	g, err := rtgeom.NewLineString(0, false, false, []rtgeom.Coord{
		{X: 0, Y: 0}, {X: 1, Y: 0.0001}, {X: 2, Y: 0},
	})
	require.NoError(t, err)

	out, err := g.Simplify(0.001, false)
	require.NoError(t, err)
	assert.Nil(t, out)

	preserved, err := g.Simplify(0.001, true)
	require.NoError(t, err)
	require.NotNil(t, preserved)
	assert.Equal(t, 2, preserved.CountVertices())
}

func TestAddGeomRejectsIncompatibleKind(t *testing.T) {
	mp := rtgeom.NewCollection(rtgeom.KindMultiPoint, 0, false, false)
	line, err := rtgeom.NewLineString(0, false, false, []rtgeom.Coord{{X: 0, Y: 0}, {X: 1, Y: 1}})
	require.NoError(t, err)
	assert.Error(t, mp.AddGeom(line))

	pt, err := rtgeom.NewPoint(0, false, false, rtgeom.Coord{X: 0, Y: 0})
	require.NoError(t, err)
	assert.NoError(t, mp.AddGeom(pt))
}

func TestSplitLineByPoint(t *testing.T) {
	line, err := rtgeom.NewLineString(0, false, false, []rtgeom.Coord{{X: 0, Y: 0}, {X: 10, Y: 0}})
	require.NoError(t, err)

	pieces, err := rtgeom.SplitLineByPoint(line, rtgeom.Coord{X: 5, Y: 0})
	require.NoError(t, err)
	require.Len(t, pieces, 2)
}

func TestStrokeAndHasArc(t *testing.T) {
	cs, err := rtgeom.NewCircularString(0, false, false, []rtgeom.Coord{
		{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 0},
	})
	require.NoError(t, err)
	assert.True(t, cs.HasArc())

	stroked, err := cs.Stroke(rtgeom.DefaultArcSegments)
	require.NoError(t, err)
	assert.False(t, stroked.HasArc())
	assert.Equal(t, rtgeom.KindLineString, stroked.Kind())
}
