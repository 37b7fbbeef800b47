package twkb_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rtgeom/rtgeom/internal/geom"
	"github.com/rtgeom/rtgeom/internal/twkb"
)

func point(hasZ, hasM bool, x, y, z, m float64) *geom.Geometry {
	c := geom.Coord4{X: x, Y: y, Z: z, M: m}
	pa := geom.NewPointArrayFrom(hasZ, hasM, []geom.Coord4{c})
	g, err := geom.NewPoint(geom.UnknownSRID, pa)
	if err != nil {
		panic(err)
	}
	return g
}

func assertCoordEqual(t *testing.T, want, got geom.Coord4, flags geom.Flags, eps float64) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, eps)
	assert.InDelta(t, want.Y, got.Y, eps)
	if flags.HasZ {
		assert.InDelta(t, want.Z, got.Z, eps)
	}
	if flags.HasM {
		assert.InDelta(t, want.M, got.M, eps)
	}
}

func TestTWKBPointRoundTrip(t *testing.T) {
	g := point(false, false, 1.234567, -2.7, 0, 0)
	out, err := twkb.Encode(g, twkb.Options{XYPrecision: 5})
	require.NoError(t, err)

	res, err := twkb.Decode(out)
	require.NoError(t, err)
	require.Equal(t, geom.KindPoint, res.Geom.Kind)
	assertCoordEqual(t, g.Rings[0].At(0), res.Geom.Rings[0].At(0), g.Flags, 1e-5)
}

func TestTWKBPointZMRoundTrip(t *testing.T) {
	g := point(true, true, 10, 20, 30, 40)
	out, err := twkb.Encode(g, twkb.Options{XYPrecision: 2, ZPrecision: 1, MPrecision: 0})
	require.NoError(t, err)

	res, err := twkb.Decode(out)
	require.NoError(t, err)
	assert.True(t, res.Geom.Flags.HasZ)
	assert.True(t, res.Geom.Flags.HasM)
	assertCoordEqual(t, g.Rings[0].At(0), res.Geom.Rings[0].At(0), g.Flags, 0.5)
}

func TestTWKBLineStringDeltaRoundTrip(t *testing.T) {
	pa := geom.NewPointArrayFrom(false, false, []geom.Coord4{
		{X: 0, Y: 0}, {X: 1.5, Y: 1.5}, {X: -3, Y: 2},
	})
	g, err := geom.NewLineString(0, pa)
	require.NoError(t, err)

	out, err := twkb.Encode(g, twkb.Options{XYPrecision: 3})
	require.NoError(t, err)
	res, err := twkb.Decode(out)
	require.NoError(t, err)
	require.Equal(t, 3, res.Geom.Rings[0].NPoints())
	for i := 0; i < 3; i++ {
		assertCoordEqual(t, pa.At(i), res.Geom.Rings[0].At(i), g.Flags, 1e-3)
	}
}

func TestTWKBPolygonWithHoleRoundTrip(t *testing.T) {
	outer := geom.NewPointArrayFrom(false, false, []geom.Coord4{
		{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}, {X: 0, Y: 0},
	})
	hole := geom.NewPointArrayFrom(false, false, []geom.Coord4{
		{X: 2, Y: 2}, {X: 4, Y: 2}, {X: 4, Y: 4}, {X: 2, Y: 4}, {X: 2, Y: 2},
	})
	g, err := geom.NewPolygon(0, false, false, []*geom.PointArray{outer, hole})
	require.NoError(t, err)

	out, err := twkb.Encode(g, twkb.Options{XYPrecision: 0})
	require.NoError(t, err)
	res, err := twkb.Decode(out)
	require.NoError(t, err)
	require.Len(t, res.Geom.Rings, 2)
	assert.Equal(t, 5, res.Geom.Rings[0].NPoints())
	assert.Equal(t, 5, res.Geom.Rings[1].NPoints())
}

func TestTWKBMultiPointRoundTrip(t *testing.T) {
	mp := &geom.Geometry{Kind: geom.KindMultiPoint}
	require.NoError(t, mp.AddGeom(point(false, false, 1, 1, 0, 0)))
	require.NoError(t, mp.AddGeom(point(false, false, 2, 2, 0, 0)))

	out, err := twkb.Encode(mp, twkb.Options{XYPrecision: 2})
	require.NoError(t, err)
	res, err := twkb.Decode(out)
	require.NoError(t, err)
	require.Len(t, res.Geom.Children, 2)
	assertCoordEqual(t, geom.Coord4{X: 1, Y: 1}, res.Geom.Children[0].Rings[0].At(0), mp.Flags, 1e-2)
	assertCoordEqual(t, geom.Coord4{X: 2, Y: 2}, res.Geom.Children[1].Rings[0].At(0), mp.Flags, 1e-2)
}

func TestTWKBCompoundCurveMixedMembersRoundTrip(t *testing.T) {
	circ, err := geom.NewCircularString(0, geom.NewPointArrayFrom(false, false, []geom.Coord4{
		{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 0},
	}))
	require.NoError(t, err)
	line, err := geom.NewLineString(0, geom.NewPointArrayFrom(false, false, []geom.Coord4{
		{X: 2, Y: 0}, {X: 3, Y: 0},
	}))
	require.NoError(t, err)

	cc := &geom.Geometry{Kind: geom.KindCompoundCurve}
	require.NoError(t, cc.AddGeom(circ))
	require.NoError(t, cc.AddGeom(line))

	out, err := twkb.Encode(cc, twkb.Options{XYPrecision: 3})
	require.NoError(t, err)
	res, err := twkb.Decode(out)
	require.NoError(t, err)
	require.Len(t, res.Geom.Children, 2)
	assert.Equal(t, geom.KindCircularString, res.Geom.Children[0].Kind)
	assert.Equal(t, geom.KindLineString, res.Geom.Children[1].Kind)
}

func TestTWKBGeometryCollectionResetsAccumulator(t *testing.T) {
	gc := &geom.Geometry{Kind: geom.KindGeometryCollection}
	require.NoError(t, gc.AddGeom(point(false, false, 100, 100, 0, 0)))
	require.NoError(t, gc.AddGeom(point(false, false, 1, 1, 0, 0)))

	out, err := twkb.Encode(gc, twkb.Options{XYPrecision: 0})
	require.NoError(t, err)
	res, err := twkb.Decode(out)
	require.NoError(t, err)
	require.Len(t, res.Geom.Children, 2)
	assertCoordEqual(t, geom.Coord4{X: 100, Y: 100}, res.Geom.Children[0].Rings[0].At(0), gc.Flags, 1e-6)
	assertCoordEqual(t, geom.Coord4{X: 1, Y: 1}, res.Geom.Children[1].Rings[0].At(0), gc.Flags, 1e-6)
}

func TestTWKBEmptyGeometry(t *testing.T) {
	g := geom.ConstructEmpty(geom.KindLineString, geom.UnknownSRID, false, false)
	out, err := twkb.Encode(g, twkb.Options{})
	require.NoError(t, err)
	res, err := twkb.Decode(out)
	require.NoError(t, err)
	assert.True(t, res.Geom.IsEmpty())
}

func TestTWKBIDList(t *testing.T) {
	mp := &geom.Geometry{Kind: geom.KindMultiPoint}
	require.NoError(t, mp.AddGeom(point(false, false, 1, 1, 0, 0)))
	require.NoError(t, mp.AddGeom(point(false, false, 2, 2, 0, 0)))

	out, err := twkb.Encode(mp, twkb.Options{XYPrecision: 1, IDs: []int64{42, -7}})
	require.NoError(t, err)
	res, err := twkb.Decode(out)
	require.NoError(t, err)
	assert.Equal(t, []int64{42, -7}, res.IDs)
	require.Len(t, res.Geom.Children, 2)
}

func TestTWKBBBoxAndSizeSections(t *testing.T) {
	pa := geom.NewPointArrayFrom(false, false, []geom.Coord4{{X: 0, Y: 0}, {X: 5, Y: 5}})
	g, err := geom.NewLineString(0, pa)
	require.NoError(t, err)

	out, err := twkb.Encode(g, twkb.Options{XYPrecision: 1, IncludeBBox: true, IncludeSize: true})
	require.NoError(t, err)
	res, err := twkb.Decode(out)
	require.NoError(t, err)
	require.Equal(t, 2, res.Geom.Rings[0].NPoints())
	assertCoordEqual(t, geom.Coord4{X: 0, Y: 0}, res.Geom.Rings[0].At(0), g.Flags, 1e-1)
	assertCoordEqual(t, geom.Coord4{X: 5, Y: 5}, res.Geom.Rings[0].At(1), g.Flags, 1e-1)
}

func TestTWKBPrecisionOutOfRangeErrors(t *testing.T) {
	g := point(false, false, 1, 1, 0, 0)
	_, err := twkb.Encode(g, twkb.Options{XYPrecision: 20})
	assert.Error(t, err)
}

func TestTWKBTruncatedInputErrors(t *testing.T) {
	g := point(false, false, 1, 2, 0, 0)
	out, err := twkb.Encode(g, twkb.Options{})
	require.NoError(t, err)
	_, err = twkb.Decode(out[:len(out)-1])
	assert.Error(t, err)
}
