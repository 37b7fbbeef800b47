package geom_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rtgeom/rtgeom/internal/geom"
)

func mustLine(t *testing.T, srid int32, coords ...float64) *geom.Geometry {
	t.Helper()
	pa := geom.NewPointArrayFrom(false, false, pts2D(coords...))
	g, err := geom.NewLineString(srid, pa)
	require.NoError(t, err)
	return g
}

func mustPolygon(t *testing.T, srid int32, rings ...[]float64) *geom.Geometry {
	t.Helper()
	ras := make([]*geom.PointArray, len(rings))
	for i, r := range rings {
		ras[i] = geom.NewPointArrayFrom(false, false, pts2D(r...))
	}
	g, err := geom.NewPolygon(srid, false, false, ras)
	require.NoError(t, err)
	return g
}

func TestCloneDeepIndependence(t *testing.T) {
	g := mustLine(t, 0, 0, 0, 1, 1)
	clone := g.CloneDeep()
	require.NoError(t, clone.Rings[0].SetPoint(0, geom.Coord4{X: 99, Y: 99}))
	assert.NotEqual(t, clone.Rings[0].At(0), g.Rings[0].At(0))
	assert.True(t, g.Equal(mustLine(t, 0, 0, 0, 1, 1)))
}

func TestForceDimsRoundTrip(t *testing.T) {
	g := mustLine(t, 0, 0, 0, 1, 1)
	withZ := g.ForceDims(true, false)
	assert.True(t, withZ.Flags.HasZ)
	for i := 0; i < withZ.Rings[0].NPoints(); i++ {
		assert.Equal(t, 0.0, withZ.Rings[0].At(i).Z)
	}
	back := withZ.ForceDims(false, false)
	assert.True(t, back.Equal(g))
}

func TestAsMultiPreservesVertexCount(t *testing.T) {
	g := mustLine(t, 0, 0, 0, 1, 1, 2, 0)
	multi := g.AsMulti()
	assert.Equal(t, geom.KindMultiLineString, multi.Kind)
	assert.Equal(t, g.CountVertices(), multi.CountVertices())
}

func TestReverseInvolution(t *testing.T) {
	g := mustLine(t, 0, 0, 0, 1, 1, 2, 0)
	assert.True(t, g.Reverse().Reverse().Equal(g))
}

func TestIsClosedLineString(t *testing.T) {
	open := mustLine(t, 0, 0, 0, 1, 1)
	closed := mustLine(t, 0, 0, 0, 1, 1, 0, 0)
	c1, err := open.IsClosed()
	require.NoError(t, err)
	assert.False(t, c1)
	c2, err := closed.IsClosed()
	require.NoError(t, err)
	assert.True(t, c2)
}

func TestPolygonAreaMinusHole(t *testing.T) {
	// spec.md §4.2: polygon area = |outer| - sum(|hole|).
	g := mustPolygon(t, 0,
		[]float64{0, 0, 10, 0, 10, 10, 0, 10, 0, 0},
		[]float64{3, 3, 7, 3, 7, 7, 3, 7, 3, 3},
	)
	area, err := g.Area()
	require.NoError(t, err)
	assert.InDelta(t, 100-16, area, 1e-9)
}

func TestForceClockwiseWinding(t *testing.T) {
	// Outer given CW, hole given CCW: ForceClockwise must flip both.
	outerCW := []float64{0, 0, 0, 10, 10, 10, 10, 0, 0, 0}
	holeCCW := []float64{3, 3, 7, 3, 7, 7, 3, 7, 3, 3}
	g := mustPolygon(t, 0, outerCW, holeCCW)
	normalized := g.ForceClockwise()
	assert.Greater(t, normalized.Rings[0].SignedArea(), 0.0)
	assert.Less(t, normalized.Rings[1].SignedArea(), 0.0)
}

func TestAddGeomCompatibilityMatrix(t *testing.T) {
	mp := geom.ConstructEmpty(geom.KindMultiPoint, 0, false, false)
	pt, err := geom.NewPoint(0, geom.NewPointArrayFrom(false, false, pts2D(1, 1)))
	require.NoError(t, err)
	require.NoError(t, mp.AddGeom(pt))

	line := mustLine(t, 0, 0, 0, 1, 1)
	err = mp.AddGeom(line)
	assert.Error(t, err)
}

func TestHomogenizeSingleKindReturnsTypedMulti(t *testing.T) {
	gc := geom.ConstructEmpty(geom.KindGeometryCollection, 0, false, false)
	p1, _ := geom.NewPoint(0, geom.NewPointArrayFrom(false, false, pts2D(0, 0)))
	p2, _ := geom.NewPoint(0, geom.NewPointArrayFrom(false, false, pts2D(1, 1)))
	require.NoError(t, gc.AddGeom(p1))
	require.NoError(t, gc.AddGeom(p2))

	homog := gc.Homogenize()
	assert.Equal(t, geom.KindMultiPoint, homog.Kind)
	assert.Equal(t, 2, homog.CountVertices())
}

func TestCompoundCurveRejectsEmptyChild(t *testing.T) {
	cc := geom.ConstructEmpty(geom.KindCompoundCurve, 0, false, false)
	empty, err := geom.NewLineString(0, geom.NewPointArray(false, false, 0))
	require.NoError(t, err)
	assert.Error(t, cc.AddGeom(empty))
}
