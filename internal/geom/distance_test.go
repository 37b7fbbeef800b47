package geom_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rtgeom/rtgeom/internal/geom"
)

func mustPoint(t *testing.T, x, y float64) *geom.Geometry {
	t.Helper()
	g, err := geom.NewPoint(0, geom.NewPointArrayFrom(false, false, []geom.Coord4{{X: x, Y: y}}))
	require.NoError(t, err)
	return g
}

func TestDist2DPointToPoint(t *testing.T) {
	ctx := geom.NewContext()
	a, b := mustPoint(t, 0, 0), mustPoint(t, 3, 4)
	dist, p1, p2, err := geom.Dist2D(ctx, a, b, geom.DistMin, 0)
	require.NoError(t, err)
	assert.InDelta(t, 5, dist, 1e-9)
	assert.Equal(t, geom.Coord4{X: 0, Y: 0}, p1)
	assert.Equal(t, geom.Coord4{X: 3, Y: 4}, p2)
}

func TestDist2DPointToLineMin(t *testing.T) {
	ctx := geom.NewContext()
	line := mustLine(t, 0, 0, 0, 10, 0)
	pt := mustPoint(t, 5, 3)
	dist, _, _, err := geom.Dist2D(ctx, pt, line, geom.DistMin, 0)
	require.NoError(t, err)
	assert.InDelta(t, 3, dist, 1e-9)
}

func TestDist2DMaxFindsFarthestPair(t *testing.T) {
	ctx := geom.NewContext()
	a := mustLine(t, 0, 0, 0, 1, 0)
	b := mustLine(t, 0, 10, 0, 10, 1)
	dist, _, _, err := geom.Dist2D(ctx, a, b, geom.DistMax, 0)
	require.NoError(t, err)
	// Farthest pair is (0,0) vs (10,1).
	want := geom.Coord4{X: 0, Y: 0}.Dist2D(geom.Coord4{X: 10, Y: 1})
	assert.InDelta(t, want, dist, 1e-9)
}

func TestDist2DBruteForceAgreesWithFastPath(t *testing.T) {
	ctx := geom.NewContext()
	// Two disjoint, axis-separated line strings: eligible for the sweep
	// fast path, and cheap enough to sanity-check by hand: the brute-force
	// minimum over all segment pairs is (1,1)-(5,0), sqrt(17) apart.
	a := mustLine(t, 0, 0, 0, 1, 1)
	b := mustLine(t, 0, 5, 0, 6, 1)
	dist, _, _, err := geom.Dist2D(ctx, a, b, geom.DistMin, 0)
	require.NoError(t, err)
	assert.InDelta(t, math.Sqrt(17), dist, 1e-9)
}

func TestDist2DEmptyGeometryErrors(t *testing.T) {
	ctx := geom.NewContext()
	empty := geom.ConstructEmpty(geom.KindPoint, 0, false, false)
	pt := mustPoint(t, 0, 0)
	_, _, _, err := geom.Dist2D(ctx, empty, pt, geom.DistMin, 0)
	assert.Error(t, err)
}

func TestDist2DToleranceShortCircuitsMin(t *testing.T) {
	ctx := geom.NewContext()
	a, b := mustPoint(t, 0, 0), mustPoint(t, 1, 0)
	dist, _, _, err := geom.Dist2D(ctx, a, b, geom.DistMin, 5)
	require.NoError(t, err)
	assert.InDelta(t, 1, dist, 1e-9)
}
