package geom_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rtgeom/rtgeom/internal/geom"
)

func pts2D(coords ...float64) []geom.Coord4 {
	out := make([]geom.Coord4, 0, len(coords)/2)
	for i := 0; i < len(coords); i += 2 {
		out = append(out, geom.Coord4{X: coords[i], Y: coords[i+1]})
	}
	return out
}

func TestSignedAreaCCWPositive(t *testing.T) {
	ring := geom.NewPointArrayFrom(false, false, pts2D(0, 0, 10, 0, 10, 10, 0, 10, 0, 0))
	assert.Greater(t, ring.SignedArea(), 0.0)
	assert.False(t, isCW(ring))
}

func isCW(pa *geom.PointArray) bool { return pa.SignedArea() < 0 }

func TestContainsPointOuterRing(t *testing.T) {
	// spec.md §8.4 scenario 2 (outer ring only; the hole case is covered
	// separately below).
	outer := geom.NewPointArrayFrom(false, false, pts2D(0, 0, 10, 0, 10, 10, 0, 10, 0, 0))
	cases := []struct {
		x, y float64
		want geom.Containment
	}{
		{1, 1, geom.Inside},
		{0, 5, geom.Boundary},
		{11, 0, geom.Outside},
	}
	for _, c := range cases {
		got := outer.ContainsPoint(geom.Coord4{X: c.x, Y: c.y})
		assert.Equal(t, c.want, got, "point (%v,%v)", c.x, c.y)
	}
}

func TestContainsPointHoleRing(t *testing.T) {
	hole := geom.NewPointArrayFrom(false, false, pts2D(3, 3, 7, 3, 7, 7, 3, 7, 3, 3))
	// (5,5) lies inside the hole ring, so the hole ring on its own reports
	// INSIDE; (3,3) is a hole vertex and reports BOUNDARY. Only the
	// ring-level answer is checked here.
	assert.Equal(t, geom.Inside, hole.ContainsPoint(geom.Coord4{X: 5, Y: 5}))
	assert.Equal(t, geom.Boundary, hole.ContainsPoint(geom.Coord4{X: 3, Y: 3}))
}

func TestSimplifyMonotonicityAndZeroTolerance(t *testing.T) {
	pa := geom.NewPointArrayFrom(false, false, pts2D(0, 0, 1, 0.0001, 2, 0, 3, 5, 4, 0))
	zero := pa.Simplify(0, 2)
	assert.Equal(t, pa.NPoints(), zero.NPoints())

	simplified := pa.Simplify(0.001, 2)
	assert.LessOrEqual(t, simplified.NPoints(), pa.NPoints())
	assert.Equal(t, pa.StartPoint(), simplified.StartPoint())
	assert.Equal(t, pa.EndPoint(), simplified.EndPoint())
}

func TestSimplifyCollapseScenario(t *testing.T) {
	// spec.md §8.4 scenario 4: near-straight line collapses to 2 points
	// once tolerance exceeds the middle vertex's deviation.
	pa := geom.NewPointArrayFrom(false, false, pts2D(0, 0, 1, 0.0001, 2, 0))
	out := pa.Simplify(0.001, 2)
	require.Equal(t, 2, out.NPoints())
	assert.Equal(t, geom.Coord4{X: 0, Y: 0}, out.At(0))
	assert.Equal(t, geom.Coord4{X: 2, Y: 0}, out.At(1))
}

func TestSegmentize2DUpperBound(t *testing.T) {
	pa := geom.NewPointArrayFrom(false, false, pts2D(0, 0, 10, 0))
	out, err := pa.Segmentize2D(3)
	require.NoError(t, err)
	for i := 0; i < out.NPoints()-1; i++ {
		d := out.At(i).Dist2D(out.At(i + 1))
		assert.LessOrEqual(t, d, 3+1e-9)
	}
	assert.Equal(t, geom.Coord4{X: 0, Y: 0}, out.At(0))
	assert.Equal(t, geom.Coord4{X: 10, Y: 0}, out.At(out.NPoints()-1))
}

func TestRemoveRepeatedPointsKeepsMinimum(t *testing.T) {
	pa := geom.NewPointArrayFrom(false, false, pts2D(0, 0, 0, 0, 0, 0))
	out := pa.RemoveRepeatedPoints(0, 2)
	assert.Equal(t, 2, out.NPoints())
}

func TestAppendArraySkipsDuplicateJoin(t *testing.T) {
	a := geom.NewPointArrayFrom(false, false, pts2D(0, 0, 1, 0))
	b := geom.NewPointArrayFrom(false, false, pts2D(1, 0, 2, 0))
	require.NoError(t, a.AppendArray(b, 0))
	assert.Equal(t, 3, a.NPoints())
}

func TestAppendArrayGapToleranceRejectsFarJoin(t *testing.T) {
	a := geom.NewPointArrayFrom(false, false, pts2D(0, 0, 1, 0))
	b := geom.NewPointArrayFrom(false, false, pts2D(5, 5, 6, 6))
	err := a.AppendArray(b, 0.5)
	assert.Error(t, err)
}

func TestIsClosed2D(t *testing.T) {
	ring := geom.NewPointArrayFrom(false, false, pts2D(0, 0, 1, 0, 1, 1, 0, 0))
	assert.True(t, ring.IsClosed2D())
	open := geom.NewPointArrayFrom(false, false, pts2D(0, 0, 1, 0, 1, 1))
	assert.False(t, open.IsClosed2D())
}

func TestReadonlyArrayRejectsMutation(t *testing.T) {
	base := geom.NewPointArrayFrom(false, false, pts2D(0, 0, 1, 1))
	ro := base.CloneShallow()
	assert.True(t, ro.IsReadonly())
	err := ro.AppendPoint(geom.Coord4{X: 2, Y: 2}, true)
	assert.Error(t, err)
}

func TestLocatePointAndSubstring(t *testing.T) {
	pa := geom.NewPointArrayFrom(false, false, pts2D(0, 0, 10, 0))
	frac, proj, dist, err := pa.LocatePoint(geom.Coord4{X: 5, Y: 1})
	require.NoError(t, err)
	assert.InDelta(t, 0.5, frac, 1e-9)
	assert.InDelta(t, 5, proj.X, 1e-9)
	assert.InDelta(t, 1, dist, 1e-9)

	sub, err := pa.Substring(0.25, 0.75, 0)
	require.NoError(t, err)
	assert.InDelta(t, 2.5, sub.StartPoint().X, 1e-9)
	assert.InDelta(t, 7.5, sub.EndPoint().X, 1e-9)
}
