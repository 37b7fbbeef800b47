package geom_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rtgeom/rtgeom/internal/geom"
)

func mustCircularString(t *testing.T, coords ...float64) *geom.Geometry {
	t.Helper()
	g, err := geom.NewCircularString(0, geom.NewPointArrayFrom(false, false, pts2D(coords...)))
	require.NoError(t, err)
	return g
}

func TestStrokeQuarterCircleEndpointsPreserved(t *testing.T) {
	// Quarter circle from (1,0) through (0.7071,0.7071) to (0,1).
	cs := mustCircularString(t, 1, 0, 0.70710678, 0.70710678, 0, 1)
	stroked, err := cs.Stroke(geom.DefaultArcSegments)
	require.NoError(t, err)
	assert.Equal(t, geom.KindLineString, stroked.Kind)
	assert.Greater(t, stroked.Rings[0].NPoints(), 2)
	assert.InDelta(t, 1.0, stroked.Rings[0].At(0).X, 1e-6)
	assert.InDelta(t, 0.0, stroked.Rings[0].At(0).Y, 1e-6)
	last := stroked.Rings[0].At(stroked.Rings[0].NPoints() - 1)
	assert.InDelta(t, 0.0, last.X, 1e-6)
	assert.InDelta(t, 1.0, last.Y, 1e-6)
}

func TestHasArcDetectsNestedCircularString(t *testing.T) {
	cs := mustCircularString(t, 0, 0, 1, 1, 2, 0)
	cc := geom.ConstructEmpty(geom.KindCompoundCurve, 0, false, false)
	require.NoError(t, cc.AddGeom(cs))
	assert.True(t, cc.HasArc())

	line := mustLine(t, 0, 0, 0, 1, 1)
	assert.False(t, line.HasArc())
}

func TestUnstrokeRecoversArcFromStrokedCircle(t *testing.T) {
	cs := mustCircularString(t, 0, 0, 5, 5, 10, 0)
	stroked, err := cs.Stroke(16)
	require.NoError(t, err)

	unstroked, err := stroked.Unstroke()
	require.NoError(t, err)
	// A pure circular arc that strokes cleanly unstrokes back to a
	// CircularString (or a CompoundCurve wrapping just one, depending on
	// how the run-detector packages a single arc run).
	switch unstroked.Kind {
	case geom.KindCircularString:
	case geom.KindCompoundCurve:
		require.Len(t, unstroked.Children, 1)
		assert.Equal(t, geom.KindCircularString, unstroked.Children[0].Kind)
	default:
		t.Fatalf("unexpected unstroke result kind %s", unstroked.Kind)
	}
}

func TestForceSFSStrokesArcsAway(t *testing.T) {
	cs := mustCircularString(t, 0, 0, 1, 1, 2, 0)
	plain, err := cs.ForceSFS(0)
	require.NoError(t, err)
	assert.False(t, plain.HasArc())
}
