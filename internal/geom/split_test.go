package geom_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rtgeom/rtgeom/internal/geom"
)

func TestSplitLineByPointMidpoint(t *testing.T) {
	line := mustLine(t, 0, 0, 0, 10, 0)
	pieces, n, err := geom.SplitLineByPoint(line, geom.Coord4{X: 5, Y: 0})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	require.Len(t, pieces, 2)
	assert.InDelta(t, 5, pieces[0].Rings[0].EndPoint().X, 1e-9)
	assert.InDelta(t, 5, pieces[1].Rings[0].StartPoint().X, 1e-9)
}

func TestSplitLineByPointOffLineReturnsNil(t *testing.T) {
	line := mustLine(t, 0, 0, 0, 10, 0)
	pieces, n, err := geom.SplitLineByPoint(line, geom.Coord4{X: 5, Y: 5})
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Nil(t, pieces)
}

func TestSplitLineByPointOnEndpointReturnsWhole(t *testing.T) {
	line := mustLine(t, 0, 0, 0, 10, 0)
	pieces, n, err := geom.SplitLineByPoint(line, geom.Coord4{X: 0, Y: 0})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	require.Len(t, pieces, 1)
}

func TestSubdivideRespectsMaxVertices(t *testing.T) {
	ctx := geom.NewContext()
	ring := mustPolygon(t, 0, []float64{0, 0, 0, 10, 10, 10, 10, 0, 0, 0})
	pieces, err := ring.Subdivide(ctx, geom.SubdivideMinVertices)
	require.NoError(t, err)
	// The 5-vertex square is already within the 8-vertex floor, so it comes
	// back as a single piece.
	assert.Equal(t, 1, len(pieces))
	for _, p := range pieces {
		assert.LessOrEqual(t, p.CountVertices(), geom.SubdivideMinVertices)
	}
}
