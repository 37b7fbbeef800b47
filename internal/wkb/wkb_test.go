package wkb_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rtgeom/rtgeom/internal/geom"
	"github.com/rtgeom/rtgeom/internal/wkb"
)

func point(srid int32, hasZ, hasM bool, x, y, z, m float64) *geom.Geometry {
	c := geom.Coord4{X: x, Y: y, Z: z, M: m}
	pa := geom.NewPointArrayFrom(hasZ, hasM, []geom.Coord4{c})
	g, err := geom.NewPoint(srid, pa)
	if err != nil {
		panic(err)
	}
	return g
}

func line2D(srid int32, coords ...float64) *geom.Geometry {
	pts := make([]geom.Coord4, 0, len(coords)/2)
	for i := 0; i < len(coords); i += 2 {
		pts = append(pts, geom.Coord4{X: coords[i], Y: coords[i+1]})
	}
	pa := geom.NewPointArrayFrom(false, false, pts)
	g, err := geom.NewLineString(srid, pa)
	if err != nil {
		panic(err)
	}
	return g
}

func TestWKBPointRoundTripExtended(t *testing.T) {
	g := point(4326, true, false, 1, 2, 3, 0)
	for _, endian := range []wkb.Endian{wkb.LittleEndian, wkb.BigEndian} {
		out, err := wkb.Encode(g, wkb.Options{Variant: wkb.Extended, Endian: endian})
		require.NoError(t, err)
		got, err := wkb.Decode(out)
		require.NoError(t, err)
		assert.True(t, got.Equal(g), "endian=%v", endian)
		assert.EqualValues(t, 4326, got.SRID)
	}
}

func TestWKBISONoSRID(t *testing.T) {
	g := point(4326, false, false, 1, 2, 0, 0)
	out, err := wkb.Encode(g, wkb.Options{Variant: wkb.ISO, Endian: wkb.LittleEndian})
	require.NoError(t, err)
	got, err := wkb.Decode(out)
	require.NoError(t, err)
	assert.True(t, got.Equal(g))
	assert.EqualValues(t, geom.UnknownSRID, got.SRID)
}

func TestWKBSFSQLDropsZM(t *testing.T) {
	g := point(0, true, true, 1, 2, 3, 4)
	out, err := wkb.Encode(g, wkb.Options{Variant: wkb.SFSQL})
	require.NoError(t, err)
	got, err := wkb.Decode(out)
	require.NoError(t, err)
	assert.False(t, got.Flags.HasZ)
	assert.False(t, got.Flags.HasM)
}

func TestWKBHexEnvelopeUppercase(t *testing.T) {
	g := point(0, false, false, 1, 2, 0, 0)
	out, err := wkb.Encode(g, wkb.Options{Variant: wkb.Extended, Hex: true})
	require.NoError(t, err)
	s := string(out)
	for _, r := range s {
		assert.False(t, r >= 'a' && r <= 'f', "hex envelope must be upper case, got %q", s)
	}
	got, err := wkb.DecodeHex(s)
	require.NoError(t, err)
	assert.True(t, got.Equal(g))
}

func TestWKBCollectionNoChildSRID(t *testing.T) {
	mp := &geom.Geometry{Kind: geom.KindMultiPoint, SRID: 4326}
	mp.Children = append(mp.Children, point(4326, false, false, 1, 1, 0, 0), point(4326, false, false, 2, 2, 0, 0))
	out, err := wkb.Encode(mp, wkb.Options{Variant: wkb.Extended, Endian: wkb.LittleEndian})
	require.NoError(t, err)
	got, err := wkb.Decode(out)
	require.NoError(t, err)
	require.Len(t, got.Children, 2)
	assert.EqualValues(t, 4326, got.Children[0].SRID, "children inherit the parent's SRID on decode even though the wire form carries it only once")
}

func TestWKBLineStringRoundTrip(t *testing.T) {
	g := line2D(0, 0, 0, 1, 1, 2, 0)
	out, err := wkb.Encode(g, wkb.Options{Variant: wkb.ISO, Endian: wkb.BigEndian})
	require.NoError(t, err)
	got, err := wkb.Decode(out)
	require.NoError(t, err)
	assert.True(t, got.Equal(g))
}

func TestWKBEmptyPointRoundTrip(t *testing.T) {
	g := geom.ConstructEmpty(geom.KindPoint, 0, false, false)
	g.Rings = []*geom.PointArray{geom.NewPointArray(false, false, 0)}
	out, err := wkb.Encode(g, wkb.Options{Variant: wkb.Extended})
	require.NoError(t, err)
	got, err := wkb.Decode(out)
	require.NoError(t, err)
	assert.True(t, got.IsEmpty())
}

func TestWKBTruncatedInputErrors(t *testing.T) {
	g := point(0, false, false, 1, 2, 0, 0)
	out, err := wkb.Encode(g, wkb.Options{Variant: wkb.Extended})
	require.NoError(t, err)
	_, err = wkb.Decode(out[:len(out)-2])
	assert.Error(t, err)
}

func TestWKBUnknownTypeErrors(t *testing.T) {
	out, err := wkb.Encode(point(0, false, false, 0, 0, 0, 0), wkb.Options{Variant: wkb.Extended})
	require.NoError(t, err)
	bad := append([]byte{}, out...)
	bad[1] = 99
	_, err = wkb.Decode(bad)
	assert.Error(t, err)
}
