package geo_test

import (
	"testing"

	"lintang/roadgraph/pkg/geo"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const halfWorldMeters = 20037508.342789244

func TestToWebMercator(t *testing.T) {
	in := orb.LineString{{0, 0}, {180, 0}, {-90, 0}}
	out := geo.ToWebMercator(in)
	require.Len(t, out, 3)

	assert.InDelta(t, 0, out[0][0], 1e-6)
	assert.InDelta(t, 0, out[0][1], 1e-6)
	assert.InDelta(t, halfWorldMeters, out[1][0], 0.01)
	assert.InDelta(t, -halfWorldMeters/2, out[2][0], 0.01)

	// input untouched
	assert.Equal(t, orb.Point{180, 0}, in[1])
}

func TestProjectedLength(t *testing.T) {
	// one degree of longitude on the equator in web mercator
	ls := geo.ToWebMercator(orb.LineString{{0, 0}, {1, 0}})
	segs := geo.GeometryToSegments(ls)
	require.Len(t, segs, 1)
	assert.InDelta(t, halfWorldMeters/180, segs[0].LengthM, 1e-3)

	// latitude stretches projected lengths
	north := geo.GeometryToSegments(geo.ToWebMercator(orb.LineString{{0, 60}, {1, 60}}))
	require.Len(t, north, 1)
	assert.InDelta(t, halfWorldMeters/180, north[0].LengthM, 1e-3)
	assert.Greater(t, geo.PointToWebMercator(orb.Point{0, 60})[1], 8e6)
}

func TestIntersectsBBox(t *testing.T) {
	bbox := geo.NewBBox(-98.0, -95.0, 29.0, 31.0)

	inside := orb.MultiLineString{{{-95.36, 29.76}, {-95.35, 29.77}}}
	crossing := orb.MultiLineString{{{-94.0, 30.0}, {-96.0, 30.0}}}
	outside := orb.MultiLineString{{{-96.80, 32.78}, {-96.79, 32.78}}}
	// envelope overlaps the box corner, the line itself never enters the box
	diagonalMiss := orb.MultiLineString{{{-94.0, 30.5}, {-96.0, 32.0}}}
	bentInside := orb.MultiLineString{{{-94.0, 32.0}, {-96.0, 32.0}, {-96.0, 30.0}}}

	assert.True(t, geo.IntersectsBBox(inside, bbox))
	assert.True(t, geo.IntersectsBBox(crossing, bbox))
	assert.False(t, geo.IntersectsBBox(outside, bbox))
	assert.False(t, geo.IntersectsBBox(diagonalMiss, bbox))
	assert.True(t, geo.IntersectsBBox(bentInside, bbox))
	assert.False(t, geo.IntersectsBBox(orb.MultiLineString{}, bbox))
}

func TestH3Cell(t *testing.T) {
	cell := geo.H3Cell(29.76, -95.36)
	assert.Len(t, cell, 15)
	assert.Equal(t, cell, geo.H3Cell(29.76, -95.36))
	assert.NotEqual(t, cell, geo.H3Cell(32.78, -96.80))
}
