package roadgraph_test

import (
	"io"
	"testing"

	"lintang/roadgraph/pkg/datastructure"
	"lintang/roadgraph/pkg/geo"
	"lintang/roadgraph/pkg/roadgraph"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-polyline"
)

func record(class string, oneway string, maxspeed string, parts ...orb.LineString) datastructure.RoadRecord {
	return datastructure.RoadRecord{
		RoadClass: class,
		Attributes: datastructure.Attributes{
			Columns: []string{"fclass", "oneway", "maxspeed"},
			Values:  []string{class, oneway, maxspeed},
		},
		Geometry: orb.MultiLineString(parts),
	}
}

func build(t *testing.T, keepGeometry bool, records ...datastructure.RoadRecord) (*roadgraph.RoadGraph, roadgraph.BuildStats) {
	t.Helper()
	segments := roadgraph.ExplodeAndProject(records)
	roadgraph.DeriveAttributes(segments, records, datastructure.NewDefaultSpeedProfile())
	return roadgraph.NewBuilder(keepGeometry, io.Discard).Build(segments)
}

func nodeAt(t *testing.T, rg *roadgraph.RoadGraph, lon, lat float64) datastructure.Node {
	t.Helper()
	p := geo.PointToWebMercator(orb.Point{lon, lat})
	n, ok := rg.NodeAt(p[0], p[1])
	require.True(t, ok, "node at %v,%v", lon, lat)
	return n
}

var (
	a = orb.Point{-95.36, 29.76}
	b = orb.Point{-95.35, 29.76}
	c = orb.Point{-95.35, 29.77}
	d = orb.Point{-95.34, 29.77}
)

func TestBuildOneWay(t *testing.T) {
	t.Run("forward only", func(t *testing.T) {
		rg, _ := build(t, false, record("primary", "F", "", orb.LineString{a, b}))
		u, v := nodeAt(t, rg, a[0], a[1]), nodeAt(t, rg, b[0], b[1])

		assert.Equal(t, 2, rg.NumNodes())
		assert.Equal(t, 1, rg.NumEdges())
		_, ok := rg.Edge(u.IDx, v.IDx)
		assert.True(t, ok)
		_, ok = rg.Edge(v.IDx, u.IDx)
		assert.False(t, ok)
	})

	t.Run("reverse only", func(t *testing.T) {
		rg, _ := build(t, false, record("primary", "T", "", orb.LineString{a, b}))
		u, v := nodeAt(t, rg, a[0], a[1]), nodeAt(t, rg, b[0], b[1])

		assert.Equal(t, 1, rg.NumEdges())
		_, ok := rg.Edge(v.IDx, u.IDx)
		assert.True(t, ok)
		_, ok = rg.Edge(u.IDx, v.IDx)
		assert.False(t, ok)
	})

	t.Run("both and unknown codes are bidirectional", func(t *testing.T) {
		for _, code := range []string{"B", "", "yes"} {
			rg, _ := build(t, false, record("primary", code, "", orb.LineString{a, b}))
			assert.Equal(t, 2, rg.NumEdges(), "oneway %q", code)
		}
	})
}

func TestBuildEdgeAttributes(t *testing.T) {
	rg, stats := build(t, false,
		record("residential", "F", "", orb.LineString{a, b, c}),
		record("primary", "F", "36", orb.LineString{c, d}),
	)
	assert.Equal(t, 2, stats.Segments)
	assert.Equal(t, 2, stats.Edges)
	assert.Equal(t, 3, rg.NumNodes(), "interior vertex b is not a node")

	u, v := nodeAt(t, rg, a[0], a[1]), nodeAt(t, rg, c[0], c[1])
	e, ok := rg.Edge(u.IDx, v.IDx)
	require.True(t, ok)

	segs := geo.GeometryToSegments(geo.ToWebMercator(orb.LineString{a, b, c}))
	require.Len(t, segs, 1)

	assert.InDelta(t, segs[0].LengthM, e.LengthM, 1e-6)
	assert.Equal(t, 40.0, e.SpeedKph)
	assert.InDelta(t, e.LengthM/(40.0/3.6), e.TravelTimeS, 1e-6)
	assert.Equal(t, "residential", e.Highway)
	assert.Equal(t, e.TravelTimeS, e.Weight())

	w := nodeAt(t, rg, d[0], d[1])
	e2, ok := rg.Edge(v.IDx, w.IDx)
	require.True(t, ok)
	assert.Equal(t, 36.0, e2.SpeedKph)
	assert.InDelta(t, e2.LengthM/10.0, e2.TravelTimeS, 1e-6)
}

func TestBuildSharedNodesAndReplace(t *testing.T) {
	rg, stats := build(t, false,
		record("primary", "F", "", orb.LineString{a, b}),
		record("secondary", "F", "", orb.LineString{a, c, b}),
	)

	assert.Equal(t, 2, rg.NumNodes())
	assert.Equal(t, 1, rg.NumEdges(), "same ordered pair keeps a single edge")
	assert.Equal(t, 1, stats.Edges)

	u, v := nodeAt(t, rg, a[0], a[1]), nodeAt(t, rg, b[0], b[1])
	e, ok := rg.Edge(u.IDx, v.IDx)
	require.True(t, ok)
	assert.Equal(t, "secondary", e.Highway, "last segment wins")
	assert.Equal(t, 80.0, e.SpeedKph)
}

func TestBuildSelfLoopAndMultiPart(t *testing.T) {
	rg, stats := build(t, false,
		record("service", "B", "", orb.LineString{a, b, c, a}),
		record("track", "B", "", orb.LineString{b, c}, orb.LineString{c, d}, orb.LineString{d}),
	)

	assert.Equal(t, 1, stats.SelfLoops)
	assert.Equal(t, 3, stats.Segments)
	assert.Equal(t, 4, rg.NumNodes())
	// self loop a->a + b<->c + c<->d
	assert.Equal(t, 5, rg.NumEdges())
	assert.Equal(t, 1, rg.NumSelfLoops())

	n := nodeAt(t, rg, a[0], a[1])
	assert.Equal(t, 1, rg.OutDegree(n.IDx))
	assert.Equal(t, 1, rg.InDegree(n.IDx))
	loop, ok := rg.Edge(n.IDx, n.IDx)
	require.True(t, ok)
	assert.Equal(t, "service", loop.Highway)
	assert.Greater(t, loop.LengthM, 0.0)
}

func TestBuildClosedRing(t *testing.T) {
	t.Run("one way ring keeps its self loop", func(t *testing.T) {
		rg, stats := build(t, false, record("primary", "F", "", orb.LineString{a, b, c, a}))

		assert.Equal(t, 1, stats.SelfLoops)
		assert.Equal(t, 1, rg.NumNodes())
		assert.Equal(t, 1, rg.NumEdges())

		edges := rg.Edges()
		require.Len(t, edges, 1)
		assert.Equal(t, edges[0].FromNode.IDx, edges[0].ToNode.IDx)

		// self loop counts twice: once in, once out
		all := roadgraph.DegreeCentrality(rg)
		require.Len(t, all, 1)
		assert.Equal(t, 2, all[0].Degree)
	})

	t.Run("two way ring is a single edge, last write wins", func(t *testing.T) {
		rg, _ := build(t, true, record("primary", "B", "", orb.LineString{a, b, c, a}))
		n := nodeAt(t, rg, a[0], a[1])

		assert.Equal(t, 1, rg.NumEdges())
		loop, ok := rg.Edge(n.IDx, n.IDx)
		require.True(t, ok)
		coords, _, err := polyline.DecodeCoords([]byte(loop.Geometry))
		require.NoError(t, err)
		require.Len(t, coords, 4)
		// reverse direction written last: a, c, b, a
		assert.InDelta(t, c[1], coords[1][0], 1e-5)
	})

	t.Run("ring shares its node with other roads", func(t *testing.T) {
		rg, _ := build(t, false,
			record("primary", "F", "", orb.LineString{a, b, c, a}),
			record("primary", "B", "", orb.LineString{a, d}),
		)
		n := nodeAt(t, rg, a[0], a[1])
		assert.Equal(t, 3, rg.NumEdges())
		assert.Equal(t, 2, rg.OutDegree(n.IDx))
		assert.Equal(t, 2, rg.InDegree(n.IDx))
	})
}

func TestBuildKeepGeometry(t *testing.T) {
	rg, _ := build(t, true, record("primary", "B", "", orb.LineString{a, b, c}))
	u, v := nodeAt(t, rg, a[0], a[1]), nodeAt(t, rg, c[0], c[1])

	fwd, ok := rg.Edge(u.IDx, v.IDx)
	require.True(t, ok)
	coords, _, err := polyline.DecodeCoords([]byte(fwd.Geometry))
	require.NoError(t, err)
	require.Len(t, coords, 3)
	assert.InDelta(t, a[1], coords[0][0], 1e-5)
	assert.InDelta(t, a[0], coords[0][1], 1e-5)

	rev, ok := rg.Edge(v.IDx, u.IDx)
	require.True(t, ok)
	coords, _, err = polyline.DecodeCoords([]byte(rev.Geometry))
	require.NoError(t, err)
	require.Len(t, coords, 3)
	assert.InDelta(t, c[1], coords[0][0], 1e-5)
	assert.InDelta(t, c[0], coords[0][1], 1e-5)
}

func TestNodes(t *testing.T) {
	rg, _ := build(t, false,
		record("primary", "F", "", orb.LineString{a, b}),
		record("primary", "F", "", orb.LineString{c, a}),
	)

	nodes := rg.Nodes()
	require.Len(t, nodes, 3)
	for i, n := range nodes {
		assert.Equal(t, int64(i), n.IDx)
		assert.NotEmpty(t, n.H3Cell)
	}
	assert.InDelta(t, a[0], nodes[0].Lon, 1e-12)
	assert.InDelta(t, a[1], nodes[0].Lat, 1e-12)
	assert.InDelta(t, c[0], nodes[2].Lon, 1e-12)

	edges := rg.Edges()
	require.Len(t, edges, 2)
	assert.Equal(t, int64(0), edges[0].FromNode.IDx)
	assert.Equal(t, int64(2), edges[1].FromNode.IDx)

	_, ok := rg.Node(10)
	assert.False(t, ok)
}
