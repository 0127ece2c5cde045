package roadgraph

import (
	"lintang/roadgraph/pkg/datastructure"
	"lintang/roadgraph/pkg/geo"

	"github.com/paulmach/orb"
	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
)

// RoadGraph directed road network graph. Node di-dedup berdasarkan koordinat proyeksi yang sama persis.
// Self loop (u->u) disimpan terpisah karena simple.WeightedDirectedGraph gak bisa nyimpan self edge.
type RoadGraph struct {
	g         *simple.WeightedDirectedGraph
	selfLoops map[int64]datastructure.Edge
	nodeIdx   map[orb.Point]int64
	nodes     []datastructure.Node
	edgeCount int
}

func NewRoadGraph() *RoadGraph {
	return &RoadGraph{
		g:         simple.NewWeightedDirectedGraph(0, 0),
		selfLoops: make(map[int64]datastructure.Edge),
		nodeIdx:   make(map[orb.Point]int64),
		nodes:     make([]datastructure.Node, 0),
	}
}

// UpsertNode return node dengan koordinat (x, y); bikin baru kalau belum ada.
func (rg *RoadGraph) UpsertNode(x, y, lon, lat float64) datastructure.Node {
	key := orb.Point{x, y}
	if idx, ok := rg.nodeIdx[key]; ok {
		return rg.nodes[idx]
	}

	node := datastructure.Node{
		IDx:    int64(len(rg.nodes)),
		X:      x,
		Y:      y,
		Lon:    lon,
		Lat:    lat,
		H3Cell: geo.H3Cell(lat, lon),
	}
	rg.nodeIdx[key] = node.IDx
	rg.nodes = append(rg.nodes, node)
	rg.g.AddNode(node)
	return node
}

// AddEdge tambah edge from->to. Kalau edge sudah ada, attribute-nya diganti.
// Return true kalau pasangan from->to belum pernah ada.
func (rg *RoadGraph) AddEdge(from, to datastructure.Node, attr datastructure.EdgeAttributes) bool {
	edge := datastructure.Edge{
		FromNode:    from,
		ToNode:      to,
		LengthM:     attr.LengthM,
		SpeedKph:    attr.SpeedKph,
		TravelTimeS: attr.TravelTimeS,
		Highway:     attr.Highway,
		Geometry:    attr.Geometry,
	}

	if from.IDx == to.IDx {
		_, exists := rg.selfLoops[from.IDx]
		rg.selfLoops[from.IDx] = edge
		if !exists {
			rg.edgeCount++
		}
		return !exists
	}

	exists := rg.g.HasEdgeFromTo(from.IDx, to.IDx)
	rg.g.SetWeightedEdge(edge)
	if !exists {
		rg.edgeCount++
	}
	return !exists
}

// AddSegmentEdges bikin edge sesuai kode oneway: F = u->v, T = v->u, B = dua-duanya.
// reverseGeometry dipakai untuk attribute geometry edge v->u. Return jumlah edge baru.
// Segment tertutup (u == v) jadi self loop; untuk B edge v->u menimpa u->u.
func (rg *RoadGraph) AddSegmentEdges(u, v datastructure.Node, attr datastructure.EdgeAttributes, reverseGeometry string,
	oneway datastructure.OneWay) (added int, selfLoop bool) {
	selfLoop = u.IDx == v.IDx

	if oneway.Forward() {
		if rg.AddEdge(u, v, attr) {
			added++
		}
	}
	if oneway.Reverse() {
		reverseAttr := attr
		reverseAttr.Geometry = reverseGeometry
		if rg.AddEdge(v, u, reverseAttr) {
			added++
		}
	}
	return added, selfLoop
}

func (rg *RoadGraph) Node(idx int64) (datastructure.Node, bool) {
	if idx < 0 || idx >= int64(len(rg.nodes)) {
		return datastructure.Node{}, false
	}
	return rg.nodes[idx], true
}

func (rg *RoadGraph) NodeAt(x, y float64) (datastructure.Node, bool) {
	idx, ok := rg.nodeIdx[orb.Point{x, y}]
	if !ok {
		return datastructure.Node{}, false
	}
	return rg.nodes[idx], true
}

func (rg *RoadGraph) Edge(fromIdx, toIdx int64) (datastructure.Edge, bool) {
	if fromIdx == toIdx {
		e, ok := rg.selfLoops[fromIdx]
		return e, ok
	}
	e := rg.g.WeightedEdge(fromIdx, toIdx)
	if e == nil {
		return datastructure.Edge{}, false
	}
	return e.(datastructure.Edge), true
}

// Nodes urut berdasarkan urutan insert.
func (rg *RoadGraph) Nodes() []datastructure.Node {
	return rg.nodes
}

// Edges urut berdasarkan (from IDx, to IDx).
func (rg *RoadGraph) Edges() []datastructure.Edge {
	edges := make([]datastructure.Edge, 0, rg.edgeCount)
	for _, node := range rg.nodes {
		succ := rg.g.From(node.IDx)
		for succ.Next() {
			edges = append(edges, rg.g.WeightedEdge(node.IDx, succ.Node().ID()).(datastructure.Edge))
		}
		if loop, ok := rg.selfLoops[node.IDx]; ok {
			edges = append(edges, loop)
		}
	}
	slices.SortFunc(edges, func(a, b datastructure.Edge) int {
		if a.FromNode.IDx != b.FromNode.IDx {
			return compareInt64(a.FromNode.IDx, b.FromNode.IDx)
		}
		return compareInt64(a.ToNode.IDx, b.ToNode.IDx)
	})
	return edges
}

func (rg *RoadGraph) NumNodes() int {
	return len(rg.nodes)
}

func (rg *RoadGraph) NumEdges() int {
	return rg.edgeCount
}

// OutDegree termasuk self loop (dihitung satu).
func (rg *RoadGraph) OutDegree(idx int64) int {
	return rg.g.From(idx).Len() + rg.selfLoopCount(idx)
}

func (rg *RoadGraph) InDegree(idx int64) int {
	return rg.g.To(idx).Len() + rg.selfLoopCount(idx)
}

func (rg *RoadGraph) NumSelfLoops() int {
	return len(rg.selfLoops)
}

func (rg *RoadGraph) selfLoopCount(idx int64) int {
	if _, ok := rg.selfLoops[idx]; ok {
		return 1
	}
	return 0
}

// Directed graph gonum di balik RoadGraph, weight = travel time detik. Self loop tidak ikut.
func (rg *RoadGraph) Directed() graph.WeightedDirected {
	return rg.g
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
