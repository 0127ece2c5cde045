package roadgraph

import (
	"lintang/roadgraph/pkg/datastructure"

	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/topo"
)

type NodeCentrality struct {
	Node       datastructure.Node
	Degree     int
	Centrality float64
}

// DegreeCentrality (in degree + out degree) / (n - 1), urut sesuai urutan node.
func DegreeCentrality(rg *RoadGraph) []NodeCentrality {
	n := rg.NumNodes()
	result := make([]NodeCentrality, 0, n)
	if n == 0 {
		return result
	}
	if n == 1 {
		node := rg.nodes[0]
		return append(result, NodeCentrality{
			Node:       node,
			Degree:     rg.InDegree(node.IDx) + rg.OutDegree(node.IDx),
			Centrality: 1,
		})
	}

	scale := 1.0 / float64(n-1)
	for _, node := range rg.nodes {
		degree := rg.InDegree(node.IDx) + rg.OutDegree(node.IDx)
		result = append(result, NodeCentrality{
			Node:       node,
			Degree:     degree,
			Centrality: float64(degree) * scale,
		})
	}
	return result
}

// TopDegreeCentrality k node dengan degree centrality terbesar. Nilai sama tetap urut sesuai urutan node.
func TopDegreeCentrality(rg *RoadGraph, k int) []NodeCentrality {
	all := DegreeCentrality(rg)
	slices.SortStableFunc(all, func(a, b NodeCentrality) int {
		switch {
		case a.Centrality > b.Centrality:
			return -1
		case a.Centrality < b.Centrality:
			return 1
		default:
			return 0
		}
	})
	if k >= 0 && k < len(all) {
		all = all[:k]
	}
	return all
}

// WeakComponents jumlah weakly connected component dan ukuran component terbesar.
func WeakComponents(rg *RoadGraph) (count int, largest int) {
	components := topo.ConnectedComponents(graph.Undirect{G: rg.g})
	for _, c := range components {
		if len(c) > largest {
			largest = len(c)
		}
	}
	return len(components), largest
}
