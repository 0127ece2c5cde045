package datastructure

import (
	"gonum.org/v1/gonum/graph"
)

// Node graph node. Identitasnya koordinat EPSG:3857 (X, Y); IDx cuma urutan insert.
type Node struct {
	IDx    int64
	X, Y   float64
	Lon    float64
	Lat    float64
	H3Cell string
}

func (n Node) ID() int64 {
	return n.IDx
}

type Edge struct {
	FromNode    Node
	ToNode      Node
	LengthM     float64
	SpeedKph    float64
	TravelTimeS float64
	Highway     string
	Geometry    string // encoded polyline, kosong kalau --keep-geometry gak dipakai
}

func (e Edge) From() graph.Node {
	return e.FromNode
}

func (e Edge) To() graph.Node {
	return e.ToNode
}

func (e Edge) ReversedEdge() graph.Edge {
	e.FromNode, e.ToNode = e.ToNode, e.FromNode
	return e
}

// Weight travel time (detik), dipakai algoritma shortest path gonum.
func (e Edge) Weight() float64 {
	return e.TravelTimeS
}

type EdgeAttributes struct {
	LengthM     float64
	SpeedKph    float64
	TravelTimeS float64
	Highway     string
	Geometry    string
}
