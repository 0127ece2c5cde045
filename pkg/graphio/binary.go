package graphio

import (
	"bytes"
	"encoding/gob"
	"errors"
	"io"
	"io/fs"
	"os"

	"lintang/roadgraph/pkg/datastructure"
	"lintang/roadgraph/pkg/domain"
	"lintang/roadgraph/pkg/roadgraph"

	"github.com/DataDog/zstd"
)

const snapshotVersion = 1

// Snapshot bentuk graph yang di-encode gob. Edge cuma simpan index node.
type Snapshot struct {
	Version int
	CRS     string
	Nodes   []SnapshotNode
	Edges   []SnapshotEdge
}

type SnapshotNode struct {
	X, Y     float64
	Lon, Lat float64
}

type SnapshotEdge struct {
	From, To    int64
	LengthM     float64
	SpeedKph    float64
	TravelTimeS float64
	Highway     string
	Geometry    string
}

func NewSnapshot(rg *roadgraph.RoadGraph) Snapshot {
	nodes := rg.Nodes()
	edges := rg.Edges()
	s := Snapshot{
		Version: snapshotVersion,
		CRS:     "EPSG:3857",
		Nodes:   make([]SnapshotNode, len(nodes)),
		Edges:   make([]SnapshotEdge, len(edges)),
	}
	for i, n := range nodes {
		s.Nodes[i] = SnapshotNode{X: n.X, Y: n.Y, Lon: n.Lon, Lat: n.Lat}
	}
	for i, e := range edges {
		s.Edges[i] = SnapshotEdge{
			From:        e.FromNode.IDx,
			To:          e.ToNode.IDx,
			LengthM:     e.LengthM,
			SpeedKph:    e.SpeedKph,
			TravelTimeS: e.TravelTimeS,
			Highway:     e.Highway,
			Geometry:    e.Geometry,
		}
	}
	return s
}

// Graph bikin ulang RoadGraph dari snapshot. Urutan node sama, jadi IDx juga sama.
func (s Snapshot) Graph() (*roadgraph.RoadGraph, error) {
	rg := roadgraph.NewRoadGraph()
	for _, n := range s.Nodes {
		rg.UpsertNode(n.X, n.Y, n.Lon, n.Lat)
	}
	if rg.NumNodes() != len(s.Nodes) {
		return nil, domain.WrapErrorf(nil, domain.ErrInternal, "snapshot has duplicate node coordinates")
	}

	for _, e := range s.Edges {
		from, okFrom := rg.Node(e.From)
		to, okTo := rg.Node(e.To)
		if !okFrom || !okTo {
			return nil, domain.WrapErrorf(nil, domain.ErrInternal, "snapshot edge %d->%d references unknown node", e.From, e.To)
		}
		rg.AddEdge(from, to, datastructure.EdgeAttributes{
			LengthM:     e.LengthM,
			SpeedKph:    e.SpeedKph,
			TravelTimeS: e.TravelTimeS,
			Highway:     e.Highway,
			Geometry:    e.Geometry,
		})
	}
	return rg, nil
}

func Encode(s Snapshot) ([]byte, error) {
	buf := new(bytes.Buffer)
	enc := gob.NewEncoder(buf)
	if err := enc.Encode(s); err != nil {
		return nil, domain.WrapErrorf(err, domain.ErrInternal, "gob encode graph")
	}
	return buf.Bytes(), nil
}

func Decode(bb []byte) (Snapshot, error) {
	var s Snapshot
	dec := gob.NewDecoder(bytes.NewReader(bb))
	if err := dec.Decode(&s); err != nil {
		return Snapshot{}, domain.WrapErrorf(err, domain.ErrInternal, "gob decode graph")
	}
	return s, nil
}

func Compress(bb []byte) ([]byte, error) {
	var bbCompressed []byte
	bbCompressed, err := zstd.Compress(bbCompressed, bb)
	if err != nil {
		return []byte{}, err
	}
	return bbCompressed, nil
}

func Decompress(bbCompressed []byte) ([]byte, error) {
	var bb []byte
	bb, err := zstd.Decompress(bb, bbCompressed)
	if err != nil {
		return []byte{}, err
	}

	return bb, nil
}

// SaveBinary simpan graph (gob + zstd) ke path.
func SaveBinary(path string, rg *roadgraph.RoadGraph) error {
	bb, err := Encode(NewSnapshot(rg))
	if err != nil {
		return err
	}
	compressed, err := Compress(bb)
	if err != nil {
		return domain.WrapErrorf(err, domain.ErrInternal, "zstd compress graph")
	}

	f, err := os.Create(path)
	if err != nil {
		return domain.WrapErrorf(err, domain.ErrInternal, "create %s", path)
	}
	defer f.Close()

	if _, err = f.Write(compressed); err != nil {
		return domain.WrapErrorf(err, domain.ErrInternal, "write %s", path)
	}
	return f.Close()
}

func LoadBinary(path string) (*roadgraph.RoadGraph, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, domain.WrapErrorf(err, domain.ErrInputNotFound, "could not find %s", path)
	}
	if err != nil {
		return nil, domain.WrapErrorf(err, domain.ErrInternal, "open %s", path)
	}
	defer f.Close()

	return ReadBinary(f)
}

func ReadBinary(r io.Reader) (*roadgraph.RoadGraph, error) {
	compressed, err := io.ReadAll(r)
	if err != nil {
		return nil, domain.WrapErrorf(err, domain.ErrInternal, "read graph")
	}
	bb, err := Decompress(compressed)
	if err != nil {
		return nil, domain.WrapErrorf(err, domain.ErrInternal, "zstd decompress graph")
	}
	s, err := Decode(bb)
	if err != nil {
		return nil, err
	}
	return s.Graph()
}
