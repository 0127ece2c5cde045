package graphio

import (
	"bufio"
	"encoding/xml"
	"io"
	"os"

	"lintang/roadgraph/pkg/datastructure"
	"lintang/roadgraph/pkg/domain"
	"lintang/roadgraph/pkg/roadgraph"
	"lintang/roadgraph/pkg/util"
)

const (
	graphmlNS     = "http://graphml.graphdrawing.org/xmlns"
	graphmlSchema = "http://graphml.graphdrawing.org/xmlns http://graphml.graphdrawing.org/xmlns/1.0/graphml.xsd"
	xsiNS         = "http://www.w3.org/2001/XMLSchema-instance"
)

type graphmlKey struct {
	XMLName  xml.Name `xml:"key"`
	ID       string   `xml:"id,attr"`
	For      string   `xml:"for,attr"`
	AttrName string   `xml:"attr.name,attr"`
	AttrType string   `xml:"attr.type,attr"`
}

type graphmlData struct {
	Key   string `xml:"key,attr"`
	Value string `xml:",chardata"`
}

type graphmlNode struct {
	XMLName xml.Name      `xml:"node"`
	ID      string        `xml:"id,attr"`
	Data    []graphmlData `xml:"data"`
}

type graphmlEdge struct {
	XMLName xml.Name      `xml:"edge"`
	Source  string        `xml:"source,attr"`
	Target  string        `xml:"target,attr"`
	Data    []graphmlData `xml:"data"`
}

var nodeKeys = []graphmlKey{
	{ID: "d0", For: "node", AttrName: "x", AttrType: "double"},
	{ID: "d1", For: "node", AttrName: "y", AttrType: "double"},
	{ID: "d2", For: "node", AttrName: "lon", AttrType: "double"},
	{ID: "d3", For: "node", AttrName: "lat", AttrType: "double"},
	{ID: "d4", For: "node", AttrName: "h3", AttrType: "string"},
}

var edgeKeys = []graphmlKey{
	{ID: "d5", For: "edge", AttrName: "length_m", AttrType: "double"},
	{ID: "d6", For: "edge", AttrName: "speed_kph", AttrType: "double"},
	{ID: "d7", For: "edge", AttrName: "travel_time_s", AttrType: "double"},
	{ID: "d8", For: "edge", AttrName: "highway", AttrType: "string"},
}

var geometryKey = graphmlKey{ID: "d9", For: "edge", AttrName: "geometry", AttrType: "string"}

// NodeID id node di graphml, tuple koordinat proyeksi "(x, y)".
func NodeID(n datastructure.Node) string {
	return util.FormatPyTuple(n.X, n.Y)
}

// SaveGraphML tulis graph ke file graphml.
func SaveGraphML(path string, rg *roadgraph.RoadGraph) error {
	f, err := os.Create(path)
	if err != nil {
		return domain.WrapErrorf(err, domain.ErrInternal, "create %s", path)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := WriteGraphML(w, rg); err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return domain.WrapErrorf(err, domain.ErrInternal, "write %s", path)
	}
	return f.Close()
}

func WriteGraphML(w io.Writer, rg *roadgraph.RoadGraph) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return domain.WrapErrorf(err, domain.ErrInternal, "write graphml header")
	}

	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")

	root := xml.StartElement{
		Name: xml.Name{Local: "graphml"},
		Attr: []xml.Attr{
			{Name: xml.Name{Local: "xmlns"}, Value: graphmlNS},
			{Name: xml.Name{Local: "xmlns:xsi"}, Value: xsiNS},
			{Name: xml.Name{Local: "xsi:schemaLocation"}, Value: graphmlSchema},
		},
	}
	graphStart := xml.StartElement{
		Name: xml.Name{Local: "graph"},
		Attr: []xml.Attr{{Name: xml.Name{Local: "edgedefault"}, Value: "directed"}},
	}

	edges := rg.Edges()
	keys := append(append([]graphmlKey{}, nodeKeys...), edgeKeys...)
	if hasGeometry(edges) {
		keys = append(keys, geometryKey)
	}

	if err := enc.EncodeToken(root); err != nil {
		return wrapEncode(err)
	}
	for _, k := range keys {
		if err := enc.Encode(k); err != nil {
			return wrapEncode(err)
		}
	}
	if err := enc.EncodeToken(graphStart); err != nil {
		return wrapEncode(err)
	}

	for _, n := range rg.Nodes() {
		node := graphmlNode{
			ID: NodeID(n),
			Data: []graphmlData{
				{Key: "d0", Value: formatFloat(n.X)},
				{Key: "d1", Value: formatFloat(n.Y)},
				{Key: "d2", Value: formatFloat(n.Lon)},
				{Key: "d3", Value: formatFloat(n.Lat)},
				{Key: "d4", Value: n.H3Cell},
			},
		}
		if err := enc.Encode(node); err != nil {
			return wrapEncode(err)
		}
	}

	for _, e := range edges {
		edge := graphmlEdge{
			Source: NodeID(e.FromNode),
			Target: NodeID(e.ToNode),
			Data: []graphmlData{
				{Key: "d5", Value: formatFloat(e.LengthM)},
				{Key: "d6", Value: formatFloat(e.SpeedKph)},
				{Key: "d7", Value: formatFloat(e.TravelTimeS)},
				{Key: "d8", Value: e.Highway},
			},
		}
		if e.Geometry != "" {
			edge.Data = append(edge.Data, graphmlData{Key: "d9", Value: e.Geometry})
		}
		if err := enc.Encode(edge); err != nil {
			return wrapEncode(err)
		}
	}

	if err := enc.EncodeToken(graphStart.End()); err != nil {
		return wrapEncode(err)
	}
	if err := enc.EncodeToken(root.End()); err != nil {
		return wrapEncode(err)
	}
	if err := enc.Flush(); err != nil {
		return wrapEncode(err)
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func hasGeometry(edges []datastructure.Edge) bool {
	for _, e := range edges {
		if e.Geometry != "" {
			return true
		}
	}
	return false
}

func formatFloat(v float64) string {
	return util.FormatPyFloat(v)
}

func wrapEncode(err error) error {
	return domain.WrapErrorf(err, domain.ErrInternal, "encode graphml")
}
