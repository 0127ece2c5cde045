package geo

import (
	"lintang/roadgraph/pkg/datastructure"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Explode pecah geometry multi-part jadi linestring biasa.
func Explode(g orb.Geometry) []orb.LineString {
	switch geom := g.(type) {
	case orb.LineString:
		return []orb.LineString{geom}
	case orb.MultiLineString:
		parts := make([]orb.LineString, 0, len(geom))
		for _, ls := range geom {
			parts = append(parts, ls)
		}
		return parts
	default:
		return nil
	}
}

// GeometryToSegments satu segment per linestring: titik awal, titik akhir, panjang polyline.
// Vertex di tengah gak jadi node.
func GeometryToSegments(g orb.Geometry) []datastructure.Segment {
	if g == nil {
		return nil
	}

	segments := []datastructure.Segment{}
	for _, ls := range Explode(g) {
		if len(ls) < 2 {
			continue
		}
		segments = append(segments, datastructure.Segment{
			Start:   ls[0],
			End:     ls[len(ls)-1],
			LengthM: planar.Length(ls),
		})
	}
	return segments
}
