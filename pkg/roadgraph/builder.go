package roadgraph

import (
	"io"

	"lintang/roadgraph/pkg/datastructure"
	"lintang/roadgraph/pkg/geo"
	"lintang/roadgraph/pkg/shpparser"
	"lintang/roadgraph/pkg/util"

	"github.com/paulmach/orb"
	"github.com/rs/zerolog/log"
	"github.com/twpayne/go-polyline"
)

// RoadSegment satu part linestring hasil explode, sudah diproyeksi ke EPSG:3857.
type RoadSegment struct {
	Record      int
	Part        orb.LineString // WGS84
	Segment     datastructure.Segment
	Highway     string
	SpeedKph    float64
	TravelTimeS float64
	OneWay      datastructure.OneWay
}

type BuildStats struct {
	Segments  int
	Edges     int
	SelfLoops int // segment tertutup, start == end
}

// ExplodeAndProject pecah multi-part geometry tiap record lalu proyeksi ke EPSG:3857 dan hitung panjang (meter).
// Part dengan kurang dari 2 titik dibuang.
func ExplodeAndProject(records []datastructure.RoadRecord) []RoadSegment {
	segments := make([]RoadSegment, 0, len(records))
	for i, rec := range records {
		for _, part := range geo.Explode(rec.Geometry) {
			for _, seg := range geo.GeometryToSegments(geo.ToWebMercator(part)) {
				segments = append(segments, RoadSegment{
					Record:  i,
					Part:    part,
					Segment: seg,
					Highway: rec.RoadClass,
				})
			}
		}
	}
	return segments
}

// DeriveAttributes isi speed, travel time, oneway tiap segment dari attribute record-nya.
func DeriveAttributes(segments []RoadSegment, records []datastructure.RoadRecord, profile datastructure.SpeedProfile) {
	for i := range segments {
		seg := &segments[i]
		attrs := records[seg.Record].Attributes

		seg.SpeedKph = shpparser.InferSpeedKph(attrs, profile)
		// kph -> m/s = * 1000/3600
		seg.TravelTimeS = seg.Segment.LengthM / (seg.SpeedKph * 1000 / 3600)
		seg.OneWay = shpparser.OneWayCode(attrs)
	}
}

type Builder struct {
	keepGeometry bool
	progress     io.Writer
}

func NewBuilder(keepGeometry bool, progress io.Writer) *Builder {
	return &Builder{
		keepGeometry: keepGeometry,
		progress:     progress,
	}
}

// Build bikin directed graph dari segment yang attribute-nya sudah diisi DeriveAttributes.
func (b *Builder) Build(segments []RoadSegment) (*RoadGraph, BuildStats) {
	rg := NewRoadGraph()
	stats := BuildStats{Segments: len(segments)}

	bar := util.NewProgressBar(len(segments), "[cyan][5/7][reset] building directed road graph...", b.progress)
	for _, seg := range segments {
		start := seg.Part[0]
		end := seg.Part[len(seg.Part)-1]

		u := rg.UpsertNode(seg.Segment.Start[0], seg.Segment.Start[1], start[0], start[1])
		v := rg.UpsertNode(seg.Segment.End[0], seg.Segment.End[1], end[0], end[1])

		attr := datastructure.EdgeAttributes{
			LengthM:     seg.Segment.LengthM,
			SpeedKph:    seg.SpeedKph,
			TravelTimeS: seg.TravelTimeS,
			Highway:     seg.Highway,
		}
		reverseGeometry := ""
		if b.keepGeometry {
			attr.Geometry = encodeGeometry(seg.Part, false)
			reverseGeometry = encodeGeometry(seg.Part, true)
		}

		_, selfLoop := rg.AddSegmentEdges(u, v, attr, reverseGeometry, seg.OneWay)
		if selfLoop {
			stats.SelfLoops++
			log.Debug().Int("record", seg.Record).Str("highway", seg.Highway).Msg("closed segment, start equals end, added as self loop")
		}
		bar.Add(1)
	}
	bar.Finish()

	stats.Edges = rg.NumEdges()
	return rg, stats
}

// encodeGeometry google encoded polyline [lat, lon]
func encodeGeometry(ls orb.LineString, reverse bool) string {
	coords := make([][]float64, len(ls))
	for i, p := range ls {
		coords[i] = []float64{p[1], p[0]}
	}
	if reverse {
		util.ReverseG(coords)
	}
	return string(polyline.EncodeCoords(coords))
}
