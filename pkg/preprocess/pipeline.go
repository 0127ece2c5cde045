package preprocess

import (
	"io"

	"lintang/roadgraph/pkg/config"
	"lintang/roadgraph/pkg/datastructure"
	"lintang/roadgraph/pkg/graphio"
	"lintang/roadgraph/pkg/roadgraph"
	"lintang/roadgraph/pkg/shpparser"
	"lintang/roadgraph/pkg/util"

	"github.com/rs/zerolog/log"
)

type Result struct {
	Graph      *roadgraph.RoadGraph
	Parse      shpparser.ParseStats
	Build      roadgraph.BuildStats
	TopNodes   []roadgraph.NodeCentrality
	Components int
	Largest    int
}

// Run jalankan pipeline: load -> filter -> proyeksi -> attribute -> graph -> centrality -> simpan.
func Run(opts config.Options, profile datastructure.SpeedProfile) (Result, error) {
	var progress io.Writer
	if opts.NoProgress {
		progress = io.Discard
	}
	res := Result{}

	log.Info().Str("path", opts.Shapefile).Msg("[1/7] loading roads shapefile")
	if bbox := opts.BBox(); bbox != nil {
		log.Info().
			Float64("lon_min", opts.LonMin).Float64("lon_max", opts.LonMax).
			Float64("lat_min", opts.LatMin).Float64("lat_max", opts.LatMax).
			Msg("[2/7] filtering to bounding box")
	}
	parser := shpparser.NewShapefileParser(profile, opts.BBox(), progress)
	records, parseStats, err := parser.LoadRoads(opts.Shapefile)
	if err != nil {
		return res, err
	}
	res.Parse = parseStats
	log.Info().
		Int("total", parseStats.Total).
		Int("after_bbox", parseStats.AfterBBox).
		Int("drivable", parseStats.AfterDrivable).
		Int("empty_geometry", parseStats.EmptyGeometry).
		Msg("[2/7] road records filtered to drivable classes")

	segments := roadgraph.ExplodeAndProject(records)
	log.Info().Int("segments", len(segments)).Msg("[3/7] projected to EPSG:3857 and exploded multi-part geometries")

	roadgraph.DeriveAttributes(segments, records, profile)
	for i := 0; i < len(segments) && i < 5; i++ {
		seg := segments[i]
		log.Info().
			Str("highway", seg.Highway).
			Float64("length_m", seg.Segment.LengthM).
			Float64("speed_kph", seg.SpeedKph).
			Float64("travel_time_s", seg.TravelTimeS).
			Str("oneway", string(seg.OneWay)).
			Msg("[4/7] example of processed attributes")
	}

	builder := roadgraph.NewBuilder(opts.KeepGeometry, progress)
	rg, buildStats := builder.Build(segments)
	res.Graph = rg
	res.Build = buildStats
	log.Info().
		Int("nodes", rg.NumNodes()).
		Int("edges", rg.NumEdges()).
		Int("self_loops", rg.NumSelfLoops()).
		Msg("[5/7] directed graph built")

	res.TopNodes = roadgraph.TopDegreeCentrality(rg, opts.TopK)
	for _, nc := range res.TopNodes {
		log.Info().
			Str("node", graphio.NodeID(nc.Node)).
			Int("degree", nc.Degree).
			Float64("degree_centrality", util.RoundFloat(nc.Centrality, 5)).
			Msg("[6/7] top node by degree centrality")
	}
	res.Components, res.Largest = roadgraph.WeakComponents(rg)
	log.Info().
		Int("weak_components", res.Components).
		Int("largest_component", res.Largest).
		Msg("[6/7] connectivity")

	log.Info().Str("path", opts.GraphML).Msg("[7/7] saving graphml")
	if err := graphio.SaveGraphML(opts.GraphML, rg); err != nil {
		return res, err
	}
	log.Info().Str("path", opts.Binary).Msg("[7/7] saving binary graph (gob + zstd)")
	if err := graphio.SaveBinary(opts.Binary, rg); err != nil {
		return res, err
	}

	return res, nil
}
