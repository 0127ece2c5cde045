package shpparser

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"lintang/roadgraph/pkg/datastructure"
	"lintang/roadgraph/pkg/domain"
	"lintang/roadgraph/pkg/geo"
	"lintang/roadgraph/pkg/util"

	"github.com/jonas-p/go-shp"
	"github.com/paulmach/orb"
	"github.com/rs/zerolog/log"
)

type ParseStats struct {
	Total         int
	AfterBBox     int
	AfterDrivable int
	EmptyGeometry int
}

type ShapefileParser struct {
	drivable map[string]bool
	bbox     *orb.Bound
	progress io.Writer
}

// NewShapefileParser. bbox nil = tanpa filter bounding box. progress nil = ansi stdout.
func NewShapefileParser(profile datastructure.SpeedProfile, bbox *orb.Bound, progress io.Writer) *ShapefileParser {
	return &ShapefileParser{
		drivable: profile.DrivableSet(),
		bbox:     bbox,
		progress: progress,
	}
}

// LoadRoads baca road record dari shapefile lalu filter bbox dan road class.
func (p *ShapefileParser) LoadRoads(path string) ([]datastructure.RoadRecord, ParseStats, error) {
	stats := ParseStats{}

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, stats, domain.WrapErrorf(err, domain.ErrInputNotFound, "could not find %s, check your path", path)
		}
		return nil, stats, domain.WrapErrorf(err, domain.ErrInternal, "stat %s", path)
	}

	// go-shp diam aja kalau .dbf gak ada, Fields() jadi kosong
	dbfPath := companionPath(path, ".dbf")
	if _, err := os.Stat(dbfPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, stats, domain.WrapErrorf(err, domain.ErrInputNotFound, "could not find attribute table %s", dbfPath)
		}
		return nil, stats, domain.WrapErrorf(err, domain.ErrInternal, "stat %s", dbfPath)
	}

	if err := checkProjection(path); err != nil {
		return nil, stats, err
	}

	reader, err := shp.Open(path)
	if err != nil {
		return nil, stats, domain.WrapErrorf(err, domain.ErrInternal, "open shapefile %s", path)
	}
	defer reader.Close()

	fields := reader.Fields()
	columns := make([]string, len(fields))
	for i, f := range fields {
		columns[i] = fieldName(f)
	}

	classIdx, err := RoadClassColumn(columns)
	if err != nil {
		return nil, stats, err
	}
	log.Info().Str("column", columns[classIdx]).Msg("using road class column")

	bar := util.NewProgressBar(-1, "[cyan][1/7][reset] loading road records...", p.progress)

	records := []datastructure.RoadRecord{}
	for reader.Next() {
		row, shape := reader.Shape()
		stats.Total++
		bar.Add(1)

		geom := toMultiLineString(shape)
		if len(geom) == 0 {
			stats.EmptyGeometry++
		}

		if p.bbox != nil && !geo.IntersectsBBox(geom, *p.bbox) {
			continue
		}
		stats.AfterBBox++

		values := make([]string, len(fields))
		for i := range fields {
			values[i] = strings.Trim(reader.Attribute(i), " \x00")
		}

		roadClass := values[classIdx]
		if !p.drivable[roadClass] {
			continue
		}
		stats.AfterDrivable++

		records = append(records, datastructure.RoadRecord{
			Index:      row,
			RoadClass:  roadClass,
			Attributes: datastructure.Attributes{Columns: columns, Values: values},
			Geometry:   geom,
		})
	}
	bar.Finish()

	if err := reader.Err(); err != nil {
		return nil, stats, domain.WrapErrorf(err, domain.ErrInternal, "read shapefile %s", path)
	}

	return records, stats, nil
}

// checkProjection. shapefile tanpa .prj dianggap EPSG:4326.
func checkProjection(path string) error {
	prjPath := companionPath(path, ".prj")
	wkt, err := os.ReadFile(prjPath)
	if err != nil {
		log.Warn().Str("path", prjPath).Msg("shapefile CRS is missing, assuming EPSG:4326 (WGS84)")
		return nil
	}

	crs := strings.ToUpper(strings.TrimSpace(string(wkt)))
	if strings.HasPrefix(crs, "PROJCS") {
		return domain.WrapErrorf(nil, domain.ErrUnsupportedCRS,
			"%s is a projected CRS, roads must be in geographic WGS84 coordinates", prjPath)
	}
	return nil
}

func companionPath(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}

func fieldName(f shp.Field) string {
	return strings.TrimRight(string(f.Name[:]), "\x00 ")
}

func toMultiLineString(shape shp.Shape) orb.MultiLineString {
	switch s := shape.(type) {
	case *shp.PolyLine:
		return partsToLines(s.Parts, s.Points)
	case *shp.PolyLineZ:
		return partsToLines(s.Parts, s.Points)
	case *shp.PolyLineM:
		return partsToLines(s.Parts, s.Points)
	default:
		return nil
	}
}

func partsToLines(parts []int32, points []shp.Point) orb.MultiLineString {
	mls := make(orb.MultiLineString, 0, len(parts))
	for i, start := range parts {
		end := int32(len(points))
		if i+1 < len(parts) {
			end = parts[i+1]
		}
		if start < 0 || start > end || int(end) > len(points) {
			continue
		}

		ls := make(orb.LineString, 0, end-start)
		for _, pt := range points[start:end] {
			ls = append(ls, orb.Point{pt.X, pt.Y})
		}
		if len(ls) > 0 {
			mls = append(mls, ls)
		}
	}
	return mls
}
