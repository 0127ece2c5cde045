package geo

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/clip"
	"github.com/paulmach/orb/project"
	"github.com/uber/h3-go/v4"
)

const h3Resolution = 9

// ToWebMercator reproject linestring WGS84 (lon, lat) ke EPSG:3857 (meter). Input gak diubah.
func ToWebMercator(ls orb.LineString) orb.LineString {
	return project.LineString(ls.Clone(), project.WGS84.ToMercator)
}

func PointToWebMercator(p orb.Point) orb.Point {
	return project.Point(p, project.WGS84.ToMercator)
}

// NewBBox bounding box WGS84 dari (lonMin, lonMax, latMin, latMax).
func NewBBox(lonMin, lonMax, latMin, latMax float64) orb.Bound {
	return orb.Bound{
		Min: orb.Point{lonMin, latMin},
		Max: orb.Point{lonMax, latMax},
	}
}

// IntersectsBBox true kalau ada bagian linestring yang masuk/menyentuh bbox.
// Envelope yang overlap saja belum cukup (jalan diagonal yang cuma lewat dekat sudut bbox).
func IntersectsBBox(mls orb.MultiLineString, bbox orb.Bound) bool {
	empty := true
	for _, ls := range mls {
		if len(ls) > 0 {
			empty = false
			break
		}
	}
	if empty {
		return false
	}
	if !mls.Bound().Intersects(bbox) {
		return false
	}
	for _, ls := range mls {
		if len(ls) == 1 && bbox.Contains(ls[0]) {
			return true
		}
	}
	return len(clip.MultiLineString(bbox, mls.Clone())) > 0
}

func H3Cell(lat, lon float64) string {
	cell := h3.LatLngToCell(h3.NewLatLng(lat, lon), h3Resolution)
	return cell.String()
}
