package datastructure

import (
	"strings"

	"github.com/paulmach/orb"
)

// Attributes satu baris attribute table shapefile. Urutan kolom dipertahankan.
type Attributes struct {
	Columns []string
	Values  []string
}

// Lookup returns the value of the first column (in column order) whose
// lower-cased name equals one of names.
func (a Attributes) Lookup(names ...string) (string, bool) {
	idx := a.ColumnIndex(names...)
	if idx < 0 || idx >= len(a.Values) {
		return "", false
	}
	return a.Values[idx], true
}

func (a Attributes) ColumnIndex(names ...string) int {
	for i, col := range a.Columns {
		lower := strings.ToLower(col)
		for _, name := range names {
			if lower == name {
				return i
			}
		}
	}
	return -1
}

type RoadRecord struct {
	Index      int
	RoadClass  string
	Attributes Attributes
	Geometry   orb.MultiLineString // WGS84 [lon, lat]
}

type Segment struct {
	Start   orb.Point
	End     orb.Point
	LengthM float64
}

type OneWay string

const (
	OneWayForward OneWay = "F"
	OneWayReverse OneWay = "T"
	OneWayBoth    OneWay = "B"
)

func (o OneWay) Forward() bool {
	return o == OneWayForward || o == OneWayBoth
}

func (o OneWay) Reverse() bool {
	return o == OneWayReverse || o == OneWayBoth
}

const DefaultSpeedKph = 50.0

// SpeedProfile default speed (kph) tiap road class + daftar road class yang dipakai graph.
type SpeedProfile struct {
	DefaultSpeedKph float64            `yaml:"default_speed_kph" validate:"gt=0"`
	SpeedsKph       map[string]float64 `yaml:"speeds_kph" validate:"dive,gt=0"`
	DrivableClasses []string           `yaml:"drivable_classes" validate:"dive,required"`
}

func NewDefaultSpeedProfile() SpeedProfile {
	speeds := make(map[string]float64, len(defaultSpeedsKph))
	for roadType, speed := range defaultSpeedsKph {
		speeds[roadType] = speed
	}
	classes := make([]string, len(drivableClasses))
	copy(classes, drivableClasses)
	return SpeedProfile{
		DefaultSpeedKph: DefaultSpeedKph,
		SpeedsKph:       speeds,
		DrivableClasses: classes,
	}
}

// RoadTypeMaxSpeed speed untuk road class, fallback ke DefaultSpeedKph profile.
func (p SpeedProfile) RoadTypeMaxSpeed(roadType string) float64 {
	if speed, ok := p.SpeedsKph[roadType]; ok {
		return speed
	}
	return p.DefaultSpeedKph
}

func (p SpeedProfile) DrivableSet() map[string]bool {
	set := make(map[string]bool, len(p.DrivableClasses))
	for _, roadType := range p.DrivableClasses {
		set[roadType] = true
	}
	return set
}

// geofabrik roads layer fclass
var defaultSpeedsKph = map[string]float64{
	"motorway":  110,
	"trunk":     100,
	"primary":   90,
	"secondary": 80,
	"tertiary":  70,

	"unclassified":  60,
	"residential":   40,
	"living_street": 25,
	"pedestrian":    10,

	"motorway_link":  80,
	"trunk_link":     70,
	"primary_link":   70,
	"secondary_link": 60,
	"tertiary_link":  50,

	"service":      30,
	"track":        30,
	"track_grade1": 40,
	"track_grade2": 35,
	"track_grade3": 30,
	"track_grade4": 25,
	"track_grade5": 20,

	"bridleway": 10,
	"cycleway":  20,
	"footway":   5,
	"path":      8,
	"steps":     3,

	"busway": 50,
}

var drivableClasses = []string{
	"motorway", "trunk", "primary", "secondary", "tertiary",
	"unclassified", "residential", "living_street", "pedestrian",
	"motorway_link", "trunk_link", "primary_link",
	"secondary_link", "tertiary_link",
	"service", "track",
	"track_grade1", "track_grade2", "track_grade3", "track_grade4", "track_grade5",
	"bridleway", "cycleway", "footway", "path", "steps",
	"busway",
}
