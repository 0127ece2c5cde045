package shpparser

import (
	"math"
	"strconv"
	"strings"

	"lintang/roadgraph/pkg/datastructure"
	"lintang/roadgraph/pkg/domain"
)

const mphToKph = 1.60934

var roadClassColumns = []string{"highway", "fclass"}

// ParseMaxSpeed parse nilai maxspeed yang aneh ("50 mph", "60;80", "walk").
// Yang diambil cuma angka pertama. false kalau gak ada angka.
func ParseMaxSpeed(value string) (float64, bool) {
	s := strings.ToLower(strings.TrimSpace(value))
	if s == "" || s == "nan" || s == "none" {
		return 0, false
	}

	var num strings.Builder
	for _, ch := range s {
		if (ch >= '0' && ch <= '9') || ch == '.' {
			num.WriteRune(ch)
		} else if num.Len() > 0 {
			break
		}
	}
	if num.Len() == 0 {
		return 0, false
	}

	speed, err := strconv.ParseFloat(num.String(), 64)
	if err != nil {
		return 0, false
	}

	if strings.Contains(s, "mph") {
		speed = speed * mphToKph
	}
	return speed, true
}

// InferSpeedKph urutan: kolom maxspeed -> default speed road class -> default speed profile.
// Speed <= 0 diganti default speed profile.
func InferSpeedKph(attrs datastructure.Attributes, profile datastructure.SpeedProfile) float64 {
	speed, ok := maxSpeedFromAttributes(attrs)

	if !ok {
		if roadType, hasClass := attrs.Lookup(roadClassColumns...); hasClass {
			speed, ok = profile.RoadTypeMaxSpeed(roadType), true
		}
	}

	if !ok {
		speed = profile.DefaultSpeedKph
	}

	if speed <= 0 {
		speed = profile.DefaultSpeedKph
	}
	return speed
}

func maxSpeedFromAttributes(attrs datastructure.Attributes) (float64, bool) {
	val, ok := attrs.Lookup("maxspeed")
	if !ok || strings.TrimSpace(val) == "" {
		return 0, false
	}

	speed, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
	if err != nil {
		speed, ok = ParseMaxSpeed(val)
		if !ok {
			return 0, false
		}
	}

	if math.IsNaN(speed) || math.IsInf(speed, 0) {
		return 0, false
	}
	return speed, true
}

// ParseOneWay normalisasi kode oneway geofabrik. F = searah geometry, T = berlawanan, B = dua arah.
func ParseOneWay(value string) datastructure.OneWay {
	switch code := datastructure.OneWay(strings.ToUpper(strings.TrimSpace(value))); code {
	case datastructure.OneWayForward, datastructure.OneWayReverse, datastructure.OneWayBoth:
		return code
	default:
		return datastructure.OneWayBoth
	}
}

func OneWayCode(attrs datastructure.Attributes) datastructure.OneWay {
	val, ok := attrs.Lookup("oneway")
	if !ok {
		return datastructure.OneWayBoth
	}
	return ParseOneWay(val)
}

// RoadClassColumn index kolom highway/fclass pertama.
func RoadClassColumn(columns []string) (int, error) {
	idx := datastructure.Attributes{Columns: columns}.ColumnIndex(roadClassColumns...)
	if idx < 0 {
		return -1, domain.WrapErrorf(nil, domain.ErrMissingRoadClass,
			"could not find a 'highway' or 'fclass' column in %v", columns)
	}
	return idx, nil
}
