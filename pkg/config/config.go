// Package config handles command options, speed profile loading and validation.
package config

import (
	"errors"
	"os"
	"strings"

	"lintang/roadgraph/pkg/datastructure"
	"lintang/roadgraph/pkg/domain"
	"lintang/roadgraph/pkg/geo"
	"lintang/roadgraph/pkg/logger"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/paulmach/orb"
	"gopkg.in/yaml.v3"
)

// Options command line options. Default-nya area houston (texas).
type Options struct {
	Logger logger.Logger `group:"Logger options"`

	Shapefile    string  `short:"f" long:"shapefile"     env:"ROADS_SHP_PATH" description:"Roads shapefile (Geofabrik gis_osm_roads_free_1.shp)" default:"gis_osm_roads_free_1.shp" validate:"required"`
	GraphML      string  `long:"graphml"                 env:"OUTPUT_GRAPHML" description:"GraphML output path" default:"texas_roads.graphml" validate:"required"`
	Binary       string  `long:"binary"                  env:"OUTPUT_BINARY"  description:"Binary (gob+zstd) output path" default:"texas_roads.graph" validate:"required"`
	Profile      string  `short:"c" long:"profile"       env:"SPEED_PROFILE"  description:"Optional YAML speed profile"`
	UseBBox      bool    `long:"bbox"                    env:"USE_BBOX"       description:"Restrict roads to the bounding box"`
	LonMin       float64 `long:"lon-min"                 env:"BBOX_LON_MIN"   description:"Bounding box min longitude" default:"-98.0" validate:"gte=-180,lte=180"`
	LonMax       float64 `long:"lon-max"                 env:"BBOX_LON_MAX"   description:"Bounding box max longitude" default:"-95.0" validate:"gte=-180,lte=180,gtfield=LonMin"`
	LatMin       float64 `long:"lat-min"                 env:"BBOX_LAT_MIN"   description:"Bounding box min latitude" default:"29.0" validate:"gte=-90,lte=90"`
	LatMax       float64 `long:"lat-max"                 env:"BBOX_LAT_MAX"   description:"Bounding box max latitude" default:"31.0" validate:"gte=-90,lte=90,gtfield=LatMin"`
	TopK         int     `long:"top"                     env:"TOP_K"          description:"Number of nodes reported by degree centrality" default:"10" validate:"gte=0"`
	KeepGeometry bool    `long:"keep-geometry"           env:"KEEP_GEOMETRY"  description:"Store encoded polyline geometry on edges"`
	NoProgress   bool    `long:"no-progress"             env:"NO_PROGRESS"    description:"Disable progress bars"`
}

// BBox nil kalau --bbox tidak dipakai.
func (o Options) BBox() *orb.Bound {
	if !o.UseBBox {
		return nil
	}
	bbox := geo.NewBBox(o.LonMin, o.LonMax, o.LatMin, o.LatMax)
	return &bbox
}

func (o Options) Validate() error {
	return validateStruct(o)
}

// LoadProfile baca YAML speed profile dan merge ke profile default. path kosong = profile default.
func LoadProfile(path string) (datastructure.SpeedProfile, error) {
	profile := datastructure.NewDefaultSpeedProfile()
	if path == "" {
		return profile, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return profile, domain.WrapErrorf(err, domain.ErrInputNotFound, "read speed profile %s", path)
	}

	var override datastructure.SpeedProfile
	if err := yaml.Unmarshal(data, &override); err != nil {
		return profile, domain.WrapErrorf(err, domain.ErrBadParamInput, "parse speed profile %s", path)
	}

	if override.DefaultSpeedKph != 0 {
		profile.DefaultSpeedKph = override.DefaultSpeedKph
	}
	for roadType, speed := range override.SpeedsKph {
		profile.SpeedsKph[roadType] = speed
	}
	if len(override.DrivableClasses) > 0 {
		profile.DrivableClasses = override.DrivableClasses
	}

	if err := validateStruct(profile); err != nil {
		return profile, err
	}
	return profile, nil
}

func validateStruct(s interface{}) error {
	validate := validator.New()
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return domain.WrapErrorf(err, domain.ErrBadParamInput, "invalid configuration")
	}

	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")
	_ = enTranslations.RegisterDefaultTranslations(validate, trans)

	msgs := make([]string, 0, len(validationErrs))
	for _, e := range validationErrs {
		msgs = append(msgs, e.Translate(trans))
	}
	return domain.WrapErrorf(err, domain.ErrBadParamInput, "invalid configuration: %s", strings.Join(msgs, "; "))
}
