// Package shptest writes small polyline shapefiles for tests.
package shptest

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonas-p/go-shp"
	"github.com/stretchr/testify/require"
)

// Road one polyline row. Parts are [lon, lat] pairs; Values follow the column order.
type Road struct {
	Parts  [][][2]float64
	Values []string
}

// WriteRoads creates dir/name.shp (+ .shx, .dbf) with string columns and returns its path.
func WriteRoads(t *testing.T, dir, name string, columns []string, roads []Road) string {
	t.Helper()

	path := filepath.Join(dir, name+".shp")
	w, err := shp.Create(path, shp.POLYLINE)
	require.NoError(t, err)

	fields := make([]shp.Field, len(columns))
	for i, col := range columns {
		fields[i] = shp.StringField(col, 32)
	}
	require.NoError(t, w.SetFields(fields))

	for _, road := range roads {
		parts := make([][]shp.Point, len(road.Parts))
		for i, part := range road.Parts {
			for _, p := range part {
				parts[i] = append(parts[i], shp.Point{X: p[0], Y: p[1]})
			}
		}
		row := w.Write(shp.NewPolyLine(parts))
		for i, val := range road.Values {
			require.NoError(t, w.WriteAttribute(int(row), i, val))
		}
	}
	w.Close()

	// go-shp v0.1.1 nulis dbf sebagai "<name>dbf" (tanpa titik)
	misnamed := filepath.Join(dir, name+"dbf")
	if _, err := os.Stat(misnamed); err == nil {
		require.NoError(t, os.Rename(misnamed, filepath.Join(dir, name+".dbf")))
	} else {
		require.True(t, errors.Is(err, fs.ErrNotExist), "stat %s: %v", misnamed, err)
	}
	require.FileExists(t, filepath.Join(dir, name+".dbf"))
	return path
}

// Line shortcut for a single-part road.
func Line(values []string, points ...[2]float64) Road {
	return Road{Parts: [][][2]float64{points}, Values: values}
}
