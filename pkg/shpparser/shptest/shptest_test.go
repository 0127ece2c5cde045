package shptest_test

import (
	"os"
	"testing"

	"lintang/roadgraph/pkg/shpparser/shptest"

	"github.com/jonas-p/go-shp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteRoads(t *testing.T) {
	dir := t.TempDir()
	path := shptest.WriteRoads(t, dir, "roads", []string{"osm_id", "fclass"}, []shptest.Road{
		shptest.Line([]string{"1", "primary"}, [2]float64{-95.36, 29.76}, [2]float64{-95.35, 29.76}),
	})

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{"roads.shp", "roads.shx", "roads.dbf"}, names)

	reader, err := shp.Open(path)
	require.NoError(t, err)
	defer reader.Close()

	require.Len(t, reader.Fields(), 2)
	require.True(t, reader.Next())
	assert.Contains(t, reader.Attribute(1), "primary")
}
