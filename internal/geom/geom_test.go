package geom

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCollection_FeatureCollection(t *testing.T) {
	data := []byte(`{
		"type": "FeatureCollection",
		"features": [
			{"type": "Feature", "properties": {"display_name": "Kadikoy, Istanbul"},
			 "geometry": {"type": "Polygon", "coordinates": [[[0,0],[0,1],[1,1],[1,0]]]}},
			{"type": "Feature", "properties": {"name": "No geometry"}, "geometry": null},
			{"type": "Feature", "properties": {},
			 "geometry": {"type": "MultiPolygon", "coordinates": [[[[2,2],[2,3],[3,3]]], [[[5,5],[5,6],[6,6]]]]}}
		]
	}`)

	c, err := ParseCollection(data)
	require.NoError(t, err)
	require.Len(t, c.Features, 3)

	assert.Equal(t, TypePolygon, c.Features[0].Geometry.Type)
	assert.Equal(t, "Kadikoy, Istanbul", c.Features[0].Prop("display_name"))
	assert.Equal(t, "", c.Features[1].Geometry.Type)
	assert.Len(t, c.Features[2].Geometry.Parts(), 2)
}

func TestParseCollection_KeepsPositionOfMalformedEntries(t *testing.T) {
	data := []byte(`{
		"type": "FeatureCollection",
		"features": [
			"oops",
			null,
			{"type": "Feature", "properties": {"name": "third"},
			 "geometry": {"type": "Point", "coordinates": [1, 2]}}
		]
	}`)

	c, err := ParseCollection(data)
	require.NoError(t, err)
	require.Len(t, c.Features, 3)
	assert.Equal(t, Feature{}, c.Features[0])
	assert.Equal(t, Feature{}, c.Features[1])
	assert.Equal(t, "third", c.Features[2].Prop("name"))
}

func TestParseCollection_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"not json", `{`, "decode geojson"},
		{"missing type", `{"features": []}`, "missing type"},
		{"bad features", `{"type": "FeatureCollection", "features": 3}`, "not an array"},
		{"unsupported", `{"type": "Topology"}`, "unsupported geojson type"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCollection([]byte(tt.data))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParseCollection_BareGeometry(t *testing.T) {
	c, err := ParseCollection([]byte(`{"type": "Point", "coordinates": [29.0, 41.0]}`))
	require.NoError(t, err)
	require.Len(t, c.Features, 1)
	pt, ok := ParsePair(c.Features[0].Geometry.Coordinates)
	require.True(t, ok)
	assert.Equal(t, [2]float64{29, 41}, pt)
}

func TestFirstRing(t *testing.T) {
	poly := Geometry{Type: TypePolygon, Coordinates: [][][]float64{{{0, 0}, {1, 1}, {2, 0}}, {{9, 9}}}}
	ring, ok := AsSlice(poly.FirstRing())
	require.True(t, ok)
	assert.Len(t, ring, 3)

	multi := Geometry{Type: TypeMultiPolygon, Coordinates: [][][][]float64{
		{{{0, 0}, {1, 1}, {2, 0}, {3, 3}}},
		{{{5, 5}, {6, 6}, {7, 5}}},
	}}
	ring, ok = AsSlice(multi.FirstRing())
	require.True(t, ok)
	assert.Len(t, ring, 4)

	assert.Nil(t, Geometry{Type: TypePoint, Coordinates: []float64{1, 2}}.FirstRing())
	assert.Nil(t, Geometry{Type: TypePolygon}.FirstRing())
}

func TestParsePair(t *testing.T) {
	tests := []struct {
		name string
		in   any
		ok   bool
	}{
		{"floats", []any{1.5, 2.5}, true},
		{"ints", []any{1, 2}, true},
		{"with altitude", []any{1.0, 2.0, 30.0}, true},
		{"typed slice", []float64{3, 4}, true},
		{"small ints", []any{int8(-3), int16(400)}, true},
		{"unsigned", []any{uint(1), uint64(2)}, true},
		{"bytes", []uint8{7, 8}, true},
		{"nan", []any{math.NaN(), 3.0}, false},
		{"inf", []any{1.0, math.Inf(1)}, false},
		{"string", []any{4.0, "x"}, false},
		{"short", []any{4.0}, false},
		{"scalar", 4.0, false},
		{"nil", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := ParsePair(tt.in)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestFirstToken(t *testing.T) {
	assert.Equal(t, "Test", FirstToken("Test, Region"))
	assert.Equal(t, "Kadıköy", FirstToken("  Kadıköy , İstanbul, Türkiye"))
	assert.Equal(t, "Plain", FirstToken("Plain"))
	assert.Equal(t, "", FirstToken(""))
}

func TestLoadCSV(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "schools.csv")
	content := "Name,Latitude,Longitude\nA,41.0,29.0\nB,bad,29.1\nC,41.2,29.2\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	c, err := LoadCSV(path)
	require.NoError(t, err)
	require.Len(t, c.Features, 2)
	assert.Equal(t, "A", c.Features[0].Prop("name"))
	pt, ok := ParsePair(c.Features[1].Geometry.Coordinates)
	require.True(t, ok)
	assert.Equal(t, [2]float64{29.2, 41.2}, pt)
}

func TestLoadCSV_MissingColumns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.csv")
	require.NoError(t, os.WriteFile(path, []byte("a,b\n1,2\n"), 0o644))

	_, err := LoadCSV(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "columns not found")
}

func TestParseWKT(t *testing.T) {
	c, err := ParseWKT("MULTIPOINT((1 2), (3 4), (5 6))")
	require.NoError(t, err)
	assert.Len(t, c.Features, 3)

	c, err = ParseWKT("MULTIPOINT(1 2, 3 4)")
	require.NoError(t, err)
	assert.Len(t, c.Features, 2)

	c, err = ParseWKT("point (7 8)")
	require.NoError(t, err)
	require.Len(t, c.Features, 1)
	pt, ok := ParsePair(c.Features[0].Geometry.Coordinates)
	require.True(t, ok)
	assert.Equal(t, [2]float64{7, 8}, pt)

	c, err = ParseWKT("POLYGON((0 0, 0 1, 1 1, 0 0), (0.2 0.2, 0.3 0.3, 0.2 0.3))")
	require.NoError(t, err)
	require.Len(t, c.Features, 1)
	ring, ok := AsSlice(c.Features[0].Geometry.FirstRing())
	require.True(t, ok)
	assert.Len(t, ring, 4)

	_, err = ParseWKT("LINESTRING(0 0, 1 1)")
	assert.Error(t, err)
	_, err = ParseWKT("   ")
	assert.Error(t, err)
}

func TestLoadCollection_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "d.geojson")
	require.NoError(t, os.WriteFile(path, []byte(`{"type":"Feature","properties":{"name":"x"},"geometry":{"type":"Point","coordinates":[1,2]}}`), 0o644))
	c, err := LoadCollection(path)
	require.NoError(t, err)
	require.Len(t, c.Features, 1)
	assert.Equal(t, "x", c.Features[0].Prop("name"))

	_, err = LoadCollection(filepath.Join(t.TempDir(), "missing.geojson"))
	assert.Error(t, err)
}

func TestParseKML(t *testing.T) {
	data := []byte(`<?xml version="1.0" encoding="UTF-8"?>
<kml xmlns="http://www.opengis.net/kml/2.2">
  <Document>
    <Placemark><name>Lycee</name><Point><coordinates>29.01,41.02,0</coordinates></Point></Placemark>
    <Placemark><name>Path</name><LineString><coordinates>1,1 2,2</coordinates></LineString></Placemark>
    <Placemark><Point><coordinates>bad,41 29.5,41.5</coordinates></Point></Placemark>
  </Document>
</kml>`)

	c, err := ParseKML(data)
	require.NoError(t, err)
	require.Len(t, c.Features, 2)
	assert.Equal(t, "Lycee", c.Features[0].Prop("name"))
	assert.Equal(t, "", c.Features[1].Prop("name"))

	pt, ok := ParsePair(c.Features[1].Geometry.Coordinates)
	require.True(t, ok)
	assert.Equal(t, [2]float64{29.5, 41.5}, pt)

	_, err = ParseKML([]byte(`<kml><Document></Document></kml>`))
	assert.Error(t, err)
	_, err = ParseKML([]byte(`<kml`))
	assert.Error(t, err)
}
