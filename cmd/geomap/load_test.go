package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geomap/internal/config"
	"geomap/internal/scene"
)

const districtsJSON = `{"type":"FeatureCollection","features":[
 {"type":"Feature","properties":{"display_name":"Kadikoy, Istanbul"},
  "geometry":{"type":"Polygon","coordinates":[[[29.0,40.9],[29.1,40.9],[29.1,41.0],[29.0,41.0]]]}},
 {"type":"Feature","properties":{"display_name":"Uskudar, Istanbul"},
  "geometry":{"type":"Polygon","coordinates":[[[29.0,41.0],[29.1,41.0],[29.1,41.1],[29.0,41.1]]]}}
]}`

const neighborhoodsJSON = `{"type":"FeatureCollection","features":[
 {"type":"Feature","properties":{},
  "geometry":{"type":"Polygon","coordinates":[[[29.02,40.92],[29.05,40.92],[29.05,40.95]]]}}
]}`

const schoolsCSV = "name,lat,lon\nA,40.95,29.03\nB,41.05,29.07\nC,41.02,29.01\n"

// writeFixtures lays out a small data directory matching the default config.
func writeFixtures(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"ilce_geojson.json":    districtsJSON,
		"mahalle_geojson.json": neighborhoodsJSON,
		"schools.csv":          schoolsCSV,
		"schools.wkt":          "MULTIPOINT((29.03 40.95), (29.07 41.05))",
		"schools.kml":          `<kml><Placemark><name>K</name><Point><coordinates>29.05,41.0</coordinates></Point></Placemark></kml>`,
		"broken.geojson":       `{"type":`,
	}
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
	return dir
}

func dataIn(dir, markers string) config.DataConfig {
	d := config.DataConfig{
		Districts:     filepath.Join(dir, "ilce_geojson.json"),
		Neighborhoods: filepath.Join(dir, "mahalle_geojson.json"),
	}
	if markers != "" {
		d.Markers = filepath.Join(dir, markers)
	}
	return d
}

func TestLoadScene(t *testing.T) {
	dir := writeFixtures(t)

	tests := []struct {
		markers string
		want    scene.Stats
	}{
		{markers: "schools.csv", want: scene.Stats{Regions: 2, Neighborhoods: 1, Markers: 3, Cells: 3}},
		{markers: "schools.wkt", want: scene.Stats{Regions: 2, Neighborhoods: 1, Markers: 2, Cells: 2}},
		{markers: "schools.kml", want: scene.Stats{Regions: 2, Neighborhoods: 1, Markers: 1, Cells: 1}},
		{markers: "broken.geojson", want: scene.Stats{Regions: 2, Neighborhoods: 1}},
		{markers: "", want: scene.Stats{Regions: 2, Neighborhoods: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.markers, func(t *testing.T) {
			s, err := loadScene(dataIn(dir, tt.markers))
			require.NoError(t, err)
			assert.Equal(t, tt.want, s.Stats())
		})
	}
}

func TestLoadScene_MissingNeighborhoodsKeepsGoing(t *testing.T) {
	dir := writeFixtures(t)
	data := dataIn(dir, "schools.csv")
	data.Neighborhoods = filepath.Join(dir, "nope.json")

	s, err := loadScene(data)
	require.NoError(t, err)
	assert.Equal(t, scene.Stats{Regions: 2, Markers: 3, Cells: 3}, s.Stats())
}

func TestLoadScene_DistrictsRequired(t *testing.T) {
	dir := writeFixtures(t)

	_, err := loadScene(config.DataConfig{Districts: filepath.Join(dir, "missing.json")})
	assert.Error(t, err)

	_, err = loadScene(config.DataConfig{Districts: filepath.Join(dir, "broken.geojson")})
	assert.Error(t, err)
}
