package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"geomap/internal/config"
	"geomap/internal/geom"
	"geomap/internal/scene"
)

// loadScene runs the pipeline over the configured inputs. Districts are
// required; a neighborhood or marker file that cannot be read is logged and
// its layer left empty.
func loadScene(data config.DataConfig) (*scene.Scene, error) {
	log := zap.L().With(zap.String("component", "load"))

	districts, err := geom.LoadCollection(data.Districts)
	if err != nil {
		return nil, eris.Wrap(err, "load districts")
	}
	s := scene.New()
	if err := s.LoadDistricts(districts.Features); err != nil {
		return nil, err
	}

	if data.Neighborhoods != "" {
		c, err := geom.LoadCollection(data.Neighborhoods)
		if err == nil {
			err = s.LoadNeighborhoods(c.Features)
		}
		if err != nil {
			log.Warn("skipping neighborhoods", zap.String("path", data.Neighborhoods), zap.Error(err))
		}
	}

	if data.Markers != "" {
		c, err := loadMarkers(data.Markers)
		if err == nil {
			err = s.LoadMarkers(c.Features)
		}
		if err != nil {
			log.Warn("skipping markers", zap.String("path", data.Markers), zap.Error(err))
		}
	}

	st := s.Stats()
	log.Info("scene loaded",
		zap.Int("regions", st.Regions),
		zap.Int("neighborhoods", st.Neighborhoods),
		zap.Int("markers", st.Markers),
		zap.Int("cells", st.Cells))
	return s, nil
}

// loadMarkers picks the decoder from the file extension.
func loadMarkers(path string) (geom.Collection, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return geom.LoadCSV(path)
	case ".kml":
		return geom.LoadKML(path)
	case ".wkt":
		data, err := os.ReadFile(path)
		if err != nil {
			return geom.Collection{}, eris.Wrapf(err, "read %s", path)
		}
		return geom.ParseWKT(string(data))
	default:
		return geom.LoadCollection(path)
	}
}
