// Package export writes scene layers as a GeoJSON FeatureCollection.
package export

import (
	"io"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"geomap/internal/scene"
)

// Layer names written to the "layer" property.
const (
	LayerRegion       = "region"
	LayerNeighborhood = "neighborhood"
	LayerCell         = "cell"
	LayerMarker       = "marker"
)

// Options controls the export.
type Options struct {
	// Geographic maps planar coordinates back to lon/lat with the scene's
	// normalization. Planar coordinates are written otherwise.
	Geographic bool
}

// Build collects every layer of s into one feature collection.
func Build(s *scene.Scene, opts Options) *geojson.FeatureCollection {
	project := func(p orb.Point) orb.Point { return p }
	if params, ok := s.Params(); ok && opts.Geographic {
		project = params.Invert
	}

	fc := geojson.NewFeatureCollection()
	for _, r := range s.Regions() {
		f := geojson.NewFeature(orb.Polygon{closeRing(r.Solid.Outline, project)})
		f.Properties["layer"] = LayerRegion
		f.Properties["name"] = r.Name
		f.Properties["labeled"] = r.Labeled
		f.Properties["feature"] = r.Feature
		f.Properties["part"] = r.Part
		fc.Append(f)
	}
	for _, b := range s.Neighborhoods() {
		f := geojson.NewFeature(mapLine(b.Line, project))
		f.Properties["layer"] = LayerNeighborhood
		f.Properties["emphasis"] = b.Emphasis
		fc.Append(f)
	}
	markers := s.Markers()
	selected, hasSelected := s.Selected()
	for _, c := range s.Cells() {
		f := geojson.NewFeature(orb.Polygon{closeRing(c.Polygon, project)})
		f.Properties["layer"] = LayerCell
		f.Properties["index"] = c.Index
		if c.Index < len(markers) {
			f.Properties["marker"] = markers[c.Index].Name
		}
		if hasSelected && selected.Index == c.Index {
			f.Properties["selected"] = true
		}
		fc.Append(f)
	}
	for _, m := range markers {
		f := geojson.NewFeature(project(m.Position))
		f.Properties["layer"] = LayerMarker
		f.Properties["name"] = m.Name
		fc.Append(f)
	}
	return fc
}

// Write encodes fc to w.
func Write(w io.Writer, fc *geojson.FeatureCollection) error {
	data, err := fc.MarshalJSON()
	if err != nil {
		return eris.Wrap(err, "export: marshal")
	}
	if _, err := w.Write(data); err != nil {
		return eris.Wrap(err, "export: write")
	}
	return nil
}

// WriteFile encodes fc to path, replacing any existing file.
func WriteFile(path string, fc *geojson.FeatureCollection) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "export: create %s", path)
	}
	if err := Write(f, fc); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return eris.Wrapf(err, "export: close %s", path)
	}
	zap.L().Info("export written", zap.String("path", path), zap.Int("features", len(fc.Features)))
	return nil
}

// closeRing returns a GeoJSON ring: mapped, with the first point repeated.
func closeRing(r orb.Ring, project func(orb.Point) orb.Point) orb.Ring {
	out := make(orb.Ring, 0, len(r)+1)
	for _, p := range r {
		out = append(out, project(p))
	}
	if len(out) > 0 && out[0] != out[len(out)-1] {
		out = append(out, out[0])
	}
	return out
}

func mapLine(l orb.LineString, project func(orb.Point) orb.Point) orb.LineString {
	out := make(orb.LineString, len(l))
	for i, p := range l {
		out[i] = project(p)
	}
	return out
}
