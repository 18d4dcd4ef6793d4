package geom

import (
	"bytes"
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
)

// LoadCollection reads a GeoJSON file into a Collection.
func LoadCollection(path string) (Collection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Collection{}, eris.Wrapf(err, "geom: read %s", path)
	}
	c, err := ParseCollection(data)
	if err != nil {
		return Collection{}, eris.Wrapf(err, "geom: parse %s", path)
	}
	return c, nil
}

// ParseCollection decodes a FeatureCollection, a single Feature or a bare
// geometry. Coordinates are left as decoded JSON values. Features keep their
// position even when their geometry is missing so positional names stay stable.
func ParseCollection(data []byte) (Collection, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return Collection{}, eris.Wrap(err, "geom: decode geojson")
	}
	t, _ := raw["type"].(string)
	if t == "" {
		return Collection{}, eris.New("geom: invalid geojson: missing type")
	}

	var c Collection
	addFeature := func(fm map[string]any) {
		g, _ := fm["geometry"].(map[string]any)
		gt, _ := g["type"].(string)
		props, _ := fm["properties"].(map[string]any)
		c.Features = append(c.Features, Feature{
			Geometry:   Geometry{Type: gt, Coordinates: g["coordinates"]},
			Properties: props,
		})
	}

	switch t {
	case "FeatureCollection":
		fs, ok := raw["features"].([]any)
		if !ok {
			return Collection{}, eris.New("geom: invalid geojson: features is not an array")
		}
		for _, f := range fs {
			fm, ok := f.(map[string]any)
			if !ok {
				c.Features = append(c.Features, Feature{})
				continue
			}
			addFeature(fm)
		}
	case "Feature":
		addFeature(raw)
	case TypePoint, "MultiPoint", "LineString", "MultiLineString", TypePolygon, TypeMultiPolygon:
		c.Features = append(c.Features, Feature{Geometry: Geometry{Type: t, Coordinates: raw["coordinates"]}})
	default:
		return Collection{}, eris.Errorf("geom: unsupported geojson type: %s", t)
	}
	return c, nil
}
