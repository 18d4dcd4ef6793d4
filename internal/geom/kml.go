package geom

import (
	"encoding/xml"
	"os"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
)

// LoadKML reads Placemark points from a KML file as Point features.
func LoadKML(path string) (Collection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Collection{}, eris.Wrapf(err, "geom: read %s", path)
	}
	return ParseKML(data)
}

// ParseKML extracts Placemark > Point > coordinates. KML coordinates are
// "lon,lat[,alt]"; altitude is ignored. A Placemark listing several tuples
// yields one feature per tuple, all carrying the Placemark name.
func ParseKML(data []byte) (Collection, error) {
	type kmlPoint struct {
		Coordinates string `xml:"coordinates"`
	}
	type kmlPlacemark struct {
		Name  string    `xml:"name"`
		Point *kmlPoint `xml:"Point"`
	}
	type kmlDoc struct {
		Placemarks []kmlPlacemark `xml:"Placemark"`
		Document   struct {
			Placemarks []kmlPlacemark `xml:"Placemark"`
		} `xml:"Document"`
	}

	var doc kmlDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		return Collection{}, eris.Wrap(err, "geom: decode kml")
	}

	var c Collection
	for _, pm := range append(doc.Placemarks, doc.Document.Placemarks...) {
		if pm.Point == nil {
			continue
		}
		for _, tuple := range strings.Fields(pm.Point.Coordinates) {
			vals := strings.Split(tuple, ",")
			if len(vals) < 2 {
				continue
			}
			lon, err1 := strconv.ParseFloat(strings.TrimSpace(vals[0]), 64)
			lat, err2 := strconv.ParseFloat(strings.TrimSpace(vals[1]), 64)
			if err1 != nil || err2 != nil {
				continue
			}
			props := map[string]any{}
			if name := strings.TrimSpace(pm.Name); name != "" {
				props["name"] = name
			}
			c.Features = append(c.Features, Feature{
				Geometry:   Geometry{Type: TypePoint, Coordinates: []any{lon, lat}},
				Properties: props,
			})
		}
	}
	if len(c.Features) == 0 {
		return Collection{}, eris.New("geom: kml has no points")
	}
	return c, nil
}
