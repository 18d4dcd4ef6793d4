package geom

import (
	"encoding/csv"
	"os"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
)

// LoadCSV reads marker locations from a CSV with latitude/longitude columns
// and returns one Point feature per usable row.
// Column detection: lat|latitude|y, lon|lng|long|longitude|x and an optional
// name column (case-insensitive).
func LoadCSV(path string) (Collection, error) {
	f, err := os.Open(path)
	if err != nil {
		return Collection{}, eris.Wrapf(err, "geom: open %s", path)
	}
	defer f.Close()
	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	recs, err := r.ReadAll()
	if err != nil {
		return Collection{}, eris.Wrap(err, "geom: read csv")
	}
	if len(recs) == 0 {
		return Collection{}, eris.New("geom: empty csv")
	}
	header := recs[0]
	idxLat, idxLon, idxName := -1, -1, -1
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "lat", "latitude", "y":
			if idxLat == -1 {
				idxLat = i
			}
		case "lon", "lng", "long", "longitude", "x":
			if idxLon == -1 {
				idxLon = i
			}
		case "name", "title":
			if idxName == -1 {
				idxName = i
			}
		}
	}
	if idxLat == -1 || idxLon == -1 {
		return Collection{}, eris.New("geom: csv latitude/longitude columns not found")
	}
	var c Collection
	for _, row := range recs[1:] {
		if idxLon >= len(row) || idxLat >= len(row) {
			continue
		}
		lon, err1 := strconv.ParseFloat(strings.TrimSpace(row[idxLon]), 64)
		lat, err2 := strconv.ParseFloat(strings.TrimSpace(row[idxLat]), 64)
		if err1 != nil || err2 != nil {
			continue
		}
		props := map[string]any{}
		if idxName >= 0 && idxName < len(row) && row[idxName] != "" {
			props["name"] = row[idxName]
		}
		c.Features = append(c.Features, Feature{
			Geometry:   Geometry{Type: TypePoint, Coordinates: []any{lon, lat}},
			Properties: props,
		})
	}
	if len(c.Features) == 0 {
		return Collection{}, eris.New("geom: csv has no valid points")
	}
	return c, nil
}
