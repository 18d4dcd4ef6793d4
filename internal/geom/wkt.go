package geom

import (
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
)

// ParseWKT turns pasted WKT into marker features.
// Supported: POINT(x y), MULTIPOINT(x y, ...) or MULTIPOINT((x y), ...),
// POLYGON((x y, ...)). Each point of a MULTIPOINT becomes its own feature;
// a POLYGON keeps its outer ring only.
func ParseWKT(wkt string) (Collection, error) {
	s := strings.TrimSpace(wkt)
	if s == "" {
		return Collection{}, eris.New("geom: empty wkt")
	}
	up := strings.ToUpper(s)
	parseTuples := func(block string) []any {
		var out []any
		for _, tup := range strings.Split(block, ",") {
			tup = strings.Trim(strings.TrimSpace(tup), "()")
			parts := strings.Fields(tup)
			if len(parts) < 2 {
				continue
			}
			x, e1 := strconv.ParseFloat(parts[0], 64)
			y, e2 := strconv.ParseFloat(parts[1], 64)
			if e1 != nil || e2 != nil {
				continue
			}
			out = append(out, []any{x, y})
		}
		return out
	}
	var c Collection
	switch {
	case strings.HasPrefix(up, "MULTIPOINT"):
		i := strings.Index(s, "(")
		j := strings.LastIndex(s, ")")
		if i < 0 || j <= i {
			return Collection{}, eris.New("geom: wkt multipoint: invalid")
		}
		for _, pt := range parseTuples(s[i+1 : j]) {
			c.Features = append(c.Features, Feature{Geometry: Geometry{Type: TypePoint, Coordinates: pt}})
		}
	case strings.HasPrefix(up, "POINT"):
		i := strings.Index(s, "(")
		j := strings.LastIndex(s, ")")
		if i < 0 || j <= i {
			return Collection{}, eris.New("geom: wkt point: invalid")
		}
		pts := parseTuples(s[i+1 : j])
		if len(pts) > 0 {
			c.Features = append(c.Features, Feature{Geometry: Geometry{Type: TypePoint, Coordinates: pts[0]}})
		}
	case strings.HasPrefix(up, "POLYGON"):
		i := strings.Index(s, "((")
		j := strings.LastIndex(s, "))")
		if i < 0 || j <= i {
			return Collection{}, eris.New("geom: wkt polygon: invalid")
		}
		outer := s[i+2 : j]
		if k := strings.Index(outer, ")"); k >= 0 {
			outer = outer[:k]
		}
		ring := parseTuples(outer)
		c.Features = append(c.Features, Feature{Geometry: Geometry{Type: TypePolygon, Coordinates: []any{ring}}})
	default:
		return Collection{}, eris.New("geom: unsupported wkt type")
	}
	if len(c.Features) == 0 {
		return Collection{}, eris.New("geom: wkt has no coordinates")
	}
	return c, nil
}
