package geom

import (
	"encoding/json"
	"math"
	"reflect"
	"strings"
)

// Geometry kinds understood by the pipeline.
const (
	TypePoint        = "Point"
	TypePolygon      = "Polygon"
	TypeMultiPolygon = "MultiPolygon"
)

// Geometry keeps coordinates undecoded so that malformed entries survive
// until the validity filter looks at them.
type Geometry struct {
	Type        string
	Coordinates any
}

// Feature is one named region or point of a collection.
type Feature struct {
	Geometry   Geometry
	Properties map[string]any
}

// Collection is an ordered list of features as read from one data file.
type Collection struct {
	Features []Feature
}

// Prop returns a string property, or "" when absent or not a string.
func (f Feature) Prop(key string) string {
	if f.Properties == nil {
		return ""
	}
	s, _ := f.Properties[key].(string)
	return s
}

// Parts returns the polygon parts of the geometry: one for a Polygon, every
// part for a MultiPolygon, nothing otherwise. Each part is a list of rings.
func (g Geometry) Parts() [][]any {
	switch g.Type {
	case TypePolygon:
		if rings, ok := AsSlice(g.Coordinates); ok {
			return [][]any{rings}
		}
	case TypeMultiPolygon:
		parts, ok := AsSlice(g.Coordinates)
		if !ok {
			return nil
		}
		out := make([][]any, 0, len(parts))
		for _, p := range parts {
			rings, ok := AsSlice(p)
			if !ok {
				// keep the position so callers can report the part index
				rings = nil
			}
			out = append(out, rings)
		}
		return out
	}
	return nil
}

// FirstRing returns the outer ring of the first polygon part, or nil.
func (g Geometry) FirstRing() any {
	parts := g.Parts()
	if len(parts) == 0 || len(parts[0]) == 0 {
		return nil
	}
	return parts[0][0]
}

// AsSlice views v as a []any. Decoded JSON already is one; typed Go slices
// and arrays are converted element by element.
func AsSlice(v any) ([]any, bool) {
	switch t := v.(type) {
	case nil:
		return nil, false
	case []any:
		return t, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// AsNumber reports v as a float64 when it is any numeric type.
func AsNumber(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int8:
		return float64(t), true
	case int16:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case uint:
		return float64(t), true
	case uint8:
		return float64(t), true
	case uint16:
		return float64(t), true
	case uint32:
		return float64(t), true
	case uint64:
		return float64(t), true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	}
	return 0, false
}

// ParsePair reads an (x, y) pair. The entry must be an array with at least
// two elements whose first two are finite numbers.
func ParsePair(v any) ([2]float64, bool) {
	a, ok := AsSlice(v)
	if !ok || len(a) < 2 {
		return [2]float64{}, false
	}
	x, xok := AsNumber(a[0])
	y, yok := AsNumber(a[1])
	if !xok || !yok || !finite(x) || !finite(y) {
		return [2]float64{}, false
	}
	return [2]float64{x, y}, true
}

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }

// FirstToken returns the trimmed text before the first comma.
func FirstToken(s string) string {
	if i := strings.IndexByte(s, ','); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
