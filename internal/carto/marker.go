package carto

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/paulmach/orb"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"geomap/internal/geom"
)

// Marker is a point of interest placed in the planar system.
type Marker struct {
	Name     string
	Position orb.Point
}

// World returns the marker position in scene space, resting at BorderElevation.
func (m Marker) World() mgl64.Vec3 {
	return toWorld(m.Position[0], m.Position[1], BorderElevation)
}

// MarkersFromFeatures places one marker per feature. Polygon features are
// represented by the mean of their outer ring's valid vertices, Point
// features by their coordinate. Features with nothing usable are skipped.
func MarkersFromFeatures(features []geom.Feature, p Params) ([]Marker, error) {
	if !p.Valid() {
		return nil, eris.Wrap(ErrPrecondition, "carto: place markers")
	}
	log := zap.L().With(zap.String("component", "carto.marker"))

	out := make([]Marker, 0, len(features))
	for i, f := range features {
		var (
			center orb.Point
			ok     bool
		)
		err := guard(func() { center, ok = featureCenter(f) })
		if err != nil || !ok {
			log.Warn("skipping marker", zap.Int("feature", i), zap.String("type", f.Geometry.Type), zap.Error(err))
			continue
		}
		name := f.Prop(MarkerNameKey)
		if name == "" {
			name = fmt.Sprintf("Marker %d", i+1)
		}
		out = append(out, Marker{Name: name, Position: p.Apply(center)})
	}
	log.Info("markers placed", zap.Int("features", len(features)), zap.Int("markers", len(out)))
	return out, nil
}

// Positions returns the planar positions in marker order.
func Positions(markers []Marker) []orb.Point {
	out := make([]orb.Point, len(markers))
	for i, m := range markers {
		out[i] = m.Position
	}
	return out
}

func featureCenter(f geom.Feature) (orb.Point, bool) {
	switch f.Geometry.Type {
	case geom.TypePoint:
		pt, ok := geom.ParsePair(f.Geometry.Coordinates)
		return orb.Point(pt), ok
	case geom.TypePolygon:
		return vertexMean(FilterValid(f.Geometry.FirstRing()))
	}
	return orb.Point{}, false
}

// vertexMean is the arithmetic mean of the vertices, not the area centroid.
func vertexMean(points []orb.Point) (orb.Point, bool) {
	if len(points) == 0 {
		return orb.Point{}, false
	}
	var sx, sy float64
	for _, p := range points {
		sx += p[0]
		sy += p[1]
	}
	n := float64(len(points))
	return orb.Point{sx / n, sy / n}, true
}
