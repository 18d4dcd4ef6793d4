package carto

import (
	"fmt"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"geomap/internal/geom"
)

// Property keys read from the source collections.
const (
	DisplayNameKey = "display_name"
	MarkerNameKey  = "name"
)

// Region is one extruded district part with its outline.
type Region struct {
	Name   string
	Solid  Solid
	Border Border
	// Labeled is false when the name is a positional fallback.
	Labeled bool
	// Feature is the index of the source feature, Part the polygon part.
	Feature int
	Part    int
}

// RegionName derives the display name of the feature at index.
func RegionName(f geom.Feature, index int) (string, bool) {
	if name := geom.FirstToken(f.Prop(DisplayNameKey)); name != "" {
		return name, true
	}
	return fmt.Sprintf("Region %d", index+1), false
}

// BuildRegions turns each district feature into one region per polygon part.
// Rings that fail validation and malformed parts are logged and skipped; the
// only error is a missing normalization.
func BuildRegions(features []geom.Feature, p Params) ([]Region, error) {
	if !p.Valid() {
		return nil, eris.Wrap(ErrPrecondition, "carto: build regions")
	}
	log := zap.L().With(zap.String("component", "carto.region"))

	var out []Region
	for i, f := range features {
		name, labeled := RegionName(f, i)
		log.Debug("building district", zap.String("name", name), zap.String("type", f.Geometry.Type))

		switch f.Geometry.Type {
		case geom.TypePolygon, geom.TypeMultiPolygon:
		default:
			log.Warn("skipping feature with unsupported geometry",
				zap.Int("feature", i), zap.String("name", name), zap.String("type", f.Geometry.Type))
			continue
		}

		for part, rings := range f.Geometry.Parts() {
			var (
				r  Region
				ok bool
			)
			err := guard(func() {
				if len(rings) == 0 {
					return
				}
				r, ok = buildRegion(rings[0], p, name)
			})
			if err != nil {
				log.Warn("skipping malformed part", zap.Int("feature", i), zap.Int("part", part), zap.Error(err))
				continue
			}
			if !ok {
				log.Warn("not enough valid coordinates", zap.Int("feature", i), zap.Int("part", part), zap.String("name", name))
				continue
			}
			r.Labeled, r.Feature, r.Part = labeled, i, part
			out = append(out, r)
		}
	}
	log.Info("districts built", zap.Int("features", len(features)), zap.Int("regions", len(out)))
	return out, nil
}

func buildRegion(ring any, p Params, name string) (Region, bool) {
	points := FilterValid(ring)
	outline, ok := BuildPolygon(points, p)
	if !ok {
		return Region{}, false
	}
	return Region{
		Name:   name,
		Solid:  Solid{Name: name, Outline: outline, Depth: ExtrudeDepth},
		Border: BuildBorder(points, p, false),
	}, true
}

// BuildDistricts normalizes the collection and builds its regions. A
// collection-level failure returns no regions at all.
func BuildDistricts(features []geom.Feature) (Params, []Region, error) {
	p, err := Normalize(features)
	if err != nil {
		return Params{}, nil, err
	}
	regions, err := BuildRegions(features, p)
	if err != nil {
		return Params{}, nil, err
	}
	return p, regions, nil
}

// BuildNeighborhoodBorders draws the first ring of every feature as an
// emphasized outline using the district normalization. No solids are made.
func BuildNeighborhoodBorders(features []geom.Feature, p Params) ([]Border, error) {
	if !p.Valid() {
		return nil, eris.Wrap(ErrPrecondition, "carto: build neighborhood borders")
	}
	log := zap.L().With(zap.String("component", "carto.neighborhood"))

	var out []Border
	for i, f := range features {
		var (
			b  Border
			ok bool
		)
		err := guard(func() {
			points := FilterValid(f.Geometry.FirstRing())
			if len(points) < minRingPoints {
				return
			}
			b, ok = BuildBorder(points, p, true), true
		})
		if err != nil {
			log.Warn("skipping malformed neighborhood", zap.Int("feature", i), zap.Error(err))
			continue
		}
		if !ok {
			log.Debug("neighborhood without a usable ring", zap.Int("feature", i))
			continue
		}
		out = append(out, b)
	}
	log.Info("neighborhood borders built", zap.Int("features", len(features)), zap.Int("borders", len(out)))
	return out, nil
}
