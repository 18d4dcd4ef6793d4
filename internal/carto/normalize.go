package carto

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/rotisserie/eris"

	"geomap/internal/geom"
)

// DesignExtent is the size, in planar units, that the larger side of the
// district bounds is scaled to.
const DesignExtent = 50.0

// Params is the affine transform from geographic to planar coordinates.
// It is computed once per district collection and never mutated.
type Params struct {
	Scale   float64
	CenterX float64
	CenterY float64
}

// Valid reports whether p can be used by the builders.
func (p Params) Valid() bool {
	return p.Scale > 0 && finite(p.Scale) && finite(p.CenterX) && finite(p.CenterY)
}

// Apply maps a geographic point into the planar system.
func (p Params) Apply(pt orb.Point) orb.Point {
	return orb.Point{(pt[0] - p.CenterX) * p.Scale, (pt[1] - p.CenterY) * p.Scale}
}

// Invert maps a planar point back to geographic coordinates.
func (p Params) Invert(pt orb.Point) orb.Point {
	return orb.Point{pt[0]/p.Scale + p.CenterX, pt[1]/p.Scale + p.CenterY}
}

// EmptyBounds is the identity for bound accumulation: every coordinate of a
// valid point extends it.
func EmptyBounds() orb.Bound {
	inf := math.Inf(1)
	return orb.Bound{Min: orb.Point{inf, inf}, Max: orb.Point{-inf, -inf}}
}

// ComputeBounds accumulates the bounds of the first ring of every feature.
// Later MultiPolygon parts are not looked at. Invalid pairs are skipped.
func ComputeBounds(features []geom.Feature) orb.Bound {
	b := EmptyBounds()
	for _, f := range features {
		ring, ok := geom.AsSlice(f.Geometry.FirstRing())
		if !ok {
			continue
		}
		for _, c := range ring {
			if pt, ok := geom.ParsePair(c); ok {
				b = b.Extend(orb.Point(pt))
			}
		}
	}
	return b
}

// ComputeParams derives the normalization from bounds.
func ComputeParams(b orb.Bound) (Params, error) {
	if !finite(b.Min[0]) || !finite(b.Min[1]) || !finite(b.Max[0]) || !finite(b.Max[1]) || b.IsEmpty() {
		return Params{}, ErrInvalidInput
	}
	width := math.Abs(b.Max[0] - b.Min[0])
	height := math.Abs(b.Max[1] - b.Min[1])
	extent := math.Max(width, height)
	if extent == 0 {
		return Params{}, eris.Wrapf(ErrDegenerateBounds, "carto: all coordinates at (%g, %g)", b.Min[0], b.Min[1])
	}
	return Params{
		Scale:   DesignExtent / extent,
		CenterX: (b.Min[0] + b.Max[0]) / 2,
		CenterY: (b.Min[1] + b.Max[1]) / 2,
	}, nil
}

// Normalize computes bounds and parameters for a collection in one step.
func Normalize(features []geom.Feature) (Params, error) {
	p, err := ComputeParams(ComputeBounds(features))
	if err != nil {
		return Params{}, eris.Wrapf(err, "carto: normalize %d features", len(features))
	}
	return p, nil
}

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }
