package carto

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/paulmach/orb"

	"geomap/internal/geom"
)

// BorderElevation lifts outlines above the base plane so they stay visible
// on top of the extruded solids.
const BorderElevation = 1.2

// minRingPoints is the smallest ring that still encloses an area.
const minRingPoints = 3

// Border is an outline drawn without volume. Line is closed: its last point
// repeats the first.
type Border struct {
	Line      orb.LineString
	Elevation float64
	// Emphasis marks outlines that are drawn over other geometry
	// (neighborhoods over district solids).
	Emphasis bool
}

// World returns the outline in scene space, tilted onto the ground plane.
func (b Border) World() []mgl64.Vec3 {
	out := make([]mgl64.Vec3, len(b.Line))
	for i, p := range b.Line {
		out[i] = toWorld(p[0], p[1], b.Elevation)
	}
	return out
}

// FilterValid keeps the entries of a raw ring that are arrays of two or more
// elements starting with two finite numbers. Points stay in source order
// and are not normalized.
func FilterValid(ring any) []orb.Point {
	entries, ok := geom.AsSlice(ring)
	if !ok {
		return nil
	}
	out := make([]orb.Point, 0, len(entries))
	for _, e := range entries {
		if pt, ok := geom.ParsePair(e); ok {
			out = append(out, orb.Point(pt))
		}
	}
	return out
}

// BuildPolygon normalizes filtered points into an open ring: the first point
// is the path origin and closing back to it is implicit. It returns false
// when fewer than three points are left.
func BuildPolygon(points []orb.Point, p Params) (orb.Ring, bool) {
	if len(points) < minRingPoints {
		return nil, false
	}
	ring := make(orb.Ring, 0, len(points))
	for _, pt := range points {
		ring = append(ring, p.Apply(pt))
	}
	return ring, true
}

// BuildBorder normalizes the same points into a closed outline at
// BorderElevation.
func BuildBorder(points []orb.Point, p Params, emphasis bool) Border {
	line := make(orb.LineString, 0, len(points)+1)
	for _, pt := range points {
		line = append(line, p.Apply(pt))
	}
	if len(line) > 0 {
		line = append(line, line[0])
	}
	return Border{Line: line, Elevation: BorderElevation, Emphasis: emphasis}
}
