// Package scene holds the layers produced by the geometry pipeline for one
// map: the district normalization, region solids, neighborhood outlines,
// markers and their tessellation.
package scene

import (
	"sync"

	"github.com/paulmach/orb"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"geomap/internal/carto"
	"geomap/internal/geom"
)

// Scene is safe for concurrent use.
type Scene struct {
	mu sync.RWMutex

	params    carto.Params
	hasParams bool

	regions       []carto.Region
	neighborhoods []carto.Border
	markers       []carto.Marker
	cells         []carto.Cell

	selected int // index into cells, -1 when nothing is selected
}

// New returns an empty scene.
func New() *Scene {
	return &Scene{selected: -1}
}

// Stats summarizes the layer sizes.
type Stats struct {
	Regions       int
	Neighborhoods int
	Markers       int
	Cells         int
}

// LoadDistricts normalizes the district collection and builds its regions.
// On success the new normalization replaces the old one and every layer
// derived from it is dropped. On failure the scene is left untouched.
func (s *Scene) LoadDistricts(features []geom.Feature) error {
	p, regions, err := carto.BuildDistricts(features)
	if err != nil {
		return eris.Wrap(err, "scene: load districts")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.params, s.hasParams = p, true
	s.regions = regions
	s.neighborhoods = nil
	s.markers = nil
	s.cells = nil
	s.selected = -1
	zap.L().Info("scene: districts loaded",
		zap.Int("regions", len(regions)),
		zap.Float64("scale", p.Scale),
		zap.Float64("center_x", p.CenterX),
		zap.Float64("center_y", p.CenterY))
	return nil
}

// Params returns the active normalization.
func (s *Scene) Params() (carto.Params, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.params, s.hasParams
}

// LoadNeighborhoods replaces the neighborhood outlines. It requires
// districts to be loaded first.
func (s *Scene) LoadNeighborhoods(features []geom.Feature) error {
	p, ok := s.Params()
	if !ok {
		return eris.Wrap(carto.ErrPrecondition, "scene: load neighborhoods before districts")
	}
	borders, err := carto.BuildNeighborhoodBorders(features, p)
	if err != nil {
		return eris.Wrap(err, "scene: load neighborhoods")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.neighborhoods = borders
	return nil
}

// LoadMarkers places marker features and regenerates the tessellation.
func (s *Scene) LoadMarkers(features []geom.Feature) error {
	p, ok := s.Params()
	if !ok {
		return eris.Wrap(carto.ErrPrecondition, "scene: load markers before districts")
	}
	markers, err := carto.MarkersFromFeatures(features, p)
	if err != nil {
		return eris.Wrap(err, "scene: load markers")
	}
	return s.SetMarkers(markers)
}

// SetMarkers replaces the marker set. The previous cells are released before
// the new tessellation is generated; the result never mixes the two sets.
func (s *Scene) SetMarkers(markers []carto.Marker) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hasParams {
		return eris.Wrap(carto.ErrPrecondition, "scene: set markers before districts")
	}
	s.cells = nil
	s.selected = -1
	s.markers = append([]carto.Marker(nil), markers...)
	s.cells = carto.Generate(carto.Positions(s.markers), s.params.Scale)
	zap.L().Info("scene: tessellation regenerated", zap.Int("markers", len(markers)), zap.Int("cells", len(s.cells)))
	return nil
}

// Regions returns a copy of the district regions.
func (s *Scene) Regions() []carto.Region {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]carto.Region(nil), s.regions...)
}

// Neighborhoods returns a copy of the neighborhood outlines.
func (s *Scene) Neighborhoods() []carto.Border {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]carto.Border(nil), s.neighborhoods...)
}

// Markers returns a copy of the markers.
func (s *Scene) Markers() []carto.Marker {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]carto.Marker(nil), s.markers...)
}

// Cells returns a copy of the current tessellation.
func (s *Scene) Cells() []carto.Cell {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]carto.Cell(nil), s.cells...)
}

// Stats returns the current layer sizes.
func (s *Scene) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Stats{
		Regions:       len(s.regions),
		Neighborhoods: len(s.neighborhoods),
		Markers:       len(s.markers),
		Cells:         len(s.cells),
	}
}

// MeshTotals sums the extruded meshes of every region.
type MeshTotals struct {
	Vertices  int
	Triangles int
	// Failed counts regions whose outline could not be extruded.
	Failed int
}

// Meshes extrudes every region solid and totals the result. A region that
// fails to extrude is logged and counted, the rest still add up.
func (s *Scene) Meshes() MeshTotals {
	regions := s.Regions()
	var t MeshTotals
	for _, r := range regions {
		m, err := r.Solid.Mesh()
		if err != nil {
			zap.L().Warn("scene: region not extruded", zap.String("region", r.Name), zap.Error(err))
			t.Failed++
			continue
		}
		t.Vertices += len(m.Vertices)
		t.Triangles += len(m.Triangles)
	}
	return t
}

// Bound covers every planar vertex of every layer. It is empty when nothing
// has been loaded.
func (s *Scene) Bound() orb.Bound {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b := carto.EmptyBounds()
	for _, r := range s.regions {
		for _, p := range r.Solid.Outline {
			b = b.Extend(p)
		}
	}
	for _, n := range s.neighborhoods {
		for _, p := range n.Line {
			b = b.Extend(p)
		}
	}
	for _, c := range s.cells {
		for _, p := range c.Polygon {
			b = b.Extend(p)
		}
	}
	for _, m := range s.markers {
		b = b.Extend(m.Position)
	}
	return b
}
