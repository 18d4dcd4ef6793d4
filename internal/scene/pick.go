package scene

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"geomap/internal/carto"
)

// CellAt returns the cell containing the planar point p.
func (s *Scene) CellAt(p orb.Point) (carto.Cell, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.cellIndexAt(p)
	if i < 0 {
		return carto.Cell{}, false
	}
	return s.cells[i], true
}

func (s *Scene) cellIndexAt(p orb.Point) int {
	for i, c := range s.cells {
		if planar.RingContains(orb.Ring(c.Boundary), p) {
			return i
		}
	}
	return -1
}

// Select highlights the cell under p and clears the previous highlight.
// Selecting outside every cell only clears it.
func (s *Scene) Select(p orb.Point) (carto.Cell, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = s.cellIndexAt(p)
	if s.selected < 0 {
		return carto.Cell{}, false
	}
	return s.cells[s.selected], true
}

// Selected returns the highlighted cell, if any.
func (s *Scene) Selected() (carto.Cell, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.selected < 0 || s.selected >= len(s.cells) {
		return carto.Cell{}, false
	}
	return s.cells[s.selected], true
}

// MarkerFor returns the marker owning a cell.
func (s *Scene) MarkerFor(c carto.Cell) (carto.Marker, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if c.Index < 0 || c.Index >= len(s.markers) {
		return carto.Marker{}, false
	}
	return s.markers[c.Index], true
}
