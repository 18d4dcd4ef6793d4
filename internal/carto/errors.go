// Package carto turns district, neighborhood and marker features into planar
// map geometry: normalization parameters, extruded region solids, border
// polylines and a bounded Voronoi tessellation over the markers.
//
// Collection-level failures are returned as errors wrapping one of the
// sentinels below. Record-level problems (a short ring, a malformed part, a
// cell that cannot be built) are logged and skipped.
package carto

import (
	"fmt"

	"github.com/rotisserie/eris"
)

var (
	// ErrInvalidInput is returned when a collection holds no valid coordinate.
	ErrInvalidInput = eris.New("carto: no valid coordinates in collection")
	// ErrDegenerateBounds is returned when all valid coordinates coincide.
	ErrDegenerateBounds = eris.New("carto: bounds have zero extent")
	// ErrPrecondition is returned when a builder runs without normalization parameters.
	ErrPrecondition = eris.New("carto: normalization parameters not set")
)

// guard runs fn and returns a panic as an error.
func guard(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = eris.New(fmt.Sprintf("carto: recovered: %v", r))
		}
	}()
	fn()
	return nil
}
