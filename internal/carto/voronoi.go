package carto

import (
	"github.com/paulmach/orb"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// PaddingRatio is the share of the reference scale added on each side of
// the marker bounds to form the clip box.
const PaddingRatio = 0.1

// Cell is the part of the clip box closer to one marker than to any other.
type Cell struct {
	// Index is the position of the owning point in the input.
	Index int
	Site  orb.Point
	// Polygon is open and convex; Boundary repeats its first vertex.
	Polygon  orb.Ring
	Boundary orb.LineString
}

// ClipBox returns the padded bounds of points used to close boundary cells.
func ClipBox(points []orb.Point, referenceScale float64) orb.Bound {
	pad := referenceScale * PaddingRatio
	if !finite(pad) || pad < 0 {
		pad = 0
	}
	return orb.MultiPoint(points).Bound().Pad(pad)
}

// Generate computes the tessellation of points clipped to ClipBox. Each call
// starts from scratch; nothing is carried over between calls. Points that
// get no cell (exact duplicates, cells that collapse) are skipped, so the
// result may hold fewer cells than points but never more.
func Generate(points []orb.Point, referenceScale float64) []Cell {
	if len(points) == 0 {
		return nil
	}
	log := zap.L().With(zap.String("component", "carto.voronoi"))

	box := ClipBox(points, referenceScale)
	tri := Triangulate(points)

	cells := make([]Cell, 0, len(points))
	seen := make(map[orb.Point]struct{}, len(points))
	for i, p := range points {
		if _, dup := seen[p]; dup {
			log.Debug("no cell for point", zap.Int("index", i), zap.String("reason", "duplicate"))
			continue
		}
		seen[p] = struct{}{}
		var (
			poly orb.Ring
			err  error
		)
		if perr := guard(func() { poly, err = cellPolygon(points, i, tri.Neighbors(i), box) }); perr != nil {
			err = perr
		}
		if err != nil {
			log.Warn("skipping cell", zap.Int("index", i), zap.Error(err))
			continue
		}
		boundary := make(orb.LineString, 0, len(poly)+1)
		boundary = append(boundary, poly...)
		boundary = append(boundary, poly[0])
		cells = append(cells, Cell{Index: i, Site: points[i], Polygon: poly, Boundary: boundary})
	}
	log.Debug("tessellation generated", zap.Int("points", len(points)), zap.Int("cells", len(cells)))
	return cells
}

// cellPolygon clips the box by the bisector between point i and every other
// point, Delaunay neighbors first.
func cellPolygon(points []orb.Point, i int, neighbors []int, box orb.Bound) (orb.Ring, error) {
	poly := orb.Ring{
		{box.Left(), box.Bottom()},
		{box.Right(), box.Bottom()},
		{box.Right(), box.Top()},
		{box.Left(), box.Top()},
	}
	site := points[i]
	done := make(map[int]struct{}, len(neighbors))
	order := make([]int, 0, len(points))
	for _, j := range neighbors {
		done[j] = struct{}{}
		order = append(order, j)
	}
	for j := range points {
		if _, ok := done[j]; !ok && j != i {
			order = append(order, j)
		}
	}
	for _, j := range order {
		other := points[j]
		if other == site {
			continue
		}
		nx, ny := other[0]-site[0], other[1]-site[1]
		mid := orb.Point{(site[0] + other[0]) / 2, (site[1] + other[1]) / 2}
		poly = clipHalfPlane(poly, func(p orb.Point) float64 {
			return (p[0]-mid[0])*nx + (p[1]-mid[1])*ny
		})
		if len(poly) < minRingPoints {
			return nil, eris.Errorf("carto: cell %d collapsed against point %d", i, j)
		}
	}
	return poly, nil
}

// clipHalfPlane keeps the part of a convex polygon where side(p) <= 0
// (Sutherland-Hodgman against a single edge).
func clipHalfPlane(poly orb.Ring, side func(orb.Point) float64) orb.Ring {
	out := make(orb.Ring, 0, len(poly)+1)
	for k := range poly {
		cur := poly[k]
		next := poly[(k+1)%len(poly)]
		sc, sn := side(cur), side(next)
		if sc <= 0 {
			out = append(out, cur)
		}
		if (sc < 0 && sn > 0) || (sc > 0 && sn < 0) {
			t := sc / (sc - sn)
			out = append(out, orb.Point{
				cur[0] + t*(next[0]-cur[0]),
				cur[1] + t*(next[1]-cur[1]),
			})
		}
	}
	return dedupe(out)
}
