package carto

import (
	"math"
	"sort"

	"github.com/paulmach/orb"
)

// superAngle rotates the three directions of the super triangle away from the
// axes so grid-aligned edges do not run parallel to them.
const superAngle = 0.3

// superDirs are the directions of the super triangle vertices. The vertices
// themselves sit infinitely far out along them and are never given
// coordinates.
var superDirs = func() (d [3]orb.Point) {
	for k := range d {
		s, c := math.Sincos(superAngle + float64(k)*2*math.Pi/3)
		d[k] = orb.Point{c, s}
	}
	return d
}()

type triangle struct {
	v [3]int
}

// Triangulation is a Delaunay triangulation built incrementally
// (Bowyer-Watson) in input order, so equal inputs give equal output.
type Triangulation struct {
	Points []orb.Point
	// Triangles holds input indices only; triangles touching the super
	// triangle are dropped.
	Triangles [][3]int

	inserted  []bool
	neighbors [][]int

	// mid anchors the super vertices when an edge runs parallel to one.
	mid orb.Point
}

// Triangulate builds the triangulation of points. A point equal to an
// earlier one is not inserted and has no neighbors.
func Triangulate(points []orb.Point) *Triangulation {
	n := len(points)
	t := &Triangulation{
		Points:    points,
		inserted:  make([]bool, n),
		neighbors: make([][]int, n),
	}
	if n == 0 {
		return t
	}
	t.mid = orb.MultiPoint(points).Bound().Center()

	tris := []triangle{{v: [3]int{n, n + 1, n + 2}}}
	seen := make(map[orb.Point]struct{}, n)
	for i, p := range points {
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		var ok bool
		if tris, ok = t.insert(tris, i); ok {
			t.inserted[i] = true
		}
	}

	adj := make([]map[int]struct{}, n)
	link := func(a, b int) {
		if a >= n || b >= n {
			return
		}
		if adj[a] == nil {
			adj[a] = map[int]struct{}{}
		}
		if adj[b] == nil {
			adj[b] = map[int]struct{}{}
		}
		adj[a][b] = struct{}{}
		adj[b][a] = struct{}{}
	}
	for _, tr := range tris {
		a, b, c := tr.v[0], tr.v[1], tr.v[2]
		link(a, b)
		link(b, c)
		link(c, a)
		if a < n && b < n && c < n {
			t.Triangles = append(t.Triangles, tr.v)
		}
	}
	for i, m := range adj {
		for j := range m {
			t.neighbors[i] = append(t.neighbors[i], j)
		}
		sort.Ints(t.neighbors[i])
	}
	return t
}

// insert adds point i: triangles whose circumcircle holds it are removed and
// the cavity is re-fanned around it. It reports false, leaving tris as they
// were, when no circumcircle holds the point.
func (t *Triangulation) insert(tris []triangle, i int) ([]triangle, bool) {
	p := t.Points[i]
	type edge struct{ a, b int }
	var (
		boundary []edge
		count    = map[edge]int{}
		kept     = make([]triangle, 0, len(tris)+2)
	)
	for _, tr := range tris {
		if !t.circumcircleContains(tr, p) {
			kept = append(kept, tr)
			continue
		}
		for k := 0; k < 3; k++ {
			e := edge{tr.v[k], tr.v[(k+1)%3]}
			key := e
			if key.a > key.b {
				key.a, key.b = key.b, key.a
			}
			if count[key] == 0 {
				boundary = append(boundary, e)
			}
			count[key]++
		}
	}
	if len(boundary) == 0 {
		return tris, false
	}
	for _, e := range boundary {
		key := e
		if key.a > key.b {
			key.a, key.b = key.b, key.a
		}
		if count[key] != 1 {
			continue
		}
		kept = append(kept, triangle{v: [3]int{e.a, e.b, i}})
	}
	return kept, true
}

// circumcircleContains reports whether p lies strictly inside the
// circumcircle of tr. Circles through super vertices are taken in the limit
// and become half-planes.
func (t *Triangulation) circumcircleContains(tr triangle, p orb.Point) bool {
	n := len(t.Points)
	var fin, inf []int
	for _, v := range tr.v {
		if v < n {
			fin = append(fin, v)
		} else {
			inf = append(inf, v-n)
		}
	}
	switch len(inf) {
	case 0:
		a, b, c := t.Points[fin[0]], t.Points[fin[1]], t.Points[fin[2]]
		o := orient(a, b, c)
		if o == 0 {
			// flat: contains everything so the next insertion replaces it
			return true
		}
		d := inCircle(a, b, c, p)
		return d != 0 && (d > 0) == (o > 0)
	case 1:
		a, b := t.Points[fin[0]], t.Points[fin[1]]
		dir := superDirs[inf[0]]
		side := (b[0]-a[0])*dir[1] - (b[1]-a[1])*dir[0]
		if side == 0 {
			side = orient(a, b, t.mid)
		}
		op := orient(a, b, p)
		if op == 0 {
			// on the chord between a and b
			return (p[0]-a[0])*(b[0]-a[0])+(p[1]-a[1])*(b[1]-a[1]) > 0 &&
				(p[0]-b[0])*(a[0]-b[0])+(p[1]-b[1])*(a[1]-b[1]) > 0
		}
		return side != 0 && (op > 0) == (side > 0)
	case 2:
		a := t.Points[fin[0]]
		dj, dk := superDirs[inf[0]], superDirs[inf[1]]
		return (p[0]-a[0])*(dj[0]+dk[0])+(p[1]-a[1])*(dj[1]+dk[1]) > 0
	}
	return true
}

// orient is twice the signed area of abc, positive when counter-clockwise.
func orient(a, b, c orb.Point) float64 {
	return (b[0]-a[0])*(c[1]-a[1]) - (b[1]-a[1])*(c[0]-a[0])
}

// inCircle is positive when p lies inside the circle through the
// counter-clockwise triangle abc. Coordinates are taken relative to p.
func inCircle(a, b, c, p orb.Point) float64 {
	adx, ady := a[0]-p[0], a[1]-p[1]
	bdx, bdy := b[0]-p[0], b[1]-p[1]
	cdx, cdy := c[0]-p[0], c[1]-p[1]
	ad := adx*adx + ady*ady
	bd := bdx*bdx + bdy*bdy
	cd := cdx*cdx + cdy*cdy
	return ad*(bdx*cdy-cdx*bdy) + bd*(cdx*ady-adx*cdy) + cd*(adx*bdy-bdx*ady)
}

// Inserted reports whether point i took part in the triangulation.
func (t *Triangulation) Inserted(i int) bool {
	return i >= 0 && i < len(t.inserted) && t.inserted[i]
}

// Neighbors returns the indices sharing a Delaunay edge with point i, in
// ascending order.
func (t *Triangulation) Neighbors(i int) []int {
	if i < 0 || i >= len(t.neighbors) {
		return nil
	}
	return t.neighbors[i]
}
