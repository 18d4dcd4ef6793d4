package carto

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/paulmach/orb"
	"github.com/rotisserie/eris"
)

// ExtrudeDepth is the height of every region solid.
const ExtrudeDepth = 1.0

// groundTilt lays the XY polygon plane onto the XZ ground plane:
// (x, y, z) becomes (x, z, -y).
var groundTilt = mgl64.HomogRotate3DX(-math.Pi / 2)

func toWorld(x, y, z float64) mgl64.Vec3 {
	return groundTilt.Mul4x1(mgl64.Vec4{x, y, z, 1}).Vec3()
}

// Solid is a region polygon lifted into a prism of ExtrudeDepth.
type Solid struct {
	Name    string
	Outline orb.Ring
	Depth   float64
}

// Mesh is a triangle soup in scene space.
type Mesh struct {
	Vertices  []mgl64.Vec3
	Triangles [][3]int
}

// Mesh extrudes the outline: a bottom cap at z=0, a top cap at z=Depth and
// one quad per edge, then tilts everything onto the ground plane.
func (s Solid) Mesh() (Mesh, error) {
	ring := dedupe(s.Outline)
	if len(ring) < minRingPoints {
		return Mesh{}, eris.Errorf("carto: solid %q has %d distinct vertices", s.Name, len(ring))
	}
	closed := append(ring[:len(ring):len(ring)], ring[0])
	if closed.Orientation() != orb.CCW {
		rev := make(orb.Ring, len(ring))
		for i, p := range ring {
			rev[len(ring)-1-i] = p
		}
		ring = rev
	}
	caps, err := earClip(ring)
	if err != nil {
		return Mesh{}, eris.Wrapf(err, "carto: triangulate %q", s.Name)
	}

	n := len(ring)
	m := Mesh{Vertices: make([]mgl64.Vec3, 0, 2*n)}
	for _, p := range ring {
		m.Vertices = append(m.Vertices, toWorld(p[0], p[1], 0))
	}
	for _, p := range ring {
		m.Vertices = append(m.Vertices, toWorld(p[0], p[1], s.Depth))
	}
	for _, t := range caps {
		// bottom faces away from the top
		m.Triangles = append(m.Triangles, [3]int{t[0], t[2], t[1]})
		m.Triangles = append(m.Triangles, [3]int{t[0] + n, t[1] + n, t[2] + n})
	}
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		m.Triangles = append(m.Triangles, [3]int{i, j, j + n}, [3]int{i, j + n, i + n})
	}
	return m, nil
}

// LabelAnchor is the centre of the solid's bounding box in scene space.
func (s Solid) LabelAnchor() mgl64.Vec3 {
	c := s.Outline.Bound().Center()
	return toWorld(c[0], c[1], s.Depth/2)
}

// dedupe drops consecutive repeats and a trailing copy of the first point.
func dedupe(r orb.Ring) orb.Ring {
	out := make(orb.Ring, 0, len(r))
	for _, p := range r {
		if len(out) > 0 && out[len(out)-1] == p {
			continue
		}
		out = append(out, p)
	}
	for len(out) > 1 && out[0] == out[len(out)-1] {
		out = out[:len(out)-1]
	}
	return out
}

// earClip triangulates a simple counter-clockwise ring.
func earClip(r orb.Ring) ([][3]int, error) {
	idx := make([]int, len(r))
	for i := range idx {
		idx[i] = i
	}
	var tris [][3]int
	for iter := 0; len(idx) > 3; iter++ {
		if iter > len(r)*len(r) {
			return nil, eris.New("carto: ear clipping made no progress")
		}
		clipped := false
		for i := range idx {
			a := idx[(i+len(idx)-1)%len(idx)]
			b := idx[i]
			c := idx[(i+1)%len(idx)]
			if cross(r[a], r[b], r[c]) <= 0 {
				continue
			}
			if anyInside(r, idx, a, b, c) {
				continue
			}
			tris = append(tris, [3]int{a, b, c})
			idx = append(idx[:i], idx[i+1:]...)
			clipped = true
			break
		}
		if !clipped {
			// only collinear or reflex corners left; drop the first flat one
			if !dropFlat(r, &idx) {
				return nil, eris.New("carto: ring is not simple")
			}
		}
	}
	if len(idx) == 3 && cross(r[idx[0]], r[idx[1]], r[idx[2]]) != 0 {
		tris = append(tris, [3]int{idx[0], idx[1], idx[2]})
	}
	return tris, nil
}

func dropFlat(r orb.Ring, idx *[]int) bool {
	s := *idx
	for i := range s {
		a := s[(i+len(s)-1)%len(s)]
		c := s[(i+1)%len(s)]
		if cross(r[a], r[s[i]], r[c]) == 0 {
			*idx = append(s[:i], s[i+1:]...)
			return true
		}
	}
	return false
}

func anyInside(r orb.Ring, idx []int, a, b, c int) bool {
	for _, k := range idx {
		if k == a || k == b || k == c {
			continue
		}
		p := r[k]
		if cross(r[a], r[b], p) >= 0 && cross(r[b], r[c], p) >= 0 && cross(r[c], r[a], p) >= 0 {
			return true
		}
	}
	return false
}

// cross is the z component of (b-a) x (c-a).
func cross(a, b, c orb.Point) float64 {
	return (b[0]-a[0])*(c[1]-a[1]) - (b[1]-a[1])*(c[0]-a[0])
}
