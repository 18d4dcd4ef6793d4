package scene

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Camera is a perspective camera state as seen by the renderer.
type Camera struct {
	Position mgl64.Vec3
	Target   mgl64.Vec3
	Up       mgl64.Vec3
	FovY     float64 // degrees
	Near     float64
	Far      float64
}

// DefaultCamera looks at the map origin from above and in front.
func DefaultCamera() Camera {
	return Camera{
		Position: mgl64.Vec3{0, 50, 100},
		Target:   mgl64.Vec3{0, 0, 0},
		Up:       mgl64.Vec3{0, 1, 0},
		FovY:     45,
		Near:     0.1,
		Far:      1000,
	}
}

// ScreenPoint is a position in pixels, origin top-left.
type ScreenPoint struct {
	X, Y float64
}

// Project maps a scene-space point to screen pixels for a viewport of the
// given size. The bool is false when the point is behind the camera or
// beyond the far plane. It keeps no state; call it once per frame.
func Project(world mgl64.Vec3, cam Camera, width, height float64) (ScreenPoint, bool) {
	if width <= 0 || height <= 0 {
		return ScreenPoint{}, false
	}
	view := mgl64.LookAtV(cam.Position, cam.Target, cam.Up)
	proj := mgl64.Perspective(mgl64.DegToRad(cam.FovY), width/height, cam.Near, cam.Far)
	clip := proj.Mul4(view).Mul4x1(world.Vec4(1))
	if clip.W() <= 0 {
		return ScreenPoint{}, false
	}
	ndc := clip.Vec3().Mul(1 / clip.W())
	sp := ScreenPoint{
		X: (ndc.X()*0.5 + 0.5) * width,
		Y: (-ndc.Y()*0.5 + 0.5) * height,
	}
	return sp, ndc.Z() < 1
}

// Label is a region name placed on screen.
type Label struct {
	Text    string
	Screen  ScreenPoint
	Visible bool
}

// Labels projects the anchor of every named region. Regions that only have
// a positional name get no label.
func (s *Scene) Labels(cam Camera, width, height float64) []Label {
	regions := s.Regions()
	out := make([]Label, 0, len(regions))
	for _, r := range regions {
		if !r.Labeled {
			continue
		}
		sp, ok := Project(r.Solid.LabelAnchor(), cam, width, height)
		out = append(out, Label{Text: r.Name, Screen: sp, Visible: ok})
	}
	return out
}
