package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/paulmach/orb"
)

// viewport maps planar scene coordinates onto a w x h cell canvas. The scene
// bounds are fitted uniformly into the braille microgrid, then zoomed about
// the centre and panned by whole cells.
type viewport struct {
	center     orb.Point
	w, h       int
	scale      float64 // micro pixels per planar unit
	offX, offY int     // cells
}

func (m Model) viewport(w, h int) (viewport, bool) {
	if m.scene == nil || w <= 1 || h <= 1 {
		return viewport{}, false
	}
	b := m.scene.Bound()
	if b.IsEmpty() {
		return viewport{}, false
	}
	bw, bh := b.Right()-b.Left(), b.Top()-b.Bottom()
	if bw <= 0 {
		bw = 1
	}
	if bh <= 0 {
		bh = 1
	}
	scale := math.Min(float64(w*2-1)/bw, float64(h*4-1)/bh) * m.zoom
	return viewport{center: b.Center(), w: w, h: h, scale: scale, offX: m.offsetX, offY: m.offsetY}, true
}

// micro maps a planar point into the 2x4 per cell microgrid.
func (v viewport) micro(p orb.Point) [2]int {
	x := float64(v.w*2-1)/2 + (p[0]-v.center[0])*v.scale + float64(v.offX*2)
	y := float64(v.h*4-1)/2 - (p[1]-v.center[1])*v.scale + float64(v.offY*4)
	return [2]int{int(math.Round(x)), int(math.Round(y))}
}

// planar maps the centre of a canvas cell back to scene coordinates.
func (v viewport) planar(cx, cy int) orb.Point {
	mx := float64(cx*2) + 0.5
	my := float64(cy*4) + 1.5
	x := (mx-float64(v.offX*2)-float64(v.w*2-1)/2)/v.scale + v.center[0]
	y := -(my-float64(v.offY*4)-float64(v.h*4-1)/2)/v.scale + v.center[1]
	return orb.Point{x, y}
}

func (v viewport) path(pts []orb.Point) [][2]int {
	out := make([][2]int, 0, len(pts))
	for _, p := range pts {
		out = append(out, v.micro(p))
	}
	return out
}

var inkStyles = map[ink]lipgloss.Style{
	inkSelected: selectedStyle,
	inkEmphasis: emphasisStyle,
	inkMarker:   markerStyle,
}

func (m Model) renderMap(w, h int) string {
	v, ok := m.viewport(w, h)
	if !ok {
		return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, dimStyle.Render("no districts loaded"))
	}
	br := newBrailleBuf(w, h)

	if sel, ok := m.scene.Selected(); ok && m.showCells {
		br.fillRing(v.path(sel.Polygon), inkSelected)
	}
	if m.showDistricts {
		for _, r := range m.scene.Regions() {
			br.drawPath(v.path(r.Border.Line), inkBase)
		}
	}
	if m.showCells {
		for _, c := range m.scene.Cells() {
			br.drawPath(v.path(c.Boundary), inkBase)
		}
	}
	if m.showNeighborhoods {
		for _, n := range m.scene.Neighborhoods() {
			c := inkBase
			if n.Emphasis {
				c = inkEmphasis
			}
			br.drawPath(v.path(n.Line), c)
		}
	}
	if m.showMarkers {
		for _, mk := range m.scene.Markers() {
			p := v.micro(mk.Position)
			// 2x2 dot so markers survive next to dense outlines
			br.setPixel(p[0], p[1], inkMarker)
			br.setPixel(p[0]+1, p[1], inkMarker)
			br.setPixel(p[0], p[1]+1, inkMarker)
			br.setPixel(p[0]+1, p[1]+1, inkMarker)
		}
	}

	lines := br.styledLines(inkStyles)
	if m.hovering && m.hoverCellY >= 0 && m.hoverCellY < len(lines) {
		plain := []rune(br.toLines()[m.hoverCellY])
		if m.hoverCellX >= 0 && m.hoverCellX < len(plain) {
			pre := string(plain[:m.hoverCellX])
			post := string(plain[m.hoverCellX+1:])
			lines[m.hoverCellY] = pre + markerStyle.Render("◯") + post
		}
	}
	return strings.Join(lines, "\n")
}

// cellToPlanar converts a map cell back to scene coordinates.
func (m Model) cellToPlanar(cx, cy, w, h int) (orb.Point, bool) {
	v, ok := m.viewport(w, h)
	if !ok {
		return orb.Point{}, false
	}
	return v.planar(cx, cy), true
}

// focus zooms and pans so that b fills most of a w x h canvas.
func (m *Model) focus(b orb.Bound, w, h int) {
	full := m.scene.Bound()
	if full.IsEmpty() || b.IsEmpty() {
		return
	}
	fw, fh := full.Right()-full.Left(), full.Top()-full.Bottom()
	bw, bh := b.Right()-b.Left(), b.Top()-b.Bottom()
	zoom := 64.0
	if bw > 0 {
		zoom = math.Min(zoom, fw/bw)
	}
	if bh > 0 {
		zoom = math.Min(zoom, fh/bh)
	}
	m.zoom = clampf(zoom*0.9, 0.05, 64)
	m.offsetX, m.offsetY = 0, 0
	v, ok := m.viewport(w, h)
	if !ok {
		return
	}
	c := v.micro(b.Center())
	m.offsetX = -int(math.Round((float64(c[0]) - float64(w*2-1)/2) / 2))
	m.offsetY = -int(math.Round((float64(c[1]) - float64(h*4-1)/2) / 4))
}
