package tui

import (
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ink tells which layer last claimed a cell; higher values win.
type ink uint8

const (
	inkNone ink = iota
	inkBase
	inkSelected
	inkEmphasis
	inkMarker
)

type brailleBuf struct {
	w, h int       // in cells
	m    [][]uint8 // per-cell 8-bit mask
	ink  [][]ink
}

func newBrailleBuf(w, h int) *brailleBuf {
	m := make([][]uint8, h)
	k := make([][]ink, h)
	for i := range m {
		m[i] = make([]uint8, w)
		k[i] = make([]ink, w)
	}
	return &brailleBuf{w: w, h: h, m: m, ink: k}
}

// setPixel sets a micro-pixel at micro coords (2x4 per cell)
func (b *brailleBuf) setPixel(mx, my int, c ink) {
	if mx < 0 || my < 0 {
		return
	}
	cx, rx := mx/2, mx%2
	cy, ry := my/4, my%4
	if cy >= b.h || cx >= b.w {
		return
	}
	var bit uint8
	if rx == 0 {
		switch ry {
		case 0:
			bit = 0x01
		case 1:
			bit = 0x02
		case 2:
			bit = 0x04
		case 3:
			bit = 0x40
		}
	} else {
		switch ry {
		case 0:
			bit = 0x08
		case 1:
			bit = 0x10
		case 2:
			bit = 0x20
		case 3:
			bit = 0x80
		}
	}
	b.m[cy][cx] |= bit
	if c > b.ink[cy][cx] {
		b.ink[cy][cx] = c
	}
}

// drawLineMicro draws a line on the microgrid using Bresenham
func (b *brailleBuf) drawLineMicro(x0, y0, x1, y1 int, c ink) {
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		b.setPixel(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// drawPath connects consecutive micro points.
func (b *brailleBuf) drawPath(pts [][2]int, c ink) {
	for i := 1; i < len(pts); i++ {
		b.drawLineMicro(pts[i-1][0], pts[i-1][1], pts[i][0], pts[i][1], c)
	}
}

// fillRing fills a closed micro-space ring with the even-odd rule, one
// scanline per micro row.
func (b *brailleBuf) fillRing(ring [][2]int, c ink) {
	if len(ring) < 3 {
		return
	}
	hMic := b.h * 4
	for yMic := 0; yMic < hMic; yMic++ {
		var xs []int
		for i := 0; i < len(ring); i++ {
			a := ring[i]
			n := ring[(i+1)%len(ring)]
			if a[1] == n[1] {
				continue
			}
			y0, y1 := a[1], n[1]
			x0, x1 := a[0], n[0]
			if (yMic >= y0 && yMic < y1) || (yMic >= y1 && yMic < y0) {
				t := float64(yMic-y0) / float64(y1-y0)
				xs = append(xs, int(float64(x0)+t*float64(x1-x0)))
			}
		}
		sort.Ints(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			for xMic := max(0, xs[i]); xMic <= xs[i+1] && xMic < b.w*2; xMic++ {
				b.setPixel(xMic, yMic, c)
			}
		}
	}
}

func (b *brailleBuf) toLines() []string {
	out := make([]string, b.h)
	for y := 0; y < b.h; y++ {
		row := make([]rune, b.w)
		for x := 0; x < b.w; x++ {
			mask := b.m[y][x]
			if mask == 0 {
				row[x] = ' '
			} else {
				row[x] = rune(0x2800 + int(mask))
			}
		}
		out[y] = string(row)
	}
	return out
}

// styledLines renders each cell with the style of the layer that owns it.
// Runs of the same ink share one style call.
func (b *brailleBuf) styledLines(styles map[ink]lipgloss.Style) []string {
	plain := b.toLines()
	out := make([]string, b.h)
	for y := 0; y < b.h; y++ {
		row := []rune(plain[y])
		var sb strings.Builder
		start := 0
		for x := 1; x <= b.w; x++ {
			if x < b.w && b.ink[y][x] == b.ink[y][start] {
				continue
			}
			seg := string(row[start:x])
			if st, ok := styles[b.ink[y][start]]; ok {
				seg = st.Render(seg)
			}
			sb.WriteString(seg)
			start = x
		}
		out[y] = sb.String()
	}
	return out
}
