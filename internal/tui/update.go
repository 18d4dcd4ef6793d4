package tui

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"go.uber.org/zap"

	"geomap/internal/carto"
	"geomap/internal/geom"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.showSidebar {
			m.l.SetSize(sidebarWidth-2, m.layout().contentH-2)
		}
	case tea.KeyMsg:
		// If list is visible and filtering, send keys to list and ignore global commands
		if m.showSidebar && m.l.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
		if m.pasteMode {
			switch msg.String() {
			case "esc":
				m.pasteMode = false
				m.ta.Blur()
				return m, nil
			case "enter":
				m.placePasted(m.ta.Value())
				return m, nil
			}
			var cmd tea.Cmd
			m.ta, cmd = m.ta.Update(msg)
			return m, cmd
		}
		if m.showTable {
			switch msg.String() {
			case "esc", "a":
				m.showTable = false
				return m, nil
			case "enter":
				m.selectTableRow()
				m.showTable = false
				return m, nil
			case "ctrl+c", "q":
				return m, tea.Quit
			}
			var cmd tea.Cmd
			m.tbl, cmd = m.tbl.Update(msg)
			return m, cmd
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "1":
			m.showDistricts = !m.showDistricts
			m.status = fmt.Sprintf("districts: %v", m.showDistricts)
		case "2":
			m.showNeighborhoods = !m.showNeighborhoods
			m.status = fmt.Sprintf("neighborhoods: %v", m.showNeighborhoods)
		case "3":
			m.showCells = !m.showCells
			m.status = fmt.Sprintf("cells: %v", m.showCells)
		case "4":
			m.showMarkers = !m.showMarkers
			m.status = fmt.Sprintf("markers: %v", m.showMarkers)
		case "l":
			all := m.showDistricts && m.showNeighborhoods && m.showCells && m.showMarkers
			m.showDistricts, m.showNeighborhoods, m.showCells, m.showMarkers = !all, !all, !all, !all
			m.status = fmt.Sprintf("layers: %v", !all)
		case "+", "=":
			if m.zoom < 64 {
				m.zoom *= 1.2
				m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
			}
		case "-", "_":
			if m.zoom > 0.05 {
				m.zoom /= 1.2
				m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
			}
		case "0":
			m.zoom, m.offsetX, m.offsetY = 1.0, 0, 0
			m.status = "view reset"
		case "tab":
			m.showSidebar = !m.showSidebar
			if m.showSidebar {
				m.refreshRegions()
				m.l.SetSize(sidebarWidth-2, m.layout().contentH-2)
			}
		case "p":
			m.pasteMode = true
			m.ta.SetValue("")
			m.status = "paste mode"
			m.ta.Focus()
		case "h":
			m.helpVisible = !m.helpVisible
		case "a":
			m.showTable = true
			m.refreshTable()
		case "i":
			m.inspectPopup = m.inspectCentre()
			m.status = "inspect popup"
		case "esc":
			m.inspectPopup = ""
		case "enter":
			if m.showSidebar {
				if it, ok := m.l.SelectedItem().(regionItem); ok {
					lay := m.layout()
					m.focus(it.bound, lay.mapW, lay.mapH)
					m.status = "focused: " + it.title
				}
			}
		case "up":
			m.offsetY -= 1
		case "down":
			m.offsetY += 1
		case "left":
			m.offsetX -= 2
		case "right":
			m.offsetX += 2
		}
	case tea.MouseMsg:
		lay := m.layout()
		cx, cy := msg.X-lay.mapX, msg.Y-lay.mapY
		inMap := cx >= 0 && cx < lay.mapW && cy >= 0 && cy < lay.mapH
		m.hovering = inMap && !m.pasteMode && !m.showTable
		if m.hovering {
			m.hoverCellX, m.hoverCellY = cx, cy
			m.hoverHasGeo = false
			if p, ok := m.cellToPlanar(cx, cy, lay.mapW, lay.mapH); ok {
				if params, ok := m.scene.Params(); ok {
					geo := params.Invert(p)
					m.hoverHasGeo, m.hoverLon, m.hoverLat = true, geo[0], geo[1]
				}
				if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
					m.selectAt(p)
				}
			}
		}
	}
	// Pass messages to list when visible
	if m.showSidebar {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	return m, nil
}

// selectAt highlights the cell under a planar point; clicking outside every
// cell clears the highlight.
func (m *Model) selectAt(p orb.Point) {
	c, ok := m.scene.Select(p)
	if !ok {
		m.status = "no cell here"
		return
	}
	m.status = "selected: " + m.cellLabel(c)
}

func (m *Model) selectTableRow() {
	row := m.tbl.SelectedRow()
	if len(row) == 0 {
		return
	}
	n, err := strconv.Atoi(row[0])
	if err != nil {
		return
	}
	for _, c := range m.scene.Cells() {
		if c.Index == n-1 {
			m.selectAt(c.Site)
			return
		}
	}
}

// placePasted replaces the markers with the pasted WKT and regenerates the
// tessellation.
func (m *Model) placePasted(raw string) {
	w := strings.TrimSpace(raw)
	if w == "" {
		m.status = "paste: empty"
		return
	}
	c, err := geom.ParseWKT(w)
	if err != nil {
		m.status = "wkt error: " + err.Error()
		return
	}
	params, _ := m.scene.Params()
	markers, err := carto.MarkersFromFeatures(c.Features, params)
	if err == nil {
		err = m.scene.SetMarkers(markers)
	}
	if err != nil {
		m.status = "markers error: " + err.Error()
		return
	}
	zap.L().Debug("markers pasted", zap.Int("features", len(c.Features)), zap.Int("markers", len(markers)))
	m.pasteMode = false
	m.ta.Blur()
	m.status = "placed markers  " + m.summary()
}

func (m Model) cellLabel(c carto.Cell) string {
	if mk, ok := m.scene.MarkerFor(c); ok {
		return mk.Name
	}
	return fmt.Sprintf("cell %d", c.Index+1)
}

// inspectCentre describes the cell under the middle of the map.
func (m Model) inspectCentre() string {
	lay := m.layout()
	p, ok := m.cellToPlanar(lay.mapW/2, lay.mapH/2, lay.mapW, lay.mapH)
	if !ok {
		return "nothing loaded"
	}
	c, ok := m.scene.CellAt(p)
	if !ok {
		return "no cell at view centre\n" + m.summary()
	}
	meta := []string{
		fmt.Sprintf("marker: %s", m.cellLabel(c)),
		fmt.Sprintf("site: x=%.3f y=%.3f", c.Site[0], c.Site[1]),
	}
	if params, ok := m.scene.Params(); ok {
		geo := params.Invert(c.Site)
		meta = append(meta, fmt.Sprintf("lon=%.6f lat=%.6f", geo[0], geo[1]))
	}
	meta = append(meta,
		fmt.Sprintf("vertices: %d", len(c.Polygon)),
		fmt.Sprintf("area: %.3f", math.Abs(planar.Area(c.Polygon))),
	)
	return strings.Join(meta, "\n")
}
