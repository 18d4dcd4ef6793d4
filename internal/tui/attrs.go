package tui

import (
	"fmt"
	"math"

	table "github.com/charmbracelet/bubbles/table"
	"github.com/paulmach/orb/planar"
)

// refreshTable lists the current tessellation, one row per cell.
func (m *Model) refreshTable() {
	cells := m.scene.Cells()
	if len(cells) == 0 {
		m.showTable = false
		m.status = "no cells for current markers"
		return
	}
	markers := m.scene.Markers()
	tcols := []table.Column{
		{Title: "#", Width: 4},
		{Title: "marker", Width: 24},
		{Title: "x", Width: 9},
		{Title: "y", Width: 9},
		{Title: "vertices", Width: 8},
		{Title: "area", Width: 10},
	}
	trows := make([]table.Row, 0, len(cells))
	for _, c := range cells {
		name := ""
		if c.Index < len(markers) {
			name = markers[c.Index].Name
		}
		trows = append(trows, table.Row{
			fmt.Sprintf("%d", c.Index+1),
			name,
			fmt.Sprintf("%.2f", c.Site[0]),
			fmt.Sprintf("%.2f", c.Site[1]),
			fmt.Sprintf("%d", len(c.Polygon)),
			fmt.Sprintf("%.2f", math.Abs(planar.Area(c.Polygon))),
		})
	}
	// Avoid transient mismatch: clear rows, set columns, then set rows
	m.tbl.SetRows(nil)
	m.tbl.SetColumns(tcols)
	m.tbl.SetRows(trows)
}
