package tui

import (
	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	textarea "github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"geomap/internal/scene"
)

// Options seeds the initial view state.
type Options struct {
	Title string
	Zoom  float64
}

type Model struct {
	width  int
	height int

	scene *scene.Scene
	title string

	showSidebar bool
	helpVisible bool

	zoom    float64
	offsetX int
	offsetY int

	status string

	// region list
	l     list.Model
	items []list.Item

	// paste mode
	pasteMode bool
	ta        textarea.Model

	// layer visibility
	showDistricts     bool
	showNeighborhoods bool
	showCells         bool
	showMarkers       bool

	// inspect popup
	inspectPopup string

	// hover state
	hovering    bool
	hoverCellX  int
	hoverCellY  int
	hoverHasGeo bool
	hoverLon    float64
	hoverLat    float64

	// cell table
	showTable bool
	tbl       table.Model
}

// New builds the preview over an already loaded scene.
func New(s *scene.Scene, opts Options) Model {
	if opts.Zoom <= 0 {
		opts.Zoom = 1.0
	}
	if opts.Title == "" {
		opts.Title = "geomap"
	}
	m := Model{
		scene:             s,
		title:             opts.Title,
		showSidebar:       false,
		helpVisible:       true,
		zoom:              opts.Zoom,
		status:            "geomap ready",
		showDistricts:     true,
		showNeighborhoods: true,
		showCells:         true,
		showMarkers:       true,
	}
	// list setup
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Districts"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)
	// textarea setup
	m.ta = textarea.New()
	m.ta.Placeholder = "Paste marker WKT here (POINT, MULTIPOINT, POLYGON) in source coordinates. Press Enter to place; Esc to cancel."
	m.ta.CharLimit = 0
	m.ta.SetWidth(50)
	m.ta.SetHeight(6)
	m.tbl = table.New(table.WithFocused(true))
	m.tbl.SetHeight(12)
	m.refreshRegions()
	m.status = m.summary()
	return m
}

func (m Model) Init() tea.Cmd { return nil }
