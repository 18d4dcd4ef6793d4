package tui

import (
	"fmt"

	list "github.com/charmbracelet/bubbles/list"
	"github.com/paulmach/orb"
)

type regionItem struct {
	title, desc string
	bound       orb.Bound
}

func (r regionItem) Title() string       { return r.title }
func (r regionItem) Description() string { return r.desc }
func (r regionItem) FilterValue() string { return r.title }

// refreshRegions lists every district region. Parts of a MultiPolygon share
// a name, so the part number is appended when there is more than one.
func (m *Model) refreshRegions() {
	if m.scene == nil {
		return
	}
	regions := m.scene.Regions()
	parts := map[int]int{}
	for _, r := range regions {
		parts[r.Feature]++
	}
	items := make([]list.Item, 0, len(regions))
	for _, r := range regions {
		title := r.Name
		if parts[r.Feature] > 1 {
			title = fmt.Sprintf("%s (%d)", r.Name, r.Part+1)
		}
		items = append(items, regionItem{
			title: title,
			desc:  fmt.Sprintf("feature %d", r.Feature+1),
			bound: r.Solid.Outline.Bound(),
		})
	}
	m.items = items
	m.l.SetItems(items)
}

func (m Model) summary() string {
	if m.scene == nil {
		return "no scene"
	}
	st := m.scene.Stats()
	return fmt.Sprintf("regions=%d neighborhoods=%d markers=%d cells=%d",
		st.Regions, st.Neighborhoods, st.Markers, st.Cells)
}
