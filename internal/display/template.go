package display

import (
	"github.com/muurk/controlroom/internal/layout"
)

// Template places tiles of a named grid. Offsets are in half cells so a
// short row can sit between the columns of the row above.
type Template struct {
	Mode    layout.Mode
	Columns int
	// RowStart is the half-cell offset of the first tile in each row
	RowStart []int
	// RowCount is the number of tiles in each row
	RowCount []int
}

var templates = map[layout.Mode]Template{
	layout.ModeGrid7:  {layout.ModeGrid7, 4, []int{0, 1}, []int{4, 3}},
	layout.ModeGrid8:  {layout.ModeGrid8, 4, []int{0, 0}, []int{4, 4}},
	layout.ModeGrid10: {layout.ModeGrid10, 4, []int{0, 0, 2}, []int{4, 4, 2}},
	layout.ModeGrid11: {layout.ModeGrid11, 4, []int{0, 0, 1}, []int{4, 4, 3}},
	layout.ModeGrid12: {layout.ModeGrid12, 4, []int{0, 0, 0}, []int{4, 4, 4}},
}

// TemplateFor returns the template of a named grid mode
func TemplateFor(mode layout.Mode) (Template, bool) {
	t, ok := templates[mode]
	return t, ok
}

// Count returns the number of tiles the template holds
func (t Template) Count() int {
	n := 0
	for _, c := range t.RowCount {
		n += c
	}
	return n
}

// Cell returns the row and half-cell column of tile i
func (t Template) Cell(i int) (row, half int, ok bool) {
	if i < 0 {
		return 0, 0, false
	}
	for r, count := range t.RowCount {
		if i < count {
			return r, t.RowStart[r] + 2*i, true
		}
		i -= count
	}
	return 0, 0, false
}
