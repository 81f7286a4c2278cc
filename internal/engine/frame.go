package engine

import (
	"github.com/muurk/controlroom/internal/layout"
	"github.com/muurk/controlroom/internal/screen"
)

// WidgetCount is the size of the detail widget grid (2x2)
const WidgetCount = 4

const widgetColumns = 2

// Tile is one dashboard tile as the surface should draw it
type Tile struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Code    string `json:"code"`
	IsMap   bool   `json:"is_map"`
	Index   int    `json:"index"`
	Row     int    `json:"row"`
	Col     int    `json:"col"`
	Focused bool   `json:"focused"`
}

// Detail is the single screen open in the Detail view
type Detail struct {
	Screen screen.Screen `json:"screen"`
	Widget int           `json:"widget"` // focused widget, 0..3 row-major
}

// Frame is everything the surface needs to draw the current view
type Frame struct {
	State         State        `json:"state"`
	MapLocked     bool         `json:"map_locked"`
	Transitioning bool         `json:"transitioning"`
	Plan          *layout.Plan `json:"plan,omitempty"`
	Tiles         []Tile       `json:"tiles,omitempty"`
	Detail        *Detail      `json:"detail,omitempty"`
	Screens       int          `json:"screens"`
}

// FocusedTile returns the focused tile of a dashboard frame
func (f Frame) FocusedTile() (Tile, bool) {
	for _, t := range f.Tiles {
		if t.Focused {
			return t, true
		}
	}
	return Tile{}, false
}
