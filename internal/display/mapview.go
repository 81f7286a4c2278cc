package display

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/muurk/controlroom/internal/engine"
	"github.com/muurk/controlroom/internal/logging"
)

const (
	// MaxZoom is the deepest zoom level; ZoomIn past it wraps to 1
	MaxZoom = 5

	// DefaultMapLoadDelay is how long the map takes to report ready
	DefaultMapLoadDelay = 200 * time.Millisecond

	// gridSpacing is the world distance between grid lines
	gridSpacing = 500

	// baseUnitsPerCell is the world width of one character at zoom 1
	baseUnitsPerCell = 64
)

// MapView is a terminal map: a world grid seen through a pannable window.
// It implements engine.MapView.
type MapView struct {
	visible bool
	x, y    int
	zoom    int
	loaded  bool
}

// NewMapView creates a hidden map centred on the origin at zoom 1
func NewMapView() *MapView {
	return &MapView{zoom: 1}
}

// Show makes the map visible
func (m *MapView) Show() {
	m.visible = true
}

// Hide hides the map
func (m *MapView) Hide() {
	m.visible = false
}

// Pan moves the window by dx, dy world units
func (m *MapView) Pan(dx, dy int) {
	m.x += dx
	m.y += dy
	logging.Debug("Map panned", zap.Int("x", m.x), zap.Int("y", m.y))
}

// ZoomIn steps one zoom level in, wrapping back to 1 after MaxZoom
func (m *MapView) ZoomIn() {
	m.zoom++
	if m.zoom > MaxZoom {
		m.zoom = 1
	}
	logging.Debug("Map zoomed", zap.Int("zoom", m.zoom))
}

// Visible reports whether the map is shown
func (m *MapView) Visible() bool { return m.visible }

// Position returns the window origin in world units
func (m *MapView) Position() (int, int) { return m.x, m.y }

// Zoom returns the zoom level
func (m *MapView) Zoom() int { return m.zoom }

// Load returns a command that reports readiness after delay
func (m *MapView) Load(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return mapLoadedMsg{}
	})
}

type mapLoadedMsg struct{}

// ready marks the map loaded and returns the event for the engine
func (m *MapView) ready() engine.Event {
	m.loaded = true
	return engine.MapReady{}
}

func (m *MapView) unitsPerCell() int {
	u := baseUnitsPerCell >> (m.zoom - 1)
	if u < 1 {
		u = 1
	}
	return u
}

// Render draws the window at width x height characters
func (m *MapView) Render(width, height int) string {
	if width <= 0 || height <= 1 {
		return ""
	}
	upc := m.unitsPerCell()
	// terminal cells are about twice as tall as they are wide
	rowUnits := upc * 2

	var b strings.Builder
	for row := 0; row < height-1; row++ {
		wy := m.y + row*rowUnits
		onRow := mod(wy, gridSpacing) < rowUnits
		for col := 0; col < width; col++ {
			wx := m.x + col*upc
			onCol := mod(wx, gridSpacing) < upc
			switch {
			case onRow && onCol:
				b.WriteByte('+')
			case onCol:
				b.WriteByte('|')
			case onRow:
				b.WriteByte('-')
			default:
				b.WriteByte(' ')
			}
		}
		b.WriteByte('\n')
	}

	grid := MapGridStyle.Render(strings.TrimSuffix(b.String(), "\n"))
	status := MapStatusStyle.Render(fmt.Sprintf("x=%d y=%d zoom=%d", m.x, m.y, m.zoom))
	return grid + "\n" + status
}

func mod(a, n int) int {
	r := a % n
	if r < 0 {
		r += n
	}
	return r
}

// Loaded reports whether the map has reported ready
func (m *MapView) Loaded() bool { return m.loaded }
