package engine

import (
	"go.uber.org/zap"

	"github.com/muurk/controlroom/internal/logging"
	"github.com/muurk/controlroom/internal/navigation"
	"github.com/muurk/controlroom/internal/screen"
)

func (c *Context) applyInput(k Key) {
	ev := Input{Key: k}
	if c.transitioning {
		c.ignore(ev, "transition in flight")
		return
	}

	now := c.opts.Clock.Now()
	if !c.lastInputAt.IsZero() && now.Sub(c.lastInputAt) < c.opts.Timing.InputDebounce {
		c.ignore(ev, "debounced")
		return
	}
	c.lastInputAt = now

	switch c.state {
	case StateMap:
		c.mapInput(ev)
	case StateDashboard:
		c.dashboardInput(ev)
	case StateDetail:
		c.detailInput(ev)
	default:
		c.ignore(ev, "no input while loading")
	}
}

func direction(k Key) (navigation.Direction, bool) {
	switch k {
	case KeyUp:
		return navigation.Up, true
	case KeyDown:
		return navigation.Down, true
	case KeyLeft:
		return navigation.Left, true
	case KeyRight:
		return navigation.Right, true
	}
	return 0, false
}

// mapInput turns directions into pan intents and Enter into zoom
func (c *Context) mapInput(ev Input) {
	if d, ok := direction(ev.Key); ok {
		if c.opts.Map == nil {
			c.ignore(ev, "no map collaborator")
			return
		}
		step := c.opts.PanStep
		switch d {
		case navigation.Up:
			c.opts.Map.Pan(0, -step)
		case navigation.Down:
			c.opts.Map.Pan(0, step)
		case navigation.Left:
			c.opts.Map.Pan(-step, 0)
		case navigation.Right:
			c.opts.Map.Pan(step, 0)
		}
		return
	}

	if ev.Key == KeyEnter && c.opts.Map != nil {
		c.opts.Map.ZoomIn()
		return
	}
	c.ignore(ev, "no rule in map view")
}

func (c *Context) dashboardInput(ev Input) {
	if d, ok := direction(ev.Key); ok {
		if _, moved := c.focus.MoveFocus(d); moved {
			c.render()
			return
		}
		c.ignore(ev, "no neighbor in that direction")
		return
	}

	switch ev.Key {
	case KeyEnter:
		id, ok := c.focus.Focused()
		if !ok {
			c.ignore(ev, "nothing focused")
			return
		}
		c.selectTile(id)

	case KeyBack:
		if screen.IndexOf(c.screens, screen.MapID) >= 0 {
			c.openMap("back")
			return
		}
		c.transition(StateMap, "back")

	default:
		n, ok := ev.Key.Digit()
		if !ok {
			c.ignore(ev, "no rule in dashboard view")
			return
		}
		if n == screen.MapID {
			c.openMap("quick-select")
			return
		}
		if !c.focus.Focus(n) {
			c.ignore(ev, "no tile with that id")
			return
		}
		c.render()
	}
}

func (c *Context) detailInput(ev Input) {
	if d, ok := direction(ev.Key); ok {
		if c.detail == nil || !c.moveWidget(d) {
			c.ignore(ev, "no widget in that direction")
			return
		}
		c.render()
		return
	}

	switch ev.Key {
	case KeyBack:
		if c.detail != nil {
			c.focus.Anchor(c.detail.Screen.ID)
		}
		// the feed may have emptied while the detail view was open
		if !screen.HasContent(c.screens) {
			c.transition(StateMap, "back")
			return
		}
		c.transition(StateDashboard, "back")
	case KeyDigit0:
		c.openMap("quick-select")
	default:
		c.ignore(ev, "no rule in detail view")
	}
}

// selectTile handles Enter on a dashboard tile
func (c *Context) selectTile(id int) {
	s, ok := screen.Find(c.screens, id)
	if !ok {
		c.ignore(Input{Key: KeyEnter}, "focused tile is gone")
		return
	}
	if s.IsMap {
		c.openMap("select")
		return
	}
	c.detail = &Detail{Screen: s}
	logging.Debug("Opening detail view", zap.Int("screen_id", s.ID))
	c.transition(StateDetail, "select")
}

// openMap is an explicit user request for the map, which sets the lock
func (c *Context) openMap(reason string) {
	c.mapLocked = true
	c.transition(StateMap, reason)
}

// moveWidget moves the detail widget focus on the 2x2 grid without wrapping
func (c *Context) moveWidget(d navigation.Direction) bool {
	w := c.detail.Widget
	row, col := w/widgetColumns, w%widgetColumns
	rows := WidgetCount / widgetColumns

	switch d {
	case navigation.Up:
		row--
	case navigation.Down:
		row++
	case navigation.Left:
		col--
	case navigation.Right:
		col++
	}
	if row < 0 || row >= rows || col < 0 || col >= widgetColumns {
		return false
	}
	c.detail.Widget = row*widgetColumns + col
	return true
}
