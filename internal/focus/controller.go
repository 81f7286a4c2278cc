package focus

import (
	"github.com/muurk/controlroom/internal/navigation"
	"github.com/muurk/controlroom/internal/screen"
)

// DefaultHistorySize is the number of recently focused ids retained
const DefaultHistorySize = 10

// Controller owns the single focus marker of the dashboard
type Controller struct {
	graph  *navigation.Graph
	tiles  []screen.Screen
	id     int
	index  int
	active bool

	recorded    int
	hasRecorded bool

	history     []int
	historySize int
}

// New returns a controller with nothing focused
func New() *Controller {
	return &Controller{
		index:       -1,
		graph:       navigation.Build(nil, nil),
		historySize: DefaultHistorySize,
	}
}

// Focused returns the focused screen id
func (c *Controller) Focused() (int, bool) {
	return c.id, c.active
}

// FocusedIndex returns the list index of the focused tile, or -1
func (c *Controller) FocusedIndex() int {
	if !c.active {
		return -1
	}
	return c.index
}

// BeforeRerender records the focused id so AfterRerender can restore it.
// An id set by Anchor since the last render takes precedence.
func (c *Controller) BeforeRerender() {
	if c.hasRecorded {
		return
	}
	c.recorded, c.hasRecorded = c.id, c.active
}

// AfterRerender re-anchors focus on the new tile list and its graph.
// It returns the focused id, or false when the list is empty.
func (c *Controller) AfterRerender(tiles []screen.Screen, graph *navigation.Graph) (int, bool) {
	if graph == nil {
		graph = navigation.Build(nil, nil)
	}
	c.tiles = tiles
	c.graph = graph

	recorded, hasRecorded := c.recorded, c.hasRecorded
	c.hasRecorded = false

	if len(tiles) == 0 {
		c.clear()
		return 0, false
	}

	target := -1
	if hasRecorded {
		target = screen.IndexOf(tiles, recorded)
	}
	if target < 0 {
		for i, t := range tiles {
			if t.IsMap {
				target = i
				break
			}
		}
	}
	if target < 0 {
		target = 0
	}

	c.set(target)
	return c.id, true
}

// Anchor makes the next AfterRerender prefer id, as when returning from a
// detail view to the tile that opened it.
func (c *Controller) Anchor(id int) {
	c.recorded, c.hasRecorded = id, true
}

// Focus moves focus to the tile with the given id if it is on screen
func (c *Controller) Focus(id int) bool {
	i := screen.IndexOf(c.tiles, id)
	if i < 0 {
		return false
	}
	c.set(i)
	return true
}

// MoveFocus moves focus one step in direction d. With nothing focused the
// first tile receives focus. It reports whether focus changed.
func (c *Controller) MoveFocus(d navigation.Direction) (int, bool) {
	if c.graph.Len() == 0 {
		return 0, false
	}
	if !c.active {
		c.set(0)
		return c.id, true
	}

	if id, ok := c.graph.ID(c.index); ok && id == c.id {
		e, ok := c.graph.Neighbor(c.index, d)
		if !ok {
			return c.id, false
		}
		c.set(e.Index)
		return c.id, true
	}

	next, ok := c.graph.NeighborByID(c.id, d)
	if !ok {
		return c.id, false
	}
	i := screen.IndexOf(c.tiles, next)
	if i < 0 {
		return c.id, false
	}
	c.set(i)
	return c.id, true
}

// History returns recently focused ids, oldest first
func (c *Controller) History() []int {
	out := make([]int, len(c.history))
	copy(out, c.history)
	return out
}

// Clear drops focus and anything recorded for the next render
func (c *Controller) Clear() {
	c.clear()
	c.hasRecorded = false
}

func (c *Controller) clear() {
	c.id, c.index, c.active = 0, -1, false
}

func (c *Controller) set(i int) {
	id := c.tiles[i].ID
	changed := !c.active || c.id != id
	c.id, c.index, c.active = id, i, true
	if changed {
		c.push(id)
	}
}

func (c *Controller) push(id int) {
	c.history = append(c.history, id)
	if over := len(c.history) - c.historySize; over > 0 {
		c.history = c.history[over:]
	}
}
