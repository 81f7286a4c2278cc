package navigation

import (
	"fmt"
	"strings"

	"github.com/muurk/controlroom/internal/layout"
	"github.com/muurk/controlroom/internal/screen"
)

// Direction is one of the four remote-control directions
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Directions lists all directions in a stable order
var Directions = [...]Direction{Up, Down, Left, Right}

// String returns the lowercase direction name
func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// ParseDirection converts a direction name to a Direction
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up":
		return Up, nil
	case "down":
		return Down, nil
	case "left":
		return Left, nil
	case "right":
		return Right, nil
	default:
		return 0, fmt.Errorf("unknown direction: %q", s)
	}
}

// Edge is a resolved neighbor: its list index and its stable screen id
type Edge struct {
	Index int
	ID    int
}

type slot struct {
	edge Edge
	ok   bool
}

// Graph answers "next tile in direction D from tile T" for one render pass
type Graph struct {
	columns int
	rows    int
	ids     []int
	edges   [][4]slot
	byID    map[int][4]slot
}

// Build computes the adjacency for screens laid out by plan.
// A nil plan or empty list yields an empty graph where every query returns false.
func Build(screens []screen.Screen, plan *layout.Plan) *Graph {
	g := &Graph{byID: make(map[int][4]slot)}
	if plan == nil || plan.Columns <= 0 || len(screens) == 0 {
		return g
	}

	g.columns = plan.Columns
	g.rows = plan.Rows
	g.ids = screen.IDs(screens)
	g.edges = make([][4]slot, len(screens))

	for i := range screens {
		var row [4]slot
		for _, d := range Directions {
			if n, ok := g.compute(i, d); ok {
				row[d] = slot{edge: Edge{Index: n, ID: g.ids[n]}, ok: true}
			}
		}
		g.edges[i] = row
		g.byID[g.ids[i]] = row
	}

	return g
}

// compute applies the row-major neighbor rules for index i
func (g *Graph) compute(i int, d Direction) (int, bool) {
	length := len(g.ids)
	row, col := i/g.columns, i%g.columns

	switch d {
	case Up:
		if row > 0 {
			return i - g.columns, true
		}
	case Down:
		if n := i + g.columns; n < length && row < g.rows-1 {
			return n, true
		}
	case Left:
		if col > 0 {
			return i - 1, true
		}
		if row > 0 {
			return min(row*g.columns-1, length-1), true
		}
	case Right:
		if n := i + 1; n < length {
			return n, true
		}
	}
	return 0, false
}

// Len returns the number of tiles in the graph
func (g *Graph) Len() int {
	return len(g.ids)
}

// ID returns the screen id of the tile at index i
func (g *Graph) ID(i int) (int, bool) {
	if i < 0 || i >= len(g.ids) {
		return 0, false
	}
	return g.ids[i], true
}

// IndexOf returns the index of the tile with the given id, or -1
func (g *Graph) IndexOf(id int) int {
	for i, v := range g.ids {
		if v == id {
			return i
		}
	}
	return -1
}

// Neighbor returns the tile reached from index i in direction d
func (g *Graph) Neighbor(i int, d Direction) (Edge, bool) {
	if i < 0 || i >= len(g.edges) || d < Up || d > Right {
		return Edge{}, false
	}
	s := g.edges[i][d]
	return s.edge, s.ok
}

// NeighborByID returns the id of the tile reached from the tile with the given
// id. It is the fallback for callers whose index is stale.
func (g *Graph) NeighborByID(id int, d Direction) (int, bool) {
	row, ok := g.byID[id]
	if !ok || d < Up || d > Right {
		return 0, false
	}
	s := row[d]
	return s.edge.ID, s.ok
}

// Up returns the index above i
func (g *Graph) Up(i int) (int, bool) { return g.index(i, Up) }

// Down returns the index below i
func (g *Graph) Down(i int) (int, bool) { return g.index(i, Down) }

// Left returns the index left of i, wrapping to the previous row
func (g *Graph) Left(i int) (int, bool) { return g.index(i, Left) }

// Right returns the index right of i, continuing into the next row
func (g *Graph) Right(i int) (int, bool) { return g.index(i, Right) }

func (g *Graph) index(i int, d Direction) (int, bool) {
	e, ok := g.Neighbor(i, d)
	return e.Index, ok
}
