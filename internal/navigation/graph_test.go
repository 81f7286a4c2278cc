package navigation

import (
	"testing"

	"github.com/muurk/controlroom/internal/layout"
	"github.com/muurk/controlroom/internal/screen"
)

func makeScreens(ids ...int) []screen.Screen {
	out := make([]screen.Screen, len(ids))
	for i, id := range ids {
		out[i] = screen.Screen{ID: id, IsMap: id == screen.MapID}
	}
	return out
}

func sequential(n int) []screen.Screen {
	ids := make([]int, n)
	for i := range ids {
		ids[i] = i
	}
	return makeScreens(ids...)
}

func TestBuild_Empty(t *testing.T) {
	g := Build(nil, layout.Compute(0))
	if g.Len() != 0 {
		t.Errorf("Len() = %d, want 0", g.Len())
	}
	for _, d := range Directions {
		if _, ok := g.Neighbor(0, d); ok {
			t.Errorf("Neighbor(0, %s) ok on empty graph", d)
		}
	}
	if _, ok := g.NeighborByID(0, Right); ok {
		t.Error("NeighborByID on empty graph should be false")
	}
}

func TestBuild_FiveTiles(t *testing.T) {
	// 3x2:
	//   0 1 2
	//   3 4
	g := Build(sequential(5), layout.Compute(5))

	tests := []struct {
		index  int
		dir    Direction
		want   int
		wantOK bool
	}{
		{0, Up, 0, false},
		{0, Down, 3, true},
		{2, Down, 0, false}, // index 5 does not exist
		{4, Up, 1, true},
		{0, Left, 0, false},
		{3, Left, 2, true}, // wraps to last of previous row
		{1, Left, 0, true},
		{2, Right, 3, true}, // no column-boundary check
		{4, Right, 0, false},
		{3, Down, 0, false},
	}

	for _, tt := range tests {
		e, ok := g.Neighbor(tt.index, tt.dir)
		if ok != tt.wantOK || (ok && e.Index != tt.want) {
			t.Errorf("Neighbor(%d, %s) = (%d, %v), want (%d, %v)", tt.index, tt.dir, e.Index, ok, tt.want, tt.wantOK)
		}
	}
}

func TestGraph_VerticalSymmetry(t *testing.T) {
	for n := 1; n <= 20; n++ {
		g := Build(sequential(n), layout.Compute(n))
		for i := 0; i < n; i++ {
			if d, ok := g.Down(i); ok {
				if u, ok := g.Up(d); !ok || u != i {
					t.Errorf("n=%d: Up(Down(%d)) = %d,%v, want %d", n, i, u, ok, i)
				}
			}
			if u, ok := g.Up(i); ok {
				if d, ok := g.Down(u); !ok || d != i {
					t.Errorf("n=%d: Down(Up(%d)) = %d,%v, want %d", n, i, d, ok, i)
				}
			}
		}
	}
}

func TestGraph_RightCrossesRowBoundary(t *testing.T) {
	// 2x2: right from the end of row 0 lands on the start of row 1,
	// and left from there wraps back, but that is not guaranteed in general.
	g := Build(sequential(4), layout.Compute(4))

	r, ok := g.Right(1)
	if !ok || r != 2 {
		t.Fatalf("Right(1) = %d,%v, want 2,true", r, ok)
	}

	// 3x2 with 5 tiles: Left(3) wraps to 2, Right(2) is 3
	g = Build(sequential(5), layout.Compute(5))
	if l, _ := g.Left(3); l != 2 {
		t.Errorf("Left(3) = %d, want 2", l)
	}

	// 4x3 with 10 tiles: Left(8) wraps to 7; Right(7) is 8
	g = Build(sequential(10), layout.Compute(10))
	if l, _ := g.Left(8); l != 7 {
		t.Errorf("Left(8) = %d, want 7", l)
	}
	if r, _ := g.Right(3); r != 4 {
		t.Errorf("Right(3) = %d, want 4", r)
	}
}

func TestGraph_EdgesCarryIDs(t *testing.T) {
	g := Build(makeScreens(0, 3, 4, 9), layout.Compute(4))

	e, ok := g.Neighbor(0, Down)
	if !ok || e.Index != 2 || e.ID != 4 {
		t.Errorf("Neighbor(0, Down) = %+v, want {Index:2 ID:4}", e)
	}

	id, ok := g.NeighborByID(3, Down)
	if !ok || id != 9 {
		t.Errorf("NeighborByID(3, Down) = %d,%v, want 9,true", id, ok)
	}

	if _, ok := g.NeighborByID(42, Up); ok {
		t.Error("NeighborByID(unknown) should be false")
	}
	if g.IndexOf(9) != 3 {
		t.Errorf("IndexOf(9) = %d, want 3", g.IndexOf(9))
	}
}

func TestParseDirection(t *testing.T) {
	for _, d := range Directions {
		got, err := ParseDirection(d.String())
		if err != nil || got != d {
			t.Errorf("ParseDirection(%q) = %v, %v", d.String(), got, err)
		}
	}
	if _, err := ParseDirection("sideways"); err == nil {
		t.Error("ParseDirection(sideways) should fail")
	}
}
