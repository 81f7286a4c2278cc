package focus

import (
	"testing"

	"github.com/muurk/controlroom/internal/layout"
	"github.com/muurk/controlroom/internal/navigation"
	"github.com/muurk/controlroom/internal/screen"
)

func tiles(ids ...int) []screen.Screen {
	out := make([]screen.Screen, len(ids))
	for i, id := range ids {
		out[i] = screen.Screen{ID: id, IsMap: id == screen.MapID}
	}
	return out
}

func render(c *Controller, list []screen.Screen) (int, bool) {
	c.BeforeRerender()
	return c.AfterRerender(list, navigation.Build(list, layout.Compute(len(list))))
}

func TestAfterRerender_FirstRenderFocusesMap(t *testing.T) {
	c := New()
	id, ok := render(c, tiles(0, 1, 2))
	if !ok || id != 0 {
		t.Errorf("focus = %d,%v, want 0,true", id, ok)
	}
}

func TestAfterRerender_RestoresRecordedID(t *testing.T) {
	c := New()
	render(c, tiles(0, 1, 2, 3))
	c.Focus(2)

	id, ok := render(c, tiles(0, 1, 2, 3, 4))
	if !ok || id != 2 {
		t.Errorf("focus = %d,%v, want 2,true", id, ok)
	}
	if c.FocusedIndex() != 2 {
		t.Errorf("FocusedIndex() = %d, want 2", c.FocusedIndex())
	}
}

func TestAfterRerender_FocusedTileDisappears(t *testing.T) {
	c := New()
	render(c, tiles(0, 3, 5))
	if !c.Focus(5) {
		t.Fatal("Focus(5) failed")
	}

	id, ok := render(c, tiles(0, 3))
	if !ok || id != screen.MapID {
		t.Errorf("focus = %d,%v, want map tile", id, ok)
	}
}

func TestAfterRerender_FallsBackToFirstTile(t *testing.T) {
	c := New()
	render(c, tiles(4, 7))
	c.Focus(7)

	id, ok := render(c, tiles(2, 4))
	if !ok || id != 2 {
		t.Errorf("focus = %d,%v, want 2,true", id, ok)
	}
}

func TestAfterRerender_EmptyClearsFocus(t *testing.T) {
	c := New()
	render(c, tiles(0, 1))

	if _, ok := render(c, nil); ok {
		t.Error("expected no focus after empty render")
	}
	if c.FocusedIndex() != -1 {
		t.Errorf("FocusedIndex() = %d, want -1", c.FocusedIndex())
	}
}

func TestAfterRerender_Idempotent(t *testing.T) {
	c := New()
	list := tiles(0, 1, 2, 3, 4, 5, 6)
	render(c, list)
	c.Focus(4)

	for i := 0; i < 5; i++ {
		id, _ := render(c, list)
		if id != 4 {
			t.Fatalf("render %d: focus = %d, want 4", i, id)
		}
	}
	if h := c.History(); len(h) != 2 {
		t.Errorf("History() = %v, want two entries", h)
	}
}

func TestAnchor(t *testing.T) {
	c := New()
	render(c, tiles(0, 1, 2))
	c.Anchor(2)

	id, _ := render(c, tiles(0, 1, 2))
	if id != 2 {
		t.Errorf("focus = %d, want anchored 2", id)
	}
}

func TestMoveFocus(t *testing.T) {
	// 3x2: 0 1 2 / 3 4
	c := New()
	render(c, tiles(0, 1, 2, 3, 4))

	steps := []struct {
		dir    navigation.Direction
		want   int
		wantOK bool
	}{
		{navigation.Right, 1, true},
		{navigation.Down, 4, true},
		{navigation.Down, 4, false},
		{navigation.Left, 3, true},
		{navigation.Left, 2, true},
		{navigation.Up, 2, false},
		{navigation.Right, 3, true},
	}

	for i, s := range steps {
		id, ok := c.MoveFocus(s.dir)
		if id != s.want || ok != s.wantOK {
			t.Errorf("step %d MoveFocus(%s) = %d,%v, want %d,%v", i, s.dir, id, ok, s.want, s.wantOK)
		}
	}
}

func TestMoveFocus_NothingFocused(t *testing.T) {
	c := New()
	if _, ok := c.MoveFocus(navigation.Right); ok {
		t.Error("MoveFocus on empty controller should not move")
	}

	list := tiles(1, 2)
	c.AfterRerender(list, navigation.Build(list, layout.Compute(2)))
	c.Clear()
	if id, ok := c.MoveFocus(navigation.Down); !ok || id != 1 {
		t.Errorf("MoveFocus = %d,%v, want first tile", id, ok)
	}
}

func TestMoveFocus_SingleFocus(t *testing.T) {
	c := New()
	render(c, tiles(0, 1, 2, 3))
	c.MoveFocus(navigation.Right)
	c.MoveFocus(navigation.Down)

	id, ok := c.Focused()
	if !ok || id != 3 {
		t.Errorf("Focused() = %d,%v, want 3,true", id, ok)
	}
}

func TestHistory_Capped(t *testing.T) {
	c := New()
	list := make([]screen.Screen, 0, 15)
	for i := 0; i < 15; i++ {
		list = append(list, screen.Screen{ID: i, IsMap: i == 0})
	}
	render(c, list)
	for i := 0; i < 14; i++ {
		c.MoveFocus(navigation.Right)
	}

	h := c.History()
	if len(h) != DefaultHistorySize {
		t.Fatalf("len(History()) = %d, want %d", len(h), DefaultHistorySize)
	}
	if h[len(h)-1] != 14 {
		t.Errorf("last history entry = %d, want 14", h[len(h)-1])
	}
}

func TestMoveFocus_StaleIndexUsesIDFallback(t *testing.T) {
	tests := []struct {
		name   string
		graph  []screen.Screen
		want   int
		wantOK bool
	}{
		// id 1 sits at index 2 in the graph, its right neighbor is id 2
		{"neighbor on screen", tiles(0, 5, 1, 2), 2, true},
		// right of id 1 is id 9, which is not drawn
		{"neighbor not on screen", tiles(7, 0, 1, 9), 1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New()
			render(c, tiles(0, 1, 2))
			if !c.Focus(1) {
				t.Fatal("Focus(1) failed")
			}
			c.graph = navigation.Build(tt.graph, layout.Compute(len(tt.graph)))

			id, ok := c.MoveFocus(navigation.Right)
			if id != tt.want || ok != tt.wantOK {
				t.Errorf("MoveFocus(right) = %d,%v, want %d,%v", id, ok, tt.want, tt.wantOK)
			}
		})
	}
}
