package display

import (
	"github.com/muurk/controlroom/internal/engine"
)

// Surface holds the latest frame for View. It reports the render target as
// missing until the terminal size is known.
type Surface struct {
	width  int
	height int
	frame  engine.Frame
	has    bool
}

// NewSurface creates an empty Surface
func NewSurface() *Surface {
	return &Surface{}
}

// Render implements engine.Surface
func (s *Surface) Render(f engine.Frame) error {
	if s.width <= 0 || s.height <= 0 {
		return engine.ErrRenderTargetMissing
	}
	s.frame = f
	s.has = true
	return nil
}

// Resize records the terminal size
func (s *Surface) Resize(width, height int) {
	s.width = width
	s.height = height
}

// Size returns the terminal size
func (s *Surface) Size() (int, int) {
	return s.width, s.height
}

// Frame returns the last accepted frame
func (s *Surface) Frame() (engine.Frame, bool) {
	return s.frame, s.has
}
