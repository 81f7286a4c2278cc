// Package display is the terminal render surface of the control room.
//
// It runs a Bubble Tea program that owns the engine: every key press, feed
// snapshot and timer firing arrives as a tea.Msg and is dispatched to the
// engine on the program's goroutine, so the engine never sees concurrent
// calls. The engine renders frames into a Surface; View draws the latest one.
//
// # Views
//
//   - Loading: spinner until the map reports ready
//   - Map: a pannable, zoomable ASCII grid (MapView)
//   - Dashboard: one bordered tile per screen, laid out from the layout plan
//   - Detail: the selected screen with a 2x2 widget grid
//
// Flow plans size tiles from the plan's percentages. Named grids (grid-7,
// grid-8, grid-10, grid-11, grid-12) use a fixed template that offsets the
// short last row by half cells so it sits centred without stretching.
//
// # Keys
//
// Arrows or hjkl move, enter selects, esc or backspace goes back, digits
// quick-select, ? toggles help and q quits.
//
// Logging must go to a file while the program runs; zap output on stdout
// would corrupt the screen.
package display
