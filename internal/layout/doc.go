// Package layout computes the grid plan for a given number of screens.
//
// Compute is a pure, table-driven function: the same count always yields a
// structurally identical *Plan, and a count of zero yields nil (nothing to draw).
//
// # Categories
//
//   - Flow (1-6, 9, and more than 12): a plain column/row pair with per-tile
//     percentage geometry. Above 12 the grid is fixed at 4 columns.
//   - Named grids (7, 8, 10, 11, 12): fixed 4-column grids whose partial last row
//     needs explicit placement. The plan carries the mode name only; the render
//     surface owns the matching template.
//
// # Geometry
//
// For flow plans each tile is sized so that `columns` tiles and `columns-1`
// gaps exactly fill a row:
//
//	width  = 100/columns - (columns-1)/columns * gap
//	height = 100/rows    - (rows-1)/rows       * gap
//
// A plan is centered when it holds a single tile or its last row is short, so
// a partial row never hugs the start edge.
package layout
