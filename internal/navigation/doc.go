// Package navigation builds the directional adjacency between dashboard tiles
// so a four-direction remote can move focus without a pointer.
//
// A Graph is built once per render pass from the ordered screen list and the
// layout plan; it is replaced, never patched, on the next pass. Tiles are laid
// out row-major: list index i sits at row i/columns, column i%columns.
//
//   - Up:    i-columns when row > 0
//   - Down:  i+columns when that index exists and row < rows-1
//   - Left:  i-1 when col > 0, else the last populated index of the previous row
//   - Right: i+1 when that index exists
//
// Right has no column-boundary check: moving right from the last column
// advances into the first column of the next row. Left wraps the other way.
// Vertical moves are symmetric; horizontal ones are not guaranteed to be.
//
// Every edge also records the neighbor's screen id, and the graph keeps an
// id-keyed table, so a caller holding only a screen id from an earlier pass can
// still find the right neighbor after the list was reordered.
package navigation
