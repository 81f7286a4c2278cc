// Package focus tracks which dashboard tile holds remote-control focus and
// carries that focus across re-renders.
//
// A render pass brackets the rebuild with BeforeRerender and AfterRerender.
// BeforeRerender records the focused screen id; AfterRerender looks that id up
// in the new tile list and falls back to the map tile, then the first tile,
// then no focus. Re-rendering an unchanged list never moves focus.
//
// Directional moves use the navigation graph of the current pass. The focused
// list index is tried first; when it no longer names the focused id (the list
// was reordered underneath it) the id-keyed edge table is used instead.
//
// At most one tile is focused at a time. The controller also keeps a short
// history of recently focused ids.
package focus
