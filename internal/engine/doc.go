// Package engine decides which view the display shows and when it changes.
//
// A Context owns the canonical screen list, the view state, the map lock and
// every timer. All state changes go through Dispatch, which accepts a closed
// set of events:
//
//   - Start: begins the Loading phase
//   - Snapshot: one feed response, replacing the screen list wholesale
//   - Input: a normalized remote-control key
//   - MapReady: the map collaborator finished initializing
//   - Render: re-emit the current frame (resize, surface reattached)
//
// Dispatch is not safe for concurrent use. The host runs it from a single
// loop: a Bubble Tea update function, the Run helper, or a test. Timers never
// touch the Context directly; a Scheduler delivers the fired event back to
// the host, which dispatches it like any other event.
//
// # Views
//
// Loading moves to Map once after the initial delay (and the map reporting
// ready, or the ready timeout expiring). From Map a snapshot with at least one
// non-map screen schedules Dashboard after the transition delay. An empty or
// map-only snapshot sends Dashboard straight back to Map. Detail is entered by
// selecting a tile and always returns to Dashboard, except for the quick-select
// 0 shortcut which opens the map.
//
// # Guards
//
// Explicitly opening the map sets a lock so the next feed tick does not bounce
// back to the dashboard; the first snapshot with content clears it. Feed-driven
// switches are suppressed during a grace window after Start and limited to one
// per cooldown. Every scheduled switch carries a generation and is cancelled by
// the next snapshot. While a transition is in flight remote input is dropped
// and a due switch is parked until it settles.
//
// # Rendering
//
// Every change emits a Frame to the Surface. A surface that reports
// ErrRenderTargetMissing leaves the engine inert for that frame only; the
// next render tries again.
package engine
