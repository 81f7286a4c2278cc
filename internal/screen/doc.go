// Package screen defines the Screen value shared by every part of the display
// engine and the normalization that turns one raw feed snapshot into the
// canonical, ordered screen list.
//
// # Canonical list
//
// A canonical list is never patched. Each feed snapshot produces a fresh slice:
//
//   - entries that are not active are skipped
//   - malformed entries (missing or negative id, duplicate id) are dropped one
//     by one and reported as *EntryError values; the rest of the snapshot survives
//   - the result is sorted by id
//   - the map screen (id 0) is prepended when the list is non-empty and the feed
//     did not include it
//
// An empty snapshot stays empty; the map screen is only synthesized alongside
// at least one real entry.
//
// # Usage Example
//
//	screens, problems := screen.Normalize(entries)
//	for _, p := range problems {
//	    logging.Debug("dropped feed entry", zap.Error(p))
//	}
//	if screen.IsMapOnly(screens) {
//	    // treated as empty for view selection
//	}
package screen
