// Package logging provides structured logging for the control room display.
//
// This package wraps a zap logger with convenience functions for the common
// logging patterns of the display: feed snapshots, view transitions, ignored
// input, remote-control clients and HTTP requests.
//
// # Log Levels
//
//   - Debug: Ignored input, timer firings, per-tile render details
//   - Info: View transitions, feed (re)connection, remote clients joining
//   - Warn: Feed errors, dropped screen entries, render target missing
//   - Error: Startup failures
//
// # Structured Logging
//
// All log functions use structured fields:
//
//	logging.Info("Feed snapshot applied",
//	    zap.Int("screens", 4),
//	    zap.String("state", "dashboard"),
//	)
//
// # Specialized Logging
//
//	logging.LogSnapshot(len(screens), err)
//	logging.LogTransition("map", "dashboard", "feed")
//	logging.LogIgnored("back", "map", "no rule")
//	logging.LogRemoteEvent(remoteAddr, clientID, "joined")
//
// # Configuration
//
// Logging is silent unless a level is given, either directly or through the
// CONTROLROOM_LOG_LEVEL environment variable:
//
//	if err := logging.Initialize("debug"); err != nil {
//	    log.Fatal(err)
//	}
//	defer logging.Sync()
//
// The terminal display owns stdout, so when it runs logs go to a file:
//
//	logging.InitializeWithOutput("info", "/tmp/controlroom.log")
//
// # Thread Safety
//
// All logging functions are safe for concurrent use. The underlying zap logger
// handles synchronization automatically.
package logging
