// Package config manages the display configuration file.
//
// The configuration is a versioned YAML file describing the feed, discovery,
// view timings, layout and the optional remote-control bridge. Durations are
// written in Go syntax ("500ms", "2s").
//
// # Configuration File Location
//
//   - Linux: $XDG_CONFIG_HOME/controlroom/config.yaml or $HOME/.config/controlroom/config.yaml
//   - macOS: $HOME/.config/controlroom/config.yaml
//   - Windows: %LOCALAPPDATA%\controlroom\config.yaml
//
// # Usage Example
//
//	cfg, err := config.Load("") // default location; missing file gives defaults
//	if err != nil {
//	    log.Fatal(err)
//	}
//	ctx := engine.New(engine.Options{Timing: cfg.Timing.Engine()})
//
// # File Format
//
//	version: 1
//	feed:
//	  url: http://10.0.0.5:8080
//	  interval: 2s
//	timing:
//	  grace_window: 3.5s
//	  cooldown: 3s
//	remote:
//	  enabled: true
//	  listen: :8090
//
// # Atomic Writes
//
// Save writes to a temporary file and renames it into place so a crash never
// leaves a truncated configuration behind.
package config
