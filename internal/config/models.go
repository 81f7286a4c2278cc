package config

import (
	"time"

	"github.com/muurk/controlroom/internal/engine"
	"github.com/muurk/controlroom/internal/feed"
	"github.com/muurk/controlroom/internal/layout"
)

// CurrentVersion is the config file format version
const CurrentVersion = 1

// Config represents the entire display configuration file.
type Config struct {
	Version   int             `yaml:"version"`
	Feed      FeedConfig      `yaml:"feed"`
	Discovery DiscoveryConfig `yaml:"discovery"`
	Timing    TimingConfig    `yaml:"timing"`
	Layout    LayoutConfig    `yaml:"layout"`
	Remote    RemoteConfig    `yaml:"remote"`
	Log       LogConfig       `yaml:"log"`
}

// FeedConfig describes where the active-screen list comes from.
type FeedConfig struct {
	URL        string            `yaml:"url,omitempty"`     // Feed host; empty means discover over mDNS
	Endpoint   string            `yaml:"endpoint"`          // Path of the screen list on the host
	Interval   time.Duration     `yaml:"interval"`          // Time between polls
	StartDelay time.Duration     `yaml:"start_delay"`       // Time before the first poll
	Timeout    time.Duration     `yaml:"timeout"`           // Per-request timeout
	MaxRetries int               `yaml:"max_retries"`       // Extra attempts per poll
	RetryDelay time.Duration     `yaml:"retry_delay"`       // Attempt n waits n times this
	Headers    map[string]string `yaml:"headers,omitempty"` // Added to every request
}

// DiscoveryConfig controls mDNS lookup of the feed.
type DiscoveryConfig struct {
	Enabled bool          `yaml:"enabled"` // Browse when no feed URL is set
	Timeout time.Duration `yaml:"timeout"` // How long to browse
}

// TimingConfig holds the view-switching delays.
type TimingConfig struct {
	InitialDelay    time.Duration `yaml:"initial_delay"`
	TransitionDelay time.Duration `yaml:"transition_delay"`
	GraceWindow     time.Duration `yaml:"grace_window"`
	Cooldown        time.Duration `yaml:"cooldown"`
	InputDebounce   time.Duration `yaml:"input_debounce"`
	MapReadyTimeout time.Duration `yaml:"map_ready_timeout"`
}

// LayoutConfig tunes tile placement and map movement.
type LayoutConfig struct {
	Gap     float64 `yaml:"gap"`      // Inter-tile gap in percent of the container
	PanStep int     `yaml:"pan_step"` // Map pan distance per key press
}

// RemoteConfig controls the network remote-control bridge.
type RemoteConfig struct {
	Enabled        bool     `yaml:"enabled"`
	Listen         string   `yaml:"listen"`
	AllowedOrigins []string `yaml:"allowed_origins,omitempty"` // Empty allows same-host only
}

// LogConfig controls log output.
type LogConfig struct {
	Level string `yaml:"level,omitempty"` // debug, info, warn, error; empty is silent
	File  string `yaml:"file,omitempty"`  // Required for output while the terminal display runs
}

// Default returns a Config with every default filled in.
func Default() *Config {
	t := engine.DefaultTiming()
	return &Config{
		Version: CurrentVersion,
		Feed: FeedConfig{
			Endpoint:   feed.DefaultEndpoint,
			Interval:   feed.DefaultInterval,
			StartDelay: feed.DefaultStartDelay,
			Timeout:    feed.DefaultTimeout,
			MaxRetries: feed.DefaultMaxRetries,
			RetryDelay: feed.DefaultRetryDelay,
		},
		Discovery: DiscoveryConfig{
			Enabled: true,
			Timeout: 5 * time.Second,
		},
		Timing: TimingConfig{
			InitialDelay:    t.InitialDelay,
			TransitionDelay: t.TransitionDelay,
			GraceWindow:     t.GraceWindow,
			Cooldown:        t.Cooldown,
			InputDebounce:   t.InputDebounce,
			MapReadyTimeout: t.MapReadyTimeout,
		},
		Layout: LayoutConfig{
			Gap:     layout.DefaultGap,
			PanStep: engine.DefaultPanStep,
		},
		Remote: RemoteConfig{
			Enabled: false,
			Listen:  ":8090",
		},
	}
}

// Engine converts the timing section for the view engine.
func (t TimingConfig) Engine() engine.Timing {
	return engine.Timing{
		InitialDelay:    t.InitialDelay,
		TransitionDelay: t.TransitionDelay,
		GraceWindow:     t.GraceWindow,
		Cooldown:        t.Cooldown,
		InputDebounce:   t.InputDebounce,
		MapReadyTimeout: t.MapReadyTimeout,
	}
}

// Client builds a feed client from the feed section.
func (f FeedConfig) Client(baseURL string) *feed.Client {
	c := feed.NewClient(baseURL)
	if f.Endpoint != "" {
		c.Endpoint = f.Endpoint
	}
	c.SetTimeout(f.Timeout)
	c.SetRetry(f.MaxRetries, f.RetryDelay)
	for k, v := range f.Headers {
		c.Headers[k] = v
	}
	return c
}
