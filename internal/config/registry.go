package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	appName    = "controlroom"
	configFile = "config.yaml"
)

// Mutex for thread-safe file operations
var fileMutex sync.Mutex

// GetConfigDir returns the OS-appropriate configuration directory for the application.
//   - Linux: $XDG_CONFIG_HOME/controlroom or $HOME/.config/controlroom
//   - macOS: $HOME/.config/controlroom
//   - Windows: %LOCALAPPDATA%\controlroom
func GetConfigDir() (string, error) {
	var baseDir string

	switch runtime.GOOS {
	case "windows":
		localAppData := os.Getenv("LOCALAPPDATA")
		if localAppData == "" {
			userProfile := os.Getenv("USERPROFILE")
			if userProfile == "" {
				return "", fmt.Errorf("cannot determine user profile directory (LOCALAPPDATA and USERPROFILE not set)")
			}
			baseDir = filepath.Join(userProfile, "AppData", "Local", appName)
		} else {
			baseDir = filepath.Join(localAppData, appName)
		}

	case "darwin":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		baseDir = filepath.Join(homeDir, ".config", appName)

	default:
		xdgConfigHome := os.Getenv("XDG_CONFIG_HOME")
		if xdgConfigHome != "" {
			baseDir = filepath.Join(xdgConfigHome, appName)
		} else {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("cannot determine home directory: %w", err)
			}
			baseDir = filepath.Join(homeDir, ".config", appName)
		}
	}

	return baseDir, nil
}

// GetConfigPath returns the full path to the default configuration file.
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, configFile), nil
}

func resolvePath(path string) (string, error) {
	if path != "" {
		return path, nil
	}
	p, err := GetConfigPath()
	if err != nil {
		return "", fmt.Errorf("failed to get config path: %w", err)
	}
	return p, nil
}

// Load reads the configuration at path (the default location when empty).
// A missing file yields Default(). Keys absent from the file keep their
// default values.
func Load(path string) (*Config, error) {
	configPath, err := resolvePath(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()

	data, err := os.ReadFile(configPath)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if cfg.Version != CurrentVersion {
		return nil, fmt.Errorf("unsupported config version: %d (expected %d)", cfg.Version, CurrentVersion)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", configPath, err)
	}

	return cfg, nil
}

// Save writes the configuration to path (the default location when empty).
// Performs an atomic write to prevent corruption on crash.
func (c *Config) Save(path string) error {
	fileMutex.Lock()
	defer fileMutex.Unlock()

	configPath, err := resolvePath(path)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte(`# Control Room Display Configuration
# Durations use Go syntax (500ms, 2s, 1m). Command-line flags override
# the values in this file.
#
# Location: ` + configPath + `

`)
	data = append(header, data...)

	tmpPath := configPath + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write temporary config file: %w", err)
	}

	if err := os.Rename(tmpPath, configPath); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to save config file: %w", err)
	}

	return nil
}

// Validate checks that every value is usable.
func (c *Config) Validate() error {
	if c.Feed.URL != "" {
		u, err := url.Parse(c.Feed.URL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("feed.url %q is not an absolute URL", c.Feed.URL)
		}
	}
	if c.Feed.Interval <= 0 {
		return fmt.Errorf("feed.interval must be positive")
	}
	if c.Feed.MaxRetries < 0 {
		return fmt.Errorf("feed.max_retries must not be negative")
	}

	durations := map[string]time.Duration{
		"feed.start_delay":         c.Feed.StartDelay,
		"feed.timeout":             c.Feed.Timeout,
		"feed.retry_delay":         c.Feed.RetryDelay,
		"discovery.timeout":        c.Discovery.Timeout,
		"timing.initial_delay":     c.Timing.InitialDelay,
		"timing.transition_delay":  c.Timing.TransitionDelay,
		"timing.grace_window":      c.Timing.GraceWindow,
		"timing.cooldown":          c.Timing.Cooldown,
		"timing.input_debounce":    c.Timing.InputDebounce,
		"timing.map_ready_timeout": c.Timing.MapReadyTimeout,
	}
	for name, d := range durations {
		if d < 0 {
			return fmt.Errorf("%s must not be negative", name)
		}
	}

	if c.Layout.Gap < 0 || c.Layout.Gap >= 25 {
		return fmt.Errorf("layout.gap must be between 0 and 25 percent")
	}
	if c.Layout.PanStep <= 0 {
		return fmt.Errorf("layout.pan_step must be positive")
	}
	if c.Remote.Enabled && c.Remote.Listen == "" {
		return fmt.Errorf("remote.listen is required when the remote is enabled")
	}
	return nil
}
