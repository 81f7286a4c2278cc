package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

func TestGetConfigDir(t *testing.T) {
	configDir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() error = %v", err)
	}

	if !strings.Contains(configDir, "controlroom") {
		t.Errorf("GetConfigDir() = %v, should contain 'controlroom'", configDir)
	}

	switch runtime.GOOS {
	case "darwin", "linux":
		if os.Getenv("XDG_CONFIG_HOME") == "" && !strings.Contains(configDir, ".config") {
			t.Errorf("Unix config dir should contain '.config', got: %v", configDir)
		}
	}
}

func TestGetConfigDir_XDG(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG_CONFIG_HOME applies to linux")
	}
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	got, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() error = %v", err)
	}
	if got != filepath.Join(dir, "controlroom") {
		t.Errorf("GetConfigDir() = %s, want under %s", got, dir)
	}
}

func TestGetConfigPath(t *testing.T) {
	configPath, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() error = %v", err)
	}
	if filepath.Base(configPath) != "config.yaml" {
		t.Errorf("GetConfigPath() should end with 'config.yaml', got: %v", configPath)
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Version != 1 {
		t.Errorf("Version = %d, want 1", cfg.Version)
	}
	if cfg.Feed.Interval != 2*time.Second {
		t.Errorf("Feed.Interval = %v, want 2s", cfg.Feed.Interval)
	}
	if cfg.Timing.GraceWindow != 3500*time.Millisecond {
		t.Errorf("Timing.GraceWindow = %v, want 3.5s", cfg.Timing.GraceWindow)
	}
	if cfg.Timing.Cooldown != 3*time.Second {
		t.Errorf("Timing.Cooldown = %v, want 3s", cfg.Timing.Cooldown)
	}
	if cfg.Remote.Enabled {
		t.Error("Remote should be disabled by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default().Validate() error = %v", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Feed.MaxRetries != Default().Feed.MaxRetries {
		t.Errorf("missing file should give defaults, got %+v", cfg.Feed)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "version: 1\nfeed:\n  url: http://10.0.0.5:8080\n  interval: 5s\ntiming:\n  cooldown: 10s\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Feed.URL != "http://10.0.0.5:8080" {
		t.Errorf("Feed.URL = %q", cfg.Feed.URL)
	}
	if cfg.Feed.Interval != 5*time.Second {
		t.Errorf("Feed.Interval = %v, want 5s", cfg.Feed.Interval)
	}
	if cfg.Timing.Cooldown != 10*time.Second {
		t.Errorf("Timing.Cooldown = %v, want 10s", cfg.Timing.Cooldown)
	}
	if cfg.Timing.TransitionDelay != 300*time.Millisecond {
		t.Errorf("Timing.TransitionDelay = %v, want default 300ms", cfg.Timing.TransitionDelay)
	}
}

func TestLoad_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"version", "version: 2\n"},
		{"yaml", "version: [1\n"},
		{"url", "version: 1\nfeed:\n  url: not a url\n"},
		{"interval", "version: 1\nfeed:\n  interval: 0s\n"},
		{"negative", "version: 1\ntiming:\n  cooldown: -1s\n"},
		{"gap", "version: 1\nlayout:\n  gap: 40\n"},
		{"remote", "version: 1\nremote:\n  enabled: true\n  listen: \"\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0600); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("Load() should fail")
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Feed.URL = "http://feed.local:9000"
	cfg.Feed.Headers = map[string]string{"X-Display": "lobby"}
	cfg.Timing.GraceWindow = 1500 * time.Millisecond
	cfg.Remote.Enabled = true

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temporary file left behind")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "# Control Room Display Configuration") {
		t.Error("saved file should start with the header comment")
	}
	if !strings.Contains(string(data), "grace_window: 1.5s") {
		t.Errorf("durations should be written as strings:\n%s", data)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Feed.URL != cfg.Feed.URL || loaded.Feed.Headers["X-Display"] != "lobby" {
		t.Errorf("Feed = %+v", loaded.Feed)
	}
	if loaded.Timing.GraceWindow != cfg.Timing.GraceWindow || !loaded.Remote.Enabled {
		t.Errorf("round trip lost values: %+v", loaded)
	}
}

func TestTimingConfig_Engine(t *testing.T) {
	cfg := Default()
	cfg.Timing.InputDebounce = 250 * time.Millisecond

	got := cfg.Timing.Engine()
	if got.InputDebounce != 250*time.Millisecond || got.GraceWindow != cfg.Timing.GraceWindow {
		t.Errorf("Engine() = %+v", got)
	}
}

func TestFeedConfig_Client(t *testing.T) {
	cfg := Default()
	cfg.Feed.Endpoint = "/screens"
	cfg.Feed.Timeout = 7 * time.Second
	cfg.Feed.Headers = map[string]string{"ngrok-skip-browser-warning": "true"}

	c := cfg.Feed.Client("http://feed.local")
	if c.URL() != "http://feed.local/screens" {
		t.Errorf("URL() = %s", c.URL())
	}
	if c.HTTPClient.Timeout != 7*time.Second {
		t.Errorf("Timeout = %v", c.HTTPClient.Timeout)
	}
	if c.Headers["ngrok-skip-browser-warning"] != "true" || c.Headers["Accept"] == "" {
		t.Errorf("Headers = %v", c.Headers)
	}
}
