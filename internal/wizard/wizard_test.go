package wizard

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/muurk/controlroom/internal/config"
	"github.com/muurk/controlroom/internal/discovery"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeText(m AppModel, text string) AppModel {
	for _, r := range text {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(AppModel)
	}
	return m
}

func send(m AppModel, msg tea.Msg) AppModel {
	next, _ := m.Update(msg)
	return next.(AppModel)
}

func noScan(context.Context) ([]*discovery.Service, error) { return nil, nil }

func TestDiscoveryScanLifecycle(t *testing.T) {
	m := New(config.Default(), "", noScan)
	m = send(m, tea.WindowSizeMsg{Width: 80, Height: 30})
	m = send(m, scanStartMsg{})

	if !m.Discovery.Scanning {
		t.Fatal("Scanning = false after scanStartMsg")
	}
	if !strings.Contains(m.View(), "SEARCHING FOR FEEDS") {
		t.Error("scanning view missing title")
	}

	svc := &discovery.Service{Instance: "lobby", IP: "10.0.0.5", Port: 8080, Path: "/screens"}
	m = send(m, scanCompleteMsg{services: []*discovery.Service{svc}})
	if m.Discovery.Scanning {
		t.Fatal("Scanning = true after scanCompleteMsg")
	}
	if got := len(m.Discovery.Services.Items()); got != 1 {
		t.Fatalf("items = %d, want 1", got)
	}

	m = send(m, keyMsg("enter"))
	if m.CurrentScreen != ScreenSettings {
		t.Fatalf("CurrentScreen = %s, want settings", m.CurrentScreen)
	}
	if got := m.Form.Inputs[fieldFeedURL].Value(); got != "http://10.0.0.5:8080" {
		t.Errorf("feed URL prefill = %q", got)
	}
}

func TestDiscoveryEmptyAndError(t *testing.T) {
	m := New(config.Default(), "", noScan)
	m = send(m, tea.WindowSizeMsg{Width: 80, Height: 30})
	m = send(m, scanCompleteMsg{})
	if !strings.Contains(m.View(), "No feed services found") {
		t.Error("empty view missing warning")
	}

	m = send(m, scanCompleteMsg{err: errors.New("multicast blocked")})
	if !strings.Contains(m.View(), "multicast blocked") {
		t.Error("error view missing scan error")
	}
}

func TestManualEntry(t *testing.T) {
	m := New(config.Default(), "", noScan)
	m = send(m, scanCompleteMsg{})
	m = send(m, keyMsg("m"))
	if !m.Discovery.ManualMode {
		t.Fatal("ManualMode = false after m")
	}

	m = typeText(m, "10.1.1.1:9000")
	m = send(m, keyMsg("enter"))
	if m.CurrentScreen != ScreenSettings {
		t.Fatalf("CurrentScreen = %s, want settings", m.CurrentScreen)
	}
	if got := m.Form.Inputs[fieldFeedURL].Value(); got != "http://10.1.1.1:9000" {
		t.Errorf("feed URL = %q, want scheme added", got)
	}
}

func TestManualEntryCancel(t *testing.T) {
	m := New(config.Default(), "", noScan)
	m = send(m, scanCompleteMsg{})
	m = send(m, keyMsg("m"))
	m = send(m, keyMsg("esc"))
	if m.Discovery.ManualMode {
		t.Error("ManualMode = true after esc")
	}
	if m.CurrentScreen != ScreenDiscovery {
		t.Errorf("CurrentScreen = %s, want discovery", m.CurrentScreen)
	}
}

func TestProgress(t *testing.T) {
	d := NewDiscoveryModel(noScan, 4*time.Second)
	start := time.Now()
	d.Scanning = true
	d.ScanStarted = start

	tests := []struct {
		after time.Duration
		want  float64
	}{
		{0, 0},
		{time.Second, 0.25},
		{4 * time.Second, 1},
		{time.Minute, 1},
	}
	for _, tt := range tests {
		if got := d.Progress(start.Add(tt.after)); got != tt.want {
			t.Errorf("Progress(+%v) = %v, want %v", tt.after, got, tt.want)
		}
	}

	d.Scanning = false
	if got := d.Progress(start.Add(time.Second)); got != 0 {
		t.Errorf("Progress when idle = %v, want 0", got)
	}
}

func TestFormApply(t *testing.T) {
	cfg := config.Default()
	f := NewFormModel(cfg, "http://feed.local")
	f.Inputs[fieldInterval].SetValue("30s")
	f.Inputs[fieldRemote].SetValue(":9999")
	f.Inputs[fieldLogLevel].SetValue("info")

	got, err := f.Apply()
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if got.Feed.URL != "http://feed.local" {
		t.Errorf("Feed.URL = %q", got.Feed.URL)
	}
	if got.Feed.Interval != 30*time.Second {
		t.Errorf("Feed.Interval = %v", got.Feed.Interval)
	}
	if !got.Remote.Enabled || got.Remote.Listen != ":9999" {
		t.Errorf("Remote = %+v", got.Remote)
	}
	if got.Log.Level != "info" {
		t.Errorf("Log.Level = %q", got.Log.Level)
	}
	if cfg.Feed.URL != "" {
		t.Error("Apply() modified the base config")
	}
}

func TestFormApplyErrors(t *testing.T) {
	tests := []struct {
		name  string
		field int
		value string
	}{
		{"bad interval", fieldInterval, "soon"},
		{"zero interval", fieldInterval, "0s"},
		{"relative URL", fieldFeedURL, "feed.local"},
		{"bad log level", fieldLogLevel, "loud"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFormModel(config.Default(), "")
			f.Inputs[tt.field].SetValue(tt.value)
			if _, err := f.Apply(); err == nil {
				t.Error("Apply() error = nil")
			}
		})
	}
}

func TestFormFocusCycles(t *testing.T) {
	f := NewFormModel(config.Default(), "")
	for i := 0; i < fieldCount; i++ {
		f, _ = f.Update(keyMsg("tab"))
	}
	if f.Focus != fieldFeedURL {
		t.Errorf("Focus = %d after a full cycle, want %d", f.Focus, fieldFeedURL)
	}
	f, _ = f.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	if f.Focus != fieldLogLevel {
		t.Errorf("Focus = %d after shift+tab, want %d", f.Focus, fieldLogLevel)
	}
}

func TestSaveWritesConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	m := NewAtSettings(config.Default(), path)
	m.Form.Inputs[fieldFeedURL].SetValue("http://10.0.0.5:8080")

	m = send(m, keyMsg("enter"))
	if m.CurrentScreen != ScreenDone {
		t.Fatalf("CurrentScreen = %s, want done (form err %v)", m.CurrentScreen, m.Form.Err)
	}
	if m.SaveErr != nil {
		t.Fatalf("SaveErr = %v", m.SaveErr)
	}

	loaded, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Feed.URL != "http://10.0.0.5:8080" {
		t.Errorf("saved Feed.URL = %q", loaded.Feed.URL)
	}
	if !strings.Contains(m.View(), "Configuration saved") {
		t.Error("done view missing confirmation")
	}
}

func TestInvalidFormStaysOnSettings(t *testing.T) {
	m := NewAtSettings(config.Default(), filepath.Join(t.TempDir(), "config.yaml"))
	m.Form.Inputs[fieldInterval].SetValue("never")

	m = send(m, keyMsg("enter"))
	if m.CurrentScreen != ScreenSettings {
		t.Fatalf("CurrentScreen = %s, want settings", m.CurrentScreen)
	}
	if m.Form.Err == nil {
		t.Error("Form.Err = nil")
	}
}

func TestSettingsBackReturnsToDiscovery(t *testing.T) {
	m := NewAtSettings(config.Default(), "")
	m.scan = noScan
	m = send(m, keyMsg("esc"))
	if m.CurrentScreen != ScreenDiscovery {
		t.Errorf("CurrentScreen = %s, want discovery", m.CurrentScreen)
	}
}

func TestCtrlCQuits(t *testing.T) {
	m := New(config.Default(), "", noScan)
	_, cmd := m.Update(keyMsg("ctrl+c"))
	if cmd == nil {
		t.Fatal("ctrl+c returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+c did not quit")
	}
}
