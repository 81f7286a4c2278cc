package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"
)

const screensYAML = `screens:
  - id: 1
    name: Traffic
    active: true
  - id: 2
    name: Weather
    active: false
`

func writeScreens(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "screens.yaml")
	writeScreens(t, path, screensYAML)

	items, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if len(items) != 2 || items[0].Name != "Traffic" || items[1].Active {
		t.Errorf("items = %+v", items)
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadFile(missing) should fail")
	}
}

func TestServer_ServesFeedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "screens.yaml")
	writeScreens(t, path, screensYAML)

	srv, err := NewServer(path, "/screens")
	if err != nil {
		t.Fatalf("NewServer() error = %v", err)
	}
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	c := newTestClient(ts.URL)
	result, err := c.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if len(result.Screens) != 2 || result.Screens[1].ID != 1 {
		t.Errorf("screens = %v, want map + Traffic", result.Screens)
	}

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz error = %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("healthz status = %d", resp.StatusCode)
	}
}

func TestServer_SetItems(t *testing.T) {
	srv, err := NewServer("", "")
	if err != nil {
		t.Fatalf("NewServer() error = %v", err)
	}
	if srv.Endpoint() != DefaultEndpoint {
		t.Errorf("Endpoint() = %s, want default", srv.Endpoint())
	}

	srv.SetItems([]Item{{ID: 4, Name: "Power", Active: true}})
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	c := NewClient(ts.URL)
	c.SetRetry(0, 0)
	result, err := c.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if len(result.Screens) != 2 || result.Screens[1].DisplayName != "Power" {
		t.Errorf("screens = %v", result.Screens)
	}
}

func TestServer_WatchReloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "screens.yaml")
	writeScreens(t, path, screensYAML)

	srv, err := NewServer(path, "/screens")
	if err != nil {
		t.Fatalf("NewServer() error = %v", err)
	}
	reloaded := make(chan int, 4)
	srv.OnReload(func(n int) { reloaded <- n })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = srv.Watch(ctx) }()

	// give the watcher a moment to register
	time.Sleep(50 * time.Millisecond)
	writeScreens(t, path, "screens:\n  - id: 9\n    name: Gate\n    active: true\n")

	select {
	case n := <-reloaded:
		if n != 1 {
			t.Errorf("reloaded %d screens, want 1", n)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("screens file change was not picked up")
	}

	items := srv.Items()
	if len(items) != 1 || items[0].ID != 9 {
		t.Errorf("Items() = %+v, want id 9", items)
	}
}

func TestServer_BadReloadKeepsPrevious(t *testing.T) {
	path := filepath.Join(t.TempDir(), "screens.yaml")
	writeScreens(t, path, screensYAML)
	srv, err := NewServer(path, "")
	if err != nil {
		t.Fatalf("NewServer() error = %v", err)
	}

	writeScreens(t, path, "screens: [oops")
	if err := srv.Reload(); err == nil {
		t.Fatal("Reload() should fail on bad YAML")
	}
	if len(srv.Items()) != 2 {
		t.Errorf("Items() = %v, want previous list kept", srv.Items())
	}
}
