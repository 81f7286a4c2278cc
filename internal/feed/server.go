package feed

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/muurk/controlroom/internal/logging"
)

// reloadDebounce absorbs the burst of events an editor save produces
const reloadDebounce = 200 * time.Millisecond

// File is the YAML screens file served by the demo feed
type File struct {
	Screens []Item `yaml:"screens"`
}

// LoadFile reads a screens file
func LoadFile(path string) ([]Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read screens file: %w", err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse screens file: %w", err)
	}
	return f.Screens, nil
}

// Server serves a screens file in the feed wire format
type Server struct {
	path     string
	endpoint string

	mu      sync.RWMutex
	items   []Item
	reloads int

	// onReload, when set, is called after each successful reload
	onReload func(count int)
}

// NewServer creates a feed server for the screens file at path. An empty
// path starts with no screens; use SetItems to populate it.
func NewServer(path, endpoint string) (*Server, error) {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	s := &Server{path: path, endpoint: endpoint}
	if path != "" {
		if err := s.Reload(); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Endpoint returns the path the screen list is served on
func (s *Server) Endpoint() string { return s.endpoint }

// OnReload registers a callback for successful reloads
func (s *Server) OnReload(fn func(count int)) {
	s.mu.Lock()
	s.onReload = fn
	s.mu.Unlock()
}

// Reload re-reads the screens file
func (s *Server) Reload() error {
	items, err := LoadFile(s.path)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.items = items
	s.reloads++
	fn := s.onReload
	s.mu.Unlock()

	logging.Info("Screens file loaded",
		zap.String("path", s.path),
		zap.Int("screens", len(items)),
	)
	if fn != nil {
		fn(len(items))
	}
	return nil
}

// SetItems replaces the served screens
func (s *Server) SetItems(items []Item) {
	s.mu.Lock()
	s.items = append([]Item(nil), items...)
	s.mu.Unlock()
}

// Items returns a copy of the served screens
func (s *Server) Items() []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Item(nil), s.items...)
}

// Handler returns the HTTP routes of the feed
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(logging.Middleware)
	r.Get(s.endpoint, s.handleScreens)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return r
}

func (s *Server) handleScreens(w http.ResponseWriter, _ *http.Request) {
	body, err := Encode(s.Items())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(body)
}

// Watch reloads the screens file whenever it changes, until ctx is done.
// The parent directory is watched so editors that replace the file by
// rename are picked up.
func (s *Server) Watch(ctx context.Context) error {
	if s.path == "" {
		<-ctx.Done()
		return ctx.Err()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	dir := filepath.Dir(s.path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	logging.Info("Watching screens file for changes", zap.String("path", s.path))

	target := filepath.Clean(s.path)
	var debounce *time.Timer
	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(reloadDebounce, func() {
				if err := s.Reload(); err != nil {
					logging.Warn("Screens file reload failed, keeping previous list", zap.Error(err))
				}
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logging.Warn("Screens file watcher error", zap.Error(err))
		}
	}
}
