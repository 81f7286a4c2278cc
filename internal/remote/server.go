package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/muurk/controlroom/internal/engine"
	"github.com/muurk/controlroom/internal/logging"
)

// Config holds the server configuration
type Config struct {
	Listen         string
	AllowedOrigins []string // empty allows same-host origins only
}

// Server bridges network clients to the engine
type Server struct {
	config  *Config
	deliver func(engine.Event)
	metrics http.Handler

	mu        sync.Mutex
	clients   map[string]*client
	lastFrame []byte
	closed    bool
	wg        sync.WaitGroup

	httpServer *http.Server
	listener   net.Listener
}

// New creates a Server. deliver hands events to the host loop.
func New(config *Config, deliver func(engine.Event)) *Server {
	if config == nil {
		config = &Config{}
	}
	return &Server{
		config:  config,
		deliver: deliver,
		clients: make(map[string]*client),
	}
}

// SetMetrics mounts h at /metrics
func (s *Server) SetMetrics(h http.Handler) {
	s.metrics = h
}

// Handler returns the HTTP routes
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(logging.Middleware)

	r.Get("/remote", s.handleRemote)
	r.Get("/frame", s.handleFrame)
	r.Post("/input", s.handleInput)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	})
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}
	return r
}

// Start listens on the configured address and serves until ctx is done
func (s *Server) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.config.Listen)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.config.Listen, err)
	}
	s.listener = listener
	s.httpServer = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	logging.Info("Remote control listening", zap.String("addr", listener.Addr().String()))

	errChan := make(chan error, 1)
	go func() {
		errChan <- s.httpServer.Serve(listener)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.Shutdown(shutdownCtx)
	case err := <-errChan:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// Addr returns the bound address once Start has run
func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Shutdown stops accepting requests and closes every socket
func (s *Server) Shutdown(ctx context.Context) error {
	logging.Info("Shutting down remote control...")

	var err error
	if s.httpServer != nil {
		err = s.httpServer.Shutdown(ctx)
	}

	// hijacked sockets are not tracked by http.Server
	s.mu.Lock()
	s.closed = true
	for id, c := range s.clients {
		logging.LogRemoteEvent(c.remoteAddr, id, "closing")
		_ = c.conn.Close()
	}
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		logging.Warn("Shutdown timeout, forcing close")
	}
	return err
}

// ActiveClients returns the number of connected sockets
func (s *Server) ActiveClients() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

// Publish stores f as the latest frame and sends it to every socket
func (s *Server) Publish(f engine.Frame) {
	frame, err := json.Marshal(f)
	if err != nil {
		logging.Error("Failed to encode frame", zap.Error(err))
		return
	}
	msg, err := json.Marshal(message{Type: typeFrame, Frame: frame})
	if err != nil {
		logging.Error("Failed to encode frame message", zap.Error(err))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastFrame = frame
	for id, c := range s.clients {
		select {
		case c.send <- msg:
		default:
			logging.LogRemoteEvent(c.remoteAddr, id, "dropped_slow_client")
			s.removeLocked(id)
		}
	}
}

// Surface wraps next so every accepted frame is also published. A nil next
// makes the remote the only surface.
func (s *Server) Surface(next engine.Surface) engine.Surface {
	return &broadcastSurface{next: next, server: s}
}

type broadcastSurface struct {
	next   engine.Surface
	server *Server
}

func (b *broadcastSurface) Render(f engine.Frame) error {
	if b.next != nil {
		if err := b.next.Render(f); err != nil {
			return err
		}
	}
	b.server.Publish(f)
	return nil
}

func (s *Server) handleFrame(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	frame := s.lastFrame
	s.mu.Unlock()

	if frame == nil {
		http.Error(w, "no frame rendered yet", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(frame)
}

func (s *Server) handleInput(w http.ResponseWriter, r *http.Request) {
	var in message
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxMessageSize)).Decode(&in); err != nil {
		http.Error(w, "invalid body: "+err.Error(), http.StatusBadRequest)
		return
	}
	key, err := engine.ParseKey(in.Key)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.send(engine.Input{Key: key})
	w.WriteHeader(http.StatusAccepted)
}

func (s *Server) send(ev engine.Event) {
	if s.deliver != nil {
		s.deliver(ev)
	}
}
