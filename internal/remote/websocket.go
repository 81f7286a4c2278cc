package remote

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/muurk/controlroom/internal/engine"
	"github.com/muurk/controlroom/internal/logging"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 1024

	// Outgoing messages buffered per client
	sendBuffer = 16
)

// Message types
const (
	typeHello = "hello"
	typeFrame = "frame"
	typeKey   = "key"
	typeError = "error"
)

// message is the JSON envelope in both directions
type message struct {
	Type     string          `json:"type,omitempty"`
	ClientID string          `json:"client_id,omitempty"`
	Key      string          `json:"key,omitempty"`
	Frame    json.RawMessage `json:"frame,omitempty"`
	Error    string          `json:"error,omitempty"`
}

type client struct {
	id         string
	remoteAddr string
	conn       *websocket.Conn
	send       chan []byte
}

func (s *Server) upgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		CheckOrigin:     s.checkOrigin,
	}
}

// checkOrigin allows requests without an Origin, listed origins, or
// same-host origins when no list is configured
func (s *Server) checkOrigin(r *http.Request) bool {
	origin := strings.TrimSpace(r.Header.Get("Origin"))
	if origin == "" {
		return true
	}
	if len(s.config.AllowedOrigins) > 0 {
		for _, allowed := range s.config.AllowedOrigins {
			if allowed == "*" || strings.EqualFold(allowed, origin) {
				return true
			}
		}
		return false
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return strings.EqualFold(u.Host, r.Host)
}

func (s *Server) handleRemote(w http.ResponseWriter, r *http.Request) {
	if s.isClosed() {
		http.Error(w, "shutting down", http.StatusServiceUnavailable)
		return
	}

	upgrader := s.upgrader()
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the error response
		logging.Warn("WebSocket upgrade failed",
			zap.String("remote_addr", r.RemoteAddr),
			zap.Error(err),
		)
		return
	}

	c := &client{
		id:         uuid.NewString(),
		remoteAddr: r.RemoteAddr,
		conn:       conn,
		send:       make(chan []byte, sendBuffer),
	}

	hello, _ := json.Marshal(message{Type: typeHello, ClientID: c.id})
	c.send <- hello

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		_ = conn.Close()
		return
	}
	if s.lastFrame != nil {
		msg, _ := json.Marshal(message{Type: typeFrame, Frame: s.lastFrame})
		c.send <- msg
	}
	s.clients[c.id] = c
	s.wg.Add(1)
	s.mu.Unlock()

	logging.LogRemoteEvent(c.remoteAddr, c.id, "connected")

	go s.writePump(c)
	s.readPump(c)
}

// readPump turns client messages into engine inputs until the socket closes
func (s *Server) readPump(c *client) {
	defer func() {
		s.mu.Lock()
		s.removeLocked(c.id)
		s.mu.Unlock()
		_ = c.conn.Close()
		logging.LogRemoteEvent(c.remoteAddr, c.id, "disconnected")
		s.wg.Done()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logging.Info("Remote connection closed unexpectedly",
					zap.String("client_id", c.id),
					zap.Error(err),
				)
			}
			return
		}

		var in message
		if err := json.Unmarshal(data, &in); err != nil {
			s.reply(c, message{Type: typeError, Error: "invalid message: " + err.Error()})
			continue
		}
		if in.Type != "" && in.Type != typeKey {
			s.reply(c, message{Type: typeError, Error: "unsupported message type " + in.Type})
			continue
		}
		key, err := engine.ParseKey(in.Key)
		if err != nil {
			s.reply(c, message{Type: typeError, Error: err.Error()})
			continue
		}

		logging.Debug("Remote key received",
			zap.String("client_id", c.id),
			zap.String("key", key.String()),
		)
		s.send(engine.Input{Key: key})
	}
}

// writePump is the only writer on the socket
func (s *Server) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (s *Server) reply(c *client, m message) {
	msg, err := json.Marshal(m)
	if err != nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.clients[c.id]; !ok {
		return
	}
	select {
	case c.send <- msg:
	default:
	}
}

// removeLocked drops a client and closes its send channel. s.mu must be held.
func (s *Server) removeLocked(id string) {
	c, ok := s.clients[id]
	if !ok {
		return
	}
	delete(s.clients, id)
	close(c.send)
}

func (s *Server) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}
