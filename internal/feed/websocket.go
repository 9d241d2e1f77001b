package feed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/food-fighter/internal/face"
)

const (
	// DefaultStaleAfter is how long a frame stays valid without a newer one.
	DefaultStaleAfter = time.Second

	readLimit    = 1 << 20
	readTimeout  = 60 * time.Second
	pingInterval = 25 * time.Second
	writeTimeout = 10 * time.Second
)

// WebSocketSource accepts frames from browser face trackers on /ws.
// Next returns the most recent frame; frames older than StaleAfter read as
// no face.
type WebSocketSource struct {
	logger     *log.Logger
	listener   net.Listener
	server     *http.Server
	upgrader   websocket.Upgrader
	staleAfter time.Duration
	now        func() time.Time

	mu       sync.Mutex
	latest   *face.Detection
	received time.Time
	frames   int
	clients  int
	closed   bool
}

// ListenWebSocket starts serving on addr ("host:port"). A port of 0 picks
// a free port; see Addr.
func ListenWebSocket(addr string, logger *log.Logger) (*WebSocketSource, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("feed: listen %s: %w", addr, err)
	}

	s := &WebSocketSource{
		logger:     logger,
		listener:   ln,
		staleAfter: DefaultStaleAfter,
		now:        time.Now,
		upgrader: websocket.Upgrader{
			// Trackers are served from local pages with arbitrary origins.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}

	r := chi.NewRouter()
	r.Use(chiMiddleware.Recoverer)
	r.Get("/ws", s.handleWS)
	r.Get("/healthz", s.handleHealth)

	s.server = &http.Server{
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("WebSocket server stopped", "error", err)
		}
	}()

	logger.Info("Waiting for face tracker", "url", "ws://"+ln.Addr().String()+"/ws")
	return s, nil
}

// Addr returns the listening address.
func (s *WebSocketSource) Addr() string {
	return s.listener.Addr().String()
}

// Next returns the latest frame, or nil if none arrived recently.
func (s *WebSocketSource) Next(ctx context.Context) (*face.Detection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, io.EOF
	}
	if s.latest == nil || s.now().Sub(s.received) > s.staleAfter {
		return nil, nil
	}
	return s.latest, nil
}

// Frames returns the number of frames received so far.
func (s *WebSocketSource) Frames() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frames
}

// Close stops the server and disconnects clients.
func (s *WebSocketSource) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

func (s *WebSocketSource) store(d *face.Detection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest = d
	s.received = s.now()
	s.frames++
}

func (s *WebSocketSource) addClient(delta int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clients += delta
	return s.clients
}

func (s *WebSocketSource) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("WebSocket upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}
	defer conn.Close()

	n := s.addClient(1)
	defer s.addClient(-1)
	s.logger.Info("Face tracker connected", "remote", r.RemoteAddr, "clients", n)

	conn.SetReadLimit(readLimit)
	_ = conn.SetReadDeadline(time.Now().Add(readTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(readTimeout))
	})

	done := make(chan struct{})
	defer close(done)
	go func() {
		ticker := time.NewTicker(pingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeTimeout)); err != nil {
					return
				}
			case <-done:
				return
			}
		}
	}()

	for {
		msgType, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn("Face tracker read failed", "remote", r.RemoteAddr, "error", err)
			}
			s.logger.Info("Face tracker disconnected", "remote", r.RemoteAddr)
			return
		}
		if msgType != websocket.TextMessage {
			continue
		}
		_ = conn.SetReadDeadline(time.Now().Add(readTimeout))

		d, err := Decode(msg)
		if err != nil {
			s.logger.Warn("Dropping malformed frame", "remote", r.RemoteAddr, "error", err)
			continue
		}
		s.store(d)
	}
}

func (s *WebSocketSource) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	body := map[string]any{"status": "ok", "clients": s.clients, "frames": s.frames}
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(body)
}
