package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

// Websocket settings
const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// ServerConfig holds configuration for the spectator server.
type ServerConfig struct {
	// Address is the host:port to listen on (e.g., ":8080").
	Address string

	// Arena configures the games being streamed.
	Arena ArenaConfig

	// Logger receives server logs. Nil discards them.
	Logger *log.Logger
}

// Server streams arena games over websockets.
type Server struct {
	config ServerConfig
	hub    *Hub
	arena  *Arena
	logger *log.Logger
}

// NewServer creates a spectator server with its own arena.
func NewServer(cfg ServerConfig) (*Server, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if cfg.Arena.Logger == nil {
		cfg.Arena.Logger = logger
	}

	hub := NewHub()
	arena, err := NewArena(cfg.Arena, hub)
	if err != nil {
		return nil, err
	}
	return &Server{config: cfg, hub: hub, arena: arena, logger: logger}, nil
}

// Arena returns the arena the server streams.
func (s *Server) Arena() *Arena {
	return s.arena
}

// Handler returns the HTTP routes: /ws for spectators, /health and
// /stats.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/stats", s.handleStats)
	return mux
}

// ListenAndServe plays arena rounds and serves spectators until ctx is
// canceled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		return fmt.Errorf("web: cannot listen on %s: %w", s.config.Address, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is ListenAndServe on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	httpSrv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	arenaDone := make(chan error, 1)
	go func() {
		arenaDone <- s.arena.Run(ctx)
	}()

	serveDone := make(chan error, 1)
	go func() {
		s.logger.Info("spectator server listening", "address", ln.Addr().String())
		serveDone <- httpSrv.Serve(ln)
	}()

	var err error
	arenaFinished := false
	select {
	case <-ctx.Done():
	case err = <-arenaDone:
		arenaFinished = true
	case err = <-serveDone:
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
	}

	cancel()
	shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
	defer stop()
	if shutdownErr := httpSrv.Shutdown(shutdownCtx); shutdownErr != nil && err == nil {
		err = shutdownErr
	}
	if !arenaFinished {
		if arenaErr := <-arenaDone; arenaErr != nil && err == nil {
			err = arenaErr
		}
	}
	return err
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "err", err)
		return
	}

	id, frames := s.hub.Register()
	s.logger.Info("spectator joined", "id", id, "remote", r.RemoteAddr)

	c := &spectator{id: id, conn: conn, frames: frames, hub: s.hub, logger: s.logger}
	go c.writePump(s.arena.Snapshot())
	go c.readPump()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// Stats is the /stats response.
type Stats struct {
	Spectators int    `json:"spectators"`
	Rounds     int    `json:"rounds"`
	Round      int    `json:"round"`
	Score      int    `json:"score"`
	Status     string `json:"status"`
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	snap := s.arena.Snapshot()
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(Stats{
		Spectators: s.hub.Count(),
		Rounds:     s.arena.Rounds(),
		Round:      snap.Round,
		Score:      snap.Score,
		Status:     snap.Status,
	})
}

// spectator relays hub frames to one websocket.
type spectator struct {
	id     int
	conn   *websocket.Conn
	frames <-chan Frame
	hub    *Hub
	logger *log.Logger
}

// readPump discards client messages and notices disconnects.
func (c *spectator) readPump() {
	defer func() {
		c.hub.Unregister(c.id)
		_ = c.conn.Close()
		c.logger.Info("spectator left", "id", c.id)
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Debug("websocket read error", "id", c.id, "err", err)
			}
			return
		}
	}
}

// writePump sends the snapshot, then every hub frame, with periodic pings.
func (c *spectator) writePump(first Frame) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := c.conn.WriteJSON(first); err != nil {
		c.logger.Debug("write snapshot failed", "id", c.id, "err", err)
		return
	}

	for {
		select {
		case f, ok := <-c.frames:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(f); err != nil {
				c.logger.Debug("write frame failed", "id", c.id, "err", err)
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
