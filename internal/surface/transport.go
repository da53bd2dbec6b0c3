package surface

import (
	"fmt"
	"net"
	"net/http"
	"sync"

	"github.com/atomfield/reelcode/internal/logging"
	"github.com/atomfield/reelcode/internal/logging/events"
	"github.com/gorilla/websocket"
)

// EventKind labels transport lifecycle events.
type EventKind int

const (
	KindConnected EventKind = iota
	KindMessage
	KindDisconnected
)

// Event conveys a connection change or inbound message text from the
// transport. Consumers marshal these onto the UI task stream before touching
// shared state.
type Event struct {
	Kind EventKind
	Text string
	Err  error
}

// Server owns the local websocket endpoint the embedded surface connects to.
// At most one connection is live; a newly accepted connection replaces the
// previous one, which models a surface reload.
type Server struct {
	upgrader websocket.Upgrader
	server   *http.Server
	addr     string

	mu   sync.Mutex
	conn *websocket.Conn

	events chan Event
	done   chan struct{}
	once   sync.Once
}

// NewServer prepares a server for the given listen address.
func NewServer(addr string) *Server {
	return &Server{
		// The surface page is served locally; origin checks do not apply.
		upgrader: websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }},
		addr:     addr,
		events:   make(chan Event, 16),
		done:     make(chan struct{}),
	}
}

// Start binds the listener and begins accepting surface connections on
// /surface.
func (s *Server) Start() error {
	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.addr, err)
	}
	s.addr = listener.Addr().String()
	mux := http.NewServeMux()
	mux.HandleFunc("/surface", s.handleSurface)
	s.server = &http.Server{Handler: mux}
	go func() {
		if err := s.server.Serve(listener); err != nil && err != http.ErrServerClosed {
			logging.Error(err)
		}
	}()
	return nil
}

// Addr returns the bound listen address.
func (s *Server) Addr() string {
	return s.addr
}

// Events returns the channel of transport events.
func (s *Server) Events() <-chan Event {
	return s.events
}

// Post writes message text to the live connection. Returns false when no
// surface is connected or the write fails; this is transport acceptance only.
func (s *Server) Post(text string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn == nil {
		return false
	}
	if err := s.conn.WriteMessage(websocket.TextMessage, []byte(text)); err != nil {
		logging.Error(err)
		return false
	}
	return true
}

// Stop closes the endpoint and the live connection.
func (s *Server) Stop() {
	s.once.Do(func() {
		close(s.done)
	})
	s.mu.Lock()
	conn := s.conn
	s.conn = nil
	s.mu.Unlock()
	if conn != nil {
		conn.Close()
	}
	if s.server != nil {
		s.server.Close()
	}
}

func (s *Server) handleSurface(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Error(err)
		return
	}

	s.mu.Lock()
	previous := s.conn
	s.conn = conn
	s.mu.Unlock()
	if previous != nil {
		previous.Close()
	}

	events.Surface.Connected(conn.RemoteAddr().String())
	s.emit(Event{Kind: KindConnected})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			s.mu.Lock()
			current := s.conn == conn
			if current {
				s.conn = nil
			}
			s.mu.Unlock()
			if current {
				events.Surface.Disconnected(err.Error())
				s.emit(Event{Kind: KindDisconnected, Err: err})
			}
			return
		}
		s.emit(Event{Kind: KindMessage, Text: string(data)})
	}
}

func (s *Server) emit(evt Event) {
	select {
	case s.events <- evt:
	case <-s.done:
	}
}
