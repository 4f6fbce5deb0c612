// Package streamserver exposes the shadow's current state and a live
// change-notification feed over HTTP, grounded on the teacher's
// http_server package's http.Server-plus-ServeMux shape. The websocket
// feed itself is new: the teacher never needed a push channel, so its
// shape is learned from the pack's other websocket-bearing example
// (gorilla/websocket, the library every such example in the pack
// reaches for).
package streamserver

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// Snapshot is whatever the caller wants to expose as the current
// shadow state - left as an opaque value the server marshals, so this
// package never needs to import busparticipant or shadow.
type Snapshot func() any

// Server serves GET /shadow (a JSON snapshot) and GET /stream (a
// websocket that receives one JSON snapshot per change notification).
type Server struct {
	srv      http.Server
	snapshot Snapshot
	upgrader websocket.Upgrader

	mu       sync.Mutex
	clients  map[*websocket.Conn]struct{}
}

// New builds a Server bound to addr (for example ":8180"); snapshot is
// called on every /shadow request and every Broadcast.
func New(addr string, snapshot Snapshot) *Server {
	s := &Server{
		snapshot: snapshot,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients: make(map[*websocket.Conn]struct{}),
	}
	s.srv.Addr = addr

	mux := http.NewServeMux()
	mux.HandleFunc("/shadow", s.handleShadow)
	mux.HandleFunc("/stream", s.handleStream)
	s.srv.Handler = mux

	return s
}

// Start begins serving in the background, the same
// goroutine-wrapped-ListenAndServe shape as the teacher's HttpServer.Start.
func (s *Server) Start() {
	go func() {
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Println("streamserver: stopped:", err)
		}
	}()
}

func (s *Server) Stop() {
	_ = s.srv.Shutdown(context.Background())
}

func (s *Server) handleShadow(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.snapshot()); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("streamserver: upgrade failed:", err)
		return
	}

	s.mu.Lock()
	s.clients[conn] = struct{}{}
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.clients, conn)
		s.mu.Unlock()
		conn.Close()
	}()

	if err := conn.WriteJSON(s.snapshot()); err != nil {
		return
	}

	// Drain and discard inbound frames, just enough to notice the peer
	// closing the connection; this feed is push-only.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// Broadcast pushes the current snapshot to every connected /stream
// client. Intended to be called from an observer.Hooks.OnStatusChanged
// or OnTemperatureChanged callback.
func (s *Server) Broadcast() {
	s.mu.Lock()
	defer s.mu.Unlock()

	payload := s.snapshot()
	for conn := range s.clients {
		if err := conn.WriteJSON(payload); err != nil {
			conn.Close()
			delete(s.clients, conn)
		}
	}
}
