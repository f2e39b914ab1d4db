// Package telemetry streams per-tick movement snapshots over websockets so
// a browser overlay (or just websocat) can watch a simulation live while
// tuning values are edited.
package telemetry

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/milk9111/parkour/motion"
)

const writeWait = 5 * time.Second

// Snapshot is one tick's worth of observable state.
type Snapshot struct {
	Type     string     `json:"type"`
	Tick     uint64     `json:"tick"`
	Mode     string     `json:"mode"`
	Position [3]float64 `json:"position"`
	Velocity [3]float64 `json:"velocity"`
	Speed    float64    `json:"speed"`
	Grounded bool       `json:"grounded"`
	Height   float64    `json:"height"`
	FOV      float64    `json:"fov"`
	Events   []string   `json:"events,omitempty"`
}

type subscriber struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

// Server accepts websocket subscribers on /ws and fans each published
// snapshot out to all of them. Slow or dead connections are dropped on the
// first failed write.
type Server struct {
	mu          sync.Mutex
	subscribers map[*subscriber]struct{}
}

func NewServer() *Server {
	return &Server{subscribers: make(map[*subscriber]struct{})}
}

// Handler returns the /ws upgrade handler.
func (s *Server) Handler() http.Handler {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("telemetry: upgrade failed: %v", err)
			return
		}
		sub := &subscriber{conn: conn}
		s.mu.Lock()
		s.subscribers[sub] = struct{}{}
		s.mu.Unlock()

		// Drain reads so pings and close frames are processed.
		go func() {
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					s.drop(sub)
					return
				}
			}
		}()
	})
}

// ListenAndServe runs a standalone HTTP server for the telemetry socket.
func (s *Server) ListenAndServe(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/ws", s.Handler())
	return http.ListenAndServe(addr, mux)
}

// Publish serializes the snapshot once and writes it to every subscriber.
func (s *Server) Publish(snap Snapshot) {
	if snap.Type == "" {
		snap.Type = "snapshot"
	}
	data, err := json.Marshal(snap)
	if err != nil {
		log.Printf("telemetry: marshal snapshot: %v", err)
		return
	}

	s.mu.Lock()
	subs := make([]*subscriber, 0, len(s.subscribers))
	for sub := range s.subscribers {
		subs = append(subs, sub)
	}
	s.mu.Unlock()

	for _, sub := range subs {
		sub.mu.Lock()
		sub.conn.SetWriteDeadline(time.Now().Add(writeWait))
		err := sub.conn.WriteMessage(websocket.TextMessage, data)
		sub.mu.Unlock()
		if err != nil {
			log.Printf("telemetry: dropping subscriber: %v", err)
			s.drop(sub)
		}
	}
}

func (s *Server) drop(sub *subscriber) {
	s.mu.Lock()
	_, ok := s.subscribers[sub]
	delete(s.subscribers, sub)
	s.mu.Unlock()
	if ok {
		sub.conn.Close()
	}
}

// EventNames flattens an event batch for a snapshot.
func EventNames(events []motion.Event) []string {
	if len(events) == 0 {
		return nil
	}
	names := make([]string, 0, len(events))
	for _, ev := range events {
		names = append(names, ev.Kind.String())
	}
	return names
}
