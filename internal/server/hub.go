package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/hersh/blockfall/internal/game"
	"github.com/hersh/blockfall/internal/protocol"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingInterval   = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBuffer     = 16
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type spectator struct {
	id     string
	conn   *websocket.Conn
	sendCh chan []byte
}

func newSpectator(conn *websocket.Conn) *spectator {
	return &spectator{
		id:     uuid.NewString(),
		conn:   conn,
		sendCh: make(chan []byte, sendBuffer),
	}
}

// writePump sends messages from sendCh to the WebSocket.
func (s *spectator) writePump() {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		s.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-s.sendCh:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				s.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := s.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump only keeps the connection alive; spectators have nothing to say.
func (s *spectator) readPump() {
	s.conn.SetReadLimit(maxMessageSize)
	s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		s.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := s.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("read error for spectator %s: %v", s.id, err)
			}
			return
		}
	}
}

// send queues data without blocking. Slow spectators miss frames.
func (s *spectator) send(data []byte) {
	select {
	case s.sendCh <- data:
	default:
		log.Printf("send channel full for spectator %s, dropping message", s.id)
	}
}

// Hub fans a session's snapshots out to every connected spectator.
type Hub struct {
	mu         sync.RWMutex
	spectators map[string]*spectator
	latest     []byte
}

func NewHub() *Hub {
	return &Hub{
		spectators: make(map[string]*spectator),
	}
}

// Count returns the number of connected spectators.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.spectators)
}

// PublishSnapshot sends the snapshot to every spectator and keeps it for
// spectators that connect later.
func (h *Hub) PublishSnapshot(s game.Snapshot) error {
	data, err := json.Marshal(protocol.Envelope{
		Type:    protocol.MsgSnapshot,
		Payload: protocol.NewSnapshotPayload(s),
	})
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.latest = data
	for _, sp := range h.spectators {
		sp.send(data)
	}
	return nil
}

// ServeWS upgrades the request and streams snapshots until the spectator leaves.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("upgrade error: %v", err)
		return
	}

	s := newSpectator(conn)
	welcome, err := json.Marshal(protocol.Envelope{
		Type:    protocol.MsgWelcome,
		Payload: protocol.WelcomePayload{SpectatorID: s.id},
	})
	if err != nil {
		log.Printf("marshal error for spectator %s: %v", s.id, err)
		conn.Close()
		return
	}

	h.mu.Lock()
	s.send(welcome)
	if h.latest != nil {
		s.send(h.latest)
	}
	h.spectators[s.id] = s
	h.mu.Unlock()
	log.Printf("spectator %s connected", s.id)

	go s.writePump()
	s.readPump()

	h.remove(s.id)
	log.Printf("spectator %s disconnected", s.id)
}

func (h *Hub) remove(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if s, ok := h.spectators[id]; ok {
		close(s.sendCh)
		delete(h.spectators, id)
	}
}

// Close disconnects every spectator.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, s := range h.spectators {
		close(s.sendCh)
		delete(h.spectators, id)
	}
}

// NewMux routes the spectator feed and a health check.
func NewMux(h *Hub) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", h.ServeWS)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	return mux
}
